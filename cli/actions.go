package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"github.com/Coda-Research-Group/mocap-vae-features-sub000/config"
	"github.com/Coda-Research-Group/mocap-vae-features-sub000/logging"
	"github.com/Coda-Research-Group/mocap-vae-features-sub000/motion"
	"github.com/Coda-Research-Group/mocap-vae-features-sub000/pipeline"
	"github.com/Coda-Research-Group/mocap-vae-features-sub000/rimage"
)

func newLogger(c *cli.Context) (logging.Logger, error) {
	level, err := logging.LevelFromString(c.String(generalFlagLogLevel))
	if err != nil {
		return nil, err
	}
	return logging.NewLogger("mocapimage", c.App.ErrWriter, level), nil
}

// setup reads the config and the input sequence files named by the arguments.
func setup(c *cli.Context) (*pipeline.Pipeline, []*motion.Sequence, error) {
	if c.NArg() == 0 {
		return nil, nil, errors.New("no input sequence files given")
	}
	logger, err := newLogger(c)
	if err != nil {
		return nil, nil, err
	}
	conf, err := config.Read(c.String(generalFlagConfig))
	if err != nil {
		return nil, nil, err
	}
	p, err := pipeline.New(conf, logger)
	if err != nil {
		return nil, nil, err
	}
	var seqs []*motion.Sequence
	for _, path := range c.Args().Slice() {
		read, err := motion.ReadSequencesFile(path)
		if err != nil {
			return nil, nil, err
		}
		seqs = append(seqs, read...)
	}
	return p, seqs, nil
}

// EncodeAction is the corresponding action for 'encode'.
func EncodeAction(c *cli.Context) error {
	p, seqs, err := setup(c)
	if err != nil {
		return err
	}
	results, err := p.Run(c.Context, seqs)
	if err != nil {
		return err
	}
	dir := c.String(generalFlagOut)
	if c.Bool(encodeFlagStack) {
		path := filepath.Join(dir, stackedImageName)
		if err := rimage.WriteImageToFile(path, pipeline.Stack(results)); err != nil {
			return err
		}
		fmt.Fprintln(c.App.Writer, path)
		return nil
	}
	for i, name := range imageFileNames(results) {
		path := filepath.Join(dir, name)
		if err := rimage.WriteImageToFile(path, results[i].Image); err != nil {
			return err
		}
		fmt.Fprintln(c.App.Writer, path)
	}
	return nil
}

// NormalizeAction is the corresponding action for 'normalize'.
func NormalizeAction(c *cli.Context) error {
	p, seqs, err := setup(c)
	if err != nil {
		return err
	}
	normalized, err := p.NormalizeAll(c.Context, seqs)
	if err != nil {
		return err
	}
	out := c.String(generalFlagOut)
	if err := motion.WriteSequencesFile(out, normalized); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "wrote %d sequences to %s\n", len(normalized), out)
	return nil
}

// SchemaAction is the corresponding action for 'schema'.
func SchemaAction(c *cli.Context) error {
	name := config.PipelineDocument
	if c.NArg() > 0 {
		name = c.Args().First()
	}
	schema, ok := config.DocumentSchemas[name]
	if !ok {
		return errors.Errorf("unknown config document %q, expected %q or %q",
			name, config.PipelineDocument, config.EncoderDocument)
	}
	out, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, string(out))
	return nil
}

// imageFileNames names one PNG per result after its label. Labels that would share a file get
// the index of the result appended.
func imageFileNames(results []pipeline.Result) []string {
	bases := make([]string, len(results))
	counts := map[string]int{}
	for i, res := range results {
		bases[i] = imageFileBase(res.Label)
		counts[bases[i]]++
	}
	names := make([]string, len(results))
	used := map[string]bool{}
	for i, base := range bases {
		name := base
		if counts[base] > 1 {
			name = fmt.Sprintf("%s_%d", base, i)
		}
		for used[name] {
			name = fmt.Sprintf("%s_%d", name, i)
		}
		used[name] = true
		names[i] = name + ".png"
	}
	return names
}

func imageFileBase(label string) string {
	if label == "" {
		label = "sequence"
	}
	return strings.NewReplacer("/", "_", string(filepath.Separator), "_").Replace(label)
}
