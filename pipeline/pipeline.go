// Package pipeline runs the normalizer chain and the motion image encoder over many
// sequences at once.
package pipeline

import (
	"context"
	"image"
	"math/rand"
	"runtime"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/Coda-Research-Group/mocap-vae-features-sub000/config"
	"github.com/Coda-Research-Group/mocap-vae-features-sub000/logging"
	"github.com/Coda-Research-Group/mocap-vae-features-sub000/motion"
	"github.com/Coda-Research-Group/mocap-vae-features-sub000/motionimage"
	"github.com/Coda-Research-Group/mocap-vae-features-sub000/normalize"
	"github.com/Coda-Research-Group/mocap-vae-features-sub000/rimage"
	"github.com/Coda-Research-Group/mocap-vae-features-sub000/skeleton"
)

// Result is the outcome for one input sequence.
type Result struct {
	Label    string
	Sequence *motion.Sequence
	Image    *image.NRGBA
}

// Pipeline normalizes and encodes sequences of one schema.
type Pipeline struct {
	schema      *skeleton.Schema
	chain       normalize.Chain
	encConf     motionimage.Config
	encOpts     []motionimage.Option
	parallelism int
	logger      logging.Logger

	mu      sync.Mutex
	encoder *motionimage.Encoder
}

// New builds the stages described by conf. Encoder options are applied after the ones derived
// from conf.
func New(conf *config.Config, logger logging.Logger, opts ...motionimage.Option) (*Pipeline, error) {
	schema, err := conf.LoadSchema()
	if err != nil {
		return nil, err
	}
	chainConf, err := conf.ChainConfig(schema)
	if err != nil {
		return nil, err
	}
	chain, err := normalize.NewDefaultChain(schema, chainConf)
	if err != nil {
		return nil, err
	}
	encConf, err := conf.EncoderConfig()
	if err != nil {
		return nil, err
	}

	encOpts := []motionimage.Option{motionimage.WithLogger(logger.Sublogger("encoder"))}
	if conf.Seed != nil {
		encOpts = append(encOpts, motionimage.WithRandomSource(rand.New(rand.NewSource(*conf.Seed)))) //nolint:gosec
	}
	encOpts = append(encOpts, opts...)

	parallelism := conf.Parallelism
	if parallelism == 0 {
		parallelism = runtime.NumCPU()
	}
	p := &Pipeline{
		schema:      schema,
		chain:       chain,
		encConf:     *encConf,
		encOpts:     encOpts,
		parallelism: parallelism,
		logger:      logger,
	}
	if encConf.HeightPolicy != motionimage.HeightGlobalTrajectory {
		if p.encoder, err = motionimage.New(schema, p.encConf, p.encOpts...); err != nil {
			return nil, err
		}
	}
	logger.Debugw("pipeline ready", "schema", schema.Name(), "stages", len(chain), "parallelism", parallelism)
	return p, nil
}

// Schema returns the schema sequences are checked against.
func (p *Pipeline) Schema() *skeleton.Schema {
	return p.schema
}

// Normalize checks seq against the schema and runs the normalizer chain.
func (p *Pipeline) Normalize(seq *motion.Sequence) (*motion.Sequence, error) {
	if err := seq.CheckJoints(p.schema.NumJoints()); err != nil {
		return nil, err
	}
	return p.chain.Normalize(seq), nil
}

// NormalizeAll normalizes every sequence concurrently, keeping the input order. Every failing
// sequence is reported.
func (p *Pipeline) NormalizeAll(ctx context.Context, seqs []*motion.Sequence) ([]*motion.Sequence, error) {
	out := make([]*motion.Sequence, len(seqs))
	err := p.forEach(ctx, len(seqs), func(i int) error {
		normalized, err := p.Normalize(seqs[i])
		if err != nil {
			p.sequenceLogger(i, seqs[i]).Warnw("cannot normalize sequence", "error", err)
			return err
		}
		out[i] = normalized
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Encoder returns the encoder, building it from the normalized dataset when the height
// policy needs dataset-wide trajectory weights. Those weights are computed on the first call
// only and reused afterwards.
func (p *Pipeline) Encoder(normalized []*motion.Sequence) (*motionimage.Encoder, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.encoder != nil {
		return p.encoder, nil
	}
	weights, err := motionimage.DatasetTrajectoryWeights(normalized...)
	if err != nil {
		return nil, err
	}
	opts := append([]motionimage.Option{motionimage.WithGlobalTrajectoryWeights(weights)}, p.encOpts...)
	encoder, err := motionimage.New(p.schema, p.encConf, opts...)
	if err != nil {
		return nil, err
	}
	p.logger.Infow("computed global trajectory weights", "sequences", len(normalized))
	p.encoder = encoder
	return encoder, nil
}

// Run normalizes and encodes every sequence. Results keep the input order.
func (p *Pipeline) Run(ctx context.Context, seqs []*motion.Sequence) ([]Result, error) {
	normalized, err := p.NormalizeAll(ctx, seqs)
	if err != nil {
		return nil, err
	}
	encoder, err := p.Encoder(normalized)
	if err != nil {
		return nil, err
	}
	results := make([]Result, len(normalized))
	err = p.forEach(ctx, len(normalized), func(i int) error {
		img, err := encoder.Encode(normalized[i])
		if err != nil {
			return err
		}
		results[i] = Result{Label: normalized[i].Label(), Sequence: normalized[i], Image: img}
		p.sequenceLogger(i, normalized[i]).Debugw("encoded sequence", "size", img.Bounds().Size())
		return nil
	})
	if err != nil {
		return nil, err
	}
	p.logger.Infow("encoded sequences", "count", len(results))
	return results, nil
}

// sequenceLogger tags entries with the position and label of one input sequence.
func (p *Pipeline) sequenceLogger(i int, seq *motion.Sequence) logging.Logger {
	return p.logger.With("index", i, "sequence", seq.Label())
}

// Stack composes the images of results into one raster, in order.
func Stack(results []Result) *image.NRGBA {
	imgs := make([]image.Image, len(results))
	for i, r := range results {
		imgs[i] = r.Image
	}
	return rimage.Stack(imgs...)
}

// forEach calls fn for every index with bounded parallelism. Failures are collected with the
// index of the sequence; cancellation of ctx stops the remaining work.
func (p *Pipeline) forEach(ctx context.Context, n int, fn func(i int) error) error {
	errs := make([]error, n)
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(p.parallelism)
	for i := 0; i < n; i++ {
		i := i
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := fn(i); err != nil {
				errs[i] = errors.Wrapf(err, "sequence %d", i)
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}
	return multierr.Combine(errs...)
}
