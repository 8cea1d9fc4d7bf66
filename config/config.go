// Package config reads the JSON configuration of the motion pipeline.
package config

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"

	"github.com/a8m/envsubst"
	"github.com/pkg/errors"
	goutils "go.viam.com/utils"

	"github.com/Coda-Research-Group/mocap-vae-features-sub000/motionimage"
	"github.com/Coda-Research-Group/mocap-vae-features-sub000/normalize"
	"github.com/Coda-Research-Group/mocap-vae-features-sub000/skeleton"
	"github.com/Coda-Research-Group/mocap-vae-features-sub000/utils"
)

// BoneKeySeparator separates the two landmark names of a bone length override key, as in
// "lfemur:ltibia".
const BoneKeySeparator = ":"

// Config describes a full normalize and encode pipeline.
type Config struct {
	// Schema names a built-in landmark schema; empty selects hdm05.
	Schema string `json:"schema,omitempty"`

	Resample     Resample      `json:"resample"`
	Position     *Position     `json:"position,omitempty"`
	Orientation  *Orientation  `json:"orientation,omitempty"`
	SkeletonSize *SkeletonSize `json:"skeleton_size,omitempty"`

	// Encoder holds the motion image options, decoded into a motionimage.Config.
	Encoder utils.AttributeMap `json:"encoder,omitempty"`

	// Parallelism bounds how many sequences are processed at once; 0 means one per CPU.
	Parallelism int `json:"parallelism,omitempty"`
	// Seed seeds the random shift of the encoder. Unset uses the clock.
	Seed *int64 `json:"seed,omitempty"`

	ConfigFilePath string `json:"-"`
}

// Resample configures the frame rate reduction. A zero reduced rate disables it.
type Resample struct {
	OriginalRate int `json:"original_rate,omitempty"`
	ReducedRate  int `json:"reduced_rate,omitempty"`
}

// Position enables centering on the root joint.
type Position struct {
	CenterByFirstPoseOnly bool `json:"center_by_first_pose_only,omitempty"`
}

// Orientation enables rotation to the canonical facing direction.
type Orientation struct {
	RotateByFirstPoseOnly bool `json:"rotate_by_first_pose_only,omitempty"`
}

// SkeletonSize enables bone length normalization.
type SkeletonSize struct {
	// BoneLengths overrides entries of the schema's table, keyed "parent:child" by landmark name.
	BoneLengths map[string]float64 `json:"bone_lengths,omitempty"`
}

// Validate ensures all parts of the config are valid.
func (c *Config) Validate() error {
	schema, err := c.LoadSchema()
	if err != nil {
		return goutils.NewConfigValidationError("schema", err)
	}
	if err := c.Resample.Validate("resample"); err != nil {
		return err
	}
	if c.SkeletonSize != nil {
		if _, err := c.SkeletonSize.lengths(schema); err != nil {
			return goutils.NewConfigValidationError("skeleton_size", err)
		}
	}
	if c.Parallelism < 0 {
		return goutils.NewConfigValidationError("parallelism", errors.New("cannot be negative"))
	}
	if _, err := c.EncoderConfig(); err != nil {
		return err
	}
	return nil
}

// Validate ensures the rates describe a reduction or are left unset.
func (r Resample) Validate(path string) error {
	if r.ReducedRate < 0 || r.OriginalRate < 0 {
		return goutils.NewConfigValidationError(path, errors.New("rates cannot be negative"))
	}
	if r.ReducedRate > 0 && r.OriginalRate == 0 {
		return goutils.NewConfigValidationFieldRequiredError(path, "original_rate")
	}
	return nil
}

// LoadSchema returns the configured built-in schema.
func (c *Config) LoadSchema() (*skeleton.Schema, error) {
	schema, ok := skeleton.ByName(strings.ToLower(c.Schema))
	if !ok {
		return nil, errors.Errorf("unknown schema %q", c.Schema)
	}
	return schema, nil
}

// ChainConfig returns the normalizer chain settings for the schema.
func (c *Config) ChainConfig(schema *skeleton.Schema) (normalize.ChainConfig, error) {
	cfg := normalize.ChainConfig{
		OriginalRate: c.Resample.OriginalRate,
		ReducedRate:  c.Resample.ReducedRate,
	}
	if c.Position != nil {
		cfg.CenterPosition = true
		cfg.CenterByFirstPoseOnly = c.Position.CenterByFirstPoseOnly
	}
	if c.Orientation != nil {
		cfg.NormalizeOrientation = true
		cfg.RotateByFirstPoseOnly = c.Orientation.RotateByFirstPoseOnly
	}
	if c.SkeletonSize != nil {
		lengths, err := c.SkeletonSize.lengths(schema)
		if err != nil {
			return normalize.ChainConfig{}, err
		}
		cfg.NormalizeSkeletonSize = true
		cfg.BoneLengths = lengths
	}
	return cfg, nil
}

// EncoderConfig decodes and validates the encoder attributes.
func (c *Config) EncoderConfig() (*motionimage.Config, error) {
	conf, err := utils.TransformAttributeMap[*motionimage.Config](c.Encoder)
	if err != nil {
		return nil, goutils.NewConfigValidationError("encoder", err)
	}
	if err := conf.Validate("encoder"); err != nil {
		return nil, err
	}
	return conf, nil
}

func (s *SkeletonSize) lengths(schema *skeleton.Schema) (skeleton.BoneLengths, error) {
	if len(s.BoneLengths) == 0 {
		return nil, nil
	}
	out := make(skeleton.BoneLengths, len(s.BoneLengths))
	for key, length := range s.BoneLengths {
		parentName, childName, ok := strings.Cut(key, BoneKeySeparator)
		if !ok {
			return nil, errors.Errorf("bone key %q must look like parent%schild", key, BoneKeySeparator)
		}
		parent, ok := schema.LandmarkByName(strings.TrimSpace(parentName))
		if !ok {
			return nil, errors.Errorf("bone key %q names unknown landmark %q", key, parentName)
		}
		child, ok := schema.LandmarkByName(strings.TrimSpace(childName))
		if !ok {
			return nil, errors.Errorf("bone key %q names unknown landmark %q", key, childName)
		}
		if !(length > 0) {
			return nil, errors.Errorf("bone %q must have a positive length, got %v", key, length)
		}
		out.Set(parent, child, length)
	}
	return out, nil
}

// Read reads a config from the given file, substituting environment variables.
func Read(filePath string) (*Config, error) {
	buf, err := envsubst.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return FromReader(filePath, bytes.NewReader(buf))
}

// FromReader reads a config from the given reader and specifies
// where, if applicable, the file the reader originated from.
func FromReader(originalPath string, r io.Reader) (*Config, error) {
	conf := Config{ConfigFilePath: originalPath}
	if err := json.NewDecoder(r).Decode(&conf); err != nil {
		return nil, errors.Wrapf(err, "failed to decode Config from json")
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return &conf, nil
}
