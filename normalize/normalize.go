// Package normalize implements the geometric normalization stages applied to motion sequences
// before encoding: resampling, position centering, orientation alignment and skeleton sizing.
//
// Every stage works on a duplicate of its input and never mutates the caller's sequence. Inputs
// are expected to have been checked against the active schema's joint count.
package normalize

import (
	"github.com/pkg/errors"

	"github.com/Coda-Research-Group/mocap-vae-features-sub000/motion"
	"github.com/Coda-Research-Group/mocap-vae-features-sub000/skeleton"
)

// A Normalizer is one stage of the normalization chain.
type Normalizer interface {
	Normalize(seq *motion.Sequence) *motion.Sequence
}

// Chain applies its stages in order.
type Chain []Normalizer

// NewChain returns a chain of the given stages.
func NewChain(stages ...Normalizer) Chain {
	return Chain(stages)
}

// Normalize runs every stage over the output of the previous one.
func (c Chain) Normalize(seq *motion.Sequence) *motion.Sequence {
	for _, stage := range c {
		seq = stage.Normalize(seq)
	}
	return seq
}

// ChainConfig selects the stages of the default chain.
type ChainConfig struct {
	// OriginalRate and ReducedRate configure the resampler. A zero ReducedRate disables it.
	OriginalRate int
	ReducedRate  int

	CenterPosition        bool
	CenterByFirstPoseOnly bool

	NormalizeOrientation  bool
	RotateByFirstPoseOnly bool

	NormalizeSkeletonSize bool
	// BoneLengths overrides the schema's default bone-length table.
	BoneLengths skeleton.BoneLengths
}

// NewDefaultChain builds Resampler, Position, Orientation and Skeleton-Size normalizers, in
// that order, skipping disabled stages.
func NewDefaultChain(schema *skeleton.Schema, cfg ChainConfig) (Chain, error) {
	var stages []Normalizer
	if cfg.ReducedRate > 0 {
		stages = append(stages, &Resampler{OriginalRate: cfg.OriginalRate, ReducedRate: cfg.ReducedRate})
	}
	if cfg.CenterPosition {
		stages = append(stages, NewPositionNormalizer(schema, cfg.CenterByFirstPoseOnly))
	}
	if cfg.NormalizeOrientation {
		stages = append(stages, NewOrientationNormalizer(schema, cfg.RotateByFirstPoseOnly))
	}
	if cfg.NormalizeSkeletonSize {
		lengths := cfg.BoneLengths
		if defaults := schema.BoneLengths(); defaults != nil {
			lengths = defaults.Merge(cfg.BoneLengths)
		}
		if lengths == nil {
			return nil, errors.Errorf("schema %q has no default bone lengths and none were given", schema.Name())
		}
		sizer, err := NewSkeletonSizeNormalizer(schema, lengths)
		if err != nil {
			return nil, err
		}
		stages = append(stages, sizer)
	}
	return NewChain(stages...), nil
}
