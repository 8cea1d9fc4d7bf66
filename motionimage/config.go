package motionimage

import (
	"github.com/pkg/errors"
	goutils "go.viam.com/utils"
)

// BoundsMode selects where the quantization range of each joint axis comes from.
type BoundsMode string

// The supported bounds modes.
const (
	// BoundsFixed uses FixedMin and FixedMax for every joint and axis.
	BoundsFixed BoundsMode = "fixed"
	// BoundsTable uses the per-joint-per-axis Bounds table.
	BoundsTable BoundsMode = "table"
	// BoundsSequence uses the extremes of the whole sequence.
	BoundsSequence BoundsMode = "sequence"
	// BoundsSequenceJoint uses the extremes of each joint over the sequence.
	BoundsSequenceJoint BoundsMode = "sequence_joint"
	// BoundsSequenceAxis uses the extremes of each axis over the sequence.
	BoundsSequenceAxis BoundsMode = "sequence_axis"
	// BoundsSequenceJointAxis uses the extremes of each joint axis over the sequence.
	BoundsSequenceJointAxis BoundsMode = "sequence_joint_axis"
)

func (m BoundsMode) valid() bool {
	switch m {
	case BoundsFixed, BoundsTable, BoundsSequence, BoundsSequenceJoint, BoundsSequenceAxis, BoundsSequenceJointAxis:
		return true
	}
	return false
}

// HeightPolicyKind selects how the raster height is split into row bands.
type HeightPolicyKind string

// The supported height policies.
const (
	// HeightUniform gives every joint height / jointCount rows.
	HeightUniform HeightPolicyKind = "uniform"
	// HeightRange weights joints by their coordinate range in the sequence.
	HeightRange HeightPolicyKind = "range"
	// HeightTrajectory weights joints by their path length in the sequence.
	HeightTrajectory HeightPolicyKind = "trajectory"
	// HeightGlobalTrajectory weights joints by path lengths aggregated over a dataset.
	HeightGlobalTrajectory HeightPolicyKind = "global_trajectory"
	// HeightFixed uses a per-landmark table of row heights.
	HeightFixed HeightPolicyKind = "fixed"
	// HeightBoneInterpolated adds interpolated rows along every bone.
	HeightBoneInterpolated HeightPolicyKind = "bone_interpolated"
)

const (
	defaultHeight        = 256
	defaultFixedMin      = -100.
	defaultFixedMax      = 100.
	defaultJointHeight   = 1
	defaultMinBandHeight = 1
)

func (k HeightPolicyKind) valid() bool {
	switch k {
	case HeightUniform, HeightRange, HeightTrajectory, HeightGlobalTrajectory, HeightFixed, HeightBoneInterpolated:
		return true
	}
	return false
}

// AxisBounds holds [min, max] for the X, Y and Z axes of one joint.
type AxisBounds [3][2]float64

// Config configures an Encoder. Zero values select the defaults.
type Config struct {
	BoundsMode BoundsMode `json:"bounds_mode,omitempty"`
	FixedMin   *float64   `json:"fixed_min,omitempty"`
	FixedMax   *float64   `json:"fixed_max,omitempty"`
	// Bounds maps landmark names to their axis bounds for BoundsTable.
	Bounds map[string]AxisBounds `json:"bounds,omitempty"`

	// FixedWidth is the raster width in frames; 0 makes the width follow the sequence length.
	FixedWidth         int  `json:"fixed_width,omitempty"`
	InitialRandomShift bool `json:"initial_random_shift,omitempty"`

	Height        int              `json:"height,omitempty"`
	HeightPolicy  HeightPolicyKind `json:"height_policy,omitempty"`
	MinBandHeight int              `json:"min_band_height,omitempty"`
	JointHeight   int              `json:"joint_height,omitempty"`
	MinBonePoints int              `json:"min_bone_points,omitempty"`

	CreateWhiteBorder bool `json:"create_white_border,omitempty"`
	ScaleToFixedSize  bool `json:"scale_to_fixed_size,omitempty"`
	OutputWidth       int  `json:"output_width,omitempty"`
	OutputHeight      int  `json:"output_height,omitempty"`
}

// Validate ensures all parts of the config are valid.
func (conf *Config) Validate(path string) error {
	if conf.BoundsMode != "" && !conf.BoundsMode.valid() {
		return goutils.NewConfigValidationError(path, errors.Errorf("unknown bounds_mode %q", conf.BoundsMode))
	}
	if conf.BoundsMode == BoundsTable && len(conf.Bounds) == 0 {
		return goutils.NewConfigValidationFieldRequiredError(path, "bounds")
	}
	if conf.BoundsMode == BoundsFixed || conf.BoundsMode == "" {
		if low, high := conf.fixedBounds(); !(low < high) {
			return goutils.NewConfigValidationError(path,
				errors.Errorf("fixed_min (%v) must be less than fixed_max (%v)", low, high))
		}
	}
	if conf.HeightPolicy != "" && !conf.HeightPolicy.valid() {
		return goutils.NewConfigValidationError(path, errors.Errorf("unknown height_policy %q", conf.HeightPolicy))
	}
	if conf.FixedWidth < 0 {
		return goutils.NewConfigValidationError(path, errors.New("fixed_width cannot be negative"))
	}
	if conf.InitialRandomShift && conf.FixedWidth == 0 {
		return goutils.NewConfigValidationFieldRequiredError(path, "fixed_width")
	}
	if conf.Height < 0 || conf.MinBandHeight < 0 || conf.JointHeight < 0 || conf.MinBonePoints < 0 {
		return goutils.NewConfigValidationError(path,
			errors.New("height, min_band_height, joint_height and min_bone_points cannot be negative"))
	}
	if conf.CreateWhiteBorder && conf.ScaleToFixedSize {
		return goutils.NewConfigValidationError(path,
			errors.New("create_white_border and scale_to_fixed_size are mutually exclusive"))
	}
	if conf.CreateWhiteBorder || conf.ScaleToFixedSize {
		if conf.OutputWidth <= 0 {
			return goutils.NewConfigValidationFieldRequiredError(path, "output_width")
		}
		if conf.OutputHeight <= 0 {
			return goutils.NewConfigValidationFieldRequiredError(path, "output_height")
		}
	}
	return nil
}

func (conf *Config) boundsMode() BoundsMode {
	if conf.BoundsMode == "" {
		return BoundsFixed
	}
	return conf.BoundsMode
}

func (conf *Config) fixedBounds() (float64, float64) {
	low, high := defaultFixedMin, defaultFixedMax
	if conf.FixedMin != nil {
		low = *conf.FixedMin
	}
	if conf.FixedMax != nil {
		high = *conf.FixedMax
	}
	return low, high
}

func (conf *Config) height() int {
	if conf.Height == 0 {
		return defaultHeight
	}
	return conf.Height
}

func (conf *Config) heightPolicy() HeightPolicyKind {
	if conf.HeightPolicy == "" {
		return HeightUniform
	}
	return conf.HeightPolicy
}

func (conf *Config) minBandHeight() int {
	if conf.MinBandHeight == 0 {
		return defaultMinBandHeight
	}
	return conf.MinBandHeight
}

func (conf *Config) jointHeight() int {
	if conf.JointHeight == 0 {
		return defaultJointHeight
	}
	return conf.JointHeight
}
