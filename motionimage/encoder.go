// Package motionimage encodes normalized motion sequences as images: every column is a frame,
// every row band a joint or a point interpolated along a bone, and the quantized x, y and z
// coordinates become the red, green and blue channels.
package motionimage

import (
	"image"
	"math/rand"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/Coda-Research-Group/mocap-vae-features-sub000/logging"
	"github.com/Coda-Research-Group/mocap-vae-features-sub000/motion"
	"github.com/Coda-Research-Group/mocap-vae-features-sub000/rimage"
	"github.com/Coda-Research-Group/mocap-vae-features-sub000/skeleton"
	"github.com/Coda-Research-Group/mocap-vae-features-sub000/utils"
)

// HeightPolicy is the row allocation policy of an encoder together with the data it needs.
type HeightPolicy struct {
	Kind HeightPolicyKind
	// GlobalWeights holds one weight per joint slot for HeightGlobalTrajectory.
	GlobalWeights []float64
	// FixedHeights holds the row height of every landmark for HeightFixed.
	FixedHeights map[skeleton.Landmark]int
	// BoneLengths drives the point allocation of HeightBoneInterpolated.
	BoneLengths skeleton.BoneLengths
}

// An Option customizes an Encoder.
type Option func(*Encoder)

// WithRandomSource sets the source of the initial random shift.
func WithRandomSource(src utils.IntnSource) Option {
	return func(e *Encoder) {
		e.random = &lockedSource{src: src}
	}
}

// WithLogger sets the logger layouts are reported to.
func WithLogger(logger logging.Logger) Option {
	return func(e *Encoder) {
		e.logger = logger
	}
}

// WithGlobalTrajectoryWeights sets the per-joint weights of the global trajectory policy,
// usually computed with DatasetTrajectoryWeights.
func WithGlobalTrajectoryWeights(weights []float64) Option {
	return func(e *Encoder) {
		e.policy.GlobalWeights = append([]float64(nil), weights...)
	}
}

// WithFixedHeights overrides the schema's fixed height table.
func WithFixedHeights(heights map[skeleton.Landmark]int) Option {
	return func(e *Encoder) {
		e.policy.FixedHeights = heights
	}
}

// WithBoneLengths overrides the schema's bone lengths for the bone-interpolated layout.
func WithBoneLengths(lengths skeleton.BoneLengths) Option {
	return func(e *Encoder) {
		e.policy.BoneLengths = lengths
	}
}

type lockedSource struct {
	mu  sync.Mutex
	src utils.IntnSource
}

func (ls *lockedSource) Intn(n int) int {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.src.Intn(n)
}

// Encoder renders motion sequences of one schema. It is safe for concurrent use.
type Encoder struct {
	schema *skeleton.Schema
	conf   Config
	policy HeightPolicy
	random utils.IntnSource
	logger logging.Logger

	// bounds and layout are nil when they depend on the sequence.
	bounds jointBounds
	layout *Layout
}

// New validates the config against the schema and returns an encoder.
func New(schema *skeleton.Schema, conf Config, opts ...Option) (*Encoder, error) {
	if err := conf.Validate("motionimage"); err != nil {
		return nil, err
	}
	e := &Encoder{
		schema: schema,
		conf:   conf,
		policy: HeightPolicy{Kind: conf.heightPolicy()},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.random == nil {
		e.random = &lockedSource{src: rand.New(rand.NewSource(time.Now().UnixNano()))} //nolint:gosec
	}
	if e.logger == nil {
		e.logger = logging.NewNopLogger()
	}

	switch mode := conf.boundsMode(); mode {
	case BoundsFixed:
		low, high := conf.fixedBounds()
		e.bounds = uniformBounds(schema.NumJoints(), motion.Range{Min: low, Max: high})
	case BoundsTable:
		bounds, err := tableBounds(schema, conf.Bounds)
		if err != nil {
			return nil, err
		}
		e.bounds = bounds
	case BoundsSequence, BoundsSequenceJoint, BoundsSequenceAxis, BoundsSequenceJointAxis:
	}

	if err := e.preparePolicy(); err != nil {
		return nil, errors.Wrapf(err, "cannot use %s height policy", e.policy.Kind)
	}
	return e, nil
}

// preparePolicy resolves the policy data and precomputes the layout when it does not
// depend on the sequence.
func (e *Encoder) preparePolicy() error {
	numJoints, height := e.schema.NumJoints(), e.conf.height()
	switch e.policy.Kind {
	case HeightUniform:
		heights, err := uniformHeights(numJoints, height)
		if err != nil {
			return err
		}
		e.layout = jointLayout(heights, height)
	case HeightRange, HeightTrajectory:
		if numJoints*e.conf.minBandHeight() > height {
			return errors.Errorf("height %d cannot fit %d bands of at least %d rows",
				height, numJoints, e.conf.minBandHeight())
		}
	case HeightGlobalTrajectory:
		if len(e.policy.GlobalWeights) != numJoints {
			return errors.Errorf("expected %d global trajectory weights, got %d", numJoints, len(e.policy.GlobalWeights))
		}
		heights, err := weightedHeights(e.policy.GlobalWeights, height, e.conf.minBandHeight())
		if err != nil {
			return err
		}
		e.layout = jointLayout(heights, height)
	case HeightFixed:
		if e.policy.FixedHeights == nil {
			e.policy.FixedHeights = e.schema.FixedHeights()
		}
		heights, err := tableHeights(e.schema, e.policy.FixedHeights, height)
		if err != nil {
			return err
		}
		e.layout = jointLayout(heights, height)
	case HeightBoneInterpolated:
		lengths := e.schema.BoneLengths()
		if lengths == nil {
			lengths = e.policy.BoneLengths
		} else {
			lengths = lengths.Merge(e.policy.BoneLengths)
		}
		if err := lengths.Require(e.schema.Tree()); err != nil {
			return err
		}
		e.policy.BoneLengths = lengths
		layout, err := boneLayout(e.schema, lengths, height, e.conf.jointHeight(), e.conf.MinBonePoints)
		if err != nil {
			return err
		}
		e.layout = layout
	}
	if e.layout != nil {
		e.logger.Debugw("motion image layout", "policy", e.policy.Kind, "rows", len(e.layout.Rows),
			"height", e.layout.Height, "unused", e.layout.Unused)
	}
	return nil
}

// Schema returns the schema the encoder renders.
func (e *Encoder) Schema() *skeleton.Schema {
	return e.schema
}

// HeightPolicy returns the resolved height policy.
func (e *Encoder) HeightPolicy() HeightPolicy {
	return e.policy
}

// Layout returns the row layout used for seq.
func (e *Encoder) Layout(seq *motion.Sequence) (*Layout, error) {
	if e.layout != nil {
		return e.layout, nil
	}
	numJoints, height := e.schema.NumJoints(), e.conf.height()
	var weights []float64
	if e.policy.Kind == HeightRange {
		weights = rangeWeights(seq, numJoints)
	} else {
		weights = trajectoryWeights(seq, numJoints)
	}
	heights, err := weightedHeights(weights, height, e.conf.minBandHeight())
	if err != nil {
		return nil, err
	}
	layout := jointLayout(heights, height)
	e.logger.Debugw("motion image layout", "sequence", seq.Label(), "policy", e.policy.Kind,
		"heights", heights, "unused", layout.Unused)
	return layout, nil
}

// Width returns the raster width for a sequence of n frames, and how many frames are drawn.
func (e *Encoder) Width(n int) (width, frames int) {
	if e.conf.FixedWidth == 0 {
		return n, n
	}
	return e.conf.FixedWidth, min(n, e.conf.FixedWidth)
}

// Encode renders seq. Frames beyond a fixed width are dropped; columns without a frame stay
// transparent, as do rows the layout leaves unused.
func (e *Encoder) Encode(seq *motion.Sequence) (*image.NRGBA, error) {
	numJoints := e.schema.NumJoints()
	if err := seq.CheckJoints(numJoints); err != nil {
		return nil, err
	}
	layout, err := e.Layout(seq)
	if err != nil {
		return nil, err
	}
	bounds := e.bounds
	if bounds == nil {
		bounds = sequenceBounds(e.conf.boundsMode(), numJoints, seq)
	}

	width, frames := e.Width(seq.Len())
	offset := 0
	if e.conf.InitialRandomShift && frames < width {
		offset = utils.SampleRandomIntRange(0, width-frames, e.random)
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, layout.Height))
	quantized := make([]float64, 3*numJoints)
	for i := 0; i < frames; i++ {
		bounds.quantizePose(seq.Pose(i), quantized)
		x := offset + i
		for _, row := range layout.Rows {
			c := row.color(quantized)
			for y := row.Y; y < row.Y+row.Height; y++ {
				img.SetNRGBA(x, y, c)
			}
		}
	}

	switch {
	case e.conf.CreateWhiteBorder:
		return rimage.AddWhiteBorder(img, e.conf.OutputWidth, e.conf.OutputHeight)
	case e.conf.ScaleToFixedSize:
		return rimage.ScaleTo(img, e.conf.OutputWidth, e.conf.OutputHeight)
	default:
		return img, nil
	}
}
