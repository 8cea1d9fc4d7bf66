package motionimage

import (
	"math"

	"github.com/pkg/errors"

	"github.com/Coda-Research-Group/mocap-vae-features-sub000/motion"
	"github.com/Coda-Research-Group/mocap-vae-features-sub000/skeleton"
	"github.com/Coda-Research-Group/mocap-vae-features-sub000/utils"
)

// Quantize maps v linearly from r onto [0, 1]. NaN stays NaN and marks an untracked value.
// A range with no positive span maps everything to 0; values outside r are clamped.
func Quantize(v float64, r motion.Range) float64 {
	if math.IsNaN(v) {
		return v
	}
	span := r.Max - r.Min
	if !(span > 0) || math.IsInf(span, 0) {
		return 0
	}
	return utils.Clamp((v-r.Min)/span, 0, 1)
}

// jointBounds holds the quantization range of every axis of every joint slot.
type jointBounds [][3]motion.Range

func uniformBounds(numJoints int, r motion.Range) jointBounds {
	out := make(jointBounds, numJoints)
	for j := range out {
		out[j] = [3]motion.Range{r, r, r}
	}
	return out
}

// tableBounds resolves a table keyed by landmark name against the schema. Every landmark of
// the schema needs an entry.
func tableBounds(schema *skeleton.Schema, table map[string]AxisBounds) (jointBounds, error) {
	out := make(jointBounds, schema.NumJoints())
	filled := make([]bool, schema.NumJoints())
	for name, b := range table {
		l, ok := schema.LandmarkByName(name)
		if !ok {
			return nil, errors.Errorf("bounds given for unknown landmark %q", name)
		}
		slot := schema.MustSlot(l)
		for a := range b {
			out[slot][a] = motion.Range{Min: b[a][0], Max: b[a][1]}
		}
		filled[slot] = true
	}
	for slot, ok := range filled {
		if !ok {
			return nil, errors.Errorf("no bounds for landmark %q", schema.LandmarkName(schema.Landmark(slot)))
		}
	}
	return out, nil
}

// sequenceBounds computes the bounds of one sequence at the granularity of mode.
func sequenceBounds(mode BoundsMode, numJoints int, seq *motion.Sequence) jointBounds {
	ext := motion.SequenceExtremes(seq)
	out := make(jointBounds, numJoints)
	for j := range out {
		for a := range out[j] {
			switch mode {
			case BoundsSequenceJoint:
				out[j][a] = rangeAt(ext.Joints, j)
			case BoundsSequenceAxis:
				out[j][a] = ext.Axes[a]
			case BoundsSequenceJointAxis:
				if j < len(ext.JointAxes) {
					out[j][a] = ext.JointAxes[j][a]
				} else {
					out[j][a] = motion.EmptyRange()
				}
			default:
				out[j][a] = ext.Global
			}
		}
	}
	return out
}

func rangeAt(ranges []motion.Range, i int) motion.Range {
	if i < len(ranges) {
		return ranges[i]
	}
	return motion.EmptyRange()
}

// quantizePose quantizes every coordinate of the pose into dst, which holds 3 values per slot.
func (jb jointBounds) quantizePose(p *motion.Pose, dst []float64) {
	coords := p.Coordinates()
	for j, axes := range jb {
		for a, r := range axes {
			dst[3*j+a] = Quantize(coords[3*j+a], r)
		}
	}
}
