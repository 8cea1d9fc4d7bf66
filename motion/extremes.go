package motion

import (
	"math"
)

// Range is a closed interval of coordinate values. An empty range has Min > Max.
type Range struct {
	Min, Max float64
}

// EmptyRange returns a range containing nothing.
func EmptyRange() Range {
	return Range{Min: math.Inf(1), Max: math.Inf(-1)}
}

// Valid reports whether the range contains at least one value.
func (r Range) Valid() bool {
	return r.Min <= r.Max
}

// Span returns Max − Min, or 0 for an empty range.
func (r Range) Span() float64 {
	if !r.Valid() {
		return 0
	}
	return r.Max - r.Min
}

// Include extends the range to cover v. NaN is ignored.
func (r Range) Include(v float64) Range {
	if math.IsNaN(v) {
		return r
	}
	if v < r.Min {
		r.Min = v
	}
	if v > r.Max {
		r.Max = v
	}
	return r
}

// Union returns the smallest range covering both.
func (r Range) Union(o Range) Range {
	return Range{Min: math.Min(r.Min, o.Min), Max: math.Max(r.Max, o.Max)}
}

// Extremes holds minimum and maximum joint coordinates at four granularities. NaN values are
// excluded, so an all-NaN group yields an empty range.
type Extremes struct {
	// Global covers all joints and axes.
	Global Range
	// Joints covers all axes of one joint slot.
	Joints []Range
	// Axes covers one axis over all joints.
	Axes [3]Range
	// JointAxes covers one axis of one joint slot.
	JointAxes [][3]Range
}

func newExtremes(numJoints int) *Extremes {
	e := &Extremes{
		Global:    EmptyRange(),
		Joints:    make([]Range, numJoints),
		JointAxes: make([][3]Range, numJoints),
	}
	for a := range e.Axes {
		e.Axes[a] = EmptyRange()
	}
	for j := range e.Joints {
		e.Joints[j] = EmptyRange()
		for a := range e.JointAxes[j] {
			e.JointAxes[j][a] = EmptyRange()
		}
	}
	return e
}

func (e *Extremes) addPose(p *Pose) {
	n := len(e.Joints)
	if p.NumJoints() < n {
		n = p.NumJoints()
	}
	coords := p.coords
	for j := 0; j < n; j++ {
		for a := 0; a < 3; a++ {
			v := coords[3*j+a]
			if math.IsNaN(v) {
				continue
			}
			e.JointAxes[j][a] = e.JointAxes[j][a].Include(v)
		}
	}
	for j := 0; j < n; j++ {
		for a := 0; a < 3; a++ {
			ja := e.JointAxes[j][a]
			if !ja.Valid() {
				continue
			}
			e.Joints[j] = e.Joints[j].Union(ja)
			e.Axes[a] = e.Axes[a].Union(ja)
			e.Global = e.Global.Union(ja)
		}
	}
}

// PoseExtremes computes the extremes of a single pose.
func PoseExtremes(p *Pose) *Extremes {
	e := newExtremes(p.NumJoints())
	e.addPose(p)
	return e
}

// SequenceExtremes computes the extremes over every pose of every sequence. The joint count
// is taken from the first non-empty sequence.
func SequenceExtremes(seqs ...*Sequence) *Extremes {
	numJoints := 0
	for _, s := range seqs {
		if s.Len() > 0 {
			numJoints = s.NumJoints()
			break
		}
	}
	e := newExtremes(numJoints)
	for _, s := range seqs {
		for _, p := range s.poses {
			e.addPose(p)
		}
	}
	return e
}

// TrajectoryLengths returns, per joint slot, the path length the joint travels across the
// sequence: the sum of Euclidean distances between consecutive frames. Segments touching an
// untracked joint are skipped.
func TrajectoryLengths(s *Sequence) []float64 {
	lengths := make([]float64, s.NumJoints())
	for i := 1; i < s.Len(); i++ {
		prev, cur := s.poses[i-1], s.poses[i]
		for j := range lengths {
			d := cur.Joint(j).Sub(prev.Joint(j)).Norm()
			if math.IsNaN(d) {
				continue
			}
			lengths[j] += d
		}
	}
	return lengths
}
