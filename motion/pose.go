// Package motion contains poses, motion sequences and the extremal statistics computed over them.
package motion

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// Axis selects one coordinate of a joint.
type Axis int

// The three coordinate axes. Y is vertical.
const (
	X Axis = iota
	Y
	Z
)

// Axes lists X, Y and Z in order.
var Axes = [3]Axis{X, Y, Z}

// A Pose is one frame: the 3D coordinates of every joint, stored as one flat buffer of
// x, y, z triples in slot order. NaN marks an untracked joint.
type Pose struct {
	coords []float64
}

// NewPose returns a pose of numJoints joints all at the origin.
func NewPose(numJoints int) *Pose {
	return &Pose{coords: make([]float64, 3*numJoints)}
}

// PoseFromVectors builds a pose from one vector per joint slot.
func PoseFromVectors(joints []r3.Vector) *Pose {
	p := NewPose(len(joints))
	for i, v := range joints {
		p.SetJoint(i, v)
	}
	return p
}

// PoseFromCoordinates builds a pose over a copy of a flat x, y, z buffer.
func PoseFromCoordinates(coords []float64) (*Pose, error) {
	if len(coords)%3 != 0 {
		return nil, errors.Errorf("pose buffer length %d is not a multiple of 3", len(coords))
	}
	return &Pose{coords: append([]float64(nil), coords...)}, nil
}

// NumJoints returns the number of joints in the pose.
func (p *Pose) NumJoints() int {
	return len(p.coords) / 3
}

// Joint returns the coordinates of the joint at slot.
func (p *Pose) Joint(slot int) r3.Vector {
	i := 3 * slot
	return r3.Vector{X: p.coords[i], Y: p.coords[i+1], Z: p.coords[i+2]}
}

// SetJoint overwrites the coordinates of the joint at slot.
func (p *Pose) SetJoint(slot int, v r3.Vector) {
	i := 3 * slot
	p.coords[i], p.coords[i+1], p.coords[i+2] = v.X, v.Y, v.Z
}

// Axis returns one coordinate of the joint at slot.
func (p *Pose) Axis(slot int, axis Axis) float64 {
	return p.coords[3*slot+int(axis)]
}

// Tracked reports whether no coordinate of the joint is NaN.
func (p *Pose) Tracked(slot int) bool {
	i := 3 * slot
	return !math.IsNaN(p.coords[i]) && !math.IsNaN(p.coords[i+1]) && !math.IsNaN(p.coords[i+2])
}

// Coordinates exposes the underlying buffer. Callers must not resize it.
func (p *Pose) Coordinates() []float64 {
	return p.coords
}

// Clone returns a deep copy of the pose.
func (p *Pose) Clone() *Pose {
	return &Pose{coords: append([]float64(nil), p.coords...)}
}

// Translate adds v to every joint.
func (p *Pose) Translate(v r3.Vector) {
	for i := 0; i < len(p.coords); i += 3 {
		p.coords[i] += v.X
		p.coords[i+1] += v.Y
		p.coords[i+2] += v.Z
	}
}

// RotateY rotates every joint about the vertical axis by angle radians:
// x' = cos·x − sin·z, z' = sin·x + cos·z.
func (p *Pose) RotateY(angle float64) {
	sin, cos := math.Sincos(angle)
	for i := 0; i < len(p.coords); i += 3 {
		x, z := p.coords[i], p.coords[i+2]
		p.coords[i] = cos*x - sin*z
		p.coords[i+2] = sin*x + cos*z
	}
}
