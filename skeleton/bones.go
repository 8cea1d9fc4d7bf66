package skeleton

import (
	"math"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Bone is an unordered pair of landmarks. A is always the smaller id.
type Bone struct {
	A, B Landmark
}

// NewBone returns the bone between a and b, independent of argument order.
func NewBone(a, b Landmark) Bone {
	if b < a {
		a, b = b, a
	}
	return Bone{A: a, B: b}
}

// BoneLengths maps bones to canonical target lengths.
type BoneLengths map[Bone]float64

// Length returns the target length of the bone between a and b.
func (bl BoneLengths) Length(a, b Landmark) (float64, bool) {
	l, ok := bl[NewBone(a, b)]
	return l, ok
}

// Set stores the target length of the bone between a and b.
func (bl BoneLengths) Set(a, b Landmark, length float64) {
	bl[NewBone(a, b)] = length
}

// Clone returns a copy of the table.
func (bl BoneLengths) Clone() BoneLengths {
	out := make(BoneLengths, len(bl))
	for k, v := range bl {
		out[k] = v
	}
	return out
}

// Merge returns a copy of the table with every entry of other applied on top.
func (bl BoneLengths) Merge(other BoneLengths) BoneLengths {
	out := bl.Clone()
	for k, v := range other {
		out[k] = v
	}
	return out
}

// Require checks that every edge of the tree has a positive, finite length. All offending
// edges are reported.
func (bl BoneLengths) Require(tree *KinematicTree) error {
	var errs error
	for _, e := range tree.Edges() {
		length, ok := bl.Length(e.Parent, e.Child)
		switch {
		case !ok:
			errs = multierr.Append(errs, errors.Errorf("no bone length for (%d, %d)", e.Parent, e.Child))
		case !(length > 0) || math.IsInf(length, 0):
			errs = multierr.Append(errs, errors.Errorf("bone length for (%d, %d) must be positive, got %v", e.Parent, e.Child, length))
		}
	}
	return errs
}
