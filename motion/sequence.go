package motion

import (
	"strings"

	"github.com/pkg/errors"
)

const (
	// NoOffset is the offset of a sequence that was not extracted from another one.
	NoOffset = -1
	// LabelDelimiter separates the parent sequence id from the rest of a label.
	LabelDelimiter = "_"
)

// A Sequence is an ordered list of poses with an identity label. A sequence extracted from
// another one remembers the origin's label and the frame offset it starts at.
type Sequence struct {
	label  string
	poses  []*Pose
	offset int
	origin string
}

// NewSequence creates a root sequence over the given poses.
func NewSequence(label string, poses []*Pose) *Sequence {
	return &Sequence{label: label, poses: poses, offset: NoOffset}
}

// Label returns the identity label (locator) of the sequence.
func (s *Sequence) Label() string {
	return s.label
}

// ParentSequenceID returns the logical id of the sequence this one belongs to: the label up
// to the first delimiter.
func (s *Sequence) ParentSequenceID() string {
	id, _, _ := strings.Cut(s.label, LabelDelimiter)
	return id
}

// Offset returns the starting frame within the origin, or NoOffset.
func (s *Sequence) Offset() int {
	return s.offset
}

// Origin returns the label of the sequence this one was extracted from.
func (s *Sequence) Origin() (string, bool) {
	return s.origin, s.origin != ""
}

// Len returns the number of poses.
func (s *Sequence) Len() int {
	return len(s.poses)
}

// Pose returns the pose at index i.
func (s *Sequence) Pose(i int) *Pose {
	return s.poses[i]
}

// Poses returns the poses of the sequence. The slice is shared; poses must be
// duplicated before mutation.
func (s *Sequence) Poses() []*Pose {
	return s.poses
}

// Append adds poses at the end of the sequence.
func (s *Sequence) Append(poses ...*Pose) {
	s.poses = append(s.poses, poses...)
}

// NumJoints returns the joint count of the first pose, or 0 for an empty sequence.
func (s *Sequence) NumJoints() int {
	if len(s.poses) == 0 {
		return 0
	}
	return s.poses[0].NumJoints()
}

// CheckJoints returns an error if any pose does not have exactly numJoints joints.
func (s *Sequence) CheckJoints(numJoints int) error {
	for i, p := range s.poses {
		if p.NumJoints() != numJoints {
			return errors.Errorf("sequence %q pose %d has %d joints, schema has %d", s.label, i, p.NumJoints(), numJoints)
		}
	}
	return nil
}

// Duplicate returns a deep copy with the same label and offset. The origin is only kept
// when keepOrigin is set.
func (s *Sequence) Duplicate(keepOrigin bool) *Sequence {
	poses := make([]*Pose, len(s.poses))
	for i, p := range s.poses {
		poses[i] = p.Clone()
	}
	dup := &Sequence{label: s.label, poses: poses, offset: s.offset}
	if keepOrigin {
		dup.origin = s.origin
	}
	return dup
}

// Subsequence copies frames [from, to) into a new sequence whose origin is this sequence.
func (s *Sequence) Subsequence(label string, from, to int) (*Sequence, error) {
	if from < 0 || to > len(s.poses) || from > to {
		return nil, errors.Errorf("invalid frame range [%d, %d) for sequence %q of length %d", from, to, s.label, len(s.poses))
	}
	poses := make([]*Pose, 0, to-from)
	for _, p := range s.poses[from:to] {
		poses = append(poses, p.Clone())
	}
	return &Sequence{label: label, poses: poses, offset: from, origin: s.label}, nil
}

// WithOrigin returns a shallow copy of the sequence recording the given origin and offset, as
// for segments loaded from a file.
func (s *Sequence) WithOrigin(origin string, offset int) *Sequence {
	return &Sequence{label: s.label, poses: s.poses, offset: offset, origin: origin}
}
