// Package skeleton defines the joint landmark schema, kinematic tree and canonical bone lengths
// that every pose of a motion sequence is indexed by.
package skeleton

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Landmark identifies a joint of the skeleton.
type Landmark int

// SchemaConfig describes a schema to build with NewSchema.
type SchemaConfig struct {
	Name string
	// Landmarks lists the joints in slot order.
	Landmarks []Landmark
	// Names optionally gives each landmark a human readable name.
	Names    map[Landmark]string
	Root     Landmark
	LeftHip  Landmark
	RightHip Landmark
	Tree     *KinematicTree
	// BoneLengths is an optional default bone-length table.
	BoneLengths BoneLengths
	// FixedHeights is an optional per-landmark motion image row height table.
	FixedHeights map[Landmark]int
}

// Schema is an immutable landmark schema: a bijection between landmarks and pose slots plus
// the skeleton topology over those landmarks.
type Schema struct {
	name         string
	landmarks    []Landmark
	slots        map[Landmark]int
	names        map[Landmark]string
	byName       map[string]Landmark
	root         Landmark
	leftHip      Landmark
	rightHip     Landmark
	tree         *KinematicTree
	boneLengths  BoneLengths
	fixedHeights map[Landmark]int
}

// NewSchema validates the config and returns a schema.
func NewSchema(cfg SchemaConfig) (*Schema, error) {
	if len(cfg.Landmarks) == 0 {
		return nil, errors.New("schema needs at least one landmark")
	}
	if cfg.Tree == nil {
		return nil, errors.New("schema needs a kinematic tree")
	}
	slots := make(map[Landmark]int, len(cfg.Landmarks))
	for i, l := range cfg.Landmarks {
		if _, ok := slots[l]; ok {
			return nil, errors.Errorf("duplicate landmark %d", l)
		}
		slots[l] = i
	}
	for _, l := range []Landmark{cfg.Root, cfg.LeftHip, cfg.RightHip} {
		if _, ok := slots[l]; !ok {
			return nil, errors.Errorf("landmark %d is not part of the schema", l)
		}
	}
	if cfg.Tree.Root() != cfg.Root {
		return nil, errors.Errorf("kinematic tree is rooted at %d, schema root is %d", cfg.Tree.Root(), cfg.Root)
	}
	if cfg.Tree.Len() != len(cfg.Landmarks) {
		return nil, errors.Errorf("kinematic tree has %d landmarks, schema has %d", cfg.Tree.Len(), len(cfg.Landmarks))
	}
	for _, l := range cfg.Tree.Landmarks() {
		if _, ok := slots[l]; !ok {
			return nil, errors.Errorf("kinematic tree landmark %d is not part of the schema", l)
		}
	}
	if cfg.BoneLengths != nil {
		if err := cfg.BoneLengths.Require(cfg.Tree); err != nil {
			return nil, errors.Wrap(err, "invalid default bone lengths")
		}
	}

	names := make(map[Landmark]string, len(cfg.Landmarks))
	byName := make(map[string]Landmark, len(cfg.Landmarks))
	for _, l := range cfg.Landmarks {
		name, ok := cfg.Names[l]
		if !ok {
			name = fmt.Sprintf("joint%d", l)
		}
		names[l] = name
		byName[strings.ToLower(name)] = l
	}

	return &Schema{
		name:         cfg.Name,
		landmarks:    append([]Landmark(nil), cfg.Landmarks...),
		slots:        slots,
		names:        names,
		byName:       byName,
		root:         cfg.Root,
		leftHip:      cfg.LeftHip,
		rightHip:     cfg.RightHip,
		tree:         cfg.Tree,
		boneLengths:  cfg.BoneLengths,
		fixedHeights: cfg.FixedHeights,
	}, nil
}

// Name returns the schema name.
func (s *Schema) Name() string {
	return s.name
}

// NumJoints returns J, the number of landmarks and so the length of every pose.
func (s *Schema) NumJoints() int {
	return len(s.landmarks)
}

// Landmarks returns the landmarks in slot order.
func (s *Schema) Landmarks() []Landmark {
	return append([]Landmark(nil), s.landmarks...)
}

// Landmark returns the landmark stored at the slot.
func (s *Schema) Landmark(slot int) Landmark {
	return s.landmarks[slot]
}

// Slot returns the pose slot of the landmark.
func (s *Schema) Slot(l Landmark) (int, bool) {
	slot, ok := s.slots[l]
	return slot, ok
}

// MustSlot is like Slot but panics on landmarks outside the schema. It is meant for the
// schema's own well known landmarks.
func (s *Schema) MustSlot(l Landmark) int {
	slot, ok := s.slots[l]
	if !ok {
		panic(fmt.Sprintf("landmark %d is not part of schema %q", l, s.name))
	}
	return slot
}

// Slots maps a list of landmarks to their slots.
func (s *Schema) Slots(ls []Landmark) []int {
	return lo.Map(ls, func(l Landmark, _ int) int { return s.MustSlot(l) })
}

// LandmarkName returns the human readable name of the landmark.
func (s *Schema) LandmarkName(l Landmark) string {
	return s.names[l]
}

// LandmarkByName looks a landmark up by name, case-insensitively.
func (s *Schema) LandmarkByName(name string) (Landmark, bool) {
	l, ok := s.byName[strings.ToLower(name)]
	return l, ok
}

// Root returns the root landmark.
func (s *Schema) Root() Landmark {
	return s.root
}

// LeftHip returns the landmark used as the left hip for orientation.
func (s *Schema) LeftHip() Landmark {
	return s.leftHip
}

// RightHip returns the landmark used as the right hip for orientation.
func (s *Schema) RightHip() Landmark {
	return s.rightHip
}

// Tree returns the kinematic tree.
func (s *Schema) Tree() *KinematicTree {
	return s.tree
}

// BoneLengths returns a copy of the default bone-length table, or nil if the schema has none.
func (s *Schema) BoneLengths() BoneLengths {
	if s.boneLengths == nil {
		return nil
	}
	return s.boneLengths.Clone()
}

// FixedHeights returns the per-landmark row heights tuned for this schema, or nil.
func (s *Schema) FixedHeights() map[Landmark]int {
	if s.fixedHeights == nil {
		return nil
	}
	return lo.Assign(s.fixedHeights)
}
