package skeleton

import (
	"errors"
	"fmt"
)

var errNoParent = errors.New("no parent")

// Edge is a directed bone of the kinematic tree, from Parent towards the extremity.
type Edge struct {
	Parent Landmark
	Child  Landmark
}

// Bone returns the unordered bone covered by this edge.
func (e Edge) Bone() Bone {
	return NewBone(e.Parent, e.Child)
}

// KinematicTree is a rooted parent to ordered children joint topology. It is built by
// repeatedly attaching new children to landmarks already present, so it can never contain a
// cycle or a second root.
type KinematicTree struct {
	root     Landmark
	parents  map[Landmark]Landmark
	children map[Landmark][]Landmark
}

// NewKinematicTree creates a tree that only contains its root.
func NewKinematicTree(root Landmark) *KinematicTree {
	return &KinematicTree{
		root:     root,
		parents:  map[Landmark]Landmark{},
		children: map[Landmark][]Landmark{},
	}
}

// Root returns the root landmark of the tree.
func (kt *KinematicTree) Root() Landmark {
	return kt.root
}

// Contains reports whether the landmark is part of the tree.
func (kt *KinematicTree) Contains(l Landmark) bool {
	if l == kt.root {
		return true
	}
	_, ok := kt.parents[l]
	return ok
}

// AddChild attaches child below parent. Children keep their insertion order.
func (kt *KinematicTree) AddChild(parent, child Landmark) error {
	if !kt.Contains(parent) {
		return fmt.Errorf("parent landmark %d not in kinematic tree", parent)
	}
	if kt.Contains(child) {
		return fmt.Errorf("landmark %d already in kinematic tree", child)
	}
	kt.parents[child] = parent
	kt.children[parent] = append(kt.children[parent], child)
	return nil
}

// Chain attaches each landmark as a child of the one before it, starting below from.
func (kt *KinematicTree) Chain(from Landmark, chain ...Landmark) error {
	parent := from
	for _, child := range chain {
		if err := kt.AddChild(parent, child); err != nil {
			return err
		}
		parent = child
	}
	return nil
}

// Parent returns the parent of the landmark. The root has no parent.
func (kt *KinematicTree) Parent(l Landmark) (Landmark, error) {
	if !kt.Contains(l) {
		return 0, fmt.Errorf("landmark %d not in kinematic tree", l)
	}
	if l == kt.root {
		return 0, errNoParent
	}
	return kt.parents[l], nil
}

// Children returns the direct children of the landmark in insertion order.
func (kt *KinematicTree) Children(l Landmark) []Landmark {
	return append([]Landmark(nil), kt.children[l]...)
}

// Descendants returns every landmark below l in depth-first pre-order, excluding l.
func (kt *KinematicTree) Descendants(l Landmark) []Landmark {
	var out []Landmark
	var walk func(Landmark)
	walk = func(cur Landmark) {
		for _, child := range kt.children[cur] {
			out = append(out, child)
			walk(child)
		}
	}
	walk(l)
	return out
}

// Landmarks returns all landmarks of the tree in depth-first pre-order, root first.
func (kt *KinematicTree) Landmarks() []Landmark {
	return append([]Landmark{kt.root}, kt.Descendants(kt.root)...)
}

// Edges returns the bones of the tree in depth-first pre-order starting at the root's direct
// children. For the HDM05 skeleton this yields left leg, right leg, spine and head, left arm,
// right arm.
func (kt *KinematicTree) Edges() []Edge {
	var out []Edge
	var walk func(Landmark)
	walk = func(cur Landmark) {
		for _, child := range kt.children[cur] {
			out = append(out, Edge{Parent: cur, Child: child})
			walk(child)
		}
	}
	walk(kt.root)
	return out
}

// Len returns the number of landmarks in the tree.
func (kt *KinematicTree) Len() int {
	return len(kt.parents) + 1
}
