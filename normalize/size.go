package normalize

import (
	"github.com/pkg/errors"

	"github.com/Coda-Research-Group/mocap-vae-features-sub000/motion"
	"github.com/Coda-Research-Group/mocap-vae-features-sub000/skeleton"
)

// sizeEdge is one bone of the kinematic tree resolved to pose slots.
type sizeEdge struct {
	parent, child int
	target        float64
	descendants   []int
}

// SkeletonSizeNormalizer rescales every bone of every pose to its canonical length while
// keeping bone directions. Edges are processed in depth-first pre-order so each parent joint
// is already adjusted when its child bone is measured.
type SkeletonSizeNormalizer struct {
	edges []sizeEdge
}

// NewSkeletonSizeNormalizer resolves the schema's kinematic tree against the bone-length table.
// It fails if any edge of the tree lacks a positive length.
func NewSkeletonSizeNormalizer(schema *skeleton.Schema, lengths skeleton.BoneLengths) (*SkeletonSizeNormalizer, error) {
	tree := schema.Tree()
	if err := lengths.Require(tree); err != nil {
		return nil, errors.Wrap(err, "cannot normalize skeleton size")
	}
	treeEdges := tree.Edges()
	edges := make([]sizeEdge, 0, len(treeEdges))
	for _, e := range treeEdges {
		target, _ := lengths.Length(e.Parent, e.Child)
		edges = append(edges, sizeEdge{
			parent:      schema.MustSlot(e.Parent),
			child:       schema.MustSlot(e.Child),
			target:      target,
			descendants: schema.Slots(tree.Descendants(e.Child)),
		})
	}
	return &SkeletonSizeNormalizer{edges: edges}, nil
}

// Normalize returns a copy of the sequence with every pose resized.
func (n *SkeletonSizeNormalizer) Normalize(seq *motion.Sequence) *motion.Sequence {
	out := seq.Duplicate(true)
	for _, p := range out.Poses() {
		n.normalizePose(p)
	}
	return out
}

func (n *SkeletonSizeNormalizer) normalizePose(p *motion.Pose) {
	for _, e := range n.edges {
		parent, child := p.Joint(e.parent), p.Joint(e.child)
		bone := child.Sub(parent)
		ratio := 0.
		if original := bone.Norm(); original != 0 {
			ratio = e.target / original
		}
		resized := parent.Add(bone.Mul(ratio))
		p.SetJoint(e.child, resized)

		diff := resized.Sub(child)
		for _, d := range e.descendants {
			p.SetJoint(d, p.Joint(d).Add(diff))
		}
	}
}
