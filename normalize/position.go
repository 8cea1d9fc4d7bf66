package normalize

import (
	"github.com/Coda-Research-Group/mocap-vae-features-sub000/motion"
	"github.com/Coda-Research-Group/mocap-vae-features-sub000/skeleton"
)

// PositionNormalizer recenters poses on the root joint.
type PositionNormalizer struct {
	rootSlot int
	// firstPoseOnly computes the shift from frame 0 and applies it to every frame, keeping
	// the global trajectory of the body.
	firstPoseOnly bool
}

// NewPositionNormalizer returns a normalizer centering on the schema root.
func NewPositionNormalizer(schema *skeleton.Schema, firstPoseOnly bool) *PositionNormalizer {
	return &PositionNormalizer{rootSlot: schema.MustSlot(schema.Root()), firstPoseOnly: firstPoseOnly}
}

// Normalize subtracts the root coordinate from every joint.
func (n *PositionNormalizer) Normalize(seq *motion.Sequence) *motion.Sequence {
	out := seq.Duplicate(true)
	if out.Len() == 0 {
		return out
	}
	shift := out.Pose(0).Joint(n.rootSlot).Mul(-1)
	for _, p := range out.Poses() {
		if !n.firstPoseOnly {
			shift = p.Joint(n.rootSlot).Mul(-1)
		}
		p.Translate(shift)
	}
	return out
}
