package normalize

import (
	"math"

	"github.com/Coda-Research-Group/mocap-vae-features-sub000/motion"
	"github.com/Coda-Research-Group/mocap-vae-features-sub000/skeleton"
)

// YawAngle returns the rotation about the vertical axis that turns the hip line of the pose
// onto the Z axis: atan((left.x − right.x) / (left.z − right.z)), or 0 when the hips have the
// same Z coordinate.
func YawAngle(pose *motion.Pose, leftHipSlot, rightHipSlot int) float64 {
	left, right := pose.Joint(leftHipSlot), pose.Joint(rightHipSlot)
	den := left.Z - right.Z
	if den == 0 {
		return 0
	}
	return math.Atan((left.X - right.X) / den)
}

// RotatePose rotates every joint of the pose about the vertical axis in place.
func RotatePose(pose *motion.Pose, angle float64) {
	pose.RotateY(angle)
}

// OrientationNormalizer rotates poses about the vertical axis to a canonical facing direction.
type OrientationNormalizer struct {
	leftHipSlot   int
	rightHipSlot  int
	firstPoseOnly bool
}

// NewOrientationNormalizer returns a normalizer using the schema's hip landmarks.
func NewOrientationNormalizer(schema *skeleton.Schema, firstPoseOnly bool) *OrientationNormalizer {
	return &OrientationNormalizer{
		leftHipSlot:   schema.MustSlot(schema.LeftHip()),
		rightHipSlot:  schema.MustSlot(schema.RightHip()),
		firstPoseOnly: firstPoseOnly,
	}
}

// Normalize rotates every pose by its own yaw angle, or by the yaw angle of frame 0 when
// rotating by the first pose only. The result is then turned by a quarter turn into the side
// view; in first-pose-only mode a half turn is added first whenever the left hip of frame 0
// ends up in front of the right hip.
func (n *OrientationNormalizer) Normalize(seq *motion.Sequence) *motion.Sequence {
	out := seq.Duplicate(true)
	if out.Len() == 0 {
		return out
	}
	angle := YawAngle(out.Pose(0), n.leftHipSlot, n.rightHipSlot)
	for i, p := range out.Poses() {
		if !n.firstPoseOnly && i > 0 {
			angle = YawAngle(p, n.leftHipSlot, n.rightHipSlot)
		}
		RotatePose(p, angle)
	}

	first := out.Pose(0)
	flip := n.firstPoseOnly && first.Joint(n.leftHipSlot).Z > first.Joint(n.rightHipSlot).Z
	for _, p := range out.Poses() {
		if flip {
			RotatePose(p, math.Pi)
		}
		RotatePose(p, math.Pi/2)
	}
	return out
}
