package motionimage

import (
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"

	"github.com/Coda-Research-Group/mocap-vae-features-sub000/motion"
)

// rangeWeights weights each joint slot by the sum of its per-axis coordinate spans.
func rangeWeights(seq *motion.Sequence, numJoints int) []float64 {
	ext := motion.SequenceExtremes(seq)
	weights := make([]float64, numJoints)
	for j := range weights {
		if j >= len(ext.JointAxes) {
			break
		}
		for _, r := range ext.JointAxes[j] {
			weights[j] += r.Span()
		}
	}
	return weights
}

func trajectoryWeights(seq *motion.Sequence, numJoints int) []float64 {
	weights := make([]float64, numJoints)
	copy(weights, motion.TrajectoryLengths(seq))
	return weights
}

// DatasetTrajectoryWeights returns, per joint slot, the mean path length travelled by the joint
// across every non-empty sequence of a dataset. The result is meant to be computed once and
// shared by every encoder using the global trajectory height policy.
func DatasetTrajectoryWeights(seqs ...*motion.Sequence) ([]float64, error) {
	var perJoint [][]float64
	for _, seq := range seqs {
		if seq.Len() == 0 {
			continue
		}
		lengths := motion.TrajectoryLengths(seq)
		if perJoint == nil {
			perJoint = make([][]float64, len(lengths))
		} else if len(lengths) != len(perJoint) {
			return nil, errors.Errorf("sequence %q has %d joints, expected %d", seq.Label(), len(lengths), len(perJoint))
		}
		for j, l := range lengths {
			perJoint[j] = append(perJoint[j], l)
		}
	}
	if perJoint == nil {
		return nil, errors.New("cannot compute trajectory weights without any poses")
	}
	weights := make([]float64, len(perJoint))
	for j, values := range perJoint {
		mean, err := stats.Mean(values)
		if err != nil {
			return nil, errors.Wrapf(err, "mean trajectory of joint slot %d", j)
		}
		weights[j] = mean
	}
	return weights, nil
}
