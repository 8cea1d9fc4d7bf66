package normalize

import (
	"github.com/Coda-Research-Group/mocap-vae-features-sub000/motion"
)

// Resampler reduces the frame rate of a sequence by keeping every step-th pose, where
// step = floor(OriginalRate / ReducedRate).
type Resampler struct {
	OriginalRate int
	ReducedRate  int
}

// Normalize returns the resampled sequence. When the rates do not describe a reduction the
// input sequence itself is returned.
func (r *Resampler) Normalize(seq *motion.Sequence) *motion.Sequence {
	if r.ReducedRate <= 0 || r.OriginalRate <= r.ReducedRate {
		return seq
	}
	step := r.OriginalRate / r.ReducedRate
	poses := make([]*motion.Pose, 0, (seq.Len()+step-1)/step)
	for i := 0; i < seq.Len(); i += step {
		poses = append(poses, seq.Pose(i).Clone())
	}
	return motion.NewSequence(seq.Label(), poses)
}
