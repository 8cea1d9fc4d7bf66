package pipeline

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/golang/geo/r3"
	"go.uber.org/zap"
	"go.viam.com/test"

	"github.com/Coda-Research-Group/mocap-vae-features-sub000/config"
	"github.com/Coda-Research-Group/mocap-vae-features-sub000/logging"
	"github.com/Coda-Research-Group/mocap-vae-features-sub000/motion"
	"github.com/Coda-Research-Group/mocap-vae-features-sub000/skeleton"
)

func readConfig(t *testing.T, data string) *config.Config {
	t.Helper()
	conf, err := config.FromReader("test.json", strings.NewReader(data))
	test.That(t, err, test.ShouldBeNil)
	return conf
}

func randomSequences(r *rand.Rand, n, frames int) []*motion.Sequence {
	joints := skeleton.HDM05().NumJoints()
	seqs := make([]*motion.Sequence, n)
	for i := range seqs {
		poses := make([]*motion.Pose, frames+i)
		for f := range poses {
			p := motion.NewPose(joints)
			for j := 0; j < joints; j++ {
				p.SetJoint(j, r3.Vector{X: r.Float64()*40 - 20, Y: r.Float64() * 30, Z: r.Float64()*40 - 20})
			}
			poses[f] = p
		}
		seqs[i] = motion.NewSequence(fmt.Sprintf("%d_%d", i/2, i), poses)
	}
	return seqs
}

const normalizeAndEncode = `{
	"resample": {"original_rate": 120, "reduced_rate": 60},
	"position": {},
	"orientation": {"rotate_by_first_pose_only": true},
	"skeleton_size": {},
	"encoder": {"bounds_mode": "sequence_joint_axis"},
	"parallelism": 2
}`

func TestRun(t *testing.T) {
	logger, logs := logging.NewObservedTestLogger(t)
	p, err := New(readConfig(t, normalizeAndEncode), logger)
	test.That(t, err, test.ShouldBeNil)

	seqs := randomSequences(rand.New(rand.NewSource(1)), 5, 20)
	results, err := p.Run(context.Background(), seqs)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, results, test.ShouldHaveLength, 5)
	for i, res := range results {
		test.That(t, res.Label, test.ShouldEqual, seqs[i].Label())
		test.That(t, res.Sequence.Len(), test.ShouldEqual, (seqs[i].Len()+1)/2)
		test.That(t, res.Image.Bounds().Dx(), test.ShouldEqual, res.Sequence.Len())
		test.That(t, res.Image.Bounds().Dy(), test.ShouldEqual, 256)

		root := res.Sequence.Pose(0).Joint(0)
		test.That(t, root.Norm(), test.ShouldAlmostEqual, 0, 1e-9)
	}
	test.That(t, logs.FilterMessage("encoded sequences").Len(), test.ShouldEqual, 1)
	encoded := logs.FilterMessage("encoded sequence").FilterField(zap.String("sequence", seqs[3].Label()))
	test.That(t, encoded.Len(), test.ShouldEqual, 1)
	test.That(t, encoded.All()[0].ContextMap()["index"], test.ShouldEqual, int64(3))

	stacked := Stack(results)
	test.That(t, stacked.Bounds().Dx(), test.ShouldEqual, results[4].Image.Bounds().Dx())
	test.That(t, stacked.Bounds().Dy(), test.ShouldEqual, 5*256)

	// inputs are left untouched
	fresh := randomSequences(rand.New(rand.NewSource(1)), 5, 20)
	for i := range seqs {
		test.That(t, seqs[i].Pose(0).Coordinates(), test.ShouldResemble, fresh[i].Pose(0).Coordinates())
	}
}

func TestRunGlobalTrajectory(t *testing.T) {
	p, err := New(readConfig(t, `{"position": {}, "encoder": {"height_policy": "global_trajectory", "min_band_height": 2}}`),
		logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)

	seqs := randomSequences(rand.New(rand.NewSource(2)), 4, 10)
	results, err := p.Run(context.Background(), seqs)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, results, test.ShouldHaveLength, 4)

	first, err := p.Encoder(nil)
	test.That(t, err, test.ShouldBeNil)
	weights := first.HeightPolicy().GlobalWeights
	test.That(t, weights, test.ShouldHaveLength, 31)

	// weights are computed once and reused for later batches
	_, err = p.Run(context.Background(), randomSequences(rand.New(rand.NewSource(3)), 2, 10))
	test.That(t, err, test.ShouldBeNil)
	again, err := p.Encoder(nil)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, again == first, test.ShouldBeTrue)
	test.That(t, again.HeightPolicy().GlobalWeights, test.ShouldResemble, weights)
}

func TestRunSeededShift(t *testing.T) {
	conf := `{"encoder": {"fixed_width": 60, "initial_random_shift": true}, "seed": 5, "parallelism": 1}`
	seqs := randomSequences(rand.New(rand.NewSource(4)), 3, 10)

	run := func() []int {
		p, err := New(readConfig(t, conf), logging.NewTestLogger(t))
		test.That(t, err, test.ShouldBeNil)
		results, err := p.Run(context.Background(), seqs)
		test.That(t, err, test.ShouldBeNil)
		offsets := make([]int, len(results))
		for i, res := range results {
			test.That(t, res.Image.Bounds().Dx(), test.ShouldEqual, 60)
			for x := 0; x < 60; x++ {
				if res.Image.NRGBAAt(x, 0).A != 0 {
					offsets[i] = x
					break
				}
			}
		}
		return offsets
	}
	test.That(t, run(), test.ShouldResemble, run())
}

func TestRunErrors(t *testing.T) {
	logger, logs := logging.NewObservedTestLogger(t)
	p, err := New(readConfig(t, `{"position": {}}`), logger)
	test.That(t, err, test.ShouldBeNil)

	seqs := randomSequences(rand.New(rand.NewSource(5)), 3, 4)
	seqs[1] = motion.NewSequence("bad", []*motion.Pose{motion.NewPose(30)})
	seqs[2] = motion.NewSequence("worse", []*motion.Pose{motion.NewPose(3)})
	_, err = p.Run(context.Background(), seqs)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, `sequence 1: sequence "bad" pose 0 has 30 joints`)
	test.That(t, err.Error(), test.ShouldContainSubstring, `sequence 2: sequence "worse"`)
	failed := logs.FilterMessage("cannot normalize sequence")
	test.That(t, failed.Len(), test.ShouldEqual, 2)
	test.That(t, failed.FilterField(zap.String("sequence", "bad")).Len(), test.ShouldEqual, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.Run(ctx, randomSequences(rand.New(rand.NewSource(6)), 2, 4))
	test.That(t, err, test.ShouldBeError, context.Canceled)

	results, err := p.Run(context.Background(), nil)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, results, test.ShouldBeEmpty)
}

func TestNewErrors(t *testing.T) {
	_, err := New(&config.Config{Schema: "unknown"}, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldNotBeNil)

	_, err = New(&config.Config{Encoder: map[string]interface{}{"height": 10}}, logging.NewTestLogger(t))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "cannot fit 31 joints")
}
