package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.viam.com/test"

	"github.com/Coda-Research-Group/mocap-vae-features-sub000/motionimage"
	"github.com/Coda-Research-Group/mocap-vae-features-sub000/skeleton"
)

const fullConfig = `{
	"schema": "HDM05",
	"resample": {"original_rate": 120, "reduced_rate": 12},
	"position": {"center_by_first_pose_only": true},
	"orientation": {},
	"skeleton_size": {"bone_lengths": {"lfemur:ltibia": 8.5}},
	"encoder": {
		"bounds_mode": "sequence_joint",
		"fixed_width": 64,
		"initial_random_shift": true,
		"height_policy": "bone_interpolated",
		"min_bone_points": 2
	},
	"parallelism": 3,
	"seed": 11
}`

func TestFromReaderValidate(t *testing.T) {
	_, err := FromReader("somepath", strings.NewReader(""))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "EOF")

	_, err = FromReader("somepath", strings.NewReader(`{"resample": 1}`))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "unmarshal")

	conf, err := FromReader("somepath", strings.NewReader(`{}`))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, conf, test.ShouldResemble, &Config{ConfigFilePath: "somepath"})

	_, err = FromReader("somepath", strings.NewReader(`{"schema": "cmu"}`))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, `unknown schema "cmu"`)

	_, err = FromReader("somepath", strings.NewReader(`{"resample": {"reduced_rate": 12}}`))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, `"original_rate" is required`)

	_, err = FromReader("somepath", strings.NewReader(`{"parallelism": -1}`))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "parallelism")

	_, err = FromReader("somepath", strings.NewReader(`{"skeleton_size": {"bone_lengths": {"lfemur": 8}}}`))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "parent:child")

	_, err = FromReader("somepath", strings.NewReader(`{"skeleton_size": {"bone_lengths": {"lfemur:elbow": 8}}}`))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, `unknown landmark "elbow"`)

	_, err = FromReader("somepath", strings.NewReader(`{"encoder": {"fixed_widht": 3}}`))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "fixed_widht")

	_, err = FromReader("somepath", strings.NewReader(`{"encoder": {"initial_random_shift": true}}`))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, `"fixed_width" is required`)

	_, err = FromReader("somepath", strings.NewReader(`{"encoder": {"fixed_width": 10.7}}`))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "expected an integer but got 10.7")

	conf, err = FromReader("somepath", strings.NewReader(`{"encoder": {"fixed_width": 10.0, "fixed_max": 10.7}}`))
	test.That(t, err, test.ShouldBeNil)
	enc, err := conf.EncoderConfig()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, enc.FixedWidth, test.ShouldEqual, 10)
	test.That(t, *enc.FixedMax, test.ShouldEqual, 10.7)
}

func TestFullConfig(t *testing.T) {
	conf, err := FromReader("full.json", strings.NewReader(fullConfig))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, conf.Parallelism, test.ShouldEqual, 3)
	test.That(t, *conf.Seed, test.ShouldEqual, int64(11))

	schema, err := conf.LoadSchema()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, schema.Name(), test.ShouldEqual, "hdm05")

	chain, err := conf.ChainConfig(schema)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, chain.OriginalRate, test.ShouldEqual, 120)
	test.That(t, chain.ReducedRate, test.ShouldEqual, 12)
	test.That(t, chain.CenterPosition, test.ShouldBeTrue)
	test.That(t, chain.CenterByFirstPoseOnly, test.ShouldBeTrue)
	test.That(t, chain.NormalizeOrientation, test.ShouldBeTrue)
	test.That(t, chain.RotateByFirstPoseOnly, test.ShouldBeFalse)
	test.That(t, chain.NormalizeSkeletonSize, test.ShouldBeTrue)
	length, ok := chain.BoneLengths.Length(skeleton.LTibia, skeleton.LFemur)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, length, test.ShouldEqual, 8.5)

	enc, err := conf.EncoderConfig()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, enc, test.ShouldResemble, &motionimage.Config{
		BoundsMode:         motionimage.BoundsSequenceJoint,
		FixedWidth:         64,
		InitialRandomShift: true,
		HeightPolicy:       motionimage.HeightBoneInterpolated,
		MinBonePoints:      2,
	})
}

func TestDisabledStages(t *testing.T) {
	conf, err := FromReader("", strings.NewReader(`{"encoder": {"fixed_min": -5, "fixed_max": 5}}`))
	test.That(t, err, test.ShouldBeNil)
	chain, err := conf.ChainConfig(skeleton.HDM05())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, chain.CenterPosition, test.ShouldBeFalse)
	test.That(t, chain.NormalizeOrientation, test.ShouldBeFalse)
	test.That(t, chain.NormalizeSkeletonSize, test.ShouldBeFalse)
	test.That(t, chain.ReducedRate, test.ShouldEqual, 0)

	enc, err := conf.EncoderConfig()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, *enc.FixedMin, test.ShouldEqual, -5.)
	test.That(t, *enc.FixedMax, test.ShouldEqual, 5.)
}

func TestRead(t *testing.T) {
	t.Setenv("MOCAP_REDUCED_RATE", "30")
	path := filepath.Join(t.TempDir(), "pipeline.json")
	data := `{"resample": {"original_rate": 120, "reduced_rate": ${MOCAP_REDUCED_RATE}}}`
	test.That(t, os.WriteFile(path, []byte(data), 0o600), test.ShouldBeNil)

	conf, err := Read(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, conf.ConfigFilePath, test.ShouldEqual, path)
	test.That(t, conf.Resample, test.ShouldResemble, Resample{OriginalRate: 120, ReducedRate: 30})

	_, err = Read(filepath.Join(t.TempDir(), "missing.json"))
	test.That(t, err, test.ShouldNotBeNil)
}

func TestDocumentSchemas(t *testing.T) {
	test.That(t, DocumentSchemas, test.ShouldContainKey, PipelineDocument)
	test.That(t, DocumentSchemas, test.ShouldContainKey, EncoderDocument)

	pipelineSchema, err := json.Marshal(DocumentSchemas[PipelineDocument])
	test.That(t, err, test.ShouldBeNil)
	test.That(t, string(pipelineSchema), test.ShouldContainSubstring, `"skeleton_size"`)
	test.That(t, string(pipelineSchema), test.ShouldNotContainSubstring, "ConfigFilePath")

	encoderSchema, err := json.Marshal(DocumentSchemas[EncoderDocument])
	test.That(t, err, test.ShouldBeNil)
	test.That(t, string(encoderSchema), test.ShouldContainSubstring, `"fixed_width"`)
	test.That(t, string(encoderSchema), test.ShouldContainSubstring, `"height_policy"`)
}
