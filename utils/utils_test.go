package utils

import (
	"math"
	"math/rand"
	"testing"

	"go.viam.com/test"
)

func TestSampleRandomIntRange(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	seen := map[int]bool{}
	for i := 0; i < 500; i++ {
		v := SampleRandomIntRange(2, 5, r)
		test.That(t, v, test.ShouldBeGreaterThanOrEqualTo, 2)
		test.That(t, v, test.ShouldBeLessThanOrEqualTo, 5)
		seen[v] = true
	}
	test.That(t, len(seen), test.ShouldEqual, 4)
	test.That(t, SampleRandomIntRange(3, 3, r), test.ShouldEqual, 3)
}

func TestClamp(t *testing.T) {
	test.That(t, Clamp(-1, 0, 1), test.ShouldEqual, 0.)
	test.That(t, Clamp(2, 0, 1), test.ShouldEqual, 1.)
	test.That(t, Clamp(.25, 0, 1), test.ShouldEqual, .25)
	test.That(t, math.IsNaN(Clamp(math.NaN(), 0, 1)), test.ShouldBeTrue)
}

type sampleConfig struct {
	Name    string             `json:"name"`
	Count   int                `json:"count"`
	Ratio   *float64           `json:"ratio,omitempty"`
	Lengths map[string]float64 `json:"lengths"`
}

func TestTransformAttributeMap(t *testing.T) {
	attrs := AttributeMap{
		"name":    "walk",
		"count":   3.0,
		"ratio":   0.5,
		"lengths": map[string]interface{}{"lfemur": 7.5},
	}
	conf, err := TransformAttributeMap[*sampleConfig](attrs)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, conf.Name, test.ShouldEqual, "walk")
	test.That(t, conf.Count, test.ShouldEqual, 3)
	test.That(t, *conf.Ratio, test.ShouldEqual, 0.5)
	test.That(t, conf.Lengths, test.ShouldResemble, map[string]float64{"lfemur": 7.5})

	byValue, err := TransformAttributeMap[sampleConfig](AttributeMap{"name": "run"})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, byValue.Name, test.ShouldEqual, "run")
	test.That(t, byValue.Ratio, test.ShouldBeNil)

	_, err = TransformAttributeMap[*sampleConfig](AttributeMap{"name": "x", "zeta": 1, "alpha": 2})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, `unknown attributes ["alpha" "zeta"]`)
}

func TestTransformAttributeMapIntegers(t *testing.T) {
	conf, err := TransformAttributeMap[*sampleConfig](AttributeMap{"count": 12.0})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, conf.Count, test.ShouldEqual, 12)

	_, err = TransformAttributeMap[*sampleConfig](AttributeMap{"count": 10.7})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "expected an integer but got 10.7")

	_, err = TransformAttributeMap[*sampleConfig](AttributeMap{"count": math.Inf(1)})
	test.That(t, err, test.ShouldNotBeNil)

	// fractional values stay valid for float fields
	conf, err = TransformAttributeMap[*sampleConfig](AttributeMap{"ratio": 10.7})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, *conf.Ratio, test.ShouldEqual, 10.7)
}
