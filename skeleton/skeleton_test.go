package skeleton

import (
	"testing"

	"go.viam.com/test"
)

func TestKinematicTree(t *testing.T) {
	tree := NewKinematicTree(1)
	test.That(t, tree.Chain(1, 2, 3), test.ShouldBeNil)
	test.That(t, tree.AddChild(2, 4), test.ShouldBeNil)

	test.That(t, tree.AddChild(9, 5), test.ShouldNotBeNil)
	test.That(t, tree.AddChild(3, 4), test.ShouldNotBeNil)
	test.That(t, tree.AddChild(3, 1), test.ShouldNotBeNil)

	test.That(t, tree.Len(), test.ShouldEqual, 4)
	test.That(t, tree.Children(2), test.ShouldResemble, []Landmark{3, 4})
	test.That(t, tree.Descendants(1), test.ShouldResemble, []Landmark{2, 3, 4})
	test.That(t, tree.Landmarks(), test.ShouldResemble, []Landmark{1, 2, 3, 4})
	test.That(t, tree.Edges(), test.ShouldResemble, []Edge{{1, 2}, {2, 3}, {2, 4}})

	parent, err := tree.Parent(4)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, parent, test.ShouldEqual, Landmark(2))
	_, err = tree.Parent(1)
	test.That(t, err, test.ShouldEqual, errNoParent)
	_, err = tree.Parent(7)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestBoneLengths(t *testing.T) {
	bl := BoneLengths{}
	bl.Set(3, 1, 2.5)
	length, ok := bl.Length(1, 3)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, length, test.ShouldEqual, 2.5)
	test.That(t, NewBone(3, 1), test.ShouldResemble, Bone{1, 3})

	tree := NewKinematicTree(1)
	test.That(t, tree.Chain(1, 3, 4, 5), test.ShouldBeNil)
	bl.Set(4, 5, -1)
	err := bl.Require(tree)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "no bone length for (3, 4)")
	test.That(t, err.Error(), test.ShouldContainSubstring, "must be positive")

	merged := bl.Merge(BoneLengths{NewBone(3, 4): 1, NewBone(4, 5): 2})
	test.That(t, merged.Require(tree), test.ShouldBeNil)
	_, ok = bl.Length(3, 4)
	test.That(t, ok, test.ShouldBeFalse)
}

func TestNewSchemaValidation(t *testing.T) {
	tree := NewKinematicTree(10)
	test.That(t, tree.Chain(10, 20, 30), test.ShouldBeNil)

	_, err := NewSchema(SchemaConfig{Landmarks: []Landmark{10, 20, 20}, Root: 10, LeftHip: 20, RightHip: 20, Tree: tree})
	test.That(t, err, test.ShouldNotBeNil)

	_, err = NewSchema(SchemaConfig{Landmarks: []Landmark{10, 20}, Root: 10, LeftHip: 20, RightHip: 20, Tree: tree})
	test.That(t, err, test.ShouldNotBeNil)

	_, err = NewSchema(SchemaConfig{Landmarks: []Landmark{10, 20, 30}, Root: 20, LeftHip: 20, RightHip: 20, Tree: tree})
	test.That(t, err, test.ShouldNotBeNil)

	schema, err := NewSchema(SchemaConfig{
		Name:      "toy",
		Landmarks: []Landmark{30, 10, 20},
		Names:     map[Landmark]string{10: "root", 20: "hip", 30: "Knee"},
		Root:      10,
		LeftHip:   20,
		RightHip:  20,
		Tree:      tree,
	})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, schema.NumJoints(), test.ShouldEqual, 3)
	test.That(t, schema.MustSlot(30), test.ShouldEqual, 0)
	test.That(t, schema.Slots([]Landmark{10, 20}), test.ShouldResemble, []int{1, 2})
	knee, ok := schema.LandmarkByName("knee")
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, knee, test.ShouldEqual, Landmark(30))
	test.That(t, schema.BoneLengths(), test.ShouldBeNil)
	test.That(t, schema.FixedHeights(), test.ShouldBeNil)
}

func TestHDM05(t *testing.T) {
	schema := HDM05()
	test.That(t, schema.NumJoints(), test.ShouldEqual, 31)
	test.That(t, schema.MustSlot(Root), test.ShouldEqual, 0)
	test.That(t, schema.MustSlot(RThumb), test.ShouldEqual, 30)
	test.That(t, schema.LandmarkName(LTibia), test.ShouldEqual, "ltibia")
	test.That(t, schema.Tree().Children(Root), test.ShouldResemble, []Landmark{LHipJoint, RHipJoint, LowerBack})
	test.That(t, schema.Tree().Children(Thorax), test.ShouldResemble, []Landmark{LowerNeck, LClavicle, RClavicle})
	test.That(t, schema.BoneLengths().Require(schema.Tree()), test.ShouldBeNil)

	edges := schema.Tree().Edges()
	test.That(t, len(edges), test.ShouldEqual, 30)
	test.That(t, edges[0], test.ShouldResemble, Edge{Root, LHipJoint})
	test.That(t, edges[5], test.ShouldResemble, Edge{Root, RHipJoint})
	test.That(t, edges[10], test.ShouldResemble, Edge{Root, LowerBack})
	test.That(t, edges[16], test.ShouldResemble, Edge{Thorax, LClavicle})
	test.That(t, edges[23], test.ShouldResemble, Edge{Thorax, RClavicle})

	total := 0
	heights := schema.FixedHeights()
	for _, l := range schema.Landmarks() {
		h, ok := heights[l]
		test.That(t, ok, test.ShouldBeTrue)
		test.That(t, h, test.ShouldBeGreaterThanOrEqualTo, 1)
		total += h
	}
	test.That(t, total, test.ShouldEqual, 256)

	same, ok := ByName("hdm05")
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, same, test.ShouldEqual, schema)
	_, ok = ByName("kinect")
	test.That(t, ok, test.ShouldBeFalse)
}
