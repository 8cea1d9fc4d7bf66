package skeleton

import "sync"

// HDM05 landmark ids, following the 31 joint ASF skeleton of the HDM05 motion capture database.
const (
	Root Landmark = iota + 1
	LHipJoint
	LFemur
	LTibia
	LFoot
	LToes
	RHipJoint
	RFemur
	RTibia
	RFoot
	RToes
	LowerBack
	UpperBack
	Thorax
	LowerNeck
	UpperNeck
	Head
	LClavicle
	LHumerus
	LRadius
	LWrist
	LHand
	LFingers
	LThumb
	RClavicle
	RHumerus
	RRadius
	RWrist
	RHand
	RFingers
	RThumb
)

var hdm05Names = map[Landmark]string{
	Root:      "root",
	LHipJoint: "lhipjoint",
	LFemur:    "lfemur",
	LTibia:    "ltibia",
	LFoot:     "lfoot",
	LToes:     "ltoes",
	RHipJoint: "rhipjoint",
	RFemur:    "rfemur",
	RTibia:    "rtibia",
	RFoot:     "rfoot",
	RToes:     "rtoes",
	LowerBack: "lowerback",
	UpperBack: "upperback",
	Thorax:    "thorax",
	LowerNeck: "lowerneck",
	UpperNeck: "upperneck",
	Head:      "head",
	LClavicle: "lclavicle",
	LHumerus:  "lhumerus",
	LRadius:   "lradius",
	LWrist:    "lwrist",
	LHand:     "lhand",
	LFingers:  "lfingers",
	LThumb:    "lthumb",
	RClavicle: "rclavicle",
	RHumerus:  "rhumerus",
	RRadius:   "rradius",
	RWrist:    "rwrist",
	RHand:     "rhand",
	RFingers:  "rfingers",
	RThumb:    "rthumb",
}

// hdm05BoneLengths are population averages over the HDM05 actors, in the database's units.
var hdm05BoneLengths = map[[2]Landmark]float64{
	{Root, LHipJoint}:      2.45,
	{LHipJoint, LFemur}:    7.23,
	{LFemur, LTibia}:       7.41,
	{LTibia, LFoot}:        2.39,
	{LFoot, LToes}:         1.18,
	{Root, RHipJoint}:      2.45,
	{RHipJoint, RFemur}:    7.23,
	{RFemur, RTibia}:       7.41,
	{RTibia, RFoot}:        2.39,
	{RFoot, RToes}:         1.18,
	{Root, LowerBack}:      2.05,
	{LowerBack, UpperBack}: 2.09,
	{UpperBack, Thorax}:    2.02,
	{Thorax, LowerNeck}:    1.64,
	{LowerNeck, UpperNeck}: 1.65,
	{UpperNeck, Head}:      1.62,
	{Thorax, LClavicle}:    3.61,
	{LClavicle, LHumerus}:  5.21,
	{LHumerus, LRadius}:    3.42,
	{LRadius, LWrist}:      1.71,
	{LWrist, LHand}:        0.71,
	{LHand, LFingers}:      0.57,
	{LWrist, LThumb}:       0.83,
	{Thorax, RClavicle}:    3.61,
	{RClavicle, RHumerus}:  5.21,
	{RHumerus, RRadius}:    3.42,
	{RRadius, RWrist}:      1.71,
	{RWrist, RHand}:        0.71,
	{RHand, RFingers}:      0.57,
	{RWrist, RThumb}:       0.83,
}

// hdm05FixedHeights sums to 256.
var hdm05FixedHeights = map[Landmark]int{
	Root: 8,

	LHipJoint: 6, LFemur: 8, LTibia: 10, LFoot: 12, LToes: 10,
	RHipJoint: 6, RFemur: 8, RTibia: 10, RFoot: 12, RToes: 10,

	LowerBack: 6, UpperBack: 6, Thorax: 6, LowerNeck: 6, UpperNeck: 6, Head: 10,

	LClavicle: 6, LHumerus: 8, LRadius: 10, LWrist: 12, LHand: 10, LFingers: 6, LThumb: 6,
	RClavicle: 6, RHumerus: 8, RRadius: 10, RWrist: 12, RHand: 10, RFingers: 6, RThumb: 6,
}

var (
	hdm05Once   sync.Once
	hdm05Schema *Schema
)

// HDM05Tree builds the HDM05 kinematic tree. Children are ordered so that a depth-first walk
// visits left leg, right leg, spine and head, left arm and then right arm.
func HDM05Tree() *KinematicTree {
	tree := NewKinematicTree(Root)
	for _, chain := range [][]Landmark{
		{LHipJoint, LFemur, LTibia, LFoot, LToes},
		{RHipJoint, RFemur, RTibia, RFoot, RToes},
		{LowerBack, UpperBack, Thorax, LowerNeck, UpperNeck, Head},
	} {
		mustChain(tree, Root, chain...)
	}
	mustChain(tree, Thorax, LClavicle, LHumerus, LRadius, LWrist, LHand, LFingers)
	mustChain(tree, LWrist, LThumb)
	mustChain(tree, Thorax, RClavicle, RHumerus, RRadius, RWrist, RHand, RFingers)
	mustChain(tree, RWrist, RThumb)
	return tree
}

func mustChain(tree *KinematicTree, from Landmark, chain ...Landmark) {
	if err := tree.Chain(from, chain...); err != nil {
		panic(err)
	}
}

// HDM05BoneLengths returns the average HDM05 bone-length table.
func HDM05BoneLengths() BoneLengths {
	out := make(BoneLengths, len(hdm05BoneLengths))
	for pair, length := range hdm05BoneLengths {
		out.Set(pair[0], pair[1], length)
	}
	return out
}

// HDM05 returns the shared 31 joint HDM05 schema.
func HDM05() *Schema {
	hdm05Once.Do(func() {
		landmarks := make([]Landmark, 0, len(hdm05Names))
		for l := Root; l <= RThumb; l++ {
			landmarks = append(landmarks, l)
		}
		schema, err := NewSchema(SchemaConfig{
			Name:         "hdm05",
			Landmarks:    landmarks,
			Names:        hdm05Names,
			Root:         Root,
			LeftHip:      LHipJoint,
			RightHip:     RHipJoint,
			Tree:         HDM05Tree(),
			BoneLengths:  HDM05BoneLengths(),
			FixedHeights: hdm05FixedHeights,
		})
		if err != nil {
			panic(err)
		}
		hdm05Schema = schema
	})
	return hdm05Schema
}

// ByName returns a built-in schema by name.
func ByName(name string) (*Schema, bool) {
	switch name {
	case "", "hdm05":
		return HDM05(), true
	}
	return nil, false
}
