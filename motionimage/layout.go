package motionimage

import (
	"image/color"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"github.com/Coda-Research-Group/mocap-vae-features-sub000/skeleton"
)

// Row is one horizontal band of the raster. A joint row has From == To; an interpolated row
// blends the quantized values of joints From and To by T.
type Row struct {
	From, To  int
	T         float64
	Y, Height int
}

// IsJoint reports whether the row renders a joint rather than an interpolated bone point.
func (r Row) IsJoint() bool {
	return r.From == r.To
}

// color returns the row color for the quantized pose q, or opaque black when any channel is
// untracked.
func (r Row) color(q []float64) color.NRGBA {
	var rgb [3]uint8
	for a := range rgb {
		v := q[3*r.From+a]
		if !r.IsJoint() {
			v = (1-r.T)*v + r.T*q[3*r.To+a]
		}
		if math.IsNaN(v) {
			return color.NRGBA{A: 0xff}
		}
		rgb[a] = uint8(math.Round(v * 0xff))
	}
	return color.NRGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 0xff}
}

// Layout places rows top to bottom. Rows do not overlap; Unused rows at the bottom are left
// as background so that the row heights plus Unused always equal Height.
type Layout struct {
	Rows   []Row
	Height int
	Unused int
}

// RowHeights returns the height of every row in order.
func (l *Layout) RowHeights() []int {
	heights := make([]int, len(l.Rows))
	for i, r := range l.Rows {
		heights[i] = r.Height
	}
	return heights
}

// JointRow returns the first row rendering the given joint slot.
func (l *Layout) JointRow(slot int) (Row, bool) {
	for _, r := range l.Rows {
		if r.IsJoint() && r.From == slot {
			return r, true
		}
	}
	return Row{}, false
}

// jointLayout stacks one row per joint slot using the given heights.
func jointLayout(heights []int, height int) *Layout {
	l := &Layout{Rows: make([]Row, 0, len(heights)), Height: height}
	y := 0
	for slot, h := range heights {
		l.Rows = append(l.Rows, Row{From: slot, To: slot, Y: y, Height: h})
		y += h
	}
	l.Unused = height - y
	return l
}

func uniformHeights(numJoints, height int) ([]int, error) {
	h := height / numJoints
	if h < 1 {
		return nil, errors.Errorf("height %d cannot fit %d joints", height, numJoints)
	}
	heights := make([]int, numJoints)
	for j := range heights {
		heights[j] = h
	}
	return heights, nil
}

// weightedHeights gives every band minBand rows and shares the rest of the budget in
// proportion to weights, rounding down. Rows left over from rounding stay unassigned. Without
// any positive weight the rest is shared uniformly.
func weightedHeights(weights []float64, height, minBand int) ([]int, error) {
	n := len(weights)
	if n*minBand > height {
		return nil, errors.Errorf("height %d cannot fit %d bands of at least %d rows", height, n, minBand)
	}
	rest := float64(height - n*minBand)
	shares := make([]float64, n)
	for i, w := range weights {
		if w > 0 && !math.IsInf(w, 0) {
			shares[i] = w
		}
	}
	if total := floats.Sum(shares); total > 0 {
		floats.Scale(rest/total, shares)
	} else {
		for i := range shares {
			shares[i] = math.Floor(rest / float64(n))
		}
	}
	heights := make([]int, n)
	for i, s := range shares {
		heights[i] = minBand + int(math.Floor(s))
	}
	return heights, nil
}

// tableHeights looks every landmark of the schema up in a fixed height table.
func tableHeights(schema *skeleton.Schema, table map[skeleton.Landmark]int, height int) ([]int, error) {
	if table == nil {
		return nil, errors.Errorf("schema %q has no fixed height table", schema.Name())
	}
	heights := make([]int, schema.NumJoints())
	sum := 0
	for slot, l := range schema.Landmarks() {
		h, ok := table[l]
		if !ok {
			return nil, errors.Errorf("no fixed height for landmark %q", schema.LandmarkName(l))
		}
		if h < 1 {
			return nil, errors.Errorf("fixed height for landmark %q must be positive, got %d", schema.LandmarkName(l), h)
		}
		heights[slot] = h
		sum += h
	}
	if sum > height {
		return nil, errors.Errorf("fixed heights sum to %d, more than the height %d", sum, height)
	}
	return heights, nil
}

// boneLayout renders every joint with jointHeight rows and fills the rest of the budget with
// one-row points interpolated along the bones of the kinematic tree, in depth-first order.
// Each bone gets a share of the remaining points proportional to its length among the bones
// not yet assigned, rounded to nearest and never below minPoints; the last bone takes what is
// left, so the whole height is used.
func boneLayout(
	schema *skeleton.Schema,
	lengths skeleton.BoneLengths,
	height, jointHeight, minPoints int,
) (*Layout, error) {
	numJoints := schema.NumJoints()
	edges := schema.Tree().Edges()
	budget := height - numJoints*jointHeight
	if budget < len(edges)*minPoints {
		return nil, errors.Errorf("height %d cannot fit %d joints of %d rows and %d bones of at least %d points",
			height, numJoints, jointHeight, len(edges), minPoints)
	}

	boneLengths := make([]float64, len(edges))
	for i, e := range edges {
		length, ok := lengths.Length(e.Parent, e.Child)
		if !ok {
			return nil, errors.Errorf("no bone length for (%d, %d)", e.Parent, e.Child)
		}
		boneLengths[i] = length
	}

	points := make([]int, len(edges))
	remainingLength := floats.Sum(boneLengths)
	remaining := budget
	for i := range edges {
		after := len(edges) - 1 - i
		if after == 0 {
			points[i] = remaining
			break
		}
		n := 0
		if remainingLength > 0 {
			n = int(math.Round(float64(remaining) * boneLengths[i] / remainingLength))
		}
		if n < minPoints {
			n = minPoints
		}
		if limit := remaining - after*minPoints; n > limit {
			n = limit
		}
		points[i] = n
		remaining -= n
		remainingLength -= boneLengths[i]
	}

	l := &Layout{Height: height}
	placed := make([]bool, numJoints)
	y := 0
	addJoint := func(slot int) {
		placed[slot] = true
		l.Rows = append(l.Rows, Row{From: slot, To: slot, Y: y, Height: jointHeight})
		y += jointHeight
	}
	for i, e := range edges {
		parent, child := schema.MustSlot(e.Parent), schema.MustSlot(e.Child)
		if !placed[parent] {
			addJoint(parent)
		}
		for k := 1; k <= points[i]; k++ {
			t := float64(k) / float64(points[i]+1)
			l.Rows = append(l.Rows, Row{From: parent, To: child, T: t, Y: y, Height: 1})
			y++
		}
		addJoint(child)
	}
	for slot, ok := range placed {
		if !ok {
			addJoint(slot)
		}
	}
	l.Unused = height - y
	return l, nil
}
