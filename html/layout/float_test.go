package layout

import (
	"testing"

	pr "github.com/nichevision/flyingsaucer-sub000/css/properties"
	bo "github.com/nichevision/flyingsaucer-sub000/html/boxes"
	tu "github.com/nichevision/flyingsaucer-sub000/utils/testutils"
)

func floatBox(float pr.Float, width, height int) *bo.BlockBox {
	box := bo.NewBlockBox(&pr.Style{Float: float}, nil, "")
	box.ContentWidth, box.Height = width, height
	return box
}

func placeTestFloat(fm *FloatManager, box *bo.BlockBox, y int) (int, int) {
	x, fy := fm.Position(box.Style, box.Width(), box.Height, 0, 120, y)
	fm.Add(box, x, fy, nil)
	return x, fy
}

func TestFloatManagerPosition(t *testing.T) {
	fm := NewFloatManager(nil)

	x, y := placeTestFloat(fm, floatBox(pr.FloatLeft, 50, 20), 0)
	tu.AssertEqual(t, [2]int{x, y}, [2]int{0, 0})
	x, y = placeTestFloat(fm, floatBox(pr.FloatLeft, 50, 20), 0)
	tu.AssertEqual(t, [2]int{x, y}, [2]int{50, 0})
	// no room left on the right of the second float
	third := floatBox(pr.FloatLeft, 50, 20)
	x, y = placeTestFloat(fm, third, 0)
	tu.AssertEqual(t, [2]int{x, y}, [2]int{0, 20})
	// the right float overlaps the first row of left floats:
	// it goes below the lowest float of both sides
	x, y = placeTestFloat(fm, floatBox(pr.FloatRight, 30, 10), 0)
	tu.AssertEqual(t, [2]int{x, y}, [2]int{90, 40})

	tu.AssertEqual(t, fm.FloatDistances(0, 16, 0, 120), bo.FloatDistances{Left: 100})
	tu.AssertEqual(t, fm.FloatDistances(20, 16, 0, 120), bo.FloatDistances{Left: 50})
	tu.AssertEqual(t, fm.FloatDistances(40, 16, 0, 120), bo.FloatDistances{Right: 30})
	tu.AssertEqual(t, fm.NextBottom(0, 16), 20)
	tu.AssertEqual(t, fm.NextBottom(40, 16), 50)
	tu.AssertEqual(t, fm.NextBottom(50, 16), -1)
	tu.AssertEqual(t, fm.LowestBottom(), 50)

	tu.AssertEqual(t, fm.ClearDelta(&pr.Style{Clear: pr.ClearLeft}, 5), 35)
	tu.AssertEqual(t, fm.ClearDelta(&pr.Style{Clear: pr.ClearRight}, 5), 45)
	tu.AssertEqual(t, fm.ClearDelta(&pr.Style{Clear: pr.ClearBoth}, 50), 0)

	// a reset float is forgotten
	third.Reset()
	tu.AssertEqual(t, len(fm.Floats()), 3)
	tu.AssertEqual(t, fm.ClearDelta(&pr.Style{Clear: pr.ClearLeft}, 0), 20)
}

func TestFloatManagerClear(t *testing.T) {
	fm := NewFloatManager(nil)
	placeTestFloat(fm, floatBox(pr.FloatLeft, 50, 20), 0)

	style := &pr.Style{Float: pr.FloatRight, Clear: pr.ClearLeft}
	x, y := fm.Position(style, 30, 10, 0, 120, 0)
	tu.AssertEqual(t, [2]int{x, y}, [2]int{90, 20})
}

func TestFloatLayout(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	root := renderFlow(t, `<div style="float: left; width: 50px; height: 20px"></div><p>aaa bbb ccc</p>`, 150)
	children := bodyChildren(t, root)
	tu.AssertEqual(t, len(children), 2)
	p := children[1]
	tu.AssertEqual(t, p.Y, 0)
	tu.AssertEqual(t, lineTexts(p), []string{"aaa", "bbb", "ccc"})
	var xs []int
	for _, line := range p.Lines() {
		xs = append(xs, line.X)
	}
	tu.AssertEqual(t, xs, []int{50, 50, 0})
	tu.AssertEqual(t, p.Lines()[0].ContentWidth, 100)

	float := root.Layer.Floats()[0]
	tu.AssertEqual(t, float.AbsX, 0)
	tu.AssertEqual(t, float.AbsY, 0)

	root = renderFlow(t, `<div style="float: right; width: 50px; height: 20px"></div><p>a</p>`, 200)
	float = root.Layer.Floats()[0]
	tu.AssertEqual(t, float.AbsX, 150)
	tu.AssertEqual(t, bodyChildren(t, root)[1].Lines()[0].X, 0)
}

func TestFloatClearance(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	root := renderFlow(t, `<div style="float: left; width: 50px; height: 30px"></div><p style="clear: left">a</p>`, 150)
	p := bodyChildren(t, root)[1]
	tu.AssertEqual(t, p.Clearance, 30)
	tu.AssertEqual(t, p.AbsY, 30)
	tu.AssertEqual(t, p.Lines()[0].X, 0)
	tu.AssertEqual(t, root.Height, 46)
}

func TestFloatShrinkToFit(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	root := renderFlow(t, `<div style="float: left">aa bbb</div>`, 400)
	float := root.Layer.Floats()[0]
	tu.AssertEqual(t, float.ContentWidth, 96)
	tu.AssertEqual(t, float.Height, 16)

	// the float extends the height of the root, which is
	// a block formatting context
	tu.AssertEqual(t, root.Height, 16)
}
