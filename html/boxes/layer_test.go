package boxes

import (
	"testing"

	pr "github.com/nichevision/flyingsaucer-sub000/css/properties"
	tu "github.com/nichevision/flyingsaucer-sub000/utils/testutils"
)

type fixedPages struct{ height int }

func (fp fixedPages) PageStyle(pr.PagePseudo) *pr.PageStyle {
	return &pr.PageStyle{Width: 100, Height: fp.height + 20, Margin: [4]int{10, 10, 10, 10}}
}

func newTestRoot() *Layer {
	root := NewBlockBox(pr.InitialStyle(16).DeriveAnonymous(pr.DisplayBlock), nil, "")
	return NewRootLayer(root, fixedPages{height: 100})
}

func positioned(z *int) *BlockBox {
	style := pr.InitialStyle(16).DeriveAnonymous(pr.DisplayBlock)
	style.Position = pr.PositionAbsolute
	if z != nil {
		style.ZIndex = pr.ZIndex{Value: *z}
	}
	return NewBlockBox(style, nil, "")
}

func TestPageLookup(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	layer := newTestRoot()
	tu.AssertEqual(t, layer.Page(-1) == nil, true)

	page := layer.Page(250)
	tu.AssertEqual(t, page.Index, 2)
	tu.AssertEqual(t, len(layer.Pages()), 3)
	tu.AssertEqual(t, [2]int{page.Top, page.Bottom}, [2]int{200, 300})

	// increasing offsets give increasing pages, each containing the offset
	last := -1
	for y := 0; y < 1000; y += 37 {
		page := layer.Page(y)
		if page.Index < last {
			t.Fatalf("page %d after page %d", page.Index, last)
		}
		if y < page.Top || y >= page.Bottom {
			t.Fatalf("offset %d not in %s", y, page)
		}
		last = page.Index
	}
	tu.AssertEqual(t, len(layer.Pages()), 10)

	// out of order lookups
	tu.AssertEqual(t, layer.Page(0).Index, 0)
	tu.AssertEqual(t, layer.Page(999).Index, 9)
	tu.AssertEqual(t, layer.Page(150).Index, 1)
}

func TestPagePseudo(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	layer := newTestRoot()
	layer.Page(350)
	var got []pr.PagePseudo
	for _, p := range layer.Pages() {
		got = append(got, p.Pseudo)
	}
	tu.AssertEqual(t, got, []pr.PagePseudo{pr.PageFirst, pr.PageLeft, pr.PageRight, pr.PageLeft})
	tu.AssertEqual(t, layer.Pages()[1].IsLeftPage(), true)
	tu.AssertEqual(t, layer.Pages()[2].IsLeftPage(), false)
}

func TestCrossesPageBreak(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	layer := newTestRoot()
	tu.AssertEqual(t, layer.CrossesPageBreak(50, 100), false)
	tu.AssertEqual(t, layer.CrossesPageBreak(50, 101), true)
	tu.AssertEqual(t, layer.CrossesPageBreak(-10, 500), false)

	box := NewBlockBox(pr.InitialStyle(16), nil, "")
	box.AbsY, box.Height = 90, 20
	tu.AssertEqual(t, layer.FirstPage(box).Index, 0)
	tu.AssertEqual(t, layer.LastPageOf(box).Index, 1)
	box.Height = 0
	tu.AssertEqual(t, layer.LastPageOf(box).Index, 0)
}

func TestTrimEmptyPages(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	layer := newTestRoot()
	layer.Page(450)
	tu.AssertEqual(t, len(layer.Pages()), 5)
	layer.TrimEmptyPages(201)
	tu.AssertEqual(t, len(layer.Pages()), 3)
	layer.TrimEmptyPages(0)
	tu.AssertEqual(t, len(layer.Pages()), 1)
	tu.AssertEqual(t, layer.Page(150).Index, 1)
}

func TestPageSequences(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	layer := newTestRoot()
	layer.Page(450)
	start := NewBlockBox(pr.InitialStyle(16), nil, "")
	start.AbsY = 200
	layer.AddPageSequence(start)

	number := func(i int) [2]int {
		n, total := layer.PageNumber(layer.Pages()[i])
		return [2]int{n, total}
	}
	tu.AssertEqual(t, number(1), [2]int{2, 2})
	tu.AssertEqual(t, number(2), [2]int{1, 3})
	tu.AssertEqual(t, number(4), [2]int{3, 3})

	tu.AssertEqual(t, layer.PageSequenceCount(), 1)
	layer.TruncatePageSequences(0)
	tu.AssertEqual(t, number(4), [2]int{5, 5})
}

func TestRunningBlocks(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	layer := newTestRoot()
	layer.Page(450)
	running := func(y int) *BlockBox {
		style := pr.InitialStyle(16).DeriveAnonymous(pr.DisplayBlock)
		style.Position, style.RunningName = pr.PositionRunning, "header"
		b := NewBlockBox(style, nil, "")
		b.StaticAbsY = y
		return b
	}
	// registered out of order
	b3, b1, b2 := running(320), running(110), running(150)
	layer.AddRunningBlock(b3)
	layer.AddRunningBlock(b1)
	layer.AddRunningBlock(b2)

	pages := layer.Pages()
	get := func(page int, which pr.PageElementPosition) *BlockBox {
		return layer.RunningBlock("header", pages[page], which)
	}
	tu.AssertEqual(t, get(0, pr.PageElementFirst) == nil, true)
	tu.AssertEqual(t, get(1, pr.PageElementFirst) == b1, true)
	tu.AssertEqual(t, get(1, pr.PageElementStart) == nil, true)
	tu.AssertEqual(t, get(1, pr.PageElementLast) == b2, true)
	tu.AssertEqual(t, get(1, pr.PageElementLastExcept) == nil, true)
	tu.AssertEqual(t, get(2, pr.PageElementFirst) == b2, true)
	tu.AssertEqual(t, get(2, pr.PageElementLastExcept) == b2, true)
	tu.AssertEqual(t, get(3, pr.PageElementStart) == b2, true)
	tu.AssertEqual(t, get(4, pr.PageElementLast) == b3, true)
	tu.AssertEqual(t, layer.RunningBlock("footer", pages[4], pr.PageElementLast) == nil, true)

	b2.Reset()
	tu.AssertEqual(t, get(1, pr.PageElementLast) == b1, true)
}

func TestStackingGroups(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	root := newTestRoot()
	z := func(v int) *int { return &v }

	auto := NewLayer(root, positioned(nil))
	pos2 := NewLayer(root, positioned(z(2)))
	neg := NewLayer(root, positioned(z(-1)))
	zero := NewLayer(root, positioned(z(0)))
	pos1 := NewLayer(root, positioned(z(1)))
	// not a stacking context: its children are painted by the root
	nested := NewLayer(auto, positioned(z(1)))
	pos1bis := NewLayer(root, positioned(z(1)))

	negative, zeroOrAuto, positive := root.StackingGroups()
	tu.AssertEqual(t, negative, []*Layer{neg})
	tu.AssertEqual(t, len(zeroOrAuto), 2)
	tu.AssertEqual(t, zeroOrAuto[0] == auto && zeroOrAuto[1] == zero, true)
	tu.AssertEqual(t, len(positive), 4)
	tu.AssertEqual(t, positive[0] == nested && positive[1] == pos1 && positive[2] == pos1bis && positive[3] == pos2, true)

	pos1.Detach()
	_, _, positive = root.StackingGroups()
	tu.AssertEqual(t, len(positive), 3)
	tu.AssertEqual(t, pos1.Parent == nil, true)
}
