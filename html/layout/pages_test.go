package layout

import (
	"testing"

	pr "github.com/nichevision/flyingsaucer-sub000/css/properties"
	bo "github.com/nichevision/flyingsaucer-sub000/html/boxes"
	tu "github.com/nichevision/flyingsaucer-sub000/utils/testutils"
)

func lineYs(box *bo.BlockBox) []int {
	var out []int
	for _, line := range box.Lines() {
		out = append(out, line.Y)
	}
	return out
}

func TestLinePageBreak(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	root, _ := renderPages(t, `<div style="height: 90px"></div><p>a</p>`, 100, 100)
	p := bodyChildren(t, root)[1]
	tu.AssertEqual(t, p.AbsY, 90)
	line := p.Lines()[0]
	tu.AssertEqual(t, line.PaginationTranslation, 10)
	tu.AssertEqual(t, line.AbsY, 100)
	tu.AssertEqual(t, p.Height, 26)
	tu.AssertEqual(t, len(root.Layer.Pages()), 2)

	pages := root.Layer.Pages()
	tu.AssertEqual(t, pages[0].Top, 0)
	tu.AssertEqual(t, pages[0].Bottom, 100)
	tu.AssertEqual(t, pages[1].Top, 100)
	tu.AssertEqual(t, pages[0].Pseudo, pr.PageFirst)
	tu.AssertEqual(t, pages[1].Pseudo, pr.PageLeft)
}

func TestTrailingPagesTrimmed(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	root, _ := renderPages(t, `<div style="height: 100px"></div>`, 100, 100)
	tu.AssertEqual(t, len(root.Layer.Pages()), 1)
}

func TestPageBreakInsideAvoid(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	root, c := renderPages(t, `<div style="height: 60px"></div><div style="page-break-inside: avoid; height: 60px"></div>`, 100, 100)
	div := bodyChildren(t, root)[1]
	tu.AssertEqual(t, div.AbsY, 100)
	tu.AssertEqual(t, c.relayouts, 1)

	// the box is too high for any page: it stays in place
	root, c = renderPages(t, `<div style="height: 60px"></div><div style="page-break-inside: avoid; height: 150px"></div>`, 100, 100)
	div = bodyChildren(t, root)[1]
	tu.AssertEqual(t, div.AbsY, 60)
	tu.AssertEqual(t, c.relayouts, 2)
	tu.AssertEqual(t, len(root.Layer.Pages()), 3)
}

func TestPageBreakBefore(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	for _, test := range []struct {
		value string
		absY  int
		pages int
	}{
		{"always", 100, 2},
		{"left", 100, 2},
		{"right", 200, 3},
		{"auto", 10, 1},
	} {
		root, _ := renderPages(t, `<div style="height: 10px"></div><div style="page-break-before: `+test.value+`">a</div>`, 100, 100)
		div := bodyChildren(t, root)[1]
		tu.AssertEqual(t, div.AbsY, test.absY)
		tu.AssertEqual(t, len(root.Layer.Pages()), test.pages)
	}

	// a box at the top of a page is not moved
	root, _ := renderPages(t, `<div style="page-break-before: always">a</div>`, 100, 100)
	tu.AssertEqual(t, bodyChildren(t, root)[0].AbsY, 0)
	tu.AssertEqual(t, len(root.Layer.Pages()), 1)
}

func TestPageBreakAfter(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	root, _ := renderPages(t, `<div style="height: 10px; page-break-after: always"></div><div>a</div>`, 100, 100)
	divs := bodyChildren(t, root)
	tu.AssertEqual(t, divs[1].AbsY, 100)

	root, _ = renderPages(t, `<div style="height: 10px; page-break-after: right"></div><div>a</div>`, 100, 100)
	divs = bodyChildren(t, root)
	tu.AssertEqual(t, divs[1].AbsY, 200)
}

func TestMarginsDoNotCollapseThroughForcedBreaks(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	root, _ := renderPages(t, `<div style="height: 10px; margin-bottom: 20px"></div><div style="page-break-before: always; margin-top: 30px">a</div>`, 100, 100)
	div := bodyChildren(t, root)[1]
	tu.AssertEqual(t, div.AbsY, 100)
	tu.AssertEqual(t, div.Lines()[0].AbsY, 130)
}

func TestOrphans(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	// two lines on the first page are enough
	root, _ := renderPages(t, `<div style="height: 64px"></div><p style="width: 32px">aa bb cc dd</p>`, 100, 100)
	p := bodyChildren(t, root)[1]
	tu.AssertEqual(t, p.AbsY, 64)
	tu.AssertEqual(t, lineYs(p), []int{0, 16, 36, 52})

	// three are required: the paragraph starts on the next page
	root, _ = renderPages(t, `<div style="height: 64px"></div><p style="width: 32px; orphans: 3">aa bb cc dd</p>`, 100, 100)
	p = bodyChildren(t, root)[1]
	tu.AssertEqual(t, p.AbsY, 100)
	tu.AssertEqual(t, lineYs(p), []int{0, 16, 32, 48})
}

func TestWidows(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	root, _ := renderPages(t, `<div style="height: 64px"></div><p style="width: 32px; orphans: 1">aa bb cc</p>`, 100, 100)
	p := bodyChildren(t, root)[1]
	tu.AssertEqual(t, p.AbsY, 64)
	tu.AssertEqual(t, lineYs(p), []int{0, 36, 52})

	// enough lines at the end of the paragraph
	root, _ = renderPages(t, `<div style="height: 64px"></div><p style="width: 32px; orphans: 1; widows: 1">aa bb cc</p>`, 100, 100)
	p = bodyChildren(t, root)[1]
	tu.AssertEqual(t, lineYs(p), []int{0, 16, 36})
}

func TestPageBreakAvoidRun(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	root, c := renderPages(t, `<div style="height: 70px"></div><div style="height: 30px; page-break-after: avoid"></div><div style="height: 50px"></div>`, 100, 100)
	divs := bodyChildren(t, root)
	tu.AssertEqual(t, divs[1].AbsY, 100)
	tu.AssertEqual(t, divs[2].AbsY, 130)
	tu.AssertEqual(t, c.relayouts, 1)

	// the run does not fit in a page: the constraint is dropped
	root, c = renderPages(t, `<div style="height: 100px; page-break-after: avoid"></div><div style="height: 100px"></div>`, 100, 100)
	divs = bodyChildren(t, root)
	tu.AssertEqual(t, divs[0].AbsY, 0)
	tu.AssertEqual(t, divs[1].AbsY, 100)
	tu.AssertEqual(t, c.relayouts, 2)
	tu.AssertEqual(t, len(root.Layer.Pages()), 2)
}

func TestKeepWithInline(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	root, _ := renderPages(t, `<div style="height: 90px"></div><div style="-fs-keep-with-inline: keep; padding-top: 5px">a</div>`, 100, 100)
	div := bodyChildren(t, root)[1]
	tu.AssertEqual(t, div.AbsY, 100)
	tu.AssertEqual(t, div.Lines()[0].AbsY, 105)
}

func marginBoxTexts(page *bo.PageBox) map[pr.MarginArea]string {
	out := map[pr.MarginArea]string{}
	for _, mb := range page.MarginBoxes {
		s := ""
		for _, child := range mb.Box.Children() {
			for _, line := range lineTexts(child.(*bo.BlockBox)) {
				s += line
			}
		}
		out[mb.Area] = s
	}
	return out
}

func TestMarginBoxes(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	root, _ := renderPages(t, `<style>
		@page { margin: 20px; @top-center { content: counter(page) "/" counter(pages) } }
	</style>
	<div style="height: 100px"></div>`, 200, 100)
	pages := root.Layer.Pages()
	tu.AssertEqual(t, len(pages), 2)
	for i, page := range pages {
		tu.AssertEqual(t, page.ContentHeight(), 60)
		tu.AssertEqual(t, marginBoxTexts(page), map[pr.MarginArea]string{
			pr.TopCenter: []string{"1/2", "2/2"}[i],
		})
		box := page.MarginBoxes[0].Box
		tu.AssertEqual(t, box.AbsX, 20+53)
		tu.AssertEqual(t, box.ContentWidth, 53)
		// vertically centered in the 20px margin
		tu.AssertEqual(t, box.AbsY, 2)
	}
}

func TestMarginAreas(t *testing.T) {
	style := &pr.PageStyle{Width: 200, Height: 100, Margin: [4]int{10, 20, 30, 40}}
	tu.AssertEqual(t, marginArea(style, pr.TopLeftCorner), bo.Rect{X: 0, Y: 0, Width: 40, Height: 10})
	tu.AssertEqual(t, marginArea(style, pr.TopLeft), bo.Rect{X: 40, Y: 0, Width: 46, Height: 10})
	tu.AssertEqual(t, marginArea(style, pr.TopRight), bo.Rect{X: 132, Y: 0, Width: 48, Height: 10})
	tu.AssertEqual(t, marginArea(style, pr.BottomRightCorner), bo.Rect{X: 180, Y: 70, Width: 20, Height: 30})
	tu.AssertEqual(t, marginArea(style, pr.LeftMiddle), bo.Rect{X: 0, Y: 30, Width: 40, Height: 20})
	tu.AssertEqual(t, marginArea(style, pr.RightBottom), bo.Rect{X: 180, Y: 50, Width: 20, Height: 20})
}

func TestRunningElements(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	root, _ := renderPages(t, `<style>
		@page { margin: 20px; @top-center { content: element(header) } }
		.header { position: running(header) }
	</style>
	<div class="header">H1</div><div style="height: 100px"></div><div class="header">H2</div><p>x</p>`, 200, 100)
	pages := root.Layer.Pages()
	tu.AssertEqual(t, len(pages), 2)
	tu.AssertEqual(t, marginBoxTexts(pages[0])[pr.TopCenter], "H1")
	tu.AssertEqual(t, marginBoxTexts(pages[1])[pr.TopCenter], "H2")

	// the running elements stay out of the flow
	p := bodyChildren(t, root)[3]
	tu.AssertEqual(t, p.AbsY, 100)
}

func TestPageSequences(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	root, _ := renderPages(t, `<div style="height: 150px"></div><div style="-fs-page-sequence: start; page-break-before: always; height: 150px"></div>`, 100, 100)
	layer := root.Layer
	pages := layer.Pages()
	tu.AssertEqual(t, len(pages), 4)
	var numbers [][2]int
	for _, page := range pages {
		number, total := layer.PageNumber(page)
		numbers = append(numbers, [2]int{number, total})
	}
	tu.AssertEqual(t, numbers, [][2]int{{1, 2}, {2, 2}, {1, 2}, {2, 2}})
}
