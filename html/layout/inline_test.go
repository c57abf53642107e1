package layout

import (
	"math"
	"testing"

	pr "github.com/nichevision/flyingsaucer-sub000/css/properties"
	bo "github.com/nichevision/flyingsaucer-sub000/html/boxes"
	tu "github.com/nichevision/flyingsaucer-sub000/utils/testutils"
)

func firstP(t *testing.T, root *bo.BlockBox) *bo.BlockBox {
	t.Helper()
	return bodyChildren(t, root)[0]
}

func TestLineBreaking(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	p := firstP(t, renderFlow(t, `<p>aaa bbb ccc</p>`, 96))
	tu.AssertEqual(t, lineTexts(p), []string{"aaa", "bbb", "ccc"})
	for i, line := range p.Lines() {
		tu.AssertEqual(t, line.Y, 16*i)
	}
	tu.AssertEqual(t, p.Height, 48)

	// an unbreakable word overflows
	p = firstP(t, renderFlow(t, `<p>aaaaaaaa b</p>`, 96))
	tu.AssertEqual(t, lineTexts(p), []string{"aaaaaaaa", "b"})
}

func TestBreakAnywhere(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	p := firstP(t, renderFlow(t, `<p style="word-wrap: break-word">aaaaaaaa</p>`, 96))
	tu.AssertEqual(t, lineTexts(p), []string{"aaaaaa", "aa"})
}

func TestWhiteSpace(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	p := firstP(t, renderFlow(t, "<pre>a  b\ncd\n\nef</pre>", 400))
	tu.AssertEqual(t, lineTexts(p), []string{"a  b", "cd", "", "ef"})
	tu.AssertEqual(t, p.Lines()[0].EndsOnNL, true)
	tu.AssertEqual(t, p.Height, 64)

	p = firstP(t, renderFlow(t, `<p style="white-space: nowrap">aaa bbb ccc</p>`, 96))
	tu.AssertEqual(t, lineTexts(p), []string{"aaa bbb ccc"})

	p = firstP(t, renderFlow(t, `<p>ab<br>cd</p>`, 400))
	tu.AssertEqual(t, lineTexts(p), []string{"ab", "cd"})
}

func TestTextAlign(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	for _, test := range []struct {
		align string
		x     int
	}{
		{"left", 0},
		{"right", 128},
		{"center", 64},
	} {
		p := firstP(t, renderFlow(t, `<p style="text-align: `+test.align+`">ab</p>`, 160))
		line := p.Lines()[0]
		tu.AssertEqual(t, line.InlineChildren()[0].Box().X, test.x)
	}
}

func TestTextIndent(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	p := firstP(t, renderFlow(t, `<p style="text-indent: 32px">aaa bbb</p>`, 112))
	lines := p.Lines()
	tu.AssertEqual(t, lineTexts(p), []string{"aaa", "bbb"})
	tu.AssertEqual(t, lines[0].ContentStart, 32)
	tu.AssertEqual(t, lines[0].InlineChildren()[0].Box().X, 32)
	tu.AssertEqual(t, lines[1].ContentStart, 0)
}

func TestJustification(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	p := firstP(t, renderFlow(t, `<p style="text-align: justify">aa <b>bb</b> cc dd</p>`, 160))
	lines := p.Lines()
	tu.AssertEqual(t, len(lines), 2)

	total := 0
	for _, text := range collectTexts(lines[0].InlineChildren(), nil) {
		total += text.ContentWidth
	}
	tu.AssertEqual(t, total, 160)
	tu.AssertEqual(t, lines[0].Justification != nil, true)
	tu.AssertEqual(t, lines[0].Justification.SpaceAdjust, 32*spaceShare/2)
	if adjust := lines[0].Justification.NonSpaceAdjust; math.Abs(adjust-1.28) > 1e-9 {
		t.Fatalf("unexpected non space adjustment %g", adjust)
	}

	// the last line is not justified
	tu.AssertEqual(t, lines[1].Justification == nil, true)
	tu.AssertEqual(t, lineTexts(p)[1], "dd")
}

func TestJustifyLineConservation(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	for toAdd := 1; toAdd < 50; toAdd += 7 {
		line := &bo.LineBox{}
		var texts []*bo.InlineText
		for _, s := range []string{"ab c", "d", " efg h"} {
			text := &bo.InlineText{Text: s}
			text.ContentWidth = 16 * len(s)
			texts = append(texts, text)
			line.AddChild(text)
		}
		justifyLine(line, toAdd)

		total := 0
		for _, text := range texts {
			total += text.ContentWidth
		}
		tu.AssertEqual(t, total, 16*11+toAdd)
	}
}

func TestInlineMarginBorderPadding(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	p := firstP(t, renderFlow(t, `<p>a<span style="padding: 0 4px; margin-left: 2px">bb</span>c</p>`, 400))
	line := p.Lines()[0]
	children := line.InlineChildren()
	// anonymous "a" fragment, span, anonymous "c" fragment
	tu.AssertEqual(t, len(children), 3)
	span := children[1].(*bo.InlineLayoutBox)
	tu.AssertEqual(t, span.X, 16)
	tu.AssertEqual(t, span.LeftMBP, 6)
	tu.AssertEqual(t, span.RightMBP, 4)
	tu.AssertEqual(t, span.ContentWidth, 32)
	tu.AssertEqual(t, children[2].Box().X, 16+6+32+4)
}

func TestInlineSplitAcrossLines(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	p := firstP(t, renderFlow(t, `<p><span style="padding: 0 8px">aaa bbb</span></p>`, 96))
	lines := p.Lines()
	tu.AssertEqual(t, len(lines), 2)
	first := lines[0].InlineChildren()[0].(*bo.InlineLayoutBox)
	second := lines[1].InlineChildren()[0].(*bo.InlineLayoutBox)
	tu.AssertEqual(t, first.StartsHere, true)
	tu.AssertEqual(t, first.EndsHere, false)
	tu.AssertEqual(t, first.LeftMBP, 8)
	tu.AssertEqual(t, first.RightMBP, 0)
	tu.AssertEqual(t, second.StartsHere, false)
	tu.AssertEqual(t, second.EndsHere, true)
	tu.AssertEqual(t, second.LeftMBP, 0)
	tu.AssertEqual(t, second.RightMBP, 8)
	tu.AssertEqual(t, first.Source, second.Source)
}

func TestVerticalAlign(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	// the superscript is raised by a third of the parent font size
	p := firstP(t, renderFlow(t, `<p>a<span style="vertical-align: super">b</span></p>`, 400))
	line := p.Lines()[0]
	sup := line.InlineChildren()[1].(*bo.InlineLayoutBox)
	raise := 5 // round(16 / 3)
	tu.AssertEqual(t, line.Height, 16+raise)
	tu.AssertEqual(t, line.Baseline, 13+raise)
	tu.AssertEqual(t, sup.Y, 0)
	tu.AssertEqual(t, line.InlineChildren()[0].Box().Y, raise)

	// a larger font increases the line height
	p = firstP(t, renderFlow(t, `<p>a<span style="font-size: 32px">b</span></p>`, 400))
	line = p.Lines()[0]
	tu.AssertEqual(t, line.Height, 32)
	tu.AssertEqual(t, line.Baseline, 26)

	// line-height is centered around the text
	p = firstP(t, renderFlow(t, `<p style="line-height: 30px">a</p>`, 400))
	line = p.Lines()[0]
	tu.AssertEqual(t, line.Height, 30)
	tu.AssertEqual(t, line.Baseline, 13+7)
}

func TestTextDecorations(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	p := firstP(t, renderFlow(t, `<p>a<u>b</u></p>`, 400))
	u := p.Lines()[0].InlineChildren()[1].(*bo.InlineLayoutBox)
	tu.AssertEqual(t, u.TextDecorations, []bo.TextDecoration{
		{Kind: pr.DecorationUnderline, Offset: 13 + 2, Thickness: 1},
	})
}

func TestInlineBlock(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	p := firstP(t, renderFlow(t, `<p>aa<span style="display: inline-block; width: 64px; height: 30px"></span>b</p>`, 400))
	line := p.Lines()[0]
	children := line.InlineChildren()
	ib := children[1].(*bo.BlockBox)
	tu.AssertEqual(t, ib.X, 32)
	tu.AssertEqual(t, ib.Width(), 64)
	// without line, its bottom margin edge sits on the baseline
	tu.AssertEqual(t, line.Baseline, 30)
	tu.AssertEqual(t, ib.Y, 0)
	tu.AssertEqual(t, line.Height, 33)
	tu.AssertEqual(t, children[2].Box().X, 96)

	// an inline-block not fitting starts a new line
	p = firstP(t, renderFlow(t, `<p>aaaa<span style="display: inline-block; width: 64px; height: 10px"></span></p>`, 100))
	lines := p.Lines()
	tu.AssertEqual(t, len(lines), 2)
	tu.AssertEqual(t, lines[1].InlineChildren()[0].Box().X, 0)
}

func TestShrinkToFit(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	p := firstP(t, renderFlow(t, `<p><span style="display: inline-block">aa bbb</span></p>`, 400))
	ib := p.Lines()[0].InlineChildren()[0].(*bo.BlockBox)
	tu.AssertEqual(t, ib.ContentWidth, 96)

	// narrower than the preferred width, but not than the longest word
	p = firstP(t, renderFlow(t, `<p><span style="display: inline-block">aa bbb</span></p>`, 16))
	ib = p.Lines()[0].InlineChildren()[0].(*bo.BlockBox)
	tu.AssertEqual(t, ib.ContentWidth, 48)
	tu.AssertEqual(t, lineTexts(ib), []string{"aa", "bbb"})
}

func TestFirstLineAndLetter(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	p := firstP(t, renderFlow(t, `<style>p::first-line { font-size: 32px } p::first-letter { font-size: 48px }</style><p>abc def</p>`, 160))
	lines := p.Lines()
	tu.AssertEqual(t, lineTexts(p), []string{"abc", "def"})

	anon := lines[0].InlineChildren()[0].(*bo.InlineLayoutBox)
	tu.AssertEqual(t, anon.Style.Font.Size, pr.Fl(32))
	letter := anon.Children()[0].(*bo.InlineLayoutBox)
	tu.AssertEqual(t, letter.PseudoType, "first-letter")
	tu.AssertEqual(t, letter.ContentWidth, 48)

	second := lines[1].InlineChildren()[0].(*bo.InlineLayoutBox)
	tu.AssertEqual(t, second.Style.Font.Size, pr.Fl(16))
}

func TestListMarker(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	root := renderFlow(t, `<ol style="margin: 0"><li>a</li><li>b</li></ol>`, 400)
	ol := bodyChildren(t, root)[0]
	for i, child := range ol.Children() {
		li := child.(*bo.BlockBox)
		line := li.Lines()[0]
		tu.AssertEqual(t, line.Marker != nil, true)
		tu.AssertEqual(t, line.Marker.X, -line.Marker.Width)
		tu.AssertEqual(t, li.Y, 16*i)
	}
}
