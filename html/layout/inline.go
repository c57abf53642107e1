package layout

import (
	"strings"

	pr "github.com/nichevision/flyingsaucer-sub000/css/properties"
	bo "github.com/nichevision/flyingsaucer-sub000/html/boxes"
	"github.com/nichevision/flyingsaucer-sub000/text"
)

// inlineFlow breaks the inline content of one block into lines.
type inlineFlow struct {
	c   *layoutContext
	box *bo.BlockBox
	bfc *blockFormattingContext
	// content origin of box, in formatting context coordinates
	cbX, cbY int

	line      *bo.LineBox
	lineStyle *pr.Style // block style used for the current line
	lineCount int
	y         int

	// inline elements open on the current line, with their sources
	open    []*bo.InlineLayoutBox
	sources []*bo.InlineBox

	width, avail int

	// floats not fitting on the current line, placed on the next one
	pendingFloats []*bo.BlockBox
}

// layoutInlineContent breaks the inline content of [box] into lines,
// and sets box.ChildrenHeight.
// See http://www.w3.org/TR/CSS21/visuren.html#inline-formatting
func layoutInlineContent(c *layoutContext, box *bo.BlockBox) {
	f := &inlineFlow{c: c, box: box, bfc: c.bfc()}
	f.cbX, f.cbY = f.bfc.contentOffset(box)
	f.sources = append(f.sources, box.OpenInlines...)
	f.newLine()

	for _, item := range box.InlineContent {
		switch item := item.(type) {
		case *bo.InlineBox:
			f.addInline(item)
		case *bo.BlockBox:
			switch style := item.Style; {
			case style.IsRunning():
				f.line.AddNonFlowContent(item)
			case style.IsAbsolute():
				f.addAbsolute(item)
			case style.IsFloated():
				f.addFloat(item)
			default:
				f.addInlineBlock(item)
			}
		}
	}

	if len(f.pendingFloats) != 0 {
		f.saveLine(false)
		f.newLine()
	}
	f.saveLine(true)

	box.ChildrenHeight = f.y
	lines := box.Lines()
	for i := len(lines) - 1; i >= 0; i-- {
		if line := lines[i]; line.ContainsContent {
			box.Baseline = box.TopMBP + line.Y + line.Baseline
			box.HasBaseline = true
			break
		}
	}
}

func (f *inlineFlow) remaining() int { return f.avail - f.width }

// textIndentApplies is true for the first line of a block, or of
// the first anonymous block of its parent.
func (f *inlineFlow) textIndentApplies() bool {
	if !f.box.Anonymous {
		return true
	}
	parent, ok := f.box.Parent.(*bo.BlockBox)
	if !ok {
		return false
	}
	children := parent.Children()
	return len(children) != 0 && children[0] == Box(f.box)
}

// newLine starts a line at f.y, reopening the inline elements
// continued from the previous line.
func (f *inlineFlow) newLine() {
	line := bo.NewLineBox(f.box)
	line.FirstLine = f.lineCount == 0
	f.line = line
	f.lineStyle = f.box.Style
	if line.FirstLine {
		f.lineStyle = withFirstLine(f.box.Style, f.c.firstLines)
		if f.textIndentApplies() {
			line.ContentStart = f.box.Style.TextIndent.Resolve(f.box.ContentWidth)
		}
	}
	f.width = 0
	f.updateAvailable()

	f.open = f.open[:0]
	var parent *bo.InlineLayoutBox
	for _, src := range f.sources {
		frag := bo.NewInlineLayoutBox(src, false)
		if line.FirstLine {
			frag.Style = withFirstLine(src.Style, f.c.firstLines)
		}
		if parent == nil {
			line.AddChild(frag)
		} else {
			parent.AddChild(frag)
		}
		f.open = append(f.open, frag)
		parent = frag
	}

	pending := f.pendingFloats
	f.pendingFloats = nil
	for _, float := range pending {
		f.c.placeFloat(float, f.box, line, f.y)
		f.updateAvailable()
	}
}

// updateAvailable computes the room left by the floats
// on the current line.
func (f *inlineFlow) updateAvailable() {
	line := f.line
	s := f.c.strutOf(f.lineStyle)
	dist := f.bfc.floats.FloatDistances(f.cbY+f.y, s.lineHeight, f.cbX, f.box.ContentWidth)
	line.FloatDistances = dist
	line.X, line.Y = dist.Left, f.y
	line.ContentWidth = f.box.ContentWidth - dist.Left - dist.Right
	bo.CalcCanvasLocation(line)
	f.avail = line.ContentWidth - line.ContentStart
}

// moveDown moves the current empty line to [y].
func (f *inlineFlow) moveDown(y int) {
	f.y = y
	f.updateAvailable()
}

func (f *inlineFlow) addToCurrent(child Box) {
	if n := len(f.open); n != 0 {
		f.open[n-1].AddChild(child)
	} else {
		f.line.AddChild(child)
	}
}

// currentStyle is the style of the text added to the line.
func (f *inlineFlow) currentStyle() *pr.Style {
	if n := len(f.open); n != 0 {
		return f.open[n-1].Style
	}
	return f.lineStyle
}

func (f *inlineFlow) addInline(item *bo.InlineBox) {
	if item.StartsHere {
		frag := bo.NewInlineLayoutBox(item, true)
		if f.line.FirstLine {
			frag.Style = withFirstLine(item.Style, f.c.firstLines)
		}
		frag.LeftMBP = frag.Style.MarginBorderPadding(pr.Left, f.box.ContentWidth)
		f.addToCurrent(frag)
		f.open = append(f.open, frag)
		f.sources = append(f.sources, item)
		f.width += frag.LeftMBP
	}
	if item.Text != "" {
		f.addText(item)
	}
	if item.EndsHere {
		f.closeInline()
	}
}

func (f *inlineFlow) closeInline() {
	n := len(f.open)
	if n == 0 {
		panic("internal error: inline close without open")
	}
	frag := f.open[n-1]
	frag.EndsHere = true
	frag.RightMBP = frag.Style.MarginBorderPadding(pr.Right, f.box.ContentWidth)
	f.width += frag.RightMBP
	f.open, f.sources = f.open[:n-1], f.sources[:n-1]
}

func (f *inlineFlow) newText(lb *text.LineBreakContext, style *pr.Style, element Box) *bo.InlineText {
	ef := element.Box()
	t := &bo.InlineText{
		Master:   lb.Master,
		Start:    lb.Start,
		End:      lb.End,
		Text:     strings.TrimSuffix(lb.CalculatedSubstring(), "\n"),
		EndsOnNL: lb.EndsOnNL,
	}
	t.Style, t.Element, t.PseudoType, t.Anonymous = style, ef.Element, ef.PseudoType, true
	t.ContentWidth = lb.Width
	return t
}

// addText breaks the text of [item], starting new lines as needed.
func (f *inlineFlow) addText(item *bo.InlineBox) {
	c := f.c
	lb := text.NewLineBreakContext(item.Text)
	for !lb.IsFinished() {
		style := f.currentStyle()
		if style.IsCollapsingSpaces() && !f.line.ContainsContent {
			for lb.Start < len(lb.Master) && lb.Master[lb.Start] == ' ' {
				lb.Start++
			}
			if lb.IsFinished() {
				break
			}
		}

		if len(c.firstLetters) != 0 && f.lineCount == 0 {
			f.addFirstLetter(lb, item)
			continue
		}

		tryToBreakAnywhere := c.breakAnywhere || style.WordWrap == pr.WordWrapBreakWord
		c.breaker.BreakText(lb, f.remaining(), style, tryToBreakAnywhere)

		overflows := lb.Unbreakable
		if !overflows && lb.Width > f.remaining() {
			chunk := text.TrimTrailingSpace(strings.TrimSuffix(lb.CalculatedSubstring(), "\n"))
			overflows = c.measurer.Width(style.Font, chunk) > f.remaining()
		}
		if overflows {
			if f.line.ContainsContent {
				f.saveLine(false)
				f.newLine()
				continue
			}
			if dist := f.line.FloatDistances; dist.Left != 0 || dist.Right != 0 {
				s := c.strutOf(f.lineStyle)
				if next := f.bfc.floats.NextBottom(f.cbY+f.y, s.lineHeight); next > f.cbY+f.y {
					f.moveDown(next - f.cbY)
					continue
				}
			}
		}

		t := f.newText(lb, style, item)
		f.addToCurrent(t)
		f.width += t.ContentWidth
		if t.Text != "" || t.EndsOnNL {
			f.line.ContainsContent = true
		}
		lb.Next()

		if lb.NeedsNewLine && (!lb.IsFinished() || lb.EndsOnNL) {
			f.line.EndsOnNL = lb.EndsOnNL
			f.saveLine(false)
			f.newLine()
		}
	}
}

// addFirstLetter isolates the first letter of the block in
// a ::first-letter fragment.
func (f *inlineFlow) addFirstLetter(lb *text.LineBreakContext, item *bo.InlineBox) {
	c := f.c
	style := c.firstLetters[len(c.firstLetters)-1]
	c.firstLetters = nil

	src := &bo.InlineBox{
		BoxFields:  bo.BoxFields{Style: style, Element: f.box.Element, PseudoType: "first-letter"},
		StartsHere: true,
		EndsHere:   true,
	}
	src.Parent = f.box
	c.breaker.BreakFirstLetter(lb, f.remaining(), style)

	frag := bo.NewInlineLayoutBox(src, true)
	frag.EndsHere = true
	frag.LeftMBP = style.MarginBorderPadding(pr.Left, f.box.ContentWidth)
	frag.RightMBP = style.MarginBorderPadding(pr.Right, f.box.ContentWidth)
	frag.AddChild(f.newText(lb, style, src))
	f.addToCurrent(frag)
	f.width += frag.LeftMBP + lb.Width + frag.RightMBP
	f.line.ContainsContent = true
	lb.Next()
}

func (f *inlineFlow) layoutAtomic(child *bo.BlockBox) {
	child.Parent = f.line
	child.X, child.Y = f.line.ContentStart+f.width, 0
	layoutBlock(f.c, child, f.box.ContentWidth, -1)
}

func (f *inlineFlow) addInlineBlock(child *bo.BlockBox) {
	f.layoutAtomic(child)
	if child.Width() > f.remaining() && f.line.ContainsContent {
		f.saveLine(false)
		f.newLine()
		f.c.discard(child)
		f.layoutAtomic(child)
	}
	f.addToCurrent(child)
	f.width += child.Width()
	f.line.ContainsContent = true
}

func (f *inlineFlow) addFloat(child *bo.BlockBox) {
	f.c.layoutFloat(child, f.box, f.line, f.y)
	if f.line.ContainsContent && child.Width() > f.remaining() {
		f.pendingFloats = append(f.pendingFloats, child)
		return
	}
	f.c.placeFloat(child, f.box, f.line, f.y)
	f.updateAvailable()
}

// addAbsolute records the static position of [child] on the line.
func (f *inlineFlow) addAbsolute(child *bo.BlockBox) {
	child.X, child.Y = f.line.ContentStart+f.width, 0
	f.line.AddNonFlowContent(child)
	f.c.addAbsolute(child)
}

// saveLine completes the current line and adds it to the block.
func (f *inlineFlow) saveLine(last bool) {
	line, c := f.line, f.c
	if len(line.InlineChildren()) == 0 && len(line.NonFlowContent) == 0 {
		return
	}

	trimTrailingSpace(line.InlineChildren(), c.measurer)
	width := positionHorizontally(line.InlineChildren(), 0)
	extra := f.avail - width
	offset := 0
	switch f.box.Style.TextAlign {
	case pr.TextAlignRight:
		offset = extra
	case pr.TextAlignCenter:
		offset = extra / 2
	case pr.TextAlignJustify:
		if !last && !line.EndsOnNL && extra > 0 {
			justifyLine(line, extra)
		}
	}
	if offset < 0 {
		offset = 0
	}
	positionHorizontally(line.InlineChildren(), line.ContentStart+offset)

	c.alignLine(line, f.lineStyle)

	f.box.AddChild(line)
	line.Y = f.y
	bo.CalcCanvasLocation(line)

	if c.marker != nil && line.ContainsContent {
		marker := c.marker
		marker.Width = c.measurer.Width(marker.Style.Font, marker.Text)
		marker.X = -marker.Width
		line.Marker = marker
		c.marker = nil
	}

	if c.paginated() {
		f.paginateLine(line)
	}
	bo.CalcChildLocations(line)

	for _, nf := range line.NonFlowContent {
		if nf.Style.IsRunning() {
			nf.StaticAbsY = line.AbsY
			c.rootLayer.AddRunningBlock(nf)
		}
	}

	if debugMode {
		debugLogger.Line("line %d at %d: %dx%d", f.lineCount, line.Y, line.Width(), line.Height)
	}

	f.y = line.Y + line.Height
	f.lineCount++
	if line.ContainsContent {
		c.firstLines, c.firstLetters = nil, nil
	}
}

// paginateLine moves [line] to the next page when it crosses a page
// break, or when it is the requested break point. A block whose
// first lines are left alone on the previous page needs to start
// on a new page.
func (f *inlineFlow) paginateLine(line *bo.LineBox) {
	root := f.c.rootLayer
	top := line.AbsY
	page := root.Page(top)
	if page == nil {
		return
	}

	delta := 0
	if bl := f.c.breakAtLine; bl != nil && bl.Block == f.box && bl.Line == f.lineCount {
		if top > page.Top {
			delta = page.Bottom - top
		}
	} else if line.Height > 0 && root.CrossesPageBreak(top, top+line.Height) {
		if line.Height <= root.Page(page.Bottom).ContentHeight() {
			delta = page.Bottom - top
		}
	}
	if delta == 0 {
		return
	}

	line.PaginationTranslation = delta
	line.Y += delta
	bo.CalcCanvasLocation(line)
	root.EnsureHasPage(line)
	if f.lineCount > 0 && f.lineCount < f.box.Style.Orphans {
		f.box.NeedPageClear = true
	}
}

// trimTrailingSpace removes the collapsible spaces at the end of
// a line, and returns true if some content was found.
func trimTrailingSpace(children []Box, measurer text.Measurer) bool {
	for i := len(children) - 1; i >= 0; i-- {
		switch child := children[i].(type) {
		case *bo.InlineText:
			if child.Style.IsCollapsingSpaces() {
				if trimmed := text.TrimTrailingSpace(child.Text); trimmed != child.Text {
					if !child.EndsOnNL {
						child.End -= len([]rune(child.Text)) - len([]rune(trimmed))
					}
					child.Text = trimmed
					child.ContentWidth = measurer.Width(child.Style.Font, trimmed)
				}
			}
			return true
		case *bo.InlineLayoutBox:
			if trimTrailingSpace(child.Children(), measurer) {
				return true
			}
		case *bo.BlockBox:
			return true
		}
	}
	return false
}

// positionHorizontally sets the X of [children], starting at [x],
// and the content width of the inline fragments. It returns the
// end of the last child.
func positionHorizontally(children []Box, x int) int {
	for _, child := range children {
		bf := child.Box()
		bf.X = x
		if frag, ok := child.(*bo.InlineLayoutBox); ok {
			frag.ContentWidth = positionHorizontally(frag.Children(), 0)
		}
		x += bf.Width()
	}
	return x
}
