package layout

import (
	pr "github.com/nichevision/flyingsaucer-sub000/css/properties"
	bo "github.com/nichevision/flyingsaucer-sub000/html/boxes"
	"github.com/nichevision/flyingsaucer-sub000/logger"
	"github.com/nichevision/flyingsaucer-sub000/utils"
)

// layoutBlock lays out [box], whose position relative to its position
// parent is already set, in a containing block [cbWidth] wide.
// A [forcedWidth] greater or equal to zero overrides the used content width.
func layoutBlock(c *layoutContext, box *bo.BlockBox, cbWidth, forcedWidth int) {
	style := box.Style
	if debugMode {
		debugLogger.LineWithIndent("Block %s at (%d, %d)", box.ElementTag(), box.X, box.Y)
		defer func() { debugLogger.LineWithDedent("-> %s", box) }()
	}

	outOfFlow := !box.IsRoot() && (style.IsFloated() || style.IsAbsolute() || style.IsInlineBlock())
	if outOfFlow {
		saved := c.enterOutOfFlow()
		defer c.leaveOutOfFlow(saved)
	}

	resolveHorizontal(c, box, cbWidth, forcedWidth)
	box.TopMBP = style.MarginBorderPadding(pr.Top, cbWidth)
	box.BottomMBP = style.MarginBorderPadding(pr.Bottom, cbWidth)
	bo.CalcCanvasLocation(box)

	var layer *bo.Layer
	switch {
	case box.IsRoot():
		layer = box.Layer
	case style.RequiresLayer():
		layer = bo.NewLayer(c.layer(), box)
	default:
		box.ContainingLayer = c.layer()
	}
	if layer != nil {
		c.pushLayer(layer)
	}

	if style.PageSequence && c.paginated() {
		c.rootLayer.AddPageSequence(box)
	}

	if style.IsCleared() && !outOfFlow && !box.IsRoot() {
		_, y := c.bfc().contentOffset(box)
		borderTop := y - box.TopMBP + style.Margin[pr.Top].Resolve(cbWidth)
		if delta := c.bfc().floats.ClearDelta(style, borderTop); delta > 0 {
			box.Clearance = delta
			box.Y += delta
			bo.CalcCanvasLocation(box)
		}
	}

	if box.Marker != nil {
		c.marker = box.Marker
	}
	if box.FirstLineStyle != nil {
		c.firstLines = append(c.firstLines, box.FirstLineStyle)
	}
	if box.FirstLetterStyle != nil {
		c.firstLetters = append(c.firstLetters, box.FirstLetterStyle)
	}

	var bfc *blockFormattingContext
	if box.IsRoot() || style.EstablishesBFC() {
		bfc = newBlockFormattingContext(box)
		c.pushBFC(bfc)
	}

	box.ChildrenHeight = 0
	switch box.ContentType {
	case bo.ContentInline:
		layoutInlineContent(c, box)
	case bo.ContentBlock:
		if style.Display == pr.DisplayTableRow {
			layoutTableRow(c, box)
		} else {
			layoutBlockContent(c, box, 0)
		}
		setBlockBaseline(box)
	}

	contentHeight := box.ChildrenHeight
	if bfc != nil && style.Height.IsAuto() {
		// See http://www.w3.org/TR/CSS21/visudet.html#root-height
		contentHeight = utils.MaxInt(contentHeight, bfc.floats.LowestBottom())
	}
	box.Height = box.TopMBP + resolveHeight(style, contentHeight) + box.BottomMBP

	if bfc != nil {
		c.popBFC(bfc)
	}
	if c.marker == box.Marker {
		c.marker = nil
	}
	if n := len(c.firstLines); n != 0 && c.firstLines[n-1] == box.FirstLineStyle {
		c.firstLines = c.firstLines[:n-1]
	}
	if n := len(c.firstLetters); n != 0 && c.firstLetters[n-1] == box.FirstLetterStyle {
		c.firstLetters = c.firstLetters[:n-1]
	}

	if layer != nil {
		c.layoutAbsolutes(layer)
		c.popLayer(layer)
	}
}

// resolveHorizontal computes the used content width and the
// horizontal margins, borders and paddings of [box].
// See http://www.w3.org/TR/CSS21/visudet.html#blockwidth
func resolveHorizontal(c *layoutContext, box *bo.BlockBox, cbWidth, forcedWidth int) {
	style := box.Style
	left, right := style.Margin[pr.Left].Resolve(cbWidth), style.Margin[pr.Right].Resolve(cbWidth)
	bpLeft, bpRight := style.BorderPadding(pr.Left, cbWidth), style.BorderPadding(pr.Right, cbWidth)
	shrink := !box.IsRoot() && (style.IsFloated() || style.IsAbsolute() || style.IsInlineBlock())

	var width int
	switch {
	case forcedWidth >= 0:
		width = forcedWidth
	case !style.Width.IsAuto():
		width = style.Width.Resolve(cbWidth)
	case shrink:
		width = c.shrinkToFit(box, cbWidth-left-right-bpLeft-bpRight)
	default:
		width = cbWidth - left - right - bpLeft - bpRight
	}
	if forcedWidth < 0 {
		width = clampWidth(style, width, cbWidth)
	}
	if width < 0 {
		width = 0
	}

	if !shrink && !box.IsRoot() {
		autoLeft, autoRight := style.Margin[pr.Left].IsAuto(), style.Margin[pr.Right].IsAuto()
		if remaining := cbWidth - width - bpLeft - bpRight - left - right; remaining > 0 {
			switch {
			case autoLeft && autoRight:
				left = remaining / 2
				right = remaining - left
			case autoLeft:
				left = remaining
			case autoRight:
				right = remaining
			}
		}
	}

	box.LeftMBP, box.RightMBP = left+bpLeft, right+bpRight
	box.ContentWidth = width
}

// clampWidth applies min-width and max-width. A max-width of auto means none.
func clampWidth(style *pr.Style, width, cbWidth int) int {
	if !style.MaxWidth.IsAuto() {
		width = utils.MinInt(width, style.MaxWidth.Resolve(cbWidth))
	}
	return utils.MaxInt(width, style.MinWidth.Resolve(cbWidth))
}

// resolveHeight returns the used content height. Percentages are
// not supported for heights, and behave as auto.
func resolveHeight(style *pr.Style, contentHeight int) int {
	height := contentHeight
	if style.Height.Unit == pr.LPx {
		height = style.Height.Resolve(0)
	}
	if style.MaxHeight.Unit == pr.LPx {
		height = utils.MinInt(height, style.MaxHeight.Resolve(0))
	}
	if style.MinHeight.Unit == pr.LPx {
		height = utils.MaxInt(height, style.MinHeight.Resolve(0))
	}
	return height
}

// setBlockBaseline uses the baseline of the last child having one.
func setBlockBaseline(box *bo.BlockBox) {
	children := box.Children()
	for i := len(children) - 1; i >= 0; i-- {
		child, ok := children[i].(*bo.BlockBox)
		if ok && child.HasBaseline {
			box.Baseline = box.TopMBP + child.Y + child.Baseline
			box.HasBaseline = true
			return
		}
	}
}

// collapseMargins returns the collapsed value of two adjoining margins.
// See http://www.w3.org/TR/CSS21/box.html#collapsing-margins
func collapseMargins(a, b int) int {
	switch {
	case a >= 0 && b >= 0:
		return utils.MaxInt(a, b)
	case a < 0 && b < 0:
		return utils.MinInt(a, b)
	default:
		return a + b
	}
}

// marginOverlap returns the amount [child] is moved up, so that
// its top margin collapses with the bottom margin of [previous].
// Margins do not collapse through forced page breaks.
func (c *layoutContext) marginOverlap(previous, child *bo.BlockBox, cbWidth int) int {
	if previous == nil || child.Style.IsCleared() {
		return 0
	}
	if c.paginated() && (previous.Style.IsForcePageBreakAfter() || child.Style.IsForcePageBreakBefore()) {
		return 0
	}
	a := previous.Style.Margin[pr.Bottom].Resolve(cbWidth)
	b := child.Style.Margin[pr.Top].Resolve(cbWidth)
	return a + b - collapseMargins(a, b)
}

// relayoutData is the bookkeeping of one child during the
// layout of a block content.
type relayoutData struct {
	state       LayoutState
	childOffset int

	startsRun, endsRun, inRun bool
}

type relayoutDataList []relayoutData

// markRun links [previous] and [current], at [offset], in a run when
// a page break between them should be avoided.
func (l relayoutDataList) markRun(offset int, previous, current *bo.BlockBox) {
	previousData, currentData := &l[offset-1], &l[offset]
	previousAfter, currentBefore := previous.Style.PageBreakAfter, current.Style.PageBreakBefore

	if previousAfter == pr.PageBreakAvoid && currentBefore == pr.PageBreakAuto ||
		previousAfter == pr.PageBreakAuto && currentBefore == pr.PageBreakAvoid ||
		previousAfter == pr.PageBreakAvoid && currentBefore == pr.PageBreakAvoid {
		if !previousData.inRun {
			previousData.startsRun = true
		}
		previousData.inRun = true
		currentData.inRun = true
		if offset == len(l)-1 {
			currentData.endsRun = true
		}
	} else if previousData.inRun {
		previousData.endsRun = true
	}
}

// runStart returns the start of the run ending at [end].
func (l relayoutDataList) runStart(end int) int {
	if !l[end].endsRun {
		panic("internal error: not the end of a run")
	}
	for offset := end; offset >= 0; offset-- {
		if l[offset].startsRun {
			return offset
		}
	}
	panic("internal error: run start not found")
}

// layoutBlockContent lays out the block-level children of [block],
// starting at [contentStart], and updates block.ChildrenHeight.
//
// When paginated, a child which should not be broken is laid out again
// on a new page, and the constraint is dropped if it still does not fit.
// Runs of children linked by page-break-before/after: avoid are handled
// the same way, as a whole.
func layoutBlockContent(c *layoutContext, block *bo.BlockBox, contentStart int) {
	children := block.Children()
	paginated := c.paginated()
	var list relayoutDataList
	if paginated {
		list = make(relayoutDataList, len(children))
	}

	childOffset := block.ChildrenHeight + contentStart
	var previous *bo.BlockBox
	for offset, ch := range children {
		child := ch.(*bo.BlockBox)
		y := childOffset - c.marginOverlap(previous, child, block.ContentWidth)

		if !paginated {
			c.layoutBlockChild(block, child, false, y, nil)
		} else {
			data := &list[offset]
			data.state = c.snapshot()
			data.childOffset = childOffset
			child.NeedPageClear = false

			mayCheckKeepTogether := c.takeKeepTogether(child)
			c.layoutBlockChild(block, child, false, y, &data.state)
			if mayCheckKeepTogether {
				c.mayCheckKeepTogether = true
				c.keepTogether(block, child, y, data.state)
			}
			c.rootLayer.EnsureHasPage(child)
		}

		childOffset = child.Y + child.Height
		if childOffset > block.ChildrenHeight {
			block.ChildrenHeight = childOffset
		}

		if paginated {
			if child.Style.IsForcePageBreakAfter() {
				block.ChildrenHeight = c.forcePageBreakAfter(block, block.ChildrenHeight, child.Style.PageBreakAfter)
				childOffset = block.ChildrenHeight
			}
			if previous != nil {
				list.markRun(offset, previous, child)
			}
			if changed, newOffset := c.processPageBreakAvoidRun(block, children, offset, list); changed {
				childOffset = newOffset
				if childOffset > block.ChildrenHeight {
					block.ChildrenHeight = childOffset
				}
			}
		}
		previous = child
	}
}

// takeKeepTogether returns true if the keep together constraints
// of [child] must be checked. Nested constraints are ignored while
// an ancestor is checked.
func (c *layoutContext) takeKeepTogether(child *bo.BlockBox) bool {
	style := child.Style
	if (style.IsAvoidPageBreakInside() || style.IsKeepWithInline()) && c.mayCheckKeepTogether {
		c.mayCheckKeepTogether = false
		return true
	}
	return false
}

// keepTogether lays out [child] again on a new page if it should not be
// broken. If it still crosses a page break, the constraint is dropped
// and the child is laid out a last time where it was.
func (c *layoutContext) keepTogether(block, child *bo.BlockBox, y int, state LayoutState) {
	tryToAvoidPageBreak := child.Style.IsAvoidPageBreakInside() && c.crossesPageBreak(child)
	keepWithInline := c.needsKeepWithInline(child)
	if !tryToAvoidPageBreak && !keepWithInline {
		return
	}

	logger.ProgressLogger.Debugf("moving %s to a new page to keep it together", child.ElementTag())
	c.relayouts++
	c.restore(state)
	child.Reset()
	c.layoutBlockChild(block, child, true, y, &state)

	if tryToAvoidPageBreak && c.crossesPageBreak(child) && !keepWithInline {
		logger.ProgressLogger.Debugf("%s does not fit in a page: page-break-inside: avoid dropped", child.ElementTag())
		c.relayouts++
		c.restore(state)
		child.Reset()
		c.layoutBlockChild(block, child, false, y, &state)
	}
}

// layoutBlockChild lays out [child] at the vertical offset [y] in
// [parent]. When the last lines of the child are widows, the child
// is laid out again, breaking earlier.
func (c *layoutContext) layoutBlockChild(parent, child *bo.BlockBox, needPageClear bool, y int, state *LayoutState) {
	c.layoutBlockChild0(parent, child, needPageClear, y, state)

	if bContext := c.breakAtLineContext(child); bContext != nil {
		c.breakAtLine = bContext
		if state != nil {
			c.restore(*state)
		}
		child.Reset()
		c.layoutBlockChild0(parent, child, needPageClear, y, state)
		c.breakAtLine = nil
	}
}

func (c *layoutContext) layoutBlockChild0(parent, child *bo.BlockBox, needPageClear bool, y int, state *LayoutState) {
	child.NeedPageClear = needPageClear
	child.ContainingBlock = parent
	child.X, child.Y = 0, y
	bo.CalcCanvasLocation(child)
	c.repositionBox(child)
	layoutBlock(c, child, parent.ContentWidth, -1)

	if c.paginated() && child.NeedPageClear && !needPageClear && state != nil {
		// too few lines before a page break: start on a new page,
		// where a previous break point is meaningless
		c.restore(*state)
		c.breakAtLine = nil
		child.Reset()
		c.layoutBlockChild0(parent, child, true, y, state)
	}
}

// repositionBox applies a pending or forced page break before [child].
func (c *layoutContext) repositionBox(child *bo.BlockBox) {
	if !c.paginated() {
		return
	}
	if child.NeedPageClear || child.Style.IsForcePageBreakBefore() {
		c.forcePageBreakBefore(child, child.Style.PageBreakBefore)
		child.NeedPageClear = false
	}
}

// forcePageBreakBefore moves [box] to the top of the next page,
// or of the next left or right page, and returns the displacement.
// A box already at the top of a suitable page is not moved.
func (c *layoutContext) forcePageBreakBefore(box *bo.BlockBox, value pr.PageBreak) int {
	root := c.rootLayer
	page := root.Page(box.AbsY)
	if page == nil {
		logger.WarningLogger.Warnf("box %s has no page", box.ElementTag())
		return 0
	}
	count := 1
	if page.Top == box.AbsY {
		count = 0
	}
	landingLeft := (page.Index+count)%2 != 0
	if value == pr.PageBreakLeft && !landingLeft || value == pr.PageBreakRight && landingLeft {
		count++
	}
	if count == 0 {
		return 0
	}
	delta := page.Bottom - box.AbsY
	if count == 2 {
		delta += root.Page(page.Bottom).ContentHeight()
	}
	root.Page(box.AbsY + delta)
	box.Y += delta
	bo.CalcCanvasLocation(box)
	return delta
}

// forcePageBreakAfter returns the content height of [block] extended
// to the bottom of the current page, or of the page before the next
// left or right page.
func (c *layoutContext) forcePageBreakAfter(block *bo.BlockBox, contentHeight int, value pr.PageBreak) int {
	root := c.rootLayer
	top := block.AbsY + block.Ty()
	bottom := top + contentHeight
	page := root.Page(utils.MaxInt(bottom-1, top))
	if page == nil {
		return contentHeight
	}
	delta := page.Bottom - bottom
	landingLeft := (page.Index+1)%2 != 0
	if value == pr.PageBreakLeft && !landingLeft || value == pr.PageBreakRight && landingLeft {
		delta += root.Page(page.Bottom).ContentHeight()
	}
	root.Page(bottom + delta)
	return contentHeight + delta
}

// crossesPageBreak is true if [box] does not fit in the page of its top.
func (c *layoutContext) crossesPageBreak(box *bo.BlockBox) bool {
	return c.rootLayer.CrossesPageBreak(box.AbsY, box.AbsY+box.Height)
}

// needsKeepWithInline is true when the first line of [box]
// is not on the page of its top.
func (c *layoutContext) needsKeepWithInline(box *bo.BlockBox) bool {
	if !box.Style.IsKeepWithInline() {
		return false
	}
	line := firstLine(box)
	if line == nil {
		return false
	}
	return c.rootLayer.Page(line.AbsY) != c.rootLayer.FirstPage(box)
}

// firstLine returns the first line with content in the flow of [box].
func firstLine(box *bo.BlockBox) *bo.LineBox {
	for _, child := range box.Children() {
		switch child := child.(type) {
		case *bo.LineBox:
			if child.ContainsContent {
				return child
			}
		case *bo.BlockBox:
			if line := firstLine(child); line != nil {
				return line
			}
		}
	}
	return nil
}

// breakAtLineContext returns a break point moving lines of [box] to the
// next page when less than widows lines are found on its last page.
func (c *layoutContext) breakAtLineContext(box *bo.BlockBox) *BreakAtLineContext {
	if !c.paginated() || box.ContentType != bo.ContentInline {
		return nil
	}
	lines := box.Lines()
	if len(lines) == 0 {
		return nil
	}
	root := c.rootLayer
	lastPage := root.Page(lines[len(lines)-1].AbsY)
	first := len(lines) - 1
	for first > 0 && root.Page(lines[first-1].AbsY) == lastPage {
		first--
	}
	if first == 0 || len(lines)-first >= box.Style.Widows {
		return nil
	}
	cut := len(lines) - box.Style.Widows
	if cut < 1 {
		return nil
	}
	return &BreakAtLineContext{Block: box, Line: cut}
}

// processPageBreakAvoidRun lays out again the run ending before or at
// [offset] if a page break falls inside it: first from the top of
// a new page, then, if the break is still inside, where it was.
func (c *layoutContext) processPageBreakAvoidRun(block *bo.BlockBox, children []Box, offset int, list relayoutDataList) (changed bool, childOffset int) {
	if offset == 0 {
		return false, 0
	}
	runEnd := -1
	if offset == len(children)-1 && list[offset].endsRun {
		runEnd = offset
	} else if list[offset-1].endsRun {
		runEnd = offset - 1
	}
	if runEnd == -1 {
		return false, 0
	}

	runStart := list.runStart(runEnd)
	if !c.isPageBreakBetweenChildBoxes(children, runStart, runEnd) {
		return false, 0
	}

	// relayoutRun updates the offsets of the run
	startOffset := list[runStart].childOffset

	logger.ProgressLogger.Debugf("page break inside the run [%d, %d]: moving it to a new page", runStart, runEnd)
	block.ResetChildren(runStart, offset)
	childOffset = c.relayoutRun(block, children, list, runStart, offset, startOffset, true)
	if c.isPageBreakBetweenChildBoxes(children, runStart, runEnd) {
		logger.ProgressLogger.Debugf("run [%d, %d] does not fit in a page: constraint dropped", runStart, runEnd)
		block.ResetChildren(runStart, offset)
		childOffset = c.relayoutRun(block, children, list, runStart, offset, startOffset, false)
	}
	return true, childOffset
}

func (c *layoutContext) isPageBreakBetweenChildBoxes(children []Box, start, end int) bool {
	root := c.rootLayer
	for i := start; i < end; i++ {
		prevPage := root.LastPageOf(children[i])
		nextPage := root.FirstPage(children[i+1])
		if nextPage.Index > prevPage.Index {
			return true
		}
	}
	return false
}

// relayoutRun lays out the children [start, end] again, from
// [startOffset] or from the top of the next page, and returns
// the offset following the last one.
func (c *layoutContext) relayoutRun(block *bo.BlockBox, children []Box, list relayoutDataList, start, end, startOffset int, onNewPage bool) int {
	c.relayouts++
	childOffset := startOffset
	if onNewPage {
		top := block.AbsY + block.Ty() + childOffset
		if page := c.rootLayer.Page(top); page != nil {
			childOffset += page.Bottom - top
		}
	}
	// the height of the parent is used to position the children
	block.ChildrenHeight = childOffset

	for i := start; i <= end; i++ {
		child := children[i].(*bo.BlockBox)
		data := &list[i]
		c.restore(data.state)
		data.childOffset = childOffset

		y := childOffset
		if i > 0 && !(onNewPage && i == start) {
			y -= c.marginOverlap(children[i-1].(*bo.BlockBox), child, block.ContentWidth)
		}

		mayCheckKeepTogether := c.takeKeepTogether(child)
		c.layoutBlockChild(block, child, false, y, &data.state)
		if mayCheckKeepTogether {
			c.mayCheckKeepTogether = true
			c.keepTogether(block, child, y, data.state)
		}
		c.rootLayer.EnsureHasPage(child)

		childOffset = child.Y + child.Height
		if childOffset > block.ChildrenHeight {
			block.ChildrenHeight = childOffset
		}
		if child.Style.IsForcePageBreakAfter() {
			block.ChildrenHeight = c.forcePageBreakAfter(block, block.ChildrenHeight, child.Style.PageBreakAfter)
			childOffset = block.ChildrenHeight
		}
	}
	return childOffset
}
