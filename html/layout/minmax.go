package layout

import (
	"strings"

	pr "github.com/nichevision/flyingsaucer-sub000/css/properties"
	bo "github.com/nichevision/flyingsaucer-sub000/html/boxes"
	"github.com/nichevision/flyingsaucer-sub000/text"
	"github.com/nichevision/flyingsaucer-sub000/utils"
)

// shrinkToFit returns the shrink-to-fit content width of [box],
// given the [available] width.
// See http://www.w3.org/TR/CSS21/visudet.html#shrink-to-fit-float
func (c *layoutContext) shrinkToFit(box *bo.BlockBox, available int) int {
	minWidth, maxWidth := c.minMaxWidths(box)
	return utils.MinInt(utils.MaxInt(minWidth, available), maxWidth)
}

// minMaxWidths returns the preferred minimum and maximum
// content widths of [box].
func (c *layoutContext) minMaxWidths(box *bo.BlockBox) (minWidth, maxWidth int) {
	switch box.ContentType {
	case bo.ContentInline:
		return c.inlineMinMaxWidths(box)
	case bo.ContentBlock:
		row := box.Style.Display == pr.DisplayTableRow
		for _, child := range box.Children() {
			childMin, childMax := c.outerMinMaxWidths(child.(*bo.BlockBox))
			if row {
				minWidth += childMin
				maxWidth += childMax
			} else {
				minWidth = utils.MaxInt(minWidth, childMin)
				maxWidth = utils.MaxInt(maxWidth, childMax)
			}
		}
	}
	return minWidth, maxWidth
}

// outerMinMaxWidths returns the preferred widths of the margin box of [box].
// Percentages resolve to 0.
func (c *layoutContext) outerMinMaxWidths(box *bo.BlockBox) (int, int) {
	style := box.Style
	mbp := style.MarginBorderPadding(pr.Left, 0) + style.MarginBorderPadding(pr.Right, 0)
	if style.Width.Unit == pr.LPx {
		w := style.Width.Resolve(0) + mbp
		return w, w
	}
	minWidth, maxWidth := c.minMaxWidths(box)
	return minWidth + mbp, utils.MaxInt(minWidth, maxWidth) + mbp
}

// inlineMinMaxWidths uses the widest unbreakable chunk as minimum,
// and the widest line between preserved newlines as maximum.
func (c *layoutContext) inlineMinMaxWidths(box *bo.BlockBox) (minWidth, maxWidth int) {
	line := box.Style.TextIndent.Resolve(0)
	for _, item := range box.InlineContent {
		switch item := item.(type) {
		case *bo.InlineBox:
			style := item.Style
			if item.StartsHere {
				line += style.MarginBorderPadding(pr.Left, 0)
			}
			lb := text.NewLineBreakContext(item.Text)
			for !lb.IsFinished() {
				c.breaker.BreakText(lb, 0, style, false)
				chunk := strings.TrimRight(lb.CalculatedSubstring(), " \n")
				minWidth = utils.MaxInt(minWidth, c.measurer.Width(style.Font, chunk))
				if lb.EndsOnNL {
					line += c.measurer.Width(style.Font, chunk)
					maxWidth = utils.MaxInt(maxWidth, line)
					line = 0
				} else {
					line += lb.Width
				}
				lb.Next()
			}
			if item.EndsHere {
				line += style.MarginBorderPadding(pr.Right, 0)
			}
		case *bo.BlockBox:
			if item.Style.IsAbsolute() || item.Style.IsRunning() {
				continue
			}
			childMin, childMax := c.outerMinMaxWidths(item)
			minWidth = utils.MaxInt(minWidth, childMin)
			line += childMax
		}
	}
	return minWidth, utils.MaxInt(maxWidth, line)
}
