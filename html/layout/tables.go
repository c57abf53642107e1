package layout

import (
	pr "github.com/nichevision/flyingsaucer-sub000/css/properties"
	bo "github.com/nichevision/flyingsaucer-sub000/html/boxes"
	"github.com/nichevision/flyingsaucer-sub000/utils"
)

// Tables are laid out as blocks, except the rows, whose cells are
// laid out side by side. Cells with a fixed width get it, and the
// remaining width is shared between the other ones, according to
// the number of columns they span.

// layoutTableRow lays out the cells of [row] and sets row.ChildrenHeight
// to the height of the tallest one. The other cells are stretched.
func layoutTableRow(c *layoutContext, row *bo.BlockBox) {
	cells := row.Children()
	widths := make([]int, len(cells)) // margin box widths, 0 for auto
	fixed, autoSpans := 0, 0
	for i, child := range cells {
		cell := child.(*bo.BlockBox)
		style := cell.Style
		if style.Width.IsAuto() {
			autoSpans += utils.MaxInt(cell.ColumnSpan, 1)
			continue
		}
		widths[i] = style.Width.Resolve(row.ContentWidth) +
			style.MarginBorderPadding(pr.Left, row.ContentWidth) + style.MarginBorderPadding(pr.Right, row.ContentWidth)
		fixed += widths[i]
	}

	if autoSpans != 0 {
		remaining := utils.MaxInt(row.ContentWidth-fixed, 0)
		perSpan := remaining / autoSpans
		lastAuto := -1
		for i, child := range cells {
			if child.Box().Style.Width.IsAuto() {
				widths[i] = perSpan * utils.MaxInt(child.(*bo.BlockBox).ColumnSpan, 1)
				remaining -= widths[i]
				lastAuto = i
			}
		}
		widths[lastAuto] += remaining
	}

	x, height := 0, 0
	for i, child := range cells {
		cell := child.(*bo.BlockBox)
		mbp := cell.Style.MarginBorderPadding(pr.Left, row.ContentWidth) +
			cell.Style.MarginBorderPadding(pr.Right, row.ContentWidth)
		cell.ContainingBlock = row
		cell.X, cell.Y = x, 0
		bo.CalcCanvasLocation(cell)
		layoutBlock(c, cell, row.ContentWidth, utils.MaxInt(widths[i]-mbp, 0))
		x += cell.Width()
		height = utils.MaxInt(height, cell.Height)
	}
	for _, child := range cells {
		cell := child.(*bo.BlockBox)
		if cell.Height < height {
			cell.ChildrenHeight += height - cell.Height
			cell.Height = height
		}
	}
	row.ChildrenHeight = height
}
