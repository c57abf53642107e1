package layout

import (
	pr "github.com/nichevision/flyingsaucer-sub000/css/properties"
	bo "github.com/nichevision/flyingsaucer-sub000/html/boxes"
)

// ---------------------- Absolutely positioned boxes management. ----------------

// layoutAbsolutes lays out the absolutely positioned boxes found in the
// flow of the master of [layer], once the master has its final size.
func (c *layoutContext) layoutAbsolutes(layer *bo.Layer) {
	boxes := c.absolutes[layer]
	delete(c.absolutes, layer)
	for _, box := range boxes {
		c.layoutAbsolute(layer.Master, box)
	}
}

// layoutAbsolute positions [box] in the padding box of [master].
// Offsets left auto use the static position of the box, that is where
// it was found on its line.
// See http://www.w3.org/TR/CSS21/visudet.html#abs-non-replaced-width
func (c *layoutContext) layoutAbsolute(master, box *bo.BlockBox) {
	style := box.Style
	mStyle := master.Style
	padTop := mStyle.Padding[pr.Top].Resolve(master.ContentWidth)
	padRight := mStyle.Padding[pr.Right].Resolve(master.ContentWidth)
	padBottom := mStyle.Padding[pr.Bottom].Resolve(master.ContentWidth)
	padLeft := mStyle.Padding[pr.Left].Resolve(master.ContentWidth)

	cbWidth := master.ContentWidth + padLeft + padRight
	cbHeight := master.Height - master.TopMBP - master.BottomMBP + padTop + padBottom
	originX, originY := -padLeft, -padTop

	// static position, relative to the content origin of the master
	staticX := box.AbsX - master.AbsX - master.Tx()
	staticY := box.AbsY - master.AbsY - master.Ty()

	box.ContainingBlock = master
	box.X, box.Y = staticX, staticY
	if !style.Left.IsAuto() {
		box.X = originX + style.Left.Resolve(cbWidth)
	}
	if !style.Top.IsAuto() {
		box.Y = originY + style.Top.Resolve(cbHeight)
	}

	forcedWidth := -1
	if style.Width.IsAuto() && !style.Left.IsAuto() && !style.Right.IsAuto() {
		forcedWidth = cbWidth - style.Left.Resolve(cbWidth) - style.Right.Resolve(cbWidth) -
			style.MarginBorderPadding(pr.Left, cbWidth) - style.MarginBorderPadding(pr.Right, cbWidth)
		if forcedWidth < 0 {
			forcedWidth = 0
		}
	}
	bo.CalcCanvasLocation(box)
	layoutBlock(c, box, cbWidth, forcedWidth)

	x, y := box.X, box.Y
	if style.Left.IsAuto() && !style.Right.IsAuto() {
		x = originX + cbWidth - style.Right.Resolve(cbWidth) - box.Width()
	}
	if style.Top.IsAuto() && !style.Bottom.IsAuto() {
		y = originY + cbHeight - style.Bottom.Resolve(cbHeight) - box.Height
	}
	if x == box.X && y == box.Y {
		return
	}
	if c.paginated() && y != box.Y {
		// page breaks inside the box depend on its position
		width := box.ContentWidth
		c.discard(box)
		box.ContainingBlock = master
		box.X, box.Y = x, y
		bo.CalcCanvasLocation(box)
		layoutBlock(c, box, cbWidth, width)
		return
	}
	box.X, box.Y = x, y
	bo.CalcCanvasLocation(box)
	bo.CalcChildLocations(box)
}
