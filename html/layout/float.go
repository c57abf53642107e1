package layout

import (
	pr "github.com/nichevision/flyingsaucer-sub000/css/properties"
	bo "github.com/nichevision/flyingsaucer-sub000/html/boxes"
	"github.com/nichevision/flyingsaucer-sub000/utils"
)

// BoxOffset is a placed float. X and Y locate its margin edge,
// relative to the content origin of the formatting context master,
// so that floats stay anchored when the master moves.
type BoxOffset struct {
	Box  *bo.BlockBox
	X, Y int

	layer *bo.Layer // painting the float
}

func (o BoxOffset) bounds() bo.Rect {
	return bo.Rect{X: o.X, Y: o.Y, Width: o.Box.Width(), Height: o.Box.Height}
}

// FloatManager stores the floats of one block formatting context,
// in placement order.
type FloatManager struct {
	master      *bo.BlockBox
	left, right []BoxOffset
}

var _ bo.FloatRemover = (*FloatManager)(nil)

func NewFloatManager(master *bo.BlockBox) *FloatManager {
	return &FloatManager{master: master}
}

func (fm *FloatManager) floats(left bool) []BoxOffset {
	if left {
		return fm.left
	}
	return fm.right
}

// Floats returns the placed floats, left ones first.
func (fm *FloatManager) Floats() []BoxOffset {
	return append(append([]BoxOffset(nil), fm.left...), fm.right...)
}

// Position returns the position of the margin edge of a new float with
// the given style and margin box size. [cbX] and [cbWidth] delimit the
// content area of its containing block, and [y] is the top of the
// current line, all in formatting context coordinates.
func (fm *FloatManager) Position(style *pr.Style, width, height, cbX, cbWidth, y int) (int, int) {
	left := !style.IsFloatedRight()
	same, opposite := fm.floats(left), fm.floats(!left)

	current := bo.Rect{Y: y, Width: width, Height: height}
	moveAllTheWayOver := func() {
		if left {
			current.X = cbX
		} else {
			current.X = cbX + cbWidth - width
		}
	}

	if len(same) == 0 {
		moveAllTheWayOver()
	} else {
		last := same[len(same)-1].bounds()
		if current.Y < last.Y {
			current.Y = last.Y
		}
		if current.Y >= last.Y && current.Y < last.Y+last.Height {
			if left {
				current.X = last.X + last.Width
			} else {
				current.X = last.X - width
			}
		} else {
			moveAllTheWayOver()
		}
		fits := current.X >= cbX && current.X+width <= cbX+cbWidth
		if !fits || overlaps(current, same) {
			moveAllTheWayOver()
			current.Y = utils.MaxInt(current.Y, lowestBottom(same))
		}
	}

	if overlaps(current, opposite) {
		moveAllTheWayOver()
		current.Y = utils.MaxInts(current.Y, lowestBottom(same), lowestBottom(opposite))
	}

	if style.IsClearLeft() {
		current.Y = utils.MaxInt(current.Y, lowestBottom(fm.left))
	}
	if style.IsClearRight() {
		current.Y = utils.MaxInt(current.Y, lowestBottom(fm.right))
	}
	return current.X, current.Y
}

func overlaps(r bo.Rect, floats []BoxOffset) bool {
	for _, f := range floats {
		if r.Intersects(f.bounds()) {
			return true
		}
	}
	return false
}

func lowestBottom(floats []BoxOffset) int {
	out := 0
	for _, f := range floats {
		if b := f.Y + f.Box.Height; b > out {
			out = b
		}
	}
	return out
}

// Add registers a placed float, painted by [layer].
func (fm *FloatManager) Add(box *bo.BlockBox, x, y int, layer *bo.Layer) {
	offset := BoxOffset{Box: box, X: x, Y: y, layer: layer}
	if box.Style.IsFloatedRight() {
		fm.right = append(fm.right, offset)
	} else {
		fm.left = append(fm.left, offset)
	}
	box.SetFloatManager(fm)
	if layer != nil {
		layer.AddFloat(box)
	}
}

// RemoveFloat is called when [box] is reset.
func (fm *FloatManager) RemoveFloat(box *bo.BlockBox) {
	remove := func(list []BoxOffset) []BoxOffset {
		for i, o := range list {
			if o.Box == box {
				if o.layer != nil {
					o.layer.RemoveFloat(box)
				}
				return append(list[:i:i], list[i+1:]...)
			}
		}
		return list
	}
	fm.left = remove(fm.left)
	fm.right = remove(fm.right)
}

// ClearDelta returns the vertical displacement needed to move a box
// whose top is at [y] below the floats it clears.
func (fm *FloatManager) ClearDelta(style *pr.Style, y int) int {
	lowest := 0
	if style.IsClearLeft() {
		lowest = utils.MaxInt(lowest, lowestBottom(fm.left))
	}
	if style.IsClearRight() {
		lowest = utils.MaxInt(lowest, lowestBottom(fm.right))
	}
	if lowest > y {
		return lowest - y
	}
	return 0
}

// FloatDistances returns the intrusion of the floats in the line
// [y, y+height) of a containing block [cbX, cbX+cbWidth).
// Empty lines are considered one unit high.
func (fm *FloatManager) FloatDistances(y, height, cbX, cbWidth int) bo.FloatDistances {
	if height < 1 {
		height = 1
	}
	var out bo.FloatDistances
	for _, f := range fm.left {
		r := f.bounds()
		if r.Y < y+height && y < r.Y+r.Height {
			out.Left = utils.MaxInt(out.Left, r.X+r.Width-cbX)
		}
	}
	for _, f := range fm.right {
		r := f.bounds()
		if r.Y < y+height && y < r.Y+r.Height {
			out.Right = utils.MaxInt(out.Right, cbX+cbWidth-r.X)
		}
	}
	return out
}

// NextBottom returns the highest float bottom below [y], among the
// floats intruding in the line [y, y+height), or -1.
// It is used to move down a line which does not fit between floats.
func (fm *FloatManager) NextBottom(y, height int) int {
	if height < 1 {
		height = 1
	}
	out := -1
	for _, list := range [2][]BoxOffset{fm.left, fm.right} {
		for _, f := range list {
			bottom := f.Y + f.Box.Height
			if f.Y < y+height && y < bottom && (out == -1 || bottom < out) {
				out = bottom
			}
		}
	}
	return out
}

// LowestBottom returns the bottom of the lowest float, or 0.
func (fm *FloatManager) LowestBottom() int {
	return utils.MaxInt(lowestBottom(fm.left), lowestBottom(fm.right))
}

// layoutFloat lays out the float [box] found in the inline content of
// [cb], at the vertical position [y] relative to the content origin
// of [cb]. The float is not placed yet.
func (c *layoutContext) layoutFloat(box, cb *bo.BlockBox, line *bo.LineBox, y int) {
	box.ContainingBlock = cb
	box.Parent = line
	box.X, box.Y = 0, y
	layoutBlock(c, box, cb.ContentWidth, -1)
}

// placeFloat positions the float [box], already laid out, at [y] or below,
// and attaches it to [line].
func (c *layoutContext) placeFloat(box, cb *bo.BlockBox, line *bo.LineBox, y int) {
	bfc := c.bfc()
	cbX, cbY := bfc.contentOffset(cb)
	x, fy := bfc.floats.Position(box.Style, box.Width(), box.Height, cbX, cb.ContentWidth, cbY+y)
	nx, ny := x-cbX, fy-cbY

	line.AddNonFlowContent(box)
	if nx != box.X || ny != box.Y {
		if c.paginated() && ny != box.Y {
			// page breaks inside the float depend on its position
			c.discard(box)
			box.X, box.Y = nx, ny
			layoutBlock(c, box, cb.ContentWidth, -1)
		} else {
			box.X, box.Y = nx, ny
			bo.CalcCanvasLocation(box)
			bo.CalcChildLocations(box)
		}
	}
	if debugMode {
		debugLogger.Line("float %s placed at (%d, %d)", box.ElementTag(), x, fy)
	}
	bfc.floats.Add(box, x, fy, c.layer())
}
