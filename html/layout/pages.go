package layout

import (
	"strings"

	pr "github.com/nichevision/flyingsaucer-sub000/css/properties"
	bo "github.com/nichevision/flyingsaucer-sub000/html/boxes"
	"github.com/nichevision/flyingsaucer-sub000/logger"
)

// marginArea returns the rectangle of the margin box [area] of a page,
// relative to its top left corner.
// See https://www.w3.org/TR/css-page-3/#margin-boxes
func marginArea(style *pr.PageStyle, area pr.MarginArea) bo.Rect {
	mt, mr, mb, ml := style.Margin[pr.Top], style.Margin[pr.Right], style.Margin[pr.Bottom], style.Margin[pr.Left]
	cw, ch := style.ContentWidth(), style.ContentHeight()
	third, thirdH := cw/3, ch/3
	right, bottom := ml+cw, mt+ch
	switch area {
	case pr.TopLeftCorner:
		return bo.Rect{X: 0, Y: 0, Width: ml, Height: mt}
	case pr.TopLeft:
		return bo.Rect{X: ml, Y: 0, Width: third, Height: mt}
	case pr.TopCenter:
		return bo.Rect{X: ml + third, Y: 0, Width: third, Height: mt}
	case pr.TopRight:
		return bo.Rect{X: ml + 2*third, Y: 0, Width: cw - 2*third, Height: mt}
	case pr.TopRightCorner:
		return bo.Rect{X: right, Y: 0, Width: mr, Height: mt}
	case pr.RightTop:
		return bo.Rect{X: right, Y: mt, Width: mr, Height: thirdH}
	case pr.RightMiddle:
		return bo.Rect{X: right, Y: mt + thirdH, Width: mr, Height: thirdH}
	case pr.RightBottom:
		return bo.Rect{X: right, Y: mt + 2*thirdH, Width: mr, Height: ch - 2*thirdH}
	case pr.BottomRightCorner:
		return bo.Rect{X: right, Y: bottom, Width: mr, Height: mb}
	case pr.BottomRight:
		return bo.Rect{X: ml + 2*third, Y: bottom, Width: cw - 2*third, Height: mb}
	case pr.BottomCenter:
		return bo.Rect{X: ml + third, Y: bottom, Width: third, Height: mb}
	case pr.BottomLeft:
		return bo.Rect{X: ml, Y: bottom, Width: third, Height: mb}
	case pr.BottomLeftCorner:
		return bo.Rect{X: 0, Y: bottom, Width: ml, Height: mb}
	case pr.LeftBottom:
		return bo.Rect{X: 0, Y: mt + 2*thirdH, Width: ml, Height: ch - 2*thirdH}
	case pr.LeftMiddle:
		return bo.Rect{X: 0, Y: mt + thirdH, Width: ml, Height: thirdH}
	default: // LeftTop
		return bo.Rect{X: 0, Y: mt, Width: ml, Height: thirdH}
	}
}

// layoutMarginBoxes generates and lays out the margin boxes of each page.
// It must be called once the flow is complete, since the page counters
// and the running elements depend on the whole document.
func (c *layoutContext) layoutMarginBoxes() {
	for _, page := range c.rootLayer.Pages() {
		page.MarginBoxes = page.MarginBoxes[:0]
		for area := pr.MarginArea(0); area < pr.NbMarginAreas; area++ {
			style := page.Style.MarginBoxes[area]
			if style == nil {
				continue
			}
			box := c.makeMarginBox(page, area, style)
			if box == nil {
				continue
			}
			c.layoutMarginBox(box, marginArea(page.Style, area))
			page.MarginBoxes = append(page.MarginBoxes, bo.MarginBox{Area: area, Box: box})
		}
	}
}

// makeMarginBox builds the content of a margin box, or returns nil
// when it is empty.
func (c *layoutContext) makeMarginBox(page *bo.PageBox, area pr.MarginArea, style *pr.Style) *bo.BlockBox {
	box := bo.NewBlockBox(style, nil, area.String())
	var children []Box
	var text strings.Builder
	flush := func() {
		if text.Len() == 0 {
			return
		}
		anon := bo.BlockBoxAnonymousFrom(box, pr.DisplayBlock)
		anon.ContentType = bo.ContentInline
		item := &bo.InlineBox{
			BoxFields:  bo.BoxFields{Style: box.Style.DeriveAnonymous(pr.DisplayInline), Anonymous: true},
			Text:       text.String(),
			StartsHere: true,
			EndsHere:   true,
		}
		item.Parent = anon
		anon.InlineContent = []Box{item}
		children = append(children, anon)
		text.Reset()
	}

	for _, content := range style.Content {
		switch content.Kind {
		case pr.ContentString:
			text.WriteString(content.String)
		case pr.ContentCounter, pr.ContentCounters:
			number, total := c.rootLayer.PageNumber(page)
			switch content.String {
			case "page":
				text.WriteString(pr.FormatCounter(number, content.Style))
			case "pages":
				text.WriteString(pr.FormatCounter(total, content.Style))
			default:
				text.WriteString(pr.FormatCounter(0, content.Style))
			}
		case pr.ContentElement:
			running := c.rootLayer.RunningBlock(content.String, page, content.Position)
			if running == nil {
				logger.ProgressLogger.Debugf("no running element %q for page %d", content.String, page.Index+1)
				continue
			}
			flush()
			clone := running.Clone()
			st := clone.Style.Copy()
			st.Position, st.Float, st.Display = pr.PositionStatic, pr.FloatNone, pr.DisplayBlock
			clone.Style = st
			children = append(children, clone)
		}
	}
	flush()

	if len(children) == 0 {
		return nil
	}
	box.ContentType = bo.ContentBlock
	box.SetChildren(children)
	return box
}

// layoutMarginBox lays out [box] in [area], in its own context.
// The content is vertically centered in the area.
func (c *layoutContext) layoutMarginBox(box *bo.BlockBox, area bo.Rect) {
	sub := newLayoutContext(Options{Measurer: c.measurer, BreakAnywhere: c.breakAnywhere})
	sub.rootLayer = bo.NewRootLayer(box, nil)
	box.X, box.Y = area.X, area.Y
	layoutBlock(sub, box, area.Width, -1)
	if free := area.Height - box.Height; free > 0 {
		box.Y += free / 2
	}
	applyRelativeOffsets(box)
	bo.CalcCanvasLocation(box)
	bo.CalcChildLocations(box)
}
