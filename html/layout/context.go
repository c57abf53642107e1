package layout

import (
	"fmt"

	pr "github.com/nichevision/flyingsaucer-sub000/css/properties"
	bo "github.com/nichevision/flyingsaucer-sub000/html/boxes"
	"github.com/nichevision/flyingsaucer-sub000/text"
	"github.com/nichevision/flyingsaucer-sub000/utils"
)

// blockFormattingContext is the scope of the floats: it is established
// by the root box, and by floats, absolutes, inline-blocks, table cells
// and boxes with overflow other than visible.
type blockFormattingContext struct {
	master *bo.BlockBox
	floats *FloatManager
}

func newBlockFormattingContext(master *bo.BlockBox) *blockFormattingContext {
	return &blockFormattingContext{master: master, floats: NewFloatManager(master)}
}

// contentOffset returns the content origin of [box] relative to the
// content origin of the master. The absolute positions of both
// boxes must be up to date.
func (bfc *blockFormattingContext) contentOffset(box Box) (x, y int) {
	bf, mf := box.Box(), bfc.master.Box()
	return bf.AbsX + bf.Tx() - mf.AbsX - mf.Tx(), bf.AbsY + bf.Ty() - mf.AbsY - mf.Ty()
}

// BreakAtLineContext asks the inline layout of Block to move
// its line Line (0-based) to the next page, so that enough lines
// are kept together at the end of the block.
type BreakAtLineContext struct {
	Block *bo.BlockBox
	Line  int
}

// layoutContext stores the state threaded through the recursive
// layout calls.
type layoutContext struct {
	measurer      text.Measurer
	breaker       *text.Breaker
	pageStyler    bo.PageStyler
	breakAnywhere bool

	rootLayer *bo.Layer
	layers    []*bo.Layer
	bfcs      []*blockFormattingContext

	// absolutes found in the flow of a layer master, laid out
	// at the end of the layout of the master
	absolutes map[*bo.Layer][]*bo.BlockBox

	// outside marker waiting for the first line of its list item
	marker *bo.Marker
	// ::first-line and ::first-letter styles waiting for the first line
	firstLines   []*pr.Style
	firstLetters []*pr.Style

	breakAtLine          *BreakAtLineContext
	mayCheckKeepTogether bool

	// number of speculative relayouts triggered by page break
	// constraints, used for diagnostic
	relayouts int
}

func newLayoutContext(options Options) *layoutContext {
	measurer := options.Measurer
	if measurer == nil {
		measurer = text.NewCellMeasurer(1)
	}
	return &layoutContext{
		measurer:             measurer,
		breaker:              text.NewBreaker(measurer),
		pageStyler:           options.Pages,
		breakAnywhere:        options.BreakAnywhere,
		absolutes:            make(map[*bo.Layer][]*bo.BlockBox),
		mayCheckKeepTogether: true,
	}
}

// paginated is true when page breaks are computed.
func (c *layoutContext) paginated() bool { return c.pageStyler != nil }

func (c *layoutContext) layer() *bo.Layer {
	if len(c.layers) == 0 {
		panic("internal error: empty layer stack")
	}
	return c.layers[len(c.layers)-1]
}

func (c *layoutContext) pushLayer(layer *bo.Layer) { c.layers = append(c.layers, layer) }

func (c *layoutContext) popLayer(layer *bo.Layer) {
	if c.layer() != layer {
		panic(fmt.Sprintf("internal error: unbalanced layer stack: popping %s, expected %s", layer, c.layer()))
	}
	c.layers = c.layers[:len(c.layers)-1]
}

func (c *layoutContext) bfc() *blockFormattingContext {
	if len(c.bfcs) == 0 {
		panic("internal error: no block formatting context")
	}
	return c.bfcs[len(c.bfcs)-1]
}

func (c *layoutContext) pushBFC(bfc *blockFormattingContext) { c.bfcs = append(c.bfcs, bfc) }

func (c *layoutContext) popBFC(bfc *blockFormattingContext) {
	if c.bfc() != bfc {
		panic("internal error: unbalanced block formatting context stack")
	}
	c.bfcs = c.bfcs[:len(c.bfcs)-1]
}

// LayoutState is the part of the layout context restored when a box
// is discarded and laid out again.
type LayoutState struct {
	layers []*bo.Layer
	bfcs   []*blockFormattingContext

	// number of pending absolutes, for each layer of the stack
	absolutes []int

	marker       *bo.Marker
	firstLines   []*pr.Style
	firstLetters []*pr.Style

	pageSequences int
}

// snapshot captures the state to restore before laying out a box again.
func (c *layoutContext) snapshot() LayoutState {
	out := LayoutState{
		layers:       append([]*bo.Layer(nil), c.layers...),
		bfcs:         append([]*blockFormattingContext(nil), c.bfcs...),
		absolutes:    make([]int, len(c.layers)),
		marker:       c.marker,
		firstLines:   append([]*pr.Style(nil), c.firstLines...),
		firstLetters: append([]*pr.Style(nil), c.firstLetters...),
	}
	for i, layer := range c.layers {
		out.absolutes[i] = len(c.absolutes[layer])
	}
	if c.rootLayer != nil {
		out.pageSequences = c.rootLayer.PageSequenceCount()
	}
	return out
}

// restore goes back to [state]. The boxes laid out since the snapshot
// must be reset by the caller: it removes their floats and running
// registrations.
func (c *layoutContext) restore(state LayoutState) {
	c.layers = append(c.layers[:0:0], state.layers...)
	c.bfcs = append(c.bfcs[:0:0], state.bfcs...)
	for i, layer := range c.layers {
		if n := state.absolutes[i]; n < len(c.absolutes[layer]) {
			c.absolutes[layer] = c.absolutes[layer][:n]
		}
	}
	c.marker = state.marker
	c.firstLines = append(c.firstLines[:0:0], state.firstLines...)
	c.firstLetters = append(c.firstLetters[:0:0], state.firstLetters...)
	if c.rootLayer != nil {
		c.rootLayer.TruncatePageSequences(state.pageSequences)
	}
}

// addAbsolute registers an absolutely positioned box found in the flow.
// Until it is laid out, the box is positioned on its line, at its
// static position. Fixed boxes are laid out against the root.
func (c *layoutContext) addAbsolute(box *bo.BlockBox) {
	layer := c.layer()
	if box.Style.IsFixed() {
		layer = c.rootLayer
	}
	c.absolutes[layer] = append(c.absolutes[layer], box)
}

// outOfFlowState is the part of the context hidden from the content of
// floats, absolutes and inline-blocks: they do not take the marker or
// the first line styles of their ancestors.
type outOfFlowState struct {
	marker                   *bo.Marker
	firstLines, firstLetters []*pr.Style
	breakAtLine              *BreakAtLineContext
}

func (c *layoutContext) enterOutOfFlow() outOfFlowState {
	out := outOfFlowState{marker: c.marker, firstLines: c.firstLines, firstLetters: c.firstLetters, breakAtLine: c.breakAtLine}
	c.marker, c.firstLines, c.firstLetters, c.breakAtLine = nil, nil, nil, nil
	return out
}

func (c *layoutContext) leaveOutOfFlow(s outOfFlowState) {
	c.marker, c.firstLines, c.firstLetters, c.breakAtLine = s.marker, s.firstLines, s.firstLetters, s.breakAtLine
}

// strut is the vertical metrics of a font, in device units.
type strut struct {
	ascent, descent int
	lineHeight      int
}

func (s strut) halfLeading() int { return (s.lineHeight - s.ascent - s.descent) / 2 }

func (c *layoutContext) strutOf(style *pr.Style) strut {
	m := c.measurer.Metrics(style.Font)
	out := strut{ascent: utils.Round(m.Ascent), descent: utils.Round(m.Descent)}
	lh := style.LineHeight
	switch {
	case lh.Normal:
		out.lineHeight = out.ascent + out.descent
	case lh.Number > 0:
		out.lineHeight = utils.Round(lh.Number * style.Font.Size)
	default:
		out.lineHeight = utils.Round(lh.Pixels)
	}
	return out
}

// discard resets [box] so that it can be laid out again, forgetting
// the absolutes found in its flow.
func (c *layoutContext) discard(box *bo.BlockBox) {
	box.Reset()
	for layer, items := range c.absolutes {
		kept := items[:0]
		for _, item := range items {
			if !isDescendant(item, box) {
				kept = append(kept, item)
			}
		}
		c.absolutes[layer] = kept
	}
}

func isDescendant(box, ancestor Box) bool {
	for box != nil {
		if box == ancestor {
			return true
		}
		box = box.Box().Parent
	}
	return false
}
