// Transform a "before layout" box tree into an "after layout" tree,
// by breaking the inline content into lines, placing the floats and
// breaking the block flow across pages; and determining the size and
// position of each box.
//
// Boxes in the laid out tree have used values in their X, Y,
// ContentWidth and Height attributes, amongst others.
// (see http://www.w3.org/TR/CSS21/cascade.html#used-value)
//
// The laid out tree, its layers and its pages are ready to be painted,
// which is done by a higher level package.
package layout

import (
	"os"
	"path/filepath"

	pr "github.com/nichevision/flyingsaucer-sub000/css/properties"
	bo "github.com/nichevision/flyingsaucer-sub000/html/boxes"
	"github.com/nichevision/flyingsaucer-sub000/logger"
	"github.com/nichevision/flyingsaucer-sub000/text"
	"github.com/nichevision/flyingsaucer-sub000/utils/testutils"
	"github.com/nichevision/flyingsaucer-sub000/utils/testutils/tracer"
)

const (
	// if true, print debug information into Stdout
	debugMode = false
	traceMode = false
)

var (
	debugLogger testutils.IndentLogger // used only when debugMode is true
	traceLogger tracer.Tracer          // used only when traceMode is true
)

func init() {
	if traceMode {
		traceLogger = tracer.NewTracer(filepath.Join(os.TempDir(), "trace_go.txt"))
	}
}

type Box = bo.Box

// Options control one layout pass.
type Options struct {
	Measurer text.Measurer

	// Pages provides the page styles of a paginated layout.
	// When nil, the document is laid out on one infinite canvas,
	// Width wide.
	Pages bo.PageStyler
	Width int

	// BreakAnywhere allows to split unbreakable words between
	// any two characters, instead of overflowing.
	BreakAnywhere bool
}

// Layout lays out the box tree starting at [root], in place, and returns
// the root layer. For a paginated layout, the layer holds the pages,
// with their margin boxes.
//
// Layout never fails: impossible constraints are relaxed.
func Layout(root *bo.BlockBox, options Options) *bo.Layer {
	return layoutDocument(root, options).rootLayer
}

func layoutDocument(root *bo.BlockBox, options Options) *layoutContext {
	logger.ProgressLogger.Info("Step 5 - Creating layout")

	c := newLayoutContext(options)
	layer := bo.NewRootLayer(root, options.Pages)
	c.rootLayer = layer

	width := options.Width
	if c.paginated() {
		width = layer.LastPage().ContentWidth()
	}
	root.X, root.Y = 0, 0
	layoutBlock(c, root, width, -1)

	if c.paginated() {
		layer.EnsureHasPage(root)
		layer.TrimEmptyPages(root.AbsY + root.Height)
		logger.ProgressLogger.Infof("Step 5 - Creating layout - %d page(s)", len(layer.Pages()))
	}

	applyRelativeOffsets(root)
	bo.CalcChildLocations(root)

	if c.paginated() {
		logger.ProgressLogger.Info("Step 6 - Creating margin boxes")
		c.layoutMarginBoxes()
	}

	if traceMode {
		traceLogger.DumpTree(root, "Layout")
	}
	if c.relayouts != 0 {
		logger.ProgressLogger.Debugf("%d speculative relayout(s)", c.relayouts)
	}
	return c
}

// applyRelativeOffsets moves the relatively positioned boxes,
// once the flow is complete.
// See http://www.w3.org/TR/CSS21/visuren.html#relative-positioning
func applyRelativeOffsets(box Box) {
	for _, child := range box.Children() {
		applyRelativeOffsets(child)
	}
	bf := box.Box()
	switch box.(type) {
	case *bo.BlockBox, *bo.InlineLayoutBox:
	default:
		return
	}
	if !bf.Style.IsRelative() {
		return
	}
	cbWidth := 0
	if parent := bf.Parent; parent != nil {
		cbWidth = parent.Box().ContentWidth
	}
	style := bf.Style
	var dx, dy int
	if !style.Left.IsAuto() {
		dx = style.Left.Resolve(cbWidth)
	} else if !style.Right.IsAuto() {
		dx = -style.Right.Resolve(cbWidth)
	}
	if !style.Top.IsAuto() {
		dy = style.Top.Resolve(0)
	} else if !style.Bottom.IsAuto() {
		dy = -style.Bottom.Resolve(0)
	}
	bf.RelativeOffset = &bo.Point{X: dx, Y: dy}
	bf.X += dx
	bf.Y += dy
}

// withFirstLine returns the style used on the first line of a block.
func withFirstLine(style *pr.Style, firstLines []*pr.Style) *pr.Style {
	for _, fl := range firstLines {
		style = style.WithFirstLine(fl)
	}
	return style
}
