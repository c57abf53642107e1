package layout

import (
	pr "github.com/nichevision/flyingsaucer-sub000/css/properties"
	bo "github.com/nichevision/flyingsaucer-sub000/html/boxes"
	"github.com/nichevision/flyingsaucer-sub000/utils"
)

// lineAligner computes the vertical layout of one line.
// Positions are first computed relative to the baseline of the line,
// then translated to be relative to the parents.
// See http://www.w3.org/TR/CSS21/visudet.html#line-height
type lineAligner struct {
	c *layoutContext

	// top of the text area of the fragments, or of the margin edge
	// of the inline-blocks, relative to the line baseline
	tops map[Box]int

	top, bottom int
	hasExtent   bool

	deferred []alignedSubtree
}

// alignedSubtree is a box aligned with the top or the bottom of
// the line, with the extent of its subtree relative to its own baseline.
type alignedSubtree struct {
	box         Box
	alignTop    bool
	top, bottom int
}

func (a *lineAligner) extend(top, bottom int) {
	if !a.hasExtent {
		a.top, a.bottom, a.hasExtent = top, bottom, true
		return
	}
	a.top = utils.MinInt(a.top, top)
	a.bottom = utils.MaxInt(a.bottom, bottom)
}

// alignLine sets the vertical positions of the content of [line], its
// height and its baseline. [style] is the style of the block, as
// used on this line.
func (c *layoutContext) alignLine(line *bo.LineBox, style *pr.Style) {
	if !line.ContainsContent {
		line.Height, line.Baseline = 0, 0
		zeroY(line.InlineChildren())
		return
	}
	a := &lineAligner{c: c, tops: make(map[Box]int)}
	s := c.strutOf(style)
	a.extend(-s.ascent-s.halfLeading(), -s.ascent-s.halfLeading()+s.lineHeight)

	a.alignChildren(line.InlineChildren(), 0, style)
	a.alignDeferred()

	a.translate(line.InlineChildren(), a.top)
	line.Height = a.bottom - a.top
	line.Baseline = -a.top
	line.TextDecorations = c.decorations(style, line.Baseline)
}

// alignDeferred aligns the top and bottom aligned subtrees with the
// extent of the other boxes, extending it if needed.
func (a *lineAligner) alignDeferred() {
	for _, d := range a.deferred {
		height := d.bottom - d.top
		var shift int
		if d.alignTop {
			shift = a.top - d.top
			a.bottom = utils.MaxInt(a.bottom, a.top+height)
		} else {
			shift = a.bottom - d.bottom
			a.top = utils.MinInt(a.top, a.bottom-height)
		}
		a.shift(d.box, shift)
	}
	a.deferred = nil
}

func zeroY(children []Box) {
	for _, child := range children {
		child.Box().Y = 0
		if frag, ok := child.(*bo.InlineLayoutBox); ok {
			zeroY(frag.Children())
		}
	}
}

// baselinePosition returns the position of the baseline of a box with
// [style], whose parent has its baseline at [parentBaseline].
// [ascent] and [descent] are the extent of the box around its baseline.
func (a *lineAligner) baselinePosition(style, parent *pr.Style, parentBaseline, ascent, descent int) int {
	parentSize := parent.Font.Size
	switch va := style.VerticalAlign; va.Kind {
	case pr.VASub:
		return parentBaseline + utils.Round(parentSize/5)
	case pr.VASuper:
		return parentBaseline - utils.Round(parentSize/3)
	case pr.VALength:
		return parentBaseline - va.Length.Resolve(a.c.strutOf(style).lineHeight)
	case pr.VATextTop:
		return parentBaseline - a.c.strutOf(parent).ascent + ascent
	case pr.VATextBottom:
		return parentBaseline + a.c.strutOf(parent).descent - descent
	case pr.VAMiddle:
		return parentBaseline - utils.Round(parentSize/4) + (ascent-descent)/2
	default:
		return parentBaseline
	}
}

func isLineRelative(style *pr.Style) bool {
	return style.VerticalAlign.Kind == pr.VATop || style.VerticalAlign.Kind == pr.VABottom
}

func (a *lineAligner) alignChildren(children []Box, parentBaseline int, parent *pr.Style) {
	for _, child := range children {
		switch child := child.(type) {
		case *bo.InlineLayoutBox:
			if isLineRelative(child.Style) {
				sub := &lineAligner{c: a.c, tops: a.tops}
				sub.alignFragment(child, 0)
				sub.alignDeferred()
				a.deferred = append(a.deferred, alignedSubtree{
					box: child, alignTop: child.Style.VerticalAlign.Kind == pr.VATop,
					top: sub.top, bottom: sub.bottom,
				})
				continue
			}
			s := a.c.strutOf(child.Style)
			a.alignFragment(child, a.baselinePosition(child.Style, parent, parentBaseline, s.ascent, s.descent))
		case *bo.BlockBox:
			ascent := child.Height
			if child.HasBaseline {
				ascent = child.Baseline
			}
			descent := child.Height - ascent
			if isLineRelative(child.Style) {
				a.tops[child] = -ascent
				a.deferred = append(a.deferred, alignedSubtree{
					box: child, alignTop: child.Style.VerticalAlign.Kind == pr.VATop,
					top: -ascent, bottom: descent,
				})
				continue
			}
			baseline := a.baselinePosition(child.Style, parent, parentBaseline, ascent, descent)
			a.tops[child] = baseline - ascent
			a.extend(baseline-ascent, baseline+descent)
		}
	}
}

// alignFragment places [frag] with its baseline at [baseline].
// Only the fragments with content contribute to the line height.
func (a *lineAligner) alignFragment(frag *bo.InlineLayoutBox, baseline int) {
	s := a.c.strutOf(frag.Style)
	top := baseline - s.ascent
	a.tops[frag] = top
	frag.Baseline = s.ascent
	frag.Height = s.ascent + s.descent
	if frag.ContainsContent() {
		a.extend(top-s.halfLeading(), top-s.halfLeading()+s.lineHeight)
	}
	a.alignChildren(frag.Children(), baseline, frag.Style)
	frag.TextDecorations = a.c.decorations(frag.Style, frag.Baseline)
}

// shift moves [box] and its descendants by [delta].
func (a *lineAligner) shift(box Box, delta int) {
	if _, ok := a.tops[box]; !ok {
		return
	}
	a.tops[box] += delta
	if frag, ok := box.(*bo.InlineLayoutBox); ok {
		for _, child := range frag.Children() {
			a.shift(child, delta)
		}
	}
}

// translate converts the positions relative to the baseline into
// positions relative to the parents, whose top is [parentTop].
func (a *lineAligner) translate(children []Box, parentTop int) {
	for _, child := range children {
		switch child := child.(type) {
		case *bo.InlineText:
			child.Y = 0
		case *bo.InlineLayoutBox:
			child.Y = a.tops[child] - parentTop
			a.translate(child.Children(), a.tops[child])
		case *bo.BlockBox:
			child.Y = a.tops[child] - parentTop
		}
	}
}

// decorations returns the text decorations of a box with [style],
// whose baseline is [baseline] pixels below its top.
func (c *layoutContext) decorations(style *pr.Style, baseline int) []bo.TextDecoration {
	if style.TextDecoration == 0 {
		return nil
	}
	m := c.measurer.Metrics(style.Font)
	thickness := func(v pr.Fl) int { return utils.MaxInt(1, utils.Round(v)) }
	var out []bo.TextDecoration
	if style.TextDecoration&pr.DecorationUnderline != 0 {
		out = append(out, bo.TextDecoration{
			Kind: pr.DecorationUnderline, Offset: baseline + utils.Round(m.UnderlineOffset),
			Thickness: thickness(m.UnderlineThickness),
		})
	}
	if style.TextDecoration&pr.DecorationOverline != 0 {
		out = append(out, bo.TextDecoration{
			Kind: pr.DecorationOverline, Offset: baseline - utils.Round(m.Ascent),
			Thickness: thickness(m.UnderlineThickness),
		})
	}
	if style.TextDecoration&pr.DecorationLineThrough != 0 {
		out = append(out, bo.TextDecoration{
			Kind: pr.DecorationLineThrough, Offset: baseline + utils.Round(m.StrikethroughOffset),
			Thickness: thickness(m.StrikethroughThickness),
		})
	}
	return out
}
