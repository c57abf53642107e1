// Package boxes defines the box tree: the boxes built from the styled
// element tree, and the boxes produced by the layout (lines and inline
// fragments), along with the layers and pages owning them.
package boxes

import (
	"fmt"

	"golang.org/x/net/html"

	pr "github.com/nichevision/flyingsaucer-sub000/css/properties"
)

type BoxType uint8

const (
	BlockT        BoxType = iota // block-level or atomic inline box
	InlineT                      // inline content item, before layout
	LineT                        // line box
	InlineLayoutT                // fragment of an inline element on one line
	TextT                        // text run
)

func (t BoxType) String() string {
	switch t {
	case BlockT:
		return "Block"
	case InlineT:
		return "Inline"
	case LineT:
		return "Line"
	case InlineLayoutT:
		return "InlineLayout"
	case TextT:
		return "Text"
	default:
		return fmt.Sprintf("<BoxType %d>", t)
	}
}

// Box is implemented by every node of the box tree.
type Box interface {
	Box() *BoxFields
	Type() BoxType
	// Children returns the boxes whose position is relative to this box.
	// The returned slice must not be modified.
	Children() []Box
}

type Point struct{ X, Y int }

// Rect is a rectangle in integer device units.
type Rect struct{ X, Y, Width, Height int }

// Intersects returns true if the two rectangles share some area.
// Empty rectangles never intersect.
func (r Rect) Intersects(other Rect) bool {
	if r.Width <= 0 || r.Height <= 0 || other.Width <= 0 || other.Height <= 0 {
		return false
	}
	return r.X < other.X+other.Width && other.X < r.X+r.Width &&
		r.Y < other.Y+other.Height && other.Y < r.Y+r.Height
}

// BoxFields stores the attributes common to every box.
//
// X and Y are the position of the margin edge, relative to the content
// origin of the box the position refers to: the containing block for
// floats and absolutes, the parent otherwise.
// AbsX and AbsY are derived from the positions of the ancestors, and must
// be updated with [CalcCanvasLocation] when one of them moves.
type BoxFields struct {
	Style      *pr.Style
	Element    *html.Node
	PseudoType string
	Anonymous  bool

	Parent          Box // non owning
	ContainingBlock Box
	ContainingLayer *Layer
	Layer           *Layer // the layer established by the box, if any

	X, Y         int
	AbsX, AbsY   int
	ContentWidth int
	Height       int // including margins, borders and paddings

	LeftMBP, RightMBP int
	TopMBP, BottomMBP int

	// non nil for relatively positioned boxes, once laid out
	RelativeOffset *Point
}

func (b *BoxFields) Box() *BoxFields { return b }

// Width returns the width of the margin box.
func (b *BoxFields) Width() int { return b.LeftMBP + b.ContentWidth + b.RightMBP }

// Tx and Ty locate the content origin relative to the margin edge.
func (b *BoxFields) Tx() int { return b.LeftMBP }
func (b *BoxFields) Ty() int { return b.TopMBP }

// MarginEdge returns the margin box translated by (tx, ty).
func (b *BoxFields) MarginEdge(tx, ty int) Rect {
	return Rect{X: b.X + tx, Y: b.Y + ty, Width: b.Width(), Height: b.Height}
}

// AbsMarginEdge returns the margin box in document coordinates.
func (b *BoxFields) AbsMarginEdge() Rect {
	return Rect{X: b.AbsX, Y: b.AbsY, Width: b.Width(), Height: b.Height}
}

// ElementTag returns the tag of the element, or an empty string.
func (b *BoxFields) ElementTag() string {
	if b.Element == nil {
		return ""
	}
	return b.Element.Data
}

func (b *BoxFields) String() string {
	tag := b.ElementTag()
	if b.PseudoType != "" {
		tag += "::" + b.PseudoType
	}
	return fmt.Sprintf("%s (%d, %d) %dx%d", tag, b.X, b.Y, b.Width(), b.Height)
}

// positionParent returns the box the position of [b] is relative to.
func positionParent(b Box) Box {
	bf := b.Box()
	if _, isBlock := b.(*BlockBox); isBlock && bf.ContainingBlock != nil &&
		(bf.Style.IsFloated() || bf.Style.IsAbsolute()) {
		return bf.ContainingBlock
	}
	return bf.Parent
}

// CalcCanvasLocation updates the absolute position of [b],
// from the one of its parent.
func CalcCanvasLocation(b Box) {
	bf := b.Box()
	parent := positionParent(b)
	if parent == nil {
		bf.AbsX, bf.AbsY = bf.X, bf.Y
		return
	}
	pf := parent.Box()
	bf.AbsX = pf.AbsX + pf.Tx() + bf.X
	bf.AbsY = pf.AbsY + pf.Ty() + bf.Y
}

// CalcChildLocations updates the absolute positions of the
// descendants of [b].
func CalcChildLocations(b Box) {
	for _, child := range b.Children() {
		CalcCanvasLocation(child)
		CalcChildLocations(child)
	}
}

// ContentType describes the children of a block box.
type ContentType uint8

const (
	ContentEmpty ContentType = iota
	ContentInline
	ContentBlock
)

func (c ContentType) String() string {
	switch c {
	case ContentInline:
		return "inline"
	case ContentBlock:
		return "block"
	default:
		return "empty"
	}
}

// FloatRemover is implemented by the float managers, so that
// floats are unregistered when reset.
type FloatRemover interface {
	RemoveFloat(box *BlockBox)
}

// Marker is an outside list marker.
type Marker struct {
	Text  string
	Style *pr.Style

	// set by the layout, relative to the first line
	X, Width int
}

// BlockBox is a block-level box, an inline-block, a float, an absolutely
// positioned or a running box, or a table part laid out as a block.
//
// Its content is either block-level boxes or inline content, as
// described by ContentType, which is fixed when the box is built.
type BlockBox struct {
	BoxFields

	ContentType ContentType

	// ContentBlock: the block-level children;
	// ContentInline: the lines, after layout
	children []Box

	// inline content: *InlineBox and inline-level, floated,
	// absolute or running *BlockBox items, in document order
	InlineContent []Box
	// inline elements started but not ended at the beginning of
	// an anonymous block
	OpenInlines []*InlineBox

	FirstLineStyle, FirstLetterStyle *pr.Style
	Marker                           *Marker

	// number of columns spanned by a table cell
	ColumnSpan int

	// layout state

	NeedPageClear  bool
	Clearance      int
	ChildrenHeight int
	Baseline       int  // of the last line, relative to the margin edge
	HasBaseline    bool // false when the box has no line
	StaticAbsY     int  // document position of running boxes, when encountered

	floatManager FloatRemover
	runningLayer *Layer
}

func (b *BlockBox) Type() BoxType { return BlockT }

func (b *BlockBox) Children() []Box { return b.children }

func (b *BlockBox) String() string {
	return fmt.Sprintf("<Block %s %s>", b.BoxFields.String(), b.ContentType)
}

// NewBlockBox returns a block box for [element].
func NewBlockBox(style *pr.Style, element *html.Node, pseudoType string) *BlockBox {
	return &BlockBox{BoxFields: BoxFields{Style: style, Element: element, PseudoType: pseudoType}, ColumnSpan: 1}
}

// BlockBoxAnonymousFrom returns an anonymous block with the given display,
// whose style inherits from [parent].
func BlockBoxAnonymousFrom(parent Box, display pr.Display) *BlockBox {
	pf := parent.Box()
	out := NewBlockBox(pf.Style.DeriveAnonymous(display), pf.Element, "")
	out.Anonymous = true
	return out
}

// SetChildren replaces the block-level children (or the lines)
// of the box, updating their parent.
func (b *BlockBox) SetChildren(children []Box) {
	b.children = children
	for _, child := range children {
		child.Box().Parent = b
	}
}

// AddChild appends a block-level child or a line.
func (b *BlockBox) AddChild(child Box) {
	child.Box().Parent = b
	b.children = append(b.children, child)
}

// ChildIndex returns the index of [child], or -1.
func (b *BlockBox) ChildIndex(child Box) int {
	for i, c := range b.children {
		if c == child {
			return i
		}
	}
	return -1
}

// IsRoot is true for the box of the root element.
func (b *BlockBox) IsRoot() bool { return b.Parent == nil && b.ContainingBlock == nil }

// SetFloatManager registers the manager a float has been placed with.
func (b *BlockBox) SetFloatManager(m FloatRemover) { b.floatManager = m }

// Lines returns the line boxes of a block with inline content.
func (b *BlockBox) Lines() []*LineBox {
	if b.ContentType != ContentInline {
		return nil
	}
	out := make([]*LineBox, 0, len(b.children))
	for _, child := range b.children {
		if line, ok := child.(*LineBox); ok {
			out = append(out, line)
		}
	}
	return out
}

// Reset discards the result of a previous layout of the box
// and its descendants, so that it can be laid out again.
// Floats are removed from their manager, running boxes from their
// registry, and the layers established in the subtree are detached.
func (b *BlockBox) Reset() {
	b.X, b.Y = 0, 0
	b.AbsX, b.AbsY = 0, 0
	b.ContentWidth, b.Height = 0, 0
	b.LeftMBP, b.RightMBP, b.TopMBP, b.BottomMBP = 0, 0, 0, 0
	b.RelativeOffset = nil
	b.Clearance = 0
	b.ChildrenHeight = 0
	b.Baseline, b.HasBaseline = 0, false
	if b.Marker != nil {
		b.Marker.X, b.Marker.Width = 0, 0
	}

	if b.floatManager != nil {
		b.floatManager.RemoveFloat(b)
		b.floatManager = nil
	}
	if b.runningLayer != nil {
		b.runningLayer.RemoveRunningBlock(b)
	}
	if b.Layer != nil {
		b.Layer.Detach()
		b.Layer = nil
	}
	b.ContainingLayer = nil

	switch b.ContentType {
	case ContentInline:
		b.children = nil
		for _, item := range b.InlineContent {
			if block, ok := item.(*BlockBox); ok {
				block.Reset()
			}
		}
	case ContentBlock:
		for _, child := range b.children {
			if block, ok := child.(*BlockBox); ok {
				block.Reset()
			}
		}
	}
}

// ResetChildren resets the children in [start, end].
func (b *BlockBox) ResetChildren(start, end int) {
	for i := start; i <= end && i < len(b.children); i++ {
		if block, ok := b.children[i].(*BlockBox); ok {
			block.Reset()
		}
	}
}

// Clone returns a deep copy of the box as built, without layout information.
// It is used for running elements, laid out once per page.
func (b *BlockBox) Clone() *BlockBox { return b.clone(map[*InlineBox]*InlineBox{}) }

// clone records the copies of the inline items in [clones], so that
// the open inlines of the anonymous blocks refer to the copies.
func (b *BlockBox) clone(clones map[*InlineBox]*InlineBox) *BlockBox {
	out := NewBlockBox(b.Style, b.Element, b.PseudoType)
	out.Anonymous = b.Anonymous
	out.ContentType = b.ContentType
	out.FirstLineStyle, out.FirstLetterStyle = b.FirstLineStyle, b.FirstLetterStyle
	out.ColumnSpan = b.ColumnSpan
	if b.Marker != nil {
		out.Marker = &Marker{Text: b.Marker.Text, Style: b.Marker.Style}
	}
	for _, ib := range b.OpenInlines {
		if c, ok := clones[ib]; ok {
			out.OpenInlines = append(out.OpenInlines, c)
		} else {
			out.OpenInlines = append(out.OpenInlines, ib)
		}
	}
	for _, item := range b.InlineContent {
		switch item := item.(type) {
		case *InlineBox:
			c := *item
			c.Parent = out
			clones[item] = &c
			out.InlineContent = append(out.InlineContent, &c)
		case *BlockBox:
			c := item.clone(clones)
			c.Parent = out
			out.InlineContent = append(out.InlineContent, c)
		}
	}
	if b.ContentType == ContentBlock {
		for _, child := range b.children {
			if block, ok := child.(*BlockBox); ok {
				out.AddChild(block.clone(clones))
			}
		}
	}
	return out
}

// InlineBox is one item of the inline content of a block: a run of text
// belonging to an inline element. An element spanning several items is
// opened by the item with StartsHere and closed by the one with EndsHere.
type InlineBox struct {
	BoxFields

	Text       string
	StartsHere bool
	EndsHere   bool
}

func (b *InlineBox) Type() BoxType { return InlineT }

func (b *InlineBox) Children() []Box { return nil }

func (b *InlineBox) String() string {
	return fmt.Sprintf("<Inline %s %q start:%v end:%v>", b.ElementTag(), b.Text, b.StartsHere, b.EndsHere)
}

// JustificationInfo stores the extra space added after each
// character of a justified line.
type JustificationInfo struct {
	NonSpaceAdjust, SpaceAdjust float64
}

// TextDecoration is one decoration line, with an offset from
// the top of the box.
type TextDecoration struct {
	Kind      pr.Decoration
	Offset    int
	Thickness int
}

// FloatDistances are the intrusions of the floats in a line.
type FloatDistances struct {
	Left, Right int
}

// LineBox is one line of the inline content of a block.
type LineBox struct {
	BoxFields

	children []Box
	// floats, absolutes and running boxes found on the line
	NonFlowContent []*BlockBox

	ContainsContent bool // some text or atomic box
	FirstLine       bool
	EndsOnNL        bool // the line ends with a preserved newline

	ContentStart   int // text-indent
	FloatDistances FloatDistances
	Baseline       int

	Justification   *JustificationInfo
	TextDecorations []TextDecoration
	Marker          *Marker

	// translation applied to move the line to the next page
	PaginationTranslation int
}

func (b *LineBox) Type() BoxType { return LineT }

func (b *LineBox) Children() []Box {
	if len(b.NonFlowContent) == 0 {
		return b.children
	}
	out := make([]Box, 0, len(b.children)+len(b.NonFlowContent))
	out = append(out, b.children...)
	for _, nf := range b.NonFlowContent {
		out = append(out, nf)
	}
	return out
}

// InlineChildren returns the in-flow content of the line.
func (b *LineBox) InlineChildren() []Box { return b.children }

func (b *LineBox) AddChild(child Box) {
	child.Box().Parent = b
	b.children = append(b.children, child)
}

func (b *LineBox) AddNonFlowContent(box *BlockBox) {
	box.Parent = b
	b.NonFlowContent = append(b.NonFlowContent, box)
}

func (b *LineBox) String() string {
	return fmt.Sprintf("<Line %s>", b.BoxFields.String())
}

// NewLineBox returns an empty line for the block [parent].
func NewLineBox(parent *BlockBox) *LineBox {
	out := &LineBox{BoxFields: BoxFields{Style: parent.Style, Element: parent.Element, Anonymous: true}}
	out.Parent = parent
	return out
}

// InlineLayoutBox is the fragment of an inline element on one line.
// Its Y is the top of the text area, and its content origin is
// translated by the left margin, border and padding.
type InlineLayoutBox struct {
	BoxFields

	Source   *InlineBox // the item which started the element
	children []Box

	StartsHere, EndsHere bool
	Baseline             int // relative to Y

	TextDecorations []TextDecoration
}

func (b *InlineLayoutBox) Type() BoxType { return InlineLayoutT }

func (b *InlineLayoutBox) Children() []Box { return b.children }

func (b *InlineLayoutBox) AddChild(child Box) {
	child.Box().Parent = b
	b.children = append(b.children, child)
}

// ContainsContent is true if some text or atomic box is
// found in the fragment.
func (b *InlineLayoutBox) ContainsContent() bool {
	for _, child := range b.children {
		switch child := child.(type) {
		case *InlineText:
			if child.Text != "" {
				return true
			}
		case *InlineLayoutBox:
			if child.ContainsContent() {
				return true
			}
		case *BlockBox:
			return true
		}
	}
	return false
}

func (b *InlineLayoutBox) String() string {
	return fmt.Sprintf("<InlineLayout %s>", b.BoxFields.String())
}

// NewInlineLayoutBox starts a fragment of the element of [source].
// [startsHere] is false for the fragments continuing on a new line.
func NewInlineLayoutBox(source *InlineBox, startsHere bool) *InlineLayoutBox {
	return &InlineLayoutBox{
		BoxFields:  BoxFields{Style: source.Style, Element: source.Element, PseudoType: source.PseudoType, Anonymous: source.Anonymous},
		Source:     source,
		StartsHere: startsHere,
	}
}

// InlineText is a run of text on one line. Its X is relative to the
// content origin of its parent and its Y is always 0.
type InlineText struct {
	BoxFields

	Master     []rune // the text of the source item
	Start, End int    // runes offsets in Master
	Text       string // Master[Start:End], possibly trimmed

	EndsOnNL bool
}

func (b *InlineText) Type() BoxType { return TextT }

func (b *InlineText) Children() []Box { return nil }

func (b *InlineText) String() string {
	return fmt.Sprintf("<Text %q x:%d w:%d>", b.Text, b.X, b.ContentWidth)
}

// Descendants returns [box] and all its descendants, in tree order,
// including the inline content of blocks not yet laid out.
func Descendants(box Box) []Box {
	out := []Box{box}
	for _, child := range box.Children() {
		out = append(out, Descendants(child)...)
	}
	if block, ok := box.(*BlockBox); ok && block.ContentType == ContentInline && len(block.children) == 0 {
		for _, item := range block.InlineContent {
			out = append(out, Descendants(item)...)
		}
	}
	return out
}
