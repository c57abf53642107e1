package properties

import (
	"golang.org/x/text/language"
)

// Style is the computed style of an element, a pseudo element
// or an anonymous box. Once computed, a style is never mutated:
// derivations return new values.
type Style struct {
	Display     Display
	Float       Float
	Clear       Clear
	Position    Position
	RunningName string // for position: running(name)

	Top, Right, Bottom, Left Length
	ZIndex                   ZIndex

	Width, Height       Length
	MinWidth, MinHeight Length
	MaxWidth, MaxHeight Length // auto means none

	// indexed by side: top, right, bottom, left
	Margin      [4]Length
	Padding     [4]Length
	BorderWidth [4]Fl
	BorderStyle [4]Keyword

	PageBreakBefore PageBreak
	PageBreakAfter  PageBreak
	PageBreakInside PageBreak // auto or avoid
	KeepWithInline  bool
	PageSequence    bool // a new page sequence starts with this element
	Orphans, Widows int

	VerticalAlign  VerticalAlign
	WhiteSpace     WhiteSpace
	TextAlign      TextAlign
	TextIndent     Length
	LineHeight     LineHeight
	Font           Font
	TextDecoration Decoration
	TextTransform  TextTransform
	WordWrap       WordWrap

	ListStyleType     ListStyleType
	ListStylePosition ListStylePosition
	CaptionSide       CaptionSide
	Overflow          Overflow

	Content          Contents
	CounterReset     CounterOps
	CounterIncrement CounterOps

	Lang language.Tag
}

// Side indexes
const (
	Top = iota
	Right
	Bottom
	Left
)

// DefaultFontSize is the medium font size.
const DefaultFontSize Fl = 16

// InitialStyle returns the style with all properties set to their
// initial value, using [fontSize] for medium.
func InitialStyle(fontSize Fl) *Style {
	if fontSize <= 0 {
		fontSize = DefaultFontSize
	}
	return &Style{
		Display:     DisplayInline,
		Top:         Auto,
		Right:       Auto,
		Bottom:      Auto,
		Left:        Auto,
		ZIndex:      ZIndex{Auto: true},
		Width:       Auto,
		Height:      Auto,
		MaxWidth:    Auto,
		MaxHeight:   Auto,
		BorderWidth: [4]Fl{3, 3, 3, 3},
		BorderStyle: [4]Keyword{"none", "none", "none", "none"},
		Orphans:     2,
		Widows:      2,
		LineHeight:  LineHeight{Normal: true},
		Font:        Font{Family: "serif", Size: fontSize, Weight: 400},
		Lang:        language.Und,
	}
}

var initialStyle = InitialStyle(DefaultFontSize)

// InheritFrom returns a style whose inherited properties come from [parent]
// and the others have their initial value.
func InheritFrom(parent *Style) *Style {
	out := InitialStyle(parent.Font.Size)
	for p := range Inherited {
		out.copyProp(parent, p)
	}
	return out
}

// DeriveAnonymous returns the style of an anonymous box with the given display,
// generated inside a box with style [s].
func (s *Style) DeriveAnonymous(display Display) *Style {
	out := InheritFrom(s)
	out.Display = display
	return out
}

// Copy returns a shallow copy of the style.
func (s *Style) Copy() *Style {
	out := *s
	return &out
}

// WithFirstLine returns the style [s] as modified by the ::first-line
// pseudo element style [fl], which only affects fonts and decorations.
func (s *Style) WithFirstLine(fl *Style) *Style {
	if fl == nil {
		return s
	}
	out := s.Copy()
	out.Font = fl.Font
	out.LineHeight = fl.LineHeight
	out.TextDecoration |= fl.TextDecoration
	if fl.TextTransform != TextTransformNone {
		out.TextTransform = fl.TextTransform
	}
	return out
}

func (s *Style) IsFloated() bool      { return s.Float != FloatNone }
func (s *Style) IsFloatedLeft() bool  { return s.Float == FloatLeft }
func (s *Style) IsFloatedRight() bool { return s.Float == FloatRight }

// IsAbsolute is true for absolute and fixed positioning.
func (s *Style) IsAbsolute() bool {
	return s.Position == PositionAbsolute || s.Position == PositionFixed
}

func (s *Style) IsFixed() bool    { return s.Position == PositionFixed }
func (s *Style) IsRelative() bool { return s.Position == PositionRelative }
func (s *Style) IsRunning() bool  { return s.Position == PositionRunning }

// IsPositioned is true when the box is relatively or absolutely positioned.
func (s *Style) IsPositioned() bool {
	return s.Position == PositionRelative || s.IsAbsolute()
}

// IsLayedOutInInlineContext returns true if the element is part of the inline
// content of its parent: inline-level elements, but also floats,
// absolutes and running elements.
func (s *Style) IsLayedOutInInlineContext() bool {
	return s.IsFloated() || s.IsAbsolute() || s.IsRunning() || s.Display.IsInlineLevel()
}

func (s *Style) IsCleared() bool    { return s.Clear != ClearNone }
func (s *Style) IsClearLeft() bool  { return s.Clear == ClearLeft || s.Clear == ClearBoth }
func (s *Style) IsClearRight() bool { return s.Clear == ClearRight || s.Clear == ClearBoth }

func (s *Style) IsAvoidPageBreakInside() bool { return s.PageBreakInside == PageBreakAvoid }
func (s *Style) IsKeepWithInline() bool       { return s.KeepWithInline }

// IsForcePageBreakBefore is true for always, left and right.
func (s *Style) IsForcePageBreakBefore() bool { return isForced(s.PageBreakBefore) }

// IsForcePageBreakAfter is true for always, left and right.
func (s *Style) IsForcePageBreakAfter() bool { return isForced(s.PageBreakAfter) }

func isForced(p PageBreak) bool {
	return p == PageBreakAlways || p == PageBreakLeft || p == PageBreakRight
}

// IsCollapsingSpaces is true when sequences of spaces are collapsed.
func (s *Style) IsCollapsingSpaces() bool {
	return s.WhiteSpace == WhiteSpaceNormal || s.WhiteSpace == WhiteSpaceNowrap || s.WhiteSpace == WhiteSpacePreLine
}

// RequiresLayer is true for the boxes establishing their own layer.
func (s *Style) RequiresLayer() bool { return s.IsPositioned() }

// IsStackingContext is true for positioned elements with an integer z-index.
func (s *Style) IsStackingContext() bool { return s.IsPositioned() && !s.ZIndex.Auto }

// Border returns the used border width for [side], which is 0
// when the border style is none or hidden. The conversion truncates.
func (s *Style) Border(side int) int {
	if st := s.BorderStyle[side]; st == "none" || st == "hidden" || st == "" {
		return 0
	}
	return int(s.BorderWidth[side])
}

// MarginBorderPadding returns the sum of the margin, border and padding
// for [side], percentages referring to [cbWidth].
func (s *Style) MarginBorderPadding(side, cbWidth int) int {
	return s.Margin[side].Resolve(cbWidth) + s.Border(side) + s.Padding[side].Resolve(cbWidth)
}

// BorderPadding returns the sum of the border and padding for [side].
func (s *Style) BorderPadding(side, cbWidth int) int {
	return s.Border(side) + s.Padding[side].Resolve(cbWidth)
}

func (s *Style) copyProp(src *Style, p KnownProp) {
	switch p {
	case PDisplay:
		s.Display = src.Display
	case PFloat:
		s.Float = src.Float
	case PClear:
		s.Clear = src.Clear
	case PPosition:
		s.Position, s.RunningName = src.Position, src.RunningName
	case PTop:
		s.Top = src.Top
	case PRight:
		s.Right = src.Right
	case PBottom:
		s.Bottom = src.Bottom
	case PLeft:
		s.Left = src.Left
	case PZIndex:
		s.ZIndex = src.ZIndex
	case PWidth:
		s.Width = src.Width
	case PHeight:
		s.Height = src.Height
	case PMinWidth:
		s.MinWidth = src.MinWidth
	case PMinHeight:
		s.MinHeight = src.MinHeight
	case PMaxWidth:
		s.MaxWidth = src.MaxWidth
	case PMaxHeight:
		s.MaxHeight = src.MaxHeight
	case PMarginTop, PMarginRight, PMarginBottom, PMarginLeft:
		side := p - PMarginTop
		s.Margin[side] = src.Margin[side]
	case PPaddingTop, PPaddingRight, PPaddingBottom, PPaddingLeft:
		side := p - PPaddingTop
		s.Padding[side] = src.Padding[side]
	case PBorderTopWidth, PBorderRightWidth, PBorderBottomWidth, PBorderLeftWidth:
		side := p - PBorderTopWidth
		s.BorderWidth[side] = src.BorderWidth[side]
	case PBorderTopStyle, PBorderRightStyle, PBorderBottomStyle, PBorderLeftStyle:
		side := p - PBorderTopStyle
		s.BorderStyle[side] = src.BorderStyle[side]
	case PPageBreakBefore:
		s.PageBreakBefore = src.PageBreakBefore
	case PPageBreakAfter:
		s.PageBreakAfter = src.PageBreakAfter
	case PPageBreakInside:
		s.PageBreakInside = src.PageBreakInside
	case PKeepWithInline:
		s.KeepWithInline = src.KeepWithInline
	case PPageSequence:
		s.PageSequence = src.PageSequence
	case POrphans:
		s.Orphans = src.Orphans
	case PWidows:
		s.Widows = src.Widows
	case PVerticalAlign:
		s.VerticalAlign = src.VerticalAlign
	case PWhiteSpace:
		s.WhiteSpace = src.WhiteSpace
	case PTextAlign:
		s.TextAlign = src.TextAlign
	case PTextIndent:
		s.TextIndent = src.TextIndent
	case PLineHeight:
		s.LineHeight = src.LineHeight
	case PFontFamily:
		s.Font.Family = src.Font.Family
	case PFontSize:
		s.Font.Size = src.Font.Size
	case PFontWeight:
		s.Font.Weight = src.Font.Weight
	case PFontStyle:
		s.Font.Italic = src.Font.Italic
	case PTextDecoration:
		s.TextDecoration = src.TextDecoration
	case PTextTransform:
		s.TextTransform = src.TextTransform
	case PWordWrap:
		s.WordWrap = src.WordWrap
	case PListStyleType:
		s.ListStyleType = src.ListStyleType
	case PListStylePosition:
		s.ListStylePosition = src.ListStylePosition
	case PCaptionSide:
		s.CaptionSide = src.CaptionSide
	case POverflow:
		s.Overflow = src.Overflow
	case PContent:
		s.Content = src.Content
	case PCounterReset:
		s.CounterReset = src.CounterReset
	case PCounterIncrement:
		s.CounterIncrement = src.CounterIncrement
	case PLang:
		s.Lang = src.Lang
	}
}

func (s *Style) IsListItem() bool    { return s.Display == DisplayListItem }
func (s *Style) IsInlineBlock() bool { return s.Display == DisplayInlineBlock || s.Display == DisplayInlineTable }

// EstablishesBFC is true for the boxes starting a new block formatting
// context: floats, absolutes, inline-blocks, table cells and boxes
// whose overflow is not visible.
func (s *Style) EstablishesBFC() bool {
	return s.IsFloated() || s.IsAbsolute() || s.IsInlineBlock() ||
		s.Display == DisplayTableCell || s.Overflow != OverflowVisible
}
