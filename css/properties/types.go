package properties

import "fmt"

// Value is a declared value, validated but not yet computed.
type Value interface {
	isValue()
}

func (DefaultValue) isValue() {}
func (Keyword) isValue()      {}
func (Dimension) isValue()    {}
func (Strings) isValue()      {}
func (Contents) isValue()     {}
func (CounterOps) isValue()   {}
func (Running) isValue()      {}
func (Decoration) isValue()   {}
func (PageSize) isValue()     {}

// DefaultValue is one of the "inherit" and "initial" keywords.
type DefaultValue uint8

const (
	Inherit DefaultValue = iota + 1
	Initial
)

func (d DefaultValue) String() string {
	switch d {
	case Inherit:
		return "<inherit>"
	case Initial:
		return "<initial>"
	default:
		return "<invalid default>"
	}
}

// Keyword is a lower-cased CSS identifier.
type Keyword string

// Strings is a list of names, like font families.
type Strings []string

// Running is the value of position: running(name).
type Running string

// PageSize is the value of the size descriptor.
type PageSize [2]Dimension

type Unit uint8

const (
	Scalar Unit = iota // no unit
	Pixels
	Pt
	Em
	Ex
	Percentage
	In
	Cm
	Mm
)

var unitNames = [...]string{Scalar: "", Pixels: "px", Pt: "pt", Em: "em", Ex: "ex", Percentage: "%", In: "in", Cm: "cm", Mm: "mm"}

func (u Unit) String() string { return unitNames[u] }

// UnitFromString returns the unit and true if [s] is supported.
func UnitFromString(s string) (Unit, bool) {
	for i, n := range unitNames {
		if n == s && i != int(Scalar) {
			return Unit(i), true
		}
	}
	return 0, false
}

// Dimension is a number with an optional unit.
type Dimension struct {
	Value Fl
	Unit  Unit
}

func (d Dimension) String() string { return fmt.Sprintf("%g%s", d.Value, d.Unit) }

// ToPixels converts an absolute or font relative dimension.
// Percentages are returned as is.
func (d Dimension) ToPixels(fontSize Fl) Fl {
	switch d.Unit {
	case Pt:
		return d.Value * 4 / 3
	case Em:
		return d.Value * fontSize
	case Ex:
		return d.Value * fontSize / 2
	case In:
		return d.Value * 96
	case Cm:
		return d.Value * 96 / 2.54
	case Mm:
		return d.Value * 96 / 25.4
	default:
		return d.Value
	}
}

// LengthUnit is the unit of a computed length.
type LengthUnit uint8

const (
	LPx LengthUnit = iota
	LPercent
	LAuto
)

// Length is a computed length: pixels, a percentage of the containing
// block, or auto.
type Length struct {
	Value Fl
	Unit  LengthUnit
}

var (
	Auto = Length{Unit: LAuto}
	Zero = Length{}
)

func Px(v Fl) Length      { return Length{Value: v} }
func Percent(v Fl) Length { return Length{Value: v, Unit: LPercent} }

func (l Length) IsAuto() bool { return l.Unit == LAuto }

// Resolve returns the used value against the containing block size [base].
// Auto resolves to 0. The conversion to integer truncates.
func (l Length) Resolve(base int) int {
	switch l.Unit {
	case LPercent:
		return int(l.Value * Fl(base) / 100)
	case LAuto:
		return 0
	default:
		return int(l.Value)
	}
}

func (l Length) String() string {
	switch l.Unit {
	case LPercent:
		return fmt.Sprintf("%g%%", l.Value)
	case LAuto:
		return "auto"
	default:
		return fmt.Sprintf("%gpx", l.Value)
	}
}

type Display uint8

const (
	DisplayInline Display = iota
	DisplayBlock
	DisplayListItem
	DisplayInlineBlock
	DisplayTable
	DisplayInlineTable
	DisplayTableRowGroup
	DisplayTableHeaderGroup
	DisplayTableFooterGroup
	DisplayTableRow
	DisplayTableColumnGroup
	DisplayTableColumn
	DisplayTableCell
	DisplayTableCaption
	DisplayNone
)

var displayNames = [...]string{
	DisplayInline:           "inline",
	DisplayBlock:            "block",
	DisplayListItem:         "list-item",
	DisplayInlineBlock:      "inline-block",
	DisplayTable:            "table",
	DisplayInlineTable:      "inline-table",
	DisplayTableRowGroup:    "table-row-group",
	DisplayTableHeaderGroup: "table-header-group",
	DisplayTableFooterGroup: "table-footer-group",
	DisplayTableRow:         "table-row",
	DisplayTableColumnGroup: "table-column-group",
	DisplayTableColumn:      "table-column",
	DisplayTableCell:        "table-cell",
	DisplayTableCaption:     "table-caption",
	DisplayNone:             "none",
}

func (d Display) String() string { return displayNames[d] }

// IsInlineLevel is true for inline, inline-block and inline-table.
func (d Display) IsInlineLevel() bool {
	return d == DisplayInline || d == DisplayInlineBlock || d == DisplayInlineTable
}

// IsTablePart is true for the internal table displays and captions.
func (d Display) IsTablePart() bool {
	return d >= DisplayTableRowGroup && d <= DisplayTableCaption
}

type Float uint8

const (
	FloatNone Float = iota
	FloatLeft
	FloatRight
)

type Clear uint8

const (
	ClearNone Clear = iota
	ClearLeft
	ClearRight
	ClearBoth
)

type Position uint8

const (
	PositionStatic Position = iota
	PositionRelative
	PositionAbsolute
	PositionFixed
	PositionRunning
)

// ZIndex is either auto or an integer.
type ZIndex struct {
	Auto  bool
	Value int
}

type PageBreak uint8

const (
	PageBreakAuto PageBreak = iota
	PageBreakAlways
	PageBreakAvoid
	PageBreakLeft
	PageBreakRight
)

var pageBreakNames = [...]string{"auto", "always", "avoid", "left", "right"}

func (p PageBreak) String() string { return pageBreakNames[p] }

type VerticalAlignKind uint8

const (
	VABaseline VerticalAlignKind = iota
	VATop
	VABottom
	VAMiddle
	VATextTop
	VATextBottom
	VASub
	VASuper
	VALength // raise by Length, percentages refer to the line height
)

type VerticalAlign struct {
	Kind   VerticalAlignKind
	Length Length
}

type WhiteSpace uint8

const (
	WhiteSpaceNormal WhiteSpace = iota
	WhiteSpacePre
	WhiteSpaceNowrap
	WhiteSpacePreWrap
	WhiteSpacePreLine
)

type TextAlign uint8

const (
	TextAlignLeft TextAlign = iota
	TextAlignRight
	TextAlignCenter
	TextAlignJustify
)

// LineHeight is normal, a multiplier of the font size, or a length.
type LineHeight struct {
	Normal bool
	Number Fl // used when > 0
	Pixels Fl
}

// Font is the font specification handed to the text measurer.
type Font struct {
	Family string
	Size   Fl
	Weight int
	Italic bool
}

func (f Font) String() string {
	style := "normal"
	if f.Italic {
		style = "italic"
	}
	return fmt.Sprintf("%s %d %gpx %s", style, f.Weight, f.Size, f.Family)
}

// Decoration is a set of text decoration lines.
type Decoration uint8

const (
	DecorationUnderline Decoration = 1 << iota
	DecorationOverline
	DecorationLineThrough
)

type TextTransform uint8

const (
	TextTransformNone TextTransform = iota
	TextTransformUppercase
	TextTransformLowercase
	TextTransformCapitalize
)

type WordWrap uint8

const (
	WordWrapNormal WordWrap = iota
	WordWrapBreakWord
)

type ListStyleType uint8

const (
	ListStyleDisc ListStyleType = iota
	ListStyleCircle
	ListStyleSquare
	ListStyleDecimal
	ListStyleLowerAlpha
	ListStyleUpperAlpha
	ListStyleLowerRoman
	ListStyleUpperRoman
	ListStyleNone
)

var listStyleNames = map[string]ListStyleType{
	"disc": ListStyleDisc, "circle": ListStyleCircle, "square": ListStyleSquare,
	"decimal": ListStyleDecimal, "lower-alpha": ListStyleLowerAlpha, "lower-latin": ListStyleLowerAlpha,
	"upper-alpha": ListStyleUpperAlpha, "upper-latin": ListStyleUpperAlpha,
	"lower-roman": ListStyleLowerRoman, "upper-roman": ListStyleUpperRoman, "none": ListStyleNone,
}

// ListStyleFromString returns the list style for [s], and false if unknown.
func ListStyleFromString(s string) (ListStyleType, bool) {
	l, ok := listStyleNames[s]
	return l, ok
}

type ListStylePosition uint8

const (
	ListStyleOutside ListStylePosition = iota
	ListStyleInside
)

type CaptionSide uint8

const (
	CaptionTop CaptionSide = iota
	CaptionBottom
)

type Overflow uint8

const (
	OverflowVisible Overflow = iota
	OverflowHidden
)
