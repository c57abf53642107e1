// Package properties defines the computed style consumed by the layout:
// typed CSS values, the [Style] object with its queries, and the
// derivations needed for anonymous boxes and pseudo elements.
//
// The style computation has two steps, one per type family:
//
//	Value (declared, validated) -(Style.Apply)-> Style (computed)
//
// Validation of raw tokens into [Value] is done by the validation package,
// the cascade by the tree package.
package properties

import (
	"github.com/nichevision/flyingsaucer-sub000/utils"
)

type Fl = utils.Fl

// KnownProp identifies a longhand property.
type KnownProp uint8

const (
	_ KnownProp = iota
	PDisplay
	PFloat
	PClear
	PPosition
	PTop
	PRight
	PBottom
	PLeft
	PZIndex
	PWidth
	PHeight
	PMinWidth
	PMinHeight
	PMaxWidth
	PMaxHeight

	// grouped by side, in the [top, right, bottom, left] order,
	// so that PMarginTop + side is the property for side
	PMarginTop
	PMarginRight
	PMarginBottom
	PMarginLeft
	PPaddingTop
	PPaddingRight
	PPaddingBottom
	PPaddingLeft
	PBorderTopWidth
	PBorderRightWidth
	PBorderBottomWidth
	PBorderLeftWidth
	PBorderTopStyle
	PBorderRightStyle
	PBorderBottomStyle
	PBorderLeftStyle

	PPageBreakBefore
	PPageBreakAfter
	PPageBreakInside
	PKeepWithInline
	PPageSequence
	POrphans
	PWidows

	PVerticalAlign
	PWhiteSpace
	PTextAlign
	PTextIndent
	PLineHeight
	PFontFamily
	PFontSize
	PFontWeight
	PFontStyle
	PTextDecoration
	PTextTransform
	PWordWrap
	PListStyleType
	PListStylePosition
	PCaptionSide
	POverflow
	PContent
	PCounterReset
	PCounterIncrement
	PLang
	PSize

	NbProperties
)

var propsNames = [...]string{
	PDisplay:           "display",
	PFloat:             "float",
	PClear:             "clear",
	PPosition:          "position",
	PTop:               "top",
	PRight:             "right",
	PBottom:            "bottom",
	PLeft:              "left",
	PZIndex:            "z-index",
	PWidth:             "width",
	PHeight:            "height",
	PMinWidth:          "min-width",
	PMinHeight:         "min-height",
	PMaxWidth:          "max-width",
	PMaxHeight:         "max-height",
	PMarginTop:         "margin-top",
	PMarginRight:       "margin-right",
	PMarginBottom:      "margin-bottom",
	PMarginLeft:        "margin-left",
	PPaddingTop:        "padding-top",
	PPaddingRight:      "padding-right",
	PPaddingBottom:     "padding-bottom",
	PPaddingLeft:       "padding-left",
	PBorderTopWidth:    "border-top-width",
	PBorderRightWidth:  "border-right-width",
	PBorderBottomWidth: "border-bottom-width",
	PBorderLeftWidth:   "border-left-width",
	PBorderTopStyle:    "border-top-style",
	PBorderRightStyle:  "border-right-style",
	PBorderBottomStyle: "border-bottom-style",
	PBorderLeftStyle:   "border-left-style",
	PPageBreakBefore:   "page-break-before",
	PPageBreakAfter:    "page-break-after",
	PPageBreakInside:   "page-break-inside",
	PKeepWithInline:    "-fs-keep-with-inline",
	PPageSequence:      "-fs-page-sequence",
	POrphans:           "orphans",
	PWidows:            "widows",
	PVerticalAlign:     "vertical-align",
	PWhiteSpace:        "white-space",
	PTextAlign:         "text-align",
	PTextIndent:        "text-indent",
	PLineHeight:        "line-height",
	PFontFamily:        "font-family",
	PFontSize:          "font-size",
	PFontWeight:        "font-weight",
	PFontStyle:         "font-style",
	PTextDecoration:    "text-decoration",
	PTextTransform:     "text-transform",
	PWordWrap:          "word-wrap",
	PListStyleType:     "list-style-type",
	PListStylePosition: "list-style-position",
	PCaptionSide:       "caption-side",
	POverflow:          "overflow",
	PContent:           "content",
	PCounterReset:      "counter-reset",
	PCounterIncrement:  "counter-increment",
	PLang:              "lang",
	PSize:              "size",
}

var propsFromNames = map[string]KnownProp{}

func init() {
	for i, name := range propsNames {
		if name != "" {
			propsFromNames[name] = KnownProp(i)
		}
	}
	propsFromNames["overflow-wrap"] = PWordWrap
}

func (p KnownProp) String() string {
	if int(p) < len(propsNames) {
		return propsNames[p]
	}
	return "<invalid property>"
}

// PropsFromName returns the longhand property with the given CSS name,
// or 0 if it is not supported.
func PropsFromName(name string) KnownProp { return propsFromNames[name] }

// Inherited lists the inherited properties.
// text-decoration is not really inherited: it is propagated
// by the box nesting instead.
var Inherited = map[KnownProp]bool{
	PWhiteSpace:        true,
	PTextAlign:         true,
	PTextIndent:        true,
	PLineHeight:        true,
	PFontFamily:        true,
	PFontSize:          true,
	PFontWeight:        true,
	PFontStyle:         true,
	PTextTransform:     true,
	PWordWrap:          true,
	PListStyleType:     true,
	PListStylePosition: true,
	PCaptionSide:       true,
	POrphans:           true,
	PWidows:            true,
	PLang:              true,
}

// Declaration is a validated property value, ready for the cascade.
type Declaration struct {
	Prop      KnownProp
	Value     Value
	Important bool
}
