package properties

import (
	"golang.org/x/text/language"
)

var displayKeywords = map[Keyword]Display{}

func init() {
	for i, n := range displayNames {
		displayKeywords[Keyword(n)] = Display(i)
	}
}

var (
	floatKeywords      = map[Keyword]Float{"none": FloatNone, "left": FloatLeft, "right": FloatRight}
	clearKeywords      = map[Keyword]Clear{"none": ClearNone, "left": ClearLeft, "right": ClearRight, "both": ClearBoth}
	positionKeywords   = map[Keyword]Position{"static": PositionStatic, "relative": PositionRelative, "absolute": PositionAbsolute, "fixed": PositionFixed}
	pageBreakKeywords  = map[Keyword]PageBreak{"auto": PageBreakAuto, "always": PageBreakAlways, "avoid": PageBreakAvoid, "left": PageBreakLeft, "right": PageBreakRight, "page": PageBreakAlways}
	whiteSpaceKeywords = map[Keyword]WhiteSpace{"normal": WhiteSpaceNormal, "pre": WhiteSpacePre, "nowrap": WhiteSpaceNowrap, "pre-wrap": WhiteSpacePreWrap, "pre-line": WhiteSpacePreLine}
	textAlignKeywords  = map[Keyword]TextAlign{"left": TextAlignLeft, "start": TextAlignLeft, "right": TextAlignRight, "end": TextAlignRight, "center": TextAlignCenter, "justify": TextAlignJustify}
	vAlignKeywords     = map[Keyword]VerticalAlignKind{
		"baseline": VABaseline, "top": VATop, "bottom": VABottom, "middle": VAMiddle,
		"text-top": VATextTop, "text-bottom": VATextBottom, "sub": VASub, "super": VASuper,
	}
	transformKeywords = map[Keyword]TextTransform{"none": TextTransformNone, "uppercase": TextTransformUppercase, "lowercase": TextTransformLowercase, "capitalize": TextTransformCapitalize}
	fontSizeKeywords  = map[Keyword]Fl{
		"xx-small": 3. / 5, "x-small": 3. / 4, "small": 8. / 9, "medium": 1,
		"large": 6. / 5, "x-large": 3. / 2, "xx-large": 2,
	}
	borderWidthKeywords = map[Keyword]Fl{"thin": 1, "medium": 3, "thick": 5}
)

// Keywords accepted by the given property, used by the validation.
func AcceptsKeyword(p KnownProp, k Keyword) bool {
	var ok bool
	switch p {
	case PDisplay:
		_, ok = displayKeywords[k]
	case PFloat:
		_, ok = floatKeywords[k]
	case PClear:
		_, ok = clearKeywords[k]
	case PPosition:
		_, ok = positionKeywords[k]
	case PPageBreakBefore, PPageBreakAfter:
		_, ok = pageBreakKeywords[k]
	case PPageBreakInside:
		ok = k == "auto" || k == "avoid"
	case PKeepWithInline:
		ok = k == "keep" || k == "auto"
	case PPageSequence:
		ok = k == "start" || k == "auto"
	case PWhiteSpace:
		_, ok = whiteSpaceKeywords[k]
	case PTextAlign:
		_, ok = textAlignKeywords[k]
	case PVerticalAlign:
		_, ok = vAlignKeywords[k]
	case PTextTransform:
		_, ok = transformKeywords[k]
	case PFontSize:
		_, ok = fontSizeKeywords[k]
		ok = ok || k == "smaller" || k == "larger"
	case PFontWeight:
		ok = k == "normal" || k == "bold" || k == "bolder" || k == "lighter"
	case PFontStyle:
		ok = k == "normal" || k == "italic" || k == "oblique"
	case PBorderTopWidth, PBorderRightWidth, PBorderBottomWidth, PBorderLeftWidth:
		_, ok = borderWidthKeywords[k]
	case PBorderTopStyle, PBorderRightStyle, PBorderBottomStyle, PBorderLeftStyle:
		switch k {
		case "none", "hidden", "solid", "dotted", "dashed", "double", "groove", "ridge", "inset", "outset":
			ok = true
		}
	case PWordWrap:
		ok = k == "normal" || k == "break-word" || k == "anywhere"
	case PListStyleType:
		_, ok = listStyleNames[string(k)]
	case PListStylePosition:
		ok = k == "inside" || k == "outside"
	case PCaptionSide:
		ok = k == "top" || k == "bottom"
	case POverflow:
		ok = k == "visible" || k == "hidden" || k == "auto" || k == "scroll"
	case PLineHeight, PTextDecoration, PContent, PCounterReset, PCounterIncrement:
		ok = k == "normal" || k == "none"
	case PZIndex, PTop, PRight, PBottom, PLeft, PWidth, PHeight,
		PMarginTop, PMarginRight, PMarginBottom, PMarginLeft:
		ok = k == "auto"
	case PMaxWidth, PMaxHeight:
		ok = k == "none"
	}
	return ok
}

func (s *Style) length(v Value) (Length, bool) {
	switch v := v.(type) {
	case Keyword:
		if v == "auto" || v == "none" {
			return Auto, true
		}
	case Dimension:
		if v.Unit == Percentage {
			return Percent(v.Value), true
		}
		return Px(v.ToPixels(s.Font.Size)), true
	}
	return Length{}, false
}

// Apply computes the declared value [v] for the property [p].
// [parent] is the parent style, used by inherit and relative font sizes;
// it may be nil for the root element. Since lengths depend on the
// font size, the font size must be applied first.
// Values not matching the property are ignored.
func (s *Style) Apply(p KnownProp, v Value, parent *Style) {
	if d, ok := v.(DefaultValue); ok {
		src := initialStyle
		if d == Inherit && parent != nil {
			src = parent
		}
		s.copyProp(src, p)
		return
	}
	parentFont := DefaultFontSize
	if parent != nil {
		parentFont = parent.Font.Size
	}
	kw, isKw := v.(Keyword)
	switch p {
	case PDisplay:
		if d, ok := displayKeywords[kw]; ok {
			s.Display = d
		}
	case PFloat:
		if f, ok := floatKeywords[kw]; ok {
			s.Float = f
		}
	case PClear:
		if c, ok := clearKeywords[kw]; ok {
			s.Clear = c
		}
	case PPosition:
		if r, ok := v.(Running); ok {
			s.Position, s.RunningName = PositionRunning, string(r)
		} else if pos, ok := positionKeywords[kw]; ok {
			s.Position, s.RunningName = pos, ""
		}
	case PTop, PRight, PBottom, PLeft:
		if l, ok := s.length(v); ok {
			switch p {
			case PTop:
				s.Top = l
			case PRight:
				s.Right = l
			case PBottom:
				s.Bottom = l
			default:
				s.Left = l
			}
		}
	case PZIndex:
		if isKw {
			s.ZIndex = ZIndex{Auto: true}
		} else if d, ok := v.(Dimension); ok {
			s.ZIndex = ZIndex{Value: int(d.Value)}
		}
	case PWidth, PHeight, PMinWidth, PMinHeight, PMaxWidth, PMaxHeight:
		l, ok := s.length(v)
		if !ok {
			return
		}
		switch p {
		case PWidth:
			s.Width = l
		case PHeight:
			s.Height = l
		case PMinWidth:
			s.MinWidth = l
		case PMinHeight:
			s.MinHeight = l
		case PMaxWidth:
			s.MaxWidth = l
		default:
			s.MaxHeight = l
		}
	case PMarginTop, PMarginRight, PMarginBottom, PMarginLeft:
		if l, ok := s.length(v); ok {
			s.Margin[p-PMarginTop] = l
		}
	case PPaddingTop, PPaddingRight, PPaddingBottom, PPaddingLeft:
		if l, ok := s.length(v); ok && !l.IsAuto() {
			s.Padding[p-PPaddingTop] = l
		}
	case PBorderTopWidth, PBorderRightWidth, PBorderBottomWidth, PBorderLeftWidth:
		if w, ok := borderWidthKeywords[kw]; ok {
			s.BorderWidth[p-PBorderTopWidth] = w
		} else if d, ok := v.(Dimension); ok && d.Unit != Percentage {
			s.BorderWidth[p-PBorderTopWidth] = d.ToPixels(s.Font.Size)
		}
	case PBorderTopStyle, PBorderRightStyle, PBorderBottomStyle, PBorderLeftStyle:
		if isKw {
			s.BorderStyle[p-PBorderTopStyle] = kw
		}
	case PPageBreakBefore:
		if b, ok := pageBreakKeywords[kw]; ok {
			s.PageBreakBefore = b
		}
	case PPageBreakAfter:
		if b, ok := pageBreakKeywords[kw]; ok {
			s.PageBreakAfter = b
		}
	case PPageBreakInside:
		if b, ok := pageBreakKeywords[kw]; ok && (b == PageBreakAuto || b == PageBreakAvoid) {
			s.PageBreakInside = b
		}
	case PKeepWithInline:
		s.KeepWithInline = kw == "keep"
	case PPageSequence:
		s.PageSequence = kw == "start"
	case POrphans, PWidows:
		if d, ok := v.(Dimension); ok && d.Value >= 1 {
			if p == POrphans {
				s.Orphans = int(d.Value)
			} else {
				s.Widows = int(d.Value)
			}
		}
	case PVerticalAlign:
		if k, ok := vAlignKeywords[kw]; ok {
			s.VerticalAlign = VerticalAlign{Kind: k}
		} else if l, ok := s.length(v); ok && !l.IsAuto() {
			s.VerticalAlign = VerticalAlign{Kind: VALength, Length: l}
		}
	case PWhiteSpace:
		if w, ok := whiteSpaceKeywords[kw]; ok {
			s.WhiteSpace = w
		}
	case PTextAlign:
		if a, ok := textAlignKeywords[kw]; ok {
			s.TextAlign = a
		}
	case PTextIndent:
		if l, ok := s.length(v); ok && !l.IsAuto() {
			s.TextIndent = l
		}
	case PLineHeight:
		switch v := v.(type) {
		case Keyword:
			s.LineHeight = LineHeight{Normal: true}
		case Dimension:
			switch v.Unit {
			case Scalar:
				s.LineHeight = LineHeight{Number: v.Value}
			case Percentage:
				s.LineHeight = LineHeight{Pixels: v.Value * s.Font.Size / 100}
			default:
				s.LineHeight = LineHeight{Pixels: v.ToPixels(s.Font.Size)}
			}
		}
	case PFontFamily:
		if l, ok := v.(Strings); ok && len(l) > 0 {
			s.Font.Family = l[0]
		}
	case PFontSize:
		switch v := v.(type) {
		case Keyword:
			if f, ok := fontSizeKeywords[v]; ok {
				s.Font.Size = f * DefaultFontSize
			} else if v == "smaller" {
				s.Font.Size = parentFont / 1.2
			} else if v == "larger" {
				s.Font.Size = parentFont * 1.2
			}
		case Dimension:
			switch v.Unit {
			case Percentage:
				s.Font.Size = v.Value * parentFont / 100
			default:
				s.Font.Size = v.ToPixels(parentFont)
			}
		}
	case PFontWeight:
		switch v := v.(type) {
		case Keyword:
			parentWeight := 400
			if parent != nil {
				parentWeight = parent.Font.Weight
			}
			switch v {
			case "normal":
				s.Font.Weight = 400
			case "bold":
				s.Font.Weight = 700
			case "bolder":
				s.Font.Weight = min(parentWeight+300, 900)
			case "lighter":
				s.Font.Weight = max(parentWeight-300, 100)
			}
		case Dimension:
			s.Font.Weight = int(v.Value)
		}
	case PFontStyle:
		s.Font.Italic = kw == "italic" || kw == "oblique"
	case PTextDecoration:
		if d, ok := v.(Decoration); ok {
			s.TextDecoration = d
		} else if isKw {
			s.TextDecoration = 0
		}
	case PTextTransform:
		if t, ok := transformKeywords[kw]; ok {
			s.TextTransform = t
		}
	case PWordWrap:
		if kw == "break-word" || kw == "anywhere" {
			s.WordWrap = WordWrapBreakWord
		} else if isKw {
			s.WordWrap = WordWrapNormal
		}
	case PListStyleType:
		if l, ok := listStyleNames[string(kw)]; ok {
			s.ListStyleType = l
		}
	case PListStylePosition:
		if kw == "inside" {
			s.ListStylePosition = ListStyleInside
		} else if isKw {
			s.ListStylePosition = ListStyleOutside
		}
	case PCaptionSide:
		if kw == "bottom" {
			s.CaptionSide = CaptionBottom
		} else if isKw {
			s.CaptionSide = CaptionTop
		}
	case POverflow:
		if isKw && kw != "visible" {
			s.Overflow = OverflowHidden
		} else if isKw {
			s.Overflow = OverflowVisible
		}
	case PContent:
		if c, ok := v.(Contents); ok {
			s.Content = c
		} else if isKw {
			s.Content = nil
		}
	case PCounterReset, PCounterIncrement:
		var ops CounterOps
		if c, ok := v.(CounterOps); ok {
			ops = c
		}
		if p == PCounterReset {
			s.CounterReset = ops
		} else {
			s.CounterIncrement = ops
		}
	case PLang:
		if l, ok := v.(Strings); ok && len(l) > 0 {
			if tag, err := language.Parse(l[0]); err == nil {
				s.Lang = tag
			}
		}
	}
}

// PageSizes maps the size keywords to their dimensions in pixels.
var PageSizes = map[Keyword][2]int{
	"a3":     {1123, 1587},
	"a4":     {794, 1123},
	"a5":     {559, 794},
	"b4":     {945, 1334},
	"b5":     {665, 945},
	"letter": {816, 1056},
	"legal":  {816, 1344},
	"ledger": {1056, 1632},
}
