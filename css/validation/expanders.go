package validation

import (
	"github.com/tdewolff/parse/v2/css"

	pr "github.com/nichevision/flyingsaucer-sub000/css/properties"
)

// expander validates a shorthand, whose tokens contain
// no whitespace.
type expander func(name string, tokens []Token) ([]pr.Declaration, error)

var expanders = map[string]expander{
	"margin":        expandFourSides,
	"padding":       expandFourSides,
	"border-width":  expandFourSides,
	"border-style":  expandFourSides,
	"border":        expandBorder,
	"border-top":    expandBorder,
	"border-right":  expandBorder,
	"border-bottom": expandBorder,
	"border-left":   expandBorder,
	"font":          expandFont,
	"list-style":    expandListStyle,
}

// firstSide returns the top longhand of a four sides shorthand.
var firstSide = map[string]pr.KnownProp{
	"margin":       pr.PMarginTop,
	"padding":      pr.PPaddingTop,
	"border-width": pr.PBorderTopWidth,
	"border-style": pr.PBorderTopStyle,
}

var borderSides = map[string][]int{
	"border":        {pr.Top, pr.Right, pr.Bottom, pr.Left},
	"border-top":    {pr.Top},
	"border-right":  {pr.Right},
	"border-bottom": {pr.Bottom},
	"border-left":   {pr.Left},
}

func shorthandLonghands(name string) []pr.KnownProp {
	if first, ok := firstSide[name]; ok {
		return []pr.KnownProp{first, first + 1, first + 2, first + 3}
	}
	if sides, ok := borderSides[name]; ok {
		var out []pr.KnownProp
		for _, side := range sides {
			out = append(out, pr.PBorderTopWidth+pr.KnownProp(side), pr.PBorderTopStyle+pr.KnownProp(side))
		}
		return out
	}
	switch name {
	case "font":
		return []pr.KnownProp{pr.PFontStyle, pr.PFontWeight, pr.PFontSize, pr.PLineHeight, pr.PFontFamily}
	case "list-style":
		return []pr.KnownProp{pr.PListStyleType, pr.PListStylePosition}
	}
	return nil
}

// expandFourSides expands properties with 1 to 4 values,
// in the top, right, bottom, left order.
func expandFourSides(name string, tokens []Token) ([]pr.Declaration, error) {
	if len(tokens) > 4 {
		return nil, ErrInvalidValue
	}
	// sides without value copy the opposite one
	switch len(tokens) {
	case 1:
		tokens = append(tokens, tokens[0])
		fallthrough
	case 2:
		tokens = append(tokens, tokens[0])
		fallthrough
	case 3:
		tokens = append(tokens, tokens[1])
	}
	first := firstSide[name]
	out := make([]pr.Declaration, 4)
	for side, token := range tokens {
		p := first + pr.KnownProp(side)
		v, err := ValidateKnown(p, []Token{token})
		if err != nil {
			return nil, err
		}
		out[side] = pr.Declaration{Prop: p, Value: v}
	}
	return out, nil
}

// skipColor consumes a color value, which is not supported and
// thus ignored.
func skipColor(tokens []Token) ([]Token, bool) {
	switch tokens[0].Type {
	case css.HashToken, css.IdentToken:
		return tokens[1:], true
	case css.FunctionToken:
		if _, rest, ok := parseFunction(tokens); ok {
			return rest, true
		}
	}
	return nil, false
}

// expandBorder expands the border shorthands: a width,
// a style and a color, in any order.
func expandBorder(name string, tokens []Token) ([]pr.Declaration, error) {
	var width, style pr.Value = pr.Keyword("medium"), pr.Keyword("none")
	var hasWidth, hasStyle, hasColor bool
	for len(tokens) != 0 {
		single := tokens[:1]
		if v := borderWidth(pr.PBorderTopWidth, single); v != nil && !hasWidth {
			width, hasWidth = v, true
			tokens = tokens[1:]
		} else if v := keyword(pr.PBorderTopStyle, single); v != nil && !hasStyle {
			style, hasStyle = v, true
			tokens = tokens[1:]
		} else if rest, ok := skipColor(tokens); ok && !hasColor {
			hasColor = true
			tokens = rest
		} else {
			return nil, ErrInvalidValue
		}
	}
	var out []pr.Declaration
	for _, side := range borderSides[name] {
		out = append(out,
			pr.Declaration{Prop: pr.PBorderTopWidth + pr.KnownProp(side), Value: width},
			pr.Declaration{Prop: pr.PBorderTopStyle + pr.KnownProp(side), Value: style},
		)
	}
	return out, nil
}

// expandFont expands the font shorthand:
// [ style || weight ]? size [ / line-height ]? family
func expandFont(_ string, tokens []Token) ([]pr.Declaration, error) {
	var (
		style  pr.Value = pr.Keyword("normal")
		weight pr.Value = pr.Keyword("normal")
		height pr.Value = pr.Keyword("normal")
	)
	for len(tokens) != 0 {
		single := tokens[:1]
		kw := getKeyword(tokens[0])
		if kw == "normal" || kw == "small-caps" {
			tokens = tokens[1:]
		} else if v := keyword(pr.PFontStyle, single); v != nil {
			style = v
			tokens = tokens[1:]
		} else if v := fontWeight(pr.PFontWeight, single); v != nil {
			weight = v
			tokens = tokens[1:]
		} else {
			break
		}
	}
	if len(tokens) == 0 {
		return nil, ErrInvalidValue
	}
	fontSz := fontSize(pr.PFontSize, tokens[:1])
	if fontSz == nil {
		return nil, ErrInvalidValue
	}
	tokens = tokens[1:]
	if len(tokens) != 0 && tokens[0].Type == css.DelimToken && tokens[0].Data == "/" {
		if len(tokens) < 2 {
			return nil, ErrInvalidValue
		}
		if height = lineHeight(pr.PLineHeight, tokens[1:2]); height == nil {
			return nil, ErrInvalidValue
		}
		tokens = tokens[2:]
	}
	if len(tokens) == 0 {
		return nil, ErrInvalidValue
	}
	family := fontFamily(pr.PFontFamily, tokens)
	if family == nil {
		return nil, ErrInvalidValue
	}
	return []pr.Declaration{
		{Prop: pr.PFontStyle, Value: style},
		{Prop: pr.PFontWeight, Value: weight},
		{Prop: pr.PFontSize, Value: fontSz},
		{Prop: pr.PLineHeight, Value: height},
		{Prop: pr.PFontFamily, Value: family},
	}, nil
}

// expandListStyle expands list-style: a type and a position.
// Images are not supported.
func expandListStyle(_ string, tokens []Token) ([]pr.Declaration, error) {
	var typ, pos pr.Value = pr.Keyword("disc"), pr.Keyword("outside")
	var (
		hasType, hasPosition bool
		noneCount            int
	)
	for _, t := range tokens {
		single := []Token{t}
		if getKeyword(t) == "none" {
			noneCount++
			continue
		}
		if v := keyword(pr.PListStylePosition, single); v != nil && !hasPosition {
			pos, hasPosition = v, true
		} else if v := keyword(pr.PListStyleType, single); v != nil && !hasType {
			typ, hasType = v, true
		} else {
			return nil, ErrInvalidValue
		}
	}
	if noneCount > 1 || noneCount == 1 && hasType {
		return nil, ErrInvalidValue
	}
	if noneCount == 1 {
		typ = pr.Keyword("none")
	}
	return []pr.Declaration{
		{Prop: pr.PListStyleType, Value: typ},
		{Prop: pr.PListStylePosition, Value: pos},
	}, nil
}
