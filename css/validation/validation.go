// Package validation converts the raw token values of CSS declarations
// into typed property values, expanding shorthand properties.
package validation

import (
	"errors"
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2/css"

	pa "github.com/nichevision/flyingsaucer-sub000/css/parser"
	pr "github.com/nichevision/flyingsaucer-sub000/css/properties"
	"github.com/nichevision/flyingsaucer-sub000/logger"
)

type Token = pa.Token

var (
	ErrInvalidValue    = errors.New("invalid or unsupported values for a known CSS property")
	ErrUnknownProperty = errors.New("unknown property")
)

// validator returns nil for invalid tokens, which are never empty
// and contain no whitespace.
type validator func(p pr.KnownProp, tokens []Token) pr.Value

var validators = [pr.NbProperties]validator{
	pr.PDisplay:           keyword,
	pr.PFloat:             keyword,
	pr.PClear:             keyword,
	pr.PPosition:          position,
	pr.PTop:               lengthOrAuto,
	pr.PRight:             lengthOrAuto,
	pr.PBottom:            lengthOrAuto,
	pr.PLeft:              lengthOrAuto,
	pr.PZIndex:            zIndex,
	pr.PWidth:             positiveLengthOrAuto,
	pr.PHeight:            positiveLengthOrAuto,
	pr.PMinWidth:          positiveLength,
	pr.PMinHeight:         positiveLength,
	pr.PMaxWidth:          positiveLengthOrNone,
	pr.PMaxHeight:         positiveLengthOrNone,
	pr.PMarginTop:         lengthOrAuto,
	pr.PMarginRight:       lengthOrAuto,
	pr.PMarginBottom:      lengthOrAuto,
	pr.PMarginLeft:        lengthOrAuto,
	pr.PPaddingTop:        positiveLength,
	pr.PPaddingRight:      positiveLength,
	pr.PPaddingBottom:     positiveLength,
	pr.PPaddingLeft:       positiveLength,
	pr.PBorderTopWidth:    borderWidth,
	pr.PBorderRightWidth:  borderWidth,
	pr.PBorderBottomWidth: borderWidth,
	pr.PBorderLeftWidth:   borderWidth,
	pr.PBorderTopStyle:    keyword,
	pr.PBorderRightStyle:  keyword,
	pr.PBorderBottomStyle: keyword,
	pr.PBorderLeftStyle:   keyword,
	pr.PPageBreakBefore:   keyword,
	pr.PPageBreakAfter:    keyword,
	pr.PPageBreakInside:   keyword,
	pr.PKeepWithInline:    keyword,
	pr.PPageSequence:      keyword,
	pr.POrphans:           positiveInteger,
	pr.PWidows:            positiveInteger,
	pr.PVerticalAlign:     verticalAlign,
	pr.PWhiteSpace:        keyword,
	pr.PTextAlign:         keyword,
	pr.PTextIndent:        length,
	pr.PLineHeight:        lineHeight,
	pr.PFontFamily:        fontFamily,
	pr.PFontSize:          fontSize,
	pr.PFontWeight:        fontWeight,
	pr.PFontStyle:         keyword,
	pr.PTextDecoration:    textDecoration,
	pr.PTextTransform:     keyword,
	pr.PWordWrap:          keyword,
	pr.PListStyleType:     keyword,
	pr.PListStylePosition: keyword,
	pr.PCaptionSide:       keyword,
	pr.POverflow:          keyword,
	pr.PContent:           content,
	pr.PCounterReset:      counterReset,
	pr.PCounterIncrement:  counterIncrement,
	pr.PLang:              lang,
	pr.PSize:              size,
}

func removeWhitespace(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens))
	for _, t := range tokens {
		if t.Type != css.WhitespaceToken && t.Type != css.CommentToken {
			out = append(out, t)
		}
	}
	return out
}

// If [token] is an identifier, return its lower name.
// Otherwise return an empty string.
func getKeyword(token Token) string {
	if token.Type == css.IdentToken {
		return strings.ToLower(token.Data)
	}
	return ""
}

func getSingleKeyword(tokens []Token) string {
	if len(tokens) == 1 {
		return getKeyword(tokens[0])
	}
	return ""
}

// splitNumber splits "12.5px" into "12.5" and "px".
func splitNumber(s string) (string, string) {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	for i < len(s) && (s[i] >= '0' && s[i] <= '9' || s[i] == '.') {
		i++
	}
	return s[:i], s[i:]
}

func getNumber(token Token) (pr.Fl, bool) {
	if token.Type != css.NumberToken {
		return 0, false
	}
	f, err := strconv.ParseFloat(token.Data, 64)
	return f, err == nil
}

func getInteger(token Token) (int, bool) {
	if token.Type != css.NumberToken {
		return 0, false
	}
	i, err := strconv.Atoi(strings.TrimPrefix(token.Data, "+"))
	return i, err == nil
}

// getLength returns a length or a percentage (if [percentage] is true),
// refusing negative values if [negative] is false.
// A unitless zero is accepted.
func getLength(token Token, negative, percentage bool) (pr.Dimension, bool) {
	switch token.Type {
	case css.NumberToken:
		if f, ok := getNumber(token); ok && f == 0 {
			return pr.Dimension{Unit: pr.Pixels}, true
		}
	case css.PercentageToken:
		if !percentage {
			return pr.Dimension{}, false
		}
		f, err := strconv.ParseFloat(strings.TrimSuffix(token.Data, "%"), 64)
		if err == nil && (negative || f >= 0) {
			return pr.Dimension{Value: f, Unit: pr.Percentage}, true
		}
	case css.DimensionToken:
		num, unitS := splitNumber(token.Data)
		unit, ok := pr.UnitFromString(strings.ToLower(unitS))
		if !ok || unit == pr.Percentage {
			return pr.Dimension{}, false
		}
		f, err := strconv.ParseFloat(num, 64)
		if err == nil && (negative || f >= 0) {
			return pr.Dimension{Value: f, Unit: unit}, true
		}
	}
	return pr.Dimension{}, false
}

// getString unquotes a string token.
func getString(token Token) (string, bool) {
	if token.Type != css.StringToken || len(token.Data) < 2 {
		return "", false
	}
	s := token.Data[1 : len(token.Data)-1]
	if !strings.Contains(s, `\`) {
		return s, true
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
			if s[i] == 'A' || s[i] == 'a' {
				b.WriteByte('\n')
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String(), true
}

// function is a parsed function token with its arguments,
// split by commas.
type function struct {
	name string
	args [][]Token
}

// parseFunction reads the function starting at tokens[0], and returns
// the tokens following its closing parenthesis.
func parseFunction(tokens []Token) (function, []Token, bool) {
	if len(tokens) == 0 || tokens[0].Type != css.FunctionToken {
		return function{}, nil, false
	}
	fn := function{name: strings.ToLower(strings.TrimSuffix(tokens[0].Data, "("))}
	var current []Token
	depth := 0
	for i := 1; i < len(tokens); i++ {
		t := tokens[i]
		switch t.Type {
		case css.FunctionToken, css.LeftParenthesisToken:
			depth++
		case css.RightParenthesisToken:
			if depth == 0 {
				if len(current) != 0 || len(fn.args) != 0 {
					fn.args = append(fn.args, current)
				}
				return fn, tokens[i+1:], true
			}
			depth--
		case css.CommaToken:
			if depth == 0 {
				fn.args = append(fn.args, current)
				current = nil
				continue
			}
		case css.WhitespaceToken:
			continue
		}
		current = append(current, t)
	}
	return function{}, nil, false // unclosed
}

func keyword(p pr.KnownProp, tokens []Token) pr.Value {
	kw := pr.Keyword(getSingleKeyword(tokens))
	if kw != "" && pr.AcceptsKeyword(p, kw) {
		return kw
	}
	return nil
}

func lengthOrAuto(p pr.KnownProp, tokens []Token) pr.Value {
	if len(tokens) != 1 {
		return nil
	}
	if getKeyword(tokens[0]) == "auto" {
		return pr.Keyword("auto")
	}
	if d, ok := getLength(tokens[0], true, true); ok {
		return d
	}
	return nil
}

func positiveLengthOrAuto(p pr.KnownProp, tokens []Token) pr.Value {
	if len(tokens) != 1 {
		return nil
	}
	if getKeyword(tokens[0]) == "auto" {
		return pr.Keyword("auto")
	}
	return positiveLength(p, tokens)
}

func positiveLengthOrNone(p pr.KnownProp, tokens []Token) pr.Value {
	if len(tokens) != 1 {
		return nil
	}
	if getKeyword(tokens[0]) == "none" {
		return pr.Keyword("none")
	}
	return positiveLength(p, tokens)
}

func positiveLength(_ pr.KnownProp, tokens []Token) pr.Value {
	if len(tokens) != 1 {
		return nil
	}
	if d, ok := getLength(tokens[0], false, true); ok {
		return d
	}
	return nil
}

func length(_ pr.KnownProp, tokens []Token) pr.Value {
	if len(tokens) != 1 {
		return nil
	}
	if d, ok := getLength(tokens[0], true, true); ok {
		return d
	}
	return nil
}

func borderWidth(p pr.KnownProp, tokens []Token) pr.Value {
	if len(tokens) != 1 {
		return nil
	}
	if v := keyword(p, tokens); v != nil {
		return v
	}
	if d, ok := getLength(tokens[0], false, false); ok {
		return d
	}
	return nil
}

func position(p pr.KnownProp, tokens []Token) pr.Value {
	if fn, rest, ok := parseFunction(tokens); ok {
		if fn.name == "running" && len(rest) == 0 && len(fn.args) == 1 {
			if name := getSingleKeyword(fn.args[0]); name != "" {
				return pr.Running(name)
			}
		}
		return nil
	}
	return keyword(p, tokens)
}

func zIndex(p pr.KnownProp, tokens []Token) pr.Value {
	if len(tokens) != 1 {
		return nil
	}
	if getKeyword(tokens[0]) == "auto" {
		return pr.Keyword("auto")
	}
	if i, ok := getInteger(tokens[0]); ok {
		return pr.Dimension{Value: pr.Fl(i)}
	}
	return nil
}

func positiveInteger(_ pr.KnownProp, tokens []Token) pr.Value {
	if len(tokens) != 1 {
		return nil
	}
	if i, ok := getInteger(tokens[0]); ok && i >= 1 {
		return pr.Dimension{Value: pr.Fl(i)}
	}
	return nil
}

func verticalAlign(p pr.KnownProp, tokens []Token) pr.Value {
	if v := keyword(p, tokens); v != nil {
		return v
	}
	return length(p, tokens)
}

func lineHeight(p pr.KnownProp, tokens []Token) pr.Value {
	if len(tokens) != 1 {
		return nil
	}
	if getKeyword(tokens[0]) == "normal" {
		return pr.Keyword("normal")
	}
	if f, ok := getNumber(tokens[0]); ok && f >= 0 {
		return pr.Dimension{Value: f}
	}
	return positiveLength(p, tokens)
}

func fontSize(p pr.KnownProp, tokens []Token) pr.Value {
	if v := keyword(p, tokens); v != nil {
		return v
	}
	return positiveLength(p, tokens)
}

func fontWeight(p pr.KnownProp, tokens []Token) pr.Value {
	if v := keyword(p, tokens); v != nil {
		return v
	}
	if len(tokens) == 1 {
		if i, ok := getInteger(tokens[0]); ok && i >= 100 && i <= 900 && i%100 == 0 {
			return pr.Dimension{Value: pr.Fl(i)}
		}
	}
	return nil
}

// fontFamily accepts a comma separated list of strings
// or sequences of identifiers.
func fontFamily(_ pr.KnownProp, tokens []Token) pr.Value {
	var (
		out     pr.Strings
		current []string
	)
	flush := func() bool {
		if len(current) == 0 {
			return false
		}
		out = append(out, strings.Join(current, " "))
		current = nil
		return true
	}
	for i, t := range tokens {
		switch t.Type {
		case css.StringToken:
			if len(current) != 0 {
				return nil
			}
			s, _ := getString(t)
			current = []string{s}
			if i+1 < len(tokens) && tokens[i+1].Type != css.CommaToken {
				return nil
			}
		case css.IdentToken:
			current = append(current, t.Data)
		case css.CommaToken:
			if !flush() {
				return nil
			}
		default:
			return nil
		}
	}
	if !flush() {
		return nil
	}
	return out
}

func textDecoration(_ pr.KnownProp, tokens []Token) pr.Value {
	if getSingleKeyword(tokens) == "none" {
		return pr.Keyword("none")
	}
	var out pr.Decoration
	for _, t := range tokens {
		var d pr.Decoration
		switch getKeyword(t) {
		case "underline":
			d = pr.DecorationUnderline
		case "overline":
			d = pr.DecorationOverline
		case "line-through":
			d = pr.DecorationLineThrough
		case "blink":
			continue
		default:
			return nil
		}
		if out&d != 0 {
			return nil // duplicate
		}
		out |= d
	}
	return out
}

// content accepts normal, none, or a list of strings, attr(),
// counter(), counters() and element().
func content(_ pr.KnownProp, tokens []Token) pr.Value {
	if kw := getSingleKeyword(tokens); kw == "normal" || kw == "none" {
		return pr.Keyword(kw)
	}
	var out pr.Contents
	for len(tokens) != 0 {
		if s, ok := getString(tokens[0]); ok {
			out = append(out, pr.ContentItem{Kind: pr.ContentString, String: s})
			tokens = tokens[1:]
			continue
		}
		fn, rest, ok := parseFunction(tokens)
		if !ok {
			return nil
		}
		item, ok := contentFunction(fn)
		if !ok {
			return nil
		}
		out = append(out, item)
		tokens = rest
	}
	return out
}

func listStyleArg(arg []Token) (pr.ListStyleType, bool) {
	return pr.ListStyleFromString(getSingleKeyword(arg))
}

func contentFunction(fn function) (pr.ContentItem, bool) {
	if len(fn.args) == 0 {
		return pr.ContentItem{}, false
	}
	name := getSingleKeyword(fn.args[0])
	if name == "" {
		return pr.ContentItem{}, false
	}
	switch fn.name {
	case "attr":
		if len(fn.args) == 1 {
			return pr.ContentItem{Kind: pr.ContentAttr, String: name}, true
		}
	case "counter":
		item := pr.ContentItem{Kind: pr.ContentCounter, String: name, Style: pr.ListStyleDecimal}
		switch len(fn.args) {
		case 1:
			return item, true
		case 2:
			style, ok := listStyleArg(fn.args[1])
			item.Style = style
			return item, ok
		}
	case "counters":
		if len(fn.args) != 2 && len(fn.args) != 3 || len(fn.args[1]) != 1 {
			break
		}
		sep, ok := getString(fn.args[1][0])
		if !ok {
			break
		}
		item := pr.ContentItem{Kind: pr.ContentCounters, String: name, Separator: sep, Style: pr.ListStyleDecimal}
		if len(fn.args) == 3 {
			item.Style, ok = listStyleArg(fn.args[2])
		}
		return item, ok
	case "element":
		item := pr.ContentItem{Kind: pr.ContentElement, String: name}
		switch len(fn.args) {
		case 1:
			return item, true
		case 2:
			pos, ok := pr.PageElementFromString(getSingleKeyword(fn.args[1]))
			item.Position = pos
			return item, ok
		}
	}
	return pr.ContentItem{}, false
}

func counters(tokens []Token, defaultValue int) pr.Value {
	if getSingleKeyword(tokens) == "none" {
		return pr.Keyword("none")
	}
	var out pr.CounterOps
	for len(tokens) != 0 {
		name := getKeyword(tokens[0])
		if name == "" || name == "none" || name == "inherit" || name == "initial" {
			return nil
		}
		op := pr.CounterOp{Name: name, Value: defaultValue}
		tokens = tokens[1:]
		if len(tokens) != 0 {
			if v, ok := getInteger(tokens[0]); ok {
				op.Value = v
				tokens = tokens[1:]
			}
		}
		out = append(out, op)
	}
	return out
}

func counterReset(_ pr.KnownProp, tokens []Token) pr.Value     { return counters(tokens, 0) }
func counterIncrement(_ pr.KnownProp, tokens []Token) pr.Value { return counters(tokens, 1) }

// lang is set from the lang attribute.
func lang(_ pr.KnownProp, tokens []Token) pr.Value {
	if len(tokens) != 1 {
		return nil
	}
	if s, ok := getString(tokens[0]); ok {
		return pr.Strings{s}
	}
	if tokens[0].Type == css.IdentToken {
		return pr.Strings{tokens[0].Data}
	}
	return nil
}

// size accepts auto, portrait, landscape, one or two lengths,
// or a page size keyword with an optional orientation.
func size(_ pr.KnownProp, tokens []Token) pr.Value {
	switch len(tokens) {
	case 1:
		kw := getKeyword(tokens[0])
		switch kw {
		case "auto", "portrait", "landscape":
			return pr.Keyword(kw)
		}
		if wh, ok := pr.PageSizes[pr.Keyword(kw)]; ok {
			return pr.PageSize{{Value: pr.Fl(wh[0]), Unit: pr.Pixels}, {Value: pr.Fl(wh[1]), Unit: pr.Pixels}}
		}
		if d, ok := getLength(tokens[0], false, false); ok {
			return pr.PageSize{d, d}
		}
	case 2:
		w, ok1 := getLength(tokens[0], false, false)
		h, ok2 := getLength(tokens[1], false, false)
		if ok1 && ok2 {
			return pr.PageSize{w, h}
		}
		kw, orientation := getKeyword(tokens[0]), getKeyword(tokens[1])
		if _, isOrientation := pr.PageSizes[pr.Keyword(orientation)]; isOrientation {
			kw, orientation = orientation, kw
		}
		wh, ok := pr.PageSizes[pr.Keyword(kw)]
		if !ok {
			return nil
		}
		switch orientation {
		case "portrait":
		case "landscape":
			wh[0], wh[1] = wh[1], wh[0]
		default:
			return nil
		}
		return pr.PageSize{{Value: pr.Fl(wh[0]), Unit: pr.Pixels}, {Value: pr.Fl(wh[1]), Unit: pr.Pixels}}
	}
	return nil
}

// ValidateKnown validates the value of a longhand property.
func ValidateKnown(p pr.KnownProp, tokens []Token) (pr.Value, error) {
	tokens = removeWhitespace(tokens)
	if len(tokens) == 0 {
		return nil, ErrInvalidValue
	}
	switch getSingleKeyword(tokens) {
	case "inherit":
		return pr.Inherit, nil
	case "initial":
		return pr.Initial, nil
	}
	v := validators[p](p, tokens)
	if v == nil {
		return nil, ErrInvalidValue
	}
	return v, nil
}

// Validate validates the declaration [name]: [tokens], expanding
// shorthand properties.
func Validate(name string, tokens []Token) ([]pr.Declaration, error) {
	name = strings.ToLower(name)
	if exp, ok := expanders[name]; ok {
		tokens = removeWhitespace(tokens)
		if len(tokens) == 0 {
			return nil, ErrInvalidValue
		}
		if kw := getSingleKeyword(tokens); kw == "inherit" || kw == "initial" {
			v := pr.Inherit
			if kw == "initial" {
				v = pr.Initial
			}
			var out []pr.Declaration
			for _, p := range shorthandLonghands(name) {
				out = append(out, pr.Declaration{Prop: p, Value: v})
			}
			return out, nil
		}
		return exp(name, tokens)
	}
	p := pr.PropsFromName(name)
	if p == 0 {
		return nil, ErrUnknownProperty
	}
	v, err := ValidateKnown(p, tokens)
	if err != nil {
		return nil, err
	}
	return []pr.Declaration{{Prop: p, Value: v}}, nil
}

// PreprocessDeclarations filters the unsupported properties and the
// invalid values, and expands the shorthand properties.
// A warning is logged for every ignored declaration.
func PreprocessDeclarations(declarations []pa.Declaration) []pr.Declaration {
	var out []pr.Declaration
	for _, d := range declarations {
		decls, err := Validate(d.Name, d.Value)
		if err != nil {
			logger.WarningLogger.Warnf("Ignored `%s: %s`, %s.", d.Name, pa.Serialize(d.Value), err)
			continue
		}
		for _, decl := range decls {
			decl.Important = d.Important
			out = append(out, decl)
		}
	}
	return out
}
