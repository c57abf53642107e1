// Package parser splits CSS stylesheets and style attributes into
// rules and declarations, using the tdewolff CSS grammar.
// Values are kept as token lists, validated later.
package parser

import (
	"bytes"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"

	"github.com/nichevision/flyingsaucer-sub000/logger"
)

type TokenType = css.TokenType

// Token is a CSS token, with its raw text.
type Token struct {
	Type TokenType
	Data string
}

type Declaration struct {
	Name      string // lower case
	Value     []Token
	Important bool
}

// QualifiedRule is a style rule: a selector and its declarations.
type QualifiedRule struct {
	Prelude string
	Content []Declaration
}

// AtRule is a nested at-rule with a declaration block, like
// the margin rules inside @page.
type AtRule struct {
	AtKeyword string // lower case, without '@'
	Content   []Declaration
}

// PageRule is an @page rule.
type PageRule struct {
	Selector string // like ":first", possibly empty
	Content  []Declaration
	Margins  []AtRule
}

type Stylesheet struct {
	Rules []QualifiedRule
	Pages []PageRule
}

// Serialize returns the CSS text of the tokens.
func Serialize(l []Token) string {
	var b strings.Builder
	for _, t := range l {
		b.WriteString(t.Data)
	}
	return b.String()
}

func convertTokens(values []css.Token) []Token {
	out := make([]Token, 0, len(values))
	for _, v := range values {
		out = append(out, Token{Type: v.TokenType, Data: string(v.Data)})
	}
	return out
}

// TrimWhitespace removes the leading and trailing whitespace tokens.
func TrimWhitespace(l []Token) []Token {
	for len(l) > 0 && l[0].Type == css.WhitespaceToken {
		l = l[1:]
	}
	for len(l) > 0 && l[len(l)-1].Type == css.WhitespaceToken {
		l = l[:len(l)-1]
	}
	return l
}

// splitImportant strips a trailing !important.
func splitImportant(l []Token) ([]Token, bool) {
	l = TrimWhitespace(l)
	n := len(l)
	if n >= 2 && l[n-1].Type == css.IdentToken && strings.EqualFold(l[n-1].Data, "important") {
		rest := TrimWhitespace(l[:n-1])
		if m := len(rest); m >= 1 && rest[m-1].Type == css.DelimToken && rest[m-1].Data == "!" {
			return TrimWhitespace(rest[:m-1]), true
		}
	}
	return l, false
}

func newDeclaration(name []byte, values []css.Token) Declaration {
	value, important := splitImportant(convertTokens(values))
	return Declaration{Name: strings.ToLower(string(name)), Value: value, Important: important}
}

// atEnd reports whether an ErrorGrammar marks the end of the input,
// instead of a recoverable syntax error.
func atEnd(p *css.Parser) bool {
	if p.HasParseError() {
		logger.WarningLogger.Warnf("invalid CSS: %s", p.Err())
		return false
	}
	return true
}

// parseDeclarationBlock reads declarations until the end of the current
// block. Nested at-rules are returned in [nested].
func parseDeclarationBlock(p *css.Parser) (decls []Declaration, nested []AtRule) {
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			if atEnd(p) {
				return decls, nested
			}
		case css.EndRulesetGrammar, css.EndAtRuleGrammar:
			return decls, nested
		case css.DeclarationGrammar:
			decls = append(decls, newDeclaration(data, p.Values()))
		case css.BeginAtRuleGrammar:
			name := strings.TrimPrefix(string(data), "@")
			// unknown at-rules are delivered token by token
			nested = append(nested, AtRule{AtKeyword: name, Content: ParseDeclarationListString(rawBlock(p))})
		case css.BeginRulesetGrammar:
			skipBlock(p)
		}
	}
}

// rawBlock returns the text of the block being read, up to its end.
func rawBlock(p *css.Parser) string {
	var b strings.Builder
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			if atEnd(p) {
				return b.String()
			}
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			return b.String()
		default:
			b.Write(data)
		}
	}
}

// skipBlock consumes the tokens until the end of the current block.
func skipBlock(p *css.Parser) {
	depth := 1
	for depth > 0 {
		gt, _, _ := p.Next()
		switch gt {
		case css.ErrorGrammar:
			if atEnd(p) {
				return
			}
		case css.BeginAtRuleGrammar, css.BeginRulesetGrammar:
			depth++
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			depth--
		}
	}
}

// mediaApplies accepts the media queries relevant for a paged layout.
func mediaApplies(values []Token) bool {
	query := strings.ToLower(Serialize(values))
	if strings.TrimSpace(query) == "" {
		return true
	}
	for _, part := range strings.Split(query, ",") {
		part = strings.TrimSpace(part)
		if strings.HasPrefix(part, "not ") {
			continue
		}
		if strings.Contains(part, "print") || strings.Contains(part, "all") {
			return true
		}
	}
	return false
}

// ParseStylesheetBytes parses a whole stylesheet.
// Syntax errors never fail: the offending parts are dropped.
func ParseStylesheetBytes(input []byte) Stylesheet {
	var out Stylesheet
	p := css.NewParser(parse.NewInput(bytes.NewReader(input)), false)
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			if atEnd(p) {
				return out
			}
		case css.BeginRulesetGrammar:
			prelude := strings.TrimSpace(string(data) + Serialize(convertTokens(p.Values())))
			decls, _ := parseDeclarationBlock(p)
			out.Rules = append(out.Rules, QualifiedRule{Prelude: prelude, Content: decls})
		case css.BeginAtRuleGrammar:
			values := convertTokens(p.Values())
			switch string(data) {
			case "@page":
				decls, margins := parseDeclarationBlock(p)
				out.Pages = append(out.Pages, PageRule{
					Selector: strings.TrimSpace(Serialize(values)),
					Content:  decls,
					Margins:  margins,
				})
			case "@media":
				if !mediaApplies(values) {
					skipBlock(p)
				}
				// else: the inner rules are read by this loop,
				// up to the closing EndAtRuleGrammar
			default:
				logger.WarningLogger.Warnf("unsupported at-rule %s", data)
				skipBlock(p)
			}
		case css.AtRuleGrammar:
			logger.WarningLogger.Warnf("unsupported at-rule %s", data)
		}
	}
}

// ParseDeclarationListString parses the content of a style attribute.
func ParseDeclarationListString(input string) []Declaration {
	p := css.NewParser(parse.NewInputString(input), true)
	var out []Declaration
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			if atEnd(p) {
				return out
			}
		case css.DeclarationGrammar:
			out = append(out, newDeclaration(data, p.Values()))
		}
	}
}
