package tree

import (
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/nichevision/flyingsaucer-sub000/css/parser"
	pr "github.com/nichevision/flyingsaucer-sub000/css/properties"
	"github.com/nichevision/flyingsaucer-sub000/css/validation"
	"github.com/nichevision/flyingsaucer-sub000/logger"
)

// CSS is a parsed and validated stylesheet.
type CSS struct {
	matcher   matcher
	pageRules []pageRule
}

// NewCSS parses and validates a stylesheet. Invalid parts
// are ignored, with a warning.
func NewCSS(content []byte) CSS {
	logger.ProgressLogger.Debugf("Step 2 - Parsing CSS (%d bytes)", len(content))

	sheet := parser.ParseStylesheetBytes(content)
	var out CSS
	for _, rule := range sheet.Rules {
		selector, err := cascadia.ParseGroupWithPseudoElements(rule.Prelude)
		if err != nil {
			logger.WarningLogger.Warnf("Invalid or unsupported selector '%s', %s", rule.Prelude, err)
			continue
		}
		declarations := validation.PreprocessDeclarations(rule.Content)
		if len(declarations) == 0 {
			continue
		}
		out.matcher = append(out.matcher, match{selector: selector, declarations: declarations})
	}
	for _, rule := range sheet.Pages {
		selector, ok := parsePageSelector(rule.Selector)
		if !ok {
			logger.WarningLogger.Warnf("Unsupported @page selector '%s', the whole @page rule was ignored.", rule.Selector)
			continue
		}
		page := pageRule{selector: selector, declarations: validation.PreprocessDeclarations(rule.Content)}
		for _, margin := range rule.Margins {
			area, ok := pr.MarginAreaFromString(margin.AtKeyword)
			if !ok {
				logger.WarningLogger.Warnf("Unsupported at-rule '@%s' in @page", margin.AtKeyword)
				continue
			}
			if page.margins == nil {
				page.margins = make(map[pr.MarginArea][]pr.Declaration)
			}
			page.margins[area] = append(page.margins[area], validation.PreprocessDeclarations(margin.Content)...)
		}
		out.pageRules = append(out.pageRules, page)
	}
	return out
}

type match struct {
	selector     cascadia.SelectorGroup
	declarations []pr.Declaration
}

type matcher []match

type matchResult struct {
	pseudoType   string
	declarations []pr.Declaration
	specificity  cascadia.Specificity
}

// Match returns the rules matching [element].
func (m matcher) Match(element *html.Node) (out []matchResult) {
	for _, mat := range m {
		for _, sel := range mat.selector {
			if sel.Match(element) {
				out = append(out, matchResult{specificity: sel.Specificity(), pseudoType: sel.PseudoElement(), declarations: mat.declarations})
			}
		}
	}
	return out
}

// findStylesheets returns the <style> elements content of the document,
// in tree order, skipping the ones for other media.
func findStylesheets(root *html.Node) []CSS {
	var out []CSS
	iterElements(root, func(node *html.Node) {
		if node.DataAtom != atom.Style {
			return
		}
		if media := strings.ToLower(GetAttr(node, "media")); media != "" &&
			!strings.Contains(media, "print") && !strings.Contains(media, "all") {
			return
		}
		typ := GetAttr(node, "type")
		if typ != "" && typ != "text/css" {
			return
		}
		out = append(out, NewCSS([]byte(TextContent(node))))
	})
	return out
}
