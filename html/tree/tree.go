// Package tree parses HTML documents and computes the style
// of their elements, pages and margin boxes.
package tree

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/nichevision/flyingsaucer-sub000/logger"
)

//go:embed ua.css
var uaCSS []byte

// UAStylesheet is the default user agent stylesheet.
var UAStylesheet = NewCSS(uaCSS)

// HTML is an HTML document parsed by net/html.
type HTML struct {
	Root *html.Node // the <html> element

	UAStyleSheet CSS
}

// NewHTML parses the document from [content].
func NewHTML(content io.Reader) (*HTML, error) {
	logger.ProgressLogger.Info("Step 1 - Parsing HTML")

	root, err := html.ParseWithOptions(content, html.ParseOptionEnableScripting(false))
	if err != nil {
		return nil, fmt.Errorf("invalid html input: %w", err)
	}
	var out HTML
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out.Root = c
			break
		}
	}
	if out.Root == nil {
		return nil, fmt.Errorf("invalid html input: missing root element")
	}
	out.UAStyleSheet = UAStylesheet
	return &out, nil
}

// NewHTMLString is a convenience wrapper around [NewHTML].
func NewHTMLString(content string) (*HTML, error) {
	return NewHTML(strings.NewReader(content))
}

// Body returns the <body> element, or nil.
func (h *HTML) Body() *html.Node {
	for c := h.Root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Body {
			return c
		}
	}
	return nil
}

// GetAttr returns the value of the attribute [key], or an empty string.
func GetAttr(node *html.Node, key string) string {
	for _, attr := range node.Attr {
		if attr.Namespace == "" && attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// HasAttr reports whether [node] has the attribute [key].
func HasAttr(node *html.Node, key string) bool {
	for _, attr := range node.Attr {
		if attr.Namespace == "" && attr.Key == key {
			return true
		}
	}
	return false
}

// TextContent returns the concatenated text of the descendants of [node].
func TextContent(node *html.Node) string {
	var b bytes.Buffer
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(node)
	return b.String()
}

// iterElements calls [fn] for every element of the subtree,
// in tree order.
func iterElements(node *html.Node, fn func(*html.Node)) {
	if node.Type == html.ElementNode {
		fn(node)
	}
	for c := node.FirstChild; c != nil; c = c.NextSibling {
		iterElements(c, fn)
	}
}
