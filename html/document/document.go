// Package document chains the steps turning an HTML document into
// a laid out box tree: parsing, styling, box generation and layout.
package document

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nichevision/flyingsaucer-sub000/config"
	pr "github.com/nichevision/flyingsaucer-sub000/css/properties"
	bo "github.com/nichevision/flyingsaucer-sub000/html/boxes"
	"github.com/nichevision/flyingsaucer-sub000/html/layout"
	"github.com/nichevision/flyingsaucer-sub000/html/tree"
	"github.com/nichevision/flyingsaucer-sub000/text"
)

// Document is a laid out HTML document.
type Document struct {
	HTML   *tree.HTML
	Styles *tree.StyleFor

	Root  *bo.BlockBox
	Layer *bo.Layer
}

// Pages returns the pages of a paginated document, or nil.
func (d *Document) Pages() []*bo.PageBox { return d.Layer.Pages() }

// Options tune one rendering.
type Options struct {
	// Config defaults to [config.Default].
	Config *config.Config

	// Stylesheets are applied as author stylesheets, after
	// the ones found in the document.
	Stylesheets []tree.CSS

	// Measurer defaults to a cell measurer using
	// the configured cell advance.
	Measurer text.Measurer
}

func (o Options) config() *config.Config {
	if o.Config == nil {
		return config.Default()
	}
	return o.Config
}

// styleOptions converts the page and font settings of [cfg].
func styleOptions(cfg *config.Config) tree.Options {
	m := cfg.Page.Margins
	return tree.Options{
		FontSize:   pr.Fl(cfg.Layout.DefaultFontSize),
		PageWidth:  cfg.Page.Width,
		PageHeight: cfg.Page.Height,
		PageMargin: [4]int{m.Top, m.Right, m.Bottom, m.Left},
	}
}

// Render parses the HTML read from [content] and lays it out.
func Render(content io.Reader, options Options) (*Document, error) {
	doc, err := tree.NewHTML(content)
	if err != nil {
		return nil, fmt.Errorf("rendering document: %w", err)
	}
	return Layout(doc, options), nil
}

// RenderString is a convenience wrapper around [Render].
func RenderString(content string, options Options) (*Document, error) {
	return Render(strings.NewReader(content), options)
}

// RenderFile renders the HTML file at [path].
func RenderFile(path string, options Options) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening input: %w", err)
	}
	defer f.Close()
	return Render(f, options)
}

// Layout styles and lays out an already parsed document.
// It never fails: invalid styles are dropped with a warning.
func Layout(doc *tree.HTML, options Options) *Document {
	cfg := options.config()
	styles := tree.GetAllComputedStyles(doc, options.Stylesheets, styleOptions(cfg))
	root := bo.BuildFormattingStructure(doc, styles)

	measurer := options.Measurer
	if measurer == nil {
		measurer = text.NewCellMeasurer(text.Fl(cfg.Layout.CellAdvance))
	}
	lo := layout.Options{
		Measurer:      measurer,
		BreakAnywhere: cfg.Layout.BreakAnywhere,
	}
	if cfg.Layout.Paginate {
		lo.Pages = styles
	} else {
		lo.Width, _ = cfg.Page.ContentSize()
	}
	layer := layout.Layout(root, lo)

	return &Document{HTML: doc, Styles: styles, Root: root, Layer: layer}
}
