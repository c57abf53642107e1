package tree

import (
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/nichevision/flyingsaucer-sub000/css/parser"
	pr "github.com/nichevision/flyingsaucer-sub000/css/properties"
	"github.com/nichevision/flyingsaucer-sub000/css/validation"
	"github.com/nichevision/flyingsaucer-sub000/logger"
	"github.com/nichevision/flyingsaucer-sub000/utils"
)

// Reject anything not in here
var pseudoElements = utils.NewSet("", "before", "after", "first-line", "first-letter")

// Options are the defaults used when computing styles.
type Options struct {
	FontSize pr.Fl // medium font size

	// used for pages without size or margin declarations
	PageWidth, PageHeight int
	PageMargin            [4]int
}

type elementKey struct {
	node       *html.Node
	pseudoType string
}

type sheet struct {
	css    CSS
	origin string
}

type originPageRule struct {
	pageRule
	origin string
}

// StyleFor stores the computed styles of a document, and
// lazily computes the page styles.
type StyleFor struct {
	computedStyles map[elementKey]*pr.Style
	pageRules      []originPageRule
	pageStyles     map[pr.PagePseudo]*pr.PageStyle
	options        Options
}

// GetAllComputedStyles computes the style of every element and pseudo
// element of [doc], using the user agent stylesheet, [userStylesheets]
// and the <style> elements of the document.
func GetAllComputedStyles(doc *HTML, userStylesheets []CSS, options Options) *StyleFor {
	if options.FontSize <= 0 {
		options.FontSize = pr.DefaultFontSize
	}
	sheets := []sheet{{css: doc.UAStyleSheet, origin: "user agent"}}
	for _, css := range userStylesheets {
		sheets = append(sheets, sheet{css: css, origin: "user"})
	}
	for _, css := range findStylesheets(doc.Root) {
		sheets = append(sheets, sheet{css: css, origin: "author"})
	}

	logger.ProgressLogger.Infof("Step 3 - Applying CSS - %d sheet(s)", len(sheets))

	out := &StyleFor{
		computedStyles: make(map[elementKey]*pr.Style),
		pageStyles:     make(map[pr.PagePseudo]*pr.PageStyle),
		options:        options,
	}
	for _, sh := range sheets {
		for _, rule := range sh.css.pageRules {
			out.pageRules = append(out.pageRules, originPageRule{pageRule: rule, origin: sh.origin})
		}
	}

	// tree order, so that parents are computed before their children
	iterElements(doc.Root, func(element *html.Node) {
		cascaded := map[string]cascadedStyle{"": {}}
		if lang := GetAttr(element, "lang"); lang != "" {
			cascaded[""][pr.PLang] = weightedValue{
				value:  pr.Strings{lang},
				weight: weight{precedence: declarationPrecedence("author", false)},
			}
		}
		for _, sh := range sheets {
			for _, m := range sh.css.matcher.Match(element) {
				if !pseudoElements.Has(m.pseudoType) {
					continue
				}
				style, ok := cascaded[m.pseudoType]
				if !ok {
					style = cascadedStyle{}
					cascaded[m.pseudoType] = style
				}
				style.add(m.declarations, sh.origin, m.specificity, false)
			}
		}
		if attr := GetAttr(element, "style"); attr != "" {
			declarations := validation.PreprocessDeclarations(parser.ParseDeclarationListString(attr))
			cascaded[""].add(declarations, "author", cascadia.Specificity{}, true)
		}

		var parentStyle *pr.Style
		if element.Parent != nil && element.Parent.Type == html.ElementNode {
			parentStyle = out.computedStyles[elementKey{node: element.Parent}]
		}
		style := computedFromCascaded(cascaded[""], parentStyle, options.FontSize, parentStyle == nil)
		out.computedStyles[elementKey{node: element}] = style

		// pseudo elements inherit from their element
		for pseudoType, casc := range cascaded {
			if pseudoType == "" {
				continue
			}
			pseudoStyle := computedFromCascaded(casc, style, options.FontSize, false)
			if (pseudoType == "before" || pseudoType == "after") && pseudoStyle.Content == nil {
				continue
			}
			out.computedStyles[elementKey{node: element, pseudoType: pseudoType}] = pseudoStyle
		}
	})

	return out
}

// Get returns the computed style of [element], or of one of its
// pseudo elements. It returns nil for pseudo elements without style,
// which generate no box.
func (sf *StyleFor) Get(element *html.Node, pseudoType string) *pr.Style {
	return sf.computedStyles[elementKey{node: element, pseudoType: pseudoType}]
}

// Set overrides the style of [element].
func (sf *StyleFor) Set(element *html.Node, pseudoType string, style *pr.Style) {
	sf.computedStyles[elementKey{node: element, pseudoType: pseudoType}] = style
}

// FontSize returns the medium font size used for the document.
func (sf *StyleFor) FontSize() pr.Fl { return sf.options.FontSize }

// Return the precedence for a declaration.
// Precedence values have no meaning unless compared to each other.
// Acceptable values for [origin] are "author", "user"
// and "user agent".
func declarationPrecedence(origin string, importance bool) uint8 {
	// See http://www.w3.org/TR/CSS21/cascade.html#cascading-order
	if origin == "user agent" {
		return 1
	} else if origin == "user" && !importance {
		return 2
	} else if origin == "author" && !importance {
		return 3
	} else if origin == "author" { // && importance
		return 4
	} else {
		if origin != "user" {
			logger.WarningLogger.Warnf("origin should be 'user' got %s", origin)
		}
		return 5
	}
}

type weight struct {
	precedence  uint8
	styleAttr   bool // style attributes win over selectors
	specificity cascadia.Specificity
}

// Less return `true` if w <= other
func (w weight) Less(other weight) bool {
	if w.precedence != other.precedence {
		return w.precedence < other.precedence
	}
	if w.styleAttr != other.styleAttr {
		return other.styleAttr
	}
	return w.specificity.Less(other.specificity) || w.specificity == other.specificity
}

type weightedValue struct {
	value  pr.Value
	weight weight
}

type cascadedStyle map[pr.KnownProp]weightedValue

// add applies the cascade: later declarations win over
// earlier ones with the same weight.
func (c cascadedStyle) add(declarations []pr.Declaration, origin string, specificity cascadia.Specificity, styleAttr bool) {
	for _, decl := range declarations {
		we := weight{precedence: declarationPrecedence(origin, decl.Important), styleAttr: styleAttr, specificity: specificity}
		if old, ok := c[decl.Prop]; !ok || old.weight.Less(we) {
			c[decl.Prop] = weightedValue{value: decl.Value, weight: we}
		}
	}
}

// computedFromCascaded returns the computed style mixed from the parent
// and cascaded styles. [parent] is nil for the root element.
func computedFromCascaded(cascaded cascadedStyle, parent *pr.Style, fontSize pr.Fl, isRoot bool) *pr.Style {
	var style *pr.Style
	if parent == nil {
		style = pr.InitialStyle(fontSize)
	} else {
		style = pr.InheritFrom(parent)
	}
	// lengths depend on the font size
	if v, ok := cascaded[pr.PFontSize]; ok {
		style.Apply(pr.PFontSize, v.value, parent)
	}
	for p := pr.KnownProp(1); p < pr.NbProperties; p++ {
		if p == pr.PFontSize {
			continue
		}
		if v, ok := cascaded[p]; ok {
			style.Apply(p, v.value, parent)
		}
	}
	fixDisplay(style, isRoot)
	return style
}

// fixDisplay applies the relationships between display, position
// and float. See http://www.w3.org/TR/CSS21/visuren.html#dis-pos-flo
func fixDisplay(style *pr.Style, isRoot bool) {
	if style.Display == pr.DisplayNone {
		return
	}
	if style.IsAbsolute() || style.IsRunning() {
		style.Float = pr.FloatNone
	} else if !style.IsFloated() && !isRoot {
		return
	}
	switch style.Display {
	case pr.DisplayInlineTable:
		style.Display = pr.DisplayTable
	case pr.DisplayInline, pr.DisplayInlineBlock, pr.DisplayTableRowGroup, pr.DisplayTableColumn,
		pr.DisplayTableColumnGroup, pr.DisplayTableHeaderGroup, pr.DisplayTableFooterGroup,
		pr.DisplayTableRow, pr.DisplayTableCell, pr.DisplayTableCaption:
		style.Display = pr.DisplayBlock
	}
}

// pageSelector supports the :first, :left and :right pseudo classes.
type pageSelector struct {
	first, left, right bool
	specificity        cascadia.Specificity
}

func parsePageSelector(s string) (pageSelector, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return pageSelector{}, true
	case ":first":
		return pageSelector{first: true, specificity: cascadia.Specificity{0, 1, 0}}, true
	case ":left":
		return pageSelector{left: true, specificity: cascadia.Specificity{0, 0, 1}}, true
	case ":right":
		return pageSelector{right: true, specificity: cascadia.Specificity{0, 0, 1}}, true
	}
	return pageSelector{}, false
}

// matches reports whether the selector applies to pages of type [pseudo].
// The first page is a right page.
func (ps pageSelector) matches(pseudo pr.PagePseudo) bool {
	switch {
	case ps.first:
		return pseudo == pr.PageFirst
	case ps.left:
		return pseudo == pr.PageLeft
	case ps.right:
		return pseudo == pr.PageRight || pseudo == pr.PageFirst
	}
	return true
}

type pageRule struct {
	selector     pageSelector
	declarations []pr.Declaration
	margins      map[pr.MarginArea][]pr.Declaration
}

// PageStyle returns the computed style of the pages of type [pseudo].
func (sf *StyleFor) PageStyle(pseudo pr.PagePseudo) *pr.PageStyle {
	if ps, ok := sf.pageStyles[pseudo]; ok {
		return ps
	}
	cascaded := cascadedStyle{}
	margins := map[pr.MarginArea]cascadedStyle{}
	for _, rule := range sf.pageRules {
		if !rule.selector.matches(pseudo) {
			continue
		}
		cascaded.add(rule.declarations, rule.origin, rule.selector.specificity, false)
		for area, decls := range rule.margins {
			c, ok := margins[area]
			if !ok {
				c = cascadedStyle{}
				margins[area] = c
			}
			c.add(decls, rule.origin, rule.selector.specificity, false)
		}
	}

	fontSize := sf.options.FontSize
	pageBox := computedFromCascaded(cascaded, nil, fontSize, false)
	out := &pr.PageStyle{
		Width:       sf.options.PageWidth,
		Height:      sf.options.PageHeight,
		Margin:      sf.options.PageMargin,
		MarginBoxes: make(map[pr.MarginArea]*pr.Style),
	}
	if v, ok := cascaded[pr.PSize]; ok {
		switch v := v.value.(type) {
		case pr.PageSize:
			out.Width, out.Height = int(v[0].ToPixels(fontSize)), int(v[1].ToPixels(fontSize))
		case pr.Keyword:
			landscape := out.Width > out.Height
			if v == "landscape" && !landscape || v == "portrait" && landscape {
				out.Width, out.Height = out.Height, out.Width
			}
		}
	}
	for side := 0; side < 4; side++ {
		if _, ok := cascaded[pr.PMarginTop+pr.KnownProp(side)]; !ok {
			continue
		}
		base := out.Width
		if side == pr.Top || side == pr.Bottom {
			base = out.Height
		}
		out.Margin[side] = pageBox.Margin[side].Resolve(base)
	}

	// margin boxes inherit from the page
	for area, casc := range margins {
		style := computedFromCascaded(casc, pageBox, fontSize, false)
		if style.Content == nil {
			continue
		}
		style.Display = pr.DisplayBlock
		out.MarginBoxes[area] = style
	}

	sf.pageStyles[pseudo] = out
	return out
}
