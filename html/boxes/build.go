package boxes

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/cases"

	pr "github.com/nichevision/flyingsaucer-sub000/css/properties"
	"github.com/nichevision/flyingsaucer-sub000/html/tree"
	"github.com/nichevision/flyingsaucer-sub000/logger"
)

// builder walks the styled element tree once, in document order.
type builder struct {
	styles   *tree.StyleFor
	counters counters
}

// BuildFormattingStructure builds the box tree of [doc]. The returned
// box is the box of the root element, with block content, inline
// content or no content.
//
// Invalid display combinations are never an error: anonymous blocks
// and table boxes are inserted as needed.
func BuildFormattingStructure(doc *tree.HTML, styles *tree.StyleFor) *BlockBox {
	logger.ProgressLogger.Info("Step 4 - Creating formatting structure")

	b := builder{styles: styles, counters: newCounters()}
	boxes := b.buildElement(doc.Root, nil)

	if len(boxes) == 1 {
		if root, ok := boxes[0].(*BlockBox); ok {
			return root
		}
	}
	// display: none on the root, or a root table wrapped with its captions
	root := NewBlockBox(pr.InitialStyle(styles.FontSize()).DeriveAnonymous(pr.DisplayBlock), doc.Root, "")
	root.Anonymous = true
	setContent(root, boxes)
	return root
}

// buildElement appends the boxes generated by [element] to [out].
// Inline elements are flattened into [out]: the first item starts
// the element and the last one ends it.
func (b *builder) buildElement(element *html.Node, out []Box) []Box {
	style := b.styles.Get(element, "")
	if style == nil || style.Display == pr.DisplayNone {
		return out
	}

	b.counters.update(style)
	b.counters.push()
	defer b.counters.pop()

	if style.Display == pr.DisplayInline {
		return b.buildInline(element, style, out)
	}

	box := NewBlockBox(style, element, "")
	var children []Box
	if style.IsListItem() {
		children = b.addMarker(box, children)
	}
	children = b.pseudoBox(element, "before", children)
	for child := element.FirstChild; child != nil; child = child.NextSibling {
		switch child.Type {
		case html.TextNode:
			children = append(children, anonymousText(box, transformText(child.Data, style)))
		case html.ElementNode:
			children = b.buildElement(child, children)
		}
	}
	children = b.pseudoBox(element, "after", children)

	box.FirstLineStyle = b.styles.Get(element, "first-line")
	box.FirstLetterStyle = b.styles.Get(element, "first-letter")
	setContent(box, children)

	for _, child := range handleElement(element, box) {
		if table, ok := child.(*BlockBox); ok && isTable(table) {
			child = wrapTable(table)
		}
		out = append(out, child)
	}
	return out
}

func (b *builder) buildInline(element *html.Node, style *pr.Style, out []Box) []Box {
	own := &InlineBox{BoxFields: BoxFields{Style: style, Element: element}, StartsHere: true}
	out = append(out, own)
	out = b.pseudoBox(element, "before", out)
	for child := element.FirstChild; child != nil; child = child.NextSibling {
		switch child.Type {
		case html.TextNode:
			text := transformText(child.Data, style)
			if isLast(out, own) {
				own.Text += text
			} else {
				own = &InlineBox{BoxFields: BoxFields{Style: style, Element: element}, Text: text}
				out = append(out, own)
			}
		case html.ElementNode:
			out = b.buildElement(child, out)
		}
	}
	out = b.pseudoBox(element, "after", out)

	if isLast(out, own) {
		own.EndsHere = true
	} else {
		out = append(out, &InlineBox{BoxFields: BoxFields{Style: style, Element: element}, EndsHere: true})
	}
	return out
}

func isLast(list []Box, box *InlineBox) bool {
	return len(list) != 0 && list[len(list)-1] == Box(box)
}

// pseudoBox appends the box of the ::before or ::after pseudo element.
func (b *builder) pseudoBox(element *html.Node, pseudoType string, out []Box) []Box {
	style := b.styles.Get(element, pseudoType)
	if style == nil || style.Display == pr.DisplayNone || style.Content == nil {
		return out
	}
	b.counters.update(style)
	text := transformText(b.counters.contentText(element, style.Content), style)

	if style.Display == pr.DisplayInline {
		return append(out, &InlineBox{
			BoxFields:  BoxFields{Style: style, Element: element, PseudoType: pseudoType},
			Text:       text,
			StartsHere: true,
			EndsHere:   true,
		})
	}
	box := NewBlockBox(style, element, pseudoType)
	setContent(box, []Box{anonymousText(box, text)})
	if isTable(box) {
		return append(out, wrapTable(box))
	}
	return append(out, box)
}

// addMarker generates the marker of a list item, either as the first
// inline content, or as an outside marker stored on [box].
func (b *builder) addMarker(box *BlockBox, children []Box) []Box {
	style := box.Style
	text := pr.MarkerText(b.counters.value(listItemCounter), style.ListStyleType)
	if text == "" {
		return children
	}
	markerStyle := style.DeriveAnonymous(pr.DisplayInline)
	if style.ListStylePosition == pr.ListStyleInside {
		return append(children, &InlineBox{
			BoxFields:  BoxFields{Style: markerStyle, Element: box.Element, PseudoType: "marker"},
			Text:       text,
			StartsHere: true,
			EndsHere:   true,
		})
	}
	box.Marker = &Marker{Text: text, Style: markerStyle}
	return children
}

// anonymousText returns an anonymous inline box holding [text],
// directly inside the block [parent].
func anonymousText(parent *BlockBox, text string) *InlineBox {
	return &InlineBox{
		BoxFields: BoxFields{
			Style: parent.Style.DeriveAnonymous(pr.DisplayInline), Element: parent.Element,
			PseudoType: parent.PseudoType, Anonymous: true,
		},
		Text:       text,
		StartsHere: true,
		EndsHere:   true,
	}
}

func transformText(text string, style *pr.Style) string {
	switch style.TextTransform {
	case pr.TextTransformUppercase:
		return cases.Upper(style.Lang).String(text)
	case pr.TextTransformLowercase:
		return cases.Lower(style.Lang).String(text)
	case pr.TextTransformCapitalize:
		return cases.Title(style.Lang, cases.NoLower).String(text)
	default:
		return text
	}
}

// isBlockLevel is true for the boxes taking part in a block flow.
func isBlockLevel(box Box) bool {
	block, ok := box.(*BlockBox)
	return ok && !block.Style.IsLayedOutInInlineContext()
}

// setContent fixes the content type of [box], given its children
// in document order.
func setContent(box *BlockBox, children []Box) { setContentOpen(box, children, nil) }

// setContentOpen is like [setContent], for a box whose content
// starts inside the inline elements [open].
func setContentOpen(box *BlockBox, children []Box, open []*InlineBox) {
	children = fixTableChildren(box, children, open)

	hasBlock := false
	for _, child := range children {
		if isBlockLevel(child) {
			hasBlock = true
			break
		}
	}
	if hasBlock {
		box.ContentType = ContentBlock
		insertAnonymousBlocks(box, children, open)
		return
	}

	content := stripWhitespace(children)
	if len(content) == 0 {
		box.ContentType = ContentEmpty
		return
	}
	box.ContentType = ContentInline
	box.InlineContent = content
	box.OpenInlines = open
	for _, item := range content {
		item.Box().Parent = box
	}
}

// insertAnonymousBlocks wraps each maximal run of inline-level children
// in an anonymous block. The inline elements open at the start of
// a run are recorded on its block, so that their boxes are recreated
// when the block is laid out.
func insertAnonymousBlocks(box *BlockBox, children []Box, open []*InlineBox) {
	var inline []Box
	saved := open
	open = append([]*InlineBox(nil), open...)
	flush := func() {
		content := stripWhitespace(inline)
		inline = nil
		if len(content) == 0 {
			return
		}
		anon := BlockBoxAnonymousFrom(box, pr.DisplayBlock)
		anon.ContentType = ContentInline
		anon.InlineContent = content
		anon.OpenInlines = saved
		for _, item := range content {
			item.Box().Parent = anon
		}
		box.AddChild(anon)
	}
	for _, child := range children {
		if !isBlockLevel(child) {
			inline = append(inline, child)
			open = trackOpenInlines(open, child)
			continue
		}
		flush()
		saved = append([]*InlineBox(nil), open...)
		box.AddChild(child)
	}
	flush()
}

// trackOpenInlines updates the stack of the inline elements open
// after [item].
func trackOpenInlines(open []*InlineBox, item Box) []*InlineBox {
	ib, ok := item.(*InlineBox)
	if !ok {
		return open
	}
	if ib.StartsHere {
		open = append(open, ib)
	}
	if ib.EndsHere && len(open) != 0 {
		open = open[:len(open)-1]
	}
	return open
}

// canCollapseThrough is true for the inline content items which
// do not stop the collapsing of spaces.
func canCollapseThrough(style *pr.Style) bool {
	return style.IsFloated() || style.IsAbsolute() || style.IsRunning()
}

// stripWhitespace applies the white-space property to a run of inline
// content. Collapsible spaces at the start and the end of the run are
// removed, and the items left empty are dropped, unless they start or
// end an element.
func stripWhitespace(items []Box) []Box {
	collapse := true
	for _, item := range items {
		switch item := item.(type) {
		case *InlineBox:
			item.Text = collapseWhitespace(item.Style.WhiteSpace, item.Text, collapse)
			if item.Text != "" {
				collapse = item.Style.IsCollapsingSpaces() &&
					(strings.HasSuffix(item.Text, " ") || strings.HasSuffix(item.Text, "\n"))
			}
		case *BlockBox:
			if !canCollapseThrough(item.Style) {
				collapse = false
			}
		}
	}

trailing:
	for i := len(items) - 1; i >= 0; i-- {
		switch item := items[i].(type) {
		case *InlineBox:
			if item.Style.IsCollapsingSpaces() {
				item.Text = strings.TrimRight(item.Text, " ")
			}
			if item.Text != "" {
				break trailing
			}
		case *BlockBox:
			if !canCollapseThrough(item.Style) {
				break trailing
			}
		}
	}

	out := make([]Box, 0, len(items))
	for _, item := range items {
		if ib, ok := item.(*InlineBox); ok && ib.Text == "" {
			if ib.Anonymous || !(ib.StartsHere || ib.EndsHere) {
				continue
			}
		}
		out = append(out, item)
	}
	return out
}

// collapseWhitespace applies the white-space property to [text].
// [collapseLeading] is true when the previous text ends with
// a collapsible space.
func collapseWhitespace(ws pr.WhiteSpace, text string, collapseLeading bool) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	switch ws {
	case pr.WhiteSpaceNormal, pr.WhiteSpaceNowrap:
		text = collapseSpaces(text, " \t\n")
	case pr.WhiteSpacePreLine:
		text = collapseSpaces(strings.ReplaceAll(text, "\t", " "), " ")
		lines := strings.Split(text, "\n")
		for i := range lines {
			if i != 0 {
				lines[i] = strings.TrimLeft(lines[i], " ")
			}
			if i != len(lines)-1 {
				lines[i] = strings.TrimRight(lines[i], " ")
			}
		}
		text = strings.Join(lines, "\n")
	default:
		return text
	}
	if collapseLeading {
		text = strings.TrimLeft(text, " ")
	}
	return text
}

// collapseSpaces replaces each run of characters from [spaces]
// by one space.
func collapseSpaces(text, spaces string) string {
	var b strings.Builder
	b.Grow(len(text))
	inSpace := false
	for _, r := range text {
		if strings.ContainsRune(spaces, r) {
			if !inSpace {
				b.WriteByte(' ')
			}
			inSpace = true
			continue
		}
		inSpace = false
		b.WriteRune(r)
	}
	return b.String()
}
