package boxes

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/nichevision/flyingsaucer-sub000/html/tree"
)

type handlerFunction = func(element *html.Node, box *BlockBox) []Box

// htmlHandlers map a tag name to a callback adjusting the boxes
// of elements with a special meaning.
var htmlHandlers = map[string]handlerFunction{
	"img":      handleImg,
	"td":       handleCell,
	"th":       handleCell,
	"colgroup": handleColumn,
	"col":      handleColumn,
}

// handleElement handle HTML elements that need special care.
func handleElement(element *html.Node, box *BlockBox) []Box {
	handler, in := htmlHandlers[box.ElementTag()]
	if in {
		return handler(element, box)
	}
	return []Box{box}
}

// Handle “<img>“ elements: images are not loaded, so the
// element is replaced by its alt-text.
// See: http://www.w3.org/TR/html5/embedded-content-1.html#the-img-element
func handleImg(element *html.Node, box *BlockBox) []Box {
	alt := tree.GetAttr(element, "alt")
	if alt == "" {
		// The element represents nothing
		return nil
	}
	setContent(box, []Box{anonymousText(box, alt)})
	return []Box{box}
}

// Handle the “colspan“ attribute.
func handleCell(element *html.Node, box *BlockBox) []Box {
	if levelOf(box) == levelCell {
		box.ColumnSpan = integerAttribute(tree.GetAttr(element, "colspan"), 1)
	}
	return []Box{box}
}

// Columns only affect the painting of the cells, which is not
// supported: they generate no box.
func handleColumn(_ *html.Node, box *BlockBox) []Box {
	if levelOf(box) == levelColumn {
		return nil
	}
	return []Box{box}
}

// Read an integer attribute from the HTML element.
// If is invalid, it default to 1
func integerAttribute(attr string, minimum int) int {
	value := strings.TrimSpace(attr)
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return 1
	}
	if intValue < minimum {
		intValue = minimum
	}
	return intValue
}
