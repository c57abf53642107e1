package properties

import (
	"strconv"
	"strings"
)

type ContentKind uint8

const (
	ContentString   ContentKind = iota // literal text
	ContentAttr                        // attr(name)
	ContentCounter                     // counter(name[, style])
	ContentCounters                    // counters(name, separator[, style])
	ContentElement                     // element(name[, position]), margin boxes only
)

// PageElementPosition selects which running element is used
// on a page, among the ones sharing a name.
type PageElementPosition uint8

const (
	// the first element assigned on the page, or the one
	// in effect at the start of the page
	PageElementFirst PageElementPosition = iota
	// the element in effect at the start of the page
	PageElementStart
	// the last element assigned on the page, or the one in effect
	PageElementLast
	// like first, but nothing on pages where an element is assigned
	PageElementLastExcept
)

var pageElementNames = map[string]PageElementPosition{
	"first": PageElementFirst, "start": PageElementStart,
	"last": PageElementLast, "last-except": PageElementLastExcept,
}

// PageElementFromString returns the position for [s], and false if unknown.
func PageElementFromString(s string) (PageElementPosition, bool) {
	p, ok := pageElementNames[s]
	return p, ok
}

type ContentItem struct {
	Kind      ContentKind
	String    string // text, attribute, counter or element name
	Separator string // for counters()
	Style     ListStyleType
	Position  PageElementPosition // for element()
}

// Contents is the value of the content property. A nil value
// means normal (or none): no box is generated for pseudo elements.
type Contents []ContentItem

// CounterOp is one (name, value) pair of counter-reset or counter-increment.
type CounterOp struct {
	Name  string
	Value int
}

type CounterOps []CounterOp

var romanTable = []struct {
	value int
	digit string
}{
	{1000, "m"}, {900, "cm"}, {500, "d"}, {400, "cd"}, {100, "c"}, {90, "xc"},
	{50, "l"}, {40, "xl"}, {10, "x"}, {9, "ix"}, {5, "v"}, {4, "iv"}, {1, "i"},
}

func toRoman(value int) string {
	if value <= 0 || value >= 4000 {
		return strconv.Itoa(value)
	}
	var b strings.Builder
	for _, r := range romanTable {
		for value >= r.value {
			b.WriteString(r.digit)
			value -= r.value
		}
	}
	return b.String()
}

func toAlpha(value int) string {
	if value <= 0 {
		return strconv.Itoa(value)
	}
	var out []byte
	for value > 0 {
		value--
		out = append([]byte{byte('a' + value%26)}, out...)
		value /= 26
	}
	return string(out)
}

// FormatCounter renders a counter value in the given list style.
func FormatCounter(value int, style ListStyleType) string {
	switch style {
	case ListStyleDisc:
		return "•"
	case ListStyleCircle:
		return "◦"
	case ListStyleSquare:
		return "▪"
	case ListStyleLowerAlpha:
		return toAlpha(value)
	case ListStyleUpperAlpha:
		return strings.ToUpper(toAlpha(value))
	case ListStyleLowerRoman:
		return toRoman(value)
	case ListStyleUpperRoman:
		return strings.ToUpper(toRoman(value))
	case ListStyleNone:
		return ""
	default:
		return strconv.Itoa(value)
	}
}

// MarkerText returns the text of a list item marker, including the
// separator, or an empty string for list-style-type: none.
func MarkerText(value int, style ListStyleType) string {
	switch style {
	case ListStyleNone:
		return ""
	case ListStyleDisc, ListStyleCircle, ListStyleSquare:
		return FormatCounter(value, style) + " "
	default:
		return FormatCounter(value, style) + ". "
	}
}
