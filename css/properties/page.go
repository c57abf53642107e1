package properties

// PagePseudo is the page selector used to style a page.
type PagePseudo uint8

const (
	PageFirst PagePseudo = iota
	PageRight
	PageLeft
)

func (p PagePseudo) String() string {
	switch p {
	case PageFirst:
		return "first"
	case PageRight:
		return "right"
	default:
		return "left"
	}
}

// MarginArea identifies one of the 16 page margin boxes,
// listed clockwise from the top left corner.
type MarginArea uint8

const (
	TopLeftCorner MarginArea = iota
	TopLeft
	TopCenter
	TopRight
	TopRightCorner
	RightTop
	RightMiddle
	RightBottom
	BottomRightCorner
	BottomRight
	BottomCenter
	BottomLeft
	BottomLeftCorner
	LeftBottom
	LeftMiddle
	LeftTop

	NbMarginAreas
)

var marginAreaNames = [...]string{
	"top-left-corner", "top-left", "top-center", "top-right", "top-right-corner",
	"right-top", "right-middle", "right-bottom",
	"bottom-right-corner", "bottom-right", "bottom-center", "bottom-left", "bottom-left-corner",
	"left-bottom", "left-middle", "left-top",
}

func (m MarginArea) String() string { return marginAreaNames[m] }

// MarginAreaFromString accepts names with or without the leading '@'.
func MarginAreaFromString(s string) (MarginArea, bool) {
	if len(s) > 0 && s[0] == '@' {
		s = s[1:]
	}
	for i, n := range marginAreaNames {
		if n == s {
			return MarginArea(i), true
		}
	}
	return 0, false
}

// PageStyle is the computed style of a page: its size, its margins
// ([top, right, bottom, left]) and the styles of its margin boxes.
type PageStyle struct {
	Width, Height int
	Margin        [4]int
	MarginBoxes   map[MarginArea]*Style
}

// ContentWidth is the width of the page area.
func (ps *PageStyle) ContentWidth() int { return ps.Width - ps.Margin[1] - ps.Margin[3] }

// ContentHeight is the height of the page area.
func (ps *PageStyle) ContentHeight() int { return ps.Height - ps.Margin[0] - ps.Margin[2] }

// Copy returns a deep copy, sharing the margin box styles.
func (ps *PageStyle) Copy() *PageStyle {
	out := *ps
	out.MarginBoxes = make(map[MarginArea]*Style, len(ps.MarginBoxes))
	for k, v := range ps.MarginBoxes {
		out.MarginBoxes[k] = v
	}
	return &out
}
