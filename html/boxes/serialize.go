package boxes

import "fmt"

// SerBox is a simplified view of a box, used to compare box trees.
type SerBox struct {
	Tag     string
	Type    BoxType
	Content BC
}

// BC is the content of a serialized box: either a text or children.
type BC struct {
	Text       string
	Start, End bool // for inline items
	C          []SerBox
}

func (s SerBox) String() string {
	if s.Content.C == nil {
		return fmt.Sprintf("{%s %s %q}", s.Tag, s.Type, s.Content.Text)
	}
	return fmt.Sprintf("{%s %s %v}", s.Tag, s.Type, s.Content.C)
}

func serTag(b *BoxFields) string {
	if b.PseudoType != "" {
		return b.ElementTag() + "::" + b.PseudoType
	}
	return b.ElementTag()
}

// Serialize transforms a box list into a structure easier to compare
// for testing. Blocks not laid out yet are serialized with their
// inline content.
func Serialize(boxList []Box) []SerBox {
	if len(boxList) == 0 {
		return nil
	}
	out := make([]SerBox, len(boxList))
	for i, box := range boxList {
		bf := box.Box()
		out[i] = SerBox{Tag: serTag(bf), Type: box.Type()}
		switch box := box.(type) {
		case *InlineBox:
			out[i].Content = BC{Text: box.Text, Start: box.StartsHere, End: box.EndsHere}
		case *InlineText:
			out[i].Content = BC{Text: box.Text}
		case *BlockBox:
			children := box.Children()
			if box.ContentType == ContentInline && len(children) == 0 {
				children = box.InlineContent
			}
			out[i].Content = BC{C: Serialize(children)}
		default:
			out[i].Content = BC{C: Serialize(box.Children())}
		}
	}
	return out
}
