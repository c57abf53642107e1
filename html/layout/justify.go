package layout

import (
	"math"

	bo "github.com/nichevision/flyingsaucer-sub000/html/boxes"
)

// share of the extra space given to the non space characters
// of a justified line, when it also has spaces
const (
	nonSpaceShare = 0.2
	spaceShare    = 0.8
)

func collectTexts(children []Box, out []*bo.InlineText) []*bo.InlineText {
	for _, child := range children {
		switch child := child.(type) {
		case *bo.InlineText:
			out = append(out, child)
		case *bo.InlineLayoutBox:
			out = collectTexts(child.Children(), out)
		}
	}
	return out
}

// justifyLine widens the text of [line] by [toAdd] pixels, spread after
// each character but the last one of the line. The adjustments are
// rounded cumulatively, so that exactly [toAdd] pixels are added.
func justifyLine(line *bo.LineBox, toAdd int) {
	texts := collectTexts(line.InlineChildren(), nil)
	runes := make([][]rune, len(texts))
	spaces, nonSpaces := 0, 0
	lastText := -1
	for i, t := range texts {
		runes[i] = []rune(t.Text)
		if len(runes[i]) != 0 {
			lastText = i
		}
	}
	if lastText == -1 {
		return
	}
	for i := 0; i <= lastText; i++ {
		rs := runes[i]
		if i == lastText {
			rs = rs[:len(rs)-1]
		}
		for _, r := range rs {
			if r == ' ' {
				spaces++
			} else {
				nonSpaces++
			}
		}
	}
	if spaces+nonSpaces == 0 {
		return
	}

	info := &bo.JustificationInfo{}
	switch {
	case spaces == 0:
		info.NonSpaceAdjust = float64(toAdd) / float64(nonSpaces)
	case nonSpaces == 0:
		info.SpaceAdjust = float64(toAdd) / float64(spaces)
	default:
		info.NonSpaceAdjust = float64(toAdd) * nonSpaceShare / float64(nonSpaces)
		info.SpaceAdjust = float64(toAdd) * spaceShare / float64(spaces)
	}
	line.Justification = info

	var total float64
	added := 0
	for i := 0; i <= lastText; i++ {
		rs := runes[i]
		if i == lastText {
			rs = rs[:len(rs)-1]
		}
		for _, r := range rs {
			if r == ' ' {
				total += info.SpaceAdjust
			} else {
				total += info.NonSpaceAdjust
			}
		}
		extra := int(math.Round(total)) - added
		if i == lastText {
			extra = toAdd - added
		}
		texts[i].ContentWidth += extra
		added += extra
	}
}
