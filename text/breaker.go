package text

import (
	"sort"
	"strings"
	"unicode"

	"github.com/go-text/typesetting/segmenter"

	pr "github.com/nichevision/flyingsaucer-sub000/css/properties"
)

// number of runes measured to estimate the average
// character width of a run
const estimatePrefix = 10

// LineBreakContext is the state of the breaking of one text run.
// A chunk is Master[Start:End].
type LineBreakContext struct {
	Master     []rune
	Start, End int

	Width        int  // width of the current chunk
	NeedsNewLine bool // the chunk ends the line
	Unbreakable  bool // no break opportunity fits the available width
	EndsOnNL     bool // the chunk ends with a preserved newline
}

// NewLineBreakContext starts breaking [text].
func NewLineBreakContext(text string) *LineBreakContext {
	return &LineBreakContext{Master: []rune(text)}
}

// IsFinished is true when the whole text has been consumed.
func (c *LineBreakContext) IsFinished() bool { return c.Start >= len(c.Master) }

// Next moves to the chunk following the current one.
func (c *LineBreakContext) Next() { c.Start = c.End }

// StartSubstring returns the text not yet consumed.
func (c *LineBreakContext) StartSubstring() string { return string(c.Master[c.Start:]) }

// CalculatedSubstring returns the current chunk.
func (c *LineBreakContext) CalculatedSubstring() string { return string(c.Master[c.Start:c.End]) }

func (c *LineBreakContext) reset() {
	c.Width = 0
	c.NeedsNewLine, c.Unbreakable, c.EndsOnNL = false, false, false
}

// Breaker finds the line breaks of text runs.
// The zero value is not usable: see [NewBreaker].
type Breaker struct {
	measurer Measurer
	seg      segmenter.Segmenter
}

func NewBreaker(measurer Measurer) *Breaker {
	return &Breaker{measurer: measurer}
}

func (b *Breaker) Measurer() Measurer { return b.measurer }

func (b *Breaker) width(font pr.Font, text []rune) int {
	return b.measurer.Width(font, string(text))
}

// fitWidth ignores the trailing spaces, which hang at the end of lines.
func (b *Breaker) fitWidth(font pr.Font, text []rune) int {
	end := len(text)
	for end > 0 && text[end-1] == ' ' {
		end--
	}
	return b.width(font, text[:end])
}

// BreakText finds the end of the chunk starting at c.Start which fits
// in [avail]. When no break opportunity fits, the chunk is flagged as
// unbreakable, unless [tryToBreakAnywhere] is true: the text is then
// split between any two characters.
func (b *Breaker) BreakText(c *LineBreakContext, avail int, style *pr.Style, tryToBreakAnywhere bool) {
	c.reset()
	font := style.Font
	ws := style.WhiteSpace
	if ws == pr.WhiteSpaceNowrap {
		c.End = len(c.Master)
		c.Width = b.width(font, c.Master[c.Start:c.End])
		return
	}

	limit := len(c.Master)
	// check if we should break on the next newline
	if ws == pr.WhiteSpacePre || ws == pr.WhiteSpacePreWrap || ws == pr.WhiteSpacePreLine {
		if n := indexRune(c.Master[c.Start:], '\n'); n != -1 {
			c.End = c.Start + n + 1
			c.Width = b.width(font, c.Master[c.Start:c.Start+n])
			c.NeedsNewLine, c.EndsOnNL = true, true
			limit = c.End
		} else if ws == pr.WhiteSpacePre {
			c.End = len(c.Master)
			c.Width = b.width(font, c.Master[c.Start:c.End])
		}
	}

	// check if we may wrap
	if ws == pr.WhiteSpacePre || (c.NeedsNewLine && c.Width <= avail) {
		return
	}

	c.EndsOnNL = false
	b.doBreakText(c, c.Master[c.Start:limit], avail, font)
	if c.Unbreakable && tryToBreakAnywhere {
		b.breakAnywhere(c, avail, font)
	}
}

// boundaries returns the offsets in [text] where a line may end,
// in increasing order. The last one is always len(text).
func (b *Breaker) boundaries(text []rune) []int {
	var out []int
	b.seg.Init(text)
	iter := b.seg.LineIterator()
	for iter.Next() {
		line := iter.Line()
		if end := line.Offset + len(line.Text); end > 0 {
			out = append(out, end)
		}
	}
	if len(out) == 0 || out[len(out)-1] != len(text) {
		out = append(out, len(text))
	}
	return out
}

func (b *Breaker) doBreakText(c *LineBreakContext, text []rune, avail int, font pr.Font) {
	bounds := b.boundaries(text)
	fits := func(i int) bool { return b.fitWidth(font, text[:bounds[i]]) <= avail }

	// jump near the target using the average width of a prefix
	i := 0
	prefix := min(len(text), estimatePrefix)
	if w := b.width(font, text[:prefix]); w > 0 && avail > 0 {
		guess := avail * prefix / w
		i = sort.SearchInts(bounds, guess)
		if i == len(bounds) {
			i--
		}
	}
	// walk forward while it fits, then backward until it fits
	for i < len(bounds) && fits(i) {
		i++
	}
	i--
	for i >= 0 && !fits(i) {
		i--
	}

	switch {
	case i == len(bounds)-1: // it fits
		c.End = c.Start + len(text)
		c.Width = b.width(font, text)
		if len(text) != 0 && text[len(text)-1] == '\n' { // stopped on a preserved newline
			c.NeedsNewLine, c.EndsOnNL = true, true
		}
	case i >= 0: // found a place to wrap
		c.End = c.Start + bounds[i]
		c.Width = b.width(font, text[:bounds[i]])
		c.NeedsNewLine = true
	default: // unbreakable string
		c.End = c.Start + bounds[0]
		c.Width = b.width(font, text[:bounds[0]])
		c.NeedsNewLine = true
		c.Unbreakable = true
	}
}

// breakAnywhere walks backward one character at a time
// from the end of an unbreakable chunk.
func (b *Breaker) breakAnywhere(c *LineBreakContext, avail int, font pr.Font) {
	for end := c.End - 1; end > c.Start; end-- {
		if w := b.width(font, c.Master[c.Start:end]); w <= avail {
			c.End, c.Width = end, w
			c.Unbreakable = false
			return
		}
	}
	// a single character is always kept
	c.End = c.Start + 1
	c.Width = b.width(font, c.Master[c.Start:c.End])
}

// BreakFirstLetter isolates the first letter of the text, with the
// surrounding punctuation, for ::first-letter styling.
func (b *Breaker) BreakFirstLetter(c *LineBreakContext, avail int, style *pr.Style) {
	c.reset()
	c.End = firstLetterEnd(c.Master, c.Start)
	c.Width = b.width(style.Font, c.Master[c.Start:c.End])
	if c.Width > avail {
		c.NeedsNewLine = true
		c.Unbreakable = true
	}
}

// IsFirstLetterSeparator returns true for punctuation and spaces,
// which are included in the ::first-letter pseudo element.
func IsFirstLetterSeparator(r rune) bool {
	return unicode.In(r, unicode.Ps, unicode.Pe, unicode.Pi, unicode.Pf, unicode.Po, unicode.Zs)
}

func firstLetterEnd(text []rune, start int) int {
	letterFound := false
	for i := start; i < len(text); i++ {
		if !IsFirstLetterSeparator(text[i]) {
			if letterFound {
				return i
			}
			letterFound = true
		}
	}
	return len(text)
}

// IsWhitespace is true for the collapsible white space characters.
func IsWhitespace(r rune) bool { return r == ' ' || r == '\t' || r == '\n' || r == '\r' }

// TrimTrailingSpace returns [text] without its trailing spaces.
func TrimTrailingSpace(text string) string { return strings.TrimRight(text, " ") }

func indexRune(text []rune, r rune) int {
	for i, c := range text {
		if c == r {
			return i
		}
	}
	return -1
}
