package text

import (
	"testing"

	pr "github.com/nichevision/flyingsaucer-sub000/css/properties"
	tu "github.com/nichevision/flyingsaucer-sub000/utils/testutils"
)

// each character is 10px wide
func testBreaker() (*Breaker, *pr.Style) {
	style := pr.InitialStyle(10)
	return NewBreaker(NewCellMeasurer(1)), style
}

func TestBreakText(t *testing.T) {
	b, style := testBreaker()
	c := NewLineBreakContext("Hello world foo")

	b.BreakText(c, 100, style, false)
	tu.AssertEqual(t, c.CalculatedSubstring(), "Hello ")
	tu.AssertEqual(t, c.Width, 60)
	tu.AssertEqual(t, c.NeedsNewLine, true)
	tu.AssertEqual(t, c.Unbreakable, false)

	c.Next()
	tu.AssertEqual(t, c.StartSubstring(), "world foo")
	b.BreakText(c, 100, style, false)
	tu.AssertEqual(t, c.CalculatedSubstring(), "world foo")
	tu.AssertEqual(t, c.Width, 90)
	tu.AssertEqual(t, c.NeedsNewLine, false)

	c.Next()
	tu.AssertEqual(t, c.IsFinished(), true)
}

func TestBreakTextTrailingSpace(t *testing.T) {
	b, style := testBreaker()
	// the trailing space does not count when fitting
	c := NewLineBreakContext("abcd efgh")
	b.BreakText(c, 40, style, false)
	tu.AssertEqual(t, c.CalculatedSubstring(), "abcd ")
	tu.AssertEqual(t, c.Width, 50)
	tu.AssertEqual(t, c.NeedsNewLine, true)
}

func TestBreakTextUnbreakable(t *testing.T) {
	b, style := testBreaker()
	c := NewLineBreakContext("Supercalifragilistic word")
	b.BreakText(c, 50, style, false)
	tu.AssertEqual(t, c.CalculatedSubstring(), "Supercalifragilistic ")
	tu.AssertEqual(t, c.Unbreakable, true)
	tu.AssertEqual(t, c.NeedsNewLine, true)

	c = NewLineBreakContext("Supercalifragilistic")
	b.BreakText(c, 50, style, true)
	tu.AssertEqual(t, c.CalculatedSubstring(), "Super")
	tu.AssertEqual(t, c.Width, 50)
	tu.AssertEqual(t, c.Unbreakable, false)

	// at least one character is consumed
	c = NewLineBreakContext("Super")
	b.BreakText(c, 5, style, true)
	tu.AssertEqual(t, c.CalculatedSubstring(), "S")
}

func TestBreakTextNowrap(t *testing.T) {
	b, style := testBreaker()
	style.WhiteSpace = pr.WhiteSpaceNowrap
	c := NewLineBreakContext("no wrap at all")
	b.BreakText(c, 20, style, false)
	tu.AssertEqual(t, c.CalculatedSubstring(), "no wrap at all")
	tu.AssertEqual(t, c.Width, 140)
	tu.AssertEqual(t, c.NeedsNewLine, false)
}

func TestBreakTextPreserved(t *testing.T) {
	b, style := testBreaker()

	style.WhiteSpace = pr.WhiteSpacePre
	c := NewLineBreakContext("ab\ncd ef")
	b.BreakText(c, 10, style, false)
	tu.AssertEqual(t, c.CalculatedSubstring(), "ab\n")
	tu.AssertEqual(t, c.Width, 20)
	tu.AssertEqual(t, c.EndsOnNL, true)
	c.Next()
	b.BreakText(c, 10, style, false)
	tu.AssertEqual(t, c.CalculatedSubstring(), "cd ef")
	tu.AssertEqual(t, c.NeedsNewLine, false)

	style.WhiteSpace = pr.WhiteSpacePreLine
	c = NewLineBreakContext("ab\ncd")
	b.BreakText(c, 100, style, false)
	tu.AssertEqual(t, c.CalculatedSubstring(), "ab\n")
	tu.AssertEqual(t, c.NeedsNewLine, true)
	tu.AssertEqual(t, c.EndsOnNL, true)

	// the line is too long: wrap before the newline
	style.WhiteSpace = pr.WhiteSpacePreWrap
	c = NewLineBreakContext("ab cd\nef")
	b.BreakText(c, 40, style, false)
	tu.AssertEqual(t, c.CalculatedSubstring(), "ab ")
	tu.AssertEqual(t, c.NeedsNewLine, true)
	tu.AssertEqual(t, c.EndsOnNL, false)
}

func TestBreakFirstLetter(t *testing.T) {
	b, style := testBreaker()
	c := NewLineBreakContext(`"H" world`)
	b.BreakFirstLetter(c, 100, style)
	tu.AssertEqual(t, c.CalculatedSubstring(), `"H" `)
	tu.AssertEqual(t, c.Width, 40)
	tu.AssertEqual(t, c.NeedsNewLine, false)

	c = NewLineBreakContext("Word")
	b.BreakFirstLetter(c, 5, style)
	tu.AssertEqual(t, c.CalculatedSubstring(), "W")
	tu.AssertEqual(t, c.Unbreakable, true)
}
