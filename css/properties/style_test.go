package properties

import (
	"testing"

	"golang.org/x/text/language"

	tu "github.com/nichevision/flyingsaucer-sub000/utils/testutils"
)

func TestResolveTruncates(t *testing.T) {
	tu.AssertEqual(t, Percent(50).Resolve(101), 50)
	tu.AssertEqual(t, Percent(33).Resolve(100), 33)
	tu.AssertEqual(t, Px(10.9).Resolve(0), 10)
	tu.AssertEqual(t, Auto.Resolve(100), 0)
}

func TestPixelUnit(t *testing.T) {
	u, ok := UnitFromString("px")
	tu.AssertEqual(t, ok, true)
	tu.AssertEqual(t, u, Pixels)
	d := Dimension{Value: 12, Unit: u}
	tu.AssertEqual(t, d.String(), "12px")
	tu.AssertEqual(t, d.ToPixels(20), Fl(12))

	s := InitialStyle(20)
	s.Apply(PMarginTop, d, nil)
	tu.AssertEqual(t, s.Margin[Top], Px(12))
}

func TestApplyLengths(t *testing.T) {
	parent := InitialStyle(20)
	s := InheritFrom(parent)
	s.Apply(PFontSize, Dimension{Value: 2, Unit: Em}, parent)
	tu.AssertEqual(t, s.Font.Size, Fl(40))

	s.Apply(PMarginLeft, Dimension{Value: 1, Unit: Em}, parent)
	tu.AssertEqual(t, s.Margin[Left], Px(40))
	s.Apply(PWidth, Dimension{Value: 50, Unit: Percentage}, parent)
	tu.AssertEqual(t, s.Width, Percent(50))
	s.Apply(PWidth, Keyword("auto"), parent)
	tu.AssertEqual(t, s.Width.IsAuto(), true)
	s.Apply(PLineHeight, Dimension{Value: 150, Unit: Percentage}, parent)
	tu.AssertEqual(t, s.LineHeight, LineHeight{Pixels: 60})
	s.Apply(PTextIndent, Dimension{Value: 12, Unit: Pt}, parent)
	tu.AssertEqual(t, s.TextIndent, Px(16))
}

func TestApplyKeywords(t *testing.T) {
	s := InitialStyle(16)
	s.Apply(PDisplay, Keyword("table-header-group"), nil)
	tu.AssertEqual(t, s.Display, DisplayTableHeaderGroup)
	s.Apply(PFloat, Keyword("right"), nil)
	tu.AssertEqual(t, s.IsFloatedRight(), true)
	s.Apply(PPosition, Running("header"), nil)
	tu.AssertEqual(t, s.IsRunning(), true)
	tu.AssertEqual(t, s.RunningName, "header")
	tu.AssertEqual(t, s.IsLayedOutInInlineContext(), true)
	s.Apply(PPageBreakBefore, Keyword("left"), nil)
	tu.AssertEqual(t, s.IsForcePageBreakBefore(), true)
	s.Apply(PKeepWithInline, Keyword("keep"), nil)
	tu.AssertEqual(t, s.IsKeepWithInline(), true)
	s.Apply(PWhiteSpace, Keyword("pre"), nil)
	tu.AssertEqual(t, s.IsCollapsingSpaces(), false)
	s.Apply(PLang, Strings{"fr-CA"}, nil)
	tu.AssertEqual(t, s.Lang, language.MustParse("fr-CA"))
}

func TestInheritance(t *testing.T) {
	parent := InitialStyle(16)
	parent.Apply(PTextAlign, Keyword("center"), nil)
	parent.Apply(PMarginTop, Dimension{Value: 10, Unit: Pixels}, nil)
	parent.Apply(PWidows, Dimension{Value: 3}, nil)
	child := InheritFrom(parent)
	tu.AssertEqual(t, child.TextAlign, TextAlignCenter)
	tu.AssertEqual(t, child.Margin[Top], Zero)
	tu.AssertEqual(t, child.Widows, 3)

	child.Apply(PMarginTop, Inherit, parent)
	tu.AssertEqual(t, child.Margin[Top], Px(10))
	child.Apply(PTextAlign, Initial, parent)
	tu.AssertEqual(t, child.TextAlign, TextAlignLeft)

	anon := parent.DeriveAnonymous(DisplayBlock)
	tu.AssertEqual(t, anon.Display, DisplayBlock)
	tu.AssertEqual(t, anon.TextAlign, TextAlignCenter)
	tu.AssertEqual(t, anon.Margin[Top], Zero)
}

func TestBorder(t *testing.T) {
	s := InitialStyle(16)
	tu.AssertEqual(t, s.Border(Top), 0) // style none
	s.Apply(PBorderTopStyle, Keyword("solid"), nil)
	tu.AssertEqual(t, s.Border(Top), 3) // medium
	s.Apply(PBorderTopWidth, Dimension{Value: 2.7, Unit: Pixels}, nil)
	tu.AssertEqual(t, s.Border(Top), 2)
	s.Apply(PPaddingTop, Dimension{Value: 10, Unit: Percentage}, nil)
	tu.AssertEqual(t, s.BorderPadding(Top, 200), 22)
}

func TestFormatCounter(t *testing.T) {
	tu.AssertEqual(t, FormatCounter(4, ListStyleDecimal), "4")
	tu.AssertEqual(t, FormatCounter(28, ListStyleLowerAlpha), "ab")
	tu.AssertEqual(t, FormatCounter(1994, ListStyleUpperRoman), "MCMXCIV")
	tu.AssertEqual(t, MarkerText(3, ListStyleLowerRoman), "iii. ")
	tu.AssertEqual(t, MarkerText(3, ListStyleDisc), "• ")
	tu.AssertEqual(t, MarkerText(3, ListStyleNone), "")
}
