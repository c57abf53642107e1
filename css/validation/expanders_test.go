package validation

import (
	"testing"

	pr "github.com/nichevision/flyingsaucer-sub000/css/properties"
)

func TestExpandFourSides(t *testing.T) {
	assertValid(t, "margin: 1px", []pr.Declaration{
		{Prop: pr.PMarginTop, Value: px(1)},
		{Prop: pr.PMarginRight, Value: px(1)},
		{Prop: pr.PMarginBottom, Value: px(1)},
		{Prop: pr.PMarginLeft, Value: px(1)},
	})
	assertValid(t, "padding: 1px 2px 3px", []pr.Declaration{
		{Prop: pr.PPaddingTop, Value: px(1)},
		{Prop: pr.PPaddingRight, Value: px(2)},
		{Prop: pr.PPaddingBottom, Value: px(3)},
		{Prop: pr.PPaddingLeft, Value: px(2)},
	})
	assertValid(t, "border-style: solid none", []pr.Declaration{
		{Prop: pr.PBorderTopStyle, Value: pr.Keyword("solid")},
		{Prop: pr.PBorderRightStyle, Value: pr.Keyword("none")},
		{Prop: pr.PBorderBottomStyle, Value: pr.Keyword("solid")},
		{Prop: pr.PBorderLeftStyle, Value: pr.Keyword("none")},
	})
	assertValid(t, "margin: inherit", []pr.Declaration{
		{Prop: pr.PMarginTop, Value: pr.Inherit},
		{Prop: pr.PMarginRight, Value: pr.Inherit},
		{Prop: pr.PMarginBottom, Value: pr.Inherit},
		{Prop: pr.PMarginLeft, Value: pr.Inherit},
	})

	assertInvalid(t, "margin: 1px 2px 3px 4px 5px", "invalid or unsupported")
	assertInvalid(t, "padding: 1px -2px", "invalid or unsupported")
}

func TestExpandBorder(t *testing.T) {
	assertValid(t, "border-top: 2px solid red", []pr.Declaration{
		{Prop: pr.PBorderTopWidth, Value: px(2)},
		{Prop: pr.PBorderTopStyle, Value: pr.Keyword("solid")},
	})
	assertValid(t, "border-left: dashed", []pr.Declaration{
		{Prop: pr.PBorderLeftWidth, Value: pr.Keyword("medium")},
		{Prop: pr.PBorderLeftStyle, Value: pr.Keyword("dashed")},
	})
	decls := expand("border: 1px solid rgb(0, 0, 0)")
	if len(decls) != 8 {
		t.Fatalf("expected 8 longhands, got %v", decls)
	}

	assertInvalid(t, "border: 1px 2px", "invalid or unsupported")
}

func TestExpandFont(t *testing.T) {
	assertValid(t, "font: italic bold 12px/30px Georgia, serif", []pr.Declaration{
		{Prop: pr.PFontStyle, Value: pr.Keyword("italic")},
		{Prop: pr.PFontWeight, Value: pr.Keyword("bold")},
		{Prop: pr.PFontSize, Value: px(12)},
		{Prop: pr.PLineHeight, Value: px(30)},
		{Prop: pr.PFontFamily, Value: pr.Strings{"Georgia", "serif"}},
	})
	assertValid(t, "font: 80% sans-serif", []pr.Declaration{
		{Prop: pr.PFontStyle, Value: pr.Keyword("normal")},
		{Prop: pr.PFontWeight, Value: pr.Keyword("normal")},
		{Prop: pr.PFontSize, Value: pr.Dimension{Value: 80, Unit: pr.Percentage}},
		{Prop: pr.PLineHeight, Value: pr.Keyword("normal")},
		{Prop: pr.PFontFamily, Value: pr.Strings{"sans-serif"}},
	})
	assertInvalid(t, "font: 12px", "invalid or unsupported")
	assertInvalid(t, "font: bold serif", "invalid or unsupported")
}

func TestExpandListStyle(t *testing.T) {
	assertValid(t, "list-style: inside square", []pr.Declaration{
		{Prop: pr.PListStyleType, Value: pr.Keyword("square")},
		{Prop: pr.PListStylePosition, Value: pr.Keyword("inside")},
	})
	assertValid(t, "list-style: none", []pr.Declaration{
		{Prop: pr.PListStyleType, Value: pr.Keyword("none")},
		{Prop: pr.PListStylePosition, Value: pr.Keyword("outside")},
	})
	assertInvalid(t, "list-style: none disc", "invalid or unsupported")
}
