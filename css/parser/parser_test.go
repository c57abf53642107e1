package parser

import (
	"testing"

	tu "github.com/nichevision/flyingsaucer-sub000/utils/testutils"
)

func TestStylesheet(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	sheet := ParseStylesheetBytes([]byte(`
	/* comment */
	div p { border: 1px solid red; font-size: 12px !important }
	h1, h2 { margin: 0 }
	`))
	tu.AssertEqual(t, len(sheet.Rules), 2)
	tu.AssertEqual(t, sheet.Rules[0].Prelude, "div p")
	tu.AssertEqual(t, sheet.Rules[1].Prelude, "h1,h2")

	decls := sheet.Rules[0].Content
	tu.AssertEqual(t, len(decls), 2)
	tu.AssertEqual(t, decls[0].Name, "border")
	tu.AssertEqual(t, Serialize(decls[0].Value), "1px solid red")
	tu.AssertEqual(t, decls[0].Important, false)
	tu.AssertEqual(t, decls[1].Name, "font-size")
	tu.AssertEqual(t, Serialize(decls[1].Value), "12px")
	tu.AssertEqual(t, decls[1].Important, true)
}

func TestPageRule(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	sheet := ParseStylesheetBytes([]byte(`
	@page :first { margin: 1in; @top-center { content: "title" } }
	@page { size: a4 }
	`))
	tu.AssertEqual(t, len(sheet.Rules), 0)
	tu.AssertEqual(t, len(sheet.Pages), 2)

	first := sheet.Pages[0]
	tu.AssertEqual(t, first.Selector, ":first")
	tu.AssertEqual(t, len(first.Content), 1)
	tu.AssertEqual(t, first.Content[0].Name, "margin")
	tu.AssertEqual(t, len(first.Margins), 1)
	tu.AssertEqual(t, first.Margins[0].AtKeyword, "top-center")
	tu.AssertEqual(t, len(first.Margins[0].Content), 1)
	tu.AssertEqual(t, Serialize(first.Margins[0].Content[0].Value), `"title"`)

	tu.AssertEqual(t, sheet.Pages[1].Selector, "")
	tu.AssertEqual(t, Serialize(sheet.Pages[1].Content[0].Value), "a4")
}

func TestMedia(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	sheet := ParseStylesheetBytes([]byte(`
	@media screen { p { color: red } }
	@media print { h1 { color: blue } }
	@media all and (min-width: 10px) { h2 { color: green } }
	em { color: black }
	`))
	var preludes []string
	for _, r := range sheet.Rules {
		preludes = append(preludes, r.Prelude)
	}
	tu.AssertEqual(t, preludes, []string{"h1", "h2", "em"})
}

func TestInvalidDeclaration(t *testing.T) {
	logs := tu.CaptureLogs()

	sheet := ParseStylesheetBytes([]byte(`p { color red; margin: 0 } h1 { padding: 1px }`))
	logs.CheckLogs(t, "invalid CSS")

	tu.AssertEqual(t, len(sheet.Rules), 2)
	tu.AssertEqual(t, len(sheet.Rules[0].Content), 1)
	tu.AssertEqual(t, sheet.Rules[0].Content[0].Name, "margin")
	tu.AssertEqual(t, sheet.Rules[1].Content[0].Name, "padding")
}

func TestDeclarationList(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	decls := ParseDeclarationListString("COLOR: red; width:50%;; float : left!important")
	tu.AssertEqual(t, len(decls), 3)
	tu.AssertEqual(t, decls[0].Name, "color")
	tu.AssertEqual(t, Serialize(decls[1].Value), "50%")
	tu.AssertEqual(t, decls[2].Name, "float")
	tu.AssertEqual(t, Serialize(decls[2].Value), "left")
	tu.AssertEqual(t, decls[2].Important, true)
}
