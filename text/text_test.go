package text

import (
	"testing"

	pr "github.com/nichevision/flyingsaucer-sub000/css/properties"
	tu "github.com/nichevision/flyingsaucer-sub000/utils/testutils"
)

func TestCells(t *testing.T) {
	tu.AssertEqual(t, Cells("abc"), 3)
	tu.AssertEqual(t, Cells("日本"), 4)
	tu.AssertEqual(t, Cells("e\u0301"), 1)
	tu.AssertEqual(t, Cells(""), 0)
}

func TestCellMeasurer(t *testing.T) {
	m := NewCellMeasurer(0.5)
	font := pr.Font{Size: 16}
	tu.AssertEqual(t, m.Width(font, "abcd"), 32)
	tu.AssertEqual(t, m.Width(font, "日"), 16)

	metrics := m.Metrics(font)
	tu.AssertEqual(t, metrics.Ascent, Fl(12.8))
	tu.AssertEqual(t, metrics.Descent, Fl(3.2))
	tu.AssertEqual(t, metrics.UnderlineThickness, Fl(1))
}
