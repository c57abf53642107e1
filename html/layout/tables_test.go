package layout

import (
	"testing"

	pr "github.com/nichevision/flyingsaucer-sub000/css/properties"
	bo "github.com/nichevision/flyingsaucer-sub000/html/boxes"
	tu "github.com/nichevision/flyingsaucer-sub000/utils/testutils"
)

func tableRows(root *bo.BlockBox) []*bo.BlockBox {
	var out []*bo.BlockBox
	for _, box := range bo.Descendants(root) {
		if block, ok := box.(*bo.BlockBox); ok && block.Style.Display == pr.DisplayTableRow {
			out = append(out, block)
		}
	}
	return out
}

func TestTableRow(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	root := renderFlow(t, `<table style="width: 300px">
		<tr><td style="width: 100px">a</td><td>b</td><td>cc dd ee ff</td></tr>
	</table>`, 400)
	rows := tableRows(root)
	tu.AssertEqual(t, len(rows), 1)
	row := rows[0]
	tu.AssertEqual(t, row.ContentWidth, 300)

	var xs, widths, heights []int
	for _, child := range row.Children() {
		cell := child.(*bo.BlockBox)
		xs = append(xs, cell.X)
		widths = append(widths, cell.ContentWidth)
		heights = append(heights, cell.Height)
	}
	// cells have a 1px padding
	tu.AssertEqual(t, xs, []int{0, 102, 201})
	tu.AssertEqual(t, widths, []int{100, 97, 97})
	tu.AssertEqual(t, heights, []int{34, 34, 34})
	tu.AssertEqual(t, row.Height, 34)
	tu.AssertEqual(t, lineTexts(row.Children()[2].(*bo.BlockBox)), []string{"cc dd", "ee ff"})
}

func TestTableRowColumnSpan(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	root := renderFlow(t, `<table style="width: 300px"><tr><td colspan="2">a</td><td>b</td></tr></table>`, 400)
	row := tableRows(root)[0]
	var widths []int
	for _, child := range row.Children() {
		widths = append(widths, child.Box().Width())
	}
	tu.AssertEqual(t, widths, []int{200, 100})
}

func TestTableRows(t *testing.T) {
	defer tu.CaptureLogs().AssertNoLogs(t)

	root := renderFlow(t, `<table><tfoot><tr><td>f</td></tr></tfoot><tr><td>a</td></tr><thead><tr><td>h</td></tr></thead></table>`, 400)
	rows := tableRows(root)
	tu.AssertEqual(t, len(rows), 3)
	var texts []string
	for _, row := range rows {
		cell := row.Children()[0].(*bo.BlockBox)
		texts = append(texts, lineTexts(cell)...)
	}
	// the header group comes first and the footer group last
	tu.AssertEqual(t, texts, []string{"h", "a", "f"})
	for i, row := range rows {
		tu.AssertEqual(t, row.AbsY, 18*i)
	}
}
