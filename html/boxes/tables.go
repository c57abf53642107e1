package boxes

import (
	"strings"

	pr "github.com/nichevision/flyingsaucer-sub000/css/properties"
)

type tableLevel uint8

const (
	levelOther tableLevel = iota
	levelTable
	levelRowGroup
	levelRow
	levelCell
	levelCaption
	levelColumn
)

func levelOf(box Box) tableLevel {
	block, ok := box.(*BlockBox)
	if !ok {
		return levelOther
	}
	switch block.Style.Display {
	case pr.DisplayTable, pr.DisplayInlineTable:
		return levelTable
	case pr.DisplayTableRowGroup, pr.DisplayTableHeaderGroup, pr.DisplayTableFooterGroup:
		return levelRowGroup
	case pr.DisplayTableRow:
		return levelRow
	case pr.DisplayTableCell:
		return levelCell
	case pr.DisplayTableCaption:
		return levelCaption
	case pr.DisplayTableColumn, pr.DisplayTableColumnGroup:
		return levelColumn
	default:
		return levelOther
	}
}

func isTable(box *BlockBox) bool { return levelOf(box) == levelTable }

// isProperTableChild is true for the boxes allowed as children of a table.
func isProperTableChild(level tableLevel) bool {
	return level == levelRowGroup || level == levelRow || level == levelCaption
}

// isWhitespace is true for anonymous text made of spaces only,
// ignored between table parts.
func isWhitespace(box Box) bool {
	ib, ok := box.(*InlineBox)
	return ok && ib.Anonymous && strings.TrimSpace(ib.Text) == ""
}

// fixTableChildren generates the missing table wrappers,
// as described in http://www.w3.org/TR/CSS21/tables.html#anonymous-boxes
// Columns are not supported and are dropped.
func fixTableChildren(parent *BlockBox, children []Box, open []*InlineBox) []Box {
	switch levelOf(parent) {
	case levelTable:
		return wrapImproper(parent, removeIgnored(children), open, isProperTableChild, pr.DisplayTableRow)
	case levelRowGroup:
		return wrapImproper(parent, removeIgnored(children), open,
			func(l tableLevel) bool { return l == levelRow }, pr.DisplayTableRow)
	case levelRow:
		return wrapImproper(parent, removeIgnored(children), open,
			func(l tableLevel) bool { return l == levelCell }, pr.DisplayTableCell)
	default:
		return wrapMisparented(parent, children)
	}
}

func removeIgnored(children []Box) []Box {
	out := make([]Box, 0, len(children))
	for _, child := range children {
		if levelOf(child) == levelColumn || isWhitespace(child) {
			continue
		}
		out = append(out, child)
	}
	return out
}

// wrapImproper wraps each run of children not accepted by [proper]
// in an anonymous box with the given display.
func wrapImproper(parent *BlockBox, children []Box, open []*InlineBox,
	proper func(tableLevel) bool, display pr.Display,
) []Box {
	var out, run []Box
	open = append([]*InlineBox(nil), open...)
	runOpen := open
	flush := func() {
		if len(run) == 0 {
			return
		}
		wrapper := BlockBoxAnonymousFrom(parent, display)
		setContentOpen(wrapper, run, runOpen)
		out = append(out, wrapper)
		run = nil
	}
	for _, child := range children {
		if proper(levelOf(child)) {
			flush()
			out = append(out, child)
			continue
		}
		if len(run) == 0 {
			runOpen = append([]*InlineBox(nil), open...)
		}
		run = append(run, child)
		open = trackOpenInlines(open, child)
	}
	flush()
	return out
}

// wrapMisparented wraps the table parts found outside of a table:
// runs of cells in an anonymous row, then runs of rows, row groups
// and captions in an anonymous table.
func wrapMisparented(parent *BlockBox, children []Box) []Box {
	children = wrapRuns(parent, children, func(l tableLevel) bool { return l == levelCell }, pr.DisplayTableRow)
	return wrapRuns(parent, children, isProperTableChild, pr.DisplayTable)
}

// wrapRuns wraps the runs of children accepted by [inRun]. Whitespace
// between two members of a run is dropped.
func wrapRuns(parent *BlockBox, children []Box, inRun func(tableLevel) bool, display pr.Display) []Box {
	var out, run, pending []Box
	flush := func() {
		if len(run) != 0 {
			wrapper := BlockBoxAnonymousFrom(parent, display)
			setContent(wrapper, run)
			if isTable(wrapper) {
				out = append(out, wrapTable(wrapper))
			} else {
				out = append(out, wrapper)
			}
			run = nil
		}
		out = append(out, pending...)
		pending = nil
	}
	for _, child := range children {
		level := levelOf(child)
		switch {
		case inRun(level):
			pending = nil
			run = append(run, child)
		case level == levelColumn:
		case len(run) != 0 && isWhitespace(child):
			pending = append(pending, child)
		default:
			flush()
			out = append(out, child)
		}
	}
	flush()
	return out
}

// wrapTable moves the first header group first and the first footer
// group last, and wraps the table with its captions in an anonymous
// block, returned in place of the table. A float applies to the wrapper.
func wrapTable(table *BlockBox) Box {
	children := table.children
	if i := indexOfDisplay(children, pr.DisplayTableHeaderGroup); i > 0 {
		header := children[i]
		children = append(append([]Box{header}, children[:i]...), children[i+1:]...)
	}
	if i := indexOfDisplay(children, pr.DisplayTableFooterGroup); i != -1 && i != len(children)-1 {
		footer := children[i]
		children = append(append(append([]Box(nil), children[:i]...), children[i+1:]...), footer)
	}

	var top, bottom, rest []Box
	for _, child := range children {
		if levelOf(child) != levelCaption {
			rest = append(rest, child)
		} else if child.Box().Style.CaptionSide == pr.CaptionBottom {
			bottom = append(bottom, child)
		} else {
			top = append(top, child)
		}
	}
	table.children = nil
	if len(rest) != 0 {
		table.SetChildren(rest)
	} else if table.ContentType == ContentBlock {
		table.ContentType = ContentEmpty
	}
	if len(top) == 0 && len(bottom) == 0 {
		return table
	}

	display := pr.DisplayBlock
	if table.Style.Display == pr.DisplayInlineTable {
		display = pr.DisplayInlineBlock
	}
	wrapper := NewBlockBox(table.Style.DeriveAnonymous(display), table.Element, "")
	wrapper.Anonymous = true
	tableStyle := table.Style.Copy()
	tableStyle.Display = pr.DisplayTable
	if table.Style.IsFloated() {
		wrapperStyle := wrapper.Style.Copy()
		wrapperStyle.Float = table.Style.Float
		wrapper.Style = wrapperStyle
		tableStyle.Float = pr.FloatNone
	}
	table.Style = tableStyle

	wrapper.ContentType = ContentBlock
	wrapper.SetChildren(append(append(top, table), bottom...))
	return wrapper
}

func indexOfDisplay(children []Box, display pr.Display) int {
	for i, child := range children {
		if child.Box().Style.Display == display {
			return i
		}
	}
	return -1
}
