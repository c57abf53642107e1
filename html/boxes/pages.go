package boxes

import (
	"fmt"
	"sort"

	pr "github.com/nichevision/flyingsaucer-sub000/css/properties"
	"github.com/nichevision/flyingsaucer-sub000/logger"
)

// PageStyler provides the computed style of the pages.
// It is implemented by *tree.StyleFor.
type PageStyler interface {
	PageStyle(pseudo pr.PagePseudo) *pr.PageStyle
}

// MarginBox is the laid out content of one page margin area.
// The position of Box is relative to the top left corner of the page.
type MarginBox struct {
	Area pr.MarginArea
	Box  *BlockBox
}

// PageBox is one page of a paginated layout.
// Top and Bottom delimit the part of the document flowing in
// the page area, as [Top, Bottom).
type PageBox struct {
	Style  *pr.PageStyle
	Pseudo pr.PagePseudo
	Index  int // 0-based, in the whole document

	Top, Bottom int

	MarginBoxes []MarginBox
}

// ContentHeight is the height of the page area.
func (p *PageBox) ContentHeight() int { return p.Style.ContentHeight() }

// ContentWidth is the width of the page area.
func (p *PageBox) ContentWidth() int { return p.Style.ContentWidth() }

// IsLeftPage is true for even page numbers: the first page is a right page.
func (p *PageBox) IsLeftPage() bool { return p.Index%2 != 0 }

func (p *PageBox) String() string {
	return fmt.Sprintf("<Page %d %s [%d, %d)>", p.Index+1, p.Pseudo, p.Top, p.Bottom)
}

func (l *Layer) pagePseudo() pr.PagePseudo {
	switch {
	case len(l.pages) == 0:
		return pr.PageFirst
	case len(l.pages)%2 == 0:
		return pr.PageRight
	default:
		return pr.PageLeft
	}
}

// AddPage appends a page at the end of the document.
func (l *Layer) AddPage() *PageBox {
	pseudo := l.pagePseudo()
	page := &PageBox{Style: l.pageStyler.PageStyle(pseudo), Pseudo: pseudo, Index: len(l.pages)}
	if len(l.pages) != 0 {
		page.Top = l.pages[len(l.pages)-1].Bottom
	}
	page.Bottom = page.Top + page.ContentHeight()
	if page.Bottom <= page.Top {
		// a page must be able to hold something
		page.Bottom = page.Top + 1
	}
	l.pages = append(l.pages, page)
	logger.ProgressLogger.Debugf("adding page %d [%d, %d)", len(l.pages), page.Top, page.Bottom)
	return page
}

// Pages returns the pages of a paginated root layer.
func (l *Layer) Pages() []*PageBox { return l.pages }

// LastPage returns the last page, adding the first one if needed.
func (l *Layer) LastPage() *PageBox {
	if len(l.pages) == 0 {
		l.AddPage()
	}
	return l.pages[len(l.pages)-1]
}

// Page returns the page containing the vertical offset [y],
// adding pages one by one until [y] is covered.
// It returns nil for negative offsets.
func (l *Layer) Page(y int) *PageBox {
	if y < 0 {
		return nil
	}
	if len(l.pages) == 0 {
		l.AddPage()
	}
	if l.lastRequested >= len(l.pages) {
		l.lastRequested = len(l.pages) - 1
	}

	if last := l.pages[l.lastRequested]; y >= last.Top && y < last.Bottom {
		return last
	}

	pages := l.pages
	if last := pages[len(pages)-1]; y >= last.Bottom {
		l.addPagesUntil(y)
		l.lastRequested = len(l.pages) - 1
		return l.pages[l.lastRequested]
	}

	// requests usually come in document order: try the tail first
	start := len(pages) - 5
	if start < 0 {
		start = 0
	}
	for i := len(pages) - 1; i >= start; i-- {
		if page := pages[i]; y >= page.Top && y < page.Bottom {
			l.lastRequested = i
			return page
		}
	}

	i := sort.Search(len(pages), func(i int) bool { return pages[i].Bottom > y })
	if i == len(pages) || y < pages[i].Top {
		panic(fmt.Sprintf("internal error: no page found for offset %d", y))
	}
	l.lastRequested = i
	return pages[i]
}

func (l *Layer) addPagesUntil(y int) {
	for l.pages[len(l.pages)-1].Bottom <= y {
		l.AddPage()
	}
}

// FirstPage returns the page of the top edge of [box].
func (l *Layer) FirstPage(box Box) *PageBox {
	return l.Page(box.Box().AbsY)
}

// LastPageOf returns the page containing the last pixel row of [box].
func (l *Layer) LastPageOf(box Box) *PageBox {
	bf := box.Box()
	height := bf.Height
	if height < 1 {
		height = 1
	}
	return l.Page(bf.AbsY + height - 1)
}

// EnsureHasPage adds the pages needed to hold [box].
func (l *Layer) EnsureHasPage(box Box) { l.LastPageOf(box) }

// CrossesPageBreak returns true if the range [top, bottom)
// does not fit in the page of [top].
func (l *Layer) CrossesPageBreak(top, bottom int) bool {
	if top < 0 {
		return false
	}
	return bottom > l.Page(top).Bottom
}

// TrimEmptyPages removes the trailing pages starting after [maxY],
// which are left over when a speculative break is reverted.
// The first page is never removed.
func (l *Layer) TrimEmptyPages(maxY int) {
	for i := len(l.pages) - 1; i > 0; i-- {
		if l.pages[i].Top < maxY {
			break
		}
		l.pages = l.pages[:i]
	}
	if l.lastRequested >= len(l.pages) {
		l.lastRequested = 0
	}
}

// AddPageSequence registers a box starting a new page sequence.
func (l *Layer) AddPageSequence(box *BlockBox) {
	l.pageSequences = append(l.pageSequences, box)
}

// PageSequenceCount is used to restore the registry when
// a layout is discarded.
func (l *Layer) PageSequenceCount() int { return len(l.pageSequences) }

// TruncatePageSequences drops the sequences registered after the
// first [count] ones.
func (l *Layer) TruncatePageSequences(count int) {
	if count < len(l.pageSequences) {
		l.pageSequences = l.pageSequences[:count]
	}
}

// PageNumber returns the number of [page] in its page sequence,
// and the number of pages of that sequence.
func (l *Layer) PageNumber(page *PageBox) (number, total int) {
	starts := []int{0}
	for _, box := range l.pageSequences {
		starts = append(starts, l.FirstPage(box).Index)
	}
	sort.Ints(starts)
	start, end := 0, len(l.pages)
	for _, s := range starts {
		if s <= page.Index {
			start = s
		} else {
			end = s
			break
		}
	}
	return page.Index - start + 1, end - start
}
