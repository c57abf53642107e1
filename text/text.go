// Package text provides the text measurement used by the layout,
// and the line breaking of text runs.
package text

import (
	"github.com/mattn/go-runewidth"

	pr "github.com/nichevision/flyingsaucer-sub000/css/properties"
)

type Fl = pr.Fl

// FontMetrics are the vertical metrics of a font, in pixels.
// Offsets are measured downward from the baseline.
type FontMetrics struct {
	Ascent, Descent Fl

	UnderlineOffset, UnderlineThickness         Fl
	StrikethroughOffset, StrikethroughThickness Fl
}

// Measurer is the text measurement capability consumed by the layout.
type Measurer interface {
	// Width returns the advance of [text], in device units.
	Width(font pr.Font, text string) int
	Metrics(font pr.Font) FontMetrics
}

// CellMeasurer measures text on a grid: each rune takes as many cells
// as its terminal width (0 for combining marks and controls, 2 for wide
// East Asian characters), and each cell is Advance times the font size.
type CellMeasurer struct {
	Advance, Ascent, Descent Fl // in em
}

var _ Measurer = CellMeasurer{}

// NewCellMeasurer returns a measurer with the given cell advance,
// and ascent and descent of 0.8 and 0.2 em.
func NewCellMeasurer(advance Fl) CellMeasurer {
	return CellMeasurer{Advance: advance, Ascent: 0.8, Descent: 0.2}
}

// Cells returns the number of cells used by [text].
func Cells(text string) int {
	cells := 0
	for _, r := range text {
		cells += runewidth.RuneWidth(r)
	}
	return cells
}

func (m CellMeasurer) Width(font pr.Font, text string) int {
	return int(Fl(Cells(text)) * m.Advance * font.Size)
}

func (m CellMeasurer) Metrics(font pr.Font) FontMetrics {
	size := font.Size
	return FontMetrics{
		Ascent:                 m.Ascent * size,
		Descent:                m.Descent * size,
		UnderlineOffset:        m.Descent * size / 2,
		UnderlineThickness:     size / 16,
		StrikethroughOffset:    -m.Ascent * size / 3,
		StrikethroughThickness: size / 16,
	}
}
