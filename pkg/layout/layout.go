// Package layout plans how a pattern grid is split across printed pages.
//
// Planning only depends on page geometry and the pattern's dimensions, never
// on its content. All sizes are PDF points.
package layout

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidGeometry is returned for degenerate page or pattern dimensions.
var ErrInvalidGeometry = errors.New("invalid page geometry")

// IndexGlyphRatio keeps legend glyphs slightly smaller than their cell.
const IndexGlyphRatio = 0.8

// Margins of a page
type Margins struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// Page describes a physical page
type Page struct {
	Width   float64
	Height  float64
	Margins Margins
}

// A4 is the portrait page every document is printed on.
var A4 = Page{
	Width:  595.28,
	Height: 841.89,
	Margins: Margins{
		Left:   60,
		Top:    58,
		Right:  55.28,
		Bottom: 57.98,
	},
}

// Printable returns the width and height left between the margins.
func (p Page) Printable() (width, height float64) {
	width = p.Width - p.Margins.Left - p.Margins.Right
	height = p.Height - p.Margins.Top - p.Margins.Bottom
	return
}

// PageLayout is the per-document paging plan
type PageLayout struct {
	PixelSize      int     // Side of one printed cell
	IndexGlyphSize float64 // Font size of cell glyphs
	RowsPerPage    int     // Pattern rows that fit on a page
	// TotalPages is floor(height / RowsPerPage). It is one short whenever the
	// last page is partial; page captions print TotalPages+1 to match.
	TotalPages int
}

// Plan computes the paging plan for a patternWidth × patternHeight grid on
// a printable area of printableWidth × printableHeight.
func Plan(printableWidth, printableHeight float64, patternWidth, patternHeight int) (PageLayout, error) {
	if patternWidth <= 0 || patternHeight <= 0 {
		return PageLayout{}, fmt.Errorf("%w: pattern %dx%d must be positive",
			ErrInvalidGeometry, patternWidth, patternHeight)
	}
	if printableWidth <= 0 || printableHeight <= 0 {
		return PageLayout{}, fmt.Errorf("%w: printable area %.2fx%.2f must be positive",
			ErrInvalidGeometry, printableWidth, printableHeight)
	}

	pixelSize := int(math.Floor(printableWidth / float64(patternWidth)))
	if pixelSize == 0 {
		return PageLayout{}, fmt.Errorf("%w: %d columns do not fit in %.2fpt",
			ErrInvalidGeometry, patternWidth, printableWidth)
	}

	rowsPerPage := int(math.Floor(printableHeight / float64(pixelSize)))
	if rowsPerPage == 0 {
		return PageLayout{}, fmt.Errorf("%w: a %dpt row does not fit in %.2fpt",
			ErrInvalidGeometry, pixelSize, printableHeight)
	}

	return PageLayout{
		PixelSize:      pixelSize,
		IndexGlyphSize: float64(pixelSize) * IndexGlyphRatio,
		RowsPerPage:    rowsPerPage,
		TotalPages:     patternHeight / rowsPerPage,
	}, nil
}

// PlanPage is Plan over the printable area of page.
func PlanPage(page Page, patternWidth, patternHeight int) (PageLayout, error) {
	w, h := page.Printable()
	return Plan(w, h, patternWidth, patternHeight)
}

// PageCount returns how many grid pages hold patternHeight rows.
func (l PageLayout) PageCount(patternHeight int) int {
	return (patternHeight + l.RowsPerPage - 1) / l.RowsPerPage
}

// RowRange returns the half-open row range printed on page, clipped to
// patternHeight.
func (l PageLayout) RowRange(page, patternHeight int) (first, last int) {
	first = page * l.RowsPerPage
	last = first + l.RowsPerPage
	if last > patternHeight {
		last = patternHeight
	}
	return first, last
}

// Caption is the page-number text printed on grid page page.
func (l PageLayout) Caption(page int) string {
	return fmt.Sprintf("%d / %d", page+1, l.TotalPages+1)
}
