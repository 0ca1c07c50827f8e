package document

import (
	"codeberg.org/go-pdf/fpdf"

	"github.com/gerdanjs/gerdan/pkg/layout"
	"github.com/gerdanjs/gerdan/pkg/legend"
	"github.com/gerdanjs/gerdan/pkg/pattern"
)

// canvas bundles the open document with what every draw call needs.
type canvas struct {
	pdf     *fpdf.Fpdf
	cfg     Config
	colors  palette
	outline [3]int
	// unencodable counts runes the core font could not represent
	unencodable int
}

// text prints s with the top of its line box at (x, y).
func (c *canvas) text(x, y, size float64, s string) {
	latin1, missing := encodeText(s)
	c.unencodable += missing
	c.setFontSize(size)
	c.pdf.Text(x, y+size*c.cfg.Font.AscentRatio, latin1)
}

// paragraph prints s wrapped to width, starting at (x, y), and returns the
// y position below it.
func (c *canvas) paragraph(x, y, width, size float64, s string) float64 {
	latin1, missing := encodeText(s)
	c.unencodable += missing
	c.setFontSize(size)
	c.pdf.SetXY(x, y)
	c.pdf.MultiCell(width, size*c.cfg.Font.LineHeight, latin1, "", "L", false)
	return c.pdf.GetY()
}

// setFontSize skips the font operator when the size is unchanged, which
// keeps glyph-heavy grid pages small.
func (c *canvas) setFontSize(size float64) {
	if current, _ := c.pdf.GetFontSize(); current != size {
		c.pdf.SetFontSize(size)
	}
}

func (c *canvas) setTextColor(hex string) error {
	rgb, err := c.colors.rgb(hex)
	if err != nil {
		return err
	}
	c.pdf.SetTextColor(rgb[0], rgb[1], rgb[2])
	return nil
}

// square draws a filled square of side size outlined in the outline colour.
func (c *canvas) square(x, y, size float64, hex string) error {
	rgb, err := c.colors.rgb(hex)
	if err != nil {
		return err
	}
	c.pdf.SetFillColor(rgb[0], rgb[1], rgb[2])
	c.pdf.SetDrawColor(c.outline[0], c.outline[1], c.outline[2])
	c.pdf.Rect(x, y, size, size, "FD")
	return nil
}

// watermark centres the site mark at the foot of the current page.
func (c *canvas) watermark() {
	if c.cfg.Watermark == "" {
		return
	}
	latin1, _ := encodeText(c.cfg.Watermark)
	c.setFontSize(captionSize)
	c.pdf.SetTextColor(0, 0, 0)
	width := c.pdf.GetStringWidth(latin1)
	c.text(c.cfg.Page.Width/2-width/2, footerY, captionSize, c.cfg.Watermark)
}

// pageNumber prints the "n / total" caption of a grid page.
func (c *canvas) pageNumber(plan layout.PageLayout, page int) {
	c.pdf.SetTextColor(0, 0, 0)
	c.text(captionX, footerY, captionSize, plan.Caption(page))
}

// cell draws one grid cell and, when it is painted and indexed, its glyph.
func (c *canvas) cell(x, y float64, plan layout.PageLayout, cell pattern.Cell, background string) error {
	size := float64(plan.PixelSize)
	if err := c.square(x, y, size, cell.Color); err != nil {
		return err
	}
	if cell.Color == background || cell.Index == 0 {
		return nil
	}

	glyph, err := legend.GlyphAt(cell.Index)
	if err != nil {
		return err
	}
	indexColor := cell.IndexColor
	if indexColor == "" {
		indexColor = pattern.Black
	}
	if err := c.setTextColor(indexColor); err != nil {
		return err
	}
	inset := size / 7
	c.text(x+inset, y+inset, plan.IndexGlyphSize, glyph)
	return nil
}
