package document

import (
	"fmt"

	"codeberg.org/go-pdf/fpdf"

	"github.com/gerdanjs/gerdan/pkg/legend"
)

// newCanvas opens an empty document sized to the configured page with the
// title metadata set.
func newCanvas(in Input, cfg Config) (*canvas, error) {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: cfg.Page.Width, Ht: cfg.Page.Height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCompression(cfg.Compress)
	pdf.SetCatalogSort(true)
	pdf.SetTitle(in.Spec.Name, true)
	pdf.SetAuthor(in.Author, true)
	pdf.SetCreator(cfg.Watermark, true)
	if !cfg.CreationDate.IsZero() {
		pdf.SetCreationDate(cfg.CreationDate)
		pdf.SetModificationDate(cfg.CreationDate)
	}
	pdf.SetFont(cfg.Font.Name, cfg.Font.Style, captionSize)
	pdf.SetLineWidth(cfg.LineWidth)

	c := &canvas{pdf: pdf, cfg: cfg, colors: make(palette)}
	outline, err := c.colors.rgb(cfg.OutlineColor)
	if err != nil {
		return nil, fmt.Errorf("invalid outline colour: %w", err)
	}
	c.outline = outline
	return c, pdf.Error()
}

// drawTitlePage adds the cover page: pattern name, author byline, the
// "generated on" caption and the watermark.
func drawTitlePage(c *canvas, in Input) {
	c.pdf.AddPage()
	c.pdf.SetTextColor(0, 0, 0)

	x := c.cfg.Page.Margins.Right
	width := c.cfg.Page.Width - 2*x
	y := c.paragraph(x, titleTop, width, titleSize, in.Spec.Name)
	y = c.paragraph(x, y, width, subtitleSize, "by @"+in.Author)
	c.paragraph(x, y, width, subtitleSize, "generated on "+c.cfg.Watermark)

	c.watermark()
}

// drawStatistics lists rows, columns and the colour legend in a column near
// the bottom right of the current page.
func drawStatistics(c *canvas, in Input) error {
	x := c.cfg.Page.Width - c.cfg.Page.Margins.Left - statsInset
	y := float64(statsTop)

	c.pdf.SetTextColor(0, 0, 0)
	y += statsSpacing
	c.text(x, y, statsSize, fmt.Sprintf("Rows: %d", in.Statistics.Rows))
	y += statsSpacing
	c.text(x, y, statsSize, fmt.Sprintf("Columns: %d", in.Statistics.Columns))

	for _, stat := range in.Statistics.Colors {
		y += statsSpacing
		label, err := legend.Label(stat.Index)
		if err != nil {
			return fmt.Errorf("colour %s: %w", stat.Color, err)
		}
		c.pdf.SetTextColor(0, 0, 0)
		c.text(x, y, statsSize, fmt.Sprintf("%s - %s - %d", label, stat.Color, stat.Count))

		swatchX := x - float64(in.Layout.PixelSize)
		swatchY := y - (statsSpacing-statsSize)/2
		if err := c.square(swatchX, swatchY, statsSize, stat.Color); err != nil {
			return fmt.Errorf("colour %s: %w", stat.Color, err)
		}
	}
	return nil
}

// drawGridPages prints the grid, RowsPerPage rows per page, each page with
// its caption and the watermark.
func drawGridPages(c *canvas, in Input) (int, error) {
	grid, plan := in.Grid, in.Layout
	margins := c.cfg.Page.Margins
	size := float64(plan.PixelSize)
	pages := plan.PageCount(grid.Height)

	for page := 0; page < pages; page++ {
		c.pdf.AddPage()
		c.pageNumber(plan, page)
		c.watermark()

		first, last := plan.RowRange(page, grid.Height)
		for row := first; row < last; row++ {
			y := float64(row-first)*size + margins.Top
			for col := 0; col < grid.Width; col++ {
				x := float64(col)*size + margins.Left
				if err := c.cell(x, y, plan, grid.At(row, col), grid.Background); err != nil {
					return page, fmt.Errorf("cell (%d, %d): %w", row, col, err)
				}
			}
		}

		if err := c.pdf.Error(); err != nil {
			return page, err
		}
	}
	return pages, nil
}
