// Package document renders gerdan patterns as printable PDF documents.
//
// A document is drawn in a single linear pass:
//
// - A title page with the pattern name, the author byline and the watermark
// - The statistics overlay on the title page: rows, columns and one legend
// line per bead colour with a colour swatch
// - One or more grid pages, each holding as many pattern rows as fit at the
// planned cell size, with legend glyphs over painted cells, a page number
// and the watermark
//
// Main Functions:
//
// - Render: writes the PDF to any io.Writer
// - RenderFile: writes the PDF to a path and removes it again on failure
package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/gerdanjs/gerdan/pkg/layout"
	"github.com/gerdanjs/gerdan/pkg/pattern"
)

// ErrRenderIO reports that the output could not be opened, written or closed.
var ErrRenderIO = errors.New("document output failed")

// Input is everything one render consumes. All of it is read-only.
type Input struct {
	Spec       pattern.Spec
	Author     string
	Grid       *pattern.Grid
	Statistics pattern.Statistics
	Layout     layout.PageLayout
}

func (in Input) validate() error {
	if in.Grid == nil {
		return fmt.Errorf("grid is nil")
	}
	if in.Grid.Width != in.Spec.Width || in.Grid.Height != in.Spec.Height {
		return fmt.Errorf("grid %dx%d does not match pattern %dx%d",
			in.Grid.Width, in.Grid.Height, in.Spec.Width, in.Spec.Height)
	}
	if in.Layout.PixelSize <= 0 || in.Layout.RowsPerPage <= 0 {
		return fmt.Errorf("%w: pixel size %d, %d rows per page",
			layout.ErrInvalidGeometry, in.Layout.PixelSize, in.Layout.RowsPerPage)
	}
	return nil
}

// Render draws the document for in and writes it to w.
func Render(w io.Writer, in Input, config Config) error {
	if err := in.validate(); err != nil {
		return fmt.Errorf("invalid render input: %w", err)
	}
	config = config.WithDefaults()
	logger := getLogger(config)

	c, err := newCanvas(in, config)
	if err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}

	drawTitlePage(c, in)
	if err := drawStatistics(c, in); err != nil {
		return fmt.Errorf("failed to draw statistics: %w", err)
	}
	pages, err := drawGridPages(c, in)
	if err != nil {
		return fmt.Errorf("failed to draw grid page %d: %w", pages+1, err)
	}

	if c.unencodable > 0 {
		logger.Warn("text not representable in document font",
			"pattern", in.Spec.Name, "runes", c.unencodable)
	}

	// fpdf buffers the whole document; an error here is the sink's.
	var buf bytes.Buffer
	if err := c.pdf.Output(&buf); err != nil {
		return fmt.Errorf("failed to generate PDF: %w", err)
	}
	n, err := buf.WriteTo(w)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRenderIO, err)
	}

	logger.Debug("rendered document",
		"pattern", in.Spec.Name,
		"grid_pages", pages,
		"pixel_size", in.Layout.PixelSize,
		"rows_per_page", in.Layout.RowsPerPage,
		"bytes", n)
	return nil
}

// RenderFile renders the document to path. On any failure the partially
// written file is removed before the error is returned.
func RenderFile(path string, in Input, config Config) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRenderIO, err)
	}

	defer func() {
		if err == nil {
			return
		}
		if rmErr := os.Remove(path); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			getLogger(config).Warn("failed to remove partial document", "path", path, "error", rmErr)
		}
	}()

	if err = Render(f, in, config); err != nil {
		f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrRenderIO, err)
	}
	return nil
}
