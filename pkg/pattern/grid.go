package pattern

import "fmt"

// Grid is the dense, read-only cell array of a pattern, addressed [row][col]
// in grid units.
type Grid struct {
	Width      int
	Height     int
	Background string
	cells      []Cell
}

// DefaultCell returns the cell every untouched position holds.
func DefaultCell(background string) Cell {
	return Cell{Color: background, Index: 0, IndexColor: White}
}

// Assemble builds the dense grid for spec. Pixels are applied in order, so
// a later pixel at the same position replaces an earlier one.
func Assemble(spec Spec) (*Grid, error) {
	if err := spec.validateDimensions(); err != nil {
		return nil, err
	}

	g := &Grid{
		Width:      spec.Width,
		Height:     spec.Height,
		Background: spec.BackgroundColor,
		cells:      make([]Cell, spec.Width*spec.Height),
	}
	def := DefaultCell(spec.BackgroundColor)
	for i := range g.cells {
		g.cells[i] = def
	}

	for i, p := range spec.Pixels {
		if err := spec.checkPixel(p); err != nil {
			return nil, fmt.Errorf("pixel %d: %w", i, err)
		}
		row, col := p.Y/spec.PixelSize, p.X/spec.PixelSize
		g.cells[row*g.Width+col] = Cell{
			Color:      p.Color,
			Index:      p.Index,
			IndexColor: p.IndexColor,
		}
	}

	return g, nil
}

// At returns the cell at row, col. It panics outside the grid like a slice
// index would.
func (g *Grid) At(row, col int) Cell {
	if row < 0 || row >= g.Height || col < 0 || col >= g.Width {
		panic(fmt.Sprintf("pattern: cell (%d, %d) outside %dx%d grid", row, col, g.Width, g.Height))
	}
	return g.cells[row*g.Width+col]
}

// Row returns a copy of one grid row.
func (g *Grid) Row(row int) []Cell {
	out := make([]Cell, g.Width)
	copy(out, g.cells[row*g.Width:(row+1)*g.Width])
	return out
}

// Len returns the number of cells in the grid.
func (g *Grid) Len() int { return len(g.cells) }
