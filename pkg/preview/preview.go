// Package preview rasterises a pattern grid into a small thumbnail image.
//
// Every grid cell becomes a Scale × Scale block of its colour. There are no
// glyphs, statistics or pages; the output is a single encoded image.
package preview

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/gen2brain/jpegli"
	"golang.org/x/image/draw"

	"github.com/gerdanjs/gerdan/pkg/pattern"
)

// DefaultScale is the number of image pixels per grid unit.
const DefaultScale = 5

// progressiveLevel selects jpegli's default progressive scan script.
const progressiveLevel = 2

// Format selects the thumbnail encoding
type Format string

const (
	JPEG Format = "jpeg"
	PNG  Format = "png"
)

// Options control encoding of a preview
type Options struct {
	Scale   int    // Image pixels per grid unit (0 = DefaultScale)
	Format  Format // Output encoding ("" = JPEG)
	Quality int    // JPEG quality 1-100 (0 = 100)
}

// DefaultOptions returns maximum-quality JPEG at the default scale
func DefaultOptions() Options {
	return Options{Scale: DefaultScale, Format: JPEG, Quality: 100}
}

// Extension returns the file extension for the format.
func (f Format) Extension() string {
	if f == PNG {
		return "png"
	}
	return "jpeg"
}

// RenderImage draws grid at scale pixels per cell.
func RenderImage(grid *pattern.Grid, scale int) (*image.RGBA, error) {
	if grid == nil {
		return nil, fmt.Errorf("grid is nil")
	}
	if scale <= 0 {
		return nil, fmt.Errorf("scale must be positive, got %d", scale)
	}

	// One pixel per cell first, then a nearest-neighbour upscale keeps every
	// block edge exact.
	cells := image.NewRGBA(image.Rect(0, 0, grid.Width, grid.Height))
	parsed := make(map[string]color.RGBA)
	for row := 0; row < grid.Height; row++ {
		for col, cell := range grid.Row(row) {
			hex := cell.Color
			c, ok := parsed[hex]
			if !ok {
				var err error
				if c, err = pattern.ParseHex(hex); err != nil {
					return nil, fmt.Errorf("cell (%d, %d): %w", row, col, err)
				}
				parsed[hex] = c
			}
			cells.SetRGBA(col, row, c)
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, grid.Width*scale, grid.Height*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), cells, cells.Bounds(), draw.Src, nil)
	return dst, nil
}

// Render draws grid at scale and returns it as a maximum-quality,
// progressive JPEG without chroma subsampling.
func Render(grid *pattern.Grid, scale int) ([]byte, error) {
	opts := DefaultOptions()
	opts.Scale = scale
	return RenderWithOptions(grid, opts)
}

// RenderWithOptions draws and encodes grid as opts describe.
func RenderWithOptions(grid *pattern.Grid, opts Options) ([]byte, error) {
	scale := opts.Scale
	if scale == 0 {
		scale = DefaultScale
	}
	img, err := RenderImage(grid, scale)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	switch opts.Format {
	case PNG:
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("failed to encode PNG: %w", err)
		}
	case JPEG, "":
		quality := opts.Quality
		if quality == 0 || quality > 100 {
			quality = 100
		}
		if quality < 1 {
			quality = 1
		}
		err := jpegli.Encode(&buf, img, &jpegli.EncodingOptions{
			Quality:           quality,
			ChromaSubsampling: image.YCbCrSubsampleRatio444,
			ProgressiveLevel:  progressiveLevel,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to encode JPEG: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported preview format %q", opts.Format)
	}
	return buf.Bytes(), nil
}
