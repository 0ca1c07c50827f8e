// Package pattern models gerdan bead patterns and turns them into the data
// both renderers consume.
//
// A pattern is saved by the designer as a sparse list of painted pixels on a
// bounded grid. This package provides:
//
// - The Spec / Pixel input model, decodable from JSON or YAML
// - Assemble: builds the dense Grid of Cells in grid units
// - CollectStatistics: per-colour bead counts for the legend page
// - Hex colour parsing shared by the renderers
//
// Grid addressing is always in grid units: a pixel at (x, y) occupies
// row y/PixelSize, column x/PixelSize.
package pattern

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/gerdanjs/gerdan/pkg/legend"
)

var (
	// ErrInvalidPixel reports a pixel that is misaligned or out of bounds.
	ErrInvalidPixel = errors.New("invalid pixel")
	// ErrInvalidSpec reports non-positive dimensions or malformed fields.
	ErrInvalidSpec = errors.New("invalid pattern")
)

// Decode reads a Spec from JSON or YAML.
func Decode(r io.Reader) (Spec, error) {
	var spec Spec
	if err := yaml.NewDecoder(r).Decode(&spec); err != nil {
		return Spec{}, fmt.Errorf("failed to decode pattern: %w", err)
	}
	return spec, nil
}

// Validate checks the whole spec the way request validation does before a
// pattern reaches the renderers.
func (s Spec) Validate() error {
	if err := s.validateDimensions(); err != nil {
		return err
	}
	if _, err := ParseHex(s.BackgroundColor); err != nil {
		return fmt.Errorf("%w: background: %w", ErrInvalidSpec, err)
	}
	for i, p := range s.Pixels {
		if err := s.checkPixel(p); err != nil {
			return fmt.Errorf("pixel %d: %w", i, err)
		}
		if _, err := ParseHex(p.Color); err != nil {
			return fmt.Errorf("%w: pixel %d: %w", ErrInvalidPixel, i, err)
		}
		if p.IndexColor != "" {
			if _, err := ParseHex(p.IndexColor); err != nil {
				return fmt.Errorf("%w: pixel %d index colour: %w", ErrInvalidPixel, i, err)
			}
		}
		if !legend.Valid(p.Index) {
			return fmt.Errorf("%w: pixel %d: %w", ErrInvalidPixel, i, legend.ErrIndexOutOfRange)
		}
	}
	return nil
}

func (s Spec) validateDimensions() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d must be positive", ErrInvalidSpec, s.Width, s.Height)
	}
	if s.PixelSize <= 0 {
		return fmt.Errorf("%w: pixel size %d must be positive", ErrInvalidSpec, s.PixelSize)
	}
	return nil
}

func (s Spec) checkPixel(p Pixel) error {
	if p.X%s.PixelSize != 0 || p.Y%s.PixelSize != 0 {
		return fmt.Errorf("%w: (%d, %d) not aligned to pixel size %d",
			ErrInvalidPixel, p.X, p.Y, s.PixelSize)
	}
	if p.X < 0 || p.Y < 0 || p.X >= s.Width || p.Y >= s.Height {
		return fmt.Errorf("%w: (%d, %d) outside %dx%d",
			ErrInvalidPixel, p.X, p.Y, s.Width, s.Height)
	}
	return nil
}
