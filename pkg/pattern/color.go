package pattern

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
)

// ErrInvalidColor is returned for strings that are not #RRGGBB.
var ErrInvalidColor = errors.New("invalid colour")

// ParseHex converts a fixed 7-character #RRGGBB string to an opaque colour.
func ParseHex(s string) (color.RGBA, error) {
	if len(s) != 7 || s[0] != '#' {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
