// Package legend holds the fixed symbol alphabet used to label bead colours
// in pattern statistics and on printed grid cells.
//
// Index 0 is a placeholder meaning "no symbol" and is never drawn. Indexes
// 1 through 33 map to the digits 1-9 followed by the uppercase letters,
// skipping I and Q which are easily confused with 1 and O on paper.
package legend

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is returned for an index outside the alphabet.
var ErrIndexOutOfRange = errors.New("legend index out of range")

// Empty is the placeholder glyph at index 0.
const Empty = "Ø"

var glyphs = [...]string{
	Empty, "1", "2", "3", "4",
	"5", "6", "7", "8", "9",
	"A", "B", "C", "D", "E",
	"F", "G", "H", "J", "K",
	"L", "M", "N", "O", "P",
	"R", "S", "T", "U", "V",
	"W", "X", "Y", "Z",
}

// Len returns the number of entries in the alphabet, placeholder included.
func Len() int { return len(glyphs) }

// Valid reports whether index resolves to an entry.
func Valid(index int) bool {
	return index >= 0 && index < len(glyphs)
}

// GlyphAt returns the glyph stored at index.
func GlyphAt(index int) (string, error) {
	if !Valid(index) {
		return "", fmt.Errorf("%w: %d not in [0, %d]", ErrIndexOutOfRange, index, len(glyphs)-1)
	}
	return glyphs[index], nil
}

// Label returns the glyph to print for index, or an empty string for the
// placeholder index 0.
func Label(index int) (string, error) {
	if index == 0 {
		return "", nil
	}
	return GlyphAt(index)
}
