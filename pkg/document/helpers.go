package document

import (
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/text/encoding/charmap"

	"github.com/gerdanjs/gerdan/pkg/pattern"
)

// encodeText converts UTF-8 text to the Windows-1252 bytes the core PDF
// fonts expect. Runes outside the code page become '?'.
func encodeText(s string) (string, int) {
	var b strings.Builder
	missing := 0
	for _, r := range s {
		c, ok := charmap.Windows1252.EncodeRune(r)
		if !ok {
			c = '?'
			missing++
		}
		b.WriteByte(c)
	}
	return b.String(), missing
}

// palette caches parsed cell colours for one render.
type palette map[string][3]int

func (p palette) rgb(hex string) ([3]int, error) {
	if c, ok := p[hex]; ok {
		return c, nil
	}
	c, err := pattern.ParseHex(hex)
	if err != nil {
		return [3]int{}, fmt.Errorf("failed to parse colour: %w", err)
	}
	v := [3]int{int(c.R), int(c.G), int(c.B)}
	p[hex] = v
	return v, nil
}

// getLogger returns the configured logger, or one that drops everything.
func getLogger(config Config) *slog.Logger {
	if config.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return config.Logger
}
