package document

import (
	"log/slog"
	"time"

	"github.com/gerdanjs/gerdan/pkg/layout"
	"github.com/gerdanjs/gerdan/pkg/pattern"
)

// Config holds user options for rendering a pattern document
type Config struct {
	Watermark    string       // Site mark printed at the bottom of every page
	Page         layout.Page  // Page geometry (A4 unless overridden)
	OutlineColor string       // Cell outline colour, #RRGGBB
	LineWidth    float64      // Cell outline width in points
	Compress     bool         // Compress page content streams
	CreationDate time.Time    // Fixed creation date (zero = now)
	Logger       *slog.Logger // Custom logger (nil = discard)
	Font         FontConfig
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() Config {
	return Config{
		Watermark:    "Gerdan.js",
		Page:         layout.A4,
		OutlineColor: pattern.Black,
		LineWidth:    1,
		Compress:     true,
		Logger:       nil, // discard
		Font:         DefaultFont,
	}
}

// WithDefaults returns a copy of c with every unset field taken from
// DefaultConfig. An empty Watermark stays empty and prints nothing.
func (c Config) WithDefaults() Config {
	def := DefaultConfig()
	if c.Page == (layout.Page{}) {
		c.Page = def.Page
	}
	if c.OutlineColor == "" {
		c.OutlineColor = def.OutlineColor
	}
	if c.LineWidth <= 0 {
		c.LineWidth = def.LineWidth
	}
	if c.Font.Name == "" {
		c.Font.Name = def.Font.Name
		c.Font.Style = def.Font.Style
	}
	if c.Font.AscentRatio <= 0 {
		c.Font.AscentRatio = def.Font.AscentRatio
	}
	if c.Font.LineHeight <= 0 {
		c.Font.LineHeight = def.Font.LineHeight
	}
	return c
}

// FontConfig contains font settings for document text
type FontConfig struct {
	Name        string  // Core font name (e.g., "Helvetica")
	Style       string  // Font style ("", "B", "I", "BI")
	AscentRatio float64 // Distance from top of line to baseline, per point of size
	LineHeight  float64 // Line advance, per point of size
}

// DefaultFont is Helvetica, whose core metrics cover the legend glyphs
var DefaultFont = FontConfig{
	Name:        "Helvetica",
	Style:       "",
	AscentRatio: 0.718,
	LineHeight:  1.15,
}

// Text sizes and positions used by every document
const (
	titleSize    = 60
	subtitleSize = 42
	titleTop     = 200

	captionSize = 14
	captionX    = 500
	footerY     = 800

	statsSize    = 14
	statsSpacing = 18
	statsTop     = 400
	statsInset   = 100
)
