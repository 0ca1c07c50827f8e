package pattern

// White is the default glyph colour of an untouched cell.
const White = "#FFFFFF"

// Black is used for outlines and glyphs without an explicit colour.
const Black = "#000000"

// Spec is a complete pattern as saved by the designer
type Spec struct {
	Name            string  `yaml:"name" json:"name"`                       // Pattern title
	Width           int     `yaml:"width" json:"width"`                     // Width in grid units
	Height          int     `yaml:"height" json:"height"`                   // Height in grid units
	PixelSize       int     `yaml:"pixelSize" json:"pixelSize"`             // Editor cell size, divides X and Y
	BackgroundColor string  `yaml:"backgroundColor" json:"backgroundColor"` // #RRGGBB
	Pixels          []Pixel `yaml:"pixels" json:"pixels"`                   // Painted cells in drawing order
}

// Pixel is one painted cell of a Spec
type Pixel struct {
	X          int    `yaml:"x" json:"x"`                                       // Multiple of Spec.PixelSize
	Y          int    `yaml:"y" json:"y"`                                       // Multiple of Spec.PixelSize
	Color      string `yaml:"color" json:"color"`                               // #RRGGBB
	Index      int    `yaml:"index,omitempty" json:"index,omitempty"`           // Legend position, 0 = none
	IndexColor string `yaml:"indexColor,omitempty" json:"indexColor,omitempty"` // Glyph colour, "" = black
}

// Cell is one element of a dense Grid
type Cell struct {
	Color      string
	Index      int
	IndexColor string
}

// ColorStat counts the beads of a single colour
type ColorStat struct {
	Color string `yaml:"color" json:"color"`
	Index int    `yaml:"index" json:"index"` // First index seen for this colour
	Count int    `yaml:"count" json:"count"`
}

// Statistics summarises a pattern for the legend page
type Statistics struct {
	Rows       int         `yaml:"rows" json:"rows"`
	Columns    int         `yaml:"columns" json:"columns"`
	TotalBeads int         `yaml:"totalBeads" json:"totalBeads"`
	Colors     []ColorStat `yaml:"colors" json:"colors"` // Ascending by Count, stable
}
