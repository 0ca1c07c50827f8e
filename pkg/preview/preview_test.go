package preview

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/gerdanjs/gerdan/pkg/pattern"
)

// quadrantGrid builds a 2x2 grid with one colour per cell
func quadrantGrid(t *testing.T) *pattern.Grid {
	t.Helper()
	grid, err := pattern.Assemble(pattern.Spec{
		Width:           2,
		Height:          2,
		PixelSize:       1,
		BackgroundColor: "#FFFFFF",
		Pixels: []pattern.Pixel{
			{X: 0, Y: 0, Color: "#FF0000"},
			{X: 1, Y: 0, Color: "#00FF00"},
			{X: 0, Y: 1, Color: "#0000FF"},
		},
	})
	if err != nil {
		t.Fatalf("Assemble() error: %v", err)
	}
	return grid
}

var quadrantColors = [2][2]color.RGBA{
	{{255, 0, 0, 255}, {0, 255, 0, 255}},
	{{0, 0, 255, 255}, {255, 255, 255, 255}},
}

func TestRenderImage_Quadrants(t *testing.T) {
	img, err := RenderImage(quadrantGrid(t), 5)
	if err != nil {
		t.Fatalf("RenderImage() error: %v", err)
	}

	if b := img.Bounds(); b.Dx() != 10 || b.Dy() != 10 {
		t.Fatalf("Expected 10x10 image, got %dx%d", b.Dx(), b.Dy())
	}

	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			want := quadrantColors[y/5][x/5]
			if got := img.RGBAAt(x, y); got != want {
				t.Fatalf("pixel (%d, %d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestRender_JPEG(t *testing.T) {
	data, err := Render(quadrantGrid(t), DefaultScale)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Failed to decode preview: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 10 || b.Dy() != 10 {
		t.Fatalf("Expected 10x10 image, got %dx%d", b.Dx(), b.Dy())
	}

	ycc, ok := img.(*image.YCbCr)
	if !ok {
		t.Fatalf("Expected a YCbCr image, got %T", img)
	}
	if ycc.SubsampleRatio != image.YCbCrSubsampleRatio444 {
		t.Errorf("Expected 4:4:4 chroma, got %v", ycc.SubsampleRatio)
	}

	// Without subsampling every pixel, edges included, keeps its cell colour.
	const tolerance = 8
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			want := quadrantColors[y/5][x/5]
			r, g, b, _ := img.At(x, y).RGBA()
			got := [3]int{int(r >> 8), int(g >> 8), int(b >> 8)}
			for i, w := range [3]int{int(want.R), int(want.G), int(want.B)} {
				if d := got[i] - w; d > tolerance || d < -tolerance {
					t.Fatalf("pixel (%d, %d) = %v, want close to %v", x, y, got, want)
				}
			}
		}
	}
}

func TestRenderWithOptions_PNGIsExact(t *testing.T) {
	data, err := RenderWithOptions(quadrantGrid(t), Options{Scale: 3, Format: PNG})
	if err != nil {
		t.Fatalf("RenderWithOptions() error: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Failed to decode PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 6 || b.Dy() != 6 {
		t.Fatalf("Expected 6x6 image, got %dx%d", b.Dx(), b.Dy())
	}
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			want := quadrantColors[y/3][x/3]
			if got := color.RGBAModel.Convert(img.At(x, y)); got != want {
				t.Fatalf("pixel (%d, %d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestRenderWithOptions_Defaults(t *testing.T) {
	data, err := RenderWithOptions(quadrantGrid(t), Options{})
	if err != nil {
		t.Fatalf("RenderWithOptions() error: %v", err)
	}
	cfg, err := jpeg.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Expected JPEG output: %v", err)
	}
	if cfg.Width != 10 || cfg.Height != 10 {
		t.Errorf("Expected default scale 5, got %dx%d", cfg.Width, cfg.Height)
	}
}

func TestRender_Errors(t *testing.T) {
	if _, err := Render(nil, 5); err == nil {
		t.Error("Expected error for nil grid")
	}
	if _, err := Render(quadrantGrid(t), -1); err == nil {
		t.Error("Expected error for negative scale")
	}
	if _, err := RenderWithOptions(quadrantGrid(t), Options{Format: "gif"}); err == nil {
		t.Error("Expected error for unsupported format")
	}

	grid, err := pattern.Assemble(pattern.Spec{
		Width: 1, Height: 1, PixelSize: 1, BackgroundColor: "not-a-colour",
	})
	if err != nil {
		t.Fatalf("Assemble() error: %v", err)
	}
	if _, err := Render(grid, 5); !errors.Is(err, pattern.ErrInvalidColor) {
		t.Errorf("Expected ErrInvalidColor, got %v", err)
	}
}

func TestFormatExtension(t *testing.T) {
	if JPEG.Extension() != "jpeg" || PNG.Extension() != "png" {
		t.Errorf("Unexpected extensions %q, %q", JPEG.Extension(), PNG.Extension())
	}
}
