package imaging

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/lucasb-eyer/go-colorful"
)

// DefaultGridColor is used by CellGrid when the requested color is invalid.
var DefaultGridColor = color.NRGBA{0, 0, 0, 255}

// CellGrid draws 1-pixel separator lines every cellSize pixels so individual
// cells of an upscaled field can be told apart. The line color is a
// "#RRGGBB" hex string; an empty or malformed value falls back to
// DefaultGridColor.
//
// The source image is not modified. A cellSize below 2 leaves no room for a
// separator and returns an unmodified copy.
func CellGrid(img image.Image, cellSize int, lineHex string) *image.NRGBA {
	bounds := img.Bounds()
	result := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(result, result.Bounds(), img, bounds.Min, draw.Src)
	if cellSize < 2 {
		return result
	}

	line := parseLineColor(lineHex)
	width, height := result.Bounds().Dx(), result.Bounds().Dy()

	// Vertical lines
	for x := cellSize; x < width; x += cellSize {
		for y := 0; y < height; y++ {
			result.SetNRGBA(x, y, line)
		}
	}

	// Horizontal lines
	for y := cellSize; y < height; y += cellSize {
		for x := 0; x < width; x++ {
			result.SetNRGBA(x, y, line)
		}
	}

	return result
}

func parseLineColor(hex string) color.NRGBA {
	if hex == "" {
		return DefaultGridColor
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return DefaultGridColor
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}
