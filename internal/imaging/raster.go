package imaging

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/ironsheep/sentiment-image-mcp/internal/field"
)

// Background is the color of unpopulated grid positions.
var Background = color.RGBA{0, 0, 0, 255}

// Rasterize writes every cell of f into a Width x Height image at its
// row-major position. Positions without a cell stay Background.
//
// Rasterize returns an empty image for a nil or zero-sized field.
func Rasterize(f *field.Field) *image.RGBA {
	if f == nil || f.Width <= 0 || f.Height <= 0 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}

	img := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	draw.Draw(img, img.Bounds(), &image.Uniform{Background}, image.Point{}, draw.Src)

	for _, c := range f.Cells {
		x, y := field.Position(c.Index, f.Width)
		if y >= f.Height {
			continue
		}
		img.SetRGBA(x, y, c.RGBA())
	}
	return img
}
