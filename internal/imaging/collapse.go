package imaging

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/sentiment-image-mcp/internal/field"
)

// DefaultCollapseThreshold is the minimum HSV saturation a pixel needs to
// survive Collapse.
const DefaultCollapseThreshold = 0.2

// CollapseResult is the collapsed view of a field.
type CollapseResult struct {
	Image   *image.RGBA
	Width   int
	Height  int
	Kept    int // pixels that survived
	Removed int // grid positions dropped, including unpopulated ones
}

// Collapse drops every near-neutral pixel of the rasterized field and packs
// the survivors, in reading order, into a new square-ish grid.
//
// A pixel survives when its HSV saturation (measured on the final 8-bit RGB)
// is at least minSaturation. The new grid uses the same layout rule as the
// field itself; if nothing survives the result is a 0x0 image.
func Collapse(f *field.Field, minSaturation float64) *CollapseResult {
	src := Rasterize(f)
	bounds := src.Bounds()

	kept := make([]color.RGBA, 0, bounds.Dx()*bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			px := src.RGBAAt(x, y)
			c := colorful.Color{
				R: float64(px.R) / 255,
				G: float64(px.G) / 255,
				B: float64(px.B) / 255,
			}
			if _, s, _ := c.Hsv(); s >= minSaturation {
				kept = append(kept, px)
			}
		}
	}

	width, height := field.Dimensions(len(kept))
	out := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(out, out.Bounds(), &image.Uniform{Background}, image.Point{}, draw.Src)
	for i, px := range kept {
		x, y := field.Position(i, width)
		out.SetRGBA(x, y, px)
	}

	return &CollapseResult{
		Image:   out,
		Width:   width,
		Height:  height,
		Kept:    len(kept),
		Removed: bounds.Dx()*bounds.Dy() - len(kept),
	}
}
