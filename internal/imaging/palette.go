package imaging

import (
	"image"
	"math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// ColorFrequency represents a color and its occurrence frequency in an image.
type ColorFrequency struct {
	Hex        string   `json:"hex"`        // Hex color "#rrggbb" (quantized)
	Percentage float64  `json:"percentage"` // Percentage of pixels with this color (0-100)
	RGB        RGBColor `json:"rgb"`        // RGB components (quantized)
	HSL        HSLColor `json:"hsl"`        // HSL representation
}

// PaletteResult contains the most frequently occurring colors in an image.
//
// Colors are sorted by frequency in descending order (most common first).
type PaletteResult struct {
	Colors []ColorFrequency `json:"colors"`
}

// Palette extracts the count most common colors from img.
//
// Parameters:
//   - img: The image to analyze, typically a rasterized field (not the
//     upscaled copy, which only repeats the same pixels).
//   - count: Maximum number of colors to return. Fewer are returned when the
//     image holds fewer distinct colors after quantization.
//
// # Color Quantization
//
// Similar colors are grouped by dropping the low 4 bits of each component:
//
//	quantized = (original / 16) * 16
//
// so #F0F0F0 and #FAFAFA are both counted as #F0F0F0.
//
// Ties in frequency are broken by hex value so the result is deterministic.
func Palette(img image.Image, count int) *PaletteResult {
	bounds := img.Bounds()
	counts := make(map[RGBColor]int)
	total := 0

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			key := RGBColor{
				R: uint8((r >> 8) / 16 * 16),
				G: uint8((g >> 8) / 16 * 16),
				B: uint8((b >> 8) / 16 * 16),
			}
			counts[key]++
			total++
		}
	}

	colors := make([]ColorFrequency, 0, len(counts))
	for rgb, n := range counts {
		hex, hsl := DescribeColor(rgb)
		colors = append(colors, ColorFrequency{
			Hex:        hex,
			Percentage: float64(n) / float64(total) * 100,
			RGB:        rgb,
			HSL:        hsl,
		})
	}

	sort.Slice(colors, func(i, j int) bool {
		if colors[i].Percentage != colors[j].Percentage {
			return colors[i].Percentage > colors[j].Percentage
		}
		return colors[i].Hex < colors[j].Hex
	})

	if count >= 0 && len(colors) > count {
		colors = colors[:count]
	}
	for i := range colors {
		colors[i].Percentage = math.Round(colors[i].Percentage*100) / 100
	}

	return &PaletteResult{Colors: colors}
}

// DescribeColor returns the lowercase hex form and the HSL representation of
// an 8-bit color.
func DescribeColor(rgb RGBColor) (string, HSLColor) {
	c := colorful.Color{R: float64(rgb.R) / 255, G: float64(rgb.G) / 255, B: float64(rgb.B) / 255}
	h, s, l := c.Hsl()
	return c.Hex(), HSLColor{H: int(h), S: int(s * 100), L: int(l * 100)}
}
