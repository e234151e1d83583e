package field

import (
	"errors"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrEmptyInput is returned by Synthesize when there are no tokens to lay
// out. No default grid is produced.
var ErrEmptyInput = errors.New("field: no tokens")

// RGB is an 8-bit color.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// Cell is one populated grid position of a synthesized field.
type Cell struct {
	Index    int     `json:"index"`
	X        int     `json:"x"`
	Y        int     `json:"y"`
	Token    string  `json:"token"`
	Polarity float64 `json:"polarity"` // enhanced, [0,1]
	Anchor   bool    `json:"anchor"`
	Negative bool    `json:"negative"` // polarity below 0.5
	Color    HSV     `json:"hsv"`
	RGB      RGB     `json:"rgb"`
}

// RGBA returns the cell color as an opaque color.RGBA.
func (c Cell) RGBA() color.RGBA {
	return color.RGBA{R: c.RGB.R, G: c.RGB.G, B: c.RGB.B, A: 0xff}
}

// Field is a synthesized color field. Cells holds exactly one entry per input
// token; positions past len(Cells) on the Width x Height grid are unpopulated.
type Field struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Cells  []Cell `json:"cells"`
	Stats  Stats  `json:"stats"`
}

// At returns the cell at grid position (x, y), or false if the position is
// outside the grid or unpopulated.
func (f *Field) At(x, y int) (Cell, bool) {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return Cell{}, false
	}
	i := y*f.Width + x
	if i >= len(f.Cells) {
		return Cell{}, false
	}
	return f.Cells[i], true
}

// Synthesize runs the full pipeline over tokens: neutral run
// disambiguation, diversity enhancement, then influence diffusion.
//
// It returns ErrEmptyInput if tokens is empty.
func Synthesize(tokens []Token, p Params) (*Field, error) {
	if len(tokens) == 0 {
		return nil, ErrEmptyInput
	}

	polarity := Enhance(Disambiguate(tokens, p))

	inputs := make([]Input, len(tokens))
	for i, t := range tokens {
		inputs[i] = Input{
			Polarity:         polarity[i],
			VowelRatio:       t.VowelRatio,
			NormalizedLength: t.NormalizedLength,
		}
	}

	width, height := Dimensions(len(tokens))
	colors, stats := Diffuse(inputs, width, p)

	cells := make([]Cell, len(tokens))
	for i, t := range tokens {
		x, y := Position(i, width)
		cells[i] = Cell{
			Index:    i,
			X:        x,
			Y:        y,
			Token:    t.Text,
			Polarity: polarity[i],
			Anchor:   isAnchor(polarity[i], p),
			Negative: polarity[i] < 0.5,
			Color:    colors[i],
			RGB:      ToRGB(colors[i]),
		}
	}

	return &Field{Width: width, Height: height, Cells: cells, Stats: stats}, nil
}

func isAnchor(polarity float64, p Params) bool {
	d := polarity - 0.5
	if d < 0 {
		d = -d
	}
	return d > p.AnchorThreshold
}

// ToRGB converts an HSV color (every component in [0,1]) to 8-bit RGB,
// truncating each channel toward zero.
func ToRGB(c HSV) RGB {
	rgb := colorful.Hsv(c.H*360, clamp01(c.S), clamp01(c.V))
	return RGB{
		R: toByte(rgb.R),
		G: toByte(rgb.G),
		B: toByte(rgb.B),
	}
}

func toByte(v float64) uint8 {
	return uint8(clamp01(v) * 255)
}
