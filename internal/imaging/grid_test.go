package imaging

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCellGrid(t *testing.T) {
	src := Upscale(Rasterize(threeCellField()), 5)
	grid := CellGrid(src, 5, "#00FF00")

	require.Equal(t, src.Bounds(), grid.Bounds())
	assert.Equal(t, color.NRGBA{0, 255, 0, 255}, grid.NRGBAAt(5, 2), "vertical separator")
	assert.Equal(t, color.NRGBA{0, 255, 0, 255}, grid.NRGBAAt(2, 5), "horizontal separator")
	assert.Equal(t, color.NRGBA{230, 20, 10, 255}, grid.NRGBAAt(2, 2), "cell interior untouched")

	// The source is not modified.
	assert.Equal(t, color.NRGBA{242, 242, 242, 255}, src.NRGBAAt(5, 2))
}

func TestCellGrid_InvalidColor(t *testing.T) {
	src := Upscale(Rasterize(threeCellField()), 4)

	for _, hex := range []string{"", "red", "#12"} {
		grid := CellGrid(src, 4, hex)
		assert.Equal(t, DefaultGridColor, grid.NRGBAAt(4, 1), "color %q", hex)
	}
}

func TestCellGrid_TooSmall(t *testing.T) {
	src := Rasterize(threeCellField())
	grid := CellGrid(src, 1, "#00FF00")
	assert.Equal(t, color.NRGBA{242, 242, 242, 255}, grid.NRGBAAt(1, 0))
}
