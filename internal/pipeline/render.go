package pipeline

import (
	"image"

	"github.com/ironsheep/sentiment-image-mcp/internal/field"
	"github.com/ironsheep/sentiment-image-mcp/internal/imaging"
)

// RenderOptions controls how a field becomes an image.
type RenderOptions struct {
	// Scale is the pixel size of one cell. Values below 1 mean 1.
	Scale int

	// Collapsed renders only the saturated cells, repacked into a new grid.
	Collapsed bool

	// CollapseThreshold is the minimum saturation kept when Collapsed is set.
	// Zero means imaging.DefaultCollapseThreshold.
	CollapseThreshold float64

	// Grid draws cell separators in GridColor (hex, default black).
	Grid      bool
	GridColor string
}

// Rendered is a rendered field.
type Rendered struct {
	Image image.Image

	// Columns and Rows are the cell grid size of the rendered image, which
	// differs from the field's when collapsed.
	Columns int
	Rows    int

	// Collapse is set when the image was collapsed.
	Collapse *imaging.CollapseResult
}

// Render rasterizes f and applies the requested view options.
func Render(f *field.Field, opts RenderOptions) *Rendered {
	scale := max(opts.Scale, 1)
	out := &Rendered{Columns: f.Width, Rows: f.Height}

	var img image.Image
	if opts.Collapsed {
		threshold := opts.CollapseThreshold
		if threshold == 0 {
			threshold = imaging.DefaultCollapseThreshold
		}
		c := imaging.Collapse(f, threshold)
		out.Collapse = c
		out.Columns, out.Rows = c.Width, c.Height
		img = c.Image
	} else {
		img = imaging.Rasterize(f)
	}

	up := imaging.Upscale(img, scale)
	if opts.Grid {
		out.Image = imaging.CellGrid(up, scale, opts.GridColor)
	} else {
		out.Image = up
	}
	return out
}
