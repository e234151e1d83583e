// Package imaging turns synthesized sentiment fields into images.
//
// This package is the output side of the pipeline: it rasterizes a
// field.Field into an RGBA image, scales it up for viewing, overlays cell
// boundaries, derives alternate views (the collapsed view that drops neutral
// pixels) and summarizes the result as a color palette. All operations work
// with standard Go image types and use a coordinate system where (0,0) is at
// the top-left corner, X increases rightward, and Y increases downward.
//
// # Coordinate System
//
// A field of n cells is laid out row-major on a width x height grid. Cell i
// lands on pixel (i mod width, i div width). Grid positions past the last
// cell are left black (0,0,0).
//
// Upscaling by a factor s maps cell (x, y) to the square
// [x*s, (x+1)*s) x [y*s, (y+1)*s) using nearest-neighbor sampling, so every
// cell stays a single flat color.
//
// # Color Representation
//
// Colors are reported as:
//   - Hex: lowercase "#rrggbb" (alpha excluded)
//   - RGB: 8-bit components (0-255)
//   - HSL: Hue (0-360), Saturation (0-100), Lightness (0-100)
//
// # Output
//
// Encode returns a base64 PNG suitable for embedding in an MCP response.
// Save writes PNG, JPEG or BMP to disk, picking the encoder from the file
// extension.
//
// # Thread Safety
//
// Every function in this package is stateless. Images returned by this
// package are freshly allocated and owned by the caller.
package imaging
