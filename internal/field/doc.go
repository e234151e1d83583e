// Package field synthesizes a 2-D color field from per-word sentiment scores.
//
// The pipeline runs in three numeric stages over a token sequence:
//
//  1. Disambiguate: runs of near-identical, near-neutral scores are spread
//     across a small window so that neutral passages do not render as one
//     flat block. The spread is keyed by a stable hash of the word text, so
//     the same text always produces the same image.
//  2. Enhance: scores are rescaled to [0,1] and pushed away from the 0.5
//     midpoint with a symmetric power curve.
//  3. Diffuse: cells far enough from neutral become anchors. Anchors bleed
//     their color onto follower cells using a blended distance that mixes
//     grid distance with distance in the word sequence.
//
// # Grid Layout
//
// Cells are laid out row-major on a square-ish grid:
//
//	width  = ceil(sqrt(n))
//	height = ceil(n / width)
//	x, y   = i mod width, i div width
//
// # Colors
//
// Colors are kept in HSV internally. Hue spans [0, 0.83] (red through
// violet), saturation and value are clipped to [0,1] after every stage. RGB
// bytes are produced once, at the end, by truncating toward zero.
//
// # Concurrency
//
// Synthesize is safe to call concurrently. Internally, followers are
// evaluated in fixed-size batches against a read-only anchor snapshot; the
// batch size and worker count only affect memory and speed, never output.
package field
