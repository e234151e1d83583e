package field

import "math"

// Dimensions returns the row-major grid size for n cells: width is
// ceil(sqrt(n)) and height is ceil(n/width). It returns (0, 0) for n <= 0.
func Dimensions(n int) (width, height int) {
	if n <= 0 {
		return 0, 0
	}
	width = int(math.Ceil(math.Sqrt(float64(n))))
	// Correct for sqrt rounding on large n.
	for width*width < n {
		width++
	}
	for width > 1 && (width-1)*(width-1) >= n {
		width--
	}
	height = (n + width - 1) / width
	return width, height
}

// Position maps linear cell index i to its (x, y) grid coordinate.
func Position(i, width int) (x, y int) {
	return i % width, i / width
}

func gridDistance(ax, ay, bx, by int) float64 {
	dx := float64(ax - bx)
	dy := float64(ay - by)
	return math.Sqrt(dx*dx + dy*dy)
}
