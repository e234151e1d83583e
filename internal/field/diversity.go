package field

import "math"

// Enhance rescales scores to [0,1] and spreads them away from the midpoint.
//
// Scores are first normalized with the observed min and max. A symmetric
// power curve (exponent 1.5) then pulls the lower half toward 0 and the upper
// half toward 1. The curve is monotonic and keeps 0, 0.5 and 1 fixed.
//
// If every score is identical there is nothing to normalize against and every
// output is exactly 0.5.
func Enhance(scores []float64) []float64 {
	out := make([]float64, len(scores))
	if len(scores) == 0 {
		return out
	}

	lo, hi := scores[0], scores[0]
	for _, s := range scores[1:] {
		lo = math.Min(lo, s)
		hi = math.Max(hi, s)
	}
	if lo == hi {
		for i := range out {
			out[i] = 0.5
		}
		return out
	}

	span := hi - lo
	for i, s := range scores {
		out[i] = spread((s - lo) / span)
	}
	return out
}

// spread applies the power curve to a normalized score.
func spread(s float64) float64 {
	var v float64
	if s <= 0.5 {
		v = math.Pow(2*s, 1.5) / 2
	} else {
		v = 1 - math.Pow(2*(1-s), 1.5)/2
	}
	return clamp01(v)
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
