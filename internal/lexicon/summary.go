package lexicon

import "github.com/ironsheep/sentiment-image-mcp/internal/field"

// Summary describes the raw score distribution of a token sequence.
type Summary struct {
	Count     int     `json:"count"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	Unique    int     `json:"unique"`
	Zero      int     `json:"zero"`
	ZeroShare float64 `json:"zero_share"`
}

// Summarize computes score statistics. It is mainly useful for logging how
// much of a text the lexicon actually covered.
func Summarize(tokens []field.Token) Summary {
	var s Summary
	if len(tokens) == 0 {
		return s
	}

	seen := make(map[float64]struct{}, len(tokens))
	s.Count = len(tokens)
	s.Min, s.Max = tokens[0].Score, tokens[0].Score
	for _, t := range tokens {
		s.Min = min(s.Min, t.Score)
		s.Max = max(s.Max, t.Score)
		seen[t.Score] = struct{}{}
		if t.Score == 0 {
			s.Zero++
		}
	}
	s.Unique = len(seen)
	s.ZeroShare = float64(s.Zero) / float64(s.Count)
	return s
}
