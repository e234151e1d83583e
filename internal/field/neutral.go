package field

import (
	"math"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
)

// Token is one word of the input sequence together with the features the
// pipeline consumes.
type Token struct {
	// Text is the word itself. It only feeds the stable hash offset and the
	// length factor of neutral run disambiguation.
	Text string `json:"text"`

	// Score is the raw compound polarity, in any real range.
	Score float64 `json:"score"`

	// VowelRatio is the share of vowels in the word, in [0,1].
	VowelRatio float64 `json:"vowel_ratio"`

	// NormalizedLength is the word length scaled to [0,1].
	NormalizedLength float64 `json:"normalized_length"`
}

// StableHash maps text to [0,1) deterministically.
//
// The value depends only on the UTF-8 bytes of text, so it is the same across
// runs, processes and platforms.
func StableHash(text string) float64 {
	return float64(xxhash.Sum64String(text)%1000) / 1000
}

// run is a maximal stretch of tokens whose scores stay within tolerance of
// the score that opened it.
type run struct {
	start, end int // [start, end)
	score      float64
}

func (r run) len() int { return r.end - r.start }

// runs partitions scores into maximal runs of near-equal values.
func runs(scores []float64, tolerance float64) []run {
	var out []run
	for i, s := range scores {
		if len(out) > 0 && math.Abs(s-out[len(out)-1].score) <= tolerance {
			out[len(out)-1].end = i + 1
			continue
		}
		out = append(out, run{start: i, end: i + 1, score: s})
	}
	return out
}

// Disambiguate spreads runs of near-identical neutral scores across a small
// window so that each word in the run gets a distinguishable value.
//
// A run qualifies when its opening score has magnitude below
// NeutralThreshold and it holds more than one token. Each token of a
// qualifying run gets a weighted mix of three offsets inside
// [score-SpreadWidth/2, score+SpreadWidth/2]: its position in the run, a
// stable hash of its text, and its vowel ratio and length. Scores outside
// qualifying runs are returned unchanged.
func Disambiguate(tokens []Token, p Params) []float64 {
	scores := make([]float64, len(tokens))
	for i, t := range tokens {
		scores[i] = t.Score
	}
	out := make([]float64, len(scores))
	copy(out, scores)

	for _, r := range runs(scores, p.RunTolerance) {
		n := r.len()
		if n <= 1 || math.Abs(r.score) >= p.NeutralThreshold {
			continue
		}

		base := r.score - p.SpreadWidth/2
		steps := float64(max(n-1, 1))
		for idx := 0; idx < n; idx++ {
			t := tokens[r.start+idx]

			gradient := base + float64(idx)/steps*p.SpreadWidth
			hashed := base + StableHash(t.Text)*p.SpreadWidth
			lengthFactor := math.Min(float64(utf8.RuneCountInString(t.Text))/p.LengthDivisor, 1)
			featured := base + ((t.VowelRatio+lengthFactor)/2)*p.SpreadWidth

			out[r.start+idx] = p.GradientWeight*gradient + p.HashWeight*hashed + p.FeatureWeight*featured
		}
	}
	return out
}
