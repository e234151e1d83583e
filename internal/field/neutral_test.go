package field

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tok(text string, score float64) Token {
	vowels := 0
	for _, r := range text {
		switch r {
		case 'a', 'e', 'i', 'o', 'u':
			vowels++
		}
	}
	return Token{
		Text:             text,
		Score:            score,
		VowelRatio:       float64(vowels) / math.Max(float64(len(text)), 1),
		NormalizedLength: math.Min(float64(len(text))/20, 1),
	}
}

func TestStableHash(t *testing.T) {
	words := []string{"", "a", "the", "river", "rivers", "ünïcode", "the quick brown fox"}
	for _, w := range words {
		h := StableHash(w)
		assert.GreaterOrEqual(t, h, 0.0, "word %q", w)
		assert.Less(t, h, 1.0, "word %q", w)
		assert.Equal(t, h, StableHash(w), "word %q must hash deterministically", w)
	}
	assert.NotEqual(t, StableHash("river"), StableHash("rivers"))
}

func TestDisambiguate_LeavesNonQualifyingScores(t *testing.T) {
	tokens := []Token{
		tok("good", 0.4404),
		tok("great", 0.6249),
		tok("bad", -0.5423),
		tok("sad", -0.4767),
		tok("and", 0.0),
		tok("love", 0.6369),
		tok("loved", 0.5994),
	}
	out := Disambiguate(tokens, DefaultParams())

	require.Len(t, out, len(tokens))
	for i, tk := range tokens {
		assert.Equal(t, math.Float64bits(tk.Score), math.Float64bits(out[i]), "token %d (%s)", i, tk.Text)
	}
}

func TestDisambiguate_SpreadsNeutralRun(t *testing.T) {
	tokens := []Token{
		tok("terrible", -0.4767),
		tok("the", 0),
		tok("cat", 0),
		tok("sat", 0.02),
		tok("on", 0),
		tok("wonderful", 0.5719),
	}
	out := Disambiguate(tokens, DefaultParams())

	assert.Equal(t, tokens[0].Score, out[0])
	assert.Equal(t, tokens[5].Score, out[5])

	run := out[1:5]
	base := 0.0 - 0.1
	sum := 0.0
	for i, s := range run {
		assert.GreaterOrEqual(t, s, base, "run index %d", i)
		assert.LessOrEqual(t, s, base+0.2, "run index %d", i)
		sum += s
	}
	mean := sum / float64(len(run))
	assert.GreaterOrEqual(t, mean, base)
	assert.LessOrEqual(t, mean, base+0.2)

	// The gradient term dominates, so the run is no longer flat.
	assert.Less(t, run[0], run[3])
}

func TestDisambiguate_ExactValues(t *testing.T) {
	p := DefaultParams()
	tokens := []Token{tok("of", 0), tok("it", 0)}
	out := Disambiguate(tokens, p)

	for idx, tk := range tokens {
		base := -0.1
		gradient := base + float64(idx)*0.2
		hashed := base + StableHash(tk.Text)*0.2
		featured := base + ((tk.VowelRatio+0.2)/2)*0.2
		want := 0.6*gradient + 0.2*hashed + 0.2*featured
		assert.InDelta(t, want, out[idx], 1e-12, "token %s", tk.Text)
	}
}

func TestDisambiguate_Deterministic(t *testing.T) {
	tokens := []Token{tok("a", 0), tok("of", 0.01), tok("in", 0), tok("to", 0.03)}
	first := Disambiguate(tokens, DefaultParams())
	second := Disambiguate(tokens, DefaultParams())
	assert.Equal(t, first, second)
}

func TestDisambiguate_SingleTokenRun(t *testing.T) {
	tokens := []Token{tok("the", 0), tok("joy", 0.5859), tok("of", 0)}
	out := Disambiguate(tokens, DefaultParams())
	assert.Equal(t, []float64{0, 0.5859, 0}, out)
}

func TestDisambiguate_EmptyWord(t *testing.T) {
	tokens := []Token{tok("", 0), tok("", 0)}
	out := Disambiguate(tokens, DefaultParams())
	for _, s := range out {
		assert.False(t, math.IsNaN(s))
	}
}

func TestRuns(t *testing.T) {
	got := runs([]float64{0, 0.03, 0.05, 0.2, 0.22, -0.5}, 0.05)

	require.Len(t, got, 3)
	assert.Equal(t, run{start: 0, end: 3, score: 0}, got[0])
	assert.Equal(t, run{start: 3, end: 5, score: 0.2}, got[1])
	assert.Equal(t, run{start: 5, end: 6, score: -0.5}, got[2])
}
