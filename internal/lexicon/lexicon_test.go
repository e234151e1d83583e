package lexicon

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/sentiment-image-mcp/internal/field"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"plain", "The quick brown fox", []string{"the", "quick", "brown", "fox"}},
		{"punctuation", "Hello, world! It's fine.", []string{"hello", "world", "it", "s", "fine"}},
		{"newlines", "one\ntwo\r\nthree", []string{"one", "two", "three"}},
		{"unicode", "Café déjà vu", []string{"café", "déjà", "vu"}},
		{"digits", "route 66", []string{"route", "66"}},
		{"empty", "  ... ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.in))
		})
	}
}

func TestFeatures(t *testing.T) {
	tests := []struct {
		word        string
		vowelRatio  float64
		normalized  float64
	}{
		{"", 0, 0},
		{"a", 1, 0.05},
		{"rhythm", 0, 0.3},
		{"audio", 0.8, 0.25},
		{"Queue", 0.8, 0.25},
		{"antidisestablishmentarianism", 11.0 / 28.0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			v, n := Features(tt.word)
			assert.InDelta(t, tt.vowelRatio, v, 1e-12)
			assert.InDelta(t, tt.normalized, n, 1e-12)
		})
	}
}

func TestCompound(t *testing.T) {
	assert.InDelta(t, 0.4404, Compound(1.9), 1e-4)
	assert.InDelta(t, -0.5423, Compound(-2.5), 1e-4)
	assert.Equal(t, 0.0, Compound(0))

	for _, v := range []float64{-1e6, -4, -0.1, 0.1, 4, 1e6} {
		c := Compound(v)
		assert.LessOrEqual(t, math.Abs(c), 1.0)
		assert.Equal(t, math.Signbit(v), math.Signbit(c))
	}
}

func TestAnalyzer_Score(t *testing.T) {
	a := NewAnalyzer()
	require.Greater(t, a.Len(), 100)

	assert.Greater(t, a.Score("love"), 0.5)
	assert.Greater(t, a.Score("LOVE"), 0.5)
	assert.Less(t, a.Score("hate"), -0.5)
	assert.Equal(t, 0.0, a.Score("the"))
	assert.Equal(t, 0.0, a.Score("zyzzyva"))
}

func TestAnalyzer_Tokens(t *testing.T) {
	a := NewAnalyzer()
	tokens := a.Tokens("Good dogs, bad cats.")

	require.Len(t, tokens, 4)
	assert.Equal(t, "good", tokens[0].Text)
	assert.Greater(t, tokens[0].Score, 0.0)
	assert.Equal(t, 0.0, tokens[1].Score)
	assert.Less(t, tokens[2].Score, 0.0)
	assert.InDelta(t, 0.5, tokens[0].VowelRatio, 1e-12)
	assert.InDelta(t, 4.0/20, tokens[1].NormalizedLength, 1e-12)
}

func TestParseLexicon(t *testing.T) {
	src := strings.Join([]string{
		"# custom",
		"",
		"Sunny\t2.0",
		"gloomy\t-1.5",
		"sunny\t2.5",
	}, "\n")

	a, err := ParseLexicon(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, 2, a.Len())
	assert.InDelta(t, Compound(2.5), a.Score("sunny"), 1e-12)
	assert.InDelta(t, Compound(-1.5), a.Score("gloomy"), 1e-12)
}

func TestParseLexicon_Errors(t *testing.T) {
	_, err := ParseLexicon(strings.NewReader("missingtab"))
	assert.ErrorContains(t, err, "line 1")

	_, err = ParseLexicon(strings.NewReader("ok\t1\nbad\tnotanumber"))
	assert.ErrorContains(t, err, "line 2")
}

func TestSummarize(t *testing.T) {
	s := Summarize([]field.Token{
		{Text: "a", Score: 0},
		{Text: "good", Score: 0.44},
		{Text: "the", Score: 0},
		{Text: "bad", Score: -0.54},
	})

	assert.Equal(t, 4, s.Count)
	assert.Equal(t, -0.54, s.Min)
	assert.Equal(t, 0.44, s.Max)
	assert.Equal(t, 3, s.Unique)
	assert.Equal(t, 2, s.Zero)
	assert.InDelta(t, 0.5, s.ZeroShare, 1e-12)

	assert.Equal(t, Summary{}, Summarize(nil))
}
