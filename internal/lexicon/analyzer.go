package lexicon

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/ironsheep/sentiment-image-mcp/internal/field"
)

//go:embed valence.tsv
var defaultLexicon string

// normalizationAlpha approximates the maximum expected squared valence and
// controls how quickly compound scores approach ±1.
const normalizationAlpha = 15

// Analyzer scores words against a valence lexicon.
//
// An Analyzer is immutable after construction and safe for concurrent use.
type Analyzer struct {
	valence map[string]float64
}

// NewAnalyzer returns an Analyzer backed by the embedded lexicon.
func NewAnalyzer() *Analyzer {
	a, err := ParseLexicon(strings.NewReader(defaultLexicon))
	if err != nil {
		panic(fmt.Sprintf("lexicon: embedded lexicon is invalid: %v", err))
	}
	return a
}

// ParseLexicon reads a tab-separated "word<TAB>valence" lexicon.
//
// Words are lowercased. Blank lines and lines starting with '#' are skipped.
// A later entry for the same word replaces an earlier one.
func ParseLexicon(r io.Reader) (*Analyzer, error) {
	valence := make(map[string]float64)

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Split(text, "\t")
		if len(fields) < 2 {
			return nil, fmt.Errorf("line %d: expected word<TAB>valence, got %q", line, text)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid valence: %w", line, err)
		}
		valence[strings.ToLower(strings.TrimSpace(fields[0]))] = v
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read lexicon: %w", err)
	}

	return &Analyzer{valence: valence}, nil
}

// Len returns the number of words in the lexicon.
func (a *Analyzer) Len() int {
	return len(a.valence)
}

// Score returns the compound polarity of a single word in (-1, 1).
// Unknown words score 0.
func (a *Analyzer) Score(word string) float64 {
	v, ok := a.valence[strings.ToLower(word)]
	if !ok || v == 0 {
		return 0
	}
	return Compound(v)
}

// Compound squashes a raw valence into (-1, 1).
func Compound(valence float64) float64 {
	c := valence / math.Sqrt(valence*valence+normalizationAlpha)
	return math.Max(-1, math.Min(1, c))
}

// Tokens tokenizes text and returns one scored token per word.
func (a *Analyzer) Tokens(text string) []field.Token {
	return a.TokensFromWords(Tokenize(text))
}

// TokensFromWords scores an already tokenized word list. Words are used as
// given; callers that need lowercasing should run Tokenize first.
func (a *Analyzer) TokensFromWords(words []string) []field.Token {
	tokens := make([]field.Token, len(words))
	for i, w := range words {
		vowelRatio, length := Features(w)
		tokens[i] = field.Token{
			Text:             w,
			Score:            a.Score(w),
			VowelRatio:       vowelRatio,
			NormalizedLength: length,
		}
	}
	return tokens
}
