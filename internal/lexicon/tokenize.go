package lexicon

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// Tokenize lowercases text and returns its words in order. Punctuation and
// whitespace separate words and are dropped.
func Tokenize(text string) []string {
	return wordPattern.FindAllString(strings.ToLower(text), -1)
}

// MaxWordLength is the word length at which NormalizedLength saturates.
const MaxWordLength = 20

// Features returns the vowel ratio and the normalized length of word.
// Both are in [0,1]; an empty word yields (0, 0).
func Features(word string) (vowelRatio, normalizedLength float64) {
	n := utf8.RuneCountInString(word)
	if n == 0 {
		return 0, 0
	}

	vowels := 0
	for _, r := range word {
		switch unicode.ToLower(r) {
		case 'a', 'e', 'i', 'o', 'u':
			vowels++
		}
	}

	vowelRatio = float64(vowels) / float64(n)
	normalizedLength = float64(n) / MaxWordLength
	if normalizedLength > 1 {
		normalizedLength = 1
	}
	return vowelRatio, normalizedLength
}
