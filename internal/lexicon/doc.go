// Package lexicon turns raw text into the token sequence consumed by the
// field pipeline.
//
// Text is lowercased and split into words. Each word is scored against a
// valence lexicon (values roughly in [-4, 4]) and the valence is squashed
// into a compound polarity in (-1, 1) with
//
//	compound = v / sqrt(v*v + 15)
//
// Words missing from the lexicon score 0. Two lexical features ride along
// with every word: the vowel ratio and the length normalized against a
// 20-character word.
//
// The default lexicon is embedded in the binary. A custom lexicon can be
// loaded from any reader in the same tab-separated "word<TAB>valence"
// format; blank lines and lines starting with '#' are ignored.
package lexicon
