package tokenizer

import (
	"strings"
	"unicode"

	"github.com/gitachi143/speechReader/internal/domain"
)

// Tokenize splits raw text into an ordered token sequence. Whitespace
// runs are separators; each token keeps its display form alongside a
// normalized comparison key. Fields that normalize to nothing (bare
// punctuation like an em dash) are dropped.
//
// Returns domain.ErrEmptyText when no tokens result.
func Tokenize(text string) ([]domain.Token, error) {
	fields := strings.Fields(text)

	tokens := make([]domain.Token, 0, len(fields))
	for _, f := range fields {
		key := Normalize(f)
		if key == "" {
			continue
		}
		tokens = append(tokens, domain.Token{Display: f, Key: key})
	}

	if len(tokens) == 0 {
		return nil, domain.ErrEmptyText
	}
	return tokens, nil
}

// Normalize lowercases a word and strips everything that is not a
// letter or digit, producing the comparison key used for matching.
func Normalize(word string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(word) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeWords normalizes every word in a phrase, dropping words
// that normalize to nothing. Used for multi-word hypotheses.
func NormalizeWords(phrase string) []string {
	fields := strings.Fields(phrase)

	words := make([]string, 0, len(fields))
	for _, f := range fields {
		if key := Normalize(f); key != "" {
			words = append(words, key)
		}
	}
	return words
}
