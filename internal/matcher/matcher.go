// Package matcher decides whether a recognized speech hypothesis
// satisfies the expected word at the reading cursor.
//
// Matching proceeds in two stages:
//
//  1. Exact comparison: the hypothesis is normalized the same way as
//     session tokens (lowercased, punctuation stripped). For multi-word
//     hypotheses each constituent word is checked in order, so a phrase
//     like "the the cat" still satisfies the expected word "cat".
//
//  2. Similarity scoring: when no word matches exactly, a Levenshtein
//     edit-distance ratio is computed between the expected key and each
//     constituent word as well as the whole phrase. A score at or above
//     the acceptance threshold is a correct verdict; a score in the
//     uncertainty band combined with low recognizer confidence yields
//     an uncertain verdict so the caller can ask the reader to repeat
//     without penalty.
//
// Confidence alone never promotes a textual mismatch: similarity is the
// primary signal and confidence only disambiguates borderline scores.
package matcher

import (
	"strings"

	"github.com/gitachi143/speechReader/internal/domain"
	"github.com/gitachi143/speechReader/internal/tokenizer"

	"github.com/antzucaro/matchr"
)

const (
	defaultAcceptThreshold    = 0.80
	defaultUncertainThreshold = 0.50
	defaultConfidenceFloor    = 0.70
)

// Option is a functional option for configuring a [Matcher].
type Option func(*Matcher)

// WithAcceptThreshold sets the minimum similarity score treated as a
// correct match. Default: 0.80.
func WithAcceptThreshold(threshold float64) Option {
	return func(m *Matcher) {
		m.acceptThreshold = threshold
	}
}

// WithUncertainThreshold sets the minimum similarity score that can
// yield an uncertain verdict when confidence is low. Default: 0.50.
func WithUncertainThreshold(threshold float64) Option {
	return func(m *Matcher) {
		m.uncertainThreshold = threshold
	}
}

// WithConfidenceFloor sets the recognizer confidence below which a
// borderline similarity is judged uncertain instead of incorrect.
// Default: 0.70.
func WithConfidenceFloor(floor float64) Option {
	return func(m *Matcher) {
		m.confidenceFloor = floor
	}
}

// Matcher compares hypotheses against expected word keys. All methods
// are safe for concurrent use; the Matcher is read-only after
// construction.
type Matcher struct {
	acceptThreshold    float64
	uncertainThreshold float64
	confidenceFloor    float64
}

// New returns a new [Matcher] configured with the supplied options.
func New(opts ...Option) *Matcher {
	m := &Matcher{
		acceptThreshold:    defaultAcceptThreshold,
		uncertainThreshold: defaultUncertainThreshold,
		confidenceFloor:    defaultConfidenceFloor,
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Match compares hypothesis against expectedKey and returns a verdict.
// expectedKey must already be in normalized form (see tokenizer.Normalize);
// the hypothesis is normalized here. confidence is the recognizer's score
// for the hypothesis and must be within [0, 1]; the caller validates it.
func (m *Matcher) Match(expectedKey, hypothesis string, confidence float64) domain.Verdict {
	words := tokenizer.NormalizeWords(hypothesis)
	if len(words) == 0 || expectedKey == "" {
		return domain.VerdictIncorrect
	}

	for _, w := range words {
		if w == expectedKey {
			return domain.VerdictCorrect
		}
	}

	// Best score across each constituent word and the whole phrase.
	best := 0.0
	for _, w := range words {
		if s := Similarity(expectedKey, w); s > best {
			best = s
		}
	}
	if len(words) > 1 {
		if s := Similarity(expectedKey, strings.Join(words, " ")); s > best {
			best = s
		}
	}

	switch {
	case best >= m.acceptThreshold:
		return domain.VerdictCorrect
	case best >= m.uncertainThreshold && confidence < m.confidenceFloor:
		return domain.VerdictUncertain
	default:
		return domain.VerdictIncorrect
	}
}

// Similarity returns an edit-distance similarity score in [0, 1]:
// 1 minus the Levenshtein distance divided by the longer length.
// It is a pure function with no hidden state.
func Similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	if a == "" || b == "" {
		return 0
	}

	longest := len([]rune(a))
	if l := len([]rune(b)); l > longest {
		longest = l
	}

	return 1 - float64(matchr.Levenshtein(a, b))/float64(longest)
}
