package tokenizer

import (
	"testing"

	"github.com/gitachi143/speechReader/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected []domain.Token
	}{
		{
			name: "plain words",
			text: "The quick fox runs",
			expected: []domain.Token{
				{Display: "The", Key: "the"},
				{Display: "quick", Key: "quick"},
				{Display: "fox", Key: "fox"},
				{Display: "runs", Key: "runs"},
			},
		},
		{
			name: "punctuation stripped from keys",
			text: `"Hello," she said.`,
			expected: []domain.Token{
				{Display: `"Hello,"`, Key: "hello"},
				{Display: "she", Key: "she"},
				{Display: "said.", Key: "said"},
			},
		},
		{
			name: "whitespace runs are separators",
			text: "one\t\ttwo\n three",
			expected: []domain.Token{
				{Display: "one", Key: "one"},
				{Display: "two", Key: "two"},
				{Display: "three", Key: "three"},
			},
		},
		{
			name: "bare punctuation dropped",
			text: "wait — what",
			expected: []domain.Token{
				{Display: "wait", Key: "wait"},
				{Display: "what", Key: "what"},
			},
		},
		{
			name: "digits kept",
			text: "chapter 12",
			expected: []domain.Token{
				{Display: "chapter", Key: "chapter"},
				{Display: "12", Key: "12"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Tokenize(tt.text)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, tokens)
		})
	}
}

func TestTokenize_EmptyText(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "empty string", text: ""},
		{name: "only whitespace", text: "   \n\t  "},
		{name: "only punctuation", text: "... — !!!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Tokenize(tt.text)
			assert.ErrorIs(t, err, domain.ErrEmptyText)
			assert.Nil(t, tokens)
		})
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		word     string
		expected string
	}{
		{name: "lowercase passthrough", word: "fox", expected: "fox"},
		{name: "uppercase folded", word: "Fox", expected: "fox"},
		{name: "punctuation stripped", word: "don't!", expected: "dont"},
		{name: "unicode letters kept", word: "Café", expected: "café"},
		{name: "pure punctuation", word: "—", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.word))
		})
	}
}

func TestNormalizeWords(t *testing.T) {
	assert.Equal(t, []string{"the", "the", "cat"}, NormalizeWords("The, the CAT!"))
	assert.Empty(t, NormalizeWords("... ---"))
}
