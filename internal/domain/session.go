package domain

import "time"

// Token is one word unit from the source text.
type Token struct {
	// Display is the word exactly as it appears in the source,
	// minus surrounding whitespace.
	Display string
	// Key is the normalized comparison form: lowercased with
	// punctuation stripped.
	Key string
}

// ReadingSession tracks a reader's position in a block of text.
// The token sequence is built once at creation and never changes;
// only the cursor and completion fields mutate afterwards.
type ReadingSession struct {
	ID               string
	Name             string
	Tokens           []Token
	CurrentWordIndex int
	CreatedAt        time.Time
	CompletedAt      *time.Time
}

// TotalWords returns the number of tokens in the session text.
func (s *ReadingSession) TotalWords() int {
	return len(s.Tokens)
}

// Completed reports whether the reader has passed the last word.
func (s *ReadingSession) Completed() bool {
	return s.CompletedAt != nil
}

// ExpectedToken returns the token at the cursor. It must not be
// called on a completed session.
func (s *ReadingSession) ExpectedToken() Token {
	return s.Tokens[s.CurrentWordIndex]
}

// ProgressPercentage returns how far through the text the cursor is.
func (s *ReadingSession) ProgressPercentage() float64 {
	if len(s.Tokens) == 0 {
		return 0
	}
	return float64(s.CurrentWordIndex) / float64(len(s.Tokens)) * 100
}
