package testutil

import (
	"time"

	"github.com/gitachi143/speechReader/internal/domain"
	"github.com/gitachi143/speechReader/internal/tokenizer"

	"go.uber.org/zap"
)

// NewTestLogger creates a no-op logger for tests
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// NewTestSession creates a session over the given text with the cursor
// at the given index
func NewTestSession(id, text string, cursor int) *domain.ReadingSession {
	tokens, err := tokenizer.Tokenize(text)
	if err != nil {
		panic(err)
	}
	return &domain.ReadingSession{
		ID:               id,
		Name:             "test.txt",
		Tokens:           tokens,
		CurrentWordIndex: cursor,
		CreatedAt:        time.Now().UTC(),
	}
}

// NewCompletedSession creates a session whose cursor has passed the
// last word
func NewCompletedSession(id, text string) *domain.ReadingSession {
	s := NewTestSession(id, text, 0)
	s.CurrentWordIndex = len(s.Tokens)
	completedAt := s.CreatedAt.Add(time.Minute)
	s.CompletedAt = &completedAt
	return s
}

// NewTestEntry creates a progress entry for a session
func NewTestEntry(sessionID string, wordIndex int, expected, spoken string, correct bool) domain.ProgressEntry {
	return domain.ProgressEntry{
		SessionID:    sessionID,
		WordIndex:    wordIndex,
		ExpectedWord: expected,
		SpokenWord:   spoken,
		IsCorrect:    correct,
		Confidence:   0.9,
		Timestamp:    time.Now().UTC(),
	}
}
