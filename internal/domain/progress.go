package domain

import "time"

// Verdict is the outcome of comparing a hypothesis to the expected token.
type Verdict string

const (
	// VerdictCorrect means the hypothesis satisfied the expected word.
	VerdictCorrect Verdict = "correct"
	// VerdictIncorrect means the hypothesis did not match.
	VerdictIncorrect Verdict = "incorrect"
	// VerdictUncertain means the hypothesis was close but the recognizer's
	// confidence was too low to judge; the reader should repeat the word
	// without penalty.
	VerdictUncertain Verdict = "uncertain"
)

// ProgressEntry is an immutable record of one matching attempt.
// Entries are append-only: multiple entries may exist for the same
// word index when the reader retries.
type ProgressEntry struct {
	ID           int64
	SessionID    string
	WordIndex    int
	ExpectedWord string
	// SpokenWord is the hypothesis as recognized; empty for skips.
	SpokenWord string
	IsCorrect  bool
	// RetryEligible marks uncertain verdicts: the entry does not count
	// as a failed attempt because the reader was asked to repeat.
	RetryEligible bool
	Confidence    float64
	Timestamp     time.Time
}
