package domain

import "errors"

var (
	// ErrEmptyText is returned when session text yields no tokens.
	ErrEmptyText = errors.New("text contains no readable words")

	// ErrSessionNotFound is returned for unknown session identifiers.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionComplete is returned when a mutation is attempted on a
	// completed session. The caller must reset the session first.
	ErrSessionComplete = errors.New("session is already complete")

	// ErrInvalidConfidence is returned when a confidence score falls
	// outside [0, 1]. No state changes.
	ErrInvalidConfidence = errors.New("confidence must be between 0 and 1")
)
