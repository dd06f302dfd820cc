package domain

import "time"

// SessionStats summarizes reading performance for one session.
//
// A word index counts as attempted once it has received a correct
// verdict, a final incorrect verdict, or a skip. Uncertain-only
// indexes are not attempts: the reader was asked to repeat.
type SessionStats struct {
	TotalWords     int
	CorrectWords   int
	AttemptedWords int
	TotalAttempts  int
	Accuracy       float64
	Elapsed        time.Duration
}
