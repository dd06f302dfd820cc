package domain

import "time"

// User represents a bot user
type User struct {
	UserID     int64
	Authorized bool
	CreatedAt  time.Time
}

// UserState represents user's current interaction state
type UserState string

const (
	StateIdle        UserState = "idle"
	StateWaitingText UserState = "waiting_text"
	StateReading     UserState = "reading"
)

// StateData holds temporary data for user's current state
type StateData struct {
	State UserState
	// SessionID is the reading session the user is working through
	// while in StateReading.
	SessionID string
}
