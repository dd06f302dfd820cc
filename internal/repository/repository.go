package repository

import (
	"time"

	"github.com/gitachi143/speechReader/internal/domain"
)

// UserRepository defines bot user data operations
type UserRepository interface {
	IsAuthorized(userID int64) (bool, error)
	AuthorizeUser(userID int64) error
	EnsureUserExists(userID int64) error
}

// SessionRepository defines reading session data operations.
//
// RecordAttempt appends one progress entry and applies the resulting
// cursor/completion change as a single atomic unit, so a failure never
// leaves the log and the cursor disagreeing. Cursor-only updates and
// completion marking always travel through it.
type SessionRepository interface {
	Create(session *domain.ReadingSession) error
	// Get returns domain.ErrSessionNotFound for unknown identifiers.
	Get(id string) (*domain.ReadingSession, error)
	ListRecent(limit int) ([]domain.ReadingSession, error)
	RecordAttempt(entry *domain.ProgressEntry, newCursor int, completedAt *time.Time) error
	// Reset returns the cursor to zero and clears the completion
	// timestamp. Progress entries are retained.
	Reset(id string) error
}

// ProgressRepository defines read access to the append-only progress
// log. Entries are only ever written through RecordAttempt; there is
// no update or delete contract.
type ProgressRepository interface {
	// ListBySession returns entries ordered by timestamp, optionally
	// bounded by word index. Negative bounds mean unbounded.
	ListBySession(sessionID string, fromIndex, toIndex int) ([]domain.ProgressEntry, error)
}
