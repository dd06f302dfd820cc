// Package memory provides an in-process store implementing the
// repository interfaces. It backs deployments without a database and
// doubles as the fake used by service and HTTP tests.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/gitachi143/speechReader/internal/domain"
)

// Store keeps sessions and progress entries in process memory.
// A single RWMutex guards both maps, so RecordAttempt is atomic by
// construction.
type Store struct {
	mu          sync.RWMutex
	sessions    map[string]*domain.ReadingSession
	entries     map[string][]domain.ProgressEntry
	users       map[int64]*domain.User
	nextEntryID int64
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		sessions: make(map[string]*domain.ReadingSession),
		entries:  make(map[string][]domain.ProgressEntry),
		users:    make(map[int64]*domain.User),
	}
}

// Create stores a new session
func (s *Store) Create(session *domain.ReadingSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[session.ID] = cloneSession(session)
	return nil
}

// Get returns a copy of the session so callers cannot mutate stored state
func (s *Store) Get(id string) (*domain.ReadingSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return cloneSession(session), nil
}

// ListRecent returns up to limit sessions, newest first
func (s *Store) ListRecent(limit int) ([]domain.ReadingSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := make([]domain.ReadingSession, 0, len(s.sessions))
	for _, session := range s.sessions {
		sessions = append(sessions, *cloneSession(session))
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.After(sessions[j].CreatedAt)
	})

	if limit >= 0 && len(sessions) > limit {
		sessions = sessions[:limit]
	}
	return sessions, nil
}

// RecordAttempt appends a progress entry and applies the cursor and
// completion change under one lock
func (s *Store) RecordAttempt(entry *domain.ProgressEntry, newCursor int, completedAt *time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[entry.SessionID]
	if !ok {
		return domain.ErrSessionNotFound
	}

	s.nextEntryID++
	stored := *entry
	stored.ID = s.nextEntryID
	s.entries[entry.SessionID] = append(s.entries[entry.SessionID], stored)

	session.CurrentWordIndex = newCursor
	session.CompletedAt = cloneTime(completedAt)
	return nil
}

// Reset returns the cursor to zero and clears completion, keeping all
// progress entries
func (s *Store) Reset(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return domain.ErrSessionNotFound
	}

	session.CurrentWordIndex = 0
	session.CompletedAt = nil
	return nil
}

// ListBySession returns progress entries in append order, optionally
// bounded by word index. Negative bounds are ignored.
func (s *Store) ListBySession(sessionID string, fromIndex, toIndex int) ([]domain.ProgressEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.ProgressEntry
	for _, e := range s.entries[sessionID] {
		if fromIndex >= 0 && e.WordIndex < fromIndex {
			continue
		}
		if toIndex >= 0 && e.WordIndex > toIndex {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// IsAuthorized checks if a bot user has unlocked the reader
func (s *Store) IsAuthorized(userID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[userID]
	if !ok {
		return false, nil
	}
	return user.Authorized, nil
}

// AuthorizeUser marks a bot user as authorized
func (s *Store) AuthorizeUser(userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		user = &domain.User{UserID: userID, CreatedAt: time.Now().UTC()}
		s.users[userID] = user
	}
	user.Authorized = true
	return nil
}

// EnsureUserExists creates the user record if it is missing
func (s *Store) EnsureUserExists(userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		s.users[userID] = &domain.User{UserID: userID, CreatedAt: time.Now().UTC()}
	}
	return nil
}

func cloneSession(s *domain.ReadingSession) *domain.ReadingSession {
	clone := *s
	clone.Tokens = make([]domain.Token, len(s.Tokens))
	copy(clone.Tokens, s.Tokens)
	clone.CompletedAt = cloneTime(s.CompletedAt)
	return &clone
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
