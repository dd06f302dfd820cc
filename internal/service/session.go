package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/gitachi143/speechReader/internal/domain"
	"github.com/gitachi143/speechReader/internal/matcher"
	"github.com/gitachi143/speechReader/internal/repository"
	"github.com/gitachi143/speechReader/internal/tokenizer"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultSessionName is used when no name accompanies the text,
// matching what the web client sends for pasted text.
const DefaultSessionName = "Pasted Text"

const recentSessionLimit = 5

// AttemptResult is the outcome of one hypothesis or skip.
type AttemptResult struct {
	Verdict   domain.Verdict
	NewCursor int
	Completed bool
}

// SessionService owns the reading cursor state machine. All mutations
// of one session (hypothesis, skip, reset) are serialized through a
// per-session mutex so concurrent duplicate submissions cannot both
// apply against a stale cursor; different sessions proceed
// independently.
//
// Callers are expected to deliver hypotheses for a session in
// increasing timestamp order. The service does not reorder them:
// out-of-order delivery yields a progress log that is not
// chronologically monotonic but remains causally consistent with the
// cursor at the time of each call.
type SessionService struct {
	sessions repository.SessionRepository
	progress repository.ProgressRepository
	matcher  *matcher.Matcher
	logger   *zap.Logger

	locks   map[string]*sync.Mutex
	locksMu sync.Mutex
}

// NewSessionService creates a new session service
func NewSessionService(
	sessions repository.SessionRepository,
	progress repository.ProgressRepository,
	m *matcher.Matcher,
	logger *zap.Logger,
) *SessionService {
	return &SessionService{
		sessions: sessions,
		progress: progress,
		matcher:  m,
		logger:   logger,
		locks:    make(map[string]*sync.Mutex),
	}
}

// Create tokenizes the text once and persists a new session with the
// cursor at zero. Returns domain.ErrEmptyText when the text yields no
// tokens; nothing is persisted in that case.
func (s *SessionService) Create(text, name string) (*domain.ReadingSession, error) {
	tokens, err := tokenizer.Tokenize(text)
	if err != nil {
		return nil, err
	}

	if name == "" {
		name = DefaultSessionName
	}

	session := &domain.ReadingSession{
		ID:        uuid.NewString(),
		Name:      name,
		Tokens:    tokens,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.sessions.Create(session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	s.logger.Info("Reading session created",
		zap.String("session_id", session.ID),
		zap.Int("total_words", len(tokens)),
	)

	return session, nil
}

// Get returns the session state
func (s *SessionService) Get(id string) (*domain.ReadingSession, error) {
	return s.sessions.Get(id)
}

// Recent returns the most recently created sessions
func (s *SessionService) Recent() ([]domain.ReadingSession, error) {
	return s.sessions.ListRecent(recentSessionLimit)
}

// SubmitHypothesis matches one recognized hypothesis against the word
// at the cursor. A correct verdict advances the cursor and may complete
// the session; incorrect and uncertain verdicts hold it. Every attempt
// appends a progress entry regardless of verdict.
func (s *SessionService) SubmitHypothesis(id, text string, confidence float64) (*AttemptResult, error) {
	if confidence < 0 || confidence > 1 {
		return nil, domain.ErrInvalidConfidence
	}

	unlock := s.lockSession(id)
	defer unlock()

	session, err := s.sessions.Get(id)
	if err != nil {
		return nil, err
	}
	if session.Completed() {
		return nil, domain.ErrSessionComplete
	}

	expected := session.ExpectedToken()
	verdict := s.matcher.Match(expected.Key, text, confidence)

	entry := &domain.ProgressEntry{
		SessionID:     id,
		WordIndex:     session.CurrentWordIndex,
		ExpectedWord:  expected.Display,
		SpokenWord:    text,
		IsCorrect:     verdict == domain.VerdictCorrect,
		RetryEligible: verdict == domain.VerdictUncertain,
		Confidence:    confidence,
		Timestamp:     time.Now().UTC(),
	}

	newCursor := session.CurrentWordIndex
	var completedAt *time.Time
	if verdict == domain.VerdictCorrect {
		newCursor++
		if newCursor == session.TotalWords() {
			now := time.Now().UTC()
			completedAt = &now
		}
	}

	if err := s.sessions.RecordAttempt(entry, newCursor, completedAt); err != nil {
		return nil, fmt.Errorf("record attempt: %w", err)
	}

	s.logger.Info("Hypothesis processed",
		zap.String("session_id", id),
		zap.Int("word_index", entry.WordIndex),
		zap.String("verdict", string(verdict)),
		zap.Float64("confidence", confidence),
	)

	return &AttemptResult{
		Verdict:   verdict,
		NewCursor: newCursor,
		Completed: completedAt != nil,
	}, nil
}

// Skip advances the cursor past the current word regardless of any
// verdict, logging an entry with an empty spoken word.
func (s *SessionService) Skip(id string) (*AttemptResult, error) {
	unlock := s.lockSession(id)
	defer unlock()

	session, err := s.sessions.Get(id)
	if err != nil {
		return nil, err
	}
	if session.Completed() {
		return nil, domain.ErrSessionComplete
	}

	expected := session.ExpectedToken()
	entry := &domain.ProgressEntry{
		SessionID:    id,
		WordIndex:    session.CurrentWordIndex,
		ExpectedWord: expected.Display,
		SpokenWord:   "",
		IsCorrect:    false,
		Timestamp:    time.Now().UTC(),
	}

	newCursor := session.CurrentWordIndex + 1
	var completedAt *time.Time
	if newCursor == session.TotalWords() {
		now := time.Now().UTC()
		completedAt = &now
	}

	if err := s.sessions.RecordAttempt(entry, newCursor, completedAt); err != nil {
		return nil, fmt.Errorf("record skip: %w", err)
	}

	s.logger.Info("Word skipped",
		zap.String("session_id", id),
		zap.Int("word_index", entry.WordIndex),
	)

	return &AttemptResult{
		Verdict:   domain.VerdictIncorrect,
		NewCursor: newCursor,
		Completed: completedAt != nil,
	}, nil
}

// Reset returns the cursor to zero and clears the completion
// timestamp. The progress log is untouched; new entries keep
// appending after it.
func (s *SessionService) Reset(id string) error {
	unlock := s.lockSession(id)
	defer unlock()

	if err := s.sessions.Reset(id); err != nil {
		return err
	}

	s.logger.Info("Session reset", zap.String("session_id", id))
	return nil
}

// Progress returns the session's progress entries, optionally bounded
// by word index. Negative bounds mean unbounded.
func (s *SessionService) Progress(id string, fromIndex, toIndex int) ([]domain.ProgressEntry, error) {
	if _, err := s.sessions.Get(id); err != nil {
		return nil, err
	}
	return s.progress.ListBySession(id, fromIndex, toIndex)
}

// lockSession acquires the mutex for one session, creating it on first
// use, and returns the unlock function.
func (s *SessionService) lockSession(id string) func() {
	s.locksMu.Lock()
	lock, exists := s.locks[id]
	if !exists {
		lock = &sync.Mutex{}
		s.locks[id] = lock
	}
	s.locksMu.Unlock()

	lock.Lock()
	return lock.Unlock
}
