package postgres

import (
	"database/sql"
	"time"

	"github.com/gitachi143/speechReader/internal/domain"

	"github.com/lib/pq"
)

// SessionRepo implements repository.SessionRepository
type SessionRepo struct {
	db *sql.DB
}

// NewSessionRepo creates a new session repository
func NewSessionRepo(db *sql.DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// Create persists a new reading session with its immutable token list
func (r *SessionRepo) Create(session *domain.ReadingSession) error {
	displays := make([]string, len(session.Tokens))
	keys := make([]string, len(session.Tokens))
	for i, tok := range session.Tokens {
		displays[i] = tok.Display
		keys[i] = tok.Key
	}

	query := `
		INSERT INTO reading_sessions (id, name, display_words, word_keys, current_word_index, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(query,
		session.ID,
		session.Name,
		pq.Array(displays),
		pq.Array(keys),
		session.CurrentWordIndex,
		session.CreatedAt,
	)
	return err
}

// Get returns a session by id
func (r *SessionRepo) Get(id string) (*domain.ReadingSession, error) {
	query := `
		SELECT id, name, display_words, word_keys, current_word_index, created_at, completed_at
		FROM reading_sessions
		WHERE id = $1
	`

	var s domain.ReadingSession
	var displays, keys []string
	var completedAt sql.NullTime
	err := r.db.QueryRow(query, id).Scan(
		&s.ID, &s.Name, pq.Array(&displays), pq.Array(&keys), &s.CurrentWordIndex, &s.CreatedAt, &completedAt,
	)

	if err == sql.ErrNoRows {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	s.Tokens = make([]domain.Token, len(displays))
	for i := range displays {
		s.Tokens[i] = domain.Token{Display: displays[i], Key: keys[i]}
	}
	if completedAt.Valid {
		s.CompletedAt = &completedAt.Time
	}

	return &s, nil
}

// ListRecent returns the most recently created sessions
func (r *SessionRepo) ListRecent(limit int) ([]domain.ReadingSession, error) {
	query := `
		SELECT id, name, display_words, word_keys, current_word_index, created_at, completed_at
		FROM reading_sessions
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []domain.ReadingSession
	for rows.Next() {
		var s domain.ReadingSession
		var displays, keys []string
		var completedAt sql.NullTime
		if err := rows.Scan(&s.ID, &s.Name, pq.Array(&displays), pq.Array(&keys), &s.CurrentWordIndex, &s.CreatedAt, &completedAt); err != nil {
			return nil, err
		}
		s.Tokens = make([]domain.Token, len(displays))
		for i := range displays {
			s.Tokens[i] = domain.Token{Display: displays[i], Key: keys[i]}
		}
		if completedAt.Valid {
			s.CompletedAt = &completedAt.Time
		}
		sessions = append(sessions, s)
	}

	return sessions, rows.Err()
}

// RecordAttempt appends a progress entry and applies the cursor and
// completion change in one transaction
func (r *SessionRepo) RecordAttempt(entry *domain.ProgressEntry, newCursor int, completedAt *time.Time) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	insert := `
		INSERT INTO reading_progress (session_id, word_index, expected_word, spoken_word, is_correct, retry_eligible, confidence_score, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	if _, err := tx.Exec(insert,
		entry.SessionID,
		entry.WordIndex,
		entry.ExpectedWord,
		entry.SpokenWord,
		entry.IsCorrect,
		entry.RetryEligible,
		entry.Confidence,
		entry.Timestamp,
	); err != nil {
		return err
	}

	update := `
		UPDATE reading_sessions
		SET current_word_index = $2, completed_at = $3
		WHERE id = $1
	`
	res, err := tx.Exec(update, entry.SessionID, newCursor, completedAt)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrSessionNotFound
	}

	return tx.Commit()
}

// Reset returns the cursor to zero and clears completion, keeping all
// progress entries for audit
func (r *SessionRepo) Reset(id string) error {
	query := `
		UPDATE reading_sessions
		SET current_word_index = 0, completed_at = NULL
		WHERE id = $1
	`
	res, err := r.db.Exec(query, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}
