package postgres

import (
	"database/sql"

	"github.com/gitachi143/speechReader/internal/domain"
)

// ProgressRepo implements repository.ProgressRepository
type ProgressRepo struct {
	db *sql.DB
}

// NewProgressRepo creates a new progress repository
func NewProgressRepo(db *sql.DB) *ProgressRepo {
	return &ProgressRepo{db: db}
}

// ListBySession returns progress entries for a session ordered by
// timestamp. fromIndex/toIndex bound the word index range; a negative
// bound is ignored.
func (r *ProgressRepo) ListBySession(sessionID string, fromIndex, toIndex int) ([]domain.ProgressEntry, error) {
	query := `
		SELECT id, session_id, word_index, expected_word, spoken_word, is_correct, retry_eligible, confidence_score, created_at
		FROM reading_progress
		WHERE session_id = $1
			AND ($2 < 0 OR word_index >= $2)
			AND ($3 < 0 OR word_index <= $3)
		ORDER BY created_at, id
	`

	rows, err := r.db.Query(query, sessionID, fromIndex, toIndex)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.ProgressEntry
	for rows.Next() {
		var e domain.ProgressEntry
		if err := rows.Scan(&e.ID, &e.SessionID, &e.WordIndex, &e.ExpectedWord, &e.SpokenWord, &e.IsCorrect, &e.RetryEligible, &e.Confidence, &e.Timestamp); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}
