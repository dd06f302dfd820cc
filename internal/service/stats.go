package service

import (
	"time"

	"github.com/gitachi143/speechReader/internal/domain"
	"github.com/gitachi143/speechReader/internal/repository"

	"go.uber.org/zap"
)

// StatsService derives reading statistics from the progress log
type StatsService struct {
	sessions repository.SessionRepository
	progress repository.ProgressRepository
	logger   *zap.Logger
}

// NewStatsService creates a new stats service
func NewStatsService(
	sessions repository.SessionRepository,
	progress repository.ProgressRepository,
	logger *zap.Logger,
) *StatsService {
	return &StatsService{
		sessions: sessions,
		progress: progress,
		logger:   logger,
	}
}

// SessionStats computes accuracy and elapsed time for a session.
//
// A word index counts as attempted once it has a correct entry, a
// final incorrect entry, or a skip. Retry-eligible (uncertain) entries
// alone do not make an index attempted, since the reader was asked to
// repeat without penalty. Accuracy is correct indexes over attempted
// indexes, counted once per index rather than per retry.
func (s *StatsService) SessionStats(id string) (*domain.SessionStats, error) {
	session, err := s.sessions.Get(id)
	if err != nil {
		return nil, err
	}

	entries, err := s.progress.ListBySession(id, -1, -1)
	if err != nil {
		return nil, err
	}

	correct := make(map[int]bool)
	attempted := make(map[int]bool)
	for _, e := range entries {
		if e.IsCorrect {
			correct[e.WordIndex] = true
			attempted[e.WordIndex] = true
		} else if !e.RetryEligible {
			attempted[e.WordIndex] = true
		}
	}

	stats := &domain.SessionStats{
		TotalWords:     session.TotalWords(),
		CorrectWords:   len(correct),
		AttemptedWords: len(attempted),
		TotalAttempts:  len(entries),
	}
	if len(attempted) > 0 {
		stats.Accuracy = float64(len(correct)) / float64(len(attempted))
	}

	end := time.Now().UTC()
	if session.CompletedAt != nil {
		end = *session.CompletedAt
	}
	stats.Elapsed = end.Sub(session.CreatedAt)

	return stats, nil
}
