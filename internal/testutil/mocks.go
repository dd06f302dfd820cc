package testutil

import (
	"time"

	"github.com/gitachi143/speechReader/internal/domain"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock for UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) IsAuthorized(userID int64) (bool, error) {
	args := m.Called(userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) AuthorizeUser(userID int64) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockUserRepository) EnsureUserExists(userID int64) error {
	args := m.Called(userID)
	return args.Error(0)
}

// MockSessionRepository is a mock for SessionRepository
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Create(session *domain.ReadingSession) error {
	args := m.Called(session)
	return args.Error(0)
}

func (m *MockSessionRepository) Get(id string) (*domain.ReadingSession, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReadingSession), args.Error(1)
}

func (m *MockSessionRepository) ListRecent(limit int) ([]domain.ReadingSession, error) {
	args := m.Called(limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReadingSession), args.Error(1)
}

func (m *MockSessionRepository) RecordAttempt(entry *domain.ProgressEntry, newCursor int, completedAt *time.Time) error {
	args := m.Called(entry, newCursor, completedAt)
	return args.Error(0)
}

func (m *MockSessionRepository) Reset(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockProgressRepository is a mock for ProgressRepository
type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) ListBySession(sessionID string, fromIndex, toIndex int) ([]domain.ProgressEntry, error) {
	args := m.Called(sessionID, fromIndex, toIndex)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ProgressEntry), args.Error(1)
}
