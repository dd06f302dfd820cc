package service

import (
	"github.com/gitachi143/speechReader/internal/repository"
)

// AuthService gates the Telegram front-end behind a shared password
type AuthService struct {
	userRepo repository.UserRepository
	password string
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, password string) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		password: password,
	}
}

// CheckPassword verifies the provided password
func (s *AuthService) CheckPassword(password string) bool {
	return password == s.password
}

// IsAuthorized checks if a bot user has unlocked the reader
func (s *AuthService) IsAuthorized(userID int64) (bool, error) {
	return s.userRepo.IsAuthorized(userID)
}

// AuthorizeUser marks a bot user as authorized
func (s *AuthService) AuthorizeUser(userID int64) error {
	return s.userRepo.AuthorizeUser(userID)
}

// EnsureUserExists creates the user record if it is missing
func (s *AuthService) EnsureUserExists(userID int64) error {
	return s.userRepo.EnsureUserExists(userID)
}
