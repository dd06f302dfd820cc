package service

import (
	"testing"

	"github.com/gitachi143/speechReader/internal/testutil"

	"github.com/stretchr/testify/assert"
)

func TestAuthService_CheckPassword(t *testing.T) {
	tests := []struct {
		name           string
		password       string
		input          string
		expectedResult bool
	}{
		{
			name:           "correct password",
			password:       "secret123",
			input:          "secret123",
			expectedResult: true,
		},
		{
			name:           "incorrect password",
			password:       "secret123",
			input:          "wrong",
			expectedResult: false,
		},
		{
			name:           "empty input",
			password:       "secret123",
			input:          "",
			expectedResult: false,
		},
		{
			name:           "case sensitive",
			password:       "Secret123",
			input:          "secret123",
			expectedResult: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(testutil.MockUserRepository)
			service := NewAuthService(mockRepo, tt.password)

			assert.Equal(t, tt.expectedResult, service.CheckPassword(tt.input))
		})
	}
}

func TestAuthService_IsAuthorized(t *testing.T) {
	mockRepo := new(testutil.MockUserRepository)
	mockRepo.On("IsAuthorized", int64(123)).Return(true, nil)

	service := NewAuthService(mockRepo, "password")

	authorized, err := service.IsAuthorized(123)

	assert.NoError(t, err)
	assert.True(t, authorized)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_AuthorizeUser(t *testing.T) {
	mockRepo := new(testutil.MockUserRepository)
	mockRepo.On("AuthorizeUser", int64(123)).Return(nil)

	service := NewAuthService(mockRepo, "password")

	assert.NoError(t, service.AuthorizeUser(123))
	mockRepo.AssertExpectations(t)
}

func TestAuthService_EnsureUserExists(t *testing.T) {
	mockRepo := new(testutil.MockUserRepository)
	mockRepo.On("EnsureUserExists", int64(123)).Return(nil)

	service := NewAuthService(mockRepo, "password")

	assert.NoError(t, service.EnsureUserExists(123))
	mockRepo.AssertExpectations(t)
}
