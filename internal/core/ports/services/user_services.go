package services

import (
	"context"

	"github.com/honeymoneyapp/honeymoney_backend/internal/core/domain"
	"github.com/honeymoneyapp/honeymoney_backend/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a specific user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// GetUserByEmail retrieves a user by email address.
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// CreateUser registers a new user with a hashed password.
	CreateUser(ctx context.Context, req dto.CreateUserRequest) (*domain.User, error)

	// UpdateUser updates an existing user's profile details.
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error)

	// DeactivateUser marks a user as inactive.
	DeactivateUser(ctx context.Context, userID string) error
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
}

// AuthSvc defines authentication operations
type AuthSvc interface {
	// Login verifies credentials and issues a signed token.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)

	// VerifyToken validates a token and returns the subject user ID.
	VerifyToken(ctx context.Context, token string) (string, error)
}
