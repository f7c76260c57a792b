package services

import (
	"context"

	"github.com/loopyard/loyalty_backend/internal/core/domain"
	"github.com/loopyard/loyalty_backend/internal/dto"
)

// UserSvcFacade covers registration, credential checks and profile reads.
type UserSvcFacade interface {
	// Register creates a new user with the requested role.
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)

	// Authenticate verifies email and password, returning the user on success.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)

	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}
