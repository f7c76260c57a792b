package services

import (
	"context"
	"time"

	"github.com/loopyard/loyalty_backend/internal/core/domain"
)

// TokenSvcFacade defines the interface for token management services.
type TokenSvcFacade interface {
	// GenerateAccessToken mints a signed access token for the user, returning
	// the token string and its expiry.
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
}
