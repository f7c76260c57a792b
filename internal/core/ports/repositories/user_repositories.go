package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/loopyard/loyalty_backend/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by their unique email address.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user.
	SaveUser(ctx context.Context, user domain.User) error

	// DeactivateUser marks a user as inactive (soft delete).
	DeactivateUser(ctx context.Context, userID string, deactivatedAt time.Time) error
}

// BalanceSupport defines the operations the atomic ledger units need against
// the user row. Both must run inside the caller's transaction: the balance
// cache is only ever mutated in the same unit that appends the ledger entry.
type BalanceSupport interface {
	// FindUserForUpdate retrieves a user and locks the row for update.
	FindUserForUpdate(ctx context.Context, tx pgx.Tx, userID string) (*domain.User, error)

	// AdjustBalanceInTx applies a signed points delta to the user's cached
	// balance within the given transaction.
	AdjustBalanceInTx(ctx context.Context, tx pgx.Tx, userID string, delta int64, now time.Time) error
}

// UserRepositoryFacade combines all user-related repository interfaces.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
	BalanceSupport
}
