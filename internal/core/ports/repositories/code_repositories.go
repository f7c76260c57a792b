package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/loopyard/loyalty_backend/internal/core/domain"
)

// CodeReader defines read operations for code data
type CodeReader interface {
	// FindCodeByString retrieves a code by its unique token string.
	FindCodeByString(ctx context.Context, code string) (*domain.Code, error)

	// CodeExists reports whether a token string is already taken.
	CodeExists(ctx context.Context, code string) (bool, error)
}

// CodeWriter defines write operations for code data
type CodeWriter interface {
	// SaveCode persists a freshly issued code.
	SaveCode(ctx context.Context, code domain.Code) error

	// DeleteUsedCodesBefore removes consumed codes created before the cutoff.
	// Ledger entries are unaffected; only the spent tokens are pruned.
	DeleteUsedCodesBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// CodeTransactionSupport defines the consume step of the validation unit.
type CodeTransactionSupport interface {
	// ConsumeCodeInTx marks a code as used within the given transaction.
	// The update is conditional on the code being unconsumed; if another
	// transaction already consumed it, ErrConflict is returned and the
	// caller must roll back. This conditional update is what makes the
	// issued-to-consumed transition happen at most once.
	ConsumeCodeInTx(ctx context.Context, tx pgx.Tx, codeID string, operatorUserID string, now time.Time) error
}

// CodeRepositoryFacade combines all code-related repository interfaces.
type CodeRepositoryFacade interface {
	CodeReader
	CodeWriter
	CodeTransactionSupport
}
