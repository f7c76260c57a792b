package repositories

import (
	"context"

	"github.com/loopyard/loyalty_backend/internal/core/domain"
)

// LedgerReader defines read operations for ledger entries
type LedgerReader interface {
	// FindEntryByID retrieves a specific ledger entry.
	FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error)

	// ListEntriesByUser retrieves a paginated list of a user's entries, most
	// recent first, using token-based pagination.
	ListEntriesByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)

	// ListEntriesByVenue retrieves a paginated list of entries recorded at a
	// venue, most recent first.
	ListEntriesByVenue(ctx context.Context, venueID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)

	// SumPointsDeltaByUser recomputes a user's balance from the ledger. Used
	// to audit the cached balance; the two must always agree.
	SumPointsDeltaByUser(ctx context.Context, userID string) (int64, error)
}

// LedgerWriter defines the two atomic posting units. Entries are append-only
// and are never written outside these units.
type LedgerWriter interface {
	// PostEarnEntry consumes the code and appends the EARN entry as one
	// atomic unit: conditional code consume, user row lock, entry insert,
	// balance increment. Either all four effects commit or none do.
	PostEarnEntry(ctx context.Context, code domain.Code, operatorUserID string, entry domain.LedgerEntry) error

	// PostRedeemEntry debits the balance and appends the REDEEM entry plus
	// its redemption link as one atomic unit. The debit is re-checked under
	// the user row lock and fails with ErrConflict if the balance no longer
	// affords it; the balance can never go negative.
	PostRedeemEntry(ctx context.Context, entry domain.LedgerEntry, redemption domain.Redemption) error
}

// LedgerRepositoryFacade combines all ledger-related repository interfaces.
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}
