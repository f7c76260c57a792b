package repositories

import (
	"context"

	"github.com/loopyard/loyalty_backend/internal/core/domain"
)

// ReportingRepository defines read-only aggregate queries over the ledger.
// These are eventually consistent with the latest committed entry; only the
// balance itself is strongly consistent.
type ReportingRepository interface {
	// GetEarnerSummary aggregates earned/spent totals for one user.
	GetEarnerSummary(ctx context.Context, userID string) (*domain.EarnerSummary, error)

	// GetVenueSummary aggregates customer, revenue and points totals for one venue.
	GetVenueSummary(ctx context.Context, venueID string) (*domain.VenueSummary, error)

	// ListRecentEntriesByUser retrieves the most recent entries for a user.
	ListRecentEntriesByUser(ctx context.Context, userID string, limit int) ([]domain.LedgerEntry, error)

	// ListRecentEntriesByVenue retrieves the most recent entries for a venue.
	ListRecentEntriesByVenue(ctx context.Context, venueID string, limit int) ([]domain.LedgerEntry, error)
}
