package services

import (
	"context"

	"github.com/loopyard/loyalty_backend/internal/dto"
)

// LedgerSvcFacade exposes read access to the points ledger and balance.
type LedgerSvcFacade interface {
	// ListMyEntries retrieves the caller's own ledger entries, paginated.
	ListMyEntries(ctx context.Context, userID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)

	// ListVenueEntries retrieves a venue's entries; the caller must own the venue.
	ListVenueEntries(ctx context.Context, userID string, venueID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)

	// GetBalance returns the caller's current points balance.
	GetBalance(ctx context.Context, userID string) (int64, error)

	// RecomputeBalance derives the balance by summing the user's ledger
	// entry deltas. It must always equal GetBalance for the same user.
	RecomputeBalance(ctx context.Context, userID string) (int64, error)
}
