package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/loopyard/loyalty_backend/internal/core/domain"
)

// EntryResponse defines the data returned for a ledger entry.
type EntryResponse struct {
	EntryID     string          `json:"entryID"`
	UserID      string          `json:"userID"`
	VenueID     string          `json:"venueID"`
	Amount      decimal.Decimal `json:"amount"`
	PointsDelta int64           `json:"pointsDelta"`
	Kind        string          `json:"kind"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ListEntriesParams holds pagination parameters for entry listings.
type ListEntriesParams struct {
	Limit     int
	NextToken *string
}

// ListEntriesResponse is a page of ledger entries plus the next-page token.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToEntryResponse converts a domain.LedgerEntry to an EntryResponse DTO.
func ToEntryResponse(e *domain.LedgerEntry) EntryResponse {
	return EntryResponse{
		EntryID:     e.EntryID,
		UserID:      e.UserID,
		VenueID:     e.VenueID,
		Amount:      e.Amount,
		PointsDelta: e.PointsDelta,
		Kind:        string(e.Kind),
		Description: e.Description,
		CreatedAt:   e.CreatedAt,
	}
}

// ToEntryResponses converts a slice of domain.LedgerEntry to []EntryResponse.
func ToEntryResponses(entries []domain.LedgerEntry) []EntryResponse {
	responses := make([]EntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = ToEntryResponse(&e)
	}
	return responses
}
