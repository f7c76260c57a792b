package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind indicates whether a ledger entry credits or debits points.
type EntryKind string

const (
	EntryEarn   EntryKind = "EARN"
	EntryRedeem EntryKind = "REDEEM"
)

// LedgerEntry is an immutable record of a balance-affecting event. Entries
// are append-only: once created they are never mutated or deleted, and a
// user's cached balance must always equal the sum of their PointsDelta
// values.
type LedgerEntry struct {
	EntryID     string          `json:"entryID"`
	UserID      string          `json:"userID"`
	VenueID     string          `json:"venueID"`
	Amount      decimal.Decimal `json:"amount"` // monetary amount, zero for redemptions
	PointsDelta int64           `json:"pointsDelta"`
	Kind        EntryKind       `json:"kind"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// IsEarn reports whether the entry credits points.
func (e *LedgerEntry) IsEarn() bool {
	return e.Kind == EntryEarn
}

// IsRedeem reports whether the entry debits points.
func (e *LedgerEntry) IsRedeem() bool {
	return e.Kind == EntryRedeem
}
