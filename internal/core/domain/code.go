package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CodeTTL is how long a freshly issued code remains valid.
const CodeTTL = 15 * time.Minute

// Code is a short-lived, single-use token representing one pending purchase.
// It is bound to the venue it targets and the earner it was issued to, and
// transitions exactly once from issued to consumed. Validity is a computed
// predicate, not a stored state: a code is valid while it is unconsumed and
// unexpired.
type Code struct {
	CodeID       string          `json:"codeID"`
	Code         string          `json:"code"` // unique token string, "QR-" prefix
	VenueID      string          `json:"venueID"`
	IssuerUserID string          `json:"issuerUserID"` // the earner the code was issued to
	Amount       decimal.Decimal `json:"amount"`
	ExpiresAt    time.Time       `json:"expiresAt"`
	Used         bool            `json:"used"`
	UsedAt       *time.Time      `json:"usedAt,omitempty"`
	UsedByUserID *string         `json:"usedByUserID,omitempty"` // validating operator
	CreatedAt    time.Time       `json:"createdAt"`
}

// IsExpired reports whether the code's validity window has passed at the
// given instant.
func (c *Code) IsExpired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

// IsValid reports whether the code can still be consumed: not used and not
// expired.
func (c *Code) IsValid(now time.Time) bool {
	return !c.Used && !c.IsExpired(now)
}

// Points returns how many points consuming this code earns.
func (c *Code) Points() int64 {
	return CalculatePoints(c.Amount)
}

// CalculatePoints converts a monetary amount to points: one point per whole
// currency unit, fractional part discarded.
func CalculatePoints(amount decimal.Decimal) int64 {
	return amount.IntPart()
}
