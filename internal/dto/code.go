package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// GenerateCodeRequest defines the payload for issuing a new code.
type GenerateCodeRequest struct {
	VenueID string          `json:"venueID" binding:"required"`
	Amount  decimal.Decimal `json:"amount" binding:"required"`
}

// ValidateCodeRequest defines the payload a venue operator submits to consume
// a code. The qrcode rule checks the token's format before any lookup.
type ValidateCodeRequest struct {
	Code string `json:"code" binding:"required,qrcode"`
}

// CodeResponse is returned after successful issuance. ImageData carries the
// rendered representation produced by the external rendering service.
type CodeResponse struct {
	Code          string          `json:"code"`
	VenueID       string          `json:"venueID"`
	Amount        decimal.Decimal `json:"amount"`
	PointsPreview int64           `json:"pointsPreview"`
	ExpiresAt     time.Time       `json:"expiresAt"`
	ImageData     string          `json:"imageData"`
}
