package services

import (
	"context"

	"github.com/shopspring/decimal"
)

// RenderResult is the rendering collaborator's answer to a generate call.
type RenderResult struct {
	Success   bool   `json:"success"`
	ImageData string `json:"qr_image_data"`
	Message   string `json:"message"`
}

// VerifyResult is the rendering collaborator's answer to a verify call.
type VerifyResult struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason"`
}

// CodeRenderer is the external code-to-image collaborator. Both calls are
// synchronous network calls with a client-side timeout and no retry;
// transport failures surface as errors, which callers map to
// ErrServiceUnavailable. Renderer calls always happen outside the atomic
// code/ledger mutation units.
type CodeRenderer interface {
	// Generate asks the collaborator to render an image for the code.
	Generate(ctx context.Context, code string, venueID string, amount decimal.Decimal) (*RenderResult, error)

	// Verify asks the collaborator to check the code's authenticity.
	Verify(ctx context.Context, code string) (*VerifyResult, error)
}
