package services

import (
	"context"

	"github.com/loopyard/loyalty_backend/internal/core/domain"
	"github.com/loopyard/loyalty_backend/internal/dto"
)

// CodeSvcFacade orchestrates the code lifecycle: issuance (mint a token,
// call the external renderer) and validation (consume the token and post the
// EARN ledger entry as one atomic unit).
type CodeSvcFacade interface {
	// GenerateCode issues a new single-use code for the given earner.
	// Issuance never touches the ledger.
	GenerateCode(ctx context.Context, earnerUserID string, req dto.GenerateCodeRequest) (*dto.CodeResponse, error)

	// ValidateCode consumes a code on behalf of a venue operator and credits
	// the earning account. Two concurrent validations of the same code yield
	// exactly one success; the loser observes ErrConflict.
	ValidateCode(ctx context.Context, operatorUserID string, req dto.ValidateCodeRequest) (*domain.LedgerEntry, error)

	// CleanupExpiredCodes prunes consumed codes past their retention window.
	CleanupExpiredCodes(ctx context.Context) (int64, error)
}
