package services

import (
	"context"

	"github.com/loopyard/loyalty_backend/internal/core/domain"
	"github.com/loopyard/loyalty_backend/internal/dto"
)

// RewardSvcFacade covers the reward catalog and the redemption engine.
type RewardSvcFacade interface {
	// CreateReward adds a catalog item to a venue the caller owns.
	CreateReward(ctx context.Context, userID string, req dto.CreateRewardRequest) (*domain.Reward, error)

	// GetRewardByID retrieves one reward.
	GetRewardByID(ctx context.Context, userID string, rewardID string) (*dto.RewardResponse, error)

	// ListRewards retrieves all active rewards.
	ListRewards(ctx context.Context, userID string, limit, offset int) ([]dto.RewardResponse, error)

	// ListRewardsByVenue retrieves a venue's active rewards.
	ListRewardsByVenue(ctx context.Context, userID string, venueID string) ([]dto.RewardResponse, error)

	// ListAffordableRewards retrieves the rewards the earner can afford now.
	ListAffordableRewards(ctx context.Context, earnerUserID string) ([]dto.RewardResponse, error)

	// RedeemReward spends points on a reward: affordability check, debit and
	// redemption link happen as one atomic unit keyed by the earner's balance.
	RedeemReward(ctx context.Context, earnerUserID string, req dto.RedeemRewardRequest) (*domain.LedgerEntry, error)
}
