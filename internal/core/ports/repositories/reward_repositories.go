package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/loopyard/loyalty_backend/internal/core/domain"
)

// RewardReader defines read operations for reward catalog data
type RewardReader interface {
	// FindRewardByID retrieves a specific reward.
	FindRewardByID(ctx context.Context, rewardID string) (*domain.Reward, error)

	// ListActiveRewards retrieves all active rewards across venues.
	ListActiveRewards(ctx context.Context, limit int, offset int) ([]domain.Reward, error)

	// ListRewardsByVenue retrieves the active rewards offered by a venue.
	ListRewardsByVenue(ctx context.Context, venueID string) ([]domain.Reward, error)

	// ListAffordableRewards retrieves active rewards costing at most the
	// given balance.
	ListAffordableRewards(ctx context.Context, balance int64) ([]domain.Reward, error)
}

// RewardWriter defines write operations for reward catalog data
type RewardWriter interface {
	// SaveReward persists a new reward.
	SaveReward(ctx context.Context, reward domain.Reward) error

	// UpdateReward updates an existing reward's details.
	UpdateReward(ctx context.Context, reward domain.Reward) error
}

// RedemptionSupport defines the redemption-link step of the redeem unit.
type RedemptionSupport interface {
	// SaveRedemptionInTx inserts the redemption link within the caller's
	// transaction, alongside the REDEEM ledger entry it references.
	SaveRedemptionInTx(ctx context.Context, tx pgx.Tx, redemption domain.Redemption) error
}

// RewardRepositoryFacade combines all reward-related repository interfaces.
type RewardRepositoryFacade interface {
	RewardReader
	RewardWriter
	RedemptionSupport
}
