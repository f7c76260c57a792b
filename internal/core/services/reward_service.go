package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/loopyard/loyalty_backend/internal/apperrors"
	"github.com/loopyard/loyalty_backend/internal/core/domain"
	portsrepo "github.com/loopyard/loyalty_backend/internal/core/ports/repositories"
	portssvc "github.com/loopyard/loyalty_backend/internal/core/ports/services"
	"github.com/loopyard/loyalty_backend/internal/dto"
	"github.com/loopyard/loyalty_backend/internal/metrics"
)

type rewardService struct {
	BaseService
	rewardRepo portsrepo.RewardRepositoryFacade
	userRepo   portsrepo.UserRepositoryFacade
	ledgerRepo portsrepo.LedgerRepositoryFacade
	venues     portssvc.VenueOwnershipVerifier
	notifier   portssvc.Notifier
	metrics    *metrics.LoyaltyMetrics
}

// NewRewardService creates the reward catalog and redemption service.
func NewRewardService(
	rewardRepo portsrepo.RewardRepositoryFacade,
	userRepo portsrepo.UserRepositoryFacade,
	ledgerRepo portsrepo.LedgerRepositoryFacade,
	venues portssvc.VenueOwnershipVerifier,
	notifier portssvc.Notifier,
	loyaltyMetrics *metrics.LoyaltyMetrics,
) portssvc.RewardSvcFacade {
	return &rewardService{
		rewardRepo: rewardRepo,
		userRepo:   userRepo,
		ledgerRepo: ledgerRepo,
		venues:     venues,
		notifier:   notifier,
		metrics:    loyaltyMetrics,
	}
}

var _ portssvc.RewardSvcFacade = (*rewardService)(nil)

func (s *rewardService) CreateReward(ctx context.Context, userID string, req dto.CreateRewardRequest) (*domain.Reward, error) {
	if err := s.venues.VerifyVenueOwnership(ctx, req.VenueID, userID); err != nil {
		return nil, err
	}

	now := time.Now()
	reward := domain.Reward{
		RewardID:    uuid.NewString(),
		VenueID:     req.VenueID,
		Name:        req.Name,
		Description: req.Description,
		PointsCost:  req.PointsCost,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.rewardRepo.SaveReward(ctx, reward); err != nil {
		return nil, fmt.Errorf("failed to create reward: %w", err)
	}

	s.LogInfo(ctx, "Reward created", "reward_id", reward.RewardID, "venue_id", reward.VenueID)
	return &reward, nil
}

func (s *rewardService) GetRewardByID(ctx context.Context, userID string, rewardID string) (*dto.RewardResponse, error) {
	reward, err := s.rewardRepo.FindRewardByID(ctx, rewardID)
	if err != nil {
		return nil, fmt.Errorf("failed to get reward: %w", err)
	}

	balance, err := s.balanceOf(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := dto.ToRewardResponse(reward, balance)
	return &resp, nil
}

func (s *rewardService) ListRewards(ctx context.Context, userID string, limit, offset int) ([]dto.RewardResponse, error) {
	rewards, err := s.rewardRepo.ListActiveRewards(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list rewards: %w", err)
	}

	balance, err := s.balanceOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.ToRewardResponses(rewards, balance), nil
}

func (s *rewardService) ListRewardsByVenue(ctx context.Context, userID string, venueID string) ([]dto.RewardResponse, error) {
	rewards, err := s.rewardRepo.ListRewardsByVenue(ctx, venueID)
	if err != nil {
		return nil, fmt.Errorf("failed to list venue rewards: %w", err)
	}

	balance, err := s.balanceOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.ToRewardResponses(rewards, balance), nil
}

func (s *rewardService) ListAffordableRewards(ctx context.Context, earnerUserID string) ([]dto.RewardResponse, error) {
	balance, err := s.balanceOf(ctx, earnerUserID)
	if err != nil {
		return nil, err
	}

	rewards, err := s.rewardRepo.ListAffordableRewards(ctx, balance)
	if err != nil {
		return nil, fmt.Errorf("failed to list affordable rewards: %w", err)
	}
	return dto.ToRewardResponses(rewards, balance), nil
}

// RedeemReward spends points on a reward. The upfront affordability check is
// advisory only; the authoritative check happens in the posting unit under
// the user's row lock.
func (s *rewardService) RedeemReward(ctx context.Context, earnerUserID string, req dto.RedeemRewardRequest) (*domain.LedgerEntry, error) {
	earner, err := s.userRepo.FindUserByID(ctx, earnerUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up earner: %w", err)
	}
	if !earner.IsEarner() {
		return nil, fmt.Errorf("%w: only earners can redeem rewards", apperrors.ErrForbidden)
	}

	reward, err := s.rewardRepo.FindRewardByID(ctx, req.RewardID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up reward: %w", err)
	}
	if !reward.IsActive {
		return nil, apperrors.ErrNotFound
	}

	if !reward.CanBeRedeemedWith(earner.PointsBalance) {
		return nil, fmt.Errorf("%w: insufficient balance for reward", apperrors.ErrConflict)
	}

	now := time.Now()
	entry := domain.LedgerEntry{
		EntryID:     uuid.NewString(),
		UserID:      earnerUserID,
		VenueID:     reward.VenueID,
		Amount:      decimal.Zero,
		PointsDelta: -reward.PointsCost,
		Kind:        domain.EntryRedeem,
		Description: fmt.Sprintf("Redeemed: %s", reward.Name),
		CreatedAt:   now,
	}
	redemption := domain.Redemption{
		RedemptionID: uuid.NewString(),
		EntryID:      entry.EntryID,
		RewardID:     reward.RewardID,
		CreatedAt:    now,
	}

	if err := s.ledgerRepo.PostRedeemEntry(ctx, entry, redemption); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			// Balance changed between the check and the debit.
			return nil, fmt.Errorf("%w: insufficient balance for reward", apperrors.ErrConflict)
		}
		return nil, fmt.Errorf("failed to post redeem entry: %w", err)
	}

	s.metrics.RecordRedemption(reward.PointsCost)
	s.LogInfo(ctx, "Reward redeemed", "reward_id", reward.RewardID, "points", reward.PointsCost)

	if updated, err := s.userRepo.FindUserByID(ctx, earnerUserID); err == nil {
		s.notifier.NotifyPointsUpdate(earnerUserID, string(domain.EntryRedeem), reward.PointsCost, updated.PointsBalance)
	}

	return &entry, nil
}

func (s *rewardService) balanceOf(ctx context.Context, userID string) (int64, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to look up user balance: %w", err)
	}
	return user.PointsBalance, nil
}
