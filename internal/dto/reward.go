package dto

import (
	"github.com/loopyard/loyalty_backend/internal/core/domain"
)

// CreateRewardRequest defines the payload for adding a catalog reward.
type CreateRewardRequest struct {
	VenueID     string `json:"venueID" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	PointsCost  int64  `json:"pointsCost" binding:"required,gt=0"`
}

// RedeemRewardRequest defines the payload for spending points on a reward.
type RedeemRewardRequest struct {
	RewardID string `json:"rewardID" binding:"required"`
}

// RewardResponse defines the data returned for a catalog reward. Affordable
// reflects the requesting earner's balance at read time.
type RewardResponse struct {
	RewardID    string `json:"rewardID"`
	VenueID     string `json:"venueID"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PointsCost  int64  `json:"pointsCost"`
	Affordable  bool   `json:"affordable"`
}

// ToRewardResponse converts a domain.Reward to a RewardResponse DTO.
func ToRewardResponse(r *domain.Reward, balance int64) RewardResponse {
	return RewardResponse{
		RewardID:    r.RewardID,
		VenueID:     r.VenueID,
		Name:        r.Name,
		Description: r.Description,
		PointsCost:  r.PointsCost,
		Affordable:  r.CanBeRedeemedWith(balance),
	}
}

// ToRewardResponses converts a slice of domain.Reward to []RewardResponse.
func ToRewardResponses(rewards []domain.Reward, balance int64) []RewardResponse {
	responses := make([]RewardResponse, len(rewards))
	for i, r := range rewards {
		responses[i] = ToRewardResponse(&r, balance)
	}
	return responses
}
