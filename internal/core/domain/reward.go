package domain

import "time"

// Reward is a catalog item offered by a venue in exchange for points.
type Reward struct {
	RewardID    string `json:"rewardID"`
	VenueID     string `json:"venueID"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PointsCost  int64  `json:"pointsCost"`
	IsActive    bool   `json:"isActive"`
	AuditFields
}

// CanBeRedeemedWith reports whether the given balance affords this reward.
func (r *Reward) CanBeRedeemedWith(balance int64) bool {
	return r.IsActive && balance >= r.PointsCost
}

// Redemption links a REDEEM ledger entry to the reward it purchased. The
// entry reference is unique: one debit entry backs exactly one redemption.
type Redemption struct {
	RedemptionID string    `json:"redemptionID"`
	EntryID      string    `json:"entryID"`
	RewardID     string    `json:"rewardID"`
	CreatedAt    time.Time `json:"createdAt"`
}
