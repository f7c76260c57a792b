package domain

import "github.com/shopspring/decimal"

// EarnerSummary aggregates a single earner's ledger activity.
type EarnerSummary struct {
	PointsBalance     int64 `json:"pointsBalance"`
	TotalPointsEarned int64 `json:"totalPointsEarned"`
	TotalPointsSpent  int64 `json:"totalPointsSpent"`
	TotalEntries      int64 `json:"totalEntries"`
}

// VenueSummary aggregates ledger activity observed at a single venue.
type VenueSummary struct {
	UniqueCustomers int64           `json:"uniqueCustomers"`
	TotalEntries    int64           `json:"totalEntries"`
	TotalRevenue    decimal.Decimal `json:"totalRevenue"`
	PointsGiven     int64           `json:"pointsGiven"`
	PointsRedeemed  int64           `json:"pointsRedeemed"`
}
