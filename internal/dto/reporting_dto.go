package dto

import (
	"github.com/shopspring/decimal"
)

// EarnerDashboard summarizes an earner's account for the client UI.
type EarnerDashboard struct {
	PointsBalance     int64           `json:"pointsBalance"`
	TotalPointsEarned int64           `json:"totalPointsEarned"`
	TotalPointsSpent  int64           `json:"totalPointsSpent"`
	TotalEntries      int64           `json:"totalEntries"`
	RecentEntries     []EntryResponse `json:"recentEntries"`
}

// VenueDashboard summarizes activity at the operator's venue.
type VenueDashboard struct {
	Venue           VenueResponse   `json:"venue"`
	UniqueCustomers int64           `json:"uniqueCustomers"`
	TotalEntries    int64           `json:"totalEntries"`
	TotalRevenue    decimal.Decimal `json:"totalRevenue"`
	PointsGiven     int64           `json:"pointsGiven"`
	PointsRedeemed  int64           `json:"pointsRedeemed"`
	RecentEntries   []EntryResponse `json:"recentEntries"`
}
