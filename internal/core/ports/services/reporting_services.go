package services

import (
	"context"

	"github.com/loopyard/loyalty_backend/internal/dto"
)

// ReportingSvcFacade builds the dashboard views from ledger aggregates.
type ReportingSvcFacade interface {
	// GetEarnerDashboard summarizes the calling earner's account.
	GetEarnerDashboard(ctx context.Context, userID string) (*dto.EarnerDashboard, error)

	// GetVenueDashboard summarizes activity at the calling issuer's venue.
	GetVenueDashboard(ctx context.Context, userID string) (*dto.VenueDashboard, error)
}
