package services

import (
	"context"
	"fmt"

	portsrepo "github.com/loopyard/loyalty_backend/internal/core/ports/repositories"
	portssvc "github.com/loopyard/loyalty_backend/internal/core/ports/services"
	"github.com/loopyard/loyalty_backend/internal/dto"
)

// recentEntryCount is the number of entries shown on each dashboard.
const recentEntryCount = 10

type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	venueRepo     portsrepo.VenueRepositoryFacade
}

// NewReportingService creates the dashboard service.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, venueRepo portsrepo.VenueRepositoryFacade) portssvc.ReportingSvcFacade {
	return &reportingService{reportingRepo: reportingRepo, venueRepo: venueRepo}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

func (s *reportingService) GetEarnerDashboard(ctx context.Context, userID string) (*dto.EarnerDashboard, error) {
	summary, err := s.reportingRepo.GetEarnerSummary(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to build earner dashboard: %w", err)
	}

	recent, err := s.reportingRepo.ListRecentEntriesByUser(ctx, userID, recentEntryCount)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent entries: %w", err)
	}

	return &dto.EarnerDashboard{
		PointsBalance:     summary.PointsBalance,
		TotalPointsEarned: summary.TotalPointsEarned,
		TotalPointsSpent:  summary.TotalPointsSpent,
		TotalEntries:      summary.TotalEntries,
		RecentEntries:     dto.ToEntryResponses(recent),
	}, nil
}

func (s *reportingService) GetVenueDashboard(ctx context.Context, userID string) (*dto.VenueDashboard, error) {
	venue, err := s.venueRepo.FindVenueByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up venue for dashboard: %w", err)
	}

	summary, err := s.reportingRepo.GetVenueSummary(ctx, venue.VenueID)
	if err != nil {
		return nil, fmt.Errorf("failed to build venue dashboard: %w", err)
	}

	recent, err := s.reportingRepo.ListRecentEntriesByVenue(ctx, venue.VenueID, recentEntryCount)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent venue entries: %w", err)
	}

	return &dto.VenueDashboard{
		Venue:           dto.ToVenueResponse(venue),
		UniqueCustomers: summary.UniqueCustomers,
		TotalEntries:    summary.TotalEntries,
		TotalRevenue:    summary.TotalRevenue,
		PointsGiven:     summary.PointsGiven,
		PointsRedeemed:  summary.PointsRedeemed,
		RecentEntries:   dto.ToEntryResponses(recent),
	}, nil
}
