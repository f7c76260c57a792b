package services

import (
	"context"
	"fmt"

	portsrepo "github.com/loopyard/loyalty_backend/internal/core/ports/repositories"
	portssvc "github.com/loopyard/loyalty_backend/internal/core/ports/services"
	"github.com/loopyard/loyalty_backend/internal/dto"
)

type ledgerService struct {
	BaseService
	ledgerRepo portsrepo.LedgerRepositoryFacade
	userRepo   portsrepo.UserRepositoryFacade
	venues     portssvc.VenueOwnershipVerifier
}

// NewLedgerService creates the ledger read service.
func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade, userRepo portsrepo.UserRepositoryFacade, venues portssvc.VenueOwnershipVerifier) portssvc.LedgerSvcFacade {
	return &ledgerService{ledgerRepo: ledgerRepo, userRepo: userRepo, venues: venues}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

func (s *ledgerService) ListMyEntries(ctx context.Context, userID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	entries, nextToken, err := s.ledgerRepo.ListEntriesByUser(ctx, userID, params.Limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	return &dto.ListEntriesResponse{
		Entries:   dto.ToEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}

func (s *ledgerService) ListVenueEntries(ctx context.Context, userID string, venueID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	if err := s.venues.VerifyVenueOwnership(ctx, venueID, userID); err != nil {
		return nil, err
	}

	entries, nextToken, err := s.ledgerRepo.ListEntriesByVenue(ctx, venueID, params.Limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list venue entries: %w", err)
	}
	return &dto.ListEntriesResponse{
		Entries:   dto.ToEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}

func (s *ledgerService) GetBalance(ctx context.Context, userID string) (int64, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to get balance: %w", err)
	}
	return user.PointsBalance, nil
}

func (s *ledgerService) RecomputeBalance(ctx context.Context, userID string) (int64, error) {
	sum, err := s.ledgerRepo.SumPointsDeltaByUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to recompute balance: %w", err)
	}
	return sum, nil
}
