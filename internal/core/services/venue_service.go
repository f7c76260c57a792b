package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/loopyard/loyalty_backend/internal/apperrors"
	"github.com/loopyard/loyalty_backend/internal/core/domain"
	portsrepo "github.com/loopyard/loyalty_backend/internal/core/ports/repositories"
	portssvc "github.com/loopyard/loyalty_backend/internal/core/ports/services"
	"github.com/loopyard/loyalty_backend/internal/dto"
)

type venueService struct {
	BaseService
	venueRepo portsrepo.VenueRepositoryFacade
	userRepo  portsrepo.UserRepositoryFacade
}

// NewVenueService creates the venue service.
func NewVenueService(venueRepo portsrepo.VenueRepositoryFacade, userRepo portsrepo.UserRepositoryFacade) portssvc.VenueSvcFacade {
	return &venueService{venueRepo: venueRepo, userRepo: userRepo}
}

var _ portssvc.VenueSvcFacade = (*venueService)(nil)

func (s *venueService) CreateVenue(ctx context.Context, ownerUserID string, req dto.CreateVenueRequest) (*domain.Venue, error) {
	owner, err := s.userRepo.FindUserByID(ctx, ownerUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up venue owner: %w", err)
	}
	if !owner.IsIssuer() {
		return nil, fmt.Errorf("%w: only issuers can register venues", apperrors.ErrForbidden)
	}

	now := time.Now()
	venue := domain.Venue{
		VenueID:     uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		Phone:       req.Phone,
		OwnerUserID: ownerUserID,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     ownerUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: ownerUserID,
		},
	}

	if err := s.venueRepo.SaveVenue(ctx, venue); err != nil {
		return nil, fmt.Errorf("failed to create venue: %w", err)
	}

	s.LogInfo(ctx, "Venue created", "venue_id", venue.VenueID, "owner_user_id", ownerUserID)
	return &venue, nil
}

func (s *venueService) GetVenueByID(ctx context.Context, venueID string) (*domain.Venue, error) {
	venue, err := s.venueRepo.FindVenueByID(ctx, venueID)
	if err != nil {
		return nil, fmt.Errorf("failed to get venue by ID: %w", err)
	}
	if !venue.IsActive {
		return nil, apperrors.ErrNotFound
	}
	return venue, nil
}

func (s *venueService) GetMyVenue(ctx context.Context, userID string) (*domain.Venue, error) {
	venue, err := s.venueRepo.FindVenueByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get venue for owner: %w", err)
	}
	return venue, nil
}

func (s *venueService) ListVenues(ctx context.Context, limit, offset int) ([]domain.Venue, error) {
	venues, err := s.venueRepo.ListActiveVenues(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list venues: %w", err)
	}
	return venues, nil
}

func (s *venueService) SearchVenues(ctx context.Context, term string, limit int) ([]domain.Venue, error) {
	venues, err := s.venueRepo.SearchVenues(ctx, term, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search venues: %w", err)
	}
	return venues, nil
}

// VerifyVenueOwnership checks that the venue exists and the user owns it.
// Ownership is looked up fresh on every call; it is never inferred from
// state carried by codes or rewards.
func (s *venueService) VerifyVenueOwnership(ctx context.Context, venueID string, userID string) error {
	venue, err := s.venueRepo.FindVenueByID(ctx, venueID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to verify venue ownership: %w", err)
	}
	if !venue.IsOwnedBy(userID) {
		return fmt.Errorf("%w: user does not own venue %s", apperrors.ErrForbidden, venueID)
	}
	return nil
}
