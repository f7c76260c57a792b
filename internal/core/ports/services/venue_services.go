package services

import (
	"context"

	"github.com/loopyard/loyalty_backend/internal/core/domain"
	"github.com/loopyard/loyalty_backend/internal/dto"
)

// VenueOwnershipVerifier answers whether a user is authorized to operate a
// venue. Validation and reward creation depend on this lookup rather than on
// any state embedded in the code or reward rows.
type VenueOwnershipVerifier interface {
	// VerifyVenueOwnership returns ErrForbidden when the user does not own
	// the venue, ErrNotFound when the venue does not exist.
	VerifyVenueOwnership(ctx context.Context, venueID string, userID string) error
}

// VenueSvcFacade combines venue CRUD with the ownership lookup.
type VenueSvcFacade interface {
	VenueOwnershipVerifier

	// CreateVenue registers a venue owned by the calling issuer.
	CreateVenue(ctx context.Context, ownerUserID string, req dto.CreateVenueRequest) (*domain.Venue, error)

	// GetVenueByID retrieves one active venue.
	GetVenueByID(ctx context.Context, venueID string) (*domain.Venue, error)

	// GetMyVenue retrieves the venue owned by the calling issuer.
	GetMyVenue(ctx context.Context, userID string) (*domain.Venue, error)

	// ListVenues retrieves active venues.
	ListVenues(ctx context.Context, limit, offset int) ([]domain.Venue, error)

	// SearchVenues retrieves active venues matching the term.
	SearchVenues(ctx context.Context, term string, limit int) ([]domain.Venue, error)
}
