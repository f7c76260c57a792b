package repositories

import (
	"context"

	"github.com/loopyard/loyalty_backend/internal/core/domain"
)

// VenueReader defines read operations for venue data
type VenueReader interface {
	// FindVenueByID retrieves a specific venue by its unique identifier.
	FindVenueByID(ctx context.Context, venueID string) (*domain.Venue, error)

	// FindVenueByOwner retrieves the venue owned by the given user, if any.
	FindVenueByOwner(ctx context.Context, ownerUserID string) (*domain.Venue, error)

	// ListActiveVenues retrieves a paginated list of active venues.
	ListActiveVenues(ctx context.Context, limit int, offset int) ([]domain.Venue, error)

	// SearchVenues retrieves active venues whose name or address matches the term.
	SearchVenues(ctx context.Context, term string, limit int) ([]domain.Venue, error)
}

// VenueWriter defines write operations for venue data
type VenueWriter interface {
	// SaveVenue persists a new venue.
	SaveVenue(ctx context.Context, venue domain.Venue) error

	// UpdateVenue updates an existing venue's details.
	UpdateVenue(ctx context.Context, venue domain.Venue) error
}

// VenueRepositoryFacade combines all venue-related repository interfaces.
type VenueRepositoryFacade interface {
	VenueReader
	VenueWriter
}
