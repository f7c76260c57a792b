package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/loopyard/loyalty_backend/internal/apperrors"
	"github.com/loopyard/loyalty_backend/internal/core/domain"
	portsrepo "github.com/loopyard/loyalty_backend/internal/core/ports/repositories"
	"github.com/loopyard/loyalty_backend/internal/models"
)

type PgxVenueRepository struct {
	BaseRepository
}

func newPgxVenueRepository(pool *pgxpool.Pool) portsrepo.VenueRepositoryFacade {
	return &PgxVenueRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxVenueRepository implements portsrepo.VenueRepositoryFacade
var _ portsrepo.VenueRepositoryFacade = (*PgxVenueRepository)(nil)

func toModelVenue(d domain.Venue) models.Venue {
	return models.Venue{
		VenueID:     d.VenueID,
		Name:        d.Name,
		Description: d.Description,
		Address:     d.Address,
		Phone:       d.Phone,
		OwnerUserID: d.OwnerUserID,
		IsActive:    d.IsActive,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainVenue(m models.Venue) domain.Venue {
	return domain.Venue{
		VenueID:     m.VenueID,
		Name:        m.Name,
		Description: m.Description,
		Address:     m.Address,
		Phone:       m.Phone,
		OwnerUserID: m.OwnerUserID,
		IsActive:    m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const venueColumns = `venue_id, name, description, address, phone, owner_user_id, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanVenue(row pgx.Row) (models.Venue, error) {
	var m models.Venue
	err := row.Scan(
		&m.VenueID,
		&m.Name,
		&m.Description,
		&m.Address,
		&m.Phone,
		&m.OwnerUserID,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxVenueRepository) SaveVenue(ctx context.Context, venue domain.Venue) error {
	m := toModelVenue(venue)
	query := `
        INSERT INTO venues (venue_id, name, description, address, phone, owner_user_id, is_active, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
    `
	_, err := r.Pool.Exec(ctx, query,
		m.VenueID,
		m.Name,
		m.Description,
		m.Address,
		m.Phone,
		m.OwnerUserID,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation: one venue per owner
				return fmt.Errorf("%w: user already owns a venue", apperrors.ErrDuplicate)
			}
		}
		return fmt.Errorf("failed to save venue: %w", err)
	}
	return nil
}

func (r *PgxVenueRepository) UpdateVenue(ctx context.Context, venue domain.Venue) error {
	m := toModelVenue(venue)
	query := `
		UPDATE venues
		SET name = $2, description = $3, address = $4, phone = $5, is_active = $6, last_updated_at = $7, last_updated_by = $8
		WHERE venue_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.VenueID,
		m.Name,
		m.Description,
		m.Address,
		m.Phone,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update venue %s: %w", venue.VenueID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxVenueRepository) FindVenueByID(ctx context.Context, venueID string) (*domain.Venue, error) {
	query := `SELECT ` + venueColumns + ` FROM venues WHERE venue_id = $1;`

	m, err := scanVenue(r.Pool.QueryRow(ctx, query, venueID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find venue by ID %s: %w", venueID, err)
	}

	d := toDomainVenue(m)
	return &d, nil
}

func (r *PgxVenueRepository) FindVenueByOwner(ctx context.Context, ownerUserID string) (*domain.Venue, error) {
	query := `SELECT ` + venueColumns + ` FROM venues WHERE owner_user_id = $1;`

	m, err := scanVenue(r.Pool.QueryRow(ctx, query, ownerUserID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find venue by owner %s: %w", ownerUserID, err)
	}

	d := toDomainVenue(m)
	return &d, nil
}

func (r *PgxVenueRepository) ListActiveVenues(ctx context.Context, limit int, offset int) ([]domain.Venue, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
        SELECT ` + venueColumns + `
        FROM venues
        WHERE is_active = TRUE
        ORDER BY name ASC
        LIMIT $1 OFFSET $2;
    `
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query venues: %w", err)
	}
	defer rows.Close()

	return collectVenues(rows)
}

func (r *PgxVenueRepository) SearchVenues(ctx context.Context, term string, limit int) ([]domain.Venue, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
        SELECT ` + venueColumns + `
        FROM venues
        WHERE is_active = TRUE AND (name ILIKE '%' || $1 || '%' OR address ILIKE '%' || $1 || '%')
        ORDER BY name ASC
        LIMIT $2;
    `
	rows, err := r.Pool.Query(ctx, query, term, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search venues: %w", err)
	}
	defer rows.Close()

	return collectVenues(rows)
}

func collectVenues(rows pgx.Rows) ([]domain.Venue, error) {
	venues := []domain.Venue{}
	for rows.Next() {
		m, err := scanVenue(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan venue row: %w", err)
		}
		venues = append(venues, toDomainVenue(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating venue rows: %w", rows.Err())
	}
	return venues, nil
}
