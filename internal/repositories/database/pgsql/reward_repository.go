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

type PgxRewardRepository struct {
	BaseRepository
}

func newPgxRewardRepository(pool *pgxpool.Pool) portsrepo.RewardRepositoryFacade {
	return &PgxRewardRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxRewardRepository implements portsrepo.RewardRepositoryFacade
var _ portsrepo.RewardRepositoryFacade = (*PgxRewardRepository)(nil)

func toModelReward(d domain.Reward) models.Reward {
	return models.Reward{
		RewardID:    d.RewardID,
		VenueID:     d.VenueID,
		Name:        d.Name,
		Description: d.Description,
		PointsCost:  d.PointsCost,
		IsActive:    d.IsActive,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainReward(m models.Reward) domain.Reward {
	return domain.Reward{
		RewardID:    m.RewardID,
		VenueID:     m.VenueID,
		Name:        m.Name,
		Description: m.Description,
		PointsCost:  m.PointsCost,
		IsActive:    m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

const rewardColumns = `reward_id, venue_id, name, description, points_cost, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanReward(row pgx.Row) (models.Reward, error) {
	var m models.Reward
	err := row.Scan(
		&m.RewardID,
		&m.VenueID,
		&m.Name,
		&m.Description,
		&m.PointsCost,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func (r *PgxRewardRepository) SaveReward(ctx context.Context, reward domain.Reward) error {
	m := toModelReward(reward)
	query := `
        INSERT INTO rewards (reward_id, venue_id, name, description, points_cost, is_active, created_at, created_by, last_updated_at, last_updated_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
    `
	_, err := r.Pool.Exec(ctx, query,
		m.RewardID,
		m.VenueID,
		m.Name,
		m.Description,
		m.PointsCost,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save reward: %w", err)
	}
	return nil
}

func (r *PgxRewardRepository) UpdateReward(ctx context.Context, reward domain.Reward) error {
	m := toModelReward(reward)
	query := `
		UPDATE rewards
		SET name = $2, description = $3, points_cost = $4, is_active = $5, last_updated_at = $6, last_updated_by = $7
		WHERE reward_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.RewardID,
		m.Name,
		m.Description,
		m.PointsCost,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update reward %s: %w", reward.RewardID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxRewardRepository) FindRewardByID(ctx context.Context, rewardID string) (*domain.Reward, error) {
	query := `SELECT ` + rewardColumns + ` FROM rewards WHERE reward_id = $1;`

	m, err := scanReward(r.Pool.QueryRow(ctx, query, rewardID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find reward %s: %w", rewardID, err)
	}

	d := toDomainReward(m)
	return &d, nil
}

func (r *PgxRewardRepository) ListActiveRewards(ctx context.Context, limit int, offset int) ([]domain.Reward, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
        SELECT ` + rewardColumns + `
        FROM rewards
        WHERE is_active = TRUE
        ORDER BY points_cost ASC, name ASC
        LIMIT $1 OFFSET $2;
    `
	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query rewards: %w", err)
	}
	defer rows.Close()

	return collectRewards(rows)
}

func (r *PgxRewardRepository) ListRewardsByVenue(ctx context.Context, venueID string) ([]domain.Reward, error) {
	query := `
        SELECT ` + rewardColumns + `
        FROM rewards
        WHERE venue_id = $1 AND is_active = TRUE
        ORDER BY points_cost ASC, name ASC;
    `
	rows, err := r.Pool.Query(ctx, query, venueID)
	if err != nil {
		return nil, fmt.Errorf("failed to query rewards for venue %s: %w", venueID, err)
	}
	defer rows.Close()

	return collectRewards(rows)
}

func (r *PgxRewardRepository) ListAffordableRewards(ctx context.Context, balance int64) ([]domain.Reward, error) {
	query := `
        SELECT ` + rewardColumns + `
        FROM rewards
        WHERE is_active = TRUE AND points_cost <= $1
        ORDER BY points_cost ASC, name ASC;
    `
	rows, err := r.Pool.Query(ctx, query, balance)
	if err != nil {
		return nil, fmt.Errorf("failed to query affordable rewards: %w", err)
	}
	defer rows.Close()

	return collectRewards(rows)
}

// SaveRedemptionInTx inserts the redemption link inside the caller's
// transaction. The unique constraint on entry_id enforces the one-to-one
// link between a REDEEM entry and its redemption.
func (r *PgxRewardRepository) SaveRedemptionInTx(ctx context.Context, tx pgx.Tx, redemption domain.Redemption) error {
	query := `
        INSERT INTO redemptions (redemption_id, entry_id, reward_id, created_at)
        VALUES ($1, $2, $3, $4);
    `
	_, err := tx.Exec(ctx, query,
		redemption.RedemptionID,
		redemption.EntryID,
		redemption.RewardID,
		redemption.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation on entry_id
				return fmt.Errorf("%w: entry already linked to a redemption", apperrors.ErrDuplicate)
			}
		}
		return fmt.Errorf("failed to save redemption %s: %w", redemption.RedemptionID, err)
	}
	return nil
}

func collectRewards(rows pgx.Rows) ([]domain.Reward, error) {
	rewards := []domain.Reward{}
	for rows.Next() {
		m, err := scanReward(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reward row: %w", err)
		}
		rewards = append(rewards, toDomainReward(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating reward rows: %w", rows.Err())
	}
	return rewards, nil
}
