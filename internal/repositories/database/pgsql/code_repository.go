package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/loopyard/loyalty_backend/internal/apperrors"
	"github.com/loopyard/loyalty_backend/internal/core/domain"
	portsrepo "github.com/loopyard/loyalty_backend/internal/core/ports/repositories"
	"github.com/loopyard/loyalty_backend/internal/models"
)

type PgxCodeRepository struct {
	BaseRepository
}

func newPgxCodeRepository(pool *pgxpool.Pool) portsrepo.CodeRepositoryFacade {
	return &PgxCodeRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxCodeRepository implements portsrepo.CodeRepositoryFacade
var _ portsrepo.CodeRepositoryFacade = (*PgxCodeRepository)(nil)

func toModelCode(d domain.Code) models.Code {
	return models.Code{
		CodeID:       d.CodeID,
		Code:         d.Code,
		VenueID:      d.VenueID,
		IssuerUserID: d.IssuerUserID,
		Amount:       d.Amount,
		ExpiresAt:    d.ExpiresAt,
		Used:         d.Used,
		UsedAt:       d.UsedAt,
		UsedByUserID: d.UsedByUserID,
		CreatedAt:    d.CreatedAt,
	}
}

func toDomainCode(m models.Code) domain.Code {
	return domain.Code{
		CodeID:       m.CodeID,
		Code:         m.Code,
		VenueID:      m.VenueID,
		IssuerUserID: m.IssuerUserID,
		Amount:       m.Amount,
		ExpiresAt:    m.ExpiresAt,
		Used:         m.Used,
		UsedAt:       m.UsedAt,
		UsedByUserID: m.UsedByUserID,
		CreatedAt:    m.CreatedAt,
	}
}

func (r *PgxCodeRepository) SaveCode(ctx context.Context, code domain.Code) error {
	m := toModelCode(code)
	query := `
        INSERT INTO codes (code_id, code, venue_id, issuer_user_id, amount, expires_at, used, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
    `
	_, err := r.Pool.Exec(ctx, query,
		m.CodeID,
		m.Code,
		m.VenueID,
		m.IssuerUserID,
		m.Amount,
		m.ExpiresAt,
		m.Used,
		m.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation on the code string
				return fmt.Errorf("%w: code string collision", apperrors.ErrDuplicate)
			}
		}
		return fmt.Errorf("failed to save code: %w", err)
	}
	return nil
}

func (r *PgxCodeRepository) FindCodeByString(ctx context.Context, code string) (*domain.Code, error) {
	query := `
		SELECT code_id, code, venue_id, issuer_user_id, amount, expires_at, used, used_at, used_by_user_id, created_at
		FROM codes
		WHERE code = $1;
	`
	var m models.Code
	err := r.Pool.QueryRow(ctx, query, code).Scan(
		&m.CodeID,
		&m.Code,
		&m.VenueID,
		&m.IssuerUserID,
		&m.Amount,
		&m.ExpiresAt,
		&m.Used,
		&m.UsedAt,
		&m.UsedByUserID,
		&m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find code: %w", err)
	}

	d := toDomainCode(m)
	return &d, nil
}

func (r *PgxCodeRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM codes WHERE code = $1);`
	var exists bool
	if err := r.Pool.QueryRow(ctx, query, code).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check code existence: %w", err)
	}
	return exists, nil
}

// ConsumeCodeInTx flips the code to used within the caller's transaction.
// The WHERE used = FALSE guard makes the transition happen at most once: a
// second transaction racing on the same code updates zero rows and gets
// ErrConflict.
func (r *PgxCodeRepository) ConsumeCodeInTx(ctx context.Context, tx pgx.Tx, codeID string, operatorUserID string, now time.Time) error {
	query := `
		UPDATE codes
		SET used = TRUE, used_at = $2, used_by_user_id = $3
		WHERE code_id = $1 AND used = FALSE;
	`
	cmdTag, err := tx.Exec(ctx, query, codeID, now, operatorUserID)
	if err != nil {
		return fmt.Errorf("failed to consume code %s: %w", codeID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: code already consumed", apperrors.ErrConflict)
	}
	return nil
}

func (r *PgxCodeRepository) DeleteUsedCodesBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `DELETE FROM codes WHERE used = TRUE AND created_at < $1;`
	cmdTag, err := r.Pool.Exec(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete used codes: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}
