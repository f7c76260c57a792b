package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/loopyard/loyalty_backend/internal/apperrors"
	"github.com/loopyard/loyalty_backend/internal/core/domain"
	portsrepo "github.com/loopyard/loyalty_backend/internal/core/ports/repositories"
	"github.com/loopyard/loyalty_backend/internal/models"
	"github.com/loopyard/loyalty_backend/internal/utils/pagination"
)

type PgxLedgerRepository struct {
	BaseRepository
	userRepo   portsrepo.UserRepositoryFacade
	codeRepo   portsrepo.CodeRepositoryFacade
	rewardRepo portsrepo.RewardRepositoryFacade
}

// newPgxLedgerRepository creates a new repository for ledger entries. The
// user, code and reward repositories are injected because the atomic posting
// units span their tables.
func newPgxLedgerRepository(pool *pgxpool.Pool, userRepo portsrepo.UserRepositoryFacade, codeRepo portsrepo.CodeRepositoryFacade, rewardRepo portsrepo.RewardRepositoryFacade) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
		userRepo:       userRepo,
		codeRepo:       codeRepo,
		rewardRepo:     rewardRepo,
	}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepositoryFacade
var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

func toDomainEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:     m.EntryID,
		UserID:      m.UserID,
		VenueID:     m.VenueID,
		Amount:      m.Amount,
		PointsDelta: m.PointsDelta,
		Kind:        domain.EntryKind(m.Kind),
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
	}
}

const entryColumns = `entry_id, user_id, venue_id, amount, points_delta, kind, description, created_at`

const insertEntryQuery = `
	INSERT INTO ledger_entries (entry_id, user_id, venue_id, amount, points_delta, kind, description, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
`

func scanEntry(row pgx.Row) (models.LedgerEntry, error) {
	var m models.LedgerEntry
	err := row.Scan(
		&m.EntryID,
		&m.UserID,
		&m.VenueID,
		&m.Amount,
		&m.PointsDelta,
		&m.Kind,
		&m.Description,
		&m.CreatedAt,
	)
	return m, err
}

func insertEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.LedgerEntry) error {
	_, err := tx.Exec(ctx, insertEntryQuery,
		entry.EntryID,
		entry.UserID,
		entry.VenueID,
		entry.Amount,
		entry.PointsDelta,
		string(entry.Kind),
		entry.Description,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert ledger entry %s: %w", entry.EntryID, err)
	}
	return nil
}

// PostEarnEntry consumes the code and credits the earner as one transaction:
// conditional code consume, user row lock, entry insert, balance increment.
// A concurrent validation of the same code fails on the consume step and
// rolls back with ErrConflict, leaving no partial state.
func (r *PgxLedgerRepository) PostEarnEntry(ctx context.Context, code domain.Code, operatorUserID string, entry domain.LedgerEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // Ignored once the transaction is committed

	// 1. Consume the code. This is the at-most-once gate.
	if err := r.codeRepo.ConsumeCodeInTx(ctx, tx, code.CodeID, operatorUserID, entry.CreatedAt); err != nil {
		return err
	}

	// 2. Lock the earner's row so balance mutations serialise.
	if _, err := r.userRepo.FindUserForUpdate(ctx, tx, entry.UserID); err != nil {
		return fmt.Errorf("failed to lock earner %s: %w", entry.UserID, err)
	}

	// 3. Append the EARN entry.
	if err := insertEntryInTx(ctx, tx, entry); err != nil {
		return err
	}

	// 4. Move the cached balance in lockstep with the ledger.
	if err := r.userRepo.AdjustBalanceInTx(ctx, tx, entry.UserID, entry.PointsDelta, entry.CreatedAt); err != nil {
		return err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return fmt.Errorf("failed to commit earn entry %s: %w", entry.EntryID, err)
	}
	return nil
}

// PostRedeemEntry debits the earner and appends the REDEEM entry plus its
// redemption link as one transaction. The balance is re-checked under the
// row lock: a stale affordability check upstream surfaces here as
// ErrConflict, never as a negative balance.
func (r *PgxLedgerRepository) PostRedeemEntry(ctx context.Context, entry domain.LedgerEntry, redemption domain.Redemption) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // Ignored once the transaction is committed

	// 1. Lock the user's row and re-check affordability.
	user, err := r.userRepo.FindUserForUpdate(ctx, tx, entry.UserID)
	if err != nil {
		return fmt.Errorf("failed to lock user %s: %w", entry.UserID, err)
	}
	cost := -entry.PointsDelta
	if cost <= 0 {
		return fmt.Errorf("%w: redeem entry must carry a negative points delta", apperrors.ErrValidation)
	}
	if user.PointsBalance < cost {
		return fmt.Errorf("%w: insufficient balance (%d < %d)", apperrors.ErrConflict, user.PointsBalance, cost)
	}

	// 2. Append the REDEEM entry.
	if err := insertEntryInTx(ctx, tx, entry); err != nil {
		return err
	}

	// 3. Debit the cached balance. The non-negative guard in the UPDATE is
	// the final line of defence.
	if err := r.userRepo.AdjustBalanceInTx(ctx, tx, entry.UserID, entry.PointsDelta, entry.CreatedAt); err != nil {
		return err
	}

	// 4. Link the entry to the redeemed reward.
	if err := r.rewardRepo.SaveRedemptionInTx(ctx, tx, redemption); err != nil {
		return err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return fmt.Errorf("failed to commit redeem entry %s: %w", entry.EntryID, err)
	}
	return nil
}

func (r *PgxLedgerRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM ledger_entries WHERE entry_id = $1;`

	m, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find ledger entry %s: %w", entryID, err)
	}

	d := toDomainEntry(m)
	return &d, nil
}

func (r *PgxLedgerRepository) ListEntriesByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	return r.listEntries(ctx, "user_id", userID, limit, nextToken)
}

func (r *PgxLedgerRepository) ListEntriesByVenue(ctx context.Context, venueID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	return r.listEntries(ctx, "venue_id", venueID, limit, nextToken)
}

// listEntries pages through entries for one scope column, newest first,
// using a (created_at, entry_id) keyset token.
func (r *PgxLedgerRepository) listEntries(ctx context.Context, scopeColumn string, scopeID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT ` + entryColumns + ` FROM ledger_entries WHERE ` + scopeColumn + ` = $1`
	args := []any{scopeID}

	if nextToken != nil && *nextToken != "" {
		createdAt, entryID, err := pagination.DecodeEntryToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		query += ` AND (created_at, entry_id) < ($2, $3)`
		args = append(args, createdAt, entryID)
	}

	// Fetch one extra row to know whether another page exists.
	query += fmt.Sprintf(` ORDER BY created_at DESC, entry_id DESC LIMIT %d;`, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query ledger entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.LedgerEntry{}
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan ledger entry row: %w", err)
		}
		entries = append(entries, toDomainEntry(m))
	}
	if rows.Err() != nil {
		return nil, nil, fmt.Errorf("error iterating ledger entry rows: %w", rows.Err())
	}

	var token *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		t := pagination.EncodeEntryToken(last.CreatedAt, last.EntryID)
		token = &t
	}
	return entries, token, nil
}

// SumPointsDeltaByUser recomputes the balance from the ledger. Used by the
// balance audit; the result must equal users.points_balance.
func (r *PgxLedgerRepository) SumPointsDeltaByUser(ctx context.Context, userID string) (int64, error) {
	query := `SELECT COALESCE(SUM(points_delta), 0) FROM ledger_entries WHERE user_id = $1;`
	var sum int64
	if err := r.Pool.QueryRow(ctx, query, userID).Scan(&sum); err != nil {
		return 0, fmt.Errorf("failed to sum points deltas for user %s: %w", userID, err)
	}
	return sum, nil
}
