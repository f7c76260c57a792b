package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/loopyard/loyalty_backend/internal/core/domain"
	portsrepo "github.com/loopyard/loyalty_backend/internal/core/ports/repositories"
)

type ReportingRepository struct {
	BaseRepository
}

func newReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &ReportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure ReportingRepository implements portsrepo.ReportingRepository
var _ portsrepo.ReportingRepository = (*ReportingRepository)(nil)

// GetEarnerSummary aggregates a user's lifetime earn/spend totals together
// with their cached balance.
func (r *ReportingRepository) GetEarnerSummary(ctx context.Context, userID string) (*domain.EarnerSummary, error) {
	query := `
		SELECT
			u.points_balance,
			COALESCE(SUM(le.points_delta) FILTER (WHERE le.kind = 'EARN'), 0) AS total_earned,
			COALESCE(-SUM(le.points_delta) FILTER (WHERE le.kind = 'REDEEM'), 0) AS total_spent,
			COUNT(le.entry_id) AS total_entries
		FROM users u
		LEFT JOIN ledger_entries le ON le.user_id = u.user_id
		WHERE u.user_id = $1
		GROUP BY u.points_balance;
	`
	var summary domain.EarnerSummary
	err := r.Pool.QueryRow(ctx, query, userID).Scan(
		&summary.PointsBalance,
		&summary.TotalPointsEarned,
		&summary.TotalPointsSpent,
		&summary.TotalEntries,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get earner summary for user %s: %w", userID, err)
	}
	return &summary, nil
}

// GetVenueSummary aggregates customer, revenue and points totals for one venue.
func (r *ReportingRepository) GetVenueSummary(ctx context.Context, venueID string) (*domain.VenueSummary, error) {
	query := `
		SELECT
			COUNT(DISTINCT user_id) AS unique_customers,
			COUNT(entry_id) AS total_entries,
			COALESCE(SUM(amount) FILTER (WHERE kind = 'EARN'), 0) AS total_revenue,
			COALESCE(SUM(points_delta) FILTER (WHERE kind = 'EARN'), 0) AS points_given,
			COALESCE(-SUM(points_delta) FILTER (WHERE kind = 'REDEEM'), 0) AS points_redeemed
		FROM ledger_entries
		WHERE venue_id = $1;
	`
	var summary domain.VenueSummary
	err := r.Pool.QueryRow(ctx, query, venueID).Scan(
		&summary.UniqueCustomers,
		&summary.TotalEntries,
		&summary.TotalRevenue,
		&summary.PointsGiven,
		&summary.PointsRedeemed,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get venue summary for venue %s: %w", venueID, err)
	}
	return &summary, nil
}

func (r *ReportingRepository) ListRecentEntriesByUser(ctx context.Context, userID string, limit int) ([]domain.LedgerEntry, error) {
	return r.listRecentEntries(ctx, "user_id", userID, limit)
}

func (r *ReportingRepository) ListRecentEntriesByVenue(ctx context.Context, venueID string, limit int) ([]domain.LedgerEntry, error) {
	return r.listRecentEntries(ctx, "venue_id", venueID, limit)
}

func (r *ReportingRepository) listRecentEntries(ctx context.Context, scopeColumn string, scopeID string, limit int) ([]domain.LedgerEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `
		SELECT ` + entryColumns + `
		FROM ledger_entries
		WHERE ` + scopeColumn + ` = $1
		ORDER BY created_at DESC, entry_id DESC
		LIMIT $2;
	`
	rows, err := r.Pool.Query(ctx, query, scopeID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.LedgerEntry{}
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry row: %w", err)
		}
		entries = append(entries, toDomainEntry(m))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating ledger entry rows: %w", rows.Err())
	}
	return entries, nil
}
