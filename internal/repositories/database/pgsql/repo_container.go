package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/loopyard/loyalty_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	userRepo := newPgxUserRepository(dbPool)
	venueRepo := newPgxVenueRepository(dbPool)
	codeRepo := newPgxCodeRepository(dbPool)
	rewardRepo := newPgxRewardRepository(dbPool)
	ledgerRepo := newPgxLedgerRepository(dbPool, userRepo, codeRepo, rewardRepo)
	reportingRepo := newReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		UserRepo:      userRepo,
		VenueRepo:     venueRepo,
		CodeRepo:      codeRepo,
		LedgerRepo:    ledgerRepo,
		RewardRepo:    rewardRepo,
		ReportingRepo: reportingRepo,
	}
}
