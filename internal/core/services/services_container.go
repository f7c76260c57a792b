package services

import (
	portsrepo "github.com/loopyard/loyalty_backend/internal/core/ports/repositories"
	portssvc "github.com/loopyard/loyalty_backend/internal/core/ports/services"
	"github.com/loopyard/loyalty_backend/internal/metrics"
	"github.com/loopyard/loyalty_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(
	cfg *config.Config,
	repos portsrepo.RepositoryProvider,
	renderer portssvc.CodeRenderer,
	notifier portssvc.Notifier,
	loyaltyMetrics *metrics.LoyaltyMetrics,
) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Venue service first; code, ledger and reward services depend on its
	// ownership checks.
	container.Venue = NewVenueService(repos.VenueRepo, repos.UserRepo)
	venueVerifier := container.Venue.(portssvc.VenueOwnershipVerifier)

	container.User = NewUserService(repos.UserRepo)
	container.Token = NewTokenService(cfg)
	container.Code = NewCodeService(repos.CodeRepo, repos.UserRepo, repos.LedgerRepo, repos.VenueRepo, venueVerifier, renderer, notifier, loyaltyMetrics, cfg.CodeCleanupRetention)
	container.Ledger = NewLedgerService(repos.LedgerRepo, repos.UserRepo, venueVerifier)
	container.Reward = NewRewardService(repos.RewardRepo, repos.UserRepo, repos.LedgerRepo, venueVerifier, notifier, loyaltyMetrics)
	container.Reporting = NewReportingService(repos.ReportingRepo, repos.VenueRepo)
	container.Notifier = notifier

	return container
}
