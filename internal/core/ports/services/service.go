package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	User      UserSvcFacade
	Venue     VenueSvcFacade
	Code      CodeSvcFacade
	Ledger    LedgerSvcFacade
	Reward    RewardSvcFacade
	Reporting ReportingSvcFacade
	Token     TokenSvcFacade
	Notifier  Notifier
}
