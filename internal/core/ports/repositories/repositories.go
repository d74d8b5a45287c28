package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	BalanceRepo    BalanceRepositoryFacade
	AuditRepo      AuditRepositoryFacade
	RedemptionRepo RedemptionRepositoryFacade
	RewardMarkRepo RewardMarkRepository
	DocumentRepo   DocumentReader
	UploadRepo     UploadReader
}
