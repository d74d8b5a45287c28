package services

import (
	portsrepo "github.com/docpoints/docpoints_backend/internal/core/ports/repositories"
	portssvc "github.com/docpoints/docpoints_backend/internal/core/ports/services"
	"github.com/docpoints/docpoints_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// The ledger engine comes first since the thin adapters delegate to it
	container.Ledger = NewLedgerService(
		repos.BalanceRepo,
		repos.AuditRepo,
		repos.RedemptionRepo,
		repos.RewardMarkRepo,
		WithMaxCASAttempts(cfg.CASMaxAttempts),
	)

	container.Reward = NewRewardService(repos.UploadRepo, container.Ledger)
	container.Redemption = NewRedemptionService(repos.DocumentRepo, repos.RedemptionRepo, container.Ledger)
	container.Audit = NewAuditService(repos.AuditRepo)

	return container
}
