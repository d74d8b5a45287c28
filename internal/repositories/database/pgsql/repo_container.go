package pgsql

import (
	portsrepo "github.com/docpoints/docpoints_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	balanceRepo := newPgxBalanceRepository(dbPool)
	auditRepo := newPgxAuditRepository(dbPool)
	redemptionRepo := newPgxRedemptionRepository(dbPool)
	rewardMarkRepo := newPgxRewardMarkRepository(dbPool)
	catalogRepo := newPgxCatalogRepository(dbPool)

	return portsrepo.RepositoryProvider{
		BalanceRepo:    balanceRepo,
		AuditRepo:      auditRepo,
		RedemptionRepo: redemptionRepo,
		RewardMarkRepo: rewardMarkRepo,
		DocumentRepo:   catalogRepo,
		UploadRepo:     catalogRepo,
	}
}
