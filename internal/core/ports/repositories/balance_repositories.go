package repositories

import (
	"context"

	"github.com/docpoints/docpoints_backend/internal/core/domain"
)

// BalanceReader defines read operations for the balance store
type BalanceReader interface {
	// GetBalance returns the user's current point balance, or 0 when no
	// account row exists yet (accounts are created implicitly).
	GetBalance(ctx context.Context, userID string) (int64, error)

	// FindAccountByUserID retrieves the full account row, or ErrNotFound when
	// the user has never had a balance-affecting event.
	FindAccountByUserID(ctx context.Context, userID string) (*domain.PointAccount, error)
}

// BalanceWriter defines the single atomic write primitive for the balance store
type BalanceWriter interface {
	// CompareAndSetBalance atomically writes newBalance iff the stored balance
	// still equals expectedBalance, returning whether the write was applied.
	// An expectedBalance of 0 matches a missing account row, in which case the
	// row is created. This is the only balance mutation primitive; all
	// higher-level correctness is composed from it in the ledger engine.
	CompareAndSetBalance(ctx context.Context, userID string, expectedBalance, newBalance int64) (bool, error)
}

// BalanceRepositoryFacade combines all balance-store interfaces
type BalanceRepositoryFacade interface {
	BalanceReader
	BalanceWriter
}
