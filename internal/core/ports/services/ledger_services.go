package services

import (
	"context"

	"github.com/docpoints/docpoints_backend/internal/core/domain"
)

// BalanceReaderSvc exposes balance lookups to the HTTP layer.
type BalanceReaderSvc interface {
	// GetBalance returns the user's current point balance (0 for a user with
	// no balance-affecting events yet).
	GetBalance(ctx context.Context, userID string) (int64, error)
}

// LedgerSvcFacade is the ledger engine: the only component allowed to mutate
// balances, append audit entries, or insert redemption grants. Each operation
// is one logical transaction with bounded internal CAS retries; callers never
// observe intermediate retry state, only the terminal result.
type LedgerSvcFacade interface {
	BalanceReaderSvc

	// AdjustManual applies an admin-initiated signed adjustment. It fails with
	// ErrValidation when reason is empty, ErrInsufficientBalance when a
	// negative amount would drive the balance below zero, and
	// ErrConcurrencyExhausted when the CAS budget runs out.
	AdjustManual(ctx context.Context, userID string, amount int64, reason, actorID string) (*domain.AuditEntry, error)

	// RewardUpload credits a non-negative amount for an accepted upload. Each
	// uploadID is credited at most once; a duplicate call fails with
	// ErrAlreadyRewarded and performs no writes.
	RewardUpload(ctx context.Context, userID string, amount int64, uploadID string) (*domain.AuditEntry, error)

	// Redeem spends price points to grant the user permanent access to the
	// document. It fails with ErrAlreadyRedeemed when a grant already exists
	// (including when a concurrent call wins the race), ErrInsufficientPoints
	// when the balance does not cover the price, ErrConcurrencyExhausted when
	// the CAS budget runs out, and ErrRollbackFailed when a lost registry race
	// could not be compensated.
	Redeem(ctx context.Context, userID, documentID string, price int64) (*domain.RedemptionGrant, error)
}
