package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/docpoints/docpoints_backend/internal/apperrors"
	"github.com/docpoints/docpoints_backend/internal/core/domain"
	portsrepo "github.com/docpoints/docpoints_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxBalanceRepository is the durable balance store. The conditional UPDATE in
// CompareAndSetBalance is the storage-level atomic primitive every ledger
// mutation is built on.
type PgxBalanceRepository struct {
	BaseRepository
}

// newPgxBalanceRepository creates a new repository for point account data.
func newPgxBalanceRepository(pool *pgxpool.Pool) portsrepo.BalanceRepositoryFacade {
	return &PgxBalanceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxBalanceRepository implements portsrepo.BalanceRepositoryFacade
var _ portsrepo.BalanceRepositoryFacade = (*PgxBalanceRepository)(nil)

// GetBalance returns the user's balance, defaulting to 0 when no account row
// exists yet.
func (r *PgxBalanceRepository) GetBalance(ctx context.Context, userID string) (int64, error) {
	query := `SELECT points FROM point_accounts WHERE user_id = $1;`

	var points int64
	err := r.Pool.QueryRow(ctx, query, userID).Scan(&points)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Accounts are created implicitly; an absent row is a zero balance.
			return 0, nil
		}
		return 0, apperrors.NewAppError(500, fmt.Sprintf("failed to read balance for user %s", userID), err)
	}
	return points, nil
}

// FindAccountByUserID retrieves the full account row.
func (r *PgxBalanceRepository) FindAccountByUserID(ctx context.Context, userID string) (*domain.PointAccount, error) {
	query := `
		SELECT user_id, points, created_at, last_updated_at
		FROM point_accounts
		WHERE user_id = $1;
	`

	var account domain.PointAccount
	err := r.Pool.QueryRow(ctx, query, userID).Scan(
		&account.UserID,
		&account.Points,
		&account.CreatedAt,
		&account.LastUpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("point account for user %s: %w", userID, apperrors.ErrNotFound)
		}
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to find point account for user %s", userID), err)
	}
	return &account, nil
}

// CompareAndSetBalance writes newBalance iff the stored balance still equals
// expectedBalance. The WHERE clause on the current value makes the UPDATE the
// atomic compare step; an expected 0 against a missing row creates the row.
func (r *PgxBalanceRepository) CompareAndSetBalance(ctx context.Context, userID string, expectedBalance, newBalance int64) (bool, error) {
	now := time.Now().UTC()

	updateQuery := `
		UPDATE point_accounts
		SET points = $3, last_updated_at = $4
		WHERE user_id = $1 AND points = $2;
	`
	tag, err := r.Pool.Exec(ctx, updateQuery, userID, expectedBalance, newBalance, now)
	if err != nil {
		return false, apperrors.NewAppError(500, fmt.Sprintf("failed to update balance for user %s", userID), err)
	}
	if tag.RowsAffected() == 1 {
		return true, nil
	}
	if expectedBalance != 0 {
		// Row exists with a different value, or no row: either way the
		// expectation did not hold.
		return false, nil
	}

	// First balance-affecting event for this user: create the row. A losing
	// race here surfaces as a conflict, matching the update path.
	insertQuery := `
		INSERT INTO point_accounts (user_id, points, created_at, last_updated_at)
		VALUES ($1, $2, $3, $3)
		ON CONFLICT (user_id) DO NOTHING;
	`
	tag, err = r.Pool.Exec(ctx, insertQuery, userID, newBalance, now)
	if err != nil {
		return false, apperrors.NewAppError(500, fmt.Sprintf("failed to create point account for user %s", userID), err)
	}
	return tag.RowsAffected() == 1, nil
}
