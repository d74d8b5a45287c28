package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/docpoints/docpoints_backend/internal/apperrors"
	portsrepo "github.com/docpoints/docpoints_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxRewardMarkRepository tracks rewarded uploads so a retried approval
// trigger cannot credit the same upload twice.
type PgxRewardMarkRepository struct {
	BaseRepository
}

// newPgxRewardMarkRepository creates a new repository for reward marks.
func newPgxRewardMarkRepository(pool *pgxpool.Pool) portsrepo.RewardMarkRepository {
	return &PgxRewardMarkRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxRewardMarkRepository implements portsrepo.RewardMarkRepository
var _ portsrepo.RewardMarkRepository = (*PgxRewardMarkRepository)(nil)

// IsRewarded reports whether the upload has already been claimed.
func (r *PgxRewardMarkRepository) IsRewarded(ctx context.Context, uploadID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM rewarded_uploads WHERE upload_id = $1);`

	var exists bool
	err := r.Pool.QueryRow(ctx, query, uploadID).Scan(&exists)
	if err != nil {
		return false, apperrors.NewAppError(500, fmt.Sprintf("failed to check reward mark for upload %s", uploadID), err)
	}
	return exists, nil
}

// MarkRewardedIfAbsent claims the upload for rewarding.
func (r *PgxRewardMarkRepository) MarkRewardedIfAbsent(ctx context.Context, uploadID, userID string) (bool, error) {
	query := `
		INSERT INTO rewarded_uploads (upload_id, user_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (upload_id) DO NOTHING;
	`

	tag, err := r.Pool.Exec(ctx, query, uploadID, userID, time.Now().UTC())
	if err != nil {
		return false, apperrors.NewAppError(500, fmt.Sprintf("failed to mark upload %s rewarded", uploadID), err)
	}
	return tag.RowsAffected() == 1, nil
}

// ReleaseRewardMark removes a claim whose credit never committed.
func (r *PgxRewardMarkRepository) ReleaseRewardMark(ctx context.Context, uploadID string) error {
	query := `DELETE FROM rewarded_uploads WHERE upload_id = $1;`

	_, err := r.Pool.Exec(ctx, query, uploadID)
	if err != nil {
		return apperrors.NewAppError(500, fmt.Sprintf("failed to release reward mark for upload %s", uploadID), err)
	}
	return nil
}
