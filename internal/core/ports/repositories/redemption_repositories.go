package repositories

import (
	"context"

	"github.com/docpoints/docpoints_backend/internal/core/domain"
)

// RedemptionReader defines read operations for the redemption registry
type RedemptionReader interface {
	// GrantExists reports whether a grant already exists for the pair.
	GrantExists(ctx context.Context, userID, documentID string) (bool, error)

	// FindGrant retrieves the grant for the pair, or ErrNotFound.
	FindGrant(ctx context.Context, userID, documentID string) (*domain.RedemptionGrant, error)

	// ListGrantsByUser retrieves a paginated list of the user's grants, newest
	// first, using token-based pagination.
	ListGrantsByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.RedemptionGrant, *string, error)
}

// RedemptionWriter defines the single atomic write primitive for the registry
type RedemptionWriter interface {
	// InsertGrantIfAbsent atomically inserts the grant unless one already
	// exists for its (userID, documentID) pair. It returns true when the
	// grant was written, false (and no write) when the pair was taken.
	// Grants are never updated or deleted.
	InsertGrantIfAbsent(ctx context.Context, grant domain.RedemptionGrant) (bool, error)
}

// RedemptionRepositoryFacade combines all redemption-registry interfaces
type RedemptionRepositoryFacade interface {
	RedemptionReader
	RedemptionWriter
}

// RewardMarkRepository tracks which uploads have already been rewarded, so a
// reward trigger retried by the approval workflow cannot credit twice.
type RewardMarkRepository interface {
	// IsRewarded reports whether a reward mark exists for the upload.
	IsRewarded(ctx context.Context, uploadID string) (bool, error)

	// MarkRewardedIfAbsent atomically claims the upload for rewarding,
	// returning false (and no write) when it was already claimed.
	MarkRewardedIfAbsent(ctx context.Context, uploadID, userID string) (bool, error)

	// ReleaseRewardMark removes a claim whose credit could not be applied, so
	// the trigger may retry later. This is the only delete in the subsystem
	// and it only ever removes a mark that never resulted in a credit.
	ReleaseRewardMark(ctx context.Context, uploadID string) error
}
