package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/docpoints/docpoints_backend/internal/apperrors"
	"github.com/docpoints/docpoints_backend/internal/core/domain"
	portsrepo "github.com/docpoints/docpoints_backend/internal/core/ports/repositories"
	"github.com/docpoints/docpoints_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxRedemptionRepository is the redemption registry. The composite primary
// key on (user_id, document_id) plus ON CONFLICT DO NOTHING is what makes
// InsertGrantIfAbsent safe under concurrent callers targeting the same pair.
type PgxRedemptionRepository struct {
	BaseRepository
}

// newPgxRedemptionRepository creates a new repository for redemption grants.
func newPgxRedemptionRepository(pool *pgxpool.Pool) portsrepo.RedemptionRepositoryFacade {
	return &PgxRedemptionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxRedemptionRepository implements portsrepo.RedemptionRepositoryFacade
var _ portsrepo.RedemptionRepositoryFacade = (*PgxRedemptionRepository)(nil)

// GrantExists reports whether a grant is already held for the pair.
func (r *PgxRedemptionRepository) GrantExists(ctx context.Context, userID, documentID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM redemption_grants WHERE user_id = $1 AND document_id = $2);`

	var exists bool
	err := r.Pool.QueryRow(ctx, query, userID, documentID).Scan(&exists)
	if err != nil {
		return false, apperrors.NewAppError(500, fmt.Sprintf("failed to check grant for user %s document %s", userID, documentID), err)
	}
	return exists, nil
}

// FindGrant retrieves the grant for the pair.
func (r *PgxRedemptionRepository) FindGrant(ctx context.Context, userID, documentID string) (*domain.RedemptionGrant, error) {
	query := `
		SELECT user_id, document_id, points_paid, previous_balance, new_balance, created_at
		FROM redemption_grants
		WHERE user_id = $1 AND document_id = $2;
	`

	var grant domain.RedemptionGrant
	err := r.Pool.QueryRow(ctx, query, userID, documentID).Scan(
		&grant.UserID,
		&grant.DocumentID,
		&grant.PointsPaid,
		&grant.PreviousBalance,
		&grant.NewBalance,
		&grant.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("redemption grant for user %s document %s: %w", userID, documentID, apperrors.ErrNotFound)
		}
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to find grant for user %s document %s", userID, documentID), err)
	}
	return &grant, nil
}

// ListGrantsByUser retrieves the user's grants, newest first, with keyset
// pagination.
func (r *PgxRedemptionRepository) ListGrantsByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.RedemptionGrant, *string, error) {
	query := `
		SELECT user_id, document_id, points_paid, previous_balance, new_balance, created_at
		FROM redemption_grants
		WHERE user_id = $1
	`
	args := []interface{}{userID}
	argPos := 2

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastDocumentID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		query += fmt.Sprintf(" AND (created_at, document_id) < ($%d, $%d)", argPos, argPos+1)
		args = append(args, lastCreatedAt, lastDocumentID)
		argPos += 2
	}

	query += " ORDER BY created_at DESC, document_id DESC LIMIT $" + strconv.Itoa(argPos) + ";"
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, fmt.Sprintf("failed to list grants for user %s", userID), err)
	}
	defer rows.Close()

	var grants []domain.RedemptionGrant
	for rows.Next() {
		var grant domain.RedemptionGrant
		err := rows.Scan(
			&grant.UserID,
			&grant.DocumentID,
			&grant.PointsPaid,
			&grant.PreviousBalance,
			&grant.NewBalance,
			&grant.CreatedAt,
		)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan redemption grant", err)
		}
		grants = append(grants, grant)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating redemption grants", err)
	}

	var nextTokenVal *string
	if len(grants) > limit {
		grants = grants[:limit]
		last := grants[len(grants)-1]
		token := pagination.EncodeToken(last.CreatedAt, last.DocumentID)
		nextTokenVal = &token
	}

	return grants, nextTokenVal, nil
}

// InsertGrantIfAbsent inserts the grant unless the pair is already taken.
// Grants are never updated or deleted once written.
func (r *PgxRedemptionRepository) InsertGrantIfAbsent(ctx context.Context, grant domain.RedemptionGrant) (bool, error) {
	query := `
		INSERT INTO redemption_grants (user_id, document_id, points_paid, previous_balance, new_balance, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, document_id) DO NOTHING;
	`

	tag, err := r.Pool.Exec(ctx, query,
		grant.UserID,
		grant.DocumentID,
		grant.PointsPaid,
		grant.PreviousBalance,
		grant.NewBalance,
		grant.CreatedAt,
	)
	if err != nil {
		return false, apperrors.NewAppError(500, fmt.Sprintf("failed to insert grant for user %s document %s", grant.UserID, grant.DocumentID), err)
	}
	return tag.RowsAffected() == 1, nil
}
