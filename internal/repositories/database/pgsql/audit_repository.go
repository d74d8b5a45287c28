package pgsql

import (
	"context"
	"fmt"
	"strconv"

	"github.com/docpoints/docpoints_backend/internal/apperrors"
	"github.com/docpoints/docpoints_backend/internal/core/domain"
	portsrepo "github.com/docpoints/docpoints_backend/internal/core/ports/repositories"
	"github.com/docpoints/docpoints_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxAuditRepository is the append-only audit log. Rows are only ever inserted;
// there is deliberately no UPDATE or DELETE statement in this file.
type PgxAuditRepository struct {
	BaseRepository
}

// newPgxAuditRepository creates a new repository for audit log data.
func newPgxAuditRepository(pool *pgxpool.Pool) portsrepo.AuditRepositoryFacade {
	return &PgxAuditRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxAuditRepository implements portsrepo.AuditRepositoryFacade
var _ portsrepo.AuditRepositoryFacade = (*PgxAuditRepository)(nil)

// AppendEntry durably persists one audit entry. The call returning nil means
// the entry is committed; callers treat the append as having happened.
func (r *PgxAuditRepository) AppendEntry(ctx context.Context, entry domain.AuditEntry) error {
	query := `
		INSERT INTO audit_entries (
			audit_id, user_id, previous_balance, new_balance, change_amount,
			action_type, reason, actor_id, related_entity_id, rolled_back, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`

	var relatedEntityID *string
	if entry.RelatedEntityID != "" {
		relatedEntityID = &entry.RelatedEntityID
	}

	_, err := r.Pool.Exec(ctx, query,
		entry.AuditID,
		entry.UserID,
		entry.PreviousBalance,
		entry.NewBalance,
		entry.ChangeAmount,
		entry.ActionType,
		entry.Reason,
		entry.ActorID,
		relatedEntityID,
		entry.RolledBack,
		entry.CreatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, fmt.Sprintf("failed to append audit entry %s", entry.AuditID), err)
	}
	return nil
}

// ListEntriesByUser retrieves the user's audit entries, newest first, with
// keyset pagination.
func (r *PgxAuditRepository) ListEntriesByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.AuditEntry, *string, error) {
	filter := portsrepo.AuditListFilter{UserID: userID}
	return r.ListEntries(ctx, filter, limit, nextToken)
}

// ListEntries retrieves audit entries across all users, newest first, with
// keyset pagination and optional user/action filters. The (created_at,
// audit_id) cursor stays stable under concurrent appends, unlike an offset.
func (r *PgxAuditRepository) ListEntries(ctx context.Context, filter portsrepo.AuditListFilter, limit int, nextToken *string) ([]domain.AuditEntry, *string, error) {
	query := `
		SELECT audit_id, user_id, previous_balance, new_balance, change_amount,
		       action_type, reason, actor_id, related_entity_id, rolled_back, created_at
		FROM audit_entries
	`

	conditions := []string{}
	args := []interface{}{}
	argPos := 1

	if filter.UserID != "" {
		conditions = append(conditions, fmt.Sprintf("user_id = $%d", argPos))
		args = append(args, filter.UserID)
		argPos++
	}
	if filter.ActionType != "" {
		conditions = append(conditions, fmt.Sprintf("action_type = $%d", argPos))
		args = append(args, filter.ActionType)
		argPos++
	}

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastAuditID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		conditions = append(conditions, fmt.Sprintf("(created_at, audit_id) < ($%d, $%d)", argPos, argPos+1))
		args = append(args, lastCreatedAt, lastAuditID)
		argPos += 2
	}

	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}

	// Fetch one extra row to know whether another page exists.
	query += " ORDER BY created_at DESC, audit_id DESC LIMIT $" + strconv.Itoa(argPos) + ";"
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to list audit entries", err)
	}
	defer rows.Close()

	entries, err := scanAuditEntries(rows)
	if err != nil {
		return nil, nil, err
	}

	var nextTokenVal *string
	if len(entries) > limit {
		entries = entries[:limit]
		last := entries[len(entries)-1]
		token := pagination.EncodeToken(last.CreatedAt, last.AuditID)
		nextTokenVal = &token
	}

	return entries, nextTokenVal, nil
}

func scanAuditEntries(rows pgx.Rows) ([]domain.AuditEntry, error) {
	var entries []domain.AuditEntry
	for rows.Next() {
		var entry domain.AuditEntry
		var relatedEntityID *string
		err := rows.Scan(
			&entry.AuditID,
			&entry.UserID,
			&entry.PreviousBalance,
			&entry.NewBalance,
			&entry.ChangeAmount,
			&entry.ActionType,
			&entry.Reason,
			&entry.ActorID,
			&relatedEntityID,
			&entry.RolledBack,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan audit entry", err)
		}
		if relatedEntityID != nil {
			entry.RelatedEntityID = *relatedEntityID
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating audit entries", err)
	}
	return entries, nil
}
