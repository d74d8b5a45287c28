package repositories

import (
	"context"

	"github.com/docpoints/docpoints_backend/internal/core/domain"
)

// AuditListFilter narrows global audit listings. Zero values mean no filter.
type AuditListFilter struct {
	UserID     string
	ActionType domain.AuditActionType
}

// AuditAppender defines the write side of the audit log
type AuditAppender interface {
	// AppendEntry durably persists an audit entry. There is no update or
	// delete counterpart: the log is append-only.
	AppendEntry(ctx context.Context, entry domain.AuditEntry) error
}

// AuditReader defines read operations used by reporting
type AuditReader interface {
	// ListEntriesByUser retrieves a paginated list of the user's audit entries,
	// newest first, using token-based pagination. It returns the entries, a
	// token for the next page, and an error.
	ListEntriesByUser(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.AuditEntry, *string, error)

	// ListEntries retrieves a paginated list of audit entries across all users,
	// newest first, optionally filtered by user and action type.
	ListEntries(ctx context.Context, filter AuditListFilter, limit int, nextToken *string) ([]domain.AuditEntry, *string, error)
}

// AuditRepositoryFacade combines all audit-log repository interfaces
type AuditRepositoryFacade interface {
	AuditAppender
	AuditReader
}
