package services

import (
	"context"

	"github.com/docpoints/docpoints_backend/internal/core/domain"
	portsrepo "github.com/docpoints/docpoints_backend/internal/core/ports/repositories"
)

// AuditReaderSvc exposes read-only audit reporting.
type AuditReaderSvc interface {
	// ListUserHistory retrieves the user's own audit entries, newest first.
	ListUserHistory(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.AuditEntry, *string, error)

	// ListAudit retrieves audit entries across all users for admin reporting,
	// newest first, optionally filtered by user and action type.
	ListAudit(ctx context.Context, filter portsrepo.AuditListFilter, limit int, nextToken *string) ([]domain.AuditEntry, *string, error)
}
