package services

import (
	"context"
	"fmt"

	"github.com/docpoints/docpoints_backend/internal/apperrors"
	"github.com/docpoints/docpoints_backend/internal/core/domain"
	portsrepo "github.com/docpoints/docpoints_backend/internal/core/ports/repositories"
	portssvc "github.com/docpoints/docpoints_backend/internal/core/ports/services"
)

// defaultListLimit caps list page sizes when the caller does not pick one.
const defaultListLimit = 20

// maxListLimit caps list page sizes regardless of what the caller asks for.
const maxListLimit = 100

// auditService provides read-only reporting over the audit log.
type auditService struct {
	BaseService
	auditRepo portsrepo.AuditReader
}

// NewAuditService creates a new audit reporting service
func NewAuditService(auditRepo portsrepo.AuditReader) portssvc.AuditReaderSvc {
	return &auditService{
		auditRepo: auditRepo,
	}
}

// Ensure auditService implements the AuditReaderSvc interface
var _ portssvc.AuditReaderSvc = (*auditService)(nil)

func (s *auditService) ListUserHistory(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.AuditEntry, *string, error) {
	if userID == "" {
		return nil, nil, fmt.Errorf("user ID is required: %w", apperrors.ErrValidation)
	}
	return s.auditRepo.ListEntriesByUser(ctx, userID, clampLimit(limit), nextToken)
}

func (s *auditService) ListAudit(ctx context.Context, filter portsrepo.AuditListFilter, limit int, nextToken *string) ([]domain.AuditEntry, *string, error) {
	if filter.ActionType != "" {
		switch filter.ActionType {
		case domain.ActionManual, domain.ActionUploadReward, domain.ActionRedemption:
		default:
			return nil, nil, fmt.Errorf("unknown action type %q: %w", filter.ActionType, apperrors.ErrValidation)
		}
	}
	return s.auditRepo.ListEntries(ctx, filter, clampLimit(limit), nextToken)
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}
