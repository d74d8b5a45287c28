package services

import (
	"context"

	"github.com/docpoints/docpoints_backend/internal/core/domain"
)

// RewardSvcFacade is the reward trigger invoked by the upload-approval
// workflow once a reviewer marks an upload approved.
type RewardSvcFacade interface {
	// RewardApprovedUpload resolves the upload record and credits its reward
	// amount to the contributor. It fails with ErrNotFound for an unknown
	// upload, ErrValidation when the upload is not approved, and
	// ErrAlreadyRewarded when the upload was credited before.
	RewardApprovedUpload(ctx context.Context, uploadID string) (*domain.AuditEntry, error)
}
