package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/docpoints/docpoints_backend/internal/apperrors"
	"github.com/docpoints/docpoints_backend/internal/core/domain"
	portsrepo "github.com/docpoints/docpoints_backend/internal/core/ports/repositories"
	portssvc "github.com/docpoints/docpoints_backend/internal/core/ports/services"
)

// rewardService is the reward trigger: a thin adapter between the external
// upload-approval workflow and the ledger engine.
type rewardService struct {
	BaseService
	uploadRepo portsrepo.UploadReader
	ledger     portssvc.LedgerSvcFacade
}

// NewRewardService creates a new reward trigger service
func NewRewardService(uploadRepo portsrepo.UploadReader, ledger portssvc.LedgerSvcFacade) portssvc.RewardSvcFacade {
	return &rewardService{
		uploadRepo: uploadRepo,
		ledger:     ledger,
	}
}

// Ensure rewardService implements the RewardSvcFacade interface
var _ portssvc.RewardSvcFacade = (*rewardService)(nil)

func (s *rewardService) RewardApprovedUpload(ctx context.Context, uploadID string) (*domain.AuditEntry, error) {
	if uploadID == "" {
		return nil, fmt.Errorf("upload ID is required: %w", apperrors.ErrValidation)
	}

	upload, err := s.uploadRepo.FindUploadByID(ctx, uploadID)
	if err != nil {
		s.LogError(ctx, err, "Failed to resolve upload for reward", slog.String("upload_id", uploadID))
		return nil, err
	}

	if !upload.IsApproved() {
		s.LogWarn(ctx, "Reward refused for unapproved upload",
			slog.String("upload_id", uploadID),
			slog.String("status", string(upload.Status)))
		return nil, fmt.Errorf("upload %s is not approved: %w", uploadID, apperrors.ErrValidation)
	}

	return s.ledger.RewardUpload(ctx, upload.UserID, upload.RewardPoints, upload.UploadID)
}
