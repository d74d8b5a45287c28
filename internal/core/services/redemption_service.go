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

// redemptionService is the redemption API: it resolves prices from the
// external document catalog and delegates the actual spend to the ledger.
type redemptionService struct {
	BaseService
	documentRepo   portsrepo.DocumentReader
	redemptionRepo portsrepo.RedemptionReader
	ledger         portssvc.LedgerSvcFacade
}

// NewRedemptionService creates a new redemption API service
func NewRedemptionService(
	documentRepo portsrepo.DocumentReader,
	redemptionRepo portsrepo.RedemptionReader,
	ledger portssvc.LedgerSvcFacade,
) portssvc.RedemptionSvcFacade {
	return &redemptionService{
		documentRepo:   documentRepo,
		redemptionRepo: redemptionRepo,
		ledger:         ledger,
	}
}

// Ensure redemptionService implements the RedemptionSvcFacade interface
var _ portssvc.RedemptionSvcFacade = (*redemptionService)(nil)

func (s *redemptionService) RedeemDocument(ctx context.Context, userID, documentID string) (*domain.RedemptionGrant, error) {
	if userID == "" || documentID == "" {
		return nil, fmt.Errorf("user ID and document ID are required: %w", apperrors.ErrValidation)
	}

	document, err := s.documentRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		s.LogWarn(ctx, "Failed to resolve document for redemption",
			slog.String("document_id", documentID), slog.String("error", err.Error()))
		return nil, err
	}

	return s.ledger.Redeem(ctx, userID, document.DocumentID, document.PricePoints)
}

func (s *redemptionService) FindGrant(ctx context.Context, userID, documentID string) (*domain.RedemptionGrant, error) {
	if userID == "" || documentID == "" {
		return nil, fmt.Errorf("user ID and document ID are required: %w", apperrors.ErrValidation)
	}
	return s.redemptionRepo.FindGrant(ctx, userID, documentID)
}

func (s *redemptionService) ListUserGrants(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.RedemptionGrant, *string, error) {
	if userID == "" {
		return nil, nil, fmt.Errorf("user ID is required: %w", apperrors.ErrValidation)
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	return s.redemptionRepo.ListGrantsByUser(ctx, userID, limit, nextToken)
}
