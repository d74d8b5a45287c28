package services

import (
	"context"

	"github.com/docpoints/docpoints_backend/internal/core/domain"
)

// RedemptionSvcFacade is the redemption API invoked by the document-detail
// action: it resolves the price from the catalog and delegates to the ledger.
type RedemptionSvcFacade interface {
	// RedeemDocument resolves the document's price and spends it from the
	// user's balance. It fails with ErrNotFound for an unknown document, plus
	// every failure Redeem itself can return.
	RedeemDocument(ctx context.Context, userID, documentID string) (*domain.RedemptionGrant, error)

	// FindGrant returns the user's grant for the document, or ErrNotFound.
	FindGrant(ctx context.Context, userID, documentID string) (*domain.RedemptionGrant, error)

	// ListUserGrants retrieves a paginated list of the user's grants, newest first.
	ListUserGrants(ctx context.Context, userID string, limit int, nextToken *string) ([]domain.RedemptionGrant, *string, error)
}
