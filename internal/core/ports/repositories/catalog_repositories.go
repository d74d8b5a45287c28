package repositories

import (
	"context"

	"github.com/docpoints/docpoints_backend/internal/core/domain"
)

// DocumentReader resolves catalog documents owned by the external catalog
// service. The ledger only ever reads prices from it.
type DocumentReader interface {
	// FindDocumentByID retrieves a document, or ErrNotFound.
	FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error)
}

// UploadReader resolves upload records owned by the external upload service.
type UploadReader interface {
	// FindUploadByID retrieves an upload record, or ErrNotFound.
	FindUploadByID(ctx context.Context, uploadID string) (*domain.Upload, error)
}
