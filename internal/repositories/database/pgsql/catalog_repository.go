package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/docpoints/docpoints_backend/internal/apperrors"
	"github.com/docpoints/docpoints_backend/internal/core/domain"
	portsrepo "github.com/docpoints/docpoints_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxCatalogRepository reads the collaborator-owned documents and uploads
// tables. The ledger never writes either; the catalog and upload services own
// their lifecycles.
type PgxCatalogRepository struct {
	BaseRepository
}

// newPgxCatalogRepository creates a read-only repository over catalog data.
func newPgxCatalogRepository(pool *pgxpool.Pool) *PgxCatalogRepository {
	return &PgxCatalogRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxCatalogRepository implements both collaborator reader ports
var (
	_ portsrepo.DocumentReader = (*PgxCatalogRepository)(nil)
	_ portsrepo.UploadReader   = (*PgxCatalogRepository)(nil)
)

// FindDocumentByID retrieves a catalog document.
func (r *PgxCatalogRepository) FindDocumentByID(ctx context.Context, documentID string) (*domain.Document, error) {
	query := `
		SELECT document_id, title, price_points, created_at
		FROM documents
		WHERE document_id = $1;
	`

	var document domain.Document
	err := r.Pool.QueryRow(ctx, query, documentID).Scan(
		&document.DocumentID,
		&document.Title,
		&document.PricePoints,
		&document.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("document %s: %w", documentID, apperrors.ErrNotFound)
		}
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to find document %s", documentID), err)
	}
	return &document, nil
}

// FindUploadByID retrieves an upload record.
func (r *PgxCatalogRepository) FindUploadByID(ctx context.Context, uploadID string) (*domain.Upload, error) {
	query := `
		SELECT upload_id, user_id, status, reward_points, created_at
		FROM uploads
		WHERE upload_id = $1;
	`

	var upload domain.Upload
	err := r.Pool.QueryRow(ctx, query, uploadID).Scan(
		&upload.UploadID,
		&upload.UserID,
		&upload.Status,
		&upload.RewardPoints,
		&upload.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("upload %s: %w", uploadID, apperrors.ErrNotFound)
		}
		return nil, apperrors.NewAppError(500, fmt.Sprintf("failed to find upload %s", uploadID), err)
	}
	return &upload, nil
}
