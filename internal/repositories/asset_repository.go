package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/coursehub/media-service/internal/models"
)

// assetRepository implements media asset lifecycle persistence
type assetRepository struct {
	db *sql.DB
}

// NewAssetRepository creates a new asset repository
func NewAssetRepository(db *sql.DB) *assetRepository {
	return &assetRepository{
		db: db,
	}
}

// Create inserts a new media asset record and sets its generated ID
func (r *assetRepository) Create(ctx context.Context, asset *models.MediaAsset) error {
	query := `
		INSERT INTO media_assets (base_name, kind, object_prefix, status, url)
		VALUES (?, ?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		asset.BaseName,
		asset.Kind,
		asset.ObjectPrefix,
		asset.Status,
		asset.URL,
	)
	if err != nil {
		return fmt.Errorf("failed to create media asset: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get inserted id: %w", err)
	}
	asset.ID = int(id)

	return nil
}

// UpdateStatus moves an asset to a new lifecycle status and records its URL
func (r *assetRepository) UpdateStatus(ctx context.Context, id int, status models.AssetStatus, url string) error {
	query := `UPDATE media_assets SET status = ?, url = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, status, url, id)
	if err != nil {
		return fmt.Errorf("failed to update media asset status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("media asset not found")
	}

	return nil
}

// GetByID retrieves a media asset by ID
func (r *assetRepository) GetByID(ctx context.Context, id int) (*models.MediaAsset, error) {
	query := `
		SELECT id, base_name, kind, object_prefix, status, url, created_at
		FROM media_assets
		WHERE id = ?
		LIMIT 1
	`

	var asset models.MediaAsset
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&asset.ID,
		&asset.BaseName,
		&asset.Kind,
		&asset.ObjectPrefix,
		&asset.Status,
		&asset.URL,
		&asset.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("media asset not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get media asset by id: %w", err)
	}

	return &asset, nil
}
