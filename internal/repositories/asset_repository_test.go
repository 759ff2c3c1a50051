package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/coursehub/media-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAssetTestRepository(t *testing.T) (*assetRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewAssetRepository(db)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestAssetRepository_Create(t *testing.T) {
	tests := []struct {
		name          string
		asset         *models.MediaAsset
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedID    int
	}{
		{
			name: "success",
			asset: &models.MediaAsset{
				BaseName:     "intro-abc123",
				Kind:         models.AssetKindHLS,
				ObjectPrefix: "uploads/hls/intro-abc123",
				Status:       models.AssetStatusUploading,
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO media_assets`).
					WithArgs("intro-abc123", models.AssetKindHLS, "uploads/hls/intro-abc123", models.AssetStatusUploading, "").
					WillReturnResult(sqlmock.NewResult(5, 1))
			},
			expectedID: 5,
		},
		{
			name: "database error",
			asset: &models.MediaAsset{
				BaseName:     "intro-abc123",
				Kind:         models.AssetKindRaw,
				ObjectPrefix: "uploads/files",
				Status:       models.AssetStatusFallback,
				URL:          "https://cdn.example.com/uploads/files/intro-abc123.mp4",
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO media_assets`).
					WithArgs("intro-abc123", models.AssetKindRaw, "uploads/files", models.AssetStatusFallback, "https://cdn.example.com/uploads/files/intro-abc123.mp4").
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupAssetTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.Create(context.Background(), tt.asset)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedID, tt.asset.ID)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAssetRepository_UpdateStatus(t *testing.T) {
	tests := []struct {
		name          string
		id            int
		status        models.AssetStatus
		url           string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
	}{
		{
			name:   "published",
			id:     5,
			status: models.AssetStatusPublished,
			url:    "https://cdn.example.com/uploads/hls/intro-abc123/master.m3u8",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE media_assets SET status = \?, url = \? WHERE id = \?`).
					WithArgs(models.AssetStatusPublished, "https://cdn.example.com/uploads/hls/intro-abc123/master.m3u8", 5).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name:   "asset missing",
			id:     999,
			status: models.AssetStatusFallback,
			url:    "",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE media_assets SET status = \?, url = \? WHERE id = \?`).
					WithArgs(models.AssetStatusFallback, "", 999).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupAssetTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.UpdateStatus(context.Background(), tt.id, tt.status, tt.url)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAssetRepository_GetByID(t *testing.T) {
	repo, mock, cleanup := setupAssetTestRepository(t)
	defer cleanup()

	createdAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	createdRows := sqlmock.NewRows([]string{"id", "base_name", "kind", "object_prefix", "status", "url", "created_at"}).
		AddRow(5, "intro-abc123", models.AssetKindHLS, "uploads/hls/intro-abc123", models.AssetStatusPublished,
			"https://cdn.example.com/uploads/hls/intro-abc123/master.m3u8", createdAt)
	mock.ExpectQuery(`SELECT id, base_name, kind, object_prefix, status, url, created_at FROM media_assets WHERE id = \? LIMIT 1`).
		WithArgs(5).
		WillReturnRows(createdRows)

	asset, err := repo.GetByID(context.Background(), 5)

	require.NoError(t, err)
	assert.Equal(t, 5, asset.ID)
	assert.Equal(t, "intro-abc123", asset.BaseName)
	assert.Equal(t, models.AssetKindHLS, asset.Kind)
	assert.Equal(t, models.AssetStatusPublished, asset.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}
