package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/coursehub/media-service/internal/models"
	"github.com/coursehub/media-service/internal/storage"
	"go.uber.org/zap"
)

// ObjectStorage defines the interface for durable object store operations
type ObjectStorage interface {
	// UploadFile streams a local file to the store and returns its public URL
	UploadFile(ctx context.Context, localPath, key, contentType string) (string, error)

	// UploadBuffer uploads in-memory content and returns its public URL
	UploadBuffer(ctx context.Context, data []byte, key, contentType string) (string, error)

	// Delete removes an object by key or full URL; best-effort for callers
	Delete(ctx context.Context, keyOrURL string) error

	// PublicURL resolves the browsable URL for a key
	PublicURL(key string) string
}

// Transcoder defines the interface for converting a video into an HLS bundle
type Transcoder interface {
	// Transcode produces a segmented stream in workDir and returns the manifest path
	Transcode(ctx context.Context, sourcePath, workDir string) (string, error)
}

// AssetRepository defines the interface for media asset lifecycle persistence
type AssetRepository interface {
	Create(ctx context.Context, asset *models.MediaAsset) error
	UpdateStatus(ctx context.Context, id int, status models.AssetStatus, url string) error
}

// IngestService orchestrates the upload pipeline: detect media kind,
// transcode videos, publish artifacts to the object store, and fall back to
// the raw file when packaging fails.
type IngestService struct {
	storage    ObjectStorage
	transcoder Transcoder
	assetRepo  AssetRepository
	workRoot   string
	logger     *zap.Logger
}

// NewIngestService creates a new ingest service. workRoot is the local
// scratch directory transcode working directories are created under.
func NewIngestService(storage ObjectStorage, transcoder Transcoder, assetRepo AssetRepository, workRoot string, logger *zap.Logger) *IngestService {
	return &IngestService{
		storage:    storage,
		transcoder: transcoder,
		assetRepo:  assetRepo,
		workRoot:   workRoot,
		logger:     logger,
	}
}

// Ingest takes an uploaded file already persisted at localPath and returns a
// servable URL. Videos are transcoded to HLS and published segment-by-segment
// with the manifest uploaded last, so a manifest URL never resolves before
// every segment it references is durably stored. Any transcode or publish
// failure degrades to serving the original file; the instructor always
// leaves with a playable URL.
func (s *IngestService) Ingest(ctx context.Context, localPath, originalName, contentType string) (*models.UploadResult, error) {
	if !strings.HasPrefix(contentType, "video/") {
		url, err := s.uploadRaw(ctx, localPath, originalName, contentType)
		if err != nil {
			return nil, err
		}
		return &models.UploadResult{URL: url, IsHLS: false}, nil
	}

	baseName := storage.BaseName(originalName)
	workDir := filepath.Join(s.workRoot, baseName)
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create working directory: %w", err)
	}

	manifestPath, err := s.transcoder.Transcode(ctx, localPath, workDir)
	if err != nil {
		s.logger.Error("transcode failed, serving original file",
			zap.String("base_name", baseName),
			zap.Error(err),
		)
		os.RemoveAll(workDir)
		return s.fallbackRaw(ctx, localPath, originalName, contentType, baseName)
	}

	asset := &models.MediaAsset{
		BaseName:     baseName,
		Kind:         models.AssetKindHLS,
		ObjectPrefix: storage.HLSPrefix + "/" + baseName,
		Status:       models.AssetStatusUploading,
	}
	if err := s.assetRepo.Create(ctx, asset); err != nil {
		os.RemoveAll(workDir)
		return nil, fmt.Errorf("failed to record media asset: %w", err)
	}

	manifestURL, err := s.publishBundle(ctx, workDir, baseName, manifestPath)
	if err != nil {
		s.logger.Error("bundle publish failed, serving original file",
			zap.String("base_name", baseName),
			zap.Error(err),
		)
		os.RemoveAll(workDir)
		result, fallbackErr := s.fallbackRaw(ctx, localPath, originalName, contentType, baseName)
		if fallbackErr != nil {
			return nil, fallbackErr
		}
		s.markAsset(ctx, asset.ID, models.AssetStatusFallback, result.URL)
		return result, nil
	}

	os.RemoveAll(workDir)
	s.markAsset(ctx, asset.ID, models.AssetStatusPublished, manifestURL)

	return &models.UploadResult{URL: manifestURL, IsHLS: true}, nil
}

// publishBundle uploads every bundle file, segments first and the manifest
// strictly last, deleting each local copy after its upload is confirmed. On
// any upload failure the already-stored objects are best-effort deleted so no
// partial bundle survives remotely.
func (s *IngestService) publishBundle(ctx context.Context, workDir, baseName, manifestPath string) (string, error) {
	entries, err := os.ReadDir(workDir)
	if err != nil {
		return "", fmt.Errorf("failed to list working directory: %w", err)
	}

	manifestName := filepath.Base(manifestPath)
	uploaded := make([]string, 0, len(entries))

	uploadOne := func(fileName string) error {
		key := storage.BundleKey(baseName, fileName)
		localFile := filepath.Join(workDir, fileName)

		if _, err := s.storage.UploadFile(ctx, localFile, key, ""); err != nil {
			s.cleanupRemote(ctx, uploaded)
			return err
		}
		uploaded = append(uploaded, key)

		if err := os.Remove(localFile); err != nil {
			s.logger.Warn("failed to remove local artifact",
				zap.String("path", localFile),
				zap.Error(err),
			)
		}
		return nil
	}

	for _, entry := range entries {
		if entry.IsDir() || entry.Name() == manifestName {
			continue
		}
		if err := uploadOne(entry.Name()); err != nil {
			return "", fmt.Errorf("failed to publish segment: %w", err)
		}
	}

	// Every segment is durable; the manifest goes last
	if err := uploadOne(manifestName); err != nil {
		return "", fmt.Errorf("failed to publish manifest: %w", err)
	}

	return s.storage.PublicURL(storage.BundleKey(baseName, manifestName)), nil
}

// uploadRaw stores the untranscoded file under the generic uploads prefix
func (s *IngestService) uploadRaw(ctx context.Context, localPath, originalName, contentType string) (string, error) {
	fileName := storage.BaseName(originalName) + strings.ToLower(filepath.Ext(originalName))
	key := storage.RawKey(fileName)

	url, err := s.storage.UploadFile(ctx, localPath, key, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return url, nil
}

// fallbackRaw publishes the original upload after a failed transcode or
// publish and records the degraded asset
func (s *IngestService) fallbackRaw(ctx context.Context, localPath, originalName, contentType, baseName string) (*models.UploadResult, error) {
	url, err := s.uploadRaw(ctx, localPath, originalName, contentType)
	if err != nil {
		return nil, err
	}

	asset := &models.MediaAsset{
		BaseName:     baseName,
		Kind:         models.AssetKindRaw,
		ObjectPrefix: storage.UploadsPrefix,
		Status:       models.AssetStatusFallback,
		URL:          url,
	}
	if err := s.assetRepo.Create(ctx, asset); err != nil {
		// The file is already servable; losing the lifecycle row is logged, not fatal
		s.logger.Error("failed to record fallback asset",
			zap.String("base_name", baseName),
			zap.Error(err),
		)
	}

	return &models.UploadResult{URL: url, IsHLS: false}, nil
}

// cleanupRemote best-effort deletes already-uploaded bundle objects
func (s *IngestService) cleanupRemote(ctx context.Context, keys []string) {
	for _, key := range keys {
		if err := s.storage.Delete(ctx, key); err != nil {
			s.logger.Warn("failed to delete partial remote object",
				zap.String("key", key),
				zap.Error(err),
			)
		}
	}
}

// markAsset records a lifecycle transition; the URL is already in the
// caller's hands, so persistence failures are logged, not returned
func (s *IngestService) markAsset(ctx context.Context, id int, status models.AssetStatus, url string) {
	if err := s.assetRepo.UpdateStatus(ctx, id, status, url); err != nil {
		s.logger.Error("failed to update media asset status",
			zap.Int("asset_id", id),
			zap.String("status", string(status)),
			zap.Error(err),
		)
	}
}
