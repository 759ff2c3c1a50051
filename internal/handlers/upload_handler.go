package handlers

import (
	"context"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/coursehub/media-service/internal/models"
	"go.uber.org/zap"
)

// Ingestor defines the interface for the ingestion pipeline
type Ingestor interface {
	// Method Ingest stores an uploaded file and returns a servable URL.
	//
	// "localPath" parameter is where the HTTP layer persisted the upload.
	// "originalName" parameter is the client-provided file name.
	// "contentType" parameter is the detected MIME type.
	//
	// Video uploads are transcoded to HLS; on transcode failure the original
	// file's URL is returned with IsHLS=false instead of an error.
	Ingest(ctx context.Context, localPath, originalName, contentType string) (*models.UploadResult, error)
}

// UploadHandler handles media upload HTTP requests
type UploadHandler struct {
	BaseHandler
	ingestor  Ingestor
	uploadDir string
}

// NewUploadHandler creates a new upload handler. uploadDir is the local
// ephemeral directory uploads are staged in before ingestion.
func NewUploadHandler(ingestor Ingestor, logger *zap.Logger, uploadDir string) *UploadHandler {
	return &UploadHandler{
		BaseHandler: BaseHandler{Logger: logger},
		ingestor:    ingestor,
		uploadDir:   uploadDir,
	}
}

// UploadFile handles POST /uploads
// @Summary Upload a media file
// @Description Upload a file. Video files are transcoded to HLS before being stored; other files are stored as-is. Requires API key or instructor token.
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File to upload (max 50MB)"
// @Success 200 {object} models.UploadResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 401 {object} map[string]string "Authentication required"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /uploads [post]
func (h *UploadHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	// Parse multipart form (limit to 50MB)
	err := r.ParseMultipartForm(50 << 20) // 50MB
	if err != nil {
		h.Logger.Error("failed to parse multipart form", zap.Error(err))
		h.RespondError(w, http.StatusBadRequest, "failed to parse request")
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		h.Logger.Error("failed to get file from form", zap.Error(err))
		h.RespondError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = mime.TypeByExtension(filepath.Ext(fileHeader.Filename))
	}
	if contentType == "" || strings.HasPrefix(contentType, "multipart/") {
		contentType = "application/octet-stream"
	}

	// Stage the upload on local ephemeral storage for the pipeline
	scratch, err := os.CreateTemp(h.uploadDir, "upload-*"+filepath.Ext(fileHeader.Filename))
	if err != nil {
		h.Logger.Error("failed to create scratch file", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to store upload")
		return
	}
	scratchPath := scratch.Name()
	defer os.Remove(scratchPath)

	if _, err := io.Copy(scratch, file); err != nil {
		scratch.Close()
		h.Logger.Error("failed to write scratch file", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to store upload")
		return
	}
	if err := scratch.Close(); err != nil {
		h.Logger.Error("failed to close scratch file", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, "failed to store upload")
		return
	}

	result, err := h.ingestor.Ingest(r.Context(), scratchPath, fileHeader.Filename, contentType)
	if err != nil {
		h.Logger.Error("failed to ingest upload",
			zap.String("filename", fileHeader.Filename),
			zap.Error(err),
		)
		h.RespondError(w, http.StatusInternalServerError, "failed to store upload")
		return
	}

	mimeType := contentType
	if result.IsHLS {
		mimeType = "application/x-mpegURL"
	}

	h.RespondJSON(w, http.StatusOK, models.UploadResponse{
		Success: true,
		File: models.UploadedFile{
			URL:      result.URL,
			MimeType: mimeType,
			IsHLS:    result.IsHLS,
		},
	})
}
