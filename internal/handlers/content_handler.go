package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	authMiddleware "github.com/coursehub/media-service/internal/auth/middleware"
	"github.com/coursehub/media-service/internal/errs"
	"github.com/coursehub/media-service/internal/models"
	"go.uber.org/zap"
)

// AccessGate defines the interface for the lesson access decision
type AccessGate interface {
	// Method GetSecureLesson authorizes the caller for a lesson and returns
	// the playable view.
	//
	// "callerID" parameter is nil for guests.
	// "role" parameter is 0 for guests.
	//
	// Fails with errs.ErrLessonNotFound, errs.ErrLoginRequired or
	// errs.ErrEnrollmentRequired when access is denied.
	GetSecureLesson(ctx context.Context, lessonID int, callerID *int, role int) (*models.SecureLessonView, error)
}

// ContentHandler handles secure lesson content HTTP requests
type ContentHandler struct {
	BaseHandler
	accessGate AccessGate
}

// NewContentHandler creates a new content handler
func NewContentHandler(accessGate AccessGate, logger *zap.Logger) *ContentHandler {
	return &ContentHandler{
		BaseHandler: BaseHandler{Logger: logger},
		accessGate:  accessGate,
	}
}

// GetLessonContent handles GET /lessons/{id}/content
// @Summary Get playable lesson content
// @Description Returns the lesson with its video URL and attachments if the caller is authorized: the lesson is free, the caller is an admin, or the caller is enrolled in the course.
// @Tags lessons
// @Accept json
// @Produce json
// @Param id path int true "Lesson ID"
// @Success 200 {object} models.SecureLessonView
// @Failure 400 {object} map[string]string "Invalid lesson id"
// @Failure 401 {object} map[string]string "Login required"
// @Failure 403 {object} map[string]string "Enrollment required"
// @Failure 404 {object} map[string]string "Lesson not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /lessons/{id}/content [get]
func (h *ContentHandler) GetLessonContent(w http.ResponseWriter, r *http.Request) {
	lessonID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid lesson id")
		return
	}

	var callerID *int
	role := 0
	if userID, ok := authMiddleware.GetUserID(r.Context()); ok {
		callerID = &userID
	}
	if r2, ok := authMiddleware.GetRole(r.Context()); ok {
		role = r2
	}

	view, err := h.accessGate.GetSecureLesson(r.Context(), lessonID, callerID, role)
	if err != nil {
		h.respondAccessError(w, err, callerID == nil, lessonID)
		return
	}

	h.RespondJSON(w, http.StatusOK, view)
}

// respondAccessError maps gate errors to HTTP responses. Guests get the same
// answer for a missing lesson and a paid lesson: revealing which lessons
// exist is left to the public catalog, not this endpoint.
func (h *ContentHandler) respondAccessError(w http.ResponseWriter, err error, guest bool, lessonID int) {
	switch {
	case errors.Is(err, errs.ErrLessonNotFound):
		if guest {
			h.RespondError(w, http.StatusUnauthorized, "login required")
			return
		}
		h.RespondError(w, http.StatusNotFound, "lesson not found")
	case errors.Is(err, errs.ErrLoginRequired):
		h.RespondError(w, http.StatusUnauthorized, "login required")
	case errors.Is(err, errs.ErrEnrollmentRequired):
		h.RespondError(w, http.StatusForbidden, "enrollment required")
	default:
		h.Logger.Error("failed to resolve lesson content",
			zap.Int("lesson_id", lessonID),
			zap.Error(err),
		)
		h.RespondError(w, http.StatusInternalServerError, "failed to get lesson content")
	}
}
