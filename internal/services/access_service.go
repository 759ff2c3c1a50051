package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/coursehub/media-service/internal/errs"
	"github.com/coursehub/media-service/internal/models"
)

// LessonRepository defines the interface for lesson read access
type LessonRepository interface {
	GetByID(ctx context.Context, id int) (*models.Lesson, error)
	GetAttachments(ctx context.Context, lessonID int) ([]models.Attachment, error)
}

// EnrollmentRepository defines the interface for enrollment checks
type EnrollmentRepository interface {
	Exists(ctx context.Context, userID, courseID int) (bool, error)
}

// AccessService decides whether a caller may receive playable content for a
// lesson. It is a pure decision function: one lesson read and, on the
// non-trivial path, exactly one enrollment read. No result is ever cached;
// enrollment can be revoked between requests.
type AccessService struct {
	lessonRepo     LessonRepository
	enrollmentRepo EnrollmentRepository
	publicDomain   string
	streamPath     string
}

// NewAccessService creates a new access service. publicDomain identifies
// store-hosted video URLs that must be rewritten to streamPath for playback.
func NewAccessService(lessonRepo LessonRepository, enrollmentRepo EnrollmentRepository, publicDomain, streamPath string) *AccessService {
	return &AccessService{
		lessonRepo:     lessonRepo,
		enrollmentRepo: enrollmentRepo,
		publicDomain:   strings.TrimSuffix(publicDomain, "/"),
		streamPath:     streamPath,
	}
}

// GetSecureLesson authorizes the caller and returns the securable lesson
// view. callerID is nil for guests. The decision order is fixed:
//
//  1. missing lesson -> errs.ErrLessonNotFound
//  2. free lesson or admin caller -> allow, no enrollment lookup
//  3. guest -> errs.ErrLoginRequired
//  4. no enrollment for (caller, course) -> errs.ErrEnrollmentRequired
//  5. otherwise -> allow
func (s *AccessService) GetSecureLesson(ctx context.Context, lessonID int, callerID *int, role int) (*models.SecureLessonView, error) {
	lesson, err := s.lessonRepo.GetByID(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	if !lesson.IsFree && role != models.RoleAdmin {
		if callerID == nil {
			return nil, errs.ErrLoginRequired
		}

		enrolled, err := s.enrollmentRepo.Exists(ctx, *callerID, lesson.CourseID)
		if err != nil {
			return nil, fmt.Errorf("failed to check enrollment: %w", err)
		}
		if !enrolled {
			return nil, errs.ErrEnrollmentRequired
		}
	}

	attachments, err := s.lessonRepo.GetAttachments(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	return &models.SecureLessonView{
		ID:          lesson.ID,
		CourseID:    lesson.CourseID,
		Title:       lesson.Title,
		VideoURL:    s.secureVideoURL(lesson.VideoURL),
		IsFree:      lesson.IsFree,
		Attachments: attachments,
	}, nil
}

// secureVideoURL rewrites store-hosted video URLs into the streaming-proxy
// form the player expects. External provider URLs pass through unchanged so
// embeds keep working.
func (s *AccessService) secureVideoURL(videoURL string) string {
	if videoURL == "" {
		return ""
	}
	if s.publicDomain == "" || !strings.HasPrefix(videoURL, s.publicDomain+"/") {
		return videoURL
	}
	return s.streamPath + "?url=" + url.QueryEscape(videoURL)
}
