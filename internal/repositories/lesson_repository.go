package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/coursehub/media-service/internal/errs"
	"github.com/coursehub/media-service/internal/models"
)

// lessonRepository implements lesson read access. Lessons are owned by the
// catalog service; this service reads them and writes back only video_url.
type lessonRepository struct {
	db *sql.DB
}

// NewLessonRepository creates a new lesson repository
func NewLessonRepository(db *sql.DB) *lessonRepository {
	return &lessonRepository{
		db: db,
	}
}

// GetByID retrieves a lesson by its ID
func (r *lessonRepository) GetByID(ctx context.Context, id int) (*models.Lesson, error) {
	query := `
		SELECT id, course_id, title, video_url, is_free
		FROM lessons
		WHERE id = ?
		LIMIT 1
	`

	var lesson models.Lesson
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&lesson.ID,
		&lesson.CourseID,
		&lesson.Title,
		&lesson.VideoURL,
		&lesson.IsFree,
	)

	if err == sql.ErrNoRows {
		return nil, errs.ErrLessonNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lesson by id: %w", err)
	}

	return &lesson, nil
}

// GetAttachments retrieves all attachments for a lesson, ordered by ID
func (r *lessonRepository) GetAttachments(ctx context.Context, lessonID int) ([]models.Attachment, error) {
	query := `
		SELECT id, title, url
		FROM attachments
		WHERE lesson_id = ?
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, lessonID)
	if err != nil {
		return nil, fmt.Errorf("failed to get attachments: %w", err)
	}
	defer rows.Close()

	attachments := make([]models.Attachment, 0)
	for rows.Next() {
		var a models.Attachment
		if err := rows.Scan(&a.ID, &a.Title, &a.URL); err != nil {
			return nil, fmt.Errorf("failed to scan attachment: %w", err)
		}
		attachments = append(attachments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attachments: %w", err)
	}

	return attachments, nil
}

// UpdateVideoURL writes the stored asset URL back onto the lesson record
func (r *lessonRepository) UpdateVideoURL(ctx context.Context, lessonID int, videoURL string) error {
	query := `UPDATE lessons SET video_url = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, videoURL, lessonID)
	if err != nil {
		return fmt.Errorf("failed to update video url: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errs.ErrLessonNotFound
	}

	return nil
}
