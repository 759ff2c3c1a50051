package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/coursehub/media-service/internal/errs"
	"github.com/coursehub/media-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupLessonTestRepository creates a lesson repository with a mock database
func setupLessonTestRepository(t *testing.T) (*lessonRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewLessonRepository(db)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestNewLessonRepository(t *testing.T) {
	db := &sql.DB{}

	repo := NewLessonRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestLessonRepository_GetByID(t *testing.T) {
	tests := []struct {
		name           string
		id             int
		setupMock      func(sqlmock.Sqlmock)
		expectedError  error
		expectedLesson *models.Lesson
	}{
		{
			name: "success",
			id:   42,
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "course_id", "title", "video_url", "is_free"}).
					AddRow(42, 7, "Intro to Kanji", "https://cdn.example.com/uploads/hls/intro-abc123/master.m3u8", true)
				mock.ExpectQuery(`SELECT id, course_id, title, video_url, is_free FROM lessons WHERE id = \? LIMIT 1`).
					WithArgs(42).
					WillReturnRows(rows)
			},
			expectedLesson: &models.Lesson{
				ID:       42,
				CourseID: 7,
				Title:    "Intro to Kanji",
				VideoURL: "https://cdn.example.com/uploads/hls/intro-abc123/master.m3u8",
				IsFree:   true,
			},
		},
		{
			name: "not found",
			id:   999,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, course_id, title, video_url, is_free FROM lessons WHERE id = \? LIMIT 1`).
					WithArgs(999).
					WillReturnError(sql.ErrNoRows)
			},
			expectedError: errs.ErrLessonNotFound,
		},
		{
			name: "database error",
			id:   42,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, course_id, title, video_url, is_free FROM lessons WHERE id = \? LIMIT 1`).
					WithArgs(42).
					WillReturnError(errors.New("connection refused"))
			},
			expectedError: errors.New("failed to get lesson by id"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupLessonTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			lesson, err := repo.GetByID(context.Background(), tt.id)

			if tt.expectedError != nil {
				require.Error(t, err)
				if errors.Is(tt.expectedError, errs.ErrLessonNotFound) {
					assert.ErrorIs(t, err, errs.ErrLessonNotFound)
				}
				assert.Nil(t, lesson)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedLesson, lesson)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestLessonRepository_GetAttachments(t *testing.T) {
	tests := []struct {
		name          string
		lessonID      int
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedCount int
	}{
		{
			name:     "two attachments",
			lessonID: 42,
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "title", "url"}).
					AddRow(1, "Worksheet", "https://cdn.example.com/uploads/files/worksheet-ab12.pdf").
					AddRow(2, "Slides", "https://cdn.example.com/uploads/files/slides-cd34.pdf")
				mock.ExpectQuery(`SELECT id, title, url FROM attachments WHERE lesson_id = \? ORDER BY id`).
					WithArgs(42).
					WillReturnRows(rows)
			},
			expectedCount: 2,
		},
		{
			name:     "no attachments",
			lessonID: 7,
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "title", "url"})
				mock.ExpectQuery(`SELECT id, title, url FROM attachments WHERE lesson_id = \? ORDER BY id`).
					WithArgs(7).
					WillReturnRows(rows)
			},
			expectedCount: 0,
		},
		{
			name:     "database error",
			lessonID: 42,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, title, url FROM attachments WHERE lesson_id = \? ORDER BY id`).
					WithArgs(42).
					WillReturnError(errors.New("connection refused"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupLessonTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			attachments, err := repo.GetAttachments(context.Background(), tt.lessonID)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				// Empty result must still be a non-nil slice for JSON encoding
				assert.NotNil(t, attachments)
				assert.Len(t, attachments, tt.expectedCount)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestLessonRepository_UpdateVideoURL(t *testing.T) {
	tests := []struct {
		name          string
		lessonID      int
		videoURL      string
		setupMock     func(sqlmock.Sqlmock)
		expectedError error
	}{
		{
			name:     "success",
			lessonID: 42,
			videoURL: "https://cdn.example.com/uploads/hls/intro-abc123/master.m3u8",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE lessons SET video_url = \? WHERE id = \?`).
					WithArgs("https://cdn.example.com/uploads/hls/intro-abc123/master.m3u8", 42).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name:     "lesson missing",
			lessonID: 999,
			videoURL: "https://cdn.example.com/uploads/files/video-ab12.mp4",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE lessons SET video_url = \? WHERE id = \?`).
					WithArgs("https://cdn.example.com/uploads/files/video-ab12.mp4", 999).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			expectedError: errs.ErrLessonNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupLessonTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.UpdateVideoURL(context.Background(), tt.lessonID, tt.videoURL)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
