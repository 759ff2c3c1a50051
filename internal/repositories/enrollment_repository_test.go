package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEnrollmentTestRepository(t *testing.T) (*enrollmentRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewEnrollmentRepository(db)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestEnrollmentRepository_Exists(t *testing.T) {
	tests := []struct {
		name           string
		userID         int
		courseID       int
		setupMock      func(sqlmock.Sqlmock)
		expectedExists bool
		expectedError  bool
	}{
		{
			name:     "enrolled",
			userID:   10,
			courseID: 7,
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"1"}).AddRow(1)
				mock.ExpectQuery(`SELECT 1 FROM enrollments WHERE user_id = \? AND course_id = \? LIMIT 1`).
					WithArgs(10, 7).
					WillReturnRows(rows)
			},
			expectedExists: true,
		},
		{
			name:     "not enrolled",
			userID:   10,
			courseID: 8,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT 1 FROM enrollments WHERE user_id = \? AND course_id = \? LIMIT 1`).
					WithArgs(10, 8).
					WillReturnError(sql.ErrNoRows)
			},
			expectedExists: false,
		},
		{
			name:     "database error",
			userID:   10,
			courseID: 7,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT 1 FROM enrollments WHERE user_id = \? AND course_id = \? LIMIT 1`).
					WithArgs(10, 7).
					WillReturnError(errors.New("connection refused"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupEnrollmentTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			exists, err := repo.Exists(context.Background(), tt.userID, tt.courseID)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedExists, exists)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
