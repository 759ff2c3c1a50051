package repositories

import (
	"context"
	"database/sql"
	"fmt"
)

// enrollmentRepository implements enrollment read access. Enrollments are
// written by the payment flow; this service only checks for their existence.
type enrollmentRepository struct {
	db *sql.DB
}

// NewEnrollmentRepository creates a new enrollment repository
func NewEnrollmentRepository(db *sql.DB) *enrollmentRepository {
	return &enrollmentRepository{
		db: db,
	}
}

// Exists reports whether an enrollment row exists for (userID, courseID)
func (r *enrollmentRepository) Exists(ctx context.Context, userID, courseID int) (bool, error) {
	query := `
		SELECT 1
		FROM enrollments
		WHERE user_id = ? AND course_id = ?
		LIMIT 1
	`

	var one int
	err := r.db.QueryRowContext(ctx, query, userID, courseID).Scan(&one)

	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check enrollment: %w", err)
	}

	return true, nil
}
