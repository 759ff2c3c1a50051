package models

import "time"

// Enrollment proves a user purchased or was granted access to a course.
// Its existence for (UserID, CourseID) is the capability the access gate
// checks; this service never writes enrollments.
type Enrollment struct {
	UserID    int       `json:"userId"`
	CourseID  int       `json:"courseId"`
	CreatedAt time.Time `json:"createdAt"`
}
