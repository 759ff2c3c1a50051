package models

// Role values carried in the JWT access token
const (
	RoleStudent    = 1
	RoleInstructor = 2
	RoleAdmin      = 3
)

// Lesson represents a lesson in a course
type Lesson struct {
	ID       int    `json:"id"`
	CourseID int    `json:"courseId"`
	Title    string `json:"title"`
	VideoURL string `json:"videoUrl"`
	IsFree   bool   `json:"isFree"`
}

// Attachment represents an auxiliary file tied to a lesson
type Attachment struct {
	ID       int    `json:"id"`
	LessonID int    `json:"lessonId,omitempty"`
	Title    string `json:"title"`
	URL      string `json:"url"`
}

// SecureLessonView is the authorized lesson payload returned to players.
// VideoURL is rewritten to a streaming-proxy-relative URL for store-hosted
// assets; external provider URLs are passed through unchanged.
type SecureLessonView struct {
	ID          int          `json:"id"`
	CourseID    int          `json:"courseId"`
	Title       string       `json:"title"`
	VideoURL    string       `json:"videoUrl"`
	IsFree      bool         `json:"isFree"`
	Attachments []Attachment `json:"attachments"`
}
