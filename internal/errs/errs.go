// Package errs defines domain sentinel errors mapped to HTTP codes in handlers.
package errs

import "errors"

var (
	ErrLessonNotFound     = errors.New("lesson not found")
	ErrLoginRequired      = errors.New("login required")
	ErrEnrollmentRequired = errors.New("enrollment required")
)
