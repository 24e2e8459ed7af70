package types

import "errors"

// Domain error taxonomy. These sentinels are the complete vocabulary of
// rejection the core speaks; the storage adapter and the services both
// produce them, and the response package maps them to client-facing
// status codes. They live in types for the same reason the models do:
// every layer needs them and none may import another for them.
//
// Callers match with errors.Is so the sentinels survive %w wrapping.
var (
	// ErrInvalidDateRange — a course's start date is after its end date.
	// Raised before any store call is made.
	ErrInvalidDateRange = errors.New("start date cannot be greater than end date")

	// ErrCourseNotFound — no course with the given id (on find, update,
	// delete, or when a student references a missing course).
	ErrCourseNotFound = errors.New("course not found")

	// ErrStudentNotFound — no student with the given id.
	ErrStudentNotFound = errors.New("student not found")

	// ErrDuplicateEmail — another student already holds this email.
	ErrDuplicateEmail = errors.New("email already exists")

	// ErrDuplicatePhone — another student already holds this phone number.
	ErrDuplicatePhone = errors.New("phone number already exists")
)
