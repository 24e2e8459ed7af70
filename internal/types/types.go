// Package types holds all shared data structures (models) used across
// the application. Keeping them in one place prevents import cycles —
// handlers, services, storage, and utils can all import types without
// depending on each other.
package types

// Course represents a course record.
//
// Struct tags serve two purposes:
//
//  1. json:"..."  — controls how the field appears when encoded to JSON
//     (snake_case names match the REST API conventions).
//
//  2. validate:"..." — rules checked by the go-playground/validator
//     package on the request types below, not on the models themselves.
//
// Students is only populated by list reads that ask for relations;
// single-record reads leave it nil, and `omitempty` keeps the empty
// field out of the JSON in that case.
type Course struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	StartDate   string    `json:"start_date"` // calendar date, YYYY-MM-DD
	EndDate     string    `json:"end_date"`   // calendar date, YYYY-MM-DD
	Students    []Student `json:"students,omitempty"`
}

// Student represents a student enrolled in a course.
// Course is the resolved many-to-one relation; like Course.Students it
// is only populated on list-with-relations reads.
type Student struct {
	ID       int64   `json:"id"`
	FullName string  `json:"full_name"`
	Email    string  `json:"email"`
	Phone    string  `json:"phone"`
	CourseID int64   `json:"course_id"`
	Course   *Course `json:"course,omitempty"`
}

// CreateCourseRequest is the payload for POST /api/v1/courses.
// Dates must be ISO calendar dates; the range check (start <= end) is a
// domain rule enforced by the service, not a structural one.
type CreateCourseRequest struct {
	Name        string `json:"name"        validate:"required"`
	Description string `json:"description" validate:"required"`
	StartDate   string `json:"start_date"  validate:"required,datetime=2006-01-02"`
	EndDate     string `json:"end_date"    validate:"required,datetime=2006-01-02"`
}

// UpdateCourseRequest is the payload for PUT /api/v1/courses/{id}.
// Every field is a pointer so the handler can tell "not submitted"
// (nil) apart from "submitted as empty" — omitted fields keep their
// stored values.
type UpdateCourseRequest struct {
	Name        *string `json:"name"        validate:"omitempty,min=1"`
	Description *string `json:"description" validate:"omitempty,min=1"`
	StartDate   *string `json:"start_date"  validate:"omitempty,datetime=2006-01-02"`
	EndDate     *string `json:"end_date"    validate:"omitempty,datetime=2006-01-02"`
}

// CreateStudentRequest is the payload for POST /api/v1/students.
type CreateStudentRequest struct {
	FullName string `json:"full_name" validate:"required"`
	Email    string `json:"email"     validate:"required,email"`
	Phone    string `json:"phone"     validate:"required,e164"`
	CourseID int64  `json:"course_id" validate:"required"`
}

// UpdateStudentRequest is the payload for PUT /api/v1/students/{id}.
// Pointer fields, same partial-replacement semantics as courses.
type UpdateStudentRequest struct {
	FullName *string `json:"full_name" validate:"omitempty,min=1"`
	Email    *string `json:"email"     validate:"omitempty,email"`
	Phone    *string `json:"phone"     validate:"omitempty,e164"`
	CourseID *int64  `json:"course_id" validate:"omitempty"`
}
