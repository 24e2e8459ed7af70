// Package storage defines the Storage interface — a contract that any
// database backend must satisfy to work with this application.
//
// WHY AN INTERFACE?
// ─────────────────
// Services should not know or care which database they are talking to.
// By depending only on this interface:
//
//   - Switching databases = implement the interface for the new DB,
//     change one line in main.go. Zero service changes.
//
//   - Writing tests = pass a fake/mock that satisfies the interface.
//     No real database needed for unit tests.
//
// This is the Dependency Inversion Principle in practice.
package storage

import (
	"context"

	"github.com/BehruzDev0000/learning-center/internal/types"
)

// Storage is the database contract for both entity types.
// Any concrete type that implements ALL of these methods automatically
// satisfies this interface — Go does this implicitly (no "implements"
// keyword required).
//
// Not-found reporting is uniform: every by-id method (get, update,
// delete) returns types.ErrCourseNotFound / types.ErrStudentNotFound
// when nothing matched. For updates and deletes that means a
// zero-rows-affected result — the adapter must treat it as not-found,
// never as a silent no-op success.
type Storage interface {
	// CreateCourse inserts a new course and returns it with the
	// store-assigned id filled in.
	CreateCourse(ctx context.Context, req types.CreateCourseRequest) (types.Course, error)

	// GetCourseByID fetches a single course by primary key, without
	// its students relation.
	GetCourseByID(ctx context.Context, id int64) (types.Course, error)

	// GetCourses returns every course. When withStudents is true each
	// course carries its enrolled students, eagerly loaded.
	// Returns an empty slice (not nil) if there are no courses.
	GetCourses(ctx context.Context, withStudents bool) ([]types.Course, error)

	// UpdateCourseByID applies the non-nil fields of req to the course
	// and returns the updated record.
	UpdateCourseByID(ctx context.Context, id int64, req types.UpdateCourseRequest) (types.Course, error)

	// DeleteCourseByID removes a course. Dependent students are removed
	// by the store's cascade, not by application code.
	DeleteCourseByID(ctx context.Context, id int64) error

	// CreateStudent inserts a new student and returns it with the
	// store-assigned id filled in. Store-level unique/foreign-key
	// violations come back as the corresponding typed errors
	// (ErrDuplicateEmail, ErrDuplicatePhone, ErrCourseNotFound).
	CreateStudent(ctx context.Context, req types.CreateStudentRequest) (types.Student, error)

	// GetStudentByID fetches a single student by primary key, without
	// its course relation.
	GetStudentByID(ctx context.Context, id int64) (types.Student, error)

	// GetStudents returns every student. When withCourse is true each
	// student carries its course, eagerly loaded.
	GetStudents(ctx context.Context, withCourse bool) ([]types.Student, error)

	// GetStudentByEmail / GetStudentByPhone are the uniqueness lookups
	// used by the integrity checks. Absence is reported as
	// types.ErrStudentNotFound.
	GetStudentByEmail(ctx context.Context, email string) (types.Student, error)
	GetStudentByPhone(ctx context.Context, phone string) (types.Student, error)

	// UpdateStudentByID applies the non-nil fields of req to the
	// student and returns the updated record.
	UpdateStudentByID(ctx context.Context, id int64, req types.UpdateStudentRequest) (types.Student, error)

	// DeleteStudentByID removes a student permanently.
	DeleteStudentByID(ctx context.Context, id int64) error
}
