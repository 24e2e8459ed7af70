package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/BehruzDev0000/learning-center/internal/config"
	"github.com/BehruzDev0000/learning-center/internal/types"
)

// newTestStorage opens an in-memory database. The pool is pinned to a
// single connection: each SQLite :memory: connection is its own
// database, so a second pooled connection would see no tables.
func newTestStorage(t *testing.T) *SQLite {
	t.Helper()

	s, err := New(&config.Config{StoragePath: ":memory:"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s.Db.SetMaxOpenConns(1)
	t.Cleanup(func() { s.Db.Close() })

	return s
}

func createTestCourse(t *testing.T, s *SQLite) types.Course {
	t.Helper()
	course, err := s.CreateCourse(context.Background(), types.CreateCourseRequest{
		Name:        "Go 101",
		Description: "Intro",
		StartDate:   "2025-09-01",
		EndDate:     "2025-09-30",
	})
	if err != nil {
		t.Fatalf("CreateCourse: %v", err)
	}
	return course
}

func createTestStudent(t *testing.T, s *SQLite, courseID int64, email, phone string) types.Student {
	t.Helper()
	student, err := s.CreateStudent(context.Background(), types.CreateStudentRequest{
		FullName: "A",
		Email:    email,
		Phone:    phone,
		CourseID: courseID,
	})
	if err != nil {
		t.Fatalf("CreateStudent: %v", err)
	}
	return student
}

func TestCourseCRUD(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	created := createTestCourse(t, s)
	if created.ID == 0 {
		t.Fatal("CreateCourse: id not assigned")
	}

	got, err := s.GetCourseByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetCourseByID: %v", err)
	}
	if got.ID != created.ID || got.Name != created.Name ||
		got.StartDate != created.StartDate || got.EndDate != created.EndDate {
		t.Errorf("GetCourseByID: got %+v, want %+v", got, created)
	}

	name := "Go 201"
	updated, err := s.UpdateCourseByID(ctx, created.ID, types.UpdateCourseRequest{Name: &name})
	if err != nil {
		t.Fatalf("UpdateCourseByID: %v", err)
	}
	if updated.Name != name || updated.Description != created.Description {
		t.Errorf("UpdateCourseByID: got %+v", updated)
	}

	if err := s.DeleteCourseByID(ctx, created.ID); err != nil {
		t.Fatalf("DeleteCourseByID: %v", err)
	}
	if _, err := s.GetCourseByID(ctx, created.ID); !errors.Is(err, types.ErrCourseNotFound) {
		t.Errorf("GetCourseByID after delete: err = %v, want ErrCourseNotFound", err)
	}
}

// Zero rows affected on update/delete is not-found, never a silent
// success.
func TestCourseMissingID(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	if _, err := s.GetCourseByID(ctx, 42); !errors.Is(err, types.ErrCourseNotFound) {
		t.Errorf("GetCourseByID: err = %v, want ErrCourseNotFound", err)
	}
	name := "Z"
	if _, err := s.UpdateCourseByID(ctx, 42, types.UpdateCourseRequest{Name: &name}); !errors.Is(err, types.ErrCourseNotFound) {
		t.Errorf("UpdateCourseByID: err = %v, want ErrCourseNotFound", err)
	}
	if err := s.DeleteCourseByID(ctx, 42); !errors.Is(err, types.ErrCourseNotFound) {
		t.Errorf("DeleteCourseByID: err = %v, want ErrCourseNotFound", err)
	}
}

func TestGetCoursesWithStudents(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	first := createTestCourse(t, s)
	second := createTestCourse(t, s)
	createTestStudent(t, s, first.ID, "a@x.com", "+10000000001")
	createTestStudent(t, s, first.ID, "b@x.com", "+10000000002")

	courses, err := s.GetCourses(ctx, true)
	if err != nil {
		t.Fatalf("GetCourses: %v", err)
	}
	if len(courses) != 2 {
		t.Fatalf("GetCourses: %d courses, want 2", len(courses))
	}
	if len(courses[0].Students) != 2 {
		t.Errorf("course %d has %d students, want 2", first.ID, len(courses[0].Students))
	}
	// A course with no students still carries an empty (non-nil) slice.
	if courses[1].Students == nil || len(courses[1].Students) != 0 {
		t.Errorf("course %d students = %v, want empty slice", second.ID, courses[1].Students)
	}
}

func TestGetStudentsWithCourse(t *testing.T) {
	s := newTestStorage(t)

	course := createTestCourse(t, s)
	createTestStudent(t, s, course.ID, "a@x.com", "+10000000001")

	students, err := s.GetStudents(context.Background(), true)
	if err != nil {
		t.Fatalf("GetStudents: %v", err)
	}
	if len(students) != 1 {
		t.Fatalf("GetStudents: %d students, want 1", len(students))
	}
	if students[0].Course == nil || students[0].Course.ID != course.ID {
		t.Errorf("student course = %+v, want course %d", students[0].Course, course.ID)
	}
}

// The UNIQUE constraints are the authoritative uniqueness guarantee;
// the adapter must surface their violations as the typed duplicates.
func TestStudentUniqueConstraints(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	course := createTestCourse(t, s)
	createTestStudent(t, s, course.ID, "a@x.com", "+10000000001")

	_, err := s.CreateStudent(ctx, types.CreateStudentRequest{
		FullName: "B", Email: "a@x.com", Phone: "+10000000002", CourseID: course.ID,
	})
	if !errors.Is(err, types.ErrDuplicateEmail) {
		t.Errorf("duplicate email: err = %v, want ErrDuplicateEmail", err)
	}

	_, err = s.CreateStudent(ctx, types.CreateStudentRequest{
		FullName: "B", Email: "b@x.com", Phone: "+10000000001", CourseID: course.ID,
	})
	if !errors.Is(err, types.ErrDuplicatePhone) {
		t.Errorf("duplicate phone: err = %v, want ErrDuplicatePhone", err)
	}

	// Updates hit the same constraints.
	other := createTestStudent(t, s, course.ID, "c@x.com", "+10000000003")
	email := "a@x.com"
	_, err = s.UpdateStudentByID(ctx, other.ID, types.UpdateStudentRequest{Email: &email})
	if !errors.Is(err, types.ErrDuplicateEmail) {
		t.Errorf("update to taken email: err = %v, want ErrDuplicateEmail", err)
	}
}

func TestStudentForeignKeyViolation(t *testing.T) {
	s := newTestStorage(t)

	_, err := s.CreateStudent(context.Background(), types.CreateStudentRequest{
		FullName: "A", Email: "a@x.com", Phone: "+10000000001", CourseID: 999,
	})
	if !errors.Is(err, types.ErrCourseNotFound) {
		t.Errorf("dangling course_id: err = %v, want ErrCourseNotFound", err)
	}
}

// Deleting a course removes its students through the schema's cascade;
// no application code touches the students table.
func TestCourseDeleteCascades(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	course := createTestCourse(t, s)
	student := createTestStudent(t, s, course.ID, "a@x.com", "+10000000001")

	if err := s.DeleteCourseByID(ctx, course.ID); err != nil {
		t.Fatalf("DeleteCourseByID: %v", err)
	}
	if _, err := s.GetStudentByID(ctx, student.ID); !errors.Is(err, types.ErrStudentNotFound) {
		t.Errorf("student survived the cascade: err = %v, want ErrStudentNotFound", err)
	}
}

func TestUniquenessLookups(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	course := createTestCourse(t, s)
	created := createTestStudent(t, s, course.ID, "a@x.com", "+10000000001")

	byEmail, err := s.GetStudentByEmail(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("GetStudentByEmail: %v", err)
	}
	if byEmail.ID != created.ID {
		t.Errorf("GetStudentByEmail: id = %d, want %d", byEmail.ID, created.ID)
	}

	if _, err := s.GetStudentByPhone(ctx, "+19999999999"); !errors.Is(err, types.ErrStudentNotFound) {
		t.Errorf("GetStudentByPhone (absent): err = %v, want ErrStudentNotFound", err)
	}
}

func TestUpdateWithNoFields(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	course := createTestCourse(t, s)
	got, err := s.UpdateCourseByID(ctx, course.ID, types.UpdateCourseRequest{})
	if err != nil {
		t.Fatalf("UpdateCourseByID: %v", err)
	}
	if got.Name != course.Name || got.StartDate != course.StartDate ||
		got.EndDate != course.EndDate {
		t.Errorf("empty update changed the record: %+v", got)
	}

	if _, err := s.UpdateCourseByID(ctx, 42, types.UpdateCourseRequest{}); !errors.Is(err, types.ErrCourseNotFound) {
		t.Errorf("empty update of missing id: err = %v, want ErrCourseNotFound", err)
	}
}
