// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// WHY SQLite?
// ───────────
// SQLite stores everything in a single file on disk. There is no
// network, no separate server process, and no installation beyond the
// driver. It is fast enough for most projects and trivial to set up.
//
// The blank import below registers the sqlite3 driver with database/sql.
// The driver's init() function does this automatically when the package
// is loaded — we never call anything from it directly... almost: this
// package also inspects sqlite3.Error values to turn schema constraint
// violations into the typed domain errors the services expect. The
// UNIQUE columns on students and the foreign key to courses are the
// authoritative integrity guarantee; the service-level pre-checks are
// just the fast path to a friendly error message.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/BehruzDev0000/learning-center/internal/config"
	"github.com/BehruzDev0000/learning-center/internal/types"

	"github.com/mattn/go-sqlite3"
)

// SQLite is the concrete implementation of storage.Storage.
// It holds a *sql.DB which is a connection pool managed by database/sql.
// A single *sql.DB is safe for concurrent use by multiple goroutines.
type SQLite struct {
	Db *sql.DB
}

// New opens the SQLite database at the path specified in cfg.StoragePath,
// creates the courses and students tables if they do not already exist,
// and returns a ready-to-use *SQLite.
//
// The _foreign_keys=on DSN parameter matters: SQLite ships with foreign
// key enforcement OFF per connection, and without it the ON DELETE
// CASCADE on students would be ignored.
func New(cfg *config.Config) (*SQLite, error) {
	// sql.Open does NOT open a real connection yet — it just validates
	// the driver name and data source name (DSN).
	// The first actual connection happens on the first query.
	db, err := sql.Open("sqlite3", cfg.StoragePath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// CREATE TABLE IF NOT EXISTS is idempotent — safe to run on every
	// startup.
	//
	// Dates are stored as TEXT in ISO form (YYYY-MM-DD); ISO dates sort
	// the same lexically and chronologically, but the range rule is
	// still checked as a parsed calendar comparison in the service.
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS courses (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			name        TEXT NOT NULL,
			description TEXT NOT NULL,
			start_date  TEXT NOT NULL,
			end_date    TEXT NOT NULL
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: create courses table: %w", err)
	}

	// email and phone carry UNIQUE so no two students can ever share
	// them, even when two concurrent requests both pass the service's
	// pre-check. The foreign key cascades deletes and id updates from
	// the parent course.
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS students (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			full_name TEXT    NOT NULL,
			email     TEXT    NOT NULL UNIQUE,
			phone     TEXT    NOT NULL UNIQUE,
			course_id INTEGER NOT NULL
			          REFERENCES courses (id)
			          ON DELETE CASCADE ON UPDATE CASCADE
		)
	`)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: create students table: %w", err)
	}

	return &SQLite{Db: db}, nil
}

// mapConstraintError converts a sqlite3 constraint violation into the
// typed domain error the violated column implies. Any other error is
// returned unchanged.
//
// The driver does not expose WHICH constraint fired as structured data,
// only in the message text ("UNIQUE constraint failed: students.email"),
// so we match on the qualified column name.
func mapConstraintError(err error) error {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return err
	}

	switch sqliteErr.ExtendedCode {
	case sqlite3.ErrConstraintUnique:
		msg := sqliteErr.Error()
		if strings.Contains(msg, "students.email") {
			return types.ErrDuplicateEmail
		}
		if strings.Contains(msg, "students.phone") {
			return types.ErrDuplicatePhone
		}
	case sqlite3.ErrConstraintForeignKey:
		// The only FK in the schema is students.course_id → courses.id.
		return types.ErrCourseNotFound
	}

	return err
}

// ─────────────────────────────────────────────────────────────────────────────
// Courses
// ─────────────────────────────────────────────────────────────────────────────

// CreateCourse inserts a new row into the courses table and returns the
// record with the auto-generated primary key filled in.
//
// Placeholders (?) keep user input out of the SQL text — the driver
// sends query and values separately, so values are never parsed as SQL.
func (s *SQLite) CreateCourse(ctx context.Context, req types.CreateCourseRequest) (types.Course, error) {
	result, err := s.Db.ExecContext(ctx,
		"INSERT INTO courses (name, description, start_date, end_date) VALUES (?, ?, ?, ?)",
		req.Name, req.Description, req.StartDate, req.EndDate,
	)
	if err != nil {
		return types.Course{}, fmt.Errorf("CreateCourse: exec: %w", err)
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return types.Course{}, fmt.Errorf("CreateCourse: last insert id: %w", err)
	}

	return types.Course{
		ID:          lastID,
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}, nil
}

// GetCourseByID fetches exactly one course row matched by primary key.
// sql.ErrNoRows is translated to the domain's not-found error so no
// caller ever has to know about database/sql sentinels.
func (s *SQLite) GetCourseByID(ctx context.Context, id int64) (types.Course, error) {
	var course types.Course

	err := s.Db.QueryRowContext(ctx,
		"SELECT id, name, description, start_date, end_date FROM courses WHERE id = ? LIMIT 1",
		id,
	).Scan(
		&course.ID,
		&course.Name,
		&course.Description,
		&course.StartDate,
		&course.EndDate,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Course{}, types.ErrCourseNotFound
		}
		return types.Course{}, fmt.Errorf("GetCourseByID: scan: %w", err)
	}

	return course, nil
}

// GetCourses returns all course rows as a slice. With withStudents set,
// each course also carries its enrolled students: one extra query for
// the whole student table, grouped in memory by course_id — two round
// trips total, never one per course.
func (s *SQLite) GetCourses(ctx context.Context, withStudents bool) ([]types.Course, error) {
	rows, err := s.Db.QueryContext(ctx,
		// Explicitly list columns — never use SELECT * in production code.
		// If a column is added later, SELECT * would break Scan's ordering.
		"SELECT id, name, description, start_date, end_date FROM courses ORDER BY id",
	)
	if err != nil {
		return nil, fmt.Errorf("GetCourses: query: %w", err)
	}
	defer rows.Close()

	// Pre-allocate an empty (non-nil) slice.
	// Returning [] instead of null in JSON is better API behaviour.
	courses := make([]types.Course, 0)

	for rows.Next() {
		var course types.Course
		if err := rows.Scan(
			&course.ID,
			&course.Name,
			&course.Description,
			&course.StartDate,
			&course.EndDate,
		); err != nil {
			return nil, fmt.Errorf("GetCourses: scan row: %w", err)
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetCourses: rows iteration: %w", err)
	}

	if !withStudents || len(courses) == 0 {
		return courses, nil
	}

	students, err := s.GetStudents(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("GetCourses: load students: %w", err)
	}

	byCourse := make(map[int64][]types.Student, len(courses))
	for _, st := range students {
		byCourse[st.CourseID] = append(byCourse[st.CourseID], st)
	}
	for i := range courses {
		enrolled := byCourse[courses[i].ID]
		if enrolled == nil {
			enrolled = make([]types.Student, 0)
		}
		courses[i].Students = enrolled
	}

	return courses, nil
}

// UpdateCourseByID applies the non-nil fields of req to an existing
// course. The SET clause is built dynamically so omitted fields keep
// their stored values. Zero rows affected means the id does not exist —
// reported as not-found, never as a silent success.
func (s *SQLite) UpdateCourseByID(ctx context.Context, id int64, req types.UpdateCourseRequest) (types.Course, error) {
	sets := make([]string, 0, 4)
	args := make([]any, 0, 5)

	if req.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *req.Name)
	}
	if req.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *req.Description)
	}
	if req.StartDate != nil {
		sets = append(sets, "start_date = ?")
		args = append(args, *req.StartDate)
	}
	if req.EndDate != nil {
		sets = append(sets, "end_date = ?")
		args = append(args, *req.EndDate)
	}

	// Nothing to change: behave like a read so the caller still gets
	// the current record (or a not-found for a bad id).
	if len(sets) == 0 {
		return s.GetCourseByID(ctx, id)
	}

	args = append(args, id)
	result, err := s.Db.ExecContext(ctx,
		"UPDATE courses SET "+strings.Join(sets, ", ")+" WHERE id = ?",
		args...,
	)
	if err != nil {
		return types.Course{}, fmt.Errorf("UpdateCourseByID: exec: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return types.Course{}, fmt.Errorf("UpdateCourseByID: rows affected: %w", err)
	}
	if affected == 0 {
		return types.Course{}, types.ErrCourseNotFound
	}

	// Re-fetch the record so we return exactly what is stored in the DB.
	return s.GetCourseByID(ctx, id)
}

// DeleteCourseByID removes a course row by primary key. Enrolled
// students go with it via the schema's ON DELETE CASCADE; this method
// never touches the students table itself.
func (s *SQLite) DeleteCourseByID(ctx context.Context, id int64) error {
	result, err := s.Db.ExecContext(ctx, "DELETE FROM courses WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("DeleteCourseByID: exec: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("DeleteCourseByID: rows affected: %w", err)
	}
	if affected == 0 {
		return types.ErrCourseNotFound
	}

	return nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Students
// ─────────────────────────────────────────────────────────────────────────────

// CreateStudent inserts a new row into the students table. Constraint
// violations (duplicate email/phone, dangling course_id) surface as the
// typed domain errors, so even when a race slips past the service's
// pre-checks the caller still sees the same outcome.
func (s *SQLite) CreateStudent(ctx context.Context, req types.CreateStudentRequest) (types.Student, error) {
	result, err := s.Db.ExecContext(ctx,
		"INSERT INTO students (full_name, email, phone, course_id) VALUES (?, ?, ?, ?)",
		req.FullName, req.Email, req.Phone, req.CourseID,
	)
	if err != nil {
		if mapped := mapConstraintError(err); mapped != err {
			return types.Student{}, mapped
		}
		return types.Student{}, fmt.Errorf("CreateStudent: exec: %w", err)
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return types.Student{}, fmt.Errorf("CreateStudent: last insert id: %w", err)
	}

	return types.Student{
		ID:       lastID,
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		CourseID: req.CourseID,
	}, nil
}

// GetStudentByID fetches exactly one student row matched by primary key.
func (s *SQLite) GetStudentByID(ctx context.Context, id int64) (types.Student, error) {
	return s.getStudentWhere(ctx, "id = ?", id)
}

// GetStudentByEmail is the uniqueness lookup for emails. Absence is the
// interesting outcome for its callers, reported as ErrStudentNotFound.
func (s *SQLite) GetStudentByEmail(ctx context.Context, email string) (types.Student, error) {
	return s.getStudentWhere(ctx, "email = ?", email)
}

// GetStudentByPhone is the uniqueness lookup for phone numbers.
func (s *SQLite) GetStudentByPhone(ctx context.Context, phone string) (types.Student, error) {
	return s.getStudentWhere(ctx, "phone = ?", phone)
}

// getStudentWhere is the shared single-row student lookup. The where
// argument is always one of the fixed literals above — never user input.
func (s *SQLite) getStudentWhere(ctx context.Context, where string, arg any) (types.Student, error) {
	var student types.Student

	err := s.Db.QueryRowContext(ctx,
		"SELECT id, full_name, email, phone, course_id FROM students WHERE "+where+" LIMIT 1",
		arg,
	).Scan(
		&student.ID,
		&student.FullName,
		&student.Email,
		&student.Phone,
		&student.CourseID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Student{}, types.ErrStudentNotFound
		}
		return types.Student{}, fmt.Errorf("getStudentWhere: scan: %w", err)
	}

	return student, nil
}

// GetStudents returns all student rows as a slice. With withCourse set,
// each student also carries its course, joined in a single query.
func (s *SQLite) GetStudents(ctx context.Context, withCourse bool) ([]types.Student, error) {
	query := "SELECT id, full_name, email, phone, course_id FROM students ORDER BY id"
	if withCourse {
		query = `
			SELECT s.id, s.full_name, s.email, s.phone, s.course_id,
			       c.id, c.name, c.description, c.start_date, c.end_date
			FROM students s
			JOIN courses c ON c.id = s.course_id
			ORDER BY s.id`
	}

	rows, err := s.Db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("GetStudents: query: %w", err)
	}
	defer rows.Close()

	students := make([]types.Student, 0)

	for rows.Next() {
		var student types.Student

		if withCourse {
			var course types.Course
			if err := rows.Scan(
				&student.ID,
				&student.FullName,
				&student.Email,
				&student.Phone,
				&student.CourseID,
				&course.ID,
				&course.Name,
				&course.Description,
				&course.StartDate,
				&course.EndDate,
			); err != nil {
				return nil, fmt.Errorf("GetStudents: scan row: %w", err)
			}
			student.Course = &course
		} else {
			if err := rows.Scan(
				&student.ID,
				&student.FullName,
				&student.Email,
				&student.Phone,
				&student.CourseID,
			); err != nil {
				return nil, fmt.Errorf("GetStudents: scan row: %w", err)
			}
		}

		students = append(students, student)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetStudents: rows iteration: %w", err)
	}

	return students, nil
}

// UpdateStudentByID applies the non-nil fields of req to an existing
// student. Same dynamic SET pattern and zero-affected → not-found rule
// as courses; constraint violations remap the same way creates do.
func (s *SQLite) UpdateStudentByID(ctx context.Context, id int64, req types.UpdateStudentRequest) (types.Student, error) {
	sets := make([]string, 0, 4)
	args := make([]any, 0, 5)

	if req.FullName != nil {
		sets = append(sets, "full_name = ?")
		args = append(args, *req.FullName)
	}
	if req.Email != nil {
		sets = append(sets, "email = ?")
		args = append(args, *req.Email)
	}
	if req.Phone != nil {
		sets = append(sets, "phone = ?")
		args = append(args, *req.Phone)
	}
	if req.CourseID != nil {
		sets = append(sets, "course_id = ?")
		args = append(args, *req.CourseID)
	}

	if len(sets) == 0 {
		return s.GetStudentByID(ctx, id)
	}

	args = append(args, id)
	result, err := s.Db.ExecContext(ctx,
		"UPDATE students SET "+strings.Join(sets, ", ")+" WHERE id = ?",
		args...,
	)
	if err != nil {
		if mapped := mapConstraintError(err); mapped != err {
			return types.Student{}, mapped
		}
		return types.Student{}, fmt.Errorf("UpdateStudentByID: exec: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return types.Student{}, fmt.Errorf("UpdateStudentByID: rows affected: %w", err)
	}
	if affected == 0 {
		return types.Student{}, types.ErrStudentNotFound
	}

	return s.GetStudentByID(ctx, id)
}

// DeleteStudentByID removes a student row by primary key.
func (s *SQLite) DeleteStudentByID(ctx context.Context, id int64) error {
	result, err := s.Db.ExecContext(ctx, "DELETE FROM students WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("DeleteStudentByID: exec: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("DeleteStudentByID: rows affected: %w", err)
	}
	if affected == 0 {
		return types.ErrStudentNotFound
	}

	return nil
}
