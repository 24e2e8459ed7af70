package service

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/BehruzDev0000/learning-center/internal/cache"
	"github.com/BehruzDev0000/learning-center/internal/types"
)

// fakeStorage is an in-memory storage.Storage that counts collaborator
// calls, so tests can assert not just outcomes but which round-trips
// happened (store never touched on a cache hit, create never attempted
// after a rejected check, and so on).
type fakeStorage struct {
	courses  map[int64]types.Course
	students map[int64]types.Student
	nextID   int64

	courseListCalls  int
	studentListCalls int
	courseCreates    int
	courseUpdates    int
	studentCreates   int
	studentUpdates   int
	emailLookups     int
	phoneLookups     int
	courseGets       int
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		courses:  make(map[int64]types.Course),
		students: make(map[int64]types.Student),
	}
}

func (f *fakeStorage) CreateCourse(_ context.Context, req types.CreateCourseRequest) (types.Course, error) {
	f.courseCreates++
	f.nextID++
	course := types.Course{
		ID:          f.nextID,
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}
	f.courses[course.ID] = course
	return course, nil
}

func (f *fakeStorage) GetCourseByID(_ context.Context, id int64) (types.Course, error) {
	f.courseGets++
	course, ok := f.courses[id]
	if !ok {
		return types.Course{}, types.ErrCourseNotFound
	}
	return course, nil
}

func (f *fakeStorage) GetCourses(_ context.Context, _ bool) ([]types.Course, error) {
	f.courseListCalls++
	courses := make([]types.Course, 0, len(f.courses))
	for _, course := range f.courses {
		courses = append(courses, course)
	}
	return courses, nil
}

func (f *fakeStorage) UpdateCourseByID(_ context.Context, id int64, req types.UpdateCourseRequest) (types.Course, error) {
	f.courseUpdates++
	course, ok := f.courses[id]
	if !ok {
		return types.Course{}, types.ErrCourseNotFound
	}
	if req.Name != nil {
		course.Name = *req.Name
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.StartDate != nil {
		course.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		course.EndDate = *req.EndDate
	}
	f.courses[id] = course
	return course, nil
}

func (f *fakeStorage) DeleteCourseByID(_ context.Context, id int64) error {
	if _, ok := f.courses[id]; !ok {
		return types.ErrCourseNotFound
	}
	delete(f.courses, id)
	// Mimic the store-level cascade.
	for sid, st := range f.students {
		if st.CourseID == id {
			delete(f.students, sid)
		}
	}
	return nil
}

func (f *fakeStorage) CreateStudent(_ context.Context, req types.CreateStudentRequest) (types.Student, error) {
	f.studentCreates++
	f.nextID++
	student := types.Student{
		ID:       f.nextID,
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
		CourseID: req.CourseID,
	}
	f.students[student.ID] = student
	return student, nil
}

func (f *fakeStorage) GetStudentByID(_ context.Context, id int64) (types.Student, error) {
	student, ok := f.students[id]
	if !ok {
		return types.Student{}, types.ErrStudentNotFound
	}
	return student, nil
}

func (f *fakeStorage) GetStudents(_ context.Context, _ bool) ([]types.Student, error) {
	f.studentListCalls++
	students := make([]types.Student, 0, len(f.students))
	for _, student := range f.students {
		students = append(students, student)
	}
	return students, nil
}

func (f *fakeStorage) GetStudentByEmail(_ context.Context, email string) (types.Student, error) {
	f.emailLookups++
	for _, student := range f.students {
		if student.Email == email {
			return student, nil
		}
	}
	return types.Student{}, types.ErrStudentNotFound
}

func (f *fakeStorage) GetStudentByPhone(_ context.Context, phone string) (types.Student, error) {
	f.phoneLookups++
	for _, student := range f.students {
		if student.Phone == phone {
			return student, nil
		}
	}
	return types.Student{}, types.ErrStudentNotFound
}

func (f *fakeStorage) UpdateStudentByID(_ context.Context, id int64, req types.UpdateStudentRequest) (types.Student, error) {
	f.studentUpdates++
	student, ok := f.students[id]
	if !ok {
		return types.Student{}, types.ErrStudentNotFound
	}
	if req.FullName != nil {
		student.FullName = *req.FullName
	}
	if req.Email != nil {
		student.Email = *req.Email
	}
	if req.Phone != nil {
		student.Phone = *req.Phone
	}
	if req.CourseID != nil {
		student.CourseID = *req.CourseID
	}
	f.students[id] = student
	return student, nil
}

func (f *fakeStorage) DeleteStudentByID(_ context.Context, id int64) error {
	if _, ok := f.students[id]; !ok {
		return types.ErrStudentNotFound
	}
	delete(f.students, id)
	return nil
}

// fakeCache is an in-memory cache.Cache with injectable failures and
// call counters. TTLs are ignored; staleness behaviour under TTL is the
// memory/redis implementations' concern, not the services'.
type fakeCache struct {
	entries map[string]string

	getErr error
	setErr error
	delErr error

	gets int
	sets int
	dels int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]string)}
}

func (f *fakeCache) Get(_ context.Context, key string) (string, error) {
	f.gets++
	if f.getErr != nil {
		return "", f.getErr
	}
	value, ok := f.entries[key]
	if !ok {
		return "", cache.ErrMiss
	}
	return value, nil
}

func (f *fakeCache) Set(_ context.Context, key string, value string, _ time.Duration) error {
	f.sets++
	if f.setErr != nil {
		return f.setErr
	}
	f.entries[key] = value
	return nil
}

func (f *fakeCache) Del(_ context.Context, keys ...string) error {
	f.dels++
	if f.delErr != nil {
		return f.delErr
	}
	for _, key := range keys {
		delete(f.entries, key)
	}
	return nil
}

func (f *fakeCache) Close() error { return nil }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
