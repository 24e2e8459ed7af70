package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/BehruzDev0000/learning-center/internal/cache"
	"github.com/BehruzDev0000/learning-center/internal/storage"
	"github.com/BehruzDev0000/learning-center/internal/types"
)

// Student is the cached, integrity-checked access layer for students.
type Student struct {
	storage storage.Storage
	cache   cache.Cache
	log     *slog.Logger
	ttl     time.Duration
}

// NewStudent wires a student service around the same store and cache
// handle the course service uses.
func NewStudent(store storage.Storage, c cache.Cache, log *slog.Logger, ttl time.Duration) *Student {
	return &Student{
		storage: store,
		cache:   c,
		log:     log,
		ttl:     ttl,
	}
}

// checkEmailFree rejects with ErrDuplicateEmail when any student
// already holds the email. Only a not-found from the lookup lets the
// mutation proceed; an actual store failure propagates as itself.
func (s *Student) checkEmailFree(ctx context.Context, email string) error {
	_, err := s.storage.GetStudentByEmail(ctx, email)
	if err == nil {
		return types.ErrDuplicateEmail
	}
	if !errors.Is(err, types.ErrStudentNotFound) {
		return fmt.Errorf("email lookup: %w", err)
	}
	return nil
}

// checkPhoneFree is the phone twin of checkEmailFree.
func (s *Student) checkPhoneFree(ctx context.Context, phone string) error {
	_, err := s.storage.GetStudentByPhone(ctx, phone)
	if err == nil {
		return types.ErrDuplicatePhone
	}
	if !errors.Is(err, types.ErrStudentNotFound) {
		return fmt.Errorf("phone lookup: %w", err)
	}
	return nil
}

// checkCourseExists rejects with ErrCourseNotFound when the referenced
// course is absent.
func (s *Student) checkCourseExists(ctx context.Context, courseID int64) error {
	_, err := s.storage.GetCourseByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, types.ErrCourseNotFound) {
			return err
		}
		return fmt.Errorf("course lookup: %w", err)
	}
	return nil
}

// Create runs the integrity checks in a fixed order — email, then
// phone, then the referenced course — short-circuiting on the first
// failure, so a request with several violations always reports the same
// one. Only after all three pass is the insert attempted; the schema's
// UNIQUE/FK constraints back the checks up against concurrent creates,
// and the storage layer reports those violations as the same typed
// errors this method produces.
func (s *Student) Create(ctx context.Context, req types.CreateStudentRequest) (types.Student, error) {
	if err := s.checkEmailFree(ctx, req.Email); err != nil {
		return types.Student{}, err
	}
	if err := s.checkPhoneFree(ctx, req.Phone); err != nil {
		return types.Student{}, err
	}
	if err := s.checkCourseExists(ctx, req.CourseID); err != nil {
		return types.Student{}, err
	}

	student, err := s.storage.CreateStudent(ctx, req)
	if err != nil {
		if errors.Is(err, types.ErrDuplicateEmail) ||
			errors.Is(err, types.ErrDuplicatePhone) ||
			errors.Is(err, types.ErrCourseNotFound) {
			return types.Student{}, err
		}
		return types.Student{}, fmt.Errorf("create student: %w", err)
	}

	invalidateList(ctx, s.cache, s.log, cache.StudentListKey)

	s.log.Info("student created", slog.Int64("id", student.ID))
	return student, nil
}

// List returns all students with their course resolved, cache-aside
// with the same hit/miss/failure behaviour as the course list.
func (s *Student) List(ctx context.Context) ([]types.Student, error) {
	cached, err := s.cache.Get(ctx, cache.StudentListKey)
	if err == nil {
		var students []types.Student
		if err := json.Unmarshal([]byte(cached), &students); err == nil {
			s.log.Debug("students served from cache")
			return students, nil
		}
		s.log.Warn("discarding undecodable cache entry",
			slog.String("key", cache.StudentListKey))
	} else if !errors.Is(err, cache.ErrMiss) {
		s.log.Warn("cache get failed, falling back to store",
			slog.String("key", cache.StudentListKey),
			slog.String("error", err.Error()))
	}

	students, err := s.storage.GetStudents(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}

	if payload, err := json.Marshal(students); err == nil {
		if err := s.cache.Set(ctx, cache.StudentListKey, string(payload), s.ttl); err != nil {
			s.log.Warn("cache set failed",
				slog.String("key", cache.StudentListKey),
				slog.String("error", err.Error()))
		}
	}

	return students, nil
}

// Get fetches one student by id, straight from the store.
func (s *Student) Get(ctx context.Context, id int64) (types.Student, error) {
	student, err := s.storage.GetStudentByID(ctx, id)
	if err != nil {
		if errors.Is(err, types.ErrStudentNotFound) {
			return types.Student{}, err
		}
		return types.Student{}, fmt.Errorf("get student: %w", err)
	}
	return student, nil
}

// Update applies a partial update with the same ordered checks as
// Create, each run only when its field is actually being changed.
//
// The email/phone lookups do not exclude the record being updated, so
// resubmitting a student's own unchanged email is rejected as a
// duplicate. That mirrors the system this one replaces; clients omit
// fields they are not changing.
func (s *Student) Update(ctx context.Context, id int64, req types.UpdateStudentRequest) (types.Student, error) {
	if req.Email != nil {
		if err := s.checkEmailFree(ctx, *req.Email); err != nil {
			return types.Student{}, err
		}
	}
	if req.Phone != nil {
		if err := s.checkPhoneFree(ctx, *req.Phone); err != nil {
			return types.Student{}, err
		}
	}
	if req.CourseID != nil {
		if err := s.checkCourseExists(ctx, *req.CourseID); err != nil {
			return types.Student{}, err
		}
	}

	student, err := s.storage.UpdateStudentByID(ctx, id, req)
	if err != nil {
		if errors.Is(err, types.ErrStudentNotFound) ||
			errors.Is(err, types.ErrDuplicateEmail) ||
			errors.Is(err, types.ErrDuplicatePhone) ||
			errors.Is(err, types.ErrCourseNotFound) {
			return types.Student{}, err
		}
		return types.Student{}, fmt.Errorf("update student: %w", err)
	}

	invalidateList(ctx, s.cache, s.log, cache.StudentListKey)

	s.log.Info("student updated", slog.Int64("id", id))
	return student, nil
}

// Delete removes a student.
func (s *Student) Delete(ctx context.Context, id int64) error {
	if err := s.storage.DeleteStudentByID(ctx, id); err != nil {
		if errors.Is(err, types.ErrStudentNotFound) {
			return err
		}
		return fmt.Errorf("delete student: %w", err)
	}

	invalidateList(ctx, s.cache, s.log, cache.StudentListKey)

	s.log.Info("student deleted", slog.Int64("id", id))
	return nil
}
