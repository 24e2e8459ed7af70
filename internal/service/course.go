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

// Course is the cached, integrity-checked access layer for courses.
// It owns no state of its own — the store is the source of truth, the
// cache handle is shared with the student service and owned by main.
type Course struct {
	storage storage.Storage
	cache   cache.Cache
	log     *slog.Logger
	ttl     time.Duration
}

// NewCourse wires a course service. ttl bounds the staleness of the
// cached course list; pass cache.DefaultTTL unless config overrides it.
func NewCourse(store storage.Storage, c cache.Cache, log *slog.Logger, ttl time.Duration) *Course {
	return &Course{
		storage: store,
		cache:   c,
		log:     log,
		ttl:     ttl,
	}
}

// Create validates the date range and inserts the course. The store is
// never called for an invalid range; the list cache is dropped only
// after the insert committed.
func (s *Course) Create(ctx context.Context, req types.CreateCourseRequest) (types.Course, error) {
	if err := validateDateRange(req.StartDate, req.EndDate); err != nil {
		return types.Course{}, err
	}

	course, err := s.storage.CreateCourse(ctx, req)
	if err != nil {
		return types.Course{}, fmt.Errorf("create course: %w", err)
	}

	invalidateList(ctx, s.cache, s.log, cache.CourseListKey)

	s.log.Info("course created", slog.Int64("id", course.ID))
	return course, nil
}

// List returns all courses with their students, cache-aside:
//
//  1. On a cache hit the store is not touched at all.
//  2. On a miss (or any cache failure, which only gets logged) the
//     store is read with relations and the result is cached with the
//     TTL attached.
//
// A corrupt cached payload is treated as a miss too — the store copy
// simply overwrites it.
func (s *Course) List(ctx context.Context) ([]types.Course, error) {
	cached, err := s.cache.Get(ctx, cache.CourseListKey)
	if err == nil {
		var courses []types.Course
		if err := json.Unmarshal([]byte(cached), &courses); err == nil {
			s.log.Debug("courses served from cache")
			return courses, nil
		}
		s.log.Warn("discarding undecodable cache entry",
			slog.String("key", cache.CourseListKey))
	} else if !errors.Is(err, cache.ErrMiss) {
		s.log.Warn("cache get failed, falling back to store",
			slog.String("key", cache.CourseListKey),
			slog.String("error", err.Error()))
	}

	courses, err := s.storage.GetCourses(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}

	if payload, err := json.Marshal(courses); err == nil {
		if err := s.cache.Set(ctx, cache.CourseListKey, string(payload), s.ttl); err != nil {
			// Best effort: the caller still gets the store data.
			s.log.Warn("cache set failed",
				slog.String("key", cache.CourseListKey),
				slog.String("error", err.Error()))
		}
	}

	return courses, nil
}

// Get fetches one course by id. Single-record reads go straight to the
// store; only the list query is cached.
func (s *Course) Get(ctx context.Context, id int64) (types.Course, error) {
	course, err := s.storage.GetCourseByID(ctx, id)
	if err != nil {
		if errors.Is(err, types.ErrCourseNotFound) {
			return types.Course{}, err
		}
		return types.Course{}, fmt.Errorf("get course: %w", err)
	}
	return course, nil
}

// Update applies a partial update. The current record is loaded first
// so the date-range rule is checked against the merged state — changing
// only the end date still has to respect the stored start date. The
// load also reports not-found before anything is written; the storage
// layer re-checks via rows-affected in case of a concurrent delete.
func (s *Course) Update(ctx context.Context, id int64, req types.UpdateCourseRequest) (types.Course, error) {
	current, err := s.storage.GetCourseByID(ctx, id)
	if err != nil {
		if errors.Is(err, types.ErrCourseNotFound) {
			return types.Course{}, err
		}
		return types.Course{}, fmt.Errorf("update course: load current: %w", err)
	}

	startDate, endDate := current.StartDate, current.EndDate
	if req.StartDate != nil {
		startDate = *req.StartDate
	}
	if req.EndDate != nil {
		endDate = *req.EndDate
	}
	if err := validateDateRange(startDate, endDate); err != nil {
		return types.Course{}, err
	}

	course, err := s.storage.UpdateCourseByID(ctx, id, req)
	if err != nil {
		if errors.Is(err, types.ErrCourseNotFound) {
			return types.Course{}, err
		}
		return types.Course{}, fmt.Errorf("update course: %w", err)
	}

	invalidateList(ctx, s.cache, s.log, cache.CourseListKey)

	s.log.Info("course updated", slog.Int64("id", id))
	return course, nil
}

// Delete removes a course; the store's cascade takes its students with
// it. The stale student list entry is left to its TTL, matching the
// per-entity-type invalidation contract.
func (s *Course) Delete(ctx context.Context, id int64) error {
	if err := s.storage.DeleteCourseByID(ctx, id); err != nil {
		if errors.Is(err, types.ErrCourseNotFound) {
			return err
		}
		return fmt.Errorf("delete course: %w", err)
	}

	invalidateList(ctx, s.cache, s.log, cache.CourseListKey)

	s.log.Info("course deleted", slog.Int64("id", id))
	return nil
}
