// Package cache defines the key-value cache contract the read path
// depends on, plus the cache keys and TTL the application uses.
//
// The interface is deliberately tiny — get, set-with-expiry, delete —
// because that is all cache-aside needs. Implementations live in the
// subpackages: redis (networked, shared across instances) and memory
// (in-process, single node).
package cache

import (
	"context"
	"errors"
	"time"
)

// Cache keys — one fixed key per entity type, kept in one place so they
// never drift between the code that populates and the code that
// invalidates. The cached value under each key is the JSON-serialized
// full list of that entity, relations included.
const (
	// CourseListKey holds the serialized result of listing all courses.
	CourseListKey = "courses:all"

	// StudentListKey holds the serialized result of listing all students.
	StudentListKey = "students:all"
)

// DefaultTTL bounds how stale a cached list can get when no write
// invalidates it first.
const DefaultTTL = 300 * time.Second

// ErrMiss is returned by Get when the key is absent or expired.
// Callers distinguish a miss (normal, fall through to the store) from a
// transport failure (also fall through, but worth logging) with
// errors.Is.
var ErrMiss = errors.New("cache: key not found")

// Cache is the key-value contract.
//
// Semantics the implementations must honour:
//   - Get returns ErrMiss for an absent key, any other error only for
//     transport/engine failure.
//   - Set overwrites unconditionally (last write wins) and attaches the
//     given TTL.
//   - Del of an absent key is a no-op, not an error — invalidation is
//     idempotent.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	Close() error
}
