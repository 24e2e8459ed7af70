// Package service is the core access layer between the HTTP handlers
// and the collaborators: it decides when a read is served from the
// cache versus the store, invalidates the cache after every committed
// write, and enforces the cross-field / cross-entity integrity rules
// the relational schema alone cannot report in a friendly way.
//
// CONTROL FLOW
// ────────────
// Write:  integrity checks (short-circuit on first failure)
//         → store mutation → list-cache invalidation → result.
// List:   cache get (hit returns without touching the store)
//         → store read with relations → cache set with TTL → result.
//
// The cache is strictly best-effort on both paths: a failed get falls
// through to the store, a failed set or delete is logged and ignored.
// A cache outage can make reads slower or lists staler for up to the
// TTL, never wrong about what the store committed.
//
// Every rejection is one of the typed errors in the types package;
// handlers map them to client responses via the response package and
// nothing below the service leaks raw engine errors to clients.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/BehruzDev0000/learning-center/internal/cache"
	"github.com/BehruzDev0000/learning-center/internal/types"
)

// dateLayout is the calendar-date format used throughout the API.
const dateLayout = "2006-01-02"

// validateDateRange enforces start <= end as a parsed calendar
// comparison, not a string comparison. The handler has already checked
// the format, so parse failures here mean a bug upstream, which we
// surface as the same domain error rather than panicking.
func validateDateRange(startDate, endDate string) error {
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return types.ErrInvalidDateRange
	}
	end, err := time.Parse(dateLayout, endDate)
	if err != nil {
		return types.ErrInvalidDateRange
	}
	if start.After(end) {
		return types.ErrInvalidDateRange
	}
	return nil
}

// invalidateList drops an entity type's list key after a committed
// write. It runs only after the store confirmed the mutation — never
// before, so a failed store write can never leave the cache cleared
// ahead of an uncommitted state. Deleting an absent key is a no-op, and
// a failed delete only risks staleness until the TTL, so the error is
// logged and swallowed.
func invalidateList(ctx context.Context, c cache.Cache, log *slog.Logger, key string) {
	if err := c.Del(ctx, key); err != nil {
		log.Warn("cache invalidation failed",
			slog.String("key", key),
			slog.String("error", err.Error()))
	}
}
