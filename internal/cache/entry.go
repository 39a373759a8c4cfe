// Sponsordesk - Newsletter Sponsorship Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sponsordesk

package cache

import (
	"context"
	"sync"
	"time"

	"github.com/tomtom215/sponsordesk/internal/metrics"
)

// Clock returns the current time. Tests substitute a fixed clock.
type Clock func() time.Time

// Entry is a single process-wide cached value with a timestamp and a TTL.
//
// An entry older than its TTL is treated as absent. There is no explicit
// invalidation; a value only leaves the cache by expiring or by the process
// restarting. In a multi-instance deployment each instance holds its own
// entry, so values are per-instance and best effort.
//
// Concurrent misses are not coalesced: two callers racing past an expired
// entry may both compute, and the last one to finish wins.
type Entry[T any] struct {
	name string
	ttl  time.Duration
	now  Clock

	mu        sync.Mutex
	value     T
	timestamp time.Time
	valid     bool
}

// NewEntry creates an empty entry. The name labels the cache_hits_total,
// cache_misses_total and cache_computes_total series.
//
//	opens := cache.NewEntry[*models.OpensSummary]("opens_summary", 24*time.Hour)
func NewEntry[T any](name string, ttl time.Duration) *Entry[T] {
	return &Entry[T]{name: name, ttl: ttl, now: time.Now}
}

// WithClock replaces the entry's time source and returns the entry.
func (e *Entry[T]) WithClock(now Clock) *Entry[T] {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.now = now
	return e
}

// Get returns the cached value if one is present and fresh.
func (e *Entry[T]) Get() (T, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.valid && e.now().Sub(e.timestamp) < e.ttl {
		metrics.RecordCacheLookup(e.name, true)
		return e.value, true
	}

	metrics.RecordCacheLookup(e.name, false)
	var zero T
	return zero, false
}

// Set unconditionally overwrites the value and stamps it with the current time.
func (e *Entry[T]) Set(value T) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.value = value
	e.timestamp = e.now()
	e.valid = true
}

// Timestamp reports when the current value was stored. The zero time means
// nothing has been stored yet.
func (e *Entry[T]) Timestamp() time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.valid {
		return time.Time{}
	}
	return e.timestamp
}

// TTL returns the entry's time-to-live.
func (e *Entry[T]) TTL() time.Duration {
	return e.ttl
}

// GetOrCompute returns the fresh cached value, or calls compute and caches its
// result. Errors are returned to the caller and never cached.
func (e *Entry[T]) GetOrCompute(ctx context.Context, compute func(context.Context) (T, error)) (T, error) {
	if v, ok := e.Get(); ok {
		return v, nil
	}

	v, err := compute(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	metrics.RecordCacheCompute(e.name)
	e.Set(v)
	return v, nil
}
