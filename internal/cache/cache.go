// Package cache provides a generic in-memory key/value store with TTL
// expiry. Entries are evicted lazily: an expired entry is removed the
// next time its key is looked up, not by a background sweeper. The key
// space here (city pairs plus a date) is small enough that unaccessed
// stale entries are an acceptable cost.
package cache

import (
	"sync"
	"time"
)

// Store is a TTL-bounded keyed store safe for concurrent use.
// Writes are last-writer-wins per key.
type Store[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]entry[V]
	ttl     time.Duration
	now     func() time.Time
}

type entry[V any] struct {
	value     V
	createdAt time.Time
}

// New creates a Store with the given TTL.
func New[K comparable, V any](ttl time.Duration) *Store[K, V] {
	return NewWithClock[K, V](ttl, time.Now)
}

// NewWithClock creates a Store that reads time from now instead of the
// wall clock. Tests use it to control entry age deterministically.
func NewWithClock[K comparable, V any](ttl time.Duration, now func() time.Time) *Store[K, V] {
	return &Store[K, V]{
		entries: make(map[K]entry[V]),
		ttl:     ttl,
		now:     now,
	}
}

// Get returns the value for key if a fresh entry exists. An entry is
// fresh while now - createdAt < TTL; an expired entry is deleted and
// reported as absent.
func (s *Store[K, V]) Get(key K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		var zero V
		return zero, false
	}

	if s.now().Sub(e.createdAt) >= s.ttl {
		delete(s.entries, key)
		var zero V
		return zero, false
	}

	return e.value, true
}

// Put stores value under key, replacing any previous entry.
func (s *Store[K, V]) Put(key K, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = entry[V]{
		value:     value,
		createdAt: s.now(),
	}
}

// Len reports the number of entries currently held, including entries
// that have expired but not yet been looked up.
func (s *Store[K, V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
