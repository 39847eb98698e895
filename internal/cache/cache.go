// Package cache provides expiry-bounded stores for raw feed bytes and the
// indices derived from them.
//
// Expiry is evaluated lazily on Get with second granularity: a record set at
// second T with a TTL of N seconds is still served at T+N and evicted at
// T+N+1. There is no background sweep.
//
// Access is guarded with non-blocking try-locks. The service runs one request
// at a time, so contention is not expected; if an acquisition does fail the
// operation degrades to a miss (Get) or a no-op (Set) instead of blocking.
package cache

import (
	"sync"
	"time"
)

// Clock returns the current wall-clock time. A nil Clock means time.Now.
type Clock func() time.Time

func (c Clock) seconds() int64 {
	if c == nil {
		return time.Now().Unix()
	}
	return c().Unix()
}

type record[T any] struct {
	data      T
	expiresAt int64
}

func ttlSeconds(ttl time.Duration) int64 {
	return int64(ttl / time.Second)
}

// Slot holds at most one value. T is normally a pointer, map or slice so
// that Get hands out a shared reference rather than a copy.
type Slot[T any] struct {
	mu     sync.RWMutex
	record *record[T]
	ttl    int64
	clock  Clock
}

// NewSlot creates an empty slot whose records live for ttl (whole seconds).
func NewSlot[T any](ttl time.Duration, clock Clock) *Slot[T] {
	return &Slot[T]{ttl: ttlSeconds(ttl), clock: clock}
}

// Set replaces the slot content. It reports false if the slot was busy and
// nothing was stored.
func (s *Slot[T]) Set(data T) bool {
	expiresAt := s.clock.seconds() + s.ttl
	if !s.mu.TryLock() {
		return false
	}
	defer s.mu.Unlock()
	s.record = &record[T]{data: data, expiresAt: expiresAt}
	return true
}

// Get returns the stored value if present and not expired. An expired
// record is cleared.
func (s *Slot[T]) Get() (T, bool) {
	var zero T
	if !s.mu.TryRLock() {
		return zero, false
	}
	rec := s.record
	s.mu.RUnlock()

	if rec == nil {
		return zero, false
	}
	if s.clock.seconds() > rec.expiresAt {
		if s.mu.TryLock() {
			if s.record == rec {
				s.record = nil
			}
			s.mu.Unlock()
		}
		return zero, false
	}
	return rec.data, true
}

// Keyed maps keys to independently expiring values.
type Keyed[K comparable, T any] struct {
	mu      sync.RWMutex
	records map[K]*record[T]
	ttl     int64
	clock   Clock
}

// NewKeyed creates an empty keyed store whose records live for ttl (whole seconds).
func NewKeyed[K comparable, T any](ttl time.Duration, clock Clock) *Keyed[K, T] {
	return &Keyed[K, T]{
		records: make(map[K]*record[T]),
		ttl:     ttlSeconds(ttl),
		clock:   clock,
	}
}

// Set stores data under key, replacing any previous record. It reports
// false if the store was busy and nothing was stored.
func (k *Keyed[K, T]) Set(key K, data T) bool {
	expiresAt := k.clock.seconds() + k.ttl
	if !k.mu.TryLock() {
		return false
	}
	defer k.mu.Unlock()
	k.records[key] = &record[T]{data: data, expiresAt: expiresAt}
	return true
}

// Get returns the value stored under key if present and not expired. Only
// the expired entry itself is removed.
func (k *Keyed[K, T]) Get(key K) (T, bool) {
	var zero T
	if !k.mu.TryRLock() {
		return zero, false
	}
	rec, ok := k.records[key]
	k.mu.RUnlock()

	if !ok {
		return zero, false
	}
	if k.clock.seconds() > rec.expiresAt {
		if k.mu.TryLock() {
			if k.records[key] == rec {
				delete(k.records, key)
			}
			k.mu.Unlock()
		}
		return zero, false
	}
	return rec.data, true
}

// Len returns the number of stored records, expired ones included.
func (k *Keyed[K, T]) Len() int {
	if !k.mu.TryRLock() {
		return 0
	}
	defer k.mu.RUnlock()
	return len(k.records)
}
