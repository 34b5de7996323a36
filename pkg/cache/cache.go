// Package cache provides the single-slot memoization used by the
// classification engine. The engine only ever classifies "the current
// client", so the cache is keyed by one constant key rather than being a
// general map: empty at construction, populated on first classification,
// cleared only by explicit invalidation. The abstraction is separate from the
// classification logic so tests can swap in a no-op cache and force a fresh
// pass every call.
package cache

import (
	gocache "github.com/patrickmn/go-cache"
)

// DefaultKey is the constant key the engine stores its result under.
const DefaultKey = "current-client"

// Stats reports slot occupancy for introspection.
type Stats struct {
	Occupied bool   `json:"occupied"`
	Key      string `json:"key"`
}

// Cache is a single-slot store for one value of type T.
type Cache[T any] interface {
	// Get returns the cached value and whether the slot is occupied.
	Get() (T, bool)
	// Set stores the value, replacing any previous one.
	Set(value T)
	// Clear empties the slot.
	Clear()
	// Stats reports occupancy and the slot key.
	Stats() Stats
}

// Slot is the default Cache implementation. It is backed by a go-cache store
// with expiration disabled; validity is the caller's responsibility (long
// lived hosts invalidate on navigation or reload). Safe for concurrent use.
type Slot[T any] struct {
	key   string
	store *gocache.Cache
}

// NewSlot creates an empty single-slot cache under key. An empty key falls
// back to DefaultKey.
func NewSlot[T any](key string) *Slot[T] {
	if key == "" {
		key = DefaultKey
	}
	return &Slot[T]{
		key:   key,
		store: gocache.New(gocache.NoExpiration, 0),
	}
}

func (s *Slot[T]) Get() (T, bool) {
	var zero T
	v, ok := s.store.Get(s.key)
	if !ok {
		return zero, false
	}
	value, ok := v.(T)
	if !ok {
		return zero, false
	}
	return value, true
}

func (s *Slot[T]) Set(value T) {
	s.store.Set(s.key, value, gocache.NoExpiration)
}

func (s *Slot[T]) Clear() {
	s.store.Delete(s.key)
}

func (s *Slot[T]) Stats() Stats {
	_, occupied := s.store.Get(s.key)
	return Stats{Occupied: occupied, Key: s.key}
}

// Noop never stores anything; every Get misses. Used by tests that need a
// fresh classification on every call.
type Noop[T any] struct{}

func (Noop[T]) Get() (T, bool) {
	var zero T
	return zero, false
}

func (Noop[T]) Set(T) {}

func (Noop[T]) Clear() {}

func (Noop[T]) Stats() Stats { return Stats{} }
