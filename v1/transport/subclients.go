package transport

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// SubClients memoizes per-subsystem handles (collections, points, ...) for the
// lifetime of a client session. A handle is built on first access and shared
// afterwards; entries are never replaced or removed.
//
// Builders must be idempotent and free of side effects. Concurrent first
// accesses of the same name are collapsed into one build, and even if two
// builds did race the loser's value would be equivalent.
type SubClients struct {
	mu      sync.RWMutex
	entries map[string]any
	group   singleflight.Group
}

// Get returns the entry stored under name, building it with build on first use.
func (s *SubClients) Get(name string, build func() any) any {
	s.mu.RLock()
	v, ok := s.entries[name]
	s.mu.RUnlock()
	if ok {
		return v
	}

	v, _, _ = s.group.Do(name, func() (any, error) {
		s.mu.Lock()
		defer s.mu.Unlock()

		if existing, ok := s.entries[name]; ok {
			return existing, nil
		}
		if s.entries == nil {
			s.entries = make(map[string]any)
		}
		built := build()
		s.entries[name] = built
		return built, nil
	})
	return v
}

// Len returns the number of sub-clients built so far.
func (s *SubClients) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Lazy is the typed form of SubClients.Get.
func Lazy[T any](s *SubClients, name string, build func() T) T {
	return s.Get(name, func() any { return build() }).(T)
}
