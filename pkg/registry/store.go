// registry/store.go
package registry

import (
	"reflect"
	"sync"
)

// Capability names one kind of component a Store can hold.
type Capability string

// Key identifies a component by the exact (request, model) type pair.
// No inheritance walk: lookups match the types exactly as registered.
type Key struct {
	Request reflect.Type
	Model   reflect.Type
}

// Store is an explicitly constructed component registry: capabilities map
// exact type-pair keys to opaque values. Populated during the configuration
// phase, read-mostly afterwards.
type Store struct {
	mu      sync.RWMutex
	entries map[Capability]map[Key]any
}

func New() *Store {
	return &Store{entries: make(map[Capability]map[Key]any)}
}

// Register installs value under (capability, key), replacing any prior entry.
func (s *Store) Register(c Capability, k Key, v any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.entries[c]
	if !ok {
		m = make(map[Key]any)
		s.entries[c] = m
	}
	m[k] = v
}

// ExactGet returns the value registered under exactly (capability, key).
func (s *Store) ExactGet(c Capability, k Key) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.entries[c][k]
	return v, ok
}

// GetOrRegister returns the existing entry for (capability, key), or installs
// v and returns it. Check and install happen in one critical section.
func (s *Store) GetOrRegister(c Capability, k Key, v any) any {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.entries[c]
	if !ok {
		m = make(map[Key]any)
		s.entries[c] = m
	}
	if cur, ok := m[k]; ok {
		return cur
	}
	m[k] = v
	return v
}

// Len reports the number of entries held under a capability.
func (s *Store) Len(c Capability) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries[c])
}
