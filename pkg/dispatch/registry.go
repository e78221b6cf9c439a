// dispatch/registry.go
package dispatch

import (
	"fmt"
	"net/http"
	"sync"
)

// Handler produces a response value for a request routed to a model.
type Handler func(r *http.Request, model any) (any, error)

// Registry is the exact-match predicate table for one (request, model) pair.
// Mutation normally stops when the configuration phase does; the lock keeps
// late registrations safe against in-flight lookups.
type Registry struct {
	set   *PredicateSet
	mu    sync.RWMutex
	table map[string]Handler
}

func NewRegistry(set *PredicateSet) *Registry {
	return &Registry{set: set, table: make(map[string]Handler)}
}

// Set returns the predicate set this registry dispatches on.
func (r *Registry) Set() *PredicateSet { return r.set }

// Register binds handler under the full value mapping. The mapping must name
// every predicate exactly; a later registration under an identical mapping
// replaces the earlier handler.
func (r *Registry) Register(values map[string]string, h Handler) error {
	if h == nil {
		return fmt.Errorf("dispatch: handler required")
	}
	key, err := r.set.keyFor(values)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.table[key] = h
	return nil
}

// Get returns the handler registered under exactly values. A missing entry
// is not an error; a malformed value mapping is.
func (r *Registry) Get(values map[string]string) (Handler, bool, error) {
	key, err := r.set.keyFor(values)
	if err != nil {
		return nil, false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.table[key]
	return h, ok, nil
}

// Len reports the number of distinct registrations.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.table)
}
