// core/models.go
package core

import (
	"fmt"
	"net/http"
	"reflect"
	"sync"
)

// ModelResolver loads the model a request was routed to. A nil model with a
// nil error means "no such model"; the router answers 404 for it.
type ModelResolver func(r *http.Request) (any, error)

// ModelBinding ties a manifest model name to its Go type and resolver.
// Handlers registered for the name receive the *T the resolver returns.
type ModelBinding struct {
	Name    string
	Type    reflect.Type
	Resolve ModelResolver
}

var (
	mmu    sync.RWMutex
	models = map[string]ModelBinding{}
)

// RegisterModel binds a concrete model type to a symbolic name with a
// resolver.
func RegisterModel[T any](name string, resolve func(r *http.Request) (*T, error)) error {
	if name == "" || resolve == nil {
		return fmt.Errorf("model name and resolver required")
	}
	mmu.Lock()
	defer mmu.Unlock()
	if _, dup := models[name]; dup {
		return fmt.Errorf("model %q already registered", name)
	}
	models[name] = ModelBinding{
		Name: name,
		Type: reflect.TypeOf((*T)(nil)),
		Resolve: func(r *http.Request) (any, error) {
			m, err := resolve(r)
			if m == nil || err != nil {
				// keep the interface nil when the pointer is nil
				return nil, err
			}
			return m, nil
		},
	}
	return nil
}

func MustRegisterModel[T any](name string, resolve func(r *http.Request) (*T, error)) {
	if err := RegisterModel(name, resolve); err != nil {
		panic(err)
	}
}

// LookupModel retrieves a registered model binding by name.
func LookupModel(name string) (ModelBinding, bool) {
	mmu.RLock()
	defer mmu.RUnlock()
	b, ok := models[name]
	return b, ok
}
