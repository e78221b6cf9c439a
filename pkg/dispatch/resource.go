// dispatch/resource.go
package dispatch

import (
	"fmt"
	"net/http"
	"reflect"

	"github.com/joeydtaylor/dispatch-core/pkg/registry"
)

// ResourceCapability keys resource lookups in the component store.
const ResourceCapability registry.Capability = "resource"

var requestType = reflect.TypeOf((*http.Request)(nil))

// ModelType is the store key for models handled as *T.
func ModelType[T any]() reflect.Type { return reflect.TypeOf((*T)(nil)) }

// RegisterResource wires handler into the lookup for (request, model),
// creating and installing the lookup on first use. Constraints must name
// every canonical predicate; identical constraints replace the prior handler.
func RegisterResource(store *registry.Store, model reflect.Type, h Handler, constraints map[string]string) error {
	if model == nil {
		return fmt.Errorf("dispatch: model type required")
	}
	lu, err := NewLookup(NewRegistry(DefaultPredicateSet()), DefaultExtractors())
	if err != nil {
		return err
	}
	key := registry.Key{Request: requestType, Model: model}
	cur := store.GetOrRegister(ResourceCapability, key, lu)
	installed, ok := cur.(*Lookup)
	if !ok {
		return fmt.Errorf("dispatch: resource entry for %v holds %T, not a lookup", model, cur)
	}
	return installed.Registry().Register(constraints, h)
}

// ResolveResource is the dispatch entry point: exact (request, model) type
// match in the store, then predicate match against the request. The second
// return is false when no lookup exists for the model's dynamic type or no
// handler is registered under the request's actual predicate values.
func ResolveResource(store *registry.Store, r *http.Request, model any) (ResponseFactory, bool) {
	key := registry.Key{Request: requestType, Model: reflect.TypeOf(model)}
	v, ok := store.ExactGet(ResourceCapability, key)
	if !ok {
		return nil, false
	}
	lu, ok := v.(*Lookup)
	if !ok {
		return nil, false
	}
	return lu.Match(r, model)
}
