// dispatch/lookup.go
package dispatch

import (
	"context"
	"fmt"
	"net/http"
)

// Extractor derives one predicate's actual value from a request.
type Extractor func(r *http.Request) string

// ResponseFactory is a matched handler bound to the request and model that
// produced the match. Invoking it runs the handler; handler errors come back
// unwrapped.
type ResponseFactory func() (any, error)

// Lookup pairs a Registry with the extractors that read its predicate values
// off a request. Immutable after construction; safe to share across requests.
type Lookup struct {
	reg     *Registry
	extract map[string]Extractor
}

// NewLookup requires one extractor per predicate name, no extras.
func NewLookup(reg *Registry, extractors map[string]Extractor) (*Lookup, error) {
	for _, n := range reg.Set().Names() {
		if extractors[n] == nil {
			return nil, fmt.Errorf("dispatch: extractor required for predicate %q", n)
		}
	}
	cp := make(map[string]Extractor, len(extractors))
	for k, ex := range extractors {
		if !reg.Set().contains(k) {
			return nil, fmt.Errorf("dispatch: extractor %q matches no predicate", k)
		}
		cp[k] = ex
	}
	return &Lookup{reg: reg, extract: cp}, nil
}

// Registry exposes the underlying predicate registry for registration.
func (l *Lookup) Registry() *Registry { return l.reg }

// Match derives the request's predicate values and returns the handler bound
// to (r, model), or false when nothing is registered under those values.
// "No handler configured" is an expected outcome here, not an error.
func (l *Lookup) Match(r *http.Request, model any) (ResponseFactory, bool) {
	values := make(map[string]string, len(l.extract))
	for n, ex := range l.extract {
		values[n] = ex(r)
	}
	h, ok, err := l.reg.Get(values)
	if err != nil || !ok {
		// err is unreachable: the constructor pins extractors to the set.
		return nil, false
	}
	return func() (any, error) { return h(r, model) }, true
}

// DefaultExtractors covers DefaultPredicateSet: the HTTP method and the route
// name the resolver attached to the request context.
func DefaultExtractors() map[string]Extractor {
	return map[string]Extractor{
		PredicateRequestMethod: func(r *http.Request) string { return r.Method },
		PredicateName:          func(r *http.Request) string { return RouteNameFrom(r.Context()) },
	}
}

type ctxKey int

const routeNameKey ctxKey = iota

// WithRouteName records the resolver's matched route name on the context.
func WithRouteName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, routeNameKey, name)
}

// RouteNameFrom reads the matched route name; empty means the default view.
func RouteNameFrom(ctx context.Context) string {
	if v, ok := ctx.Value(routeNameKey).(string); ok {
		return v
	}
	return ""
}
