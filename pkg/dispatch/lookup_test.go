package dispatch

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct{ ID string }

func namedRequest(method, name string) *http.Request {
	r := httptest.NewRequest(method, "/widgets/1", nil)
	return r.WithContext(WithRouteName(r.Context(), name))
}

func defaultLookup(t *testing.T) *Lookup {
	t.Helper()
	lu, err := NewLookup(NewRegistry(DefaultPredicateSet()), DefaultExtractors())
	require.NoError(t, err)
	return lu
}

func TestNewLookupRequiresFullCoverage(t *testing.T) {
	reg := NewRegistry(DefaultPredicateSet())

	_, err := NewLookup(reg, map[string]Extractor{
		PredicateRequestMethod: func(r *http.Request) string { return r.Method },
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), PredicateName)

	ex := DefaultExtractors()
	ex["accept"] = func(r *http.Request) string { return r.Header.Get("Accept") }
	_, err = NewLookup(reg, ex)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"accept"`)
}

func TestMatchBindsRequestAndModel(t *testing.T) {
	lu := defaultLookup(t)

	var gotReq *http.Request
	var gotModel any
	require.NoError(t, lu.Registry().Register(values("view", http.MethodGet), func(r *http.Request, m any) (any, error) {
		gotReq, gotModel = r, m
		return "ok", nil
	}))

	req := namedRequest(http.MethodGet, "view")
	model := &widget{ID: "1"}

	factory, ok := lu.Match(req, model)
	require.True(t, ok)

	out, err := factory()
	require.NoError(t, err)
	assert.Equal(t, "ok", out)
	assert.Same(t, req, gotReq)
	assert.Same(t, model, gotModel)
}

func TestMatchAbsentOnMethodMismatch(t *testing.T) {
	lu := defaultLookup(t)
	require.NoError(t, lu.Registry().Register(values("view", http.MethodGet), tagged("view-get")))

	factory, ok := lu.Match(namedRequest(http.MethodPost, "view"), &widget{})
	assert.False(t, ok)
	assert.Nil(t, factory)
}

func TestMatchAbsentOnRouteNameMismatch(t *testing.T) {
	lu := defaultLookup(t)
	require.NoError(t, lu.Registry().Register(values("edit", http.MethodGet), tagged("edit")))

	_, ok := lu.Match(namedRequest(http.MethodGet, "view"), &widget{})
	assert.False(t, ok)
}

func TestMatchDefaultViewName(t *testing.T) {
	lu := defaultLookup(t)
	require.NoError(t, lu.Registry().Register(values("", http.MethodGet), tagged("default")))

	// no route name on the context means the default view
	req := httptest.NewRequest(http.MethodGet, "/widgets/1", nil)
	factory, ok := lu.Match(req, &widget{})
	require.True(t, ok)

	out, err := factory()
	require.NoError(t, err)
	assert.Equal(t, "default", out)
}

func TestMatchPropagatesHandlerError(t *testing.T) {
	lu := defaultLookup(t)
	boom := assert.AnError
	require.NoError(t, lu.Registry().Register(values("view", http.MethodGet), func(_ *http.Request, _ any) (any, error) {
		return nil, boom
	}))

	factory, ok := lu.Match(namedRequest(http.MethodGet, "view"), &widget{})
	require.True(t, ok)

	_, err := factory()
	assert.ErrorIs(t, err, boom)
}

func TestRouteNameRoundTrip(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "", RouteNameFrom(r.Context()))

	ctx := WithRouteName(r.Context(), "edit")
	assert.Equal(t, "edit", RouteNameFrom(ctx))
}
