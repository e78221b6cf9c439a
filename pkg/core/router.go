// core/router.go
package core

import (
	"net/http"

	chi "github.com/go-chi/chi/v5"
	chimd "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/joeydtaylor/dispatch-core/pkg/codec"
	"github.com/joeydtaylor/dispatch-core/pkg/dispatch"
	manifest "github.com/joeydtaylor/dispatch-core/pkg/manifest"
	"github.com/joeydtaylor/dispatch-core/pkg/middleware/logger"
	hmetrics "github.com/joeydtaylor/dispatch-core/pkg/middleware/metrics"
	"github.com/joeydtaylor/dispatch-core/pkg/registry"
	httpx "github.com/joeydtaylor/dispatch-core/pkg/transport/httpx"
)

type BuildDeps struct {
	LogMW   *logger.Middleware
	Metrics http.Handler
	Router  httpx.Router
	Log     *zap.Logger
}

// Result lets a handler choose the response status; any other handler return
// value is encoded as-is with 200.
type Result struct {
	Status int
	Body   any
}

// BuildRouter mounts every configured model path (plus its /{view} variant)
// on the mux. Dispatch happens per request against the populated store.
func BuildRouter(cfg manifest.Config, store *registry.Store, d BuildDeps) http.Handler {
	r := d.Router
	r.Use(chimd.RequestID, chimd.Recoverer, chimd.Heartbeat("/ping"))
	if d.LogMW != nil {
		r.Use(d.LogMW.Middleware())
	}
	r.Use(hmetrics.Collect())

	if d.Metrics != nil {
		r.Get("/metrics", d.Metrics)
	}

	for _, m := range cfg.Models {
		b, ok := LookupModel(m.Name)
		if !ok {
			// Apply already failed fast for resources; a mount with no code
			// binding still answers rather than panicking the mux.
			if d.Log != nil {
				d.Log.Error("model binding missing", zap.String("model", m.Name))
			}
			r.HandleAll(m.Path, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "model binding missing", http.StatusInternalServerError)
			}))
			continue
		}
		h := serveModel(b, store)
		r.HandleAll(m.Path, h)
		r.HandleAll(viewPattern(m.Path), h)
	}
	return r.Mux()
}

func viewPattern(p string) string {
	if p == "/" {
		return "/{view}"
	}
	return p + "/{view}"
}

func serveModel(b ModelBinding, store *registry.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		model, err := b.Resolve(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if model == nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}

		view := chi.URLParam(r, "view")
		r = r.WithContext(dispatch.WithRouteName(r.Context(), view))

		factory, ok := dispatch.ResolveResource(store, r, model)
		if !ok {
			hmetrics.NoHandler(b.Name, r.Method, view)
			http.Error(w, "no handler", http.StatusNotFound)
			return
		}

		out, err := factory()
		if err != nil {
			// handler failures pass through untranslated
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeResult(w, out)
	}
}

func writeResult(w http.ResponseWriter, out any) {
	status := http.StatusOK
	body := out
	if res, ok := out.(*Result); ok {
		body = res.Body
		if res.Status > 0 {
			status = res.Status
		}
	}
	if err := codec.WriteJSON(w, status, body); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
