// Package chiadapter mounts an adapter.Handler on a chi router.
package chiadapter

import (
	"net/http"
	"regexp"

	"github.com/go-chi/chi/v5"

	"github.com/mattjoyce/vortex/adapter"
)

var paramPattern = regexp.MustCompile(`\{(\w+)\}`)

// Mount registers every adapter route on r. Use r.Route or r.Mount to
// choose the prefix.
func Mount(r chi.Router, h *adapter.Handler) {
	for _, route := range adapter.Routes() {
		r.Method(route.Method, route.Pattern, handlerFor(h, route))
	}
}

// Router returns a standalone router serving the adapter routes.
func Router(h *adapter.Handler) chi.Router {
	r := chi.NewRouter()
	Mount(r, h)
	return r
}

func handlerFor(h *adapter.Handler, route adapter.Route) http.HandlerFunc {
	names := paramNames(route.Pattern)
	return func(w http.ResponseWriter, r *http.Request) {
		params := make(adapter.Params, len(names))
		for _, name := range names {
			params[name] = chi.URLParam(r, name)
		}
		adapter.WriteJSON(w, h.Serve(route.Operation, r, params))
	}
}

func paramNames(pattern string) []string {
	var names []string
	for _, m := range paramPattern.FindAllStringSubmatch(pattern, -1) {
		names = append(names, m[1])
	}
	return names
}
