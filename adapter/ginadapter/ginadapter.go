// Package ginadapter registers an adapter.Handler on a gin router group.
package ginadapter

import (
	"regexp"

	"github.com/gin-gonic/gin"

	"github.com/mattjoyce/vortex/adapter"
)

var paramPattern = regexp.MustCompile(`\{(\w+)\}`)

// Register adds every adapter route to g, typically a group such as
// engine.Group("/api/vortex").
func Register(g gin.IRoutes, h *adapter.Handler) {
	for _, route := range adapter.Routes() {
		g.Handle(route.Method, ginPath(route.Pattern), handlerFor(h, route))
	}
}

func handlerFor(h *adapter.Handler, route adapter.Route) gin.HandlerFunc {
	return func(c *gin.Context) {
		params := make(adapter.Params, len(c.Params))
		for _, p := range c.Params {
			params[p.Key] = p.Value
		}
		resp := h.Serve(route.Operation, c.Request, params)
		c.JSON(resp.Status, resp.Body)
	}
}

// ginPath rewrites {name} placeholders to gin's :name form.
func ginPath(pattern string) string {
	return paramPattern.ReplaceAllString(pattern, ":$1")
}
