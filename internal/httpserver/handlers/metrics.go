package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/sidenav/internal/httpserver/deps"
)

// Metrics serves the Prometheus registry, or 404 when metrics are disabled.
func Metrics(d deps.Deps) http.Handler {
	if d.Metrics == nil {
		return http.NotFoundHandler()
	}
	return d.Metrics.Handler()
}
