package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/sidenav/internal/httpserver/deps"
	"github.com/MrSnakeDoc/sidenav/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/sidenav/internal/httpserver/mw"
)

func init() { Register(registerAdmin) }

// registerAdmin mounts the operator routes behind the IP and Host allow-lists.
func registerAdmin(r chi.Router, d deps.Deps) {
	r.Group(func(r chi.Router) {
		r.Use(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger), mw.EnforceHost(d.AllowedHosts, d.Logger))
		r.Get("/infra", handlers.Infra(d))
		r.Post("/reload", handlers.Reload(d))
		r.Method("GET", "/metrics", handlers.Metrics(d))
	})
}
