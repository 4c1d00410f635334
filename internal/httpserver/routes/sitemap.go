package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/sidenav/internal/httpserver/deps"
	"github.com/MrSnakeDoc/sidenav/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/sidenav/internal/httpserver/mw"
)

func init() { Register(registerSitemap) }

func registerSitemap(r chi.Router, d deps.Deps) {
	r.Route("/sitemap", func(r chi.Router) {
		r.Use(mw.RateLimit(d.RateLimit))
		r.Get("/", handlers.Sitemap(d))
		r.Get("/variants", handlers.Variants(d))
		r.Get("/variants/{name}", handlers.Variant(d))
	})
}
