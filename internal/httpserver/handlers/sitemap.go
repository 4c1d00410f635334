package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/MrSnakeDoc/sidenav/internal/httpserver/deps"
	"github.com/MrSnakeDoc/sidenav/internal/logger"
	"github.com/MrSnakeDoc/sidenav/internal/render"
)

type sitemapResponse struct {
	Variant     string        `json:"variant"`
	Origin      string        `json:"origin"`
	Links       []render.Link `json:"links"`
	ActiveTrail []string      `json:"active_trail"`
}

// Sitemap renders the navigation tree of the brand serving the caller.
//
// The origin comes from the "origin" query parameter, then the Origin header,
// then the configured default, then the request itself. The location used for
// active flags comes from the "url" query parameter, then the Referer header.
func Sitemap(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		origin := requestOrigin(r, d)
		location := requestLocation(r)

		v := d.MemoryIndex.Select(origin)
		base := render.ParseBase(origin)
		links := render.Render(v, location, base)
		trail := v.ActiveTrail(location)
		if trail == nil {
			trail = []string{}
		}

		d.Logger.Debug("sitemap request",
			logger.String("origin", origin),
			logger.String("location", location),
			logger.String("variant", v.Name),
			logger.Strings("active", trail))

		recordUsage(r.Context(), d, v.Name, trail)

		w.Header().Set("Cache-Control", "no-store")
		w.Header().Add("Vary", "Origin")
		w.Header().Add("Vary", "Referer")
		writeJSON(w, http.StatusOK, sitemapResponse{
			Variant:     v.Name,
			Origin:      base.Origin(),
			Links:       links,
			ActiveTrail: trail,
		})
	}
}

func requestOrigin(r *http.Request, d deps.Deps) string {
	if o := strings.TrimSpace(r.URL.Query().Get("origin")); o != "" {
		return o
	}
	if o := strings.TrimSpace(r.Header.Get("Origin")); o != "" && o != "null" {
		return o
	}
	if d.DefaultOrigin != "" {
		return d.DefaultOrigin
	}
	if r.Host == "" {
		return ""
	}
	return requestScheme(r, d.TrustProxy) + "://" + r.Host
}

func requestScheme(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if p := strings.ToLower(strings.TrimSpace(r.Header.Get("X-Forwarded-Proto"))); p == "http" || p == "https" {
			return p
		}
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}

func requestLocation(r *http.Request) string {
	if u := strings.TrimSpace(r.URL.Query().Get("url")); u != "" {
		return u
	}
	return r.Referer()
}

// recordUsage counts the request and its active entries. Redis errors are
// logged and never fail the request.
func recordUsage(ctx context.Context, d deps.Deps, variant string, trail []string) {
	if d.Metrics != nil {
		d.Metrics.SitemapRequests.Increment(variant)
		for _, label := range trail {
			d.Metrics.ActiveEntries.Increment(variant, label)
		}
	}

	if d.Store == nil || len(trail) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	if err := d.Store.IncrementHits(ctx, variant, trail); err != nil {
		d.Logger.Debug("failed to record hits",
			logger.String("variant", variant),
			logger.Error(err))
	}
}
