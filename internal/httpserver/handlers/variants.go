package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/sidenav/internal/httpserver/deps"
	"github.com/MrSnakeDoc/sidenav/internal/logger"
	"github.com/MrSnakeDoc/sidenav/internal/render"
)

type ruleResponse struct {
	Marker  string `json:"marker"`
	Variant string `json:"variant"`
}

type variantsResponse struct {
	Default    string         `json:"default"`
	Variants   []string       `json:"variants"`
	Rules      []ruleResponse `json:"rules"`
	Source     string         `json:"source"`
	LastReload string         `json:"last_reload,omitempty"`
}

type variantResponse struct {
	Name    string           `json:"name"`
	Entries int              `json:"entries"`
	Links   []render.Link    `json:"links"`
	Usage   map[string]int64 `json:"usage,omitempty"`
}

// Variants lists the served variants and the rules choosing between them.
func Variants(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		catalog := d.MemoryIndex.Catalog()
		sel := catalog.Selector()

		rules := make([]ruleResponse, 0, len(sel.Rules))
		for _, rule := range sel.Rules {
			rules = append(rules, ruleResponse{Marker: rule.Marker, Variant: rule.Variant})
		}

		resp := variantsResponse{
			Default:  sel.Default,
			Variants: catalog.Names(),
			Rules:    rules,
			Source:   d.MemoryIndex.Source(),
		}
		if last := d.MemoryIndex.GetLastReload(); !last.IsZero() {
			resp.LastReload = last.UTC().Format(time.RFC3339)
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

// Variant renders one variant by name, regardless of the caller origin.
// Links are resolved against the "origin" query parameter or the configured default.
func Variant(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		v, ok := d.MemoryIndex.Catalog().Variant(name)
		if !ok {
			writeError(w, http.StatusNotFound, "unknown variant "+name)
			return
		}

		origin := strings.TrimSpace(r.URL.Query().Get("origin"))
		if origin == "" {
			origin = d.DefaultOrigin
		}
		location := r.URL.Query().Get("url")

		resp := variantResponse{
			Name:    v.Name,
			Entries: v.Count(),
			Links:   render.Render(v, location, render.ParseBase(origin)),
		}

		if d.Store != nil {
			ctx, cancel := context.WithTimeout(r.Context(), time.Second)
			defer cancel()
			stats, err := d.Store.GetUsageStats(ctx, v.Name)
			if err != nil {
				d.Logger.Debug("failed to read usage stats",
					logger.String("variant", v.Name),
					logger.Error(err))
			} else {
				resp.Usage = stats
			}
		}

		writeJSON(w, http.StatusOK, resp)
	}
}
