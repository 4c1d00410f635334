package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/sidenav/internal/httpserver/deps"
)

type componentStatus struct {
	OK             bool     `json:"ok"`
	VariantsLoaded *int     `json:"variants_loaded,omitempty"`
	Source         string   `json:"source,omitempty"`
	File           string   `json:"file,omitempty"`
	LastReload     string   `json:"last_reload,omitempty"`
	SharedVariants []string `json:"shared_variants,omitempty"`
	DocumentSaved  string   `json:"document_saved,omitempty"`
	Mode           string   `json:"mode,omitempty"`
	Impact         string   `json:"impact,omitempty"`
	Error          string   `json:"error,omitempty"`
}

type infraResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count := d.MemoryIndex.Count()
		lastReload := d.MemoryIndex.GetLastReload()
		lastReloadStr := "never"
		if !lastReload.IsZero() {
			lastReloadStr = lastReload.Format("2006-01-02 15:04:05")
		}

		components := map[string]componentStatus{
			"catalog": {
				OK:             count > 0,
				VariantsLoaded: &count,
				Source:         d.MemoryIndex.Source(),
				File:           d.SitemapFile,
				LastReload:     lastReloadStr,
			},
			"redis": checkRedis(r.Context(), d),
		}

		writeJSON(w, http.StatusOK, infraResponse{
			Mode:       determineMode(components),
			Components: components,
		})
	}
}

func determineMode(components map[string]componentStatus) string {
	if catalog, exists := components["catalog"]; exists {
		if !catalog.OK {
			return "critical"
		}
	}

	// Redis down = degraded (no shared document, no usage counters)
	if redis, exists := components["redis"]; exists && !redis.OK && redis.Mode != "disabled" {
		return "degraded"
	}

	return "optimal"
}

func checkRedis(ctx context.Context, d deps.Deps) componentStatus {
	if d.Store == nil {
		return componentStatus{
			OK:     true,
			Mode:   "disabled",
			Impact: "usage-tracking-disabled",
		}
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := d.Store.Ping(ctx); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "usage-tracking-disabled",
			Error:  err.Error(),
		}
	}

	status := componentStatus{
		OK:     true,
		Mode:   "optimal",
		Impact: "usage-tracking-enabled",
	}
	if names, err := d.Store.Variants(ctx); err == nil {
		status.SharedVariants = names
	}
	if saved, err := d.Store.DocumentUpdatedAt(ctx); err == nil && !saved.IsZero() {
		status.DocumentSaved = saved.Format("2006-01-02 15:04:05")
	}
	return status
}
