package metric

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestCounters(t *testing.T) {
	m := New()
	m.SitemapRequests.Increment("jd")
	m.SitemapRequests.Increment("jd")
	m.ActiveEntries.Increment("jd", "Action")

	families, err := m.Registry().Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	var got float64
	for _, f := range families {
		if f.GetName() != "sidenav_sitemap_requests_total" {
			continue
		}
		for _, metric := range f.GetMetric() {
			got += metric.GetCounter().GetValue()
		}
	}
	if got != 2 {
		t.Errorf("sidenav_sitemap_requests_total = %v, want 2", got)
	}
}

func TestHandler(t *testing.T) {
	m := New()
	m.Reloads.Increment("file", "ok")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), `sidenav_reloads_total{result="ok",source="file"} 1`) {
		t.Errorf("metrics output missing reload counter:\n%s", body)
	}
}

func TestCounterNames(t *testing.T) {
	m := New()
	m.SitemapRequests.Increment("bnc")
	m.ActiveEntries.Increment("bnc", "Join")
	m.Reloads.Increment("redis", "error")

	families, err := m.Registry().Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	seen := map[string]bool{}
	for _, f := range families {
		seen[f.GetName()] = true
	}
	for _, name := range []string{
		"sidenav_sitemap_requests_total",
		"sidenav_active_entries_total",
		"sidenav_reloads_total",
	} {
		if !seen[name] {
			t.Errorf("%s not registered", name)
		}
	}
}
