// Package metric exposes the service counters through Prometheus.
package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "sidenav"

// IncrementalCounter counts events by label values, in declaration order.
type IncrementalCounter interface {
	Increment(labels ...string)
}

type labeledCounter struct {
	vec *prometheus.CounterVec
}

func (c labeledCounter) Increment(labels ...string) {
	c.vec.WithLabelValues(labels...).Inc()
}

// Metrics groups every counter of the service around one registry.
type Metrics struct {
	registry *prometheus.Registry

	SitemapRequests IncrementalCounter // variant
	ActiveEntries   IncrementalCounter // variant, label
	Reloads         IncrementalCounter // source, result
}

// New builds a registry with the Go and process collectors and the service counters.
func New() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m.SitemapRequests = m.counter("sitemap_requests_total", "Sitemaps served, by variant.", "variant")
	m.ActiveEntries = m.counter("active_entries_total", "Entries rendered as active, by variant and label.", "variant", "label")
	m.Reloads = m.counter("reloads_total", "Catalog reloads, by source and result.", "source", "result")

	return m
}

// counter registers a sidenav_<name> counter vector on the service registry.
func (m *Metrics) counter(name, help string, labels ...string) IncrementalCounter {
	vec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      name,
		Help:      help,
	}, labels)
	m.registry.MustRegister(vec)
	return labeledCounter{vec: vec}
}

// Registry returns the underlying registry, mostly for tests.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
