// Package metrics defines the Prometheus instruments for the registry.
// A nil *Metrics is a valid no-op receiver so tests can pass nil instead of
// wiring a registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the service-level counters. One instance is created in main
// and injected into services and the loader.
type Metrics struct {
	registrations *prometheus.CounterVec
	searches      *prometheus.CounterVec
	loaderFiles   prometheus.Counter
}

// New creates the counters and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "trademark_registrations_total",
			Help: "Register workflow outcomes.",
		}, []string{"outcome"}),
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "trademark_searches_total",
			Help: "Search workflow calls by match mode and outcome.",
		}, []string{"mode", "outcome"}),
		loaderFiles: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "trademark_loader_files_processed_total",
			Help: "Application XML files processed by the bulk loader.",
		}),
	}
	reg.MustRegister(m.registrations, m.searches, m.loaderFiles)
	return m
}

// Registration records one register workflow outcome.
func (m *Metrics) Registration(outcome string) {
	if m == nil {
		return
	}
	m.registrations.WithLabelValues(outcome).Inc()
}

// Search records one search workflow call.
func (m *Metrics) Search(mode, outcome string) {
	if m == nil {
		return
	}
	m.searches.WithLabelValues(mode, outcome).Inc()
}

// LoaderFiles adds n processed files to the loader counter.
func (m *Metrics) LoaderFiles(n int) {
	if m == nil {
		return
	}
	m.loaderFiles.Add(float64(n))
}
