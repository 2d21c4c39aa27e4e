// Package metrics provides Prometheus metrics for the tab grouper service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	OperationsTotal  *prometheus.CounterVec
	RestoreDuration  prometheus.Histogram
	GroupsCreated    prometheus.Counter
	AutosavesTotal   prometheus.Counter
	WorkspacesActive prometheus.Gauge
	ErrorsTotal      *prometheus.CounterVec

	registry *prometheus.Registry
}

// New creates and registers all metrics.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		OperationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tabgrouper_operations_total",
				Help: "Total number of grouping operations by type and status.",
			},
			[]string{"operation", "status"},
		),
		RestoreDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "tabgrouper_restore_duration_seconds",
				Help:    "Workspace restore duration.",
				Buckets: prometheus.DefBuckets,
			},
		),
		GroupsCreated: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "tabgrouper_groups_created_total",
				Help: "Total number of tab groups materialized.",
			},
		),
		AutosavesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "tabgrouper_autosaves_total",
				Help: "Total number of session autosaves pushed to the ring.",
			},
		),
		WorkspacesActive: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "tabgrouper_workspaces",
				Help: "Number of workspaces in the store.",
			},
		),
		ErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tabgrouper_errors_total",
				Help: "Total errors by module and type.",
			},
			[]string{"module", "type"},
		),
		registry: reg,
	}

	reg.MustRegister(m.OperationsTotal)
	reg.MustRegister(m.RestoreDuration)
	reg.MustRegister(m.GroupsCreated)
	reg.MustRegister(m.AutosavesTotal)
	reg.MustRegister(m.WorkspacesActive)
	reg.MustRegister(m.ErrorsTotal)

	return m
}

// Handler returns an http.Handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordOperation increments the operation counter.
func (m *Metrics) RecordOperation(operation, status string) {
	m.OperationsTotal.WithLabelValues(operation, status).Inc()
}

// RecordError increments the error counter.
func (m *Metrics) RecordError(module, errType string) {
	m.ErrorsTotal.WithLabelValues(module, errType).Inc()
}

// ObserveRestore records a restore duration.
func (m *Metrics) ObserveRestore(seconds float64) {
	m.RestoreDuration.Observe(seconds)
}

// AddGroups counts newly materialized groups.
func (m *Metrics) AddGroups(n int) {
	m.GroupsCreated.Add(float64(n))
}

// IncAutosaves counts one autosave push.
func (m *Metrics) IncAutosaves() {
	m.AutosavesTotal.Inc()
}

// SetWorkspaces sets the workspace count gauge.
func (m *Metrics) SetWorkspaces(count int) {
	m.WorkspacesActive.Set(float64(count))
}
