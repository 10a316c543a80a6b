// Package metrics holds the Prometheus metrics of eventize runs.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// item statuses
const (
	StatusOK      = "ok"
	StatusSkipped = "skipped"
	StatusFailed  = "failed"
)

// EventizeMetrics counts items and events per data source
type EventizeMetrics struct {
	ItemsTotal  *prometheus.CounterVec
	EventsTotal *prometheus.CounterVec
	RunSeconds  *prometheus.HistogramVec

	gatherer prometheus.Gatherer
}

// New registers the metrics on reg; nil uses a fresh private registry
func New(reg *prometheus.Registry) *EventizeMetrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	f := promauto.With(reg)
	return &EventizeMetrics{
		ItemsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chronicler",
			Subsystem: "eventize",
			Name:      "items_total",
			Help:      "Items read, by data source and outcome.",
		}, []string{"source", "status"}), // status: ok, skipped, failed
		EventsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chronicler",
			Subsystem: "eventize",
			Name:      "events_total",
			Help:      "Events produced, by data source and event type.",
		}, []string{"source", "type"}),
		RunSeconds: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "chronicler",
			Subsystem: "eventize",
			Name:      "run_seconds",
			Help:      "Wall time of one eventize run.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 4, 8),
		}, []string{"source"}),
		gatherer: reg,
	}
}

// Item counts one item outcome
func (m *EventizeMetrics) Item(source, status string) {
	if m == nil {
		return
	}
	m.ItemsTotal.WithLabelValues(source, status).Inc()
}

// Event counts one produced event
func (m *EventizeMetrics) Event(source, typ string) {
	if m == nil {
		return
	}
	m.EventsTotal.WithLabelValues(source, typ).Inc()
}

// Run observes the duration of a run started at start
func (m *EventizeMetrics) Run(source string, start time.Time) {
	if m == nil {
		return
	}
	m.RunSeconds.WithLabelValues(source).Observe(time.Since(start).Seconds())
}

// Handler serves the registry in the Prometheus exposition format
func (m *EventizeMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
