// Package metrics provides Prometheus metrics for stadium-fixtures.
//
// A Manager owns its registry, so several managers (one per test) never collide.
// All recording methods are safe on a nil *Manager, which lets callers treat
// metrics as optional.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Refresh results.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// Manager holds the service metrics.
type Manager struct {
	namespace        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	refreshes       *prometheus.CounterVec
	fetchDuration   *prometheus.HistogramVec
	upcomingMatches prometheus.Gauge
	exports         *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
}

// NewManager creates a metrics manager on a fresh registry unless WithRegistry is given.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "stadium_fixtures",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.NewRegistry(),
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.refreshes = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "refresh_total",
		Help:      "Total number of fetch cycles by result",
	}, []string{"result"})

	m.fetchDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "fetch_duration_seconds",
		Help:      "Duration of backend fetches in seconds",
		Buckets:   m.histogramBuckets,
	}, []string{"source"})

	m.upcomingMatches = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      "upcoming_matches",
		Help:      "Number of upcoming matches on the current board",
	})

	m.exports = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "exports_total",
		Help:      "Total number of calendar exports by kind",
	}, []string{"kind"})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by route and status code",
	}, []string{"route", "code"})
}

// Registry returns the registry the metrics live on.
func (m *Manager) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Manager) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RecordRefresh counts one fetch cycle.
func (m *Manager) RecordRefresh(err error) {
	if m == nil {
		return
	}
	result := ResultSuccess
	if err != nil {
		result = ResultError
	}
	m.refreshes.WithLabelValues(result).Inc()
}

// ObserveFetch records how long one fetch against source took.
func (m *Manager) ObserveFetch(source string, d time.Duration) {
	if m == nil {
		return
	}
	m.fetchDuration.WithLabelValues(source).Observe(d.Seconds())
}

// SetUpcoming sets the number of upcoming matches.
func (m *Manager) SetUpcoming(n int) {
	if m == nil {
		return
	}
	m.upcomingMatches.Set(float64(n))
}

// RecordExport counts one export of the given kind.
func (m *Manager) RecordExport(kind string) {
	if m == nil {
		return
	}
	m.exports.WithLabelValues(kind).Inc()
}

// RecordHTTPRequest counts one HTTP request.
func (m *Manager) RecordHTTPRequest(route string, code int) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
}
