// Package metrics defines the Prometheus collectors of the API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "smoothie"

// Cache lookup results.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// Metrics holds all Prometheus metrics for the API.
type Metrics struct {
	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	CacheLookups        *prometheus.CounterVec
	CacheWarmRuns       *prometheus.CounterVec
	CacheWarmDuration   prometheus.Histogram

	gatherer prometheus.Gatherer
}

// New creates the collectors and registers them on reg. gatherer backs Handler
// and is usually the same registry.
func New(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route template and status code",
		}, []string{"route", "code"}),

		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route template",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),

		CacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Response cache lookups by result",
		}, []string{"result"}),

		CacheWarmRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_warm_runs_total",
			Help:      "Cache warmer runs by result",
		}, []string{"result"}),

		CacheWarmDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "cache_warm_duration_seconds",
			Help:      "Wall time of one cache warmer run",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),

		gatherer: gatherer,
	}
}

// Handler serves the exposition format for the gatherer.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// ObserveRequest records one served request.
func (m *Metrics) ObserveRequest(route string, code int, elapsed time.Duration) {
	m.HTTPRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
	m.HTTPRequestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

func (m *Metrics) RecordCacheLookup(result string) {
	m.CacheLookups.WithLabelValues(result).Inc()
}

// RecordWarmRun records a warmer run; result is "ok" or "error".
func (m *Metrics) RecordWarmRun(result string, elapsed time.Duration) {
	m.CacheWarmRuns.WithLabelValues(result).Inc()
	m.CacheWarmDuration.Observe(elapsed.Seconds())
}
