package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	return New(reg, reg)
}

func TestObserveRequest(t *testing.T) {
	m := newTestMetrics()

	m.ObserveRequest("/api/backstop-q4w", http.StatusOK, 10*time.Millisecond)
	m.ObserveRequest("/api/backstop-q4w", http.StatusOK, 20*time.Millisecond)
	m.ObserveRequest("/api/backstop-q4w", http.StatusInternalServerError, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("/api/backstop-q4w", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("/api/backstop-q4w", "500")))
}

func TestCacheCounters(t *testing.T) {
	m := newTestMetrics()

	m.RecordCacheLookup(CacheHit)
	m.RecordCacheLookup(CacheMiss)
	m.RecordCacheLookup(CacheMiss)
	m.RecordWarmRun("ok", time.Second)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues(CacheHit)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues(CacheMiss)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheWarmRuns.WithLabelValues("ok")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := newTestMetrics()
	m.RecordCacheLookup(CacheHit)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `smoothie_cache_lookups_total{result="hit"} 1`)
}

func TestDoubleRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg, reg)
	assert.Panics(t, func() { New(reg, reg) })
}
