package controller

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/smoothie-fi/smoothie/pkg/cache"
	"github.com/smoothie-fi/smoothie/pkg/metrics"
)

const (
	requestIDHeader = "X-Request-ID"
	cacheHeader     = "X-Cache"
)

type ctxKey string

const requestIDKey ctxKey = "request_id"

// withRequestID propagates the caller's X-Request-ID or assigns a new one.
func (c *Controller) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

// requestLogger returns logger tagged with the request id carried by ctx.
func requestLogger(ctx context.Context, logger *zap.Logger) *zap.Logger {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return logger.With(zap.String("request_id", id))
	}
	return logger
}

// statusRecorder captures the status code and, when buffering, the body.
type statusRecorder struct {
	http.ResponseWriter
	status int
	body   *bytes.Buffer
}

func (s *statusRecorder) WriteHeader(code int) {
	if s.status == 0 {
		s.status = code
	}
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	if s.status == 0 {
		s.status = http.StatusOK
	}
	if s.body != nil {
		s.body.Write(b)
	}
	return s.ResponseWriter.Write(b)
}

func (s *statusRecorder) code() int {
	if s.status == 0 {
		return http.StatusOK
	}
	return s.status
}

// withMetrics records request count and latency by route template.
func (c *Controller) withMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := "unmatched"
		if current := mux.CurrentRoute(r); current != nil {
			if tpl, err := current.GetPathTemplate(); err == nil {
				route = tpl
			}
		}

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		c.App.Metrics.ObserveRequest(route, rec.code(), time.Since(start))
	})
}

// cached sets the route's Cache-Control header and, when a response cache is
// configured, serves stored bodies and stores fresh 200 responses.
// Cache failures never fail the request.
func (c *Controller) cached(route string, h http.HandlerFunc) http.Handler {
	policy := c.App.Config.Cache.For(route)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", policy.Header())

		if c.App.Cache == nil || !policy.Cacheable() {
			h(w, r)
			return
		}

		ctx := r.Context()
		logger := requestLogger(ctx, c.App.Logger)
		key := cache.Key(r.URL.Path, r.URL.Query())

		body, ok, err := c.App.Cache.Get(ctx, key)
		switch {
		case err != nil:
			c.App.Metrics.RecordCacheLookup(metrics.CacheError)
			logger.Warn("Cache lookup failed", zap.String("key", key), zap.Error(err))
		case ok:
			c.App.Metrics.RecordCacheLookup(metrics.CacheHit)
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set(cacheHeader, "HIT")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(body)
			return
		default:
			c.App.Metrics.RecordCacheLookup(metrics.CacheMiss)
		}

		w.Header().Set(cacheHeader, "MISS")
		rec := &statusRecorder{ResponseWriter: w, body: &bytes.Buffer{}}
		h(rec, r)

		if rec.code() != http.StatusOK {
			return
		}
		if err := c.App.Cache.Set(context.WithoutCancel(ctx), key, rec.body.Bytes(), policy.SMaxAge); err != nil {
			logger.Warn("Cache store failed", zap.String("key", key), zap.Error(err))
		}
	})
}
