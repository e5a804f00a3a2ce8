package controller

import (
	"context"
	"net/http"

	"go.uber.org/zap"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// HandleHealth pings every storage backend. Redis is optional, so its failure
// is reported as degraded rather than errored.
func (c *Controller) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := requestLogger(ctx, c.App.Logger)

	stores := map[string]pinger{
		"q4w":    c.App.Q4WStore,
		"events": c.App.EventStore,
	}
	for name, store := range stores {
		if store == nil {
			continue
		}
		if err := store.Ping(ctx); err != nil {
			logger.Warn("Health check failed", zap.String("store", name), zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, map[string]string{"status": "errored", "error": "database connection error"})
			return
		}
	}

	if c.App.RedisClient != nil {
		if err := c.App.RedisClient.Health(ctx); err != nil {
			logger.Warn("Redis health check failed", zap.Error(err))
			writeJSON(w, http.StatusOK, map[string]string{"status": "degraded", "error": "cache connection error"})
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
