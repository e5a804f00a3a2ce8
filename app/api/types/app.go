package types

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/smoothie-fi/smoothie/pkg/cache"
	"github.com/smoothie-fi/smoothie/pkg/config"
	"github.com/smoothie-fi/smoothie/pkg/db"
	"github.com/smoothie-fi/smoothie/pkg/metrics"
	"github.com/smoothie-fi/smoothie/pkg/pricing"
	"github.com/smoothie-fi/smoothie/pkg/q4w"
	"github.com/smoothie-fi/smoothie/pkg/redis"
)

type App struct {
	Config *config.Config

	Q4WStore      db.Q4WStore
	SnapshotStore db.SnapshotStore
	EventStore    db.EventStore

	Q4W    *q4w.Service
	Prices pricing.Service

	// Cache is nil when CACHE_ENABLED is false.
	Cache       cache.Cache
	RedisClient *redis.Client

	Metrics *metrics.Metrics

	// Cron runs the cache warmer; nil when warming or the cache is disabled.
	Cron *cron.Cron

	// Now is the clock used for request-time calculations.
	Now func() time.Time

	Logger *zap.Logger
	Server *http.Server
}

// Start serves until ctx is done, then shuts everything down.
func (a *App) Start(ctx context.Context) {
	go func() {
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Logger.Error("Server stopped", zap.Error(err))
		}
	}()

	if a.Cron != nil {
		a.Cron.Start()
		a.Logger.Info("Cache warmer started", zap.String("cronSpec", a.Config.Warm.Spec))
	}

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if a.Cron != nil {
		<-a.Cron.Stop().Done()
	}

	_ = a.Server.Shutdown(shutdownCtx)
	a.Close()

	time.Sleep(200 * time.Millisecond)
	a.Logger.Info("さようなら!")
}

// Close releases the stores and the Redis connection. The Postgres store
// backs both Q4WStore and SnapshotStore, and its pool tolerates a second Close.
func (a *App) Close() {
	resources := map[string]closer{
		"q4w store":      a.Q4WStore,
		"snapshot store": a.SnapshotStore,
		"event store":    a.EventStore,
	}
	if a.RedisClient != nil {
		resources["redis"] = a.RedisClient
	}

	for name, c := range resources {
		if c == nil {
			continue
		}
		if err := c.Close(); err != nil {
			a.Logger.Error("Failed to close connection", zap.String("resource", name), zap.Error(err))
		}
	}
}

type closer interface{ Close() error }
