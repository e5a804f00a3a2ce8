package api

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"github.com/smoothie-fi/smoothie/app/api/types"
	"github.com/smoothie-fi/smoothie/pkg/cache"
	"github.com/smoothie-fi/smoothie/pkg/config"
	"github.com/smoothie-fi/smoothie/pkg/db"
	chbackstop "github.com/smoothie-fi/smoothie/pkg/db/clickhouse/backstop"
	"github.com/smoothie-fi/smoothie/pkg/db/memory"
	pgbackstop "github.com/smoothie-fi/smoothie/pkg/db/postgres/backstop"
	"github.com/smoothie-fi/smoothie/pkg/logging"
	"github.com/smoothie-fi/smoothie/pkg/metrics"
	"github.com/smoothie-fi/smoothie/pkg/pricing"
	"github.com/smoothie-fi/smoothie/pkg/q4w"
	"github.com/smoothie-fi/smoothie/pkg/redis"
)

// Initialize initializes the application.
func Initialize(ctx context.Context) *types.App {
	logger, err := logging.New("api")
	if err != nil {
		// nothing else to do here, we'll just log to stderr
		panic(err)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Unable to load configuration", zap.Error(err))
	}

	app, err := NewApp(ctx, logger, cfg)
	if err != nil {
		logger.Fatal("Unable to initialize application", zap.Error(err))
	}

	return app
}

// NewApp wires stores, cache, pricing and metrics from cfg.
func NewApp(ctx context.Context, logger *zap.Logger, cfg *config.Config) (*types.App, error) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	app := &types.App{
		Config:  cfg,
		Prices:  pricing.NewStaticService(cfg.Prices),
		Metrics: metrics.New(reg, reg),
		Now:     time.Now,
		Logger:  logger,
	}

	if err := openStores(ctx, app); err != nil {
		app.Close()
		return nil, err
	}

	openCache(ctx, app)

	app.Q4W = q4w.NewService(app.Q4WStore, cfg.Pools, app.Now)

	logger.Info("Application initialized",
		zap.String("network", cfg.Network.Name),
		zap.String("storage", cfg.Storage.Backend),
	)

	return app, nil
}

func openStores(ctx context.Context, app *types.App) error {
	storage := app.Config.Storage

	switch storage.Backend {
	case config.BackendMemory:
		app.Q4WStore = memory.NewQ4WStore()
		app.SnapshotStore = memory.NewSnapshotStore()
		app.EventStore = memory.NewEventStore()
		app.Logger.Warn("Using in-memory storage - data is not persisted")
		return nil

	case config.BackendPostgres:
		backstopDB, err := pgbackstop.New(ctx, app.Logger, storage.PostgresURL, storage.PostgresDB)
		if err != nil {
			return fmt.Errorf("postgres backstop store: %w", err)
		}
		app.Q4WStore = backstopDB
		app.SnapshotStore = backstopDB

		eventsDB, err := chbackstop.New(ctx, app.Logger, storage.ClickHouseAddr, storage.ClickHouseDB)
		if err != nil {
			return fmt.Errorf("clickhouse event store: %w", err)
		}
		app.EventStore = eventsDB
		return nil
	}

	return fmt.Errorf("unknown storage backend %q: %w", storage.Backend, db.ErrInvalidInput)
}

// openCache installs the response cache. Redis is preferred when enabled; an
// unreachable Redis falls back to the in-process cache.
func openCache(ctx context.Context, app *types.App) {
	cfg := app.Config
	logger := app.Logger

	if !cfg.ResponseCache.Enabled {
		logger.Info("Response cache disabled")
		return
	}

	if cfg.Redis.Enabled {
		redisClient, err := redis.NewClient(ctx, logger, cfg.Redis.Options)
		if err == nil {
			app.RedisClient = redisClient
			app.Cache = cache.NewRedisCache(redisClient)
			logger.Info("Redis response cache enabled", zap.String("addr", cfg.Redis.Options.Addr()))
			return
		}
		logger.Warn("Failed to initialize Redis client - falling back to in-process response cache",
			zap.Error(err))
	} else {
		logger.Info("Redis disabled - using in-process response cache")
	}

	app.Cache = cache.NewMemoryCache(cache.WithSweepInterval(cfg.ResponseCache.SweepInterval))
}
