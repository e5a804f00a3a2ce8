package api

import (
	"context"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/smoothie-fi/smoothie/app/api/controller"
	"github.com/smoothie-fi/smoothie/app/api/types"
)

// NewServer builds the router and the http.Server, and schedules the cache
// warmer when it is enabled.
func NewServer(ctx context.Context, app *types.App) error {
	ctler := controller.NewController(app)
	router, err := ctler.NewRouter()
	if err != nil {
		return err
	}

	// use <ip>:<port> to bind to a specific interface or :<port> to bind to all interfaces
	addr := app.Config.Addr

	app.Server = &http.Server{
		Addr:              addr,
		Handler:           controller.WithCORS(router),
		ReadHeaderTimeout: 10 * time.Second,
	}
	app.Logger.Info("Starting server", zap.String("addr", addr))

	if app.Config.Warm.Enabled && app.Cache != nil {
		if err := SetupScheduler(ctx, app, ctler); err != nil {
			return err
		}
	}

	return nil
}

// SetupScheduler registers the cache warmer on app.Cron.
func SetupScheduler(ctx context.Context, app *types.App, ctler *controller.Controller) error {
	logger := cron.PrintfLogger(zap.NewStdLog(app.Logger.Named("cron")))

	// Seconds field, optional
	app.Cron = cron.New(cron.WithSeconds(), cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)))

	timeout := app.Config.Warm.Timeout
	if timeout <= 0 {
		timeout = 25 * time.Second
	}

	_, err := app.Cron.AddFunc(app.Config.Warm.Spec, func() {
		// keep each run bounded
		rctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		if err := ctler.WarmCache(rctx); err != nil {
			app.Logger.Warn("Cache warm failed", zap.Error(err))
		}
	})
	if err != nil {
		return err
	}

	return nil
}
