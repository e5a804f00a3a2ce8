package controller

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/smoothie-fi/smoothie/app/api/types"
	"github.com/smoothie-fi/smoothie/pkg/config"
)

type Controller struct {
	App *types.App
}

// NewController returns a new controller.
func NewController(app *types.App) *Controller {
	return &Controller{
		App: app,
	}
}

// WithCORS allows any origin to read the API. Responses are public and carry no credentials.
func WithCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		w.Header().Set("Access-Control-Allow-Methods", http.MethodGet+", "+http.MethodOptions)
		w.Header().Set("Access-Control-Expose-Headers", "X-Request-ID, X-Cache")

		// Fast-path the preflight
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// NewRouter returns a new router with all the routes defined in this file.
func (c *Controller) NewRouter() (*mux.Router, error) {
	r := mux.NewRouter()
	r.Use(c.withRequestID, c.withMetrics)

	r.Handle(config.RouteHealth, c.cached(config.RouteHealth, c.HandleHealth)).Methods(http.MethodGet)
	r.Handle(config.RouteMetrics, c.App.Metrics.Handler()).Methods(http.MethodGet)

	r.Handle(config.RouteQ4WPools, c.cached(config.RouteQ4WPools, c.HandleQ4WPools)).Methods(http.MethodGet)
	r.Handle(config.RouteQ4W, c.cached(config.RouteQ4W, c.HandleQ4W)).Methods(http.MethodGet)
	r.Handle(config.RouteUserQ4W, c.cached(config.RouteUserQ4W, c.HandleUserQ4W)).Methods(http.MethodGet)
	r.Handle(config.RoutePoolSnapshot, c.cached(config.RoutePoolSnapshot, c.HandlePoolSnapshots)).Methods(http.MethodGet)
	r.Handle(config.RouteEvents, c.cached(config.RouteEvents, c.HandleEvents)).Methods(http.MethodGet)

	r.Handle(config.RoutePools, c.cached(config.RoutePools, c.HandlePools)).Methods(http.MethodGet)
	r.Handle(config.RoutePrices, c.cached(config.RoutePrices, c.HandlePrices)).Methods(http.MethodGet)
	r.Handle(config.RouteNetwork, c.cached(config.RouteNetwork, c.HandleNetwork)).Methods(http.MethodGet)

	return r, nil
}
