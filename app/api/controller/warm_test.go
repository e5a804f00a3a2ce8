package controller

import (
	"context"
	"net/url"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smoothie-fi/smoothie/pkg/cache"
	"github.com/smoothie-fi/smoothie/pkg/config"
	"github.com/smoothie-fi/smoothie/pkg/q4w"
)

func TestWarmCacheStoresRequestKeys(t *testing.T) {
	app := newTestApp(t)
	memCache := cache.NewMemoryCache()
	app.Cache = memCache
	c := NewController(app)

	require.NoError(t, c.WarmCache(context.Background()))

	// pools list, default page, and one page per pool
	assert.Equal(t, 4, memCache.Len())

	keys := []string{
		cache.Key(config.RouteQ4WPools, nil),
		cache.Key(config.RouteQ4W, nil),
		cache.Key(config.RouteQ4W, url.Values{"pool": {poolYBX}}),
		cache.Key(config.RouteQ4W, url.Values{"pool": {poolFXD}}),
	}
	for _, key := range keys {
		_, ok, err := memCache.Get(context.Background(), key)
		require.NoError(t, err)
		assert.True(t, ok, key)
	}

	assert.Equal(t, 1.0, testutil.ToFloat64(app.Metrics.CacheWarmRuns.WithLabelValues("ok")))
}

func TestWarmedEntryServedAsHit(t *testing.T) {
	app := newTestApp(t)
	c := NewController(app)
	require.NoError(t, c.WarmCache(context.Background()))

	h := newTestRouter(t, app)
	w := get(t, h, "/api/backstop-q4w?pool="+poolFXD)
	assert.Equal(t, "HIT", w.Header().Get("X-Cache"))

	resp := decode[q4w.Response](t, w)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "GB", resp.Results[0].UserAddress)
}

func TestWarmCacheStoreFailure(t *testing.T) {
	app := newTestApp(t)
	app.Q4W = q4w.NewService(erroringQ4WStore{}, app.Config.Pools, app.Now)
	c := NewController(app)

	require.Error(t, c.WarmCache(context.Background()))
	assert.Equal(t, 1.0, testutil.ToFloat64(app.Metrics.CacheWarmRuns.WithLabelValues("error")))
}

func TestWarmCacheWithoutCache(t *testing.T) {
	app := newTestApp(t)
	app.Cache = nil
	assert.NoError(t, NewController(app).WarmCache(context.Background()))
}
