package controller

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/smoothie-fi/smoothie/app/api/types"
	"github.com/smoothie-fi/smoothie/pkg/cache"
	"github.com/smoothie-fi/smoothie/pkg/config"
)

// WarmCache precomputes the pools list and the default Q4W page (overall and
// per pool) and stores them under the keys the request path would use.
func (c *Controller) WarmCache(ctx context.Context) error {
	if c.App.Cache == nil {
		return nil
	}

	start := time.Now()
	err := c.warm(ctx)
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.App.Metrics.RecordWarmRun(result, time.Since(start))
	return err
}

func (c *Controller) warm(ctx context.Context) error {
	pools, err := c.App.Q4W.ListPools(ctx)
	if err != nil {
		return err
	}
	if err := c.store(ctx, config.RouteQ4WPools, nil, types.Q4WPoolsResponse{Pools: pools}); err != nil {
		return err
	}

	queries := make([]url.Values, 0, len(pools)+1)
	queries = append(queries, nil)
	for _, p := range pools {
		queries = append(queries, url.Values{"pool": {p.PoolAddress}})
	}

	workers := max(c.App.Config.Warm.Workers, 1)
	pool := pond.NewPool(workers, pond.WithQueueSize(len(queries)))
	defer pool.StopAndWait()

	group := pool.NewGroupContext(ctx)
	groupCtx := group.Context()

	for _, qs := range queries {
		group.SubmitErr(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			p := parseQ4WParams(qs)
			resp, err := c.App.Q4W.GetPositions(groupCtx, p.Filter, p.Page, p.LpPrice)
			if err != nil {
				return fmt.Errorf("warm q4w %s: %w", qs.Encode(), err)
			}
			return c.store(groupCtx, config.RouteQ4W, qs, resp)
		})
	}

	if err := group.Wait(); err != nil && !errors.Is(err, pond.ErrGroupStopped) {
		return err
	}

	c.App.Logger.Debug("Cache warmed", zap.Int("pools", len(pools)))
	return nil
}

func (c *Controller) store(ctx context.Context, route string, qs url.Values, v any) error {
	body, err := encodeBody(v)
	if err != nil {
		return err
	}
	policy := c.App.Config.Cache.For(route)
	return c.App.Cache.Set(ctx, cache.Key(route, qs), body, policy.SMaxAge)
}
