// Package cache holds the HTTP cache timing policies and the response cache
// backends used by the API.
package cache

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

const keyPrefix = "smoothie:http:"

// Cache stores rendered response bodies by key.
type Cache interface {
	// Get returns the body at key; ok is false on a miss.
	Get(ctx context.Context, key string) (body []byte, ok bool, err error)
	Set(ctx context.Context, key string, body []byte, ttl time.Duration) error
}

// Policy is the shared-cache timing of one route.
type Policy struct {
	SMaxAge              time.Duration
	StaleWhileRevalidate time.Duration
	NoStore              bool
}

// NoStorePolicy disables caching entirely.
var NoStorePolicy = Policy{NoStore: true}

// Header renders the Cache-Control value of p.
func (p Policy) Header() string {
	if p.NoStore || p.SMaxAge <= 0 {
		return "no-store"
	}
	return fmt.Sprintf("public, s-maxage=%d, stale-while-revalidate=%d",
		int64(p.SMaxAge/time.Second), int64(p.StaleWhileRevalidate/time.Second))
}

// Cacheable reports whether responses under p may be stored.
func (p Policy) Cacheable() bool {
	return !p.NoStore && p.SMaxAge > 0
}

// Key builds the cache key of route with query. Query parameters are encoded in
// sorted key order so equivalent requests share an entry.
func Key(route string, query url.Values) string {
	if len(query) == 0 {
		return keyPrefix + route
	}
	return keyPrefix + route + "?" + query.Encode()
}
