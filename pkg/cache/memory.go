package cache

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/puzpuzpuz/xsync/v4"
)

// DefaultSweepInterval is how often Set evicts expired entries.
const DefaultSweepInterval = time.Minute

type memoryItem struct {
	body      []byte
	expiresAt time.Time
}

func (i memoryItem) expired(now time.Time) bool {
	return !i.expiresAt.IsZero() && !now.Before(i.expiresAt)
}

// MemoryCache is a process-local Cache. Expired entries are dropped on read,
// and Set sweeps the whole map at most once per sweep interval so keys that
// are never read again do not accumulate.
type MemoryCache struct {
	items *xsync.Map[string, memoryItem]
	now   func() time.Time

	sweepInterval time.Duration
	nextSweep     atomic.Int64 // unix nanos
}

type MemoryOption func(*MemoryCache)

// WithSweepInterval overrides DefaultSweepInterval. Non-positive values are ignored.
func WithSweepInterval(d time.Duration) MemoryOption {
	return func(c *MemoryCache) {
		if d > 0 {
			c.sweepInterval = d
		}
	}
}

func NewMemoryCache(opts ...MemoryOption) *MemoryCache {
	c := &MemoryCache{
		items:         xsync.NewMap[string, memoryItem](),
		now:           time.Now,
		sweepInterval: DefaultSweepInterval,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	item, ok := c.items.Load(key)
	if !ok {
		return nil, false, nil
	}
	if item.expired(c.now()) {
		c.items.Delete(key)
		return nil, false, nil
	}
	return item.body, true, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, body []byte, ttl time.Duration) error {
	now := c.now()
	item := memoryItem{body: append([]byte(nil), body...)}
	if ttl > 0 {
		item.expiresAt = now.Add(ttl)
	}
	c.items.Store(key, item)

	next := c.nextSweep.Load()
	if now.UnixNano() >= next && c.nextSweep.CompareAndSwap(next, now.Add(c.sweepInterval).UnixNano()) {
		c.Sweep()
	}
	return nil
}

// Sweep deletes every expired entry and reports how many were removed.
func (c *MemoryCache) Sweep() int {
	now := c.now()
	removed := 0
	c.items.Range(func(key string, item memoryItem) bool {
		if item.expired(now) {
			c.items.Delete(key)
			removed++
		}
		return true
	})
	return removed
}

// Len reports the number of stored entries, expired ones included.
func (c *MemoryCache) Len() int {
	return c.items.Size()
}
