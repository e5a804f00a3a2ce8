// Package memory provides in-process implementations of the storage interfaces,
// used for local development and tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/smoothie-fi/smoothie/pkg/db"
	"github.com/smoothie-fi/smoothie/pkg/db/models/backstop"
)

// Q4WStore is an in-memory implementation of db.Q4WStore.
type Q4WStore struct {
	mu      sync.RWMutex
	entries []backstop.Q4WEntry // insertion order
	nextID  int64
}

// NewQ4WStore creates an empty store.
func NewQ4WStore() *Q4WStore {
	return &Q4WStore{}
}

// InsertQ4WEntries appends entries, assigning ids in order.
func (s *Q4WStore) InsertQ4WEntries(_ context.Context, entries []*backstop.Q4WEntry) error {
	for _, e := range entries {
		if e == nil || e.UserAddress == "" || e.PoolAddress == "" {
			return db.ErrInvalidInput
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range entries {
		s.nextID++
		row := *e
		row.ID = s.nextID
		if row.CreatedAt.IsZero() {
			row.CreatedAt = time.Now().UTC()
		}
		s.entries = append(s.entries, row)
	}
	return nil
}

// QueryQ4WEntries returns matching entries in insertion order.
func (s *Q4WStore) QueryQ4WEntries(_ context.Context, q db.Q4WEntryQuery) ([]backstop.Q4WEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]backstop.Q4WEntry, 0, len(s.entries))
	for _, e := range s.entries {
		if q.PoolAddress != "" && e.PoolAddress != q.PoolAddress {
			continue
		}
		if q.UserAddress != "" && e.UserAddress != q.UserAddress {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// ListQ4WPools returns distinct pools ordered by name, then address.
func (s *Q4WStore) ListQ4WPools(_ context.Context) ([]backstop.Q4WPool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	pools := make([]backstop.Q4WPool, 0)
	for _, e := range s.entries {
		if _, ok := seen[e.PoolAddress]; ok {
			continue
		}
		seen[e.PoolAddress] = struct{}{}
		pools = append(pools, backstop.Q4WPool{PoolAddress: e.PoolAddress, PoolName: e.PoolName})
	}

	sort.Slice(pools, func(i, j int) bool {
		if pools[i].PoolName != pools[j].PoolName {
			return pools[i].PoolName < pools[j].PoolName
		}
		return pools[i].PoolAddress < pools[j].PoolAddress
	})
	return pools, nil
}

func (s *Q4WStore) Ping(context.Context) error { return nil }

func (s *Q4WStore) Close() error { return nil }
