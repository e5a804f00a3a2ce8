package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/smoothie-fi/smoothie/pkg/db"
	"github.com/smoothie-fi/smoothie/pkg/db/models/backstop"
)

type snapshotKey struct {
	pool string
	day  string
}

// SnapshotStore is an in-memory implementation of db.SnapshotStore.
type SnapshotStore struct {
	mu   sync.RWMutex
	data map[snapshotKey]backstop.PoolSnapshot
}

func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{data: make(map[snapshotKey]backstop.PoolSnapshot)}
}

// UpsertPoolSnapshots replaces any snapshot already stored for the same pool and day.
func (s *SnapshotStore) UpsertPoolSnapshots(_ context.Context, snapshots []*backstop.PoolSnapshot) error {
	for _, snap := range snapshots {
		if snap == nil || snap.PoolAddress == "" || snap.SnapshotDate.IsZero() {
			return db.ErrInvalidInput
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, snap := range snapshots {
		row := *snap
		row.SnapshotDate = truncateDay(row.SnapshotDate)
		s.data[snapshotKey{pool: row.PoolAddress, day: row.SnapshotDate.Format(time.DateOnly)}] = row
	}
	return nil
}

// QueryPoolSnapshots returns snapshots of pool on or after since, oldest first.
func (s *SnapshotStore) QueryPoolSnapshots(_ context.Context, poolAddress string, since time.Time) ([]backstop.PoolSnapshot, error) {
	since = truncateDay(since)

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]backstop.PoolSnapshot, 0)
	for key, snap := range s.data {
		if key.pool != poolAddress || snap.SnapshotDate.Before(since) {
			continue
		}
		out = append(out, snap)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SnapshotDate.Before(out[j].SnapshotDate) })
	return out, nil
}

func (s *SnapshotStore) Close() error { return nil }

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
