package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/smoothie-fi/smoothie/pkg/db"
	"github.com/smoothie-fi/smoothie/pkg/db/models/backstop"
)

type eventKey struct {
	pool       string
	ledger     uint32
	txHash     string
	eventIndex uint32
}

// EventStore is an in-memory implementation of db.EventStore.
// Re-inserting an event with the same key replaces it.
type EventStore struct {
	mu   sync.RWMutex
	data map[eventKey]backstop.Event
}

func NewEventStore() *EventStore {
	return &EventStore{data: make(map[eventKey]backstop.Event)}
}

func (s *EventStore) InsertEvents(_ context.Context, events []*backstop.Event) error {
	for _, e := range events {
		if e == nil || e.TxHash == "" || e.PoolAddress == "" {
			return db.ErrInvalidInput
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range events {
		s.data[eventKey{pool: e.PoolAddress, ledger: e.Ledger, txHash: e.TxHash, eventIndex: e.EventIndex}] = *e
	}
	return nil
}

// QueryEvents returns matching events newest first (ledger, then event index, descending).
func (s *EventStore) QueryEvents(_ context.Context, q db.EventQuery) ([]backstop.Event, error) {
	matched := s.match(q)

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if a.Ledger != b.Ledger {
			return a.Ledger > b.Ledger
		}
		if a.TxHash != b.TxHash {
			return a.TxHash > b.TxHash
		}
		return a.EventIndex > b.EventIndex
	})

	offset := max(q.Offset, 0)
	if offset >= len(matched) {
		return []backstop.Event{}, nil
	}
	matched = matched[offset:]
	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}
	return matched, nil
}

func (s *EventStore) CountEvents(_ context.Context, q db.EventQuery) (uint64, error) {
	return uint64(len(s.match(q))), nil
}

func (s *EventStore) match(q db.EventQuery) []backstop.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]backstop.Event, 0, len(s.data))
	for _, e := range s.data {
		if q.UserAddress != "" && e.UserAddress != q.UserAddress {
			continue
		}
		if q.PoolAddress != "" && e.PoolAddress != q.PoolAddress {
			continue
		}
		if q.Action != "" && e.Action != q.Action {
			continue
		}
		out = append(out, e)
	}
	return out
}

func (s *EventStore) Ping(context.Context) error { return nil }

func (s *EventStore) Close() error { return nil }
