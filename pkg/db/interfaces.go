package db

import (
	"context"
	"time"

	"github.com/smoothie-fi/smoothie/pkg/db/models/backstop"
)

// Q4WStore holds the raw withdrawal-queue entries of backstop depositors.
type Q4WStore interface {
	InsertQ4WEntries(ctx context.Context, entries []*backstop.Q4WEntry) error
	QueryQ4WEntries(ctx context.Context, q Q4WEntryQuery) ([]backstop.Q4WEntry, error)
	ListQ4WPools(ctx context.Context) ([]backstop.Q4WPool, error)
	Ping(ctx context.Context) error
	Close() error
}

// Q4WEntryQuery narrows the entries returned by QueryQ4WEntries. Empty fields do not filter.
type Q4WEntryQuery struct {
	PoolAddress string
	UserAddress string
}

// SnapshotStore holds daily backstop pool snapshots.
type SnapshotStore interface {
	UpsertPoolSnapshots(ctx context.Context, snapshots []*backstop.PoolSnapshot) error
	QueryPoolSnapshots(ctx context.Context, poolAddress string, since time.Time) ([]backstop.PoolSnapshot, error)
	Close() error
}

// EventStore holds the backstop event log.
type EventStore interface {
	InsertEvents(ctx context.Context, events []*backstop.Event) error
	QueryEvents(ctx context.Context, q EventQuery) ([]backstop.Event, error)
	CountEvents(ctx context.Context, q EventQuery) (uint64, error)
	Ping(ctx context.Context) error
	Close() error
}

// EventQuery filters and pages the event log. Results are newest first.
type EventQuery struct {
	UserAddress string
	PoolAddress string
	Action      backstop.Action
	Limit       int
	Offset      int
}
