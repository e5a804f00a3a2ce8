package memory

import (
	"context"
	"testing"
	"time"

	"github.com/smoothie-fi/smoothie/pkg/db"
	"github.com/smoothie-fi/smoothie/pkg/db/models/backstop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQ4WStoreQueryAndPools(t *testing.T) {
	ctx := context.Background()
	store := NewQ4WStore()

	require.NoError(t, store.InsertQ4WEntries(ctx, []*backstop.Q4WEntry{
		{UserAddress: "GA", PoolAddress: "CP2", PoolName: "YieldBlox", Shares: 10, LpTokens: 10, UnlockTimestamp: 100},
		{UserAddress: "GB", PoolAddress: "CP1", PoolName: "Fixed", Shares: 20, LpTokens: 20, UnlockTimestamp: 200},
		{UserAddress: "GA", PoolAddress: "CP1", PoolName: "Fixed", Shares: 30, LpTokens: 30, UnlockTimestamp: 300},
	}))

	all, err := store.QueryQ4WEntries(ctx, db.Q4WEntryQuery{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []int64{1, 2, 3}, []int64{all[0].ID, all[1].ID, all[2].ID})

	byPool, err := store.QueryQ4WEntries(ctx, db.Q4WEntryQuery{PoolAddress: "CP1"})
	require.NoError(t, err)
	assert.Len(t, byPool, 2)

	byUserPool, err := store.QueryQ4WEntries(ctx, db.Q4WEntryQuery{PoolAddress: "CP1", UserAddress: "GA"})
	require.NoError(t, err)
	require.Len(t, byUserPool, 1)
	assert.Equal(t, int64(30), byUserPool[0].Shares)

	pools, err := store.ListQ4WPools(ctx)
	require.NoError(t, err)
	assert.Equal(t, []backstop.Q4WPool{
		{PoolAddress: "CP1", PoolName: "Fixed"},
		{PoolAddress: "CP2", PoolName: "YieldBlox"},
	}, pools)
}

func TestQ4WStoreRejectsInvalidEntries(t *testing.T) {
	store := NewQ4WStore()
	err := store.InsertQ4WEntries(context.Background(), []*backstop.Q4WEntry{{PoolAddress: "CP1"}})
	assert.ErrorIs(t, err, db.ErrInvalidInput)
}

func TestSnapshotStoreUpsertReplacesDay(t *testing.T) {
	ctx := context.Background()
	store := NewSnapshotStore()
	day := time.Date(2026, 3, 1, 15, 30, 0, 0, time.UTC)

	require.NoError(t, store.UpsertPoolSnapshots(ctx, []*backstop.PoolSnapshot{
		{PoolAddress: "CP1", SnapshotDate: day, TotalShares: 1},
		{PoolAddress: "CP1", SnapshotDate: day.AddDate(0, 0, -2), TotalShares: 5},
		{PoolAddress: "CP2", SnapshotDate: day, TotalShares: 9},
	}))
	require.NoError(t, store.UpsertPoolSnapshots(ctx, []*backstop.PoolSnapshot{
		{PoolAddress: "CP1", SnapshotDate: day.Add(time.Hour), TotalShares: 2},
	}))

	snaps, err := store.QueryPoolSnapshots(ctx, "CP1", day.AddDate(0, 0, -7))
	require.NoError(t, err)
	require.Len(t, snaps, 2)
	assert.Equal(t, 5.0, snaps[0].TotalShares)
	assert.Equal(t, 2.0, snaps[1].TotalShares)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), snaps[1].SnapshotDate)

	recent, err := store.QueryPoolSnapshots(ctx, "CP1", day)
	require.NoError(t, err)
	assert.Len(t, recent, 1)
}

func TestEventStoreFiltersAndPages(t *testing.T) {
	ctx := context.Background()
	store := NewEventStore()

	require.NoError(t, store.InsertEvents(ctx, []*backstop.Event{
		{Ledger: 10, TxHash: "a", Action: backstop.ActionDeposit, PoolAddress: "CP1", UserAddress: "GA", Amount: 1},
		{Ledger: 11, TxHash: "b", Action: backstop.ActionQueueWithdrawal, PoolAddress: "CP1", UserAddress: "GA", Amount: 2},
		{Ledger: 12, TxHash: "c", Action: backstop.ActionQueueWithdrawal, PoolAddress: "CP2", UserAddress: "GB", Amount: 3},
		// duplicate key replaces the earlier row
		{Ledger: 10, TxHash: "a", Action: backstop.ActionDeposit, PoolAddress: "CP1", UserAddress: "GA", Amount: 4},
	}))

	all, err := store.QueryEvents(ctx, db.EventQuery{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []uint32{12, 11, 10}, []uint32{all[0].Ledger, all[1].Ledger, all[2].Ledger})
	assert.Equal(t, int64(4), all[2].Amount)

	q := db.EventQuery{Action: backstop.ActionQueueWithdrawal, Limit: 1, Offset: 1}
	page, err := store.QueryEvents(ctx, q)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, uint32(11), page[0].Ledger)

	count, err := store.CountEvents(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), count)

	empty, err := store.QueryEvents(ctx, db.EventQuery{Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, empty)
}
