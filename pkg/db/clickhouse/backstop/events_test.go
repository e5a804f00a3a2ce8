package backstop

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap/zaptest"

	"github.com/smoothie-fi/smoothie/pkg/db"
	backstopmodels "github.com/smoothie-fi/smoothie/pkg/db/models/backstop"
)

func TestWhereClause(t *testing.T) {
	where, args := whereClause(db.EventQuery{})
	assert.Empty(t, where)
	assert.Empty(t, args)

	where, args = whereClause(db.EventQuery{
		UserAddress: "GA",
		Action:      backstopmodels.ActionClaim,
		Limit:       10,
	})
	assert.Equal(t, " WHERE user_address = ? AND action = ?", where)
	assert.Equal(t, []any{"GA", "claim"}, args)
}

// setupTestDB starts a ClickHouse container and opens the event store on it.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "clickhouse/clickhouse-server:24.1-alpine",
		ExposedPorts: []string{"9000/tcp", "8123/tcp"},
		WaitingFor: wait.ForAll(
			wait.ForLog("Application: Ready for connections").
				WithStartupTimeout(60*time.Second),
			wait.ForListeningPort("9000/tcp"),
		),
		Env: map[string]string{
			"CLICKHOUSE_USER":     "default",
			"CLICKHOUSE_PASSWORD": "",
		},
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "9000")
	require.NoError(t, err)

	store, err := New(ctx, zaptest.NewLogger(t), fmt.Sprintf("clickhouse://%s:%s", host, port.Port()), "smoothie_test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return store
}

func TestEvents(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()

	closed := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	events := []*backstopmodels.Event{
		{Ledger: 10, LedgerClosedAt: closed, TxHash: "a", EventIndex: 0, Action: backstopmodels.ActionDeposit, PoolAddress: "CP", UserAddress: "GA", Amount: 100, Shares: 90},
		{Ledger: 11, LedgerClosedAt: closed, TxHash: "b", EventIndex: 0, Action: backstopmodels.ActionQueueWithdrawal, PoolAddress: "CP", UserAddress: "GA", Amount: 50, Shares: 45},
		{Ledger: 12, LedgerClosedAt: closed, TxHash: "c", EventIndex: 1, Action: backstopmodels.ActionDeposit, PoolAddress: "CQ", UserAddress: "GB", Amount: 10, Shares: 9},
	}
	require.NoError(t, store.InsertEvents(ctx, events))
	// replay dedupes
	require.NoError(t, store.InsertEvents(ctx, events[:1]))

	all, err := store.QueryEvents(ctx, db.EventQuery{Limit: 10})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, uint32(12), all[0].Ledger)
	assert.Equal(t, backstopmodels.ActionDeposit, all[0].Action)

	count, err := store.CountEvents(ctx, db.EventQuery{})
	require.NoError(t, err)
	assert.Equal(t, uint64(3), count)

	deposits, err := store.QueryEvents(ctx, db.EventQuery{Action: backstopmodels.ActionDeposit, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, deposits, 2)

	page, err := store.QueryEvents(ctx, db.EventQuery{UserAddress: "GA", Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "a", page[0].TxHash)

	err = store.InsertEvents(ctx, []*backstopmodels.Event{{PoolAddress: "CP"}})
	assert.ErrorIs(t, err, db.ErrInvalidInput)

	assert.NoError(t, store.Ping(ctx))
}
