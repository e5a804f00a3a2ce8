package backstop

import (
	"context"
	"fmt"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/smoothie-fi/smoothie/pkg/db"
	"github.com/smoothie-fi/smoothie/pkg/db/clickhouse"
	backstopmodels "github.com/smoothie-fi/smoothie/pkg/db/models/backstop"
)

var errInvalidEvent = fmt.Errorf("event requires tx hash, pool and action: %w", db.ErrInvalidInput)

// initEvents creates the events table. ReplacingMergeTree dedupes replays of
// the same (pool, ledger, tx, index) event.
func (db *DB) initEvents(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS "%s"."%s" (
			%s
		) ENGINE = %s
		ORDER BY (pool_address, ledger, tx_hash, event_index)
	`, db.Name, backstopmodels.EventsTableName,
		backstopmodels.ColumnsToSchemaSQL(backstopmodels.EventColumns),
		clickhouse.ReplacingMergeTree)

	if err := db.Exec(ctx, query); err != nil {
		return fmt.Errorf("create %s: %w", backstopmodels.EventsTableName, err)
	}
	return nil
}

// InsertEvents writes events in one batch.
func (db *DB) InsertEvents(ctx context.Context, events []*backstopmodels.Event) error {
	for _, e := range events {
		if e == nil || e.TxHash == "" || e.PoolAddress == "" || e.Action == "" {
			return errInvalidEvent
		}
	}
	if len(events) == 0 {
		return nil
	}

	query := fmt.Sprintf(`INSERT INTO "%s"."%s" (%s) VALUES`,
		db.Name, backstopmodels.EventsTableName,
		strings.Join(backstopmodels.ColumnNames(backstopmodels.EventColumns), ", "))
	batch, err := db.PrepareBatch(ctx, query)
	if err != nil {
		return err
	}
	defer func(batch driver.Batch) {
		_ = batch.Abort()
	}(batch)

	for _, e := range events {
		err = batch.Append(
			e.Ledger,
			e.LedgerClosedAt,
			e.TxHash,
			e.EventIndex,
			string(e.Action),
			e.PoolAddress,
			e.UserAddress,
			e.Amount,
			e.Shares,
		)
		if err != nil {
			return err
		}
	}

	return batch.Send()
}

// whereClause renders the filter of q. Paging is not part of it.
func whereClause(q db.EventQuery) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if q.UserAddress != "" {
		conds = append(conds, "user_address = ?")
		args = append(args, q.UserAddress)
	}
	if q.PoolAddress != "" {
		conds = append(conds, "pool_address = ?")
		args = append(args, q.PoolAddress)
	}
	if q.Action != "" {
		conds = append(conds, "action = ?")
		args = append(args, string(q.Action))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// QueryEvents returns matching events newest first. A non-positive limit returns
// every match after the offset.
func (db *DB) QueryEvents(ctx context.Context, q db.EventQuery) ([]backstopmodels.Event, error) {
	where, args := whereClause(q)
	query := fmt.Sprintf(`
		SELECT %s
		FROM "%s"."%s" FINAL%s
		ORDER BY ledger DESC, tx_hash DESC, event_index DESC
	`, strings.Join(backstopmodels.ColumnNames(backstopmodels.EventColumns), ", "),
		db.Name, backstopmodels.EventsTableName, where)
	switch {
	case q.Limit > 0:
		query += " LIMIT ? OFFSET ?"
		args = append(args, uint64(q.Limit), uint64(max(q.Offset, 0)))
	case q.Offset > 0:
		query += " OFFSET ? ROWS"
		args = append(args, uint64(q.Offset))
	}

	rows, err := db.QueryWithFinal(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	events := make([]backstopmodels.Event, 0, max(q.Limit, 0))
	for rows.Next() {
		var (
			e      backstopmodels.Event
			action string
		)
		if err := rows.Scan(
			&e.Ledger,
			&e.LedgerClosedAt,
			&e.TxHash,
			&e.EventIndex,
			&action,
			&e.PoolAddress,
			&e.UserAddress,
			&e.Amount,
			&e.Shares,
		); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		e.Action = backstopmodels.Action(action)
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}

	return events, nil
}

// CountEvents returns the number of events matching q, ignoring paging.
func (db *DB) CountEvents(ctx context.Context, q db.EventQuery) (uint64, error) {
	where, args := whereClause(q)
	query := fmt.Sprintf(`SELECT count() FROM "%s"."%s" FINAL%s`,
		db.Name, backstopmodels.EventsTableName, where)

	var count uint64
	if err := db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return count, nil
}
