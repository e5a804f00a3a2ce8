package backstop

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/smoothie-fi/smoothie/pkg/db"
	backstopmodels "github.com/smoothie-fi/smoothie/pkg/db/models/backstop"
)

func (db *DB) initQ4WEntries(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id BIGSERIAL PRIMARY KEY,
			user_address TEXT NOT NULL,
			pool_address TEXT NOT NULL,
			pool_name TEXT NOT NULL DEFAULT '',
			shares BIGINT NOT NULL,
			lp_tokens BIGINT NOT NULL,
			unlock_timestamp BIGINT NOT NULL,
			ledger BIGINT NOT NULL DEFAULT 0,
			tx_hash TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
		)
	`, backstopmodels.Q4WEntriesTableName)
	if err := db.Exec(ctx, query); err != nil {
		return err
	}

	index := fmt.Sprintf(`
		CREATE INDEX IF NOT EXISTS idx_%[1]s_pool_user
		ON %[1]s (pool_address, user_address)
	`, backstopmodels.Q4WEntriesTableName)
	return db.Exec(ctx, index)
}

// InsertQ4WEntries writes entries in a single batch inside one transaction.
// IDs are assigned by the database and written back onto entries.
func (db *DB) InsertQ4WEntries(ctx context.Context, entries []*backstopmodels.Q4WEntry) error {
	for _, e := range entries {
		if e == nil || e.UserAddress == "" || e.PoolAddress == "" {
			return errInvalidEntry
		}
	}
	if len(entries) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (user_address, pool_address, pool_name, shares, lp_tokens, unlock_timestamp, ledger, tx_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`, backstopmodels.Q4WEntriesTableName)

	batch := &pgx.Batch{}
	for _, e := range entries {
		batch.Queue(query, e.UserAddress, e.PoolAddress, e.PoolName, e.Shares, e.LpTokens, e.UnlockTimestamp, e.Ledger, e.TxHash)
	}

	return db.BeginFunc(ctx, func(ctx context.Context) error {
		br := db.SendBatch(ctx, batch)
		defer br.Close()

		for _, e := range entries {
			if err := br.QueryRow().Scan(&e.ID, &e.CreatedAt); err != nil {
				return fmt.Errorf("insert q4w entry for %s: %w", e.UserAddress, err)
			}
		}
		return br.Close()
	})
}

// QueryQ4WEntries returns matching entries ordered by id.
func (db *DB) QueryQ4WEntries(ctx context.Context, q db.Q4WEntryQuery) ([]backstopmodels.Q4WEntry, error) {
	var (
		where []string
		args  []any
	)
	if q.PoolAddress != "" {
		args = append(args, q.PoolAddress)
		where = append(where, fmt.Sprintf("pool_address = $%d", len(args)))
	}
	if q.UserAddress != "" {
		args = append(args, q.UserAddress)
		where = append(where, fmt.Sprintf("user_address = $%d", len(args)))
	}

	query := fmt.Sprintf(`
		SELECT id, user_address, pool_address, pool_name, shares, lp_tokens, unlock_timestamp, ledger, tx_hash, created_at
		FROM %s
	`, backstopmodels.Q4WEntriesTableName)
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id"

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query q4w entries: %w", err)
	}
	defer rows.Close()

	entries := make([]backstopmodels.Q4WEntry, 0)
	for rows.Next() {
		var e backstopmodels.Q4WEntry
		if err := rows.Scan(
			&e.ID,
			&e.UserAddress,
			&e.PoolAddress,
			&e.PoolName,
			&e.Shares,
			&e.LpTokens,
			&e.UnlockTimestamp,
			&e.Ledger,
			&e.TxHash,
			&e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan q4w entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate q4w entries: %w", err)
	}

	return entries, nil
}

// ListQ4WPools returns the distinct pools with entries, ordered by name then address.
func (db *DB) ListQ4WPools(ctx context.Context) ([]backstopmodels.Q4WPool, error) {
	query := fmt.Sprintf(`
		SELECT pool_address, MAX(pool_name)
		FROM %s
		GROUP BY pool_address
		ORDER BY MAX(pool_name), pool_address
	`, backstopmodels.Q4WEntriesTableName)

	rows, err := db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list q4w pools: %w", err)
	}
	defer rows.Close()

	pools := make([]backstopmodels.Q4WPool, 0)
	for rows.Next() {
		var p backstopmodels.Q4WPool
		if err := rows.Scan(&p.PoolAddress, &p.PoolName); err != nil {
			return nil, fmt.Errorf("scan q4w pool: %w", err)
		}
		pools = append(pools, p)
	}
	return pools, rows.Err()
}

var errInvalidEntry = fmt.Errorf("q4w entry requires user and pool address: %w", db.ErrInvalidInput)
