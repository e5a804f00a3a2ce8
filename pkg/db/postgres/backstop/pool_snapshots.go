package backstop

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/smoothie-fi/smoothie/pkg/db"
	backstopmodels "github.com/smoothie-fi/smoothie/pkg/db/models/backstop"
)

var errInvalidSnapshot = fmt.Errorf("pool snapshot requires pool address and date: %w", db.ErrInvalidInput)

func (db *DB) initPoolSnapshots(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			pool_address TEXT NOT NULL,
			snapshot_date DATE NOT NULL,
			total_shares DOUBLE PRECISION NOT NULL DEFAULT 0,
			total_tokens DOUBLE PRECISION NOT NULL DEFAULT 0,
			total_q4w DOUBLE PRECISION NOT NULL DEFAULT 0,
			lp_token_price DOUBLE PRECISION NOT NULL DEFAULT 0,
			q4w_percent DOUBLE PRECISION NOT NULL DEFAULT 0,
			PRIMARY KEY (pool_address, snapshot_date)
		)
	`, backstopmodels.PoolSnapshotsTableName)

	return db.Exec(ctx, query)
}

// UpsertPoolSnapshots writes snapshots in one transaction, replacing any row
// for the same pool and day.
func (db *DB) UpsertPoolSnapshots(ctx context.Context, snapshots []*backstopmodels.PoolSnapshot) error {
	for _, s := range snapshots {
		if s == nil || s.PoolAddress == "" || s.SnapshotDate.IsZero() {
			return errInvalidSnapshot
		}
	}
	if len(snapshots) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (pool_address, snapshot_date, total_shares, total_tokens, total_q4w, lp_token_price, q4w_percent)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (pool_address, snapshot_date) DO UPDATE SET
			total_shares = EXCLUDED.total_shares,
			total_tokens = EXCLUDED.total_tokens,
			total_q4w = EXCLUDED.total_q4w,
			lp_token_price = EXCLUDED.lp_token_price,
			q4w_percent = EXCLUDED.q4w_percent
	`, backstopmodels.PoolSnapshotsTableName)

	batch := &pgx.Batch{}
	for _, s := range snapshots {
		batch.Queue(query, s.PoolAddress, truncateDay(s.SnapshotDate), s.TotalShares, s.TotalTokens, s.TotalQ4W, s.LpTokenPrice, s.Q4WPercent)
	}

	return db.BeginFunc(ctx, func(ctx context.Context) error {
		br := db.SendBatch(ctx, batch)
		defer br.Close()

		for _, s := range snapshots {
			if _, err := br.Exec(); err != nil {
				return fmt.Errorf("upsert snapshot %s: %w", s.PoolAddress, err)
			}
		}
		return br.Close()
	})
}

// QueryPoolSnapshots returns the snapshots of poolAddress on or after since, oldest first.
func (db *DB) QueryPoolSnapshots(ctx context.Context, poolAddress string, since time.Time) ([]backstopmodels.PoolSnapshot, error) {
	query := fmt.Sprintf(`
		SELECT pool_address, snapshot_date, total_shares, total_tokens, total_q4w, lp_token_price, q4w_percent
		FROM %s
		WHERE pool_address = $1 AND snapshot_date >= $2
		ORDER BY snapshot_date ASC
	`, backstopmodels.PoolSnapshotsTableName)

	rows, err := db.Query(ctx, query, poolAddress, truncateDay(since))
	if err != nil {
		return nil, fmt.Errorf("query pool snapshots: %w", err)
	}
	defer rows.Close()

	snapshots := make([]backstopmodels.PoolSnapshot, 0)
	for rows.Next() {
		var s backstopmodels.PoolSnapshot
		if err := rows.Scan(
			&s.PoolAddress,
			&s.SnapshotDate,
			&s.TotalShares,
			&s.TotalTokens,
			&s.TotalQ4W,
			&s.LpTokenPrice,
			&s.Q4WPercent,
		); err != nil {
			return nil, fmt.Errorf("scan pool snapshot: %w", err)
		}
		snapshots = append(snapshots, s)
	}
	return snapshots, rows.Err()
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
