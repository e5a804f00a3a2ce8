package backstop

import "time"

const PoolSnapshotsTableName = "backstop_pool_snapshots"

// PoolSnapshot is the end-of-day state of a backstop pool.
// One row per (pool_address, snapshot_date); re-writing a day replaces it.
type PoolSnapshot struct {
	PoolAddress  string    `json:"poolAddress"`
	SnapshotDate time.Time `json:"snapshotDate"` // UTC calendar day
	TotalShares  float64   `json:"totalShares"`
	TotalTokens  float64   `json:"totalTokens"`
	TotalQ4W     float64   `json:"totalQ4w"`
	LpTokenPrice float64   `json:"lpTokenPrice"`
	Q4WPercent   float64   `json:"q4wPercent"`
}
