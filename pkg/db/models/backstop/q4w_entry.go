package backstop

import "time"

const Q4WEntriesTableName = "backstop_q4w_entries"

// Q4WEntry is one on-chain queue-for-withdrawal entry of a backstop depositor.
// Shares and LpTokens are stroops (7 decimal fixed point).
type Q4WEntry struct {
	ID              int64     `json:"id"`
	UserAddress     string    `json:"user_address"`
	PoolAddress     string    `json:"pool_address"`
	PoolName        string    `json:"pool_name"`
	Shares          int64     `json:"shares"`
	LpTokens        int64     `json:"lp_tokens"`
	UnlockTimestamp int64     `json:"unlock_timestamp"` // unix seconds
	Ledger          int64     `json:"ledger"`
	TxHash          string    `json:"tx_hash"`
	CreatedAt       time.Time `json:"created_at"`
}

// Q4WPool is a pool that has at least one queued withdrawal.
type Q4WPool struct {
	PoolAddress string `json:"poolAddress"`
	PoolName    string `json:"poolName"`
}
