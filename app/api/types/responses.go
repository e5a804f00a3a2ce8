package types

import (
	"time"

	"github.com/smoothie-fi/smoothie/pkg/config"
	backstopmodels "github.com/smoothie-fi/smoothie/pkg/db/models/backstop"
	"github.com/smoothie-fi/smoothie/pkg/pricing"
	"github.com/smoothie-fi/smoothie/pkg/q4w"
)

// Q4WPoolsResponse lists pools with queued withdrawals.
type Q4WPoolsResponse struct {
	Pools []q4w.Pool `json:"pools"`
}

// SnapshotPoint is one day of a pool's backstop history.
type SnapshotPoint struct {
	Date         string  `json:"date"` // YYYY-MM-DD, UTC
	TotalShares  float64 `json:"totalShares"`
	TotalTokens  float64 `json:"totalTokens"`
	TotalQ4W     float64 `json:"totalQ4w"`
	LpTokenPrice float64 `json:"lpTokenPrice"`
	Q4WPercent   float64 `json:"q4wPercent"`
}

func NewSnapshotPoint(s backstopmodels.PoolSnapshot) SnapshotPoint {
	return SnapshotPoint{
		Date:         s.SnapshotDate.UTC().Format(time.DateOnly),
		TotalShares:  s.TotalShares,
		TotalTokens:  s.TotalTokens,
		TotalQ4W:     s.TotalQ4W,
		LpTokenPrice: s.LpTokenPrice,
		Q4WPercent:   s.Q4WPercent,
	}
}

type SnapshotsResponse struct {
	PoolAddress string          `json:"poolAddress"`
	Days        int             `json:"days"`
	Snapshots   []SnapshotPoint `json:"snapshots"`
}

// EventView is an event with amounts converted to token units.
type EventView struct {
	Ledger         uint32                `json:"ledger"`
	LedgerClosedAt time.Time             `json:"ledgerClosedAt"`
	TxHash         string                `json:"txHash"`
	EventIndex     uint32                `json:"eventIndex"`
	Action         backstopmodels.Action `json:"action"`
	PoolAddress    string                `json:"poolAddress"`
	UserAddress    string                `json:"userAddress"`
	Amount         float64               `json:"amount"`
	Shares         float64               `json:"shares"`
}

func NewEventView(e backstopmodels.Event) EventView {
	return EventView{
		Ledger:         e.Ledger,
		LedgerClosedAt: e.LedgerClosedAt.UTC(),
		TxHash:         e.TxHash,
		EventIndex:     e.EventIndex,
		Action:         e.Action,
		PoolAddress:    e.PoolAddress,
		UserAddress:    e.UserAddress,
		Amount:         pricing.FromStroops(e.Amount),
		Shares:         pricing.FromStroops(e.Shares),
	}
}

type EventsResponse struct {
	Events     []EventView `json:"events"`
	TotalCount uint64      `json:"totalCount"`
	Limit      int         `json:"limit"`
	Offset     int         `json:"offset"`
}

type PoolsResponse struct {
	Network string            `json:"network"`
	Pools   []config.PoolInfo `json:"pools"`
}

type PricesResponse struct {
	Prices []pricing.AssetPrice `json:"prices"`
}
