package backstop

import (
	"fmt"
	"strings"
	"time"
)

const EventsTableName = "backstop_events"

// Action is the kind of backstop contract event.
type Action string

const (
	ActionDeposit           Action = "deposit"
	ActionWithdraw          Action = "withdraw"
	ActionQueueWithdrawal   Action = "queue_withdrawal"
	ActionDequeueWithdrawal Action = "dequeue_withdrawal"
	ActionClaim             Action = "claim"
)

// Actions lists every known action in a stable order.
var Actions = []Action{ActionDeposit, ActionWithdraw, ActionQueueWithdrawal, ActionDequeueWithdrawal, ActionClaim}

// ParseAction validates an action name. The empty string is accepted and means "any".
func ParseAction(s string) (Action, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", nil
	}
	for _, a := range Actions {
		if string(a) == s {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown action %q", s)
}

// EventColumns is the ClickHouse schema for the event log.
var EventColumns = []ColumnDef{
	{Name: "ledger", Type: "UInt32", Codec: "DoubleDelta, ZSTD(1)"},
	{Name: "ledger_closed_at", Type: "DateTime64(3)", Codec: "DoubleDelta, ZSTD(1)"},
	{Name: "tx_hash", Type: "String", Codec: "ZSTD(1)"},
	{Name: "event_index", Type: "UInt32", Codec: "ZSTD(1)"},
	{Name: "action", Type: "LowCardinality(String)"},
	{Name: "pool_address", Type: "String", Codec: "ZSTD(1)"},
	{Name: "user_address", Type: "String", Codec: "ZSTD(1)"},
	{Name: "amount", Type: "Int64", Codec: "Delta, ZSTD(3)"},
	{Name: "shares", Type: "Int64", Codec: "Delta, ZSTD(3)"},
}

// Event is a single backstop contract event. Amount and Shares are stroops.
type Event struct {
	Ledger         uint32    `ch:"ledger" json:"ledger"`
	LedgerClosedAt time.Time `ch:"ledger_closed_at" json:"ledgerClosedAt"`
	TxHash         string    `ch:"tx_hash" json:"txHash"`
	EventIndex     uint32    `ch:"event_index" json:"eventIndex"`
	Action         Action    `ch:"action" json:"action"`
	PoolAddress    string    `ch:"pool_address" json:"poolAddress"`
	UserAddress    string    `ch:"user_address" json:"userAddress"`
	Amount         int64     `ch:"amount" json:"amount"`
	Shares         int64     `ch:"shares" json:"shares"`
}
