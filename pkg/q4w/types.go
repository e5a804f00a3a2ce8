// Package q4w aggregates backstop queue-for-withdrawal entries into per-user,
// per-pool positions and shapes them into a filtered, sorted, paginated response.
//
// All classification of entries into locked and unlocked buckets is made
// against a single reference timestamp captured once per request, which the
// response carries back as currentTimestamp.
package q4w

import "strings"

type Status string

const (
	StatusAll      Status = "all"
	StatusUnlocked Status = "unlocked"
	StatusLocked   Status = "locked"
)

type OrderBy string

const (
	OrderByUnlockTime OrderBy = "unlock_time"
	OrderByLpTokens   OrderBy = "lp_tokens"
)

type OrderDir string

const (
	OrderAsc  OrderDir = "asc"
	OrderDesc OrderDir = "desc"
)

const (
	DefaultLimit = 50
	MinLimit     = 1
	MaxLimit     = 100
)

// RawEntry is one withdrawal-queue entry as read from storage, in token units.
type RawEntry struct {
	UserAddress     string
	PoolAddress     string
	PoolName        string
	Shares          float64
	LpTokens        float64
	LpTokensUsd     float64
	UnlockTimestamp int64
}

// Position is the aggregate of all entries of one user in one pool.
type Position struct {
	UserAddress   string  `json:"userAddress"`
	PoolAddress   string  `json:"poolAddress"`
	PoolName      string  `json:"poolName"`
	PoolShortName *string `json:"poolShortName"`

	LockedShares   float64 `json:"lockedShares"`
	UnlockedShares float64 `json:"unlockedShares"`
	TotalShares    float64 `json:"totalShares"`

	LockedLpTokens   float64 `json:"lockedLpTokens"`
	UnlockedLpTokens float64 `json:"unlockedLpTokens"`
	TotalLpTokens    float64 `json:"totalLpTokens"`

	LockedLpTokensUsd   float64 `json:"lockedLpTokensUsd"`
	UnlockedLpTokensUsd float64 `json:"unlockedLpTokensUsd"`
	TotalLpTokensUsd    float64 `json:"totalLpTokensUsd"`

	// EarliestUnlock is the soonest unlock among still-locked entries; nil when none are locked.
	EarliestUnlock *int64 `json:"earliestUnlock"`
	HasUnlocked    bool   `json:"hasUnlocked"`
}

// Summary totals a position set independently of status filtering and paging.
type Summary struct {
	TotalUsers               int     `json:"totalUsers"`
	TotalPositions           int     `json:"totalPositions"`
	TotalLpTokensLocked      float64 `json:"totalLpTokensLocked"`
	TotalLpTokensUnlocked    float64 `json:"totalLpTokensUnlocked"`
	TotalLpTokens            float64 `json:"totalLpTokens"`
	TotalLpTokensLockedUsd   float64 `json:"totalLpTokensLockedUsd"`
	TotalLpTokensUnlockedUsd float64 `json:"totalLpTokensUnlockedUsd"`
	TotalLpTokensUsd         float64 `json:"totalLpTokensUsd"`
}

// Response is the payload of the Q4W endpoints.
type Response struct {
	Results          []Position `json:"results"`
	Summary          Summary    `json:"summary"`
	TotalCount       int        `json:"totalCount"`
	CurrentTimestamp int64      `json:"currentTimestamp"`
}

// Pool identifies a pool with queued withdrawals.
type Pool struct {
	PoolAddress string `json:"poolAddress"`
	PoolName    string `json:"poolName"`
}

// FilterState selects and orders positions. Empty addresses do not filter.
type FilterState struct {
	PoolAddress string
	UserAddress string
	Status      Status
	OrderBy     OrderBy
	OrderDir    OrderDir
}

// DefaultFilter returns all positions ordered by soonest unlock.
func DefaultFilter() FilterState {
	return FilterState{
		Status:   StatusAll,
		OrderBy:  OrderByUnlockTime,
		OrderDir: OrderAsc,
	}
}

// Page is a limit/offset window. Build one with NewPage so bounds are enforced.
type Page struct {
	Limit  int
	Offset int
}

// NewPage clamps limit to [MinLimit, MaxLimit] and offset to >= 0.
func NewPage(limit, offset int) Page {
	if limit < MinLimit {
		limit = MinLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return Page{Limit: limit, Offset: offset}
}

// ParseStatus returns the status named by s, or false when s is not a known status.
func ParseStatus(s string) (Status, bool) {
	switch Status(strings.ToLower(s)) {
	case StatusAll:
		return StatusAll, true
	case StatusUnlocked:
		return StatusUnlocked, true
	case StatusLocked:
		return StatusLocked, true
	}
	return "", false
}

func ParseOrderBy(s string) (OrderBy, bool) {
	switch OrderBy(strings.ToLower(s)) {
	case OrderByUnlockTime:
		return OrderByUnlockTime, true
	case OrderByLpTokens:
		return OrderByLpTokens, true
	}
	return "", false
}

func ParseOrderDir(s string) (OrderDir, bool) {
	switch OrderDir(strings.ToLower(s)) {
	case OrderAsc:
		return OrderAsc, true
	case OrderDesc:
		return OrderDesc, true
	}
	return "", false
}
