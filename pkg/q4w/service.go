package q4w

import (
	"context"
	"fmt"
	"time"

	"github.com/smoothie-fi/smoothie/pkg/db"
	"github.com/smoothie-fi/smoothie/pkg/pricing"
)

// ShortNamer resolves the display short name of a pool.
type ShortNamer interface {
	ShortName(poolAddress string) (string, bool)
}

// Service answers Q4W queries from a Q4WStore.
type Service struct {
	store db.Q4WStore
	names ShortNamer
	now   func() time.Time
}

// NewService wires a store and a short-name registry. now defaults to time.Now.
func NewService(store db.Q4WStore, names ShortNamer, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{store: store, names: names, now: now}
}

// GetPositions captures the reference timestamp, loads the entries in scope and
// builds the response. lpPrice converts LP tokens to USD; zero leaves USD at 0.
func (s *Service) GetPositions(ctx context.Context, f FilterState, page Page, lpPrice float64) (Response, error) {
	now := s.now().Unix()

	rows, err := s.store.QueryQ4WEntries(ctx, db.Q4WEntryQuery{
		PoolAddress: f.PoolAddress,
		UserAddress: f.UserAddress,
	})
	if err != nil {
		return Response{}, fmt.Errorf("query q4w entries: %w", err)
	}

	entries := make([]RawEntry, 0, len(rows))
	for _, r := range rows {
		lpTokens := pricing.FromStroops(r.LpTokens)
		entries = append(entries, RawEntry{
			UserAddress:     r.UserAddress,
			PoolAddress:     r.PoolAddress,
			PoolName:        r.PoolName,
			Shares:          pricing.FromStroops(r.Shares),
			LpTokens:        lpTokens,
			LpTokensUsd:     pricing.USDValue(lpTokens, lpPrice),
			UnlockTimestamp: r.UnlockTimestamp,
		})
	}

	resp := Build(entries, f, page, now)
	if s.names != nil {
		for i := range resp.Results {
			if short, ok := s.names.ShortName(resp.Results[i].PoolAddress); ok {
				resp.Results[i].PoolShortName = &short
			}
		}
	}
	return resp, nil
}

// ListPools returns the pools that have queued withdrawals.
func (s *Service) ListPools(ctx context.Context) ([]Pool, error) {
	rows, err := s.store.ListQ4WPools(ctx)
	if err != nil {
		return nil, fmt.Errorf("list q4w pools: %w", err)
	}

	pools := make([]Pool, 0, len(rows))
	for _, r := range rows {
		pools = append(pools, Pool{PoolAddress: r.PoolAddress, PoolName: r.PoolName})
	}
	return pools, nil
}
