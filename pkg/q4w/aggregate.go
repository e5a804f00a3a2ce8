package q4w

type positionKey struct {
	user string
	pool string
}

// Aggregate groups entries by (user, pool) and splits each group at now:
// entries unlocking strictly after now are locked, the rest are unlocked.
// Positions come out in the order their first entry appears, and sums are
// accumulated in input order so a fixed input always yields identical totals.
func Aggregate(entries []RawEntry, now int64) []Position {
	index := make(map[positionKey]int, len(entries))
	positions := make([]Position, 0, len(entries))

	for _, e := range entries {
		key := positionKey{user: e.UserAddress, pool: e.PoolAddress}
		i, ok := index[key]
		if !ok {
			i = len(positions)
			index[key] = i
			positions = append(positions, Position{
				UserAddress: e.UserAddress,
				PoolAddress: e.PoolAddress,
				PoolName:    e.PoolName,
			})
		}
		p := &positions[i]

		if e.UnlockTimestamp > now {
			p.LockedShares += e.Shares
			p.LockedLpTokens += e.LpTokens
			p.LockedLpTokensUsd += e.LpTokensUsd
			if p.EarliestUnlock == nil || e.UnlockTimestamp < *p.EarliestUnlock {
				ts := e.UnlockTimestamp
				p.EarliestUnlock = &ts
			}
			continue
		}

		p.UnlockedShares += e.Shares
		p.UnlockedLpTokens += e.LpTokens
		p.UnlockedLpTokensUsd += e.LpTokensUsd
		p.HasUnlocked = true
	}

	for i := range positions {
		p := &positions[i]
		p.TotalShares = p.LockedShares + p.UnlockedShares
		p.TotalLpTokens = p.LockedLpTokens + p.UnlockedLpTokens
		p.TotalLpTokensUsd = p.LockedLpTokensUsd + p.UnlockedLpTokensUsd
	}

	return positions
}
