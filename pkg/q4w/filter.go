package q4w

import (
	"cmp"
	"slices"
)

// FilterByPool keeps positions in pool. An empty pool keeps everything.
func FilterByPool(positions []Position, pool string) []Position {
	if pool == "" {
		return positions
	}
	return filter(positions, func(p Position) bool { return p.PoolAddress == pool })
}

// FilterByUser keeps positions of user. An empty user keeps everything.
func FilterByUser(positions []Position, user string) []Position {
	if user == "" {
		return positions
	}
	return filter(positions, func(p Position) bool { return p.UserAddress == user })
}

// FilterByStatus keeps positions with locked shares (locked), with at least one
// unlockable entry (unlocked), or everything (all). A position can match both.
func FilterByStatus(positions []Position, status Status) []Position {
	switch status {
	case StatusLocked:
		return filter(positions, func(p Position) bool { return p.LockedShares > 0 })
	case StatusUnlocked:
		return filter(positions, func(p Position) bool { return p.HasUnlocked })
	default:
		return positions
	}
}

func filter(positions []Position, keep func(Position) bool) []Position {
	out := make([]Position, 0, len(positions))
	for _, p := range positions {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

// Sort orders positions in place. For unlock_time a nil EarliestUnlock counts as
// +infinity, so fully unlocked positions trail ascending and lead descending.
// Ties always fall back to (userAddress, poolAddress) ascending.
func Sort(positions []Position, by OrderBy, dir OrderDir) {
	slices.SortStableFunc(positions, func(a, b Position) int {
		var c int
		switch by {
		case OrderByLpTokens:
			c = cmp.Compare(a.TotalLpTokens, b.TotalLpTokens)
		default:
			c = compareUnlock(a.EarliestUnlock, b.EarliestUnlock)
		}
		if dir == OrderDesc {
			c = -c
		}
		if c != 0 {
			return c
		}
		if c = cmp.Compare(a.UserAddress, b.UserAddress); c != 0 {
			return c
		}
		return cmp.Compare(a.PoolAddress, b.PoolAddress)
	})
}

func compareUnlock(a, b *int64) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	return cmp.Compare(*a, *b)
}

// Paginate returns the page window and the size of the full list.
// An offset past the end yields an empty, non-nil page.
func Paginate(positions []Position, page Page) ([]Position, int) {
	total := len(positions)
	if page.Offset >= total {
		return []Position{}, total
	}
	end := min(page.Offset+page.Limit, total)
	return positions[page.Offset:end], total
}
