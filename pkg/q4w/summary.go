package q4w

// Summarize totals positions bucket by bucket.
func Summarize(positions []Position) Summary {
	users := make(map[string]struct{}, len(positions))
	var s Summary

	for _, p := range positions {
		users[p.UserAddress] = struct{}{}
		s.TotalLpTokensLocked += p.LockedLpTokens
		s.TotalLpTokensUnlocked += p.UnlockedLpTokens
		s.TotalLpTokensLockedUsd += p.LockedLpTokensUsd
		s.TotalLpTokensUnlockedUsd += p.UnlockedLpTokensUsd
	}

	s.TotalUsers = len(users)
	s.TotalPositions = len(positions)
	s.TotalLpTokens = s.TotalLpTokensLocked + s.TotalLpTokensUnlocked
	s.TotalLpTokensUsd = s.TotalLpTokensLockedUsd + s.TotalLpTokensUnlockedUsd
	return s
}
