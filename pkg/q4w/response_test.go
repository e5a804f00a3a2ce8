package q4w

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func responseFixture() []RawEntry {
	return []RawEntry{
		{UserAddress: "A", PoolAddress: "P", PoolName: "P", Shares: 100, LpTokens: 10, UnlockTimestamp: 1000},
		{UserAddress: "A", PoolAddress: "P", PoolName: "P", Shares: 50, LpTokens: 5, UnlockTimestamp: 500},
		{UserAddress: "B", PoolAddress: "P", PoolName: "P", Shares: 20, LpTokens: 2, UnlockTimestamp: 400},
		{UserAddress: "C", PoolAddress: "Q", PoolName: "Q", Shares: 40, LpTokens: 4, UnlockTimestamp: 2000},
	}
}

func TestBuild(t *testing.T) {
	const now = int64(600)

	tests := []struct {
		name       string
		filter     func(*FilterState)
		page       Page
		wantKeys   []string
		wantTotal  int
		wantUsers  int
		wantLocked float64
	}{
		{
			name:       "defaults",
			page:       NewPage(DefaultLimit, 0),
			wantKeys:   []string{"A/P", "C/Q", "B/P"},
			wantTotal:  3,
			wantUsers:  3,
			wantLocked: 14,
		},
		{
			name:       "locked only keeps full summary",
			filter:     func(f *FilterState) { f.Status = StatusLocked },
			page:       NewPage(DefaultLimit, 0),
			wantKeys:   []string{"A/P", "C/Q"},
			wantTotal:  2,
			wantUsers:  3,
			wantLocked: 14,
		},
		{
			name:       "unlocked only",
			filter:     func(f *FilterState) { f.Status = StatusUnlocked },
			page:       NewPage(DefaultLimit, 0),
			wantKeys:   []string{"A/P", "B/P"},
			wantTotal:  2,
			wantUsers:  3,
			wantLocked: 14,
		},
		{
			name:       "pool scopes summary",
			filter:     func(f *FilterState) { f.PoolAddress = "P" },
			page:       NewPage(DefaultLimit, 0),
			wantKeys:   []string{"A/P", "B/P"},
			wantTotal:  2,
			wantUsers:  2,
			wantLocked: 10,
		},
		{
			name:       "user scopes summary",
			filter:     func(f *FilterState) { f.UserAddress = "C" },
			page:       NewPage(DefaultLimit, 0),
			wantKeys:   []string{"C/Q"},
			wantTotal:  1,
			wantUsers:  1,
			wantLocked: 4,
		},
		{
			name:       "first page of one",
			page:       NewPage(1, 0),
			wantKeys:   []string{"A/P"},
			wantTotal:  3,
			wantUsers:  3,
			wantLocked: 14,
		},
		{
			name: "lp tokens descending",
			filter: func(f *FilterState) {
				f.OrderBy = OrderByLpTokens
				f.OrderDir = OrderDesc
			},
			page:       NewPage(DefaultLimit, 0),
			wantKeys:   []string{"A/P", "C/Q", "B/P"},
			wantTotal:  3,
			wantUsers:  3,
			wantLocked: 14,
		},
		{
			name:       "offset past end",
			page:       NewPage(10, 10),
			wantKeys:   []string{},
			wantTotal:  3,
			wantUsers:  3,
			wantLocked: 14,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := DefaultFilter()
			if tt.filter != nil {
				tt.filter(&f)
			}

			resp := Build(responseFixture(), f, tt.page, now)

			assert.Equal(t, tt.wantKeys, keys(resp.Results))
			assert.Equal(t, tt.wantTotal, resp.TotalCount)
			assert.Equal(t, tt.wantUsers, resp.Summary.TotalUsers)
			assert.Equal(t, tt.wantLocked, resp.Summary.TotalLpTokensLocked)
			assert.Equal(t, now, resp.CurrentTimestamp)
			assert.LessOrEqual(t, len(resp.Results), tt.page.Limit)
		})
	}
}

func TestBuildSummaryIdentity(t *testing.T) {
	resp := Build(responseFixture(), DefaultFilter(), NewPage(DefaultLimit, 0), 600)

	s := resp.Summary
	assert.Equal(t, 3, s.TotalPositions)
	assert.Equal(t, 7.0, s.TotalLpTokensUnlocked)
	assert.Equal(t, s.TotalLpTokensLocked+s.TotalLpTokensUnlocked, s.TotalLpTokens)
	assert.Equal(t, 21.0, s.TotalLpTokens)
}

func TestBuildEmpty(t *testing.T) {
	resp := Build(nil, DefaultFilter(), NewPage(DefaultLimit, 0), 600)

	require.NotNil(t, resp.Results)
	assert.Empty(t, resp.Results)
	assert.Zero(t, resp.TotalCount)
	assert.Equal(t, Summary{}, resp.Summary)
	assert.Equal(t, int64(600), resp.CurrentTimestamp)
}

func TestAssembleNilResults(t *testing.T) {
	resp := Assemble(nil, Summary{}, 0, 42)
	assert.NotNil(t, resp.Results)
	assert.Equal(t, int64(42), resp.CurrentTimestamp)
}
