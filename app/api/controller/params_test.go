package controller

import (
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	backstopmodels "github.com/smoothie-fi/smoothie/pkg/db/models/backstop"
	"github.com/smoothie-fi/smoothie/pkg/q4w"
)

func TestParseQ4WParams(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  q4wParams
	}{
		{
			name:  "defaults",
			query: "",
			want:  q4wParams{Filter: q4w.DefaultFilter(), Page: q4w.Page{Limit: 50, Offset: 0}},
		},
		{
			name:  "limit above max is clamped",
			query: "limit=500",
			want:  q4wParams{Filter: q4w.DefaultFilter(), Page: q4w.Page{Limit: 100}},
		},
		{
			name:  "limit zero is clamped",
			query: "limit=0",
			want:  q4wParams{Filter: q4w.DefaultFilter(), Page: q4w.Page{Limit: 1}},
		},
		{
			name:  "negative offset is clamped",
			query: "offset=-5",
			want:  q4wParams{Filter: q4w.DefaultFilter(), Page: q4w.Page{Limit: 50}},
		},
		{
			name:  "every parameter",
			query: "pool=CP&status=locked&orderBy=lp_tokens&orderDir=desc&limit=10&offset=20&lpPrice=0.25",
			want: q4wParams{
				Filter: q4w.FilterState{
					PoolAddress: "CP",
					Status:      q4w.StatusLocked,
					OrderBy:     q4w.OrderByLpTokens,
					OrderDir:    q4w.OrderDesc,
				},
				Page:    q4w.Page{Limit: 10, Offset: 20},
				LpPrice: 0.25,
			},
		},
		{
			name:  "unparseable values fall back",
			query: "status=frozen&orderBy=name&orderDir=sideways&limit=lots&offset=x&lpPrice=-1",
			want:  q4wParams{Filter: q4w.DefaultFilter(), Page: q4w.Page{Limit: 50}},
		},
		{
			name:  "non-finite price ignored",
			query: "lpPrice=NaN",
			want:  q4wParams{Filter: q4w.DefaultFilter(), Page: q4w.Page{Limit: 50}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qs, err := url.ParseQuery(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, parseQ4WParams(qs))
		})
	}
}

func TestParseSnapshotDays(t *testing.T) {
	tests := []struct {
		value   string
		want    int
		wantErr bool
	}{
		{value: "", want: 30},
		{value: "1", want: 1},
		{value: "365", want: 365},
		{value: "0", wantErr: true},
		{value: "366", wantErr: true},
		{value: "-3", wantErr: true},
		{value: "7d", wantErr: true},
	}

	for _, tt := range tests {
		t.Run("days="+tt.value, func(t *testing.T) {
			qs := url.Values{}
			if tt.value != "" {
				qs.Set("days", tt.value)
			}
			got, err := parseSnapshotDays(qs)
			if tt.wantErr {
				var pe *paramError
				require.True(t, errors.As(err, &pe))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseEventQuery(t *testing.T) {
	q, err := parseEventQuery(url.Values{})
	require.NoError(t, err)
	assert.Equal(t, defaultEventsLimit, q.Limit)
	assert.Equal(t, 0, q.Offset)
	assert.Empty(t, q.Action)

	q, err = parseEventQuery(url.Values{
		"user":   {" GA "},
		"pool":   {"CP"},
		"action": {"Claim"},
		"limit":  {"1000"},
		"offset": {"40"},
	})
	require.NoError(t, err)
	assert.Equal(t, "GA", q.UserAddress)
	assert.Equal(t, "CP", q.PoolAddress)
	assert.Equal(t, backstopmodels.ActionClaim, q.Action)
	assert.Equal(t, maxEventsLimit, q.Limit)
	assert.Equal(t, 40, q.Offset)

	for _, bad := range []url.Values{
		{"action": {"mint"}},
		{"limit": {"0"}},
		{"limit": {"-1"}},
		{"offset": {"-1"}},
		{"offset": {"first"}},
	} {
		_, err := parseEventQuery(bad)
		var pe *paramError
		assert.True(t, errors.As(err, &pe), bad.Encode())
	}
}
