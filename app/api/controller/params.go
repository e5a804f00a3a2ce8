package controller

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/smoothie-fi/smoothie/pkg/db"
	backstopmodels "github.com/smoothie-fi/smoothie/pkg/db/models/backstop"
	"github.com/smoothie-fi/smoothie/pkg/q4w"
)

const (
	defaultSnapshotDays = 30
	maxSnapshotDays     = 365

	defaultEventsLimit = 50
	maxEventsLimit     = 100
)

// q4wParams is a fully resolved Q4W query.
type q4wParams struct {
	Filter  q4w.FilterState
	Page    q4w.Page
	LpPrice float64
}

// parseQ4WParams never fails: unknown or malformed values fall back to their
// defaults and limit/offset are clamped into range.
func parseQ4WParams(qs url.Values) q4wParams {
	f := q4w.DefaultFilter()
	f.PoolAddress = strings.TrimSpace(qs.Get("pool"))

	if s, ok := q4w.ParseStatus(qs.Get("status")); ok {
		f.Status = s
	}
	if o, ok := q4w.ParseOrderBy(qs.Get("orderBy")); ok {
		f.OrderBy = o
	}
	if d, ok := q4w.ParseOrderDir(qs.Get("orderDir")); ok {
		f.OrderDir = d
	}

	return q4wParams{
		Filter:  f,
		Page:    q4w.NewPage(intOr(qs.Get("limit"), q4w.DefaultLimit), intOr(qs.Get("offset"), 0)),
		LpPrice: priceOr(qs.Get("lpPrice"), 0),
	}
}

func intOr(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}

// priceOr parses a finite, non-negative price.
func priceOr(s string, def float64) float64 {
	p, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || p < 0 || math.IsNaN(p) || math.IsInf(p, 0) {
		return def
	}
	return p
}

// parseSnapshotDays reads days, which must be within [1, 365] when present.
func parseSnapshotDays(qs url.Values) (int, error) {
	v := qs.Get("days")
	if v == "" {
		return defaultSnapshotDays, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 || n > maxSnapshotDays {
		return 0, badParam("days must be an integer between 1 and 365")
	}
	return n, nil
}

// parseEventQuery validates the event log filters. limit is capped at 100.
func parseEventQuery(qs url.Values) (db.EventQuery, error) {
	action, err := backstopmodels.ParseAction(qs.Get("action"))
	if err != nil {
		return db.EventQuery{}, badParam(err.Error())
	}

	limit := defaultEventsLimit
	if v := qs.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return db.EventQuery{}, badParam("invalid limit")
		}
		limit = min(n, maxEventsLimit)
	}

	offset := 0
	if v := qs.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return db.EventQuery{}, badParam("invalid offset")
		}
		offset = n
	}

	return db.EventQuery{
		UserAddress: strings.TrimSpace(qs.Get("user")),
		PoolAddress: strings.TrimSpace(qs.Get("pool")),
		Action:      action,
		Limit:       limit,
		Offset:      offset,
	}, nil
}
