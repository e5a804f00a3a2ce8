package controller

import (
	"net/http"

	"github.com/smoothie-fi/smoothie/app/api/types"
)

// HandleEvents returns the backstop event log, newest first.
// GET /api/events?user=&pool=&action=&limit=&offset=
func (c *Controller) HandleEvents(w http.ResponseWriter, r *http.Request) {
	q, err := parseEventQuery(r.URL.Query())
	if err != nil {
		c.writeError(w, r, err)
		return
	}

	ctx := r.Context()
	total, err := c.App.EventStore.CountEvents(ctx, q)
	if err != nil {
		c.writeError(w, r, err)
		return
	}

	rows, err := c.App.EventStore.QueryEvents(ctx, q)
	if err != nil {
		c.writeError(w, r, err)
		return
	}

	events := make([]types.EventView, 0, len(rows))
	for _, e := range rows {
		events = append(events, types.NewEventView(e))
	}

	writeJSON(w, http.StatusOK, types.EventsResponse{
		Events:     events,
		TotalCount: total,
		Limit:      q.Limit,
		Offset:     q.Offset,
	})
}
