package controller

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/smoothie-fi/smoothie/app/api/types"
)

// HandlePoolSnapshots returns the daily history of a backstop pool.
// GET /api/backstop-pools/{pool}/snapshots?days=30
func (c *Controller) HandlePoolSnapshots(w http.ResponseWriter, r *http.Request) {
	pool := strings.TrimSpace(mux.Vars(r)["pool"])
	if pool == "" {
		writeBadRequest(w, badParam("missing pool address"))
		return
	}

	days, err := parseSnapshotDays(r.URL.Query())
	if err != nil {
		c.writeError(w, r, err)
		return
	}

	since := c.App.Now().UTC().AddDate(0, 0, -days)
	rows, err := c.App.SnapshotStore.QueryPoolSnapshots(r.Context(), pool, since)
	if err != nil {
		c.writeError(w, r, err)
		return
	}

	points := make([]types.SnapshotPoint, 0, len(rows))
	for _, s := range rows {
		points = append(points, types.NewSnapshotPoint(s))
	}

	writeJSON(w, http.StatusOK, types.SnapshotsResponse{
		PoolAddress: pool,
		Days:        days,
		Snapshots:   points,
	})
}
