package controller

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/smoothie-fi/smoothie/app/api/types"
)

// HandleQ4W returns aggregated withdrawal-queue positions.
// GET /api/backstop-q4w?pool=&status=&orderBy=&orderDir=&limit=&offset=&lpPrice=
func (c *Controller) HandleQ4W(w http.ResponseWriter, r *http.Request) {
	p := parseQ4WParams(r.URL.Query())

	resp, err := c.App.Q4W.GetPositions(r.Context(), p.Filter, p.Page, p.LpPrice)
	if err != nil {
		c.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleUserQ4W is HandleQ4W scoped to one depositor.
// GET /api/users/{address}/q4w
func (c *Controller) HandleUserQ4W(w http.ResponseWriter, r *http.Request) {
	address := strings.TrimSpace(mux.Vars(r)["address"])
	if address == "" {
		writeBadRequest(w, badParam("missing user address"))
		return
	}

	p := parseQ4WParams(r.URL.Query())
	p.Filter.UserAddress = address

	resp, err := c.App.Q4W.GetPositions(r.Context(), p.Filter, p.Page, p.LpPrice)
	if err != nil {
		c.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleQ4WPools lists pools with queued withdrawals.
func (c *Controller) HandleQ4WPools(w http.ResponseWriter, r *http.Request) {
	pools, err := c.App.Q4W.ListPools(r.Context())
	if err != nil {
		c.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, types.Q4WPoolsResponse{Pools: pools})
}
