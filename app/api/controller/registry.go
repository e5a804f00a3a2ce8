package controller

import (
	"net/http"

	"github.com/smoothie-fi/smoothie/app/api/types"
)

// HandlePools returns the pool registry of the configured network.
func (c *Controller) HandlePools(w http.ResponseWriter, _ *http.Request) {
	network := c.App.Config.Network.Name
	writeJSON(w, http.StatusOK, types.PoolsResponse{
		Network: network,
		Pools:   c.App.Config.Pools.Pools(network),
	})
}

// HandlePrices returns the USD price table.
func (c *Controller) HandlePrices(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, types.PricesResponse{Prices: c.App.Prices.Prices()})
}

// HandleNetwork returns the Stellar endpoints of the configured network.
func (c *Controller) HandleNetwork(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, c.App.Config.Network)
}
