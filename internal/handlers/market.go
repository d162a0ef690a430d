// Package handlers HTTP Handlers
package handlers

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/Pawan2061/futures_service/internal/priceStorage"
)

// MarketHandler work with the shared market price
type MarketHandler struct {
	PriceStore *priceStorage.PriceStore
}

type updateMarketPriceRequest struct {
	Price float64 `json:"price"`
}

// UpdateMarketPrice POST /updateMarketPrice
// A zero price is rejected together with a missing one, that is the boundary contract.
func (m *MarketHandler) UpdateMarketPrice(w http.ResponseWriter, r *http.Request) {
	log.Debug("Handler UpdateMarketPrice")
	var req updateMarketPriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.WithError(err).Error("market handler / UpdateMarketPrice / decode body")
		writeFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Price == 0 {
		writeFailure(w, http.StatusBadRequest, "Price required")
		return
	}

	price := m.PriceStore.SetPrice(req.Price)
	writeJSON(w, http.StatusOK, marketPriceResponse{Success: true, MarketPrice: price.Value})
}
