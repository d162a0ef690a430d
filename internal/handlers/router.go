package handlers

import "net/http"

// NewRouter register all routes and wrap them with request logging
func NewRouter(positions *PositionHandler, market *MarketHandler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /openPosition", positions.OpenPosition)
	mux.HandleFunc("POST /closePosition", positions.ClosePosition)
	mux.HandleFunc("GET /openPositions", positions.OpenPositions)
	mux.HandleFunc("GET /position/{id}", positions.GetPositionByID)
	mux.HandleFunc("GET /userPositions/{userId}", positions.GetUserPositions)
	mux.HandleFunc("POST /checkLiquidation", positions.CheckLiquidation)
	mux.HandleFunc("POST /updateMarketPrice", market.UpdateMarketPrice)

	return RequestLogging(mux)
}
