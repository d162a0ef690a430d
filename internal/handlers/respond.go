package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/Pawan2061/futures_service/internal/model"
	"github.com/Pawan2061/futures_service/internal/service"
)

type positionResponse struct {
	Success  bool            `json:"success"`
	Position *model.Position `json:"position"`
}

type positionsResponse struct {
	Success   bool              `json:"success"`
	Positions []*model.Position `json:"positions"`
}

type liquidationResponse struct {
	Success          bool    `json:"success"`
	IsLiquidated     bool    `json:"isLiquidated"`
	LiquidationPrice float64 `json:"liquidationPrice"`
	Message          string  `json:"message"`
}

type marketPriceResponse struct {
	Success     bool    `json:"success"`
	MarketPrice float64 `json:"marketPrice"`
}

type failureResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// writeJSON marshal v and write it with the given status code
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		logrus.WithError(err).Error("handlers / writeJSON / marshal response")
		http.Error(w, `{"success":false,"message":"internal server error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeFailure send a {success:false, message} envelope
func writeFailure(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, failureResponse{Success: false, Message: message})
}

// writeServiceError map a ledger failure onto the boundary contract
func writeServiceError(w http.ResponseWriter, err error) {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		writeFailure(w, http.StatusBadRequest, validationErr.Error())
	case errors.Is(err, service.ErrPositionNotFound):
		writeFailure(w, http.StatusNotFound, "Position not found")
	case errors.Is(err, service.ErrPositionClosed):
		writeFailure(w, http.StatusBadRequest, "Position already closed")
	default:
		logrus.WithError(err).Error("handlers / unexpected service error")
		writeFailure(w, http.StatusInternalServerError, "internal server error")
	}
}
