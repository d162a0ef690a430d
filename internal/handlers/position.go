package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/Pawan2061/futures_service/internal/model"
	"github.com/Pawan2061/futures_service/internal/service"
)

// PositionHandler HTTP shell over the Ledger
type PositionHandler struct {
	Ledger *service.Ledger
}

type openPositionRequest struct {
	User         string  `json:"user"`
	PositionType string  `json:"positionType"`
	Amount       float64 `json:"amount"`
	Leverage     float64 `json:"leverage"`
	EntryPrice   float64 `json:"entryPrice"`
}

type closePositionRequest struct {
	User       string  `json:"user"`
	PositionID int64   `json:"positionId"`
	ExitPrice  float64 `json:"exitPrice"`
}

type checkLiquidationRequest struct {
	User         string  `json:"user"`
	PositionID   int64   `json:"positionId"`
	CurrentPrice float64 `json:"currentPrice"`
}

// OpenPosition POST /openPosition
func (p *PositionHandler) OpenPosition(w http.ResponseWriter, r *http.Request) {
	logrus.Debug("Handler OpenPosition")
	var req openPositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logrus.WithError(err).Error("position handler / OpenPosition / decode body")
		writeFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	position, err := p.Ledger.Open(r.Context(), req.User, model.PositionType(req.PositionType), req.Amount, req.Leverage, req.EntryPrice)
	if err != nil {
		logrus.WithError(err).Error("position handler / OpenPosition / open")
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, positionResponse{Success: true, Position: position})
}

// ClosePosition POST /closePosition
func (p *PositionHandler) ClosePosition(w http.ResponseWriter, r *http.Request) {
	logrus.Debug("Handler ClosePosition")
	var req closePositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logrus.WithError(err).Error("position handler / ClosePosition / decode body")
		writeFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	position, err := p.Ledger.Close(r.Context(), req.User, req.PositionID, req.ExitPrice)
	if err != nil {
		logrus.WithError(err).Error("position handler / ClosePosition / close")
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, positionResponse{Success: true, Position: position})
}

// OpenPositions GET /openPositions
func (p *PositionHandler) OpenPositions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, positionsResponse{Success: true, Positions: p.Ledger.ListOpen()})
}

// GetPositionByID GET /position/{id}
func (p *PositionHandler) GetPositionByID(w http.ResponseWriter, r *http.Request) {
	idParse, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		logrus.WithError(err).Error("position handler / GetPositionByID / parse id")
		writeFailure(w, http.StatusBadRequest, "Invalid position id")
		return
	}
	position, err := p.Ledger.GetByID(r.Context(), idParse)
	if err != nil {
		logrus.WithError(err).Error("position handler / GetPositionByID / get position from service")
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, positionResponse{Success: true, Position: position})
}

// GetUserPositions GET /userPositions/{userId}
func (p *PositionHandler) GetUserPositions(w http.ResponseWriter, r *http.Request) {
	positions := p.Ledger.ListByUser(r.PathValue("userId"))
	writeJSON(w, http.StatusOK, positionsResponse{Success: true, Positions: positions})
}

// CheckLiquidation POST /checkLiquidation
func (p *PositionHandler) CheckLiquidation(w http.ResponseWriter, r *http.Request) {
	logrus.Debug("Handler CheckLiquidation")
	var req checkLiquidationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logrus.WithError(err).Error("position handler / CheckLiquidation / decode body")
		writeFailure(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	report, err := p.Ledger.CheckLiquidation(r.Context(), req.User, req.PositionID, req.CurrentPrice)
	if err != nil {
		logrus.WithError(err).Error("position handler / CheckLiquidation / check")
		writeServiceError(w, err)
		return
	}

	message := "Safe from liquidation"
	if report.IsLiquidated {
		message = "Position liquidated"
	}
	writeJSON(w, http.StatusOK, liquidationResponse{
		Success:          true,
		IsLiquidated:     report.IsLiquidated,
		LiquidationPrice: report.LiquidationPrice,
		Message:          message,
	})
}
