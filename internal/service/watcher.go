package service

import (
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"github.com/Pawan2061/futures_service/internal/model"
)

// LiquidationWatcher watches the shared market price stream and logs every open position
// whose liquidation price the new mark has crossed. Read-only: a liquidation check never
// closes a position, closing stays an explicit caller decision.
type LiquidationWatcher struct {
	Ledger  *Ledger
	chPrice chan model.Price
}

// NewLiquidationWatcher Constructor
func NewLiquidationWatcher(ledger *Ledger) *LiquidationWatcher {
	return &LiquidationWatcher{
		Ledger:  ledger,
		chPrice: make(chan model.Price, 1),
	}
}

// Chan channel to register with the price store subscribers
func (w *LiquidationWatcher) Chan() chan model.Price {
	return w.chPrice
}

// Run G consuming market price updates
func (w *LiquidationWatcher) Run(ctx context.Context) {
	logrus.Debug("Start LiquidationWatcher")
	for {
		select {
		case <-ctx.Done():
			return
		case price := <-w.chPrice:
			for _, position := range w.Ledger.ListOpen() {
				if position.IsLiquidated(price.Value) {
					logrus.WithFields(logrus.Fields{
						"positionID":       position.ID,
						"user":             position.User,
						"liquidationPrice": position.LiquidationPrice(),
						"marketPrice":      price.Value,
					}).Warn("open position is past its liquidation price")
				}
			}
		}
	}
}
