package model

// PositionType side of the trade
type PositionType string

// Status lifecycle state of a position
type Status string

const (
	TypeLong  PositionType = "long"
	TypeShort PositionType = "short"

	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

// Position model one leveraged trade. Id, user, type, amount, leverage, entry price and
// margin never change after open; status moves open -> closed exactly once and exit price
// and profit/loss are set together with that transition.
type Position struct {
	ID         int64        `json:"id" db:"id"`
	User       string       `json:"user" db:"user"`
	Type       PositionType `json:"positionType" db:"position_type"`
	Amount     float64      `json:"amount" db:"amount"`
	Leverage   float64      `json:"leverage" db:"leverage"`
	EntryPrice float64      `json:"entryPrice" db:"entry_price"`
	Margin     float64      `json:"margin" db:"margin"`
	Status     Status       `json:"status" db:"status"`
	ExitPrice  *float64     `json:"exitPrice,omitempty" db:"exit_price"`
	ProfitLoss *float64     `json:"profitLoss,omitempty" db:"profit_loss"`
}

// IsOpened position still open
func (p *Position) IsOpened() bool {
	return p.Status == StatusOpen
}

// CalculateProfit realized P&L on the full amount for the given exit price.
// A long gains when price rises, a short gains when price falls.
func (p *Position) CalculateProfit(exitPrice float64) float64 {
	if p.Type == TypeLong {
		return (exitPrice - p.EntryPrice) * p.Amount
	}
	return (p.EntryPrice - exitPrice) * p.Amount
}

// LiquidationPrice price at which the adverse move has consumed the whole margin,
// a 1/leverage fractional move from entry.
func (p *Position) LiquidationPrice() float64 {
	if p.Type == TypeLong {
		return p.EntryPrice * (1 - 1/p.Leverage)
	}
	return p.EntryPrice * (1 + 1/p.Leverage)
}

// IsLiquidated liquidation decision against the given mark price
func (p *Position) IsLiquidated(currentPrice float64) bool {
	liquidationPrice := p.LiquidationPrice()
	if p.Type == TypeLong {
		return currentPrice <= liquidationPrice
	}
	return currentPrice >= liquidationPrice
}
