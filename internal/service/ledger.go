package service

import (
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"github.com/Pawan2061/futures_service/internal/model"
	"github.com/Pawan2061/futures_service/internal/repository"
)

const sizeQueuePositionsOnWriteToRep = 100

// journalEntry one position state change waiting to be journaled into the repository
type journalEntry struct {
	position model.Position
	opened   bool
}

// Ledger Main service for work with positions. Owns the whole collection: assigns ids,
// enforces the open -> closed lifecycle and never removes a position. All mutation goes
// through the internal mutex; ids come from a monotonic counter bumped inside the same
// critical section as the insert, so concurrent opens can never share an id.
type Ledger struct {
	PositionRepository *repository.PositionRepository
	CtxApp             context.Context

	positions    []*model.Position
	positionsMap map[int64]*model.Position
	nextID       int64
	rwm          sync.RWMutex

	bufferWriteJournal chan journalEntry
}

// NewLedger Constructor. positionRep may be nil, then nothing is journaled.
func NewLedger(ctx context.Context, positionRep *repository.PositionRepository) *Ledger {
	return &Ledger{
		PositionRepository: positionRep,
		CtxApp:             ctx,
		positionsMap:       make(map[int64]*model.Position),
		bufferWriteJournal: make(chan journalEntry, sizeQueuePositionsOnWriteToRep),
	}
}

// LiquidationReport result of a liquidation check
type LiquidationReport struct {
	LiquidationPrice float64
	IsLiquidated     bool
}

// Open open position. All five fields must be present and non-zero; leverage must be
// positive so the margin and liquidation formulas stay defined.
func (l *Ledger) Open(ctx context.Context, user string, positionType model.PositionType, amount, leverage, entryPrice float64) (*model.Position, error) {
	logrus.Debug("Ledger service / Open ")
	missing := make([]string, 0, 5)
	if user == "" {
		missing = append(missing, "user")
	}
	if positionType == "" {
		missing = append(missing, "positionType")
	}
	if amount == 0 {
		missing = append(missing, "amount")
	}
	if leverage == 0 {
		missing = append(missing, "leverage")
	}
	if entryPrice == 0 {
		missing = append(missing, "entryPrice")
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Missing: missing}
	}
	if leverage < 0 {
		return nil, &ValidationError{Message: "leverage must be positive"}
	}

	l.rwm.Lock()
	l.nextID++
	position := &model.Position{
		ID:         l.nextID,
		User:       user,
		Type:       positionType,
		Amount:     amount,
		Leverage:   leverage,
		EntryPrice: entryPrice,
		Margin:     amount / leverage,
		Status:     model.StatusOpen,
	}
	l.positions = append(l.positions, position)
	l.positionsMap[position.ID] = position
	opened := *position
	l.rwm.Unlock()

	l.writeInBufferJournal(journalEntry{position: opened, opened: true})
	return &opened, nil
}

// Close close position. Lookup is user-scoped: an id that exists for another user is
// treated as not found. The second close of the same position observes ErrPositionClosed.
func (l *Ledger) Close(ctx context.Context, user string, positionID int64, exitPrice float64) (*model.Position, error) {
	logrus.Debug("Ledger service / Close ")
	l.rwm.Lock()
	position, exist := l.positionsMap[positionID]
	if !exist || position.User != user {
		l.rwm.Unlock()
		return nil, ErrPositionNotFound
	}
	if !position.IsOpened() {
		l.rwm.Unlock()
		return nil, ErrPositionClosed
	}
	profitLoss := position.CalculateProfit(exitPrice)
	position.Status = model.StatusClosed
	position.ExitPrice = &exitPrice
	position.ProfitLoss = &profitLoss
	closed := *position
	l.rwm.Unlock()

	l.writeInBufferJournal(journalEntry{position: closed})
	return &closed, nil
}

// ListOpen all open positions in ledger insertion order
func (l *Ledger) ListOpen() []*model.Position {
	l.rwm.RLock()
	defer l.rwm.RUnlock()
	open := make([]*model.Position, 0, len(l.positions))
	for _, position := range l.positions {
		if position.IsOpened() {
			cp := *position
			open = append(open, &cp)
		}
	}
	return open
}

// GetByID exact id lookup across all users, open or closed
func (l *Ledger) GetByID(ctx context.Context, positionID int64) (*model.Position, error) {
	l.rwm.RLock()
	defer l.rwm.RUnlock()
	position, exist := l.positionsMap[positionID]
	if !exist {
		return nil, ErrPositionNotFound
	}
	cp := *position
	return &cp, nil
}

// ListByUser all positions of the user, open and closed, in insertion order.
// An unknown user gets an empty list, not an error.
func (l *Ledger) ListByUser(user string) []*model.Position {
	l.rwm.RLock()
	defer l.rwm.RUnlock()
	userPositions := make([]*model.Position, 0)
	for _, position := range l.positions {
		if position.User == user {
			cp := *position
			userPositions = append(userPositions, &cp)
		}
	}
	return userPositions
}

// CheckLiquidation pure query: computes the liquidation price and compares the given
// mark price against it. Never mutates the position, whatever the outcome.
func (l *Ledger) CheckLiquidation(ctx context.Context, user string, positionID int64, currentPrice float64) (*LiquidationReport, error) {
	l.rwm.RLock()
	position, exist := l.positionsMap[positionID]
	if !exist || position.User != user {
		l.rwm.RUnlock()
		return nil, ErrPositionNotFound
	}
	cp := *position
	l.rwm.RUnlock()

	return &LiquidationReport{
		LiquidationPrice: cp.LiquidationPrice(),
		IsLiquidated:     cp.IsLiquidated(currentPrice),
	}, nil
}

func (l *Ledger) writeInBufferJournal(entry journalEntry) {
	if l.PositionRepository == nil {
		return
	}
	select {
	case l.bufferWriteJournal <- entry:
	default:
		logrus.Warn("Ledger service / journal buffer is full, entry dropped")
	}
}

// WriteJournal G for write opened and closed positions into the repository from the
// journal buffer. Best effort: the in-memory ledger stays authoritative, failures are
// only logged.
func (l *Ledger) WriteJournal(ctx context.Context) {
	logrus.Debug("start WriteJournal")
	for {
		select {
		case <-ctx.Done():
			return
		case entry := <-l.bufferWriteJournal:
			tx, err := l.PositionRepository.Pool.Begin(ctx)
			if err != nil {
				logrus.WithError(err).Error("ledger service / WriteJournal / open transaction")
				continue
			}
			if entry.opened {
				err = l.PositionRepository.InsertTx(ctx, tx, &entry.position)
			} else {
				err = l.PositionRepository.ClosePositionTx(ctx, tx, &entry.position)
			}
			if err != nil {
				logrus.WithError(err).Error("ledger service / WriteJournal / write position")
				_ = tx.Rollback(ctx)
				continue
			}
			err = tx.Commit(ctx)
			if err != nil {
				logrus.WithError(err).Error("ledger service / WriteJournal / Commit transaction")
			}
		}
	}
}
