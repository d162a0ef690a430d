package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Pawan2061/futures_service/internal/model"
)

func newTestLedger() *Ledger {
	return NewLedger(context.Background(), nil)
}

func TestLedgerOpen(t *testing.T) {
	ledger := newTestLedger()

	first, err := ledger.Open(context.Background(), "alice", model.TypeLong, 10, 5, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, model.StatusOpen, first.Status)
	assert.Equal(t, 10.0/5, first.Margin)
	assert.Nil(t, first.ExitPrice)
	assert.Nil(t, first.ProfitLoss)

	second, err := ledger.Open(context.Background(), "bob", model.TypeShort, 4, 2, 50)
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.ID)
	assert.Equal(t, 2.0, second.Margin)
}

func TestLedgerOpenValidation(t *testing.T) {
	ledger := newTestLedger()

	tests := []struct {
		name         string
		user         string
		positionType model.PositionType
		amount       float64
		leverage     float64
		entryPrice   float64
		wantMissing  string
	}{
		{"NoUser", "", model.TypeLong, 10, 5, 100, "user"},
		{"NoType", "alice", "", 10, 5, 100, "positionType"},
		{"NoAmount", "alice", model.TypeLong, 0, 5, 100, "amount"},
		{"NoLeverage", "alice", model.TypeLong, 10, 0, 100, "leverage"},
		{"NoEntryPrice", "alice", model.TypeLong, 10, 5, 0, "entryPrice"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ledger.Open(context.Background(), tt.user, tt.positionType, tt.amount, tt.leverage, tt.entryPrice)
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Contains(t, validationErr.Missing, tt.wantMissing)
		})
	}

	// no position may be created by a failed open
	assert.Empty(t, ledger.ListOpen())
}

func TestLedgerOpenNegativeLeverage(t *testing.T) {
	ledger := newTestLedger()

	_, err := ledger.Open(context.Background(), "alice", model.TypeLong, 10, -5, 100)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "leverage must be positive", validationErr.Error())
	assert.Empty(t, ledger.ListOpen())
}

func TestLedgerCloseProfitLoss(t *testing.T) {
	ledger := newTestLedger()

	long, err := ledger.Open(context.Background(), "alice", model.TypeLong, 10, 5, 100)
	require.NoError(t, err)
	short, err := ledger.Open(context.Background(), "alice", model.TypeShort, 10, 5, 100)
	require.NoError(t, err)

	closedLong, err := ledger.Close(context.Background(), "alice", long.ID, 120)
	require.NoError(t, err)
	require.NotNil(t, closedLong.ProfitLoss)
	assert.Equal(t, 200.0, *closedLong.ProfitLoss)
	assert.Equal(t, model.StatusClosed, closedLong.Status)
	require.NotNil(t, closedLong.ExitPrice)
	assert.Equal(t, 120.0, *closedLong.ExitPrice)

	closedShort, err := ledger.Close(context.Background(), "alice", short.ID, 120)
	require.NoError(t, err)
	require.NotNil(t, closedShort.ProfitLoss)
	assert.Equal(t, -200.0, *closedShort.ProfitLoss)
}

func TestLedgerCloseTwice(t *testing.T) {
	ledger := newTestLedger()

	position, err := ledger.Open(context.Background(), "alice", model.TypeLong, 10, 5, 100)
	require.NoError(t, err)

	_, err = ledger.Close(context.Background(), "alice", position.ID, 120)
	require.NoError(t, err)

	_, err = ledger.Close(context.Background(), "alice", position.ID, 130)
	require.ErrorIs(t, err, ErrPositionClosed)

	// first close result stays untouched
	stored, err := ledger.GetByID(context.Background(), position.ID)
	require.NoError(t, err)
	assert.Equal(t, 120.0, *stored.ExitPrice)
	assert.Equal(t, 200.0, *stored.ProfitLoss)
}

func TestLedgerCloseUserScoped(t *testing.T) {
	ledger := newTestLedger()

	position, err := ledger.Open(context.Background(), "alice", model.TypeLong, 10, 5, 100)
	require.NoError(t, err)

	_, err = ledger.Close(context.Background(), "bob", position.ID, 120)
	require.ErrorIs(t, err, ErrPositionNotFound)

	_, err = ledger.Close(context.Background(), "alice", 999, 120)
	require.ErrorIs(t, err, ErrPositionNotFound)

	stored, err := ledger.GetByID(context.Background(), position.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusOpen, stored.Status)
}

func TestLedgerGetByID(t *testing.T) {
	ledger := newTestLedger()

	_, err := ledger.GetByID(context.Background(), 1)
	require.ErrorIs(t, err, ErrPositionNotFound)

	opened, err := ledger.Open(context.Background(), "alice", model.TypeLong, 10, 5, 100)
	require.NoError(t, err)

	// cross-user lookup is allowed for GetByID
	stored, err := ledger.GetByID(context.Background(), opened.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", stored.User)
}

func TestLedgerListOpen(t *testing.T) {
	ledger := newTestLedger()

	first, err := ledger.Open(context.Background(), "alice", model.TypeLong, 10, 5, 100)
	require.NoError(t, err)
	second, err := ledger.Open(context.Background(), "bob", model.TypeShort, 4, 2, 50)
	require.NoError(t, err)
	third, err := ledger.Open(context.Background(), "alice", model.TypeLong, 1, 1, 10)
	require.NoError(t, err)

	_, err = ledger.Close(context.Background(), "bob", second.ID, 40)
	require.NoError(t, err)

	open := ledger.ListOpen()
	require.Len(t, open, 2)
	assert.Equal(t, first.ID, open[0].ID)
	assert.Equal(t, third.ID, open[1].ID)
}

func TestLedgerListByUser(t *testing.T) {
	ledger := newTestLedger()

	first, err := ledger.Open(context.Background(), "alice", model.TypeLong, 10, 5, 100)
	require.NoError(t, err)
	_, err = ledger.Open(context.Background(), "bob", model.TypeShort, 4, 2, 50)
	require.NoError(t, err)
	second, err := ledger.Open(context.Background(), "alice", model.TypeShort, 1, 1, 10)
	require.NoError(t, err)

	_, err = ledger.Close(context.Background(), "alice", first.ID, 90)
	require.NoError(t, err)

	alicePositions := ledger.ListByUser("alice")
	require.Len(t, alicePositions, 2)
	assert.Equal(t, first.ID, alicePositions[0].ID)
	assert.Equal(t, second.ID, alicePositions[1].ID)

	unknown := ledger.ListByUser("nobody")
	require.NotNil(t, unknown)
	assert.Empty(t, unknown)
}

func TestLedgerCheckLiquidation(t *testing.T) {
	ledger := newTestLedger()

	long, err := ledger.Open(context.Background(), "alice", model.TypeLong, 10, 5, 100)
	require.NoError(t, err)
	short, err := ledger.Open(context.Background(), "alice", model.TypeShort, 10, 5, 100)
	require.NoError(t, err)

	report, err := ledger.CheckLiquidation(context.Background(), "alice", long.ID, 80)
	require.NoError(t, err)
	assert.Equal(t, 80.0, report.LiquidationPrice)
	assert.True(t, report.IsLiquidated)

	report, err = ledger.CheckLiquidation(context.Background(), "alice", long.ID, 81)
	require.NoError(t, err)
	assert.False(t, report.IsLiquidated)

	report, err = ledger.CheckLiquidation(context.Background(), "alice", short.ID, 120)
	require.NoError(t, err)
	assert.Equal(t, 120.0, report.LiquidationPrice)
	assert.True(t, report.IsLiquidated)

	_, err = ledger.CheckLiquidation(context.Background(), "bob", long.ID, 80)
	require.ErrorIs(t, err, ErrPositionNotFound)

	// the check is a pure query, the position must stay open
	stored, err := ledger.GetByID(context.Background(), long.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusOpen, stored.Status)
}

func TestLedgerConcurrentOpen(t *testing.T) {
	ledger := newTestLedger()
	countOpeners := 50

	var wg sync.WaitGroup
	ids := make(chan int64, countOpeners)
	for i := 0; i < countOpeners; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			position, err := ledger.Open(context.Background(), fmt.Sprintf("user-%d", n), model.TypeLong, 10, 5, 100)
			if err != nil {
				t.Error(err)
				return
			}
			ids <- position.ID
		}(i)
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, countOpeners)
	assert.Len(t, ledger.ListOpen(), countOpeners)
}
