// Package repository
package repository

import (
	"context"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/pkg/errors"

	"github.com/Pawan2061/futures_service/internal/model"
)

// PositionRepository repo for journaling positions into Postgres
type PositionRepository struct {
	Pool *pgxpool.Pool
}

// EnsureSchema create the positions table if it does not exist yet
func (p *PositionRepository) EnsureSchema(ctx context.Context) error {
	querySQL := `CREATE TABLE IF NOT EXISTS positions(
		id BIGINT PRIMARY KEY,
		"user" TEXT NOT NULL,
		position_type TEXT NOT NULL,
		amount DOUBLE PRECISION NOT NULL,
		leverage DOUBLE PRECISION NOT NULL,
		entry_price DOUBLE PRECISION NOT NULL,
		margin DOUBLE PRECISION NOT NULL,
		status TEXT NOT NULL,
		exit_price DOUBLE PRECISION,
		profit_loss DOUBLE PRECISION)`
	_, err := p.Pool.Exec(ctx, querySQL)
	if err != nil {
		return errors.Wrap(err, "repository Position/EnsureSchema")
	}
	return nil
}

// InsertTx Journal new opened position
func (p *PositionRepository) InsertTx(ctx context.Context, tx pgx.Tx, position *model.Position) error {
	querySQL := `INSERT INTO positions(
		id, "user", position_type, amount, leverage, entry_price, margin, status)
		VALUES
		($1,$2,$3,$4,$5,$6,$7,$8)`
	cm, err := tx.Exec(ctx, querySQL,
		position.ID,
		position.User,
		position.Type,
		position.Amount,
		position.Leverage,
		position.EntryPrice,
		position.Margin,
		position.Status,
	)
	if err != nil {
		return errors.Wrap(err, "repository Position/InsertTx")
	}
	if !cm.Insert() {
		return errors.Errorf("repository Position/InsertTx, incorrect data for INSERT : %v ", cm.String())
	}
	return nil
}

// ClosePositionTx Journal close of a position. Add exec into transaction
func (p *PositionRepository) ClosePositionTx(ctx context.Context, tx pgx.Tx, position *model.Position) error {
	querySQL := "UPDATE positions SET status=$1, exit_price=$2, profit_loss=$3 WHERE id=$4"
	cm, err := tx.Exec(ctx, querySQL, position.Status, position.ExitPrice, position.ProfitLoss, position.ID)
	if err != nil {
		return errors.Wrap(err, "repository Position/ClosePositionTx")
	}
	if !cm.Update() {
		return errors.Errorf("repository Position/ClosePositionTx, incorrect data for UPDATE : %v ", cm.String())
	}
	return nil
}
