package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/carteira-app/carteira-backend/internal/model"
)

// SnapshotRepository handles the atomic replace used by portfolio import.
// Export reads through the regular repositories; import must swap the entire
// assets+transactions state in one SQL transaction so a failed import can
// never leave the ledger and the positions disagreeing.
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new SnapshotRepository with the provided database connection.
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// ReplaceAll atomically replaces all assets and transactions.
func (r *SnapshotRepository) ReplaceAll(ctx context.Context, assets []model.Asset, transactions []model.Transaction) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin import transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM asset`); err != nil {
		return fmt.Errorf("failed to clear asset table: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM "transaction"`); err != nil {
		return fmt.Errorf("failed to clear transaction table: %w", err)
	}

	assetQuery := `
		INSERT INTO asset (` + assetColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`
	for _, a := range assets {
		_, err := tx.ExecContext(ctx, assetQuery,
			a.Ticker, a.Name, a.Quantity, a.TotalCost, a.AveragePrice, a.CurrentPrice,
			a.TotalValue, a.DailyChangePercent, a.LastDividendPerUnit,
			a.AssetType, a.Segment, a.AllocationType, a.Color,
		)
		if err != nil {
			return fmt.Errorf("failed to import asset %s: %w", a.Ticker, err)
		}
	}

	transactionQuery := `
		INSERT INTO "transaction" (id, ticker, date, type, quantity, price, total, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	for _, t := range transactions {
		createdAt := t.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now()
		}
		_, err := tx.ExecContext(ctx, transactionQuery,
			t.ID, t.Ticker, t.Date, t.Type, t.Quantity, t.Price, t.Total,
			createdAt.UTC().Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("failed to import transaction %s: %w", t.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}
	return nil
}
