package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/carteira-app/carteira-backend/internal/apperrors"
	"github.com/carteira-app/carteira-backend/internal/model"
)

const assetColumns = `ticker, name, quantity, total_cost, average_price, current_price,
	total_value, daily_change_percent, last_dividend_per_unit,
	asset_type, segment, allocation_type, color, updated_at`

// AssetRepository provides data access methods for reconciled positions.
// Each ticker maps to at most one row; the reconciler decides what that row
// contains and whether it exists at all.
type AssetRepository struct {
	db *sql.DB
}

// NewAssetRepository creates a new AssetRepository with the provided database connection.
func NewAssetRepository(db *sql.DB) *AssetRepository {
	return &AssetRepository{db: db}
}

// GetAssets retrieves all positions ordered by ticker.
// Rows that fail to scan are skipped so a corrupt record cannot take the
// whole portfolio down with it.
func (r *AssetRepository) GetAssets() ([]model.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM asset ORDER BY ticker ASC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query asset table: %w", err)
	}
	defer rows.Close()

	assets := []model.Asset{}
	for rows.Next() {
		asset, err := scanAsset(rows.Scan)
		if err != nil {
			continue
		}
		assets = append(assets, asset)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating asset table: %w", err)
	}

	return assets, nil
}

// GetAsset retrieves a single position by ticker.
// Returns apperrors.ErrAssetNotFound when no row matches.
func (r *AssetRepository) GetAsset(ticker string) (model.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM asset WHERE ticker = ?`

	row := r.db.QueryRow(query, ticker)
	asset, err := scanAsset(row.Scan)
	if err == sql.ErrNoRows {
		return model.Asset{}, apperrors.ErrAssetNotFound
	}
	if err != nil {
		return model.Asset{}, fmt.Errorf("failed to scan asset table results: %w", err)
	}

	return asset, nil
}

// UpsertAsset inserts or replaces the position for the asset's ticker.
func (r *AssetRepository) UpsertAsset(ctx context.Context, a model.Asset) error {
	query := `
		INSERT INTO asset (` + assetColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(ticker) DO UPDATE SET
			name = excluded.name,
			quantity = excluded.quantity,
			total_cost = excluded.total_cost,
			average_price = excluded.average_price,
			current_price = excluded.current_price,
			total_value = excluded.total_value,
			daily_change_percent = excluded.daily_change_percent,
			last_dividend_per_unit = excluded.last_dividend_per_unit,
			asset_type = excluded.asset_type,
			segment = excluded.segment,
			allocation_type = excluded.allocation_type,
			color = excluded.color,
			updated_at = CURRENT_TIMESTAMP
	`

	_, err := r.db.ExecContext(ctx, query,
		a.Ticker, a.Name, a.Quantity, a.TotalCost, a.AveragePrice, a.CurrentPrice,
		a.TotalValue, a.DailyChangePercent, a.LastDividendPerUnit,
		a.AssetType, a.Segment, a.AllocationType, a.Color,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert asset: %w", err)
	}
	return nil
}

// DeleteAsset removes the position for a ticker. Deleting a ticker with no
// position is a no-op; the reconciler calls this for any fully divested
// ticker without checking first.
func (r *AssetRepository) DeleteAsset(ctx context.Context, ticker string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM asset WHERE ticker = ?`, ticker); err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}
	return nil
}

// scanAsset scans one asset row through the provided scan function, so the
// same mapping serves both Query and QueryRow call sites.
func scanAsset(scan func(dest ...any) error) (model.Asset, error) {
	var a model.Asset
	var updatedAtStr string

	err := scan(
		&a.Ticker,
		&a.Name,
		&a.Quantity,
		&a.TotalCost,
		&a.AveragePrice,
		&a.CurrentPrice,
		&a.TotalValue,
		&a.DailyChangePercent,
		&a.LastDividendPerUnit,
		&a.AssetType,
		&a.Segment,
		&a.AllocationType,
		&a.Color,
		&updatedAtStr,
	)
	if err != nil {
		return model.Asset{}, err
	}

	if updated, parseErr := ParseTime(updatedAtStr); parseErr == nil {
		a.UpdatedAt = updated
	}

	return a, nil
}
