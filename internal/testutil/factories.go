package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/carteira-app/carteira-backend/internal/model"
)

// TransactionBuilder provides a fluent interface for creating test ledger entries.
//
// Example usage:
//
//	// Simple creation with defaults
//	tx := testutil.NewTransaction("PETR4").Build(t, db)
//
//	// Customized entry
//	tx := testutil.NewTransaction("HGLG11").
//	    Sell().
//	    WithDate("10 fev 2025").
//	    WithQuantity(5).
//	    WithPrice(160.50).
//	    Build(t, db)
type TransactionBuilder struct {
	ID        string
	Ticker    string
	Date      string
	Type      string
	Quantity  float64
	Price     float64
	CreatedAt time.Time
}

// NewTransaction creates a TransactionBuilder with sensible defaults.
func NewTransaction(ticker string) *TransactionBuilder {
	return &TransactionBuilder{
		ID:        MakeID(),
		Ticker:    ticker,
		Date:      "02 jan 2025",
		Type:      model.TransactionBuy,
		Quantity:  10,
		Price:     25.00,
		CreatedAt: time.Now().UTC(),
	}
}

// WithID sets a custom ID.
func (b *TransactionBuilder) WithID(id string) *TransactionBuilder {
	b.ID = id
	return b
}

// WithDate sets a custom display date.
func (b *TransactionBuilder) WithDate(date string) *TransactionBuilder {
	b.Date = date
	return b
}

// WithQuantity sets a custom quantity.
func (b *TransactionBuilder) WithQuantity(quantity float64) *TransactionBuilder {
	b.Quantity = quantity
	return b
}

// WithPrice sets a custom unit price.
func (b *TransactionBuilder) WithPrice(price float64) *TransactionBuilder {
	b.Price = price
	return b
}

// WithCreatedAt sets a custom insertion timestamp.
func (b *TransactionBuilder) WithCreatedAt(createdAt time.Time) *TransactionBuilder {
	b.CreatedAt = createdAt
	return b
}

// Sell marks the entry as a sale.
func (b *TransactionBuilder) Sell() *TransactionBuilder {
	b.Type = model.TransactionSell
	return b
}

// Build creates the ledger entry in the database and returns it.
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()

	query := `
		INSERT INTO "transaction" (id, ticker, date, type, quantity, price, total, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	total := b.Quantity * b.Price
	_, err := db.Exec(query, b.ID, b.Ticker, b.Date, b.Type, b.Quantity, b.Price, total,
		b.CreatedAt.Format("2006-01-02 15:04:05"))
	if err != nil {
		t.Fatalf("Failed to create test transaction: %v", err)
	}

	return model.Transaction{
		ID:        b.ID,
		Ticker:    b.Ticker,
		Date:      b.Date,
		Type:      b.Type,
		Quantity:  b.Quantity,
		Price:     b.Price,
		Total:     total,
		CreatedAt: b.CreatedAt,
	}
}

// AssetBuilder provides a fluent interface for creating test positions.
//
// Example usage:
//
//	asset := testutil.NewAsset("PETR4").
//	    WithQuantity(100).
//	    WithTotalCost(2500).
//	    WithCurrentPrice(27.50).
//	    Build(t, db)
type AssetBuilder struct {
	Ticker              string
	Name                string
	Quantity            float64
	TotalCost           float64
	CurrentPrice        float64
	DailyChangePercent  float64
	LastDividendPerUnit float64
	AssetType           string
	Segment             string
	AllocationType      string
	Color               string
}

// NewAsset creates an AssetBuilder with sensible defaults.
func NewAsset(ticker string) *AssetBuilder {
	return &AssetBuilder{
		Ticker:         ticker,
		Name:           ticker,
		Quantity:       10,
		TotalCost:      250,
		CurrentPrice:   25.00,
		AssetType:      model.AssetTypeStock,
		Segment:        "Ações",
		AllocationType: "renda variável",
		Color:          "#4E79A7",
	}
}

// WithName sets a custom display name.
func (b *AssetBuilder) WithName(name string) *AssetBuilder {
	b.Name = name
	return b
}

// WithQuantity sets a custom held quantity.
func (b *AssetBuilder) WithQuantity(quantity float64) *AssetBuilder {
	b.Quantity = quantity
	return b
}

// WithTotalCost sets a custom cost basis.
func (b *AssetBuilder) WithTotalCost(totalCost float64) *AssetBuilder {
	b.TotalCost = totalCost
	return b
}

// WithCurrentPrice sets a custom live price.
func (b *AssetBuilder) WithCurrentPrice(price float64) *AssetBuilder {
	b.CurrentPrice = price
	return b
}

// WithDailyChangePercent sets a custom daily change.
func (b *AssetBuilder) WithDailyChangePercent(change float64) *AssetBuilder {
	b.DailyChangePercent = change
	return b
}

// WithLastDividendPerUnit sets a custom last dividend rate.
func (b *AssetBuilder) WithLastDividendPerUnit(rate float64) *AssetBuilder {
	b.LastDividendPerUnit = rate
	return b
}

// WithSegment sets a custom segment label.
func (b *AssetBuilder) WithSegment(segment string) *AssetBuilder {
	b.Segment = segment
	return b
}

// WithAllocationType sets a custom allocation label.
func (b *AssetBuilder) WithAllocationType(allocation string) *AssetBuilder {
	b.AllocationType = allocation
	return b
}

// AsFII classifies the position as a real-estate fund.
func (b *AssetBuilder) AsFII() *AssetBuilder {
	b.AssetType = model.AssetTypeFII
	b.Segment = "Fundos Imobiliários"
	b.AllocationType = "renda passiva"
	return b
}

// Build creates the position in the database and returns it.
// Average price and total value are derived from the builder fields the same
// way the reconciler derives them.
func (b *AssetBuilder) Build(t *testing.T, db *sql.DB) model.Asset {
	t.Helper()

	averagePrice := 0.0
	if b.Quantity > 0 {
		averagePrice = b.TotalCost / b.Quantity
	}
	totalValue := b.Quantity * b.CurrentPrice

	query := `
		INSERT INTO asset (ticker, name, quantity, total_cost, average_price, current_price,
			total_value, daily_change_percent, last_dividend_per_unit,
			asset_type, segment, allocation_type, color, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	`

	_, err := db.Exec(query, b.Ticker, b.Name, b.Quantity, b.TotalCost, averagePrice,
		b.CurrentPrice, totalValue, b.DailyChangePercent, b.LastDividendPerUnit,
		b.AssetType, b.Segment, b.AllocationType, b.Color)
	if err != nil {
		t.Fatalf("Failed to create test asset: %v", err)
	}

	return model.Asset{
		Ticker:              b.Ticker,
		Name:                b.Name,
		Quantity:            b.Quantity,
		TotalCost:           b.TotalCost,
		AveragePrice:        averagePrice,
		CurrentPrice:        b.CurrentPrice,
		TotalValue:          totalValue,
		DailyChangePercent:  b.DailyChangePercent,
		LastDividendPerUnit: b.LastDividendPerUnit,
		AssetType:           b.AssetType,
		Segment:             b.Segment,
		AllocationType:      b.AllocationType,
		Color:               b.Color,
	}
}
