package model

import "time"

// Asset classification values used by the ticker-suffix heuristic.
const (
	AssetTypeStock = "stock"
	AssetTypeFII   = "fii"
)

// Asset is the reconciled current holding for one ticker: quantity, cost basis
// and live value, plus the descriptive fields the dashboard renders.
//
// Assets are derived state. They are never authored directly; every ledger
// mutation recomputes the affected ticker's asset from its full transaction
// history. Descriptive fields (Name, AssetType, Segment, AllocationType, Color)
// survive recomputation by being copied from the prior record.
type Asset struct {
	Ticker              string    `json:"ticker"`
	Name                string    `json:"name"`
	Quantity            float64   `json:"quantity"`
	TotalCost           float64   `json:"totalCost"`
	AveragePrice        float64   `json:"averagePrice"`
	CurrentPrice        float64   `json:"currentPrice"`
	TotalValue          float64   `json:"totalValue"`
	DailyChangePercent  float64   `json:"dailyChangePercent"`
	LastDividendPerUnit float64   `json:"lastDividendPerUnit"`
	AssetType           string    `json:"assetType"`
	Segment             string    `json:"segment"`
	AllocationType      string    `json:"allocationType"`
	Color               string    `json:"color"`
	UpdatedAt           time.Time `json:"updatedAt,omitempty"`
}
