package model

import "time"

// Transaction types accepted by the ledger.
const (
	TransactionBuy  = "buy"
	TransactionSell = "sell"
)

// Transaction represents a single buy or sell entry in the ledger.
//
// Date carries the localized display string the frontend writes ("02 jan 2025").
// It is parsed back into a chronological key only when a position is
// reconciled; see service.ParseDisplayDate.
type Transaction struct {
	ID        string    `json:"id"`
	Ticker    string    `json:"ticker"`
	Date      string    `json:"date"`
	Type      string    `json:"type"`
	Quantity  float64   `json:"quantity"`
	Price     float64   `json:"price"`
	Total     float64   `json:"total"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}
