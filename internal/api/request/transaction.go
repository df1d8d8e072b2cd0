package request

// CreateTransactionRequest is the payload for creating a ledger entry.
// Date is the localized "DD Mon YYYY" display string the frontend renders.
type CreateTransactionRequest struct {
	Ticker   string  `json:"ticker"`
	Date     string  `json:"date"`
	Type     string  `json:"type"`
	Quantity float64 `json:"quantity"`
	Price    float64 `json:"price"`
}

// UpdateTransactionRequest is the payload for editing a ledger entry.
// All fields are optional; omitted fields keep their stored values.
type UpdateTransactionRequest struct {
	Ticker   *string  `json:"ticker,omitempty"`
	Date     *string  `json:"date,omitempty"`
	Type     *string  `json:"type,omitempty"`
	Quantity *float64 `json:"quantity,omitempty"`
	Price    *float64 `json:"price,omitempty"`
}
