package model

import (
	"encoding/json"
	"time"
)

// LiveQuote is the per-ticker snapshot returned by the market-data provider.
type LiveQuote struct {
	Ticker            string            `json:"ticker"`
	Price             float64           `json:"price"`
	ChangePercent     float64           `json:"changePercent"`
	Volume            int64             `json:"volume"`
	PriceEarnings     float64           `json:"priceEarnings"`
	EarningsPerShare  float64           `json:"earningsPerShare"`
	DividendsPerShare []DividendPayment `json:"dividendsPerShare,omitempty"`
	ShortName         string            `json:"shortName,omitempty"`
}

// DividendPayment is one historical cash payment per unit.
type DividendPayment struct {
	Rate        float64 `json:"rate"`
	PaymentDate string  `json:"paymentDate"`
}

// LastDividendPerUnit returns the most recent per-unit payment, 0 when the
// provider returned no dividend history.
func (q LiveQuote) LastDividendPerUnit() float64 {
	if len(q.DividendsPerShare) == 0 {
		return 0
	}
	return q.DividendsPerShare[0].Rate
}

// PricePoint is one sample of a historical price series.
type PricePoint struct {
	Date  time.Time `json:"date"`
	Close float64   `json:"close"`
}

// CacheEntry is a persisted market-data cache record. Data holds the cached
// payload as JSON; Timestamp decides expiry against the per-kind TTL.
type CacheEntry struct {
	Key       string          `json:"key"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}
