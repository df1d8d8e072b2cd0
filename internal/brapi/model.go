package brapi

// Response is the top-level payload returned by the brapi quote endpoint.
// A single endpoint serves both batch quotes and per-ticker history; history
// requests simply add range/interval parameters.
type Response struct {
	Results []Result `json:"results"`
	Error   *string  `json:"error,omitempty"`
	Message string   `json:"message,omitempty"`
}

// Result carries one ticker's quote snapshot plus optional history and
// dividend data.
type Result struct {
	Symbol                     string                `json:"symbol"`
	ShortName                  string                `json:"shortName"`
	LongName                   string                `json:"longName"`
	Currency                   string                `json:"currency"`
	RegularMarketPrice         float64               `json:"regularMarketPrice"`
	RegularMarketChangePercent float64               `json:"regularMarketChangePercent"`
	RegularMarketVolume        int64                 `json:"regularMarketVolume"`
	PriceEarnings              float64               `json:"priceEarnings"`
	EarningsPerShare           float64               `json:"earningsPerShare"`
	HistoricalDataPrice        []HistoricalDataPrice `json:"historicalDataPrice,omitempty"`
	DividendsData              *DividendsData        `json:"dividendsData,omitempty"`
}

// HistoricalDataPrice is one candle of the historical series. Date is a Unix
// timestamp in seconds.
type HistoricalDataPrice struct {
	Date   int64    `json:"date"`
	Open   *float64 `json:"open"`
	High   *float64 `json:"high"`
	Low    *float64 `json:"low"`
	Close  *float64 `json:"close"`
	Volume *int64   `json:"volume"`
}

// DividendsData wraps the cash dividend history for a ticker.
type DividendsData struct {
	CashDividends []CashDividend `json:"cashDividends"`
}

// CashDividend is one per-unit cash payment, most recent first.
type CashDividend struct {
	Rate        float64 `json:"rate"`
	PaymentDate string  `json:"paymentDate"`
	Label       string  `json:"label,omitempty"`
}
