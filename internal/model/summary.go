package model

// PortfolioSummary is the derived aggregate over the current asset set.
// It has no lifecycle of its own and is recomputed on every request.
type PortfolioSummary struct {
	TotalBalance          float64 `json:"totalBalance"`
	TotalInvested         float64 `json:"totalInvested"`
	CapitalGain           float64 `json:"capitalGain"`
	ProjectedAnnualIncome float64 `json:"projectedAnnualIncome"`
	YieldOnCost           float64 `json:"yieldOnCost"`
	DailyChangePercent    float64 `json:"dailyChangePercent"`
	DailyChangeValue      float64 `json:"dailyChangeValue"`
	AssetCount            int     `json:"assetCount"`
}

// CompositionSlice is one group of the portfolio breakdown (by asset type,
// segment or allocation class) expressed as a share of total balance.
type CompositionSlice struct {
	Label   string  `json:"label"`
	Value   float64 `json:"value"`
	Percent float64 `json:"percent"`
}
