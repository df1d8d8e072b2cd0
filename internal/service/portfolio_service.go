package service

import (
	"math"

	"github.com/carteira-app/carteira-backend/internal/model"
	"github.com/carteira-app/carteira-backend/internal/repository"
)

// RoundingPrecision rounds monetary aggregates to two decimal places.
const RoundingPrecision = 100.0

// PortfolioService derives summary analytics from the current position set.
// Everything here is pure computation over the assets: summaries are
// recomputed on every request and never cached, so they cannot desynchronize
// from the source of truth.
type PortfolioService struct {
	assetRepo *repository.AssetRepository
}

// NewPortfolioService creates a new PortfolioService with the provided repository dependency.
func NewPortfolioService(assetRepo *repository.AssetRepository) *PortfolioService {
	return &PortfolioService{assetRepo: assetRepo}
}

// GetSummary loads the current positions and summarizes them.
func (s *PortfolioService) GetSummary() (model.PortfolioSummary, error) {
	assets, err := s.assetRepo.GetAssets()
	if err != nil {
		return model.PortfolioSummary{}, err
	}
	return Summarize(assets), nil
}

// GetComposition loads the current positions and computes the breakdown for
// the requested grouping: "assetType", "segment" or "allocationType".
func (s *PortfolioService) GetComposition(groupBy string) ([]model.CompositionSlice, error) {
	assets, err := s.assetRepo.GetAssets()
	if err != nil {
		return nil, err
	}
	return Composition(assets, groupBy), nil
}

// Summarize computes the portfolio summary from a position set.
//
// All divisions are zero-guarded: an empty portfolio summarizes to zeros,
// never to an error or NaN. Daily change is the value-weighted average of
// per-position daily percentage change, so larger positions dominate.
func Summarize(assets []model.Asset) model.PortfolioSummary {
	var summary model.PortfolioSummary
	summary.AssetCount = len(assets)

	var weightedChange float64
	for _, a := range assets {
		summary.TotalBalance += a.TotalValue
		summary.TotalInvested += a.TotalCost
		summary.ProjectedAnnualIncome += a.LastDividendPerUnit * a.Quantity * 12
		weightedChange += a.DailyChangePercent * a.TotalValue
	}

	summary.CapitalGain = summary.TotalBalance - summary.TotalInvested

	if summary.TotalInvested > 0 {
		summary.YieldOnCost = summary.ProjectedAnnualIncome / summary.TotalInvested * 100
	}
	if summary.TotalBalance > 0 {
		summary.DailyChangePercent = weightedChange / summary.TotalBalance
	}
	summary.DailyChangeValue = summary.TotalBalance * summary.DailyChangePercent / 100

	summary.TotalBalance = round2(summary.TotalBalance)
	summary.TotalInvested = round2(summary.TotalInvested)
	summary.CapitalGain = round2(summary.CapitalGain)
	summary.ProjectedAnnualIncome = round2(summary.ProjectedAnnualIncome)
	summary.DailyChangeValue = round2(summary.DailyChangeValue)

	return summary
}

// Composition groups total value by the requested attribute and converts the
// groups into percentages of total balance. A zero-balance portfolio yields
// an empty breakdown.
func Composition(assets []model.Asset, groupBy string) []model.CompositionSlice {
	var totalBalance float64
	for _, a := range assets {
		totalBalance += a.TotalValue
	}
	if totalBalance <= 0 {
		return []model.CompositionSlice{}
	}

	groups := make(map[string]float64)
	order := []string{}
	for _, a := range assets {
		label := groupLabel(a, groupBy)
		if _, seen := groups[label]; !seen {
			order = append(order, label)
		}
		groups[label] += a.TotalValue
	}

	slices := make([]model.CompositionSlice, 0, len(order))
	for _, label := range order {
		value := groups[label]
		slices = append(slices, model.CompositionSlice{
			Label:   label,
			Value:   round2(value),
			Percent: round2(value / totalBalance * 100),
		})
	}
	return slices
}

func groupLabel(a model.Asset, groupBy string) string {
	switch groupBy {
	case "segment":
		return a.Segment
	case "allocationType":
		return a.AllocationType
	default:
		return a.AssetType
	}
}

func round2(v float64) float64 {
	return math.Round(v*RoundingPrecision) / RoundingPrecision
}
