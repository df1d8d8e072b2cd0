package service

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"sort"

	"github.com/carteira-app/carteira-backend/internal/model"
	"github.com/carteira-app/carteira-backend/internal/repository"
)

const (
	// positionEpsilon is the residual quantity below which a position counts
	// as fully divested and is removed.
	positionEpsilon = 1e-4

	// quantityPrecision absorbs floating-point drift when accumulating
	// fractional quantities (8 decimal places).
	quantityPrecision = 1e8
)

// assetPalette is the fixed set of colors assigned to brand-new tickers.
// The pick is stable per ticker so recomputation never reshuffles the charts.
var assetPalette = []string{
	"#4E79A7", "#F28E2B", "#E15759", "#76B7B2", "#59A14F",
	"#EDC948", "#B07AA1", "#FF9DA7", "#9C755F", "#BAB0AC",
}

// ReconcileService recomputes positions from the transaction ledger.
//
// Reconciliation is always from scratch: every ledger mutation rebuilds the
// affected ticker's position from its complete transaction history. This is a
// deliberate correctness tradeoff; incremental patching of quantity and cost
// basis is where drift bugs live.
type ReconcileService struct {
	transactionRepo *repository.TransactionRepository
	assetRepo       *repository.AssetRepository
}

// NewReconcileService creates a new ReconcileService with the provided repository dependencies.
func NewReconcileService(
	transactionRepo *repository.TransactionRepository,
	assetRepo *repository.AssetRepository,
) *ReconcileService {
	return &ReconcileService{
		transactionRepo: transactionRepo,
		assetRepo:       assetRepo,
	}
}

// Reconcile recomputes one ticker's position from the given transaction list
// and prior position snapshot, returning the updated position set.
//
// The prior snapshot is used only to preserve descriptive metadata and as a
// live-price fallback. Transactions for other tickers are ignored. The
// returned map omits the ticker entirely when it reconciles to (near) zero
// quantity.
//
// Reconcile never fails: malformed dates sort as earliest, over-sized sells
// clamp to the held quantity, and divide-by-zero cases resolve to 0.
func (s *ReconcileService) Reconcile(ticker string, transactions []model.Transaction, prior map[string]model.Asset) map[string]model.Asset {
	next := make(map[string]model.Asset, len(prior))
	for k, v := range prior {
		next[k] = v
	}

	history := make([]model.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if t.Ticker == ticker {
			history = append(history, t)
		}
	}

	sort.SliceStable(history, func(i, j int) bool {
		return ParseDisplayDate(history[i].Date).Before(ParseDisplayDate(history[j].Date))
	})

	var quantity, totalCost float64
	for _, t := range history {
		switch t.Type {
		case model.TransactionSell:
			avgPrice := 0.0
			if quantity > 0 {
				avgPrice = totalCost / quantity
			}
			sold := math.Min(quantity, t.Quantity)
			quantity -= sold
			totalCost -= sold * avgPrice
		default:
			quantity += t.Quantity
			totalCost += t.Total
		}
	}

	if quantity <= positionEpsilon {
		delete(next, ticker)
		return next
	}

	quantity = math.Round(quantity*quantityPrecision) / quantityPrecision
	totalCost = math.Max(0, totalCost)

	averagePrice := 0.0
	if quantity > 0 {
		averagePrice = totalCost / quantity
	}

	asset, existed := prior[ticker]
	if !existed {
		asset = newDefaultAsset(ticker)
	}

	asset.Ticker = ticker
	asset.Quantity = quantity
	asset.TotalCost = totalCost
	asset.AveragePrice = averagePrice

	if !existed || asset.CurrentPrice == 0 {
		// No live price yet: the most recent transaction's price stands in
		// until the next quote refresh.
		asset.CurrentPrice = history[len(history)-1].Price
	}
	asset.TotalValue = quantity * asset.CurrentPrice

	next[ticker] = asset
	return next
}

// RebuildPosition loads the ticker's full history and prior position from
// storage, reconciles, and persists the outcome (upsert or removal).
func (s *ReconcileService) RebuildPosition(ctx context.Context, ticker string) error {
	transactions, err := s.transactionRepo.GetTransactionsByTicker(ticker)
	if err != nil {
		return fmt.Errorf("failed to load ledger for %s: %w", ticker, err)
	}

	prior := map[string]model.Asset{}
	if asset, err := s.assetRepo.GetAsset(ticker); err == nil {
		prior[ticker] = asset
	}

	next := s.Reconcile(ticker, transactions, prior)

	asset, exists := next[ticker]
	if !exists {
		return s.assetRepo.DeleteAsset(ctx, ticker)
	}
	return s.assetRepo.UpsertAsset(ctx, asset)
}

// newDefaultAsset synthesizes the descriptive fields for a brand-new ticker:
// a short name from the ticker prefix, a classification from the suffix
// heuristic and a palette color picked by ticker hash.
func newDefaultAsset(ticker string) model.Asset {
	name := ticker
	if len(name) > 4 {
		name = name[:4]
	}

	assetType := model.AssetTypeStock
	for _, suffix := range []string{"11", "12", "13"} {
		if len(ticker) > len(suffix) && ticker[len(ticker)-len(suffix):] == suffix {
			assetType = model.AssetTypeFII
			break
		}
	}

	segment := "Ações"
	allocation := "renda variável"
	if assetType == model.AssetTypeFII {
		segment = "Fundos Imobiliários"
		allocation = "renda passiva"
	}

	return model.Asset{
		Ticker:         ticker,
		Name:           name,
		AssetType:      assetType,
		Segment:        segment,
		AllocationType: allocation,
		Color:          pickColor(ticker),
	}
}

// pickColor returns a stable palette color for a ticker.
func pickColor(ticker string) string {
	h := fnv.New32a()
	h.Write([]byte(ticker))
	return assetPalette[h.Sum32()%uint32(len(assetPalette))]
}
