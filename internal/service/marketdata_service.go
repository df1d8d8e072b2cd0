package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/carteira-app/carteira-backend/internal/apperrors"
	"github.com/carteira-app/carteira-backend/internal/model"
	"github.com/carteira-app/carteira-backend/internal/repository"
)

// Cache TTLs. Quotes go stale quickly; historical series barely move.
const (
	quoteTTL   = 15 * time.Minute
	historyTTL = 24 * time.Hour
)

// QuoteProvider is the market-data API surface the service depends on.
// brapi.Client is the production implementation; tests inject a mock.
type QuoteProvider interface {
	GetQuotes(ctx context.Context, tickers []string) ([]model.LiveQuote, error)
	GetHistory(ctx context.Context, ticker, rng, interval string) ([]model.PricePoint, error)
	HasToken() bool
}

// MarketDataService wraps the quote provider with the durable TTL cache, the
// global refresh throttle and the stale-if-error fallback policy.
//
// Error policy, in order of precedence:
//   - missing/invalid credential: empty result, no cache fallback (config
//     error, retrying won't help)
//   - rate limit or transport failure: last cached value for the key, even
//     expired; empty result when no cache exists
type MarketDataService struct {
	provider   QuoteProvider
	cacheRepo  *repository.CacheRepository
	assetRepo  *repository.AssetRepository
	controller *RefreshController
	now        func() time.Time
}

// NewMarketDataService creates a new MarketDataService with the provided dependencies.
func NewMarketDataService(
	provider QuoteProvider,
	cacheRepo *repository.CacheRepository,
	assetRepo *repository.AssetRepository,
	controller *RefreshController,
) *MarketDataService {
	return &MarketDataService{
		provider:   provider,
		cacheRepo:  cacheRepo,
		assetRepo:  assetRepo,
		controller: controller,
		now:        time.Now,
	}
}

// NewMarketDataServiceWithClock creates a service with an injected clock so
// tests can step through TTL windows deterministically.
func NewMarketDataServiceWithClock(
	provider QuoteProvider,
	cacheRepo *repository.CacheRepository,
	assetRepo *repository.AssetRepository,
	controller *RefreshController,
	now func() time.Time,
) *MarketDataService {
	s := NewMarketDataService(provider, cacheRepo, assetRepo, controller)
	s.now = now
	return s
}

// quoteCacheKey builds the cache key for a batch of tickers. The list is
// sorted so the same set always maps to the same entry, whatever order the
// caller passed.
func quoteCacheKey(tickers []string) string {
	sorted := append([]string(nil), tickers...)
	sort.Strings(sorted)
	return "quotes:" + strings.Join(sorted, ",")
}

func historyCacheKey(ticker, rng, interval string) string {
	return fmt.Sprintf("history:%s:%s:%s", ticker, rng, interval)
}

// FetchQuotes returns current quotes for the tickers, from cache when fresh.
//
// force bypasses both the TTL check and the 30s throttle, but never the
// in-flight guard. FetchQuotes never returns a transport error to the
// caller; every failure degrades to cached or empty data.
func (s *MarketDataService) FetchQuotes(ctx context.Context, tickers []string, force bool) ([]model.LiveQuote, error) {
	if len(tickers) == 0 {
		return []model.LiveQuote{}, nil
	}

	key := quoteCacheKey(tickers)

	if !force {
		if quotes, ok := s.cachedQuotes(key, quoteTTL); ok {
			return quotes, nil
		}
	}

	if !s.controller.TryBegin(force) {
		// Throttled or already refreshing: expired cache beats nothing.
		if quotes, ok := s.cachedQuotes(key, 0); ok {
			return quotes, nil
		}
		return []model.LiveQuote{}, nil
	}

	quotes, err := s.provider.GetQuotes(ctx, tickers)
	s.controller.End(err == nil)
	if err != nil {
		return s.quotesFallback(key, err)
	}

	s.store(ctx, key, quotes)
	return quotes, nil
}

// FetchHistory returns the historical price series for a ticker, from cache
// when fresh. History is not subject to the refresh throttle; its 24h TTL
// already keeps network traffic negligible.
func (s *MarketDataService) FetchHistory(ctx context.Context, ticker, rng, interval string, force bool) ([]model.PricePoint, error) {
	key := historyCacheKey(ticker, rng, interval)

	if !force {
		if points, ok := s.cachedHistory(key, historyTTL); ok {
			return points, nil
		}
	}

	points, err := s.provider.GetHistory(ctx, ticker, rng, interval)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			log.Printf("market data credential missing or rejected; returning empty history")
			return []model.PricePoint{}, nil
		}
		if points, ok := s.cachedHistory(key, 0); ok {
			log.Printf("history fetch for %s failed (%v); serving stale cache", ticker, err)
			return points, nil
		}
		return []model.PricePoint{}, nil
	}

	s.store(ctx, key, points)
	return points, nil
}

// WarmHistory pre-fetches the history series for several tickers
// concurrently. Used at startup and after imports so the dashboard's charts
// open warm.
func (s *MarketDataService) WarmHistory(ctx context.Context, tickers []string, rng, interval string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for _, ticker := range tickers {
		g.Go(func() error {
			_, err := s.FetchHistory(ctx, ticker, rng, interval, false)
			return err
		})
	}

	return g.Wait()
}

// RefreshPositions fetches quotes for every held ticker and applies them to
// the stored positions: current price, daily change, last dividend and the
// derived total value. Returns the number of positions updated.
func (s *MarketDataService) RefreshPositions(ctx context.Context, force bool) (int, error) {
	assets, err := s.assetRepo.GetAssets()
	if err != nil {
		return 0, err
	}
	if len(assets) == 0 {
		return 0, nil
	}

	tickers := make([]string, len(assets))
	for i, a := range assets {
		tickers[i] = a.Ticker
	}

	quotes, err := s.FetchQuotes(ctx, tickers, force)
	if err != nil {
		return 0, err
	}

	byTicker := make(map[string]model.LiveQuote, len(quotes))
	for _, q := range quotes {
		byTicker[q.Ticker] = q
	}

	updated := 0
	for _, asset := range assets {
		quote, ok := byTicker[asset.Ticker]
		if !ok || quote.Price <= 0 {
			continue
		}

		asset.CurrentPrice = quote.Price
		asset.DailyChangePercent = quote.ChangePercent
		asset.LastDividendPerUnit = quote.LastDividendPerUnit()
		asset.TotalValue = asset.Quantity * asset.CurrentPrice

		if err := s.assetRepo.UpsertAsset(ctx, asset); err != nil {
			return updated, err
		}
		updated++
	}

	return updated, nil
}

// PurgeExpired drops cache entries old enough to be useless even as a
// stale-if-error fallback (past twice the history TTL).
func (s *MarketDataService) PurgeExpired(ctx context.Context) {
	if _, err := s.cacheRepo.Purge(ctx, s.now().Add(-2*historyTTL)); err != nil {
		log.Printf("cache purge failed: %v", err)
	}
}

// cachedQuotes returns the cached quote batch for key when present and
// younger than maxAge. maxAge 0 disables the age check (stale fallback).
func (s *MarketDataService) cachedQuotes(key string, maxAge time.Duration) ([]model.LiveQuote, bool) {
	entry, err := s.cacheRepo.Get(key)
	if err != nil {
		return nil, false
	}
	if maxAge > 0 && s.now().Sub(entry.Timestamp) > maxAge {
		return nil, false
	}

	var quotes []model.LiveQuote
	if err := json.Unmarshal(entry.Data, &quotes); err != nil {
		return nil, false
	}
	return quotes, true
}

func (s *MarketDataService) cachedHistory(key string, maxAge time.Duration) ([]model.PricePoint, bool) {
	entry, err := s.cacheRepo.Get(key)
	if err != nil {
		return nil, false
	}
	if maxAge > 0 && s.now().Sub(entry.Timestamp) > maxAge {
		return nil, false
	}

	var points []model.PricePoint
	if err := json.Unmarshal(entry.Data, &points); err != nil {
		return nil, false
	}
	return points, true
}

// quotesFallback implements the error policy for quote fetches.
func (s *MarketDataService) quotesFallback(key string, cause error) ([]model.LiveQuote, error) {
	if errors.Is(cause, apperrors.ErrUnauthorized) {
		log.Printf("market data credential missing or rejected; returning empty quotes")
		return []model.LiveQuote{}, nil
	}

	if quotes, ok := s.cachedQuotes(key, 0); ok {
		log.Printf("quote fetch failed (%v); serving stale cache", cause)
		return quotes, nil
	}

	log.Printf("quote fetch failed with no cache to fall back on: %v", cause)
	return []model.LiveQuote{}, nil
}

// store serializes and persists a cache payload. Cache writes are best
// effort; a failed write only costs a future network call.
func (s *MarketDataService) store(ctx context.Context, key string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("failed to marshal cache payload for %s: %v", key, err)
		return
	}
	if err := s.cacheRepo.Put(ctx, key, data, s.now()); err != nil {
		log.Printf("failed to store cache entry %s: %v", key, err)
	}
}
