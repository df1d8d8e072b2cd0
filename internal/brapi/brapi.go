package brapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/carteira-app/carteira-backend/internal/apperrors"
	"github.com/carteira-app/carteira-backend/internal/model"
)

const defaultBaseURL = "https://brapi.dev/api"

// Client provides methods for fetching quotes and price history from the
// brapi market-data API. It wraps an HTTP client and carries the bearer token
// resolved from configuration.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// NewClient creates a new brapi client with default HTTP settings.
// The token may be empty; requests made without a credential fail with
// apperrors.ErrUnauthorized, which callers treat as a configuration error.
func NewClient(token string) *Client {
	return &Client{
		httpClient: &http.Client{},
		baseURL:    defaultBaseURL,
		token:      token,
	}
}

// NewClientWithBaseURL creates a client pointed at a custom endpoint.
// Used by tests to target an httptest server.
func NewClientWithBaseURL(token, baseURL string) *Client {
	c := NewClient(token)
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

// HasToken reports whether the client carries a credential.
func (c *Client) HasToken() bool {
	return c.token != ""
}

// GetQuotes fetches the current quote snapshot for a batch of tickers.
// Tickers are joined into a single request; the provider returns one result
// per resolvable ticker, dividends included.
//
// Returns:
//   - apperrors.ErrUnauthorized when the credential is missing or rejected (401)
//   - apperrors.ErrRateLimited on HTTP 429
func (c *Client) GetQuotes(ctx context.Context, tickers []string) ([]model.LiveQuote, error) {
	if len(tickers) == 0 {
		return []model.LiveQuote{}, nil
	}
	if !c.HasToken() {
		return nil, apperrors.ErrUnauthorized
	}

	endpoint := fmt.Sprintf("%s/quote/%s?dividends=true&fundamental=true", c.baseURL, url.PathEscape(strings.Join(tickers, ",")))
	resp, err := c.query(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	quotes := make([]model.LiveQuote, 0, len(resp.Results))
	for _, r := range resp.Results {
		quotes = append(quotes, toLiveQuote(r))
	}
	return quotes, nil
}

// GetHistory fetches the historical price series for a single ticker.
// Range and interval use the provider's notation ("3mo", "1d", ...).
// Candles without a close price are skipped.
func (c *Client) GetHistory(ctx context.Context, ticker, rng, interval string) ([]model.PricePoint, error) {
	if !c.HasToken() {
		return nil, apperrors.ErrUnauthorized
	}

	endpoint := fmt.Sprintf("%s/quote/%s?range=%s&interval=%s", c.baseURL, url.PathEscape(ticker), url.QueryEscape(rng), url.QueryEscape(interval))
	resp, err := c.query(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	if len(resp.Results) == 0 {
		return nil, fmt.Errorf("no results returned for symbol %s", ticker)
	}

	candles := resp.Results[0].HistoricalDataPrice
	points := make([]model.PricePoint, 0, len(candles))
	for _, candle := range candles {
		if candle.Close == nil {
			continue
		}
		points = append(points, model.PricePoint{
			Date:  time.Unix(candle.Date, 0).UTC(),
			Close: *candle.Close,
		})
	}
	return points, nil
}

// query executes a GET against the brapi API, handling authentication,
// status mapping and JSON decoding.
func (c *Client) query(ctx context.Context, endpoint string) (Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Response{}, err
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return Response{}, apperrors.ErrUnauthorized
	case http.StatusTooManyRequests:
		return Response{}, apperrors.ErrRateLimited
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, err
	}

	var response Response
	if err := json.Unmarshal(data, &response); err != nil {
		return Response{}, err
	}

	if response.Error != nil {
		return response, fmt.Errorf("brapi error: %s", *response.Error)
	}

	return response, nil
}

// toLiveQuote flattens a provider result into the domain quote model.
func toLiveQuote(r Result) model.LiveQuote {
	quote := model.LiveQuote{
		Ticker:           r.Symbol,
		Price:            r.RegularMarketPrice,
		ChangePercent:    r.RegularMarketChangePercent,
		Volume:           r.RegularMarketVolume,
		PriceEarnings:    r.PriceEarnings,
		EarningsPerShare: r.EarningsPerShare,
		ShortName:        r.ShortName,
	}
	if r.DividendsData != nil {
		for _, d := range r.DividendsData.CashDividends {
			quote.DividendsPerShare = append(quote.DividendsPerShare, model.DividendPayment{
				Rate:        d.Rate,
				PaymentDate: d.PaymentDate,
			})
		}
	}
	return quote
}
