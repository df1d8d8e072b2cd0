package brapi_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/carteira-app/carteira-backend/internal/apperrors"
	"github.com/carteira-app/carteira-backend/internal/brapi"
)

// newTestServer returns an httptest server that records the last request and
// responds with the given status and body.
func newTestServer(t *testing.T, status int, body string, lastReq **http.Request) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if lastReq != nil {
			*lastReq = r
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(server.Close)
	return server
}

// TestClient_GetQuotes tests quote parsing and the provider error mapping.
//
// WHY: The rest of the system keys its error handling on the sentinel errors
// this client returns. A 401 that surfaces as a generic error would make the
// cache layer serve stale data for a credential problem it should report.
func TestClient_GetQuotes(t *testing.T) {
	t.Run("parses a batch response with dividends", func(t *testing.T) {
		// Setup
		body := `{
			"results": [
				{
					"symbol": "PETR4",
					"shortName": "PETROBRAS PN",
					"regularMarketPrice": 38.52,
					"regularMarketChangePercent": 1.25,
					"regularMarketVolume": 52000000,
					"priceEarnings": 4.1,
					"earningsPerShare": 9.4,
					"dividendsData": {
						"cashDividends": [
							{"rate": 1.12, "paymentDate": "2025-05-20", "label": "DIVIDENDO"},
							{"rate": 0.95, "paymentDate": "2025-02-18", "label": "JCP"}
						]
					}
				},
				{
					"symbol": "HGLG11",
					"shortName": "CSHG LOG FII",
					"regularMarketPrice": 161.30,
					"regularMarketChangePercent": -0.4
				}
			]
		}`
		var lastReq *http.Request
		server := newTestServer(t, http.StatusOK, body, &lastReq)
		client := brapi.NewClientWithBaseURL("test-token", server.URL)

		// Execute
		quotes, err := client.GetQuotes(context.Background(), []string{"PETR4", "HGLG11"})

		// Assert
		if err != nil {
			t.Fatalf("GetQuotes() returned unexpected error: %v", err)
		}
		if len(quotes) != 2 {
			t.Fatalf("Expected 2 quotes, got %d", len(quotes))
		}

		petr := quotes[0]
		if petr.Ticker != "PETR4" || petr.Price != 38.52 || petr.ChangePercent != 1.25 {
			t.Errorf("Unexpected PETR4 quote: %+v", petr)
		}
		if len(petr.DividendsPerShare) != 2 {
			t.Fatalf("Expected 2 dividends, got %d", len(petr.DividendsPerShare))
		}
		if petr.DividendsPerShare[0].Rate != 1.12 || petr.DividendsPerShare[0].PaymentDate != "2025-05-20" {
			t.Errorf("Unexpected first dividend: %+v", petr.DividendsPerShare[0])
		}
		if len(quotes[1].DividendsPerShare) != 0 {
			t.Errorf("Expected no dividends for HGLG11, got %d", len(quotes[1].DividendsPerShare))
		}

		if got := lastReq.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("Expected bearer token header, got %q", got)
		}
	})

	t.Run("maps 401 to ErrUnauthorized", func(t *testing.T) {
		server := newTestServer(t, http.StatusUnauthorized, `{"error":"unauthorized"}`, nil)
		client := brapi.NewClientWithBaseURL("bad-token", server.URL)

		_, err := client.GetQuotes(context.Background(), []string{"PETR4"})
		if !errors.Is(err, apperrors.ErrUnauthorized) {
			t.Errorf("Expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("maps 403 to ErrUnauthorized", func(t *testing.T) {
		server := newTestServer(t, http.StatusForbidden, `{"error":"forbidden"}`, nil)
		client := brapi.NewClientWithBaseURL("bad-token", server.URL)

		_, err := client.GetQuotes(context.Background(), []string{"PETR4"})
		if !errors.Is(err, apperrors.ErrUnauthorized) {
			t.Errorf("Expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("maps 429 to ErrRateLimited", func(t *testing.T) {
		server := newTestServer(t, http.StatusTooManyRequests, `{"error":"too many requests"}`, nil)
		client := brapi.NewClientWithBaseURL("test-token", server.URL)

		_, err := client.GetQuotes(context.Background(), []string{"PETR4"})
		if !errors.Is(err, apperrors.ErrRateLimited) {
			t.Errorf("Expected ErrRateLimited, got %v", err)
		}
	})

	t.Run("missing token fails without a network call", func(t *testing.T) {
		called := false
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))
		t.Cleanup(server.Close)
		client := brapi.NewClientWithBaseURL("", server.URL)

		_, err := client.GetQuotes(context.Background(), []string{"PETR4"})
		if !errors.Is(err, apperrors.ErrUnauthorized) {
			t.Errorf("Expected ErrUnauthorized, got %v", err)
		}
		if called {
			t.Error("Expected no request to reach the server without a token")
		}
	})

	t.Run("empty ticker list returns without a request", func(t *testing.T) {
		called := false
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))
		t.Cleanup(server.Close)
		client := brapi.NewClientWithBaseURL("test-token", server.URL)

		quotes, err := client.GetQuotes(context.Background(), nil)
		if err != nil {
			t.Fatalf("GetQuotes() returned unexpected error: %v", err)
		}
		if len(quotes) != 0 {
			t.Errorf("Expected empty quote list, got %d", len(quotes))
		}
		if called {
			t.Error("Expected no request for an empty batch")
		}
	})

	t.Run("surfaces the provider error message", func(t *testing.T) {
		server := newTestServer(t, http.StatusOK, `{"results":[],"error":"ticker not found"}`, nil)
		client := brapi.NewClientWithBaseURL("test-token", server.URL)

		_, err := client.GetQuotes(context.Background(), []string{"NOPE99"})
		if err == nil {
			t.Fatal("Expected error for a provider-reported failure")
		}
	})
}

// TestClient_GetHistory tests candle parsing for the history endpoint.
func TestClient_GetHistory(t *testing.T) {
	t.Run("converts candles and skips incomplete ones", func(t *testing.T) {
		// Setup: the middle candle has no close price and must be dropped.
		body := `{
			"results": [
				{
					"symbol": "PETR4",
					"historicalDataPrice": [
						{"date": 1735776000, "close": 37.10},
						{"date": 1735862400},
						{"date": 1735948800, "close": 38.52}
					]
				}
			]
		}`
		var lastReq *http.Request
		server := newTestServer(t, http.StatusOK, body, &lastReq)
		client := brapi.NewClientWithBaseURL("test-token", server.URL)

		// Execute
		points, err := client.GetHistory(context.Background(), "PETR4", "3mo", "1d")

		// Assert
		if err != nil {
			t.Fatalf("GetHistory() returned unexpected error: %v", err)
		}
		if len(points) != 2 {
			t.Fatalf("Expected 2 price points, got %d", len(points))
		}
		if points[0].Close != 37.10 || points[1].Close != 38.52 {
			t.Errorf("Unexpected closes: %v and %v", points[0].Close, points[1].Close)
		}
		expectedDate := time.Unix(1735776000, 0).UTC()
		if !points[0].Date.Equal(expectedDate) {
			t.Errorf("Expected date %v, got %v", expectedDate, points[0].Date)
		}

		query := lastReq.URL.Query()
		if query.Get("range") != "3mo" || query.Get("interval") != "1d" {
			t.Errorf("Unexpected query parameters: %v", query)
		}
	})

	t.Run("errors when the symbol resolves to no results", func(t *testing.T) {
		server := newTestServer(t, http.StatusOK, `{"results":[]}`, nil)
		client := brapi.NewClientWithBaseURL("test-token", server.URL)

		_, err := client.GetHistory(context.Background(), "NOPE99", "3mo", "1d")
		if err == nil {
			t.Fatal("Expected error for an unresolvable symbol")
		}
	})

	t.Run("missing token fails before the request", func(t *testing.T) {
		client := brapi.NewClientWithBaseURL("", "http://127.0.0.1:0")

		_, err := client.GetHistory(context.Background(), "PETR4", "3mo", "1d")
		if !errors.Is(err, apperrors.ErrUnauthorized) {
			t.Errorf("Expected ErrUnauthorized, got %v", err)
		}
	})
}
