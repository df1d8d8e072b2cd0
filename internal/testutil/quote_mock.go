package testutil

import (
	"context"
	"time"

	"github.com/carteira-app/carteira-backend/internal/model"
)

// MockQuoteProvider is a mock implementation of service.QuoteProvider for
// testing. It returns predefined test data instead of making actual API calls.
type MockQuoteProvider struct {
	// MockQuotes is the batch returned from GetQuotes
	MockQuotes []model.LiveQuote
	// MockHistory is the series returned from GetHistory
	MockHistory []model.PricePoint
	// MockError is the error to return from query methods
	MockError error
	// QueryCount tracks how many times a query method was called
	QueryCount int
	// Token reports whether HasToken returns true
	Token bool
}

// NewMockQuoteProvider creates a new mock provider with default test data.
func NewMockQuoteProvider() *MockQuoteProvider {
	return &MockQuoteProvider{
		MockQuotes:  CreateMockQuotes("PETR4", "HGLG11"),
		MockHistory: CreateMockHistory(5),
		Token:       true,
	}
}

// GetQuotes mocks the batch quote query with predefined test data.
func (m *MockQuoteProvider) GetQuotes(_ context.Context, _ []string) ([]model.LiveQuote, error) {
	m.QueryCount++
	if m.MockError != nil {
		return nil, m.MockError
	}
	return m.MockQuotes, nil
}

// GetHistory mocks the history query with predefined test data.
func (m *MockQuoteProvider) GetHistory(_ context.Context, _, _, _ string) ([]model.PricePoint, error) {
	m.QueryCount++
	if m.MockError != nil {
		return nil, m.MockError
	}
	return m.MockHistory, nil
}

// HasToken reports the configured token state.
func (m *MockQuoteProvider) HasToken() bool {
	return m.Token
}

// WithError configures the mock to return the specified error.
func (m *MockQuoteProvider) WithError(err error) *MockQuoteProvider {
	m.MockError = err
	return m
}

// WithQuotes configures the mock to return the specified quote batch.
func (m *MockQuoteProvider) WithQuotes(quotes []model.LiveQuote) *MockQuoteProvider {
	m.MockQuotes = quotes
	return m
}

// WithoutToken configures the mock to report no credential.
func (m *MockQuoteProvider) WithoutToken() *MockQuoteProvider {
	m.Token = false
	return m
}

// CreateMockQuotes creates a quote batch with one entry per ticker.
// Prices step by 10 per ticker so assertions can tell them apart.
func CreateMockQuotes(tickers ...string) []model.LiveQuote {
	quotes := make([]model.LiveQuote, len(tickers))
	for i, ticker := range tickers {
		quotes[i] = model.LiveQuote{
			Ticker:        ticker,
			Price:         25.00 + float64(i)*10,
			ChangePercent: 1.5,
			Volume:        1_000_000,
			DividendsPerShare: []model.DividendPayment{
				{Rate: 0.85, PaymentDate: "2025-05-15"},
			},
		}
	}
	return quotes
}

// CreateMockHistory creates a daily price series of the given length with a
// gentle upward drift.
func CreateMockHistory(days int) []model.PricePoint {
	start := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	points := make([]model.PricePoint, days)
	for i := 0; i < days; i++ {
		points[i] = model.PricePoint{
			Date:  start.AddDate(0, 0, i),
			Close: 100.0 + float64(i)*0.5,
		}
	}
	return points
}
