package testutil

import (
	"fmt"
	"sync"
	"time"

	"github.com/investjournal/backend/internal/yahoo"
)

// MockQuoteClient is a mock implementation of yahoo.Client for testing.
// It returns predefined quotes instead of making actual API calls.
type MockQuoteClient struct {
	mu sync.Mutex

	// Prices maps symbol to the price to return. Symbols not in the map
	// produce an error, unless DefaultPrice is set.
	Prices map[string]float64
	// DefaultPrice is returned for symbols missing from Prices when non-zero.
	DefaultPrice float64
	// MockError, when set, is returned from every call.
	MockError error
	// QueryCount tracks how many upstream calls were made.
	QueryCount int
}

// NewMockQuoteClient creates a mock quote client with the given per-symbol prices.
//
// Example usage:
//
//	quotes := testutil.NewMockQuoteClient(map[string]float64{"AAPL": 120})
func NewMockQuoteClient(prices map[string]float64) *MockQuoteClient {
	if prices == nil {
		prices = map[string]float64{}
	}
	return &MockQuoteClient{Prices: prices}
}

// QuoteSymbol returns the configured quote for the symbol.
func (m *MockQuoteClient) QuoteSymbol(symbol string) (yahoo.Quote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.QueryCount++

	if m.MockError != nil {
		return yahoo.Quote{}, m.MockError
	}

	price, ok := m.Prices[symbol]
	if !ok {
		if m.DefaultPrice == 0 {
			return yahoo.Quote{}, fmt.Errorf("no mock price for symbol %s", symbol)
		}
		price = m.DefaultPrice
	}

	return yahoo.Quote{
		Symbol:   symbol,
		Name:     symbol,
		Currency: "USD",
		Price:    price,
		AsOf:     time.Now().UTC(),
	}, nil
}

// WithError configures the mock to return the specified error.
func (m *MockQuoteClient) WithError(err error) *MockQuoteClient {
	m.MockError = err
	return m
}

// SetPrice changes the price for one symbol.
func (m *MockQuoteClient) SetPrice(symbol string, price float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Prices[symbol] = price
}

// Calls returns how many upstream calls were made.
func (m *MockQuoteClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.QueryCount
}
