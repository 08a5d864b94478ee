// Package yahoo provides a client for the Yahoo Finance chart API, used as
// the market data source for current security prices.
package yahoo

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/investjournal/backend/internal/apperrors"
)

// Client is the interface for fetching market quotes. It exists so services
// can be tested against a mock without hitting the Yahoo API.
type Client interface {
	QuoteSymbol(symbol string) (Quote, error)
}

// FinanceClient fetches financial data from the Yahoo Finance chart API.
type FinanceClient struct {
	httpClient *http.Client
	baseURL    string
}

// NewFinanceClient creates a Yahoo Finance client with default HTTP settings.
func NewFinanceClient() *FinanceClient {
	return &FinanceClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    "https://query1.finance.yahoo.com",
	}
}

// NewFinanceClientWithBaseURL creates a client pointed at an alternate API
// endpoint. Used by tests to target an httptest server.
func NewFinanceClientWithBaseURL(baseURL string) *FinanceClient {
	return &FinanceClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
	}
}

// QuoteSymbol fetches the most recent available closing price for a symbol.
//
// It queries the last 5 trading days of daily data (range=5d) and takes the
// latest data point with a non-zero close, so weekends, holidays, and trailing
// null entries in the Yahoo response do not produce a zero price.
//
// Returns apperrors.ErrSymbolNotFound when the API answers with an empty
// result set, and a plain error if the HTTP request fails, the API reports an
// error, or no usable close price is present.
func (c *FinanceClient) QuoteSymbol(symbol string) (Quote, error) {
	url := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=5d", c.baseURL, symbol)

	response, err := c.queryYahoo(url)
	if err != nil {
		return Quote{}, err
	}
	if len(response.Chart.Result) == 0 {
		return Quote{}, fmt.Errorf("%w: %s", apperrors.ErrSymbolNotFound, symbol)
	}

	result := response.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return Quote{}, fmt.Errorf("no price data returned for symbol %s", symbol)
	}

	closes := result.Indicators.Quote[0].Close
	if len(closes) != len(result.Timestamp) {
		return Quote{}, fmt.Errorf("mismatched data lengths for symbol %s", symbol)
	}

	// Walk backwards to the latest non-zero close.
	for i := len(closes) - 1; i >= 0; i-- {
		if closes[i] > 0 {
			name := result.Meta.LongName
			if name == "" {
				name = result.Meta.Shortname
			}
			if name == "" {
				name = result.Meta.Symbol
			}
			return Quote{
				Symbol:   result.Meta.Symbol,
				Name:     name,
				Currency: result.Meta.Currency,
				Price:    closes[i],
				AsOf:     time.Unix(result.Timestamp[i], 0).UTC(),
			}, nil
		}
	}

	return Quote{}, fmt.Errorf("no close prices returned for symbol %s", symbol)
}

// queryYahoo executes an HTTP request against the Yahoo Finance API and
// parses the chart response. The User-Agent header mimics a browser because
// the API rejects requests without one.
func (c *FinanceClient) queryYahoo(url string) (Response, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return Response{}, err
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, err
	}

	var response Response
	if err := json.Unmarshal(data, &response); err != nil {
		return Response{}, err
	}

	if response.Chart.Error != nil {
		return response, fmt.Errorf("yahoo error: %s", *response.Chart.Error)
	}

	return response, nil
}
