package yahoo

import "time"

// Response represents the raw JSON response structure from the Yahoo Finance
// chart API. The structure includes:
//   - Chart.Result: Array of result objects (typically contains one element)
//   - Chart.Result[].Meta: Symbol metadata (name, currency, exchange)
//   - Chart.Result[].Timestamp: Unix timestamps for each data point
//   - Chart.Result[].Indicators: Price data arrays (open, close, high, low, volume)
//   - Chart.Error: Optional error message from the Yahoo API
type Response struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency         string `json:"currency"`
				Symbol           string `json:"symbol"`
				ExchangeName     string `json:"exchangeName"`
				FullExchangeName string `json:"fullExchangeName"`
				LongName         string `json:"longName"`
				Shortname        string `json:"shortName"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []float64 `json:"open"`
					Close  []float64 `json:"close"`
					Volume []int64   `json:"volume"`
					High   []float64 `json:"high"`
					Low    []float64 `json:"low"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *string `json:"error"`
	} `json:"chart"`
}

// Quote is the application's internal representation of a security's most
// recent market data: the latest available closing price with the metadata
// needed to label holdings.
type Quote struct {
	Symbol   string    `json:"symbol"`
	Name     string    `json:"name"`
	Currency string    `json:"currency"`
	Price    float64   `json:"price"`
	AsOf     time.Time `json:"asOf"`
}
