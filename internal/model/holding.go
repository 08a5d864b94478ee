package model

// HoldingSummary represents the current state of one security within a portfolio.
// It is derived from the transaction history and current market price on every
// request; holdings are never persisted.
type HoldingSummary struct {
	Symbol          string   `json:"symbol"`
	SecurityName    string   `json:"securityName"`
	SecurityType    string   `json:"securityType"`
	Quantity        float64  `json:"quantity"`
	AveragePrice    float64  `json:"averagePrice"`
	CurrentPrice    float64  `json:"currentPrice"`
	TotalInvestment float64  `json:"totalInvestment"`
	CurrentValue    float64  `json:"currentValue"`
	GainLoss        float64  `json:"gainLoss"`
	GainLossPct     float64  `json:"gainLossPct"`
	XIRR            *float64 `json:"xirr"` // Fractional annual rate, nil when undefined
}

// Performance entry categories.
const (
	PerformanceCategorySecurity  = "security"
	PerformanceCategoryPortfolio = "portfolio"
	PerformanceCategoryTotal     = "total"
)

// PerformanceEntry is one row of the XIRR summary report: a single security,
// a single portfolio, or the pooled total across all of a user's portfolios.
type PerformanceEntry struct {
	Name     string   `json:"name"`
	Category string   `json:"category"`
	XIRR     *float64 `json:"xirr"`
}
