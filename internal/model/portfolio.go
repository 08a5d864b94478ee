package model

import "time"

// Portfolio represents a portfolio from the database.
// Portfolios are always scoped to a single user; queries filter on UserID.
type Portfolio struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// PortfolioStats represents the current state of a portfolio (or of all portfolios
// pooled together when PortfolioID is empty). It is a derived, transient view built
// fresh on every report request and never persisted.
//
// XIRR is nil when the annualized return is undefined for the underlying cash flows
// (too few flows, all same sign, or no convergence). The presentation layer renders
// nil as "n/a" rather than treating it as an error.
type PortfolioStats struct {
	PortfolioID     string           `json:"portfolioId,omitempty"`
	TotalInvestment float64          `json:"totalInvestment"` // Cost basis of open positions
	CurrentValue    float64          `json:"currentValue"`    // Mark-to-market value of open positions
	TotalGainLoss   float64          `json:"totalGainLoss"`
	GainLossPct     float64          `json:"gainLossPct"`
	XIRR            *float64         `json:"xirr"` // Fractional annual rate, nil when undefined
	Holdings        []HoldingSummary `json:"holdings"`
}
