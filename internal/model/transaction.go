package model

import "time"

// Security types distinguish whole-unit instruments from fractional ones.
// Stocks trade in whole units; mutual funds allow fractional units.
const (
	SecurityTypeStock      = "stock"
	SecurityTypeMutualFund = "mf"
)

// Transaction actions.
const (
	ActionBuy  = "buy"
	ActionSell = "sell"
)

// Transaction represents a buy or sell of a security within a portfolio.
// Price is the market price at the time the record was created; TransactionPrice
// is the price actually paid or received per unit and is what return calculations
// are based on.
type Transaction struct {
	ID               string    `json:"id"`
	UserID           string    `json:"userId"`
	PortfolioID      string    `json:"portfolioId"`
	Symbol           string    `json:"symbol"`
	SecurityName     string    `json:"securityName"`
	SecurityType     string    `json:"securityType"`
	Action           string    `json:"action"`
	Date             time.Time `json:"date"`
	Quantity         float64   `json:"quantity"`
	Price            float64   `json:"price"`
	TransactionPrice float64   `json:"transactionPrice"`
	CreatedAt        time.Time `json:"createdAt,omitempty"`
}
