package request

type CreateTransactionRequest struct {
	PortfolioID      string  `json:"portfolioId"`
	Symbol           string  `json:"symbol"`
	SecurityName     string  `json:"securityName"`
	SecurityType     string  `json:"securityType"`
	Action           string  `json:"action"`
	Date             string  `json:"date"`
	Quantity         float64 `json:"quantity"`
	Price            float64 `json:"price"`
	TransactionPrice float64 `json:"transactionPrice"`
}
