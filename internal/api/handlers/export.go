package handlers

import (
	"encoding/csv"
	"log"
	"net/http"
	"strconv"

	"github.com/investjournal/backend/internal/api/response"
	"github.com/investjournal/backend/internal/service"
)

// ExportHandler handles CSV export endpoints.
type ExportHandler struct {
	transactionService *service.TransactionService
	portfolioService   *service.PortfolioService
}

// NewExportHandler creates a new ExportHandler with the provided service dependencies.
func NewExportHandler(
	transactionService *service.TransactionService,
	portfolioService *service.PortfolioService,
) *ExportHandler {
	return &ExportHandler{
		transactionService: transactionService,
		portfolioService:   portfolioService,
	}
}

// Transactions handles GET requests to download the user's transactions as CSV.
//
// Endpoint: GET /api/export/transactions
// Response: 200 OK, text/csv attachment
// Error: 500 Internal Server Error if retrieval fails
func (h *ExportHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		response.RespondError(w, http.StatusUnauthorized, "not authenticated", "")
		return
	}

	transactions, err := h.transactionService.GetTransactions(user.ID, "")
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve transactions", err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="transactions.csv"`)

	writer := csv.NewWriter(w)
	records := [][]string{
		{"portfolio_id", "symbol", "security_name", "security_type", "action",
			"date", "quantity", "price", "transaction_price"},
	}
	for _, t := range transactions {
		records = append(records, []string{
			t.PortfolioID,
			t.Symbol,
			t.SecurityName,
			t.SecurityType,
			t.Action,
			t.Date.Format("2006-01-02"),
			strconv.FormatFloat(t.Quantity, 'f', -1, 64),
			strconv.FormatFloat(t.Price, 'f', -1, 64),
			strconv.FormatFloat(t.TransactionPrice, 'f', -1, 64),
		})
	}

	if err := writer.WriteAll(records); err != nil {
		log.Printf("failed to write transaction export: %v", err)
	}
}

// Portfolios handles GET requests to download the user's portfolios as CSV.
//
// Endpoint: GET /api/export/portfolios
// Response: 200 OK, text/csv attachment
// Error: 500 Internal Server Error if retrieval fails
func (h *ExportHandler) Portfolios(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		response.RespondError(w, http.StatusUnauthorized, "not authenticated", "")
		return
	}

	portfolios, err := h.portfolioService.GetPortfolios(user.ID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve portfolios", err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="portfolios.csv"`)

	writer := csv.NewWriter(w)
	records := [][]string{{"id", "name", "description", "created_at"}}
	for _, p := range portfolios {
		records = append(records, []string{
			p.ID,
			p.Name,
			p.Description,
			p.CreatedAt.Format("2006-01-02"),
		})
	}

	if err := writer.WriteAll(records); err != nil {
		log.Printf("failed to write portfolio export: %v", err)
	}
}
