package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/investjournal/backend/internal/api/request"
	"github.com/investjournal/backend/internal/api/response"
	"github.com/investjournal/backend/internal/apperrors"
	"github.com/investjournal/backend/internal/model"
	"github.com/investjournal/backend/internal/service"
	"github.com/investjournal/backend/internal/validation"
)

// TransactionHandler handles HTTP requests for transaction endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the transactionService.
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler with the provided service dependency.
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

// TransactionResponse represents a transaction in API responses
type TransactionResponse struct {
	ID               string  `json:"id"`
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

func toTransactionResponse(t model.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:               t.ID,
		PortfolioID:      t.PortfolioID,
		Symbol:           t.Symbol,
		SecurityName:     t.SecurityName,
		SecurityType:     t.SecurityType,
		Action:           t.Action,
		Date:             t.Date.Format("2006-01-02"),
		Quantity:         t.Quantity,
		Price:            t.Price,
		TransactionPrice: t.TransactionPrice,
	}
}

// Transactions handles GET requests for the user's transactions, sorted by
// date ascending. The optional portfolio_id query parameter restricts the
// result to one portfolio.
//
// Endpoint: GET /api/transaction?portfolio_id={uuid}
// Response: 200 OK with array of TransactionResponse
// Error: 400 Bad Request if portfolio_id is not a valid UUID
// Error: 404 Not Found if the portfolio does not exist or belongs to another user
// Error: 500 Internal Server Error if retrieval fails
func (h *TransactionHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		response.RespondError(w, http.StatusUnauthorized, "not authenticated", "")
		return
	}

	portfolioID := r.URL.Query().Get("portfolio_id")
	if portfolioID != "" {
		if err := validation.ValidateUUID(portfolioID); err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid portfolio ID", err.Error())
			return
		}
	}

	transactions, err := h.transactionService.GetTransactions(user.ID, portfolioID)
	if err != nil {
		if errors.Is(err, apperrors.ErrPortfolioNotFound) {
			response.RespondError(w, http.StatusNotFound, "portfolio not found", "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve transactions", err.Error())
		return
	}

	resp := make([]TransactionResponse, len(transactions))
	for i, t := range transactions {
		resp[i] = toTransactionResponse(t)
	}

	response.RespondJSON(w, http.StatusOK, resp)
}

// CreateTransaction handles POST requests to record a buy or sell.
// Sells that would take the position below zero at any point in the
// transaction history are rejected.
//
// Endpoint: POST /api/transaction
// Request Body: CreateTransactionRequest
// Response: 201 Created with TransactionResponse
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if the portfolio does not exist or belongs to another user
// Error: 409 Conflict if the sell exceeds the held quantity
// Error: 500 Internal Server Error if creation fails
func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		response.RespondError(w, http.StatusUnauthorized, "not authenticated", "")
		return
	}

	req, err := parseJSON[request.CreateTransactionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateTransaction(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	// Date format is validated above.
	date, _ := time.Parse("2006-01-02", req.Date)

	transaction, err := h.transactionService.CreateTransaction(user.ID, model.Transaction{
		PortfolioID:      req.PortfolioID,
		Symbol:           req.Symbol,
		SecurityName:     req.SecurityName,
		SecurityType:     req.SecurityType,
		Action:           req.Action,
		Date:             date,
		Quantity:         req.Quantity,
		Price:            req.Price,
		TransactionPrice: req.TransactionPrice,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrPortfolioNotFound) {
			response.RespondError(w, http.StatusNotFound, "portfolio not found", "")
			return
		}
		if errors.Is(err, apperrors.ErrInsufficientQuantity) {
			response.RespondError(w, http.StatusConflict, "sell exceeds held quantity", "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to create transaction", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, toTransactionResponse(transaction))
}
