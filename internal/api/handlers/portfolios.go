package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/investjournal/backend/internal/api/request"
	"github.com/investjournal/backend/internal/api/response"
	"github.com/investjournal/backend/internal/apperrors"
	"github.com/investjournal/backend/internal/service"
	"github.com/investjournal/backend/internal/validation"
)

// PortfolioHandler handles portfolio-related HTTP requests
type PortfolioHandler struct {
	portfolioService *service.PortfolioService
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(portfolioService *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
	}
}

// PortfolioResponse represents a portfolio in API responses
type PortfolioResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"createdAt"`
}

// Portfolios handles GET requests for the user's portfolios.
//
// Endpoint: GET /api/portfolio
// Response: 200 OK with array of PortfolioResponse
// Error: 500 Internal Server Error if retrieval fails
func (h *PortfolioHandler) Portfolios(w http.ResponseWriter, r *http.Request) {
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

	resp := make([]PortfolioResponse, len(portfolios))
	for i, p := range portfolios {
		resp[i] = PortfolioResponse{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			CreatedAt:   p.CreatedAt.Format("2006-01-02"),
		}
	}

	response.RespondJSON(w, http.StatusOK, resp)
}

// CreatePortfolio handles POST requests to create a portfolio.
//
// Endpoint: POST /api/portfolio
// Request Body: CreatePortfolioRequest (name, description)
// Response: 201 Created with PortfolioResponse
// Error: 400 Bad Request if validation fails
// Error: 500 Internal Server Error if creation fails
func (h *PortfolioHandler) CreatePortfolio(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		response.RespondError(w, http.StatusUnauthorized, "not authenticated", "")
		return
	}

	req, err := parseJSON[request.CreatePortfolioRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreatePortfolio(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	portfolio, err := h.portfolioService.CreatePortfolio(user.ID, req.Name, req.Description)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to create portfolio", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, PortfolioResponse{
		ID:          portfolio.ID,
		Name:        portfolio.Name,
		Description: portfolio.Description,
	})
}

// GetPortfolio handles GET requests for a single portfolio.
//
// Endpoint: GET /api/portfolio/{portfolioID}
// Response: 200 OK with PortfolioResponse
// Error: 404 Not Found if the portfolio does not exist or belongs to another user
// Error: 500 Internal Server Error if retrieval fails
func (h *PortfolioHandler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		response.RespondError(w, http.StatusUnauthorized, "not authenticated", "")
		return
	}

	portfolioID := chi.URLParam(r, "portfolioID")
	if err := validation.ValidateUUID(portfolioID); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid portfolio ID", err.Error())
		return
	}

	portfolio, err := h.portfolioService.GetPortfolio(user.ID, portfolioID)
	if err != nil {
		if errors.Is(err, apperrors.ErrPortfolioNotFound) {
			response.RespondError(w, http.StatusNotFound, "portfolio not found", "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve portfolio", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, PortfolioResponse{
		ID:          portfolio.ID,
		Name:        portfolio.Name,
		Description: portfolio.Description,
		CreatedAt:   portfolio.CreatedAt.Format("2006-01-02"),
	})
}

// PortfolioStats handles GET requests for one portfolio's statistics: holdings
// with market values, gains, and annualized returns, plus portfolio totals and
// the pooled portfolio return.
//
// Endpoint: GET /api/portfolio/{portfolioID}/stats
// Response: 200 OK with model.PortfolioStats
// Error: 404 Not Found if the portfolio does not exist or belongs to another user
// Error: 500 Internal Server Error if computation fails
func (h *PortfolioHandler) PortfolioStats(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		response.RespondError(w, http.StatusUnauthorized, "not authenticated", "")
		return
	}

	portfolioID := chi.URLParam(r, "portfolioID")
	if err := validation.ValidateUUID(portfolioID); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid portfolio ID", err.Error())
		return
	}

	stats, err := h.portfolioService.GetPortfolioStats(user.ID, portfolioID)
	if err != nil {
		if errors.Is(err, apperrors.ErrPortfolioNotFound) {
			response.RespondError(w, http.StatusNotFound, "portfolio not found", "")
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to compute portfolio stats", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, stats)
}

// OverallStats handles GET requests for statistics pooled across all of the
// user's portfolios.
//
// Endpoint: GET /api/portfolio/stats
// Response: 200 OK with model.PortfolioStats
// Error: 500 Internal Server Error if computation fails
func (h *PortfolioHandler) OverallStats(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		response.RespondError(w, http.StatusUnauthorized, "not authenticated", "")
		return
	}

	stats, err := h.portfolioService.GetPortfolioStats(user.ID, "")
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to compute overall stats", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, stats)
}

// Holdings handles GET requests for the user's per-symbol holdings across all
// portfolios, each with quantity, market value, gain, and annualized return.
//
// Endpoint: GET /api/holdings
// Response: 200 OK with array of model.HoldingSummary
// Error: 500 Internal Server Error if computation fails
func (h *PortfolioHandler) Holdings(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		response.RespondError(w, http.StatusUnauthorized, "not authenticated", "")
		return
	}

	stats, err := h.portfolioService.GetPortfolioStats(user.ID, "")
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to compute holdings", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, stats.Holdings)
}
