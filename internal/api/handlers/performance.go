package handlers

import (
	"net/http"

	"github.com/investjournal/backend/internal/api/response"
	"github.com/investjournal/backend/internal/service"
)

// PerformanceHandler handles HTTP requests for the performance summary.
type PerformanceHandler struct {
	performanceService *service.PerformanceService
}

// NewPerformanceHandler creates a new PerformanceHandler with the provided service dependency.
func NewPerformanceHandler(performanceService *service.PerformanceService) *PerformanceHandler {
	return &PerformanceHandler{
		performanceService: performanceService,
	}
}

// Summary handles GET requests for the annualized return summary: one row per
// held security per portfolio, one pooled row per portfolio, and one pooled
// total. Rows whose return is undefined carry a null rate.
//
// Endpoint: GET /api/performance
// Response: 200 OK with array of model.PerformanceEntry
// Error: 500 Internal Server Error if computation fails
func (h *PerformanceHandler) Summary(w http.ResponseWriter, r *http.Request) {
	user, err := currentUser(r)
	if err != nil {
		response.RespondError(w, http.StatusUnauthorized, "not authenticated", "")
		return
	}

	entries, err := h.performanceService.GetPerformanceSummary(user.ID)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to compute performance summary", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, entries)
}
