package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/investjournal/backend/internal/api/request"
	"github.com/investjournal/backend/internal/model"
	"github.com/investjournal/backend/internal/testutil"
)

func setupPortfolioHandler(t *testing.T, prices map[string]float64) (*PortfolioHandler, *sql.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestPortfolioService(t, db, testutil.NewMockQuoteClient(prices))
	return NewPortfolioHandler(svc), db
}

// TestPortfolioHandler_CreateAndList tests portfolio creation and listing.
func TestPortfolioHandler_CreateAndList(t *testing.T) {
	t.Run("creates a portfolio", func(t *testing.T) {
		handler, db := setupPortfolioHandler(t, nil)
		user := testutil.CreateUser(t, db)

		req := testutil.AsUser(testutil.NewJSONRequest(t, http.MethodPost, "/api/portfolio", request.CreatePortfolioRequest{
			Name:        "Growth",
			Description: "Long-term holdings",
		}), user)
		w := httptest.NewRecorder()
		handler.CreatePortfolio(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var resp PortfolioResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if resp.Name != "Growth" || resp.ID == "" {
			t.Errorf("Unexpected response: %+v", resp)
		}
	})

	t.Run("rejects a nameless portfolio", func(t *testing.T) {
		handler, db := setupPortfolioHandler(t, nil)
		user := testutil.CreateUser(t, db)

		req := testutil.AsUser(testutil.NewJSONRequest(t, http.MethodPost, "/api/portfolio", request.CreatePortfolioRequest{
			Name: "   ",
		}), user)
		w := httptest.NewRecorder()
		handler.CreatePortfolio(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})

	t.Run("lists only the user's portfolios", func(t *testing.T) {
		handler, db := setupPortfolioHandler(t, nil)
		user := testutil.CreateUser(t, db)
		other := testutil.CreateUser(t, db)
		testutil.CreatePortfolio(t, db, user.ID, "Mine")
		testutil.CreatePortfolio(t, db, other.ID, "Theirs")

		req := testutil.AsUser(httptest.NewRequest(http.MethodGet, "/api/portfolio", nil), user)
		w := httptest.NewRecorder()
		handler.Portfolios(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var resp []PortfolioResponse
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(resp) != 1 || resp[0].Name != "Mine" {
			t.Errorf("Expected only the user's portfolio, got %+v", resp)
		}
	})
}

// TestPortfolioHandler_PortfolioStats tests the stats endpoint.
//
// WHY: The endpoint must scope by owner, reject malformed IDs before hitting
// the store, and serialize nil returns as JSON null so clients can render n/a.
func TestPortfolioHandler_PortfolioStats(t *testing.T) {
	t.Run("returns stats for an owned portfolio", func(t *testing.T) {
		handler, db := setupPortfolioHandler(t, map[string]float64{"AAPL": 120})
		user := testutil.CreateUser(t, db)
		portfolio := testutil.CreatePortfolio(t, db, user.ID, "Growth")
		testutil.CreateBuy(t, db, user.ID, portfolio.ID, "AAPL", "2024-01-02", 10, 100)

		req := testutil.AsUser(testutil.NewRequestWithURLParams(http.MethodGet,
			"/api/portfolio/"+portfolio.ID+"/stats",
			map[string]string{"portfolioID": portfolio.ID},
		), user)
		w := httptest.NewRecorder()
		handler.PortfolioStats(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var stats model.PortfolioStats
		if err := json.NewDecoder(w.Body).Decode(&stats); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if stats.CurrentValue != 1200 {
			t.Errorf("Expected current value 1200, got %v", stats.CurrentValue)
		}
		if stats.XIRR == nil {
			t.Error("Expected a pooled return")
		}
	})

	t.Run("rejects a malformed portfolio ID", func(t *testing.T) {
		handler, db := setupPortfolioHandler(t, nil)
		user := testutil.CreateUser(t, db)

		req := testutil.AsUser(testutil.NewRequestWithURLParams(http.MethodGet,
			"/api/portfolio/not-a-uuid/stats",
			map[string]string{"portfolioID": "not-a-uuid"},
		), user)
		w := httptest.NewRecorder()
		handler.PortfolioStats(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})

	t.Run("returns 404 for another user's portfolio", func(t *testing.T) {
		handler, db := setupPortfolioHandler(t, nil)
		user := testutil.CreateUser(t, db)
		other := testutil.CreateUser(t, db)
		otherPortfolio := testutil.CreatePortfolio(t, db, other.ID, "Theirs")

		req := testutil.AsUser(testutil.NewRequestWithURLParams(http.MethodGet,
			"/api/portfolio/"+otherPortfolio.ID+"/stats",
			map[string]string{"portfolioID": otherPortfolio.ID},
		), user)
		w := httptest.NewRecorder()
		handler.PortfolioStats(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", w.Code)
		}
	})

	t.Run("holdings endpoint returns per-symbol summaries", func(t *testing.T) {
		handler, db := setupPortfolioHandler(t, map[string]float64{"AAPL": 120, "MSFT": 250})
		user := testutil.CreateUser(t, db)
		portfolio := testutil.CreatePortfolio(t, db, user.ID, "Growth")
		testutil.CreateBuy(t, db, user.ID, portfolio.ID, "AAPL", "2024-01-02", 10, 100)
		testutil.CreateBuy(t, db, user.ID, portfolio.ID, "MSFT", "2024-02-01", 4, 200)

		req := testutil.AsUser(httptest.NewRequest(http.MethodGet, "/api/holdings", nil), user)
		w := httptest.NewRecorder()
		handler.Holdings(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var holdings []model.HoldingSummary
		if err := json.NewDecoder(w.Body).Decode(&holdings); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if len(holdings) != 2 {
			t.Errorf("Expected 2 holdings, got %d", len(holdings))
		}
	})
}
