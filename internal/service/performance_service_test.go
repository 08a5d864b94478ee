package service_test

import (
	"testing"

	"github.com/investjournal/backend/internal/model"
	"github.com/investjournal/backend/internal/testutil"
)

// TestPerformanceService_GetPerformanceSummary tests the cross-portfolio
// return summary.
//
// WHY: The summary is the one place that lines up security, portfolio, and
// total returns. Rows must exist at every level, rates must be pooled from
// merged flows rather than averaged, and an empty journal must still produce
// the total row.
func TestPerformanceService_GetPerformanceSummary(t *testing.T) {
	t.Run("produces rows per security, per portfolio, and a total", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		quotes := testutil.NewMockQuoteClient(map[string]float64{"AAPL": 120, "MSFT": 250})
		svc := testutil.NewTestPerformanceService(t, db, quotes)
		user := testutil.CreateUser(t, db)

		growth := testutil.CreatePortfolio(t, db, user.ID, "Growth")
		income := testutil.CreatePortfolio(t, db, user.ID, "Income")
		testutil.CreateBuy(t, db, user.ID, growth.ID, "AAPL", "2024-01-02", 10, 100)
		testutil.CreateBuy(t, db, user.ID, growth.ID, "MSFT", "2024-02-01", 4, 200)
		testutil.CreateBuy(t, db, user.ID, income.ID, "AAPL", "2024-03-01", 5, 110)

		entries, err := svc.GetPerformanceSummary(user.ID)
		if err != nil {
			t.Fatalf("GetPerformanceSummary() returned unexpected error: %v", err)
		}

		counts := map[string]int{}
		for _, entry := range entries {
			counts[entry.Category]++
		}

		if counts[model.PerformanceCategorySecurity] != 3 {
			t.Errorf("Expected 3 security rows, got %d", counts[model.PerformanceCategorySecurity])
		}
		if counts[model.PerformanceCategoryPortfolio] != 2 {
			t.Errorf("Expected 2 portfolio rows, got %d", counts[model.PerformanceCategoryPortfolio])
		}
		if counts[model.PerformanceCategoryTotal] != 1 {
			t.Errorf("Expected 1 total row, got %d", counts[model.PerformanceCategoryTotal])
		}

		// Last row is the total
		total := entries[len(entries)-1]
		if total.Category != model.PerformanceCategoryTotal {
			t.Fatalf("Expected total row last, got category %s", total.Category)
		}
		if total.XIRR == nil {
			t.Error("Expected a pooled total return")
		}
	})

	t.Run("security rows name the portfolio and the symbol", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		quotes := testutil.NewMockQuoteClient(map[string]float64{"AAPL": 120})
		svc := testutil.NewTestPerformanceService(t, db, quotes)
		user := testutil.CreateUser(t, db)

		growth := testutil.CreatePortfolio(t, db, user.ID, "Growth")
		testutil.CreateBuy(t, db, user.ID, growth.ID, "AAPL", "2024-01-02", 10, 100)

		entries, err := svc.GetPerformanceSummary(user.ID)
		if err != nil {
			t.Fatalf("GetPerformanceSummary() returned unexpected error: %v", err)
		}

		if entries[0].Name != "Growth / AAPL" {
			t.Errorf("Expected security row named 'Growth / AAPL', got %q", entries[0].Name)
		}
	})

	t.Run("empty journal still yields the total row with nil rate", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestPerformanceService(t, db, testutil.NewMockQuoteClient(nil))
		user := testutil.CreateUser(t, db)

		entries, err := svc.GetPerformanceSummary(user.ID)
		if err != nil {
			t.Fatalf("GetPerformanceSummary() returned unexpected error: %v", err)
		}

		if len(entries) != 1 {
			t.Fatalf("Expected only the total row, got %d entries", len(entries))
		}
		if entries[0].Category != model.PerformanceCategoryTotal {
			t.Errorf("Expected total row, got %s", entries[0].Category)
		}
		if entries[0].XIRR != nil {
			t.Errorf("Expected nil rate for empty journal, got %v", *entries[0].XIRR)
		}
	})
}
