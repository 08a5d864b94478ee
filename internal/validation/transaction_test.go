package validation

import (
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/investjournal/backend/internal/api/request"
	"github.com/investjournal/backend/internal/apperrors"
	"github.com/investjournal/backend/internal/model"
)

func validTransactionRequest() request.CreateTransactionRequest {
	return request.CreateTransactionRequest{
		PortfolioID:      uuid.NewString(),
		Symbol:           "AAPL",
		SecurityName:     "Apple Inc.",
		SecurityType:     model.SecurityTypeStock,
		Action:           model.ActionBuy,
		Date:             "2024-01-02",
		Quantity:         10,
		Price:            100,
		TransactionPrice: 100,
	}
}

// TestValidateCreateTransaction tests transaction payload validation.
//
// WHY: The validator is the only gate between client input and the journal;
// in particular the whole-unit rule for stocks versus fractional mutual fund
// units lives here.
func TestValidateCreateTransaction(t *testing.T) {
	t.Run("accepts a valid buy", func(t *testing.T) {
		if err := ValidateCreateTransaction(validTransactionRequest()); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("rejects a malformed portfolio ID", func(t *testing.T) {
		req := validTransactionRequest()
		req.PortfolioID = "not-a-uuid"

		err := ValidateCreateTransaction(req)
		if !errors.Is(err, apperrors.ErrInvalidUUID) {
			t.Errorf("Expected ErrInvalidUUID, got %v", err)
		}
	})

	t.Run("rejects an empty portfolio ID", func(t *testing.T) {
		req := validTransactionRequest()
		req.PortfolioID = "  "

		err := ValidateCreateTransaction(req)
		if !errors.Is(err, apperrors.ErrEmptyID) {
			t.Errorf("Expected ErrEmptyID, got %v", err)
		}
	})

	t.Run("collects field errors", func(t *testing.T) {
		req := validTransactionRequest()
		req.Symbol = ""
		req.Action = "transfer"
		req.Quantity = -1

		err := ValidateCreateTransaction(req)
		if err == nil {
			t.Fatal("Expected validation error, got nil")
		}

		var vErr *Error
		if !errors.As(err, &vErr) {
			t.Fatalf("Expected *Error, got %T", err)
		}
		for _, field := range []string{"symbol", "action", "quantity"} {
			if _, ok := vErr.Fields[field]; !ok {
				t.Errorf("Expected error for field %s, got %v", field, vErr.Fields)
			}
		}
	})

	t.Run("rejects fractional stock quantities", func(t *testing.T) {
		req := validTransactionRequest()
		req.Quantity = 1.5

		err := ValidateCreateTransaction(req)
		if err == nil {
			t.Fatal("Expected validation error, got nil")
		}
	})

	t.Run("accepts fractional mutual fund quantities", func(t *testing.T) {
		req := validTransactionRequest()
		req.SecurityType = model.SecurityTypeMutualFund
		req.Quantity = 10.537

		if err := ValidateCreateTransaction(req); err != nil {
			t.Errorf("Expected no error, got %v", err)
		}
	})

	t.Run("rejects a future-dated transaction", func(t *testing.T) {
		req := validTransactionRequest()
		req.Date = "2099-01-01"

		err := ValidateCreateTransaction(req)
		if err == nil {
			t.Fatal("Expected validation error, got nil")
		}
	})

	t.Run("rejects a malformed date", func(t *testing.T) {
		req := validTransactionRequest()
		req.Date = "02-01-2024"

		err := ValidateCreateTransaction(req)
		if err == nil {
			t.Fatal("Expected validation error, got nil")
		}
	})
}
