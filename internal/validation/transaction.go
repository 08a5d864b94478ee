package validation

import (
	"math"
	"strings"
	"time"

	"github.com/investjournal/backend/internal/api/request"
	"github.com/investjournal/backend/internal/model"
)

// ValidateCreateTransaction validates a transaction creation request.
//
// Required fields:
//   - portfolioId: must be a valid UUID
//   - symbol: required
//   - securityType: "stock" or "mf"
//   - action: "buy" or "sell"
//   - date: YYYY-MM-DD, not in the future
//   - quantity: positive; whole units for stocks, fractional allowed for
//     mutual funds
//   - price, transactionPrice: positive
//
// Returns a validation Error with field-specific messages if validation fails.
func ValidateCreateTransaction(req request.CreateTransactionRequest) error {
	if err := ValidateUUID(req.PortfolioID); err != nil {
		return err
	}

	errors := make(map[string]string)

	if strings.TrimSpace(req.Symbol) == "" {
		errors["symbol"] = "symbol is required"
	} else if len(req.Symbol) > 20 {
		errors["symbol"] = "symbol must be 20 characters or less"
	}

	if len(req.SecurityName) > 200 {
		errors["securityName"] = "securityName must be 200 characters or less"
	}

	switch req.SecurityType {
	case model.SecurityTypeStock, model.SecurityTypeMutualFund:
	default:
		errors["securityType"] = "securityType must be 'stock' or 'mf'"
	}

	switch req.Action {
	case model.ActionBuy, model.ActionSell:
	default:
		errors["action"] = "action must be 'buy' or 'sell'"
	}

	if strings.TrimSpace(req.Date) == "" {
		errors["date"] = "date is required"
	} else if date, err := time.Parse("2006-01-02", req.Date); err != nil {
		errors["date"] = err.Error()
	} else if date.After(time.Now()) {
		errors["date"] = "date cannot be in the future"
	}

	if req.Quantity <= 0 {
		errors["quantity"] = "quantity must be positive"
	} else if req.SecurityType == model.SecurityTypeStock && req.Quantity != math.Trunc(req.Quantity) {
		errors["quantity"] = "stock quantity must be a whole number of units"
	}

	if req.Price <= 0 {
		errors["price"] = "price must be positive"
	}

	if req.TransactionPrice <= 0 {
		errors["transactionPrice"] = "transactionPrice must be positive"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}
