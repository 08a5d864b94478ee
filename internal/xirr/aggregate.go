package xirr

import (
	"fmt"
	"slices"
	"time"

	"github.com/investjournal/backend/internal/model"
)

// quantityEpsilon absorbs float rounding when summing fractional mutual fund
// units. Remaining quantities within epsilon of zero count as fully exited.
const quantityEpsilon = 1e-9

// Holding aggregates the realized cash flows of one security inside one
// portfolio, together with its open quantity and current market value. It is a
// transient view built fresh from the transaction store on every report
// request and is never persisted.
type Holding struct {
	Symbol      string
	Flows       []CashFlow // Realized flows only, date ascending, no terminal flow
	Quantity    float64    // Remaining open quantity
	MarketValue float64    // Quantity * current market price
}

// RealizedFlows converts a security's transactions into its realized cash flow
// series: buys contribute -quantity*price, sells +quantity*price. It returns
// the series in date order together with the remaining open quantity.
//
// The running quantity is accumulated in date order so that a sell exceeding
// the cumulative buys before it is detected as ErrInvalidTransactionSequence.
// Transactions with a zero quantity*price product are skipped rather than
// emitted as zero-amount flows.
func RealizedFlows(transactions []model.Transaction) ([]CashFlow, float64, error) {
	ordered := slices.Clone(transactions)
	slices.SortStableFunc(ordered, func(a, b model.Transaction) int {
		return a.Date.Compare(b.Date)
	})

	flows := make([]CashFlow, 0, len(ordered))
	quantity := 0.0

	for _, tx := range ordered {
		amount := tx.Quantity * tx.TransactionPrice

		switch tx.Action {
		case model.ActionBuy:
			quantity += tx.Quantity
			if amount > 0 {
				flows = append(flows, CashFlow{Date: tx.Date, Amount: -amount})
			}
		case model.ActionSell:
			quantity -= tx.Quantity
			if quantity < -quantityEpsilon {
				return nil, 0, fmt.Errorf("%s on %s: %w",
					tx.Symbol, tx.Date.Format("2006-01-02"), ErrInvalidTransactionSequence)
			}
			if amount > 0 {
				flows = append(flows, CashFlow{Date: tx.Date, Amount: amount})
			}
		default:
			return nil, 0, fmt.Errorf("unknown transaction action: %s", tx.Action)
		}
	}

	if quantity < quantityEpsilon {
		quantity = 0
	}

	return flows, quantity, nil
}

// HoldingFlows builds the complete cash flow series for one security: its
// realized flows plus, when the position is still open, a single synthetic
// terminal inflow of remainingQuantity*currentPrice on asOf. A fully exited
// holding gets no terminal flow; the realized series alone determines its
// rate. The remaining quantity is returned alongside the series.
func HoldingFlows(transactions []model.Transaction, currentPrice float64, asOf time.Time) ([]CashFlow, float64, error) {
	flows, quantity, err := RealizedFlows(transactions)
	if err != nil {
		return nil, 0, err
	}

	if value := quantity * currentPrice; value > 0 {
		flows = append(flows, CashFlow{Date: asOf, Amount: value})
	}

	return flows, quantity, nil
}

// PortfolioFlows pools the realized flows of every holding into a single
// series and appends exactly one synthetic terminal inflow on asOf equal to
// the summed market value of the open positions.
//
// The portfolio rate is the rate of this merged series. The rate is not
// linear in cash flow composition, so averaging per-security rates gives a
// different number; callers must solve over the pooled series instead.
func PortfolioFlows(holdings []Holding, asOf time.Time) []CashFlow {
	total := 0
	for _, h := range holdings {
		total += len(h.Flows)
	}

	flows := make([]CashFlow, 0, total+1)
	terminal := 0.0
	for _, h := range holdings {
		flows = append(flows, h.Flows...)
		if h.MarketValue > 0 {
			terminal += h.MarketValue
		}
	}

	slices.SortStableFunc(flows, func(a, b CashFlow) int {
		return a.Date.Compare(b.Date)
	})

	if terminal > 0 {
		flows = append(flows, CashFlow{Date: asOf, Amount: terminal})
	}

	return flows
}
