package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/investjournal/backend/internal/market"
	"github.com/investjournal/backend/internal/model"
	"github.com/investjournal/backend/internal/repository"
	"github.com/investjournal/backend/internal/xirr"
)

// PortfolioService handles portfolio-related business logic operations.
// It coordinates the transaction store, the market price cache, and the
// cash-flow return engine to compute portfolio statistics on demand.
type PortfolioService struct {
	portfolioRepo   *repository.PortfolioRepository
	transactionRepo *repository.TransactionRepository
	prices          *market.PriceService

	// now is swappable for tests so terminal valuation flows land on a
	// deterministic date.
	now func() time.Time
}

// NewPortfolioService creates a new PortfolioService with the provided dependencies.
func NewPortfolioService(
	portfolioRepo *repository.PortfolioRepository,
	transactionRepo *repository.TransactionRepository,
	prices *market.PriceService,
) *PortfolioService {
	return &PortfolioService{
		portfolioRepo:   portfolioRepo,
		transactionRepo: transactionRepo,
		prices:          prices,
		now:             time.Now,
	}
}

// CreatePortfolio creates a new portfolio for the user.
func (s *PortfolioService) CreatePortfolio(userID, name, description string) (model.Portfolio, error) {
	portfolio := model.Portfolio{
		ID:          uuid.NewString(),
		UserID:      userID,
		Name:        name,
		Description: description,
	}

	if err := s.portfolioRepo.CreatePortfolio(portfolio); err != nil {
		return model.Portfolio{}, err
	}

	return portfolio, nil
}

// GetPortfolios retrieves all portfolios belonging to the user.
func (s *PortfolioService) GetPortfolios(userID string) ([]model.Portfolio, error) {
	return s.portfolioRepo.GetPortfolios(userID)
}

// GetPortfolio retrieves a single portfolio by ID, scoped to the user.
func (s *PortfolioService) GetPortfolio(userID, portfolioID string) (model.Portfolio, error) {
	return s.portfolioRepo.GetPortfolioOnID(userID, portfolioID)
}

// GetPortfolioStats computes the current state of a portfolio: per-security
// holdings with market values and annualized returns, portfolio totals, and
// the pooled portfolio return. When portfolioID is empty, the stats cover all
// of the user's portfolios pooled together.
//
// Everything is derived fresh from the transaction store and the price cache;
// nothing is persisted. A holding whose return is undefined (too few flows,
// all same sign, no price, corrupt sequence, no convergence) reports a nil
// XIRR and the report continues; only storage failures abort.
func (s *PortfolioService) GetPortfolioStats(userID, portfolioID string) (model.PortfolioStats, error) {
	if portfolioID != "" {
		if _, err := s.portfolioRepo.GetPortfolioOnID(userID, portfolioID); err != nil {
			return model.PortfolioStats{}, err
		}
	}

	transactions, err := s.transactionRepo.GetTransactions(userID, portfolioID)
	if err != nil {
		return model.PortfolioStats{}, err
	}

	asOf := s.now().UTC()

	// Group transactions per symbol, keeping first-seen order for stable output.
	bySymbol := make(map[string][]model.Transaction)
	symbols := []string{}
	for _, tx := range transactions {
		if _, seen := bySymbol[tx.Symbol]; !seen {
			symbols = append(symbols, tx.Symbol)
		}
		bySymbol[tx.Symbol] = append(bySymbol[tx.Symbol], tx)
	}

	stats := model.PortfolioStats{
		PortfolioID: portfolioID,
		Holdings:    []model.HoldingSummary{},
	}
	pooled := []xirr.Holding{}

	for _, symbol := range symbols {
		txs := bySymbol[symbol]
		summary := summarizeHolding(txs)

		flows, quantity, err := xirr.RealizedFlows(txs)
		if err != nil {
			// Corrupt sequence: surface the holding without a return instead
			// of aborting the whole report.
			stats.Holdings = append(stats.Holdings, summary)
			continue
		}

		if quantity > 0 {
			if quote, err := s.prices.Quote(symbol); err == nil {
				summary.CurrentPrice = quote.Price
				summary.CurrentValue = quantity * quote.Price
			}

			stats.TotalInvestment += summary.TotalInvestment
			stats.CurrentValue += summary.CurrentValue
		}

		// For exited positions CurrentValue is zero and TotalInvestment is the
		// net of buys minus sells, so this is the realized result.
		summary.GainLoss = summary.CurrentValue - summary.TotalInvestment
		if summary.TotalInvestment > 0 {
			summary.GainLossPct = summary.GainLoss / summary.TotalInvestment * 100
		}

		holding := xirr.Holding{
			Symbol:      symbol,
			Flows:       flows,
			Quantity:    quantity,
			MarketValue: quantity * summary.CurrentPrice,
		}
		pooled = append(pooled, holding)

		series := xirr.PortfolioFlows([]xirr.Holding{holding}, asOf)
		summary.XIRR = rateOrNil(series)

		stats.Holdings = append(stats.Holdings, summary)
	}

	stats.TotalGainLoss = stats.CurrentValue - stats.TotalInvestment
	if stats.TotalInvestment > 0 {
		stats.GainLossPct = stats.TotalGainLoss / stats.TotalInvestment * 100
	}
	stats.XIRR = rateOrNil(xirr.PortfolioFlows(pooled, asOf))

	return stats, nil
}

// summarizeHolding derives the quantity-independent parts of a holding
// summary: identity, open quantity, net invested amount, and average price.
// Net investment follows the cash flow convention: buys add, sells subtract.
func summarizeHolding(transactions []model.Transaction) model.HoldingSummary {
	summary := model.HoldingSummary{
		Symbol:       transactions[0].Symbol,
		SecurityName: transactions[0].SecurityName,
		SecurityType: transactions[0].SecurityType,
	}

	for _, tx := range transactions {
		amount := tx.Quantity * tx.TransactionPrice
		if tx.Action == model.ActionBuy {
			summary.Quantity += tx.Quantity
			summary.TotalInvestment += amount
		} else {
			summary.Quantity -= tx.Quantity
			summary.TotalInvestment -= amount
		}
	}

	if summary.Quantity > 0 {
		summary.AveragePrice = summary.TotalInvestment / summary.Quantity
	}

	return summary
}

// rateOrNil solves the series and downgrades every calculation error to a nil
// rate. The four engine errors are all recoverable "return undefined" cases
// at the reporting layer.
func rateOrNil(flows []xirr.CashFlow) *float64 {
	rate, err := xirr.Compute(flows)
	if err != nil {
		return nil
	}
	return &rate
}
