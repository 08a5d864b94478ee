package service

import (
	"time"

	"github.com/investjournal/backend/internal/market"
	"github.com/investjournal/backend/internal/model"
	"github.com/investjournal/backend/internal/repository"
	"github.com/investjournal/backend/internal/xirr"
)

// PerformanceService builds the cross-portfolio performance summary: an
// annualized return per security, per portfolio, and for the user's combined
// positions. Portfolio and total rates are pooled, not averaged, so the
// result is the rate of the merged cash-flow series.
type PerformanceService struct {
	portfolioRepo   *repository.PortfolioRepository
	transactionRepo *repository.TransactionRepository
	prices          *market.PriceService

	now func() time.Time
}

// NewPerformanceService creates a new PerformanceService with the provided dependencies.
func NewPerformanceService(
	portfolioRepo *repository.PortfolioRepository,
	transactionRepo *repository.TransactionRepository,
	prices *market.PriceService,
) *PerformanceService {
	return &PerformanceService{
		portfolioRepo:   portfolioRepo,
		transactionRepo: transactionRepo,
		prices:          prices,
		now:             time.Now,
	}
}

// GetPerformanceSummary computes every performance entry for the user.
//
// The summary lists one entry per held security per portfolio, one pooled
// entry per portfolio, and one pooled entry across everything. Securities
// whose return is undefined still appear, with a nil rate, so the caller can
// render "n/a" instead of dropping the row.
func (s *PerformanceService) GetPerformanceSummary(userID string) ([]model.PerformanceEntry, error) {
	portfolios, err := s.portfolioRepo.GetPortfolios(userID)
	if err != nil {
		return nil, err
	}

	asOf := s.now().UTC()

	entries := []model.PerformanceEntry{}
	all := []xirr.Holding{}

	for _, portfolio := range portfolios {
		transactions, err := s.transactionRepo.GetTransactions(userID, portfolio.ID)
		if err != nil {
			return nil, err
		}
		if len(transactions) == 0 {
			continue
		}

		holdings := s.buildHoldings(transactions)
		for _, holding := range holdings {
			entries = append(entries, model.PerformanceEntry{
				Name:     portfolio.Name + " / " + holding.Symbol,
				Category: model.PerformanceCategorySecurity,
				XIRR:     rateOrNil(xirr.PortfolioFlows([]xirr.Holding{holding}, asOf)),
			})
		}

		entries = append(entries, model.PerformanceEntry{
			Name:     portfolio.Name,
			Category: model.PerformanceCategoryPortfolio,
			XIRR:     rateOrNil(xirr.PortfolioFlows(holdings, asOf)),
		})

		all = append(all, holdings...)
	}

	entries = append(entries, model.PerformanceEntry{
		Name:     "Total",
		Category: model.PerformanceCategoryTotal,
		XIRR:     rateOrNil(xirr.PortfolioFlows(all, asOf)),
	})

	return entries, nil
}

// buildHoldings converts a portfolio's transactions into per-symbol holdings
// with realized flows and current market values, in first-seen symbol order.
// Symbols with a corrupt transaction sequence are skipped.
func (s *PerformanceService) buildHoldings(transactions []model.Transaction) []xirr.Holding {
	bySymbol := make(map[string][]model.Transaction)
	symbols := []string{}
	for _, tx := range transactions {
		if _, seen := bySymbol[tx.Symbol]; !seen {
			symbols = append(symbols, tx.Symbol)
		}
		bySymbol[tx.Symbol] = append(bySymbol[tx.Symbol], tx)
	}

	holdings := []xirr.Holding{}
	for _, symbol := range symbols {
		flows, quantity, err := xirr.RealizedFlows(bySymbol[symbol])
		if err != nil {
			continue
		}

		holding := xirr.Holding{
			Symbol:   symbol,
			Flows:    flows,
			Quantity: quantity,
		}
		if quantity > 0 {
			if quote, err := s.prices.Quote(symbol); err == nil {
				holding.MarketValue = quantity * quote.Price
			}
		}
		holdings = append(holdings, holding)
	}

	return holdings
}
