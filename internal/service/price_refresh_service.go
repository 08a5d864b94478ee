package service

import (
	"log"
	"time"

	"github.com/investjournal/backend/internal/market"
	"github.com/investjournal/backend/internal/repository"
)

// PriceRefreshService keeps the quote cache warm for every symbol that appears
// in the transaction store. It is run on a schedule by the cron runner in main.
type PriceRefreshService struct {
	transactionRepo *repository.TransactionRepository
	prices          *market.PriceService
}

// NewPriceRefreshService creates a new PriceRefreshService with the provided dependencies.
func NewPriceRefreshService(
	transactionRepo *repository.TransactionRepository,
	prices *market.PriceService,
) *PriceRefreshService {
	return &PriceRefreshService{
		transactionRepo: transactionRepo,
		prices:          prices,
	}
}

// Run refreshes quotes for all known symbols. Individual fetch failures are
// logged and skipped; stale cache entries stay available until the next pass.
func (s *PriceRefreshService) Run() {
	start := time.Now()

	symbols, err := s.transactionRepo.GetDistinctSymbols()
	if err != nil {
		log.Printf("price refresh: failed to list symbols: %v", err)
		return
	}
	if len(symbols) == 0 {
		return
	}

	if err := s.prices.RefreshAll(symbols); err != nil {
		log.Printf("price refresh: %d symbols in %s, last error: %v",
			len(symbols), time.Since(start).Round(time.Millisecond), err)
		return
	}

	log.Printf("price refresh: %d symbols in %s", len(symbols), time.Since(start).Round(time.Millisecond))
}
