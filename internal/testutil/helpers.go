package testutil

import (
	"database/sql"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/investjournal/backend/internal/market"
	"github.com/investjournal/backend/internal/repository"
	"github.com/investjournal/backend/internal/service"
	"github.com/investjournal/backend/internal/yahoo"
)

// TestSessionTTL is the session token lifetime used by test auth services.
const TestSessionTTL = time.Hour

func NewTestAuthService(t *testing.T, db *sql.DB) *service.AuthService {
	t.Helper()

	userRepo := repository.NewUserRepository(db)

	authService, err := service.NewAuthService(userRepo, "", TestSessionTTL)
	if err != nil {
		t.Fatalf("Failed to create test auth service: %v", err)
	}
	return authService
}

func NewTestTransactionService(t *testing.T, db *sql.DB) *service.TransactionService {
	t.Helper()

	transactionRepo := repository.NewTransactionRepository(db)
	portfolioRepo := repository.NewPortfolioRepository(db)

	return service.NewTransactionService(
		transactionRepo,
		portfolioRepo,
	)
}

// NewTestPortfolioService creates a PortfolioService backed by a mock quote
// client, so statistics can be computed without real API calls.
func NewTestPortfolioService(t *testing.T, db *sql.DB, quotes yahoo.Client) *service.PortfolioService {
	t.Helper()

	portfolioRepo := repository.NewPortfolioRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	prices := market.NewPriceService(quotes, time.Minute)

	return service.NewPortfolioService(
		portfolioRepo,
		transactionRepo,
		prices,
	)
}

// NewTestPerformanceService creates a PerformanceService backed by a mock
// quote client.
func NewTestPerformanceService(t *testing.T, db *sql.DB, quotes yahoo.Client) *service.PerformanceService {
	t.Helper()

	portfolioRepo := repository.NewPortfolioRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	prices := market.NewPriceService(quotes, time.Minute)

	return service.NewPerformanceService(
		portfolioRepo,
		transactionRepo,
		prices,
	)
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// MakeSymbol generates a ticker symbol for testing.
//
// Example usage:
//
//	symbol := testutil.MakeSymbol("AAPL")
//	// Returns: "AAPL1A2B"
func MakeSymbol(base string) string {
	if base == "" {
		base = "TEST"
	}
	return base + randomAlphanumeric(4)
}

// MakePortfolioName generates a unique portfolio name for testing.
//
// Example usage:
//
//	name := testutil.MakePortfolioName("MyPortfolio")
//	// Returns: "MyPortfolio ABC123"
func MakePortfolioName(base string) string {
	if base == "" {
		base = "Portfolio"
	}
	return base + " " + randomAlphanumeric(6)
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}
