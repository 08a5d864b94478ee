package testutil

import (
	"database/sql"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/investjournal/backend/internal/model"
)

// UserBuilder provides a fluent interface for creating test users.
//
// Example usage:
//
//	// Simple creation with defaults
//	user := testutil.NewUser().Build(t, db)
//
//	// Customized user
//	user := testutil.NewUser().
//	    WithUsername("alice").
//	    WithPassword("s3cret-pass").
//	    Build(t, db)
type UserBuilder struct {
	ID       string
	Username string
	Email    string
	Password string
	FullName string
	IsActive bool
}

// NewUser creates a UserBuilder with sensible defaults.
func NewUser() *UserBuilder {
	name := "user" + randomAlphanumeric(6)
	return &UserBuilder{
		ID:       MakeID(),
		Username: name,
		Email:    name + "@example.com",
		Password: "test-password",
		FullName: "Test User",
		IsActive: true,
	}
}

// WithID sets a custom ID.
func (b *UserBuilder) WithID(id string) *UserBuilder {
	b.ID = id
	return b
}

// WithUsername sets a custom username.
func (b *UserBuilder) WithUsername(username string) *UserBuilder {
	b.Username = username
	return b
}

// WithEmail sets a custom email address.
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.Email = email
	return b
}

// WithPassword sets the plaintext password the stored hash is derived from.
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.Password = password
	return b
}

// Deactivated marks the account as inactive.
func (b *UserBuilder) Deactivated() *UserBuilder {
	b.IsActive = false
	return b
}

// Build creates the user in the database and returns it.
func (b *UserBuilder) Build(t *testing.T, db *sql.DB) model.User {
	t.Helper()

	// MinCost keeps test suites fast; production hashing uses DefaultCost.
	hash, err := bcrypt.GenerateFromPassword([]byte(b.Password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash test password: %v", err)
	}

	query := `
		INSERT INTO "user" (id, username, email, password_hash, full_name, is_active)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err = db.Exec(query, b.ID, b.Username, b.Email, string(hash), b.FullName, b.IsActive)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return model.User{
		ID:           b.ID,
		Username:     b.Username,
		Email:        b.Email,
		PasswordHash: string(hash),
		FullName:     b.FullName,
		IsActive:     b.IsActive,
	}
}

// PortfolioBuilder provides a fluent interface for creating test portfolios.
//
// Example usage:
//
//	portfolio := testutil.NewPortfolio(user.ID).
//	    WithName("Custom Portfolio").
//	    Build(t, db)
type PortfolioBuilder struct {
	ID          string
	UserID      string
	Name        string
	Description string
}

// NewPortfolio creates a PortfolioBuilder with sensible defaults.
func NewPortfolio(userID string) *PortfolioBuilder {
	return &PortfolioBuilder{
		ID:          MakeID(),
		UserID:      userID,
		Name:        MakePortfolioName("Test Portfolio"),
		Description: "Test description",
	}
}

// WithID sets a custom ID.
func (b *PortfolioBuilder) WithID(id string) *PortfolioBuilder {
	b.ID = id
	return b
}

// WithName sets a custom name.
func (b *PortfolioBuilder) WithName(name string) *PortfolioBuilder {
	b.Name = name
	return b
}

// WithDescription sets a custom description.
func (b *PortfolioBuilder) WithDescription(desc string) *PortfolioBuilder {
	b.Description = desc
	return b
}

// Build creates the portfolio in the database and returns it.
func (b *PortfolioBuilder) Build(t *testing.T, db *sql.DB) model.Portfolio {
	t.Helper()

	query := `
		INSERT INTO portfolio (id, user_id, name, description)
		VALUES (?, ?, ?, ?)
	`

	_, err := db.Exec(query, b.ID, b.UserID, b.Name, b.Description)
	if err != nil {
		t.Fatalf("Failed to create test portfolio: %v", err)
	}

	return model.Portfolio{
		ID:          b.ID,
		UserID:      b.UserID,
		Name:        b.Name,
		Description: b.Description,
	}
}

// TransactionBuilder provides a fluent interface for creating test transactions.
//
// Example usage:
//
//	tx := testutil.NewTransaction(user.ID, portfolio.ID).
//	    WithSymbol("AAPL").
//	    WithDate("2024-03-01").
//	    Sell().
//	    Build(t, db)
type TransactionBuilder struct {
	ID               string
	UserID           string
	PortfolioID      string
	Symbol           string
	SecurityName     string
	SecurityType     string
	Action           string
	Date             string
	Quantity         float64
	Price            float64
	TransactionPrice float64
}

// NewTransaction creates a TransactionBuilder with sensible defaults: a buy of
// 10 stock units at 100.
func NewTransaction(userID, portfolioID string) *TransactionBuilder {
	return &TransactionBuilder{
		ID:               MakeID(),
		UserID:           userID,
		PortfolioID:      portfolioID,
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

// WithSymbol sets a custom symbol.
func (b *TransactionBuilder) WithSymbol(symbol string) *TransactionBuilder {
	b.Symbol = symbol
	return b
}

// WithSecurityName sets a custom security name.
func (b *TransactionBuilder) WithSecurityName(name string) *TransactionBuilder {
	b.SecurityName = name
	return b
}

// MutualFund marks the transaction as a mutual fund trade.
func (b *TransactionBuilder) MutualFund() *TransactionBuilder {
	b.SecurityType = model.SecurityTypeMutualFund
	return b
}

// Sell marks the transaction as a sell.
func (b *TransactionBuilder) Sell() *TransactionBuilder {
	b.Action = model.ActionSell
	return b
}

// WithDate sets the transaction date in YYYY-MM-DD format.
func (b *TransactionBuilder) WithDate(date string) *TransactionBuilder {
	b.Date = date
	return b
}

// WithQuantity sets a custom quantity.
func (b *TransactionBuilder) WithQuantity(quantity float64) *TransactionBuilder {
	b.Quantity = quantity
	return b
}

// WithPrice sets the market price and the transaction price together.
func (b *TransactionBuilder) WithPrice(price float64) *TransactionBuilder {
	b.Price = price
	b.TransactionPrice = price
	return b
}

// WithTransactionPrice sets the actually-paid price independently of the
// market price.
func (b *TransactionBuilder) WithTransactionPrice(price float64) *TransactionBuilder {
	b.TransactionPrice = price
	return b
}

// Build creates the transaction in the database and returns it.
func (b *TransactionBuilder) Build(t *testing.T, db *sql.DB) model.Transaction {
	t.Helper()

	query := `
		INSERT INTO "transaction"
			(id, user_id, portfolio_id, symbol, security_name, security_type,
			 action, date, quantity, price, transaction_price)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query,
		b.ID, b.UserID, b.PortfolioID, b.Symbol, b.SecurityName, b.SecurityType,
		b.Action, b.Date, b.Quantity, b.Price, b.TransactionPrice,
	)
	if err != nil {
		t.Fatalf("Failed to create test transaction: %v", err)
	}

	date, err := time.Parse("2006-01-02", b.Date)
	if err != nil {
		t.Fatalf("Invalid test transaction date: %v", err)
	}

	return model.Transaction{
		ID:               b.ID,
		UserID:           b.UserID,
		PortfolioID:      b.PortfolioID,
		Symbol:           b.Symbol,
		SecurityName:     b.SecurityName,
		SecurityType:     b.SecurityType,
		Action:           b.Action,
		Date:             date,
		Quantity:         b.Quantity,
		Price:            b.Price,
		TransactionPrice: b.TransactionPrice,
	}
}

// Convenience functions

// CreateUser creates a user with default values.
func CreateUser(t *testing.T, db *sql.DB) model.User {
	t.Helper()
	return NewUser().Build(t, db)
}

// CreatePortfolio creates a portfolio with the given name and default values.
func CreatePortfolio(t *testing.T, db *sql.DB, userID, name string) model.Portfolio {
	t.Helper()
	return NewPortfolio(userID).WithName(name).Build(t, db)
}

// CreateBuy records a buy of quantity units at the given price on the given date.
func CreateBuy(t *testing.T, db *sql.DB, userID, portfolioID, symbol, date string, quantity, price float64) model.Transaction {
	t.Helper()
	return NewTransaction(userID, portfolioID).
		WithSymbol(symbol).
		WithDate(date).
		WithQuantity(quantity).
		WithPrice(price).
		Build(t, db)
}

// CreateSell records a sell of quantity units at the given price on the given date.
func CreateSell(t *testing.T, db *sql.DB, userID, portfolioID, symbol, date string, quantity, price float64) model.Transaction {
	t.Helper()
	return NewTransaction(userID, portfolioID).
		WithSymbol(symbol).
		WithDate(date).
		WithQuantity(quantity).
		WithPrice(price).
		Sell().
		Build(t, db)
}
