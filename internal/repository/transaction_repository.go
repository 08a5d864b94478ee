package repository

import (
	"database/sql"
	"fmt"

	"github.com/investjournal/backend/internal/model"
)

// TransactionRepository provides data access methods for the transaction table.
// All queries are scoped to a single user; transaction queries may additionally
// be scoped to one portfolio.
type TransactionRepository struct {
	db *sql.DB
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// CreateTransaction inserts a new transaction record.
func (s *TransactionRepository) CreateTransaction(t model.Transaction) error {
	query := `
		INSERT INTO "transaction"
			(id, user_id, portfolio_id, symbol, security_name, security_type,
			 action, date, quantity, price, transaction_price)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.Exec(query,
		t.ID,
		t.UserID,
		t.PortfolioID,
		t.Symbol,
		t.SecurityName,
		t.SecurityType,
		t.Action,
		t.Date.Format("2006-01-02"),
		t.Quantity,
		t.Price,
		t.TransactionPrice,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	return nil
}

// GetTransactions retrieves the user's transactions sorted by date ascending.
// When portfolioID is non-empty, only that portfolio's transactions are
// returned; otherwise all of the user's transactions across portfolios.
// Creation order breaks ties within a date so intra-day sequences stay stable.
func (s *TransactionRepository) GetTransactions(userID, portfolioID string) ([]model.Transaction, error) {
	query := `
		SELECT id, user_id, portfolio_id, symbol, security_name, security_type,
		       action, date, quantity, price, transaction_price, created_at
		FROM "transaction"
		WHERE user_id = ?
	`
	args := []any{userID}

	if portfolioID != "" {
		query += ` AND portfolio_id = ?`
		args = append(args, portfolioID)
	}

	query += ` ORDER BY date ASC, created_at ASC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// GetTransactionsForSymbol retrieves the user's transactions for one symbol
// within one portfolio, sorted by date ascending. Used for oversell validation
// before a new sell is recorded.
func (s *TransactionRepository) GetTransactionsForSymbol(userID, portfolioID, symbol string) ([]model.Transaction, error) {
	query := `
		SELECT id, user_id, portfolio_id, symbol, security_name, security_type,
		       action, date, quantity, price, transaction_price, created_at
		FROM "transaction"
		WHERE user_id = ? AND portfolio_id = ? AND symbol = ?
		ORDER BY date ASC, created_at ASC
	`

	rows, err := s.db.Query(query, userID, portfolioID, symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	return scanTransactions(rows)
}

// GetDistinctSymbols returns every symbol that appears in any user's
// transactions. Used by the background price refresh to know which symbols to
// keep warm in the quote cache.
func (s *TransactionRepository) GetDistinctSymbols() ([]string, error) {
	query := `SELECT DISTINCT symbol FROM "transaction" ORDER BY symbol ASC`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	symbols := []string{}
	for rows.Next() {
		var symbol string
		if err := rows.Scan(&symbol); err != nil {
			return nil, fmt.Errorf("failed to scan transaction table results: %w", err)
		}
		symbols = append(symbols, symbol)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction table: %w", err)
	}

	return symbols, nil
}

func scanTransactions(rows *sql.Rows) ([]model.Transaction, error) {
	transactions := []model.Transaction{}

	for rows.Next() {
		var t model.Transaction
		var dateStr, createdAtStr string

		err := rows.Scan(
			&t.ID,
			&t.UserID,
			&t.PortfolioID,
			&t.Symbol,
			&t.SecurityName,
			&t.SecurityType,
			&t.Action,
			&dateStr,
			&t.Quantity,
			&t.Price,
			&t.TransactionPrice,
			&createdAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction table results: %w", err)
		}

		t.Date, err = ParseTime(dateStr)
		if err != nil || t.Date.IsZero() {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		t.CreatedAt, err = ParseTime(createdAtStr)
		if err != nil || t.CreatedAt.IsZero() {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		transactions = append(transactions, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction table: %w", err)
	}

	return transactions, nil
}
