package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	// Configure SQLite for testing
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	// Create schema
	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	// Cleanup when test ends
	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the production migrations.
func createTestSchema(db *sql.DB) error {
	schema := `
		-- User table (quoted because user is a reserved keyword in some dialects)
		CREATE TABLE IF NOT EXISTS "user" (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			username VARCHAR(50) NOT NULL UNIQUE,
			email VARCHAR(255) NOT NULL UNIQUE,
			password_hash VARCHAR(60) NOT NULL,
			full_name VARCHAR(100) NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			is_active BOOLEAN DEFAULT TRUE NOT NULL
		);

		-- Portfolio table
		CREATE TABLE IF NOT EXISTS portfolio (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			user_id VARCHAR(36) NOT NULL,
			name VARCHAR(100) NOT NULL,
			description TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(user_id) REFERENCES "user"(id) ON DELETE CASCADE
		);

		-- Transaction table (quoted because transaction is a reserved keyword)
		CREATE TABLE IF NOT EXISTS "transaction" (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			user_id VARCHAR(36) NOT NULL,
			portfolio_id VARCHAR(36) NOT NULL,
			symbol VARCHAR(20) NOT NULL,
			security_name VARCHAR(100),
			security_type VARCHAR(5) NOT NULL CHECK(security_type IN ('stock', 'mf')),
			action VARCHAR(4) NOT NULL CHECK(action IN ('buy', 'sell')),
			date DATE NOT NULL,
			quantity FLOAT NOT NULL,
			price FLOAT NOT NULL,
			transaction_price FLOAT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY(user_id) REFERENCES "user"(id) ON DELETE CASCADE,
			FOREIGN KEY(portfolio_id) REFERENCES portfolio(id) ON DELETE CASCADE
		);

		CREATE INDEX IF NOT EXISTS idx_portfolio_user ON portfolio(user_id);
		CREATE INDEX IF NOT EXISTS idx_transaction_user ON "transaction"(user_id);
		CREATE INDEX IF NOT EXISTS idx_transaction_portfolio ON "transaction"(portfolio_id);
		CREATE INDEX IF NOT EXISTS idx_transaction_symbol ON "transaction"(user_id, symbol);
	`

	_, err := db.Exec(schema)
	return err
}
