package repository

import (
	"database/sql"
	"fmt"

	"github.com/investjournal/backend/internal/apperrors"
	"github.com/investjournal/backend/internal/model"
)

// PortfolioRepository provides data access methods for the portfolio table.
// All queries are scoped to a single user.
type PortfolioRepository struct {
	db *sql.DB
}

// NewPortfolioRepository creates a new PortfolioRepository with the provided database connection.
func NewPortfolioRepository(db *sql.DB) *PortfolioRepository {
	return &PortfolioRepository{db: db}
}

// CreatePortfolio inserts a new portfolio record.
func (s *PortfolioRepository) CreatePortfolio(p model.Portfolio) error {
	query := `
		INSERT INTO portfolio (id, user_id, name, description)
		VALUES (?, ?, ?, ?)
	`

	_, err := s.db.Exec(query, p.ID, p.UserID, p.Name, p.Description)
	if err != nil {
		return fmt.Errorf("failed to insert portfolio: %w", err)
	}

	return nil
}

// GetPortfolios retrieves all portfolios belonging to the user, oldest first.
// Returns an empty slice when the user has no portfolios.
func (s *PortfolioRepository) GetPortfolios(userID string) ([]model.Portfolio, error) {
	query := `
		SELECT id, user_id, name, description, created_at
		FROM portfolio
		WHERE user_id = ?
		ORDER BY created_at ASC, name ASC
	`

	rows, err := s.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query portfolio table: %w", err)
	}
	defer rows.Close()

	portfolios := []model.Portfolio{}

	for rows.Next() {
		var p model.Portfolio
		var createdAtStr string

		err := rows.Scan(
			&p.ID,
			&p.UserID,
			&p.Name,
			&p.Description,
			&createdAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan portfolio table results: %w", err)
		}

		p.CreatedAt, err = ParseTime(createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date: %w", err)
		}

		portfolios = append(portfolios, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating portfolio table: %w", err)
	}

	return portfolios, nil
}

// GetPortfolioOnID retrieves a single portfolio by ID, scoped to the user.
// Returns apperrors.ErrPortfolioNotFound when the portfolio does not exist or
// belongs to another user.
func (s *PortfolioRepository) GetPortfolioOnID(userID, portfolioID string) (model.Portfolio, error) {
	query := `
		SELECT id, user_id, name, description, created_at
		FROM portfolio
		WHERE id = ? AND user_id = ?
	`

	var p model.Portfolio
	var createdAtStr string

	err := s.db.QueryRow(query, portfolioID, userID).Scan(
		&p.ID,
		&p.UserID,
		&p.Name,
		&p.Description,
		&createdAtStr,
	)
	if err == sql.ErrNoRows {
		return model.Portfolio{}, apperrors.ErrPortfolioNotFound
	}
	if err != nil {
		return model.Portfolio{}, fmt.Errorf("failed to query portfolio: %w", err)
	}

	p.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Portfolio{}, fmt.Errorf("failed to parse date: %w", err)
	}

	return p, nil
}
