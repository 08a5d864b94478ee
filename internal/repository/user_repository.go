package repository

import (
	"database/sql"
	"fmt"

	"github.com/investjournal/backend/internal/apperrors"
	"github.com/investjournal/backend/internal/model"
)

// UserRepository provides data access methods for the user table.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository with the provided database connection.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser inserts a new user record.
// Returns apperrors.ErrDuplicateEntry when the username or email is already taken.
func (s *UserRepository) CreateUser(user model.User) error {
	query := `
		INSERT INTO "user" (id, username, email, password_hash, full_name, is_active)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.Exec(query,
		user.ID,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.FullName,
		user.IsActive,
	)
	if isUniqueConstraintError(err) {
		return apperrors.ErrDuplicateEntry
	}
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// GetUserByUsername retrieves an active user by username.
// Returns apperrors.ErrUserNotFound if no active user matches.
func (s *UserRepository) GetUserByUsername(username string) (model.User, error) {
	query := `
		SELECT id, username, email, password_hash, full_name, created_at, is_active
		FROM "user"
		WHERE username = ? AND is_active = TRUE
	`
	return s.scanUser(s.db.QueryRow(query, username))
}

// GetUserByID retrieves an active user by ID.
// Returns apperrors.ErrUserNotFound if no active user matches.
func (s *UserRepository) GetUserByID(userID string) (model.User, error) {
	query := `
		SELECT id, username, email, password_hash, full_name, created_at, is_active
		FROM "user"
		WHERE id = ? AND is_active = TRUE
	`
	return s.scanUser(s.db.QueryRow(query, userID))
}

func (s *UserRepository) scanUser(row *sql.Row) (model.User, error) {
	var u model.User
	var createdAtStr string

	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.PasswordHash,
		&u.FullName,
		&createdAtStr,
		&u.IsActive,
	)
	if err == sql.ErrNoRows {
		return model.User{}, apperrors.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to scan user table results: %w", err)
	}

	u.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to parse date: %w", err)
	}

	return u, nil
}

// ClearUserData deletes all portfolios and transactions belonging to the user
// in a single database transaction. The user account itself is kept.
func (s *UserRepository) ClearUserData(userID string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if _, err := tx.Exec(`DELETE FROM "transaction" WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("failed to delete transactions: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM portfolio WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("failed to delete portfolios: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
