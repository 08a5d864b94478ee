package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrUserNotFound indicates that a user with the given ID or username does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrPortfolioNotFound indicates that a portfolio with the given ID does not exist.
	ErrPortfolioNotFound = errors.New("portfolio not found")

	// ErrSymbolNotFound indicates that a market data lookup returned no results.
	ErrSymbolNotFound = errors.New("symbol not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInvalidCredentials indicates a failed login attempt. The same error is
	// used for unknown usernames and wrong passwords so responses do not leak
	// which accounts exist.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrInvalidSessionToken indicates a missing, malformed, or expired session token.
	ErrInvalidSessionToken = errors.New("invalid or expired session token")

	// ErrDuplicateEntry indicates that an entity with the same unique constraint already exists.
	ErrDuplicateEntry = errors.New("duplicate entry")

	// ErrInsufficientQuantity indicates that a sell transaction cannot be recorded
	// because the portfolio does not hold enough units of the security.
	ErrInsufficientQuantity = errors.New("insufficient quantity for sale")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")
)
