package service

import (
	"errors"

	"github.com/google/uuid"

	"github.com/investjournal/backend/internal/apperrors"
	"github.com/investjournal/backend/internal/model"
	"github.com/investjournal/backend/internal/repository"
	"github.com/investjournal/backend/internal/xirr"
)

// TransactionService handles transaction-related business logic operations.
type TransactionService struct {
	transactionRepo *repository.TransactionRepository
	portfolioRepo   *repository.PortfolioRepository
}

// NewTransactionService creates a new TransactionService with the provided repositories.
func NewTransactionService(
	transactionRepo *repository.TransactionRepository,
	portfolioRepo *repository.PortfolioRepository,
) *TransactionService {
	return &TransactionService{
		transactionRepo: transactionRepo,
		portfolioRepo:   portfolioRepo,
	}
}

// CreateTransaction records a new buy or sell for the user.
//
// The target portfolio must belong to the user. Sells are validated against
// the symbol's existing transaction sequence: replaying the history with the
// new sell appended must not at any point sell more units than were
// cumulatively bought, otherwise apperrors.ErrInsufficientQuantity is
// returned and nothing is recorded.
func (s *TransactionService) CreateTransaction(userID string, t model.Transaction) (model.Transaction, error) {
	if _, err := s.portfolioRepo.GetPortfolioOnID(userID, t.PortfolioID); err != nil {
		return model.Transaction{}, err
	}

	if t.Action == model.ActionSell {
		existing, err := s.transactionRepo.GetTransactionsForSymbol(userID, t.PortfolioID, t.Symbol)
		if err != nil {
			return model.Transaction{}, err
		}

		_, _, err = xirr.RealizedFlows(append(existing, t))
		if errors.Is(err, xirr.ErrInvalidTransactionSequence) {
			return model.Transaction{}, apperrors.ErrInsufficientQuantity
		}
		if err != nil {
			return model.Transaction{}, err
		}
	}

	t.ID = uuid.NewString()
	t.UserID = userID

	if err := s.transactionRepo.CreateTransaction(t); err != nil {
		return model.Transaction{}, err
	}

	return t, nil
}

// GetTransactions retrieves the user's transactions sorted by date ascending,
// optionally restricted to one portfolio.
func (s *TransactionService) GetTransactions(userID, portfolioID string) ([]model.Transaction, error) {
	if portfolioID != "" {
		if _, err := s.portfolioRepo.GetPortfolioOnID(userID, portfolioID); err != nil {
			return nil, err
		}
	}
	return s.transactionRepo.GetTransactions(userID, portfolioID)
}
