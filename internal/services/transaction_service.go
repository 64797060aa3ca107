package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"pocketbook/internal/dto"
	"pocketbook/internal/models"
	"pocketbook/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrTransactionNotFound = repositories.ErrTransactionNotFound
	ErrInvalidDate         = errors.New("invalid transaction date")
)

const defaultPageLimit = 20

// TransactionService coordinates transaction writes: validate the input,
// normalize the amount into the base currency, then hand both the row and its
// balance effect to the repository as one atomic unit.
type TransactionService struct {
	transactionRepo repositories.TransactionRepositoryInterface
	userRepo        repositories.UserRepositoryInterface
	currencyService CurrencyServiceInterface
	metrics         MetricsRecorderInterface
	logger          *slog.Logger
}

// NewTransactionService creates a new transaction service
func NewTransactionService(
	transactionRepo repositories.TransactionRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	currencyService CurrencyServiceInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) TransactionServiceInterface {
	return &TransactionService{
		transactionRepo: transactionRepo,
		userRepo:        userRepo,
		currencyService: currencyService,
		metrics:         metrics,
		logger:          logger,
	}
}

// Create validates, normalizes and persists a new transaction. Validation
// happens before the conversion call and the conversion happens before the
// transactional write, so invalid input never touches the network and a
// failed conversion never leaves a partial write.
func (s *TransactionService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateTransactionRequest) (*models.Transaction, error) {
	start := time.Now()

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, req.Date)
	}

	transaction := &models.Transaction{
		UserID:      userID,
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
		Date:        date,
		Type:        req.Type,
	}
	if err := transaction.Validate(); err != nil {
		return nil, err
	}

	normalized, err := s.currencyService.Normalize(ctx, req.Amount, req.Currency)
	if err != nil {
		return nil, err
	}
	transaction.Amount = normalized

	if err := s.transactionRepo.CreateWithBalance(transaction); err != nil {
		s.metrics.IncrementCounter("transaction.created.failed", map[string]string{"type": req.Type})
		return nil, err
	}

	s.metrics.IncrementCounter("transaction.created.success", map[string]string{"type": req.Type})
	s.metrics.RecordProcessingTime("transaction.create", time.Since(start))
	s.logger.InfoContext(ctx, "transaction created",
		slog.String("transaction_id", transaction.ID.String()),
		slog.String("user_id", userID.String()),
		slog.String("type", transaction.Type),
		slog.String("category", transaction.Category),
		slog.String("amount", transaction.Amount.String()),
	)

	return transaction, nil
}

// Delete removes a transaction and reverses its balance contribution
func (s *TransactionService) Delete(ctx context.Context, userID, transactionID uuid.UUID) (*models.DeletedSummary, error) {
	summary, err := s.transactionRepo.DeleteWithBalance(userID, transactionID)
	if err != nil {
		if !errors.Is(err, repositories.ErrTransactionNotFound) {
			s.metrics.IncrementCounter("transaction.deleted.failed", nil)
		}
		return nil, err
	}

	s.metrics.IncrementCounter("transaction.deleted.success", map[string]string{"type": summary.Type})
	s.logger.InfoContext(ctx, "transaction deleted",
		slog.String("transaction_id", transactionID.String()),
		slog.String("user_id", userID.String()),
		slog.String("type", summary.Type),
	)

	return summary, nil
}

// GetByID fetches a single transaction owned by the user
func (s *TransactionService) GetByID(userID, transactionID uuid.UUID) (*models.Transaction, error) {
	return s.transactionRepo.GetByID(userID, transactionID)
}

// List returns one page of the user's transactions plus a continuation
// cursor, nil when the log is exhausted
func (s *TransactionService) List(userID uuid.UUID, filters models.TransactionFilters) ([]models.Transaction, *uuid.UUID, error) {
	if filters.Limit <= 0 {
		filters.Limit = defaultPageLimit
	}
	return s.transactionRepo.ListPaginated(userID, filters)
}

// ListAll returns the user's full transaction log ordered by date. Intended
// for export-style reads; interactive clients should use List.
func (s *TransactionService) ListAll(userID uuid.UUID) ([]models.Transaction, error) {
	return s.transactionRepo.ListByUser(userID)
}

// GetBalance reads the user's running balance
func (s *TransactionService) GetBalance(userID uuid.UUID) (decimal.Decimal, error) {
	return s.userRepo.GetBalance(userID)
}
