package repositories

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"pocketbook/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrUserNotFound        = errors.New("user not found")
)

// balanceDirection says whether a transaction's balance contribution is being
// applied (create) or undone (delete).
type balanceDirection int

const (
	directionApply balanceDirection = iota
	directionReverse
)

// transactionRepository implements TransactionRepositoryInterface
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepositoryInterface {
	return &transactionRepository{
		db: db,
	}
}

// CreateWithBalance inserts the transaction row and moves the owner's balance
// in a single database transaction. If either write fails, neither lands.
func (r *transactionRepository) CreateWithBalance(transaction *models.Transaction) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(transaction).Error; err != nil {
			return fmt.Errorf("failed to create transaction: %w", err)
		}

		return applyBalanceDelta(tx, transaction.UserID, transaction.Type, transaction.Amount, directionApply)
	})
}

// DeleteWithBalance removes the row and reverses its balance contribution in
// a single database transaction. The reversal is computed from the stored
// amount and type, never from caller input.
func (r *transactionRepository) DeleteWithBalance(userID, transactionID uuid.UUID) (*models.DeletedSummary, error) {
	var summary models.DeletedSummary

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var stored models.Transaction
		if err := tx.Where("id = ? AND user_id = ?", transactionID, userID).
			First(&stored).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTransactionNotFound
			}
			return fmt.Errorf("failed to fetch transaction for delete: %w", err)
		}

		result := tx.Where("id = ? AND user_id = ?", transactionID, userID).
			Delete(&models.Transaction{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete transaction: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrTransactionNotFound
		}

		summary = models.DeletedSummary{
			Type:   stored.Type,
			Amount: stored.Amount,
		}

		return applyBalanceDelta(tx, userID, stored.Type, stored.Amount, directionReverse)
	})
	if err != nil {
		return nil, err
	}

	return &summary, nil
}

// applyBalanceDelta is the only code path that writes users.balance. The
// update is a single atomic SQL increment rather than an application-level
// read-modify-write, so concurrent writes to the same user cannot lose
// updates. Investments never move the balance.
func applyBalanceDelta(tx *gorm.DB, userID uuid.UUID, transactionType string, amount decimal.Decimal, direction balanceDirection) error {
	delta := balanceDelta(transactionType, amount, direction)
	if delta.IsZero() {
		return nil
	}

	result := tx.Model(&models.User{}).
		Where("id = ?", userID).
		UpdateColumn("balance", gorm.Expr("balance + ?", delta))

	if result.Error != nil {
		return fmt.Errorf("failed to update balance: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// balanceDelta returns the signed balance change for a transaction.
// Expense: apply subtracts, reverse adds back. Income: apply adds, reverse
// subtracts. Investment: zero.
func balanceDelta(transactionType string, amount decimal.Decimal, direction balanceDirection) decimal.Decimal {
	var delta decimal.Decimal

	switch transactionType {
	case models.TransactionTypeExpense:
		delta = amount.Neg()
	case models.TransactionTypeIncome:
		delta = amount
	default:
		return decimal.Zero
	}

	if direction == directionReverse {
		delta = delta.Neg()
	}

	return delta
}

// GetByID retrieves a transaction owned by the given user
func (r *transactionRepository) GetByID(userID, transactionID uuid.UUID) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := r.db.Where("id = ? AND user_id = ?", transactionID, userID).
		First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &transaction, nil
}

// ListByUser returns all transactions for a user, newest date first,
// creation timestamp as the tie-break.
func (r *transactionRepository) ListByUser(userID uuid.UUID) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := r.db.Where("user_id = ?", userID).
		Order("date DESC").
		Order("created_at DESC").
		Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return transactions, nil
}

// ListPaginated returns one page of transactions ordered by id descending.
// Transaction ids are time-ordered, so id order is creation order and the id
// of the last returned row works as a stable continuation cursor.
func (r *transactionRepository) ListPaginated(userID uuid.UUID, filters models.TransactionFilters) ([]models.Transaction, *uuid.UUID, error) {
	query := r.db.Where("user_id = ?", userID)

	if filters.Description != "" {
		// Case-insensitive substring match, consistent across backends
		query = query.Where("LOWER(description) LIKE ?", "%"+strings.ToLower(filters.Description)+"%")
	}
	if filters.FiltersType() {
		query = query.Where("type = ?", filters.Type)
	}
	if filters.FiltersCategory() {
		query = query.Where("category = ?", filters.Category)
	}
	if filters.StartDate != nil {
		query = query.Where("date >= ?", *filters.StartDate)
	}
	if filters.EndDate != nil {
		query = query.Where("date < ?", endOfDay(*filters.EndDate))
	}
	if filters.Cursor != uuid.Nil {
		query = query.Where("id < ?", filters.Cursor)
	}

	// Fetch one extra row to learn whether another page exists
	var transactions []models.Transaction
	if err := query.Order("id DESC").
		Limit(filters.Limit + 1).
		Find(&transactions).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	var nextCursor *uuid.UUID
	if len(transactions) > filters.Limit {
		transactions = transactions[:filters.Limit]
		last := transactions[len(transactions)-1].ID
		nextCursor = &last
	}

	return transactions, nextCursor, nil
}

// SumByType sums amounts of one type over [start, end)
func (r *transactionRepository) SumByType(userID uuid.UUID, transactionType string, start, end time.Time) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}

	if err := r.db.Model(&models.Transaction{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("user_id = ? AND type = ? AND date >= ? AND date < ?",
			userID, transactionType, start, end).
		Scan(&result).Error; err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum transactions: %w", err)
	}

	return result.Total, nil
}

// GroupByCategory sums amounts per category over [start, end), largest first
func (r *transactionRepository) GroupByCategory(userID uuid.UUID, transactionType string, start, end time.Time) ([]models.CategorySummary, error) {
	var summaries []models.CategorySummary

	if err := r.db.Model(&models.Transaction{}).
		Select("category, SUM(amount) as amount").
		Where("user_id = ? AND type = ? AND date >= ? AND date < ?",
			userID, transactionType, start, end).
		Group("category").
		Order("SUM(amount) DESC").
		Scan(&summaries).Error; err != nil {
		return nil, fmt.Errorf("failed to group transactions by category: %w", err)
	}

	return summaries, nil
}

// GroupByTypeAndDate sums amounts per (type, date) for rows dated since or
// after the given time. The year-in-review reduces these rows into months.
func (r *transactionRepository) GroupByTypeAndDate(userID uuid.UUID, since time.Time) ([]models.TypeDateSum, error) {
	var sums []models.TypeDateSum

	if err := r.db.Model(&models.Transaction{}).
		Select("type, date, SUM(amount) as amount").
		Where("user_id = ? AND date >= ?", userID, since).
		Group("type").
		Group("date").
		Scan(&sums).Error; err != nil {
		return nil, fmt.Errorf("failed to group transactions by type and date: %w", err)
	}

	return sums, nil
}

// endOfDay returns the first instant after the given day, so a "date < x"
// comparison includes the whole end day.
func endOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location()).AddDate(0, 0, 1)
}
