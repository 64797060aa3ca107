package repositories

import (
	"time"

	"pocketbook/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionRepositoryInterface defines the contract for transaction
// persistence. Creating and deleting a transaction also moves the owner's
// balance inside the same database transaction; there is no way to write a
// row without its balance effect.
type TransactionRepositoryInterface interface {
	// CreateWithBalance inserts the transaction and applies its balance
	// delta to the owning user atomically.
	CreateWithBalance(transaction *models.Transaction) error

	// DeleteWithBalance removes the transaction owned by userID and
	// reverses its balance contribution, computed from the stored row.
	// Returns the stored type and amount of the deleted row.
	DeleteWithBalance(userID, transactionID uuid.UUID) (*models.DeletedSummary, error)

	// GetByID retrieves a transaction owned by userID.
	GetByID(userID, transactionID uuid.UUID) (*models.Transaction, error)

	// ListByUser returns all transactions for a user ordered by date
	// descending, tie-broken by creation timestamp descending.
	ListByUser(userID uuid.UUID) ([]models.Transaction, error)

	// ListPaginated returns up to filters.Limit transactions ordered by id
	// descending, plus the cursor for the next page (nil when exhausted).
	ListPaginated(userID uuid.UUID, filters models.TransactionFilters) ([]models.Transaction, *uuid.UUID, error)

	// SumByType sums amounts of the given type with date in [start, end).
	SumByType(userID uuid.UUID, transactionType string, start, end time.Time) (decimal.Decimal, error)

	// GroupByCategory sums amounts per category for the given type with
	// date in [start, end), ordered by summed amount descending.
	GroupByCategory(userID uuid.UUID, transactionType string, start, end time.Time) ([]models.CategorySummary, error)

	// GroupByTypeAndDate sums amounts per (type, date) for rows with
	// date >= since.
	GroupByTypeAndDate(userID uuid.UUID, since time.Time) ([]models.TypeDateSum, error)
}

// UserRepositoryInterface defines the contract for user persistence. It
// deliberately has no balance setter: the balance only moves through the
// transaction repository's atomic create/delete operations.
type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetBalance(id uuid.UUID) (decimal.Decimal, error)
}
