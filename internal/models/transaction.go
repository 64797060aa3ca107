package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	TransactionTypeExpense    = "Expense"
	TransactionTypeIncome     = "Income"
	TransactionTypeInvestment = "Investment"
)

var (
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrInvalidCategory        = errors.New("category is not valid for this transaction type")
	ErrInvalidAmount          = errors.New("transaction amount must be positive")
	ErrEmptyDescription       = errors.New("transaction description is required")
)

// Transaction is a single recorded expense, income or investment.
//
// Amount is a magnitude in the base currency; the direction of the money
// movement is derived from Type, never from the sign. Date is the
// user-supplied transaction date, CreatedAt is the record timestamp used as
// an ordering tie-break.
type Transaction struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	Description string          `gorm:"type:text;not null" json:"description"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Category    string          `gorm:"type:varchar(50);not null" json:"category"`
	Date        time.Time       `gorm:"not null;index" json:"date"`
	Type        string          `gorm:"type:varchar(20);not null;index" json:"type"`
	CreatedAt   time.Time       `gorm:"not null" json:"created_at"`

	// Associations
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// BeforeCreate hook for Transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		// Version 7 UUIDs are time-ordered, so "ORDER BY id DESC" walks
		// transactions newest-first and the id doubles as a stable
		// pagination cursor.
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		t.ID = id
	}

	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}

	if t.Date.IsZero() {
		t.Date = t.CreatedAt
	}

	return t.Validate()
}

// Validate validates the transaction fields
func (t *Transaction) Validate() error {
	if t.UserID == uuid.Nil {
		return errors.New("user ID is required")
	}

	if t.Description == "" {
		return ErrEmptyDescription
	}

	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if !IsValidTransactionType(t.Type) {
		return ErrInvalidTransactionType
	}

	if !IsValidCategory(t.Type, t.Category) {
		return ErrInvalidCategory
	}

	return nil
}

// IsExpense returns true for expense transactions
func (t *Transaction) IsExpense() bool {
	return t.Type == TransactionTypeExpense
}

// IsIncome returns true for income transactions
func (t *Transaction) IsIncome() bool {
	return t.Type == TransactionTypeIncome
}

// MovesBalance reports whether the transaction affects the user's balance.
// Investments are tracked for cost-basis visibility only.
func (t *Transaction) MovesBalance() bool {
	return t.IsExpense() || t.IsIncome()
}

// TableName returns the table name for Transaction
func (t *Transaction) TableName() string {
	return "transactions"
}

// IsValidTransactionType checks if the transaction type is valid
func IsValidTransactionType(transactionType string) bool {
	switch transactionType {
	case TransactionTypeExpense, TransactionTypeIncome, TransactionTypeInvestment:
		return true
	default:
		return false
	}
}

// DeletedSummary carries the stored fields of a deleted transaction that are
// needed to reverse its balance contribution.
type DeletedSummary struct {
	Type   string          `json:"type"`
	Amount decimal.Decimal `json:"amount"`
}
