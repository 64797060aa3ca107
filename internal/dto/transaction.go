package dto

import (
	"time"

	"pocketbook/internal/models"

	"github.com/shopspring/decimal"
)

// Transaction Request DTOs

// CreateTransactionRequest contains the data for recording a transaction.
// Currency is the currency the amount was entered in; the stored amount is
// normalized to the base currency before persistence.
type CreateTransactionRequest struct {
	Description string          `json:"description" validate:"required,min=1,max=255"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	Currency    string          `json:"currency" validate:"omitempty,len=3,alpha"`
	Category    string          `json:"category" validate:"required"`
	Date        string          `json:"date" validate:"required,datetime=2006-01-02"`
	Type        string          `json:"type" validate:"required,oneof=Expense Income Investment"`
}

// ListTransactionsQuery contains the pagination and filter query parameters
type ListTransactionsQuery struct {
	Description string `query:"description"`
	Type        string `query:"type" validate:"omitempty,oneof=ALL Expense Income Investment"`
	Category    string `query:"category"`
	StartDate   string `query:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate     string `query:"endDate" validate:"omitempty,datetime=2006-01-02"`
	Cursor      string `query:"cursor" validate:"omitempty,uuid"`
	Limit       int    `query:"limit" validate:"omitempty,min=1,max=100"`
}

// Transaction Response DTOs

// TransactionResponse represents a single stored transaction
type TransactionResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Date        string          `json:"date"`
	Type        string          `json:"type"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// PaginatedTransactionsResponse is one page of transactions. NextCursor is
// absent on the final page.
type PaginatedTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextCursor   *string               `json:"nextCursor,omitempty"`
}

// DeleteTransactionResponse reports what was removed
type DeleteTransactionResponse struct {
	Type   string          `json:"type"`
	Amount decimal.Decimal `json:"amount"`
}

// ToTransactionResponse maps a stored transaction to its response shape
func ToTransactionResponse(transaction *models.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          transaction.ID.String(),
		Description: transaction.Description,
		Amount:      transaction.Amount,
		Category:    transaction.Category,
		Date:        transaction.Date.Format("2006-01-02"),
		Type:        transaction.Type,
		CreatedAt:   transaction.CreatedAt,
	}
}

// ToPaginatedTransactionsResponse maps a page of transactions plus its
// continuation cursor
func ToPaginatedTransactionsResponse(transactions []models.Transaction, nextCursor *string) PaginatedTransactionsResponse {
	responses := make([]TransactionResponse, 0, len(transactions))
	for i := range transactions {
		responses = append(responses, ToTransactionResponse(&transactions[i]))
	}
	return PaginatedTransactionsResponse{
		Transactions: responses,
		NextCursor:   nextCursor,
	}
}
