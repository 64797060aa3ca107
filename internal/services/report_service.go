package services

import (
	"fmt"
	"time"

	"pocketbook/internal/models"
	"pocketbook/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ReportService derives aggregate views from the transaction log. All sums
// are computed by the store; this layer only applies display-sign rules and
// the month bucketing.
type ReportService struct {
	transactionRepo repositories.TransactionRepositoryInterface
	now             func() time.Time
}

// NewReportService creates a new report service
func NewReportService(transactionRepo repositories.TransactionRepositoryInterface) ReportServiceInterface {
	return &ReportService{
		transactionRepo: transactionRepo,
		now:             time.Now,
	}
}

// TotalByType sums amounts of one type over [start, end). Expense totals are
// negated so outflows read as negative; income and investment sums come back
// raw.
func (s *ReportService) TotalByType(userID uuid.UUID, transactionType string, start, end time.Time) (decimal.Decimal, error) {
	if !models.IsValidTransactionType(transactionType) {
		return decimal.Zero, models.ErrInvalidTransactionType
	}

	total, err := s.transactionRepo.SumByType(userID, transactionType, start, end)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to total transactions: %w", err)
	}

	if transactionType == models.TransactionTypeExpense {
		return total.Neg(), nil
	}
	return total, nil
}

// CategoryBreakdown sums per category over [start, end), largest sum first
func (s *ReportService) CategoryBreakdown(userID uuid.UUID, transactionType string, start, end time.Time) ([]models.CategorySummary, error) {
	if !models.IsValidTransactionType(transactionType) {
		return nil, models.ErrInvalidTransactionType
	}

	return s.transactionRepo.GroupByCategory(userID, transactionType, start, end)
}

// YearInReview buckets the user's recent activity by month. The window opens
// at the start of the year one year back, so a review requested in mid 2026
// reaches back to January 2025. Expense amounts accumulate negatively,
// income positively, and investments are excluded. Months without rows are
// absent from the result.
func (s *ReportService) YearInReview(userID uuid.UUID) (models.MonthlySummary, error) {
	oneYearBack := s.now().AddDate(-1, 0, 0)
	since := time.Date(oneYearBack.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)

	sums, err := s.transactionRepo.GroupByTypeAndDate(userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to build year in review: %w", err)
	}

	summary := models.MonthlySummary{}
	for _, row := range sums {
		var delta models.MonthSummary
		switch row.Type {
		case models.TransactionTypeExpense:
			delta.Expenses = row.Amount.Neg()
		case models.TransactionTypeIncome:
			delta.Income = row.Amount
		default:
			continue
		}

		label := models.MonthLabel(row.Date)
		bucket := summary[label]
		bucket.Expenses = bucket.Expenses.Add(delta.Expenses)
		bucket.Income = bucket.Income.Add(delta.Income)
		summary[label] = bucket
	}

	return summary, nil
}
