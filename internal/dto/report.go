package dto

import (
	"github.com/shopspring/decimal"
)

// Report Request DTOs

// ReportRangeQuery selects the type and date window for total and breakdown
// reports. The window is [startDate, endDate).
type ReportRangeQuery struct {
	Type      string `query:"type" validate:"required,oneof=Expense Income Investment"`
	StartDate string `query:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate   string `query:"endDate" validate:"required,datetime=2006-01-02"`
}

// Report Response DTOs

// TotalResponse is the summed amount for one type over a date window.
// Expense totals are reported as negative outflows.
type TotalResponse struct {
	Type      string          `json:"type"`
	StartDate string          `json:"startDate"`
	EndDate   string          `json:"endDate"`
	Total     decimal.Decimal `json:"total"`
}

// CategoryAmount is one category's summed amount
type CategoryAmount struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// CategoryBreakdownResponse lists per-category sums, largest first
type CategoryBreakdownResponse struct {
	Type       string           `json:"type"`
	StartDate  string           `json:"startDate"`
	EndDate    string           `json:"endDate"`
	Categories []CategoryAmount `json:"categories"`
}

// MonthActivity is one month's signed expense outflow and income inflow
type MonthActivity struct {
	Expenses decimal.Decimal `json:"expenses"`
	Income   decimal.Decimal `json:"income"`
}

// YearInReviewResponse maps "Jan 2006" style month labels to activity.
// Months without transactions are absent.
type YearInReviewResponse struct {
	Months map[string]MonthActivity `json:"months"`
}
