package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategorySummary is one row of a category breakdown: the summed amount of
// all matching transactions in a single category.
type CategorySummary struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// MonthSummary holds the signed totals for one month of the year-in-review.
// Expenses accumulate negatively so the value reads as an outflow.
type MonthSummary struct {
	Expenses decimal.Decimal `json:"expenses"`
	Income   decimal.Decimal `json:"income"`
}

// MonthlySummary maps "Jan 2006" style labels to per-month totals. Months
// with no activity are absent rather than zero-filled.
type MonthlySummary map[string]MonthSummary

// MonthLabel formats a transaction date into its year-in-review bucket key.
func MonthLabel(date time.Time) string {
	return date.Format("Jan 2006")
}

// TypeDateSum is an aggregation row: the summed amount of all transactions
// of one type on one date. The year-in-review reduces these into months.
type TypeDateSum struct {
	Type   string          `json:"type"`
	Date   time.Time       `json:"date"`
	Amount decimal.Decimal `json:"amount"`
}
