package models

import (
	"time"

	"github.com/google/uuid"
)

// FilterAll disables a type or category filter.
const FilterAll = "ALL"

// TransactionFilters narrows a paginated transaction listing. All supplied
// filters are conjunctive. Description matching is a case-insensitive
// substring match. The date range is inclusive of StartDate and runs to the
// end of the EndDate day.
type TransactionFilters struct {
	Description string
	Type        string
	Category    string
	StartDate   *time.Time
	EndDate     *time.Time

	// Cursor is the id of the last row of the previous page; uuid.Nil
	// starts from the newest transaction.
	Cursor uuid.UUID
	Limit  int
}

// FiltersType reports whether a type filter is active
func (f *TransactionFilters) FiltersType() bool {
	return f.Type != "" && f.Type != FilterAll
}

// FiltersCategory reports whether a category filter is active
func (f *TransactionFilters) FiltersCategory() bool {
	return f.Category != "" && f.Category != FilterAll
}
