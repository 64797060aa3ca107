package handlers

import (
	"fmt"
	"time"

	"pocketbook/internal/dto"
	"pocketbook/internal/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ErrUnauthorized is returned when user context is invalid
var ErrUnauthorized = fmt.Errorf("unauthorized")

// getUserIDFromContext extracts the authenticated user's ID set by the auth
// middleware. Returns ErrUnauthorized if missing or invalid.
func getUserIDFromContext(c echo.Context) (uuid.UUID, error) {
	userIDValue := c.Get("user_id")
	if userIDValue == nil {
		return uuid.UUID{}, ErrUnauthorized
	}

	userID, ok := userIDValue.(uuid.UUID)
	if !ok {
		return uuid.UUID{}, ErrUnauthorized
	}

	return userID, nil
}

// buildTransactionFilters converts validated query parameters into store
// filters. Dates are day-granular; the end date's whole day is included.
func buildTransactionFilters(query *dto.ListTransactionsQuery) (models.TransactionFilters, error) {
	filters := models.TransactionFilters{
		Description: query.Description,
		Type:        query.Type,
		Category:    query.Category,
		Limit:       query.Limit,
	}

	if query.StartDate != "" {
		start, err := time.Parse("2006-01-02", query.StartDate)
		if err != nil {
			return filters, fmt.Errorf("invalid start date: %w", err)
		}
		filters.StartDate = &start
	}
	if query.EndDate != "" {
		end, err := time.Parse("2006-01-02", query.EndDate)
		if err != nil {
			return filters, fmt.Errorf("invalid end date: %w", err)
		}
		filters.EndDate = &end
	}
	if query.Cursor != "" {
		cursor, err := uuid.Parse(query.Cursor)
		if err != nil {
			return filters, fmt.Errorf("invalid cursor: %w", err)
		}
		filters.Cursor = cursor
	}

	return filters, nil
}
