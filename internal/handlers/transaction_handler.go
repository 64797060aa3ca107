package handlers

import (
	stderrors "errors"
	"net/http"

	"pocketbook/internal/dto"
	"pocketbook/internal/errors"
	"pocketbook/internal/models"
	"pocketbook/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// TransactionHandler handles transaction endpoints
type TransactionHandler struct {
	transactionService services.TransactionServiceInterface
	currencyService    services.CurrencyServiceInterface
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(
	transactionService services.TransactionServiceInterface,
	currencyService services.CurrencyServiceInterface,
) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
		currencyService:    currencyService,
	}
}

// Create records a new transaction for the authenticated user
func (h *TransactionHandler) Create(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.CreateTransactionRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	transaction, err := h.transactionService.Create(c.Request().Context(), userID, &req)
	if err != nil {
		return h.mapCreateError(c, err)
	}

	return c.JSON(http.StatusCreated, dto.ToTransactionResponse(transaction))
}

func (h *TransactionHandler) mapCreateError(c echo.Context, err error) error {
	switch {
	case stderrors.Is(err, models.ErrEmptyDescription):
		return SendError(c, errors.TransactionInvalidDescription)
	case stderrors.Is(err, models.ErrInvalidAmount):
		return SendError(c, errors.TransactionInvalidAmount)
	case stderrors.Is(err, models.ErrInvalidCategory):
		return SendError(c, errors.TransactionInvalidCategory)
	case stderrors.Is(err, models.ErrInvalidTransactionType):
		return SendError(c, errors.TransactionInvalidType)
	case stderrors.Is(err, services.ErrInvalidDate):
		return SendError(c, errors.ValidationInvalidDate)
	case stderrors.Is(err, services.ErrUnsupportedCurrency):
		return SendError(c, errors.ConversionUnsupportedCurrency)
	case stderrors.Is(err, services.ErrConversionFailed):
		return SendError(c, errors.ConversionFailed)
	default:
		return SendSystemError(c, err)
	}
}

// List returns one page of the user's transactions
func (h *TransactionHandler) List(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var query dto.ListTransactionsQuery
	if err := c.Bind(&query); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid query parameters"))
	}
	if err := c.Validate(query); err != nil {
		return err
	}

	filters, err := buildTransactionFilters(&query)
	if err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	transactions, nextCursor, err := h.transactionService.List(userID, filters)
	if err != nil {
		return SendSystemError(c, err)
	}

	var cursor *string
	if nextCursor != nil {
		value := nextCursor.String()
		cursor = &value
	}

	return c.JSON(http.StatusOK, dto.ToPaginatedTransactionsResponse(transactions, cursor))
}

// ListAll returns the user's entire transaction log without pagination
func (h *TransactionHandler) ListAll(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	transactions, err := h.transactionService.ListAll(userID)
	if err != nil {
		return SendSystemError(c, err)
	}

	responses := make([]dto.TransactionResponse, 0, len(transactions))
	for i := range transactions {
		responses = append(responses, dto.ToTransactionResponse(&transactions[i]))
	}

	return c.JSON(http.StatusOK, responses)
}

// Get returns one transaction owned by the authenticated user
func (h *TransactionHandler) Get(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	transactionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid transaction ID"))
	}

	transaction, err := h.transactionService.GetByID(userID, transactionID)
	if err != nil {
		if stderrors.Is(err, services.ErrTransactionNotFound) {
			return SendError(c, errors.TransactionNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.ToTransactionResponse(transaction))
}

// Delete removes a transaction and reverses its balance contribution
func (h *TransactionHandler) Delete(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	transactionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid transaction ID"))
	}

	summary, err := h.transactionService.Delete(c.Request().Context(), userID, transactionID)
	if err != nil {
		if stderrors.Is(err, services.ErrTransactionNotFound) {
			return SendError(c, errors.TransactionNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.DeleteTransactionResponse{
		Type:   summary.Type,
		Amount: summary.Amount,
	})
}

// Balance returns the user's running balance in the base currency
func (h *TransactionHandler) Balance(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	balance, err := h.transactionService.GetBalance(userID)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.BalanceResponse{
		Balance:  balance,
		Currency: h.currencyService.BaseCurrency(),
	})
}

// Categories lists the valid categories per transaction type, so clients can
// populate pickers without hardcoding the enumerations
func (h *TransactionHandler) Categories(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string][]string{
		models.TransactionTypeExpense:    models.CategoriesForType(models.TransactionTypeExpense),
		models.TransactionTypeIncome:     models.CategoriesForType(models.TransactionTypeIncome),
		models.TransactionTypeInvestment: models.CategoriesForType(models.TransactionTypeInvestment),
	})
}
