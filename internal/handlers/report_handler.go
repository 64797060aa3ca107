package handlers

import (
	stderrors "errors"
	"net/http"
	"time"

	"pocketbook/internal/dto"
	"pocketbook/internal/errors"
	"pocketbook/internal/models"
	"pocketbook/internal/services"

	"github.com/labstack/echo/v4"
)

// ReportHandler handles aggregate report endpoints
type ReportHandler struct {
	reportService services.ReportServiceInterface
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService services.ReportServiceInterface) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

var errInvalidReportRange = stderrors.New("invalid report range")

func (h *ReportHandler) bindRangeQuery(c echo.Context) (*dto.ReportRangeQuery, time.Time, time.Time, error) {
	var query dto.ReportRangeQuery
	if err := c.Bind(&query); err != nil {
		return nil, time.Time{}, time.Time{}, errInvalidReportRange
	}
	if err := c.Validate(query); err != nil {
		return nil, time.Time{}, time.Time{}, err
	}

	start, err := time.Parse("2006-01-02", query.StartDate)
	if err != nil {
		return nil, time.Time{}, time.Time{}, errInvalidReportRange
	}
	end, err := time.Parse("2006-01-02", query.EndDate)
	if err != nil {
		return nil, time.Time{}, time.Time{}, errInvalidReportRange
	}
	if !end.After(start) {
		return nil, time.Time{}, time.Time{}, errInvalidReportRange
	}

	return &query, start, end, nil
}

// Total returns the summed amount for one type over a date window
func (h *ReportHandler) Total(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	query, start, end, bindErr := h.bindRangeQuery(c)
	if bindErr != nil {
		if stderrors.Is(bindErr, errInvalidReportRange) {
			return SendError(c, errors.ValidationInvalidDate)
		}
		return bindErr
	}

	total, err := h.reportService.TotalByType(userID, query.Type, start, end)
	if err != nil {
		if stderrors.Is(err, models.ErrInvalidTransactionType) {
			return SendError(c, errors.TransactionInvalidType)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.TotalResponse{
		Type:      query.Type,
		StartDate: query.StartDate,
		EndDate:   query.EndDate,
		Total:     total,
	})
}

// CategoryBreakdown returns per-category sums for one type over a date window
func (h *ReportHandler) CategoryBreakdown(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	query, start, end, bindErr := h.bindRangeQuery(c)
	if bindErr != nil {
		if stderrors.Is(bindErr, errInvalidReportRange) {
			return SendError(c, errors.ValidationInvalidDate)
		}
		return bindErr
	}

	summaries, err := h.reportService.CategoryBreakdown(userID, query.Type, start, end)
	if err != nil {
		if stderrors.Is(err, models.ErrInvalidTransactionType) {
			return SendError(c, errors.TransactionInvalidType)
		}
		return SendSystemError(c, err)
	}

	categories := make([]dto.CategoryAmount, 0, len(summaries))
	for _, s := range summaries {
		categories = append(categories, dto.CategoryAmount{
			Category: s.Category,
			Amount:   s.Amount,
		})
	}

	return c.JSON(http.StatusOK, dto.CategoryBreakdownResponse{
		Type:       query.Type,
		StartDate:  query.StartDate,
		EndDate:    query.EndDate,
		Categories: categories,
	})
}

// YearInReview returns monthly expense and income buckets for roughly the
// last year of activity
func (h *ReportHandler) YearInReview(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	summary, err := h.reportService.YearInReview(userID)
	if err != nil {
		return SendSystemError(c, err)
	}

	months := make(map[string]dto.MonthActivity, len(summary))
	for label, bucket := range summary {
		months[label] = dto.MonthActivity{
			Expenses: bucket.Expenses,
			Income:   bucket.Income,
		}
	}

	return c.JSON(http.StatusOK, dto.YearInReviewResponse{Months: months})
}
