package services

import (
	"context"
	"time"

	"pocketbook/internal/dto"
	"pocketbook/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CurrencyServiceInterface converts amounts into the base currency via an
// external exchange-rate collaborator
type CurrencyServiceInterface interface {
	// Normalize converts amount from fromCurrency into the base currency,
	// rounded to 2 decimal places. Same-currency calls return the input
	// unchanged without touching the network.
	Normalize(ctx context.Context, amount decimal.Decimal, fromCurrency string) (decimal.Decimal, error)

	// BaseCurrency returns the currency every stored amount is held in.
	BaseCurrency() string
}

// TransactionServiceInterface defines transaction lifecycle operations
type TransactionServiceInterface interface {
	Create(ctx context.Context, userID uuid.UUID, req *dto.CreateTransactionRequest) (*models.Transaction, error)
	Delete(ctx context.Context, userID, transactionID uuid.UUID) (*models.DeletedSummary, error)
	GetByID(userID, transactionID uuid.UUID) (*models.Transaction, error)
	List(userID uuid.UUID, filters models.TransactionFilters) ([]models.Transaction, *uuid.UUID, error)
	ListAll(userID uuid.UUID) ([]models.Transaction, error)
	GetBalance(userID uuid.UUID) (decimal.Decimal, error)
}

// ReportServiceInterface derives aggregate views from the transaction log
type ReportServiceInterface interface {
	// TotalByType sums amounts of one type over [start, end). Expense
	// totals come back negated so outflows read as negative.
	TotalByType(userID uuid.UUID, transactionType string, start, end time.Time) (decimal.Decimal, error)

	// CategoryBreakdown sums per category over [start, end), largest sum
	// first.
	CategoryBreakdown(userID uuid.UUID, transactionType string, start, end time.Time) ([]models.CategorySummary, error)

	// YearInReview buckets roughly the last year of activity by month.
	// Months with no rows are absent from the result.
	YearInReview(userID uuid.UUID) (models.MonthlySummary, error)
}

type AuthServiceInterface interface {
	Register(req *dto.RegisterRequest) (*models.User, error)
	Login(req *dto.LoginRequest) (*dto.TokenResponse, error)
	GetProfile(userID uuid.UUID) (*models.User, error)
}

type TokenServiceInterface interface {
	GenerateToken(user *models.User) (string, time.Time, error)
	ValidateToken(tokenString string) (*models.CustomClaims, error)
	ExtractTokenFromHeader(authHeader string) (string, error)
}

type PasswordServiceInterface interface {
	ValidatePassword(password string) error
	HashPassword(password string) (string, error)
	ComparePassword(password, hash string) bool
}

type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
}

type CircuitBreakerInterface interface {
	IsOpen() bool
	RecordSuccess()
	RecordFailure()
	GetState() models.CircuitBreakerState
	Reset()
	GetFailureCount() int
}
