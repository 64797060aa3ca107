package services

import (
	"context"
	"testing"

	"pocketbook/internal/database"
	"pocketbook/internal/dto"
	"pocketbook/internal/models"
	"pocketbook/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// fakeCurrencyService applies a fixed rate without any network traffic
type fakeCurrencyService struct {
	rate  decimal.Decimal
	calls int
	err   error
}

func (f *fakeCurrencyService) Normalize(ctx context.Context, amount decimal.Decimal, fromCurrency string) (decimal.Decimal, error) {
	if fromCurrency == "" || fromCurrency == "CAD" {
		return amount, nil
	}
	f.calls++
	if f.err != nil {
		return decimal.Zero, f.err
	}
	return amount.Mul(f.rate).Round(2), nil
}

func (f *fakeCurrencyService) BaseCurrency() string { return "CAD" }

// TransactionServiceSuite defines the test suite for TransactionService
type TransactionServiceSuite struct {
	suite.Suite
	db       *database.DB
	userRepo repositories.UserRepositoryInterface
	currency *fakeCurrencyService
	metrics  *recordingMetrics
	service  TransactionServiceInterface
	testUser *models.User
}

func (s *TransactionServiceSuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	transactionRepo := repositories.NewTransactionRepository(s.db.DB)
	s.userRepo = repositories.NewUserRepository(s.db.DB)
	s.currency = &fakeCurrencyService{rate: decimal.NewFromFloat(1.36)}
	s.metrics = newRecordingMetrics()
	s.service = NewTransactionService(transactionRepo, s.userRepo, s.currency, s.metrics, discardLogger())
	s.testUser = database.CreateTestUser(s.T(), s.db, "test@example.com")
}

func (s *TransactionServiceSuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func TestTransactionServiceSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceSuite))
}

func (s *TransactionServiceSuite) createRequest() *dto.CreateTransactionRequest {
	return &dto.CreateTransactionRequest{
		Description: "Weekly groceries",
		Amount:      decimal.NewFromFloat(82.40),
		Category:    models.CategoryGroceries,
		Date:        "2026-05-12",
		Type:        models.TransactionTypeExpense,
	}
}

func (s *TransactionServiceSuite) TestCreate_BaseCurrency() {
	transaction, err := s.service.Create(context.Background(), s.testUser.ID, s.createRequest())

	s.Require().NoError(err)
	s.NotEqual(uuid.Nil, transaction.ID)
	s.True(transaction.Amount.Equal(decimal.NewFromFloat(82.40)))
	s.Zero(s.currency.calls)

	balance, err := s.service.GetBalance(s.testUser.ID)
	s.Require().NoError(err)
	s.True(balance.Equal(decimal.NewFromFloat(-82.40)))
	s.Equal(1, s.metrics.counter("transaction.created.success"))
}

func (s *TransactionServiceSuite) TestCreate_ForeignCurrencyNormalizedAtWrite() {
	req := s.createRequest()
	req.Amount = decimal.NewFromInt(100)
	req.Currency = "USD"

	transaction, err := s.service.Create(context.Background(), s.testUser.ID, req)

	s.Require().NoError(err)
	// Stored amount is already in the base currency; the original currency
	// is discarded
	s.True(transaction.Amount.Equal(decimal.NewFromInt(136)))
	s.Equal(1, s.currency.calls)

	balance, err := s.service.GetBalance(s.testUser.ID)
	s.Require().NoError(err)
	s.True(balance.Equal(decimal.NewFromInt(-136)))
}

func (s *TransactionServiceSuite) TestCreate_ConversionFailureAbortsWrite() {
	req := s.createRequest()
	req.Currency = "USD"
	s.currency.err = ErrConversionFailed

	_, err := s.service.Create(context.Background(), s.testUser.ID, req)

	s.ErrorIs(err, ErrConversionFailed)

	balance, balErr := s.service.GetBalance(s.testUser.ID)
	s.Require().NoError(balErr)
	s.True(balance.IsZero())

	rows, _, listErr := s.service.List(s.testUser.ID, models.TransactionFilters{Limit: 10})
	s.Require().NoError(listErr)
	s.Empty(rows)
}

func (s *TransactionServiceSuite) TestCreate_InvalidCategoryFailsBeforeConversion() {
	req := s.createRequest()
	req.Category = models.CategorySalary
	req.Currency = "USD"

	_, err := s.service.Create(context.Background(), s.testUser.ID, req)

	s.ErrorIs(err, models.ErrInvalidCategory)
	s.Zero(s.currency.calls)
}

func (s *TransactionServiceSuite) TestCreate_InvalidInput() {
	cases := []struct {
		name    string
		mutate  func(*dto.CreateTransactionRequest)
		wantErr error
	}{
		{"empty description", func(r *dto.CreateTransactionRequest) { r.Description = "" }, models.ErrEmptyDescription},
		{"zero amount", func(r *dto.CreateTransactionRequest) { r.Amount = decimal.Zero }, models.ErrInvalidAmount},
		{"negative amount", func(r *dto.CreateTransactionRequest) { r.Amount = decimal.NewFromInt(-5) }, models.ErrInvalidAmount},
		{"unknown type", func(r *dto.CreateTransactionRequest) { r.Type = "Transfer" }, models.ErrInvalidTransactionType},
		{"bad date", func(r *dto.CreateTransactionRequest) { r.Date = "12/05/2026" }, ErrInvalidDate},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			req := s.createRequest()
			tc.mutate(req)

			_, err := s.service.Create(context.Background(), s.testUser.ID, req)
			s.ErrorIs(err, tc.wantErr)
		})
	}
}

func (s *TransactionServiceSuite) TestDelete() {
	transaction, err := s.service.Create(context.Background(), s.testUser.ID, s.createRequest())
	s.Require().NoError(err)

	summary, err := s.service.Delete(context.Background(), s.testUser.ID, transaction.ID)
	s.Require().NoError(err)
	s.Equal(models.TransactionTypeExpense, summary.Type)
	s.True(summary.Amount.Equal(decimal.NewFromFloat(82.40)))

	balance, err := s.service.GetBalance(s.testUser.ID)
	s.Require().NoError(err)
	s.True(balance.IsZero())
}

func (s *TransactionServiceSuite) TestDelete_NotFound() {
	_, err := s.service.Delete(context.Background(), s.testUser.ID, uuid.New())
	s.ErrorIs(err, ErrTransactionNotFound)
}

func (s *TransactionServiceSuite) TestList_DefaultLimit() {
	_, err := s.service.Create(context.Background(), s.testUser.ID, s.createRequest())
	s.Require().NoError(err)

	rows, cursor, err := s.service.List(s.testUser.ID, models.TransactionFilters{})
	s.Require().NoError(err)
	s.Len(rows, 1)
	s.Nil(cursor)
}

func (s *TransactionServiceSuite) TestGetByID() {
	created, err := s.service.Create(context.Background(), s.testUser.ID, s.createRequest())
	s.Require().NoError(err)

	fetched, err := s.service.GetByID(s.testUser.ID, created.ID)
	s.Require().NoError(err)
	s.Equal(created.ID, fetched.ID)

	other := database.CreateTestUser(s.T(), s.db, "other@example.com")
	_, err = s.service.GetByID(other.ID, created.ID)
	s.ErrorIs(err, ErrTransactionNotFound)
}
