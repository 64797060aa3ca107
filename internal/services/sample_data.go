package services

import (
	"fmt"
	"log/slog"
	"time"

	"pocketbook/internal/models"
	"pocketbook/internal/repositories"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"
)

// SampleDataService seeds a demo account with a year of plausible activity.
// Rows go through the same repository path as real writes, so the seeded
// balance always matches the seeded rows.
type SampleDataService struct {
	userRepo        repositories.UserRepositoryInterface
	transactionRepo repositories.TransactionRepositoryInterface
	passwordService PasswordServiceInterface
	logger          *slog.Logger
}

// NewSampleDataService creates a new sample data seeder
func NewSampleDataService(
	userRepo repositories.UserRepositoryInterface,
	transactionRepo repositories.TransactionRepositoryInterface,
	passwordService PasswordServiceInterface,
	logger *slog.Logger,
) *SampleDataService {
	return &SampleDataService{
		userRepo:        userRepo,
		transactionRepo: transactionRepo,
		passwordService: passwordService,
		logger:          logger,
	}
}

// SeedDemoUser creates the demo user with twelve months of history. Seeding
// is skipped when the email is already registered.
func (s *SampleDataService) SeedDemoUser(email, password string) (*models.User, error) {
	if existing, err := s.userRepo.GetByEmail(email); err == nil {
		s.logger.Info("demo user already present, skipping seed",
			slog.String("user_id", existing.ID.String()))
		return existing, nil
	}

	hash, err := s.passwordService.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash demo password: %w", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		Name:         gofakeit.Name(),
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create demo user: %w", err)
	}

	count, err := s.seedHistory(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("demo user seeded",
		slog.String("user_id", user.ID.String()),
		slog.Int("transactions", count),
	)

	return user, nil
}

func (s *SampleDataService) seedHistory(user *models.User) (int, error) {
	count := 0
	monthStart := time.Now().AddDate(-1, 0, 0)

	for month := 0; month < 12; month++ {
		base := monthStart.AddDate(0, month, 0)

		rows := []*models.Transaction{
			s.incomeRow(user, "Salary deposit", models.CategorySalary, 3600, 4400, base, 1),
			s.expenseRow(user, "Rent", models.CategoryHousing, 1400, 1700, base, 1),
			s.expenseRow(user, gofakeit.Company()+" internet", models.CategorySubscriptions, 60, 90, base, 3),
		}

		groceryRuns := gofakeit.Number(3, 6)
		for i := 0; i < groceryRuns; i++ {
			rows = append(rows, s.expenseRow(user, gofakeit.Company()+" groceries",
				models.CategoryGroceries, 30, 160, base, gofakeit.Number(2, 27)))
		}

		outings := gofakeit.Number(1, 5)
		for i := 0; i < outings; i++ {
			rows = append(rows, s.expenseRow(user, "Dinner at "+gofakeit.LastName()+"'s",
				models.CategoryEatingOut, 18, 95, base, gofakeit.Number(2, 27)))
		}

		if gofakeit.Bool() {
			rows = append(rows, s.investmentRow(user, "Index fund purchase",
				models.CategoryTFSA, 200, 800, base, gofakeit.Number(2, 27)))
		}

		for _, row := range rows {
			if err := s.transactionRepo.CreateWithBalance(row); err != nil {
				return count, fmt.Errorf("failed to seed transaction: %w", err)
			}
			count++
		}
	}

	return count, nil
}

func (s *SampleDataService) expenseRow(user *models.User, description, category string, min, max float64, base time.Time, day int) *models.Transaction {
	return s.row(user, models.TransactionTypeExpense, description, category, min, max, base, day)
}

func (s *SampleDataService) incomeRow(user *models.User, description, category string, min, max float64, base time.Time, day int) *models.Transaction {
	return s.row(user, models.TransactionTypeIncome, description, category, min, max, base, day)
}

func (s *SampleDataService) investmentRow(user *models.User, description, category string, min, max float64, base time.Time, day int) *models.Transaction {
	return s.row(user, models.TransactionTypeInvestment, description, category, min, max, base, day)
}

func (s *SampleDataService) row(user *models.User, txType, description, category string, min, max float64, base time.Time, day int) *models.Transaction {
	amount := decimal.NewFromFloat(gofakeit.Float64Range(min, max)).Round(2)
	date := time.Date(base.Year(), base.Month(), day, 0, 0, 0, 0, time.UTC)

	return &models.Transaction{
		UserID:      user.ID,
		Description: description,
		Amount:      amount,
		Category:    category,
		Date:        date,
		Type:        txType,
	}
}
