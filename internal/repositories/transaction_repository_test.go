package repositories

import (
	"testing"
	"time"

	"pocketbook/internal/database"
	"pocketbook/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// TransactionRepositorySuite defines the test suite for TransactionRepository
type TransactionRepositorySuite struct {
	suite.Suite
	db       *database.DB
	repo     TransactionRepositoryInterface
	userRepo UserRepositoryInterface
	testUser *models.User
}

func (s *TransactionRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewTransactionRepository(s.db.DB)
	s.userRepo = NewUserRepository(s.db.DB)
	s.testUser = database.CreateTestUser(s.T(), s.db, "test@example.com")
}

func (s *TransactionRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func TestTransactionRepositorySuite(t *testing.T) {
	suite.Run(t, new(TransactionRepositorySuite))
}

func (s *TransactionRepositorySuite) newTransaction(txType, category string, amount float64, date time.Time) *models.Transaction {
	return &models.Transaction{
		UserID:      s.testUser.ID,
		Description: "test transaction",
		Amount:      decimal.NewFromFloat(amount),
		Category:    category,
		Date:        date,
		Type:        txType,
	}
}

func (s *TransactionRepositorySuite) balance() decimal.Decimal {
	balance, err := s.userRepo.GetBalance(s.testUser.ID)
	s.Require().NoError(err)
	return balance
}

func (s *TransactionRepositorySuite) TestCreateWithBalance_Expense() {
	tx := s.newTransaction(models.TransactionTypeExpense, models.CategoryGroceries, 50, time.Now())

	err := s.repo.CreateWithBalance(tx)
	s.NoError(err)
	s.NotEqual(uuid.Nil, tx.ID)
	s.NotZero(tx.CreatedAt)
	s.True(s.balance().Equal(decimal.NewFromInt(-50)))
}

func (s *TransactionRepositorySuite) TestCreateWithBalance_Income() {
	tx := s.newTransaction(models.TransactionTypeIncome, models.CategorySalary, 200, time.Now())

	s.NoError(s.repo.CreateWithBalance(tx))
	s.True(s.balance().Equal(decimal.NewFromInt(200)))
}

func (s *TransactionRepositorySuite) TestCreateWithBalance_InvestmentLeavesBalanceUntouched() {
	tx := s.newTransaction(models.TransactionTypeInvestment, models.CategoryTFSA, 1000, time.Now())

	s.NoError(s.repo.CreateWithBalance(tx))
	s.True(s.balance().IsZero())
}

func (s *TransactionRepositorySuite) TestCreateWithBalance_InvalidCategoryWritesNothing() {
	tx := s.newTransaction(models.TransactionTypeExpense, models.CategorySalary, 50, time.Now())

	err := s.repo.CreateWithBalance(tx)
	s.ErrorIs(err, models.ErrInvalidCategory)

	// Model hook failure aborts the whole unit of work
	var count int64
	s.db.Model(&models.Transaction{}).Count(&count)
	s.Zero(count)
	s.True(s.balance().IsZero())
}

// Spec scenario: 0 → expense 50 → -50 → income 200 → 150 → delete expense → 200
func (s *TransactionRepositorySuite) TestBalanceLifecycleScenario() {
	day := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)

	expense := s.newTransaction(models.TransactionTypeExpense, models.CategoryGroceries, 50, day)
	s.NoError(s.repo.CreateWithBalance(expense))
	s.True(s.balance().Equal(decimal.NewFromInt(-50)))

	income := s.newTransaction(models.TransactionTypeIncome, models.CategorySalary, 200, day)
	s.NoError(s.repo.CreateWithBalance(income))
	s.True(s.balance().Equal(decimal.NewFromInt(150)))

	summary, err := s.repo.DeleteWithBalance(s.testUser.ID, expense.ID)
	s.NoError(err)
	s.Equal(models.TransactionTypeExpense, summary.Type)
	s.True(summary.Amount.Equal(decimal.NewFromInt(50)))
	s.True(s.balance().Equal(decimal.NewFromInt(200)))
}

func (s *TransactionRepositorySuite) TestDeleteThenRecreateRoundTrip() {
	tx := s.newTransaction(models.TransactionTypeIncome, models.CategoryFreelance, 75.25, time.Now())
	s.NoError(s.repo.CreateWithBalance(tx))
	before := s.balance()

	_, err := s.repo.DeleteWithBalance(s.testUser.ID, tx.ID)
	s.NoError(err)
	s.True(s.balance().IsZero())

	recreated := s.newTransaction(models.TransactionTypeIncome, models.CategoryFreelance, 75.25, tx.Date)
	s.NoError(s.repo.CreateWithBalance(recreated))
	s.True(s.balance().Equal(before))
}

// Replaying any sequence of creates and deletes, the balance must equal
// sum(income) - sum(expense) over the rows still present.
func (s *TransactionRepositorySuite) TestBalanceMatchesActiveRows() {
	day := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	created := []*models.Transaction{
		s.newTransaction(models.TransactionTypeIncome, models.CategorySalary, 3000, day),
		s.newTransaction(models.TransactionTypeExpense, models.CategoryHousing, 1450, day),
		s.newTransaction(models.TransactionTypeExpense, models.CategoryEatingOut, 62.50, day),
		s.newTransaction(models.TransactionTypeInvestment, models.CategoryRRSP, 500, day),
		s.newTransaction(models.TransactionTypeIncome, models.CategoryGift, 100, day),
	}
	for _, tx := range created {
		s.Require().NoError(s.repo.CreateWithBalance(tx))
	}

	// Delete the eating-out expense and the gift
	_, err := s.repo.DeleteWithBalance(s.testUser.ID, created[2].ID)
	s.Require().NoError(err)
	_, err = s.repo.DeleteWithBalance(s.testUser.ID, created[4].ID)
	s.Require().NoError(err)

	remaining, err := s.repo.ListByUser(s.testUser.ID)
	s.Require().NoError(err)

	expected := decimal.Zero
	for _, tx := range remaining {
		switch tx.Type {
		case models.TransactionTypeIncome:
			expected = expected.Add(tx.Amount)
		case models.TransactionTypeExpense:
			expected = expected.Sub(tx.Amount)
		}
	}

	s.True(s.balance().Equal(expected), "balance %s, expected %s", s.balance(), expected)
	s.True(expected.Equal(decimal.NewFromInt(1550)))
}

func (s *TransactionRepositorySuite) TestDeleteWithBalance_NotFound() {
	_, err := s.repo.DeleteWithBalance(s.testUser.ID, uuid.New())
	s.ErrorIs(err, ErrTransactionNotFound)
}

func (s *TransactionRepositorySuite) TestDeleteWithBalance_ForeignRowNotFound() {
	other := database.CreateTestUser(s.T(), s.db, "other@example.com")

	tx := s.newTransaction(models.TransactionTypeIncome, models.CategorySalary, 100, time.Now())
	s.Require().NoError(s.repo.CreateWithBalance(tx))

	// Another user must not be able to delete (or drain the balance of) a
	// row they do not own
	_, err := s.repo.DeleteWithBalance(other.ID, tx.ID)
	s.ErrorIs(err, ErrTransactionNotFound)
	s.True(s.balance().Equal(decimal.NewFromInt(100)))
}

func (s *TransactionRepositorySuite) TestListByUser_Ordering() {
	older := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	first := s.newTransaction(models.TransactionTypeExpense, models.CategoryMisc, 10, older)
	first.CreatedAt = time.Date(2026, 3, 5, 8, 0, 0, 0, time.UTC)
	second := s.newTransaction(models.TransactionTypeExpense, models.CategoryMisc, 20, newer)
	second.CreatedAt = time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC)
	// Same date as second, created later: wins the tie-break
	third := s.newTransaction(models.TransactionTypeExpense, models.CategoryMisc, 30, newer)
	third.CreatedAt = time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)

	for _, tx := range []*models.Transaction{first, second, third} {
		s.Require().NoError(s.repo.CreateWithBalance(tx))
	}

	listed, err := s.repo.ListByUser(s.testUser.ID)
	s.Require().NoError(err)
	s.Require().Len(listed, 3)

	s.True(listed[0].Amount.Equal(decimal.NewFromInt(30)))
	s.True(listed[1].Amount.Equal(decimal.NewFromInt(20)))
	s.True(listed[2].Amount.Equal(decimal.NewFromInt(10)))
}

// Spec scenario: five rows, limit 2 -> pages of 2, 2, 1 with the final page
// carrying no continuation cursor.
func (s *TransactionRepositorySuite) TestListPaginated_PageWalk() {
	day := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		tx := s.newTransaction(models.TransactionTypeExpense, models.CategoryMisc, float64(i+1), day)
		s.Require().NoError(s.repo.CreateWithBalance(tx))
		time.Sleep(2 * time.Millisecond) // distinct v7 timestamps
	}

	filters := models.TransactionFilters{Limit: 2}

	page1, cursor1, err := s.repo.ListPaginated(s.testUser.ID, filters)
	s.Require().NoError(err)
	s.Len(page1, 2)
	s.Require().NotNil(cursor1)

	filters.Cursor = *cursor1
	page2, cursor2, err := s.repo.ListPaginated(s.testUser.ID, filters)
	s.Require().NoError(err)
	s.Len(page2, 2)
	s.Require().NotNil(cursor2)

	filters.Cursor = *cursor2
	page3, cursor3, err := s.repo.ListPaginated(s.testUser.ID, filters)
	s.Require().NoError(err)
	s.Len(page3, 1)
	s.Nil(cursor3)

	// Newest first, no row repeated across pages
	seen := map[uuid.UUID]bool{}
	var all []models.Transaction
	all = append(all, page1...)
	all = append(all, page2...)
	all = append(all, page3...)
	s.Len(all, 5)
	for i, tx := range all {
		s.False(seen[tx.ID], "row %s returned twice", tx.ID)
		seen[tx.ID] = true
		if i > 0 {
			s.True(all[i-1].ID.String() > tx.ID.String(), "ids not descending")
		}
	}
}

func (s *TransactionRepositorySuite) TestListPaginated_ConjunctiveFilters() {
	day := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	groceries := s.newTransaction(models.TransactionTypeExpense, models.CategoryGroceries, 40, day)
	groceries.Description = "Metro weekly shop"
	rent := s.newTransaction(models.TransactionTypeExpense, models.CategoryHousing, 1450, day)
	rent.Description = "Monthly rent"
	salary := s.newTransaction(models.TransactionTypeIncome, models.CategorySalary, 4000, day)
	salary.Description = "Paycheque"

	for _, tx := range []*models.Transaction{groceries, rent, salary} {
		s.Require().NoError(s.repo.CreateWithBalance(tx))
	}

	rows, _, err := s.repo.ListPaginated(s.testUser.ID, models.TransactionFilters{
		Type:     models.TransactionTypeExpense,
		Category: models.CategoryGroceries,
		Limit:    10,
	})
	s.Require().NoError(err)
	s.Require().Len(rows, 1)
	s.Equal("Metro weekly shop", rows[0].Description)

	// Type filter alone
	rows, _, err = s.repo.ListPaginated(s.testUser.ID, models.TransactionFilters{
		Type:  models.TransactionTypeExpense,
		Limit: 10,
	})
	s.Require().NoError(err)
	s.Len(rows, 2)

	// ALL disables the filter
	rows, _, err = s.repo.ListPaginated(s.testUser.ID, models.TransactionFilters{
		Type:     models.FilterAll,
		Category: models.FilterAll,
		Limit:    10,
	})
	s.Require().NoError(err)
	s.Len(rows, 3)
}

func (s *TransactionRepositorySuite) TestListPaginated_DescriptionCaseInsensitive() {
	tx := s.newTransaction(models.TransactionTypeExpense, models.CategoryEatingOut, 25, time.Now())
	tx.Description = "Dinner at Luigi's"
	s.Require().NoError(s.repo.CreateWithBalance(tx))

	rows, _, err := s.repo.ListPaginated(s.testUser.ID, models.TransactionFilters{
		Description: "luigi",
		Limit:       10,
	})
	s.Require().NoError(err)
	s.Len(rows, 1)

	rows, _, err = s.repo.ListPaginated(s.testUser.ID, models.TransactionFilters{
		Description: "LUIGI",
		Limit:       10,
	})
	s.Require().NoError(err)
	s.Len(rows, 1)
}

func (s *TransactionRepositorySuite) TestListPaginated_DateRange() {
	march := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	april := time.Date(2026, 4, 15, 12, 0, 0, 0, time.UTC)

	s.Require().NoError(s.repo.CreateWithBalance(
		s.newTransaction(models.TransactionTypeExpense, models.CategoryMisc, 10, march)))
	s.Require().NoError(s.repo.CreateWithBalance(
		s.newTransaction(models.TransactionTypeExpense, models.CategoryMisc, 20, april)))

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	rows, _, err := s.repo.ListPaginated(s.testUser.ID, models.TransactionFilters{
		StartDate: &start,
		EndDate:   &end,
		Limit:     10,
	})
	s.Require().NoError(err)
	s.Require().Len(rows, 1)
	s.True(rows[0].Amount.Equal(decimal.NewFromInt(10)))

	// End date day itself is included
	endOnDay := time.Date(2026, 4, 15, 0, 0, 0, 0, time.UTC)
	rows, _, err = s.repo.ListPaginated(s.testUser.ID, models.TransactionFilters{
		StartDate: &start,
		EndDate:   &endOnDay,
		Limit:     10,
	})
	s.Require().NoError(err)
	s.Len(rows, 2)
}

func (s *TransactionRepositorySuite) TestSumByType() {
	start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	s.Require().NoError(s.repo.CreateWithBalance(
		s.newTransaction(models.TransactionTypeExpense, models.CategoryGroceries, 100.50, start)))
	s.Require().NoError(s.repo.CreateWithBalance(
		s.newTransaction(models.TransactionTypeExpense, models.CategoryHealth, 49.50, start.AddDate(0, 0, 10))))
	// Outside the range: end date is exclusive
	s.Require().NoError(s.repo.CreateWithBalance(
		s.newTransaction(models.TransactionTypeExpense, models.CategoryMisc, 999, end)))
	// Different type
	s.Require().NoError(s.repo.CreateWithBalance(
		s.newTransaction(models.TransactionTypeIncome, models.CategorySalary, 5000, start)))

	total, err := s.repo.SumByType(s.testUser.ID, models.TransactionTypeExpense, start, end)
	s.Require().NoError(err)
	s.True(total.Equal(decimal.NewFromInt(150)), "got %s", total)
}

func (s *TransactionRepositorySuite) TestSumByType_EmptyRangeIsZero() {
	total, err := s.repo.SumByType(s.testUser.ID, models.TransactionTypeExpense,
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))
	s.Require().NoError(err)
	s.True(total.IsZero())
}

func (s *TransactionRepositorySuite) TestGroupByCategory_SortedBySumDescending() {
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	s.Require().NoError(s.repo.CreateWithBalance(
		s.newTransaction(models.TransactionTypeExpense, models.CategoryGroceries, 80, start)))
	s.Require().NoError(s.repo.CreateWithBalance(
		s.newTransaction(models.TransactionTypeExpense, models.CategoryGroceries, 70, start.AddDate(0, 0, 2))))
	s.Require().NoError(s.repo.CreateWithBalance(
		s.newTransaction(models.TransactionTypeExpense, models.CategoryHousing, 1450, start)))
	s.Require().NoError(s.repo.CreateWithBalance(
		s.newTransaction(models.TransactionTypeExpense, models.CategoryEatingOut, 55, start)))

	summaries, err := s.repo.GroupByCategory(s.testUser.ID, models.TransactionTypeExpense, start, end)
	s.Require().NoError(err)
	s.Require().Len(summaries, 3)

	s.Equal(models.CategoryHousing, summaries[0].Category)
	s.True(summaries[0].Amount.Equal(decimal.NewFromInt(1450)))
	s.Equal(models.CategoryGroceries, summaries[1].Category)
	s.True(summaries[1].Amount.Equal(decimal.NewFromInt(150)))
	s.Equal(models.CategoryEatingOut, summaries[2].Category)
}

func (s *TransactionRepositorySuite) TestGroupByTypeAndDate() {
	day1 := time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC)

	s.Require().NoError(s.repo.CreateWithBalance(
		s.newTransaction(models.TransactionTypeExpense, models.CategoryGroceries, 30, day1)))
	s.Require().NoError(s.repo.CreateWithBalance(
		s.newTransaction(models.TransactionTypeExpense, models.CategoryMisc, 20, day1)))
	s.Require().NoError(s.repo.CreateWithBalance(
		s.newTransaction(models.TransactionTypeIncome, models.CategorySalary, 4000, day2)))

	sums, err := s.repo.GroupByTypeAndDate(s.testUser.ID, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	s.Require().NoError(err)
	s.Require().Len(sums, 2)

	byType := map[string]decimal.Decimal{}
	for _, row := range sums {
		byType[row.Type] = row.Amount
	}
	s.True(byType[models.TransactionTypeExpense].Equal(decimal.NewFromInt(50)))
	s.True(byType[models.TransactionTypeIncome].Equal(decimal.NewFromInt(4000)))
}

func (s *TransactionRepositorySuite) TestUsersAreIsolated() {
	other := database.CreateTestUser(s.T(), s.db, "other@example.com")

	mine := s.newTransaction(models.TransactionTypeIncome, models.CategorySalary, 100, time.Now())
	s.Require().NoError(s.repo.CreateWithBalance(mine))

	theirs := &models.Transaction{
		UserID:      other.ID,
		Description: "their income",
		Amount:      decimal.NewFromInt(900),
		Category:    models.CategorySalary,
		Date:        time.Now(),
		Type:        models.TransactionTypeIncome,
	}
	s.Require().NoError(s.repo.CreateWithBalance(theirs))

	listed, err := s.repo.ListByUser(s.testUser.ID)
	s.Require().NoError(err)
	s.Len(listed, 1)

	otherBalance, err := s.userRepo.GetBalance(other.ID)
	s.Require().NoError(err)
	s.True(otherBalance.Equal(decimal.NewFromInt(900)))
	s.True(s.balance().Equal(decimal.NewFromInt(100)))
}
