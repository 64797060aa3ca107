package models

// Each transaction type has its own closed set of categories. A category is
// only meaningful together with its type; validation rejects any pairing
// outside these sets before persistence.

// Expense categories
const (
	CategoryHousing        = "Housing and Utilities"
	CategoryTransportation = "Transportation"
	CategoryGroceries      = "Groceries"
	CategoryEatingOut      = "Eating out"
	CategoryEntertainment  = "Entertainment"
	CategorySubscriptions  = "Subscriptions"
	CategoryHealth         = "Health"
	CategoryMisc           = "Misc"
)

// Income categories
const (
	CategorySalary           = "Salary"
	CategoryFreelance        = "Freelance"
	CategoryInvestmentIncome = "Investment income"
	CategoryGift             = "Gift"
	CategoryOtherIncome      = "Other"
)

// Investment categories
const (
	CategoryTFSA          = "TFSA"
	CategoryRRSP          = "RRSP"
	CategoryNonRegistered = "Non-registered"
	CategoryCrypto        = "Crypto"
)

var expenseCategories = []string{
	CategoryHousing,
	CategoryTransportation,
	CategoryGroceries,
	CategoryEatingOut,
	CategoryEntertainment,
	CategorySubscriptions,
	CategoryHealth,
	CategoryMisc,
}

var incomeCategories = []string{
	CategorySalary,
	CategoryFreelance,
	CategoryInvestmentIncome,
	CategoryGift,
	CategoryOtherIncome,
}

var investmentCategories = []string{
	CategoryTFSA,
	CategoryRRSP,
	CategoryNonRegistered,
	CategoryCrypto,
}

// CategoriesForType returns the category enumeration for a transaction type.
// Returns nil for unknown types.
func CategoriesForType(transactionType string) []string {
	switch transactionType {
	case TransactionTypeExpense:
		return expenseCategories
	case TransactionTypeIncome:
		return incomeCategories
	case TransactionTypeInvestment:
		return investmentCategories
	default:
		return nil
	}
}

// IsValidCategory checks that the category belongs to the enumeration of the
// given transaction type.
func IsValidCategory(transactionType, category string) bool {
	for _, c := range CategoriesForType(transactionType) {
		if c == category {
			return true
		}
	}
	return false
}

// DefaultCategory returns the default category for a transaction type, used
// when seeding sample data.
func DefaultCategory(transactionType string) string {
	switch transactionType {
	case TransactionTypeExpense:
		return CategoryHousing
	case TransactionTypeIncome:
		return CategorySalary
	case TransactionTypeInvestment:
		return CategoryTFSA
	default:
		return ""
	}
}
