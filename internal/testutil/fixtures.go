package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"finvue/internal/models"

	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestTransaction creates an expense transaction on the given date.
func CreateTestTransaction(t *testing.T, db *gorm.DB, date models.Date, amount float64) *models.Transaction {
	t.Helper()
	return CreateTestTransactionFull(t, db, date, amount, "Food", models.TransactionTypeExpense, "USD")
}

// CreateTestTransactionFull creates a transaction with every field set.
func CreateTestTransactionFull(t *testing.T, db *gorm.DB, date models.Date, amount float64, category string, txType models.TransactionType, currencyCode string) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		Date:         date,
		Description:  fmt.Sprintf("Test Transaction %d", nextID()),
		Amount:       amount,
		Category:     category,
		Type:         txType,
		CurrencyCode: currencyCode,
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestPulse creates a recurring pulse due on the given date.
func CreateTestPulse(t *testing.T, db *gorm.DB, frequency models.PulseFrequency, next models.Date) *models.RecurringPulse {
	t.Helper()

	p := &models.RecurringPulse{
		Description:   fmt.Sprintf("Test Pulse %d", nextID()),
		Amount:        100,
		Category:      "Housing",
		Type:          models.TransactionTypeExpense,
		CurrencyCode:  "USD",
		Frequency:     frequency,
		NextPulseDate: next,
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("failed to create test pulse: %v", err)
	}
	return p
}

// CreateTestCategory creates a category of the given type at the end of
// that type's list.
func CreateTestCategory(t *testing.T, db *gorm.DB, categoryType models.CategoryType, name string) *models.Category {
	t.Helper()

	var maxPosition int64
	if err := db.Model(&models.Category{}).
		Where("type = ?", categoryType).
		Select("COALESCE(MAX(position), -1)").
		Scan(&maxPosition).Error; err != nil {
		t.Fatalf("failed to read category positions: %v", err)
	}

	category := &models.Category{
		Name:     name,
		Type:     categoryType,
		Position: int(maxPosition) + 1,
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestBudget creates a budget for a category.
func CreateTestBudget(t *testing.T, db *gorm.DB, category string, limit float64) *models.Budget {
	t.Helper()

	var count int64
	if err := db.Model(&models.Budget{}).Count(&count).Error; err != nil {
		t.Fatalf("failed to count budgets: %v", err)
	}

	budget := &models.Budget{
		Category: category,
		Limit:    limit,
		Position: int(count),
	}
	if err := db.Create(budget).Error; err != nil {
		t.Fatalf("failed to create test budget: %v", err)
	}
	return budget
}
