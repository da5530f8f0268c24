package services

import (
	"context"

	"finvue/internal/advisor"
	"finvue/internal/currency"
	"finvue/internal/models"
	"finvue/internal/pagination"
	"finvue/internal/report"
)

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	StartDate *models.Date
	EndDate   *models.Date
	Type      *models.TransactionType
	Category  *string
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(date models.Date, description string, amount float64, category string, txType models.TransactionType, currencyCode string) (*models.Transaction, error)
	UpdateTransaction(id string, date models.Date, description string, amount float64, category string, txType models.TransactionType, currencyCode string) (*models.Transaction, error)
	GetTransactionByID(id string) (*models.Transaction, error)
	ListTransactions(page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	DeleteTransaction(id string) error
	ExportCSV(filter TransactionFilter) (string, error)
}

// CategoryLists are the ordered category names per transaction type.
type CategoryLists struct {
	Expense []string `json:"expense"`
	Income  []string `json:"income"`
}

// UserConfig is the aggregate of per-installation preferences returned
// to clients: preferred currency, category lists, budgets, and pulses.
type UserConfig struct {
	Currency        currency.Currency       `json:"currency"`
	Categories      CategoryLists           `json:"categories"`
	Budgets         []models.Budget         `json:"budgets"`
	RecurringPulses []models.RecurringPulse `json:"recurring_pulses"`
}

// SettingsServicer defines the contract for configuration commands:
// preferred currency, category lists, budgets, and pulse templates.
// All mutation of user configuration funnels through here.
type SettingsServicer interface {
	// EnsureDefaults seeds the preferred currency and category lists on
	// an empty store; it is a no-op otherwise.
	EnsureDefaults() error

	GetConfig() (*UserConfig, error)
	UpdateCurrency(code string) error

	AddCategory(categoryType models.CategoryType, name string) (*models.Category, error)
	RemoveCategory(categoryType models.CategoryType, name string) error
	ActiveCategories(categoryType models.CategoryType) ([]string, error)

	SetBudget(category string, limit float64) (*models.Budget, error)
	DeleteBudget(category string) error

	CreatePulse(description string, amount float64, category string, txType models.TransactionType, currencyCode string, frequency models.PulseFrequency, nextPulseDate models.Date) (*models.RecurringPulse, error)
	UpdatePulse(id, description string, amount float64, category string, txType models.TransactionType, currencyCode string, frequency models.PulseFrequency, nextPulseDate models.Date) (*models.RecurringPulse, error)
	DeletePulse(id string) error
	ListPulses() ([]models.RecurringPulse, error)
}

// SyncServicer runs the pulse scheduler against the store.
type SyncServicer interface {
	// SynchronizePulses materializes every period elapsed up to and
	// including today and persists the result atomically. It returns
	// the number of transactions materialized; zero means the pass was
	// a no-op and nothing was written.
	SynchronizePulses(today models.Date) (int, error)
}

// Dashboard is the derived view data for the reporting screen, all
// amounts in the requested currency.
type Dashboard struct {
	Currency   currency.Currency     `json:"currency"`
	Totals     report.Totals         `json:"totals"`
	Breakdown  map[string]float64    `json:"breakdown"`
	Budgets    []report.BudgetStatus `json:"budgets"`
	Projection report.Projection     `json:"projection"`
}

// ReportServicer evaluates the aggregation engine over the store.
type ReportServicer interface {
	// GetDashboard recomputes the dashboard for the given filter. An
	// empty currencyCode means the preferred currency.
	GetDashboard(filter TransactionFilter, currencyCode string) (*Dashboard, error)
}

// InsightServicer is the application-side contract with the AI advisor.
type InsightServicer interface {
	// GetInsights returns advisory text for the current ledger. With an
	// empty ledger it returns a static starter message without invoking
	// the advisor at all.
	GetInsights(ctx context.Context) (string, error)

	// ParseTransaction turns free text into a validated draft
	// transaction. Failure leaves all state unchanged.
	ParseTransaction(ctx context.Context, input string) (*advisor.ParsedTransaction, error)
}
