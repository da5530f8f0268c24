package report

import (
	"errors"
	"math"
	"testing"

	"finvue/internal/models"
	"finvue/internal/pulse"
)

func tx(date models.Date, amount float64, category string, txType models.TransactionType, code string) models.Transaction {
	return models.Transaction{
		Date:         date,
		Amount:       amount,
		Category:     category,
		Type:         txType,
		CurrencyCode: code,
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestFilterApply(t *testing.T) {
	txs := []models.Transaction{
		tx("2026-01-01", 10, "Food", models.TransactionTypeExpense, "USD"),
		tx("2026-01-15", 20, "Food", models.TransactionTypeExpense, "USD"),
		tx("2026-02-01", 30, "Food", models.TransactionTypeExpense, "USD"),
	}

	t.Run("unbounded", func(t *testing.T) {
		if got := (Filter{}).Apply(txs); len(got) != 3 {
			t.Errorf("expected 3 transactions, got %d", len(got))
		}
	})

	t.Run("inclusive_bounds", func(t *testing.T) {
		start, end := models.Date("2026-01-01"), models.Date("2026-01-15")
		got := (Filter{StartDate: &start, EndDate: &end}).Apply(txs)
		if len(got) != 2 {
			t.Fatalf("expected 2 transactions, got %d", len(got))
		}
		if got[0].Date != "2026-01-01" || got[1].Date != "2026-01-15" {
			t.Errorf("bounds must be inclusive, got %v %v", got[0].Date, got[1].Date)
		}
	})

	t.Run("start_only", func(t *testing.T) {
		start := models.Date("2026-01-16")
		got := (Filter{StartDate: &start}).Apply(txs)
		if len(got) != 1 || got[0].Date != "2026-02-01" {
			t.Errorf("expected only the February transaction, got %v", got)
		}
	})
}

func TestSummarize(t *testing.T) {
	t.Run("mixed_currencies", func(t *testing.T) {
		// 100 USD income plus 50 EUR expense, reported in USD:
		// the expense normalizes to 50/0.92 ~= 54.35.
		txs := []models.Transaction{
			tx("2026-01-01", 100, "Salary", models.TransactionTypeIncome, "USD"),
			tx("2026-01-02", 50, "Food", models.TransactionTypeExpense, "EUR"),
		}
		totals := Summarize(txs, "USD")

		if !almostEqual(totals.Income, 100) {
			t.Errorf("expected income 100, got %v", totals.Income)
		}
		if !almostEqual(totals.Expense, 50/0.92) {
			t.Errorf("expected expense ~54.35, got %v", totals.Expense)
		}
		if !almostEqual(totals.Balance, 100-50/0.92) {
			t.Errorf("expected balance ~45.65, got %v", totals.Balance)
		}
	})

	t.Run("savings_rate", func(t *testing.T) {
		txs := []models.Transaction{
			tx("2026-01-01", 200, "Salary", models.TransactionTypeIncome, "USD"),
			tx("2026-01-02", 50, "Food", models.TransactionTypeExpense, "USD"),
		}
		totals := Summarize(txs, "USD")
		if !almostEqual(totals.SavingsRate, 75) {
			t.Errorf("expected savings rate 75, got %v", totals.SavingsRate)
		}
	})

	t.Run("zero_income_guard", func(t *testing.T) {
		txs := []models.Transaction{
			tx("2026-01-01", 50, "Food", models.TransactionTypeExpense, "USD"),
		}
		totals := Summarize(txs, "USD")
		if totals.SavingsRate != 0 {
			t.Errorf("expected savings rate 0 with no income, got %v", totals.SavingsRate)
		}
		if math.IsNaN(totals.SavingsRate) || math.IsInf(totals.SavingsRate, 0) {
			t.Error("savings rate must never be NaN or Inf")
		}
	})

	t.Run("empty", func(t *testing.T) {
		totals := Summarize(nil, "USD")
		if totals.Income != 0 || totals.Expense != 0 || totals.Balance != 0 || totals.SavingsRate != 0 {
			t.Errorf("expected zero totals, got %+v", totals)
		}
	})
}

func TestCategoryBreakdown(t *testing.T) {
	txs := []models.Transaction{
		tx("2026-01-01", 30, "Food", models.TransactionTypeExpense, "USD"),
		tx("2026-01-02", 20, "Food", models.TransactionTypeExpense, "USD"),
		tx("2026-01-03", 100, "Housing", models.TransactionTypeExpense, "USD"),
		tx("2026-01-04", 500, "Salary", models.TransactionTypeIncome, "USD"),
	}
	breakdown := CategoryBreakdown(txs, "USD")

	if len(breakdown) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(breakdown))
	}
	if !almostEqual(breakdown["Food"], 50) {
		t.Errorf("expected Food 50, got %v", breakdown["Food"])
	}
	if !almostEqual(breakdown["Housing"], 100) {
		t.Errorf("expected Housing 100, got %v", breakdown["Housing"])
	}
	if _, ok := breakdown["Salary"]; ok {
		t.Error("income categories must not appear in the expense breakdown")
	}
}

func TestBudgetPerformance(t *testing.T) {
	t.Run("sorted_descending_by_percent", func(t *testing.T) {
		budgets := []models.Budget{
			{Category: "Food", Limit: 100, Position: 0},
			{Category: "Housing", Limit: 1000, Position: 1},
			{Category: "Transport", Limit: 50, Position: 2},
		}
		breakdown := map[string]float64{"Food": 80, "Housing": 900, "Transport": 10}

		statuses := BudgetPerformance(budgets, breakdown)
		if len(statuses) != 3 {
			t.Fatalf("expected 3 statuses, got %d", len(statuses))
		}
		if statuses[0].Category != "Housing" || statuses[1].Category != "Food" || statuses[2].Category != "Transport" {
			t.Errorf("expected Housing, Food, Transport order, got %v %v %v",
				statuses[0].Category, statuses[1].Category, statuses[2].Category)
		}
		if !almostEqual(statuses[0].Percent, 90) {
			t.Errorf("expected 90 percent, got %v", statuses[0].Percent)
		}
	})

	t.Run("stable_on_ties", func(t *testing.T) {
		budgets := []models.Budget{
			{Category: "Food", Limit: 100, Position: 0},
			{Category: "Transport", Limit: 200, Position: 1},
		}
		// Both at exactly 50 percent.
		breakdown := map[string]float64{"Food": 50, "Transport": 100}

		statuses := BudgetPerformance(budgets, breakdown)
		if statuses[0].Category != "Food" || statuses[1].Category != "Transport" {
			t.Errorf("equal percentages must keep original order, got %v %v",
				statuses[0].Category, statuses[1].Category)
		}
	})

	t.Run("missing_category_and_zero_limit", func(t *testing.T) {
		budgets := []models.Budget{
			{Category: "Ghost", Limit: 100},
			{Category: "Free", Limit: 0},
		}
		statuses := BudgetPerformance(budgets, map[string]float64{"Free": 30})

		for _, s := range statuses {
			switch s.Category {
			case "Ghost":
				if s.Actual != 0 || s.Percent != 0 {
					t.Errorf("expected zero actual/percent for unspent budget, got %+v", s)
				}
			case "Free":
				if s.Percent != 0 {
					t.Errorf("expected percent 0 for zero limit, got %v", s.Percent)
				}
			}
		}
	})
}

func TestProject(t *testing.T) {
	t.Run("monthly_factors", func(t *testing.T) {
		pulses := []models.RecurringPulse{
			{Amount: 10, Type: models.TransactionTypeExpense, CurrencyCode: "USD", Frequency: models.FrequencyDaily},
			{Amount: 25, Type: models.TransactionTypeExpense, CurrencyCode: "USD", Frequency: models.FrequencyWeekly},
			{Amount: 1200, Type: models.TransactionTypeIncome, CurrencyCode: "USD", Frequency: models.FrequencyYearly},
			{Amount: 2000, Type: models.TransactionTypeIncome, CurrencyCode: "USD", Frequency: models.FrequencyMonthly},
		}
		proj, err := Project(pulses, "USD")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !almostEqual(proj.MonthlyExpense, 10*30+25*4) {
			t.Errorf("expected monthly expense 400, got %v", proj.MonthlyExpense)
		}
		if !almostEqual(proj.MonthlyIncome, 1200.0/12+2000) {
			t.Errorf("expected monthly income 2100, got %v", proj.MonthlyIncome)
		}
		if proj.IncomePulses != 2 || proj.ExpensePulses != 2 {
			t.Errorf("expected 2 income and 2 expense pulses, got %d and %d",
				proj.IncomePulses, proj.ExpensePulses)
		}
	})

	t.Run("normalizes_currency", func(t *testing.T) {
		pulses := []models.RecurringPulse{
			{Amount: 92, Type: models.TransactionTypeExpense, CurrencyCode: "EUR", Frequency: models.FrequencyMonthly},
		}
		proj, err := Project(pulses, "USD")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !almostEqual(proj.MonthlyExpense, 100) {
			t.Errorf("expected 100 USD, got %v", proj.MonthlyExpense)
		}
	})

	t.Run("unknown_frequency", func(t *testing.T) {
		pulses := []models.RecurringPulse{
			{Amount: 1, Type: models.TransactionTypeExpense, CurrencyCode: "USD", Frequency: "hourly"},
		}
		if _, err := Project(pulses, "USD"); !errors.Is(err, pulse.ErrUnknownFrequency) {
			t.Fatalf("expected ErrUnknownFrequency, got %v", err)
		}
	})
}
