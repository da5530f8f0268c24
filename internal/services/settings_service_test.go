package services

import (
	"testing"

	"finvue/internal/models"
	"finvue/internal/testutil"
)

func newTestSettingsService(t *testing.T) (SettingsServicer, func()) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	svc := NewSettingsService(db)
	testutil.AssertNoError(t, svc.EnsureDefaults())
	return svc, func() { testutil.TeardownTestDB(t, db) }
}

func TestEnsureDefaults(t *testing.T) {
	t.Run("seeds_empty_store", func(t *testing.T) {
		svc, teardown := newTestSettingsService(t)
		defer teardown()

		config, err := svc.GetConfig()
		testutil.AssertNoError(t, err)

		if config.Currency.Code != "USD" {
			t.Errorf("expected default currency USD, got %s", config.Currency.Code)
		}
		if len(config.Categories.Expense) != 9 {
			t.Errorf("expected 9 seeded expense categories, got %d", len(config.Categories.Expense))
		}
		if len(config.Categories.Income) != 5 {
			t.Errorf("expected 5 seeded income categories, got %d", len(config.Categories.Income))
		}
		if config.Categories.Expense[0] != "Housing" {
			t.Errorf("expected first expense category Housing, got %s", config.Categories.Expense[0])
		}
		if len(config.Budgets) != 0 || len(config.RecurringPulses) != 0 {
			t.Error("expected no seeded budgets or pulses")
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		svc, teardown := newTestSettingsService(t)
		defer teardown()

		testutil.AssertNoError(t, svc.EnsureDefaults())

		config, err := svc.GetConfig()
		testutil.AssertNoError(t, err)
		if len(config.Categories.Expense) != 9 {
			t.Errorf("expected categories not duplicated, got %d", len(config.Categories.Expense))
		}
	})

	t.Run("preserves_user_changes", func(t *testing.T) {
		svc, teardown := newTestSettingsService(t)
		defer teardown()

		testutil.AssertNoError(t, svc.UpdateCurrency("EUR"))
		testutil.AssertNoError(t, svc.EnsureDefaults())

		config, err := svc.GetConfig()
		testutil.AssertNoError(t, err)
		if config.Currency.Code != "EUR" {
			t.Errorf("expected EUR to survive re-seeding, got %s", config.Currency.Code)
		}
	})
}

func TestUpdateCurrency(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		svc, teardown := newTestSettingsService(t)
		defer teardown()

		testutil.AssertNoError(t, svc.UpdateCurrency("ALL"))

		config, err := svc.GetConfig()
		testutil.AssertNoError(t, err)
		if config.Currency.Code != "ALL" {
			t.Errorf("expected ALL, got %s", config.Currency.Code)
		}
	})

	t.Run("unsupported", func(t *testing.T) {
		svc, teardown := newTestSettingsService(t)
		defer teardown()

		err := svc.UpdateCurrency("GBP")
		testutil.AssertAppError(t, err, "UNSUPPORTED_CURRENCY")
	})
}

func TestAddCategory(t *testing.T) {
	t.Run("appends_to_end", func(t *testing.T) {
		svc, teardown := newTestSettingsService(t)
		defer teardown()

		cat, err := svc.AddCategory(models.CategoryTypeExpense, "Pets")
		testutil.AssertNoError(t, err)
		if cat.Position != 9 {
			t.Errorf("expected position 9, got %d", cat.Position)
		}

		names, err := svc.ActiveCategories(models.CategoryTypeExpense)
		testutil.AssertNoError(t, err)
		if names[len(names)-1] != "Pets" {
			t.Errorf("expected Pets at the end, got %v", names)
		}
	})

	t.Run("duplicate_within_type", func(t *testing.T) {
		svc, teardown := newTestSettingsService(t)
		defer teardown()

		_, err := svc.AddCategory(models.CategoryTypeExpense, "Food")
		testutil.AssertAppError(t, err, "DUPLICATE_CATEGORY")
	})

	t.Run("same_name_across_types", func(t *testing.T) {
		svc, teardown := newTestSettingsService(t)
		defer teardown()

		// Other is seeded on both lists already; a fresh name may also
		// exist on both.
		_, err := svc.AddCategory(models.CategoryTypeIncome, "Food")
		testutil.AssertNoError(t, err)
	})

	t.Run("empty_name", func(t *testing.T) {
		svc, teardown := newTestSettingsService(t)
		defer teardown()

		_, err := svc.AddCategory(models.CategoryTypeExpense, "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestRemoveCategory(t *testing.T) {
	t.Run("removes_and_cascades_budget", func(t *testing.T) {
		svc, teardown := newTestSettingsService(t)
		defer teardown()

		_, err := svc.SetBudget("Food", 500)
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, svc.RemoveCategory(models.CategoryTypeExpense, "Food"))

		names, err := svc.ActiveCategories(models.CategoryTypeExpense)
		testutil.AssertNoError(t, err)
		for _, name := range names {
			if name == "Food" {
				t.Error("expected Food to be removed")
			}
		}

		config, err := svc.GetConfig()
		testutil.AssertNoError(t, err)
		if len(config.Budgets) != 0 {
			t.Errorf("expected Food budget to cascade, got %v", config.Budgets)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		svc, teardown := newTestSettingsService(t)
		defer teardown()

		err := svc.RemoveCategory(models.CategoryTypeExpense, "Yacht Upkeep")
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("last_category_guard", func(t *testing.T) {
		svc, teardown := newTestSettingsService(t)
		defer teardown()

		names, err := svc.ActiveCategories(models.CategoryTypeIncome)
		testutil.AssertNoError(t, err)
		for _, name := range names[:len(names)-1] {
			testutil.AssertNoError(t, svc.RemoveCategory(models.CategoryTypeIncome, name))
		}

		err = svc.RemoveCategory(models.CategoryTypeIncome, names[len(names)-1])
		testutil.AssertAppError(t, err, "LAST_CATEGORY")
	})
}

func TestSetBudget(t *testing.T) {
	t.Run("creates_budget", func(t *testing.T) {
		svc, teardown := newTestSettingsService(t)
		defer teardown()

		budget, err := svc.SetBudget("Food", 500)
		testutil.AssertNoError(t, err)
		if budget.Limit != 500 || budget.Position != 0 {
			t.Errorf("unexpected budget: %+v", budget)
		}
	})

	t.Run("upsert_replaces_limit_keeps_position", func(t *testing.T) {
		svc, teardown := newTestSettingsService(t)
		defer teardown()

		_, err := svc.SetBudget("Food", 500)
		testutil.AssertNoError(t, err)
		_, err = svc.SetBudget("Housing", 1000)
		testutil.AssertNoError(t, err)

		replaced, err := svc.SetBudget("Food", 300)
		testutil.AssertNoError(t, err)
		if replaced.Limit != 300 {
			t.Errorf("expected limit 300, got %v", replaced.Limit)
		}
		if replaced.Position != 0 {
			t.Errorf("expected position 0 to be kept, got %d", replaced.Position)
		}

		config, err := svc.GetConfig()
		testutil.AssertNoError(t, err)
		if len(config.Budgets) != 2 {
			t.Fatalf("expected 2 budgets after upsert, got %d", len(config.Budgets))
		}
	})

	t.Run("zero_limit", func(t *testing.T) {
		svc, teardown := newTestSettingsService(t)
		defer teardown()

		_, err := svc.SetBudget("Food", 500)
		testutil.AssertNoError(t, err)

		zeroed, err := svc.SetBudget("Food", 0)
		testutil.AssertNoError(t, err)
		if zeroed.Limit != 0 {
			t.Errorf("expected limit 0, got %v", zeroed.Limit)
		}
	})

	t.Run("unknown_category", func(t *testing.T) {
		svc, teardown := newTestSettingsService(t)
		defer teardown()

		_, err := svc.SetBudget("Yacht Upkeep", 500)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})

	t.Run("income_category", func(t *testing.T) {
		svc, teardown := newTestSettingsService(t)
		defer teardown()

		_, err := svc.SetBudget("Salary", 500)
		testutil.AssertAppError(t, err, "BUDGET_NOT_EXPENSE")
	})

	t.Run("negative_limit", func(t *testing.T) {
		svc, teardown := newTestSettingsService(t)
		defer teardown()

		_, err := svc.SetBudget("Food", -1)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestDeleteBudget(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		svc, teardown := newTestSettingsService(t)
		defer teardown()

		_, err := svc.SetBudget("Food", 500)
		testutil.AssertNoError(t, err)
		testutil.AssertNoError(t, svc.DeleteBudget("Food"))

		config, err := svc.GetConfig()
		testutil.AssertNoError(t, err)
		if len(config.Budgets) != 0 {
			t.Errorf("expected no budgets, got %v", config.Budgets)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		svc, teardown := newTestSettingsService(t)
		defer teardown()

		err := svc.DeleteBudget("Food")
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
	})
}

func TestPulseCRUD(t *testing.T) {
	t.Run("create_valid", func(t *testing.T) {
		svc, teardown := newTestSettingsService(t)
		defer teardown()

		p, err := svc.CreatePulse("Rent", 800, "Housing", models.TransactionTypeExpense, "USD", models.FrequencyMonthly, "2026-10-01")
		testutil.AssertNoError(t, err)
		if p.ID == "" {
			t.Fatal("expected a generated pulse ID")
		}
		if p.NextPulseDate != "2026-10-01" {
			t.Errorf("expected next date 2026-10-01, got %s", p.NextPulseDate)
		}
	})

	t.Run("create_rejects_bad_frequency", func(t *testing.T) {
		svc, teardown := newTestSettingsService(t)
		defer teardown()

		_, err := svc.CreatePulse("Rent", 800, "Housing", models.TransactionTypeExpense, "USD", "fortnightly", "2026-10-01")
		testutil.AssertAppError(t, err, "UNKNOWN_FREQUENCY")
	})

	t.Run("create_rejects_unknown_category", func(t *testing.T) {
		svc, teardown := newTestSettingsService(t)
		defer teardown()

		_, err := svc.CreatePulse("Rent", 800, "Yacht Upkeep", models.TransactionTypeExpense, "USD", models.FrequencyMonthly, "2026-10-01")
		testutil.AssertAppError(t, err, "UNKNOWN_CATEGORY")
	})

	t.Run("update_replaces_definition", func(t *testing.T) {
		svc, teardown := newTestSettingsService(t)
		defer teardown()

		p, err := svc.CreatePulse("Rent", 800, "Housing", models.TransactionTypeExpense, "USD", models.FrequencyMonthly, "2026-10-01")
		testutil.AssertNoError(t, err)

		updated, err := svc.UpdatePulse(p.ID, "Rent (new lease)", 900, "Housing", models.TransactionTypeExpense, "EUR", models.FrequencyMonthly, "2026-11-01")
		testutil.AssertNoError(t, err)
		if updated.Amount != 900 || updated.CurrencyCode != "EUR" || updated.NextPulseDate != "2026-11-01" {
			t.Errorf("unexpected updated pulse: %+v", updated)
		}
	})

	t.Run("update_not_found", func(t *testing.T) {
		svc, teardown := newTestSettingsService(t)
		defer teardown()

		_, err := svc.UpdatePulse("no-such-id", "Rent", 800, "Housing", models.TransactionTypeExpense, "USD", models.FrequencyMonthly, "2026-10-01")
		testutil.AssertAppError(t, err, "PULSE_NOT_FOUND")
	})

	t.Run("delete", func(t *testing.T) {
		svc, teardown := newTestSettingsService(t)
		defer teardown()

		p, err := svc.CreatePulse("Rent", 800, "Housing", models.TransactionTypeExpense, "USD", models.FrequencyMonthly, "2026-10-01")
		testutil.AssertNoError(t, err)
		testutil.AssertNoError(t, svc.DeletePulse(p.ID))

		pulses, err := svc.ListPulses()
		testutil.AssertNoError(t, err)
		if len(pulses) != 0 {
			t.Errorf("expected no pulses, got %d", len(pulses))
		}

		err = svc.DeletePulse(p.ID)
		testutil.AssertAppError(t, err, "PULSE_NOT_FOUND")
	})
}
