package services

import (
	"errors"

	"gorm.io/gorm"

	"finvue/internal/currency"
	apperrors "finvue/internal/errors"
	"finvue/internal/models"
)

// seedCategories are the fixed default category lists used when the
// store is empty. A type's active list is never empty in steady state.
var seedCategories = map[models.CategoryType][]string{
	models.CategoryTypeExpense: {
		"Housing", "Food", "Transport", "Utilities", "Entertainment",
		"Healthcare", "Shopping", "Education", "Other",
	},
	models.CategoryTypeIncome: {
		"Salary", "Freelance", "Investments", "Gift", "Other",
	},
}

// settingsService handles configuration-related business logic.
type settingsService struct {
	db *gorm.DB
}

// NewSettingsService creates a new SettingsServicer.
func NewSettingsService(db *gorm.DB) SettingsServicer {
	return &settingsService{db: db}
}

// EnsureDefaults seeds the settings row and the category lists when the
// store is empty, reproducing the load-or-default behavior of a first
// run. Existing data is left untouched.
func (s *settingsService) EnsureDefaults() error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var settingsCount int64
		if err := tx.Model(&models.Settings{}).Count(&settingsCount).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if settingsCount == 0 {
			row := &models.Settings{CurrencyCode: currency.Default().Code}
			if err := tx.Create(row).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}

		for _, categoryType := range []models.CategoryType{models.CategoryTypeExpense, models.CategoryTypeIncome} {
			var count int64
			if err := tx.Model(&models.Category{}).Where("type = ?", categoryType).Count(&count).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			if count > 0 {
				continue
			}
			for i, name := range seedCategories[categoryType] {
				cat := &models.Category{Name: name, Type: categoryType, Position: i}
				if err := tx.Create(cat).Error; err != nil {
					return apperrors.Wrap(apperrors.ErrInternalServer, err)
				}
			}
		}
		return nil
	})
}

func (s *settingsService) loadSettings() (*models.Settings, error) {
	var row models.Settings
	if err := s.db.First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := s.EnsureDefaults(); err != nil {
				return nil, err
			}
			if err := s.db.First(&row).Error; err != nil {
				return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
			return &row, nil
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &row, nil
}

// GetConfig assembles the full user configuration aggregate.
func (s *settingsService) GetConfig() (*UserConfig, error) {
	row, err := s.loadSettings()
	if err != nil {
		return nil, err
	}

	// Unknown persisted codes degrade to the default currency rather
	// than failing the whole config load.
	preferred, ok := currency.ByCode(row.CurrencyCode)
	if !ok {
		preferred = currency.Default()
	}

	expense, err := s.ActiveCategories(models.CategoryTypeExpense)
	if err != nil {
		return nil, err
	}
	income, err := s.ActiveCategories(models.CategoryTypeIncome)
	if err != nil {
		return nil, err
	}

	var budgets []models.Budget
	if err := s.db.Order("position ASC").Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	pulses, err := s.ListPulses()
	if err != nil {
		return nil, err
	}

	return &UserConfig{
		Currency:        preferred,
		Categories:      CategoryLists{Expense: expense, Income: income},
		Budgets:         budgets,
		RecurringPulses: pulses,
	}, nil
}

// UpdateCurrency changes the preferred display/aggregation currency.
func (s *settingsService) UpdateCurrency(code string) error {
	if !currency.IsSupported(code) {
		return apperrors.ErrUnsupportedCurrency
	}
	row, err := s.loadSettings()
	if err != nil {
		return err
	}
	if err := s.db.Model(row).Update("currency_code", code).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ActiveCategories returns the ordered category names of one type.
func (s *settingsService) ActiveCategories(categoryType models.CategoryType) ([]string, error) {
	var cats []models.Category
	if err := s.db.Where("type = ?", categoryType).Order("position ASC").Find(&cats).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	names := make([]string, 0, len(cats))
	for _, c := range cats {
		names = append(names, c.Name)
	}
	return names, nil
}

// AddCategory appends a category to the end of its type's list.
func (s *settingsService) AddCategory(categoryType models.CategoryType, name string) (*models.Category, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}

	var count int64
	if err := s.db.Model(&models.Category{}).
		Where("type = ? AND name = ?", categoryType, name).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateCategory
	}

	var maxPosition int64
	if err := s.db.Model(&models.Category{}).
		Where("type = ?", categoryType).
		Select("COALESCE(MAX(position), -1)").
		Scan(&maxPosition).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	cat := &models.Category{Name: name, Type: categoryType, Position: int(maxPosition) + 1}
	if err := s.db.Create(cat).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return cat, nil
}

// RemoveCategory removes a category from its type's list, cascading the
// category's budget if it has one. Transactions and pulses referencing
// the name are untouched. The last category of a type cannot be
// removed.
func (s *settingsService) RemoveCategory(categoryType models.CategoryType, name string) error {
	var cat models.Category
	if err := s.db.Where("type = ? AND name = ?", categoryType, name).First(&cat).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrCategoryNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var count int64
	if err := s.db.Model(&models.Category{}).Where("type = ?", categoryType).Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count <= 1 {
		return apperrors.ErrLastCategory
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&cat).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if categoryType == models.CategoryTypeExpense {
			if err := tx.Where("category = ?", name).Delete(&models.Budget{}).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
		return nil
	})
}

// SetBudget creates or replaces the budget for an expense category
// (upsert keyed by category).
func (s *settingsService) SetBudget(category string, limit float64) (*models.Budget, error) {
	if limit < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "limit must not be negative")
	}

	// Names may exist on both lists ("Other" does by default), so the
	// lookup is pinned to the expense list.
	var cat models.Category
	err := s.db.Where("type = ? AND name = ?", models.CategoryTypeExpense, category).First(&cat).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		var incomeCount int64
		if err := s.db.Model(&models.Category{}).
			Where("type = ? AND name = ?", models.CategoryTypeIncome, category).
			Count(&incomeCount).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if incomeCount > 0 {
			return nil, apperrors.ErrBudgetNotExpense
		}
		return nil, apperrors.ErrCategoryNotFound
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var existing models.Budget
	err = s.db.Where("category = ?", category).First(&existing).Error
	switch {
	case err == nil:
		if err := s.db.Model(&existing).Update("limit", limit).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		existing.Limit = limit
		return &existing, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		var maxPosition int64
		if err := s.db.Model(&models.Budget{}).
			Select("COALESCE(MAX(position), -1)").
			Scan(&maxPosition).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		budget := &models.Budget{Category: category, Limit: limit, Position: int(maxPosition) + 1}
		if err := s.db.Create(budget).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return budget, nil

	default:
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
}

// DeleteBudget removes the budget for a category.
func (s *settingsService) DeleteBudget(category string) error {
	var budget models.Budget
	if err := s.db.Where("category = ?", category).First(&budget).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrBudgetNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.db.Delete(&budget).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// validatePulse rejects a pulse definition before it reaches the store.
func (s *settingsService) validatePulse(amount float64, category string, txType models.TransactionType, currencyCode string, frequency models.PulseFrequency, nextPulseDate models.Date) error {
	if amount <= 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if txType != models.TransactionTypeIncome && txType != models.TransactionTypeExpense {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "type must be income or expense")
	}
	if !currency.IsSupported(currencyCode) {
		return apperrors.ErrUnsupportedCurrency
	}
	switch frequency {
	case models.FrequencyDaily, models.FrequencyWeekly, models.FrequencyMonthly, models.FrequencyYearly:
	default:
		return apperrors.Wrap(apperrors.ErrUnknownFrequency, errors.New(string(frequency)))
	}
	if !nextPulseDate.Valid() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "next pulse date must be YYYY-MM-DD")
	}

	active, err := s.ActiveCategories(models.CategoryType(txType))
	if err != nil {
		return err
	}
	for _, name := range active {
		if name == category {
			return nil
		}
	}
	return apperrors.ErrUnknownCategory
}

// CreatePulse registers a recurring pulse with its initial due date.
func (s *settingsService) CreatePulse(
	description string,
	amount float64,
	category string,
	txType models.TransactionType,
	currencyCode string,
	frequency models.PulseFrequency,
	nextPulseDate models.Date,
) (*models.RecurringPulse, error) {
	if err := s.validatePulse(amount, category, txType, currencyCode, frequency, nextPulseDate); err != nil {
		return nil, err
	}

	p := &models.RecurringPulse{
		Description:   description,
		Amount:        amount,
		Category:      category,
		Type:          txType,
		CurrencyCode:  currencyCode,
		Frequency:     frequency,
		NextPulseDate: nextPulseDate,
	}
	if err := s.db.Create(p).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return p, nil
}

// UpdatePulse replaces a pulse definition by explicit user edit.
func (s *settingsService) UpdatePulse(
	id, description string,
	amount float64,
	category string,
	txType models.TransactionType,
	currencyCode string,
	frequency models.PulseFrequency,
	nextPulseDate models.Date,
) (*models.RecurringPulse, error) {
	var p models.RecurringPulse
	if err := s.db.Where("id = ?", id).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPulseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.validatePulse(amount, category, txType, currencyCode, frequency, nextPulseDate); err != nil {
		return nil, err
	}

	p.Description = description
	p.Amount = amount
	p.Category = category
	p.Type = txType
	p.CurrencyCode = currencyCode
	p.Frequency = frequency
	p.NextPulseDate = nextPulseDate

	if err := s.db.Save(&p).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &p, nil
}

// DeletePulse removes a pulse. Transactions it already materialized are
// kept; there are no cascading deletes.
func (s *settingsService) DeletePulse(id string) error {
	var p models.RecurringPulse
	if err := s.db.Where("id = ?", id).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrPulseNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.db.Delete(&p).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ListPulses returns all recurring pulses in creation order.
func (s *settingsService) ListPulses() ([]models.RecurringPulse, error) {
	var pulses []models.RecurringPulse
	if err := s.db.Order("created_at ASC").Find(&pulses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return pulses, nil
}
