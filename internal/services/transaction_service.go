package services

import (
	"errors"

	"gorm.io/gorm"

	"finvue/internal/currency"
	apperrors "finvue/internal/errors"
	"finvue/internal/export"
	"finvue/internal/models"
	"finvue/internal/pagination"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	db       *gorm.DB
	settings SettingsServicer
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, settings SettingsServicer) TransactionServicer {
	return &transactionService{db: db, settings: settings}
}

// validate rejects a transaction before anything touches the store; no
// partial transaction is ever created.
func (s *transactionService) validate(date models.Date, amount float64, category string, txType models.TransactionType, currencyCode string) error {
	if !date.Valid() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "date must be YYYY-MM-DD")
	}
	if amount <= 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be greater than zero")
	}
	if txType != models.TransactionTypeIncome && txType != models.TransactionTypeExpense {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "type must be income or expense")
	}
	if !currency.IsSupported(currencyCode) {
		return apperrors.ErrUnsupportedCurrency
	}

	// The category must be in the active set matching the type at
	// creation time. Existing transactions are not re-validated when
	// the category set changes later.
	active, err := s.settings.ActiveCategories(models.CategoryType(txType))
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

// CreateTransaction creates a new transaction after validation.
func (s *transactionService) CreateTransaction(
	date models.Date,
	description string,
	amount float64,
	category string,
	txType models.TransactionType,
	currencyCode string,
) (*models.Transaction, error) {
	if err := s.validate(date, amount, category, txType, currencyCode); err != nil {
		return nil, err
	}

	tx := &models.Transaction{
		Date:         date,
		Description:  description,
		Amount:       amount,
		Category:     category,
		Type:         txType,
		CurrencyCode: currencyCode,
	}
	if err := s.db.Create(tx).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return tx, nil
}

// UpdateTransaction replaces an existing transaction's fields by
// explicit user edit. It revalidates everything as on creation.
func (s *transactionService) UpdateTransaction(
	id string,
	date models.Date,
	description string,
	amount float64,
	category string,
	txType models.TransactionType,
	currencyCode string,
) (*models.Transaction, error) {
	tx, err := s.GetTransactionByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.validate(date, amount, category, txType, currencyCode); err != nil {
		return nil, err
	}

	tx.Date = date
	tx.Description = description
	tx.Amount = amount
	tx.Category = category
	tx.Type = txType
	tx.CurrencyCode = currencyCode

	if err := s.db.Save(tx).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return tx, nil
}

// GetTransactionByID retrieves a transaction by ID.
func (s *transactionService) GetTransactionByID(id string) (*models.Transaction, error) {
	var tx models.Transaction
	if err := s.db.Where("id = ?", id).First(&tx).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &tx, nil
}

func applyTransactionFilters(q *gorm.DB, f TransactionFilter) *gorm.DB {
	// Dates are fixed-width YYYY-MM-DD strings, so the range filters
	// are plain string comparisons, inclusive on both ends.
	if f.StartDate != nil {
		q = q.Where("date >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		q = q.Where("date <= ?", *f.EndDate)
	}
	if f.Type != nil {
		q = q.Where("type = ?", *f.Type)
	}
	if f.Category != nil {
		q = q.Where("category = ?", *f.Category)
	}
	return q
}

// ListTransactions retrieves a paginated, filtered list of transactions
// in view order (most recent date first).
func (s *transactionService) ListTransactions(page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	page.Defaults()

	base := applyTransactionFilters(s.db.Model(&models.Transaction{}), filter)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var txs []models.Transaction
	if err := base.Scopes(pagination.Paginate(page)).
		Order("date DESC, created_at DESC").
		Find(&txs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(txs, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// DeleteTransaction deletes a transaction by explicit user action.
func (s *transactionService) DeleteTransaction(id string) error {
	tx, err := s.GetTransactionByID(id)
	if err != nil {
		return err
	}
	if err := s.db.Delete(tx).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ExportCSV renders every transaction passing the filter as CSV, in the
// same view order as ListTransactions.
func (s *transactionService) ExportCSV(filter TransactionFilter) (string, error) {
	var txs []models.Transaction
	if err := applyTransactionFilters(s.db.Model(&models.Transaction{}), filter).
		Order("date DESC, created_at DESC").
		Find(&txs).Error; err != nil {
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return export.CSV(txs), nil
}
