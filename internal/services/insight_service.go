package services

import (
	"context"

	"gorm.io/gorm"

	"finvue/internal/advisor"
	"finvue/internal/currency"
	apperrors "finvue/internal/errors"
	"finvue/internal/logger"
	"finvue/internal/models"
)

// emptyLedgerInsight is returned without touching the advisor when
// there is nothing to analyze.
const emptyLedgerInsight = "Add some transactions to get started with AI insights!"

// insightService mediates between the store and the AI advisor.
type insightService struct {
	db       *gorm.DB
	settings SettingsServicer
	advisor  advisor.Advisor
}

// NewInsightService creates a new InsightServicer. The advisor may be
// nil when no API key is configured; insight operations then fail with
// ErrAdvisorUnavailable.
func NewInsightService(db *gorm.DB, settings SettingsServicer, adv advisor.Advisor) InsightServicer {
	return &insightService{db: db, settings: settings, advisor: adv}
}

// GetInsights returns advisory text for the current ledger. With an
// empty ledger it answers a static starter message and the advisor is
// never invoked.
func (s *insightService) GetInsights(ctx context.Context) (string, error) {
	var txs []models.Transaction
	if err := s.db.Order("date ASC, created_at ASC").Find(&txs).Error; err != nil {
		return "", apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if len(txs) == 0 {
		return emptyLedgerInsight, nil
	}
	if s.advisor == nil {
		return "", apperrors.ErrAdvisorUnavailable
	}

	config, err := s.settings.GetConfig()
	if err != nil {
		return "", err
	}

	insights, err := s.advisor.GetInsights(ctx, txs, config.Currency)
	if err != nil {
		logger.Get().Warnw("advisor insights failed", "error", err)
		return "", apperrors.Wrap(apperrors.ErrAdvisorUnavailable, err)
	}
	return insights, nil
}

// ParseTransaction turns free text into a validated draft transaction.
// The draft is returned to the caller for confirmation and is never
// inserted here; on any failure the store is untouched.
func (s *insightService) ParseTransaction(ctx context.Context, input string) (*advisor.ParsedTransaction, error) {
	if input == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "input text is required")
	}
	if s.advisor == nil {
		return nil, apperrors.ErrAdvisorUnavailable
	}

	expense, err := s.settings.ActiveCategories(models.CategoryTypeExpense)
	if err != nil {
		return nil, err
	}
	income, err := s.settings.ActiveCategories(models.CategoryTypeIncome)
	if err != nil {
		return nil, err
	}

	parsed, err := s.advisor.ParseTransaction(ctx, input, advisor.CategorySet{Expense: expense, Income: income})
	if err != nil {
		logger.Get().Warnw("advisor parse failed", "error", err, "input", input)
		return nil, apperrors.Wrap(apperrors.ErrParseFailed, err)
	}
	if err := s.validateDraft(parsed, expense, income); err != nil {
		return nil, err
	}
	return parsed, nil
}

// validateDraft rejects model output that does not form a legal
// transaction, so a confused model cannot smuggle bad data past the
// confirmation step.
func (s *insightService) validateDraft(p *advisor.ParsedTransaction, expense, income []string) error {
	if p == nil {
		return apperrors.ErrParseFailed
	}
	if p.Amount <= 0 {
		return apperrors.WithMessage(apperrors.ErrParseFailed, "amount must be greater than zero")
	}
	if !models.Date(p.Date).Valid() {
		return apperrors.WithMessage(apperrors.ErrParseFailed, "date must be YYYY-MM-DD")
	}
	if !currency.IsSupported(p.CurrencyCode) {
		return apperrors.WithMessage(apperrors.ErrParseFailed, "unsupported currency code")
	}

	var active []string
	switch models.TransactionType(p.Type) {
	case models.TransactionTypeExpense:
		active = expense
	case models.TransactionTypeIncome:
		active = income
	default:
		return apperrors.WithMessage(apperrors.ErrParseFailed, "type must be income or expense")
	}
	for _, name := range active {
		if name == p.Category {
			return nil
		}
	}
	return apperrors.WithMessage(apperrors.ErrParseFailed, "category is not in the active list")
}
