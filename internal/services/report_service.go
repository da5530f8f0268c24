package services

import (
	"errors"

	"gorm.io/gorm"

	"finvue/internal/currency"
	apperrors "finvue/internal/errors"
	"finvue/internal/models"
	"finvue/internal/pulse"
	"finvue/internal/report"
)

// reportService evaluates the aggregation engine over the store.
type reportService struct {
	db       *gorm.DB
	settings SettingsServicer
}

// NewReportService creates a new ReportServicer.
func NewReportService(db *gorm.DB, settings SettingsServicer) ReportServicer {
	return &reportService{db: db, settings: settings}
}

// GetDashboard recomputes the full derived view for the filter. The
// aggregates are never cached; every call reads the ledger and folds
// it again in the target currency.
func (s *reportService) GetDashboard(filter TransactionFilter, currencyCode string) (*Dashboard, error) {
	target, err := s.resolveCurrency(currencyCode)
	if err != nil {
		return nil, err
	}

	var txs []models.Transaction
	query := s.db.Order("date ASC, created_at ASC")
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}
	if err := query.Find(&txs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	txs = report.Filter{StartDate: filter.StartDate, EndDate: filter.EndDate}.Apply(txs)

	var budgets []models.Budget
	if err := s.db.Order("position ASC").Find(&budgets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var pulses []models.RecurringPulse
	if err := s.db.Order("created_at ASC").Find(&pulses).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	breakdown := report.CategoryBreakdown(txs, target.Code)
	projection, err := report.Project(pulses, target.Code)
	if err != nil {
		if errors.Is(err, pulse.ErrUnknownFrequency) {
			return nil, apperrors.Wrap(apperrors.ErrUnknownFrequency, err)
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &Dashboard{
		Currency:   target,
		Totals:     report.Summarize(txs, target.Code),
		Breakdown:  breakdown,
		Budgets:    report.BudgetPerformance(budgets, breakdown),
		Projection: projection,
	}, nil
}

// resolveCurrency maps an explicit code to a currency, or falls back to
// the preferred one when the code is empty.
func (s *reportService) resolveCurrency(code string) (currency.Currency, error) {
	if code == "" {
		config, err := s.settings.GetConfig()
		if err != nil {
			return currency.Currency{}, err
		}
		return config.Currency, nil
	}
	c, ok := currency.ByCode(code)
	if !ok {
		return currency.Currency{}, apperrors.ErrUnsupportedCurrency
	}
	return c, nil
}
