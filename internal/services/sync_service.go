package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "finvue/internal/errors"
	"finvue/internal/logger"
	"finvue/internal/models"
	"finvue/internal/pulse"
)

// syncService materializes due recurring pulses into transactions.
type syncService struct {
	db *gorm.DB
}

// NewSyncService creates a new SyncServicer.
func NewSyncService(db *gorm.DB) SyncServicer {
	return &syncService{db: db}
}

// SynchronizePulses processes every pulse due on or before today and
// persists the outcome atomically. It returns the number of
// transactions materialized. Running it twice for the same day
// materializes nothing on the second pass.
func (s *syncService) SynchronizePulses(today models.Date) (int, error) {
	cutoff, err := today.Time()
	if err != nil {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "today must be YYYY-MM-DD")
	}

	var pulses []models.RecurringPulse
	if err := s.db.Order("created_at ASC").Find(&pulses).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result, err := pulse.Synchronize(pulses, cutoff)
	if err != nil {
		if errors.Is(err, pulse.ErrUnknownFrequency) {
			return 0, apperrors.Wrap(apperrors.ErrUnknownFrequency, err)
		}
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if !result.Modified() {
		return 0, nil
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for i := range result.Materialized {
			if err := tx.Create(&result.Materialized[i]).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
		for i := range result.UpdatedPulses {
			p := &result.UpdatedPulses[i]
			if err := tx.Model(&models.RecurringPulse{}).
				Where("id = ?", p.ID).
				Update("next_pulse_date", p.NextPulseDate).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	logger.Get().Infow("synchronized recurring pulses",
		"materialized", len(result.Materialized),
		"updated_pulses", len(result.UpdatedPulses),
		"as_of", today,
	)
	return len(result.Materialized), nil
}
