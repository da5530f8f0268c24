package models

// PulseFrequency represents how often a recurring pulse fires
type PulseFrequency string

const (
	FrequencyDaily   PulseFrequency = "daily"
	FrequencyWeekly  PulseFrequency = "weekly"
	FrequencyMonthly PulseFrequency = "monthly"
	FrequencyYearly  PulseFrequency = "yearly"
)

// RecurringPulse is a template that generates transactions over time.
// NextPulseDate is the earliest date (inclusive) for which a transaction
// has not yet been materialized; only the scheduler advances it. After a
// synchronization pass it is always strictly in the future.
type RecurringPulse struct {
	Base
	Description   string          `json:"description"`
	Amount        float64         `gorm:"not null" json:"amount"`
	Category      string          `gorm:"not null" json:"category"`
	Type          TransactionType `gorm:"not null" json:"type"`
	CurrencyCode  string          `gorm:"not null" json:"currency_code"`
	Frequency     PulseFrequency  `gorm:"not null" json:"frequency"`
	NextPulseDate Date            `gorm:"type:text;not null" json:"next_pulse_date"`
}
