package models

// Settings is the singleton row of per-installation preferences.
// CurrencyCode is the preferred display and aggregation currency.
type Settings struct {
	Base
	CurrencyCode string `gorm:"not null" json:"currency_code"`
}
