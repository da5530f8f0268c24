package models

// Budget is a spending cap for a single expense category, expressed in
// the user's preferred currency. Category is the unique key: setting a
// budget for a category that already has one replaces it. Position
// records creation order and breaks ties when budgets sort equal.
type Budget struct {
	Base
	Category string  `gorm:"not null;index" json:"category"`
	Limit    float64 `gorm:"not null" json:"limit"`
	Position int     `gorm:"not null" json:"position"`
}
