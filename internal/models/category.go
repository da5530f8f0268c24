package models

// CategoryType represents the type of category
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
)

// Category is one entry of the ordered per-type category lists.
// Removing a category does not retroactively invalidate transactions or
// pulses that reference it by name.
type Category struct {
	Base
	Name     string       `gorm:"not null" json:"name"`
	Type     CategoryType `gorm:"not null;index" json:"type"`
	Position int          `gorm:"not null" json:"position"`
}
