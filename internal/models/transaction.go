package models

// TransactionType represents the type of transaction
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// Transaction represents a single income or expense entry. Amount is a
// non-negative magnitude in the transaction's own currency; the sign is
// implied by Type. Transactions are created by direct entry, by an
// accepted natural-language parse, or by pulse materialization, and are
// only ever changed through an explicit edit.
type Transaction struct {
	Base
	Date         Date            `gorm:"type:text;not null;index" json:"date"`
	Description  string          `json:"description"`
	Amount       float64         `gorm:"not null" json:"amount"`
	Category     string          `gorm:"not null" json:"category"`
	Type         TransactionType `gorm:"not null" json:"type"`
	CurrencyCode string          `gorm:"not null" json:"currency_code"`
}
