// Package advisor is the boundary to the AI advisory collaborator. The
// collaborator is network-bound, non-deterministic, and fallible; every
// caller treats a failure as "no insight available" and nothing in the
// transaction or pulse logic ever depends on it.
package advisor

import (
	"context"

	"finvue/internal/currency"
	"finvue/internal/models"
)

// ParsedTransaction is the structured result of a natural-language
// parse. It is a draft for the caller to confirm, never applied
// directly to the store.
type ParsedTransaction struct {
	Description  string  `json:"description"`
	Amount       float64 `json:"amount"`
	Category     string  `json:"category"`
	Type         string  `json:"type"`
	Date         string  `json:"date"`
	CurrencyCode string  `json:"currencyCode"`
}

// CategorySet is the active category names per transaction type,
// supplied to constrain what the model may answer with.
type CategorySet struct {
	Expense []string
	Income  []string
}

// Advisor is the contract with the AI collaborator. Implementations are
// stubbed in tests, never faithfully mocked.
type Advisor interface {
	// GetInsights returns free-form advisory text (markdown-like) for a
	// non-empty transaction history. Callers must short-circuit the
	// zero-transaction case themselves and not invoke this.
	GetInsights(ctx context.Context, txs []models.Transaction, preferred currency.Currency) (string, error)

	// ParseTransaction extracts a structured transaction from free text.
	// A nil result with an error means "leave everything unchanged".
	ParseTransaction(ctx context.Context, input string, categories CategorySet) (*ParsedTransaction, error)
}
