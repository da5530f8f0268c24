// Package report is the aggregation engine: pure functions over a
// transaction collection that produce currency-normalized totals,
// category breakdowns, budget performance, and recurring-load
// projections. Nothing here caches or mutates; every view is recomputed
// from its inputs.
package report

import (
	"fmt"
	"sort"

	"finvue/internal/currency"
	"finvue/internal/models"
	"finvue/internal/pulse"
)

// Filter restricts a transaction collection to an inclusive date range.
// A nil bound is unbounded on that side.
type Filter struct {
	StartDate *models.Date
	EndDate   *models.Date
}

// Apply returns the transactions whose date falls inside the filter.
// Dates are fixed-width zero-padded strings, so the comparison is plain
// string ordering.
func (f Filter) Apply(txs []models.Transaction) []models.Transaction {
	out := make([]models.Transaction, 0, len(txs))
	for _, t := range txs {
		if f.StartDate != nil && t.Date.Before(*f.StartDate) {
			continue
		}
		if f.EndDate != nil && t.Date.After(*f.EndDate) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Totals are the headline figures, all in the target currency.
type Totals struct {
	Income      float64 `json:"income"`
	Expense     float64 `json:"expense"`
	Balance     float64 `json:"balance"`
	SavingsRate float64 `json:"savings_rate"`
}

// Summarize computes income, expense, balance, and savings rate over
// the given transactions, normalized to the target currency. With zero
// income the savings rate is 0 by definition, never NaN or Inf.
func Summarize(txs []models.Transaction, target string) Totals {
	var totals Totals
	for _, t := range txs {
		normalized := currency.Normalize(t.Amount, t.CurrencyCode, target)
		switch t.Type {
		case models.TransactionTypeIncome:
			totals.Income += normalized
		case models.TransactionTypeExpense:
			totals.Expense += normalized
		}
	}
	totals.Balance = totals.Income - totals.Expense
	if totals.Income > 0 {
		totals.SavingsRate = totals.Balance / totals.Income * 100
	}
	return totals
}

// CategoryBreakdown groups expense transactions by category and sums
// their normalized amounts.
func CategoryBreakdown(txs []models.Transaction, target string) map[string]float64 {
	breakdown := make(map[string]float64)
	for _, t := range txs {
		if t.Type != models.TransactionTypeExpense {
			continue
		}
		breakdown[t.Category] += currency.Normalize(t.Amount, t.CurrencyCode, target)
	}
	return breakdown
}

// BudgetStatus is one budget measured against actual spending.
type BudgetStatus struct {
	Category string  `json:"category"`
	Limit    float64 `json:"limit"`
	Actual   float64 `json:"actual"`
	Percent  float64 `json:"percent"`
}

// BudgetPerformance measures each budget against the expense breakdown
// and sorts the result by percent spent, highest first. The sort is
// stable: budgets with equal percentages keep their original relative
// order. A zero limit yields percent 0 rather than a division error.
func BudgetPerformance(budgets []models.Budget, breakdown map[string]float64) []BudgetStatus {
	statuses := make([]BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		actual := breakdown[b.Category]
		var percent float64
		if b.Limit > 0 {
			percent = actual / b.Limit * 100
		}
		statuses = append(statuses, BudgetStatus{
			Category: b.Category,
			Limit:    b.Limit,
			Actual:   actual,
			Percent:  percent,
		})
	}
	sort.SliceStable(statuses, func(i, j int) bool {
		return statuses[i].Percent > statuses[j].Percent
	})
	return statuses
}

// monthlyFactors converts one pulse amount to a monthly-equivalent
// estimate. This is an approximation by design: no calendar-exact
// projection, just the conventional 30-day month and 4-week month.
var monthlyFactors = map[models.PulseFrequency]float64{
	models.FrequencyDaily:   30,
	models.FrequencyWeekly:  4,
	models.FrequencyMonthly: 1,
	models.FrequencyYearly:  1.0 / 12,
}

// Projection is the estimated monthly load of all recurring pulses.
type Projection struct {
	MonthlyIncome  float64 `json:"monthly_income"`
	MonthlyExpense float64 `json:"monthly_expense"`
	IncomePulses   int     `json:"income_pulses"`
	ExpensePulses  int     `json:"expense_pulses"`
}

// Project estimates the combined monthly income and expense implied by
// the recurring pulses, normalized to the target currency. An unknown
// frequency is an invariant violation and fails loudly.
func Project(pulses []models.RecurringPulse, target string) (Projection, error) {
	var proj Projection
	for _, p := range pulses {
		factor, ok := monthlyFactors[p.Frequency]
		if !ok {
			return Projection{}, fmt.Errorf("%w: %q on pulse %s", pulse.ErrUnknownFrequency, p.Frequency, p.ID)
		}
		monthly := currency.Normalize(p.Amount, p.CurrencyCode, target) * factor
		if p.Type == models.TransactionTypeIncome {
			proj.MonthlyIncome += monthly
			proj.IncomePulses++
		} else {
			proj.MonthlyExpense += monthly
			proj.ExpensePulses++
		}
	}
	return proj, nil
}
