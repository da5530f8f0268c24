// Package pulse implements the recurring-transaction synchronization
// engine. A pulse is a template with a next-due date; synchronizing a
// pulse against "today" materializes one transaction per elapsed period
// since that date, so a user who has not opened the application for
// months catches up in a single pass.
package pulse

import (
	"errors"
	"fmt"
	"time"

	"finvue/internal/models"
	"finvue/internal/uuid"
)

// Marker prefixes the description of every materialized transaction so
// auto-generated entries are distinguishable from manual ones.
const Marker = "[PULSE] "

// ErrUnknownFrequency is returned when a pulse carries a frequency the
// dispatch table has no entry for. This is a data-model invariant
// violation and is never silently skipped.
var ErrUnknownFrequency = errors.New("unknown pulse frequency")

// advanceFunc moves a calendar date forward by exactly one period.
type advanceFunc func(time.Time) time.Time

// advances is the exhaustive frequency dispatch table. Adding a
// frequency means adding an entry here; Synchronize fails loudly for
// anything missing.
var advances = map[models.PulseFrequency]advanceFunc{
	models.FrequencyDaily:   func(t time.Time) time.Time { return t.AddDate(0, 0, 1) },
	models.FrequencyWeekly:  func(t time.Time) time.Time { return t.AddDate(0, 0, 7) },
	models.FrequencyMonthly: addMonthClamped,
	models.FrequencyYearly:  addYearClamped,
}

// addMonthClamped advances one calendar month, clamping the day of
// month to the last day of shorter months (Jan 31 -> Feb 28). This is
// the documented policy for pulses anchored on day 29/30/31; plain
// AddDate would normalize Jan 31 + 1 month to Mar 3 and double-fire.
func addMonthClamped(t time.Time) time.Time {
	year, month, day := t.Date()
	first := time.Date(year, month+1, 1, 0, 0, 0, 0, t.Location())
	if last := daysIn(first.Year(), first.Month()); day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, t.Location())
}

// addYearClamped advances one calendar year; only Feb 29 needs
// clamping, to Feb 28 in non-leap years.
func addYearClamped(t time.Time) time.Time {
	year, month, day := t.Date()
	if last := daysIn(year+1, month); day > last {
		day = last
	}
	return time.Date(year+1, month, day, 0, 0, 0, 0, t.Location())
}

// daysIn returns the number of days in the given month.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Result is the outcome of one synchronization pass.
type Result struct {
	Materialized  []models.Transaction
	UpdatedPulses []models.RecurringPulse
}

// Modified reports whether the pass materialized anything. Callers use
// it to skip persistence; merging an unmodified result is a no-op
// either way.
func (r Result) Modified() bool { return len(r.Materialized) > 0 }

// Synchronize advances every pulse across all periods elapsed up to and
// including today, emitting one materialized transaction per period.
// Pulses whose next date is already in the future come back unchanged.
//
// The pass is pure over its inputs (no I/O) and idempotent: running it
// again with the updated pulses and the same today materializes
// nothing, because every updated next date is strictly after today.
func Synchronize(pulses []models.RecurringPulse, today time.Time) (Result, error) {
	result := Result{
		UpdatedPulses: make([]models.RecurringPulse, 0, len(pulses)),
	}
	cutoff := models.DateOf(today)

	for _, p := range pulses {
		advance, ok := advances[p.Frequency]
		if !ok {
			return Result{}, fmt.Errorf("%w: %q on pulse %s", ErrUnknownFrequency, p.Frequency, p.ID)
		}

		next, err := p.NextPulseDate.Time()
		if err != nil {
			return Result{}, fmt.Errorf("pulse %s: %w", p.ID, err)
		}

		// Inclusive: a pulse due exactly today fires on this pass.
		for !models.DateOf(next).After(cutoff) {
			result.Materialized = append(result.Materialized, materialize(p, next))
			next = advance(next)
		}

		p.NextPulseDate = models.DateOf(next)
		result.UpdatedPulses = append(result.UpdatedPulses, p)
	}

	return result, nil
}

// materialize builds the concrete transaction for one elapsed period,
// copying amount, category, type, and currency from the pulse verbatim.
func materialize(p models.RecurringPulse, on time.Time) models.Transaction {
	return models.Transaction{
		Base:         models.Base{ID: uuid.New()},
		Date:         models.DateOf(on),
		Description:  Marker + p.Description,
		Amount:       p.Amount,
		Category:     p.Category,
		Type:         p.Type,
		CurrencyCode: p.CurrencyCode,
	}
}
