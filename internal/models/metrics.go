package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Totals are the view-level KPI figures. Expenses carry the display sign
// convention: negative amounts internally, positive magnitude here, so
// Net = Income - Expenses = algebraic sum of the view.
type Totals struct {
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Net      decimal.Decimal `json:"net"`
}

// ZeroTotals returns an explicit all-zero Totals. An empty view is a valid
// input, not an error.
func ZeroTotals() Totals {
	return Totals{
		Income:   decimal.Zero,
		Expenses: decimal.Zero,
		Net:      decimal.Zero,
	}
}

// MonthlyBucket is one calendar month of the time series
type MonthlyBucket struct {
	Month string `json:"month"` // YYYY-MM
	Totals
}

// CategorySpend is one row of the category breakdown: the magnitude of
// expense amounts in that category over the filtered view
type CategorySpend struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Count    int             `json:"count"`
}

// CategoryDelta compares one category's spend across two windows
type CategoryDelta struct {
	Category string          `json:"category"`
	Current  decimal.Decimal `json:"current"`
	Previous decimal.Decimal `json:"previous"`
	Delta    decimal.Decimal `json:"delta"`
}

// PeriodComparison is the result of contrasting the current window with the
// immediately preceding window of equal length. Either top list may be empty;
// that is an empty state for the consumer, not an error.
type PeriodComparison struct {
	CurrentRange  DateRange       `json:"current_range"`
	PreviousRange DateRange       `json:"previous_range"`
	Deltas        []CategoryDelta `json:"deltas"`
	TopIncreases  []CategoryDelta `json:"top_increases"`
	TopDecreases  []CategoryDelta `json:"top_decreases"`
}

// Recurring commitment cadences
const (
	CadenceWeekly  = "weekly"
	CadenceMonthly = "monthly"
)

// RecurringCommitment is a merchant whose expense transactions show a
// consistent weekly or monthly gap pattern
type RecurringCommitment struct {
	Merchant     string          `json:"merchant"`
	Cadence      string          `json:"cadence"`
	MedianAmount decimal.Decimal `json:"median_amount"`
	LastSeen     time.Time       `json:"last_seen"`
	Occurrences  int             `json:"occurrences"`
	Confidence   float64         `json:"confidence"`
}

// DateBounds are the min/max transaction dates in the store. Both nil means
// the store is empty.
type DateBounds struct {
	Min *time.Time `json:"min"`
	Max *time.Time `json:"max"`
}

// KPIDeltas carry the change of each headline figure against the previous
// window. Present only when the previous window has activity.
type KPIDeltas struct {
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"`
	Net      decimal.Decimal `json:"net"`
}

// Dashboard is the full payload for one render pass. Every field derives
// from the same filtered view; nothing here re-reads the raw store.
type Dashboard struct {
	Range            DateRange             `json:"range"`
	ExcludeTransfers bool                  `json:"exclude_transfers"`
	Totals           Totals                `json:"totals"`
	PreviousTotals   *Totals               `json:"previous_totals,omitempty"`
	Deltas           *KPIDeltas            `json:"deltas,omitempty"`
	Monthly          []MonthlyBucket       `json:"monthly"`
	Categories       []CategorySpend       `json:"categories"`
	Comparison       PeriodComparison      `json:"comparison"`
	Recurring        []RecurringCommitment `json:"recurring"`
	GeneratedAt      time.Time             `json:"generated_at"`
}
