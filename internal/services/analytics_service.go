package services

import (
	"sort"

	"spendlens/internal/models"

	"github.com/shopspring/decimal"
)

// analyticsService is the pure metrics engine. It never touches storage and
// never mutates its inputs; every public method is a function of the view it
// is handed.
type analyticsService struct{}

// NewAnalyticsService creates the metrics engine
func NewAnalyticsService() AnalyticsServiceInterface {
	return &analyticsService{}
}

// Filter returns the transactions inside the inclusive date range, dropping
// transfers when requested. Applying it twice with the same arguments yields
// the same view.
func (s *analyticsService) Filter(transactions []models.Transaction, dateRange models.DateRange, excludeTransfers bool) []models.Transaction {
	view := make([]models.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if !dateRange.Contains(tx.Date) {
			continue
		}
		if excludeTransfers && tx.IsTransfer {
			continue
		}
		view = append(view, tx)
	}
	return view
}

// Totals sums the view. Income is the sum of positive amounts; expenses are
// reported as a positive magnitude while stored amounts stay negative, so
// Net = Income - Expenses equals the algebraic sum. An empty view yields
// zeros, not an error.
func (s *analyticsService) Totals(view []models.Transaction) models.Totals {
	totals := models.ZeroTotals()
	for _, tx := range view {
		if tx.Amount.IsPositive() {
			totals.Income = totals.Income.Add(tx.Amount)
		} else {
			totals.Expenses = totals.Expenses.Add(tx.Amount.Abs())
		}
	}
	totals.Net = totals.Income.Sub(totals.Expenses)
	return totals
}

// MonthlySeries buckets the view by calendar month, ordered chronologically.
// Months without transactions are omitted rather than zero-filled.
func (s *analyticsService) MonthlySeries(view []models.Transaction) []models.MonthlyBucket {
	buckets := make(map[string]*models.MonthlyBucket)
	for _, tx := range view {
		key := tx.MonthKey()
		bucket, ok := buckets[key]
		if !ok {
			bucket = &models.MonthlyBucket{Month: key, Totals: models.ZeroTotals()}
			buckets[key] = bucket
		}
		if tx.Amount.IsPositive() {
			bucket.Income = bucket.Income.Add(tx.Amount)
		} else {
			bucket.Expenses = bucket.Expenses.Add(tx.Amount.Abs())
		}
	}

	series := make([]models.MonthlyBucket, 0, len(buckets))
	for _, bucket := range buckets {
		bucket.Net = bucket.Income.Sub(bucket.Expenses)
		series = append(series, *bucket)
	}

	// YYYY-MM keys sort chronologically as strings
	sort.Slice(series, func(i, j int) bool {
		return series[i].Month < series[j].Month
	})
	return series
}

// CategoryBreakdown aggregates expense magnitudes per category. Income rows
// are excluded; records without a category land in the Uncategorized bucket.
// Ordered by total descending, then name ascending.
func (s *analyticsService) CategoryBreakdown(view []models.Transaction) []models.CategorySpend {
	spend := make(map[string]*models.CategorySpend)
	for _, tx := range view {
		if !tx.Amount.IsNegative() {
			continue
		}
		category := tx.DisplayCategory()
		entry, ok := spend[category]
		if !ok {
			entry = &models.CategorySpend{Category: category, Total: decimal.Zero}
			spend[category] = entry
		}
		entry.Total = entry.Total.Add(tx.Amount.Abs())
		entry.Count++
	}

	breakdown := make([]models.CategorySpend, 0, len(spend))
	for _, entry := range spend {
		breakdown = append(breakdown, *entry)
	}
	sort.Slice(breakdown, func(i, j int) bool {
		if !breakdown[i].Total.Equal(breakdown[j].Total) {
			return breakdown[i].Total.GreaterThan(breakdown[j].Total)
		}
		return breakdown[i].Category < breakdown[j].Category
	})
	return breakdown
}

// ComparePeriods contrasts the current window with the immediately preceding
// window of equal length. Categories present in either window appear in the
// deltas; a category missing from one side contributes zero there. Either
// top list may be empty; that is an empty state for the consumer.
func (s *analyticsService) ComparePeriods(transactions []models.Transaction, currentRange models.DateRange, excludeTransfers bool, topN int) models.PeriodComparison {
	previousRange := currentRange.Previous()

	currentView := s.Filter(transactions, currentRange, excludeTransfers)
	previousView := s.Filter(transactions, previousRange, excludeTransfers)

	current := s.CategoryBreakdown(currentView)
	previous := s.CategoryBreakdown(previousView)

	byCategory := make(map[string]*models.CategoryDelta)
	for _, entry := range current {
		byCategory[entry.Category] = &models.CategoryDelta{
			Category: entry.Category,
			Current:  entry.Total,
			Previous: decimal.Zero,
		}
	}
	for _, entry := range previous {
		delta, ok := byCategory[entry.Category]
		if !ok {
			delta = &models.CategoryDelta{
				Category: entry.Category,
				Current:  decimal.Zero,
			}
			byCategory[entry.Category] = delta
		}
		delta.Previous = entry.Total
	}

	deltas := make([]models.CategoryDelta, 0, len(byCategory))
	for _, delta := range byCategory {
		delta.Delta = delta.Current.Sub(delta.Previous)
		deltas = append(deltas, *delta)
	}
	sort.Slice(deltas, func(i, j int) bool {
		if !deltas[i].Delta.Equal(deltas[j].Delta) {
			return deltas[i].Delta.GreaterThan(deltas[j].Delta)
		}
		return deltas[i].Category < deltas[j].Category
	})

	return models.PeriodComparison{
		CurrentRange:  currentRange,
		PreviousRange: previousRange,
		Deltas:        deltas,
		TopIncreases:  topDeltas(deltas, topN, true),
		TopDecreases:  topDeltas(deltas, topN, false),
	}
}

// topDeltas ranks increases (delta > 0) or decreases (delta < 0) by absolute
// delta descending, category name ascending on ties
func topDeltas(deltas []models.CategoryDelta, topN int, increases bool) []models.CategoryDelta {
	selected := make([]models.CategoryDelta, 0, len(deltas))
	for _, delta := range deltas {
		if increases && delta.Delta.IsPositive() {
			selected = append(selected, delta)
		}
		if !increases && delta.Delta.IsNegative() {
			selected = append(selected, delta)
		}
	}

	sort.Slice(selected, func(i, j int) bool {
		absI, absJ := selected[i].Delta.Abs(), selected[j].Delta.Abs()
		if !absI.Equal(absJ) {
			return absI.GreaterThan(absJ)
		}
		return selected[i].Category < selected[j].Category
	})

	if topN > 0 && len(selected) > topN {
		selected = selected[:topN]
	}
	return selected
}
