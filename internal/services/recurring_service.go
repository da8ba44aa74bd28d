package services

import (
	"sort"
	"time"

	"spendlens/internal/models"

	"github.com/shopspring/decimal"
)

const (
	minRecurringOccurrences = 3

	weeklyGapMin  = 5
	weeklyGapMax  = 9
	monthlyGapMin = 25
	monthlyGapMax = 35
)

// recurringService detects repeating expense commitments with deterministic
// cadence rules rather than statistical modelling
type recurringService struct {
	categorizer CategorizerServiceInterface
}

// NewRecurringService creates the recurring-commitment detector
func NewRecurringService(categorizer CategorizerServiceInterface) RecurringServiceInterface {
	return &recurringService{
		categorizer: categorizer,
	}
}

// DetectCommitments groups expense rows by normalized merchant and keeps the
// groups whose median inter-transaction gap falls in the weekly (5-9 days) or
// monthly (25-35 days) band. Confidence is the share of gaps inside the band.
func (s *recurringService) DetectCommitments(view []models.Transaction) []models.RecurringCommitment {
	groups := make(map[string][]models.Transaction)
	for _, tx := range view {
		if !tx.Amount.IsNegative() {
			continue
		}
		merchant := s.categorizer.MerchantLabel(tx.Description)
		groups[merchant] = append(groups[merchant], tx)
	}

	commitments := make([]models.RecurringCommitment, 0)
	for merchant, group := range groups {
		if len(group) < minRecurringOccurrences {
			continue
		}

		dates := make([]time.Time, len(group))
		for i, tx := range group {
			dates[i] = tx.Date
		}
		sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

		gaps := make([]int, 0, len(dates)-1)
		for i := 0; i < len(dates)-1; i++ {
			gaps = append(gaps, int(dates[i+1].Sub(dates[i]).Hours()/24))
		}
		if len(gaps) == 0 {
			continue
		}

		medianGap := upperMedian(gaps)

		var cadence string
		var inRange int
		switch {
		case medianGap >= weeklyGapMin && medianGap <= weeklyGapMax:
			cadence = models.CadenceWeekly
			inRange = countInRange(gaps, weeklyGapMin, weeklyGapMax)
		case medianGap >= monthlyGapMin && medianGap <= monthlyGapMax:
			cadence = models.CadenceMonthly
			inRange = countInRange(gaps, monthlyGapMin, monthlyGapMax)
		default:
			continue
		}

		commitments = append(commitments, models.RecurringCommitment{
			Merchant:     merchant,
			Cadence:      cadence,
			MedianAmount: medianAmount(group),
			LastSeen:     dates[len(dates)-1],
			Occurrences:  len(group),
			Confidence:   float64(inRange) / float64(len(gaps)),
		})
	}

	sort.Slice(commitments, func(i, j int) bool {
		if commitments[i].Cadence != commitments[j].Cadence {
			return commitments[i].Cadence < commitments[j].Cadence
		}
		if commitments[i].Confidence != commitments[j].Confidence {
			return commitments[i].Confidence > commitments[j].Confidence
		}
		return commitments[i].Merchant < commitments[j].Merchant
	})
	return commitments
}

// upperMedian returns the upper-middle element of the sorted gaps, matching
// the cadence banding the thresholds were tuned against
func upperMedian(gaps []int) int {
	sorted := make([]int, len(gaps))
	copy(sorted, gaps)
	sort.Ints(sorted)
	return sorted[len(sorted)/2]
}

func countInRange(gaps []int, min, max int) int {
	count := 0
	for _, gap := range gaps {
		if gap >= min && gap <= max {
			count++
		}
	}
	return count
}

// medianAmount returns the median expense magnitude for the group, averaging
// the two middle values for even-sized groups
func medianAmount(group []models.Transaction) decimal.Decimal {
	amounts := make([]decimal.Decimal, len(group))
	for i, tx := range group {
		amounts[i] = tx.Amount.Abs()
	}
	sort.Slice(amounts, func(i, j int) bool { return amounts[i].LessThan(amounts[j]) })

	mid := len(amounts) / 2
	if len(amounts)%2 == 1 {
		return amounts[mid].Round(2)
	}
	return amounts[mid-1].Add(amounts[mid]).Div(decimal.NewFromInt(2)).Round(2)
}
