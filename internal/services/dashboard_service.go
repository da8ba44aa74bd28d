package services

import (
	"fmt"
	"log/slog"
	"time"

	"spendlens/internal/models"
	"spendlens/internal/repositories"
)

const DefaultDashboardPeriodDays = 30

// dashboardService assembles dashboard payloads. Each request loads the
// store once into an immutable slice; every figure on the payload derives
// from the single filtered view of that slice.
type dashboardService struct {
	transactionRepo repositories.TransactionRepositoryInterface
	analytics       AnalyticsServiceInterface
	recurring       RecurringServiceInterface
	metrics         MetricsRecorderInterface
}

// NewDashboardService creates the dashboard service
func NewDashboardService(
	transactionRepo repositories.TransactionRepositoryInterface,
	analytics AnalyticsServiceInterface,
	recurring RecurringServiceInterface,
	metrics MetricsRecorderInterface,
) DashboardServiceInterface {
	return &dashboardService{
		transactionRepo: transactionRepo,
		analytics:       analytics,
		recurring:       recurring,
		metrics:         metrics,
	}
}

func (s *dashboardService) GetDashboard(dateRange models.DateRange, excludeTransfers bool, topN int) (*models.Dashboard, error) {
	start := time.Now()

	all, err := s.loadStore()
	if err != nil {
		return nil, err
	}
	view := s.analytics.Filter(all, dateRange, excludeTransfers)

	dashboard := &models.Dashboard{
		Range:            dateRange,
		ExcludeTransfers: excludeTransfers,
		Totals:           s.analytics.Totals(view),
		Monthly:          s.analytics.MonthlySeries(view),
		Categories:       s.analytics.CategoryBreakdown(view),
		Comparison:       s.analytics.ComparePeriods(all, dateRange, excludeTransfers, topN),
		Recurring:        s.recurring.DetectCommitments(view),
		GeneratedAt:      time.Now().UTC(),
	}

	// Headline deltas only make sense against a previous window that saw
	// activity; otherwise every figure would read as a change from nothing.
	previousView := s.analytics.Filter(all, dateRange.Previous(), excludeTransfers)
	previousTotals := s.analytics.Totals(previousView)
	if previousTotals.Income.Add(previousTotals.Expenses).IsPositive() {
		dashboard.PreviousTotals = &previousTotals
		dashboard.Deltas = &models.KPIDeltas{
			Income:   dashboard.Totals.Income.Sub(previousTotals.Income),
			Expenses: dashboard.Totals.Expenses.Sub(previousTotals.Expenses),
			Net:      dashboard.Totals.Net.Sub(previousTotals.Net),
		}
	}

	s.metrics.IncrementCounter("dashboard.request", map[string]string{"endpoint": "dashboard"})
	s.metrics.RecordProcessingTime("dashboard.compute", time.Since(start))

	slog.Info("dashboard generated",
		"range", dateRange.String(),
		"exclude_transfers", excludeTransfers,
		"view_size", len(view),
		"duration_ms", time.Since(start).Milliseconds())

	return dashboard, nil
}

func (s *dashboardService) GetTotals(dateRange models.DateRange, excludeTransfers bool) (models.Totals, error) {
	view, err := s.loadView(dateRange, excludeTransfers)
	if err != nil {
		return models.Totals{}, err
	}
	s.metrics.IncrementCounter("dashboard.request", map[string]string{"endpoint": "totals"})
	return s.analytics.Totals(view), nil
}

func (s *dashboardService) GetMonthlySeries(dateRange models.DateRange, excludeTransfers bool) ([]models.MonthlyBucket, error) {
	view, err := s.loadView(dateRange, excludeTransfers)
	if err != nil {
		return nil, err
	}
	s.metrics.IncrementCounter("dashboard.request", map[string]string{"endpoint": "monthly"})
	return s.analytics.MonthlySeries(view), nil
}

func (s *dashboardService) GetCategoryBreakdown(dateRange models.DateRange, excludeTransfers bool) ([]models.CategorySpend, error) {
	view, err := s.loadView(dateRange, excludeTransfers)
	if err != nil {
		return nil, err
	}
	s.metrics.IncrementCounter("dashboard.request", map[string]string{"endpoint": "categories"})
	return s.analytics.CategoryBreakdown(view), nil
}

func (s *dashboardService) GetComparison(dateRange models.DateRange, excludeTransfers bool, topN int) (models.PeriodComparison, error) {
	all, err := s.loadStore()
	if err != nil {
		return models.PeriodComparison{}, err
	}
	s.metrics.IncrementCounter("dashboard.request", map[string]string{"endpoint": "comparison"})
	return s.analytics.ComparePeriods(all, dateRange, excludeTransfers, topN), nil
}

func (s *dashboardService) GetRecurringCommitments(dateRange models.DateRange, excludeTransfers bool) ([]models.RecurringCommitment, error) {
	view, err := s.loadView(dateRange, excludeTransfers)
	if err != nil {
		return nil, err
	}
	s.metrics.IncrementCounter("dashboard.request", map[string]string{"endpoint": "recurring"})
	return s.recurring.DetectCommitments(view), nil
}

func (s *dashboardService) GetRecentTransactions(limit int) ([]models.Transaction, error) {
	transactions, err := s.transactionRepo.GetRecent(limit)
	if err != nil {
		slog.Error("failed to fetch recent transactions", "error", err)
		return nil, fmt.Errorf("failed to fetch recent transactions: %w", err)
	}
	return transactions, nil
}

func (s *dashboardService) GetDateBounds() (models.DateBounds, error) {
	bounds, err := s.transactionRepo.GetDateBounds()
	if err != nil {
		slog.Error("failed to fetch date bounds", "error", err)
		return models.DateBounds{}, fmt.Errorf("failed to fetch date bounds: %w", err)
	}
	return bounds, nil
}

// ResolveRange fills missing boundaries: absent dates default to the store's
// bounds, and an empty store falls back to the trailing default period so
// the dashboard renders an explicit empty state
func (s *dashboardService) ResolveRange(startDate, endDate *time.Time) (models.DateRange, error) {
	if startDate != nil && endDate != nil {
		return models.NewDateRange(*startDate, *endDate)
	}

	bounds, err := s.GetDateBounds()
	if err != nil {
		return models.DateRange{}, err
	}

	effectiveEnd := time.Now().UTC()
	if endDate != nil {
		effectiveEnd = *endDate
	} else if bounds.Max != nil {
		effectiveEnd = *bounds.Max
	}

	effectiveStart := effectiveEnd.AddDate(0, 0, -(DefaultDashboardPeriodDays - 1))
	if startDate != nil {
		effectiveStart = *startDate
	} else if bounds.Min != nil {
		effectiveStart = *bounds.Min
	}

	// Only user-supplied inversions are errors; a default boundary that
	// lands past the other side collapses to a single-day window
	if startDate == nil && effectiveStart.After(effectiveEnd) {
		effectiveStart = effectiveEnd
	}
	if endDate == nil && effectiveEnd.Before(effectiveStart) {
		effectiveEnd = effectiveStart
	}

	return models.NewDateRange(effectiveStart, effectiveEnd)
}

func (s *dashboardService) loadStore() ([]models.Transaction, error) {
	all, err := s.transactionRepo.GetAll()
	if err != nil {
		slog.Error("failed to load transaction store", "error", err)
		return nil, fmt.Errorf("failed to load transaction store: %w", err)
	}
	return all, nil
}

func (s *dashboardService) loadView(dateRange models.DateRange, excludeTransfers bool) ([]models.Transaction, error) {
	all, err := s.loadStore()
	if err != nil {
		return nil, err
	}
	return s.analytics.Filter(all, dateRange, excludeTransfers), nil
}
