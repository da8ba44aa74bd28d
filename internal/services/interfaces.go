package services

import (
	"io"
	"time"

	"spendlens/internal/models"

	"github.com/shopspring/decimal"
)

// CategorizerServiceInterface assigns categories and transfer flags from raw
// bank-export descriptions
type CategorizerServiceInterface interface {
	// Categorize returns the first matching category for a raw description.
	// An empty result means no rule matched; readers map it onto the
	// Uncategorized bucket.
	Categorize(description string) string

	// IsTransfer reports whether the description contains the whole word
	// "transfer"
	IsTransfer(description string) bool

	// TransferReason extracts the trailing purpose phrase from a transfer
	// description, e.g. "Transfer to xx6405 CommBank app Rent" -> "rent"
	TransferReason(description string) string

	// CategorizationKey produces the cleaned tail-focused key used for rule
	// matching on non-transfer descriptions
	CategorizationKey(description string) string

	// MerchantLabel derives a stable merchant name for grouping, e.g.
	// "DIRECT DEBIT NETFLIX.COM 4012" -> "Netflix Com"
	MerchantLabel(description string) string

	// Apply stamps Category and IsTransfer onto the transaction
	Apply(transaction *models.Transaction)
}

// AnalyticsServiceInterface is the pure metrics engine. Every method consumes
// an already-filtered view; none touches storage.
type AnalyticsServiceInterface interface {
	// Filter returns the subset of transactions inside the inclusive date
	// range, optionally dropping transfers. Pure and idempotent.
	Filter(transactions []models.Transaction, dateRange models.DateRange, excludeTransfers bool) []models.Transaction

	// Totals sums the view into income, expense magnitude and net
	Totals(view []models.Transaction) models.Totals

	// MonthlySeries buckets the view by calendar month in chronological
	// order. Months with no transactions are omitted.
	MonthlySeries(view []models.Transaction) []models.MonthlyBucket

	// CategoryBreakdown aggregates expense magnitudes per category
	CategoryBreakdown(view []models.Transaction) []models.CategorySpend

	// ComparePeriods contrasts the current window with the immediately
	// preceding window of equal length
	ComparePeriods(transactions []models.Transaction, currentRange models.DateRange, excludeTransfers bool, topN int) models.PeriodComparison
}

// RecurringServiceInterface detects repeating expense commitments
type RecurringServiceInterface interface {
	DetectCommitments(view []models.Transaction) []models.RecurringCommitment
}

// ImportServiceInterface ingests bank-export CSV files
type ImportServiceInterface interface {
	// ImportCSV parses one headerless export and stores its rows, returning
	// the aggregate report. Row failures are collected, not raised.
	ImportCSV(source string, reader io.Reader) (*models.ImportReport, error)

	// ImportDirectory ingests every CSV in the inbox directory, moving each
	// file to the archive or rejected directory afterwards
	ImportDirectory(inboxDir, archiveDir, rejectedDir string) ([]models.ImportReport, error)
}

// DashboardServiceInterface assembles dashboard payloads from one filtered
// view per request
type DashboardServiceInterface interface {
	GetDashboard(dateRange models.DateRange, excludeTransfers bool, topN int) (*models.Dashboard, error)
	GetTotals(dateRange models.DateRange, excludeTransfers bool) (models.Totals, error)
	GetMonthlySeries(dateRange models.DateRange, excludeTransfers bool) ([]models.MonthlyBucket, error)
	GetCategoryBreakdown(dateRange models.DateRange, excludeTransfers bool) ([]models.CategorySpend, error)
	GetComparison(dateRange models.DateRange, excludeTransfers bool, topN int) (models.PeriodComparison, error)
	GetRecurringCommitments(dateRange models.DateRange, excludeTransfers bool) ([]models.RecurringCommitment, error)
	GetRecentTransactions(limit int) ([]models.Transaction, error)
	GetDateBounds() (models.DateBounds, error)

	// ResolveRange fills missing boundaries from the store's date bounds
	ResolveRange(startDate, endDate *time.Time) (models.DateRange, error)
}

type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
}

// TransactionGeneratorInterface generates realistic bank-export data for
// seeding development databases
type TransactionGeneratorInterface interface {
	GenerateHistory(startDate, endDate time.Time, openingBalance decimal.Decimal) []models.Transaction
	GenerateSalaryDeposits(startDate, endDate time.Time) []models.Transaction
	GenerateBillPayments(startDate, endDate time.Time) []models.Transaction
	GenerateDailyPurchases(startDate, endDate time.Time) []models.Transaction
	GenerateTransfers(startDate, endDate time.Time) []models.Transaction
}
