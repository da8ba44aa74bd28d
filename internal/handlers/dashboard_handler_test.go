package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"spendlens/internal/database"
	"spendlens/internal/models"
	"spendlens/internal/repositories"
	"spendlens/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// stubMetrics satisfies the metrics recorder for handler tests; the real
// Prometheus recorder registers on the default registry and cannot be
// constructed per test
type stubMetrics struct{}

func (m *stubMetrics) IncrementCounter(name string, labels map[string]string)           {}
func (m *stubMetrics) RecordProcessingTime(name string, duration time.Duration)         {}
func (m *stubMetrics) RecordGauge(name string, value float64, labels map[string]string) {}

type DashboardHandlerTestSuite struct {
	suite.Suite
	echo    *echo.Echo
	db      *database.DB
	repo    repositories.TransactionRepositoryInterface
	handler *DashboardHandler
}

func TestDashboardHandlerSuite(t *testing.T) {
	suite.Run(t, new(DashboardHandlerTestSuite))
}

func (s *DashboardHandlerTestSuite) SetupTest() {
	s.echo = echo.New()
	s.echo.Validator = NewValidator()

	s.db = database.SetupTestDB(s.T())
	s.repo = repositories.NewTransactionRepository(s.db.DB)

	categorizer := services.NewCategorizerService()
	dashboardService := services.NewDashboardService(
		s.repo,
		services.NewAnalyticsService(),
		services.NewRecurringService(categorizer),
		&stubMetrics{},
	)
	s.handler = NewDashboardHandler(dashboardService)
}

func (s *DashboardHandlerTestSuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

func (s *DashboardHandlerTestSuite) seed(date, amount, description, category string, isTransfer bool) {
	day, err := time.Parse("2006-01-02", date)
	s.Require().NoError(err)
	tx := models.Transaction{
		Date:        day.UTC(),
		Amount:      decimal.RequireFromString(amount),
		Description: description,
		Category:    category,
		IsTransfer:  isTransfer,
	}
	s.Require().NoError(s.repo.Create(&tx))
}

func (s *DashboardHandlerTestSuite) request(target string) (*httptest.ResponseRecorder, echo.Context) {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return rec, s.echo.NewContext(req, rec)
}

func (s *DashboardHandlerTestSuite) TestGetDashboard() {
	s.seed("2025-03-10", "2500.00", "SALARY ACME PTY LTD PAYROLL", models.CategoryIncome, false)
	s.seed("2025-03-15", "-150.00", "WOOLWORTHS 1234 SYDNEY", models.CategoryGroceries, false)

	rec, c := s.request("/api/v1/dashboard?startDate=2025-03-01&endDate=2025-03-31")

	s.Require().NoError(s.handler.GetDashboard(c))
	s.Equal(http.StatusOK, rec.Code)

	var dashboard models.Dashboard
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &dashboard))
	s.Equal("2500", dashboard.Totals.Income.String())
	s.Equal("150", dashboard.Totals.Expenses.String())
	s.False(dashboard.ExcludeTransfers)
	s.Len(dashboard.Monthly, 1)
	s.Len(dashboard.Categories, 1)
}

func (s *DashboardHandlerTestSuite) TestGetDashboard_ExcludeTransfers() {
	s.seed("2025-03-15", "-150.00", "WOOLWORTHS 1234 SYDNEY", models.CategoryGroceries, false)
	s.seed("2025-03-20", "-200.00", "Transfer to xx6405 CommBank app", models.CategoryTransfer, true)

	rec, c := s.request("/api/v1/dashboard?startDate=2025-03-01&endDate=2025-03-31&excludeTransfers=true")

	s.Require().NoError(s.handler.GetDashboard(c))
	s.Equal(http.StatusOK, rec.Code)

	var dashboard models.Dashboard
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &dashboard))
	s.True(dashboard.ExcludeTransfers)
	s.Equal("150", dashboard.Totals.Expenses.String())
}

func (s *DashboardHandlerTestSuite) TestGetDashboard_InvertedRange() {
	rec, c := s.request("/api/v1/dashboard?startDate=2025-03-31&endDate=2025-03-01")

	s.Require().NoError(s.handler.GetDashboard(c))
	s.Equal(http.StatusBadRequest, rec.Code)

	var response ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal("RANGE_001", response.Error.Code)
}

func (s *DashboardHandlerTestSuite) TestGetDashboard_MalformedDate() {
	rec, c := s.request("/api/v1/dashboard?startDate=15-03-2025")

	s.Require().NoError(s.handler.GetDashboard(c))
	s.Equal(http.StatusBadRequest, rec.Code)

	var response ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal("VALIDATION_002", response.Error.Code)
}

func (s *DashboardHandlerTestSuite) TestGetDashboard_EmptyStoreIsValid() {
	rec, c := s.request("/api/v1/dashboard")

	s.Require().NoError(s.handler.GetDashboard(c))
	s.Equal(http.StatusOK, rec.Code)

	var dashboard models.Dashboard
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &dashboard))
	s.True(dashboard.Totals.Income.IsZero())
	s.Empty(dashboard.Monthly)
}

func (s *DashboardHandlerTestSuite) TestGetTotals() {
	s.seed("2025-03-10", "2500.00", "SALARY ACME PTY LTD PAYROLL", models.CategoryIncome, false)
	s.seed("2025-03-15", "-150.00", "WOOLWORTHS 1234 SYDNEY", models.CategoryGroceries, false)

	rec, c := s.request("/api/v1/dashboard/totals?startDate=2025-03-01&endDate=2025-03-31")

	s.Require().NoError(s.handler.GetTotals(c))
	s.Equal(http.StatusOK, rec.Code)

	var totals models.Totals
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &totals))
	s.Equal("2350", totals.Net.String())
}

func (s *DashboardHandlerTestSuite) TestGetMonthlySeries() {
	s.seed("2025-01-10", "-10.00", "COLES 0553 NEWTOWN", models.CategoryGroceries, false)
	s.seed("2025-03-10", "-20.00", "COLES 0553 NEWTOWN", models.CategoryGroceries, false)

	rec, c := s.request("/api/v1/dashboard/monthly?startDate=2025-01-01&endDate=2025-03-31")

	s.Require().NoError(s.handler.GetMonthlySeries(c))
	s.Equal(http.StatusOK, rec.Code)

	var series []models.MonthlyBucket
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &series))
	s.Require().Len(series, 2)
	s.Equal("2025-01", series[0].Month)
	s.Equal("2025-03", series[1].Month)
}

func (s *DashboardHandlerTestSuite) TestGetCategoryBreakdown() {
	s.seed("2025-03-10", "-30.00", "UBER *TRIP", models.CategoryTransport, false)
	s.seed("2025-03-11", "-150.00", "WOOLWORTHS 1234 SYDNEY", models.CategoryGroceries, false)

	rec, c := s.request("/api/v1/dashboard/categories?startDate=2025-03-01&endDate=2025-03-31")

	s.Require().NoError(s.handler.GetCategoryBreakdown(c))
	s.Equal(http.StatusOK, rec.Code)

	var breakdown []models.CategorySpend
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &breakdown))
	s.Require().Len(breakdown, 2)
	s.Equal(models.CategoryGroceries, breakdown[0].Category)
}

func (s *DashboardHandlerTestSuite) TestGetComparison_TopN() {
	s.seed("2025-03-10", "-150.00", "WOOLWORTHS 1234 SYDNEY", models.CategoryGroceries, false)
	s.seed("2025-03-11", "-100.00", "MCDONALDS 0412 SYDNEY", models.CategoryDining, false)
	s.seed("2025-03-12", "-50.00", "KMART 0553 BROADWAY", models.CategoryShopping, false)

	rec, c := s.request("/api/v1/dashboard/comparison?startDate=2025-03-01&endDate=2025-03-28&topN=2")

	s.Require().NoError(s.handler.GetComparison(c))
	s.Equal(http.StatusOK, rec.Code)

	var comparison models.PeriodComparison
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &comparison))
	s.Len(comparison.TopIncreases, 2)
}

func (s *DashboardHandlerTestSuite) TestGetComparison_TopNOutOfRange() {
	rec, c := s.request("/api/v1/dashboard/comparison?startDate=2025-03-01&endDate=2025-03-28&topN=500")

	s.Require().NoError(s.handler.GetComparison(c))
	s.Equal(http.StatusBadRequest, rec.Code)

	var response ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	s.Equal("VALIDATION_003", response.Error.Code)
}

func (s *DashboardHandlerTestSuite) TestGetRecurringCommitments() {
	for month := time.Month(1); month <= 4; month++ {
		date := time.Date(2025, month, 15, 0, 0, 0, 0, time.UTC)
		s.seed(date.Format("2006-01-02"), "-17.99", "NETFLIX.COM", models.CategorySubscriptions, false)
	}

	rec, c := s.request("/api/v1/dashboard/recurring?startDate=2025-01-01&endDate=2025-04-30")

	s.Require().NoError(s.handler.GetRecurringCommitments(c))
	s.Equal(http.StatusOK, rec.Code)

	var commitments []models.RecurringCommitment
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &commitments))
	s.Require().Len(commitments, 1)
	s.Equal(models.CadenceMonthly, commitments[0].Cadence)
}
