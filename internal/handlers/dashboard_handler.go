package handlers

import (
	stderrors "errors"
	"net/http"
	"time"

	"spendlens/internal/dto"
	"spendlens/internal/errors"
	"spendlens/internal/models"
	"spendlens/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

const defaultComparisonTopN = 5

// DashboardHandler serves the dashboard metric endpoints. Every endpoint is
// a pure function of its query parameters; there is no server-side filter
// state between requests.
type DashboardHandler struct {
	dashboardService services.DashboardServiceInterface
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService services.DashboardServiceInterface) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// parseQuery binds and validates the shared dashboard query parameters
func (h *DashboardHandler) parseQuery(c echo.Context) (*dto.DashboardQuery, error) {
	query := &dto.DashboardQuery{TopN: defaultComparisonTopN}
	if err := c.Bind(query); err != nil {
		return nil, SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}
	if err := c.Validate(query); err != nil {
		var fieldErrors validator.ValidationErrors
		if stderrors.As(err, &fieldErrors) {
			for _, fieldError := range fieldErrors {
				if fieldError.Tag() == "iso_date" {
					return nil, SendError(c, errors.ValidationInvalidDate,
						errors.WithDetails(fieldError.Field()+": expected YYYY-MM-DD"))
				}
			}
			return nil, SendError(c, errors.ValidationOutOfRange, errors.WithDetails(fieldErrors.Error()))
		}
		return nil, SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}
	return query, nil
}

// resolveRange converts the validated date strings and lets the service fill
// missing boundaries from the store bounds
func (h *DashboardHandler) resolveRange(c echo.Context, query *dto.DashboardQuery) (models.DateRange, bool, error) {
	var startDate, endDate *time.Time
	if query.StartDate != "" {
		parsed, _ := time.Parse(dateParamLayout, query.StartDate)
		startDate = &parsed
	}
	if query.EndDate != "" {
		parsed, _ := time.Parse(dateParamLayout, query.EndDate)
		endDate = &parsed
	}

	dateRange, err := h.dashboardService.ResolveRange(startDate, endDate)
	if err != nil {
		if stderrors.Is(err, models.ErrInvalidDateRange) {
			return models.DateRange{}, false, SendError(c, errors.RangeStartAfterEnd)
		}
		return models.DateRange{}, false, SendSystemError(c, err)
	}

	return dateRange, true, nil
}

// GetDashboard returns the full dashboard payload
// @Summary Full dashboard
// @Description Totals, monthly series, category breakdown, period comparison and recurring commitments for one filtered view
// @Tags Dashboard
// @Produce json
// @Param startDate query string false "Window start (YYYY-MM-DD), defaults to the store's earliest date"
// @Param endDate query string false "Window end (YYYY-MM-DD), defaults to the store's latest date"
// @Param excludeTransfers query bool false "Drop transfer rows from the view"
// @Param topN query int false "Top movers per direction in the comparison" default(5)
// @Success 200 {object} models.Dashboard "Dashboard payload"
// @Failure 400 {object} errors.ErrorResponse "RANGE_001 - Start date after end date or VALIDATION_002 - Invalid date"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /api/v1/dashboard [get]
func (h *DashboardHandler) GetDashboard(c echo.Context) error {
	query, err := h.parseQuery(c)
	if err != nil {
		return err
	}

	dateRange, ok, err := h.resolveRange(c, query)
	if !ok {
		return err
	}

	dashboard, err := h.dashboardService.GetDashboard(dateRange, query.ExcludeTransfers, query.TopN)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dashboard)
}

// GetTotals returns income, expenses and net for the window
// @Summary Totals
// @Tags Dashboard
// @Produce json
// @Param startDate query string false "Window start (YYYY-MM-DD)"
// @Param endDate query string false "Window end (YYYY-MM-DD)"
// @Param excludeTransfers query bool false "Drop transfer rows from the view"
// @Success 200 {object} models.Totals
// @Failure 400 {object} errors.ErrorResponse "RANGE_001 - Start date after end date"
// @Router /api/v1/dashboard/totals [get]
func (h *DashboardHandler) GetTotals(c echo.Context) error {
	query, err := h.parseQuery(c)
	if err != nil {
		return err
	}

	dateRange, ok, err := h.resolveRange(c, query)
	if !ok {
		return err
	}

	totals, err := h.dashboardService.GetTotals(dateRange, query.ExcludeTransfers)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, totals)
}

// GetMonthlySeries returns the month-by-month income/expense/net series.
// Months without transactions are omitted rather than zero-filled.
// @Summary Monthly series
// @Tags Dashboard
// @Produce json
// @Param startDate query string false "Window start (YYYY-MM-DD)"
// @Param endDate query string false "Window end (YYYY-MM-DD)"
// @Param excludeTransfers query bool false "Drop transfer rows from the view"
// @Success 200 {array} models.MonthlyBucket
// @Failure 400 {object} errors.ErrorResponse "RANGE_001 - Start date after end date"
// @Router /api/v1/dashboard/monthly [get]
func (h *DashboardHandler) GetMonthlySeries(c echo.Context) error {
	query, err := h.parseQuery(c)
	if err != nil {
		return err
	}

	dateRange, ok, err := h.resolveRange(c, query)
	if !ok {
		return err
	}

	series, err := h.dashboardService.GetMonthlySeries(dateRange, query.ExcludeTransfers)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, series)
}

// GetCategoryBreakdown returns expense magnitudes per category
// @Summary Category breakdown
// @Tags Dashboard
// @Produce json
// @Param startDate query string false "Window start (YYYY-MM-DD)"
// @Param endDate query string false "Window end (YYYY-MM-DD)"
// @Param excludeTransfers query bool false "Drop transfer rows from the view"
// @Success 200 {array} models.CategorySpend
// @Failure 400 {object} errors.ErrorResponse "RANGE_001 - Start date after end date"
// @Router /api/v1/dashboard/categories [get]
func (h *DashboardHandler) GetCategoryBreakdown(c echo.Context) error {
	query, err := h.parseQuery(c)
	if err != nil {
		return err
	}

	dateRange, ok, err := h.resolveRange(c, query)
	if !ok {
		return err
	}

	breakdown, err := h.dashboardService.GetCategoryBreakdown(dateRange, query.ExcludeTransfers)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, breakdown)
}

// GetComparison returns the current window measured against the immediately
// preceding window of equal length
// @Summary Period comparison
// @Tags Dashboard
// @Produce json
// @Param startDate query string false "Window start (YYYY-MM-DD)"
// @Param endDate query string false "Window end (YYYY-MM-DD)"
// @Param excludeTransfers query bool false "Drop transfer rows from the view"
// @Param topN query int false "Top movers per direction" default(5)
// @Success 200 {object} models.PeriodComparison
// @Failure 400 {object} errors.ErrorResponse "RANGE_001 - Start date after end date"
// @Router /api/v1/dashboard/comparison [get]
func (h *DashboardHandler) GetComparison(c echo.Context) error {
	query, err := h.parseQuery(c)
	if err != nil {
		return err
	}

	dateRange, ok, err := h.resolveRange(c, query)
	if !ok {
		return err
	}

	comparison, err := h.dashboardService.GetComparison(dateRange, query.ExcludeTransfers, query.TopN)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, comparison)
}

// GetRecurringCommitments returns detected weekly and monthly commitments
// @Summary Recurring commitments
// @Tags Dashboard
// @Produce json
// @Param startDate query string false "Window start (YYYY-MM-DD)"
// @Param endDate query string false "Window end (YYYY-MM-DD)"
// @Param excludeTransfers query bool false "Drop transfer rows from the view"
// @Success 200 {array} models.RecurringCommitment
// @Failure 400 {object} errors.ErrorResponse "RANGE_001 - Start date after end date"
// @Router /api/v1/dashboard/recurring [get]
func (h *DashboardHandler) GetRecurringCommitments(c echo.Context) error {
	query, err := h.parseQuery(c)
	if err != nil {
		return err
	}

	dateRange, ok, err := h.resolveRange(c, query)
	if !ok {
		return err
	}

	commitments, err := h.dashboardService.GetRecurringCommitments(dateRange, query.ExcludeTransfers)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, commitments)
}
