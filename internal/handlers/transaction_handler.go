package handlers

import (
	"net/http"

	"spendlens/internal/dto"
	"spendlens/internal/errors"
	"spendlens/internal/services"

	"github.com/labstack/echo/v4"
)

const (
	defaultRecentLimit = 50
	maxRecentLimit     = 500
)

// TransactionHandler serves raw transaction views: the recent listing used
// by the debug table and the stored date bounds used to initialize the
// client's date pickers
type TransactionHandler struct {
	dashboardService services.DashboardServiceInterface
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(dashboardService services.DashboardServiceInterface) *TransactionHandler {
	return &TransactionHandler{dashboardService: dashboardService}
}

// ListRecent returns the newest stored transactions
// @Summary Recent transactions
// @Description Latest stored rows, newest first, with derived categories and transfer flags
// @Tags Transactions
// @Produce json
// @Param limit query int false "Number of rows (max 500)" default(50)
// @Success 200 {object} dto.RecentTransactionsResponse
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_003 - Limit out of range"
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /api/v1/transactions [get]
func (h *TransactionHandler) ListRecent(c echo.Context) error {
	query := dto.RecentTransactionsQuery{Limit: getIntParam(c, "limit", defaultRecentLimit)}
	if err := c.Validate(&query); err != nil {
		return SendError(c, errors.ValidationOutOfRange,
			errors.WithDetails("limit must be at least 1"))
	}
	if query.Limit > maxRecentLimit {
		query.Limit = maxRecentLimit
	}

	transactions, err := h.dashboardService.GetRecentTransactions(query.Limit)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.RecentTransactionsResponse{
		Transactions: dto.NewTransactionViews(transactions),
		Count:        len(transactions),
	})
}

// GetDateBounds returns the min and max stored transaction dates
// @Summary Stored date bounds
// @Description Span of stored history; both bounds are null for an empty store
// @Tags Transactions
// @Produce json
// @Success 200 {object} dto.DateBoundsResponse
// @Failure 500 {object} errors.ErrorResponse "SYSTEM_001 - Internal server error"
// @Router /api/v1/transactions/bounds [get]
func (h *TransactionHandler) GetDateBounds(c echo.Context) error {
	bounds, err := h.dashboardService.GetDateBounds()
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.NewDateBoundsResponse(bounds))
}
