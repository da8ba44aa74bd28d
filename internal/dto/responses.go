package dto

import (
	"spendlens/internal/models"
)

// TransactionView is the wire representation of a stored transaction.
// Amounts are decimal strings to keep precision out of float territory.
type TransactionView struct {
	ID                string `json:"id"`
	Date              string `json:"date"`
	Amount            string `json:"amount"`
	Description       string `json:"description"`
	Category          string `json:"category"`
	IsTransfer        bool   `json:"is_transfer"`
	CumulativeBalance string `json:"cumulative_balance"`
}

// RecentTransactionsResponse lists the newest stored transactions
type RecentTransactionsResponse struct {
	Transactions []TransactionView `json:"transactions"`
	Count        int               `json:"count"`
}

// DateBoundsResponse reports the span of stored history. Both dates are nil
// and HasData false for an empty store.
type DateBoundsResponse struct {
	MinDate *string `json:"min_date"`
	MaxDate *string `json:"max_date"`
	HasData bool    `json:"has_data"`
}

// NewTransactionView converts a stored transaction to its wire form. The
// empty category is presented as the reserved bucket.
func NewTransactionView(tx models.Transaction) TransactionView {
	return TransactionView{
		ID:                tx.ID,
		Date:              tx.Date.Format("2006-01-02"),
		Amount:            tx.Amount.String(),
		Description:       tx.Description,
		Category:          tx.DisplayCategory(),
		IsTransfer:        tx.IsTransfer,
		CumulativeBalance: tx.CumulativeBalance.String(),
	}
}

// NewTransactionViews converts a slice of stored transactions
func NewTransactionViews(transactions []models.Transaction) []TransactionView {
	views := make([]TransactionView, 0, len(transactions))
	for _, tx := range transactions {
		views = append(views, NewTransactionView(tx))
	}
	return views
}

// NewDateBoundsResponse converts store bounds to their wire form
func NewDateBoundsResponse(bounds models.DateBounds) DateBoundsResponse {
	response := DateBoundsResponse{HasData: bounds.Min != nil && bounds.Max != nil}
	if bounds.Min != nil {
		minDate := bounds.Min.UTC().Format("2006-01-02")
		response.MinDate = &minDate
	}
	if bounds.Max != nil {
		maxDate := bounds.Max.UTC().Format("2006-01-02")
		response.MaxDate = &maxDate
	}
	return response
}
