package dto

// DashboardQuery carries the shared query parameters accepted by every
// dashboard endpoint. Dates are YYYY-MM-DD strings; the handler converts
// them after validation so the services only ever see time values.
type DashboardQuery struct {
	StartDate        string `query:"startDate" json:"startDate" validate:"omitempty,iso_date"`
	EndDate          string `query:"endDate" json:"endDate" validate:"omitempty,iso_date"`
	ExcludeTransfers bool   `query:"excludeTransfers" json:"excludeTransfers"`
	TopN             int    `query:"topN" json:"topN" validate:"omitempty,min=1,max=50"`
}

// RecentTransactionsQuery carries the parameters for the recent-transactions
// debug listing
type RecentTransactionsQuery struct {
	Limit int `query:"limit" json:"limit" validate:"omitempty,min=1"`
}
