package models

// Spending categories assigned at the ingestion boundary. The set is
// open-ended in the data model; these are the labels the rule engine emits.
const (
	CategoryIncome        = "Income"
	CategoryGroceries     = "Groceries"
	CategoryDining        = "Dining"
	CategoryTransport     = "Transport"
	CategoryUtilities     = "Utilities"
	CategorySubscriptions = "Subscriptions"
	CategoryHealth        = "Health"
	CategoryShopping      = "Shopping"
	CategoryCash          = "Cash"
	CategoryInsurance     = "Insurance"
	CategoryEducation     = "Education"
	CategoryTransfer      = "Transfer"

	// CategoryUncategorized is the reserved bucket for records no rule
	// matched. It never appears on a stored record; the empty string does.
	CategoryUncategorized = "Uncategorized"
)

// AllCategories returns every label the rule engine can assign
func AllCategories() []string {
	return []string{
		CategoryIncome,
		CategoryGroceries,
		CategoryDining,
		CategoryTransport,
		CategoryUtilities,
		CategorySubscriptions,
		CategoryHealth,
		CategoryShopping,
		CategoryCash,
		CategoryInsurance,
		CategoryEducation,
		CategoryTransfer,
	}
}

// IsValidCategory checks if a category string is one of the known labels
func IsValidCategory(category string) bool {
	if category == CategoryUncategorized {
		return true
	}
	for _, valid := range AllCategories() {
		if category == valid {
			return true
		}
	}
	return false
}
