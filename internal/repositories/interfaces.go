package repositories

import (
	"spendlens/internal/models"
)

// TransactionRepositoryInterface defines persistence operations for transactions
type TransactionRepositoryInterface interface {
	Create(transaction *models.Transaction) error
	CreateBatch(transactions []models.Transaction) (inserted int, duplicates int, err error)
	GetAll() ([]models.Transaction, error)
	GetRecent(limit int) ([]models.Transaction, error)
	GetDateBounds() (models.DateBounds, error)
	Count() (int64, error)
}
