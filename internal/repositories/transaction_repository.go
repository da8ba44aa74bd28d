package repositories

import (
	"fmt"
	"time"

	"spendlens/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// transactionRepository implements TransactionRepositoryInterface
type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) TransactionRepositoryInterface {
	return &transactionRepository{
		db: db,
	}
}

// Create inserts a single transaction, skipping it when the fingerprint
// already exists
func (r *transactionRepository) Create(transaction *models.Transaction) error {
	if err := r.db.Clauses(clause.OnConflict{DoNothing: true}).
		Create(transaction).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// CreateBatch inserts transactions one by one inside a single database
// transaction, counting inserts and fingerprint duplicates separately.
// Duplicates are skipped, never updated.
func (r *transactionRepository) CreateBatch(transactions []models.Transaction) (int, int, error) {
	if len(transactions) == 0 {
		return 0, 0, nil
	}

	var inserted, duplicates int
	err := r.db.Transaction(func(tx *gorm.DB) error {
		for i := range transactions {
			result := tx.Clauses(clause.OnConflict{DoNothing: true}).
				Create(&transactions[i])
			if result.Error != nil {
				return fmt.Errorf("failed to create batch transactions: %w", result.Error)
			}
			if result.RowsAffected == 0 {
				duplicates++
			} else {
				inserted++
			}
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	return inserted, duplicates, nil
}

// GetAll retrieves every transaction ordered chronologically
func (r *transactionRepository) GetAll() ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := r.db.Order("date ASC, id ASC").
		Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}
	return transactions, nil
}

// GetRecent retrieves the latest transactions, newest first
func (r *transactionRepository) GetRecent(limit int) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := r.db.Order("date DESC, id DESC").
		Limit(limit).
		Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to get recent transactions: %w", err)
	}
	return transactions, nil
}

// GetDateBounds retrieves the earliest and latest transaction dates.
// Both bounds are nil when the store is empty.
func (r *transactionRepository) GetDateBounds() (models.DateBounds, error) {
	var result struct {
		MinDate *time.Time
		MaxDate *time.Time
	}

	query := `
		SELECT
			MIN(date) as min_date,
			MAX(date) as max_date
		FROM transactions
	`

	if err := r.db.Raw(query).Scan(&result).Error; err != nil {
		return models.DateBounds{}, fmt.Errorf("failed to get date bounds: %w", err)
	}

	return models.DateBounds{
		Min: result.MinDate,
		Max: result.MaxDate,
	}, nil
}

// Count returns the total number of stored transactions
func (r *transactionRepository) Count() (int64, error) {
	var total int64
	if err := r.db.Model(&models.Transaction{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return total, nil
}
