package models

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrMissingDate        = errors.New("transaction date is required")
	ErrMissingDescription = errors.New("transaction description is required")
)

// Transaction is a single row from a bank export. Records are immutable once
// loaded: the fingerprint ID doubles as the dedupe key, so re-importing the
// same file inserts nothing new.
type Transaction struct {
	ID                string          `gorm:"type:varchar(64);primary_key" json:"id"`
	Date              time.Time       `gorm:"not null;index" json:"date"`
	Amount            decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Description       string          `gorm:"type:text;not null" json:"description"`
	Category          string          `gorm:"type:varchar(50);index" json:"category,omitempty"`
	IsTransfer        bool            `gorm:"not null;default:false;index" json:"is_transfer"`
	CumulativeBalance decimal.Decimal `gorm:"type:decimal(15,2)" json:"cumulative_balance"`
	CreatedAt         time.Time       `gorm:"not null" json:"created_at"`
}

// TableName returns the table name for Transaction
func (t *Transaction) TableName() string {
	return "transactions"
}

// BeforeCreate hook for Transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = t.Fingerprint()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	return t.Validate()
}

var whitespacePattern = regexp.MustCompile(`\s+`)

// Fingerprint derives the content-addressed record ID from the fields that
// identify a row in the source export: date, amount, normalized description
// and running balance. Two identical rows in different files hash the same,
// which is what makes re-imports idempotent.
func (t *Transaction) Fingerprint() string {
	desc := whitespacePattern.ReplaceAllString(strings.TrimSpace(t.Description), " ")
	raw := fmt.Sprintf("%s|%s|%s|%s",
		t.Date.Format("2006-01-02"),
		t.Amount.StringFixed(2),
		desc,
		t.CumulativeBalance.StringFixed(2),
	)
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// Validate validates the transaction fields
func (t *Transaction) Validate() error {
	if t.Date.IsZero() {
		return ErrMissingDate
	}
	if strings.TrimSpace(t.Description) == "" {
		return ErrMissingDescription
	}
	return nil
}

// IsIncome returns true for positive amounts
func (t *Transaction) IsIncome() bool {
	return t.Amount.IsPositive()
}

// IsExpense returns true for negative amounts
func (t *Transaction) IsExpense() bool {
	return t.Amount.IsNegative()
}

// MonthKey returns the (year, month) bucket key in YYYY-MM form
func (t *Transaction) MonthKey() string {
	return t.Date.Format("2006-01")
}

// DisplayCategory maps an empty category onto the reserved bucket
func (t *Transaction) DisplayCategory() string {
	if t.Category == "" {
		return CategoryUncategorized
	}
	return t.Category
}
