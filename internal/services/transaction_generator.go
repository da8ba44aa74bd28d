package services

import (
	"fmt"
	"sort"
	"time"

	"spendlens/internal/models"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
)

const (
	salaryIntervalDays = 14
	billDayOfMonth     = 15
)

// merchantProfile describes one synthetic merchant and the amount band its
// purchases fall into
type merchantProfile struct {
	descriptionFormat string
	minAmount         float64
	maxAmount         float64
}

var purchaseMerchants = []merchantProfile{
	{"WOOLWORTHS %04d SYDNEY", 15, 180},
	{"COLES %04d NEWTOWN", 15, 160},
	{"ALDI STORES %04d MARRICKVILLE", 10, 120},
	{"MCDONALDS %04d SYDNEY", 8, 40},
	{"UBER EATS SYDNEY %04d", 20, 75},
	{"KFC %04d BROADWAY", 10, 45},
	{"OPAL TRAVEL %04d SYDNEY", 4, 60},
	{"UBER *TRIP %04d", 10, 55},
	{"CHEMIST WAREHOUSE %04d", 8, 90},
	{"KMART %04d BROADWAY", 12, 150},
	{"JB HI FI %04d SYDNEY", 30, 400},
	{"EBAY O*%08d", 10, 200},
	{"ATM WITHDRAWAL %04d SYDNEY", 20, 200},
}

var billMerchants = []merchantProfile{
	{"DIRECT DEBIT TELSTRA %06d", 60, 120},
	{"BPAY ORIGIN ENERGY %06d", 90, 260},
	{"DIRECT DEBIT NETFLIX.COM %04d", 17, 26},
	{"DIRECT DEBIT SPOTIFY %04d", 12, 14},
	{"DIRECT DEBIT NRMA INSURANCE %06d", 40, 130},
	{"DIRECT DEBIT ANYTIME FITNESS %04d", 15, 18},
}

var transferReasons = []string{"Rent", "Savings", "Groceries money", "Holiday fund"}

// transactionGenerator produces realistic bank-export history for seeding
// development databases. Amounts are signed the way the export is: income
// positive, spending negative, with a running balance per row.
type transactionGenerator struct {
	categorizer CategorizerServiceInterface
	faker       *gofakeit.Faker
}

// NewTransactionGenerator creates a generator with a time-seeded source
func NewTransactionGenerator(categorizer CategorizerServiceInterface) TransactionGeneratorInterface {
	return &transactionGenerator{
		categorizer: categorizer,
		faker:       gofakeit.New(uint64(time.Now().UnixNano())),
	}
}

// NewSeededTransactionGenerator creates a generator with a fixed seed for
// reproducible fixtures
func NewSeededTransactionGenerator(categorizer CategorizerServiceInterface, seed uint64) TransactionGeneratorInterface {
	return &transactionGenerator{
		categorizer: categorizer,
		faker:       gofakeit.New(seed),
	}
}

// GenerateHistory combines salary deposits, bill payments, daily purchases
// and transfers into one chronological export with a consistent running
// balance
func (g *transactionGenerator) GenerateHistory(startDate, endDate time.Time, openingBalance decimal.Decimal) []models.Transaction {
	transactions := g.GenerateSalaryDeposits(startDate, endDate)
	transactions = append(transactions, g.GenerateBillPayments(startDate, endDate)...)
	transactions = append(transactions, g.GenerateDailyPurchases(startDate, endDate)...)
	transactions = append(transactions, g.GenerateTransfers(startDate, endDate)...)

	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].Date.Before(transactions[j].Date)
	})

	balance := openingBalance
	for i := range transactions {
		balance = balance.Add(transactions[i].Amount)
		transactions[i].CumulativeBalance = balance
		g.categorizer.Apply(&transactions[i])
	}

	return transactions
}

// GenerateSalaryDeposits emits a fortnightly payroll credit
func (g *transactionGenerator) GenerateSalaryDeposits(startDate, endDate time.Time) []models.Transaction {
	employer := g.faker.Company()
	salary := decimal.NewFromFloat(g.faker.Float64Range(2200, 4200)).Round(2)

	transactions := make([]models.Transaction, 0)
	for date := startDate; !date.After(endDate); date = date.AddDate(0, 0, salaryIntervalDays) {
		transactions = append(transactions, models.Transaction{
			Date:        truncateToDay(date),
			Amount:      salary,
			Description: fmt.Sprintf("SALARY %s PAYROLL", employer),
		})
	}
	return transactions
}

// GenerateBillPayments emits each bill merchant once per month
func (g *transactionGenerator) GenerateBillPayments(startDate, endDate time.Time) []models.Transaction {
	transactions := make([]models.Transaction, 0)
	month := time.Date(startDate.Year(), startDate.Month(), billDayOfMonth, 0, 0, 0, 0, time.UTC)

	for ; !month.After(endDate); month = month.AddDate(0, 1, 0) {
		if month.Before(startDate) {
			continue
		}
		for _, merchant := range billMerchants {
			amount := decimal.NewFromFloat(g.faker.Float64Range(merchant.minAmount, merchant.maxAmount)).Round(2)
			transactions = append(transactions, models.Transaction{
				Date:        month,
				Amount:      amount.Neg(),
				Description: fmt.Sprintf(merchant.descriptionFormat, g.faker.Number(0, 999999)),
			})
		}
	}
	return transactions
}

// GenerateDailyPurchases emits between zero and three card purchases per day
func (g *transactionGenerator) GenerateDailyPurchases(startDate, endDate time.Time) []models.Transaction {
	transactions := make([]models.Transaction, 0)
	for date := startDate; !date.After(endDate); date = date.AddDate(0, 0, 1) {
		purchases := g.faker.Number(0, 3)
		for i := 0; i < purchases; i++ {
			merchant := purchaseMerchants[g.faker.Number(0, len(purchaseMerchants)-1)]
			amount := decimal.NewFromFloat(g.faker.Float64Range(merchant.minAmount, merchant.maxAmount)).Round(2)
			transactions = append(transactions, models.Transaction{
				Date:        truncateToDay(date),
				Amount:      amount.Neg(),
				Description: fmt.Sprintf(merchant.descriptionFormat, g.faker.Number(0, 9999)),
			})
		}
	}
	return transactions
}

// GenerateTransfers emits a weekly savings transfer with a purpose tail
func (g *transactionGenerator) GenerateTransfers(startDate, endDate time.Time) []models.Transaction {
	reason := transferReasons[g.faker.Number(0, len(transferReasons)-1)]
	account := g.faker.Number(1000, 9999)
	amount := decimal.NewFromFloat(g.faker.Float64Range(100, 600)).Round(2)

	transactions := make([]models.Transaction, 0)
	for date := startDate.AddDate(0, 0, 3); !date.After(endDate); date = date.AddDate(0, 0, 7) {
		transactions = append(transactions, models.Transaction{
			Date:        truncateToDay(date),
			Amount:      amount.Neg(),
			Description: fmt.Sprintf("Transfer to xx%d CommBank app %s", account, reason),
		})
	}
	return transactions
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
