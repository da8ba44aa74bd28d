package services

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type TransactionGeneratorTestSuite struct {
	suite.Suite
	generator TransactionGeneratorInterface
	start     time.Time
	end       time.Time
}

func TestTransactionGeneratorSuite(t *testing.T) {
	suite.Run(t, new(TransactionGeneratorTestSuite))
}

func (s *TransactionGeneratorTestSuite) SetupTest() {
	s.generator = NewSeededTransactionGenerator(NewCategorizerService(), 42)
	s.start = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s.end = time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)
}

func (s *TransactionGeneratorTestSuite) TestGenerateHistory_ChronologicalWithRunningBalance() {
	opening := decimal.NewFromInt(5000)

	history := s.generator.GenerateHistory(s.start, s.end, opening)

	s.Require().NotEmpty(history)

	balance := opening
	for i, tx := range history {
		if i > 0 {
			s.False(tx.Date.Before(history[i-1].Date), "history must be date-ordered")
		}
		balance = balance.Add(tx.Amount)
		s.True(tx.CumulativeBalance.Equal(balance), "running balance must accumulate each amount")
	}
}

func (s *TransactionGeneratorTestSuite) TestGenerateHistory_CategorizesEveryRow() {
	history := s.generator.GenerateHistory(s.start, s.end, decimal.NewFromInt(5000))

	for _, tx := range history {
		if tx.IsTransfer {
			s.NotEmpty(tx.Category)
		}
		s.NotEmpty(tx.Description)
		s.False(tx.Date.Before(s.start))
		s.False(tx.Date.After(s.end))
	}
}

func (s *TransactionGeneratorTestSuite) TestGenerateHistory_Reproducible() {
	first := NewSeededTransactionGenerator(NewCategorizerService(), 7).
		GenerateHistory(s.start, s.end, decimal.NewFromInt(1000))
	second := NewSeededTransactionGenerator(NewCategorizerService(), 7).
		GenerateHistory(s.start, s.end, decimal.NewFromInt(1000))

	s.Require().Equal(len(first), len(second))
	for i := range first {
		s.Equal(first[i].Description, second[i].Description)
		s.True(first[i].Amount.Equal(second[i].Amount))
		s.Equal(first[i].Date, second[i].Date)
	}
}

func (s *TransactionGeneratorTestSuite) TestGenerateSalaryDeposits() {
	deposits := s.generator.GenerateSalaryDeposits(s.start, s.end)

	// 90-day window pays fortnightly from the start date
	s.Len(deposits, 7)
	for i, tx := range deposits {
		s.True(tx.Amount.IsPositive())
		s.Contains(tx.Description, "SALARY")
		s.Equal(s.start.AddDate(0, 0, i*14), tx.Date)
	}
}

func (s *TransactionGeneratorTestSuite) TestGenerateBillPayments() {
	bills := s.generator.GenerateBillPayments(s.start, s.end)

	// every bill merchant, once per month
	s.Len(bills, 3*len(billMerchants))
	for _, tx := range bills {
		s.True(tx.Amount.IsNegative())
		s.Equal(15, tx.Date.Day())
	}
}

func (s *TransactionGeneratorTestSuite) TestGenerateBillPayments_SkipsBillDayBeforeStart() {
	start := time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC)

	bills := s.generator.GenerateBillPayments(start, end)

	s.Len(bills, len(billMerchants))
	for _, tx := range bills {
		s.Equal(time.February, tx.Date.Month())
	}
}

func (s *TransactionGeneratorTestSuite) TestGenerateDailyPurchases() {
	purchases := s.generator.GenerateDailyPurchases(s.start, s.end)

	days := s.end.Sub(s.start).Hours()/24 + 1
	s.LessOrEqual(len(purchases), int(days)*3)
	for _, tx := range purchases {
		s.True(tx.Amount.IsNegative())
	}
}

func (s *TransactionGeneratorTestSuite) TestGenerateTransfers() {
	transfers := s.generator.GenerateTransfers(s.start, s.end)

	s.Require().NotEmpty(transfers)
	categorizer := NewCategorizerService()
	for i, tx := range transfers {
		s.True(tx.Amount.IsNegative())
		s.True(categorizer.IsTransfer(tx.Description))
		if i > 0 {
			s.Equal(transfers[i-1].Date.AddDate(0, 0, 7), tx.Date)
		}
	}
}
