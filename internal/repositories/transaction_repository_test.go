package repositories

import (
	"testing"
	"time"

	"spendlens/internal/database"
	"spendlens/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// TransactionRepositorySuite defines the test suite for TransactionRepository
type TransactionRepositorySuite struct {
	suite.Suite
	db   *database.DB
	repo TransactionRepositoryInterface
}

// SetupTest runs before each test in the suite
func (s *TransactionRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewTransactionRepository(s.db.DB)
}

// TearDownTest runs after each test in the suite
func (s *TransactionRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

// TestTransactionRepositorySuite runs the test suite
func TestTransactionRepositorySuite(t *testing.T) {
	suite.Run(t, new(TransactionRepositorySuite))
}

func (s *TransactionRepositorySuite) newTransaction(date time.Time, amount, description string) models.Transaction {
	return models.Transaction{
		Date:              date,
		Amount:            decimal.RequireFromString(amount),
		Description:       description,
		CumulativeBalance: decimal.NewFromInt(1000),
	}
}

// Test Create functionality
func (s *TransactionRepositorySuite) TestCreate() {
	tx := s.newTransaction(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), "-42.50", "WOOLWORTHS 1234 SYDNEY")

	err := s.repo.Create(&tx)
	s.NoError(err)
	s.NotEmpty(tx.ID)
	s.Len(tx.ID, 64)
	s.NotZero(tx.CreatedAt)
}

func (s *TransactionRepositorySuite) TestCreate_DuplicateFingerprintSkipped() {
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	tx1 := s.newTransaction(date, "-42.50", "WOOLWORTHS 1234 SYDNEY")
	s.NoError(s.repo.Create(&tx1))

	tx2 := s.newTransaction(date, "-42.50", "WOOLWORTHS 1234 SYDNEY")
	s.NoError(s.repo.Create(&tx2))

	count, err := s.repo.Count()
	s.NoError(err)
	s.Equal(int64(1), count)
}

// Test CreateBatch counts inserts and duplicates separately
func (s *TransactionRepositorySuite) TestCreateBatch() {
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	seed := s.newTransaction(date, "-42.50", "WOOLWORTHS 1234 SYDNEY")
	s.NoError(s.repo.Create(&seed))

	batch := []models.Transaction{
		s.newTransaction(date, "-42.50", "WOOLWORTHS 1234 SYDNEY"),
		s.newTransaction(date, "-15.00", "UBER *TRIP"),
		s.newTransaction(date.AddDate(0, 0, 1), "2500.00", "SALARY ACME PTY LTD"),
	}

	inserted, duplicates, err := s.repo.CreateBatch(batch)
	s.NoError(err)
	s.Equal(2, inserted)
	s.Equal(1, duplicates)

	count, err := s.repo.Count()
	s.NoError(err)
	s.Equal(int64(3), count)
}

func (s *TransactionRepositorySuite) TestCreateBatch_Empty() {
	inserted, duplicates, err := s.repo.CreateBatch(nil)
	s.NoError(err)
	s.Zero(inserted)
	s.Zero(duplicates)
}

// Test GetAll returns chronological order
func (s *TransactionRepositorySuite) TestGetAll_ChronologicalOrder() {
	later := s.newTransaction(time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC), "-10.00", "UBER *TRIP")
	earlier := s.newTransaction(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), "2500.00", "SALARY ACME PTY LTD")

	s.NoError(s.repo.Create(&later))
	s.NoError(s.repo.Create(&earlier))

	all, err := s.repo.GetAll()
	s.NoError(err)
	s.Len(all, 2)
	s.Equal(earlier.ID, all[0].ID)
	s.Equal(later.ID, all[1].ID)
}

// Test GetRecent returns newest first with limit
func (s *TransactionRepositorySuite) TestGetRecent() {
	base := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		tx := s.newTransaction(base.AddDate(0, 0, i), "-10.00", "COLES 0553")
		s.NoError(s.repo.Create(&tx))
	}

	recent, err := s.repo.GetRecent(3)
	s.NoError(err)
	s.Len(recent, 3)
	s.Equal(base.AddDate(0, 0, 4), recent[0].Date)
	s.Equal(base.AddDate(0, 0, 2), recent[2].Date)
}

// Test GetDateBounds
func (s *TransactionRepositorySuite) TestGetDateBounds() {
	bounds, err := s.repo.GetDateBounds()
	s.NoError(err)
	s.Nil(bounds.Min)
	s.Nil(bounds.Max)

	first := s.newTransaction(time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), "-10.00", "COLES 0553")
	last := s.newTransaction(time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC), "-20.00", "NETFLIX.COM")
	s.NoError(s.repo.Create(&first))
	s.NoError(s.repo.Create(&last))

	bounds, err = s.repo.GetDateBounds()
	s.NoError(err)
	s.NotNil(bounds.Min)
	s.NotNil(bounds.Max)
	s.Equal(first.Date, bounds.Min.UTC())
	s.Equal(last.Date, bounds.Max.UTC())
}

// Test Count
func (s *TransactionRepositorySuite) TestCount() {
	count, err := s.repo.Count()
	s.NoError(err)
	s.Zero(count)

	tx := s.newTransaction(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), "-42.50", "WOOLWORTHS 1234 SYDNEY")
	s.NoError(s.repo.Create(&tx))

	count, err = s.repo.Count()
	s.NoError(err)
	s.Equal(int64(1), count)
}
