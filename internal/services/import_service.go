package services

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"spendlens/internal/models"
	"spendlens/internal/repositories"

	"github.com/shopspring/decimal"
)

const (
	importDateLayout = "02/01/2006"
	importFieldCount = 4
)

var (
	ErrEmptyFile      = errors.New("file contains no data rows")
	ErrUnreadableFile = errors.New("file could not be read")
)

// importService ingests headerless bank-export CSVs: date, amount,
// description, cumulative balance per row
type importService struct {
	transactionRepo repositories.TransactionRepositoryInterface
	categorizer     CategorizerServiceInterface
	metrics         MetricsRecorderInterface
}

// NewImportService creates the CSV import service
func NewImportService(
	transactionRepo repositories.TransactionRepositoryInterface,
	categorizer CategorizerServiceInterface,
	metrics MetricsRecorderInterface,
) ImportServiceInterface {
	return &importService{
		transactionRepo: transactionRepo,
		categorizer:     categorizer,
		metrics:         metrics,
	}
}

// ImportCSV parses one export and stores its rows. Malformed rows are
// skipped and collected into the report; a file whose every row is rejected
// still yields a report, not an error.
func (s *importService) ImportCSV(source string, reader io.Reader) (*models.ImportReport, error) {
	start := time.Now()

	report := &models.ImportReport{
		Source:   source,
		Rejected: []models.RowError{},
	}

	csvReader := csv.NewReader(reader)
	csvReader.FieldsPerRecord = -1
	csvReader.TrimLeadingSpace = true

	transactions := make([]models.Transaction, 0)
	line := 0
	for {
		record, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				report.TotalRows++
				report.Rejected = append(report.Rejected, models.RowError{
					Line:    line,
					Field:   "row",
					Message: parseErr.Err.Error(),
				})
				continue
			}
			return nil, fmt.Errorf("%w: %v", ErrUnreadableFile, err)
		}

		report.TotalRows++
		tx, rowErr := s.parseRow(line, record)
		if rowErr != nil {
			report.Rejected = append(report.Rejected, *rowErr)
			continue
		}
		transactions = append(transactions, *tx)
	}

	if report.TotalRows == 0 {
		return nil, ErrEmptyFile
	}

	inserted, duplicates, err := s.transactionRepo.CreateBatch(transactions)
	if err != nil {
		slog.Error("failed to store imported transactions",
			"source", source,
			"error", err)
		return nil, fmt.Errorf("failed to store imported transactions: %w", err)
	}
	report.Inserted = inserted
	report.Duplicates = duplicates

	s.metrics.IncrementCounter("import.file.processed", map[string]string{"status": "ok"})
	s.metrics.RecordGauge("import.rows", float64(report.Inserted), map[string]string{"outcome": "inserted"})
	s.metrics.RecordGauge("import.rows", float64(report.Duplicates), map[string]string{"outcome": "duplicate"})
	s.metrics.RecordGauge("import.rows", float64(len(report.Rejected)), map[string]string{"outcome": "rejected"})
	s.metrics.RecordProcessingTime("import.file", time.Since(start))

	slog.Info("csv import completed",
		"source", source,
		"total_rows", report.TotalRows,
		"inserted", report.Inserted,
		"duplicates", report.Duplicates,
		"rejected", len(report.Rejected))

	return report, nil
}

// parseRow validates one source row: date dd/mm/yyyy, signed amount,
// description, running balance
func (s *importService) parseRow(line int, record []string) (*models.Transaction, *models.RowError) {
	if len(record) != importFieldCount {
		return nil, &models.RowError{
			Line:    line,
			Field:   "row",
			Message: fmt.Sprintf("expected %d fields, got %d", importFieldCount, len(record)),
		}
	}

	// Exports saved on Windows open with a BOM on the first cell
	rawDate := strings.TrimPrefix(strings.TrimSpace(record[0]), "\ufeff")
	date, err := time.Parse(importDateLayout, rawDate)
	if err != nil {
		return nil, &models.RowError{
			Line:    line,
			Field:   "date",
			Message: fmt.Sprintf("invalid date %q, expected dd/mm/yyyy", rawDate),
		}
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(record[1]))
	if err != nil {
		return nil, &models.RowError{
			Line:    line,
			Field:   "amount",
			Message: fmt.Sprintf("invalid amount %q", record[1]),
		}
	}

	description := strings.TrimSpace(record[2])
	if description == "" {
		return nil, &models.RowError{
			Line:    line,
			Field:   "description",
			Message: "description is required",
		}
	}

	balance, err := decimal.NewFromString(strings.TrimSpace(record[3]))
	if err != nil {
		return nil, &models.RowError{
			Line:    line,
			Field:   "cumulative_balance",
			Message: fmt.Sprintf("invalid balance %q", record[3]),
		}
	}

	tx := &models.Transaction{
		Date:              time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC),
		Amount:            amount,
		Description:       description,
		CumulativeBalance: balance,
	}
	s.categorizer.Apply(tx)
	return tx, nil
}

// ImportDirectory ingests every CSV in the inbox, moving each file to the
// archive directory on success or the rejected directory when it could not
// be parsed at all
func (s *importService) ImportDirectory(inboxDir, archiveDir, rejectedDir string) ([]models.ImportReport, error) {
	entries, err := filepath.Glob(filepath.Join(inboxDir, "*.csv"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan inbox directory: %w", err)
	}
	sort.Strings(entries)

	if err := os.MkdirAll(archiveDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}
	if err := os.MkdirAll(rejectedDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create rejected directory: %w", err)
	}

	reports := make([]models.ImportReport, 0, len(entries))
	for _, path := range entries {
		name := filepath.Base(path)

		file, err := os.Open(path)
		if err != nil {
			slog.Error("failed to open import file", "file", name, "error", err)
			continue
		}

		report, importErr := s.ImportCSV(name, file)
		file.Close()

		if importErr != nil {
			slog.Warn("import file rejected",
				"file", name,
				"error", importErr)
			s.metrics.IncrementCounter("import.file.processed", map[string]string{"status": "rejected"})
			if err := os.Rename(path, filepath.Join(rejectedDir, name)); err != nil {
				slog.Error("failed to move rejected file", "file", name, "error", err)
			}
			continue
		}

		reports = append(reports, *report)
		if err := os.Rename(path, filepath.Join(archiveDir, name)); err != nil {
			slog.Error("failed to archive imported file", "file", name, "error", err)
		}
	}

	return reports, nil
}
