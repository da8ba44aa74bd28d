package main

import (
	"fmt"
	"log/slog"
	"os"

	"spendlens/internal/config"
	"spendlens/internal/database"
	"spendlens/internal/repositories"
	"spendlens/internal/services"

	"github.com/joho/godotenv"
)

// Batch entrypoint: ingest every CSV waiting in the import inbox, then move
// each file to archive/ or rejected/ and print a per-file summary.
func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := config.Load()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	db, err := database.Initialize(cfg)
	if err != nil {
		slog.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}

	transactionRepo := repositories.NewTransactionRepository(db)
	importService := services.NewImportService(
		transactionRepo,
		services.NewCategorizerService(),
		services.NewPrometheusMetrics(),
	)

	reports, err := importService.ImportDirectory(
		cfg.Import.InboxDir,
		cfg.Import.ArchiveDir,
		cfg.Import.RejectedDir,
	)
	if err != nil {
		slog.Error("import run failed", "error", err)
		os.Exit(1)
	}

	if len(reports) == 0 {
		fmt.Printf("no CSV files found in %s\n", cfg.Import.InboxDir)
		return
	}

	for _, report := range reports {
		fmt.Printf("%s: %d rows, %d inserted, %d duplicates, %d rejected\n",
			report.Source, report.TotalRows, report.Inserted, report.Duplicates, len(report.Rejected))
		for _, rowErr := range report.Rejected {
			fmt.Printf("  line %d [%s]: %s\n", rowErr.Line, rowErr.Field, rowErr.Message)
		}
	}
}
