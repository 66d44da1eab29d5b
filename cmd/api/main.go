package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/MrJamesThe3rd/tally/internal/analytics"
	"github.com/MrJamesThe3rd/tally/internal/config"
	"github.com/MrJamesThe3rd/tally/internal/database"
	"github.com/MrJamesThe3rd/tally/internal/export"
	tallyHttp "github.com/MrJamesThe3rd/tally/internal/http"
	analyticsHandler "github.com/MrJamesThe3rd/tally/internal/http/analytics"
	categoriesHandler "github.com/MrJamesThe3rd/tally/internal/http/categories"
	exportHandler "github.com/MrJamesThe3rd/tally/internal/http/export"
	importHandler "github.com/MrJamesThe3rd/tally/internal/http/importcsv"
	reportHandler "github.com/MrJamesThe3rd/tally/internal/http/report"
	txHandler "github.com/MrJamesThe3rd/tally/internal/http/transaction"
	"github.com/MrJamesThe3rd/tally/internal/importer"
	"github.com/MrJamesThe3rd/tally/internal/report"
	"github.com/MrJamesThe3rd/tally/internal/suggest"
	suggestStore "github.com/MrJamesThe3rd/tally/internal/suggest/store"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
	txStore "github.com/MrJamesThe3rd/tally/internal/transaction/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var (
		transactionService = transaction.NewService(txStore.New(db))
		reportService      = report.NewService(transactionService)
		analyticsService   = analytics.NewService(transactionService)
		importService      = importer.NewService()
		suggestService     = suggest.NewService(suggestStore.New(db))
		exportService      = export.NewService(transactionService)
	)

	var (
		transactionH = txHandler.NewHandler(transactionService)
		reportH      = reportHandler.NewHandler(reportService)
		analyticsH   = analyticsHandler.NewHandler(analyticsService)
		importH      = importHandler.NewHandler(importService, transactionService, suggestService)
		categoriesH  = categoriesHandler.NewHandler(suggestService)
		exportH      = exportHandler.NewHandler(exportService)
	)

	router := tallyHttp.New(transactionH, reportH, analyticsH, importH, categoriesH, exportH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
