package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/mfreitas/tally/internal/assistant"
	"github.com/mfreitas/tally/internal/categorize"
	categorizeStore "github.com/mfreitas/tally/internal/categorize/store"
	"github.com/mfreitas/tally/internal/config"
	"github.com/mfreitas/tally/internal/database"
	"github.com/mfreitas/tally/internal/export"
	tallyHttp "github.com/mfreitas/tally/internal/http"
	aiHandler "github.com/mfreitas/tally/internal/http/ai"
	categorizeHandler "github.com/mfreitas/tally/internal/http/categorize"
	exportHandler "github.com/mfreitas/tally/internal/http/export"
	importHandler "github.com/mfreitas/tally/internal/http/importcsv"
	ledgerHandler "github.com/mfreitas/tally/internal/http/ledger"
	"github.com/mfreitas/tally/internal/importer"
	"github.com/mfreitas/tally/internal/ledger"
	ledgerStore "github.com/mfreitas/tally/internal/ledger/store"
)

func main() {
	_ = godotenv.Load()

	// Amounts serialize as JSON numbers, matching the stored dataset format.
	decimal.MarshalJSONWithoutQuotes = true

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

	if err := database.EnsureSchema(context.Background(), db); err != nil {
		slog.Error("failed to ensure schema", "error", err)
		os.Exit(1)
	}

	var assistantClient assistant.Client

	if cfg.Assistant.Mode != assistant.ConfigModeScripted && cfg.Assistant.APIKey != "" {
		assistantClient, err = assistant.NewOpenAIClient(assistant.ClientConfig{
			APIKey:  cfg.Assistant.APIKey,
			Model:   cfg.Assistant.Model,
			BaseURL: cfg.Assistant.BaseURL,
			Timeout: cfg.Server.Timeout,
		})
		if err != nil {
			slog.Error("failed to build assistant client", "error", err)
			os.Exit(1)
		}
	} else if cfg.Assistant.Mode == assistant.ConfigModeOpenAI {
		slog.Warn("assistant mode is openai but no API key is set, replies will be scripted")
	}

	var (
		ledgerService     = ledger.NewService(ledgerStore.New(db))
		categorizeService = categorize.NewService(categorizeStore.New(db))
		importService     = importer.NewService()
		exportService     = export.NewService(ledgerService)
		assistantService  = assistant.NewService(assistant.ServiceConfig{
			Client: assistantClient,
			Mode:   cfg.Assistant.Mode,
		})
	)

	var (
		ledgerH     = ledgerHandler.NewHandler(ledgerService)
		aiH         = aiHandler.NewHandler(assistantService, ledgerService)
		importH     = importHandler.NewHandler(importService, ledgerService, categorizeService)
		exportH     = exportHandler.NewHandler(exportService)
		categorizeH = categorizeHandler.NewHandler(categorizeService)
	)

	router := tallyHttp.New(ledgerH, aiH, importH, exportH, categorizeH)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "app", cfg.App.Name, "addr", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}

	if err := server.ListenAndServe(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
