package main

import (
	"context"
	"errors"
	"os"
	"time"

	"ledger/internal/cli"
	"ledger/internal/config"
	"ledger/internal/ledger"
	applog "ledger/internal/log"
	gsheet "ledger/internal/sheets/google"
	"ledger/internal/worker"
)

func main() {
	cfg, logger := cli.LoadAndValidateConfig(applog.ComponentWorker)
	logger.Info("Starting ledger-worker", applog.FieldOperation, applog.OpStartup)

	if !cfg.SheetsEnabled() {
		logger.Error("GOOGLE_SPREADSHEET_ID is required for the mirror worker")
		os.Exit(1)
	}
	if cfg.DataBackend == config.BackendMemory {
		logger.Warn("Memory backend is process-local, the mirror will only see seed data")
	}

	startCtx := context.Background()
	backend := cli.OpenBackend(startCtx, logger, cfg)

	sheetsClient, err := gsheet.New(startCtx, cfg.GoogleSpreadsheetID, cfg.GoogleSheetName, logger)
	if err != nil {
		logger.Error("Failed to initialize Google Sheets client", applog.FieldError, err)
		os.Exit(1)
	}
	logger.Info("Google Sheets client initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID, "sheet", cfg.GoogleSheetName)

	store := ledger.New(backend.Store, ledger.WithKey(cfg.LedgerKey), ledger.WithLogger(logger))
	mirror := worker.NewMirrorWorker(store, sheetsClient, cfg.SyncInterval, logger)
	amqpClient := cli.ConnectAMQP(logger, cfg)

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func(ctx context.Context) {
		if err := mirror.Stop(ctx); err != nil {
			logger.Warn("Mirror worker stop error", applog.FieldError, err)
		}
		if amqpClient != nil {
			if err := amqpClient.Close(); err != nil {
				logger.Warn("AMQP close error", applog.FieldError, err)
			}
		}
		if err := backend.Close(); err != nil {
			logger.Warn("Storage close error", applog.FieldError, err)
		}
	})

	// The periodic mirror covers any change event that was missed.
	if err := mirror.Start(ctx); err != nil {
		logger.Error("Failed to start mirror worker", applog.FieldError, err)
		os.Exit(1)
	}

	if amqpClient != nil {
		go func() {
			err := amqpClient.ConsumeLedgerChanged(ctx, mirror.HandleLedgerChanged)
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("Message consumption failed, relying on periodic mirror", applog.FieldError, err)
			}
		}()
	} else {
		logger.Info("No AMQP configured, mirroring on the periodic schedule only", "interval", cfg.SyncInterval)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Worker stopped", applog.FieldOperation, applog.OpShutdown, "mirrored", mirror.Mirrored())
}
