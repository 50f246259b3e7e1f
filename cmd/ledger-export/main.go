package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"ledger/internal/cli"
	"ledger/internal/export"
	"ledger/internal/ledger"
	applog "ledger/internal/log"
	gsheet "ledger/internal/sheets/google"
	"ledger/internal/worker"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run returns the process exit code so deferred cleanup always happens.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("ledger-export", flag.ContinueOnError)
	fs.SetOutput(stderr)
	output := fs.String("o", export.Filename, `output file, or "-" for stdout`)
	toSheets := fs.Bool("sheets", false, "mirror the ledger to the configured spreadsheet instead of writing CSV")
	timeout := fs.Duration("timeout", time.Minute, "overall time limit")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg, logger := cli.LoadAndValidateConfig(applog.ComponentExport)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	backend := cli.OpenBackend(ctx, logger, cfg)
	defer backend.Close()

	store := ledger.New(backend.Store, ledger.WithKey(cfg.LedgerKey), ledger.WithLogger(logger))

	if *toSheets {
		if err := mirrorToSheets(ctx, logger, store, cfg.GoogleSpreadsheetID, cfg.GoogleSheetName); err != nil {
			logger.Error("Sheets mirror failed", applog.FieldOperation, applog.OpSync, applog.FieldError, err)
			return 1
		}
		return 0
	}

	store.Load(ctx)
	if err := cli.WriteExport(store.All(), *output, stdout); err != nil {
		if errors.Is(err, export.ErrEmptyLedger) {
			fmt.Fprintln(stderr, "Nothing to export: the ledger is empty")
		} else {
			logger.Error("Export failed", applog.FieldOperation, applog.OpExport, applog.FieldError, err)
		}
		return 1
	}
	if *output != cli.StdoutTarget {
		logger.Info("Ledger exported", applog.FieldOperation, applog.OpExport,
			applog.FieldCount, store.Len(), "path", *output)
	}
	return 0
}

func mirrorToSheets(ctx context.Context, logger *applog.Logger, store *ledger.Store, spreadsheetID, sheetName string) error {
	client, err := gsheet.New(ctx, spreadsheetID, sheetName, logger)
	if err != nil {
		return err
	}
	wrote, err := worker.NewMirrorWorker(store, client, 0, logger).Sync(ctx)
	if err != nil {
		return err
	}
	logger.Info("Sheets mirror finished", applog.FieldOperation, applog.OpSync,
		applog.FieldCount, store.Len(), "written", wrote)
	return nil
}
