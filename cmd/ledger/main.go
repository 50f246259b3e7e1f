package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"ledger/internal/cache"
	"ledger/internal/cli"
	apphttp "ledger/internal/http"
	"ledger/internal/ledger"
	applog "ledger/internal/log"
)

func main() {
	cfg, logger := cli.LoadAndValidateConfig(applog.ComponentApp)
	logger.Info("Starting ledger server", applog.FieldOperation, applog.OpStartup, "backend", cfg.DataBackend)

	startCtx := context.Background()
	backend := cli.OpenBackend(startCtx, logger, cfg)
	amqpClient := cli.ConnectAMQP(logger, cfg)

	opts := []ledger.Option{ledger.WithKey(cfg.LedgerKey), ledger.WithLogger(logger)}
	if amqpClient != nil {
		opts = append(opts, ledger.WithNotifier(amqpClient))
	}
	store := ledger.New(backend.Store, opts...)
	store.Load(startCtx)

	summaries := cache.NewSummaryCache(cfg.SummaryCacheSize, cfg.SummaryCacheTTL, logger)
	caches := cache.NewManager(logger)
	caches.Register(summaries)
	caches.StartCleanup(cfg.SummaryCacheTTL)

	srv := apphttp.NewServer(":"+cfg.Port, store,
		apphttp.WithLogger(logger),
		apphttp.WithSummaryCache(summaries),
		apphttp.WithRateLimit(cfg.RateLimitPerMinute))

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func(ctx context.Context) {
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Server shutdown error", applog.FieldError, err)
		}
		caches.Stop()
		if amqpClient != nil {
			if err := amqpClient.Close(); err != nil {
				logger.Warn("AMQP close error", applog.FieldError, err)
			}
		}
		if err := backend.Close(); err != nil {
			logger.Warn("Storage close error", applog.FieldError, err)
		}
	})

	logger.Info("Listening", "addr", srv.Addr, applog.FieldCount, store.Len())
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", applog.FieldError, err, "addr", srv.Addr)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully", applog.FieldOperation, applog.OpShutdown)
}
