package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mtlprog/wealthlens/internal/api"
	"github.com/mtlprog/wealthlens/internal/config"
	"github.com/mtlprog/wealthlens/internal/database"
	"github.com/mtlprog/wealthlens/internal/export"
	"github.com/mtlprog/wealthlens/internal/health"
	"github.com/mtlprog/wealthlens/internal/holding"
	"github.com/mtlprog/wealthlens/internal/report"
	"github.com/mtlprog/wealthlens/internal/worker"
)

func serve(ctx context.Context, cfg config.Config) error {
	ctx, stop := context.WithCancel(ctx)
	defer stop()

	// Connect to database
	if cfg.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}
	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer pool.Close()

	// Run migrations
	sub, err := migrationsSub()
	if err != nil {
		return err
	}
	if err := database.RunMigrations(ctx, pool, sub); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	engine := health.NewEngine(health.NewDefaultRegistry())
	opts := []report.Option{report.WithEngine(engine)}

	// Optional report cache
	if rdb := connectRedis(ctx, cfg.RedisURL); rdb != nil {
		defer rdb.Close()
		opts = append(opts, report.WithCache(report.NewRedisCache(rdb, cfg.ReportCacheTTL)))
	}

	reportSvc := report.NewService(holding.NewPgRepository(pool), report.NewPgRepository(pool), opts...)

	// Start report worker, exporting to Google Sheets when configured
	var hook worker.AfterReportsHook
	if cfg.SheetsEnabled() {
		sheets, err := export.NewSheetsWriter(ctx, cfg.GoogleSheetsID, cfg.GoogleCredentialsJSON)
		if err != nil {
			slog.Warn("Google Sheets export disabled", "error", err)
		} else {
			hook = export.NewService(sheets)
		}
	}
	reportWorker := worker.NewReportWorker(reportSvc, cfg.ReportWorkerInterval, hook)
	go reportWorker.Run(ctx)

	if cfg.AdminAPIKey == "" {
		slog.Warn("ADMIN_API_KEY not set, generate endpoint is unprotected")
	}

	// Start HTTP server
	srv := api.NewServer(api.ServerConfig{
		Port:         cfg.HTTPPort,
		AdminAPIKey:  cfg.AdminAPIKey,
		HistoryLimit: cfg.ReportHistoryLimit,
	}, reportSvc, engine)

	go func() {
		slog.Info("HTTP server listening", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server error", "error", err)
			stop()
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}

// connectRedis returns nil when Redis is not configured or unreachable.
func connectRedis(ctx context.Context, url string) *redis.Client {
	if url == "" {
		return nil
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		slog.Warn("invalid REDIS_URL, report cache disabled", "error", err)
		return nil
	}
	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		slog.Warn("redis unreachable, report cache disabled", "error", err)
		_ = rdb.Close()
		return nil
	}
	return rdb
}
