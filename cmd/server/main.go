package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"example.com/finance-planner/backend/internal/config"
	"example.com/finance-planner/backend/internal/notifications"
	"example.com/finance-planner/backend/internal/server"
	"example.com/finance-planner/backend/internal/storage"
	"example.com/finance-planner/backend/internal/store"
)

func main() {
	ensureEnvFile()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	stateStore, err := openStorage(context.Background(), cfg.Storage)
	if err != nil {
		logger.Error("failed to open storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer stateStore.Close()

	hub := notifications.NewHub()
	recordStore := store.New(stateStore, hub, logger, cfg.Planner.HistoryLimit)
	if err := recordStore.Load(context.Background()); err != nil {
		logger.Error("failed to load planner state", slog.String("error", err.Error()))
		os.Exit(1)
	}

	e := server.New(cfg, logger, recordStore, hub)
	httpServer := server.NewHTTPServer(cfg.Server, e)

	scheduler := startSnapshotJob(cfg.Planner.SnapshotCron, recordStore, logger)
	if scheduler != nil {
		defer scheduler.Stop()
	}

	go func() {
		if err := e.StartServer(httpServer); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", slog.String("error", err.Error()))
		}
	}()

	shutdownSignal := make(chan os.Signal, 1)
	signal.Notify(shutdownSignal, syscall.SIGINT, syscall.SIGTERM)
	<-shutdownSignal

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", slog.String("error", err.Error()))
	}
}

func openStorage(ctx context.Context, cfg config.StorageConfig) (storage.StateStore, error) {
	if cfg.Driver == config.StorageDriverPostgres {
		return storage.OpenPostgres(ctx, cfg.Database, cfg.Slot)
	}

	return storage.NewFileStore(cfg.FilePath), nil
}

// startSnapshotJob запускает периодический снимок чистого капитала, чтобы
// граница месяца фиксировалась и без правок пользователя.
func startSnapshotJob(spec string, recordStore *store.Store, logger *slog.Logger) *cron.Cron {
	scheduler := cron.New()

	_, err := scheduler.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		snapshot, err := recordStore.RecordNetWorth(ctx)
		if err != nil {
			logger.Warn("scheduled snapshot failed", slog.String("error", err.Error()))
			return
		}

		logger.Info("net worth snapshot recorded",
			slog.String("period", snapshot.Period),
			slog.Float64("value", snapshot.Value),
		)
	})
	if err != nil {
		logger.Error("invalid snapshot schedule", slog.String("spec", spec), slog.String("error", err.Error()))
		return nil
	}

	scheduler.Start()
	return scheduler
}

func ensureEnvFile() {
	if os.Getenv("ENV_FILE") != "" {
		return
	}

	if _, err := os.Stat(".env"); err == nil {
		_ = os.Setenv("ENV_FILE", ".env")
	}
}
