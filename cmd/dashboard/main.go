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

	httpadapter "github.com/quarterlight/crimescope/internal/adapter/http"
	"github.com/quarterlight/crimescope/internal/aggregate"
	"github.com/quarterlight/crimescope/internal/config"
	"github.com/quarterlight/crimescope/internal/dataset"
	"github.com/quarterlight/crimescope/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	start := time.Now()
	store, err := dataset.Load(cfg.DatasetPath)
	if err != nil {
		logger.Error("failed to load dataset", "path", cfg.DatasetPath, "error", err)
		os.Exit(1)
	}
	loadSeconds := time.Since(start).Seconds()

	metrics.DatasetRecords.Set(float64(store.Len()))
	metrics.DatasetCities.Set(float64(len(store.Cities())))
	metrics.DatasetLoadSeconds.Set(loadSeconds)

	minYear, maxYear := store.Years()
	logger.Info("dataset loaded",
		"path", cfg.DatasetPath,
		"records", store.Len(),
		"cities", len(store.Cities()),
		"years", maxYear-minYear+1,
		"load_seconds", loadSeconds,
	)

	agg := aggregate.New(store)
	srv := httpadapter.NewServer(cfg.HTTPAddr, store, agg, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
