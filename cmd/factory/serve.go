package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/Spok95/car-factory/internal/api"
	"github.com/Spok95/car-factory/internal/app"
	"github.com/Spok95/car-factory/internal/config"
	"github.com/Spok95/car-factory/internal/infra/db"
	httpx "github.com/Spok95/car-factory/internal/infra/http"
	"github.com/Spok95/car-factory/internal/infra/logger"
	"github.com/spf13/cobra"
)

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg, logger.New(cfg.App.Env))
		},
	}
}

func serve(parent context.Context, cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var stores api.Stores
	switch cfg.Storage.Driver {
	case config.DriverMemory:
		stores = app.MemoryStores()
		log.Warn("using in-memory storage, data is lost on exit")
	default:
		if cfg.Migrations.Auto {
			if err := migrateUp(ctx, cfg.Postgres.DSN); err != nil {
				log.Error("migrations failed", "err", err)
				return err
			}
			log.Info("migrations applied")
		}

		pool, err := db.Connect(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConns)
		if err != nil {
			log.Error("db connect failed", "err", err)
			return err
		}
		defer pool.Close()
		log.Info("db connected")
		stores = app.PostgresStores(pool)
	}

	var metrics *httpx.Metrics
	if cfg.Metrics.Enabled {
		metrics = httpx.NewMetrics()
	}
	mux := httpx.NewMux(metrics)
	api.New(log, metrics).Register(mux, stores)
	handler := httpx.Wrap(mux, httpx.Options{
		Log:         log,
		Metrics:     metrics,
		CORSOrigins: cfg.HTTP.CORSOrigins,
	})

	srv := httpx.New(cfg.HTTP.Addr, handler)
	errc := make(chan error, 1)
	go func() { errc <- srv.Start() }()
	log.Info("HTTP server started", "addr", cfg.HTTP.Addr, "storage", cfg.Storage.Driver)

	select {
	case <-ctx.Done():
	case err := <-errc:
		if err != nil {
			log.Error("http server error", "err", err)
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown failed", "err", err)
	}
	log.Info("graceful shutdown complete")
	return nil
}

func migrateUp(ctx context.Context, dsn string) error {
	m, err := db.OpenMigrator(dsn)
	if err != nil {
		return err
	}
	defer func() { _ = m.Close() }()
	return m.Up(ctx)
}
