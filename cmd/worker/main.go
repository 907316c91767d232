// Package main implements the background worker that mirrors the Postgres
// catalog into the on-disk store.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dsjohal14/catalogsearch/internal/libs/config"
	"github.com/dsjohal14/catalogsearch/internal/libs/obs"
	"github.com/dsjohal14/catalogsearch/internal/scope/catalog"
	"github.com/dsjohal14/catalogsearch/internal/streamlite"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	obs.InitLogger(cfg.LogLevel)
	logger := obs.Logger("worker")

	if cfg.DatabaseURL == "" {
		logger.Fatal().Msg("DATABASE_URL is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	src, err := catalog.NewPostgresSource(connectCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to catalog database")
	}
	defer src.Close()

	store, err := catalog.NewFileStore(cfg.DataDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open catalog store")
	}
	defer func() { _ = store.Close() }()

	syncer := streamlite.NewCatalogSync("postgres", src, store, cfg.SyncInterval, logger)
	if err := syncer.Start(ctx); err != nil {
		logger.Fatal().Err(err).Msg("failed to start catalog sync")
	}

	logger.Info().
		Str("path", store.Path()).
		Dur("interval", cfg.SyncInterval).
		Msg("worker started")

	<-ctx.Done()
	_ = syncer.Stop()

	status := syncer.Status()
	logger.Info().
		Int("syncs", status.Syncs).
		Int("docs", status.Docs).
		AnErr("last_error", status.LastError).
		Msg("worker stopped")
}
