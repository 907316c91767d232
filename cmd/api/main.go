// Package main implements the HTTP API server for catalog search.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	apihttp "github.com/dsjohal14/catalogsearch/internal/http"
	"github.com/dsjohal14/catalogsearch/internal/libs/config"
	"github.com/dsjohal14/catalogsearch/internal/libs/obs"
	"github.com/dsjohal14/catalogsearch/internal/scope/catalog"
	"github.com/dsjohal14/catalogsearch/internal/scope/search"
	"github.com/dsjohal14/catalogsearch/internal/streamlite"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

func main() {
	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Init logger
	obs.InitLogger(cfg.LogLevel)
	logger := obs.Logger("api")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := catalog.NewFileStore(cfg.DataDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open catalog store")
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close catalog store")
		}
	}()
	logger.Info().Str("path", store.Path()).Int("doc_count", store.Count()).Msg("catalog loaded")

	// Keep the store mirrored from Postgres when configured
	if cfg.DatabaseURL != "" {
		stopSync, err := startSync(ctx, cfg, store, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to start catalog sync")
		}
		defer stopSync()
	}

	engine := search.NewEngine(search.WithWeights(cfg.Weights))
	handler := apihttp.NewHandler(store, engine, apihttp.Limits{
		SearchDefault:  cfg.SearchDefaultLimit,
		SearchMax:      cfg.SearchMaxLimit,
		SuggestDefault: cfg.SuggestDefaultLimit,
		SuggestMax:     cfg.SuggestMaxLimit,
	}, logger)

	// Setup router
	r := setupRouter(handler)

	// Start server
	addr := fmt.Sprintf("%s:%s", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info().Str("addr", addr).Msg("starting API server")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error().Err(err).Msg("server failed")
		return
	}
	logger.Info().Msg("server stopped")
}

func setupRouter(h *apihttp.Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)

	// Routes
	h.Routes(r)

	return r
}

// startSync connects to Postgres and starts mirroring it into store.
// The returned func stops the sync and closes the connection pool.
func startSync(ctx context.Context, cfg *config.Config, store catalog.Store, logger zerolog.Logger) (func(), error) {
	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	src, err := catalog.NewPostgresSource(connectCtx, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	syncer := streamlite.NewCatalogSync("postgres", src, store, cfg.SyncInterval, obs.Logger("sync"))
	if err := syncer.Start(ctx); err != nil {
		src.Close()
		return nil, err
	}

	logger.Info().Dur("interval", cfg.SyncInterval).Msg("using Postgres catalog source")
	return func() {
		_ = syncer.Stop()
		src.Close()
	}, nil
}
