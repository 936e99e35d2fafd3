package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"chagual/internal/config"
	"chagual/internal/database"
	"chagual/internal/gateway"
	"chagual/internal/logging"
	"chagual/internal/server"
	"chagual/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load config")
	}
	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, dialect, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logging.Error().Err(err).Msg("failed to close database")
		}
	}()
	if err := database.Migrate(ctx, db, dialect); err != nil {
		logging.Fatal().Err(err).Msg("failed to migrate development schema")
	}

	var store storage.ObjectStore
	if cfg.UsesObjectStore() {
		store, err = storage.New(ctx, cfg.Storage)
		if err != nil {
			logging.Fatal().Err(err).Str("provider", cfg.Storage.Provider).Msg("failed to init object storage")
		}
	}

	gw := gateway.New(db, dialect, gateway.WithCallTimeout(cfg.Database.CallTimeout))
	router, err := server.NewRouter(cfg, gw, store)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to build router")
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().
			Str("addr", cfg.Server.Addr).
			Str("foto_strategy", cfg.Media.FotoStrategy).
			Str("audio_strategy", cfg.Media.AudioStrategy).
			Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logging.Error().Err(err).Msg("server failed")
		}
	case <-ctx.Done():
		logging.Info().Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("graceful shutdown failed")
	}

	stats := gw.Stats()
	logging.Info().Int64("sessions_acquired", stats.Acquired).Int64("sessions_released", stats.Released).Msg("server stopped")
}
