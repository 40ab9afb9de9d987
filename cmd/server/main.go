/*
main.go - Application entry point

STARTUP SEQUENCE:
  1. Load configuration (env / app.env via viper)
  2. Open the SQLite snapshot store
  3. Restore the station aggregate (seeding first-run defaults)
  4. Configure the HTTP router
  5. Serve with graceful shutdown

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM: stop accepting connections, wait up to 30s for
  in-flight requests, close the store.
*/
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/petroops/station-engine/api"
	"github.com/petroops/station-engine/config"
	"github.com/petroops/station-engine/logger"
	"github.com/petroops/station-engine/station"
	"github.com/petroops/station-engine/store/sqlite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment)

	store, err := sqlite.New(cfg.Store.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open snapshot store")
	}
	defer store.Close()

	st, err := station.New(context.Background(), station.Options{
		Persister: store,
		Logger:    log,
		AdminPIN:  cfg.AdminPIN,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to restore station state")
	}

	handler := api.NewHandler(st, log)
	router := api.NewRouter(handler, cfg.HTTP.CORSOrigins)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("station engine listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server stopped")
}
