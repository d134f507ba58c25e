package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dom/league-matchmaker/internal/api"
	"github.com/dom/league-matchmaker/internal/config"
	"github.com/dom/league-matchmaker/internal/logger"
	"github.com/dom/league-matchmaker/internal/metrics"
	"github.com/dom/league-matchmaker/internal/repository"
	"github.com/dom/league-matchmaker/internal/repository/filesystem"
	"github.com/dom/league-matchmaker/internal/repository/postgres"
	"github.com/dom/league-matchmaker/internal/service"
	"github.com/dom/league-matchmaker/internal/websocket"
	"github.com/rs/zerolog"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("info")
		bootLog.Fatal().Err(err).Msg("failed to load config")
	}

	log := logger.New(cfg.LogLevel)

	// Initialize fixture source
	repos, err := newRepositories(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open fixture source")
	}

	// Initialize WebSocket hub
	hub := websocket.NewHub(log)
	go hub.Run()

	m := metrics.New()

	// Initialize services
	services := service.NewServices(repos, cfg, m, hub)

	// Initialize router
	router := api.NewRouter(services, hub, m, log)

	// Create server
	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("fixture_source", cfg.FixtureSource).
			Bool("auth", cfg.AuthEnabled()).
			Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}
	hub.Stop()

	log.Info().Msg("server stopped")
}

func newRepositories(cfg *config.Config, log zerolog.Logger) (*repository.Repositories, error) {
	if cfg.FixtureSource == config.FixtureSourcePostgres {
		db, err := postgres.NewConnection(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return postgres.NewRepositories(db), nil
	}

	log.Info().Str("dir", cfg.FixtureDir).Msg("serving fixtures from directory")
	return &repository.Repositories{
		Fixture: filesystem.NewFixtureRepository(cfg.FixtureDir),
	}, nil
}
