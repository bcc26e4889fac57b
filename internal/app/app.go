// Package app is the composition root: it wires config, logging,
// metrics, the provider clients, the planning pipeline, and the HTTP
// server, and owns graceful shutdown.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"

	"github.com/alex-user-go/tripplanner/internal/cache"
	"github.com/alex-user-go/tripplanner/internal/config"
	"github.com/alex-user-go/tripplanner/internal/handler"
	"github.com/alex-user-go/tripplanner/internal/intent"
	"github.com/alex-user-go/tripplanner/internal/llm"
	"github.com/alex-user-go/tripplanner/internal/middleware"
	"github.com/alex-user-go/tripplanner/internal/obs"
	"github.com/alex-user-go/tripplanner/internal/providers"
	"github.com/alex-user-go/tripplanner/internal/ratelimit"
	"github.com/alex-user-go/tripplanner/internal/trip"
)

// Run initializes and runs the application.
func Run() error {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	metrics := obs.NewMetrics(logger)

	tables, err := providers.LoadTables()
	if err != nil {
		return err
	}

	llmClient, err := llm.NewGroqClient(llm.Config{
		APIKey:  cfg.GroqAPIKey,
		BaseURL: cfg.GroqBaseURL,
		Model:   cfg.Model,
		Timeout: cfg.LLMTimeout,
	})
	if err != nil {
		return err
	}

	// The rail upstream is rate-limited; cache its results per route
	// and date.
	trainCache := cache.New[providers.RouteKey, []providers.TrainOffer](cfg.CacheTTL)

	aggregator := trip.NewAggregator(
		providers.NewFlightClient(cfg.FlightsURL, cfg.ProviderTimeout, tables, metrics, logger),
		providers.NewHotelClient(cfg.HotelsURL, cfg.ProviderTimeout, tables, metrics, logger),
		providers.NewTrainClient(cfg.TrainsURL, cfg.ProviderTimeout, tables, trainCache, metrics, logger),
		providers.NewActivityClient(cfg.ActivitiesURL, cfg.ProviderTimeout, tables, metrics, logger),
		logger,
	)

	planner := trip.NewPlanner(
		intent.NewResolver(llmClient, logger),
		aggregator,
		trip.NewAllocator(),
		trip.NewAdvisor(llmClient, logger),
		llmClient,
		metrics,
		logger,
	)

	limiter := ratelimit.New(cfg.RateLimit, cfg.RateLimitWindow)
	defer limiter.Close()

	h := handler.New(planner, limiter, metrics, logger)

	r := chi.NewRouter()
	r.Use(middleware.Logging(logger))
	r.Use(cors.AllowAll().Handler)
	r.Post("/api/plan", h.PlanHandler)
	r.Get("/healthz", obs.HealthHandler(logger))
	r.Get("/metrics", metrics.MetricsHandler())

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 120 * time.Second, // plan requests wait on LLM calls
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Graceful shutdown
	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", "error", err)
		return err
	}

	logger.Info("server stopped")
	return nil
}
