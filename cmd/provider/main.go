// Command provider runs a fake travel-data upstream for local testing
// of the live provider path. One process serves one upstream kind,
// selected by PROVIDER_TYPE (flights, hotels, trains, activities), with
// configurable latency and failure injection so the fallback path can
// be exercised end to end.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	port := getEnv("PORT", "9001")
	providerType := getEnv("PROVIDER_TYPE", "flights")

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	upstream := newFakeUpstream(logger)

	mux := http.NewServeMux()
	switch providerType {
	case "flights":
		mux.HandleFunc("GET /flights", upstream.flightsHandler)
	case "hotels":
		mux.HandleFunc("GET /hotels", upstream.hotelsHandler)
	case "trains":
		mux.HandleFunc("GET /trains", upstream.trainsHandler)
	case "activities":
		mux.HandleFunc("GET /activities", upstream.activitiesHandler)
	default:
		logger.Error("unknown provider type", "type", providerType)
		os.Exit(1)
	}
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			logger.Error("failed to write healthz response", "error", err)
		}
	})

	addr := ":" + port
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("fake upstream listening", "type", providerType, "addr", addr)
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
		os.Exit(1)
	}

	logger.Info("server stopped")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
