// Package config loads application settings from the environment, with
// an optional .env file for local runs.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application settings.
type Config struct {
	Addr string

	// LLM connection. GroqAPIKey is required: intent extraction can
	// fall back to patterns, but narrative generation cannot.
	GroqAPIKey  string
	GroqBaseURL string
	Model       string
	LLMTimeout  time.Duration

	// Upstream travel-data APIs. Empty URLs disable the live path for
	// that provider, which then always synthesizes.
	FlightsURL    string
	HotelsURL     string
	TrainsURL     string
	ActivitiesURL string

	ProviderTimeout time.Duration
	CacheTTL        time.Duration

	// Per-IP rate limit for planning requests.
	RateLimit       int
	RateLimitWindow time.Duration
}

// Load reads configuration from the environment. A missing .env file
// is not an error.
func Load() (*Config, error) {
	// A missing .env file just means the environment is already set.
	_ = godotenv.Load()

	cfg := &Config{
		Addr:            getEnv("ADDR", ":8080"),
		GroqAPIKey:      os.Getenv("GROQ_API_KEY"),
		GroqBaseURL:     getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
		Model:           getEnv("LLM_MODEL", "llama-3.1-8b-instant"),
		LLMTimeout:      getDuration("LLM_TIMEOUT", 30*time.Second),
		FlightsURL:      os.Getenv("FLIGHTS_API_URL"),
		HotelsURL:       os.Getenv("HOTELS_API_URL"),
		TrainsURL:       os.Getenv("TRAINS_API_URL"),
		ActivitiesURL:   os.Getenv("ACTIVITIES_API_URL"),
		ProviderTimeout: getDuration("PROVIDER_TIMEOUT", 5*time.Second),
		CacheTTL:        getDuration("CACHE_TTL", 30*time.Minute),
		RateLimit:       getInt("RATE_LIMIT", 10),
		RateLimitWindow: getDuration("RATE_LIMIT_WINDOW", time.Minute),
	}

	if cfg.GroqAPIKey == "" {
		return nil, fmt.Errorf("GROQ_API_KEY is required")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if v, err := strconv.Atoi(value); err == nil {
			return v
		}
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if v, err := time.ParseDuration(value); err == nil {
			return v
		}
	}
	return defaultValue
}
