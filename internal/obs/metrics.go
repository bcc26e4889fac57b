// Package obs provides lightweight observability: atomic counters
// exposed in Prometheus text format, and a health endpoint.
package obs

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
)

// Metrics tracks application metrics using atomic counters.
type Metrics struct {
	requests          atomic.Int64
	cacheHits         atomic.Int64
	providerFallbacks atomic.Int64
	llmErrors         atomic.Int64
	logger            *slog.Logger
}

// NewMetrics creates a new Metrics instance.
func NewMetrics(logger *slog.Logger) *Metrics {
	return &Metrics{
		logger: logger,
	}
}

// IncRequests increments the total request counter.
func (m *Metrics) IncRequests() {
	m.requests.Add(1)
}

// IncCacheHits increments the cache hits counter.
func (m *Metrics) IncCacheHits() {
	m.cacheHits.Add(1)
}

// IncProviderFallbacks increments the synthetic-fallback counter.
func (m *Metrics) IncProviderFallbacks() {
	m.providerFallbacks.Add(1)
}

// IncLLMErrors increments the failed-LLM-call counter.
func (m *Metrics) IncLLMErrors() {
	m.llmErrors.Add(1)
}

// Snapshot returns current metric values.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Requests:          m.requests.Load(),
		CacheHits:         m.cacheHits.Load(),
		ProviderFallbacks: m.providerFallbacks.Load(),
		LLMErrors:         m.llmErrors.Load(),
	}
}

// MetricsSnapshot represents a point-in-time snapshot of metrics.
type MetricsSnapshot struct {
	Requests          int64
	CacheHits         int64
	ProviderFallbacks int64
	LLMErrors         int64
}

// HealthHandler returns a handler for /healthz requests.
func HealthHandler(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			logger.Error("failed to write health response", "error", err)
		}
	}
}

// MetricsHandler returns a handler for /metrics requests in Prometheus
// format.
func (m *Metrics) MetricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot := m.Snapshot()

		counters := []struct {
			name  string
			help  string
			value int64
		}{
			{"requests_total", "Total number of plan requests", snapshot.Requests},
			{"cache_hits_total", "Total number of route cache hits", snapshot.CacheHits},
			{"provider_fallbacks_total", "Total number of synthetic provider fallbacks", snapshot.ProviderFallbacks},
			{"llm_errors_total", "Total number of failed LLM calls", snapshot.LLMErrors},
		}

		w.Header().Set("Content-Type", "text/plain; version=0.0.4")
		w.WriteHeader(http.StatusOK)

		for _, c := range counters {
			if _, err := fmt.Fprintf(w, "# HELP %s %s\n# TYPE %s counter\n%s %d\n", c.name, c.help, c.name, c.name, c.value); err != nil {
				m.logger.Error("failed to write metrics", "error", err)
				return
			}
		}
	}
}
