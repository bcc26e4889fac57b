// Package handler exposes the planning pipeline over HTTP. The core
// entry point stays Planner.Plan; this layer only parses requests,
// enforces rate limits, and maps errors to status codes.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/alex-user-go/tripplanner/internal/intent"
	"github.com/alex-user-go/tripplanner/internal/middleware"
	"github.com/alex-user-go/tripplanner/internal/obs"
	"github.com/alex-user-go/tripplanner/internal/ratelimit"
	"github.com/alex-user-go/tripplanner/internal/trip"
)

// TripPlanner is the core operation this handler fronts.
type TripPlanner interface {
	Plan(ctx context.Context, rawText string) (*trip.TripPlan, error)
}

// Handler handles HTTP requests.
type Handler struct {
	planner     TripPlanner
	rateLimiter *ratelimit.Limiter
	metrics     *obs.Metrics
	logger      *slog.Logger
}

// New creates a new Handler.
func New(planner TripPlanner, rateLimiter *ratelimit.Limiter, metrics *obs.Metrics, logger *slog.Logger) *Handler {
	return &Handler{
		planner:     planner,
		rateLimiter: rateLimiter,
		metrics:     metrics,
		logger:      logger,
	}
}

// PlanRequest is the inbound payload.
type PlanRequest struct {
	Message string `json:"message"`
}

// PlanResponse wraps the plan with request statistics.
type PlanResponse struct {
	Plan       *trip.TripPlan `json:"plan"`
	DurationMs int64          `json:"duration_ms"`
}

// PlanHandler handles POST /api/plan requests.
func (h *Handler) PlanHandler(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now()
	h.metrics.IncRequests()
	requestID := middleware.RequestID(r.Context())

	ip := ExtractIP(r)
	if !h.rateLimiter.Allow(ip) {
		h.logger.Warn("rate limit exceeded", "request_id", requestID, "ip", ip)
		writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
		return
	}

	req, err := parsePlanRequest(r)
	if err != nil {
		h.logger.Debug("invalid request", "request_id", requestID, "error", err, "ip", ip)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	plan, err := h.planner.Plan(r.Context(), req.Message)
	if err != nil {
		status := statusFor(err)
		h.logger.Error("plan failed",
			"request_id", requestID,
			"error", err,
			"status", status,
			"ip", ip,
		)
		writeError(w, status, err.Error())
		return
	}

	response := PlanResponse{
		Plan:       plan,
		DurationMs: time.Since(startTime).Milliseconds(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		// Can't change status after WriteHeader, just log
		h.logger.Error("failed to encode response", "error", err)
	}
}

// statusFor maps pipeline errors to HTTP status codes: unparseable
// requests are the client's problem, narrative failures are ours.
func statusFor(err error) int {
	var parseErr *intent.ParseError
	if errors.As(err, &parseErr) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusBadGateway
}

func parsePlanRequest(r *http.Request) (*PlanRequest, error) {
	var req PlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, fmt.Errorf("invalid JSON body")
	}
	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		return nil, fmt.Errorf("message is required")
	}
	return &req, nil
}

// ExtractIP extracts the client IP from the request.
// Checks X-Forwarded-For, X-Real-IP, then falls back to RemoteAddr.
func ExtractIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ips := strings.Split(xff, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
