package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/alex-user-go/tripplanner/internal/llm"
)

// Fallback extraction patterns, applied in order.
var (
	routePattern    = regexp.MustCompile(`(?i)(?:from\s+)?([a-zA-Z]+)\s+to\s+([a-zA-Z]+)`)
	budgetPattern   = regexp.MustCompile(`(?i)(\d+)\s*(?:rs\b|rupees?|inr|₹)`)
	durationPattern = regexp.MustCompile(`(?i)(\d+)\s*days?`)
)

const extractPrompt = `Extract travel intent from this user message and return ONLY valid JSON:

Message: %q

Extract budget from numbers like "2000rs", "5000 rupees", "₹3000", etc.
Extract duration from "2 days", "3 day", etc.

Return exactly this JSON format:
{
  "from": "extracted_origin_city",
  "destination": "extracted_destination_city",
  "tripType": "leisure",
  "budget": extracted_budget_number,
  "duration": extracted_duration_number,
  "travelers": 2,
  "preferences": ["sightseeing"]
}`

// Resolver produces an Intent from raw text.
type Resolver struct {
	client llm.Client
	logger *slog.Logger
}

// NewResolver creates a Resolver. A nil client disables the model path
// so every request goes straight to the regex fallback.
func NewResolver(client llm.Client, logger *slog.Logger) *Resolver {
	return &Resolver{client: client, logger: logger}
}

// extracted is the wire shape the model is asked to produce.
type extracted struct {
	From        string   `json:"from"`
	Destination string   `json:"destination"`
	TripType    string   `json:"tripType"`
	Budget      float64  `json:"budget"`
	Duration    int      `json:"duration"`
	Travelers   int      `json:"travelers"`
	Preferences []string `json:"preferences"`
}

// Resolve extracts a validated Intent from rawText. The model path is
// tried first; on any model, parse, or validation failure the regex
// fallback runs. It returns *ParseError only when neither path can
// find an origin/destination pair.
func (r *Resolver) Resolve(ctx context.Context, rawText string) (Intent, error) {
	if r.client != nil {
		it, err := r.fromModel(ctx, rawText)
		if err == nil {
			return it, nil
		}
		r.logger.Warn("model intent extraction failed, using fallback", "error", err)
	}

	return r.fromPatterns(rawText)
}

func (r *Resolver) fromModel(ctx context.Context, rawText string) (Intent, error) {
	response, err := r.client.Complete(ctx, fmt.Sprintf(extractPrompt, rawText))
	if err != nil {
		return Intent{}, err
	}

	raw, err := llm.ExtractJSON(response)
	if err != nil {
		return Intent{}, fmt.Errorf("unusable model response: %w", err)
	}

	var ex extracted
	if err := json.Unmarshal([]byte(raw), &ex); err != nil {
		return Intent{}, fmt.Errorf("unusable model response: %w", err)
	}

	it := Intent{
		Origin:       strings.TrimSpace(ex.From),
		Destination:  strings.TrimSpace(ex.Destination),
		TripType:     TripType(strings.ToLower(strings.TrimSpace(ex.TripType))),
		Budget:       ex.Budget,
		DurationDays: ex.Duration,
		Travelers:    ex.Travelers,
		Preferences:  ex.Preferences,
	}
	if it.Origin == "" || it.Destination == "" {
		return Intent{}, fmt.Errorf("model response missing origin or destination")
	}
	return applyDefaults(it), nil
}

// fromPatterns applies the ordered regex extraction. Missing fields
// receive defaults; a missing route is the only fatal case.
func (r *Resolver) fromPatterns(rawText string) (Intent, error) {
	route := routePattern.FindStringSubmatch(rawText)
	if route == nil {
		return Intent{}, &ParseError{Input: rawText}
	}

	it := Intent{
		Origin:      strings.TrimSpace(route[1]),
		Destination: strings.TrimSpace(route[2]),
		TripType:    TripLeisure,
		Preferences: []string{"sightseeing"},
	}

	if m := budgetPattern.FindStringSubmatch(rawText); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			it.Budget = v
		}
	}
	if m := durationPattern.FindStringSubmatch(rawText); m != nil {
		if v, err := strconv.Atoi(m[1]); err == nil {
			it.DurationDays = v
		}
	}

	return applyDefaults(it), nil
}

func applyDefaults(it Intent) Intent {
	if it.Budget <= 0 {
		it.Budget = DefaultBudget
	}
	if it.DurationDays <= 0 {
		it.DurationDays = DefaultDuration
	}
	if it.Travelers <= 0 {
		it.Travelers = DefaultTravelers
	}
	if !validTripType(it.TripType) {
		it.TripType = TripLeisure
	}
	if len(it.Preferences) == 0 {
		it.Preferences = []string{"sightseeing"}
	}
	return it
}
