// Package intent turns a traveler's free-text request into a validated
// Intent. The primary path asks a language model; a regex fallback
// guarantees an Intent is produced whenever the text names a route.
package intent

import "fmt"

// TripType categorizes the style of trip.
type TripType string

// Supported trip types.
const (
	TripLeisure   TripType = "leisure"
	TripBusiness  TripType = "business"
	TripAdventure TripType = "adventure"
	TripFamily    TripType = "family"
)

// Defaults applied when the input does not specify a field.
const (
	DefaultBudget    = 25000.0
	DefaultDuration  = 5
	DefaultTravelers = 2
)

// Intent is the structured representation of what the traveler wants.
// It is created once per request and never mutated afterward.
type Intent struct {
	Origin       string   `json:"origin"`
	Destination  string   `json:"destination"`
	TripType     TripType `json:"trip_type"`
	Budget       float64  `json:"budget"`
	DurationDays int      `json:"duration_days"`
	Travelers    int      `json:"travelers"`
	Preferences  []string `json:"preferences"`
}

// ParseError reports that no origin/destination pair could be
// extracted from the input by either resolution path.
type ParseError struct {
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("intent: no origin/destination found in %q", e.Input)
}

func validTripType(t TripType) bool {
	switch t {
	case TripLeisure, TripBusiness, TripAdventure, TripFamily:
		return true
	}
	return false
}
