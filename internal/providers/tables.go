package providers

import (
	_ "embed"
	"fmt"
	"hash/fnv"
	"math/rand"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed tables.yaml
var tablesYAML []byte

// TrainRoute is a known train service between two cities, used when the
// live rail upstream is unavailable.
type TrainRoute struct {
	Number    string  `yaml:"number"`
	Name      string  `yaml:"name"`
	Departure string  `yaml:"departure"`
	Arrival   string  `yaml:"arrival"`
	Duration  string  `yaml:"duration"`
	BaseFare  float64 `yaml:"baseFare"`
}

// FallbackFlight is a synthetic flight template.
type FallbackFlight struct {
	Airline   string  `yaml:"airline"`
	Departure string  `yaml:"departure"`
	Arrival   string  `yaml:"arrival"`
	Duration  string  `yaml:"duration"`
	BasePrice float64 `yaml:"basePrice"`
}

// HotelTier is a synthetic hotel template. Multiplier scales the
// budget-derived nightly rate.
type HotelTier struct {
	Name       string   `yaml:"name"`
	Rating     float64  `yaml:"rating"`
	Multiplier float64  `yaml:"multiplier"`
	Amenities  []string `yaml:"amenities"`
}

// ActivityTemplate is a synthetic activity template. Name may contain a
// "{city}" placeholder.
type ActivityTemplate struct {
	Name      string  `yaml:"name"`
	Category  string  `yaml:"category"`
	Duration  string  `yaml:"duration"`
	BasePrice float64 `yaml:"basePrice"`
}

// Tables holds the static reference data the providers consult: code
// lookups for the live paths and offer templates for the synthetic
// fallbacks. Loaded once at startup, read-only afterward.
type Tables struct {
	Airports        map[string]string             `yaml:"airports"`
	Stations        map[string]string             `yaml:"stations"`
	TrainRoutes     map[string][]TrainRoute       `yaml:"trainRoutes"`
	FallbackFlights []FallbackFlight              `yaml:"fallbackFlights"`
	HotelTiers      []HotelTier                   `yaml:"hotelTiers"`
	Activities      map[string][]ActivityTemplate `yaml:"activities"`
	Generic         []ActivityTemplate            `yaml:"genericActivities"`
}

// LoadTables decodes the embedded reference tables.
func LoadTables() (*Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(tablesYAML, &t); err != nil {
		return nil, fmt.Errorf("failed to decode reference tables: %w", err)
	}
	return &t, nil
}

// AirportCode returns the IATA code for a city, defaulting to DEL.
func (t *Tables) AirportCode(city string) string {
	if code, ok := t.Airports[titleCase(city)]; ok {
		return code
	}
	return "DEL"
}

// StationCode returns the railway station code for a city, defaulting
// to NDLS.
func (t *Tables) StationCode(city string) string {
	if code, ok := t.Stations[titleCase(city)]; ok {
		return code
	}
	return "NDLS"
}

// Routes returns the known train services between two cities, checking
// the reverse direction as well. Returns nil for unknown pairs.
func (t *Tables) Routes(origin, destination string) []TrainRoute {
	origin = titleCase(origin)
	destination = titleCase(destination)
	if routes, ok := t.TrainRoutes[origin+"-"+destination]; ok {
		return routes
	}
	return t.TrainRoutes[destination+"-"+origin]
}

// ActivityTemplates returns the activity templates for a destination,
// falling back to the generic set with the city name substituted in.
func (t *Tables) ActivityTemplates(city string) []ActivityTemplate {
	if templates, ok := t.Activities[titleCase(city)]; ok {
		return templates
	}

	out := make([]ActivityTemplate, len(t.Generic))
	for i, tmpl := range t.Generic {
		tmpl.Name = strings.ReplaceAll(tmpl.Name, "{city}", titleCase(city))
		out[i] = tmpl
	}
	return out
}

func titleCase(city string) string {
	city = strings.TrimSpace(city)
	if city == "" {
		return city
	}
	return strings.ToUpper(city[:1]) + strings.ToLower(city[1:])
}

// routeRand returns a generator seeded from the route string, so
// synthetic price variation is repeatable for the same city pair.
func routeRand(parts ...string) *rand.Rand {
	h := fnv.New64a()
	for _, p := range parts {
		_, _ = h.Write([]byte(strings.ToLower(strings.TrimSpace(p))))
		_, _ = h.Write([]byte{'|'})
	}
	return rand.New(rand.NewSource(int64(h.Sum64())))
}
