package providers

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/alex-user-go/tripplanner/internal/obs"
)

const maxFlights = 3

// FlightClient searches flight options against an aviation upstream,
// synthesizing offers from the airline templates when the upstream is
// unusable. Same-city requests short-circuit to an empty list.
type FlightClient struct {
	api     *upstream
	tables  *Tables
	metrics *obs.Metrics
	logger  *slog.Logger
}

// NewFlightClient creates a FlightClient. An empty baseURL disables the
// live path entirely.
func NewFlightClient(baseURL string, timeout time.Duration, tables *Tables, metrics *obs.Metrics, logger *slog.Logger) *FlightClient {
	return &FlightClient{
		api:     newUpstream(baseURL, timeout),
		tables:  tables,
		metrics: metrics,
		logger:  logger,
	}
}

// flightRecord is the upstream wire shape.
type flightRecord struct {
	ID        string  `json:"id"`
	Airline   string  `json:"airline"`
	Departure string  `json:"departure"`
	Arrival   string  `json:"arrival"`
	Duration  string  `json:"duration"`
	Price     float64 `json:"price"`
	Stops     int     `json:"stops"`
}

// Search returns flight offers for the route. It never fails: upstream
// trouble is absorbed into the synthetic fallback.
func (c *FlightClient) Search(ctx context.Context, cr Criteria) []FlightOffer {
	if sameCity(cr.Origin, cr.Destination) {
		return []FlightOffer{}
	}

	offers, err := c.live(ctx, cr)
	if err == nil && len(offers) > 0 {
		if len(offers) > maxFlights {
			offers = offers[:maxFlights]
		}
		return offers
	}

	if err != nil {
		c.logger.Warn("flight upstream unavailable, using fallback",
			"origin", cr.Origin, "destination", cr.Destination, "error", err)
	}
	c.metrics.IncProviderFallbacks()
	return c.synthesize(cr)
}

func (c *FlightClient) live(ctx context.Context, cr Criteria) ([]FlightOffer, error) {
	var records []flightRecord
	err := c.api.getJSON(ctx, "/flights", map[string]string{
		"dep_iata": c.tables.AirportCode(cr.Origin),
		"arr_iata": c.tables.AirportCode(cr.Destination),
		"date":     cr.Date,
	}, &records)
	if err != nil {
		return nil, err
	}

	offers := make([]FlightOffer, 0, len(records))
	for i, r := range records {
		if strings.TrimSpace(r.Airline) == "" || r.Price <= 0 {
			continue
		}
		id := strings.TrimSpace(r.ID)
		if id == "" {
			id = fmt.Sprintf("flight_%d", i)
		}
		offers = append(offers, FlightOffer{
			ID:        id,
			Airline:   r.Airline,
			Departure: r.Departure,
			Arrival:   r.Arrival,
			Duration:  r.Duration,
			Price:     r.Price,
			Stops:     r.Stops,
		})
	}

	if len(offers) == 0 {
		return nil, fmt.Errorf("%w: no usable flight records", ErrProviderUnavailable)
	}
	return offers, nil
}

// synthesize builds deterministic offers from the airline templates.
// Price variation is seeded by the route, so repeated calls for the
// same city pair produce identical offers.
func (c *FlightClient) synthesize(cr Criteria) []FlightOffer {
	rng := routeRand("flights", cr.Origin, cr.Destination)

	offers := make([]FlightOffer, 0, len(c.tables.FallbackFlights))
	for i, f := range c.tables.FallbackFlights {
		offers = append(offers, FlightOffer{
			ID:        fmt.Sprintf("%s-%s-F%d", c.tables.AirportCode(cr.Origin), c.tables.AirportCode(cr.Destination), i+1),
			Airline:   f.Airline,
			Departure: f.Departure,
			Arrival:   f.Arrival,
			Duration:  f.Duration,
			Price:     f.BasePrice + float64(rng.Intn(800)),
			Stops:     0,
		})
	}

	if len(offers) > maxFlights {
		offers = offers[:maxFlights]
	}
	return offers
}

func sameCity(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
