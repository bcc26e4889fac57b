package providers

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/alex-user-go/tripplanner/internal/cache"
	"github.com/alex-user-go/tripplanner/internal/obs"
)

const maxTrains = 5

// RouteKey identifies a train search in the cache: one entry per city
// pair and travel date.
type RouteKey struct {
	Origin      string
	Destination string
	Date        string
}

// TrainClient searches train services between two cities. The rail
// upstream is rate-limited, so live results are cached per route and
// date. Only live results are cached; synthetic fallbacks are cheap to
// regenerate and must not mask an upstream recovery.
type TrainClient struct {
	api     *upstream
	tables  *Tables
	cache   *cache.Store[RouteKey, []TrainOffer]
	metrics *obs.Metrics
	logger  *slog.Logger
}

// NewTrainClient creates a TrainClient backed by the given cache.
func NewTrainClient(baseURL string, timeout time.Duration, tables *Tables, store *cache.Store[RouteKey, []TrainOffer], metrics *obs.Metrics, logger *slog.Logger) *TrainClient {
	return &TrainClient{
		api:     newUpstream(baseURL, timeout),
		tables:  tables,
		cache:   store,
		metrics: metrics,
		logger:  logger,
	}
}

type trainRecord struct {
	Number    string  `json:"train_number"`
	Name      string  `json:"train_name"`
	Departure string  `json:"departure"`
	Arrival   string  `json:"arrival"`
	Duration  string  `json:"duration"`
	Sleeper   float64 `json:"sleeper_fare"`
	AC3       float64 `json:"ac3_fare"`
	AC2       float64 `json:"ac2_fare"`
}

// Search returns train offers for the route, live or synthetic.
// Same-city requests return an empty list.
func (c *TrainClient) Search(ctx context.Context, cr Criteria) []TrainOffer {
	if sameCity(cr.Origin, cr.Destination) {
		return []TrainOffer{}
	}

	key := RouteKey{
		Origin:      strings.ToLower(strings.TrimSpace(cr.Origin)),
		Destination: strings.ToLower(strings.TrimSpace(cr.Destination)),
		Date:        cr.Date,
	}
	if offers, ok := c.cache.Get(key); ok {
		c.metrics.IncCacheHits()
		return offers
	}

	offers, err := c.live(ctx, cr)
	if err == nil && len(offers) > 0 {
		if len(offers) > maxTrains {
			offers = offers[:maxTrains]
		}
		c.cache.Put(key, offers)
		return offers
	}

	if err != nil {
		c.logger.Warn("train upstream unavailable, using fallback",
			"origin", cr.Origin, "destination", cr.Destination, "error", err)
	}
	c.metrics.IncProviderFallbacks()
	return c.synthesize(cr)
}

func (c *TrainClient) live(ctx context.Context, cr Criteria) ([]TrainOffer, error) {
	var records []trainRecord
	err := c.api.getJSON(ctx, "/trains", map[string]string{
		"from": c.tables.StationCode(cr.Origin),
		"to":   c.tables.StationCode(cr.Destination),
		"date": cr.Date,
	}, &records)
	if err != nil {
		return nil, err
	}

	offers := make([]TrainOffer, 0, len(records))
	for _, r := range records {
		if strings.TrimSpace(r.Number) == "" || strings.TrimSpace(r.Name) == "" {
			continue
		}
		fares := TrainFares{Sleeper: r.Sleeper, AC3: r.AC3, AC2: r.AC2}
		if fares.Sleeper <= 0 {
			fares.Sleeper = 500
		}
		if fares.AC3 <= 0 {
			fares.AC3 = 800
		}
		if fares.AC2 <= 0 {
			fares.AC2 = 1200
		}
		offers = append(offers, TrainOffer{
			Number:       r.Number,
			Name:         r.Name,
			Departure:    r.Departure,
			Arrival:      r.Arrival,
			Duration:     r.Duration,
			Fares:        fares,
			Availability: "Available",
		})
	}

	if len(offers) == 0 {
		return nil, fmt.Errorf("%w: no usable train records", ErrProviderUnavailable)
	}
	return offers, nil
}

// synthesize builds offers from the known route table, or a generic
// pair of services for routes the table does not cover. Higher-class
// fares scale from the sleeper base fare.
func (c *TrainClient) synthesize(cr Criteria) []TrainOffer {
	routes := c.tables.Routes(cr.Origin, cr.Destination)
	if routes == nil {
		routes = []TrainRoute{
			{Number: "12345", Name: titleCase(cr.Origin) + " Express", Departure: "06:00", Arrival: "18:00", Duration: "12h 00m", BaseFare: 600},
			{Number: "12346", Name: titleCase(cr.Destination) + " Mail", Departure: "22:30", Arrival: "10:30", Duration: "12h 00m", BaseFare: 550},
		}
	}

	offers := make([]TrainOffer, 0, len(routes))
	for _, r := range routes {
		offers = append(offers, TrainOffer{
			Number:    r.Number,
			Name:      r.Name,
			Departure: r.Departure,
			Arrival:   r.Arrival,
			Duration:  r.Duration,
			Fares: TrainFares{
				Sleeper: r.BaseFare,
				AC3:     math.Round(r.BaseFare * 1.6),
				AC2:     math.Round(r.BaseFare * 2.4),
			},
			Availability: "Available",
		})
	}

	if len(offers) > maxTrains {
		offers = offers[:maxTrains]
	}
	return offers
}
