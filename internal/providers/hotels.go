package providers

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/alex-user-go/tripplanner/internal/obs"
)

const maxHotels = 5

// HotelClient searches hotel options at the destination. The synthetic
// fallback derives nightly rates from the trip budget, so downstream
// cost calculations stay plausible even with no live data.
type HotelClient struct {
	api     *upstream
	tables  *Tables
	metrics *obs.Metrics
	logger  *slog.Logger
}

// NewHotelClient creates a HotelClient.
func NewHotelClient(baseURL string, timeout time.Duration, tables *Tables, metrics *obs.Metrics, logger *slog.Logger) *HotelClient {
	return &HotelClient{
		api:     newUpstream(baseURL, timeout),
		tables:  tables,
		metrics: metrics,
		logger:  logger,
	}
}

type hotelRecord struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Price     float64  `json:"price"`
	Rating    float64  `json:"rating"`
	Location  string   `json:"location"`
	Amenities []string `json:"amenities"`
}

// Search returns hotel offers for the destination, live or synthetic.
func (c *HotelClient) Search(ctx context.Context, cr Criteria) []HotelOffer {
	offers, err := c.live(ctx, cr)
	if err == nil && len(offers) > 0 {
		if len(offers) > maxHotels {
			offers = offers[:maxHotels]
		}
		return offers
	}

	if err != nil {
		c.logger.Warn("hotel upstream unavailable, using fallback",
			"destination", cr.Destination, "error", err)
	}
	c.metrics.IncProviderFallbacks()
	return c.synthesize(cr)
}

func (c *HotelClient) live(ctx context.Context, cr Criteria) ([]HotelOffer, error) {
	var records []hotelRecord
	err := c.api.getJSON(ctx, "/hotels", map[string]string{
		"city":   cr.Destination,
		"nights": fmt.Sprintf("%d", cr.Nights),
		"adults": fmt.Sprintf("%d", cr.Travelers),
	}, &records)
	if err != nil {
		return nil, err
	}

	offers := make([]HotelOffer, 0, len(records))
	for i, r := range records {
		if strings.TrimSpace(r.Name) == "" || r.Price <= 0 {
			continue
		}
		id := strings.TrimSpace(r.ID)
		if id == "" {
			id = fmt.Sprintf("hotel_%d", i)
		}
		location := r.Location
		if location == "" {
			location = titleCase(cr.Destination)
		}
		offers = append(offers, HotelOffer{
			ID:        id,
			Name:      r.Name,
			Price:     r.Price,
			Rating:    r.Rating,
			Location:  location,
			Amenities: r.Amenities,
		})
	}

	if len(offers) == 0 {
		return nil, fmt.Errorf("%w: no usable hotel records", ErrProviderUnavailable)
	}
	return offers, nil
}

// synthesize builds offers from the hotel tiers. The mid-tier nightly
// rate is a quarter of the budget spread over the stay; the other tiers
// scale from it.
func (c *HotelClient) synthesize(cr Criteria) []HotelOffer {
	nights := cr.Nights
	if nights < 1 {
		nights = 1
	}
	nightly := cr.Budget * 0.25 / float64(nights)
	if nightly <= 0 {
		nightly = 1500
	}

	rng := routeRand("hotels", cr.Destination, cr.Date)
	city := titleCase(cr.Destination)

	offers := make([]HotelOffer, 0, len(c.tables.HotelTiers))
	for i, tier := range c.tables.HotelTiers {
		offers = append(offers, HotelOffer{
			ID:        fmt.Sprintf("%s-H%d", c.tables.AirportCode(cr.Destination), i+1),
			Name:      fmt.Sprintf("%s %s", city, tier.Name),
			Price:     math.Round(nightly*tier.Multiplier) + float64(rng.Intn(200)),
			Rating:    tier.Rating,
			Location:  city,
			Amenities: tier.Amenities,
		})
	}
	return offers
}
