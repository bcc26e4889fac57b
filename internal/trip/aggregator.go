package trip

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/alex-user-go/tripplanner/internal/intent"
	"github.com/alex-user-go/tripplanner/internal/providers"
)

// Aggregator fans a trip request out to the four provider clients
// concurrently and joins the results into one OptionSet. Providers
// never fail outward, so the join is unconditional: every search
// completes (with live or synthetic data) before the set is returned.
// Worst-case latency is the slowest provider's own timeout, not the
// sum of all four.
type Aggregator struct {
	flights    providers.FlightSource
	hotels     providers.HotelSource
	trains     providers.TrainSource
	activities providers.ActivitySource
	logger     *slog.Logger
	now        func() time.Time
}

// NewAggregator creates a new Aggregator.
func NewAggregator(
	flights providers.FlightSource,
	hotels providers.HotelSource,
	trains providers.TrainSource,
	activities providers.ActivitySource,
	logger *slog.Logger,
) *Aggregator {
	return &Aggregator{
		flights:    flights,
		hotels:     hotels,
		trains:     trains,
		activities: activities,
		logger:     logger,
		now:        time.Now,
	}
}

// Aggregate gathers offers from all four providers for the intent.
func (a *Aggregator) Aggregate(ctx context.Context, it intent.Intent) OptionSet {
	start := a.now()
	c := providers.Criteria{
		Origin:      it.Origin,
		Destination: it.Destination,
		Date:        start.Format("2006-01-02"),
		Nights:      it.DurationDays,
		Travelers:   it.Travelers,
		Budget:      it.Budget,
	}

	var set OptionSet
	var wg sync.WaitGroup

	// Each goroutine writes a distinct field; wg.Wait establishes the
	// happens-before edge for the reads below.
	wg.Add(1)
	go func() {
		defer wg.Done()
		set.Flights = a.flights.Search(ctx, c)
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		set.Hotels = a.hotels.Search(ctx, c)
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		set.Trains = a.trains.Search(ctx, c)
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		set.Activities = a.activities.Search(ctx, c)
	}()
	wg.Wait()

	a.logger.Info("options aggregated",
		"origin", it.Origin,
		"destination", it.Destination,
		"flights", len(set.Flights),
		"hotels", len(set.Hotels),
		"trains", len(set.Trains),
		"activities", len(set.Activities),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return set
}
