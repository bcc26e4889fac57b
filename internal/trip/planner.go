package trip

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/alex-user-go/tripplanner/internal/intent"
	"github.com/alex-user-go/tripplanner/internal/llm"
	"github.com/alex-user-go/tripplanner/internal/obs"
	"github.com/alex-user-go/tripplanner/internal/providers"
)

// Pipeline stage names used in StageError.
const (
	StageIntent    = "intent"
	StageNarrative = "narrative"
)

// StageError wraps a fatal failure from a pipeline stage. Aggregation
// and allocation are total and never produce one; only intent
// resolution and narrative generation can fail a plan.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("trip: %s stage failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Planner sequences intent resolution, provider aggregation, budget
// allocation, and narrative generation into a TripPlan. A failure at
// any stage discards all partial work; callers get a complete plan or
// a StageError, never a truncated plan.
type Planner struct {
	resolver   *intent.Resolver
	aggregator *Aggregator
	allocator  *Allocator
	advisor    *Advisor
	narrator   llm.Client
	metrics    *obs.Metrics
	logger     *slog.Logger
}

// NewPlanner creates a Planner. The advisor may be nil to skip local
// tips.
func NewPlanner(
	resolver *intent.Resolver,
	aggregator *Aggregator,
	allocator *Allocator,
	advisor *Advisor,
	narrator llm.Client,
	metrics *obs.Metrics,
	logger *slog.Logger,
) *Planner {
	return &Planner{
		resolver:   resolver,
		aggregator: aggregator,
		allocator:  allocator,
		advisor:    advisor,
		narrator:   narrator,
		metrics:    metrics,
		logger:     logger,
	}
}

// Plan runs the full pipeline for one raw request.
func (p *Planner) Plan(ctx context.Context, rawText string) (*TripPlan, error) {
	it, err := p.resolver.Resolve(ctx, rawText)
	if err != nil {
		return nil, &StageError{Stage: StageIntent, Err: err}
	}
	p.logger.Info("intent resolved",
		"origin", it.Origin,
		"destination", it.Destination,
		"budget", it.Budget,
		"days", it.DurationDays,
		"travelers", it.Travelers,
	)

	options := p.aggregator.Aggregate(ctx, it)

	breakdown, optimizations := p.allocator.Allocate(it, options)
	report := BuildReport(it, breakdown, optimizations)
	if !report.IsWithinBudget {
		p.logger.Warn("plan exceeds budget after capping",
			"budget", it.Budget,
			"estimated", breakdown.Total,
			"capped_categories", len(optimizations),
		)
	}

	var tips *LocalTips
	if p.advisor != nil {
		t, err := p.advisor.Tips(ctx, it.Destination)
		if err != nil {
			p.metrics.IncLLMErrors()
			p.logger.Warn("local tips unavailable", "destination", it.Destination, "error", err)
		} else {
			tips = &t
		}
	}

	narrative, err := p.narrator.Complete(ctx, narrativePrompt(it, options, report))
	if err != nil {
		p.metrics.IncLLMErrors()
		return nil, &StageError{Stage: StageNarrative, Err: err}
	}

	return &TripPlan{
		Intent:    it,
		Options:   options,
		Budget:    report,
		LocalTips: tips,
		Narrative: narrative,
	}, nil
}

// narrativePrompt asks the model for a day-by-day itinerary that
// respects the capped per-category budgets.
func narrativePrompt(it intent.Intent, options OptionSet, report BudgetReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Create an optimized %d-day itinerary from %s to %s within a budget of %.0f.\n\n",
		it.DurationDays, it.Origin, it.Destination, it.Budget)

	fmt.Fprintf(&b, "BUDGET BREAKDOWN (MUST FOLLOW):\n")
	fmt.Fprintf(&b, "- Flights: %.0f\n", report.Flights.Amount)
	fmt.Fprintf(&b, "- Accommodation: %.0f\n", report.Accommodation.Amount)
	fmt.Fprintf(&b, "- Activities: %.0f\n", report.Activities.Amount)
	fmt.Fprintf(&b, "- Meals: %.0f\n", report.Meals.Amount)
	fmt.Fprintf(&b, "- Local Transport: %.0f\n", report.LocalTransport.Amount)
	fmt.Fprintf(&b, "- Daily Budget: %.0f\n\n", report.DailyBudget)

	if len(report.Optimizations) > 0 {
		b.WriteString("OPTIMIZATION SUGGESTIONS:\n")
		for _, opt := range report.Optimizations {
			fmt.Fprintf(&b, "%s: %s (Save %.0f)\n", opt.Category, opt.Suggestion, opt.Savings)
		}
		b.WriteString("\n")
	}

	if len(report.Recommendations) > 0 {
		b.WriteString("RECOMMENDATIONS:\n")
		for _, rec := range report.Recommendations {
			b.WriteString(rec)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("Available Options:\n")
	fmt.Fprintf(&b, "Flights: %s\n", summarizeFlights(options.Flights))
	fmt.Fprintf(&b, "Hotels: %s\n", summarizeHotels(options.Hotels))
	fmt.Fprintf(&b, "Trains: %s\n", summarizeTrains(options.Trains))
	fmt.Fprintf(&b, "Activities: %s\n\n", summarizeActivities(options.Activities))

	b.WriteString("Create a detailed day-by-day itinerary that:\n")
	b.WriteString("1. Stays within each category budget\n")
	b.WriteString("2. Maximizes value for money\n")
	b.WriteString("3. Includes cost breakdown for each day\n")
	b.WriteString("4. Suggests specific budget-friendly options\n")
	b.WriteString("5. Provides money-saving tips\n")

	return b.String()
}

func summarizeFlights(offers []providers.FlightOffer) string {
	if len(offers) == 0 {
		return "none"
	}
	parts := make([]string, len(offers))
	for i, o := range offers {
		parts[i] = fmt.Sprintf("%s %s-%s at %.0f", o.Airline, o.Departure, o.Arrival, o.Price)
	}
	return strings.Join(parts, "; ")
}

func summarizeHotels(offers []providers.HotelOffer) string {
	if len(offers) == 0 {
		return "none"
	}
	parts := make([]string, len(offers))
	for i, o := range offers {
		parts[i] = fmt.Sprintf("%s at %.0f/night (%.1f)", o.Name, o.Price, o.Rating)
	}
	return strings.Join(parts, "; ")
}

func summarizeTrains(offers []providers.TrainOffer) string {
	if len(offers) == 0 {
		return "none"
	}
	parts := make([]string, len(offers))
	for i, o := range offers {
		parts[i] = fmt.Sprintf("%s %s sleeper %.0f", o.Number, o.Name, o.Fares.Sleeper)
	}
	return strings.Join(parts, "; ")
}

func summarizeActivities(offers []providers.ActivityOffer) string {
	if len(offers) == 0 {
		return "none"
	}
	parts := make([]string, len(offers))
	for i, o := range offers {
		parts[i] = fmt.Sprintf("%s at %.0f", o.Name, o.Price)
	}
	return strings.Join(parts, "; ")
}
