package trip

import (
	"math"

	"github.com/alex-user-go/tripplanner/internal/intent"
	"github.com/alex-user-go/tripplanner/internal/providers"
)

// Baseline cost rates (currency units).
const (
	defaultNightlyRate   = 3000.0 // used when no hotel offers exist
	mealRatePerPersonDay = 800.0
	transportRatePerDay  = 500.0
	topActivityCount     = 3
)

// categoryCap is one step of the capping pass: a ceiling expressed as
// a fraction of the total budget, plus the suggestion recorded when
// the cap fires.
type categoryCap struct {
	category   string
	ceiling    float64
	suggestion string
}

// Capping order is fixed: accommodation, flights, activities, meals.
// Each ceiling is computed against the original budget, not a running
// remainder, so a plan can stay over budget after capping; the report
// surfaces that through a negative Savings value.
var categoryCaps = []categoryCap{
	{"Accommodation", 0.40, "Switch to budget hotels or homestays"},
	{"Flights", 0.35, "Book 2-3 days earlier or choose nearby airports"},
	{"Activities", 0.20, "Mix free attractions with paid experiences"},
	{"Meals", 0.25, "Try local street food and budget restaurants"},
}

// Allocator computes cost breakdowns and caps categories when the
// baseline exceeds the budget. It is deterministic and total: any
// valid Intent/OptionSet pair produces a result without error.
type Allocator struct{}

// NewAllocator creates an Allocator.
func NewAllocator() *Allocator {
	return &Allocator{}
}

// Allocate computes the baseline breakdown for the intent and options.
// If the baseline total exceeds the budget, categories are clamped to
// their ceilings in fixed order and one OptimizationRecord is appended
// per capped category. LocalTransport is never capped. Total is
// recomputed as the sum of the five categories.
func (a *Allocator) Allocate(it intent.Intent, options OptionSet) (CostBreakdown, []OptimizationRecord) {
	bd := a.baseline(it, options)

	if bd.Total <= it.Budget {
		return bd, nil
	}

	records := make([]OptimizationRecord, 0, len(categoryCaps))
	for _, step := range categoryCaps {
		limit := it.Budget * step.ceiling
		value := categoryValue(&bd, step.category)
		if *value > limit {
			records = append(records, OptimizationRecord{
				Category:   step.category,
				Suggestion: step.suggestion,
				Savings:    *value - limit,
			})
			*value = limit
		}
	}

	bd.Total = bd.Flights + bd.Accommodation + bd.Activities + bd.Meals + bd.LocalTransport
	return bd, records
}

// baseline computes the unconstrained cost estimate: cheapest flight
// for the whole party, cheapest hotel for the whole stay, the top
// three activity prices, and fixed meal and local-transport rates.
func (a *Allocator) baseline(it intent.Intent, options OptionSet) CostBreakdown {
	days := float64(it.DurationDays)
	travelers := float64(it.Travelers)

	var flights float64
	if len(options.Flights) > 0 {
		flights = cheapestFlight(options.Flights) * travelers
	}

	nightly := defaultNightlyRate
	if len(options.Hotels) > 0 {
		nightly = cheapestHotel(options.Hotels)
	}
	accommodation := nightly * days

	activities := topActivityCost(options.Activities, topActivityCount)
	meals := mealRatePerPersonDay * travelers * days
	localTransport := transportRatePerDay * days

	return CostBreakdown{
		Flights:        flights,
		Accommodation:  accommodation,
		Activities:     activities,
		Meals:          meals,
		LocalTransport: localTransport,
		Total:          flights + accommodation + activities + meals + localTransport,
	}
}

// BuildReport derives the caller-facing summary from an allocation:
// daily budget, per-category budget shares, and whether the estimate
// fits the budget.
func BuildReport(it intent.Intent, bd CostBreakdown, records []OptimizationRecord) BudgetReport {
	share := func(amount float64) CategoryShare {
		return CategoryShare{
			Amount:     amount,
			Percentage: int(math.Round(amount / it.Budget * 100)),
		}
	}

	return BudgetReport{
		TotalBudget:     it.Budget,
		EstimatedCost:   bd.Total,
		IsWithinBudget:  bd.Total <= it.Budget,
		Savings:         it.Budget - bd.Total,
		DailyBudget:     math.Floor(it.Budget / float64(it.DurationDays)),
		Flights:         share(bd.Flights),
		Accommodation:   share(bd.Accommodation),
		Activities:      share(bd.Activities),
		Meals:           share(bd.Meals),
		LocalTransport:  share(bd.LocalTransport),
		Optimizations:   records,
		Recommendations: recommendations(it),
	}
}

// recommendations produces deterministic advice strings keyed off the
// budget size, trip length, and destination.
func recommendations(it intent.Intent) []string {
	var recs []string

	switch {
	case it.Budget < 15000:
		recs = append(recs,
			"Consider hostels or budget hotels to save on accommodation",
			"Use public transport and walk when possible",
			"Look for free walking tours and public attractions",
		)
	case it.Budget > 50000:
		recs = append(recs,
			"You can afford premium experiences and hotels",
			"Consider private tours and fine dining options",
		)
	}

	if it.DurationDays >= 7 {
		recs = append(recs,
			"Book weekly hotel rates for better deals",
			"Consider multi-city passes for attractions",
		)
	}

	recs = append(recs,
		"Visit local markets in "+it.Destination+" for authentic and affordable meals",
		"Book activities in advance for better prices in "+it.Destination,
	)

	return recs
}

func categoryValue(bd *CostBreakdown, category string) *float64 {
	switch category {
	case "Accommodation":
		return &bd.Accommodation
	case "Flights":
		return &bd.Flights
	case "Activities":
		return &bd.Activities
	default:
		return &bd.Meals
	}
}

func cheapestFlight(offers []providers.FlightOffer) float64 {
	min := offers[0].Price
	for _, o := range offers[1:] {
		if o.Price < min {
			min = o.Price
		}
	}
	return min
}

func cheapestHotel(offers []providers.HotelOffer) float64 {
	min := offers[0].Price
	for _, o := range offers[1:] {
		if o.Price < min {
			min = o.Price
		}
	}
	return min
}

// topActivityCost sums the prices of the first n offers. Providers
// return their offers ranked, so the head of the list is the set a
// traveler would actually book.
func topActivityCost(offers []providers.ActivityOffer, n int) float64 {
	var total float64
	for i := 0; i < n && i < len(offers); i++ {
		total += offers[i].Price
	}
	return total
}
