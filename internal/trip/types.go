// Package trip contains the planning pipeline: concurrent provider
// aggregation, budget allocation with category capping, the travel
// advisor, and the orchestrator that sequences the stages into a
// finished TripPlan.
package trip

import (
	"github.com/alex-user-go/tripplanner/internal/intent"
	"github.com/alex-user-go/tripplanner/internal/providers"
)

// OptionSet is the complete set of offers gathered for one request.
// It is assembled once by the aggregator and read-only afterward.
type OptionSet struct {
	Flights    []providers.FlightOffer   `json:"flights"`
	Hotels     []providers.HotelOffer    `json:"hotels"`
	Trains     []providers.TrainOffer    `json:"trains"`
	Activities []providers.ActivityOffer `json:"activities"`
}

// CostBreakdown is the five-category monetary allocation for a plan.
// Total is always the sum of the five categories.
type CostBreakdown struct {
	Flights        float64 `json:"flights"`
	Accommodation  float64 `json:"accommodation"`
	Activities     float64 `json:"activities"`
	Meals          float64 `json:"meals"`
	LocalTransport float64 `json:"local_transport"`
	Total          float64 `json:"total"`
}

// OptimizationRecord describes one capped category.
type OptimizationRecord struct {
	Category   string  `json:"category"`
	Suggestion string  `json:"suggestion"`
	Savings    float64 `json:"savings"`
}

// CategoryShare is a category amount with its share of the total
// budget.
type CategoryShare struct {
	Amount     float64 `json:"amount"`
	Percentage int     `json:"percentage"`
}

// BudgetReport is the caller-facing budget summary derived from a
// breakdown. Savings may be negative when capping still leaves the
// plan over budget; that is surfaced, not hidden.
type BudgetReport struct {
	TotalBudget     float64              `json:"total_budget"`
	EstimatedCost   float64              `json:"estimated_cost"`
	IsWithinBudget  bool                 `json:"is_within_budget"`
	Savings         float64              `json:"savings"`
	DailyBudget     float64              `json:"daily_budget"`
	Flights         CategoryShare        `json:"flights"`
	Accommodation   CategoryShare        `json:"accommodation"`
	Activities      CategoryShare        `json:"activities"`
	Meals           CategoryShare        `json:"meals"`
	LocalTransport  CategoryShare        `json:"local_transport"`
	Optimizations   []OptimizationRecord `json:"optimizations"`
	Recommendations []string             `json:"recommendations"`
}

// LocalTips is the advisor's destination guidance, one section per
// topic.
type LocalTips struct {
	Cultural       string `json:"cultural"`
	Transportation string `json:"transportation"`
	Food           string `json:"food"`
	Shopping       string `json:"shopping"`
	Emergency      string `json:"emergency"`
	Tipping        string `json:"tipping"`
}

// TripPlan is the terminal aggregate of the pipeline, constructed once
// and never mutated after construction.
type TripPlan struct {
	Intent    intent.Intent `json:"intent"`
	Options   OptionSet     `json:"options"`
	Budget    BudgetReport  `json:"budget"`
	LocalTips *LocalTips    `json:"local_tips,omitempty"`
	Narrative string        `json:"narrative"`
}
