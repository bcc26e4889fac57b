package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"time"
)

// fakeUpstream serves plausible travel data with random latency and a
// configurable failure rate, mirroring the flakiness of the real
// upstreams.
type fakeUpstream struct {
	rng         *rand.Rand
	logger      *slog.Logger
	failureRate float64
	baseLatency time.Duration
}

func newFakeUpstream(logger *slog.Logger) *fakeUpstream {
	failureRate := 0.1
	if v := os.Getenv("FAILURE_RATE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 && f <= 1 {
			failureRate = f
		}
	}

	return &fakeUpstream{
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:      logger,
		failureRate: failureRate,
		baseLatency: 50 * time.Millisecond,
	}
}

// simulate injects latency and decides whether this request fails.
// Returns false when a failure response has been written.
func (u *fakeUpstream) simulate(w http.ResponseWriter, r *http.Request) bool {
	latency := u.baseLatency + time.Duration(u.rng.Intn(150))*time.Millisecond
	select {
	case <-time.After(latency):
	case <-r.Context().Done():
		return false
	}

	if u.rng.Float64() < u.failureRate {
		u.logger.Info("injected failure", "path", r.URL.Path)
		http.Error(w, "upstream unavailable", http.StatusServiceUnavailable)
		return false
	}
	return true
}

func (u *fakeUpstream) flightsHandler(w http.ResponseWriter, r *http.Request) {
	if !u.simulate(w, r) {
		return
	}

	dep := r.URL.Query().Get("dep_iata")
	arr := r.URL.Query().Get("arr_iata")
	airlines := []string{"IndiGo", "SpiceJet", "Air India", "Vistara"}

	type flight struct {
		ID        string  `json:"id"`
		Airline   string  `json:"airline"`
		Departure string  `json:"departure"`
		Arrival   string  `json:"arrival"`
		Duration  string  `json:"duration"`
		Price     float64 `json:"price"`
		Stops     int     `json:"stops"`
	}

	flights := make([]flight, 3)
	for i := range flights {
		hour := 6 + u.rng.Intn(14)
		flights[i] = flight{
			ID:        fmt.Sprintf("%s%s%d", dep, arr, 100+u.rng.Intn(900)),
			Airline:   airlines[u.rng.Intn(len(airlines))],
			Departure: fmt.Sprintf("%02d:%02d", hour, u.rng.Intn(60)),
			Arrival:   fmt.Sprintf("%02d:%02d", hour+2, u.rng.Intn(60)),
			Duration:  "2h 15m",
			Price:     float64(3000 + u.rng.Intn(4000)),
			Stops:     0,
		}
	}
	writeJSON(w, u.logger, flights)
}

func (u *fakeUpstream) hotelsHandler(w http.ResponseWriter, r *http.Request) {
	if !u.simulate(w, r) {
		return
	}

	city := r.URL.Query().Get("city")

	type hotel struct {
		ID        string   `json:"id"`
		Name      string   `json:"name"`
		Price     float64  `json:"price"`
		Rating    float64  `json:"rating"`
		Location  string   `json:"location"`
		Amenities []string `json:"amenities"`
	}

	names := []string{"Grand Palace", "City Center Inn", "Riverside Retreat", "Budget Stay", "Heritage Haveli"}
	hotels := make([]hotel, 4)
	for i := range hotels {
		hotels[i] = hotel{
			ID:        fmt.Sprintf("h_%d", 1000+u.rng.Intn(9000)),
			Name:      fmt.Sprintf("%s %s", city, names[u.rng.Intn(len(names))]),
			Price:     float64(1000 + u.rng.Intn(5000)),
			Rating:    3.5 + u.rng.Float64()*1.5,
			Location:  city,
			Amenities: []string{"WiFi", "AC", "Room Service"},
		}
	}
	writeJSON(w, u.logger, hotels)
}

func (u *fakeUpstream) trainsHandler(w http.ResponseWriter, r *http.Request) {
	if !u.simulate(w, r) {
		return
	}

	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")

	type train struct {
		Number    string  `json:"train_number"`
		Name      string  `json:"train_name"`
		Departure string  `json:"departure"`
		Arrival   string  `json:"arrival"`
		Duration  string  `json:"duration"`
		Sleeper   float64 `json:"sleeper_fare"`
		AC3       float64 `json:"ac3_fare"`
		AC2       float64 `json:"ac2_fare"`
	}

	trains := make([]train, 3)
	for i := range trains {
		base := float64(400 + u.rng.Intn(1200))
		trains[i] = train{
			Number:    strconv.Itoa(12000 + u.rng.Intn(1000)),
			Name:      fmt.Sprintf("%s %s Express", from, to),
			Departure: fmt.Sprintf("%02d:%02d", u.rng.Intn(24), u.rng.Intn(60)),
			Arrival:   fmt.Sprintf("%02d:%02d", u.rng.Intn(24), u.rng.Intn(60)),
			Duration:  fmt.Sprintf("%dh %02dm", 8+u.rng.Intn(20), u.rng.Intn(60)),
			Sleeper:   base,
			AC3:       base * 1.6,
			AC2:       base * 2.4,
		}
	}
	writeJSON(w, u.logger, trains)
}

func (u *fakeUpstream) activitiesHandler(w http.ResponseWriter, r *http.Request) {
	if !u.simulate(w, r) {
		return
	}

	city := r.URL.Query().Get("city")

	type activity struct {
		Name        string  `json:"name"`
		Price       float64 `json:"price"`
		Duration    string  `json:"duration"`
		Rating      float64 `json:"rating"`
		Category    string  `json:"category"`
		Description string  `json:"description"`
	}

	kinds := []struct{ name, category string }{
		{"city sightseeing tour", "Sightseeing"},
		{"heritage walk", "Heritage"},
		{"street food trail", "Food"},
		{"sunset river cruise", "Leisure"},
		{"museum circuit", "Culture"},
		{"cycling tour", "Adventure"},
	}

	activities := make([]activity, len(kinds))
	for i, k := range kinds {
		activities[i] = activity{
			Name:        fmt.Sprintf("%s %s", city, k.name),
			Price:       float64(100 + u.rng.Intn(900)),
			Duration:    "2-3 hours",
			Rating:      3.8 + u.rng.Float64()*1.2,
			Category:    k.category,
			Description: fmt.Sprintf("Popular %s experience in %s", k.category, city),
		}
	}
	writeJSON(w, u.logger, activities)
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}
