package providers_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alex-user-go/tripplanner/internal/obs"
	"github.com/alex-user-go/tripplanner/internal/providers"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testMetrics() *obs.Metrics {
	return obs.NewMetrics(testLogger())
}

func loadTables(t *testing.T) *providers.Tables {
	t.Helper()
	tables, err := providers.LoadTables()
	require.NoError(t, err)
	return tables
}

func testCriteria() providers.Criteria {
	return providers.Criteria{
		Origin:      "Delhi",
		Destination: "Mumbai",
		Date:        "2026-03-01",
		Nights:      3,
		Travelers:   2,
		Budget:      20000,
	}
}

func TestFlightClient_SameCityShortCircuit(t *testing.T) {
	c := providers.NewFlightClient("", time.Second, loadTables(t), testMetrics(), testLogger())

	offers := c.Search(context.Background(), providers.Criteria{
		Origin:      "Mumbai",
		Destination: "mumbai",
	})

	require.NotNil(t, offers)
	assert.Empty(t, offers)
}

func TestFlightClient_LivePath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/flights", r.URL.Path)
		assert.Equal(t, "DEL", r.URL.Query().Get("dep_iata"))
		assert.Equal(t, "BOM", r.URL.Query().Get("arr_iata"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": "6E101", "airline": "IndiGo", "departure": "09:00", "arrival": "11:10", "duration": "2h 10m", "price": 4200, "stops": 0},
			{"id": "", "airline": "SpiceJet", "departure": "12:00", "arrival": "14:15", "duration": "2h 15m", "price": 3900, "stops": 0},
			{"id": "bad", "airline": "", "price": 1000},
			{"id": "AI404", "airline": "Air India", "departure": "16:00", "arrival": "18:20", "duration": "2h 20m", "price": 5100, "stops": 0},
			{"id": "UK990", "airline": "Vistara", "departure": "19:00", "arrival": "21:10", "duration": "2h 10m", "price": 6000, "stops": 0}
		]`))
	}))
	defer srv.Close()

	c := providers.NewFlightClient(srv.URL, time.Second, loadTables(t), testMetrics(), testLogger())
	offers := c.Search(context.Background(), testCriteria())

	// Invalid record dropped, remainder truncated to three.
	require.Len(t, offers, 3)
	assert.Equal(t, "6E101", offers[0].ID)
	assert.Equal(t, "flight_1", offers[1].ID, "missing upstream id gets an index-based one")
	assert.Equal(t, "Air India", offers[2].Airline)
}

func TestFlightClient_FallbackOnUpstreamFailure(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, "boom", http.StatusInternalServerError)
			},
		},
		{
			name: "empty payload",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`[]`))
			},
		},
		{
			name: "malformed payload",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"unexpected": "shape"`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			c := providers.NewFlightClient(srv.URL, time.Second, loadTables(t), testMetrics(), testLogger())
			offers := c.Search(context.Background(), testCriteria())

			require.NotEmpty(t, offers)
			for _, o := range offers {
				assert.NotEmpty(t, o.Airline)
				assert.Greater(t, o.Price, 0.0)
			}
		})
	}
}

func TestFlightClient_FallbackIsDeterministic(t *testing.T) {
	c := providers.NewFlightClient("", time.Second, loadTables(t), testMetrics(), testLogger())

	first := c.Search(context.Background(), testCriteria())
	second := c.Search(context.Background(), testCriteria())
	assert.Equal(t, first, second)

	// A different route gets its own price variation.
	other := c.Search(context.Background(), providers.Criteria{
		Origin:      "Delhi",
		Destination: "Goa",
	})
	require.Len(t, other, len(first))
	assert.NotEqual(t, first[0].ID, other[0].ID)
}

func TestFlightClient_FallbackOnTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := providers.NewFlightClient(srv.URL, 20*time.Millisecond, loadTables(t), testMetrics(), testLogger())

	start := time.Now()
	offers := c.Search(context.Background(), testCriteria())
	assert.Less(t, time.Since(start), 150*time.Millisecond)
	require.NotEmpty(t, offers)
}
