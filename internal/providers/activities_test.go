package providers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alex-user-go/tripplanner/internal/providers"
)

func TestActivityClient_LivePath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/activities", r.URL.Path)
		assert.Equal(t, "Mumbai", r.URL.Query().Get("city"))
		_, _ = w.Write([]byte(`[
			{"name": "Gateway of India walk", "price": 200, "duration": "2-3 hours", "rating": 4.5, "category": "Sightseeing", "description": "Iconic waterfront"},
			{"name": "Elephanta Caves ferry", "price": 450},
			{"name": "", "price": 300}
		]`))
	}))
	defer srv.Close()

	c := providers.NewActivityClient(srv.URL, time.Second, loadTables(t), testMetrics(), testLogger())
	offers := c.Search(context.Background(), testCriteria())

	require.Len(t, offers, 2)
	assert.Equal(t, "Gateway of India walk", offers[0].Name)

	// Missing optional fields get defaults.
	assert.Equal(t, 4.0, offers[1].Rating)
	assert.Equal(t, "Attraction", offers[1].Category)
	assert.Equal(t, "Popular attraction in Mumbai", offers[1].Description)
}

func TestActivityClient_CatalogFallback(t *testing.T) {
	c := providers.NewActivityClient("", time.Second, loadTables(t), testMetrics(), testLogger())

	offers := c.Search(context.Background(), providers.Criteria{Destination: "Goa"})

	require.Len(t, offers, 3)
	assert.Equal(t, "Baga Beach water sports", offers[0].Name)
	for _, o := range offers {
		assert.GreaterOrEqual(t, o.Price, 150.0)
		assert.GreaterOrEqual(t, o.Rating, 3.8)
		assert.LessOrEqual(t, o.Rating, 4.7)
	}
}

func TestActivityClient_GenericFallbackSubstitutesCity(t *testing.T) {
	c := providers.NewActivityClient("", time.Second, loadTables(t), testMetrics(), testLogger())

	offers := c.Search(context.Background(), providers.Criteria{Destination: "indore"})

	require.Len(t, offers, 4)
	assert.Equal(t, "Indore city sightseeing tour", offers[0].Name)
	assert.Equal(t, "Indore local market walk", offers[1].Name)
}

func TestActivityClient_FallbackIsDeterministic(t *testing.T) {
	c := providers.NewActivityClient("", time.Second, loadTables(t), testMetrics(), testLogger())

	first := c.Search(context.Background(), providers.Criteria{Destination: "Jaipur"})
	second := c.Search(context.Background(), providers.Criteria{Destination: "Jaipur"})
	assert.Equal(t, first, second)
}
