package intent_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alex-user-go/tripplanner/internal/intent"
)

// stubClient is a canned LLM client.
type stubClient struct {
	response string
	err      error
}

func (s *stubClient) Complete(ctx context.Context, prompt string) (string, error) {
	return s.response, s.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}

func TestResolve_ModelPath(t *testing.T) {
	client := &stubClient{
		response: "```json\n" +
			`{"from": "Delhi", "destination": "Jaipur", "tripType": "family", "budget": 18000, "duration": 3, "travelers": 4, "preferences": ["heritage"]}` +
			"\n```",
	}
	r := intent.NewResolver(client, testLogger())

	it, err := r.Resolve(context.Background(), "family trip to Jaipur from Delhi")
	require.NoError(t, err)

	assert.Equal(t, "Delhi", it.Origin)
	assert.Equal(t, "Jaipur", it.Destination)
	assert.Equal(t, intent.TripFamily, it.TripType)
	assert.Equal(t, 18000.0, it.Budget)
	assert.Equal(t, 3, it.DurationDays)
	assert.Equal(t, 4, it.Travelers)
	assert.Equal(t, []string{"heritage"}, it.Preferences)
}

func TestResolve_ModelPathAppliesDefaults(t *testing.T) {
	// Model found the route but nothing else; defaults fill the rest.
	client := &stubClient{
		response: `{"from": "Pune", "destination": "Goa", "tripType": "honeymoon", "budget": 0, "duration": 0, "travelers": 0}`,
	}
	r := intent.NewResolver(client, testLogger())

	it, err := r.Resolve(context.Background(), "Pune to Goa")
	require.NoError(t, err)

	assert.Equal(t, intent.DefaultBudget, it.Budget)
	assert.Equal(t, intent.DefaultDuration, it.DurationDays)
	assert.Equal(t, intent.DefaultTravelers, it.Travelers)
	assert.Equal(t, intent.TripLeisure, it.TripType, "unknown trip type normalizes to leisure")
	assert.Equal(t, []string{"sightseeing"}, it.Preferences)
}

func TestResolve_FallbackOnModelError(t *testing.T) {
	client := &stubClient{err: errors.New("model timeout")}
	r := intent.NewResolver(client, testLogger())

	it, err := r.Resolve(context.Background(), "Mumbai to Goa for 4 days with 5000 rs")
	require.NoError(t, err)

	assert.Equal(t, "Mumbai", it.Origin)
	assert.Equal(t, "Goa", it.Destination)
	assert.Equal(t, 5000.0, it.Budget)
	assert.Equal(t, 4, it.DurationDays)
	assert.Equal(t, 2, it.Travelers)
	assert.Equal(t, intent.TripLeisure, it.TripType)
}

func TestResolve_FallbackOnUnusableModelOutput(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"no json at all", "I cannot plan this trip."},
		{"missing destination", `{"from": "Delhi", "destination": ""}`},
		{"wrong types", `{"from": 3, "destination": false}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := intent.NewResolver(&stubClient{response: tt.response}, testLogger())

			it, err := r.Resolve(context.Background(), "from Delhi to Mumbai, 3000 rupees")
			require.NoError(t, err)
			assert.Equal(t, "Delhi", it.Origin)
			assert.Equal(t, "Mumbai", it.Destination)
			assert.Equal(t, 3000.0, it.Budget)
		})
	}
}

func TestResolve_NilClientUsesFallback(t *testing.T) {
	r := intent.NewResolver(nil, testLogger())

	it, err := r.Resolve(context.Background(), "Kolkata to Chennai for 6 days")
	require.NoError(t, err)
	assert.Equal(t, "Kolkata", it.Origin)
	assert.Equal(t, "Chennai", it.Destination)
	assert.Equal(t, 6, it.DurationDays)
	assert.Equal(t, intent.DefaultBudget, it.Budget)
}

func TestResolve_NoDestination(t *testing.T) {
	r := intent.NewResolver(&stubClient{err: errors.New("down")}, testLogger())

	_, err := r.Resolve(context.Background(), "I want a nice vacation somewhere warm")
	require.Error(t, err)

	var parseErr *intent.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, parseErr.Input, "vacation")
}
