package providers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTables(t *testing.T) {
	tables := loadTables(t)

	assert.NotEmpty(t, tables.Airports)
	assert.NotEmpty(t, tables.Stations)
	assert.NotEmpty(t, tables.TrainRoutes)
	assert.NotEmpty(t, tables.FallbackFlights)
	assert.NotEmpty(t, tables.HotelTiers)
	assert.NotEmpty(t, tables.Generic)
}

func TestTables_CodeLookups(t *testing.T) {
	tables := loadTables(t)

	assert.Equal(t, "BOM", tables.AirportCode("Mumbai"))
	assert.Equal(t, "BOM", tables.AirportCode("mumbai"), "lookups are case-insensitive")
	assert.Equal(t, "DEL", tables.AirportCode("Atlantis"), "unknown cities default to DEL")

	assert.Equal(t, "HWH", tables.StationCode("Kolkata"))
	assert.Equal(t, "NDLS", tables.StationCode("Atlantis"))
}

func TestTables_Routes(t *testing.T) {
	tables := loadTables(t)

	forward := tables.Routes("Delhi", "Mumbai")
	require.Len(t, forward, 2)

	reverse := tables.Routes("Mumbai", "Delhi")
	assert.Equal(t, forward, reverse)

	assert.Nil(t, tables.Routes("Atlantis", "Elysium"))
}

func TestTables_ActivityTemplates(t *testing.T) {
	tables := loadTables(t)

	goa := tables.ActivityTemplates("goa")
	require.NotEmpty(t, goa)
	assert.Equal(t, "Baga Beach water sports", goa[0].Name)

	generic := tables.ActivityTemplates("Nagpur")
	require.NotEmpty(t, generic)
	for _, tmpl := range generic {
		assert.NotContains(t, tmpl.Name, "{city}")
		assert.Contains(t, tmpl.Name, "Nagpur")
	}
}
