package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/hazard-risk-service/internal/catalog"
	"github.com/couchcryptid/hazard-risk-service/internal/domain"
)

func TestEstimatePrecipitation(t *testing.T) {
	tests := []struct {
		name     string
		weather  domain.WeatherObservation
		expected float64
	}{
		{"defaults", domain.DefaultWeather(), 0},
		{"rain", domain.WeatherObservation{Condition: "rain", HumidityPct: 50, PressureHPa: 1013}, 50},
		{"thunderstorm", domain.WeatherObservation{Condition: "thunderstorm", HumidityPct: 50, PressureHPa: 1013}, 75},
		{"drizzle", domain.WeatherObservation{Condition: "drizzle", HumidityPct: 50, PressureHPa: 1013}, 15},
		{"humid", domain.WeatherObservation{Condition: "clear", HumidityPct: 85, PressureHPa: 1013}, 10},
		{"very humid low pressure", domain.WeatherObservation{Condition: "clear", HumidityPct: 95, PressureHPa: 975}, 35},
		{"slightly low pressure", domain.WeatherObservation{Condition: "clouds", HumidityPct: 50, PressureHPa: 995}, 5},
		{"capped", domain.WeatherObservation{Condition: "rain storm", HumidityPct: 95, PressureHPa: 970}, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, estimatePrecipitation(tt.weather))
		})
	}
}

func TestRiverBonus(t *testing.T) {
	rivers := catalog.Default().Rivers()

	t.Run("at river reference point", func(t *testing.T) {
		bonus, factor, ok := riverBonus(rivers, domain.Coordinate{Lat: 26.2, Lon: 90.6})
		require.True(t, ok)
		assert.Equal(t, 20.0, bonus)
		assert.Equal(t, "Near Brahmaputra river system", factor)
	})

	t.Run("first river in list order wins", func(t *testing.T) {
		points := []catalog.ReferencePoint{
			{Name: "Far", Center: domain.Coordinate{Lat: 0, Lon: 0.3}, RadiusMeters: 50000, Weight: 10},
			{Name: "Near", Center: domain.Coordinate{Lat: 0, Lon: 0.01}, RadiusMeters: 50000, Weight: 10},
		}
		_, factor, ok := riverBonus(points, domain.Coordinate{})
		require.True(t, ok)
		assert.Equal(t, "Near Far river system", factor)
	})

	t.Run("no river nearby", func(t *testing.T) {
		_, _, ok := riverBonus(rivers, offshore)
		assert.False(t, ok)
	})
}

func TestCoastalProximity(t *testing.T) {
	coast := catalog.Default().Coastline()

	t.Run("on a coastal point", func(t *testing.T) {
		ce := coastalProximity(coast, domain.Coordinate{Lat: 20.3, Lon: 85.8})
		assert.True(t, ce.coastal)
		assert.Zero(t, ce.nearestM)
		assert.Equal(t, 25.0, ce.bonus)
	})

	t.Run("minimum bonus near the limit", func(t *testing.T) {
		ce := coastalProximity(coast, domain.Coordinate{Lat: 20.3 - 0.89, Lon: 85.8})
		require.True(t, ce.coastal)
		assert.Equal(t, 5.0, ce.bonus)
	})

	t.Run("inland", func(t *testing.T) {
		ce := coastalProximity(coast, domain.Coordinate{Lat: 28.6139, Lon: 77.2090})
		assert.False(t, ce.coastal)
		assert.Zero(t, ce.bonus)
	})

	t.Run("empty coastline", func(t *testing.T) {
		assert.False(t, coastalProximity(nil, domain.Coordinate{}).coastal)
	})
}

func TestFloodTerrain(t *testing.T) {
	tests := []struct {
		name     string
		coord    domain.Coordinate
		coastal  bool
		expected float64
		factors  []string
	}{
		{"himalaya", domain.Coordinate{Lat: 30, Lon: 79}, false, 5, []string{"Himalayan region - steep terrain"}},
		{"western ghats", domain.Coordinate{Lat: 15, Lon: 74}, false, 8, []string{"Western Ghats - hilly terrain"}},
		{"eastern ghats coast", domain.Coordinate{Lat: 17, Lon: 82}, true, 16, []string{"Eastern Ghats region", "Coastal plain - low elevation"}},
		{"western ghats inland edge", domain.Coordinate{Lat: 15, Lon: 77.5}, false, 8, []string{"Western Ghats - hilly terrain"}},
		{"plains", domain.Coordinate{Lat: 25, Lon: 80}, false, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, factors := floodTerrain(tt.coord, tt.coastal)
			assert.Equal(t, tt.expected, score)
			assert.Equal(t, tt.factors, factors)
		})
	}
}

func TestWithinEach_SumsAllMatches(t *testing.T) {
	points := []catalog.ReferencePoint{
		{Name: "A", Center: domain.Coordinate{}, RadiusMeters: 100000, Weight: 20},
		{Name: "B", Center: domain.Coordinate{}, RadiusMeters: 100000, Weight: 10},
		{Name: "C", Center: domain.Coordinate{Lat: 10}, RadiusMeters: 100000, Weight: 10},
	}
	score, factors := withinEach(points, domain.Coordinate{}, "Near %s - unstable slopes")
	assert.Equal(t, 30.0, score)
	assert.Equal(t, []string{"Near A - unstable slopes", "Near B - unstable slopes"}, factors)
}

func TestAridClimate(t *testing.T) {
	tests := []struct {
		name     string
		coord    domain.Coordinate
		expected float64
		factor   string
	}{
		{"thar", domain.Coordinate{Lat: 27, Lon: 72}, 20, "Arid climate zone"},
		{"marathwada", domain.Coordinate{Lat: 19, Lon: 76}, 15, "Rain shadow region"},
		{"north karnataka", domain.Coordinate{Lat: 15.5, Lon: 76}, 12, "Semi-arid region"},
		{"overlap takes first match", domain.Coordinate{Lat: 17, Lon: 76}, 15, "Rain shadow region"},
		{"kerala", domain.Coordinate{Lat: 10, Lon: 76}, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, factor := aridClimate(tt.coord)
			assert.Equal(t, tt.expected, score)
			assert.Equal(t, tt.factor, factor)
		})
	}
}
