package pipeline_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/hazard-risk-service/internal/catalog"
	"github.com/couchcryptid/hazard-risk-service/internal/domain"
	"github.com/couchcryptid/hazard-risk-service/internal/observability"
	"github.com/couchcryptid/hazard-risk-service/internal/pipeline"
	"github.com/couchcryptid/hazard-risk-service/internal/risk"
)

// --- mocks ---

type mockWeather struct {
	obs   domain.WeatherObservation
	err   error
	delay time.Duration
	calls atomic.Int32
}

func (m *mockWeather) CurrentWeather(ctx context.Context, _ domain.Coordinate) (domain.WeatherObservation, error) {
	m.calls.Add(1)
	if m.delay > 0 {
		select {
		case <-time.After(m.delay):
		case <-ctx.Done():
			return domain.WeatherObservation{}, ctx.Err()
		}
	}
	return m.obs, m.err
}

type mockSeismic struct {
	events   []domain.SeismicEvent
	err      error
	radius   float64
	readyErr error
}

func (m *mockSeismic) RecentEvents(_ context.Context, _ domain.Coordinate, radiusKm float64) ([]domain.SeismicEvent, error) {
	m.radius = radiusKm
	return m.events, m.err
}

func (m *mockSeismic) CheckReadiness(_ context.Context) error { return m.readyErr }

var november = time.Date(2025, time.November, 15, 12, 0, 0, 0, time.UTC)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newAssessor(w domain.WeatherProvider, s domain.SeismicProvider, settings pipeline.Settings) *pipeline.Assessor {
	engine := risk.NewEngine(catalog.Default(),
		risk.WithClock(clockwork.NewFakeClockAt(november)),
		risk.WithLogger(discardLogger()),
	)
	return pipeline.New(engine, w, s, discardLogger(), observability.NewMetricsForTesting(), settings)
}

// --- tests ---

func TestAssessor_UsesFetchedInputs(t *testing.T) {
	weather := &mockWeather{obs: domain.WeatherObservation{TemperatureC: 25, HumidityPct: 92, PressureHPa: 965, WindSpeedMps: 22}}
	seismic := &mockSeismic{events: []domain.SeismicEvent{{Magnitude: 4.4, OccurredAt: november.Add(-time.Hour)}}}
	a := newAssessor(weather, seismic, pipeline.Settings{SeismicRadiusKm: 150})

	report, err := a.Assess(context.Background(), domain.Coordinate{Lat: 19.8135, Lon: 85.8312})
	require.NoError(t, err)

	assert.Equal(t, int32(1), weather.calls.Load())
	assert.Equal(t, 150.0, seismic.radius)
	assert.True(t, report.Statistics.WeatherObserved)
	assert.Equal(t, 1, report.Statistics.RecentQuakes)
	assert.Equal(t, domain.TierCritical, report.Hazards[domain.Cyclone].Tier)
	assert.Contains(t, report.Hazards[domain.Earthquake].Factors, "1 recent earthquakes (max: M4.4)")
}

func TestAssessor_ProviderFailuresDegradeToAbsent(t *testing.T) {
	weather := &mockWeather{err: errors.New("upstream 500")}
	seismic := &mockSeismic{err: errors.New("feed down")}
	a := newAssessor(weather, seismic, pipeline.Settings{})

	report, err := a.Assess(context.Background(), domain.Coordinate{Lat: 19.8135, Lon: 85.8312})
	require.NoError(t, err)
	assert.False(t, report.Statistics.WeatherObserved)
	assert.Zero(t, report.Statistics.RecentQuakes)
}

func TestAssessor_SlowWeatherTimesOut(t *testing.T) {
	weather := &mockWeather{obs: domain.DefaultWeather(), delay: 5 * time.Second}
	a := newAssessor(weather, nil, pipeline.Settings{FetchTimeout: 50 * time.Millisecond})

	start := time.Now()
	report, err := a.Assess(context.Background(), domain.Coordinate{Lat: 28.6139, Lon: 77.2090})
	require.NoError(t, err)

	assert.Less(t, time.Since(start), 2*time.Second)
	assert.False(t, report.Statistics.WeatherObserved)
}

func TestAssessor_NoProviders(t *testing.T) {
	a := newAssessor(nil, nil, pipeline.Settings{})

	report, err := a.Assess(context.Background(), domain.Coordinate{Lat: 1, Lon: 1})
	require.NoError(t, err)
	assert.Equal(t, domain.TierLow, report.Overall.Tier)
	require.NoError(t, a.CheckReadiness(context.Background()))
}

func TestAssessor_InvalidCoordinate(t *testing.T) {
	weather := &mockWeather{}
	a := newAssessor(weather, nil, pipeline.Settings{})

	_, err := a.Assess(context.Background(), domain.Coordinate{Lat: math.NaN(), Lon: 10})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Zero(t, weather.calls.Load(), "no fetch for an unusable coordinate")
}

func TestAssessor_Evaluate(t *testing.T) {
	a := newAssessor(&mockWeather{}, nil, pipeline.Settings{})
	w := domain.WeatherObservation{TemperatureC: 25, HumidityPct: 92, PressureHPa: 965, WindSpeedMps: 22}

	report, err := a.Evaluate(domain.Coordinate{Lat: 19.8135, Lon: 85.8312}, &w, nil)
	require.NoError(t, err)
	assert.Equal(t, 100.0, report.Hazards[domain.Cyclone].Score)
}

func TestAssessor_CheckReadinessDelegates(t *testing.T) {
	seismic := &mockSeismic{readyErr: errors.New("feed not connected")}
	a := newAssessor(nil, seismic, pipeline.Settings{})

	err := a.CheckReadiness(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "feed not connected")

	seismic.readyErr = nil
	assert.NoError(t, a.CheckReadiness(context.Background()))
}
