package openweather

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/hazard-risk-service/internal/domain"
	"github.com/couchcryptid/hazard-risk-service/internal/observability"
)

// --- mock for cache tests ---

type countingProvider struct {
	calls  int
	result domain.WeatherObservation
	err    error
}

func (m *countingProvider) CurrentWeather(_ context.Context, _ domain.Coordinate) (domain.WeatherObservation, error) {
	m.calls++
	return m.result, m.err
}

func rainy() domain.WeatherObservation {
	return domain.WeatherObservation{TemperatureC: 28, HumidityPct: 90, PressureHPa: 1000, WindSpeedMps: 5, Condition: "rain"}
}

// --- CachedProvider tests ---

func TestCachedProvider_CacheHit(t *testing.T) {
	inner := &countingProvider{result: rainy()}
	cached := NewCachedProvider(inner, 10, time.Minute, clockwork.NewFakeClock(), observability.NewMetricsForTesting())

	r1, err := cached.CurrentWeather(context.Background(), mumbai)
	require.NoError(t, err)
	r2, err := cached.CurrentWeather(context.Background(), mumbai)
	require.NoError(t, err)

	assert.Equal(t, r1, r2)
	assert.Equal(t, 1, inner.calls, "should only call inner once")
}

func TestCachedProvider_NearbyCoordinatesShareEntry(t *testing.T) {
	inner := &countingProvider{result: rainy()}
	cached := NewCachedProvider(inner, 10, time.Minute, clockwork.NewFakeClock(), nil)

	_, _ = cached.CurrentWeather(context.Background(), domain.Coordinate{Lat: 19.0761, Lon: 72.8774})
	_, _ = cached.CurrentWeather(context.Background(), domain.Coordinate{Lat: 19.0789, Lon: 72.8801})
	assert.Equal(t, 1, inner.calls)

	_, _ = cached.CurrentWeather(context.Background(), domain.Coordinate{Lat: 19.12, Lon: 72.88})
	assert.Equal(t, 2, inner.calls)
}

func TestCachedProvider_Expiry(t *testing.T) {
	clock := clockwork.NewFakeClock()
	inner := &countingProvider{result: rainy()}
	cached := NewCachedProvider(inner, 10, 10*time.Minute, clock, nil)

	_, _ = cached.CurrentWeather(context.Background(), mumbai)
	clock.Advance(9 * time.Minute)
	_, _ = cached.CurrentWeather(context.Background(), mumbai)
	assert.Equal(t, 1, inner.calls)

	clock.Advance(time.Minute)
	_, _ = cached.CurrentWeather(context.Background(), mumbai)
	assert.Equal(t, 2, inner.calls)
}

func TestCachedProvider_ErrorsNotCached(t *testing.T) {
	inner := &countingProvider{err: errors.New("upstream down")}
	cached := NewCachedProvider(inner, 10, time.Minute, clockwork.NewFakeClock(), nil)

	_, err := cached.CurrentWeather(context.Background(), mumbai)
	require.Error(t, err)
	_, err = cached.CurrentWeather(context.Background(), mumbai)
	require.Error(t, err)
	assert.Equal(t, 2, inner.calls)
}

// --- lruCache tests ---

func TestLRUCache_Eviction(t *testing.T) {
	c := newLRUCache(2, time.Hour, clockwork.NewFakeClock())
	c.put("a", rainy())
	c.put("b", rainy())

	// Touch "a" so "b" becomes least recently used.
	_, ok := c.get("a")
	require.True(t, ok)

	c.put("c", rainy())
	assert.Equal(t, 2, c.len())

	_, ok = c.get("b")
	assert.False(t, ok, "b should have been evicted")
	_, ok = c.get("a")
	assert.True(t, ok)
	_, ok = c.get("c")
	assert.True(t, ok)
}

func TestLRUCache_UpdateRefreshesExpiry(t *testing.T) {
	clock := clockwork.NewFakeClock()
	c := newLRUCache(2, time.Minute, clock)

	c.put("a", rainy())
	clock.Advance(50 * time.Second)
	updated := rainy()
	updated.TemperatureC = 35
	c.put("a", updated)
	clock.Advance(50 * time.Second)

	got, ok := c.get("a")
	require.True(t, ok)
	assert.InDelta(t, 35.0, got.TemperatureC, 1e-9)
}

func TestLRUCache_ExpiredEntryRemoved(t *testing.T) {
	clock := clockwork.NewFakeClock()
	c := newLRUCache(2, time.Minute, clock)
	c.put("a", rainy())
	clock.Advance(time.Minute)

	_, ok := c.get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, c.len())
}
