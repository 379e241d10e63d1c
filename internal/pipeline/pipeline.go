// Package pipeline resolves the external inputs for an assessment (current
// weather and recent earthquakes) and hands them to the risk engine.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/couchcryptid/hazard-risk-service/internal/catalog"
	"github.com/couchcryptid/hazard-risk-service/internal/domain"
	"github.com/couchcryptid/hazard-risk-service/internal/observability"
	"github.com/couchcryptid/hazard-risk-service/internal/risk"
)

// Upstream source labels.
const (
	sourceWeather = "weather"
	sourceSeismic = "seismic"
)

// Settings bound the upstream fetches made for each assessment.
type Settings struct {
	FetchTimeout    time.Duration
	SeismicRadiusKm float64
}

// readinessChecker is implemented by providers that need warm-up.
type readinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Assessor fetches weather and seismic data concurrently, then scores the
// location. A provider that fails or times out is treated as absent.
type Assessor struct {
	engine   *risk.Engine
	weather  domain.WeatherProvider
	seismic  domain.SeismicProvider
	logger   *slog.Logger
	metrics  *observability.Metrics
	settings Settings
}

// New creates an Assessor. Either provider may be nil.
func New(engine *risk.Engine, weather domain.WeatherProvider, seismic domain.SeismicProvider, logger *slog.Logger, metrics *observability.Metrics, settings Settings) *Assessor {
	if settings.FetchTimeout <= 0 {
		settings.FetchTimeout = 5 * time.Second
	}
	if settings.SeismicRadiusKm <= 0 {
		settings.SeismicRadiusKm = 100
	}
	return &Assessor{
		engine:   engine,
		weather:  weather,
		seismic:  seismic,
		logger:   logger,
		metrics:  metrics,
		settings: settings,
	}
}

// Catalog exposes the engine's catalog for reference endpoints.
func (a *Assessor) Catalog() *catalog.Catalog { return a.engine.Catalog() }

// CheckReadiness reports whether every provider that tracks readiness is ready.
func (a *Assessor) CheckReadiness(ctx context.Context) error {
	for _, p := range []any{a.weather, a.seismic} {
		if rc, ok := p.(readinessChecker); ok {
			if err := rc.CheckReadiness(ctx); err != nil {
				return err
			}
		}
	}
	return nil
}

// Assess fetches live inputs for c and returns the risk report.
func (a *Assessor) Assess(ctx context.Context, c domain.Coordinate) (domain.RiskReport, error) {
	if !c.IsFinite() {
		return domain.RiskReport{}, fmt.Errorf("%w: coordinate (%v, %v) is not a number", domain.ErrInvalidInput, c.Lat, c.Lon)
	}
	start := time.Now()
	c = c.Clamp()

	fetchCtx, cancel := context.WithTimeout(ctx, a.settings.FetchTimeout)
	defer cancel()

	var (
		g       errgroup.Group
		weather *domain.WeatherObservation
		events  []domain.SeismicEvent
	)
	if a.weather != nil {
		g.Go(func() error {
			w, err := a.fetchWeather(fetchCtx, c)
			if err == nil {
				weather = &w
			}
			return nil
		})
	}
	if a.seismic != nil {
		g.Go(func() error {
			events = a.fetchSeismic(fetchCtx, c)
			return nil
		})
	}
	_ = g.Wait()

	return a.evaluate(start, c, weather, events)
}

// Evaluate scores c against caller-supplied inputs without any fetches.
func (a *Assessor) Evaluate(c domain.Coordinate, weather *domain.WeatherObservation, events []domain.SeismicEvent) (domain.RiskReport, error) {
	return a.evaluate(time.Now(), c, weather, events)
}

func (a *Assessor) evaluate(start time.Time, c domain.Coordinate, weather *domain.WeatherObservation, events []domain.SeismicEvent) (domain.RiskReport, error) {
	report, err := a.engine.Assess(c, weather, events)
	if err != nil {
		return domain.RiskReport{}, err
	}

	a.metrics.Assessments.WithLabelValues(string(report.Overall.Tier)).Inc()
	a.metrics.AssessmentDuration.Observe(time.Since(start).Seconds())
	a.logger.Debug("assessment complete",
		"lat", report.Location.Lat,
		"lon", report.Location.Lon,
		"tier", report.Overall.Tier,
		"primary", report.Overall.Primary.Type,
		"weather", weather != nil,
		"quakes", len(events),
	)
	return report, nil
}

func (a *Assessor) fetchWeather(ctx context.Context, c domain.Coordinate) (domain.WeatherObservation, error) {
	start := time.Now()
	w, err := a.weather.CurrentWeather(ctx, c)
	a.observe(sourceWeather, start, err)
	if err != nil {
		a.logger.Warn("weather unavailable, using defaults", "lat", c.Lat, "lon", c.Lon, "error", err)
		return domain.WeatherObservation{}, err
	}
	return w, nil
}

func (a *Assessor) fetchSeismic(ctx context.Context, c domain.Coordinate) []domain.SeismicEvent {
	start := time.Now()
	events, err := a.seismic.RecentEvents(ctx, c, a.settings.SeismicRadiusKm)
	a.observe(sourceSeismic, start, err)
	if err != nil {
		a.logger.Warn("seismic events unavailable, assuming none", "lat", c.Lat, "lon", c.Lon, "error", err)
		return nil
	}
	return events
}

func (a *Assessor) observe(source string, start time.Time, err error) {
	a.metrics.UpstreamDuration.WithLabelValues(source).Observe(time.Since(start).Seconds())
	a.metrics.UpstreamRequests.WithLabelValues(source, outcome(err)).Inc()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "error"
	}
}
