// Package risk scores flood, earthquake, landslide, cyclone and drought risk
// for a coordinate and aggregates them into a [domain.RiskReport].
//
// An assessment runs in three ordered phases:
//
//  1. Five independent estimators score proximity to catalog zones and add
//     weather, seismic and terrain contributions.
//  2. The current season multiplies the hazards it boosts (capped at 100).
//  3. Extreme weather adds flat bumps across hazards.
//
// The overall score is 0.6*max + 0.4*mean of the per-hazard scores.
// Assessments are pure computation over their inputs and the injected
// catalog and clock; the engine does no I/O.
package risk

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/hazard-risk-service/internal/catalog"
	"github.com/couchcryptid/hazard-risk-service/internal/domain"
	"github.com/couchcryptid/hazard-risk-service/internal/observability"
)

type namedEstimator struct {
	hazard domain.HazardType
	fn     estimator
}

// Engine computes risk reports against an immutable catalog. It is safe for
// concurrent use.
type Engine struct {
	catalog    *catalog.Catalog
	clock      clockwork.Clock
	logger     *slog.Logger
	metrics    *observability.Metrics
	estimators []namedEstimator
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the time source used for seasons and the seismic window.
func WithClock(c clockwork.Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithLogger sets the logger for estimator failures.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithMetrics records estimator failures and per-hazard tiers.
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// NewEngine returns an engine over cat. A nil catalog selects the built-in
// India catalog.
func NewEngine(cat *catalog.Catalog, opts ...Option) *Engine {
	if cat == nil {
		cat = catalog.Default()
	}
	e := &Engine{
		catalog: cat,
		clock:   clockwork.NewRealClock(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.estimators = []namedEstimator{
		{domain.Flood, e.assessFlood},
		{domain.Earthquake, e.assessEarthquake},
		{domain.Landslide, e.assessLandslide},
		{domain.Cyclone, e.assessCyclone},
		{domain.Drought, e.assessDrought},
	}
	return e
}

// Catalog returns the catalog the engine scores against.
func (e *Engine) Catalog() *catalog.Catalog { return e.catalog }

// Assess scores all hazards at c. Weather may be nil, in which case default
// conditions are assumed. Only a non-finite coordinate is an error; out of
// range coordinates are clamped.
func (e *Engine) Assess(c domain.Coordinate, weather *domain.WeatherObservation, events []domain.SeismicEvent) (domain.RiskReport, error) {
	if !c.IsFinite() {
		return domain.RiskReport{}, fmt.Errorf("%w: coordinate (%v, %v) is not a number", domain.ErrInvalidInput, c.Lat, c.Lon)
	}
	c = c.Clamp()

	w := domain.DefaultWeather()
	if weather != nil {
		w = weather.Normalize()
	}

	now := e.clock.Now()
	in := input{
		coord:   c,
		weather: w,
		events:  slices.Clone(events),
		now:     now.In(ist),
	}

	results := e.runEstimators(in)

	season := SeasonFor(in.now.Month())
	applySeasonal(results, season)
	applyWeather(results, w)

	o := overall(results)
	o.Season = season.Name
	recent, _ := recentQuakes(in.events, in.now)

	report := domain.RiskReport{
		Location:        c,
		Hazards:         make(map[domain.HazardType]domain.HazardAssessment, len(results)),
		Overall:         o,
		Recommendations: e.recommend(results, o),
		Statistics:      statistics(results, weather != nil, recent),
		RegionProfile:   e.regionProfile(results, o.Primary.Type),
		GeneratedAt:     now,
	}
	for _, a := range results {
		report.Hazards[a.Hazard] = a
		if e.metrics != nil {
			e.metrics.HazardTiers.WithLabelValues(string(a.Hazard), string(a.Tier)).Inc()
		}
	}
	return report, nil
}

// runEstimators evaluates every hazard concurrently and returns results in
// canonical hazard order.
func (e *Engine) runEstimators(in input) []domain.HazardAssessment {
	results := make([]domain.HazardAssessment, len(e.estimators))

	var wg sync.WaitGroup
	for i, est := range e.estimators {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = e.safeEstimate(est, in)
		}()
	}
	wg.Wait()

	return results
}

// safeEstimate converts a panic or malformed result into the hazard's
// unavailable default.
func (e *Engine) safeEstimate(est namedEstimator, in input) (a domain.HazardAssessment) {
	defer func() {
		if r := recover(); r != nil {
			e.estimatorFailed(est.hazard, fmt.Errorf("panic: %v", r))
			a = domain.Unavailable(est.hazard)
		}
	}()

	a, err := sanitize(est.hazard, est.fn(in))
	if err != nil {
		e.estimatorFailed(est.hazard, err)
	}
	return a
}

func (e *Engine) estimatorFailed(h domain.HazardType, err error) {
	e.logger.Warn("hazard estimator failed, using default", "hazard", h, "error", err)
	if e.metrics != nil {
		e.metrics.EstimatorFailures.WithLabelValues(string(h)).Inc()
	}
}

// regionProfile looks up the state vulnerability for the zone that drove the
// primary hazard, falling back to the first hazard with a containing zone.
func (e *Engine) regionProfile(results []domain.HazardAssessment, primary domain.HazardType) *domain.RegionProfile {
	state := ""
	for _, a := range results {
		if a.Hazard == primary && a.ZoneState != "" {
			state = a.ZoneState
			break
		}
	}
	if state == "" {
		for _, a := range results {
			if a.ZoneState != "" {
				state = a.ZoneState
				break
			}
		}
	}
	if state == "" {
		return nil
	}
	p, ok := e.catalog.Vulnerability(state)
	if !ok {
		return nil
	}
	return &p
}
