package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "hazard_risk"

// Metrics holds the Prometheus counters, histograms, and gauges for the risk service.
type Metrics struct {
	// Assessment metrics.
	Assessments        *prometheus.CounterVec // labels: tier
	AssessmentDuration prometheus.Histogram
	HazardTiers        *prometheus.CounterVec // labels: hazard, tier
	EstimatorFailures  *prometheus.CounterVec // labels: hazard

	// Upstream provider metrics.
	UpstreamRequests *prometheus.CounterVec   // labels: source={weather,seismic}, outcome={success,error,timeout}
	UpstreamDuration *prometheus.HistogramVec // labels: source
	WeatherCache     *prometheus.CounterVec   // labels: result={hit,miss}
	WeatherEnabled   prometheus.Gauge

	// Seismic feed metrics.
	SeismicConsumed     prometheus.Counter
	SeismicDecodeErrors prometheus.Counter
	SeismicStored       prometheus.Gauge
	FeedRunning         prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.Assessments,
		m.AssessmentDuration,
		m.HazardTiers,
		m.EstimatorFailures,
		m.UpstreamRequests,
		m.UpstreamDuration,
		m.WeatherCache,
		m.WeatherEnabled,
		m.SeismicConsumed,
		m.SeismicDecodeErrors,
		m.SeismicStored,
		m.FeedRunning,
	)

	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		Assessments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assessments_total",
			Help:      "Completed risk assessments by overall tier.",
		}, []string{"tier"}),
		AssessmentDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "assessment_duration_seconds",
			Help:      "End-to-end assessment duration including upstream fetches.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		HazardTiers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hazard_tier_total",
			Help:      "Per-hazard results by tier.",
		}, []string{"hazard", "tier"}),
		EstimatorFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "estimator_failures_total",
			Help:      "Hazard estimators that failed and fell back to the default result.",
		}, []string{"hazard"}),
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Weather and seismic provider calls by outcome.",
		}, []string{"source", "outcome"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_duration_seconds",
			Help:      "Weather and seismic provider call duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"source"}),
		WeatherCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "weather_cache_total",
			Help:      "Weather cache lookups by result.",
		}, []string{"result"}),
		WeatherEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "weather_enabled",
			Help:      "1 when live weather is enabled, 0 otherwise.",
		}),
		SeismicConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "seismic_events_consumed_total",
			Help:      "Seismic events read from the feed topic.",
		}),
		SeismicDecodeErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "seismic_decode_errors_total",
			Help:      "Feed messages that could not be decoded.",
		}),
		SeismicStored: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "seismic_events_stored",
			Help:      "Seismic events currently held in the recent-event window.",
		}),
		FeedRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "seismic_feed_running",
			Help:      "1 when the seismic feed consumer is active, 0 when shut down.",
		}),
	}
}
