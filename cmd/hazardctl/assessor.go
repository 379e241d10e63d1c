package main

import (
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/couchcryptid/hazard-risk-service/internal/adapter/openweather"
	"github.com/couchcryptid/hazard-risk-service/internal/adapter/usgs"
	"github.com/couchcryptid/hazard-risk-service/internal/catalog"
	"github.com/couchcryptid/hazard-risk-service/internal/config"
	"github.com/couchcryptid/hazard-risk-service/internal/domain"
	"github.com/couchcryptid/hazard-risk-service/internal/observability"
	"github.com/couchcryptid/hazard-risk-service/internal/pipeline"
	"github.com/couchcryptid/hazard-risk-service/internal/risk"
)

// addAssessFlags registers the flags shared by commands that run assessments.
func addAssessFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Bool("offline", false, "skip live weather and seismic lookups")
	f.String("at", "", "assess as of this RFC 3339 time instead of now")
}

func loadCatalog(cmd *cobra.Command) (*catalog.Catalog, error) {
	path, _ := cmd.Flags().GetString("catalog")
	if path == "" {
		path = cfg.CatalogPath
	}
	if path == "" {
		return catalog.Default(), nil
	}
	return catalog.LoadFile(path)
}

// newAssessor wires an Assessor from config and the shared assessment flags.
// The Kafka seismic feed needs a long-running consumer, so one-shot commands
// fall back to no seismic input when it is configured.
func newAssessor(cmd *cobra.Command) (*pipeline.Assessor, error) {
	cat, err := loadCatalog(cmd)
	if err != nil {
		return nil, err
	}

	clock := clockwork.NewRealClock()
	at, _ := cmd.Flags().GetString("at")
	if at != "" {
		t, err := time.Parse(time.RFC3339, at)
		if err != nil {
			return nil, fmt.Errorf("invalid --at: %w", err)
		}
		clock = clockwork.NewFakeClockAt(t)
	}

	// Nothing scrapes a one-shot command, so metrics stay unregistered.
	metrics := observability.NewMetricsForTesting()
	engine := risk.NewEngine(cat,
		risk.WithClock(clock),
		risk.WithLogger(logger),
		risk.WithMetrics(metrics),
	)

	var (
		weather domain.WeatherProvider
		seismic domain.SeismicProvider
	)
	if offline, _ := cmd.Flags().GetBool("offline"); !offline {
		// Current conditions say nothing about a past --at time.
		switch {
		case cfg.WeatherEnabled && at != "":
			logger.Info("--at is set, skipping live weather")
		case cfg.WeatherEnabled:
			weather = openweather.NewClient(cfg.WeatherAPIKey, cfg.WeatherTimeout, cfg.WeatherRateLimit, logger)
		}
		switch cfg.SeismicSource {
		case config.SeismicUSGS:
			seismic = usgs.NewClient(cfg.USGSTimeout, risk.RecentQuakeWindow, logger,
				usgs.WithClock(clock),
				usgs.WithBaseURL(cfg.USGSBaseURL),
			)
		case config.SeismicKafka:
			logger.Warn("kafka seismic feed is not available to one-shot commands, skipping seismic input")
		}
	}

	return pipeline.New(engine, weather, seismic, logger, metrics, pipeline.Settings{
		FetchTimeout:    cfg.FetchTimeout,
		SeismicRadiusKm: cfg.SeismicRadiusKm,
	}), nil
}
