package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/robfig/cron/v3"

	httpadapter "github.com/couchcryptid/hazard-risk-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/hazard-risk-service/internal/adapter/kafka"
	"github.com/couchcryptid/hazard-risk-service/internal/adapter/openweather"
	"github.com/couchcryptid/hazard-risk-service/internal/adapter/usgs"
	"github.com/couchcryptid/hazard-risk-service/internal/catalog"
	"github.com/couchcryptid/hazard-risk-service/internal/config"
	"github.com/couchcryptid/hazard-risk-service/internal/domain"
	"github.com/couchcryptid/hazard-risk-service/internal/observability"
	"github.com/couchcryptid/hazard-risk-service/internal/pipeline"
	"github.com/couchcryptid/hazard-risk-service/internal/risk"
)

func main() {
	// A .env file is optional; real environment variables take precedence.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()

	cat := catalog.Default()
	if cfg.CatalogPath != "" {
		cat, err = catalog.LoadFile(cfg.CatalogPath)
		if err != nil {
			logger.Error("failed to load catalog", "path", cfg.CatalogPath, "error", err)
			os.Exit(1)
		}
		logger.Info("catalog loaded", "path", cfg.CatalogPath)
	}

	engine := risk.NewEngine(cat,
		risk.WithClock(clock),
		risk.WithLogger(logger),
		risk.WithMetrics(metrics),
	)

	// Weather (feature-flagged via OPENWEATHER_ENABLED / OPENWEATHER_API_KEY).
	var weather domain.WeatherProvider
	if cfg.WeatherEnabled {
		client := openweather.NewClient(cfg.WeatherAPIKey, cfg.WeatherTimeout, cfg.WeatherRateLimit, logger)
		weather = openweather.NewCachedProvider(client, cfg.WeatherCacheSize, cfg.WeatherCacheTTL, clock, metrics)
		metrics.WeatherEnabled.Set(1)
		logger.Info("openweather enabled",
			"cache_size", cfg.WeatherCacheSize,
			"cache_ttl", cfg.WeatherCacheTTL,
			"rate_limit_per_min", cfg.WeatherRateLimit,
		)
	} else {
		logger.Info("openweather disabled, default conditions will be assumed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		seismic domain.SeismicProvider
		closers []func() error
	)
	switch cfg.SeismicSource {
	case config.SeismicUSGS:
		seismic = usgs.NewClient(cfg.USGSTimeout, risk.RecentQuakeWindow, logger,
			usgs.WithClock(clock),
			usgs.WithBaseURL(cfg.USGSBaseURL),
		)
		logger.Info("seismic source: usgs", "radius_km", cfg.SeismicRadiusKm)
	case config.SeismicKafka:
		reader := kafkaadapter.NewReader(cfg, logger)
		closers = append(closers, reader.Close)
		store := kafkaadapter.NewStore(risk.RecentQuakeWindow, clock, metrics)
		feed := kafkaadapter.NewFeed(reader, store, logger, metrics)
		seismic = feed

		go func() {
			if err := feed.Run(ctx); err != nil {
				logger.Error("seismic feed error", "error", err)
			}
		}()

		pruner := cron.New()
		if _, err := pruner.AddFunc(cfg.SeismicPruneSchedule, func() {
			if n := store.Prune(); n > 0 {
				logger.Info("pruned seismic events", "removed", n, "remaining", store.Len())
			}
		}); err != nil {
			logger.Error("invalid prune schedule", "schedule", cfg.SeismicPruneSchedule, "error", err)
			os.Exit(1)
		}
		pruner.Start()
		closers = append(closers, func() error {
			<-pruner.Stop().Done()
			return nil
		})
		logger.Info("seismic source: kafka", "topic", cfg.KafkaSeismicTopic, "prune_schedule", cfg.SeismicPruneSchedule)
	default:
		logger.Info("seismic source disabled")
	}

	assessor := pipeline.New(engine, weather, seismic, logger, metrics, pipeline.Settings{
		FetchTimeout:    cfg.FetchTimeout,
		SeismicRadiusKm: cfg.SeismicRadiusKm,
	})

	srv := httpadapter.NewServer(cfg.HTTPAddr, assessor, logger,
		httpadapter.WithAllowedOrigins(cfg.CORSAllowedOrigins),
	)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	for _, closeFn := range closers {
		if err := closeFn(); err != nil {
			logger.Error("seismic feed close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
