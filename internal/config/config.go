package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/robfig/cron/v3"
)

// Seismic sources.
const (
	SeismicUSGS  = "usgs"
	SeismicKafka = "kafka"
	SeismicNone  = "none"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
	CatalogPath     string
	FetchTimeout    time.Duration

	// CORSAllowedOrigins enables cross-origin access to the API when non-empty.
	CORSAllowedOrigins []string

	// OpenWeatherMap configuration.
	WeatherAPIKey    string
	WeatherEnabled   bool
	WeatherTimeout   time.Duration
	WeatherCacheSize int
	WeatherCacheTTL  time.Duration
	WeatherRateLimit int

	// Seismic input: USGS queries or a Kafka feed.
	SeismicSource   string
	SeismicRadiusKm float64
	USGSTimeout     time.Duration
	USGSBaseURL     string

	KafkaBrokers      []string
	KafkaSeismicTopic string
	KafkaGroupID      string

	// SeismicPruneSchedule is a cron expression for dropping aged-out
	// events from the Kafka feed's window.
	SeismicPruneSchedule string
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}
	fetchTimeout, err := parseDuration("FETCH_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}
	weatherTimeout, err := parseDuration("OPENWEATHER_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}
	weatherCacheTTL, err := parseDuration("OPENWEATHER_CACHE_TTL", "10m")
	if err != nil {
		return nil, err
	}
	usgsTimeout, err := parseDuration("USGS_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	rateLimit, err := parseRateLimit()
	if err != nil {
		return nil, err
	}
	radiusKm, err := parseRadius()
	if err != nil {
		return nil, err
	}

	apiKey := os.Getenv("OPENWEATHER_API_KEY")
	weatherEnabled := apiKey != ""
	if v := os.Getenv("OPENWEATHER_ENABLED"); v != "" {
		weatherEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		CatalogPath:     os.Getenv("CATALOG_PATH"),
		FetchTimeout:    fetchTimeout,

		CORSAllowedOrigins: sharedcfg.ParseBrokers(os.Getenv("CORS_ALLOWED_ORIGINS")),

		WeatherAPIKey:    apiKey,
		WeatherEnabled:   weatherEnabled,
		WeatherTimeout:   weatherTimeout,
		WeatherCacheSize: parseCacheSize(),
		WeatherCacheTTL:  weatherCacheTTL,
		WeatherRateLimit: rateLimit,

		SeismicSource:   sharedcfg.EnvOrDefault("SEISMIC_SOURCE", SeismicUSGS),
		SeismicRadiusKm: radiusKm,
		USGSTimeout:     usgsTimeout,
		USGSBaseURL:     sharedcfg.EnvOrDefault("USGS_BASE_URL", "https://earthquake.usgs.gov/fdsnws/event/1/query"),

		KafkaBrokers:      sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSeismicTopic: sharedcfg.EnvOrDefault("KAFKA_SEISMIC_TOPIC", "seismic-events"),
		KafkaGroupID:      sharedcfg.EnvOrDefault("KAFKA_GROUP_ID", "hazard-risk"),

		SeismicPruneSchedule: sharedcfg.EnvOrDefault("SEISMIC_PRUNE_SCHEDULE", "@every 1h"),
	}

	if cfg.WeatherEnabled && cfg.WeatherAPIKey == "" {
		return nil, errors.New("OPENWEATHER_ENABLED is true but OPENWEATHER_API_KEY is not set")
	}
	switch cfg.SeismicSource {
	case SeismicUSGS, SeismicNone:
	case SeismicKafka:
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("KAFKA_BROKERS is required")
		}
		if cfg.KafkaSeismicTopic == "" {
			return nil, errors.New("KAFKA_SEISMIC_TOPIC is required")
		}
		if _, err := cron.ParseStandard(cfg.SeismicPruneSchedule); err != nil {
			return nil, fmt.Errorf("invalid SEISMIC_PRUNE_SCHEDULE: %w", err)
		}
	default:
		return nil, fmt.Errorf("invalid SEISMIC_SOURCE %q: must be usgs, kafka, or none", cfg.SeismicSource)
	}

	return cfg, nil
}

func parseDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseCacheSize() int {
	if s := os.Getenv("OPENWEATHER_CACHE_SIZE"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return 1000
}

func parseRateLimit() (int, error) {
	n, err := strconv.Atoi(sharedcfg.EnvOrDefault("OPENWEATHER_RATE_LIMIT", "60"))
	if err != nil || n < 0 {
		return 0, errors.New("invalid OPENWEATHER_RATE_LIMIT: must be a non-negative integer")
	}
	return n, nil
}

func parseRadius() (float64, error) {
	r, err := strconv.ParseFloat(sharedcfg.EnvOrDefault("USGS_RADIUS_KM", "100"), 64)
	if err != nil || r <= 0 || r > 20000 {
		return 0, errors.New("invalid USGS_RADIUS_KM: must be between 0 and 20000")
	}
	return r, nil
}
