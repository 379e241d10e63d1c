// Package openweather implements domain.WeatherProvider on top of the
// OpenWeatherMap current-weather API.
package openweather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/time/rate"

	"github.com/couchcryptid/hazard-risk-service/internal/domain"
)

// RateLimitCooldown is how long the client refuses requests after the API answers 429.
const RateLimitCooldown = time.Minute

// ErrRateLimited is returned while the client is backing off after a 429.
var ErrRateLimited = errors.New("openweather rate limited")

// Client implements domain.WeatherProvider using the OpenWeatherMap API.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	clock      clockwork.Clock
	logger     *slog.Logger

	mu            sync.Mutex
	cooldownUntil time.Time
}

// NewClient creates an OpenWeatherMap client. perMinute caps outbound
// requests; zero or less disables the limiter.
func NewClient(apiKey string, timeout time.Duration, perMinute int, logger *slog.Logger) *Client {
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: "https://api.openweathermap.org/data/2.5/weather",
		limiter: newLimiter(perMinute),
		clock:   clockwork.NewRealClock(),
		logger:  logger,
	}
}

func newLimiter(perMinute int) *rate.Limiter {
	if perMinute <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), max(1, perMinute/10))
}

// CurrentWeather returns the current observation at c.
func (c *Client) CurrentWeather(ctx context.Context, coord domain.Coordinate) (domain.WeatherObservation, error) {
	if until, cooling := c.coolingDown(); cooling {
		return domain.WeatherObservation{}, fmt.Errorf("%w until %s", ErrRateLimited, until.Format(time.RFC3339))
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return domain.WeatherObservation{}, fmt.Errorf("wait for rate limiter: %w", err)
	}

	params := url.Values{
		"lat":   {strconv.FormatFloat(coord.Lat, 'f', 6, 64)},
		"lon":   {strconv.FormatFloat(coord.Lon, 'f', 6, 64)},
		"appid": {c.apiKey},
		"units": {"metric"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return domain.WeatherObservation{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.WeatherObservation{}, fmt.Errorf("weather request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		until := c.startCooldown()
		c.logger.Warn("openweather rate limit hit", "retry_after", until)
		return domain.WeatherObservation{}, ErrRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return domain.WeatherObservation{}, fmt.Errorf("openweather API error: status %d: %s", resp.StatusCode, body)
	}

	var owResp response
	if err := json.NewDecoder(resp.Body).Decode(&owResp); err != nil {
		return domain.WeatherObservation{}, fmt.Errorf("decode response: %w", err)
	}
	return owResp.observation(), nil
}

func (c *Client) coolingDown() (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cooldownUntil, c.clock.Now().Before(c.cooldownUntil)
}

func (c *Client) startCooldown() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cooldownUntil = c.clock.Now().Add(RateLimitCooldown)
	return c.cooldownUntil
}

// OpenWeatherMap API response types. Pointer fields distinguish a missing
// reading from a zero one.

type response struct {
	Main struct {
		Temp     *float64 `json:"temp"`
		Humidity *float64 `json:"humidity"`
		Pressure *float64 `json:"pressure"`
	} `json:"main"`
	Wind struct {
		Speed *float64 `json:"speed"`
	} `json:"wind"`
	Weather []struct {
		Main string `json:"main"`
	} `json:"weather"`
}

func (r response) observation() domain.WeatherObservation {
	obs := domain.WeatherObservation{
		TemperatureC: valueOr(r.Main.Temp),
		HumidityPct:  valueOr(r.Main.Humidity),
		PressureHPa:  valueOr(r.Main.Pressure),
		WindSpeedMps: valueOr(r.Wind.Speed),
	}
	if len(r.Weather) > 0 {
		obs.Condition = strings.ToLower(r.Weather[0].Main)
	}
	return obs.Normalize()
}

// valueOr maps a missing reading to NaN so Normalize substitutes the default.
func valueOr(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}
