// Package usgs implements domain.SeismicProvider using the USGS FDSN event
// web service.
package usgs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/hazard-risk-service/internal/domain"
)

const timeFormat = "2006-01-02T15:04:05"

// Query defaults.
const (
	MinMagnitude = 3.0
	MaxEvents    = 20
)

// Client queries recent earthquakes around a point.
type Client struct {
	httpClient *http.Client
	baseURL    string
	window     time.Duration
	clock      clockwork.Clock
	logger     *slog.Logger
}

// DefaultBaseURL is the USGS FDSN event query endpoint.
const DefaultBaseURL = "https://earthquake.usgs.gov/fdsnws/event/1/query"

// Option configures a Client.
type Option func(*Client)

// WithClock sets the time the query window ends at.
func WithClock(clock clockwork.Clock) Option {
	return func(c *Client) { c.clock = clock }
}

// WithBaseURL points the client at another FDSN-compatible endpoint.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = u
		}
	}
}

// NewClient creates a USGS client returning events from the last window.
func NewClient(timeout, window time.Duration, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: DefaultBaseURL,
		window:  window,
		clock:   clockwork.NewRealClock(),
		logger:  logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RecentEvents returns up to MaxEvents quakes of magnitude MinMagnitude or
// more within radiusKm of c, newest first.
func (c *Client) RecentEvents(ctx context.Context, coord domain.Coordinate, radiusKm float64) ([]domain.SeismicEvent, error) {
	params := url.Values{
		"format":       {"geojson"},
		"latitude":     {strconv.FormatFloat(coord.Lat, 'f', 4, 64)},
		"longitude":    {strconv.FormatFloat(coord.Lon, 'f', 4, 64)},
		"maxradiuskm":  {strconv.FormatFloat(radiusKm, 'f', -1, 64)},
		"minmagnitude": {strconv.FormatFloat(MinMagnitude, 'f', 1, 64)},
		"limit":        {strconv.Itoa(MaxEvents)},
		"orderby":      {"time"},
	}
	if c.window > 0 {
		end := c.clock.Now().UTC()
		params.Set("starttime", end.Add(-c.window).Format(timeFormat))
		params.Set("endtime", end.Format(timeFormat))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("seismic request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("usgs API error: status %d: %s", resp.StatusCode, body)
	}

	var fc featureCollection
	if err := json.NewDecoder(resp.Body).Decode(&fc); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	events := make([]domain.SeismicEvent, 0, len(fc.Features))
	for _, f := range fc.Features {
		ev, ok := f.event()
		if !ok {
			c.logger.Debug("skipping malformed seismic feature", "id", f.ID)
			continue
		}
		events = append(events, ev)
	}
	return events, nil
}

// USGS GeoJSON response types.

type featureCollection struct {
	Features []feature `json:"features"`
}

type feature struct {
	ID         string `json:"id"`
	Properties struct {
		Mag   *float64 `json:"mag"`
		Place string   `json:"place"`
		Time  int64    `json:"time"` // epoch milliseconds
	} `json:"properties"`
	Geometry struct {
		Coordinates []float64 `json:"coordinates"` // [lon, lat, depth]
	} `json:"geometry"`
}

func (f feature) event() (domain.SeismicEvent, bool) {
	if f.Properties.Mag == nil || len(f.Geometry.Coordinates) < 2 {
		return domain.SeismicEvent{}, false
	}
	return domain.SeismicEvent{
		ID:         f.ID,
		Magnitude:  *f.Properties.Mag,
		Epicenter:  domain.Coordinate{Lat: f.Geometry.Coordinates[1], Lon: f.Geometry.Coordinates[0]},
		OccurredAt: time.UnixMilli(f.Properties.Time).UTC(),
		Place:      f.Properties.Place,
	}, true
}
