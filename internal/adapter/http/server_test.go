package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpadapter "github.com/couchcryptid/hazard-risk-service/internal/adapter/http"
	"github.com/couchcryptid/hazard-risk-service/internal/catalog"
	"github.com/couchcryptid/hazard-risk-service/internal/domain"
	"github.com/couchcryptid/hazard-risk-service/internal/observability"
	"github.com/couchcryptid/hazard-risk-service/internal/pipeline"
	"github.com/couchcryptid/hazard-risk-service/internal/risk"
)

var january = time.Date(2025, time.January, 15, 12, 0, 0, 0, time.UTC)

type notReady struct {
	*pipeline.Assessor
	err error
}

func (n notReady) CheckReadiness(_ context.Context) error { return n.err }

type panicking struct {
	*pipeline.Assessor
}

func (panicking) Assess(context.Context, domain.Coordinate) (domain.RiskReport, error) {
	panic("boom")
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newAssessor() *pipeline.Assessor {
	engine := risk.NewEngine(catalog.Default(),
		risk.WithClock(clockwork.NewFakeClockAt(january)),
		risk.WithLogger(discardLogger()),
	)
	return pipeline.New(engine, nil, nil, discardLogger(), observability.NewMetricsForTesting(), pipeline.Settings{})
}

func newTestServer() *httpadapter.Server {
	return httpadapter.NewServer(":0", newAssessor(), discardLogger())
}

func do(t *testing.T, srv http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, httptest.NewRequest(method, target, r))
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

// --- health ---

func TestHealthzReturns200(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestReadyzReturns200WhenReady(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodGet, "/readyz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReadyzReturns503WhenNotReady(t *testing.T) {
	srv := httpadapter.NewServer(":0", notReady{newAssessor(), errors.New("seismic feed is not running")}, discardLogger())
	rec := do(t, srv, http.MethodGet, "/readyz", "")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "seismic feed is not running", decodeError(t, rec))
}

func TestMetricsEndpoint(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodGet, "/metrics", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

// --- risk ---

func TestAssess_ReturnsReport(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodGet, "/api/v1/risk?lat=34.0837&lon=74.7973", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var report domain.RiskReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Len(t, report.Hazards, 5)
	assert.Equal(t, domain.TierCritical, report.Hazards[domain.Earthquake].Tier)
	assert.Equal(t, "Kashmir Valley", report.Hazards[domain.Earthquake].ZoneName)
	assert.Equal(t, domain.Earthquake, report.Overall.Primary.Type)
	assert.Equal(t, "winter", report.Overall.Season)
	assert.NotEmpty(t, report.Recommendations)
}

func TestAssess_BadParams(t *testing.T) {
	tests := []struct {
		name, query, want string
	}{
		{"missing lat", "lon=77", "lat is required"},
		{"missing lon", "lat=28", "lon is required"},
		{"not a number", "lat=abc&lon=77", "lat must be a number"},
		{"nan", "lat=NaN&lon=77", "invalid input"},
		{"infinite", "lat=28&lon=Inf", "invalid input"},
	}
	srv := newTestServer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, srv, http.MethodGet, "/api/v1/risk?"+tt.query, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, decodeError(t, rec), tt.want)
		})
	}
}

func TestAssess_OutOfRangeIsClamped(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodGet, "/api/v1/risk?lat=120&lon=200", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var report domain.RiskReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.InDelta(t, 90.0, report.Location.Lat, 1e-9)
	assert.InDelta(t, -160.0, report.Location.Lon, 1e-9)
}

func TestEvaluate_UsesSuppliedInputs(t *testing.T) {
	body := `{
		"location": {"lat": 34.0837, "lon": 74.7973},
		"weather": {"temperature_c": 5, "humidity_pct": 70, "pressure_hpa": 1015, "wind_speed_mps": 3, "condition": "Clear"},
		"earthquakes": [{"id": "q1", "magnitude": 5.2, "epicenter": {"lat": 34.1, "lon": 74.8}, "occurred_at": "2025-01-14T10:00:00Z"}]
	}`
	rec := do(t, newTestServer(), http.MethodPost, "/api/v1/risk", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var report domain.RiskReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.True(t, report.Statistics.WeatherObserved)
	assert.Equal(t, 1, report.Statistics.RecentQuakes)
}

func TestEvaluate_PartialWeatherUsesDefaults(t *testing.T) {
	srv := newTestServer()
	decode := func(body string) domain.RiskReport {
		t.Helper()
		rec := do(t, srv, http.MethodPost, "/api/v1/risk", body)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var report domain.RiskReport
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
		return report
	}

	partial := decode(`{"location":{"lat":19.8135,"lon":85.8312},"weather":{"humidity_pct":92,"wind_speed_mps":null}}`)
	full := decode(`{"location":{"lat":19.8135,"lon":85.8312},"weather":{"temperature_c":25,"humidity_pct":92,"pressure_hpa":1013,"wind_speed_mps":0,"condition":"clear"}}`)

	assert.Equal(t, full.Hazards, partial.Hazards)
	assert.Equal(t, full.Overall, partial.Overall)
	assert.True(t, partial.Statistics.WeatherObserved)
	for _, h := range domain.HazardOrder {
		for _, f := range partial.Hazards[h].Factors {
			assert.NotContains(t, strings.ToLower(f), "pressure", "%s scored a pressure that was never sent", h)
		}
	}
}

func TestEvaluate_Errors(t *testing.T) {
	tests := []struct {
		name, body, want string
	}{
		{"malformed", `{"location":`, "decode body"},
		{"unknown field", `{"location":{"lat":1,"lon":1},"extra":true}`, "decode body"},
		{"missing location", `{"weather":null}`, "location is required"},
	}
	srv := newTestServer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, srv, http.MethodPost, "/api/v1/risk", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, decodeError(t, rec), tt.want)
		})
	}
}

// --- reference data ---

func TestRegions(t *testing.T) {
	srv := newTestServer()

	rec := do(t, srv, http.MethodGet, "/api/v1/regions?hazard=cyclone", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var one struct {
		Hazard  domain.HazardType      `json:"hazard"`
		Regions []catalog.HazardRegion `json:"regions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &one))
	assert.Equal(t, domain.Cyclone, one.Hazard)
	assert.Len(t, one.Regions, 5)

	rec = do(t, srv, http.MethodGet, "/api/v1/regions", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var all map[domain.HazardType][]catalog.HazardRegion
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	assert.Len(t, all, 5)
	assert.Len(t, all[domain.Drought], 4)

	rec = do(t, srv, http.MethodGet, "/api/v1/regions?hazard=tsunami", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegions_GeoJSON(t *testing.T) {
	srv := newTestServer()

	rec := do(t, srv, http.MethodGet, "/api/v1/regions?hazard=earthquake&format=geojson", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var fc struct {
		Type     string `json:"type"`
		Features []struct {
			Geometry struct {
				Coordinates []float64 `json:"coordinates"`
			} `json:"geometry"`
			Properties map[string]any `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fc))
	assert.Equal(t, "FeatureCollection", fc.Type)
	require.Len(t, fc.Features, len(catalog.Default().Regions(domain.Earthquake)))
	for _, f := range fc.Features {
		assert.Equal(t, "earthquake", f.Properties["hazard"])
		assert.Len(t, f.Geometry.Coordinates, 2)
	}

	rec = do(t, srv, http.MethodGet, "/api/v1/regions?format=kml", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSafety(t *testing.T) {
	srv := newTestServer()
	guide, ok := catalog.Default().Safety(domain.Flood)
	require.True(t, ok)

	rec := do(t, srv, http.MethodGet, "/api/v1/safety?hazard=flood&tier=critical", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var tips struct {
		Tier domain.Tier `json:"tier"`
		Tips []string    `json:"tips"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tips))
	assert.Equal(t, domain.TierCritical, tips.Tier)
	assert.Equal(t, guide.During, tips.Tips)

	rec = do(t, srv, http.MethodGet, "/api/v1/safety?hazard=flood&tier=Low", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tips))
	assert.Equal(t, guide.Before, tips.Tips)

	rec = do(t, srv, http.MethodGet, "/api/v1/safety?hazard=flood", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var full struct {
		Guide catalog.SafetyGuide `json:"guide"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &full))
	assert.Equal(t, guide, full.Guide)

	assert.Equal(t, http.StatusBadRequest, do(t, srv, http.MethodGet, "/api/v1/safety", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, srv, http.MethodGet, "/api/v1/safety?hazard=flood&tier=extreme", "").Code)
}

func TestContacts(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodGet, "/api/v1/contacts", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var contacts catalog.Contacts
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &contacts))
	assert.Contains(t, contacts.National, catalog.Contact{Name: "National Emergency", Number: "112"})
	assert.NotEmpty(t, contacts.ControlRooms)
}

func TestHistory(t *testing.T) {
	rec := do(t, newTestServer(), http.MethodGet, "/api/v1/history?hazard=earthquake", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Events []catalog.HistoricalDisaster `json:"events"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Events, 4)
	assert.Equal(t, 2015, body.Events[0].Year, "newest first")
	assert.Equal(t, 2001, body.Events[3].Year)
	for i := 1; i < len(body.Events); i++ {
		assert.GreaterOrEqual(t, body.Events[i-1].Year, body.Events[i].Year)
	}
}

func TestVulnerability(t *testing.T) {
	srv := newTestServer()

	rec := do(t, srv, http.MethodGet, "/api/v1/vulnerability?state=Odisha", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var p domain.RegionProfile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, "Odisha", p.State)

	rec = do(t, srv, http.MethodGet, "/api/v1/vulnerability", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Odisha")

	assert.Equal(t, http.StatusNotFound, do(t, srv, http.MethodGet, "/api/v1/vulnerability?state=Atlantis", "").Code)
}

// --- middleware ---

func TestRequestID(t *testing.T) {
	srv := newTestServer()

	rec := do(t, srv, http.MethodGet, "/healthz", "")
	assert.Len(t, rec.Header().Get(httpadapter.HeaderRequestID), 36)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(httpadapter.HeaderRequestID, "abc-123")
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get(httpadapter.HeaderRequestID))
}

func TestPanicRecovered(t *testing.T) {
	srv := httpadapter.NewServer(":0", panicking{newAssessor()}, discardLogger())
	rec := do(t, srv, http.MethodGet, "/api/v1/risk?lat=10&lon=76", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "internal error", decodeError(t, rec))
}

func TestCORS(t *testing.T) {
	const origin = "https://map.example.in"
	srv := httpadapter.NewServer(":0", newAssessor(), discardLogger(), httpadapter.WithAllowedOrigins([]string{origin}))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/risk", nil)
	req.Header.Set("Origin", origin)
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, origin, rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/v1/contacts", nil)
	req.Header.Set("Origin", "https://elsewhere.example.com")
	rec = httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_DisabledByDefault(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/contacts", nil)
	req.Header.Set("Origin", "https://map.example.in")
	rec := httptest.NewRecorder()
	newTestServer().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
