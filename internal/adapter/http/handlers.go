package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"

	"github.com/couchcryptid/hazard-risk-service/internal/domain"
)

const maxBodyBytes = 1 << 20

// evaluateRequest is the POST /api/v1/risk body. Weather and earthquakes
// are optional; omitted weather, or any omitted weather field, is scored
// with the neutral defaults.
type evaluateRequest struct {
	Location    *domain.Coordinate    `json:"location"`
	Weather     *weatherBody          `json:"weather"`
	Earthquakes []domain.SeismicEvent `json:"earthquakes"`
}

type weatherBody struct {
	TemperatureC *float64 `json:"temperature_c"`
	HumidityPct  *float64 `json:"humidity_pct"`
	PressureHPa  *float64 `json:"pressure_hpa"`
	WindSpeedMps *float64 `json:"wind_speed_mps"`
	Condition    string   `json:"condition"`
}

// observation maps missing readings to NaN so Normalize substitutes the
// defaults instead of scoring them as zero.
func (b *weatherBody) observation() *domain.WeatherObservation {
	if b == nil {
		return nil
	}
	obs := domain.WeatherObservation{
		TemperatureC: valueOr(b.TemperatureC),
		HumidityPct:  valueOr(b.HumidityPct),
		PressureHPa:  valueOr(b.PressureHPa),
		WindSpeedMps: valueOr(b.WindSpeedMps),
		Condition:    b.Condition,
	}.Normalize()
	return &obs
}

func valueOr(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}

func errorBody(msg string) map[string]string {
	return map[string]string{"error": msg}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrInvalidInput) {
		sharedobs.WriteJSON(w, http.StatusBadRequest, errorBody(err.Error()))
		return
	}
	s.logger.Error("request failed", "request_id", RequestID(r.Context()), "path", r.URL.Path, "error", err)
	sharedobs.WriteJSON(w, http.StatusInternalServerError, errorBody("internal error"))
}

func (s *Server) handleAssess(w http.ResponseWriter, r *http.Request) {
	c, err := parseCoordinate(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	report, err := s.svc.Assess(r.Context(), c)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, report)
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, r, fmt.Errorf("%w: decode body: %v", domain.ErrInvalidInput, err))
		return
	}
	if req.Location == nil {
		s.writeError(w, r, fmt.Errorf("%w: location is required", domain.ErrInvalidInput))
		return
	}
	report, err := s.svc.Evaluate(*req.Location, req.Weather.observation(), req.Earthquakes)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, report)
}

func (s *Server) handleRegions(w http.ResponseWriter, r *http.Request) {
	cat := s.svc.Catalog()
	q := r.URL.Query()

	var hazards []domain.HazardType
	if v := q.Get("hazard"); v != "" {
		h, err := domain.ParseHazardType(v)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		hazards = []domain.HazardType{h}
	}

	switch q.Get("format") {
	case "geojson":
		sharedobs.WriteJSON(w, http.StatusOK, cat.FeatureCollection(hazards...))
		return
	case "", "json":
	default:
		s.writeError(w, r, fmt.Errorf("%w: unknown format %q", domain.ErrInvalidInput, q.Get("format")))
		return
	}

	if len(hazards) == 1 {
		sharedobs.WriteJSON(w, http.StatusOK, map[string]any{"hazard": hazards[0], "regions": cat.Regions(hazards[0])})
		return
	}
	all := make(map[domain.HazardType]any, len(domain.HazardOrder))
	for _, h := range domain.HazardOrder {
		all[h] = cat.Regions(h)
	}
	sharedobs.WriteJSON(w, http.StatusOK, all)
}

func (s *Server) handleSafety(w http.ResponseWriter, r *http.Request) {
	h, err := domain.ParseHazardType(r.URL.Query().Get("hazard"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	cat := s.svc.Catalog()
	guide, ok := cat.Safety(h)
	if !ok {
		sharedobs.WriteJSON(w, http.StatusNotFound, errorBody(fmt.Sprintf("no safety guide for %s", h)))
		return
	}

	q := r.URL.Query().Get("tier")
	if q == "" {
		sharedobs.WriteJSON(w, http.StatusOK, map[string]any{"hazard": h, "guide": guide})
		return
	}
	tier := domain.Tier(strings.ToLower(q))
	if !tier.Valid() {
		s.writeError(w, r, fmt.Errorf("%w: unknown tier %q", domain.ErrInvalidInput, q))
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, map[string]any{
		"hazard": h,
		"tier":   tier,
		"tips":   cat.SafetyTips(h, tier),
	})
}

func (s *Server) handleContacts(w http.ResponseWriter, _ *http.Request) {
	sharedobs.WriteJSON(w, http.StatusOK, s.svc.Catalog().Contacts())
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	h, err := domain.ParseHazardType(r.URL.Query().Get("hazard"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, map[string]any{"hazard": h, "events": s.svc.Catalog().History(h)})
}

func (s *Server) handleVulnerability(w http.ResponseWriter, r *http.Request) {
	cat := s.svc.Catalog()
	state := r.URL.Query().Get("state")
	if state == "" {
		sharedobs.WriteJSON(w, http.StatusOK, map[string]any{"states": cat.States()})
		return
	}
	p, ok := cat.Vulnerability(state)
	if !ok {
		sharedobs.WriteJSON(w, http.StatusNotFound, errorBody(fmt.Sprintf("no vulnerability profile for %s", state)))
		return
	}
	sharedobs.WriteJSON(w, http.StatusOK, p)
}

func parseCoordinate(r *http.Request) (domain.Coordinate, error) {
	q := r.URL.Query()
	lat, err := parseFloatParam(q.Get("lat"), "lat")
	if err != nil {
		return domain.Coordinate{}, err
	}
	lon, err := parseFloatParam(q.Get("lon"), "lon")
	if err != nil {
		return domain.Coordinate{}, err
	}
	return domain.Coordinate{Lat: lat, Lon: lon}, nil
}

func parseFloatParam(v, name string) (float64, error) {
	if v == "" {
		return 0, fmt.Errorf("%w: %s is required", domain.ErrInvalidInput, name)
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number", domain.ErrInvalidInput, name)
	}
	return f, nil
}
