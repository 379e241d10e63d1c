package domain

import (
	"math"
	"strings"
	"time"
)

// Default weather values substituted for absent or non-finite observations.
const (
	DefaultTemperatureC = 25.0
	DefaultHumidityPct  = 50.0
	DefaultPressureHPa  = 1013.0
	DefaultWindSpeedMps = 0.0
	DefaultCondition    = "clear"
)

// WeatherObservation is a current-conditions snapshot for a location.
type WeatherObservation struct {
	TemperatureC float64 `json:"temperature_c"`
	HumidityPct  float64 `json:"humidity_pct"`
	PressureHPa  float64 `json:"pressure_hpa"`
	WindSpeedMps float64 `json:"wind_speed_mps"`
	Condition    string  `json:"condition"`
}

// DefaultWeather returns the observation assumed when none is available.
func DefaultWeather() WeatherObservation {
	return WeatherObservation{
		TemperatureC: DefaultTemperatureC,
		HumidityPct:  DefaultHumidityPct,
		PressureHPa:  DefaultPressureHPa,
		WindSpeedMps: DefaultWindSpeedMps,
		Condition:    DefaultCondition,
	}
}

// Normalize replaces non-finite fields with defaults and lowercases the
// condition.
func (w WeatherObservation) Normalize() WeatherObservation {
	w.TemperatureC = finiteOr(w.TemperatureC, DefaultTemperatureC)
	w.HumidityPct = finiteOr(w.HumidityPct, DefaultHumidityPct)
	w.PressureHPa = finiteOr(w.PressureHPa, DefaultPressureHPa)
	w.WindSpeedMps = finiteOr(w.WindSpeedMps, DefaultWindSpeedMps)
	w.Condition = strings.ToLower(strings.TrimSpace(w.Condition))
	if w.Condition == "" {
		w.Condition = DefaultCondition
	}
	return w
}

func finiteOr(v, def float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return v
}

// SeismicEvent is a single recorded earthquake.
type SeismicEvent struct {
	ID         string     `json:"id"`
	Magnitude  float64    `json:"magnitude"`
	Epicenter  Coordinate `json:"epicenter"`
	OccurredAt time.Time  `json:"occurred_at"`
	Place      string     `json:"place,omitempty"`
}
