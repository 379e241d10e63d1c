package risk

import (
	"fmt"
	"math"
	"strings"

	"github.com/couchcryptid/hazard-risk-service/internal/catalog"
	"github.com/couchcryptid/hazard-risk-service/internal/domain"
)

// estimatePrecipitation derives a 0-100 rainfall proxy from current
// conditions, since point observations carry no rainfall amount.
func estimatePrecipitation(w domain.WeatherObservation) float64 {
	var p float64
	cond := strings.ToLower(w.Condition)
	if strings.Contains(cond, "rain") {
		p += 50
	}
	if strings.Contains(cond, "storm") {
		p += 75
	}
	if strings.Contains(cond, "drizzle") {
		p += 15
	}

	switch {
	case w.HumidityPct > 90:
		p += 20
	case w.HumidityPct > 80:
		p += 10
	}

	switch {
	case w.PressureHPa < 980:
		p += 15
	case w.PressureHPa < 1000:
		p += 5
	}
	return math.Min(100, p)
}

// riverBonus scores the first river in list order whose radius contains c.
func riverBonus(rivers []catalog.ReferencePoint, c domain.Coordinate) (float64, string, bool) {
	for _, r := range rivers {
		d := domain.DistanceMeters(c, r.Center)
		if d < r.RadiusMeters {
			return falloff(r, d), fmt.Sprintf("Near %s river system", r.Name), true
		}
	}
	return 0, "", false
}

// coastalExposure measures distance to the nearest coastal reference point.
type coastalExposure struct {
	coastal  bool
	nearestM float64
	bonus    float64
}

func coastalProximity(coast []catalog.ReferencePoint, c domain.Coordinate) coastalExposure {
	ce := coastalExposure{nearestM: math.Inf(1)}
	var nearest catalog.ReferencePoint
	for _, p := range coast {
		if d := domain.DistanceMeters(c, p.Center); d < ce.nearestM {
			ce.nearestM = d
			nearest = p
		}
	}
	if ce.nearestM < nearest.RadiusMeters {
		ce.coastal = true
		ce.bonus = math.Max(5, falloff(nearest, ce.nearestM))
	}
	return ce
}

// floodTerrain adds flood weight for regional landforms.
func floodTerrain(c domain.Coordinate, coastal bool) (float64, []string) {
	var score float64
	var factors []string
	if c.Lat > 28 {
		score += 5
		factors = append(factors, "Himalayan region - steep terrain")
	}
	if c.Lat > 10 && c.Lat < 21 && c.Lon > 72 && c.Lon < 78 {
		score += 8
		factors = append(factors, "Western Ghats - hilly terrain")
	}
	if c.Lat > 11 && c.Lat < 22 && c.Lon > 78 && c.Lon < 87 {
		score += 6
		factors = append(factors, "Eastern Ghats region")
	}
	if coastal {
		score += 10
		factors = append(factors, "Coastal plain - low elevation")
	}
	return score, factors
}

// withinEach sums the falloff of every reference point whose radius contains
// c, naming each with format.
func withinEach(points []catalog.ReferencePoint, c domain.Coordinate, format string) (float64, []string) {
	var score float64
	var factors []string
	for _, p := range points {
		d := domain.DistanceMeters(c, p.Center)
		if d < p.RadiusMeters {
			score += falloff(p, d)
			factors = append(factors, fmt.Sprintf(format, p.Name))
		}
	}
	return score, factors
}

// aridClimate matches the first dry-climate box containing c.
func aridClimate(c domain.Coordinate) (float64, string) {
	switch {
	case c.Lon < 75 && c.Lat > 24 && c.Lat < 30:
		return 20, "Arid climate zone"
	case c.Lat > 16 && c.Lat < 20 && c.Lon > 74 && c.Lon < 78:
		return 15, "Rain shadow region"
	case c.Lat > 14 && c.Lat < 18 && c.Lon > 75 && c.Lon < 78:
		return 12, "Semi-arid region"
	default:
		return 0, ""
	}
}
