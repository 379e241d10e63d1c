package risk

import (
	"math"
	"time"

	"github.com/couchcryptid/hazard-risk-service/internal/domain"
)

// RecentQuakeWindow is how far back seismic events affect earthquake scoring.
const RecentQuakeWindow = 7 * 24 * time.Hour

// input is the read-only view each estimator receives.
type input struct {
	coord   domain.Coordinate
	weather domain.WeatherObservation
	events  []domain.SeismicEvent
	now     time.Time
}

type estimator func(in input) domain.HazardAssessment

// defaultDetails describe a hazard by tier when no zone contains the point.
var defaultDetails = map[domain.HazardType]map[domain.Tier]string{
	domain.Flood: {
		domain.TierCritical: "Extremely high flood risk - immediate evacuation may be necessary",
		domain.TierHigh:     "High flood risk - monitor water levels and be prepared to evacuate",
		domain.TierMedium:   "Moderate flood risk - stay alert during heavy rains",
		domain.TierLow:      "Low flood risk - normal precautions sufficient",
	},
	domain.Earthquake: {
		domain.TierCritical: "Critical earthquake risk - ensure structural safety",
		domain.TierHigh:     "High earthquake risk - secure heavy objects and know evacuation routes",
		domain.TierMedium:   "Moderate earthquake risk - basic earthquake preparedness recommended",
		domain.TierLow:      "Low earthquake risk - maintain general awareness",
	},
	domain.Landslide: {
		domain.TierCritical: "Extreme landslide risk - avoid slopes and unstable areas",
		domain.TierHigh:     "High landslide risk - monitor slope conditions",
		domain.TierMedium:   "Moderate landslide risk - be cautious during heavy rains",
		domain.TierLow:      "Low landslide risk - normal precautions sufficient",
	},
	domain.Cyclone: {
		domain.TierCritical: "Critical cyclone risk - prepare for potential evacuation",
		domain.TierHigh:     "High cyclone risk - secure property and monitor weather alerts",
		domain.TierMedium:   "Moderate cyclone risk - stay informed about weather conditions",
		domain.TierLow:      "Low cyclone risk - maintain general awareness",
	},
	domain.Drought: {
		domain.TierCritical: "Severe drought conditions - implement water conservation immediately",
		domain.TierHigh:     "High drought risk - conserve water and monitor reservoir levels",
		domain.TierMedium:   "Moderate drought risk - practice water conservation",
		domain.TierLow:      "Low drought risk - normal water management sufficient",
	},
}

func newAssessment(h domain.HazardType, m zoneMatch) domain.HazardAssessment {
	return domain.HazardAssessment{
		Hazard:  h,
		Factors: m.factors,
	}
}

// finish sets the final score and fills zone details from the nearest
// containing zone, or tier-based text when there is none.
func finish(a *domain.HazardAssessment, m zoneMatch, score float64) {
	a.Rescore(score)
	if a.Factors == nil {
		a.Factors = []string{}
	}
	if !m.found {
		a.Details = defaultDetails[a.Hazard][a.Tier]
		return
	}
	km := float64(roundKm(m.nearestM))
	a.NearestZoneKm = &km
	a.Details = m.region.Details
	a.ZoneName = m.region.Name
	a.ZoneState = m.region.State
}

func (e *Engine) assessFlood(in input) domain.HazardAssessment {
	m := scanRegions(e.catalog.Regions(domain.Flood), in.coord)
	a := newAssessment(domain.Flood, m)
	score := m.score
	w := in.weather

	switch precip := estimatePrecipitation(w); {
	case precip > 50:
		score += 20
		a.AddFactor("Heavy rainfall detected")
	case precip > 25:
		score += 10
		a.AddFactor("Moderate rainfall expected")
	}
	if w.PressureHPa < 980 {
		score += 15
		a.AddFactor("Low pressure system detected")
	}
	if w.HumidityPct > 85 {
		score += 5
		a.AddFactor("Very high humidity levels")
	}

	if bonus, factor, ok := riverBonus(e.catalog.Rivers(), in.coord); ok {
		score += bonus
		a.AddFactor("%s", factor)
	}

	coast := coastalProximity(e.catalog.Coastline(), in.coord)
	terrain, factors := floodTerrain(in.coord, coast.coastal)
	score += terrain
	a.Factors = append(a.Factors, factors...)

	finish(&a, m, score)
	return a
}

func (e *Engine) assessEarthquake(in input) domain.HazardAssessment {
	m := scanRegions(e.catalog.Regions(domain.Earthquake), in.coord)
	a := newAssessment(domain.Earthquake, m)
	score := m.score

	if n, maxMag := recentQuakes(in.events, in.now); n > 0 {
		switch {
		case maxMag >= 5:
			score += 30
		case maxMag >= 4:
			score += 20
		default:
			score += 10
		}
		a.AddFactor("%d recent earthquakes (max: M%.1f)", n, maxMag)
	}

	historical, factors := withinEach(e.catalog.FaultZones(), in.coord, "Near %s")
	score += historical
	a.Factors = append(a.Factors, factors...)

	finish(&a, m, score)
	return a
}

// recentQuakes counts events inside the trailing window and their largest
// magnitude. Non-finite magnitudes count as zero.
func recentQuakes(events []domain.SeismicEvent, now time.Time) (int, float64) {
	cutoff := now.Add(-RecentQuakeWindow)
	var n int
	var maxMag float64
	for _, ev := range events {
		if !ev.OccurredAt.After(cutoff) {
			continue
		}
		n++
		if mag := ev.Magnitude; !math.IsNaN(mag) && !math.IsInf(mag, 0) && mag > maxMag {
			maxMag = mag
		}
	}
	return n, maxMag
}

func (e *Engine) assessLandslide(in input) domain.HazardAssessment {
	m := scanRegions(e.catalog.Regions(domain.Landslide), in.coord)
	a := newAssessment(domain.Landslide, m)
	score := m.score

	terrain, factors := withinEach(e.catalog.UnstableSlopes(), in.coord, "Near %s - unstable slopes")
	score += terrain
	a.Factors = append(a.Factors, factors...)

	switch precip := estimatePrecipitation(in.weather); {
	case precip > 75:
		score += 25
		a.AddFactor("Extremely heavy rainfall - high landslide risk")
	case precip > 50:
		score += 15
		a.AddFactor("Heavy rainfall increases landslide risk")
	case precip > 25:
		score += 8
		a.AddFactor("Moderate rainfall - watch for slope instability")
	}
	if in.weather.WindSpeedMps > 15 {
		score += 5
		a.AddFactor("Strong winds may affect slope stability")
	}

	finish(&a, m, score)
	return a
}

func (e *Engine) assessCyclone(in input) domain.HazardAssessment {
	coast := coastalProximity(e.catalog.Coastline(), in.coord)
	if !coast.coastal {
		return domain.HazardAssessment{
			Hazard:  domain.Cyclone,
			Score:   0,
			Tier:    domain.TierLow,
			Factors: []string{"Located far from coastline"},
			Details: "Inland location - minimal cyclone risk",
		}
	}

	m := scanRegions(e.catalog.Regions(domain.Cyclone), in.coord)
	a := newAssessment(domain.Cyclone, m)
	score := m.score + coast.bonus
	a.AddFactor("%dkm from coast", roundKm(coast.nearestM))

	if inCycloneSeason(in.now.Month()) {
		score += 10
		a.AddFactor("Currently in cyclone season")
	}

	w := in.weather
	switch {
	case w.PressureHPa < 970:
		score += 20
		a.AddFactor("Very low atmospheric pressure detected")
	case w.PressureHPa < 990:
		score += 10
		a.AddFactor("Low pressure system present")
	}
	switch {
	case w.WindSpeedMps > 20:
		score += 15
		a.AddFactor("High wind speeds detected")
	case w.WindSpeedMps > 12:
		score += 8
		a.AddFactor("Elevated wind speeds")
	}
	if w.HumidityPct > 90 {
		score += 5
		a.AddFactor("Very high humidity levels")
	}

	finish(&a, m, score)
	return a
}

func (e *Engine) assessDrought(in input) domain.HazardAssessment {
	m := scanRegions(e.catalog.Regions(domain.Drought), in.coord)
	a := newAssessment(domain.Drought, m)
	score := m.score
	w := in.weather

	if inPreMonsoon(in.now.Month()) {
		score += 15
		a.AddFactor("Pre-monsoon season increases drought risk")
	}

	switch {
	case w.TemperatureC > 40:
		score += 20
		a.AddFactor("Extreme heat conditions")
	case w.TemperatureC > 35:
		score += 12
		a.AddFactor("Very high temperatures")
	case w.TemperatureC > 30:
		score += 6
		a.AddFactor("High temperatures")
	}
	switch {
	case w.HumidityPct < 20:
		score += 15
		a.AddFactor("Very low humidity levels")
	case w.HumidityPct < 30:
		score += 8
		a.AddFactor("Low humidity conditions")
	}
	if w.PressureHPa > 1020 {
		score += 8
		a.AddFactor("High pressure system - stable dry conditions")
	}

	if bonus, factor := aridClimate(in.coord); bonus > 0 {
		score += bonus
		a.AddFactor("%s", factor)
	}

	finish(&a, m, score)
	return a
}
