package risk

import (
	"fmt"
	"math"

	"github.com/couchcryptid/hazard-risk-service/internal/catalog"
	"github.com/couchcryptid/hazard-risk-service/internal/domain"
)

// baseScore is the proximity score at the exact center of a zone.
var baseScore = map[domain.Tier]float64{
	domain.TierCritical: 60,
	domain.TierHigh:     40,
	domain.TierMedium:   25,
	domain.TierLow:      10,
}

// proximityScore falls off linearly from the tier's base score at the center
// to zero at the edge, rounded to a whole number.
func proximityScore(distance, radius float64, tier domain.Tier) float64 {
	return math.Round(baseScore[tier] * (1 - distance/radius))
}

// zoneMatch is the outcome of scanning one hazard's zones.
type zoneMatch struct {
	score    float64
	factors  []string
	nearestM float64
	region   catalog.HazardRegion
	found    bool
}

// scanRegions walks the zones in catalog order. A zone counts only if the
// point is inside its radius and nearer than every zone counted so far; the
// score is the largest proximity score among counted zones.
func scanRegions(regions []catalog.HazardRegion, c domain.Coordinate) zoneMatch {
	m := zoneMatch{nearestM: math.Inf(1)}
	for _, r := range regions {
		d := domain.DistanceMeters(c, r.Center)
		if d >= r.RadiusMeters || d >= m.nearestM {
			continue
		}
		m.nearestM = d
		m.score = math.Max(m.score, proximityScore(d, r.RadiusMeters, r.BaselineTier))
		m.factors = append(m.factors, fmt.Sprintf("%dkm from %s", roundKm(d), r.Name))
		m.region = r
		m.found = true
	}
	return m
}

// falloff scales a reference point's weight linearly to zero at its radius.
func falloff(p catalog.ReferencePoint, d float64) float64 {
	return math.Max(0, p.Weight*(1-d/p.RadiusMeters))
}

func roundKm(meters float64) int {
	return int(math.Round(meters / 1000))
}
