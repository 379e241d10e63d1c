package risk

import (
	"fmt"
	"math"
	"slices"

	"github.com/couchcryptid/hazard-risk-service/internal/domain"
)

// applySeasonal multiplies the hazards the season boosts, capping at 100.
// A factor is recorded only when the score actually rose.
func applySeasonal(results []domain.HazardAssessment, s Season) {
	for i := range results {
		a := &results[i]
		if !slices.Contains(s.Boosts, a.Hazard) {
			continue
		}
		old := a.Score
		a.Rescore(math.Min(100, old*s.Multiplier))
		if old < a.Score {
			a.AddFactor("%s season increases %s risk", s.Name, a.Hazard)
		}
	}
}

// applyWeather adds cross-hazard bumps for extreme conditions. It runs after
// applySeasonal so the additive bumps are never multiplied.
func applyWeather(results []domain.HazardAssessment, w domain.WeatherObservation) {
	extremeTemp := w.TemperatureC > 45 || w.TemperatureC < 0
	for i := range results {
		a := &results[i]
		score := a.Score
		if extremeTemp {
			score += 5
		}
		if w.PressureHPa < 960 && (a.Hazard == domain.Flood || a.Hazard == domain.Cyclone) {
			score += 10
			a.AddFactor("Extreme low pressure system")
		}
		if w.WindSpeedMps > 25 && (a.Hazard == domain.Landslide || a.Hazard == domain.Cyclone) {
			score += 8
			a.AddFactor("Very strong winds detected")
		}
		a.Rescore(score)
	}
}

// overall combines per-hazard scores as 0.6*max + 0.4*mean.
func overall(results []domain.HazardAssessment) domain.OverallAssessment {
	var o domain.OverallAssessment
	if len(results) == 0 {
		o.Tier = domain.TierLow
		o.Primary = domain.PrimaryHazard{Type: domain.HazardNone, Tier: domain.TierLow}
		o.ConfidencePct = confidence(results)
		return o
	}

	var sum, maxScore float64
	primary := domain.PrimaryHazard{Type: domain.HazardNone, Tier: domain.TierLow}
	for _, a := range results {
		sum += a.Score
		if a.Score > maxScore {
			maxScore = a.Score
			primary = domain.PrimaryHazard{Type: a.Hazard, Tier: a.Tier, Score: a.Score}
		}
		switch a.Tier {
		case domain.TierCritical:
			o.CriticalCount++
		case domain.TierHigh:
			o.HighCount++
		}
	}
	mean := sum / float64(len(results))

	o.Score = math.Round(0.6*maxScore + 0.4*mean)
	o.Tier = domain.ScoreToTier(o.Score)
	o.Primary = primary
	o.ConfidencePct = confidence(results)
	return o
}

// Confidence bounds.
const (
	MaxConfidence = 100.0
	MinConfidence = 60.0
)

// confidence starts at 100 and loses 10 per thinly supported hazard (fewer
// than two factors) and 5 per hazard whose nearest zone is over 50 km away.
func confidence(results []domain.HazardAssessment) float64 {
	c := MaxConfidence
	for _, a := range results {
		if len(a.Factors) < 2 {
			c -= 10
		}
		if a.NearestZoneKm != nil && *a.NearestZoneKm > 50 {
			c -= 5
		}
	}
	return math.Max(MinConfidence, c)
}

func statistics(results []domain.HazardAssessment, weatherObserved bool, recent int) domain.Statistics {
	st := domain.Statistics{WeatherObserved: weatherObserved, RecentQuakes: recent}
	if len(results) == 0 {
		return st
	}
	var sum float64
	for _, a := range results {
		sum += a.Score
		st.FactorCount += len(a.Factors)
		if a.Tier.AtLeast(domain.TierHigh) {
			st.HighRiskCount++
		}
	}
	st.AverageScore = math.Round(sum / float64(len(results)))
	return st
}

// sanitize guards against an estimator returning a malformed result.
func sanitize(h domain.HazardType, a domain.HazardAssessment) (domain.HazardAssessment, error) {
	if a.Hazard != h {
		return domain.Unavailable(h), fmt.Errorf("estimator returned %q result", a.Hazard)
	}
	if math.IsNaN(a.Score) || math.IsInf(a.Score, 0) {
		return domain.Unavailable(h), fmt.Errorf("non-finite score %v", a.Score)
	}
	a.Rescore(a.Score)
	if a.Factors == nil {
		a.Factors = []string{}
	}
	return a, nil
}
