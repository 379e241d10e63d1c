package domain

import (
	"fmt"
	"math"
	"slices"
	"time"
)

// HazardType identifies one of the five scored hazards.
type HazardType string

const (
	Flood      HazardType = "flood"
	Earthquake HazardType = "earthquake"
	Landslide  HazardType = "landslide"
	Cyclone    HazardType = "cyclone"
	Drought    HazardType = "drought"
)

// HazardNone is reported as the primary hazard when every score is zero.
const HazardNone HazardType = "none"

// HazardOrder is the canonical order hazards are evaluated and reported in.
var HazardOrder = []HazardType{Flood, Earthquake, Landslide, Cyclone, Drought}

// ParseHazardType returns the hazard named by s.
func ParseHazardType(s string) (HazardType, error) {
	h := HazardType(s)
	if slices.Contains(HazardOrder, h) {
		return h, nil
	}
	return "", fmt.Errorf("%w: unknown hazard %q", ErrInvalidInput, s)
}

// Tier is a qualitative risk level.
type Tier string

const (
	TierLow      Tier = "low"
	TierMedium   Tier = "medium"
	TierHigh     Tier = "high"
	TierCritical Tier = "critical"
)

// Tier thresholds on the 0-100 score scale.
const (
	CriticalThreshold = 60.0
	HighThreshold     = 35.0
	MediumThreshold   = 15.0
)

// ScoreToTier maps a score to its tier.
func ScoreToTier(score float64) Tier {
	switch {
	case score >= CriticalThreshold:
		return TierCritical
	case score >= HighThreshold:
		return TierHigh
	case score >= MediumThreshold:
		return TierMedium
	default:
		return TierLow
	}
}

// Rank orders tiers from low (0) to critical (3). Unknown tiers rank -1.
func (t Tier) Rank() int {
	switch t {
	case TierLow:
		return 0
	case TierMedium:
		return 1
	case TierHigh:
		return 2
	case TierCritical:
		return 3
	default:
		return -1
	}
}

// Valid reports whether t is one of the four known tiers.
func (t Tier) Valid() bool { return t.Rank() >= 0 }

// AtLeast reports whether t is as severe as other.
func (t Tier) AtLeast(other Tier) bool { return t.Rank() >= other.Rank() }

// HazardAssessment is the scored result for one hazard at one location.
// NearestZoneKm is the rounded distance to the nearest containing catalog
// zone, or nil when the point lies outside every zone.
type HazardAssessment struct {
	Hazard        HazardType `json:"hazard"`
	Score         float64    `json:"score"`
	Tier          Tier       `json:"tier"`
	Factors       []string   `json:"factors"`
	NearestZoneKm *float64   `json:"nearest_zone_km"`
	Details       string     `json:"details"`
	ZoneName      string     `json:"zone_name,omitempty"`
	ZoneState     string     `json:"zone_state,omitempty"`
}

// Rescore sets the score, clamped at zero, and recomputes the tier.
func (a *HazardAssessment) Rescore(score float64) {
	a.Score = math.Max(0, score)
	a.Tier = ScoreToTier(a.Score)
}

// AddFactor appends a human-readable reason to the factor list.
func (a *HazardAssessment) AddFactor(format string, args ...any) {
	if len(args) == 0 {
		a.Factors = append(a.Factors, format)
		return
	}
	a.Factors = append(a.Factors, fmt.Sprintf(format, args...))
}

// Unavailable is the safe result reported when a hazard cannot be assessed.
func Unavailable(h HazardType) HazardAssessment {
	return HazardAssessment{
		Hazard:  h,
		Score:   0,
		Tier:    TierLow,
		Factors: []string{"Risk assessment unavailable"},
		Details: fmt.Sprintf("Unable to assess %s risk at this time", h),
	}
}

// PrimaryHazard identifies the highest-scoring hazard. Type is [HazardNone]
// when every hazard scored zero.
type PrimaryHazard struct {
	Type  HazardType `json:"type"`
	Tier  Tier       `json:"tier"`
	Score float64    `json:"score"`
}

// OverallAssessment summarizes all five hazards.
type OverallAssessment struct {
	Score         float64       `json:"score"`
	Tier          Tier          `json:"tier"`
	CriticalCount int           `json:"critical_count"`
	HighCount     int           `json:"high_count"`
	Primary       PrimaryHazard `json:"primary_hazard"`
	ConfidencePct float64       `json:"confidence_pct"`
	Season        string        `json:"season"`
}

// Statistics are aggregate counts over the per-hazard results.
type Statistics struct {
	AverageScore    float64 `json:"average_score"`
	HighRiskCount   int     `json:"high_risk_count"`
	FactorCount     int     `json:"factor_count"`
	WeatherObserved bool    `json:"weather_observed"`
	RecentQuakes    int     `json:"recent_quakes"`
}

// RegionProfile ranks the hazards a state is most exposed to.
type RegionProfile struct {
	State     string     `json:"state" yaml:"state"`
	Primary   HazardType `json:"primary" yaml:"primary"`
	Secondary HazardType `json:"secondary" yaml:"secondary"`
	Tertiary  HazardType `json:"tertiary" yaml:"tertiary"`
}

// RiskReport is the complete output of one assessment.
type RiskReport struct {
	Location        Coordinate                      `json:"location"`
	Hazards         map[HazardType]HazardAssessment `json:"hazards"`
	Overall         OverallAssessment               `json:"overall"`
	Recommendations []string                        `json:"recommendations"`
	Statistics      Statistics                      `json:"statistics"`
	RegionProfile   *RegionProfile                  `json:"region_profile,omitempty"`
	GeneratedAt     time.Time                       `json:"generated_at"`
}
