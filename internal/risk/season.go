package risk

import (
	"time"

	"github.com/couchcryptid/hazard-risk-service/internal/domain"
)

// Season is a climatic period that scales the hazards it boosts.
type Season struct {
	Name       string
	Multiplier float64
	Boosts     []domain.HazardType
}

var (
	Monsoon     = Season{Name: "monsoon", Multiplier: 1.5, Boosts: []domain.HazardType{domain.Flood, domain.Landslide}}
	PostMonsoon = Season{Name: "post-monsoon", Multiplier: 1.3, Boosts: []domain.HazardType{domain.Cyclone}}
	Winter      = Season{Name: "winter", Multiplier: 1.1, Boosts: []domain.HazardType{domain.Earthquake}}
	Summer      = Season{Name: "summer", Multiplier: 1.4, Boosts: []domain.HazardType{domain.Drought}}
)

// SeasonFor returns the season a month falls in. Monsoon runs June to
// October, post-monsoon November and December, winter January to March,
// and summer April and May.
func SeasonFor(m time.Month) Season {
	switch {
	case m >= time.June && m <= time.October:
		return Monsoon
	case m >= time.November:
		return PostMonsoon
	case m <= time.March:
		return Winter
	default:
		return Summer
	}
}

// inCycloneSeason covers both the pre-monsoon (April to June) and
// post-monsoon (October to December) cyclone peaks.
func inCycloneSeason(m time.Month) bool {
	return (m >= time.April && m <= time.June) || m >= time.October
}

func inPreMonsoon(m time.Month) bool {
	return m >= time.March && m <= time.June
}

// ist is Indian Standard Time, used to decide the calendar month.
var ist = time.FixedZone("IST", 5*60*60+30*60)
