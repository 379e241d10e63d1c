package risk

import (
	"slices"

	"github.com/couchcryptid/hazard-risk-service/internal/domain"
)

// MaxRecommendations caps the recommendation list.
const MaxRecommendations = 5

const (
	tipsPerHazard       = 2
	multipleRisksNotice = "Multiple risks detected - enhance emergency preparedness"
	relocationNotice    = "⚠️ CRITICAL: Consider temporary relocation if possible"
)

// GenericRecommendations is returned when no hazard reaches the high tier.
var GenericRecommendations = []string{
	"Stay informed about weather conditions",
	"Maintain basic emergency preparedness",
	"Review evacuation routes periodically",
}

// recommend builds a deduplicated list of at most five actions, led by the
// relocation notice when the overall tier is critical.
func (e *Engine) recommend(results []domain.HazardAssessment, o domain.OverallAssessment) []string {
	var elevated []domain.HazardType
	for _, a := range results {
		if a.Tier.AtLeast(domain.TierHigh) {
			elevated = append(elevated, a.Hazard)
		}
	}
	if len(elevated) == 0 {
		return slices.Clone(GenericRecommendations)
	}

	var recs []string
	for _, h := range elevated {
		if g, ok := e.catalog.Safety(h); ok {
			recs = append(recs, g.Before[:min(tipsPerHazard, len(g.Before))]...)
		}
	}
	if len(elevated) > 1 {
		recs = append(recs, multipleRisksNotice)
	}
	if o.Tier == domain.TierCritical {
		recs = append([]string{relocationNotice}, recs...)
	}

	recs = dedupe(recs)
	if len(recs) == 0 {
		return slices.Clone(GenericRecommendations)
	}
	if len(recs) > MaxRecommendations {
		recs = recs[:MaxRecommendations]
	}
	return recs
}

func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := items[:0]
	for _, s := range items {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
