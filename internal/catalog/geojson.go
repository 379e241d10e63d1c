package catalog

import (
	"fmt"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/couchcryptid/hazard-risk-service/internal/domain"
)

// FeatureCollection renders the regions of the given hazards, or of every
// hazard when none are given, as GeoJSON point features for map layers.
// Each feature carries its radius in metres so clients can draw the circle.
func (c *Catalog) FeatureCollection(hazards ...domain.HazardType) *geojson.FeatureCollection {
	if len(hazards) == 0 {
		hazards = domain.HazardOrder
	}

	fc := &geojson.FeatureCollection{Features: []*geojson.Feature{}}
	for _, h := range hazards {
		for i, r := range c.regions[h] {
			fc.Features = append(fc.Features, &geojson.Feature{
				ID:       fmt.Sprintf("%s-%d", h, i),
				Geometry: geom.NewPointFlat(geom.XY, []float64{r.Center.Lon, r.Center.Lat}),
				Properties: map[string]any{
					"hazard":        h,
					"name":          r.Name,
					"state":         r.State,
					"baseline_tier": r.BaselineTier,
					"radius_m":      r.RadiusMeters,
					"details":       r.Details,
				},
			})
		}
	}
	return fc
}
