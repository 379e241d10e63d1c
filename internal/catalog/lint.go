package catalog

import (
	"fmt"
	"slices"

	"github.com/couchcryptid/hazard-risk-service/internal/domain"
)

// Lint reports gaps that do not make a catalog invalid but degrade the
// reports built from it. An empty result means the catalog is complete.
func (c *Catalog) Lint() []string {
	var warnings []string
	warn := func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	}

	for _, h := range domain.HazardOrder {
		if len(c.regions[h]) == 0 {
			warn("%s: no hazard regions", h)
		}
		g, ok := c.safety[h]
		switch {
		case !ok:
			warn("%s: no safety guide", h)
		case len(g.Before) < 2:
			warn("%s: safety guide has %d before tips, recommendations use 2", h, len(g.Before))
		}
	}

	seen := make(map[string]bool)
	for _, h := range domain.HazardOrder {
		for _, r := range c.regions[h] {
			if r.State == "" || seen[r.State] {
				continue
			}
			seen[r.State] = true
			if _, ok := c.vulnerability[r.State]; !ok {
				warn("state %q has regions but no vulnerability profile", r.State)
			}
		}
	}

	if len(c.contacts.National) == 0 {
		warn("no national emergency contacts")
	}
	for _, city := range c.demoCities {
		if !city.Location.Valid() {
			warn("demo city %q has invalid location", city.Name)
		}
	}

	slices.Sort(warnings)
	return warnings
}
