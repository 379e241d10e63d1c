// Package catalog holds the static hazard geography used by the risk engine:
// hazard zones, reference points for rivers, faults, slopes and coastline,
// and the safety guidance tables served alongside assessments.
//
// A [Catalog] is immutable after construction. Accessors return copies, so
// it can be shared by any number of concurrent assessments.
package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/couchcryptid/hazard-risk-service/internal/domain"
)

// ErrInvalidCatalog is returned when catalog data fails validation.
var ErrInvalidCatalog = errors.New("invalid catalog")

// HazardRegion is a circular zone with a baseline risk tier for one hazard.
type HazardRegion struct {
	Center       domain.Coordinate `json:"center" yaml:"center"`
	RadiusMeters float64           `json:"radius_m" yaml:"radius_m"`
	BaselineTier domain.Tier       `json:"baseline_tier" yaml:"baseline_tier"`
	Name         string            `json:"name" yaml:"name"`
	State        string            `json:"state" yaml:"state"`
	Details      string            `json:"details" yaml:"details"`
}

// ReferencePoint is a named point that contributes Weight to a hazard score
// when a location is within RadiusMeters of it, scaled linearly by distance.
type ReferencePoint struct {
	Name         string            `json:"name" yaml:"name"`
	Center       domain.Coordinate `json:"center" yaml:"center"`
	RadiusMeters float64           `json:"radius_m" yaml:"radius_m"`
	Weight       float64           `json:"weight" yaml:"weight"`
}

// SafetyGuide lists actions to take before, during, and after an event.
type SafetyGuide struct {
	Before []string `json:"before" yaml:"before"`
	During []string `json:"during" yaml:"during"`
	After  []string `json:"after" yaml:"after"`
}

// Contact is a named emergency phone number.
type Contact struct {
	Name   string `json:"name" yaml:"name"`
	Number string `json:"number" yaml:"number"`
}

// Contacts groups national helplines and city control rooms.
type Contacts struct {
	National     []Contact `json:"national" yaml:"national"`
	ControlRooms []Contact `json:"control_rooms" yaml:"control_rooms"`
}

// HistoricalDisaster is a notable past event. Magnitude is zero for
// non-seismic hazards.
type HistoricalDisaster struct {
	Hazard    domain.HazardType `json:"hazard" yaml:"hazard"`
	Year      int               `json:"year" yaml:"year"`
	Location  string            `json:"location" yaml:"location"`
	Magnitude float64           `json:"magnitude,omitempty" yaml:"magnitude,omitempty"`
}

// City is a named location used for demonstrations.
type City struct {
	Name     string            `json:"name" yaml:"name"`
	Location domain.Coordinate `json:"location" yaml:"location"`
}

// Data is the serialized form of a catalog.
type Data struct {
	Regions        map[domain.HazardType][]HazardRegion `json:"regions" yaml:"regions"`
	Rivers         []ReferencePoint                     `json:"rivers" yaml:"rivers"`
	FaultZones     []ReferencePoint                     `json:"fault_zones" yaml:"fault_zones"`
	UnstableSlopes []ReferencePoint                     `json:"unstable_slopes" yaml:"unstable_slopes"`
	Coastline      []ReferencePoint                     `json:"coastline" yaml:"coastline"`
	Safety         map[domain.HazardType]SafetyGuide    `json:"safety" yaml:"safety"`
	Contacts       Contacts                             `json:"contacts" yaml:"contacts"`
	Vulnerability  []domain.RegionProfile               `json:"vulnerability" yaml:"vulnerability"`
	History        []HistoricalDisaster                 `json:"history" yaml:"history"`
	DemoCities     []City                               `json:"demo_cities" yaml:"demo_cities"`
}

// Catalog is a validated, read-only view over Data.
type Catalog struct {
	regions        map[domain.HazardType][]HazardRegion
	rivers         []ReferencePoint
	faultZones     []ReferencePoint
	unstableSlopes []ReferencePoint
	coastline      []ReferencePoint
	safety         map[domain.HazardType]SafetyGuide
	contacts       Contacts
	vulnerability  map[string]domain.RegionProfile
	history        []HistoricalDisaster
	demoCities     []City
}

// New validates d and returns a catalog holding private copies of its data.
func New(d Data) (*Catalog, error) {
	if err := validate(d); err != nil {
		return nil, err
	}

	c := &Catalog{
		regions:        make(map[domain.HazardType][]HazardRegion, len(d.Regions)),
		rivers:         slices.Clone(d.Rivers),
		faultZones:     slices.Clone(d.FaultZones),
		unstableSlopes: slices.Clone(d.UnstableSlopes),
		coastline:      slices.Clone(d.Coastline),
		safety:         make(map[domain.HazardType]SafetyGuide, len(d.Safety)),
		contacts: Contacts{
			National:     slices.Clone(d.Contacts.National),
			ControlRooms: slices.Clone(d.Contacts.ControlRooms),
		},
		vulnerability: make(map[string]domain.RegionProfile, len(d.Vulnerability)),
		history:       slices.Clone(d.History),
		demoCities:    slices.Clone(d.DemoCities),
	}
	for h, regions := range d.Regions {
		c.regions[h] = slices.Clone(regions)
	}
	for h, g := range d.Safety {
		c.safety[h] = g.clone()
	}
	for _, p := range d.Vulnerability {
		c.vulnerability[p.State] = p
	}
	return c, nil
}

func validate(d Data) error {
	for h, regions := range d.Regions {
		if _, err := domain.ParseHazardType(string(h)); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
		}
		for _, r := range regions {
			switch {
			case r.Name == "":
				return fmt.Errorf("%w: %s region without a name", ErrInvalidCatalog, h)
			case !r.Center.Valid():
				return fmt.Errorf("%w: region %q has invalid center", ErrInvalidCatalog, r.Name)
			case !(r.RadiusMeters > 0):
				return fmt.Errorf("%w: region %q radius must be positive", ErrInvalidCatalog, r.Name)
			case !r.BaselineTier.Valid():
				return fmt.Errorf("%w: region %q has unknown tier %q", ErrInvalidCatalog, r.Name, r.BaselineTier)
			}
		}
	}

	for _, set := range [][]ReferencePoint{d.Rivers, d.FaultZones, d.UnstableSlopes, d.Coastline} {
		for _, p := range set {
			switch {
			case !p.Center.Valid():
				return fmt.Errorf("%w: reference point %q has invalid center", ErrInvalidCatalog, p.Name)
			case !(p.RadiusMeters > 0):
				return fmt.Errorf("%w: reference point %q radius must be positive", ErrInvalidCatalog, p.Name)
			case p.Weight < 0:
				return fmt.Errorf("%w: reference point %q weight must not be negative", ErrInvalidCatalog, p.Name)
			}
		}
	}

	for h := range d.Safety {
		if _, err := domain.ParseHazardType(string(h)); err != nil {
			return fmt.Errorf("%w: safety guide: %w", ErrInvalidCatalog, err)
		}
	}
	return nil
}

func (g SafetyGuide) clone() SafetyGuide {
	return SafetyGuide{
		Before: slices.Clone(g.Before),
		During: slices.Clone(g.During),
		After:  slices.Clone(g.After),
	}
}

// Regions returns the zones for hazard h.
func (c *Catalog) Regions(h domain.HazardType) []HazardRegion {
	return slices.Clone(c.regions[h])
}

// Rivers returns the major river reference points in evaluation order.
func (c *Catalog) Rivers() []ReferencePoint { return slices.Clone(c.rivers) }

// FaultZones returns historical seismic zones.
func (c *Catalog) FaultZones() []ReferencePoint { return slices.Clone(c.faultZones) }

// UnstableSlopes returns landslide-prone terrain reference points.
func (c *Catalog) UnstableSlopes() []ReferencePoint { return slices.Clone(c.unstableSlopes) }

// Coastline returns the coastal reference points used for cyclone exposure.
func (c *Catalog) Coastline() []ReferencePoint { return slices.Clone(c.coastline) }

// Safety returns the full guide for hazard h.
func (c *Catalog) Safety(h domain.HazardType) (SafetyGuide, bool) {
	g, ok := c.safety[h]
	if !ok {
		return SafetyGuide{}, false
	}
	return g.clone(), true
}

// SafetyTips returns the tips that apply at the given tier: "during" tips
// for high and critical, "before" tips otherwise.
func (c *Catalog) SafetyTips(h domain.HazardType, tier domain.Tier) []string {
	g, ok := c.safety[h]
	if !ok {
		return nil
	}
	if tier.AtLeast(domain.TierHigh) {
		return slices.Clone(g.During)
	}
	return slices.Clone(g.Before)
}

// Contacts returns the emergency contact directory.
func (c *Catalog) Contacts() Contacts {
	return Contacts{
		National:     slices.Clone(c.contacts.National),
		ControlRooms: slices.Clone(c.contacts.ControlRooms),
	}
}

// Vulnerability returns the hazard ranking for a state.
func (c *Catalog) Vulnerability(state string) (domain.RegionProfile, bool) {
	p, ok := c.vulnerability[state]
	return p, ok
}

// States lists every state with a vulnerability profile, sorted.
func (c *Catalog) States() []string {
	return slices.Sorted(maps.Keys(c.vulnerability))
}

// History returns notable past events for hazard h, newest first.
func (c *Catalog) History(h domain.HazardType) []HistoricalDisaster {
	var out []HistoricalDisaster
	for _, e := range c.history {
		if e.Hazard == h {
			out = append(out, e)
		}
	}
	slices.SortStableFunc(out, func(a, b HistoricalDisaster) int { return b.Year - a.Year })
	return out
}

// DemoCities returns the demonstration locations.
func (c *Catalog) DemoCities() []City { return slices.Clone(c.demoCities) }

// Data returns a copy of the catalog in its serialized form. Vulnerability
// profiles are ordered by state.
func (c *Catalog) Data() Data {
	d := Data{
		Regions:        make(map[domain.HazardType][]HazardRegion, len(c.regions)),
		Rivers:         c.Rivers(),
		FaultZones:     c.FaultZones(),
		UnstableSlopes: c.UnstableSlopes(),
		Coastline:      c.Coastline(),
		Safety:         make(map[domain.HazardType]SafetyGuide, len(c.safety)),
		Contacts:       c.Contacts(),
		History:        slices.Clone(c.history),
		DemoCities:     c.DemoCities(),
	}
	for h, regions := range c.regions {
		d.Regions[h] = slices.Clone(regions)
	}
	for h, g := range c.safety {
		d.Safety[h] = g.clone()
	}
	for _, state := range c.States() {
		d.Vulnerability = append(d.Vulnerability, c.vulnerability[state])
	}
	return d
}

var defaultCatalog = sync.OnceValue(func() *Catalog {
	c, err := New(India())
	if err != nil {
		panic(fmt.Sprintf("built-in catalog: %v", err))
	}
	return c
})

// Default returns the built-in India catalog.
func Default() *Catalog { return defaultCatalog() }

// Load decodes JSON catalog data from r.
func Load(r io.Reader) (*Catalog, error) {
	var d Data
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return New(d)
}

// LoadYAML decodes YAML catalog data from r. Field names match the JSON form.
func LoadYAML(r io.Reader) (*Catalog, error) {
	var d Data
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&d); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return New(d)
}

// LoadFile reads a catalog from path. Files ending in .yaml or .yml are
// decoded as YAML, anything else as JSON.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close() //nolint:errcheck

	if IsYAML(path) {
		return LoadYAML(f)
	}
	return Load(f)
}

// IsYAML reports whether path has a YAML file extension.
func IsYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
