package world

import (
	"sort"
	"time"
)

type SystemType string

const (
	SystemTypeStation   SystemType = "station"
	SystemTypeOutpost   SystemType = "outpost"
	SystemTypeDerelict  SystemType = "derelict"
	SystemTypeAsteroid  SystemType = "asteroid"
	SystemTypeNebula    SystemType = "nebula"
	SystemTypeContested SystemType = "contested"
)

type FactionType string

const (
	FactionTypeCorporate   FactionType = "corporate"
	FactionTypeGovernment  FactionType = "government"
	FactionTypeCriminal    FactionType = "criminal"
	FactionTypeIndependent FactionType = "independent"
	FactionTypeNeutral     FactionType = "neutral"
)

type FacilityType string

const (
	FacilityShop         FacilityType = "shop"
	FacilityBar          FacilityType = "bar"
	FacilityMissionBoard FacilityType = "mission_board"
	FacilityRepairYard   FacilityType = "repair_yard"
	FacilityRecruitment  FacilityType = "recruitment"
	FacilityMedical      FacilityType = "medical"
	FacilityBlackMarket  FacilityType = "black_market"
	FacilityFuelDepot    FacilityType = "fuel_depot"
)

// System and route tags written by the generator and read by consumers.
const (
	TagHub           = "hub"
	TagCore          = "core"
	TagContested     = "contested"
	TagBorder        = "border"
	TagFrontier      = "frontier"
	TagMining        = "mining"
	TagIndustrial    = "industrial"
	TagLawless       = "lawless"
	TagMilitary      = "military"
	TagPirateHaven   = "pirate-haven"
	TagDangerous     = "dangerous"
	TagPatrolled     = "patrolled"
	TagAsteroidField = "asteroid-field"
	TagHidden        = "hidden"
)

const (
	MetricMin = 0
	MetricMax = 5
)

// Metric names accepted by the metric query and mutation surface.
const (
	MetricStability   = "stability"
	MetricSecurity    = "security_level"
	MetricCrime       = "criminal_activity"
	MetricEconomy     = "economic_activity"
	MetricEnforcement = "law_enforcement_presence"
)

// SystemMetrics holds the five 0-5 gauges attached to every star system.
// Values must pass through Clamp after every mutation; nothing reads or
// writes a metric outside the [MetricMin, MetricMax] range.
type SystemMetrics struct {
	Stability              int `json:"stability"`
	SecurityLevel          int `json:"security_level"`
	CriminalActivity       int `json:"criminal_activity"`
	EconomicActivity       int `json:"economic_activity"`
	LawEnforcementPresence int `json:"law_enforcement_presence"`
}

func ClampMetric(v int) int {
	if v < MetricMin {
		return MetricMin
	}
	if v > MetricMax {
		return MetricMax
	}
	return v
}

// Clamp forces every gauge back into range.
func (m *SystemMetrics) Clamp() {
	m.Stability = ClampMetric(m.Stability)
	m.SecurityLevel = ClampMetric(m.SecurityLevel)
	m.CriminalActivity = ClampMetric(m.CriminalActivity)
	m.EconomicActivity = ClampMetric(m.EconomicActivity)
	m.LawEnforcementPresence = ClampMetric(m.LawEnforcementPresence)
}

// Get returns the named gauge, or false for an unknown metric name.
func (m *SystemMetrics) Get(name string) (int, bool) {
	switch name {
	case MetricStability:
		return m.Stability, true
	case MetricSecurity:
		return m.SecurityLevel, true
	case MetricCrime:
		return m.CriminalActivity, true
	case MetricEconomy:
		return m.EconomicActivity, true
	case MetricEnforcement:
		return m.LawEnforcementPresence, true
	}
	return 0, false
}

// Set writes the named gauge, clamping into range. Returns false for an
// unknown metric name.
func (m *SystemMetrics) Set(name string, value int) bool {
	value = ClampMetric(value)
	switch name {
	case MetricStability:
		m.Stability = value
	case MetricSecurity:
		m.SecurityLevel = value
	case MetricCrime:
		m.CriminalActivity = value
	case MetricEconomy:
		m.EconomicActivity = value
	case MetricEnforcement:
		m.LawEnforcementPresence = value
	default:
		return false
	}
	return true
}

// TagSet is a free-form string tag collection. The zero value is not usable;
// create through NewTagSet.
type TagSet map[string]bool

func NewTagSet(tags ...string) TagSet {
	ts := make(TagSet, len(tags))
	for _, t := range tags {
		ts[t] = true
	}
	return ts
}

func (ts TagSet) Has(tag string) bool { return ts[tag] }

func (ts TagSet) Add(tag string) { ts[tag] = true }

func (ts TagSet) Remove(tag string) { delete(ts, tag) }

// Sorted returns the tags in lexicographic order for stable serialization.
func (ts TagSet) Sorted() []string {
	out := make([]string, 0, len(ts))
	for t := range ts {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// StarSystem is a node in the galaxy graph. Neighbors is kept sorted and is
// always symmetric with the route table: if A lists B, a Route A<->B exists.
// OwnerID 0 means unowned; faction ids start at 1.
type StarSystem struct {
	ID         int           `json:"id"`
	Name       string        `json:"name"`
	Type       SystemType    `json:"type"`
	X          float64       `json:"x"`
	Y          float64       `json:"y"`
	OwnerID    int           `json:"owner_id"`
	Metrics    SystemMetrics `json:"metrics"`
	Tags       TagSet        `json:"tags"`
	Neighbors  []int         `json:"neighbors"`
	StationIDs []int         `json:"station_ids"`
}

// Route is an undirected edge between two systems. SystemA < SystemB always
// holds, and the id is derived from the endpoint pair so lookups are
// direction independent.
type Route struct {
	ID       int     `json:"id"`
	SystemA  int     `json:"system_a"`
	SystemB  int     `json:"system_b"`
	Distance float64 `json:"distance"`
	Hazard   int     `json:"hazard"`
	Tags     TagSet  `json:"tags"`
}

// RouteID derives the deterministic route id for an endpoint pair. The same
// id comes back regardless of traversal direction, so no counter is needed.
func RouteID(a, b int) int {
	if a > b {
		a, b = b, a
	}
	return 10000*a + b
}

// Other returns the endpoint opposite to the given system id.
func (r *Route) Other(systemID int) int {
	if systemID == r.SystemA {
		return r.SystemB
	}
	return r.SystemA
}

type Facility struct {
	Type      FacilityType `json:"type"`
	Level     int          `json:"level"`
	Tags      []string     `json:"tags,omitempty"`
	Available bool         `json:"available"`
}

// Station is a facility platform anchored to a single system. Ownership
// always mirrors the parent system's owning faction.
type Station struct {
	ID         int        `json:"id"`
	Name       string     `json:"name"`
	SystemID   int        `json:"system_id"`
	OwnerID    int        `json:"owner_id"`
	Facilities []Facility `json:"facilities"`
	Tags       TagSet     `json:"tags"`
}

// Facility returns the station's facility of the given type, if present.
func (s *Station) Facility(ft FacilityType) (Facility, bool) {
	for _, f := range s.Facilities {
		if f.Type == ft {
			return f, true
		}
	}
	return Facility{}, false
}

type FactionMetrics struct {
	MilitaryStrength int `json:"military_strength"`
	EconomicPower    int `json:"economic_power"`
	Influence        int `json:"influence"`
	Desperation      int `json:"desperation"`
	Corruption       int `json:"corruption"`
}

// Faction is a territorial power cloned into the graph from the faction
// registry. Owned systems are derived through queries, never stored here.
type Faction struct {
	ID        int            `json:"id"`
	Name      string         `json:"name"`
	Type      FactionType    `json:"type"`
	Metrics   FactionMetrics `json:"metrics"`
	Hostility int            `json:"hostility"`
	Color     string         `json:"color"`
}

// CampaignWorld ties a generated graph to the campaign that owns it.
type CampaignWorld struct {
	CampaignID  int       `json:"campaign_id"`
	Seed        int64     `json:"seed"`
	GeneratedAt time.Time `json:"generated_at"`
}
