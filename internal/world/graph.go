package world

import (
	"log/slog"
	"math"
	"sort"

	"starmap-server/internal/shared/errors"
)

// Graph is the canonical world state for one campaign: systems, routes,
// stations and factions in id-keyed maps. Cross-entity references are always
// integer ids resolved through these maps, never pointers between entities.
//
// The graph is populated in-place by the generation pipeline and afterwards
// mutated only through the narrow setters below.
type Graph struct {
	systems  map[int]*StarSystem
	routes   map[int]*Route
	stations map[int]*Station
	factions map[int]*Faction

	logger *slog.Logger
}

func NewGraph(logger *slog.Logger) *Graph {
	return &Graph{
		systems:  make(map[int]*StarSystem),
		routes:   make(map[int]*Route),
		stations: make(map[int]*Station),
		factions: make(map[int]*Faction),
		logger:   logger.With("component", "world_graph"),
	}
}

func (g *Graph) AddSystem(s *StarSystem) {
	if s.Tags == nil {
		s.Tags = NewTagSet()
	}
	g.systems[s.ID] = s
}

func (g *Graph) AddFaction(f *Faction) {
	g.factions[f.ID] = f
}

// AddStation registers a station and links it into its parent system.
func (g *Graph) AddStation(st *Station) error {
	sys, ok := g.systems[st.SystemID]
	if !ok {
		return errors.NotFoundf("system %d not found for station %d", st.SystemID, st.ID)
	}
	if st.Tags == nil {
		st.Tags = NewTagSet()
	}
	g.stations[st.ID] = st
	sys.StationIDs = append(sys.StationIDs, st.ID)
	sort.Ints(sys.StationIDs)
	return nil
}

// Connect creates the route between two systems, deriving its id and
// Euclidean distance, and records the neighbor link on both endpoints.
// Connecting an already-connected pair returns the existing route.
func (g *Graph) Connect(a, b int) (*Route, error) {
	sa, ok := g.systems[a]
	if !ok {
		return nil, errors.NotFoundf("system %d not found", a)
	}
	sb, ok := g.systems[b]
	if !ok {
		return nil, errors.NotFoundf("system %d not found", b)
	}

	id := RouteID(a, b)
	if existing, ok := g.routes[id]; ok {
		return existing, nil
	}

	if a > b {
		a, b = b, a
		sa, sb = sb, sa
	}

	dx := sa.X - sb.X
	dy := sa.Y - sb.Y
	route := &Route{
		ID:       id,
		SystemA:  a,
		SystemB:  b,
		Distance: math.Sqrt(dx*dx + dy*dy),
		Tags:     NewTagSet(),
	}
	g.routes[id] = route
	g.link(sa, b)
	g.link(sb, a)
	return route, nil
}

// addRestoredRoute installs a route with all fields supplied by a snapshot,
// preserving distance/hazard/tags exactly instead of re-deriving them.
func (g *Graph) addRestoredRoute(r *Route) error {
	sa, ok := g.systems[r.SystemA]
	if !ok {
		return errors.NotFoundf("system %d not found for route %d", r.SystemA, r.ID)
	}
	sb, ok := g.systems[r.SystemB]
	if !ok {
		return errors.NotFoundf("system %d not found for route %d", r.SystemB, r.ID)
	}
	if r.Tags == nil {
		r.Tags = NewTagSet()
	}
	g.routes[r.ID] = r
	g.link(sa, r.SystemB)
	g.link(sb, r.SystemA)
	return nil
}

func (g *Graph) link(s *StarSystem, neighbor int) {
	i := sort.SearchInts(s.Neighbors, neighbor)
	if i < len(s.Neighbors) && s.Neighbors[i] == neighbor {
		return
	}
	s.Neighbors = append(s.Neighbors, 0)
	copy(s.Neighbors[i+1:], s.Neighbors[i:])
	s.Neighbors[i] = neighbor
}

// --- lookups ---

func (g *Graph) System(id int) (*StarSystem, bool) {
	s, ok := g.systems[id]
	return s, ok
}

// Route resolves the edge between two systems in either direction.
func (g *Graph) Route(a, b int) (*Route, bool) {
	r, ok := g.routes[RouteID(a, b)]
	return r, ok
}

func (g *Graph) RouteByID(id int) (*Route, bool) {
	r, ok := g.routes[id]
	return r, ok
}

func (g *Graph) Station(id int) (*Station, bool) {
	s, ok := g.stations[id]
	return s, ok
}

func (g *Graph) Faction(id int) (*Faction, bool) {
	f, ok := g.factions[id]
	return f, ok
}

// Neighbors returns the sorted neighbor ids of a system.
func (g *Graph) Neighbors(id int) []int {
	s, ok := g.systems[id]
	if !ok {
		return nil
	}
	out := make([]int, len(s.Neighbors))
	copy(out, s.Neighbors)
	return out
}

func (g *Graph) SystemCount() int  { return len(g.systems) }
func (g *Graph) RouteCount() int   { return len(g.routes) }
func (g *Graph) StationCount() int { return len(g.stations) }
func (g *Graph) FactionCount() int { return len(g.factions) }

// Systems returns all systems in ascending id order.
func (g *Graph) Systems() []*StarSystem {
	ids := make([]int, 0, len(g.systems))
	for id := range g.systems {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]*StarSystem, len(ids))
	for i, id := range ids {
		out[i] = g.systems[id]
	}
	return out
}

// Routes returns all routes in ascending id order.
func (g *Graph) Routes() []*Route {
	ids := make([]int, 0, len(g.routes))
	for id := range g.routes {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]*Route, len(ids))
	for i, id := range ids {
		out[i] = g.routes[id]
	}
	return out
}

// Stations returns all stations in ascending id order.
func (g *Graph) Stations() []*Station {
	ids := make([]int, 0, len(g.stations))
	for id := range g.stations {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]*Station, len(ids))
	for i, id := range ids {
		out[i] = g.stations[id]
	}
	return out
}

// Factions returns all factions in ascending id order.
func (g *Graph) Factions() []*Faction {
	ids := make([]int, 0, len(g.factions))
	for id := range g.factions {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]*Faction, len(ids))
	for i, id := range ids {
		out[i] = g.factions[id]
	}
	return out
}

// --- filtered queries ---

// SystemsByFaction returns the systems owned by a faction, in id order.
// Faction id 0 selects unowned systems.
func (g *Graph) SystemsByFaction(factionID int) []*StarSystem {
	var out []*StarSystem
	for _, s := range g.Systems() {
		if s.OwnerID == factionID {
			out = append(out, s)
		}
	}
	return out
}

// SystemsWithAnyTag returns systems carrying at least one of the given tags.
func (g *Graph) SystemsWithAnyTag(tags ...string) []*StarSystem {
	var out []*StarSystem
	for _, s := range g.Systems() {
		for _, t := range tags {
			if s.Tags.Has(t) {
				out = append(out, s)
				break
			}
		}
	}
	return out
}

// SystemsWithAllTags returns systems carrying every one of the given tags.
func (g *Graph) SystemsWithAllTags(tags ...string) []*StarSystem {
	var out []*StarSystem
	for _, s := range g.Systems() {
		all := true
		for _, t := range tags {
			if !s.Tags.Has(t) {
				all = false
				break
			}
		}
		if all {
			out = append(out, s)
		}
	}
	return out
}

// SystemsByMetricRange returns systems whose named metric lies in [min, max].
func (g *Graph) SystemsByMetricRange(metric string, min, max int) ([]*StarSystem, error) {
	var out []*StarSystem
	for _, s := range g.Systems() {
		v, ok := s.Metrics.Get(metric)
		if !ok {
			return nil, errors.Validationf("unknown metric %q", metric)
		}
		if v >= min && v <= max {
			out = append(out, s)
		}
	}
	return out, nil
}

// RoutesByTag returns routes carrying the given tag, in id order.
func (g *Graph) RoutesByTag(tag string) []*Route {
	var out []*Route
	for _, r := range g.Routes() {
		if r.Tags.Has(tag) {
			out = append(out, r)
		}
	}
	return out
}

// RoutesByHazard returns routes with hazard >= the threshold, in id order.
func (g *Graph) RoutesByHazard(minHazard int) []*Route {
	var out []*Route
	for _, r := range g.Routes() {
		if r.Hazard >= minHazard {
			out = append(out, r)
		}
	}
	return out
}

// --- pathfinding ---

// ShortestPath runs a breadth-first search over the neighbor graph and
// returns the full node sequence including both endpoints. A single-element
// path comes back when from == to; an empty path means unreachable, which
// should not occur post-generation but is handled for ad-hoc queries after
// partial mutation.
func (g *Graph) ShortestPath(from, to int) []int {
	if _, ok := g.systems[from]; !ok {
		return nil
	}
	if _, ok := g.systems[to]; !ok {
		return nil
	}
	if from == to {
		return []int{from}
	}

	prev := map[int]int{from: from}
	queue := []int{from}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, neighbor := range g.systems[current].Neighbors {
			if _, visited := prev[neighbor]; visited {
				continue
			}
			prev[neighbor] = current
			if neighbor == to {
				return g.walkBack(prev, from, to)
			}
			queue = append(queue, neighbor)
		}
	}
	return nil
}

func (g *Graph) walkBack(prev map[int]int, from, to int) []int {
	var reversed []int
	for at := to; at != from; at = prev[at] {
		reversed = append(reversed, at)
	}
	reversed = append(reversed, from)
	path := make([]int, len(reversed))
	for i, id := range reversed {
		path[len(path)-1-i] = id
	}
	return path
}

// PathDistance sums route distance along the consecutive pairs of a path.
func (g *Graph) PathDistance(path []int) (float64, error) {
	var total float64
	for i := 0; i+1 < len(path); i++ {
		r, ok := g.Route(path[i], path[i+1])
		if !ok {
			return 0, errors.NotFoundf("no route between systems %d and %d", path[i], path[i+1])
		}
		total += r.Distance
	}
	return total, nil
}

// PathHazard sums route hazard along the consecutive pairs of a path.
func (g *Graph) PathHazard(path []int) (int, error) {
	var total int
	for i := 0; i+1 < len(path); i++ {
		r, ok := g.Route(path[i], path[i+1])
		if !ok {
			return 0, errors.NotFoundf("no route between systems %d and %d", path[i], path[i+1])
		}
		total += r.Hazard
	}
	return total, nil
}

// --- mutation surface for the simulation collaborator ---

// SetSystemMetric writes a system metric, clamping into range and logging
// the before/after values.
func (g *Graph) SetSystemMetric(systemID int, metric string, value int) error {
	s, ok := g.systems[systemID]
	if !ok {
		return errors.NotFoundf("system %d not found", systemID)
	}
	before, ok := s.Metrics.Get(metric)
	if !ok {
		return errors.Validationf("unknown metric %q", metric)
	}
	s.Metrics.Set(metric, value)
	after, _ := s.Metrics.Get(metric)
	g.logger.Info("System metric changed",
		"system_id", systemID,
		"metric", metric,
		"before", before,
		"after", after,
	)
	return nil
}

// AdjustSystemMetric applies a delta to a system metric, clamped into range.
func (g *Graph) AdjustSystemMetric(systemID int, metric string, delta int) error {
	s, ok := g.systems[systemID]
	if !ok {
		return errors.NotFoundf("system %d not found", systemID)
	}
	current, ok := s.Metrics.Get(metric)
	if !ok {
		return errors.Validationf("unknown metric %q", metric)
	}
	return g.SetSystemMetric(systemID, metric, current+delta)
}

func (g *Graph) AddSystemTag(systemID int, tag string) error {
	s, ok := g.systems[systemID]
	if !ok {
		return errors.NotFoundf("system %d not found", systemID)
	}
	s.Tags.Add(tag)
	return nil
}

func (g *Graph) RemoveSystemTag(systemID int, tag string) error {
	s, ok := g.systems[systemID]
	if !ok {
		return errors.NotFoundf("system %d not found", systemID)
	}
	s.Tags.Remove(tag)
	return nil
}

func (g *Graph) AddRouteTag(a, b int, tag string) error {
	r, ok := g.Route(a, b)
	if !ok {
		return errors.NotFoundf("no route between systems %d and %d", a, b)
	}
	r.Tags.Add(tag)
	return nil
}

func (g *Graph) RemoveRouteTag(a, b int, tag string) error {
	r, ok := g.Route(a, b)
	if !ok {
		return errors.NotFoundf("no route between systems %d and %d", a, b)
	}
	r.Tags.Remove(tag)
	return nil
}

// SetSystemOwner transfers a system to a faction (0 = unowned) and carries
// the new owner onto every station in the system.
func (g *Graph) SetSystemOwner(systemID, factionID int) error {
	s, ok := g.systems[systemID]
	if !ok {
		return errors.NotFoundf("system %d not found", systemID)
	}
	if factionID != 0 {
		if _, ok := g.factions[factionID]; !ok {
			return errors.NotFoundf("faction %d not found", factionID)
		}
	}
	before := s.OwnerID
	s.OwnerID = factionID
	for _, stationID := range s.StationIDs {
		g.stations[stationID].OwnerID = factionID
	}
	g.logger.Info("System ownership changed",
		"system_id", systemID,
		"before", before,
		"after", factionID,
	)
	return nil
}

// SetStationOwner reassigns a single station without touching its system.
func (g *Graph) SetStationOwner(stationID, factionID int) error {
	st, ok := g.stations[stationID]
	if !ok {
		return errors.NotFoundf("station %d not found", stationID)
	}
	if factionID != 0 {
		if _, ok := g.factions[factionID]; !ok {
			return errors.NotFoundf("faction %d not found", factionID)
		}
	}
	st.OwnerID = factionID
	return nil
}
