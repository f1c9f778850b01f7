package world

import (
	"log/slog"
	"sort"

	"starmap-server/internal/shared/errors"
)

// The flat record form is the save/load contract for a generated world:
// plain lists keyed by integer ids, no cycles, every entity field preserved
// exactly. It feeds both the Postgres repository and the Redis cache.

type SystemRecord struct {
	ID      int           `json:"id"`
	Name    string        `json:"name"`
	Type    SystemType    `json:"type"`
	X       float64       `json:"x"`
	Y       float64       `json:"y"`
	OwnerID int           `json:"owner_id"`
	Metrics SystemMetrics `json:"metrics"`
	Tags    []string      `json:"tags"`
}

type RouteRecord struct {
	ID       int      `json:"id"`
	SystemA  int      `json:"system_a"`
	SystemB  int      `json:"system_b"`
	Distance float64  `json:"distance"`
	Hazard   int      `json:"hazard"`
	Tags     []string `json:"tags"`
}

type StationRecord struct {
	ID         int        `json:"id"`
	Name       string     `json:"name"`
	SystemID   int        `json:"system_id"`
	OwnerID    int        `json:"owner_id"`
	Facilities []Facility `json:"facilities"`
	Tags       []string   `json:"tags"`
}

type FactionRecord struct {
	ID        int            `json:"id"`
	Name      string         `json:"name"`
	Type      FactionType    `json:"type"`
	Metrics   FactionMetrics `json:"metrics"`
	Hostility int            `json:"hostility"`
	Color     string         `json:"color"`
}

type Snapshot struct {
	Systems  []SystemRecord  `json:"systems"`
	Routes   []RouteRecord   `json:"routes"`
	Stations []StationRecord `json:"stations"`
	Factions []FactionRecord `json:"factions"`
}

// Snapshot flattens the graph into its record form. Entities come out in
// ascending id order and tag sets in lexicographic order, so the same world
// always serializes to the same bytes.
func (g *Graph) Snapshot() *Snapshot {
	snap := &Snapshot{}
	for _, s := range g.Systems() {
		snap.Systems = append(snap.Systems, SystemRecord{
			ID:      s.ID,
			Name:    s.Name,
			Type:    s.Type,
			X:       s.X,
			Y:       s.Y,
			OwnerID: s.OwnerID,
			Metrics: s.Metrics,
			Tags:    s.Tags.Sorted(),
		})
	}
	for _, r := range g.Routes() {
		snap.Routes = append(snap.Routes, RouteRecord{
			ID:       r.ID,
			SystemA:  r.SystemA,
			SystemB:  r.SystemB,
			Distance: r.Distance,
			Hazard:   r.Hazard,
			Tags:     r.Tags.Sorted(),
		})
	}
	for _, st := range g.Stations() {
		facilities := make([]Facility, len(st.Facilities))
		copy(facilities, st.Facilities)
		snap.Stations = append(snap.Stations, StationRecord{
			ID:         st.ID,
			Name:       st.Name,
			SystemID:   st.SystemID,
			OwnerID:    st.OwnerID,
			Facilities: facilities,
			Tags:       st.Tags.Sorted(),
		})
	}
	for _, f := range g.Factions() {
		snap.Factions = append(snap.Factions, FactionRecord{
			ID:        f.ID,
			Name:      f.Name,
			Type:      f.Type,
			Metrics:   f.Metrics,
			Hostility: f.Hostility,
			Color:     f.Color,
		})
	}
	return snap
}

// Restore rebuilds a full graph from its record form. Neighbor sets are
// re-derived from the route list, which keeps them symmetric by
// construction; everything else is taken from the records verbatim.
func Restore(snap *Snapshot, logger *slog.Logger) (*Graph, error) {
	g := NewGraph(logger)

	for _, fr := range snap.Factions {
		g.AddFaction(&Faction{
			ID:        fr.ID,
			Name:      fr.Name,
			Type:      fr.Type,
			Metrics:   fr.Metrics,
			Hostility: fr.Hostility,
			Color:     fr.Color,
		})
	}

	for _, sr := range snap.Systems {
		if sr.OwnerID != 0 {
			if _, ok := g.factions[sr.OwnerID]; !ok {
				return nil, errors.Validationf("system %d references unknown faction %d", sr.ID, sr.OwnerID)
			}
		}
		g.AddSystem(&StarSystem{
			ID:      sr.ID,
			Name:    sr.Name,
			Type:    sr.Type,
			X:       sr.X,
			Y:       sr.Y,
			OwnerID: sr.OwnerID,
			Metrics: sr.Metrics,
			Tags:    NewTagSet(sr.Tags...),
		})
	}

	for _, rr := range snap.Routes {
		if rr.ID != RouteID(rr.SystemA, rr.SystemB) {
			return nil, errors.Validationf("route %d has inconsistent endpoint ids %d,%d", rr.ID, rr.SystemA, rr.SystemB)
		}
		err := g.addRestoredRoute(&Route{
			ID:       rr.ID,
			SystemA:  rr.SystemA,
			SystemB:  rr.SystemB,
			Distance: rr.Distance,
			Hazard:   rr.Hazard,
			Tags:     NewTagSet(rr.Tags...),
		})
		if err != nil {
			return nil, err
		}
	}

	records := make([]StationRecord, len(snap.Stations))
	copy(records, snap.Stations)
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	for _, str := range records {
		facilities := make([]Facility, len(str.Facilities))
		copy(facilities, str.Facilities)
		err := g.AddStation(&Station{
			ID:         str.ID,
			Name:       str.Name,
			SystemID:   str.SystemID,
			OwnerID:    str.OwnerID,
			Facilities: facilities,
			Tags:       NewTagSet(str.Tags...),
		})
		if err != nil {
			return nil, err
		}
	}

	return g, nil
}
