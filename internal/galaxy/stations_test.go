package galaxy

import (
	"strings"
	"testing"

	"starmap-server/internal/world"
)

func stationFixture(t *testing.T) *world.Graph {
	t.Helper()
	g := world.NewGraph(testLogger())
	g.AddFaction(&world.Faction{ID: 1, Name: "Terran Accord"})

	add := func(id int, name string, typ world.SystemType, owner int, metrics world.SystemMetrics, tags ...string) {
		g.AddSystem(&world.StarSystem{
			ID:      id,
			Name:    name,
			Type:    typ,
			X:       float64(100 * id),
			Y:       100,
			OwnerID: owner,
			Metrics: metrics,
			Tags:    world.NewTagSet(tags...),
		})
	}

	add(1, "Altair", world.SystemTypeStation, 1, world.SystemMetrics{SecurityLevel: 4}, world.TagHub, world.TagCore, world.TagMilitary)
	add(2, "Forsaken Drift", world.SystemTypeDerelict, 0, world.SystemMetrics{}, world.TagFrontier)
	add(3, "Crimson Verge", world.SystemTypeContested, 1, world.SystemMetrics{}, world.TagContested, world.TagBorder)
	add(4, "Ironfield Belt", world.SystemTypeAsteroid, 1, world.SystemMetrics{EconomicActivity: 3}, world.TagMining)
	add(5, "Veiled Shroud", world.SystemTypeNebula, 0, world.SystemMetrics{CriminalActivity: 3}, world.TagLawless)
	add(6, "Kessler Point", world.SystemTypeOutpost, 1, world.SystemMetrics{SecurityLevel: 4}, world.TagMilitary)
	add(7, "Haven Reach", world.SystemTypeOutpost, 0, world.SystemMetrics{CriminalActivity: 5}, world.TagPirateHaven, world.TagLawless)
	add(8, "Tycho Landing", world.SystemTypeOutpost, 1, world.SystemMetrics{})

	return g
}

func TestPlaceStationsExclusions(t *testing.T) {
	g := stationFixture(t)
	placeStations(g, DefaultConfig(), testLogger())

	for _, id := range []int{2, 3} {
		s, _ := g.System(id)
		if len(s.StationIDs) != 0 {
			t.Errorf("%s system %d hosts stations %v, want none", s.Type, id, s.StationIDs)
		}
	}

	// Every other fixture system is of an inhabited type.
	if g.StationCount() != 6 {
		t.Errorf("placed %d stations, want 6", g.StationCount())
	}
}

func TestPlaceStationsSequentialIDs(t *testing.T) {
	g := stationFixture(t)
	placeStations(g, DefaultConfig(), testLogger())

	stations := g.Stations()
	for i, st := range stations {
		if st.ID != i+1 {
			t.Errorf("station %d has id %d, want %d", i, st.ID, i+1)
		}
	}
	// Stations are assigned in system id order.
	if stations[0].SystemID != 1 || stations[len(stations)-1].SystemID != 8 {
		t.Errorf("station system order wrong: first=%d last=%d", stations[0].SystemID, stations[len(stations)-1].SystemID)
	}
}

func TestPlaceStationsArchetypePriority(t *testing.T) {
	g := stationFixture(t)
	placeStations(g, DefaultConfig(), testLogger())

	wantArchetype := map[int]StationArchetype{
		1: StationHub,      // hub outranks military
		4: StationMining,   // asteroid dispatch
		5: StationBlackMarket, // lawless outranks nebula dispatch
		6: StationMilitary, // military tag
		7: StationPirateDen, // pirate-haven outranks lawless
		8: StationOutpost,  // plain outpost
	}

	for _, st := range g.Stations() {
		want, ok := wantArchetype[st.SystemID]
		if !ok {
			t.Errorf("unexpected station in system %d", st.SystemID)
			continue
		}
		if !st.Tags.Has(string(want)) {
			t.Errorf("system %d station archetype tags = %v, want %s", st.SystemID, st.Tags.Sorted(), want)
		}
		if !strings.HasSuffix(st.Name, stationNameSuffix[want]) {
			t.Errorf("system %d station name %q missing suffix %q", st.SystemID, st.Name, stationNameSuffix[want])
		}
	}
}

func TestPlaceStationsFacilityBundles(t *testing.T) {
	g := stationFixture(t)
	placeStations(g, DefaultConfig(), testLogger())

	hub, _ := g.Station(1)
	if len(hub.Facilities) != len(facilityBundles[StationHub]) {
		t.Fatalf("hub station has %d facilities, want %d", len(hub.Facilities), len(facilityBundles[StationHub]))
	}
	for _, f := range hub.Facilities {
		if f.Level != 3 || !f.Available {
			t.Errorf("hub facility %s = level %d available %t, want level 3 available", f.Type, f.Level, f.Available)
		}
	}

	// A pirate den carries a black market but no mission board.
	var den *world.Station
	for _, st := range g.Stations() {
		if st.SystemID == 7 {
			den = st
		}
	}
	if den == nil {
		t.Fatal("no station in the pirate haven system")
	}
	if _, ok := den.Facility(world.FacilityBlackMarket); !ok {
		t.Error("pirate den missing black market facility")
	}
	if _, ok := den.Facility(world.FacilityMissionBoard); ok {
		t.Error("pirate den must not have a mission board")
	}
}

func TestPlaceStationsOwnershipMirrors(t *testing.T) {
	g := stationFixture(t)
	placeStations(g, DefaultConfig(), testLogger())

	for _, st := range g.Stations() {
		sys, _ := g.System(st.SystemID)
		if st.OwnerID != sys.OwnerID {
			t.Errorf("station %d owner %d, system %d owner %d", st.ID, st.OwnerID, sys.ID, sys.OwnerID)
		}
	}
}

func TestPlaceStationsHonorsInhabitedTypes(t *testing.T) {
	g := stationFixture(t)
	cfg := DefaultConfig()
	cfg.InhabitedTypes = []world.SystemType{world.SystemTypeStation}

	placeStations(g, cfg, testLogger())
	for _, st := range g.Stations() {
		sys, _ := g.System(st.SystemID)
		if sys.Type != world.SystemTypeStation {
			t.Errorf("station placed in uninhabited %s system %d", sys.Type, sys.ID)
		}
	}
	if g.StationCount() != 1 {
		t.Errorf("placed %d stations, want 1", g.StationCount())
	}
}
