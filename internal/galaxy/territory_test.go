package galaxy

import (
	"testing"

	"starmap-server/internal/world"
)

// territoryFixture builds a five-system chain on the horizontal midline with
// two factions. Capital selection is forced by geometry: system 1 and 5 are
// the extremes, so they seat the two capitals, and system 3 sits equidistant
// between them.
func territoryFixture(t *testing.T) (*world.Graph, GenerationConfig) {
	t.Helper()
	g := world.NewGraph(testLogger())
	g.AddFaction(&world.Faction{ID: 1, Name: "Terran Accord"})
	g.AddFaction(&world.Faction{ID: 2, Name: "Veil Syndicate"})

	xs := []float64{100, 300, 500, 700, 900}
	for i := 1; i <= 5; i++ {
		g.AddSystem(&world.StarSystem{
			ID:   i,
			X:    xs[i-1],
			Y:    500,
			Tags: world.NewTagSet(),
		})
	}
	for i := 1; i < 5; i++ {
		if _, err := g.Connect(i, i+1); err != nil {
			t.Fatalf("Connect failed: %v", err)
		}
	}

	cfg := DefaultConfig()
	cfg.NeutralFraction = 0
	return g, cfg
}

func TestAssignTerritoryCapitals(t *testing.T) {
	g, cfg := territoryFixture(t)
	assignTerritory(g, cfg, testLogger())

	// First capital maximizes distance from the map center; systems 1 and 5
	// tie and the lower id wins. Second capital maximizes distance from the
	// first.
	s1, _ := g.System(1)
	s5, _ := g.System(5)
	if s1.OwnerID != 1 || !s1.Tags.Has(world.TagHub) || !s1.Tags.Has(world.TagCore) {
		t.Errorf("system 1 = owner %d tags %v, want faction 1 capital", s1.OwnerID, s1.Tags.Sorted())
	}
	if s5.OwnerID != 2 || !s5.Tags.Has(world.TagHub) || !s5.Tags.Has(world.TagCore) {
		t.Errorf("system 5 = owner %d tags %v, want faction 2 capital", s5.OwnerID, s5.Tags.Sorted())
	}
}

func TestAssignTerritoryFloodAndContested(t *testing.T) {
	g, cfg := territoryFixture(t)
	assignTerritory(g, cfg, testLogger())

	s2, _ := g.System(2)
	s3, _ := g.System(3)
	s4, _ := g.System(4)

	if s2.OwnerID != 1 {
		t.Errorf("system 2 owner = %d, want 1", s2.OwnerID)
	}
	if s4.OwnerID != 2 {
		t.Errorf("system 4 owner = %d, want 2", s4.OwnerID)
	}

	// System 3 is equidistant from both capitals: it keeps its first claimant
	// and is marked contested+border instead of flipping.
	if s3.OwnerID != 1 {
		t.Errorf("contested system 3 owner = %d, want first claimant 1", s3.OwnerID)
	}
	if !s3.Tags.Has(world.TagContested) || !s3.Tags.Has(world.TagBorder) {
		t.Errorf("system 3 tags = %v, want contested+border", s3.Tags.Sorted())
	}
}

func TestMarkNeutralSkipsContested(t *testing.T) {
	g, cfg := territoryFixture(t)
	// Candidates are systems 2, 3, 4; a fraction of 0.34 selects exactly one.
	// System 3 has the largest capital distance but is contested, so it
	// consumes the slot and nothing is cleared.
	cfg.NeutralFraction = 0.34
	assignTerritory(g, cfg, testLogger())

	for _, id := range []int{2, 3, 4} {
		s, _ := g.System(id)
		if s.OwnerID == 0 {
			t.Errorf("system %d was cleared to neutral, want none cleared", id)
		}
	}
}

func TestMarkNeutralClearsFrontier(t *testing.T) {
	g, cfg := territoryFixture(t)
	// Selecting two candidates: contested system 3 eats the first slot,
	// system 2 (lower id on the distance tie with 4) is cleared.
	cfg.NeutralFraction = 0.67
	assignTerritory(g, cfg, testLogger())

	s2, _ := g.System(2)
	if s2.OwnerID != 0 || !s2.Tags.Has(world.TagFrontier) {
		t.Errorf("system 2 = owner %d tags %v, want unowned frontier", s2.OwnerID, s2.Tags.Sorted())
	}
	s4, _ := g.System(4)
	if s4.OwnerID != 2 {
		t.Errorf("system 4 owner = %d, want untouched 2", s4.OwnerID)
	}
}

func TestAssignTerritoryMoreFactionsThanSystems(t *testing.T) {
	g := world.NewGraph(testLogger())
	for i := 1; i <= 3; i++ {
		g.AddFaction(&world.Faction{ID: i})
	}
	g.AddSystem(&world.StarSystem{ID: 1, X: 100, Y: 100, Tags: world.NewTagSet()})
	g.AddSystem(&world.StarSystem{ID: 2, X: 900, Y: 900, Tags: world.NewTagSet()})
	if _, err := g.Connect(1, 2); err != nil {
		t.Fatalf("Connect failed: %v", err)
	}

	cfg := DefaultConfig()
	cfg.NeutralFraction = 0
	assignTerritory(g, cfg, testLogger())

	capitals := 0
	for _, s := range g.Systems() {
		if s.Tags.Has(world.TagHub) {
			capitals++
		}
	}
	if capitals != 2 {
		t.Errorf("placed %d capitals with 2 systems, want 2", capitals)
	}
}
