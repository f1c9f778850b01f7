package galaxy

import (
	"math/rand"
	"testing"

	"starmap-server/internal/world"
)

func TestRollTypeForcedArchetypes(t *testing.T) {
	cfg := DefaultConfig()
	rng := rand.New(rand.NewSource(1))

	hub := &world.StarSystem{ID: 1, Tags: world.NewTagSet(world.TagHub)}
	if got := rollType(hub, cfg, rng); got != world.SystemTypeStation {
		t.Errorf("capital rolled %s, want station", got)
	}

	contested := &world.StarSystem{ID: 2, Tags: world.NewTagSet(world.TagContested)}
	if got := rollType(contested, cfg, rng); got != world.SystemTypeContested {
		t.Errorf("contested system rolled %s, want contested", got)
	}
}

func TestRollTypeStaysInWeightTable(t *testing.T) {
	cfg := DefaultConfig()
	rng := rand.New(rand.NewSource(3))

	allowed := make(map[world.SystemType]bool, len(cfg.TypeWeights))
	for _, tw := range cfg.TypeWeights {
		allowed[tw.Type] = true
	}

	s := &world.StarSystem{ID: 1, Tags: world.NewTagSet()}
	for i := 0; i < 500; i++ {
		if got := rollType(s, cfg, rng); !allowed[got] {
			t.Fatalf("rolled type %s not present in the weight table", got)
		}
	}
}

func TestRollTypeZeroWeightNeverRolled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TypeWeights = []TypeWeight{
		{world.SystemTypeOutpost, 1},
		{world.SystemTypeDerelict, 0},
	}
	rng := rand.New(rand.NewSource(11))

	s := &world.StarSystem{ID: 1, Tags: world.NewTagSet()}
	for i := 0; i < 200; i++ {
		if got := rollType(s, cfg, rng); got != world.SystemTypeOutpost {
			t.Fatalf("rolled %s despite zero weight", got)
		}
	}
}

func TestRollNameUnique(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	used := make(map[string]bool)

	// Draw past the pool size; suffix fallback must keep names unique.
	seen := make(map[string]bool)
	for i := 0; i < len(stationNames)+10; i++ {
		name := rollName(world.SystemTypeStation, used, rng)
		if seen[name] {
			t.Fatalf("duplicate name %q on draw %d", name, i)
		}
		seen[name] = true
	}
}

func TestRollMetricsCapitalBoost(t *testing.T) {
	rng := rand.New(rand.NewSource(8))

	for i := 0; i < 100; i++ {
		s := &world.StarSystem{
			ID:   1,
			Type: world.SystemTypeStation,
			Tags: world.NewTagSet(world.TagHub),
		}
		m := rollMetrics(s, rng)

		// Capital baseline is 5/4/1/4/4 with +/-1 variance, clamped.
		if m.Stability < 4 {
			t.Errorf("capital stability = %d, want >= 4", m.Stability)
		}
		if m.SecurityLevel < 3 || m.SecurityLevel > 5 {
			t.Errorf("capital security = %d, want within [3,5]", m.SecurityLevel)
		}
		if m.CriminalActivity > 2 {
			t.Errorf("capital crime = %d, want <= 2", m.CriminalActivity)
		}
	}
}

func TestRollMetricsContestedPenalty(t *testing.T) {
	rng := rand.New(rand.NewSource(9))

	for i := 0; i < 100; i++ {
		s := &world.StarSystem{
			ID:   1,
			Type: world.SystemTypeContested,
			Tags: world.NewTagSet(world.TagContested, world.TagBorder),
		}
		m := rollMetrics(s, rng)

		// Contested forces stability to 1 before variance.
		if m.Stability > 2 {
			t.Errorf("contested stability = %d, want <= 2", m.Stability)
		}
		if m.CriminalActivity < 4 {
			t.Errorf("contested crime = %d, want >= 4", m.CriminalActivity)
		}
	}
}

func TestRollMetricsAlwaysInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	types := []world.SystemType{
		world.SystemTypeStation, world.SystemTypeOutpost, world.SystemTypeDerelict,
		world.SystemTypeAsteroid, world.SystemTypeNebula, world.SystemTypeContested,
	}

	for _, typ := range types {
		for i := 0; i < 50; i++ {
			s := &world.StarSystem{ID: 1, Type: typ, Tags: world.NewTagSet(world.TagFrontier)}
			m := rollMetrics(s, rng)
			for _, v := range []int{m.Stability, m.SecurityLevel, m.CriminalActivity, m.EconomicActivity, m.LawEnforcementPresence} {
				if v < world.MetricMin || v > world.MetricMax {
					t.Fatalf("type %s produced out-of-range metric %d", typ, v)
				}
			}
		}
	}
}

func TestDeriveSystemTags(t *testing.T) {
	tests := []struct {
		name    string
		typ     world.SystemType
		metrics world.SystemMetrics
		want    []string
		wantNot []string
	}{
		{
			name:    "asteroid gets mining",
			typ:     world.SystemTypeAsteroid,
			metrics: world.SystemMetrics{EconomicActivity: 3, SecurityLevel: 1, CriminalActivity: 3},
			want:    []string{world.TagMining},
			wantNot: []string{world.TagIndustrial},
		},
		{
			name:    "rich asteroid gets industrial",
			typ:     world.SystemTypeAsteroid,
			metrics: world.SystemMetrics{EconomicActivity: 4, SecurityLevel: 2, CriminalActivity: 2},
			want:    []string{world.TagMining, world.TagIndustrial},
		},
		{
			name:    "derelict is frontier",
			typ:     world.SystemTypeDerelict,
			metrics: world.SystemMetrics{CriminalActivity: 3},
			want:    []string{world.TagFrontier},
		},
		{
			name:    "crime-ridden nebula is lawless",
			typ:     world.SystemTypeNebula,
			metrics: world.SystemMetrics{CriminalActivity: 3, SecurityLevel: 1},
			want:    []string{world.TagLawless},
		},
		{
			name:    "high security is military",
			typ:     world.SystemTypeStation,
			metrics: world.SystemMetrics{SecurityLevel: 4, CriminalActivity: 1},
			want:    []string{world.TagMilitary},
		},
		{
			name:    "unpoliced crime is lawless",
			typ:     world.SystemTypeOutpost,
			metrics: world.SystemMetrics{CriminalActivity: 4, SecurityLevel: 1},
			want:    []string{world.TagLawless},
			wantNot: []string{world.TagPirateHaven},
		},
		{
			name:    "maximum crime is a pirate haven",
			typ:     world.SystemTypeOutpost,
			metrics: world.SystemMetrics{CriminalActivity: 5, SecurityLevel: 0},
			want:    []string{world.TagLawless, world.TagPirateHaven},
		},
		{
			name:    "policed crime is neither",
			typ:     world.SystemTypeOutpost,
			metrics: world.SystemMetrics{CriminalActivity: 4, SecurityLevel: 3},
			wantNot: []string{world.TagLawless, world.TagPirateHaven},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &world.StarSystem{ID: 1, Type: tt.typ, Metrics: tt.metrics, Tags: world.NewTagSet()}
			deriveSystemTags(s)
			for _, tag := range tt.want {
				if !s.Tags.Has(tag) {
					t.Errorf("missing tag %q, got %v", tag, s.Tags.Sorted())
				}
			}
			for _, tag := range tt.wantNot {
				if s.Tags.Has(tag) {
					t.Errorf("unexpected tag %q in %v", tag, s.Tags.Sorted())
				}
			}
		})
	}
}
