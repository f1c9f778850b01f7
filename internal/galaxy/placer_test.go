package galaxy

import (
	"math/rand"
	"testing"
)

func TestPlaceSystemsRespectsBoundsAndSpacing(t *testing.T) {
	cfg := DefaultConfig()
	rng := rand.New(rand.NewSource(42))

	positions := placeSystems(cfg, rng, testLogger())
	if len(positions) != cfg.SystemCount {
		t.Fatalf("placed %d systems, want %d", len(positions), cfg.SystemCount)
	}

	minX := cfg.EdgeMargin
	maxX := cfg.MapWidth - cfg.EdgeMargin
	minY := cfg.EdgeMargin
	maxY := cfg.MapHeight - cfg.EdgeMargin
	for i, p := range positions {
		if p.x < minX || p.x > maxX || p.y < minY || p.y > maxY {
			t.Errorf("position %d at (%g, %g) outside usable interior", i, p.x, p.y)
		}
	}

	minSq := cfg.MinSystemDistance * cfg.MinSystemDistance
	for i := range positions {
		for j := i + 1; j < len(positions); j++ {
			if d := positions[i].sqDist(positions[j]); d < minSq {
				t.Errorf("positions %d and %d are %g apart, closer than minimum", i, j, d)
			}
		}
	}
}

func TestPlaceSystemsDeterministic(t *testing.T) {
	cfg := DefaultConfig()

	first := placeSystems(cfg, rand.New(rand.NewSource(7)), testLogger())
	second := placeSystems(cfg, rand.New(rand.NewSource(7)), testLogger())

	if len(first) != len(second) {
		t.Fatalf("placements differ in length: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("position %d differs: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestPlaceSystemsTerminatesWhenInfeasible(t *testing.T) {
	// 10 systems at 150 apart cannot fit into a 200x200 interior; the placer
	// must give up after the attempt cap instead of looping forever.
	cfg := DefaultConfig()
	cfg.SystemCount = 10
	cfg.MapWidth = 200
	cfg.MapHeight = 200
	cfg.EdgeMargin = 0
	cfg.MinSystemDistance = 150

	positions := placeSystems(cfg, rand.New(rand.NewSource(1)), testLogger())
	if len(positions) >= cfg.SystemCount {
		t.Fatalf("placed %d systems in an infeasible area", len(positions))
	}
	if len(positions) == 0 {
		t.Fatal("expected at least one placed system")
	}
}
