package galaxy

import (
	"math/rand"
	"reflect"
	"testing"
)

func TestBuildTopologyTooFewNodes(t *testing.T) {
	cfg := DefaultConfig()
	rng := rand.New(rand.NewSource(1))

	if edges := buildTopology(nil, cfg, rng, testLogger()); edges != nil {
		t.Errorf("empty input produced edges: %v", edges)
	}
	if edges := buildTopology([]point{{100, 100}}, cfg, rng, testLogger()); edges != nil {
		t.Errorf("single node produced edges: %v", edges)
	}
}

func TestBuildTopologyMinimumSpanningTree(t *testing.T) {
	// Collinear points: with extra routes disabled the result is exactly the
	// chain of nearest neighbors.
	positions := []point{{100, 500}, {200, 500}, {300, 500}, {400, 500}}
	cfg := DefaultConfig()
	cfg.ExtraRouteChance = 0

	edges := buildTopology(positions, cfg, rand.New(rand.NewSource(1)), testLogger())
	want := []edge{{0, 1}, {1, 2}, {2, 3}}
	if !reflect.DeepEqual(edges, want) {
		t.Errorf("edges = %v, want %v", edges, want)
	}
}

func TestBuildTopologyConnectsEverything(t *testing.T) {
	cfg := DefaultConfig()
	rng := rand.New(rand.NewSource(99))
	positions := placeSystems(cfg, rng, testLogger())

	edges := buildTopology(positions, cfg, rng, testLogger())
	if len(edges) < len(positions)-1 {
		t.Fatalf("%d edges cannot connect %d nodes", len(edges), len(positions))
	}

	for _, e := range edges {
		if e.a >= e.b {
			t.Errorf("edge endpoints not ordered: %v", e)
		}
	}

	// Union-find over the edge list.
	parent := make([]int, len(positions))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}
	for _, e := range edges {
		parent[find(e.a)] = find(e.b)
	}
	root := find(0)
	for i := range positions {
		if find(i) != root {
			t.Fatalf("node %d is not connected to node 0", i)
		}
	}
}

func TestBuildTopologyHonorsDegreeCap(t *testing.T) {
	cfg := DefaultConfig()

	for seed := int64(1); seed <= 300; seed++ {
		rng := rand.New(rand.NewSource(seed))
		positions := placeSystems(cfg, rng, testLogger())
		edges := buildTopology(positions, cfg, rng, testLogger())

		degree := make([]int, len(positions))
		for _, e := range edges {
			degree[e.a]++
			degree[e.b]++
		}
		for i, d := range degree {
			if d > cfg.MaxConnections {
				t.Fatalf("seed %d: node %d has degree %d, cap is %d", seed, i, d, cfg.MaxConnections)
			}
		}
	}
}

func TestBuildTopologyExtraRoutesRespectLength(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ExtraRouteChance = 1 // take every extra route the filters allow
	cfg.MaxConnections = 100

	rng := rand.New(rand.NewSource(5))
	positions := placeSystems(cfg, rng, testLogger())
	edges := buildTopology(positions, cfg, rng, testLogger())

	treeEdges := len(positions) - 1
	maxSq := cfg.MaxRouteLength * cfg.MaxRouteLength
	for i, e := range edges {
		if i < treeEdges {
			continue // the spanning tree may exceed the length cap
		}
		if d := positions[e.a].sqDist(positions[e.b]); d > maxSq {
			t.Errorf("extra edge %v has length^2 %g beyond the cap", e, d)
		}
	}
}
