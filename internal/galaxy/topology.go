package galaxy

import (
	"log/slog"
	"math"
	"math/rand"
)

type edge struct {
	a, b int // indices into the position slice, a < b
}

// buildTopology connects the placed positions into a single component.
//
// Step 1 is a spanning tree via Prim's algorithm starting from node 0:
// repeatedly attach the nearest not-yet-included node to an included node
// that is still under the degree cap. Every tree has a node of degree 1, so
// with a cap of at least 2 an eligible attach point always exists; the
// result is exactly n-1 edges, full connectivity, and no node over the cap.
//
// Step 2 adds variety: every unordered pair not already connected, with both
// endpoints under the degree cap and within the max route length, gets an
// edge with probability (1 - dist/maxDist) * extraRouteChance. Pairs are
// visited in increasing index order and the RNG is only consumed for pairs
// that pass the filters; both facts are part of the determinism contract.
func buildTopology(positions []point, cfg GenerationConfig, rng *rand.Rand, logger *slog.Logger) []edge {
	n := len(positions)
	if n < 2 {
		return nil
	}

	edges := make([]edge, 0, n-1)
	degree := make([]int, n)
	connected := make(map[[2]int]bool)

	addEdge := func(a, b int) {
		if a > b {
			a, b = b, a
		}
		edges = append(edges, edge{a, b})
		degree[a]++
		degree[b]++
		connected[[2]int{a, b}] = true
	}

	// Degree-capped spanning tree.
	inTree := make([]bool, n)
	inTree[0] = true
	for added := 1; added < n; added++ {
		bestDist := math.MaxFloat64
		bestFrom, bestTo := -1, -1
		for from := 0; from < n; from++ {
			if !inTree[from] || degree[from] >= cfg.MaxConnections {
				continue
			}
			for to := 0; to < n; to++ {
				if inTree[to] {
					continue
				}
				if d := positions[from].sqDist(positions[to]); d < bestDist {
					bestDist = d
					bestFrom, bestTo = from, to
				}
			}
		}
		inTree[bestTo] = true
		addEdge(bestFrom, bestTo)
	}
	treeEdges := len(edges)

	// Probabilistic extra routes.
	maxSq := cfg.MaxRouteLength * cfg.MaxRouteLength
	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			if connected[[2]int{a, b}] {
				continue
			}
			if degree[a] >= cfg.MaxConnections || degree[b] >= cfg.MaxConnections {
				continue
			}
			sq := positions[a].sqDist(positions[b])
			if sq > maxSq {
				continue
			}
			dist := math.Sqrt(sq)
			chance := (1 - dist/cfg.MaxRouteLength) * cfg.ExtraRouteChance
			if rng.Float64() < chance {
				addEdge(a, b)
			}
		}
	}

	logger.Debug("Topology built",
		"systems", n,
		"tree_edges", treeEdges,
		"extra_edges", len(edges)-treeEdges,
	)
	return edges
}
