package galaxy

import (
	"log/slog"
	"sort"

	"starmap-server/internal/world"
)

// assignTerritory seats one capital per faction, floods ownership outward
// across the topology, and finally clears a configured fraction of the rim
// back to unowned frontier space. Capital selection and the flood fill are
// fully determined by geometry and id order; no RNG draws happen here.
func assignTerritory(g *world.Graph, cfg GenerationConfig, logger *slog.Logger) {
	systems := g.Systems()
	factions := g.Factions()
	if len(systems) == 0 || len(factions) == 0 {
		return
	}

	if len(systems) < len(factions) {
		logger.Warn("Fewer systems than factions, placing fewer capitals",
			"systems", len(systems),
			"factions", len(factions),
		)
		factions = factions[:len(systems)]
	}

	capitals := placeCapitals(g, systems, factions, cfg)
	floodOwnership(g, capitals, logger)
	markNeutral(g, systems, capitals, cfg, logger)

	logger.Info("Territory assigned",
		"capitals", len(capitals),
		"neutral_fraction", cfg.NeutralFraction,
	)
}

// placeCapitals picks capital systems in faction id order. The first capital
// maximizes distance from the map center, pushing the first faction away
// from the middle; every later capital maximizes its minimum distance to all
// previously seated capitals. Ties resolve to the lowest system id.
func placeCapitals(g *world.Graph, systems []*world.StarSystem, factions []*world.Faction, cfg GenerationConfig) []int {
	center := point{x: cfg.MapWidth / 2, y: cfg.MapHeight / 2}
	taken := make(map[int]bool)
	var capitals []int

	for i, f := range factions {
		bestID := -1
		bestScore := -1.0
		for _, s := range systems {
			if taken[s.ID] {
				continue
			}
			p := point{x: s.X, y: s.Y}
			var score float64
			if i == 0 {
				score = p.sqDist(center)
			} else {
				score = minSqDistToCapitals(g, p, capitals)
			}
			if score > bestScore {
				bestScore = score
				bestID = s.ID
			}
		}
		if bestID < 0 {
			break
		}

		taken[bestID] = true
		capitals = append(capitals, bestID)
		capital, _ := g.System(bestID)
		capital.OwnerID = f.ID
		capital.Tags.Add(world.TagHub)
		capital.Tags.Add(world.TagCore)
	}
	return capitals
}

func minSqDistToCapitals(g *world.Graph, p point, capitals []int) float64 {
	best := -1.0
	for _, id := range capitals {
		c, _ := g.System(id)
		d := p.sqDist(point{x: c.X, y: c.Y})
		if best < 0 || d < best {
			best = d
		}
	}
	return best
}

// floodOwnership is a multi-source BFS seeded from every capital at distance
// 0. An unclaimed neighbor is claimed for the visiting frontier's faction at
// distance+1. A neighbor already claimed by a different faction at the same
// resulting distance is equidistant contention: it keeps its first owner and
// is marked contested+border instead of being reassigned. Re-marking an
// already contested system is an idempotent tag union.
func floodOwnership(g *world.Graph, capitals []int, logger *slog.Logger) {
	dist := make(map[int]int, g.SystemCount())
	queue := make([]int, 0, g.SystemCount())
	for _, id := range capitals {
		dist[id] = 0
		queue = append(queue, id)
	}

	contested := 0
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		sys, _ := g.System(current)
		d := dist[current]

		for _, neighborID := range sys.Neighbors {
			neighbor, _ := g.System(neighborID)
			if _, claimed := dist[neighborID]; !claimed {
				neighbor.OwnerID = sys.OwnerID
				dist[neighborID] = d + 1
				queue = append(queue, neighborID)
				continue
			}
			if neighbor.OwnerID != sys.OwnerID && dist[neighborID] == d+1 {
				if !neighbor.Tags.Has(world.TagContested) {
					contested++
				}
				neighbor.Tags.Add(world.TagContested)
				neighbor.Tags.Add(world.TagBorder)
			}
		}
	}

	logger.Debug("Ownership flood fill complete",
		"claimed", len(dist),
		"contested", contested,
	)
}

// markNeutral clears ownership on the configured fraction of non-capital
// systems, picking those with the largest minimum Euclidean distance to any
// capital. Contested systems consume their selection slot but keep both
// owner and tags.
func markNeutral(g *world.Graph, systems []*world.StarSystem, capitals []int, cfg GenerationConfig, logger *slog.Logger) {
	capitalSet := make(map[int]bool, len(capitals))
	for _, id := range capitals {
		capitalSet[id] = true
	}

	type candidate struct {
		id      int
		capDist float64
	}
	var candidates []candidate
	for _, s := range systems {
		if capitalSet[s.ID] {
			continue
		}
		candidates = append(candidates, candidate{
			id:      s.ID,
			capDist: minSqDistToCapitals(g, point{x: s.X, y: s.Y}, capitals),
		})
	}

	count := int(cfg.NeutralFraction * float64(len(candidates)))
	if count == 0 {
		return
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].capDist != candidates[j].capDist {
			return candidates[i].capDist > candidates[j].capDist
		}
		return candidates[i].id < candidates[j].id
	})

	cleared := 0
	for _, c := range candidates[:count] {
		s, _ := g.System(c.id)
		if s.Tags.Has(world.TagContested) {
			continue
		}
		s.OwnerID = 0
		s.Tags.Add(world.TagFrontier)
		cleared++
	}
	logger.Debug("Neutral systems marked", "selected", count, "cleared", cleared)
}
