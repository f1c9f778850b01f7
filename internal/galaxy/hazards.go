package galaxy

import (
	"log/slog"

	"starmap-server/internal/world"
)

// deriveRouteHazards rates every route from its finalized endpoints, so it
// must run after content assignment. No RNG draws happen here.
//
// Hazard starts at 0, adds 2 for a Contested endpoint, 1 each for Derelict
// and Nebula endpoints, adds max(endpoint crime)/2 and subtracts
// min(endpoint security)/2 (integer division), then clamps into [0,5].
func deriveRouteHazards(g *world.Graph, logger *slog.Logger) {
	for _, r := range g.Routes() {
		a, _ := g.System(r.SystemA)
		b, _ := g.System(r.SystemB)

		hazard := 0
		if a.Type == world.SystemTypeContested || b.Type == world.SystemTypeContested {
			hazard += 2
		}
		if a.Type == world.SystemTypeDerelict || b.Type == world.SystemTypeDerelict {
			hazard++
		}
		if a.Type == world.SystemTypeNebula || b.Type == world.SystemTypeNebula {
			hazard++
		}
		hazard += max(a.Metrics.CriminalActivity, b.Metrics.CriminalActivity) / 2
		hazard -= min(a.Metrics.SecurityLevel, b.Metrics.SecurityLevel) / 2
		r.Hazard = world.ClampMetric(hazard)

		if r.Hazard >= 3 {
			r.Tags.Add(world.TagDangerous)
		}
		if min(a.Metrics.SecurityLevel, b.Metrics.SecurityLevel) >= 4 {
			r.Tags.Add(world.TagPatrolled)
		}
		if a.Type == world.SystemTypeAsteroid || b.Type == world.SystemTypeAsteroid {
			r.Tags.Add(world.TagAsteroidField)
		}
		if a.Type == world.SystemTypeNebula || b.Type == world.SystemTypeNebula {
			r.Tags.Add(world.TagHidden)
		}
	}
	logger.Debug("Route hazards derived", "routes", g.RouteCount())
}
