package galaxy

import (
	"fmt"
	"log/slog"
	"math/rand"

	"starmap-server/internal/world"
)

// assignContent decides every system's archetype, unique display name,
// metrics and descriptive tags. Systems are visited in ascending id order;
// per system the RNG stream is consumed as: type draw (skipped when the
// archetype is forced), name draws, then five variance draws in metric
// declaration order. That sequence is part of the determinism contract.
func assignContent(g *world.Graph, cfg GenerationConfig, rng *rand.Rand, logger *slog.Logger) {
	usedNames := make(map[string]bool, g.SystemCount())

	for _, s := range g.Systems() {
		s.Type = rollType(s, cfg, rng)
		s.Name = rollName(s.Type, usedNames, rng)
		s.Metrics = rollMetrics(s, rng)
		deriveSystemTags(s)
	}
	logger.Debug("Content assigned", "systems", g.SystemCount(), "names_used", len(usedNames))
}

// rollType forces capitals to Station and border conflict zones to
// Contested; everyone else rolls the weight table with a cumulative-sum
// draw normalized by the running total.
func rollType(s *world.StarSystem, cfg GenerationConfig, rng *rand.Rand) world.SystemType {
	if s.Tags.Has(world.TagHub) {
		return world.SystemTypeStation
	}
	if s.Tags.Has(world.TagContested) {
		return world.SystemTypeContested
	}

	var total float64
	for _, tw := range cfg.TypeWeights {
		total += tw.Weight
	}
	roll := rng.Float64() * total
	for _, tw := range cfg.TypeWeights {
		roll -= tw.Weight
		if roll < 0 {
			return tw.Type
		}
	}
	// Float round-off on the last entry.
	return cfg.TypeWeights[len(cfg.TypeWeights)-1].Type
}

// rollName draws from the archetype's themed pool, retrying collisions up to
// 20 times before falling back to numeric suffixes on the last draw.
func rollName(t world.SystemType, used map[string]bool, rng *rand.Rand) string {
	pool := namePool(t)

	var name string
	for attempt := 0; attempt < 20; attempt++ {
		name = pool[rng.Intn(len(pool))]
		if !used[name] {
			used[name] = true
			return name
		}
	}

	for suffix := 2; ; suffix++ {
		candidate := fmt.Sprintf("%s %d", name, suffix)
		if !used[candidate] {
			used[candidate] = true
			return candidate
		}
	}
}

// typeDefaults is the archetype baseline every metric block starts from.
func typeDefaults(t world.SystemType) world.SystemMetrics {
	switch t {
	case world.SystemTypeStation:
		return world.SystemMetrics{Stability: 4, SecurityLevel: 3, CriminalActivity: 2, EconomicActivity: 4, LawEnforcementPresence: 3}
	case world.SystemTypeOutpost:
		return world.SystemMetrics{Stability: 3, SecurityLevel: 2, CriminalActivity: 2, EconomicActivity: 3, LawEnforcementPresence: 2}
	case world.SystemTypeDerelict:
		return world.SystemMetrics{Stability: 1, SecurityLevel: 0, CriminalActivity: 3, EconomicActivity: 0, LawEnforcementPresence: 0}
	case world.SystemTypeAsteroid:
		return world.SystemMetrics{Stability: 2, SecurityLevel: 1, CriminalActivity: 3, EconomicActivity: 3, LawEnforcementPresence: 1}
	case world.SystemTypeNebula:
		return world.SystemMetrics{Stability: 2, SecurityLevel: 1, CriminalActivity: 3, EconomicActivity: 1, LawEnforcementPresence: 0}
	case world.SystemTypeContested:
		return world.SystemMetrics{Stability: 1, SecurityLevel: 2, CriminalActivity: 4, EconomicActivity: 2, LawEnforcementPresence: 1}
	default:
		return world.SystemMetrics{Stability: 2, SecurityLevel: 2, CriminalActivity: 2, EconomicActivity: 2, LawEnforcementPresence: 2}
	}
}

// rollMetrics layers role modifiers over the archetype defaults in fixed
// order: capital boost, frontier penalty, contested penalty, then a bounded
// symmetric variance of +/-1 per gauge. Values clamp after every step.
func rollMetrics(s *world.StarSystem, rng *rand.Rand) world.SystemMetrics {
	m := typeDefaults(s.Type)

	if s.Tags.Has(world.TagHub) {
		m.Stability = 5
		m.SecurityLevel = 4
		m.EconomicActivity = 4
		m.LawEnforcementPresence = 4
		m.CriminalActivity = 1
	}
	if s.Tags.Has(world.TagFrontier) {
		m.Stability--
		m.SecurityLevel--
		m.Clamp()
	}
	if s.Tags.Has(world.TagContested) {
		m.Stability = 1
		m.CriminalActivity += 2
		m.Clamp()
	}

	m.Stability = world.ClampMetric(m.Stability + variance(rng))
	m.SecurityLevel = world.ClampMetric(m.SecurityLevel + variance(rng))
	m.CriminalActivity = world.ClampMetric(m.CriminalActivity + variance(rng))
	m.EconomicActivity = world.ClampMetric(m.EconomicActivity + variance(rng))
	m.LawEnforcementPresence = world.ClampMetric(m.LawEnforcementPresence + variance(rng))
	return m
}

func variance(rng *rand.Rand) int {
	return rng.Intn(3) - 1
}

// deriveSystemTags adds descriptive tags from archetype and metric
// thresholds. Rules are purely additive; none removes a tag set earlier.
func deriveSystemTags(s *world.StarSystem) {
	switch s.Type {
	case world.SystemTypeAsteroid:
		s.Tags.Add(world.TagMining)
		if s.Metrics.EconomicActivity >= 4 {
			s.Tags.Add(world.TagIndustrial)
		}
	case world.SystemTypeDerelict:
		s.Tags.Add(world.TagFrontier)
	case world.SystemTypeNebula:
		if s.Metrics.CriminalActivity >= 3 {
			s.Tags.Add(world.TagLawless)
		}
	}

	if s.Metrics.SecurityLevel >= 4 {
		s.Tags.Add(world.TagMilitary)
	}
	if s.Metrics.CriminalActivity >= 4 && s.Metrics.SecurityLevel <= 1 {
		s.Tags.Add(world.TagLawless)
	}
	if s.Metrics.CriminalActivity >= 5 {
		s.Tags.Add(world.TagPirateHaven)
	}
}
