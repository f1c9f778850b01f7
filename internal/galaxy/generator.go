package galaxy

import (
	"log/slog"

	"starmap-server/internal/world"
)

// Service runs the galaxy generation pipeline for a campaign.
type Service struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *Service {
	logger.Debug("Initializing galaxy service")

	return &Service{
		logger: logger,
	}
}

// Generate builds a complete world graph from a validated config, a seed and
// the faction roster supplied by the registry.
//
// Phases run strictly in order, each extending the same graph:
// place -> topology -> territory -> content -> hazards -> stations.
// The single RNG stream is consumed in exactly this call order; reordering
// any call changes every subsequent draw, so the order is load-bearing.
func (s *Service) Generate(cfg GenerationConfig, seed int64, roster []world.Faction) (*world.Graph, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rng, seed := NewRand(seed)

	logger := s.logger.With("component", "galaxy_generator", "seed", seed)
	logger.Info("Starting galaxy generation",
		"systems", cfg.SystemCount,
		"factions", len(roster),
		"map", cfg.MapWidth,
	)

	g := world.NewGraph(s.logger)
	for i := range roster {
		f := roster[i]
		g.AddFaction(&f)
	}

	positions := placeSystems(cfg, rng, logger)
	for i, p := range positions {
		g.AddSystem(&world.StarSystem{
			ID:   i + 1,
			X:    p.x,
			Y:    p.y,
			Tags: world.NewTagSet(),
		})
	}

	for _, e := range buildTopology(positions, cfg, rng, logger) {
		if _, err := g.Connect(e.a+1, e.b+1); err != nil {
			return nil, err
		}
	}

	assignTerritory(g, cfg, logger)
	assignContent(g, cfg, rng, logger)
	deriveRouteHazards(g, logger)
	placeStations(g, cfg, logger)

	logger.Info("Galaxy generation completed",
		"systems", g.SystemCount(),
		"routes", g.RouteCount(),
		"stations", g.StationCount(),
	)
	return g, nil
}
