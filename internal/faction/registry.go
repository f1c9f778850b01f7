package faction

import (
	"log/slog"

	"starmap-server/internal/world"
)

// Registry supplies the faction roster cloned into every generated world.
// The generator copies the entries, so worlds never share faction state.
type Registry struct {
	roster []world.Faction
	logger *slog.Logger
}

func NewRegistry(logger *slog.Logger) *Registry {
	logger.Debug("Initializing faction registry")

	return &Registry{
		roster: defaultRoster(),
		logger: logger,
	}
}

// Roster returns a fresh copy of the faction table, ordered by id.
func (r *Registry) Roster() []world.Faction {
	out := make([]world.Faction, len(r.roster))
	copy(out, r.roster)
	return out
}

// Faction returns the roster entry for an id.
func (r *Registry) Faction(id int) (world.Faction, bool) {
	for _, f := range r.roster {
		if f.ID == id {
			return f, true
		}
	}
	return world.Faction{}, false
}

// defaultRoster is the shipped faction table. Ids start at 1; id 0 is the
// unowned sentinel throughout the world graph.
func defaultRoster() []world.Faction {
	return []world.Faction{
		{
			ID:   1,
			Name: "Meridian Combine",
			Type: world.FactionTypeCorporate,
			Metrics: world.FactionMetrics{
				MilitaryStrength: 3,
				EconomicPower:    5,
				Influence:        4,
				Desperation:      1,
				Corruption:       3,
			},
			Hostility: 1,
			Color:     "#e8a33d",
		},
		{
			ID:   2,
			Name: "Terran Accord",
			Type: world.FactionTypeGovernment,
			Metrics: world.FactionMetrics{
				MilitaryStrength: 4,
				EconomicPower:    4,
				Influence:        5,
				Desperation:      1,
				Corruption:       2,
			},
			Hostility: 0,
			Color:     "#3d7de8",
		},
		{
			ID:   3,
			Name: "Veil Syndicate",
			Type: world.FactionTypeCriminal,
			Metrics: world.FactionMetrics{
				MilitaryStrength: 2,
				EconomicPower:    3,
				Influence:        2,
				Desperation:      3,
				Corruption:       5,
			},
			Hostility: 3,
			Color:     "#b03de8",
		},
		{
			ID:   4,
			Name: "Outer Reaches Coalition",
			Type: world.FactionTypeIndependent,
			Metrics: world.FactionMetrics{
				MilitaryStrength: 2,
				EconomicPower:    2,
				Influence:        3,
				Desperation:      4,
				Corruption:       1,
			},
			Hostility: 2,
			Color:     "#3de87a",
		},
	}
}
