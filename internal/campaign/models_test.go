package campaign

import (
	"testing"

	"starmap-server/internal/galaxy"
)

func TestCreateRequestApply(t *testing.T) {
	base := galaxy.DefaultConfig()

	t.Run("no overrides keeps defaults", func(t *testing.T) {
		got := CreateRequest{Name: "alpha"}.Apply(base)
		if got.SystemCount != base.SystemCount ||
			got.NeutralFraction != base.NeutralFraction ||
			got.ExtraRouteChance != base.ExtraRouteChance {
			t.Errorf("config changed without overrides: %+v", got)
		}
	})

	t.Run("overrides layer onto base", func(t *testing.T) {
		count := 25
		neutral := 0.3
		extra := 0.1
		req := CreateRequest{
			Name:             "beta",
			SystemCount:      &count,
			NeutralFraction:  &neutral,
			ExtraRouteChance: &extra,
		}
		got := req.Apply(base)
		if got.SystemCount != 25 || got.NeutralFraction != 0.3 || got.ExtraRouteChance != 0.1 {
			t.Errorf("overrides not applied: %+v", got)
		}
		// Untouched knobs keep their defaults.
		if got.MaxConnections != base.MaxConnections || got.MapWidth != base.MapWidth {
			t.Errorf("unrelated knobs changed: %+v", got)
		}
	})
}
