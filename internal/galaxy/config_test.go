package galaxy

import (
	"testing"

	"starmap-server/internal/shared/errors"
	"starmap-server/internal/world"
)

func TestValidateDefaultConfig(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config must validate, got: %v", err)
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*GenerationConfig)
	}{
		{"zero system count", func(c *GenerationConfig) { c.SystemCount = 0 }},
		{"negative system count", func(c *GenerationConfig) { c.SystemCount = -5 }},
		{"zero map width", func(c *GenerationConfig) { c.MapWidth = 0 }},
		{"negative margin", func(c *GenerationConfig) { c.EdgeMargin = -1 }},
		{"margin swallows map", func(c *GenerationConfig) { c.EdgeMargin = 500 }},
		{"negative min distance", func(c *GenerationConfig) { c.MinSystemDistance = -1 }},
		{"packing infeasible", func(c *GenerationConfig) {
			c.SystemCount = 1000
			c.MinSystemDistance = 200
		}},
		{"zero max connections", func(c *GenerationConfig) { c.MaxConnections = 0 }},
		{"max connections below spanning minimum", func(c *GenerationConfig) { c.MaxConnections = 1 }},
		{"zero max route length", func(c *GenerationConfig) { c.MaxRouteLength = 0 }},
		{"extra route chance above one", func(c *GenerationConfig) { c.ExtraRouteChance = 1.5 }},
		{"negative extra route chance", func(c *GenerationConfig) { c.ExtraRouteChance = -0.1 }},
		{"neutral fraction above one", func(c *GenerationConfig) { c.NeutralFraction = 2 }},
		{"empty weight table", func(c *GenerationConfig) { c.TypeWeights = nil }},
		{"negative weight", func(c *GenerationConfig) {
			c.TypeWeights = []TypeWeight{{world.SystemTypeOutpost, -1}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if errors.GetType(err) != errors.ErrorTypeValidation {
				t.Errorf("error type = %s, want validation", errors.GetType(err))
			}
		})
	}
}
