package galaxy

import (
	"math"

	"starmap-server/internal/shared/errors"
	"starmap-server/internal/world"
)

// TypeWeight is one entry of the system archetype weight table. Weights need
// not sum to 1; the draw normalizes by the running total. The table is an
// ordered slice rather than a map so the cumulative roll walks it in a fixed
// order.
type TypeWeight struct {
	Type   world.SystemType
	Weight float64
}

// GenerationConfig carries every knob of the generation pipeline. It is an
// explicit value passed into Generate; the pipeline keeps no process-wide
// generation state.
type GenerationConfig struct {
	SystemCount int

	MapWidth          float64
	MapHeight         float64
	EdgeMargin        float64
	MinSystemDistance float64

	MaxConnections   int
	MaxRouteLength   float64
	ExtraRouteChance float64

	NeutralFraction float64

	TypeWeights    []TypeWeight
	InhabitedTypes []world.SystemType
}

// DefaultConfig returns the baseline galaxy used when a campaign supplies no
// overrides.
func DefaultConfig() GenerationConfig {
	return GenerationConfig{
		SystemCount:       40,
		MapWidth:          1000,
		MapHeight:         1000,
		EdgeMargin:        50,
		MinSystemDistance: 80,
		MaxConnections:    4,
		MaxRouteLength:    280,
		ExtraRouteChance:  0.35,
		NeutralFraction:   0.15,
		TypeWeights: []TypeWeight{
			{world.SystemTypeStation, 0.25},
			{world.SystemTypeOutpost, 0.30},
			{world.SystemTypeAsteroid, 0.20},
			{world.SystemTypeNebula, 0.15},
			{world.SystemTypeDerelict, 0.10},
		},
		InhabitedTypes: []world.SystemType{
			world.SystemTypeStation,
			world.SystemTypeOutpost,
			world.SystemTypeAsteroid,
			world.SystemTypeNebula,
		},
	}
}

// Validate fails fast on configuration that can never generate a galaxy.
// These are programmer or deployment errors; generation never starts on an
// invalid config.
func (c GenerationConfig) Validate() error {
	if c.SystemCount <= 0 {
		return errors.Validationf("system count must be positive, got %d", c.SystemCount)
	}
	if c.MapWidth <= 0 || c.MapHeight <= 0 {
		return errors.Validationf("map dimensions must be positive, got %gx%g", c.MapWidth, c.MapHeight)
	}
	if c.EdgeMargin < 0 {
		return errors.Validationf("edge margin must not be negative, got %g", c.EdgeMargin)
	}
	usableW := c.MapWidth - 2*c.EdgeMargin
	usableH := c.MapHeight - 2*c.EdgeMargin
	if usableW <= 0 || usableH <= 0 {
		return errors.Validationf("edge margin %g leaves no usable interior in %gx%g map", c.EdgeMargin, c.MapWidth, c.MapHeight)
	}
	if c.MinSystemDistance < 0 {
		return errors.Validationf("minimum system distance must not be negative, got %g", c.MinSystemDistance)
	}
	// Circle packing bound: each system claims a disc of radius d/2.
	required := float64(c.SystemCount) * math.Pi * (c.MinSystemDistance / 2) * (c.MinSystemDistance / 2)
	if required > usableW*usableH {
		return errors.Validationf(
			"cannot fit %d systems with minimum distance %g in %gx%g usable area",
			c.SystemCount, c.MinSystemDistance, usableW, usableH,
		)
	}
	// The spanning tree attaches each new system to an in-tree system still
	// under the cap; a cap below 2 can leave no eligible attach point.
	if c.MaxConnections < 2 {
		return errors.Validationf("max connections must be at least 2, got %d", c.MaxConnections)
	}
	if c.MaxRouteLength <= 0 {
		return errors.Validationf("max route length must be positive, got %g", c.MaxRouteLength)
	}
	if c.ExtraRouteChance < 0 || c.ExtraRouteChance > 1 {
		return errors.Validationf("extra route chance must be in [0,1], got %g", c.ExtraRouteChance)
	}
	if c.NeutralFraction < 0 || c.NeutralFraction > 1 {
		return errors.Validationf("neutral fraction must be in [0,1], got %g", c.NeutralFraction)
	}
	if len(c.TypeWeights) == 0 {
		return errors.Validationf("type weight table must not be empty")
	}
	for _, tw := range c.TypeWeights {
		if tw.Weight < 0 {
			return errors.Validationf("type weight for %s must not be negative, got %g", tw.Type, tw.Weight)
		}
	}
	return nil
}
