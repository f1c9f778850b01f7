package campaign

import (
	"time"

	"starmap-server/internal/galaxy"
)

type Status string

const (
	StatusCreating Status = "creating"
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
)

// Campaign is one playthrough: a seed, the world generated from it, and the
// session bookkeeping around both.
type Campaign struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Seed         int64     `json:"seed"`
	Status       Status    `json:"status"`
	SystemCount  int       `json:"system_count"`
	RouteCount   int       `json:"route_count"`
	StationCount int       `json:"station_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateRequest is the admin-facing payload for starting a campaign. A zero
// seed gets a generated one; the campaign always records the resolved seed
// so its world can be rebuilt from it. Generation knobs not present fall
// back to the server's configured galaxy defaults.
type CreateRequest struct {
	Name             string   `json:"name"`
	Seed             int64    `json:"seed"`
	SystemCount      *int     `json:"system_count,omitempty"`
	NeutralFraction  *float64 `json:"neutral_fraction,omitempty"`
	ExtraRouteChance *float64 `json:"extra_route_chance,omitempty"`
}

// Apply overlays the request's optional knobs onto a base config.
func (r CreateRequest) Apply(cfg galaxy.GenerationConfig) galaxy.GenerationConfig {
	if r.SystemCount != nil {
		cfg.SystemCount = *r.SystemCount
	}
	if r.NeutralFraction != nil {
		cfg.NeutralFraction = *r.NeutralFraction
	}
	if r.ExtraRouteChance != nil {
		cfg.ExtraRouteChance = *r.ExtraRouteChance
	}
	return cfg
}
