package galaxy

import (
	"log/slog"
	"math/rand"
)

type point struct {
	x, y float64
}

func (p point) sqDist(o point) float64 {
	dx := p.x - o.x
	dy := p.y - o.y
	return dx*dx + dy*dy
}

// placeSystems scatters up to cfg.SystemCount positions inside the usable
// interior [margin, dim-margin]^2 by rejection sampling: draw a uniform
// point, accept it if it keeps the minimum separation to every accepted
// point. Attempts are capped at 100 per requested system so infeasible
// configs terminate; coming up short is a warning, not an error, and the
// rest of the pipeline works off the reduced count.
func placeSystems(cfg GenerationConfig, rng *rand.Rand, logger *slog.Logger) []point {
	usableW := cfg.MapWidth - 2*cfg.EdgeMargin
	usableH := cfg.MapHeight - 2*cfg.EdgeMargin
	minSq := cfg.MinSystemDistance * cfg.MinSystemDistance
	maxAttempts := 100 * cfg.SystemCount

	positions := make([]point, 0, cfg.SystemCount)
	attempts := 0
	for len(positions) < cfg.SystemCount && attempts < maxAttempts {
		attempts++
		candidate := point{
			x: cfg.EdgeMargin + rng.Float64()*usableW,
			y: cfg.EdgeMargin + rng.Float64()*usableH,
		}

		ok := true
		for _, p := range positions {
			if candidate.sqDist(p) < minSq {
				ok = false
				break
			}
		}
		if ok {
			positions = append(positions, candidate)
		}
	}

	if len(positions) < cfg.SystemCount {
		logger.Warn("Placed fewer systems than requested",
			"requested", cfg.SystemCount,
			"placed", len(positions),
			"attempts", attempts,
		)
	}
	return positions
}
