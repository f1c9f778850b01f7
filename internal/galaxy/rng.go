package galaxy

import (
	"math/rand"
	"time"
)

// ResolveSeed replaces the zero "pick one for me" seed with a clock-derived
// value. Anything that records a seed for later regeneration must store the
// resolved value, never the zero it came from.
func ResolveSeed(seed int64) int64 {
	if seed == 0 {
		return time.Now().UnixNano()
	}
	return seed
}

// NewRand returns the single RNG stream driving one generation run. The
// stream is threaded explicitly through every pipeline phase in a fixed call
// order; same seed plus same config reproduces the world byte for byte.
func NewRand(seed int64) (*rand.Rand, int64) {
	seed = ResolveSeed(seed)
	return rand.New(rand.NewSource(seed)), seed
}
