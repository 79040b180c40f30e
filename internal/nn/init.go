package nn

import (
	"math/rand"
)

// uniform draws a value from U(-1, 1).
//
// A nil rng uses the global source.
func uniform(rng *rand.Rand) float64 {
	if rng == nil {
		//nolint:gosec // Using math/rand for weight initialization (not security-critical)
		return rand.Float64()*2.0 - 1.0
	}
	return rng.Float64()*2.0 - 1.0
}
