package sim

import (
	"math/rand"
)

// RNGPort provides seeded random number generation for deterministic simulation runs
type RNGPort interface {
	// SeededStream creates an isolated deterministic generator for a named operation.
	// The same (name, seed) pair always yields the same draw sequence, and streams
	// for different names never share state.
	SeededStream(name string, seed int64) (*rand.Rand, error)

	// ValidateSeed ensures the seed produces expected deterministic results
	ValidateSeed(name string, seed int64, expected []float64) error
}

// PValuePort wraps a two-sample statistical test as a pure p-value capability.
// Implementations must be stateless across calls and must not seed or hold
// private randomness, so that a simulation run is reproducible from its seed.
type PValuePort interface {
	// Name identifies the test for manifests and failure reports
	Name() string

	// PValue computes the two-sided p-value for the difference between groups.
	// Returned values are in [0, 1]. An error means the test statistic is
	// undefined for these samples (e.g. zero variance), never a verdict.
	PValue(a, b []float64) (float64, error)
}

// RandomizedPValuePort is implemented by resampling-based tests that need
// random draws. The generator is supplied by the caller so the test consumes
// the run's own stream instead of seeding one of its own.
type RandomizedPValuePort interface {
	PValuePort

	PValueRand(a, b []float64, rng *rand.Rand) (float64, error)
}
