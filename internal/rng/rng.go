// Package rng provides the seeded randomness abstraction for the simulation.
// All nondeterminism in the engine flows through a single Source per
// transition, which is what makes runs reproducible: the same seed and the
// same input sequence consume the same draw sequence.
package rng

import "math/rand"

// Source is the randomness provider consumed by the simulation engine.
// A Source is owned exclusively by one transition at a time; the engine
// never interleaves draws from two sources.
type Source interface {
	// Intn returns a non-negative int in [0, n). Panics if n <= 0.
	Intn(n int) int

	// Float64 returns a value in [0.0, 1.0).
	Float64() float64

	// Shuffle pseudo-randomizes the order of n elements in place.
	Shuffle(n int, swap func(i, j int))
}

// seeded wraps math/rand with a fixed seed.
type seeded struct {
	r *rand.Rand
}

// New returns a deterministic Source seeded with the given value.
// Non-cryptographic randomness is intentional here; reproducibility is the
// whole point.
func New(seed int64) Source {
	return &seeded{r: rand.New(rand.NewSource(seed))} // #nosec G404
}

func (s *seeded) Intn(n int) int { return s.r.Intn(n) }

func (s *seeded) Float64() float64 { return s.r.Float64() }

func (s *seeded) Shuffle(n int, swap func(i, j int)) { s.r.Shuffle(n, swap) }
