package core

import "math/rand/v2"

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// ForIndex returns an RNG whose stream depends only on seed and i, so a
// kernel can draw the same "random" values every time it visits a cell.
func ForIndex(seed int64, i Index) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), mix(i)))}
}

// Range returns a random float64 in [lo, hi).
func (r *RNG) Range(lo, hi float64) float64 {
	return lo + (hi-lo)*r.r.Float64()
}

// Source exposes the underlying rand.Rand for advanced use.
func (r *RNG) Source() *rand.Rand { return r.r }

// mix folds an index into a well distributed 64-bit stream selector
// (splitmix64 finaliser).
func mix(i Index) uint64 {
	z := uint64(i.Row)*0x9e3779b97f4a7c15 ^ uint64(i.Column)
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
