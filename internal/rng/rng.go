// Package rng is the primary randomness source of the generator.
//
// Every generated program owns exactly one Source; replaying a seed
// reproduces the program byte for byte.
package rng

import (
	"fmt"
	"math/rand/v2"
)

// Source draws bounded integers and coin flips from a seeded PCG stream.
type Source struct {
	seed  uint64
	r     *rand.Rand
	draws uint64
}

// New returns a Source seeded with seed.
func New(seed uint64) *Source {
	return &Source{
		seed: seed,
		r:    rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15)),
	}
}

// Seed returns the seed the source was created with.
func (s *Source) Seed() uint64 { return s.seed }

// Draws returns how many values have been consumed so far.
func (s *Source) Draws() uint64 { return s.draws }

// Upto returns a uniform value in [0, n). n must be positive.
func (s *Source) Upto(n int) int {
	if n <= 0 {
		panic(fmt.Errorf("rng: upto bound must be positive, got %d", n))
	}
	s.draws++
	return s.r.IntN(n)
}

// Flip returns true with probability 1/2.
func (s *Source) Flip() bool {
	return s.Upto(2) == 1
}

// Percent returns true with probability p/100.
func (s *Source) Percent(p int) bool {
	if p <= 0 {
		return false
	}
	if p >= 100 {
		return true
	}
	return s.Upto(100) < p
}

// Uint32 returns 32 random bits.
func (s *Source) Uint32() uint32 {
	s.draws++
	return s.r.Uint32()
}
