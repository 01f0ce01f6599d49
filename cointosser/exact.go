// Package cointosser provides cheap Bernoulli(1/s) draws over a feature-
// width window, used by the automata update kernel's Type-I feedback
// (spec section 4.9 / 4.3). Two interchangeable implementations are
// provided: Exact, a de-biased byte cache that eliminates the rounding
// bias of round(F/s), and Bitwise, a legacy bit-packed cache that trades
// exactness for lower per-draw cost.
package cointosser

import (
	"math"

	"github.com/hyperifyio/tsetlin/rng"
)

// Exact provides de-biased Bernoulli(1/s) draws over two independent
// caches of length F. Splitting F/s into a floor count plus a stochastic
// ceil bit (rather than rounding) is what eliminates the bias round(F/s)
// would otherwise introduce whenever F/s is non-integer.
type Exact struct {
	f        int
	hitFloor int
	hitCeilP uint32 // threshold against Uint32(): P(ceil) = frac(F/s)
	cache1   []byte
	cache2   []byte
}

// NewExact constructs an Exact coin-tosser for a feature width f and
// specificity s (s >= 1.0).
func NewExact(f int, s float64) *Exact {
	sInv := 1.0 / s
	exact := float64(f) * sInv
	hitFloor := int(math.Floor(exact))
	frac := exact - float64(hitFloor)
	return &Exact{
		f:        f,
		hitFloor: hitFloor,
		hitCeilP: uint32(math.Round(frac * float64(math.MaxUint32))),
		cache1:   make([]byte, f),
		cache2:   make([]byte, f),
	}
}

// EstimateHits returns the de-biased hit count for one cache fill: either
// floor(F/s) or floor(F/s)+1, chosen stochastically so the long-run mean
// is exactly F/s.
func (e *Exact) EstimateHits(irng *rng.IRNG) int {
	hits := e.hitFloor
	if irng.Uint32() < e.hitCeilP {
		hits++
	}
	if hits > e.f {
		hits = e.f
	}
	return hits
}

func (e *Exact) tosses(cache []byte, irng *rng.IRNG) []byte {
	for i := range cache {
		cache[i] = 0
	}
	hits := e.EstimateHits(irng)
	if e.f == 0 {
		return cache
	}
	set := 0
	for set < hits {
		ix := int(irng.Next(0, int64(e.f-1)))
		if cache[ix] == 0 {
			cache[ix] = 1
			set++
		}
	}
	return cache
}

// Tosses1 resets the first cache to all zeros, sets exactly EstimateHits
// distinct positions, and returns it.
func (e *Exact) Tosses1(irng *rng.IRNG) []byte {
	return e.tosses(e.cache1, irng)
}

// Tosses2 resets the second cache to all zeros, sets exactly EstimateHits
// distinct positions, and returns it.
func (e *Exact) Tosses2(irng *rng.IRNG) []byte {
	return e.tosses(e.cache2, irng)
}
