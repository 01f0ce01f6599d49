package kernel

import (
	"sync"

	"github.com/hyperifyio/tsetlin/automaton"
	"github.com/hyperifyio/tsetlin/cointosser"
	"github.com/hyperifyio/tsetlin/rng"
)

// b1 applies Type-I feedback to a clause that evaluated to 1: the literal
// agreeing with x reinforces toward include (always, when boostTPF is set,
// else with probability (s-1)/s), and the literal disagreeing with x
// decrements toward exclude with probability 1/s. cPos and cNeg are two
// independent Bernoulli(1/s) draws (Tosses1/Tosses2 from the worker's
// Exact coin-tosser) — spec section 4.9 B2 requires independent coins,
// not one coin reused for both the increment and decrement decision.
func b1(state *automaton.TAState, x []byte, c int, cPos, cNeg []byte, boostTPF bool) {
	posRow, negRow := 2*c, 2*c+1
	cols := state.Cols()
	for col := 0; col < cols; col++ {
		hitPos := cPos[col] != 0
		hitNeg := cNeg[col] != 0
		if x[col] != 0 {
			if boostTPF || !hitPos {
				state.Increment(posRow, col)
			}
			if hitNeg {
				state.Decrement(negRow, col)
			}
		} else {
			if boostTPF || !hitNeg {
				state.Increment(negRow, col)
			}
			if hitPos {
				state.Decrement(posRow, col)
			}
		}
	}
}

// b2 applies Type-I feedback to a clause that evaluated to 0: both literal
// rows decrement toward exclude with probability 1/s, regardless of x.
func b2(state *automaton.TAState, c int, toss []byte) {
	posRow, negRow := 2*c, 2*c+1
	cols := state.Cols()
	for col := 0; col < cols; col++ {
		if toss[col] != 0 {
			state.Decrement(posRow, col)
			state.Decrement(negRow, col)
		}
	}
}

// b3 applies Type-II feedback, which only acts on a clause that evaluated
// to 1: any literal that disagrees with x but is still in its exclude
// region gets pushed one step toward include, correcting a clause that
// fired on the strength of excluded, uninformative literals.
func b3(state *automaton.TAState, x []byte, c int) {
	posRow, negRow := 2*c, 2*c+1
	cols := state.Cols()
	for col := 0; col < cols; col++ {
		if x[col] == 0 {
			if !state.Include(posRow, col) {
				state.Increment(posRow, col)
			}
		} else {
			if !state.Include(negRow, col) {
				state.Increment(negRow, col)
			}
		}
	}
}

// ApplyUpdate dispatches clause c's sampled feedback to the matching
// B1/B2/B3 block and, for weighted banks, adjusts the clause weight.
func ApplyUpdate(state *automaton.TAState, x []byte, c int, fb FeedbackKind, clauseOutput byte, exact *cointosser.Exact, irng *rng.IRNG, boostTPF bool) {
	switch fb {
	case FeedbackTypeI:
		if clauseOutput != 0 {
			b1(state, x, c, exact.Tosses1(irng), exact.Tosses2(irng), boostTPF)
			state.IncrementWeight(c)
		} else {
			b2(state, c, exact.Tosses1(irng))
		}
	case FeedbackTypeII:
		if clauseOutput != 0 {
			b3(state, x, c)
			state.DecrementWeight(c)
		}
	}
}

// SpawnWorkerSeeds draws nJobs seeds sequentially, single-threaded, from
// the shared IRNG before any goroutine starts. Drawing them up front
// (rather than letting each goroutine pull from a shared generator) is
// what keeps a parallel update run bit-reproducible for a fixed seed and
// nJobs: a shared PRNG accessed from multiple goroutines would need its
// own locking and would make draw order, and so the result, depend on
// goroutine scheduling.
func SpawnWorkerSeeds(irng *rng.IRNG, nJobs int) []uint32 {
	seeds := make([]uint32, nJobs)
	for i := range seeds {
		seeds[i] = irng.Uint32()
	}
	return seeds
}

// ParallelUpdate applies ApplyUpdate for every clause in [0, numClauses),
// fanning out across nJobs workers (nJobs == -1 uses every CPU). Each
// worker owns an independent IRNG (seeded from SpawnWorkerSeeds) and its
// own Exact coin-tosser, so no automaton row is touched by more than one
// goroutine and no PRNG state is shared across goroutines.
func ParallelUpdate(state *automaton.TAState, x []byte, fb []int8, clauseOutput []byte, numClauses int, nJobs int, cols int, s float64, boostTPF bool, sharedIRNG *rng.IRNG) {
	jobs := resolveJobs(nJobs)
	if jobs > numClauses {
		jobs = numClauses
	}
	if jobs <= 1 {
		exact := cointosser.NewExact(cols, s)
		for c := 0; c < numClauses; c++ {
			ApplyUpdate(state, x, c, FeedbackKind(fb[c]), clauseOutput[c], exact, sharedIRNG, boostTPF)
		}
		return
	}

	seeds := SpawnWorkerSeeds(sharedIRNG, jobs)
	chunk := (numClauses + jobs - 1) / jobs
	var wg sync.WaitGroup
	for w := 0; w < jobs; w++ {
		start := w * chunk
		end := start + chunk
		if end > numClauses {
			end = numClauses
		}
		if start >= end {
			continue
		}
		wg.Add(1)
		go func(start, end int, seed uint32) {
			defer wg.Done()
			workerIRNG := rng.NewIRNG(seed)
			exact := cointosser.NewExact(cols, s)
			for c := start; c < end; c++ {
				ApplyUpdate(state, x, c, FeedbackKind(fb[c]), clauseOutput[c], exact, workerIRNG, boostTPF)
			}
		}(start, end, seeds[w])
	}
	wg.Wait()
}
