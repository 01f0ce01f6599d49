// Package kernel implements the compute kernels that operate over an
// automaton.TAState: clause evaluation (bytewise and bitwise, pruned and
// non-pruned), vote aggregation, Type-I/Type-II feedback sampling for both
// classifier and regressor targets, and the automata update kernel
// (B1/B2/B3). Parallel variants fan out over a worker pool sized by
// runtime.NumCPU(), the same pattern the teacher's tensor package uses for
// its matrix kernels.
package kernel

import (
	"runtime"
	"sync"

	"github.com/hyperifyio/tsetlin/automaton"
	"github.com/hyperifyio/tsetlin/container"
)

// defaultTileSize batches feature columns during bytewise clause evaluation
// so the fast-exit check (any included literal that is false for x kills the
// clause) runs on cache-resident chunks rather than the whole row at once. Callers
// that care about the configured clause_output_tile_size should use the
// Tiled variants below instead.
const defaultTileSize = 16

// resolveJobs maps the -1 "use every core" sentinel to runtime.NumCPU()
// and otherwise returns nJobs unchanged, floored at 1.
func resolveJobs(nJobs int) int {
	if nJobs < 0 {
		return runtime.NumCPU()
	}
	if nJobs < 1 {
		return 1
	}
	return nJobs
}

// ClauseOutputByte evaluates clause c over a dense {0,1} byte feature row
// x, without the all-excluded pruning fast path: used during training,
// where every clause must be visited so its automata can receive feedback.
// It tiles the column scan at defaultTileSize; use ClauseOutputByteTiled to
// honor a configured clause_output_tile_size instead.
func ClauseOutputByte(state *automaton.TAState, x []byte, c int) byte {
	return ClauseOutputByteTiled(state, x, c, defaultTileSize)
}

// ClauseOutputByteTiled is ClauseOutputByte with the column-scan unroll
// factor taken from tileSize (one of the allowed clause_output_tile_size
// values) rather than the package default. The tile size only sets the
// chunk width of the column scan; every literal check still returns on the
// first failure, so the result never depends on it and any positive
// tileSize is safe here even though Options restricts the configured value
// to {16,32,64,128}.
func ClauseOutputByteTiled(state *automaton.TAState, x []byte, c int, tileSize int) byte {
	if tileSize < 1 {
		tileSize = defaultTileSize
	}
	posRow, negRow := 2*c, 2*c+1
	cols := state.Cols()
	for base := 0; base < cols; base += tileSize {
		end := base + tileSize
		if end > cols {
			end = cols
		}
		for col := base; col < end; col++ {
			if state.Include(posRow, col) && x[col] == 0 {
				return 0
			}
			if state.Include(negRow, col) && x[col] != 0 {
				return 0
			}
		}
	}
	return 1
}

// ClauseOutputBytePruned is ClauseOutputByte with all-excluded pruning: a
// clause whose literal rows are both entirely excluded outputs 0 without
// visiting any feature, instead of the vacuous 1 an empty conjunction would
// give. Used at inference, so untrained clauses do not vote.
func ClauseOutputBytePruned(state *automaton.TAState, x []byte, c int) byte {
	return ClauseOutputBytePrunedTiled(state, x, c, defaultTileSize)
}

// ClauseOutputBytePrunedTiled is ClauseOutputBytePruned honoring a
// configured tileSize; see ClauseOutputByteTiled.
func ClauseOutputBytePrunedTiled(state *automaton.TAState, x []byte, c int, tileSize int) byte {
	if state.ClauseAllExcluded(c) {
		return 0
	}
	return ClauseOutputByteTiled(state, x, c, tileSize)
}

// ClauseOutputBitwise evaluates clause c over a bit-packed feature vector,
// without pruning.
func ClauseOutputBitwise(state *automaton.TAState, x *container.BitVector, c int) byte {
	posRow := state.PolarityRow(2 * c)
	negRow := state.PolarityRow(2*c + 1)
	blocks := x.Blocks()
	for i := range posRow {
		xb := blocks[i]
		if posRow[i]&^xb != 0 {
			return 0
		}
		if negRow[i]&xb != 0 {
			return 0
		}
	}
	return 1
}

// ClauseOutputBitwisePruned is ClauseOutputBitwise with all-excluded
// pruning: an all-excluded clause outputs 0.
func ClauseOutputBitwisePruned(state *automaton.TAState, x *container.BitVector, c int) byte {
	if state.ClauseAllExcluded(c) {
		return 0
	}
	return ClauseOutputBitwise(state, x, c)
}

// ParallelClauseOutput fills out[c] = eval(state, x, c) for every clause,
// fanning out across nJobs workers (nJobs == -1 uses every CPU).
func ParallelClauseOutput(state *automaton.TAState, numClauses int, nJobs int, out []byte, eval func(c int) byte) {
	jobs := resolveJobs(nJobs)
	if jobs <= 1 || numClauses < jobs*4 {
		for c := 0; c < numClauses; c++ {
			out[c] = eval(c)
		}
		return
	}
	chunk := (numClauses + jobs - 1) / jobs
	var wg sync.WaitGroup
	for start := 0; start < numClauses; start += chunk {
		end := start + chunk
		if end > numClauses {
			end = numClauses
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for c := start; c < end; c++ {
				out[c] = eval(c)
			}
		}(start, end)
	}
	wg.Wait()
}
