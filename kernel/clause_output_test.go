package kernel

import (
	"testing"

	"github.com/hyperifyio/tsetlin/automaton"
	"github.com/hyperifyio/tsetlin/container"
	"github.com/stretchr/testify/assert"
)

func allIncludeState(rows, cols int, includePos, includeNeg bool) *automaton.TAState {
	s := automaton.New(rows, cols, 10, automaton.CountingI32, false, 0)
	for r := 0; r < rows; r += 2 {
		for c := 0; c < cols; c++ {
			if includePos {
				s.Increment(r, c)
			}
			if includeNeg {
				s.Increment(r+1, c)
			}
		}
	}
	return s
}

func TestClauseOutputByte_AllExcludedAlwaysFires(t *testing.T) {
	s := automaton.New(2, 4, 10, automaton.CountingI32, false, 0)
	x := []byte{1, 0, 1, 0}
	assert.Equal(t, byte(1), ClauseOutputByte(s, x, 0))
}

func TestClauseOutputByte_PositiveLiteralMismatchKillsClause(t *testing.T) {
	s := allIncludeState(2, 4, true, false)
	x := []byte{0, 1, 1, 1} // feature 0 is 0 but positive literal 0 is included
	assert.Equal(t, byte(0), ClauseOutputByte(s, x, 0))
}

func TestClauseOutputByte_NegativeLiteralMismatchKillsClause(t *testing.T) {
	s := allIncludeState(2, 4, false, true)
	x := []byte{1, 1, 1, 1} // negative literals included, all features 1 -> mismatch
	assert.Equal(t, byte(0), ClauseOutputByte(s, x, 0))
}

func TestClauseOutputBytePruned_AgreesWithNonPruned(t *testing.T) {
	s := allIncludeState(2, 8, true, true)
	x := []byte{1, 1, 0, 1, 1, 1, 0, 1}
	assert.Equal(t, ClauseOutputByte(s, x, 0), ClauseOutputBytePruned(s, x, 0))
}

func TestClauseOutputBitwise_AgreesWithByte(t *testing.T) {
	s := allIncludeState(2, 70, true, true)
	xb := []byte{1, 0, 1, 1, 0, 0, 1, 0, 1, 1, 0, 1, 0, 0, 1, 1, 0, 1, 0, 1,
		1, 0, 1, 0, 1, 1, 0, 0, 1, 0, 1, 1, 0, 1, 0, 1, 1, 0, 1, 0,
		1, 1, 0, 1, 0, 1, 1, 0, 1, 0, 1, 1, 0, 1, 0, 1, 1, 0, 1, 0,
		1, 1, 0, 1, 0, 1, 1, 0, 1, 0}
	bv := container.NewBitVector(70)
	bv.SetFromBytes(xb)
	assert.Equal(t, ClauseOutputByte(s, xb, 0), ClauseOutputBitwise(s, bv, 0))
}

func TestClauseOutputByteTiled_AgreesAcrossAllowedTileSizes(t *testing.T) {
	s := allIncludeState(2, 70, true, true)
	x := []byte{1, 0, 1, 1, 0, 0, 1, 0, 1, 1, 0, 1, 0, 0, 1, 1, 0, 1, 0, 1,
		1, 0, 1, 0, 1, 1, 0, 0, 1, 0, 1, 1, 0, 1, 0, 1, 1, 0, 1, 0,
		1, 1, 0, 1, 0, 1, 1, 0, 1, 0, 1, 1, 0, 1, 0, 1, 1, 0, 1, 0,
		1, 1, 0, 1, 0, 1, 1, 0, 1, 0}
	want := ClauseOutputByte(s, x, 0)
	for _, ts := range []int{16, 32, 64, 128} {
		assert.Equal(t, want, ClauseOutputByteTiled(s, x, 0, ts), "tile size %d", ts)
		assert.Equal(t, want, ClauseOutputBytePrunedTiled(s, x, 0, ts), "pruned tile size %d", ts)
	}
}

func TestParallelClauseOutput_MatchesSerial(t *testing.T) {
	s := allIncludeState(40, 8, true, false)
	x := []byte{1, 1, 1, 1, 1, 1, 1, 1}
	numClauses := 20
	serial := make([]byte, numClauses)
	for c := 0; c < numClauses; c++ {
		serial[c] = ClauseOutputByte(s, x, c)
	}
	parallel := make([]byte, numClauses)
	ParallelClauseOutput(s, numClauses, -1, parallel, func(c int) byte {
		return ClauseOutputByte(s, x, c)
	})
	assert.Equal(t, serial, parallel)
}
