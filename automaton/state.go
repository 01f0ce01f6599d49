// Package automaton holds the Tsetlin automata state: the signed counter
// matrix M, its derived polarity bitmap P, and optional per-clause weights.
// Clause evaluation and vote aggregation read only Include, the polarity
// accessor. The concrete counter width is resolved once per TAState from
// CountingType; only TAState's own counter accessors and Increment/
// Decrement switch on it, so the kernels never see it.
package automaton

import (
	"sync"

	"github.com/hyperifyio/tsetlin/container"
	"github.com/hyperifyio/tsetlin/rng"
)

// CountingType selects the signed integer width backing the automata
// counter matrix M.
type CountingType int

const (
	CountingAuto CountingType = iota
	CountingI8
	CountingI16
	CountingI32
)

// Integer is the set of counter widths the update kernel can dispatch to.
type Integer interface{ ~int8 | ~int16 | ~int32 }

// ResolveCountingType picks the narrowest signed width whose range covers
// [-n, n-1], or returns ct unchanged if it is not CountingAuto.
func ResolveCountingType(ct CountingType, n int32) CountingType {
	if ct != CountingAuto {
		return ct
	}
	switch {
	case n <= 1<<7:
		return CountingI8
	case n <= 1<<15:
		return CountingI16
	default:
		return CountingI32
	}
}

// TAState is the per-clause-bank automata state: a 2*clauses x features
// counter matrix M (clamped to [-n, n-1]), its derived polarity bitmap P
// (P[r][c] == M[r][c] >= 0, kept in sync by Increment/Decrement), and an
// optional per-clause weight vector.
type TAState struct {
	mu sync.RWMutex

	kind CountingType
	n    int32
	rows int
	cols int

	m8  *container.NumericMatrix[int8]
	m16 *container.NumericMatrix[int16]
	m32 *container.NumericMatrix[int32]
	p   *container.BitMatrix

	weighted  bool
	maxWeight int32
	w         []int32 // stored with a -1 offset; see Weight
}

// New constructs a TAState for the given clause-row/feature-column shape
// and counter range n (counters range over [-n, n-1]). Every counter starts
// at -1 (exclude), matching the cleared polarity bitmap; Init draws the
// random training start state.
func New(rows, cols int, n int32, ct CountingType, weighted bool, maxWeight int32) *TAState {
	kind := ResolveCountingType(ct, n)
	s := &TAState{
		kind:      kind,
		n:         n,
		rows:      rows,
		cols:      cols,
		p:         container.NewBitMatrix(rows, cols),
		weighted:  weighted,
		maxWeight: maxWeight,
	}
	switch kind {
	case CountingI8:
		s.m8 = container.NewNumericMatrix[int8](rows, cols)
	case CountingI16:
		s.m16 = container.NewNumericMatrix[int16](rows, cols)
	default:
		s.m32 = container.NewNumericMatrix[int32](rows, cols)
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			s.setRaw(r, c, -1)
		}
	}
	if weighted {
		s.w = make([]int32, rows/2)
	}
	return s
}

// Kind returns the resolved counter width.
func (s *TAState) Kind() CountingType { return s.kind }

// Rows returns the counter matrix row count (2 * number of clauses).
func (s *TAState) Rows() int { return s.rows }

// Cols returns the counter matrix column count (number of features).
func (s *TAState) Cols() int { return s.cols }

func (s *TAState) getRaw(row, col int) int32 {
	switch s.kind {
	case CountingI8:
		return int32(s.m8.At(row, col))
	case CountingI16:
		return int32(s.m16.At(row, col))
	default:
		return s.m32.At(row, col)
	}
}

func (s *TAState) setRaw(row, col int, v int32) {
	switch s.kind {
	case CountingI8:
		s.m8.Set(row, col, int8(v))
	case CountingI16:
		s.m16.Set(row, col, int16(v))
	default:
		s.m32.Set(row, col, v)
	}
	if v >= 0 {
		s.p.Set(row, col)
	} else {
		s.p.Clear(row, col)
	}
}

// Counter returns the raw counter value at (row, col).
func (s *TAState) Counter(row, col int) int32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getRaw(row, col)
}

// Include reports whether the literal at (row, col) currently participates
// in the clause's conjunction (the automaton is in an "include" state).
func (s *TAState) Include(row, col int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.p.Test(row, col)
}

// PolarityRow returns the packed polarity blocks for row.
func (s *TAState) PolarityRow(row int) []uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.p.RowData(row)
}

// ClauseAllExcluded reports whether both literal rows (positive and
// negated) for clause c exclude every feature, the pruning fast-path
// precondition.
func (s *TAState) ClauseAllExcluded(c int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.p.RowAllZero(2*c) && s.p.RowAllZero(2*c+1)
}

// Init draws every counter from {-1, 0} uniformly, then syncs P.
func (s *TAState) Init(irng *rng.IRNG) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for r := 0; r < s.rows; r++ {
		for c := 0; c < s.cols; c++ {
			v := int32(-1)
			if irng.Next(0, 1) == 1 {
				v = 0
			}
			s.setRaw(r, c, v)
		}
	}
	for i := range s.w {
		s.w[i] = 0
	}
}

func clampDec[T Integer](v T, lo T) T {
	if v <= lo {
		return lo
	}
	return v - 1
}

func clampInc[T Integer](v T, hi T) T {
	if v >= hi {
		return hi
	}
	return v + 1
}

// Decrement moves the automaton at (row, col) one step toward exclude,
// clamped at -n.
func (s *TAState) Decrement(row, col int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.kind {
	case CountingI8:
		lo := int8(-s.n)
		v := clampDec(s.m8.At(row, col), lo)
		s.m8.Set(row, col, v)
		s.syncPolarity(row, col, int32(v))
	case CountingI16:
		lo := int16(-s.n)
		v := clampDec(s.m16.At(row, col), lo)
		s.m16.Set(row, col, v)
		s.syncPolarity(row, col, int32(v))
	default:
		lo := -s.n
		v := clampDec(s.m32.At(row, col), lo)
		s.m32.Set(row, col, v)
		s.syncPolarity(row, col, v)
	}
}

// Increment moves the automaton at (row, col) one step toward include,
// clamped at n-1.
func (s *TAState) Increment(row, col int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.kind {
	case CountingI8:
		hi := int8(s.n - 1)
		v := clampInc(s.m8.At(row, col), hi)
		s.m8.Set(row, col, v)
		s.syncPolarity(row, col, int32(v))
	case CountingI16:
		hi := int16(s.n - 1)
		v := clampInc(s.m16.At(row, col), hi)
		s.m16.Set(row, col, v)
		s.syncPolarity(row, col, int32(v))
	default:
		hi := s.n - 1
		v := clampInc(s.m32.At(row, col), hi)
		s.m32.Set(row, col, v)
		s.syncPolarity(row, col, v)
	}
}

func (s *TAState) syncPolarity(row, col int, v int32) {
	if v >= 0 {
		s.p.Set(row, col)
	} else {
		s.p.Clear(row, col)
	}
}

// Weight returns clause c's multiplicity. Unweighted banks always report 1;
// weighted banks store the weight minus one so the all-zero init state
// corresponds to a weight of 1.
func (s *TAState) Weight(c int) int32 {
	if !s.weighted {
		return 1
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.w[c] + 1
}

// IncrementWeight raises clause c's weight by one, clamped at maxWeight.
func (s *TAState) IncrementWeight(c int) {
	if !s.weighted {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.w[c]+1 < s.maxWeight {
		s.w[c]++
	} else {
		s.w[c] = s.maxWeight - 1
	}
}

// DecrementWeight lowers clause c's weight by one, floored at 1 (w == 0).
func (s *TAState) DecrementWeight(c int) {
	if !s.weighted {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.w[c] > 0 {
		s.w[c]--
	}
}

// Snapshot is the exportable, deep-copied state of a TAState.
type Snapshot struct {
	Kind      CountingType
	N         int32
	Rows      int
	Cols      int
	Weighted  bool
	MaxWeight int32
	Counters  []int32 // row-major, logical (unpadded)
	Polarity  []uint64
	Weights   []int32
}

// Snapshot deep-copies the current state for serialization.
func (s *TAState) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counters := make([]int32, s.rows*s.cols)
	for r := 0; r < s.rows; r++ {
		for c := 0; c < s.cols; c++ {
			counters[r*s.cols+c] = s.getRaw(r, c)
		}
	}
	var polarity []uint64
	for r := 0; r < s.rows; r++ {
		polarity = append(polarity, s.p.RowData(r)...)
	}
	weights := make([]int32, len(s.w))
	copy(weights, s.w)
	return Snapshot{
		Kind: s.kind, N: s.n, Rows: s.rows, Cols: s.cols,
		Weighted: s.weighted, MaxWeight: s.maxWeight,
		Counters: counters, Polarity: polarity, Weights: weights,
	}
}

// FromSnapshot rebuilds a TAState from a Snapshot.
func FromSnapshot(snap Snapshot) *TAState {
	s := New(snap.Rows, snap.Cols, snap.N, snap.Kind, snap.Weighted, snap.MaxWeight)
	for r := 0; r < s.rows; r++ {
		for c := 0; c < s.cols; c++ {
			s.setRaw(r, c, snap.Counters[r*s.cols+c])
		}
	}
	copy(s.w, snap.Weights)
	return s
}
