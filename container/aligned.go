// Package container provides the engine's aligned numeric and bit-packed
// containers: AlignedVec, NumericMatrix, BitVector, and BitMatrix. Rows and
// vectors are padded so their occupied length is a whole multiple of a
// target byte alignment, the same approximation the teacher's alignedAlloc
// makes (padding an element count, not asserting a hardware byte address):
// Go's allocator gives no portable way to demand a specific backing-array
// byte address without manual arena allocation and unsafe.Pointer
// arithmetic, which neither this engine nor its teacher attempts. What both
// provide instead is deterministic, zero-filled padding to the byte-count
// boundary the spec calls for, which is what lets two matrices compare
// equal by comparing shape and storage (including padding) byte for byte.
package container

import "unsafe"

// VecAlignBytes is the alignment granularity for AlignedVec.
const VecAlignBytes = 64

// MatrixRowAlignBytes is the alignment granularity for NumericMatrix rows.
const MatrixRowAlignBytes = 32

func paddedLen[T any](n, alignBytes int) int {
	var zero T
	elemSize := int(unsafe.Sizeof(zero))
	if elemSize == 0 {
		elemSize = 1
	}
	perBlock := alignBytes / elemSize
	if perBlock < 1 {
		perBlock = 1
	}
	if n%perBlock == 0 {
		return n
	}
	return (n/perBlock + 1) * perBlock
}

// AlignedVec is an ordered sequence of T padded to a multiple of
// VecAlignBytes bytes, for contiguous, tile-friendly iteration.
type AlignedVec[T any] struct {
	data []T
	n    int
}

// NewAlignedVec allocates an AlignedVec of logical length n.
func NewAlignedVec[T any](n int) *AlignedVec[T] {
	return &AlignedVec[T]{data: make([]T, paddedLen[T](n, VecAlignBytes)), n: n}
}

// Len returns the logical (unpadded) length.
func (v *AlignedVec[T]) Len() int { return v.n }

// At returns the element at logical index i.
func (v *AlignedVec[T]) At(i int) T { return v.data[i] }

// Set assigns the element at logical index i.
func (v *AlignedVec[T]) Set(i int, val T) { v.data[i] = val }

// Slice returns the logical (unpadded) view.
func (v *AlignedVec[T]) Slice() []T { return v.data[:v.n] }

// Raw returns the full padded backing slice.
func (v *AlignedVec[T]) Raw() []T { return v.data }

// NumericMatrix is a two-dimensional grid of T whose rows are padded so
// each row occupies a multiple of MatrixRowAlignBytes bytes; the row
// stride may exceed the logical column count.
type NumericMatrix[T comparable] struct {
	data   []T
	rows   int
	cols   int
	stride int
}

// NewNumericMatrix allocates a rows x cols matrix with zero-filled,
// deterministically padded rows.
func NewNumericMatrix[T comparable](rows, cols int) *NumericMatrix[T] {
	stride := paddedLen[T](cols, MatrixRowAlignBytes)
	return &NumericMatrix[T]{
		data:   make([]T, rows*stride),
		rows:   rows,
		cols:   cols,
		stride: stride,
	}
}

// Rows returns the row count.
func (m *NumericMatrix[T]) Rows() int { return m.rows }

// Cols returns the logical column count.
func (m *NumericMatrix[T]) Cols() int { return m.cols }

// Shape returns (rows, cols).
func (m *NumericMatrix[T]) Shape() (int, int) { return m.rows, m.cols }

// Stride returns the row stride in elements, including padding.
func (m *NumericMatrix[T]) Stride() int { return m.stride }

// RowData returns the logical (unpadded) view of row r.
func (m *NumericMatrix[T]) RowData(r int) []T {
	base := r * m.stride
	return m.data[base : base+m.cols]
}

// At returns the element at (r, c).
func (m *NumericMatrix[T]) At(r, c int) T { return m.data[r*m.stride+c] }

// Set assigns the element at (r, c).
func (m *NumericMatrix[T]) Set(r, c int, v T) { m.data[r*m.stride+c] = v }

// Equal reports whether m and other have identical shape and storage,
// including row padding.
func (m *NumericMatrix[T]) Equal(other *NumericMatrix[T]) bool {
	if m.rows != other.rows || m.cols != other.cols || m.stride != other.stride {
		return false
	}
	for i := range m.data {
		if m.data[i] != other.data[i] {
			return false
		}
	}
	return true
}
