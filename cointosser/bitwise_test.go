package cointosser

import (
	"testing"

	"github.com/hyperifyio/tsetlin/rng"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countBits(blocks []uint64) int {
	n := 0
	for _, b := range blocks {
		for b != 0 {
			n += int(b & 1)
			b >>= 1
		}
	}
	return n
}

func TestBitwise_PopulateApproximatesRatio(t *testing.T) {
	irng := rng.NewIRNG(1)
	b := NewBitwise(1024, 64)
	b.Populate(4.0, irng)
	got := countBits(b.cache)
	want := float64(b.bitSize()) / 4.0
	assert.InDelta(t, want, float64(got), want*0.1+2)
}

func TestBitwise_TossesReturnsBaseBlocksWindow(t *testing.T) {
	irng := rng.NewIRNG(5)
	b := NewBitwise(128, 64)
	b.Populate(2.0, irng)
	out := b.Tosses(irng)
	require.Len(t, out, b.baseBlocks)
}

func TestBitwise_TossesWindowStaysWithinCache(t *testing.T) {
	irng := rng.NewIRNG(9)
	b := NewBitwise(64, 128)
	b.Populate(3.0, irng)
	for i := 0; i < 50; i++ {
		out := b.Tosses(irng)
		require.Len(t, out, b.baseBlocks)
	}
}

func TestBitwise_MutatePreservesPopulationCount(t *testing.T) {
	irng := rng.NewIRNG(11)
	b := NewBitwise(256, 0)
	b.Populate(2.0, irng)
	before := countBits(b.cache)
	b.mutate(irng)
	after := countBits(b.cache)
	assert.Equal(t, before, after)
}

func TestCeilToMultiple(t *testing.T) {
	assert.Equal(t, 64, ceilToMultiple(1, 64))
	assert.Equal(t, 64, ceilToMultiple(64, 64))
	assert.Equal(t, 128, ceilToMultiple(65, 64))
}
