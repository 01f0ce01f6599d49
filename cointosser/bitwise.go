package cointosser

import (
	"math"

	"github.com/hyperifyio/tsetlin/rng"
)

const blockBits = 64

func ceilToMultiple(v, a int) int {
	return ((v + a - 1) / a) * a
}

// Bitwise is the legacy bit-packed coin-tosser: a single cache of length
// baseSize+extraSize, rounded up to a block multiple, that trades the
// exactness of Exact for a lower per-draw cost. Tosses returns a
// block-aligned window of baseSize bits picked at a random offset inside
// the larger cache, after applying a small mutate step (swapping two
// random bits) that is a variance-reduction trick: it changes nothing
// about correctness but does consume extra PRNG draws, so a reimplementer
// who omits it will diverge bit-for-bit from stored state snapshots that
// assume it runs.
type Bitwise struct {
	baseBlocks int // blocks in the window Tosses returns
	cache      []uint64
}

// NewBitwise constructs a Bitwise coin-tosser sized for baseSize live bits
// plus extraSize bits of slack for the sliding window.
func NewBitwise(baseSize, extraSize int) *Bitwise {
	base := ceilToMultiple(baseSize, blockBits)
	total := ceilToMultiple(baseSize+extraSize, blockBits)
	return &Bitwise{
		baseBlocks: base / blockBits,
		cache:      make([]uint64, total/blockBits),
	}
}

func (b *Bitwise) bitSize() int { return len(b.cache) * blockBits }

func (b *Bitwise) test(i int) bool { return b.cache[i/blockBits]&(1<<uint(i%blockBits)) != 0 }
func (b *Bitwise) set(i int)       { b.cache[i/blockBits] |= 1 << uint(i%blockBits) }
func (b *Bitwise) flip(i int)      { b.cache[i/blockBits] ^= 1 << uint(i%blockBits) }

// Populate resets the cache and sets round(size/s) random bits.
func (b *Bitwise) Populate(s float64, irng *rng.IRNG) {
	bitSz := b.bitSize()
	for i := range b.cache {
		b.cache[i] = 0
	}
	onesCount := int(math.Round(float64(bitSz) / s))
	set := 0
	for set < onesCount {
		ix := int(irng.Uint32()) % bitSz
		if !b.test(ix) {
			b.set(ix)
			set++
		}
	}
}

func (b *Bitwise) mutate(irng *rng.IRNG) {
	bitSz := b.bitSize()
	ix1 := int(irng.Uint32()) % bitSz
	ix2 := int(irng.Uint32()) % bitSz
	if b.test(ix1) != b.test(ix2) {
		b.flip(ix1)
		b.flip(ix2)
	}
}

// Tosses applies the mutate step and returns a block-aligned window of
// baseBlocks blocks at a random offset within the cache.
func (b *Bitwise) Tosses(irng *rng.IRNG) []uint64 {
	b.mutate(irng)
	nblx := len(b.cache)
	span := nblx - b.baseBlocks
	if span <= 0 {
		return b.cache[:b.baseBlocks]
	}
	beginBlk := int(irng.Uint32()) % span
	return b.cache[beginBlk : beginBlk+b.baseBlocks]
}
