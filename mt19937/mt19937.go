// Package mt19937 implements the Mersenne Twister MT19937 bit generator
// with exact reproducibility against NumPy's RandomState: the scalar and
// array seeding procedures, the tempered 32-bit output stream, and the
// 64-bit and double pairings all match the reference bit for bit.
package mt19937

import (
	"fmt"
	"math"

	"github.com/nozzle/bitgen"
	"github.com/nozzle/bitgen/entropy"
)

// Name is the canonical algorithm name used as the snapshot tag.
const Name = "MT19937"

const (
	n         = 624
	m         = 397
	matrixA   = 0x9908b0df
	upperMask = 0x80000000
	lowerMask = 0x7fffffff

	temperingB = 0x9d2c5680
	temperingC = 0xefc60000

	initMult      = 1812433253
	initArraySeed = 19650218
	arrayMultA    = 1664525
	arrayMultB    = 1566083941
)

// Generator is an MT19937 state machine: 624 32-bit words plus a position
// index in [0, 624]. Position 624 means the block is exhausted and the
// next draw performs a full twist.
type Generator struct {
	key [n]uint32
	pos int
}

var _ bitgen.BitGenerator = (*Generator)(nil)
var _ bitgen.Jumper = (*Generator)(nil)

// New creates a generator seeded with the scalar seed. The seed must fit
// in 32 bits; larger values fail with bitgen.ErrOutOfRange.
func New(seed uint64) (*Generator, error) {
	g := &Generator{}
	if err := g.Seed(seed); err != nil {
		return nil, err
	}
	return g, nil
}

// NewFromArray creates a generator seeded with a word array using the
// reference init_by_array procedure. A one-element array is equivalent to
// the scalar seed.
func NewFromArray(key []uint32) (*Generator, error) {
	g := &Generator{}
	if err := g.SeedArray(key); err != nil {
		return nil, err
	}
	return g, nil
}

// NewRandom creates a generator seeded from OS entropy.
func NewRandom() (*Generator, error) {
	words, err := entropy.Words(n)
	if err != nil {
		return nil, err
	}
	g := &Generator{}
	if err := g.SeedArray(words); err != nil {
		return nil, err
	}
	return g, nil
}

// Name returns the canonical algorithm name.
func (g *Generator) Name() string { return Name }

// Seed initializes the state from a scalar using Knuth's LCG recurrence,
// matching numpy.random.RandomState(seed). Validation happens before any
// state mutation.
func (g *Generator) Seed(seed uint64) error {
	if seed > math.MaxUint32 {
		return fmt.Errorf("mt19937: seed must fit in 32 bits: %w", bitgen.ErrOutOfRange)
	}
	g.key[0] = uint32(seed)
	for i := 1; i < n; i++ {
		g.key[i] = initMult*(g.key[i-1]^(g.key[i-1]>>30)) + uint32(i)
	}
	g.pos = n
	return nil
}

// SeedArray initializes the state from a word array using the reference
// init_by_array procedure. A one-element array is routed through the
// scalar path, so SeedArray([s]) and Seed(s) produce identical state.
func (g *Generator) SeedArray(key []uint32) error {
	if len(key) == 0 {
		return fmt.Errorf("mt19937: seed array must not be empty: %w", bitgen.ErrOutOfRange)
	}
	if len(key) == 1 {
		return g.Seed(uint64(key[0]))
	}
	g.key[0] = initArraySeed
	for i := 1; i < n; i++ {
		g.key[i] = initMult*(g.key[i-1]^(g.key[i-1]>>30)) + uint32(i)
	}
	i, j := 1, 0
	for k := max(n, len(key)); k > 0; k-- {
		g.key[i] = (g.key[i] ^ ((g.key[i-1] ^ (g.key[i-1] >> 30)) * arrayMultA)) + key[j] + uint32(j)
		i++
		j++
		if i >= n {
			g.key[0] = g.key[n-1]
			i = 1
		}
		if j >= len(key) {
			j = 0
		}
	}
	for k := n - 1; k > 0; k-- {
		g.key[i] = (g.key[i] ^ ((g.key[i-1] ^ (g.key[i-1] >> 30)) * arrayMultB)) - uint32(i)
		i++
		if i >= n {
			g.key[0] = g.key[n-1]
			i = 1
		}
	}
	g.key[0] = 0x80000000
	g.pos = n
	return nil
}

// twist generates the next block of 624 words in place.
func (g *Generator) twist() {
	var y uint32
	var kk int
	for kk = 0; kk < n-m; kk++ {
		y = (g.key[kk] & upperMask) | (g.key[kk+1] & lowerMask)
		g.key[kk] = g.key[kk+m] ^ (y >> 1) ^ (-(y & 1) & matrixA)
	}
	for ; kk < n-1; kk++ {
		y = (g.key[kk] & upperMask) | (g.key[kk+1] & lowerMask)
		g.key[kk] = g.key[kk+(m-n)] ^ (y >> 1) ^ (-(y & 1) & matrixA)
	}
	y = (g.key[n-1] & upperMask) | (g.key[0] & lowerMask)
	g.key[n-1] = g.key[m-1] ^ (y >> 1) ^ (-(y & 1) & matrixA)
	g.pos = 0
}

// rawNext returns the next untempered state word.
func (g *Generator) rawNext() uint32 {
	if g.pos >= n {
		g.twist()
	}
	y := g.key[g.pos]
	g.pos++
	return y
}

// NextUint32 returns the next tempered 32-bit output.
func (g *Generator) NextUint32() uint32 {
	y := g.rawNext()
	y ^= y >> 11
	y ^= (y << 7) & temperingB
	y ^= (y << 15) & temperingC
	y ^= y >> 18
	return y
}

// NextUint64 concatenates two 32-bit draws, high word first.
func (g *Generator) NextUint64() uint64 {
	high := g.NextUint32()
	low := g.NextUint32()
	return uint64(high)<<32 | uint64(low)
}

// NextDouble returns a float64 in [0, 1) built from two 32-bit draws.
// This matches numpy's random_sample().
func (g *Generator) NextDouble() float64 {
	a := g.NextUint32()
	b := g.NextUint32()
	return bitgen.DoubleFromUint32Pair(a, b)
}

// NextRaw returns the native 32-bit output zero-extended.
func (g *Generator) NextRaw() uint64 {
	return uint64(g.NextUint32())
}

// Jump advances the state as-if 2^128 outputs were drawn, iter times,
// using polynomial multiplication over GF(2). Two generators seeded
// identically where one jumps k times and the other jumps once k times
// produce the same stream.
func (g *Generator) Jump(iter uint64) error {
	h := jumpPolynomial()
	for ; iter > 0; iter-- {
		g.applyJump(h)
	}
	return nil
}
