// Package xoshiro256 implements the xoshiro256** bit generator, based on
// the public domain C implementation by Blackman and Vigna
// (https://xoshiro.di.unimi.it/xoshiro256starstar.c), with the seeding,
// width-adapter and snapshot behavior of the NumPy reference.
package xoshiro256

import (
	"math/bits"

	"github.com/nozzle/bitgen"
	"github.com/nozzle/bitgen/entropy"
	"github.com/nozzle/bitgen/internal/seed"
)

// Name is the canonical algorithm name used as the snapshot tag.
const Name = "Xoshiro256StarStar"

// jumpPoly is the published polynomial advancing the state by 2^128
// steps.
var jumpPoly = [4]uint64{
	0x180ec6d33cfd0aba, 0xd5a61266f0c9392c,
	0xa9582618e03fc9aa, 0x39abdc4529b1661c,
}

// Generator is a xoshiro256** state machine: four 64-bit words plus the
// half-word cache serving 32-bit demand from the 64-bit stream. The state
// must not be everywhere zero; seeding through SplitMix64 guarantees it
// is not.
type Generator struct {
	s   [4]uint64
	u32 bitgen.Uint32Buffer
}

var _ bitgen.BitGenerator = (*Generator)(nil)
var _ bitgen.Jumper = (*Generator)(nil)

// New creates a generator seeded with the scalar seed.
func New(s uint64) *Generator {
	g := &Generator{}
	g.Seed(s)
	return g
}

// NewFromArray creates a generator seeded with a word array. A
// one-element array is equivalent to the scalar seed.
func NewFromArray(seedArr []uint64) *Generator {
	g := &Generator{}
	g.SeedArray(seedArr)
	return g
}

// NewRandom creates a generator seeded from OS entropy.
func NewRandom() (*Generator, error) {
	s, err := entropy.Seed64()
	if err != nil {
		return nil, err
	}
	return New(s), nil
}

// Name returns the canonical algorithm name.
func (g *Generator) Name() string { return Name }

// Seed expands the scalar through SplitMix64 into the four state words
// and drops any cached half word.
func (g *Generator) Seed(s uint64) {
	copy(g.s[:], seed.Scalar(s, 4))
	g.u32.Invalidate()
}

// SeedArray expands a seed array into the four state words. SeedArray([s])
// and Seed(s) produce identical state.
func (g *Generator) SeedArray(seedArr []uint64) {
	copy(g.s[:], seed.ByArray(seedArr, 4))
	g.u32.Invalidate()
}

// NextUint64 returns the next 64-bit output.
func (g *Generator) NextUint64() uint64 {
	result := bits.RotateLeft64(g.s[1]*5, 7) * 9

	t := g.s[1] << 17
	g.s[2] ^= g.s[0]
	g.s[3] ^= g.s[1]
	g.s[1] ^= g.s[2]
	g.s[0] ^= g.s[3]
	g.s[2] ^= t
	g.s[3] = bits.RotateLeft64(g.s[3], 45)

	return result
}

// NextUint32 splits one 64-bit output over two calls: the low half is
// returned first and the high half cached.
func (g *Generator) NextUint32() uint32 {
	return g.u32.Next(g.NextUint64)
}

// NextDouble returns a float64 in [0, 1) from one 64-bit draw.
func (g *Generator) NextDouble() float64 {
	return bitgen.DoubleFromUint64(g.NextUint64())
}

// NextRaw returns the native 64-bit output.
func (g *Generator) NextRaw() uint64 {
	return g.NextUint64()
}

// Jump advances the state as-if 2^128 outputs were drawn, iter times,
// using the published jump polynomial, and drops any cached half word.
func (g *Generator) Jump(iter uint64) error {
	for ; iter > 0; iter-- {
		var s0, s1, s2, s3 uint64
		for _, jp := range jumpPoly {
			for b := 0; b < 64; b++ {
				if jp&(1<<uint(b)) != 0 {
					s0 ^= g.s[0]
					s1 ^= g.s[1]
					s2 ^= g.s[2]
					s3 ^= g.s[3]
				}
				g.NextUint64()
			}
		}
		g.s = [4]uint64{s0, s1, s2, s3}
	}
	g.u32.Invalidate()
	return nil
}
