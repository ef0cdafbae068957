// Package threefry implements the ThreeFry-4x32 counter-based bit
// generator: a 20-round Threefry block cipher of a 128-bit key over a
// 128-bit counter. Every cipher evaluation yields four 32-bit outputs,
// and the counter arithmetic gives O(1) advance for parallel stream
// partitioning.
package threefry

import (
	"fmt"
	"math/big"
	"math/bits"

	"github.com/nozzle/bitgen"
	"github.com/nozzle/bitgen/entropy"
	"github.com/nozzle/bitgen/internal/seed"
)

// Name is the canonical algorithm name used as the snapshot tag.
const Name = "ThreeFry32"

const (
	rounds = 20
	words  = 4

	// Skein key-schedule parity constant for 32-bit words.
	keyParity = 0x1BD11BDA
)

// Threefry-4x32 rotation constants, per the Random123 reference.
var rotations = [8][2]int{
	{10, 26}, {11, 21}, {13, 27}, {23, 5},
	{6, 20}, {17, 11}, {25, 10}, {18, 20},
}

// Generator is a ThreeFry-4x32 state machine: a 128-bit counter and key
// (four little-endian 32-bit words each), the four-word output buffer of
// the current block, and the buffer position in [0, 4]. Position 4 means
// the buffer is empty and the next draw evaluates a new block.
type Generator struct {
	ctr [words]uint32
	key [words]uint32
	buf [words]uint32
	pos int
}

var _ bitgen.BitGenerator = (*Generator)(nil)
var _ bitgen.Jumper = (*Generator)(nil)
var _ bitgen.Advancer = (*Generator)(nil)

type config struct {
	seed    *uint64
	key     []uint32
	counter []uint32
	err     error
}

// Option configures New.
type Option func(*config)

// WithSeed seeds the key through SplitMix64 expansion. Conflicts with
// WithKey.
func WithSeed(s uint64) Option {
	return func(c *config) { c.seed = &s }
}

// WithKey supplies the 128-bit key directly as four little-endian 32-bit
// words. Conflicts with WithSeed.
func WithKey(key []uint32) Option {
	return func(c *config) { c.key = key }
}

// WithCounter sets the initial 128-bit counter as four little-endian
// 32-bit words. The counter defaults to zero.
func WithCounter(counter []uint32) Option {
	return func(c *config) { c.counter = counter }
}

// WithCounterValue sets the initial counter from a non-negative integer
// below 2^128, through the canonical int-to-words conversion.
func WithCounterValue(v *big.Int) Option {
	return func(c *config) {
		words, err := seed.IntToWords(v, "counter", 128)
		if err != nil {
			c.err = err
			return
		}
		c.counter = words
	}
}

// New creates a generator. With no options the key is seeded from OS
// entropy and the counter starts at zero. All validation happens before
// any state is built: a seed combined with an explicit key fails with
// bitgen.ErrConflictingInputs, and mis-sized keys or counters fail with
// bitgen.ErrOutOfRange.
func New(opts ...Option) (*Generator, error) {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	if c.err != nil {
		return nil, c.err
	}
	if c.seed != nil && c.key != nil {
		return nil, fmt.Errorf("threefry: seed and key are mutually exclusive: %w", bitgen.ErrConflictingInputs)
	}
	if c.key != nil && len(c.key) != words {
		return nil, fmt.Errorf("threefry: key must hold %d words: %w", words, bitgen.ErrOutOfRange)
	}
	if c.counter != nil && len(c.counter) != words {
		return nil, fmt.Errorf("threefry: counter must hold %d words: %w", words, bitgen.ErrOutOfRange)
	}

	g := &Generator{pos: words}
	switch {
	case c.key != nil:
		copy(g.key[:], c.key)
	case c.seed != nil:
		g.seedKey(*c.seed)
	default:
		s, err := entropy.Seed64()
		if err != nil {
			return nil, err
		}
		g.seedKey(s)
	}
	if c.counter != nil {
		copy(g.ctr[:], c.counter)
	}
	return g, nil
}

// Name returns the canonical algorithm name.
func (g *Generator) Name() string { return Name }

// seedKey derives the four key words from a 64-bit seed through the
// SplitMix64 seed-by-array expansion.
func (g *Generator) seedKey(s uint64) {
	expanded := seed.Uint64sToUint32s(seed.Scalar(s, 2))
	copy(g.key[:], expanded)
}

// Seed re-seeds the key from the scalar, resets the counter to zero and
// drops any buffered output.
func (g *Generator) Seed(s uint64) {
	g.seedKey(s)
	g.ctr = [words]uint32{}
	g.pos = words
}

// block evaluates the 20-round Threefry-4x32 cipher of key over ctr.
func block(key, ctr *[words]uint32) [words]uint32 {
	ks := [5]uint32{
		key[0], key[1], key[2], key[3],
		keyParity ^ key[0] ^ key[1] ^ key[2] ^ key[3],
	}
	x := [words]uint32{
		ctr[0] + ks[0], ctr[1] + ks[1], ctr[2] + ks[2], ctr[3] + ks[3],
	}
	for r := 0; r < rounds; r++ {
		rot := rotations[r%8]
		if r&1 == 0 {
			x[0] += x[1]
			x[1] = bits.RotateLeft32(x[1], rot[0])
			x[1] ^= x[0]
			x[2] += x[3]
			x[3] = bits.RotateLeft32(x[3], rot[1])
			x[3] ^= x[2]
		} else {
			x[0] += x[3]
			x[3] = bits.RotateLeft32(x[3], rot[0])
			x[3] ^= x[0]
			x[2] += x[1]
			x[1] = bits.RotateLeft32(x[1], rot[1])
			x[1] ^= x[2]
		}
		if (r+1)%4 == 0 {
			inject := uint32(r+1) / 4
			for i := range x {
				x[i] += ks[(int(inject)+i)%5]
			}
			x[3] += inject
		}
	}
	return x
}

// NextUint32 returns the next buffered word, evaluating a new block when
// the buffer is empty. buffer[0] is consumed first; the counter advances
// by one per block, word 0 first with carry.
func (g *Generator) NextUint32() uint32 {
	if g.pos < words {
		out := g.buf[g.pos]
		g.pos++
		return out
	}
	g.buf = block(&g.key, &g.ctr)
	g.incrementCounter()
	g.pos = 1
	return g.buf[0]
}

// NextUint64 concatenates two 32-bit draws, high word first.
func (g *Generator) NextUint64() uint64 {
	high := g.NextUint32()
	low := g.NextUint32()
	return uint64(high)<<32 | uint64(low)
}

// NextDouble returns a float64 in [0, 1) built from two 32-bit draws.
func (g *Generator) NextDouble() float64 {
	a := g.NextUint32()
	b := g.NextUint32()
	return bitgen.DoubleFromUint32Pair(a, b)
}

// NextRaw returns the native 32-bit output zero-extended.
func (g *Generator) NextRaw() uint64 {
	return uint64(g.NextUint32())
}

func (g *Generator) incrementCounter() {
	for i := range g.ctr {
		g.ctr[i]++
		if g.ctr[i] != 0 {
			return
		}
	}
}

// addToCounter adds four little-endian words to the counter mod 2^128.
func (g *Generator) addToCounter(delta []uint32) {
	var carry uint64
	for i := range g.ctr {
		sum := uint64(g.ctr[i]) + uint64(delta[i]) + carry
		g.ctr[i] = uint32(sum)
		carry = sum >> 32
	}
}

// Advance adds delta to the counter as a 128-bit little-endian value,
// wrapping mod 2^128, and invalidates the buffer. delta must be a
// non-negative integer below 2^128; on error the state is unchanged.
// Consecutive advances compose additively: advance(a) then advance(b) is
// advance(a+b) with respect to outputs after the next refill.
func (g *Generator) Advance(delta *big.Int) error {
	deltaWords, err := seed.IntToWords(delta, "delta", 128)
	if err != nil {
		return err
	}
	g.addToCounter(deltaWords)
	g.pos = words
	return nil
}

// Jump advances the counter by iter * 2^64 and invalidates the buffer.
// Strides of 2^64 blocks or more per application cannot be expressed
// through iter; compose Advance with an explicit 128-bit delta instead.
func (g *Generator) Jump(iter uint64) error {
	g.addToCounter([]uint32{0, 0, uint32(iter), uint32(iter >> 32)})
	g.pos = words
	return nil
}
