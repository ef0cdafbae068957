// Package seed provides the deterministic seed plumbing shared by the
// bit generators: the SplitMix64 mixer used to expand user seeds into
// full generator state, and the canonical conversions between integers
// and fixed-width little-endian word arrays used for seeds, counters and
// keys.
package seed

import (
	"fmt"
	"math/big"

	"github.com/nozzle/bitgen"
)

// splitMixIncrement is the SplitMix64 golden-gamma state increment.
const splitMixIncrement = 0x9E3779B97F4A7C15

// SplitMix64 advances state by the golden gamma and returns the mixed
// output. This is the standard SplitMix64 step.
func SplitMix64(state *uint64) uint64 {
	*state += splitMixIncrement
	z := *state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// ByArray expands a seed array into nWords 64-bit state words. A single
// SplitMix64 stream starts from zero and advances once per slot; each
// seed word is XOR-folded into the stream state before its slot's
// advance, so every later slot depends on every earlier seed word. Seed
// arrays longer than nWords fold their tail back into the front slots.
// Seeding with a scalar is defined as seeding with the one-element array,
// so a scalar and its one-element array always produce identical state.
func ByArray(seedArr []uint64, nWords int) []uint64 {
	out := make([]uint64, nWords)
	var state uint64
	bound := max(len(seedArr), nWords)
	for i := 0; i < bound; i++ {
		if i < len(seedArr) {
			state ^= seedArr[i]
		}
		out[i%nWords] ^= SplitMix64(&state)
	}
	return out
}

// Scalar expands a single 64-bit seed into nWords state words. It is
// exactly ByArray with a one-element array.
func Scalar(s uint64, nWords int) []uint64 {
	return ByArray([]uint64{s}, nWords)
}

// IntToWords serializes a non-negative integer into totalBits/32
// little-endian 32-bit words: word[i] = (v >> (32*i)) & 0xFFFFFFFF. It is
// the single source of truth for int <-> word-array conversions. The name
// identifies the value in errors. Negative values and values wider than
// totalBits fail with bitgen.ErrOutOfRange.
func IntToWords(v *big.Int, name string, totalBits uint) ([]uint32, error) {
	if v.Sign() < 0 {
		return nil, fmt.Errorf("%s must be non-negative: %w", name, bitgen.ErrOutOfRange)
	}
	if uint(v.BitLen()) > totalBits {
		return nil, fmt.Errorf("%s must fit in %d bits: %w", name, totalBits, bitgen.ErrOutOfRange)
	}
	words := make([]uint32, totalBits/32)
	rest := new(big.Int).Set(v)
	mask := big.NewInt(0xFFFFFFFF)
	tmp := new(big.Int)
	for i := range words {
		words[i] = uint32(tmp.And(rest, mask).Uint64())
		rest.Rsh(rest, 32)
	}
	return words, nil
}

// WordsToInt inverts IntToWords, rebuilding the integer from its
// little-endian 32-bit words.
func WordsToInt(words []uint32) *big.Int {
	v := new(big.Int)
	tmp := new(big.Int)
	for i := len(words) - 1; i >= 0; i-- {
		v.Lsh(v, 32)
		v.Or(v, tmp.SetUint64(uint64(words[i])))
	}
	return v
}

// Uint64sToUint32s splits 64-bit words into little-endian 32-bit words,
// low half first, per the wire contract.
func Uint64sToUint32s(words []uint64) []uint32 {
	out := make([]uint32, 0, 2*len(words))
	for _, w := range words {
		out = append(out, uint32(w), uint32(w>>32))
	}
	return out
}
