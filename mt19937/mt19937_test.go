package mt19937_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nozzle/bitgen"
	"github.com/nozzle/bitgen/mt19937"
)

func TestSeedZeroReference(t *testing.T) {
	g, err := mt19937.New(0)
	require.NoError(t, err)

	// First outputs of the reference MT19937 seeded with 0.
	expected := []uint32{2357136044, 2546248239, 3071714933}
	for i, exp := range expected {
		require.Equal(t, exp, g.NextUint32(), "output %d", i)
	}
}

func TestDoubleVsNumpy(t *testing.T) {
	g, err := mt19937.New(0)
	require.NoError(t, err)

	// numpy.random.seed(0); numpy.random.random_sample(4)
	expected := []float64{
		0.5488135039273248,
		0.7151893663724195,
		0.6027633760716439,
		0.5448831829968969,
	}
	for i, exp := range expected {
		require.Equal(t, exp, g.NextDouble(), "double %d", i)
	}
}

func TestUniformVsNumpy(t *testing.T) {
	g, err := mt19937.New(42)
	require.NoError(t, err)

	// Expected values from Python: numpy.random.RandomState(42).uniform(-10, 10, 10)
	expected := []float64{
		-2.509197623052750,
		9.014286128198323,
		4.639878836228101,
		1.973169683940732,
		-6.879627191151270,
		-6.880109593275947,
		-8.838327756636010,
		7.323522915498703,
		2.022300234864176,
		4.161451555920910,
	}
	for i, exp := range expected {
		got := -10.0 + 20.0*g.NextDouble()
		require.InDelta(t, exp, got, 1e-12, "uniform %d", i)
	}
}

func TestRandIntStateVsNumpy(t *testing.T) {
	// After 30 uniform draws, the next raw words match what Python
	// generates for randint(INT32_MIN, INT32_MAX+1, 3).
	g, err := mt19937.New(42)
	require.NoError(t, err)
	for i := 0; i < 30; i++ {
		_ = g.NextDouble()
	}
	expected := []int32{461901618, 774414982, -1415088108}
	for i, exp := range expected {
		got := int32(g.NextUint32() - 0x80000000)
		require.Equal(t, exp, got, "randint %d", i)
	}
}

func TestInitByArrayReference(t *testing.T) {
	// The classic init_by_array test vector from the reference
	// implementation: key {0x123, 0x234, 0x345, 0x456}.
	g, err := mt19937.NewFromArray([]uint32{0x123, 0x234, 0x345, 0x456})
	require.NoError(t, err)

	expected := []uint32{1067595299, 955945823, 477289528, 4107218783, 4228976476}
	for i, exp := range expected {
		require.Equal(t, exp, g.NextUint32(), "output %d", i)
	}
}

func TestScalarSingleElementEquivalence(t *testing.T) {
	for _, s := range []uint32{0, 1, 42, 0xFFFFFFFF} {
		a, err := mt19937.New(uint64(s))
		require.NoError(t, err)
		b, err := mt19937.NewFromArray([]uint32{s})
		require.NoError(t, err)
		for i := 0; i < 16; i++ {
			require.Equal(t, a.NextUint32(), b.NextUint32(), "seed %d output %d", s, i)
		}
	}
}

func TestSeedRange(t *testing.T) {
	_, err := mt19937.New(1 << 32)
	require.ErrorIs(t, err, bitgen.ErrOutOfRange)

	// Failed reseeding leaves the stream untouched.
	g, err := mt19937.New(7)
	require.NoError(t, err)
	want := snapshotWords(t, g)
	require.ErrorIs(t, g.Seed(1<<32), bitgen.ErrOutOfRange)
	require.Equal(t, want, snapshotWords(t, g))

	_, err = mt19937.NewFromArray(nil)
	require.ErrorIs(t, err, bitgen.ErrOutOfRange)
}

func snapshotWords(t *testing.T, g *mt19937.Generator) []uint32 {
	t.Helper()
	snap, ok := g.State().(*mt19937.Snapshot)
	require.True(t, ok)
	return snap.Key
}

func TestUint64HighThenLow(t *testing.T) {
	a, err := mt19937.New(12345)
	require.NoError(t, err)
	b, err := mt19937.New(12345)
	require.NoError(t, err)
	for i := 0; i < 8; i++ {
		high := b.NextUint32()
		low := b.NextUint32()
		require.Equal(t, uint64(high)<<32|uint64(low), a.NextUint64(), "pair %d", i)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	g, err := mt19937.New(2021)
	require.NoError(t, err)
	for i := 0; i < 100; i++ {
		g.NextUint32()
	}

	restored := &mt19937.Generator{}
	require.NoError(t, restored.SetState(g.State()))
	for i := 0; i < 1000; i++ {
		require.Equal(t, g.NextUint32(), restored.NextUint32(), "output %d", i)
	}
}

func TestSnapshotJSON(t *testing.T) {
	g, err := mt19937.New(5)
	require.NoError(t, err)
	g.NextUint32()

	data, err := json.Marshal(g.State())
	require.NoError(t, err)

	var snap mt19937.Snapshot
	require.NoError(t, json.Unmarshal(data, &snap))
	restored := &mt19937.Generator{}
	require.NoError(t, restored.SetState(&snap))
	for i := 0; i < 64; i++ {
		require.Equal(t, g.NextUint32(), restored.NextUint32(), "output %d", i)
	}
}

func TestSnapshotValidation(t *testing.T) {
	g, err := mt19937.New(1)
	require.NoError(t, err)

	require.ErrorIs(t, g.SetState(nil), bitgen.ErrSnapshotFormat)
	require.ErrorIs(t, g.SetState(&mt19937.Snapshot{Key: make([]uint32, 10), Pos: 0}), bitgen.ErrOutOfRange)
	require.ErrorIs(t, g.SetState(&mt19937.Snapshot{Key: make([]uint32, 624), Pos: 625}), bitgen.ErrOutOfRange)

	var snap mt19937.Snapshot
	err = json.Unmarshal([]byte(`{"brng":"Xoshiro256StarStar","state":{}}`), &snap)
	require.ErrorIs(t, err, bitgen.ErrTagMismatch)
	err = json.Unmarshal([]byte(`"not a record"`), &snap)
	require.ErrorIs(t, err, bitgen.ErrSnapshotFormat)
}

func TestJumpDeterministic(t *testing.T) {
	if testing.Short() {
		t.Skip("jump polynomial setup is expensive")
	}
	a, err := mt19937.New(9001)
	require.NoError(t, err)
	b, err := mt19937.New(9001)
	require.NoError(t, err)

	require.NoError(t, a.Jump(1))
	require.NoError(t, b.Jump(1))
	for i := 0; i < 1000; i++ {
		require.Equal(t, a.NextUint32(), b.NextUint32(), "output %d", i)
	}
}

func TestJumpAlgebra(t *testing.T) {
	if testing.Short() {
		t.Skip("jump polynomial setup is expensive")
	}
	a, err := mt19937.New(77)
	require.NoError(t, err)
	b, err := mt19937.New(77)
	require.NoError(t, err)

	require.NoError(t, a.Jump(3))
	for i := 0; i < 3; i++ {
		require.NoError(t, b.Jump(1))
	}
	for i := 0; i < 1000; i++ {
		require.Equal(t, a.NextUint32(), b.NextUint32(), "output %d", i)
	}
}

func TestJumpMovesStream(t *testing.T) {
	if testing.Short() {
		t.Skip("jump polynomial setup is expensive")
	}
	a, err := mt19937.New(3)
	require.NoError(t, err)
	b, err := mt19937.New(3)
	require.NoError(t, err)
	require.NoError(t, b.Jump(1))

	same := 0
	for i := 0; i < 64; i++ {
		if a.NextUint32() == b.NextUint32() {
			same++
		}
	}
	require.Less(t, same, 8, "jumped stream should diverge from the original")
}

func TestJumpMidBlock(t *testing.T) {
	if testing.Short() {
		t.Skip("jump polynomial setup is expensive")
	}
	// Jumping with a partially consumed block continues the logical
	// stream: drawing k words then jumping equals jumping a generator
	// whose snapshot was taken after those k draws.
	a, err := mt19937.New(11)
	require.NoError(t, err)
	for i := 0; i < 17; i++ {
		a.NextUint32()
	}
	b := &mt19937.Generator{}
	require.NoError(t, b.SetState(a.State()))

	require.NoError(t, a.Jump(1))
	require.NoError(t, b.Jump(1))
	for i := 0; i < 1000; i++ {
		require.Equal(t, a.NextUint32(), b.NextUint32(), "output %d", i)
	}
}

func TestNewRandom(t *testing.T) {
	a, err := mt19937.NewRandom()
	require.NoError(t, err)
	b, err := mt19937.NewRandom()
	require.NoError(t, err)
	require.NotEqual(t, a.NextUint32(), b.NextUint32())
}
