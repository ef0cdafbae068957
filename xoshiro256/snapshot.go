package xoshiro256

import (
	"encoding/json"
	"fmt"

	"github.com/nozzle/bitgen"
)

// Snapshot is the tagged state record for Xoshiro256StarStar: the four
// state words and the half-word cache.
type Snapshot struct {
	S         []uint64
	HasUint32 bool
	Uinteger  uint32
}

// BRNG returns the snapshot tag.
func (*Snapshot) BRNG() string { return Name }

type snapshotJSON struct {
	BRNG  string `json:"brng"`
	State struct {
		S []uint64 `json:"s"`
	} `json:"state"`
	HasUint32 int    `json:"has_uint32"`
	Uinteger  uint32 `json:"uinteger"`
}

// MarshalJSON encodes the snapshot as a tagged record.
func (s *Snapshot) MarshalJSON() ([]byte, error) {
	var out snapshotJSON
	out.BRNG = Name
	out.State.S = s.S
	if s.HasUint32 {
		out.HasUint32 = 1
	}
	out.Uinteger = s.Uinteger
	return json.Marshal(out)
}

// UnmarshalJSON decodes a tagged record, rejecting mismatched tags and
// out-of-range flags.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var in snapshotJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("xoshiro256: %w: %v", bitgen.ErrSnapshotFormat, err)
	}
	if in.BRNG != Name {
		return fmt.Errorf("xoshiro256: got %q: %w", in.BRNG, bitgen.ErrTagMismatch)
	}
	if in.HasUint32 != 0 && in.HasUint32 != 1 {
		return fmt.Errorf("xoshiro256: has_uint32 must be 0 or 1: %w", bitgen.ErrOutOfRange)
	}
	s.S = in.State.S
	s.HasUint32 = in.HasUint32 == 1
	s.Uinteger = in.Uinteger
	return nil
}

// State returns a snapshot of the generator.
func (g *Generator) State() bitgen.Snapshot {
	s := make([]uint64, 4)
	copy(s, g.s[:])
	has, word := g.u32.Cached()
	return &Snapshot{S: s, HasUint32: has, Uinteger: word}
}

// SetState restores a snapshot. The generator is unchanged on any error.
func (g *Generator) SetState(s bitgen.Snapshot) error {
	if s == nil {
		return fmt.Errorf("xoshiro256: nil snapshot: %w", bitgen.ErrSnapshotFormat)
	}
	snap, ok := s.(*Snapshot)
	if !ok {
		return fmt.Errorf("xoshiro256: got %q: %w", s.BRNG(), bitgen.ErrTagMismatch)
	}
	if len(snap.S) != 4 {
		return fmt.Errorf("xoshiro256: s must hold 4 words: %w", bitgen.ErrOutOfRange)
	}
	copy(g.s[:], snap.S)
	g.u32.Restore(snap.HasUint32, snap.Uinteger)
	return nil
}
