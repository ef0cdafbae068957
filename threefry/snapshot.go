package threefry

import (
	"encoding/json"
	"fmt"

	"github.com/nozzle/bitgen"
)

// Snapshot is the tagged state record for ThreeFry32: counter, key, the
// four-word output buffer and the buffer position.
type Snapshot struct {
	Counter   []uint32
	Key       []uint32
	Buffer    []uint32
	BufferPos int
}

// BRNG returns the snapshot tag.
func (*Snapshot) BRNG() string { return Name }

type snapshotJSON struct {
	BRNG  string `json:"brng"`
	State struct {
		Counter []uint32 `json:"counter"`
		Key     []uint32 `json:"key"`
	} `json:"state"`
	Buffer    []uint32 `json:"buffer"`
	BufferPos int      `json:"buffer_pos"`
}

// MarshalJSON encodes the snapshot as a tagged record.
func (s *Snapshot) MarshalJSON() ([]byte, error) {
	var out snapshotJSON
	out.BRNG = Name
	out.State.Counter = s.Counter
	out.State.Key = s.Key
	out.Buffer = s.Buffer
	out.BufferPos = s.BufferPos
	return json.Marshal(out)
}

// UnmarshalJSON decodes a tagged record, rejecting mismatched tags.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var in snapshotJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("threefry: %w: %v", bitgen.ErrSnapshotFormat, err)
	}
	if in.BRNG != Name {
		return fmt.Errorf("threefry: got %q: %w", in.BRNG, bitgen.ErrTagMismatch)
	}
	s.Counter = in.State.Counter
	s.Key = in.State.Key
	s.Buffer = in.Buffer
	s.BufferPos = in.BufferPos
	return nil
}

// State returns a snapshot of the generator.
func (g *Generator) State() bitgen.Snapshot {
	snap := &Snapshot{
		Counter:   make([]uint32, words),
		Key:       make([]uint32, words),
		Buffer:    make([]uint32, words),
		BufferPos: g.pos,
	}
	copy(snap.Counter, g.ctr[:])
	copy(snap.Key, g.key[:])
	copy(snap.Buffer, g.buf[:])
	return snap
}

// SetState restores a snapshot. The generator is unchanged on any error.
func (g *Generator) SetState(s bitgen.Snapshot) error {
	if s == nil {
		return fmt.Errorf("threefry: nil snapshot: %w", bitgen.ErrSnapshotFormat)
	}
	snap, ok := s.(*Snapshot)
	if !ok {
		return fmt.Errorf("threefry: got %q: %w", s.BRNG(), bitgen.ErrTagMismatch)
	}
	if len(snap.Counter) != words || len(snap.Key) != words || len(snap.Buffer) != words {
		return fmt.Errorf("threefry: counter, key and buffer must hold %d words each: %w", words, bitgen.ErrOutOfRange)
	}
	if snap.BufferPos < 0 || snap.BufferPos > words {
		return fmt.Errorf("threefry: buffer_pos %d outside [0, %d]: %w", snap.BufferPos, words, bitgen.ErrOutOfRange)
	}
	copy(g.ctr[:], snap.Counter)
	copy(g.key[:], snap.Key)
	copy(g.buf[:], snap.Buffer)
	g.pos = snap.BufferPos
	return nil
}
