package mt19937

import (
	"encoding/json"
	"fmt"

	"github.com/nozzle/bitgen"
)

// Snapshot is the tagged state record for MT19937: the 624-word key and
// the position index.
type Snapshot struct {
	Key []uint32
	Pos int
}

// BRNG returns the snapshot tag.
func (*Snapshot) BRNG() string { return Name }

type snapshotJSON struct {
	BRNG  string `json:"brng"`
	State struct {
		Key []uint32 `json:"key"`
		Pos int      `json:"pos"`
	} `json:"state"`
}

// MarshalJSON encodes the snapshot as a tagged record.
func (s *Snapshot) MarshalJSON() ([]byte, error) {
	var out snapshotJSON
	out.BRNG = Name
	out.State.Key = s.Key
	out.State.Pos = s.Pos
	return json.Marshal(out)
}

// UnmarshalJSON decodes a tagged record, rejecting mismatched tags.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var in snapshotJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("mt19937: %w: %v", bitgen.ErrSnapshotFormat, err)
	}
	if in.BRNG != Name {
		return fmt.Errorf("mt19937: got %q: %w", in.BRNG, bitgen.ErrTagMismatch)
	}
	s.Key = in.State.Key
	s.Pos = in.State.Pos
	return nil
}

// State returns a snapshot of the generator.
func (g *Generator) State() bitgen.Snapshot {
	key := make([]uint32, n)
	copy(key, g.key[:])
	return &Snapshot{Key: key, Pos: g.pos}
}

// SetState restores a snapshot. The generator is unchanged on any error.
func (g *Generator) SetState(s bitgen.Snapshot) error {
	if s == nil {
		return fmt.Errorf("mt19937: nil snapshot: %w", bitgen.ErrSnapshotFormat)
	}
	snap, ok := s.(*Snapshot)
	if !ok {
		return fmt.Errorf("mt19937: got %q: %w", s.BRNG(), bitgen.ErrTagMismatch)
	}
	if len(snap.Key) != n {
		return fmt.Errorf("mt19937: key must hold %d words: %w", n, bitgen.ErrOutOfRange)
	}
	if snap.Pos < 0 || snap.Pos > n {
		return fmt.Errorf("mt19937: pos %d outside [0, %d]: %w", snap.Pos, n, bitgen.ErrOutOfRange)
	}
	copy(g.key[:], snap.Key)
	g.pos = snap.Pos
	return nil
}
