package bitgen

import "errors"

// Error kinds for seed, state and snapshot validation. Validation runs
// before any state mutation: on failure the generator is unchanged.
var (
	// ErrOutOfRange reports a seed, counter, key or snapshot field that
	// exceeds its allowed bit width or range.
	ErrOutOfRange = errors.New("value out of range")

	// ErrConflictingInputs reports mutually exclusive seeding inputs, such
	// as a seed and an explicit key given together.
	ErrConflictingInputs = errors.New("conflicting seeding inputs")

	// ErrTagMismatch reports a snapshot whose algorithm name does not
	// match the receiving generator.
	ErrTagMismatch = errors.New("snapshot tag mismatch")

	// ErrSnapshotFormat reports snapshot data that is not a tagged record.
	ErrSnapshotFormat = errors.New("snapshot is not a tagged record")
)
