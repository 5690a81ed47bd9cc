package vault

import (
	"errors"
	"fmt"
)

var (
	// ErrStorageCorrupted marks a persisted blob that does not parse or
	// validate into a record collection.
	ErrStorageCorrupted = errors.New("vault storage corrupted")
	// ErrUnsupportedSchema marks a blob written by a newer schema version.
	ErrUnsupportedSchema = errors.New("unsupported vault schema version")
	// ErrInvalidRecord marks a record that violates the record invariants.
	ErrInvalidRecord = errors.New("invalid proof record")
	// ErrDuplicateID is returned by Save when the record id is already stored.
	ErrDuplicateID = errors.New("proof record id already exists")
	// ErrConcurrentUpdate is returned by Save when another writer replaced the
	// blob between read and write and the backend refused the stale write.
	ErrConcurrentUpdate = errors.New("vault changed during save")
)

// CorruptionError describes why a persisted blob was rejected.
type CorruptionError struct {
	Slot  string
	Cause error
}

func (e *CorruptionError) Error() string {
	if e.Slot != "" {
		return fmt.Sprintf("%s (%s): %v", ErrStorageCorrupted, e.Slot, e.Cause)
	}
	return fmt.Sprintf("%s: %v", ErrStorageCorrupted, e.Cause)
}

func (e *CorruptionError) Unwrap() []error {
	return []error{ErrStorageCorrupted, e.Cause}
}
