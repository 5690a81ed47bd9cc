package vault

import (
	"context"
	"sync"
)

// Backend stores the vault blob in a single named slot.
type Backend interface {
	// ReadBlob returns the stored blob and whether the slot exists.
	ReadBlob(ctx context.Context) ([]byte, bool, error)
	// WriteBlob replaces the slot contents. Readers must observe either the
	// previous or the new blob, never a mix.
	WriteBlob(ctx context.Context, blob []byte) error
}

// UpdateFunc receives the current blob (ok is false when the slot is empty)
// and returns the blob to write.
type UpdateFunc func(blob []byte, ok bool) ([]byte, error)

// Updater is implemented by backends that can run a read-modify-write as one
// unit with respect to other writers, including other processes.
type Updater interface {
	Update(ctx context.Context, fn UpdateFunc) error
}

// MemoryBackend keeps the blob in process memory.
type MemoryBackend struct {
	mu   sync.RWMutex
	blob []byte
	ok   bool
}

// NewMemoryBackend returns an empty in-memory slot.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

func (m *MemoryBackend) ReadBlob(ctx context.Context) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.ok {
		return nil, false, nil
	}
	return append([]byte(nil), m.blob...), true, nil
}

func (m *MemoryBackend) WriteBlob(ctx context.Context, blob []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blob = append([]byte(nil), blob...)
	m.ok = true
	return nil
}

func (m *MemoryBackend) Update(ctx context.Context, fn UpdateFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	current := append([]byte(nil), m.blob...)
	next, err := fn(current, m.ok)
	if err != nil {
		return err
	}
	m.blob = append([]byte(nil), next...)
	m.ok = true
	return nil
}

func (m *MemoryBackend) String() string {
	return "memory"
}
