package vault

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"originx/internal/fileutil"
)

const lockRetryDelay = 25 * time.Millisecond

// FileBackend stores the blob as a JSON file. Writes go through a temp file
// and rename; Update holds an advisory lock on "<path>.lock" so concurrent
// originx processes serialize their saves.
type FileBackend struct {
	path string
	mu   sync.Mutex
	lock *flock.Flock
}

// NewFileBackend returns a backend for the slot file at path. The file and
// its directory are created lazily on first write.
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

// Path returns the slot file location.
func (b *FileBackend) Path() string {
	return b.path
}

func (b *FileBackend) ReadBlob(ctx context.Context) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(b.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read vault file: %w", err)
	}
	return data, true, nil
}

func (b *FileBackend) WriteBlob(ctx context.Context, blob []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := fileutil.WriteFileAtomic(b.path, blob, 0o600); err != nil {
		return fmt.Errorf("write vault file: %w", err)
	}
	return nil
}

func (b *FileBackend) Update(ctx context.Context, fn UpdateFunc) error {
	if err := os.MkdirAll(filepath.Dir(b.path), 0o755); err != nil {
		return fmt.Errorf("create vault directory: %w", err)
	}

	// flock is held per descriptor, so goroutines sharing this backend
	// serialize here first.
	b.mu.Lock()
	defer b.mu.Unlock()

	locked, err := b.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("lock vault file: %w", err)
	}
	if !locked {
		return errors.New("lock vault file: lock not acquired")
	}
	defer func() {
		_ = b.lock.Unlock()
	}()

	current, ok, err := b.ReadBlob(ctx)
	if err != nil {
		return err
	}
	next, err := fn(current, ok)
	if err != nil {
		return err
	}
	return b.WriteBlob(ctx, next)
}

func (b *FileBackend) String() string {
	return "file:" + b.path
}
