package vault_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"originx/internal/config"
	"originx/internal/vault"
)

func TestFileBackendRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", vault.SlotName+".json")
	backend := vault.NewFileBackend(path)

	if _, ok, err := backend.ReadBlob(ctx); err != nil || ok {
		t.Fatalf("ReadBlob on missing file = (%v, %v), want absent", ok, err)
	}

	store := vault.New(backend, vault.FailOnCorruption, nil)
	rec := newRecord(t, "file-1", "file content", "On disk", baseTime)
	if err := store.Save(ctx, rec); err != nil {
		t.Fatalf("Save: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat vault file: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("vault file mode = %v, want 0600", info.Mode().Perm())
	}

	reopened := vault.New(vault.NewFileBackend(path), vault.FailOnCorruption, nil)
	found, ok, err := reopened.FindByFingerprint(ctx, rec.Fingerprint)
	if err != nil || !ok {
		t.Fatalf("FindByFingerprint after reopen = (%v, %v)", ok, err)
	}
	if found.ID != rec.ID || !found.Timestamp.Equal(rec.Timestamp) {
		t.Fatalf("unexpected record %+v", found)
	}
}

func TestFileBackendCorruptedFileUnderResetPolicy(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), vault.SlotName+".json")
	if err := os.WriteFile(path, []byte("\x00\x01 not json"), 0o600); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}
	store := vault.New(vault.NewFileBackend(path), vault.ResetOnCorruption, nil)

	records, err := store.List(ctx)
	if err != nil || len(records) != 0 {
		t.Fatalf("List = (%v, %v), want empty", records, err)
	}

	_, err = vault.New(vault.NewFileBackend(path), vault.FailOnCorruption, nil).Load(ctx)
	var corruption *vault.CorruptionError
	if !errors.As(err, &corruption) || !strings.HasPrefix(corruption.Slot, "file:") {
		t.Fatalf("Load error = %v, want *CorruptionError naming the file slot", err)
	}
}

func TestFileBackendSerializesConcurrentSaves(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), vault.SlotName+".json")

	const writers = 4
	const perWriter = 5

	var wg sync.WaitGroup
	errs := make(chan error, writers*perWriter)
	for w := 0; w < writers; w++ {
		// Each writer has its own backend and lock descriptor, the way
		// separate originx processes would.
		store := vault.New(vault.NewFileBackend(path), vault.FailOnCorruption, nil)
		batch := make([]vault.Record, 0, perWriter)
		for i := 0; i < perWriter; i++ {
			id := fmt.Sprintf("w%d-%d", w, i)
			batch = append(batch, newRecord(t, id, id, "", baseTime))
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, rec := range batch {
				errs <- store.Save(ctx, rec)
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent Save: %v", err)
		}
	}

	count, err := vault.New(vault.NewFileBackend(path), vault.FailOnCorruption, nil).Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if count != writers*perWriter {
		t.Fatalf("expected %d records, got %d", writers*perWriter, count)
	}
}

func TestFileBackendUpdateHonorsCancelledContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), vault.SlotName+".json")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	store := vault.New(vault.NewFileBackend(path), vault.ResetOnCorruption, nil)
	err := store.Save(ctx, newRecord(t, "c", "cancelled", "", baseTime))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Save error = %v, want context.Canceled", err)
	}
}

func TestSQLiteBackendRoundTrip(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "vault.db")

	backend, err := vault.OpenSQLiteBackend(ctx, dbPath, vault.SlotName)
	if err != nil {
		t.Fatalf("OpenSQLiteBackend: %v", err)
	}
	store := vault.New(backend, vault.FailOnCorruption, nil)

	first := newRecord(t, "sql-1", "first", "First", baseTime)
	second := newRecord(t, "sql-2", "second", "Second", baseTime.Add(time.Hour))
	for _, rec := range []vault.Record{first, second} {
		if err := store.Save(ctx, rec); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := vault.OpenSQLiteBackend(ctx, dbPath, vault.SlotName)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	t.Cleanup(func() { _ = reopened.Close() })

	records, err := vault.New(reopened, vault.FailOnCorruption, nil).List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 2 || records[0].ID != "sql-2" || records[1].ID != "sql-1" {
		t.Fatalf("unexpected records %+v", records)
	}
}

func TestSQLiteBackendSlotsAreIsolated(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "vault.db")

	a, err := vault.OpenSQLiteBackend(ctx, dbPath, "slot_a")
	if err != nil {
		t.Fatalf("open slot_a: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })
	b, err := vault.OpenSQLiteBackend(ctx, dbPath, "slot_b")
	if err != nil {
		t.Fatalf("open slot_b: %v", err)
	}
	t.Cleanup(func() { _ = b.Close() })

	if err := vault.New(a, vault.FailOnCorruption, nil).Save(ctx, newRecord(t, "only-a", "a", "", baseTime)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, ok, err := b.ReadBlob(ctx); err != nil || ok {
		t.Fatalf("slot_b ReadBlob = (%v, %v), want absent", ok, err)
	}
}

func TestSQLiteBackendRejectsEmptyKey(t *testing.T) {
	if _, err := vault.OpenSQLiteBackend(context.Background(), filepath.Join(t.TempDir(), "v.db"), " "); err == nil {
		t.Fatal("expected error for empty slot key")
	}
}

func TestRedisBackendRoundTrip(t *testing.T) {
	addr := os.Getenv("ORIGINX_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("ORIGINX_TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	key := fmt.Sprintf("originx-test:%d:%s", time.Now().UnixNano(), vault.SlotName)

	backend, err := vault.NewRedisBackend(ctx, vault.RedisConfig{Addr: addr, Key: key})
	if err != nil {
		t.Fatalf("NewRedisBackend: %v", err)
	}
	store := vault.New(backend, vault.FailOnCorruption, nil)
	t.Cleanup(func() {
		_ = backend.WriteBlob(context.Background(), nil)
		_ = store.Close()
	})

	rec := newRecord(t, "redis-1", "redis content", "Cached", baseTime)
	if err := store.Save(ctx, rec); err != nil {
		t.Fatalf("Save: %v", err)
	}
	found, ok, err := store.FindByFingerprint(ctx, rec.Fingerprint)
	if err != nil || !ok || found.ID != rec.ID {
		t.Fatalf("FindByFingerprint = (%+v, %v, %v)", found, ok, err)
	}
}

func TestRedisBackendReportsConcurrentUpdate(t *testing.T) {
	addr := os.Getenv("ORIGINX_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("ORIGINX_TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()
	key := fmt.Sprintf("originx-test:%d:%s", time.Now().UnixNano(), vault.SlotName)

	backend, err := vault.NewRedisBackend(ctx, vault.RedisConfig{Addr: addr, Key: key})
	if err != nil {
		t.Fatalf("NewRedisBackend: %v", err)
	}
	other, err := vault.NewRedisBackend(ctx, vault.RedisConfig{Addr: addr, Key: key})
	if err != nil {
		t.Fatalf("NewRedisBackend: %v", err)
	}
	t.Cleanup(func() {
		_ = backend.WriteBlob(context.Background(), nil)
		_ = backend.Close()
		_ = other.Close()
	})

	err = backend.Update(ctx, func(current []byte, ok bool) ([]byte, error) {
		if err := other.WriteBlob(ctx, []byte("[]")); err != nil {
			return nil, err
		}
		return []byte(`{"schema":"originx.proofs","version":1,"records":[]}`), nil
	})
	if !errors.Is(err, vault.ErrConcurrentUpdate) {
		t.Fatalf("Update error = %v, want ErrConcurrentUpdate", err)
	}
	blob, _, err := backend.ReadBlob(ctx)
	if err != nil || string(blob) != "[]" {
		t.Fatalf("slot = (%s, %v), want the other writer's value", blob, err)
	}
}

func TestOpenSelectsBackendFromConfig(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	tests := []struct {
		backend string
		prefix  string
	}{
		{backend: config.BackendFile, prefix: "file:"},
		{backend: config.BackendSQLite, prefix: "sqlite:"},
		{backend: config.BackendMemory, prefix: "memory"},
	}
	for _, tc := range tests {
		t.Run(tc.backend, func(t *testing.T) {
			cfg := config.Default()
			cfg.Vault.Backend = tc.backend
			cfg.Vault.Path = filepath.Join(dir, tc.backend, vault.SlotName+".json")
			cfg.Vault.SQLitePath = filepath.Join(dir, tc.backend, "vault.db")

			store, err := vault.Open(ctx, &cfg, nil)
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			t.Cleanup(func() { _ = store.Close() })

			name := fmt.Sprint(store.Backend())
			if !strings.HasPrefix(name, tc.prefix) {
				t.Fatalf("backend = %q, want prefix %q", name, tc.prefix)
			}
			if err := store.Save(ctx, newRecord(t, "open-"+tc.backend, tc.backend, "", baseTime)); err != nil {
				t.Fatalf("Save: %v", err)
			}
		})
	}
}

func TestOpenRejectsUnknownSettings(t *testing.T) {
	ctx := context.Background()

	cfg := config.Default()
	cfg.Vault.Backend = "floppy"
	if _, err := vault.Open(ctx, &cfg, nil); err == nil {
		t.Fatal("expected error for unknown backend")
	}

	cfg = config.Default()
	cfg.Vault.Backend = config.BackendMemory
	cfg.Vault.OnCorruption = "shrug"
	if _, err := vault.Open(ctx, &cfg, nil); err == nil {
		t.Fatal("expected error for unknown corruption policy")
	}
}
