package testsupport

import (
	"context"
	"testing"

	"originx/internal/config"
	"originx/internal/logging"
	"originx/internal/vault"
)

// MustOpenStore opens the vault selected by cfg and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *vault.Store {
	t.Helper()

	store, err := vault.Open(context.Background(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("vault.Open: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

// WriteBlob places raw bytes in the vault slot, bypassing validation.
func WriteBlob(t testing.TB, store *vault.Store, blob []byte) {
	t.Helper()

	if err := store.Backend().WriteBlob(context.Background(), blob); err != nil {
		t.Fatalf("write vault blob: %v", err)
	}
}
