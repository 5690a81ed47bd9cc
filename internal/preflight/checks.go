package preflight

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"

	"originx/internal/config"
	"originx/internal/fingerprint"
	"originx/internal/logging"
	"originx/internal/vault"
)

// emptyDigest is the SHA-256 of zero bytes.
const emptyDigest = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"

const vaultCheckTimeout = 5 * time.Second

// CheckDigestProvider confirms SHA-256 is linked and produces the known
// digest for empty input.
func CheckDigestProvider() Result {
	const name = "SHA-256 provider"

	sum, err := fingerprint.Bytes(nil)
	if err != nil {
		return Result{Name: name, Detail: err.Error()}
	}
	if sum != emptyDigest {
		return Result{Name: name, Detail: fmt.Sprintf("unexpected digest %s", sum)}
	}
	return Result{Name: name, Passed: true, Detail: "available"}
}

// CheckDirectoryAccess verifies path is a directory the process can read,
// write, and traverse.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckVault opens the configured backend and decodes the stored vault
// without applying the corruption policy. A single attempt is made.
func CheckVault(ctx context.Context, cfg *config.Config) Result {
	name := fmt.Sprintf("Vault (%s)", cfg.Vault.Backend)

	checkCtx, cancel := context.WithTimeout(ctx, vaultCheckTimeout)
	defer cancel()

	store, err := vault.Open(checkCtx, cfg, logging.NewNop())
	if err != nil {
		return Result{Name: name, Detail: summarizeVaultError(err)}
	}
	defer func() {
		_ = store.Close()
	}()

	records, err := store.Load(checkCtx)
	if err != nil {
		return Result{Name: name, Detail: summarizeVaultError(err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%d records readable", len(records))}
}

func summarizeVaultError(err error) string {
	switch {
	case errors.Is(err, vault.ErrStorageCorrupted):
		return "stored data is corrupted: " + err.Error()
	case errors.Is(err, vault.ErrUnsupportedSchema):
		return "written by a newer originx: " + err.Error()
	case errors.Is(err, context.DeadlineExceeded):
		return "timed out"
	default:
		return err.Error()
	}
}
