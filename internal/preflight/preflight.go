package preflight

import (
	"context"
	"path/filepath"

	"originx/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail"`
}

// RunAll executes the checks that apply to cfg. Directory checks are only run
// for backends that store data on the local filesystem.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{CheckDigestProvider()}

	switch cfg.Vault.Backend {
	case config.BackendFile:
		results = append(results, CheckDirectoryAccess("Vault directory", filepath.Dir(cfg.Vault.Path)))
	case config.BackendSQLite:
		results = append(results, CheckDirectoryAccess("Vault directory", filepath.Dir(cfg.Vault.SQLitePath)))
	}

	if cfg.Logging.Dir != "" {
		results = append(results, CheckDirectoryAccess("Log directory", cfg.Logging.Dir))
	}

	results = append(results, CheckVault(ctx, cfg))
	return results
}

// Failed reports whether any result did not pass.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return true
		}
	}
	return false
}
