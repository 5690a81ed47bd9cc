package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"originx/internal/config"
	"originx/internal/vault"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config whose vault and log paths live in a fresh temp
// directory. The file backend is selected unless an option says otherwise.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Vault.Backend = config.BackendFile
	cfgVal.Vault.Path = filepath.Join(base, "data", vault.SlotName+".json")
	cfgVal.Vault.SQLitePath = filepath.Join(base, "data", "vault.db")
	cfgVal.Logging.Dir = filepath.Join(base, "logs")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithBackend selects the vault backend.
func WithBackend(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Vault.Backend = name
	}
}

// WithCorruptionPolicy sets vault.on_corruption.
func WithCorruptionPolicy(policy string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Vault.OnCorruption = policy
	}
}

// WithoutLogFile disables the log file so only stderr receives output.
func WithoutLogFile() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Logging.Dir = ""
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(filepath.Dir(cfg.Vault.Path))
}

// WriteConfig encodes cfg as TOML next to its data and returns the path.
func WriteConfig(t testing.TB, cfg *config.Config) string {
	t.Helper()

	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	path := filepath.Join(BaseDir(cfg), "config.toml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}
