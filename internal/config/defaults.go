package config

import "path/filepath"

// Backend names accepted by vault.backend.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Corruption policies accepted by vault.on_corruption.
const (
	CorruptionReset = "reset"
	CorruptionFail  = "fail"
)

const (
	defaultConfigPath     = "~/.config/originx/config.toml"
	defaultVaultFileName  = "originx_proofs_v1.json"
	defaultSQLiteFileName = "vault.db"
	defaultRedisAddr      = "127.0.0.1:6379"
	defaultRedisKeyPrefix = "originx:"
	defaultLogFormat      = "console"
	defaultLogLevel       = "warn"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	dataDir := defaultDataDir()
	return Config{
		Vault: Vault{
			Backend:      BackendFile,
			Path:         filepath.Join(dataDir, defaultVaultFileName),
			SQLitePath:   filepath.Join(dataDir, defaultSQLiteFileName),
			OnCorruption: CorruptionReset,
		},
		Redis: Redis{
			Addr:      defaultRedisAddr,
			KeyPrefix: defaultRedisKeyPrefix,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
