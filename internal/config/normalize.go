package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeVault(); err != nil {
		return err
	}
	c.normalizeRedis()
	if err := c.normalizeLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) normalizeVault() error {
	applyEnv("ORIGINX_VAULT_BACKEND", &c.Vault.Backend)
	c.Vault.Backend = strings.ToLower(strings.TrimSpace(c.Vault.Backend))
	if c.Vault.Backend == "" {
		c.Vault.Backend = BackendFile
	}

	c.Vault.OnCorruption = strings.ToLower(strings.TrimSpace(c.Vault.OnCorruption))
	if c.Vault.OnCorruption == "" {
		c.Vault.OnCorruption = CorruptionReset
	}

	var err error
	if strings.TrimSpace(c.Vault.Path) == "" {
		c.Vault.Path = filepath.Join(defaultDataDir(), defaultVaultFileName)
	}
	if c.Vault.Path, err = expandPath(strings.TrimSpace(c.Vault.Path)); err != nil {
		return fmt.Errorf("vault.path: %w", err)
	}
	if strings.TrimSpace(c.Vault.SQLitePath) == "" {
		c.Vault.SQLitePath = filepath.Join(defaultDataDir(), defaultSQLiteFileName)
	}
	if c.Vault.SQLitePath, err = expandPath(strings.TrimSpace(c.Vault.SQLitePath)); err != nil {
		return fmt.Errorf("vault.sqlite_path: %w", err)
	}
	return nil
}

func (c *Config) normalizeRedis() {
	applyEnv("ORIGINX_REDIS_ADDR", &c.Redis.Addr)
	applyEnv("ORIGINX_REDIS_PASSWORD", &c.Redis.Password)
	c.Redis.Addr = strings.TrimSpace(c.Redis.Addr)
	if c.Redis.Addr == "" {
		c.Redis.Addr = defaultRedisAddr
	}
	c.Redis.Password = strings.TrimSpace(c.Redis.Password)
	c.Redis.KeyPrefix = strings.TrimSpace(c.Redis.KeyPrefix)
}

// applyEnv replaces *dst with the named variable when it is set and not blank.
func applyEnv(name string, dst *string) {
	if value, ok := os.LookupEnv(name); ok && strings.TrimSpace(value) != "" {
		*dst = value
	}
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if strings.TrimSpace(c.Logging.Dir) != "" {
		dir, err := expandPath(strings.TrimSpace(c.Logging.Dir))
		if err != nil {
			return fmt.Errorf("logging.dir: %w", err)
		}
		c.Logging.Dir = dir
	}
	return nil
}
