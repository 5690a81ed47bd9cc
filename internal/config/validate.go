package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateVault(); err != nil {
		return err
	}
	if err := c.validateRedis(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateVault() error {
	switch c.Vault.Backend {
	case BackendFile:
		if c.Vault.Path == "" {
			return errors.New("vault.path must be set when vault.backend is \"file\"")
		}
	case BackendSQLite:
		if c.Vault.SQLitePath == "" {
			return errors.New("vault.sqlite_path must be set when vault.backend is \"sqlite\"")
		}
	case BackendRedis, BackendMemory:
	default:
		return fmt.Errorf("vault.backend: unsupported value %q (expected file, sqlite, redis, or memory)", c.Vault.Backend)
	}

	switch c.Vault.OnCorruption {
	case CorruptionReset, CorruptionFail:
	default:
		return fmt.Errorf("vault.on_corruption: unsupported value %q (expected reset or fail)", c.Vault.OnCorruption)
	}
	return nil
}

func (c *Config) validateRedis() error {
	if c.Vault.Backend != BackendRedis {
		return nil
	}
	if c.Redis.Addr == "" {
		return errors.New("redis.addr must be set when vault.backend is \"redis\"")
	}
	if c.Redis.DB < 0 {
		return errors.New("redis.db must be >= 0")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (expected console or json)", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
