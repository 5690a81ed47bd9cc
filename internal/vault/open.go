package vault

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"originx/internal/config"
)

// Open builds the backend selected by cfg and wraps it in a Store.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Store, error) {
	if cfg == nil {
		return nil, errors.New("vault: config is nil")
	}
	policy, err := ParseCorruptionPolicy(cfg.Vault.OnCorruption)
	if err != nil {
		return nil, err
	}
	backend, err := newBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return New(backend, policy, logger), nil
}

func newBackend(ctx context.Context, cfg *config.Config) (Backend, error) {
	switch cfg.Vault.Backend {
	case config.BackendFile, "":
		return NewFileBackend(cfg.Vault.Path), nil
	case config.BackendSQLite:
		backend, err := OpenSQLiteBackend(ctx, cfg.Vault.SQLitePath, SlotName)
		if err != nil {
			return nil, fmt.Errorf("open sqlite vault: %w", err)
		}
		return backend, nil
	case config.BackendRedis:
		backend, err := NewRedisBackend(ctx, RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Key:      cfg.SlotKey(SlotName),
		})
		if err != nil {
			return nil, fmt.Errorf("open redis vault: %w", err)
		}
		return backend, nil
	case config.BackendMemory:
		return NewMemoryBackend(), nil
	default:
		return nil, fmt.Errorf("unknown vault backend %q", cfg.Vault.Backend)
	}
}
