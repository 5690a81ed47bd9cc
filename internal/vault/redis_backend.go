package vault

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

// RedisConfig describes the redis connection and slot key.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Key      string
}

// RedisBackend stores the blob under a single string key. Update uses
// WATCH/MULTI so a save never overwrites a blob it did not read.
type RedisBackend struct {
	client *redis.Client
	key    string
}

// NewRedisBackend connects to redis and verifies the connection with PING.
func NewRedisBackend(ctx context.Context, cfg RedisConfig) (*RedisBackend, error) {
	if strings.TrimSpace(cfg.Addr) == "" {
		return nil, errors.New("redis address is empty")
	}
	key := cfg.Key
	if key == "" {
		key = SlotName
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis %s: %w", cfg.Addr, err)
	}
	return &RedisBackend{client: client, key: key}, nil
}

func (b *RedisBackend) ReadBlob(ctx context.Context) ([]byte, bool, error) {
	blob, err := b.client.Get(ctx, b.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", b.key, err)
	}
	return blob, true, nil
}

func (b *RedisBackend) WriteBlob(ctx context.Context, blob []byte) error {
	if err := b.client.Set(ctx, b.key, blob, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", b.key, err)
	}
	return nil
}

func (b *RedisBackend) Update(ctx context.Context, fn UpdateFunc) error {
	err := b.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, b.key).Bytes()
		ok := true
		if errors.Is(err, redis.Nil) {
			current, ok = nil, false
		} else if err != nil {
			return fmt.Errorf("redis get %s: %w", b.key, err)
		}
		next, err := fn(current, ok)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, b.key, next, 0)
			return nil
		})
		return err
	}, b.key)
	if errors.Is(err, redis.TxFailedErr) {
		return fmt.Errorf("redis set %s: %w", b.key, ErrConcurrentUpdate)
	}
	return err
}

// Close releases the redis connection pool.
func (b *RedisBackend) Close() error {
	return b.client.Close()
}

func (b *RedisBackend) String() string {
	return "redis:" + b.key
}
