package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/teltechdev/teltech-backend/pkg/config"
)

// ChangesChannel carries key-changed notifications between views. The message
// payload is the changed key name, nothing else.
const ChangesChannel = "teltech:changes"

// RedisBackend persists storefront state in Redis and doubles as the
// cross-view change notifier via pub/sub.
type RedisBackend struct {
	raw *redis.Client
}

// NewRedisBackend bootstraps a Redis connection with pooling/timeouts and
// verifies connectivity.
func NewRedisBackend(ctx context.Context, cfg config.RedisConfig) (*RedisBackend, error) {
	opts, err := optionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	raw := redis.NewClient(opts)
	if err := raw.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisBackend{raw: raw}, nil
}

func optionsFromConfig(cfg config.RedisConfig) (*redis.Options, error) {
	if cfg.URL == "" && cfg.Address == "" {
		return nil, errors.New("redis url or address is required")
	}
	var opts *redis.Options
	if cfg.URL != "" {
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("parsing redis url: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{
			Addr:     cfg.Address,
			Password: cfg.Password,
			DB:       cfg.DB,
		}
	}
	if opts.DB == 0 {
		opts.DB = cfg.DB
	}
	if opts.PoolSize == 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if opts.MinIdleConns == 0 {
		opts.MinIdleConns = cfg.MinIdleConns
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = cfg.ReadTimeout
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = cfg.WriteTimeout
	}
	return opts, nil
}

func (r *RedisBackend) Get(ctx context.Context, key string) (string, error) {
	if r == nil || r.raw == nil {
		return "", errors.New("redis backend not initialized")
	}
	value, err := r.raw.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	return value, err
}

// Set stores the value with no TTL; storefront state persists until an
// explicit delete.
func (r *RedisBackend) Set(ctx context.Context, key, value string) error {
	if r == nil || r.raw == nil {
		return errors.New("redis backend not initialized")
	}
	return r.raw.Set(ctx, key, value, 0).Err()
}

func (r *RedisBackend) Del(ctx context.Context, keys ...string) error {
	if r == nil || r.raw == nil {
		return errors.New("redis backend not initialized")
	}
	return r.raw.Del(ctx, keys...).Err()
}

// Publish broadcasts the changed key name on the shared changes channel.
// Redis delivers to every subscriber, the publishing view included.
func (r *RedisBackend) Publish(ctx context.Context, key string) error {
	if r == nil || r.raw == nil {
		return errors.New("redis backend not initialized")
	}
	return r.raw.Publish(ctx, ChangesChannel, key).Err()
}

// Subscribe opens a pub/sub subscription on the changes channel.
func (r *RedisBackend) Subscribe(ctx context.Context) *redis.PubSub {
	return r.raw.Subscribe(ctx, ChangesChannel)
}

// Ping verifies the connection.
func (r *RedisBackend) Ping(ctx context.Context) error {
	if r == nil || r.raw == nil {
		return errors.New("redis backend not initialized")
	}
	return r.raw.Ping(ctx).Err()
}

// Close shuts down the underlying client.
func (r *RedisBackend) Close() error {
	if r == nil || r.raw == nil {
		return nil
	}
	return r.raw.Close()
}
