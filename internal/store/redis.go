package store

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Redis is a Backend over a Redis server. Every key is namespaced with
// Prefix so several deployments can share one database.
type Redis struct {
	Client *redis.Client
	Prefix string
}

// NewRedis returns a Backend that stores records in Redis.
func NewRedis(client *redis.Client, prefix string) *Redis {
	return &Redis{Client: client, Prefix: prefix}
}

func (r *Redis) key(key string) string {
	return r.Prefix + key
}

// Get returns the value under key.
func (r *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := r.Client.Get(ctx, r.key(key)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("getting record %s: %w", key, err)
	}
	return value, true, nil
}

// Set overwrites the value under key. Records never expire.
func (r *Redis) Set(ctx context.Context, key, value string) error {
	if err := r.Client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("setting record %s: %w", key, err)
	}
	return nil
}

// SetNX stores value only if key is absent.
func (r *Redis) SetNX(ctx context.Context, key, value string) (bool, error) {
	ok, err := r.Client.SetNX(ctx, r.key(key), value, 0).Result()
	if err != nil {
		return false, fmt.Errorf("setting record %s: %w", key, err)
	}
	return ok, nil
}

// Delete removes keys.
func (r *Redis) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = r.key(k)
	}
	if err := r.Client.Del(ctx, full...).Err(); err != nil {
		return fmt.Errorf("deleting records: %w", err)
	}
	return nil
}
