// Package cache is a JSON-over-Redis store used to read-through aggregate
// query results.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bcama/linqlab/config"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "linqlab:"

// Store wraps a Redis client. A nil *Store is valid and caches nothing.
type Store struct {
	rdb *redis.Client
}

// Connect dials Redis from config and verifies it with a ping.
func Connect(ctx context.Context) (*Store, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr(),
		Password: config.RedisPassword(),
		DB:       0,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("cache: redis ping: %w", err)
	}
	return New(rdb), nil
}

// New wraps an existing client.
func New(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

// Get unmarshals the value under key into dest and reports a hit.
func (s *Store) Get(ctx context.Context, key string, dest interface{}) bool {
	if s == nil || s.rdb == nil {
		return false
	}

	val, err := s.rdb.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		return false
	}

	return json.Unmarshal(val, dest) == nil
}

// Set stores value under key for ttl.
func (s *Store) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if s == nil || s.rdb == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache: marshal %s: %w", key, err)
	}

	return s.rdb.Set(ctx, keyPrefix+key, data, ttl).Err()
}

// Forget removes keys.
func (s *Store) Forget(ctx context.Context, keys ...string) error {
	if s == nil || s.rdb == nil || len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = keyPrefix + k
	}
	return s.rdb.Del(ctx, full...).Err()
}

func (s *Store) Close() error {
	if s == nil || s.rdb == nil {
		return nil
	}
	return s.rdb.Close()
}
