// Package redis provides a Redis-backed implementation of driven.KVStore,
// letting several machines share the same cached view state.
package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/custodia-labs/docuflow-cli/internal/core/domain"
	"github.com/custodia-labs/docuflow-cli/internal/core/ports/driven"
)

// DefaultPrefix namespaces every key written by the store.
const DefaultPrefix = "docuflow:"

// Ensure KVStore implements the interface.
var _ driven.KVStore = (*KVStore)(nil)

// KVStore stores values as plain Redis strings under a key prefix.
type KVStore struct {
	rdb    *redis.Client
	prefix string
}

// NewKVStore connects to the server at url (redis://[:password@]host:port/db)
// and verifies the connection with a PING.
func NewKVStore(ctx context.Context, url string) (*KVStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	return NewKVStoreFromClient(rdb, DefaultPrefix), nil
}

// NewKVStoreFromClient wraps an existing client.
func NewKVStoreFromClient(rdb *redis.Client, prefix string) *KVStore {
	return &KVStore{rdb: rdb, prefix: prefix}
}

func (s *KVStore) key(k string) string {
	return s.prefix + k
}

// Get returns the value for key.
func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := s.rdb.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting %s: %w", key, err)
	}
	return val, nil
}

// Set stores value under key without expiry.
func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.rdb.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("setting %s: %w", key, err)
	}
	return nil
}

// Delete removes key.
func (s *KVStore) Delete(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("deleting %s: %w", key, err)
	}
	return nil
}

// Close closes the client connection pool.
func (s *KVStore) Close() error {
	return s.rdb.Close()
}
