package statestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	backend "github.com/redis/go-redis/v9"

	"github.com/vovakirdan/crowdtris/internal/games/tetris"
)

// DefaultRedisKey is the key the snapshot is stored under.
const DefaultRedisKey = "crowdtris:state"

// RedisStore keeps the snapshot as a JSON string in Redis.
type RedisStore struct {
	client *backend.Client
	key    string
}

// NewRedisStore connects to a Redis server.
func NewRedisStore(address, password string, db int, key string) *RedisStore {
	client := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewRedisStoreFromClient(client, key)
}

// NewRedisStoreFromClient wraps an existing client.
func NewRedisStoreFromClient(client *backend.Client, key string) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{client: client, key: key}
}

// Load reads the snapshot from Redis.
func (s *RedisStore) Load(ctx context.Context) (tetris.Snapshot, error) {
	var snap tetris.Snapshot

	val, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, backend.Nil) {
		return snap, ErrNotFound
	}
	if err != nil {
		return snap, fmt.Errorf("statestore: failed to get from redis: %w", err)
	}
	if err := json.Unmarshal(val, &snap); err != nil {
		return snap, fmt.Errorf("statestore: failed to unmarshal state: %w", err)
	}
	return snap, nil
}

// Save writes the snapshot to Redis with no expiry.
func (s *RedisStore) Save(ctx context.Context, snap tetris.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("statestore: failed to marshal state: %w", err)
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("statestore: failed to save to redis: %w", err)
	}
	return nil
}

// Close closes the Redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
