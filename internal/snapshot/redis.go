package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey is the key the active snapshot lives under when no
// explicit key is configured.
const DefaultRedisKey = "topgrid:grid:active"

// RedisStore persists snapshots as a single JSON document in Redis.
//
// Useful when several processes on one box share a session (the snapshot
// is still a per-session resource, not a sync mechanism).
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore creates a store writing to the given key. An empty key
// falls back to DefaultRedisKey.
func NewRedisStore(client *redis.Client, key string) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{client: client, key: key}
}

// Save overwrites the active snapshot document.
func (s *RedisStore) Save(ctx context.Context, snap Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := s.client.Set(ctx, s.key, payload, 0).Err(); err != nil {
		return fmt.Errorf("save snapshot to redis: %w", err)
	}
	return nil
}

// Load returns the active snapshot. ok is false when the key is absent.
func (s *RedisStore) Load(ctx context.Context) (Snapshot, bool, error) {
	payload, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return Snapshot{}, false, nil
	}
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("load snapshot from redis: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return Snapshot{}, false, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, true, nil
}
