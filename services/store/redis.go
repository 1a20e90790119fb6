package store

import (
	"context"
	"encoding/json"

	"sjsage522/wishlistwatcher/internal/wishlist"
	"sjsage522/wishlistwatcher/logger"
	"sjsage522/wishlistwatcher/pkg/errors"

	"github.com/redis/go-redis/v9"
)

const redisBackend = "redis"

// RedisStore keeps the snapshot in one hash: field = item key, value = entry JSON
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore creates a new Redis snapshot store
func NewRedisStore(addr string, db int, key string) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{
			Addr: addr,
			DB:   db,
		}),
		key: key,
	}
}

// Load reads the snapshot hash; a missing hash is an empty snapshot
func (s *RedisStore) Load(ctx context.Context) (wishlist.Snapshot, error) {
	fields, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, errors.NewPersistence(redisBackend, "failed to read "+s.key, err)
	}

	snapshot := make(wishlist.Snapshot, len(fields))
	for itemKey, raw := range fields {
		var entry wishlist.Entry
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			return nil, errors.NewPersistence(redisBackend, "failed to decode entry "+itemKey, err)
		}
		snapshot[itemKey] = entry
	}
	return snapshot, nil
}

// Save replaces the hash inside a MULTI/EXEC transaction
func (s *RedisStore) Save(ctx context.Context, snapshot wishlist.Snapshot) error {
	values := make(map[string]interface{}, len(snapshot))
	for itemKey, entry := range snapshot {
		raw, err := json.Marshal(entry)
		if err != nil {
			return errors.NewPersistence(redisBackend, "failed to encode entry "+itemKey, err)
		}
		values[itemKey] = string(raw)
	}

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.key)
		if len(values) > 0 {
			pipe.HSet(ctx, s.key, values)
		}
		return nil
	})
	if err != nil {
		return errors.NewPersistence(redisBackend, "failed to write "+s.key, err)
	}

	logger.ForStore(redisBackend).Debug().Int("items", len(snapshot)).Msg("Snapshot saved")
	return nil
}

// Close closes the Redis connection
func (s *RedisStore) Close() error {
	return s.client.Close()
}
