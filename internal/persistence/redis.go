package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// redisStore persists the snapshot under a single Redis key
type redisStore struct {
	client *redis.Client
	key    string
}

func newRedisStore(url, key string) (*redisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	if key == "" {
		key = "trendwatch:snapshot"
	}

	return &redisStore{
		client: redis.NewClient(opts),
		key:    key,
	}, nil
}

func (r *redisStore) Save(ctx context.Context, data []byte) error {
	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save snapshot to redis: %w", err)
	}
	return nil
}

func (r *redisStore) Load(ctx context.Context) ([]byte, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("failed to load snapshot from redis: %w", err)
	}
	return data, nil
}

func (r *redisStore) Close() error {
	return r.client.Close()
}
