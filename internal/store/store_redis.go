package store

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"sirpo/pkg/platform/sentinel"
)

// Redis is the durable KV tier. Records carry no TTL; they live until logout
// removes them.
type Redis struct {
	client redis.Cmdable
}

// NewRedis constructs a Redis-backed durable tier.
func NewRedis(client redis.Cmdable) *Redis {
	return &Redis{client: client}
}

func (r *Redis) Read(ctx context.Context, key string) (string, error) {
	v, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", sentinel.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

func (r *Redis) Write(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, key, value, 0).Err()
}

func (r *Redis) Remove(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}
