package rediscache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/commercestore/commercestore/internal/errors"
	"github.com/redis/go-redis/v9"
)

type Redis struct {
	client *redis.Client
}

// New returns a new Redis cache store.
func New(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (c *Redis) Get(ctx context.Context, key string, value interface{}) error {
	const op errors.Op = "rediscache/Redis.Get"

	data, err := c.client.Get(ctx, key).Result()
	if err != nil {
		switch {
		case err == redis.Nil:
			return errors.E(op, errors.NotFound)
		default:
			return errors.E(op, errors.Internal, err)
		}
	}

	if err := json.Unmarshal([]byte(data), value); err != nil {
		return errors.E(op, errors.Internal, err)
	}

	return nil
}

func (c *Redis) Set(ctx context.Context, key string, value interface{}, expires time.Duration) error {
	const op errors.Op = "rediscache/Redis.Set"

	data, err := json.Marshal(value)
	if err != nil {
		return errors.E(op, errors.Internal, err)
	}

	if _, err := c.client.Set(ctx, key, data, expires).Result(); err != nil {
		return errors.E(op, errors.Internal, err)
	}

	return nil
}

func (c *Redis) Delete(ctx context.Context, key string) error {
	const op errors.Op = "rediscache/Redis.Delete"

	if _, err := c.client.Del(ctx, key).Result(); err != nil {
		return errors.E(op, errors.Internal, err)
	}

	return nil
}

// Flush deletes all items asynchronously.
func (c *Redis) Flush(ctx context.Context) error {
	const op errors.Op = "rediscache/Redis.Flush"

	if _, err := c.client.FlushAllAsync(ctx).Result(); err != nil {
		return errors.E(op, errors.Internal, err)
	}

	return nil
}

func (c *Redis) Run() error {
	if _, err := c.client.Ping(context.Background()).Result(); err != nil {
		return err
	}

	return nil
}

func (c *Redis) Shutdown() error {
	if _, err := c.client.Shutdown(context.Background()).Result(); err != nil {
		return err
	}

	return nil
}
