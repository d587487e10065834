package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// OutcomeCache implements ports.OutcomeCache. Keys are agent:task pairs.
type OutcomeCache struct {
	client *goredis.Client
	prefix string
}

func NewOutcomeCache(client *goredis.Client) *OutcomeCache {
	return &OutcomeCache{
		client: client,
		prefix: "purchase:outcome:",
	}
}

// Get returns nil, nil if the key does not exist.
func (c *OutcomeCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis outcome get: %w", err)
	}
	return val, nil
}

// Set stores value under key for ttl.
func (c *OutcomeCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.prefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis outcome set: %w", err)
	}
	return nil
}
