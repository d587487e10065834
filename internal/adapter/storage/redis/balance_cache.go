package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// BalanceCache implements ports.BalanceCache. Balances are stored as
// decimal strings.
type BalanceCache struct {
	client *goredis.Client
	prefix string
}

func NewBalanceCache(client *goredis.Client) *BalanceCache {
	return &BalanceCache{
		client: client,
		prefix: "agent:balance:",
	}
}

// Get returns nil, nil when no fresh balance is cached.
func (c *BalanceCache) Get(ctx context.Context, agentID uuid.UUID) (*decimal.Decimal, error) {
	val, err := c.client.Get(ctx, c.prefix+agentID.String()).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis balance get: %w", err)
	}
	balance, err := decimal.NewFromString(val)
	if err != nil {
		return nil, fmt.Errorf("redis balance parse %q: %w", val, err)
	}
	return &balance, nil
}

// Set caches the agent balance for ttl.
func (c *BalanceCache) Set(ctx context.Context, agentID uuid.UUID, balance decimal.Decimal, ttl time.Duration) error {
	if err := c.client.Set(ctx, c.prefix+agentID.String(), balance.String(), ttl).Err(); err != nil {
		return fmt.Errorf("redis balance set: %w", err)
	}
	return nil
}
