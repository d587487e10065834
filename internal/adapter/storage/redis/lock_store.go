package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

// releaseScript deletes the lock only if it still holds the caller's token,
// so an expired and re-acquired lock is never released by the old holder.
var releaseScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// LockStore implements ports.AgentLocker and ports.JobLocker with SET NX
// and a token-checked release.
type LockStore struct {
	client *goredis.Client
	prefix string
}

func NewLockStore(client *goredis.Client) *LockStore {
	return &LockStore{
		client: client,
		prefix: "lock:",
	}
}

// Acquire takes lock:agent:<id>. It returns "" when the agent is busy.
func (s *LockStore) Acquire(ctx context.Context, agentID uuid.UUID, ttl time.Duration) (string, error) {
	return s.tryLock(ctx, "agent:"+agentID.String(), ttl)
}

// Release drops the agent lock if token still holds it.
func (s *LockStore) Release(ctx context.Context, agentID uuid.UUID, token string) error {
	return s.unlock(ctx, "agent:"+agentID.String(), token)
}

// TryLock takes lock:job:<name>. It returns "" when another replica runs it.
func (s *LockStore) TryLock(ctx context.Context, job string, ttl time.Duration) (string, error) {
	return s.tryLock(ctx, "job:"+job, ttl)
}

// Unlock drops the job lock if token still holds it.
func (s *LockStore) Unlock(ctx context.Context, job, token string) error {
	return s.unlock(ctx, "job:"+job, token)
}

func (s *LockStore) tryLock(ctx context.Context, name string, ttl time.Duration) (string, error) {
	token := uuid.NewString()
	ok, err := s.client.SetNX(ctx, s.prefix+name, token, ttl).Result()
	if err != nil {
		return "", fmt.Errorf("redis lock %s: %w", name, err)
	}
	if !ok {
		return "", nil
	}
	return token, nil
}

func (s *LockStore) unlock(ctx context.Context, name, token string) error {
	if err := releaseScript.Run(ctx, s.client, []string{s.prefix + name}, token).Err(); err != nil {
		return fmt.Errorf("redis unlock %s: %w", name, err)
	}
	return nil
}
