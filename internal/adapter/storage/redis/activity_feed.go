package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"subra-settlement/internal/core/domain"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

const (
	historyLength = 100
	historyTTL    = 24 * time.Hour
)

// ActivityFeed implements ports.ActivityFeed. Each event is published on
// agent:<id>:activity and kept in a capped list agent:<id>:activity:history.
type ActivityFeed struct {
	client *goredis.Client
}

func NewActivityFeed(client *goredis.Client) *ActivityFeed {
	return &ActivityFeed{client: client}
}

func channelKey(agentID uuid.UUID) string {
	return "agent:" + agentID.String() + ":activity"
}

func historyKey(agentID uuid.UUID) string {
	return channelKey(agentID) + ":history"
}

// Publish broadcasts the event and appends it to the history.
func (f *ActivityFeed) Publish(ctx context.Context, activity domain.Activity) error {
	payload, err := json.Marshal(activity)
	if err != nil {
		return fmt.Errorf("marshal activity: %w", err)
	}

	history := historyKey(activity.AgentID)
	_, err = f.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Publish(ctx, channelKey(activity.AgentID), payload)
		pipe.LPush(ctx, history, payload)
		pipe.LTrim(ctx, history, 0, historyLength-1)
		pipe.Expire(ctx, history, historyTTL)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis publish activity: %w", err)
	}
	return nil
}

// History returns up to limit events, newest first. Unreadable entries are
// skipped.
func (f *ActivityFeed) History(ctx context.Context, agentID uuid.UUID, limit int) ([]domain.Activity, error) {
	raw, err := f.client.LRange(ctx, historyKey(agentID), 0, int64(limit)-1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis activity history: %w", err)
	}

	activities := make([]domain.Activity, 0, len(raw))
	for _, item := range raw {
		var a domain.Activity
		if err := json.Unmarshal([]byte(item), &a); err != nil {
			continue
		}
		activities = append(activities, a)
	}
	return activities, nil
}

// Subscribe streams live events for one agent until ctx is done.
func (f *ActivityFeed) Subscribe(ctx context.Context, agentID uuid.UUID) (<-chan domain.Activity, error) {
	sub := f.client.Subscribe(ctx, channelKey(agentID))
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("redis subscribe activity: %w", err)
	}

	out := make(chan domain.Activity)
	go func() {
		defer close(out)
		defer sub.Close()
		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var a domain.Activity
				if err := json.Unmarshal([]byte(msg.Payload), &a); err != nil {
					continue
				}
				select {
				case out <- a:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
