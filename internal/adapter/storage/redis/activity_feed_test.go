package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	"subra-settlement/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityFeed_PublishAndHistory(t *testing.T) {
	mr, client := newTestClient(t)
	feed := NewActivityFeed(client)
	ctx := context.Background()
	agentID := uuid.New()

	require.NoError(t, feed.Publish(ctx, domain.NewActivity(agentID, domain.ActivityPurchaseStarted, map[string]any{"taskId": "t1"})))
	require.NoError(t, feed.Publish(ctx, domain.NewActivity(agentID, domain.ActivityPurchaseCompleted, map[string]any{"taskId": "t1"})))

	history, err := feed.History(ctx, agentID, 50)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, domain.ActivityPurchaseCompleted, history[0].Type, "newest first")
	assert.Equal(t, "t1", history[1].Data["taskId"])

	key := "agent:" + agentID.String() + ":activity:history"
	assert.Equal(t, 24*time.Hour, mr.TTL(key))
}

func TestActivityFeed_HistoryIsCapped(t *testing.T) {
	mr, client := newTestClient(t)
	feed := NewActivityFeed(client)
	ctx := context.Background()
	agentID := uuid.New()

	for i := range 105 {
		require.NoError(t, feed.Publish(ctx, domain.NewActivity(agentID, domain.ActivityWalletFunded, map[string]any{"n": fmt.Sprint(i)})))
	}

	items, err := mr.List("agent:" + agentID.String() + ":activity:history")
	require.NoError(t, err)
	assert.Len(t, items, 100)

	history, err := feed.History(ctx, agentID, 5)
	require.NoError(t, err)
	require.Len(t, history, 5)
	assert.Equal(t, "104", history[0].Data["n"])
}

func TestActivityFeed_SkipsUnreadableEntries(t *testing.T) {
	mr, client := newTestClient(t)
	feed := NewActivityFeed(client)
	agentID := uuid.New()
	_, err := mr.Lpush("agent:"+agentID.String()+":activity:history", "{broken")
	require.NoError(t, err)

	history, err := feed.History(context.Background(), agentID, 10)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestActivityFeed_Subscribe(t *testing.T) {
	_, client := newTestClient(t)
	feed := NewActivityFeed(client)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	agentID := uuid.New()

	events, err := feed.Subscribe(ctx, agentID)
	require.NoError(t, err)

	require.NoError(t, feed.Publish(context.Background(), domain.NewActivity(agentID, domain.ActivitySkillLevelUp, nil)))

	select {
	case a := <-events:
		assert.Equal(t, domain.ActivitySkillLevelUp, a.Type)
		assert.Equal(t, agentID, a.AgentID)
	case <-time.After(2 * time.Second):
		t.Fatal("no live event received")
	}

	cancel()
	assert.Eventually(t, func() bool {
		_, open := <-events
		return !open
	}, 2*time.Second, 10*time.Millisecond)
}
