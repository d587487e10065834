package domain

import (
	"time"

	"github.com/google/uuid"
)

// Activity types published on the agent feed.
const (
	ActivityPurchaseStarted   = "purchase_started"
	ActivityPurchaseCompleted = "purchase_completed"
	ActivityPurchaseFailed    = "purchase_failed"
	ActivityPaymentUnverified = "payment_unverified"
	ActivityPaymentReconciled = "payment_reconciled"
	ActivityWalletCreated     = "wallet_created"
	ActivityWalletFunded      = "wallet_funded"
	ActivitySkillLevelUp      = "skill_level_up"
)

// Activity is a single event on an agent's live feed.
type Activity struct {
	AgentID   uuid.UUID      `json:"agentId"`
	Type      string         `json:"type"`
	Data      map[string]any `json:"data"`
	Timestamp time.Time      `json:"timestamp"`
}

// NewActivity stamps an activity with the current time.
func NewActivity(agentID uuid.UUID, typ string, data map[string]any) Activity {
	return Activity{AgentID: agentID, Type: typ, Data: data, Timestamp: time.Now().UTC()}
}
