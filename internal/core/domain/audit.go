package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction represents the type of audited custody action.
type AuditAction string

const (
	AuditActionWalletCreate     AuditAction = "WALLET_CREATE"
	AuditActionWalletFund       AuditAction = "WALLET_FUND"
	AuditActionPurchase         AuditAction = "PURCHASE"
	AuditActionUserWalletCreate AuditAction = "USER_WALLET_CREATE"
)

// AuditLog records a single audited action.
type AuditLog struct {
	ID           uuid.UUID   `json:"id"`
	UserID       *uuid.UUID  `json:"user_id,omitempty"`
	AgentID      *uuid.UUID  `json:"agent_id,omitempty"`
	Action       AuditAction `json:"action"`
	ResourceType string      `json:"resource_type"`
	ResourceID   string      `json:"resource_id,omitempty"`
	Details      string      `json:"details,omitempty"` // JSON string
	IPAddress    string      `json:"ip_address"`
	UserAgent    string      `json:"user_agent,omitempty"`
	StatusCode   int         `json:"status_code"`
	CreatedAt    time.Time   `json:"created_at"`
}
