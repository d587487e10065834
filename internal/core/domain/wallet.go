package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AgentWallet is the custodial keypair held for one agent.
type AgentWallet struct {
	AgentID      uuid.UUID       `json:"agent_id"`
	Address      string          `json:"address"`
	EncryptedKey string          `json:"-"`       // hex(iv || ciphertext), never expose
	Balance      decimal.Decimal `json:"balance"` // advisory, SOL
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// UserWallet is a wallet generated for an end user. The secret key is sealed
// with the user's password and handed back, never stored by the service.
type UserWallet struct {
	Address   string `json:"address"`
	SealedKey string `json:"sealed_key"`
}
