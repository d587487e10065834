package domain

import (
	"time"

	"github.com/google/uuid"
)

// Agent is owned by the agent-management API. Settlement only reads it to
// check ownership.
type Agent struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
