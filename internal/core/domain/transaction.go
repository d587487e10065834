package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the kind of on-chain money movement.
type TransactionType string

const (
	TransactionTypePurchase TransactionType = "PURCHASE"
	TransactionTypeFunding  TransactionType = "FUNDING"
)

// TransactionStatus represents the lifecycle state of a transaction record.
type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusFailed    TransactionStatus = "FAILED"

	// TransactionStatusUnconfirmed marks a submitted transfer whose outcome
	// was not observed in time. Resolved by signature lookup.
	TransactionStatusUnconfirmed TransactionStatus = "UNCONFIRMED"
)

// Transaction is the persisted record of one payment attempt.
type Transaction struct {
	ID                   uuid.UUID         `json:"id"`
	AgentID              uuid.UUID         `json:"agent_id"`
	TaskID               *string           `json:"task_id,omitempty"`
	Type                 TransactionType   `json:"type"`
	Status               TransactionStatus `json:"status"`
	Amount               decimal.Decimal   `json:"amount"`
	Currency             string            `json:"currency"`
	FromAddress          string            `json:"from_address"`
	ToAddress            string            `json:"to_address"`
	Signature            *string           `json:"signature,omitempty"`
	LastValidBlockHeight *uint64           `json:"-"`
	FailureReason        *string           `json:"failure_reason,omitempty"`
	Metadata             map[string]any    `json:"metadata,omitempty"`
	CreatedAt            time.Time         `json:"created_at"`
	UpdatedAt            time.Time         `json:"updated_at"`
}

// IsTerminal returns true if the record needs no further reconciliation.
func (t *Transaction) IsTerminal() bool {
	return t.Status == TransactionStatusCompleted ||
		t.Status == TransactionStatusFailed
}

// StatusFor maps an executor outcome to the record status.
func StatusFor(outcome PaymentOutcome) TransactionStatus {
	switch outcome {
	case OutcomeSettled:
		return TransactionStatusCompleted
	case OutcomeIndeterminate:
		return TransactionStatusUnconfirmed
	default:
		return TransactionStatusFailed
	}
}

// TransactionOutcome is the terminal (or unconfirmed) update applied to a
// pending record.
type TransactionOutcome struct {
	Status        TransactionStatus
	Signature     *string
	FailureReason *string
}
