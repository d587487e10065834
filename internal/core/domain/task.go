package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseIntent is the input of one purchase task.
type PurchaseIntent struct {
	TaskID      string
	AgentID     uuid.UUID
	ProductID   string
	ProductName string
	Price       decimal.Decimal
	Currency    string
	Merchant    string // recipient address
	Memo        string
}

// PurchaseStatus is the task-level outcome shown to users.
type PurchaseStatus string

const (
	PurchaseCompleted      PurchaseStatus = "completed"
	PurchaseFailed         PurchaseStatus = "failed"
	PurchasePaymentUnknown PurchaseStatus = "payment_unknown"
	PurchaseInProgress     PurchaseStatus = "in_progress"
)

// PurchaseStatusFor maps a stored record onto the task status.
func PurchaseStatusFor(status TransactionStatus) PurchaseStatus {
	switch status {
	case TransactionStatusCompleted:
		return PurchaseCompleted
	case TransactionStatusFailed:
		return PurchaseFailed
	case TransactionStatusUnconfirmed:
		return PurchasePaymentUnknown
	default:
		return PurchaseInProgress
	}
}

// PurchaseOutcome is the result of a purchase task.
type PurchaseOutcome struct {
	TaskID           string         `json:"task_id"`
	Status           PurchaseStatus `json:"status"`
	TransactionID    uuid.UUID      `json:"transaction_id"`
	Payment          *PaymentResult `json:"payment,omitempty"`
	ExperienceGained int            `json:"experience_gained"`
	Message          string         `json:"message"`
}
