package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// VerificationRequest describes what a settled transaction should contain.
type VerificationRequest struct {
	Signature string
	Recipient string
	Amount    decimal.Decimal
	Currency  string
}

// Verification is the result of checking a signature on the ledger.
type Verification struct {
	Verified  bool            `json:"verified"`
	Signature string          `json:"signature"`
	Received  decimal.Decimal `json:"received"`
	Currency  string          `json:"currency"`
	Slot      uint64          `json:"slot,omitempty"`
	BlockTime *time.Time      `json:"block_time,omitempty"`
	Reason    string          `json:"reason,omitempty"`
}
