package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentRequest is a single transfer the executor settles. Not persisted.
type PaymentRequest struct {
	Recipient string
	Amount    decimal.Decimal
	Currency  string
	Memo      string
}

// AttemptState tracks one payment attempt through the executor.
type AttemptState string

const (
	AttemptValidated      AttemptState = "VALIDATED"
	AttemptBalanceChecked AttemptState = "BALANCE_CHECKED"
	AttemptBuilt          AttemptState = "BUILT"
	AttemptSigned         AttemptState = "SIGNED"
	AttemptSubmitted      AttemptState = "SUBMITTED"
	AttemptConfirmed      AttemptState = "CONFIRMED"
	AttemptFailed         AttemptState = "FAILED"
	AttemptIndeterminate  AttemptState = "INDETERMINATE"
)

// PaymentOutcome is the caller-facing classification of a result.
type PaymentOutcome string

const (
	OutcomeSettled       PaymentOutcome = "SETTLED"
	OutcomeFailed        PaymentOutcome = "FAILED"
	OutcomeIndeterminate PaymentOutcome = "INDETERMINATE"
)

// PaymentFailure describes why an attempt did not settle.
type PaymentFailure struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Stage   AttemptState `json:"stage,omitempty"` // last state reached before the failure
	// LedgerReference is set when the transaction landed but the ledger
	// reported an execution error.
	LedgerReference string `json:"ledger_reference,omitempty"`
}

// PaymentResult is the single result of one attempt. Signature and Failure
// are mutually exclusive.
type PaymentResult struct {
	Success    bool            `json:"success"`
	Outcome    PaymentOutcome  `json:"outcome"`
	Signature  string          `json:"signature,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency"`
	Timestamp  time.Time       `json:"timestamp"`
	FinalState AttemptState    `json:"final_state"`
	Failure    *PaymentFailure `json:"failure,omitempty"`
}

// SettledResult builds a successful result.
func SettledResult(sig string, amount decimal.Decimal, currency string, at time.Time) *PaymentResult {
	return &PaymentResult{
		Success:    true,
		Outcome:    OutcomeSettled,
		Signature:  sig,
		Amount:     amount,
		Currency:   currency,
		Timestamp:  at,
		FinalState: AttemptConfirmed,
	}
}

// IndeterminateResult is returned when a submitted transaction was not
// observed as final in time. The signature is kept for reconciliation.
func IndeterminateResult(sig string, amount decimal.Decimal, currency string, at time.Time) *PaymentResult {
	return &PaymentResult{
		Outcome:    OutcomeIndeterminate,
		Signature:  sig,
		Amount:     amount,
		Currency:   currency,
		Timestamp:  at,
		FinalState: AttemptIndeterminate,
	}
}

// FailedResult builds a failure that happened after stage was reached.
func FailedResult(stage AttemptState, failure PaymentFailure, amount decimal.Decimal, currency string, at time.Time) *PaymentResult {
	failure.Stage = stage
	return &PaymentResult{
		Outcome:    OutcomeFailed,
		Amount:     amount,
		Currency:   currency,
		Timestamp:  at,
		FinalState: AttemptFailed,
		Failure:    &failure,
	}
}

// Quote is a pre-flight cost estimate for a payment.
type Quote struct {
	Amount     decimal.Decimal `json:"amount"`
	Currency   string          `json:"currency"`
	NetworkFee decimal.Decimal `json:"network_fee"` // SOL
	FeeBuffer  decimal.Decimal `json:"fee_buffer"`  // SOL, native payments only
	// Total is what leaves the payer in the payment currency. For SOL it
	// includes the network fee.
	Total decimal.Decimal `json:"total"`
}
