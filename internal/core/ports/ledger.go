package ports

import (
	"context"
	"errors"
	"time"

	"github.com/gagliardetto/solana-go"
)

// ErrTransactionNotFound is returned by LedgerClient.GetTransaction when the
// ledger has no record of the signature.
var ErrTransactionNotFound = errors.New("transaction not found")

// ConfirmationStatus is the terminal state of a confirmation poll.
type ConfirmationStatus string

const (
	ConfirmationConfirmed ConfirmationStatus = "CONFIRMED"
	ConfirmationTimedOut  ConfirmationStatus = "TIMED_OUT"
	ConfirmationFailed    ConfirmationStatus = "FAILED"
)

// Confirmation is the result of ConfirmTransaction.
type Confirmation struct {
	Status ConfirmationStatus
	Reason string // ledger execution error, set when Status is FAILED
	Slot   uint64
}

// BlockContext bounds the validity window of a transaction.
type BlockContext struct {
	Blockhash            solana.Hash
	LastValidBlockHeight uint64
}

// TokenBalance is a token account balance inside a settled transaction.
type TokenBalance struct {
	Owner  solana.PublicKey
	Mint   solana.PublicKey
	Amount uint64
}

// SettledTransaction is the ledger's view of a landed transaction.
type SettledTransaction struct {
	Signature         solana.Signature
	Slot              uint64
	BlockTime         *time.Time
	Err               string // empty when execution succeeded
	Fee               uint64
	AccountKeys       []solana.PublicKey
	PreBalances       []uint64
	PostBalances      []uint64
	PreTokenBalances  []TokenBalance
	PostTokenBalances []TokenBalance
}

// LedgerClient exposes the Solana primitives settlement needs. Amounts are
// integer base units. Implementations must be safe for concurrent use and
// must not retry submissions.
type LedgerClient interface {
	GetNativeBalance(ctx context.Context, owner solana.PublicKey) (uint64, error)
	// GetTokenBalance returns 0 when the owner has no associated token account.
	GetTokenBalance(ctx context.Context, owner, mint solana.PublicKey) (uint64, error)
	GetTokenDecimals(ctx context.Context, mint solana.PublicKey) (uint8, error)
	AccountExists(ctx context.Context, account solana.PublicKey) (bool, error)
	GetLatestBlockContext(ctx context.Context) (*BlockContext, error)
	GetBlockHeight(ctx context.Context) (uint64, error)
	EstimateFee(ctx context.Context, message []byte) (uint64, error)
	SubmitTransaction(ctx context.Context, raw []byte) (solana.Signature, error)
	// ConfirmTransaction polls until finality, an execution failure, or the
	// timeout. Repeated calls for a settled signature return the same status.
	ConfirmTransaction(ctx context.Context, sig solana.Signature, timeout time.Duration) (*Confirmation, error)
	GetTransaction(ctx context.Context, sig solana.Signature) (*SettledTransaction, error)
}
