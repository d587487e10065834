// Package ledgertest provides an in-memory ledger for service and handler
// tests. Submitted transactions are decoded, signature-checked and applied
// to in-memory balances.
package ledgertest

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"time"

	"subra-settlement/internal/core/ports"
	"subra-settlement/pkg/apperror"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"
)

// FeePerSignature is charged to the fee payer of every landed transaction.
const FeePerSignature = 5000

const (
	systemTransfer       = 2
	tokenTransferChecked = 12
)

var _ ports.LedgerClient = (*Ledger)(nil)

// Ledger is a goroutine-safe in-memory ports.LedgerClient.
type Ledger struct {
	mu sync.Mutex

	lamports map[solana.PublicKey]uint64
	tokens   map[solana.PublicKey]uint64 // token account -> base units
	accounts map[solana.PublicKey]bool
	mints    map[solana.PublicKey]uint8
	landed   map[solana.Signature]*ports.SettledTransaction
	calls    map[string]int

	height uint64
	slot   uint64

	// SubmitErr makes every submission fail with this error.
	SubmitErr error
	// Unconfirmed applies transactions but never reports them final.
	Unconfirmed bool
	// QueryErr makes balance and block queries fail.
	QueryErr error
}

// New creates an empty ledger at block height 1000.
func New() *Ledger {
	return &Ledger{
		lamports: map[solana.PublicKey]uint64{},
		tokens:   map[solana.PublicKey]uint64{},
		accounts: map[solana.PublicKey]bool{},
		mints:    map[solana.PublicKey]uint8{},
		landed:   map[solana.Signature]*ports.SettledTransaction{},
		calls:    map[string]int{},
		height:   1000,
		slot:     5000,
	}
}

// Airdrop credits lamports to an account.
func (l *Ledger) Airdrop(owner solana.PublicKey, lamports uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lamports[owner] += lamports
	l.accounts[owner] = true
}

// AddMint registers a token mint.
func (l *Ledger) AddMint(mint solana.PublicKey, decimals uint8) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.mints[mint] = decimals
	l.accounts[mint] = true
}

// MintTo credits base units to the owner's associated token account.
func (l *Ledger) MintTo(owner, mint solana.PublicKey, units uint64) {
	ata, _, _ := solana.FindAssociatedTokenAddress(owner, mint)
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tokens[ata] += units
	l.accounts[ata] = true
}

// SetUnconfirmed toggles Unconfirmed while other goroutines use the ledger.
func (l *Ledger) SetUnconfirmed(v bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Unconfirmed = v
}

// AdvanceBlocks moves the block height forward.
func (l *Ledger) AdvanceBlocks(n uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.height += n
	l.slot += n
}

// Balance returns the lamports held by owner.
func (l *Ledger) Balance(owner solana.PublicKey) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lamports[owner]
}

// TokenBalanceOf returns the base units in the owner's associated token account.
func (l *Ledger) TokenBalanceOf(owner, mint solana.PublicKey) uint64 {
	ata, _, _ := solana.FindAssociatedTokenAddress(owner, mint)
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.tokens[ata]
}

// Calls returns how often a method was invoked.
func (l *Ledger) Calls(method string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls[method]
}

// TotalCalls returns the number of calls over all methods.
func (l *Ledger) TotalCalls() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	for _, c := range l.calls {
		n += c
	}
	return n
}

func (l *Ledger) record(method string) {
	l.calls[method]++
}

func (l *Ledger) GetNativeBalance(_ context.Context, owner solana.PublicKey) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.record("GetNativeBalance")
	if l.QueryErr != nil {
		return 0, apperror.ErrNetwork(l.QueryErr)
	}
	return l.lamports[owner], nil
}

func (l *Ledger) GetTokenBalance(_ context.Context, owner, mint solana.PublicKey) (uint64, error) {
	ata, _, err := solana.FindAssociatedTokenAddress(owner, mint)
	if err != nil {
		return 0, err
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.record("GetTokenBalance")
	if l.QueryErr != nil {
		return 0, apperror.ErrNetwork(l.QueryErr)
	}
	return l.tokens[ata], nil
}

func (l *Ledger) GetTokenDecimals(_ context.Context, mint solana.PublicKey) (uint8, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.record("GetTokenDecimals")
	d, ok := l.mints[mint]
	if !ok {
		return 0, apperror.ErrNetwork(fmt.Errorf("unknown mint %s", mint))
	}
	return d, nil
}

func (l *Ledger) AccountExists(_ context.Context, account solana.PublicKey) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.record("AccountExists")
	if l.QueryErr != nil {
		return false, apperror.ErrNetwork(l.QueryErr)
	}
	return l.accounts[account], nil
}

func (l *Ledger) GetLatestBlockContext(_ context.Context) (*ports.BlockContext, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.record("GetLatestBlockContext")
	if l.QueryErr != nil {
		return nil, apperror.ErrNetwork(l.QueryErr)
	}
	var h solana.Hash
	binary.LittleEndian.PutUint64(h[:8], l.height)
	return &ports.BlockContext{Blockhash: h, LastValidBlockHeight: l.height + 150}, nil
}

func (l *Ledger) GetBlockHeight(_ context.Context) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.record("GetBlockHeight")
	return l.height, nil
}

func (l *Ledger) EstimateFee(_ context.Context, message []byte) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.record("EstimateFee")
	if len(message) == 0 {
		return 0, apperror.ErrNetwork(errors.New("empty message"))
	}
	return FeePerSignature, nil
}

// SubmitTransaction verifies signatures and applies the transfers. A
// transfer the payer cannot afford lands as a failed transaction.
func (l *Ledger) SubmitTransaction(_ context.Context, raw []byte) (solana.Signature, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.record("SubmitTransaction")

	if l.SubmitErr != nil {
		return solana.Signature{}, apperror.ErrNetwork(l.SubmitErr)
	}

	tx, err := solana.TransactionFromDecoder(bin.NewBinDecoder(raw))
	if err != nil {
		return solana.Signature{}, apperror.ErrNetwork(fmt.Errorf("malformed transaction: %w", err))
	}
	if len(tx.Signatures) == 0 {
		return solana.Signature{}, apperror.ErrNetwork(errors.New("transaction is not signed"))
	}
	if err := tx.VerifySignatures(); err != nil {
		return solana.Signature{}, apperror.ErrNetwork(fmt.Errorf("signature verification failed: %w", err))
	}

	sig := tx.Signatures[0]
	if _, dup := l.landed[sig]; dup {
		return sig, nil
	}

	keys := tx.Message.AccountKeys
	payer := keys[0]
	fee := uint64(FeePerSignature * len(tx.Signatures))
	if l.lamports[payer] < fee {
		return solana.Signature{}, apperror.ErrNetwork(errors.New("insufficient funds for fee"))
	}

	pre := l.snapshot(keys)
	preTokens := l.tokenSnapshot(keys)

	l.lamports[payer] -= fee
	execErr := l.apply(tx)

	l.slot++
	settled := &ports.SettledTransaction{
		Signature:         sig,
		Slot:              l.slot,
		Err:               execErr,
		Fee:               fee,
		AccountKeys:       keys,
		PreBalances:       pre,
		PostBalances:      l.snapshot(keys),
		PreTokenBalances:  preTokens,
		PostTokenBalances: l.tokenSnapshot(keys),
	}
	now := time.Now().UTC()
	settled.BlockTime = &now
	l.landed[sig] = settled
	return sig, nil
}

// apply executes instructions in order and returns the ledger error, if any.
// A failing instruction rolls back every balance change except the fee.
func (l *Ledger) apply(tx *solana.Transaction) string {
	lamports := cloneMap(l.lamports)
	tokens := cloneMap(l.tokens)
	accounts := cloneMap(l.accounts)
	keys := tx.Message.AccountKeys

	for i, inst := range tx.Message.Instructions {
		program := keys[inst.ProgramIDIndex]
		data := []byte(inst.Data)
		acct := func(n int) solana.PublicKey { return keys[inst.Accounts[n]] }
		failed := fmt.Sprintf(`{"InstructionError":[%d,{"Custom":1}]}`, i)

		switch {
		case program.Equals(solana.SystemProgramID) && len(data) >= 12 && binary.LittleEndian.Uint32(data[:4]) == systemTransfer:
			amount := binary.LittleEndian.Uint64(data[4:12])
			from, to := acct(0), acct(1)
			if lamports[from] < amount {
				return failed
			}
			lamports[from] -= amount
			lamports[to] += amount
			accounts[to] = true

		case program.Equals(solana.TokenProgramID) && len(data) >= 10 && data[0] == tokenTransferChecked:
			amount := binary.LittleEndian.Uint64(data[1:9])
			decimals := data[9]
			source, mint, dest := acct(0), acct(1), acct(2)
			if d, ok := l.mints[mint]; !ok || d != decimals {
				return fmt.Sprintf(`{"InstructionError":[%d,"InvalidArgument"]}`, i)
			}
			if !accounts[dest] {
				return fmt.Sprintf(`{"InstructionError":[%d,"InvalidAccountData"]}`, i)
			}
			if tokens[source] < amount {
				return failed
			}
			tokens[source] -= amount
			tokens[dest] += amount

		case program.Equals(solana.SPLAssociatedTokenAccountProgramID):
			accounts[acct(1)] = true
		}
	}

	l.lamports, l.tokens, l.accounts = lamports, tokens, accounts
	return ""
}

func (l *Ledger) snapshot(keys []solana.PublicKey) []uint64 {
	out := make([]uint64, len(keys))
	for i, k := range keys {
		out[i] = l.lamports[k]
	}
	return out
}

// tokenSnapshot reports token accounts among keys owned through an
// associated token address of a known mint.
func (l *Ledger) tokenSnapshot(keys []solana.PublicKey) []ports.TokenBalance {
	var out []ports.TokenBalance
	for _, owner := range keys {
		for mint := range l.mints {
			ata, _, err := solana.FindAssociatedTokenAddress(owner, mint)
			if err != nil {
				continue
			}
			if units, ok := l.tokens[ata]; ok {
				out = append(out, ports.TokenBalance{Owner: owner, Mint: mint, Amount: units})
			}
		}
	}
	return out
}

func (l *Ledger) ConfirmTransaction(ctx context.Context, sig solana.Signature, timeout time.Duration) (*ports.Confirmation, error) {
	l.mu.Lock()
	l.record("ConfirmTransaction")
	tx, ok := l.landed[sig]
	unconfirmed := l.Unconfirmed
	l.mu.Unlock()

	if !ok || unconfirmed {
		select {
		case <-ctx.Done():
		case <-time.After(timeout):
		}
		return &ports.Confirmation{Status: ports.ConfirmationTimedOut}, nil
	}
	if tx.Err != "" {
		return &ports.Confirmation{Status: ports.ConfirmationFailed, Reason: tx.Err, Slot: tx.Slot}, nil
	}
	return &ports.Confirmation{Status: ports.ConfirmationConfirmed, Slot: tx.Slot}, nil
}

func (l *Ledger) GetTransaction(_ context.Context, sig solana.Signature) (*ports.SettledTransaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.record("GetTransaction")
	tx, ok := l.landed[sig]
	if !ok {
		return nil, ports.ErrTransactionNotFound
	}
	return tx, nil
}

func cloneMap[K comparable, V any](in map[K]V) map[K]V {
	out := make(map[K]V, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
