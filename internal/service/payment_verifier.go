package service

import (
	"context"
	"errors"
	"fmt"

	"subra-settlement/internal/core/domain"
	"subra-settlement/internal/core/ports"
	"subra-settlement/pkg/apperror"

	"github.com/gagliardetto/solana-go"
	"github.com/rs/zerolog"
)

// PaymentVerifierImpl implements ports.PaymentVerifier by reading the
// recipient's balance change out of the settled transaction.
type PaymentVerifierImpl struct {
	ledger ports.LedgerClient
	assets *domain.AssetRegistry
	log    zerolog.Logger
}

// NewPaymentVerifier creates a new PaymentVerifierImpl.
func NewPaymentVerifier(ledger ports.LedgerClient, assets *domain.AssetRegistry, log zerolog.Logger) *PaymentVerifierImpl {
	return &PaymentVerifierImpl{ledger: ledger, assets: assets, log: log}
}

// Verify reports whether the transaction moved at least req.Amount to the
// recipient. A zero Amount accepts any positive transfer. A missing or failed
// transaction is reported as unverified, not as an error.
func (v *PaymentVerifierImpl) Verify(ctx context.Context, req domain.VerificationRequest) (*domain.Verification, error) {
	sig, err := solana.SignatureFromBase58(req.Signature)
	if err != nil {
		return nil, apperror.ErrInvalidRequest("signature is not valid base58")
	}
	recipient, err := solana.PublicKeyFromBase58(req.Recipient)
	if err != nil {
		return nil, apperror.ErrInvalidRequest("recipient is not a valid address")
	}
	asset, ok := v.assets.Resolve(req.Currency)
	if !ok {
		return nil, apperror.ErrUnsupportedCurrency(req.Currency)
	}
	if req.Amount.IsNegative() {
		return nil, apperror.ErrInvalidRequest("amount must not be negative")
	}

	out := &domain.Verification{Signature: req.Signature, Currency: asset.Symbol()}

	settled, err := v.ledger.GetTransaction(ctx, sig)
	if errors.Is(err, ports.ErrTransactionNotFound) {
		out.Reason = "transaction not found"
		return out, nil
	}
	if err != nil {
		return nil, asNetwork(err)
	}
	out.Slot = settled.Slot
	out.BlockTime = settled.BlockTime

	if settled.Err != "" {
		out.Reason = fmt.Sprintf("transaction failed: %s", settled.Err)
		return out, nil
	}

	var units uint64
	switch a := asset.(type) {
	case domain.NativeAsset:
		units = nativeDelta(settled, recipient)
	case domain.TokenAsset:
		units = tokenDelta(settled, recipient, a.Mint)
	}
	out.Received = domain.FromBaseUnits(units, asset.Decimals())

	switch {
	case units == 0:
		out.Reason = "recipient received nothing"
	case out.Received.LessThan(req.Amount):
		out.Reason = fmt.Sprintf("recipient received %s, expected %s", out.Received, req.Amount)
	default:
		out.Verified = true
	}

	v.log.Debug().
		Str("signature", req.Signature).
		Bool("verified", out.Verified).
		Str("received", out.Received.String()).
		Msg("payment verified")
	return out, nil
}

func nativeDelta(tx *ports.SettledTransaction, recipient solana.PublicKey) uint64 {
	for i, key := range tx.AccountKeys {
		if !key.Equals(recipient) || i >= len(tx.PreBalances) || i >= len(tx.PostBalances) {
			continue
		}
		if tx.PostBalances[i] > tx.PreBalances[i] {
			return tx.PostBalances[i] - tx.PreBalances[i]
		}
		return 0
	}
	return 0
}

func tokenDelta(tx *ports.SettledTransaction, owner, mint solana.PublicKey) uint64 {
	find := func(balances []ports.TokenBalance) uint64 {
		for _, b := range balances {
			if b.Owner.Equals(owner) && b.Mint.Equals(mint) {
				return b.Amount
			}
		}
		return 0
	}
	pre, post := find(tx.PreTokenBalances), find(tx.PostTokenBalances)
	if post > pre {
		return post - pre
	}
	return 0
}
