package service

import (
	"context"
	"fmt"

	"subra-settlement/internal/core/domain"
	"subra-settlement/internal/core/ports"
	"subra-settlement/pkg/apperror"

	"github.com/gagliardetto/solana-go"
	associatedtokenaccount "github.com/gagliardetto/solana-go/programs/associated-token-account"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/programs/token"
	"github.com/shopspring/decimal"
)

// MemoProgramID is the SPL memo program (v2).
var MemoProgramID = solana.MustPublicKeyFromBase58("MemoSq4gqABAXKb96qnH8TysNcWxMyWCqXgDLGmfcHr")

// maxMemoBytes keeps the memo well inside the packet size limit.
const maxMemoBytes = 256

// UnsignedTransfer is a compiled, not yet signed, transfer.
type UnsignedTransfer struct {
	Tx    *solana.Transaction
	Block ports.BlockContext
	Units uint64
}

// PaymentBuilder compiles transfers against a fresh blockhash.
type PaymentBuilder struct {
	ledger    ports.LedgerClient
	createATA bool
}

// NewPaymentBuilder creates a builder. When createATA is set, token
// transfers to a recipient without a token account also create it, paid by
// the sender.
func NewPaymentBuilder(ledger ports.LedgerClient, createATA bool) *PaymentBuilder {
	return &PaymentBuilder{ledger: ledger, createATA: createATA}
}

// Build dispatches on the asset kind.
func (b *PaymentBuilder) Build(ctx context.Context, payer, recipient solana.PublicKey, asset domain.Asset, amount decimal.Decimal, memo string) (*UnsignedTransfer, error) {
	switch a := asset.(type) {
	case domain.NativeAsset:
		return b.BuildNative(ctx, payer, recipient, amount, memo)
	case domain.TokenAsset:
		return b.BuildToken(ctx, payer, recipient, a, amount, memo)
	default:
		return nil, apperror.ErrUnsupportedCurrency(asset.Symbol())
	}
}

// BuildNative compiles a SOL transfer.
func (b *PaymentBuilder) BuildNative(ctx context.Context, payer, recipient solana.PublicKey, amount decimal.Decimal, memo string) (*UnsignedTransfer, error) {
	lamports, err := domain.ToBaseUnits(amount, domain.NativeDecimals)
	if err != nil {
		return nil, apperror.ErrInvalidAmount(err.Error())
	}

	instructions := []solana.Instruction{
		system.NewTransferInstruction(lamports, payer, recipient).Build(),
	}
	return b.compile(ctx, payer, lamports, withMemo(instructions, payer, memo))
}

// BuildToken compiles an SPL TransferChecked between the associated token
// accounts of payer and recipient.
func (b *PaymentBuilder) BuildToken(ctx context.Context, payer, recipient solana.PublicKey, asset domain.TokenAsset, amount decimal.Decimal, memo string) (*UnsignedTransfer, error) {
	units, err := domain.ToBaseUnits(amount, asset.Exponent)
	if err != nil {
		return nil, apperror.ErrInvalidAmount(err.Error())
	}

	source, _, err := solana.FindAssociatedTokenAddress(payer, asset.Mint)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("derive source token account: %w", err))
	}
	destination, _, err := solana.FindAssociatedTokenAddress(recipient, asset.Mint)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("derive destination token account: %w", err))
	}

	var instructions []solana.Instruction
	if b.createATA {
		exists, err := b.ledger.AccountExists(ctx, destination)
		if err != nil {
			return nil, err
		}
		if !exists {
			instructions = append(instructions,
				associatedtokenaccount.NewCreateInstruction(payer, recipient, asset.Mint).Build())
		}
	}

	instructions = append(instructions,
		token.NewTransferCheckedInstruction(units, asset.Exponent, source, asset.Mint, destination, payer, nil).Build())

	return b.compile(ctx, payer, units, withMemo(instructions, payer, memo))
}

func (b *PaymentBuilder) compile(ctx context.Context, payer solana.PublicKey, units uint64, instructions []solana.Instruction) (*UnsignedTransfer, error) {
	block, err := b.ledger.GetLatestBlockContext(ctx)
	if err != nil {
		return nil, err
	}

	tx, err := solana.NewTransaction(instructions, block.Blockhash, solana.TransactionPayer(payer))
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("compile transaction: %w", err))
	}
	return &UnsignedTransfer{Tx: tx, Block: *block, Units: units}, nil
}

func withMemo(instructions []solana.Instruction, signer solana.PublicKey, memo string) []solana.Instruction {
	if memo == "" {
		return instructions
	}
	return append(instructions, solana.NewInstruction(
		MemoProgramID,
		solana.AccountMetaSlice{solana.Meta(signer).SIGNER()},
		[]byte(memo),
	))
}
