package service

import (
	"context"
	"encoding/binary"
	"testing"

	"subra-settlement/internal/core/domain"
	"subra-settlement/internal/core/ports"
	"subra-settlement/internal/core/ports/mocks"
	"subra-settlement/internal/ledgertest"
	"subra-settlement/pkg/apperror"

	"github.com/gagliardetto/solana-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testMint = solana.MustPublicKeyFromBase58("EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v")

var testUSDC = domain.TokenAsset{Ticker: "USDC", Mint: testMint, Exponent: 6}

var portsBlock = ports.BlockContext{Blockhash: solana.Hash{1}, LastValidBlockHeight: 500}

func programOf(tx *solana.Transaction, i int) solana.PublicKey {
	inst := tx.Message.Instructions[i]
	return tx.Message.AccountKeys[inst.ProgramIDIndex]
}

func TestPaymentBuilder_Native(t *testing.T) {
	ledger := ledgertest.New()
	b := NewPaymentBuilder(ledger, true)
	payer, recipient := newKey(t).PublicKey(), newKey(t).PublicKey()

	transfer, err := b.BuildNative(context.Background(), payer, recipient, decimal.RequireFromString("0.001"), "")
	require.NoError(t, err)

	tx := transfer.Tx
	require.Len(t, tx.Message.Instructions, 1)
	assert.Equal(t, solana.SystemProgramID, programOf(tx, 0))
	data := []byte(tx.Message.Instructions[0].Data)
	assert.Equal(t, uint32(2), binary.LittleEndian.Uint32(data[:4]))
	assert.Equal(t, uint64(1_000_000), binary.LittleEndian.Uint64(data[4:12]))
	assert.Equal(t, uint64(1_000_000), transfer.Units)

	assert.Equal(t, payer, tx.Message.AccountKeys[0], "payer is the fee payer")
	assert.Equal(t, transfer.Block.Blockhash, tx.Message.RecentBlockhash)
	assert.Equal(t, uint64(1150), transfer.Block.LastValidBlockHeight)
}

func TestPaymentBuilder_Memo(t *testing.T) {
	ledger := ledgertest.New()
	b := NewPaymentBuilder(ledger, true)
	payer, recipient := newKey(t).PublicKey(), newKey(t).PublicKey()

	transfer, err := b.BuildNative(context.Background(), payer, recipient, decimal.NewFromInt(1), "subra:task-1")
	require.NoError(t, err)

	require.Len(t, transfer.Tx.Message.Instructions, 2)
	assert.Equal(t, MemoProgramID, programOf(transfer.Tx, 1))
	assert.Equal(t, []byte("subra:task-1"), []byte(transfer.Tx.Message.Instructions[1].Data))
}

func TestPaymentBuilder_NativeFloorsToZero(t *testing.T) {
	b := NewPaymentBuilder(ledgertest.New(), true)

	_, err := b.BuildNative(context.Background(), newKey(t).PublicKey(), newKey(t).PublicKey(), decimal.RequireFromString("0.0000000001"), "")
	assertAppError(t, err, apperror.CodeInvalidAmount)
}

func TestPaymentBuilder_Token_CreatesMissingRecipientAccount(t *testing.T) {
	ledger := ledgertest.New()
	ledger.AddMint(testMint, 6)
	b := NewPaymentBuilder(ledger, true)
	payer, recipient := newKey(t).PublicKey(), newKey(t).PublicKey()

	transfer, err := b.BuildToken(context.Background(), payer, recipient, testUSDC, decimal.RequireFromString("2.5"), "")
	require.NoError(t, err)

	tx := transfer.Tx
	require.Len(t, tx.Message.Instructions, 2)
	assert.Equal(t, solana.SPLAssociatedTokenAccountProgramID, programOf(tx, 0))
	assert.Equal(t, solana.TokenProgramID, programOf(tx, 1))

	data := []byte(tx.Message.Instructions[1].Data)
	assert.Equal(t, byte(12), data[0])
	assert.Equal(t, uint64(2_500_000), binary.LittleEndian.Uint64(data[1:9]))
	assert.Equal(t, byte(6), data[9])

	source, _, _ := solana.FindAssociatedTokenAddress(payer, testMint)
	dest, _, _ := solana.FindAssociatedTokenAddress(recipient, testMint)
	accounts := tx.Message.Instructions[1].Accounts
	assert.Equal(t, source, tx.Message.AccountKeys[accounts[0]])
	assert.Equal(t, testMint, tx.Message.AccountKeys[accounts[1]])
	assert.Equal(t, dest, tx.Message.AccountKeys[accounts[2]])
	assert.Equal(t, payer, tx.Message.AccountKeys[accounts[3]])
}

func TestPaymentBuilder_Token_ExistingRecipientAccount(t *testing.T) {
	ledger := ledgertest.New()
	ledger.AddMint(testMint, 6)
	recipient := newKey(t).PublicKey()
	ledger.MintTo(recipient, testMint, 1)
	b := NewPaymentBuilder(ledger, true)

	transfer, err := b.BuildToken(context.Background(), newKey(t).PublicKey(), recipient, testUSDC, decimal.NewFromInt(1), "")
	require.NoError(t, err)

	require.Len(t, transfer.Tx.Message.Instructions, 1)
	assert.Equal(t, solana.TokenProgramID, programOf(transfer.Tx, 0))
}

func TestPaymentBuilder_Token_NoAccountCheckWhenCreationDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ledger := mocks.NewMockLedgerClient(ctrl)
	ledger.EXPECT().GetLatestBlockContext(gomock.Any()).Return(&portsBlock, nil)
	b := NewPaymentBuilder(ledger, false)

	transfer, err := b.BuildToken(context.Background(), newKey(t).PublicKey(), newKey(t).PublicKey(), testUSDC, decimal.NewFromInt(1), "")
	require.NoError(t, err)
	assert.Len(t, transfer.Tx.Message.Instructions, 1)
}

func TestPaymentBuilder_BlockContextError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ledger := mocks.NewMockLedgerClient(ctrl)
	ledger.EXPECT().GetLatestBlockContext(gomock.Any()).Return(nil, apperror.ErrNetwork(assert.AnError))
	b := NewPaymentBuilder(ledger, true)

	_, err := b.Build(context.Background(), newKey(t).PublicKey(), newKey(t).PublicKey(), domain.NativeAsset{}, decimal.NewFromInt(1), "")
	assertAppError(t, err, apperror.CodeNetwork)
}
