package service

import (
	"context"
	"testing"

	"subra-settlement/internal/core/ports/mocks"
	"subra-settlement/pkg/apperror"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestUserWalletService_CreateAndOpen(t *testing.T) {
	svc := NewUserWalletService(NewArgon2Vault(), newTestLogger())
	ctx := context.Background()

	wallet, err := svc.CreateUserWallet(ctx, "hunter2hunter2")
	require.NoError(t, err)
	assert.NotEmpty(t, wallet.SealedKey)

	material, err := svc.OpenFundingKey(ctx, wallet.SealedKey, "hunter2hunter2")
	require.NoError(t, err)

	key, err := ParsePrivateKey(material)
	require.NoError(t, err)
	assert.Equal(t, wallet.Address, key.PublicKey().String())
}

func TestUserWalletService_WrongPassword(t *testing.T) {
	svc := NewUserWalletService(NewArgon2Vault(), newTestLogger())
	ctx := context.Background()

	wallet, err := svc.CreateUserWallet(ctx, "hunter2hunter2")
	require.NoError(t, err)

	_, err = svc.OpenFundingKey(ctx, wallet.SealedKey, "wrong-password")
	assertAppError(t, err, apperror.CodeDecryptionFailed)
}

func TestUserWalletService_ShortPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Vault must not be reached.
	svc := NewUserWalletService(mocks.NewMockPasswordVault(ctrl), newTestLogger())

	_, err := svc.CreateUserWallet(context.Background(), "short")
	assertAppError(t, err, apperror.CodeInvalidRequest)
}

func TestUserWalletService_TruncatedSecret(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	vault := mocks.NewMockPasswordVault(ctrl)
	vault.EXPECT().Open("sealed", "pw").Return([]byte{1, 2, 3}, nil)
	svc := NewUserWalletService(vault, newTestLogger())

	_, err := svc.OpenFundingKey(context.Background(), "sealed", "pw")
	assertAppError(t, err, apperror.CodeDecryptionFailed)
}

func TestParsePrivateKey(t *testing.T) {
	key, err := solana.NewRandomPrivateKey()
	require.NoError(t, err)

	fromBase58, err := ParsePrivateKey(key.String())
	require.NoError(t, err)
	assert.Equal(t, key, fromBase58)

	fromBase64, err := ParsePrivateKey(base64Of(key))
	require.NoError(t, err)
	assert.Equal(t, key, fromBase64)

	_, err = ParsePrivateKey("")
	assert.Error(t, err)
	_, err = ParsePrivateKey("abc")
	assert.Error(t, err)
}
