package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"subra-settlement/internal/service"

	"github.com/gagliardetto/solana-go"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("SUBRA_JWT_SECRET", "settlectl-test-secret")
	userID := uuid.New()

	out, err := run(t, "token", userID.String())
	require.NoError(t, err)

	var body map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	require.NotEmpty(t, body["access_token"])
	assert.NotEmpty(t, body["expires_at"])

	claims, err := service.NewJWTTokenService("settlectl-test-secret", 0, "subra").Validate(body["access_token"])
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
}

func TestTokenCommand_InvalidUserID(t *testing.T) {
	_, err := run(t, "token", "not-a-uuid")
	assert.ErrorContains(t, err, "invalid user id")
}

func TestKeygenCommand(t *testing.T) {
	out, err := run(t, "keygen", "--password", "correct-horse")
	require.NoError(t, err)

	var body struct {
		Address   string `json:"address"`
		SealedKey string `json:"sealed_key"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &body))
	_, err = solana.PublicKeyFromBase58(body.Address)
	require.NoError(t, err)

	secret, err := service.NewUserWalletService(service.NewArgon2Vault(), zerolog.Nop()).
		OpenFundingKey(context.Background(), body.SealedKey, "correct-horse")
	require.NoError(t, err)
	key, err := solana.PrivateKeyFromBase58(secret)
	require.NoError(t, err)
	assert.Equal(t, body.Address, key.PublicKey().String())
}

func TestKeygenCommand_ShortPassword(t *testing.T) {
	_, err := run(t, "keygen", "--password", "short")
	assert.ErrorContains(t, err, "at least 8")
}

func TestBalanceCommand_InvalidAddress(t *testing.T) {
	_, err := run(t, "balance", "not-an-address")
	assert.ErrorContains(t, err, "invalid address")
}
