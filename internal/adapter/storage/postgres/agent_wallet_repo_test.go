package postgres

import (
	"context"
	"testing"
	"time"

	"subra-settlement/internal/core/domain"

	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAgentWallet() *domain.AgentWallet {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &domain.AgentWallet{
		AgentID:      uuid.New(),
		Address:      "9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin",
		EncryptedKey: "a1b2c3d4e5f6",
		Balance:      decimal.Zero,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestAgentWalletRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAgentWalletRepo(mock)
	w := newTestAgentWallet()

	mock.ExpectExec("INSERT INTO agent_wallets .+ ON CONFLICT \\(agent_id\\) DO NOTHING").
		WithArgs(w.AgentID, w.Address, w.EncryptedKey, w.Balance, w.CreatedAt, w.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	inserted, err := repo.Create(context.Background(), w)
	require.NoError(t, err)
	assert.True(t, inserted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAgentWalletRepo_Create_ExistingKept(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAgentWalletRepo(mock)

	mock.ExpectExec("INSERT INTO agent_wallets").
		WillReturnResult(pgxmock.NewResult("INSERT", 0))

	inserted, err := repo.Create(context.Background(), newTestAgentWallet())
	require.NoError(t, err)
	assert.False(t, inserted)
}

func TestAgentWalletRepo_GetByAgentID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAgentWalletRepo(mock)
	w := newTestAgentWallet()
	w.Balance = decimal.RequireFromString("1.5")

	mock.ExpectQuery("SELECT .+ FROM agent_wallets WHERE agent_id").
		WithArgs(w.AgentID).
		WillReturnRows(pgxmock.NewRows([]string{"agent_id", "address", "encrypted_key", "balance", "created_at", "updated_at"}).
			AddRow(w.AgentID, w.Address, w.EncryptedKey, w.Balance, w.CreatedAt, w.UpdatedAt))

	result, err := repo.GetByAgentID(context.Background(), w.AgentID)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, w.Address, result.Address)
	assert.Equal(t, w.EncryptedKey, result.EncryptedKey)
	assert.True(t, w.Balance.Equal(result.Balance))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAgentWalletRepo_GetByAgentID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAgentWalletRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM agent_wallets").
		WillReturnRows(pgxmock.NewRows([]string{"agent_id", "address", "encrypted_key", "balance", "created_at", "updated_at"}))

	result, err := repo.GetByAgentID(context.Background(), uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, result)
}

func TestAgentWalletRepo_UpdateBalance(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewAgentWalletRepo(mock)
	agentID := uuid.New()
	balance := decimal.RequireFromString("2.75")

	mock.ExpectExec("UPDATE agent_wallets SET balance").
		WithArgs(balance, agentID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	assert.NoError(t, repo.UpdateBalance(context.Background(), agentID, balance))

	mock.ExpectExec("UPDATE agent_wallets SET balance").
		WithArgs(balance, agentID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	assert.Error(t, repo.UpdateBalance(context.Background(), agentID, balance))
	assert.NoError(t, mock.ExpectationsWereMet())
}
