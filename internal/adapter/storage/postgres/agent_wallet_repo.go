package postgres

import (
	"context"
	"errors"
	"fmt"

	"subra-settlement/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AgentWalletRepo implements ports.AgentWalletRepository.
type AgentWalletRepo struct {
	pool Pool
}

func NewAgentWalletRepo(pool Pool) *AgentWalletRepo {
	return &AgentWalletRepo{pool: pool}
}

// Create inserts the wallet unless one exists for the agent. The existing
// row, and its key, are left untouched.
func (r *AgentWalletRepo) Create(ctx context.Context, w *domain.AgentWallet) (bool, error) {
	query := `INSERT INTO agent_wallets (agent_id, address, encrypted_key, balance, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (agent_id) DO NOTHING`

	tag, err := r.pool.Exec(ctx, query,
		w.AgentID, w.Address, w.EncryptedKey, w.Balance, w.CreatedAt, w.UpdatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("insert agent wallet: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// GetByAgentID returns nil when the agent has no wallet.
func (r *AgentWalletRepo) GetByAgentID(ctx context.Context, agentID uuid.UUID) (*domain.AgentWallet, error) {
	query := `SELECT agent_id, address, encrypted_key, balance, created_at, updated_at
		FROM agent_wallets WHERE agent_id = $1`

	w := &domain.AgentWallet{}
	err := r.pool.QueryRow(ctx, query, agentID).Scan(
		&w.AgentID, &w.Address, &w.EncryptedKey, &w.Balance, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get agent wallet: %w", err)
	}
	return w, nil
}

// UpdateBalance stores the last observed SOL balance.
func (r *AgentWalletRepo) UpdateBalance(ctx context.Context, agentID uuid.UUID, balance decimal.Decimal) error {
	query := `UPDATE agent_wallets SET balance = $1, updated_at = NOW() WHERE agent_id = $2`

	tag, err := r.pool.Exec(ctx, query, balance, agentID)
	if err != nil {
		return fmt.Errorf("update agent wallet balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("agent wallet not found: %s", agentID)
	}
	return nil
}
