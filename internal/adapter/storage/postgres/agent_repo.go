package postgres

import (
	"context"
	"errors"
	"fmt"

	"subra-settlement/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// AgentRepo implements ports.AgentRepository. Agents are written by the
// agent-management API; this repo only reads them.
type AgentRepo struct {
	pool Pool
}

func NewAgentRepo(pool Pool) *AgentRepo {
	return &AgentRepo{pool: pool}
}

// GetByID returns nil when the agent does not exist.
func (r *AgentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Agent, error) {
	query := `SELECT id, owner_id, name, created_at FROM agents WHERE id = $1`

	a := &domain.Agent{}
	err := r.pool.QueryRow(ctx, query, id).Scan(&a.ID, &a.OwnerID, &a.Name, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get agent by id: %w", err)
	}
	return a, nil
}
