package postgres

import (
	"context"
	"errors"
	"fmt"

	"subra-settlement/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// SkillRepo implements ports.SkillRepository.
type SkillRepo struct {
	pool Pool
}

func NewSkillRepo(pool Pool) *SkillRepo {
	return &SkillRepo{pool: pool}
}

// GetForUpdate locks the skill row for the rest of tx, creating it at level 1
// first so that concurrent first awards serialize on the same row.
// This MUST be called within a transaction.
func (r *SkillRepo) GetForUpdate(ctx context.Context, tx pgx.Tx, agentID uuid.UUID, skill domain.SkillType) (*domain.AgentSkill, error) {
	_, err := tx.Exec(ctx,
		`INSERT INTO agent_skills (agent_id, skill_type, experience, level, updated_at)
		VALUES ($1, $2, 0, 1, NOW())
		ON CONFLICT (agent_id, skill_type) DO NOTHING`,
		agentID, skill,
	)
	if err != nil {
		return nil, fmt.Errorf("ensure skill row: %w", err)
	}

	query := `SELECT agent_id, skill_type, experience, level, updated_at
		FROM agent_skills WHERE agent_id = $1 AND skill_type = $2 FOR UPDATE`

	s := &domain.AgentSkill{}
	err = tx.QueryRow(ctx, query, agentID, skill).Scan(&s.AgentID, &s.SkillType, &s.Experience, &s.Level, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get skill for update: %w", err)
	}
	return s, nil
}

// Update writes the skill row, inserting it if needed.
func (r *SkillRepo) Update(ctx context.Context, tx pgx.Tx, s *domain.AgentSkill) error {
	query := `INSERT INTO agent_skills (agent_id, skill_type, experience, level, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (agent_id, skill_type)
		DO UPDATE SET experience = EXCLUDED.experience, level = EXCLUDED.level, updated_at = EXCLUDED.updated_at`

	if _, err := tx.Exec(ctx, query, s.AgentID, s.SkillType, s.Experience, s.Level, s.UpdatedAt); err != nil {
		return fmt.Errorf("upsert skill: %w", err)
	}
	return nil
}

// ListByAgent returns the agent's skills ordered by skill name.
func (r *SkillRepo) ListByAgent(ctx context.Context, agentID uuid.UUID) ([]domain.AgentSkill, error) {
	query := `SELECT agent_id, skill_type, experience, level, updated_at
		FROM agent_skills WHERE agent_id = $1 ORDER BY skill_type`

	rows, err := r.pool.Query(ctx, query, agentID)
	if err != nil {
		return nil, fmt.Errorf("list skills: %w", err)
	}
	defer rows.Close()

	skills := []domain.AgentSkill{}
	for rows.Next() {
		var s domain.AgentSkill
		if err := rows.Scan(&s.AgentID, &s.SkillType, &s.Experience, &s.Level, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan skill row: %w", err)
		}
		skills = append(skills, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate skill rows: %w", err)
	}
	return skills, nil
}
