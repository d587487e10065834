package service

import (
	"context"
	"fmt"
	"time"

	"subra-settlement/internal/core/domain"
	"subra-settlement/internal/core/ports"
	"subra-settlement/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ExperienceServiceImpl implements ports.ExperienceService.
type ExperienceServiceImpl struct {
	skills     ports.SkillRepository
	transactor ports.DBTransactor
	activity   ports.ActivityFeed // optional
	log        zerolog.Logger
}

// NewExperienceService creates a new ExperienceServiceImpl.
func NewExperienceService(skills ports.SkillRepository, transactor ports.DBTransactor, activity ports.ActivityFeed, log zerolog.Logger) *ExperienceServiceImpl {
	return &ExperienceServiceImpl{skills: skills, transactor: transactor, activity: activity, log: log}
}

// Award adds xp to a skill under a row lock and publishes skill_level_up
// when the level changes.
func (s *ExperienceServiceImpl) Award(ctx context.Context, agentID uuid.UUID, skill domain.SkillType, xp int) (*domain.AgentSkill, error) {
	if xp <= 0 {
		return nil, apperror.ErrInvalidRequest("experience must be positive")
	}
	if !validSkill(skill) {
		return nil, apperror.ErrInvalidRequest(fmt.Sprintf("unknown skill %q", skill))
	}

	dbTx, err := s.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	current, err := s.skills.GetForUpdate(ctx, dbTx, agentID, skill)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("lock skill: %w", err))
	}
	if current == nil {
		current = &domain.AgentSkill{AgentID: agentID, SkillType: skill, Level: domain.LevelFor(0)}
	}

	leveledUp := current.AddExperience(xp)
	current.UpdatedAt = time.Now().UTC()

	if err := s.skills.Update(ctx, dbTx, current); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("update skill: %w", err))
	}
	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("commit tx: %w", err))
	}

	if leveledUp {
		s.log.Info().
			Str("agent_id", agentID.String()).
			Str("skill", string(skill)).
			Int("level", current.Level).
			Msg("skill level up")
		if s.activity != nil {
			err := s.activity.Publish(ctx, domain.NewActivity(agentID, domain.ActivitySkillLevelUp, map[string]any{
				"skill":      string(skill),
				"level":      current.Level,
				"experience": current.Experience,
			}))
			if err != nil {
				s.log.Warn().Err(err).Msg("activity publish failed")
			}
		}
	}
	return current, nil
}

// RecordTask awards the fixed experience of a search or compare task.
func (s *ExperienceServiceImpl) RecordTask(ctx context.Context, agentID uuid.UUID, skill domain.SkillType, products int) (*domain.AgentSkill, error) {
	if products < 0 {
		return nil, apperror.ErrInvalidRequest("products must not be negative")
	}
	switch skill {
	case domain.SkillSearch:
		return s.Award(ctx, agentID, skill, domain.SearchExperience(products))
	case domain.SkillCompare:
		return s.Award(ctx, agentID, skill, domain.CompareExperience(products))
	default:
		return nil, apperror.ErrInvalidRequest(fmt.Sprintf("skill %q is not awarded per task", skill))
	}
}

// ListSkills returns every skill the agent has progressed.
func (s *ExperienceServiceImpl) ListSkills(ctx context.Context, agentID uuid.UUID) ([]domain.AgentSkill, error) {
	skills, err := s.skills.ListByAgent(ctx, agentID)
	if err != nil {
		return nil, apperror.ErrDatabaseError(fmt.Errorf("list skills: %w", err))
	}
	return skills, nil
}

func validSkill(skill domain.SkillType) bool {
	switch skill {
	case domain.SkillSearch, domain.SkillCompare, domain.SkillPurchase:
		return true
	}
	return false
}
