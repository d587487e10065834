package domain

import (
	"time"

	"github.com/google/uuid"
)

// SkillType names an agent capability that accrues experience.
type SkillType string

const (
	SkillSearch   SkillType = "search"
	SkillCompare  SkillType = "compare"
	SkillPurchase SkillType = "purchase"
)

const (
	// ExperiencePerLevel is the XP needed per level step.
	ExperiencePerLevel = 100
	// MaxSkillLevel caps the level.
	MaxSkillLevel = 10
)

// AgentSkill is the experience record of one skill of one agent.
type AgentSkill struct {
	AgentID    uuid.UUID `json:"agent_id"`
	SkillType  SkillType `json:"skill_type"`
	Experience int       `json:"experience"`
	Level      int       `json:"level"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// LevelFor computes the level for a total experience value.
func LevelFor(experience int) int {
	if experience < 0 {
		experience = 0
	}
	level := experience/ExperiencePerLevel + 1
	if level > MaxSkillLevel {
		return MaxSkillLevel
	}
	return level
}

// AddExperience applies xp and reports whether the level changed.
func (s *AgentSkill) AddExperience(xp int) (leveledUp bool) {
	before := s.Level
	s.Experience += xp
	s.Level = LevelFor(s.Experience)
	return s.Level > before
}

// SearchExperience is the XP for a search task returning n products.
func SearchExperience(products int) int { return 10 + 2*products }

// CompareExperience is the XP for a comparison over n products.
func CompareExperience(products int) int { return 15 + 3*products }
