package handler

import (
	"subra-settlement/internal/adapter/http/dto"
	"subra-settlement/internal/core/domain"
	"subra-settlement/internal/core/ports"
	"subra-settlement/pkg/apperror"
	"subra-settlement/pkg/response"

	"github.com/gin-gonic/gin"
)

// SkillHandler exposes agent skill progression.
type SkillHandler struct {
	experience ports.ExperienceService
}

// NewSkillHandler creates a new SkillHandler.
func NewSkillHandler(experience ports.ExperienceService) *SkillHandler {
	return &SkillHandler{experience: experience}
}

// ListSkills handles GET /api/v1/agents/:agentId/skills.
func (h *SkillHandler) ListSkills(c *gin.Context) {
	agentID, ok := agentFromContext(c)
	if !ok {
		return
	}

	skills, err := h.experience.ListSkills(c.Request.Context(), agentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if skills == nil {
		skills = []domain.AgentSkill{}
	}
	response.OK(c, dto.SkillListResponse{Items: skills})
}

// RecordExperience handles POST /api/v1/agents/:agentId/skills/:skill/experience
// for completed search and compare tasks.
func (h *SkillHandler) RecordExperience(c *gin.Context) {
	agentID, ok := agentFromContext(c)
	if !ok {
		return
	}

	var req dto.RecordExperienceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.ErrInvalidRequest(err.Error()))
		return
	}

	skill, err := h.experience.RecordTask(c.Request.Context(), agentID, domain.SkillType(c.Param("skill")), req.Products)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, skill)
}
