package service

import (
	"context"

	"subra-settlement/internal/core/domain"
	"subra-settlement/internal/core/ports"

	"github.com/rs/zerolog"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService creates a new audit service.
// If repo is nil, audit entries are only written to the logger.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

// Log records a custody action without blocking the request.
func (s *auditService) Log(ctx context.Context, entry *domain.AuditLog) {
	persistCtx := context.WithoutCancel(ctx)
	go func() {
		ev := s.log.Info().
			Str("action", string(entry.Action)).
			Str("resource_type", entry.ResourceType).
			Str("resource_id", entry.ResourceID).
			Int("status", entry.StatusCode).
			Str("ip", entry.IPAddress)
		if entry.AgentID != nil {
			ev = ev.Str("agent_id", entry.AgentID.String())
		}
		ev.Msg("audit")

		if s.repo != nil {
			if err := s.repo.Create(persistCtx, entry); err != nil {
				s.log.Warn().Err(err).Str("action", string(entry.Action)).Msg("failed to persist audit log")
			}
		}
	}()
}
