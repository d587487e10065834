package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"subra-settlement/internal/core/domain"
	"subra-settlement/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuditLog records custody-relevant write operations after they complete.
// Failed attempts are recorded too; the status code tells them apart.
func AuditLog(auditSvc ports.AuditService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Request.Method != http.MethodPost {
			return
		}
		action, resourceType := mapRouteToAction(c.FullPath())
		if action == "" {
			return
		}

		entry := &domain.AuditLog{
			ID:           uuid.New(),
			Action:       action,
			ResourceType: resourceType,
			IPAddress:    c.ClientIP(),
			UserAgent:    c.Request.UserAgent(),
			StatusCode:   c.Writer.Status(),
			CreatedAt:    time.Now().UTC(),
		}
		if id, ok := UserID(c); ok {
			entry.UserID = &id
		}
		if id, ok := AgentID(c); ok {
			entry.AgentID = &id
			entry.ResourceID = id.String()
		}

		details, _ := json.Marshal(map[string]interface{}{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"request_id": c.GetString(CtxRequestID),
		})
		entry.Details = string(details)

		auditSvc.Log(c.Request.Context(), entry)
	}
}

func mapRouteToAction(route string) (domain.AuditAction, string) {
	switch route {
	case "/api/v1/agents/:agentId/wallet":
		return domain.AuditActionWalletCreate, "agent_wallet"
	case "/api/v1/agents/:agentId/wallet/fund":
		return domain.AuditActionWalletFund, "agent_wallet"
	case "/api/v1/agents/:agentId/tasks/purchase":
		return domain.AuditActionPurchase, "transaction"
	case "/api/v1/user-wallets":
		return domain.AuditActionUserWalletCreate, "user_wallet"
	}
	return "", ""
}
