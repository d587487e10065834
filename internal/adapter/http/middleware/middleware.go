package middleware

import (
	"net/http"
	"strings"
	"time"

	"subra-settlement/internal/core/ports"
	"subra-settlement/pkg/apperror"
	"subra-settlement/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	HeaderRequestID = "X-Request-ID"

	// Context keys
	CtxRequestID = "request_id"
	CtxUserID    = "user_id"
	CtxAgentID   = "agent_id"
	CtxAgent     = "agent"

	// ParamAgentID is the path parameter of agent-scoped routes.
	ParamAgentID = "agentId"
)

// RequestID propagates the caller's X-Request-ID or assigns a new one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > 64 {
			id = uuid.New().String()
		}
		c.Set(CtxRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// JWTAuth creates a middleware that validates bearer tokens.
func JWTAuth(tokenSvc ports.TokenService, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenStr, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || tokenStr == "" {
			response.Error(c, apperror.ErrUnauthorized())
			c.Abort()
			return
		}

		claims, err := tokenSvc.Validate(tokenStr)
		if err != nil {
			log.Debug().Err(err).Msg("token rejected")
			response.Error(c, apperror.ErrInvalidToken())
			c.Abort()
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Next()
	}
}

// AgentOwnership resolves :agentId and rejects callers that do not own the
// agent. Must run after JWTAuth.
func AgentOwnership(agents ports.AgentRepository, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		agentID, err := uuid.Parse(c.Param(ParamAgentID))
		if err != nil {
			response.Error(c, apperror.ErrInvalidRequest("agentId must be a UUID"))
			c.Abort()
			return
		}

		agent, err := agents.GetByID(c.Request.Context(), agentID)
		if err != nil {
			log.Error().Err(err).Str("agent_id", agentID.String()).Msg("failed to fetch agent")
			response.Error(c, apperror.ErrDatabaseError(err))
			c.Abort()
			return
		}
		if agent == nil {
			response.Error(c, apperror.ErrAgentNotFound())
			c.Abort()
			return
		}

		userID, ok := UserID(c)
		if !ok || agent.OwnerID != userID {
			response.Error(c, apperror.ErrForbidden())
			c.Abort()
			return
		}

		c.Set(CtxAgentID, agent.ID)
		c.Set(CtxAgent, agent)
		c.Next()
	}
}

// UserID returns the authenticated user, if any.
func UserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(CtxUserID)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// AgentID returns the agent resolved by AgentOwnership, if any.
func AgentID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(CtxAgentID)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// RequestLogger creates a middleware that logs every HTTP request.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()

		event := log.Info()
		if status >= http.StatusInternalServerError {
			event = log.Error()
		} else if status >= http.StatusBadRequest {
			event = log.Warn()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", latency).
			Str("client_ip", c.ClientIP()).
			Str("request_id", c.GetString(CtxRequestID)).
			Msg("http request")
	}
}

// Recovery creates a panic recovery middleware.
func Recovery(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Str("path", c.Request.URL.Path).Msg("panic recovered")
				response.Error(c, apperror.New(apperror.CodeInternal, "Internal server error", http.StatusInternalServerError))
				c.Abort()
			}
		}()
		c.Next()
	}
}
